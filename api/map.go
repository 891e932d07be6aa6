package api

import "fmt"

// AstMapCallbacks is the driver-installed lookup table behind AstMap.
type AstMapCallbacks struct {
	Item        func(data any, id ItemID) (ItemKind, bool)
	Variant     func(data any, id VariantID) (*EnumVariant, bool)
	Field       func(data any, id FieldID) (*Field, bool)
	Body        func(data any, id BodyID) (*Body, bool)
	Stmt        func(data any, id StmtID) (StmtKind, bool)
	Expr        func(data any, id ExprID) (ExprKind, bool)
	LintLevelAt func(data any, lint *Lint, node EmissionNode) Level
}

// AstMap resolves IDs back to nodes of the currently compiled crate.
//
// Item, Variant, and Field return ok=false when the node is not part of
// the current crate: IDs of these kinds can name definitions in
// dependencies, which are not generally materialized. Body, Stmt, and
// Expr panic on unknown IDs instead, because such IDs are only mintable
// inside the current crate; an unknown one is a driver bug or a
// fabricated ID.
type AstMap struct {
	data      any
	callbacks AstMapCallbacks
}

// NewAstMap is used by the driver to assemble the map.
func NewAstMap(data any, callbacks AstMapCallbacks) *AstMap {
	return &AstMap{data: data, callbacks: callbacks}
}

// Item returns the item behind the ID, ok=false for out-of-crate items.
func (m *AstMap) Item(id ItemID) (ItemKind, bool) {
	return m.callbacks.Item(m.data, id)
}

// Variant returns the enum variant behind the ID, ok=false for
// out-of-crate variants.
func (m *AstMap) Variant(id VariantID) (*EnumVariant, bool) {
	return m.callbacks.Variant(m.data, id)
}

// Field returns the field behind the ID, ok=false for out-of-crate
// fields.
func (m *AstMap) Field(id FieldID) (*Field, bool) {
	return m.callbacks.Field(m.data, id)
}

// Body returns the body behind the ID, panicking on unknown IDs.
func (m *AstMap) Body(id BodyID) *Body {
	body, ok := m.callbacks.Body(m.data, id)
	if !ok {
		panic(fmt.Sprintf("marker: unknown BodyID %d", id))
	}
	return body
}

// Stmt returns the statement behind the ID, panicking on unknown IDs.
func (m *AstMap) Stmt(id StmtID) StmtKind {
	stmt, ok := m.callbacks.Stmt(m.data, id)
	if !ok {
		panic(fmt.Sprintf("marker: unknown StmtID %d", id))
	}
	return stmt
}

// Expr returns the expression behind the ID, panicking on unknown IDs.
func (m *AstMap) Expr(id ExprID) ExprKind {
	expr, ok := m.callbacks.Expr(m.data, id)
	if !ok {
		panic(fmt.Sprintf("marker: unknown ExprID %d", id))
	}
	return expr
}

// LintLevelAt returns the effective level of a lint at a node, after
// walking the attribute chain up to the crate root.
func (m *AstMap) LintLevelAt(lint *Lint, node EmissionNode) Level {
	return m.callbacks.LintLevelAt(m.data, lint, node)
}
