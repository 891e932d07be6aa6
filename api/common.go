package api

// VisibilityKind discriminates how far an item is visible.
type VisibilityKind uint8

const (
	// VisDefault is the implicit visibility: private to the enclosing
	// module.
	VisDefault VisibilityKind = iota
	// VisPublic is an unrestricted `pub`.
	VisPublic
	// VisCrate is `pub(crate)`.
	VisCrate
	// VisPath is `pub(in path)`.
	VisPath
)

// Visibility of an item. Scope returns the module item the visibility
// is restricted to; ok is false exactly when the item is `pub` without
// restriction.
type Visibility struct {
	kind  VisibilityKind
	scope ItemID
}

// NewVisibility is used by the driver to construct visibilities.
func NewVisibility(kind VisibilityKind, scope ItemID) Visibility {
	return Visibility{kind: kind, scope: scope}
}

// Kind returns the visibility class.
func (v *Visibility) Kind() VisibilityKind { return v.kind }

// IsPub reports whether the item is visible outside its module.
func (v *Visibility) IsPub() bool { return v.kind != VisDefault }

// Scope returns the restricting module, ok=false for unrestricted pub.
// The scope is CrateRootID when the restriction is the crate root, as
// for `pub(crate)` or a private top-level item.
func (v *Visibility) Scope() (ItemID, bool) {
	if v.kind == VisPublic {
		return 0, false
	}
	return v.scope, true
}

// Mutability of a reference, pointer, static, or binding.
type Mutability uint8

const (
	Immutable Mutability = iota
	Mutable
)

// IsMut reports whether the mutability allows mutation.
func (m Mutability) IsMut() bool { return m == Mutable }

// Parameter of a callable. Depending on context either the pattern or
// the type may be absent (closure parameters can omit the type, fn-ptr
// types omit the pattern), never both.
type Parameter struct {
	pat  PatKind // nil when absent
	ty   TyKind  // nil when absent
	span SpanID
}

// NewParameter is used by the driver to construct parameters.
func NewParameter(pat PatKind, ty TyKind, span SpanID) Parameter {
	return Parameter{pat: pat, ty: ty, span: span}
}

// Pat returns the parameter pattern, ok=false when absent.
func (p *Parameter) Pat() (PatKind, bool) { return p.pat, p.pat != nil }

// Ty returns the declared parameter type, ok=false when absent.
func (p *Parameter) Ty() (TyKind, bool) { return p.ty, p.ty != nil }

// Span returns where the parameter is written.
func (p *Parameter) Span() *Span { return CurrentContext().Span(p.span) }

// Body is a function or constant body. Its expression is either a block
// or a single expression; async and generator bodies surface as a
// single UnstableExpr.
type Body struct {
	id    BodyID
	owner ItemID
	expr  ExprKind
}

// NewBody is used by the driver to construct bodies.
func NewBody(id BodyID, owner ItemID, expr ExprKind) *Body {
	return &Body{id: id, owner: owner, expr: expr}
}

// ID returns the body's ID.
func (b *Body) ID() BodyID { return b.id }

// Owner returns the item this body belongs to.
func (b *Body) Owner() ItemID { return b.owner }

// Expr returns the body's root expression.
func (b *Body) Expr() ExprKind { return b.expr }
