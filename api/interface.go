package api

// APIVersion is the version of the stable lint API. The adapter
// refuses lint crates compiled against a different version; bump it on
// every breaking change to this package.
const APIVersion = "0.5.0"

// LintPassInfo describes a lint pass to the adapter before any
// traversal starts.
type LintPassInfo struct {
	// Lints lists every lint the pass can emit. Emitting a lint that
	// is not listed here is a contract violation.
	Lints []*Lint
}

// LintPass is the interface a lint crate implements. The adapter calls
// the check methods while traversing the crate, parents before
// children, in source order. Methods a pass does not care about should
// be empty.
type LintPass interface {
	// Info is called once per session, before SetContext.
	Info() LintPassInfo
	CheckItem(ctx *MarkerContext, item ItemKind)
	CheckField(ctx *MarkerContext, field *Field)
	CheckVariant(ctx *MarkerContext, variant *EnumVariant)
	CheckBody(ctx *MarkerContext, body *Body)
	CheckStmt(ctx *MarkerContext, stmt StmtKind)
	CheckExpr(ctx *MarkerContext, expr ExprKind)
}

// DefaultLintPass is a no-op LintPass meant for embedding, so that a
// pass only spells out the check methods it uses. It deliberately does
// not implement Info: every pass must declare its lints itself.
type DefaultLintPass struct{}

func (DefaultLintPass) CheckItem(*MarkerContext, ItemKind)        {}
func (DefaultLintPass) CheckField(*MarkerContext, *Field)         {}
func (DefaultLintPass) CheckVariant(*MarkerContext, *EnumVariant) {}
func (DefaultLintPass) CheckBody(*MarkerContext, *Body)           {}
func (DefaultLintPass) CheckStmt(*MarkerContext, StmtKind)        {}
func (DefaultLintPass) CheckExpr(*MarkerContext, ExprKind)        {}

// LintCrateBindings is the flat function table a lint crate exports to
// the adapter. Keeping it a struct of plain functions decouples the
// adapter from the lint crate's types and lets tests substitute fakes.
type LintCrateBindings struct {
	// SetContext installs the ambient context before a round of check
	// calls. The adapter calls it with nil after the traversal.
	SetContext   func(ctx *MarkerContext)
	Info         func() LintPassInfo
	CheckItem    func(ctx *MarkerContext, item ItemKind)
	CheckField   func(ctx *MarkerContext, field *Field)
	CheckVariant func(ctx *MarkerContext, variant *EnumVariant)
	CheckBody    func(ctx *MarkerContext, body *Body)
	CheckStmt    func(ctx *MarkerContext, stmt StmtKind)
	CheckExpr    func(ctx *MarkerContext, expr ExprKind)
}

// NewLintCrateBindings wraps a LintPass into the exported function
// table. A lint crate's plugin entry point is typically one line:
//
//	func MarkerLintCrateBindings() api.LintCrateBindings {
//		return api.NewLintCrateBindings(&myPass{})
//	}
func NewLintCrateBindings(pass LintPass) LintCrateBindings {
	return LintCrateBindings{
		SetContext:   SetCurrentContext,
		Info:         pass.Info,
		CheckItem:    pass.CheckItem,
		CheckField:   pass.CheckField,
		CheckVariant: pass.CheckVariant,
		CheckBody:    pass.CheckBody,
		CheckStmt:    pass.CheckStmt,
		CheckExpr:    pass.CheckExpr,
	}
}
