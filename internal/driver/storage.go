package driver

import (
	"fmt"

	"marker/api"
	"marker/internal/hir"
	"marker/internal/sema"
	"marker/internal/source"
)

// storage holds the per-session conversion caches. Conversion is
// canonical: every host node maps to exactly one API node per session,
// so identity comparisons on the API side work.
type storage struct {
	crate *hir.Crate
	sema  *sema.Analysis
	spans *spanTable

	items    map[hir.ItemID]api.ItemKind
	fields   map[hir.FieldID]*api.Field
	variants map[hir.VariantID]*api.EnumVariant
	bodies   map[hir.BodyID]*api.Body
	exprs    map[hir.ExprID]api.ExprKind
	stmts    map[hir.StmtID]api.StmtKind

	// owners anchor body nodes to the item whose attribute chain
	// controls their lint levels.
	exprOwner map[hir.ExprID]hir.ItemID
	stmtOwner map[hir.StmtID]hir.ItemID

	// curItem is the item whose declaration is being converted; Self
	// paths in signatures resolve against it.
	curItem hir.ItemID

	// bodyStack tracks in-flight body conversions: the innermost entry
	// decides which sema results type queries hit, and a body already
	// on the stack must not be converted again.
	bodyStack []hir.BodyID

	// onUnstableBody fires once per session when an async body is
	// collapsed to an unstable placeholder.
	onUnstableBody func()
}

func newStorage(crate *hir.Crate, analysis *sema.Analysis, spans *spanTable) *storage {
	return &storage{
		crate:     crate,
		sema:      analysis,
		spans:     spans,
		items:     make(map[hir.ItemID]api.ItemKind),
		fields:    make(map[hir.FieldID]*api.Field),
		variants:  make(map[hir.VariantID]*api.EnumVariant),
		bodies:    make(map[hir.BodyID]*api.Body),
		exprs:     make(map[hir.ExprID]api.ExprKind),
		stmts:     make(map[hir.StmtID]api.StmtKind),
		exprOwner: make(map[hir.ExprID]hir.ItemID),
		stmtOwner: make(map[hir.StmtID]hir.ItemID),
	}
}

func (st *storage) ident(name source.SymbolID, span source.Span) api.Ident {
	return *api.NewIdent(api.SymbolID(name), st.spans.intern(span))
}

// indexIdent builds the decimal pseudo-name tuple fields and tuple
// constructors are addressed by.
func (st *storage) indexIdent(index uint32, span source.Span) api.Ident {
	return st.ident(st.crate.NameSymbol(fmt.Sprintf("%d", index)), span)
}

// itemRootBody is the body the type checker ran for when checking the
// given item, NoBodyID for items without one.
func (st *storage) itemRootBody(item hir.ItemID) hir.BodyID {
	if fn, ok := st.crate.Items.Fn(item); ok {
		return fn.Body
	}
	if c, ok := st.crate.Items.Const(item); ok {
		return c.Body
	}
	if s, ok := st.crate.Items.Static(item); ok {
		return s.Body
	}
	return hir.NoBodyID
}

// currentBody is the body whose sema results apply to nested
// expressions, NoBodyID outside of body conversion.
func (st *storage) currentBody() hir.BodyID {
	if len(st.bodyStack) == 0 {
		return hir.NoBodyID
	}
	return st.bodyStack[len(st.bodyStack)-1]
}

func (st *storage) pushBody(id hir.BodyID) bool {
	for _, active := range st.bodyStack {
		if active == id {
			return false
		}
	}
	st.bodyStack = append(st.bodyStack, id)
	return true
}

func (st *storage) popBody() {
	st.bodyStack = st.bodyStack[:len(st.bodyStack)-1]
}

// enclosingImpl walks the owner chain for the impl or trait the item
// sits in; used to resolve Self targets.
func (st *storage) enclosingImpl(item hir.ItemID) (hir.ItemID, bool) {
	for _, id := range st.crate.OwnerChain(item) {
		it := st.crate.Items.Get(id)
		if it == nil {
			break
		}
		if it.Kind == hir.ItemImpl || it.Kind == hir.ItemTrait {
			return id, true
		}
	}
	return hir.NoItemID, false
}
