package driver

import (
	"strings"

	"marker/api"
	"marker/internal/hir"
	"marker/internal/sema"
	"marker/internal/source"
)

func (st *storage) convertSegments(segs []hir.PathSegment) []api.AstPathSegment {
	out := make([]api.AstPathSegment, 0, len(segs))
	for _, seg := range segs {
		var args []api.GenericArgKind
		for _, arg := range seg.Args {
			args = append(args, api.NewTyArg(st.convertTy(arg)))
		}
		var argSpan api.SpanID
		if len(seg.Args) > 0 {
			argSpan = st.spans.intern(seg.Span)
		}
		out = append(out, api.NewAstPathSegment(
			st.ident(seg.Name, seg.Span),
			api.NewGenericArgs(args, argSpan),
		))
	}
	return out
}

func pathSpan(segs []hir.PathSegment) source.Span {
	if len(segs) == 0 {
		return source.Span{}
	}
	sp := segs[0].Span
	return sp.Cover(segs[len(segs)-1].Span)
}

func (st *storage) convertPath(segs []hir.PathSegment) api.AstPath {
	return api.NewAstPath(st.convertSegments(segs), st.spans.intern(pathSpan(segs)))
}

// qpath builds the qualified path of a use/trait/impl position where
// only item-level resolution applies.
func (st *storage) qpath(segs []hir.PathSegment) api.AstQPath {
	return api.NewAstQPath(nil, nil, st.convertPath(segs), st.resolveByName(segs))
}

// exprQPath builds the qualified path of a path expression, using the
// resolution the type checker recorded for it.
func (st *storage) exprQPath(id hir.ExprID, segs []hir.PathSegment) api.AstQPath {
	target := st.resTarget(st.sema.Resolution(st.semaBody(), id))
	if target.Kind() == api.PathTargetUnresolved {
		target = st.resolveByName(segs)
	}
	return api.NewAstQPath(nil, nil, st.convertPath(segs), target)
}

// resTarget translates a checker resolution into a path target.
func (st *storage) resTarget(res sema.Res) api.AstPathTarget {
	switch res.Kind {
	case sema.ResItem:
		return api.NewItemTarget(packItemID(res.Item))
	case sema.ResVariant:
		return api.NewVariantTarget(packVariantID(res.Variant))
	case sema.ResLocal:
		return api.NewVarTarget(packVarID(res.Local))
	case sema.ResGeneric:
		return api.NewGenericTarget(packGenericID(res.GenericOwner, res.GenericIndex))
	case sema.ResSelfTy:
		if owner, ok := st.enclosingImpl(st.scopeItem()); ok {
			return api.NewSelfTyTarget(packItemID(owner))
		}
		return api.NewUnresolvedTarget()
	default:
		return api.NewUnresolvedTarget()
	}
}

// resolveByName resolves a written path from the crate root. Struct
// expressions and patterns carry no per-node resolution, so their paths
// go through the by-name resolver; relative paths that only resolve
// lexically stay unresolved.
func (st *storage) resolveByName(segs []hir.PathSegment) api.AstPathTarget {
	if len(segs) == 0 {
		return api.NewUnresolvedTarget()
	}
	names := make([]string, 0, len(segs))
	for _, seg := range segs {
		name := st.crate.Interner.MustLookup(seg.Name)
		if name == "" {
			return api.NewUnresolvedTarget()
		}
		names = append(names, name)
	}
	matches := st.sema.ResolveTypePath(strings.Join(names, "::"))
	if len(matches) == 1 {
		return api.NewItemTarget(packItemID(matches[0]))
	}
	return api.NewUnresolvedTarget()
}

// langItemPaths maps the shorthand names lint crates commonly pass to
// resolve_ty_ids onto the canonical paths the host sees after lowering.
var langItemPaths = map[string]string{
	"String": "std::string::String",
	"Vec":    "std::vec::Vec",
	"Option": "std::option::Option",
	"Result": "std::result::Result",
	"Box":    "std::boxed::Box",
	"Cow":    "std::borrow::Cow",
}

// resolveTyIDs backs the resolve_ty_ids operation: a ::-separated path
// string in, the matching type definitions out.
func (st *storage) resolveTyIDs(path string) []api.TyDefID {
	matches := st.sema.ResolveTypePath(path)
	if len(matches) == 0 {
		if canonical, ok := langItemPaths[path]; ok {
			matches = st.sema.ResolveTypePath(canonical)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	out := make([]api.TyDefID, 0, len(matches))
	for _, item := range matches {
		out = append(out, packTyDefID(item))
	}
	return out
}

// scopeItem is the item Self-resolution and attribute anchoring apply
// to: the owner of the innermost body being converted, or the item
// whose declaration is in flight.
func (st *storage) scopeItem() hir.ItemID {
	if id := st.currentBody(); id.IsValid() {
		if body := st.crate.Bodies.Get(id); body != nil && body.Owner.IsValid() {
			return body.Owner
		}
	}
	return st.curItem
}

// semaBody is the body the type checker filed the current results
// under. Closure bodies are checked inline by the enclosing item
// body's checker, so the innermost stack entry with recorded results
// wins.
func (st *storage) semaBody() hir.BodyID {
	for i := len(st.bodyStack) - 1; i >= 0; i-- {
		if _, ok := st.sema.BodyResults[st.bodyStack[i]]; ok {
			return st.bodyStack[i]
		}
	}
	// A closure body converted on its own has no results entry: the
	// checker filed them under the owning item's root body.
	if root := st.itemRootBody(st.scopeItem()); root.IsValid() {
		if _, ok := st.sema.BodyResults[root]; ok {
			return root
		}
	}
	return hir.NoBodyID
}
