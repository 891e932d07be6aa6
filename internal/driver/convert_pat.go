package driver

import (
	"marker/api"
	"marker/internal/hir"
	"marker/internal/source"
)

func (st *storage) convertStmt(id hir.StmtID) api.StmtKind {
	if cached, ok := st.stmts[id]; ok {
		return cached
	}
	stmt := st.crate.Stmts.Get(id)
	if stmt == nil {
		return nil
	}
	if _, ok := st.stmtOwner[id]; !ok {
		st.stmtOwner[id] = st.scopeItem()
	}
	data := api.StmtData{ID: packStmtID(id), Span: st.spans.intern(stmt.Span)}

	var out api.StmtKind
	switch stmt.Kind {
	case hir.StmtItem:
		item, _ := st.crate.Stmts.Item(id)
		out = api.NewItemStmt(data, st.convertItem(item.Item))
	case hir.StmtLet:
		let, _ := st.crate.Stmts.Let(id)
		out = api.NewLetStmt(data,
			st.convertPat(let.Pat),
			st.convertTy(let.Ty),
			st.convertExprOpt(let.Init),
			st.convertExprOpt(let.Else))
	default:
		expr, _ := st.crate.Stmts.Expr(id)
		out = api.NewExprStmt(data, st.convertExpr(expr.Expr))
	}

	st.stmts[id] = out
	return out
}

// convertPat maps a host pattern onto an API pattern node. Patterns
// have no IDs of their own in the stable form; bindings carry a VarID
// derived from the host pattern instead.
func (st *storage) convertPat(id hir.PatID) api.PatKind {
	if !id.IsValid() {
		return nil
	}
	pat := st.crate.Pats.Get(id)
	if pat == nil {
		return nil
	}
	data := api.PatData{Span: st.spans.intern(pat.Span)}
	switch pat.Kind {
	case hir.PatIdent:
		ident, _ := st.crate.Pats.Ident(id)
		var sub api.PatKind
		if ident.Sub.IsValid() {
			sub = st.convertPat(ident.Sub)
		}
		return api.NewIdentPat(data, st.ident(ident.Name, pat.Span), packVarID(id), mutability(ident.Mut), ident.Ref, sub)
	case hir.PatWildcard:
		return api.NewWildcardPat(data)
	case hir.PatRest:
		return api.NewRestPat(data)
	case hir.PatRef:
		ref, _ := st.crate.Pats.Ref(id)
		return api.NewRefPat(data, mutability(ref.Mut), st.convertPat(ref.Inner))
	case hir.PatStruct:
		str, _ := st.crate.Pats.Struct(id)
		fields := make([]api.StructPatField, 0, len(str.Fields))
		for _, f := range str.Fields {
			fields = append(fields, api.NewStructPatField(
				st.ident(f.Name, f.Span),
				st.convertPat(f.Pat),
				st.spans.intern(f.Span),
			))
		}
		return api.NewStructPat(data, st.qpath(str.Path), fields, str.HasRest)
	case hir.PatTupleStruct:
		// tuple-struct patterns surface as struct patterns with
		// index-named fields, mirroring tuple constructors
		ts, _ := st.crate.Pats.TupleStruct(id)
		fields := make([]api.StructPatField, 0, len(ts.Elems))
		hasRest := false
		index := uint32(0)
		for _, elem := range ts.Elems {
			if p := st.crate.Pats.Get(elem); p != nil && p.Kind == hir.PatRest {
				hasRest = true
				continue
			}
			span := source.Span{}
			if p := st.crate.Pats.Get(elem); p != nil {
				span = p.Span
			}
			fields = append(fields, api.NewStructPatField(
				st.indexIdent(index, span),
				st.convertPat(elem),
				st.spans.intern(span),
			))
			index++
		}
		return api.NewStructPat(data, st.qpath(ts.Path), fields, hasRest)
	case hir.PatTuple:
		tup, _ := st.crate.Pats.Tuple(id)
		return api.NewTuplePat(data, st.convertPats(tup.Elems))
	case hir.PatSlice:
		slice, _ := st.crate.Pats.Slice(id)
		return api.NewSlicePat(data, st.convertPats(slice.Elems))
	case hir.PatOr:
		or, _ := st.crate.Pats.Or(id)
		return api.NewOrPat(data, st.convertPats(or.Elems))
	case hir.PatLit:
		lit, _ := st.crate.Pats.Lit(id)
		return api.NewLitPat(data, st.convertExpr(lit.Expr))
	case hir.PatPath:
		path, _ := st.crate.Pats.Path(id)
		return api.NewPathPat(data, st.qpath(path.Path))
	case hir.PatRange:
		rng, _ := st.crate.Pats.Range(id)
		return api.NewRangePat(data, st.convertExprOpt(rng.Lo), st.convertExprOpt(rng.Hi), rng.Inclusive)
	default:
		return api.NewUnstablePat(data)
	}
}

func (st *storage) convertPats(ids []hir.PatID) []api.PatKind {
	out := make([]api.PatKind, 0, len(ids))
	for _, id := range ids {
		if p := st.convertPat(id); p != nil {
			out = append(out, p)
		}
	}
	return out
}
