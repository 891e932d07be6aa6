package driver

import (
	"marker/api"
	"marker/internal/hir"
	"marker/internal/source"
)

// convertBody materializes a body on demand. Async function bodies
// collapse to a single unstable expression; the rest convert for real.
func (st *storage) convertBody(id hir.BodyID) *api.Body {
	if cached, ok := st.bodies[id]; ok {
		return cached
	}
	body := st.crate.Bodies.Get(id)
	if body == nil {
		return nil
	}
	if !st.pushBody(id) {
		return nil
	}
	defer st.popBody()

	root := body.Value
	var expr api.ExprKind
	if st.isAsyncBody(body.Owner, id) {
		expr = api.NewUnstableExpr(api.ExprData{
			ID:   packExprID(root),
			Span: st.spans.intern(body.Span),
		})
		st.noteExprOwner(root, body.Owner)
		st.warnUnstableBody()
	} else {
		expr = st.convertExpr(root)
	}
	out := api.NewBody(packBodyID(id), packItemID(body.Owner), expr)
	st.bodies[id] = out
	return out
}

func (st *storage) isAsyncBody(owner hir.ItemID, id hir.BodyID) bool {
	fn, ok := st.crate.Items.Fn(owner)
	return ok && fn.IsAsync && fn.Body == id
}

func (st *storage) warnUnstableBody() {
	if st.onUnstableBody != nil {
		st.onUnstableBody()
	}
}

func (st *storage) noteExprOwner(id hir.ExprID, owner hir.ItemID) {
	if _, ok := st.exprOwner[id]; !ok {
		st.exprOwner[id] = owner
	}
}

func (st *storage) convertExprs(ids []hir.ExprID) []api.ExprKind {
	out := make([]api.ExprKind, 0, len(ids))
	for _, id := range ids {
		out = append(out, st.convertExpr(id))
	}
	return out
}

// convertExprOpt maps NoExprID to nil for ok-form fields.
func (st *storage) convertExprOpt(id hir.ExprID) api.ExprKind {
	if !id.IsValid() {
		return nil
	}
	return st.convertExpr(id)
}

func (st *storage) convertExpr(id hir.ExprID) api.ExprKind {
	if cached, ok := st.exprs[id]; ok {
		return cached
	}
	expr := st.crate.Exprs.Get(id)
	if expr == nil {
		return nil
	}
	st.noteExprOwner(id, st.scopeItem())
	data := api.ExprData{ID: packExprID(id), Span: st.spans.intern(expr.Span)}

	var out api.ExprKind
	switch expr.Kind {
	case hir.ExprLit:
		lit, _ := st.crate.Exprs.Lit(id)
		out = st.convertLit(data, lit)
	case hir.ExprPath:
		path, _ := st.crate.Exprs.Path(id)
		out = api.NewPathExpr(data, st.exprQPath(id, path.Segments))
	case hir.ExprBlock:
		block, _ := st.crate.Exprs.Block(id)
		stmts := make([]api.StmtKind, 0, len(block.Stmts))
		for _, sid := range block.Stmts {
			if stmt := st.convertStmt(sid); stmt != nil {
				stmts = append(stmts, stmt)
			}
		}
		out = api.NewBlockExpr(data, stmts, st.convertExprOpt(block.Tail), st.labelIdent(block.Label, expr.Span), block.Unsafe)
	case hir.ExprClosure:
		closure, _ := st.crate.Exprs.Closure(id)
		params := make([]api.Parameter, 0, len(closure.Params))
		for _, p := range closure.Params {
			span := api.SpanID(0)
			if pat := st.crate.Pats.Get(p.Pat); pat != nil {
				span = st.spans.intern(pat.Span)
			}
			params = append(params, api.NewParameter(st.convertPat(p.Pat), st.convertTy(p.Ty), span))
		}
		out = api.NewClosureExpr(data, params, packBodyID(closure.Body))
	case hir.ExprUnary:
		unary, _ := st.crate.Exprs.Unary(id)
		out = api.NewUnaryOpExpr(data, unaryOpKind(unary.Op), st.convertExpr(unary.Operand))
	case hir.ExprRef:
		ref, _ := st.crate.Exprs.Ref(id)
		out = api.NewRefExpr(data, mutability(ref.Mut), st.convertExpr(ref.Operand))
	case hir.ExprBinary:
		bin, _ := st.crate.Exprs.Binary(id)
		out = api.NewBinaryOpExpr(data, binaryOpKind(bin.Op), st.convertExpr(bin.Left), st.convertExpr(bin.Right))
	case hir.ExprTry:
		try, _ := st.crate.Exprs.Try(id)
		out = api.NewQuestionMarkExpr(data, st.convertExpr(try.Operand))
	case hir.ExprAssign:
		assign, _ := st.crate.Exprs.Assign(id)
		out = st.convertAssign(data, assign)
	case hir.ExprCast:
		cast, _ := st.crate.Exprs.Cast(id)
		out = api.NewAsExpr(data, st.convertExpr(cast.Operand), st.convertTy(cast.Ty))
	case hir.ExprCall:
		call, _ := st.crate.Exprs.Call(id)
		out = api.NewCallExpr(data, st.convertExpr(call.Callee), st.convertExprs(call.Args))
	case hir.ExprMethod:
		method, _ := st.crate.Exprs.Method(id)
		var args []api.GenericArgKind
		for _, arg := range method.Generics {
			args = append(args, api.NewTyArg(st.convertTy(arg)))
		}
		var argSpan api.SpanID
		if len(method.Generics) > 0 {
			argSpan = st.spans.intern(method.NameSpan)
		}
		out = api.NewMethodExpr(data,
			st.convertExpr(method.Receiver),
			st.ident(method.Method, method.NameSpan),
			api.NewGenericArgs(args, argSpan),
			st.convertExprs(method.Args))
	case hir.ExprArray:
		arr, _ := st.crate.Exprs.Array(id)
		if arr.Repeat.IsValid() {
			out = api.NewArrayExpr(data, []api.ExprKind{st.convertExpr(arr.Repeat)}, st.convertExpr(arr.Len))
		} else {
			out = api.NewArrayExpr(data, st.convertExprs(arr.Elems), nil)
		}
	case hir.ExprTuple:
		tup, _ := st.crate.Exprs.Tuple(id)
		out = api.NewTupleExpr(data, st.convertExprs(tup.Elems))
	case hir.ExprStruct:
		str, _ := st.crate.Exprs.Struct(id)
		fields := make([]api.CtorField, 0, len(str.Fields))
		for _, f := range str.Fields {
			fields = append(fields, api.NewCtorField(
				st.ident(f.Name, f.Span),
				st.convertExpr(f.Expr),
				st.spans.intern(f.Span),
			))
		}
		path := api.NewAstQPath(nil, nil, st.convertPath(str.Path), st.resolveByName(str.Path))
		out = api.NewCtorExpr(data, path, fields, st.convertExprOpt(str.Base))
	case hir.ExprRange:
		rng, _ := st.crate.Exprs.Range(id)
		out = api.NewRangeExpr(data, st.convertExprOpt(rng.Lo), st.convertExprOpt(rng.Hi), rng.Inclusive)
	case hir.ExprIndex:
		idx, _ := st.crate.Exprs.Index(id)
		out = api.NewIndexExpr(data, st.convertExpr(idx.Base), st.convertExpr(idx.Index))
	case hir.ExprField:
		field, _ := st.crate.Exprs.Field(id)
		ident := st.ident(field.Name, field.NameSpan)
		if field.IsTuple {
			ident = st.indexIdent(field.Index, field.NameSpan)
		}
		out = api.NewFieldExpr(data, st.convertExpr(field.Base), ident)
	case hir.ExprIf:
		ifd, _ := st.crate.Exprs.If(id)
		out = api.NewIfExpr(data, st.convertExpr(ifd.Cond), st.convertExpr(ifd.Then), st.convertExprOpt(ifd.Else))
	case hir.ExprLet:
		let, _ := st.crate.Exprs.Let(id)
		out = api.NewLetExpr(data, st.convertPat(let.Pat), st.convertExpr(let.Init))
	case hir.ExprMatch:
		match, _ := st.crate.Exprs.Match(id)
		arms := make([]api.MatchArm, 0, len(match.Arms))
		for _, arm := range match.Arms {
			arms = append(arms, api.NewMatchArm(
				st.convertPat(arm.Pat),
				st.convertExprOpt(arm.Guard),
				st.convertExpr(arm.Body),
				st.spans.intern(arm.Span),
			))
		}
		out = api.NewMatchExpr(data, st.convertExpr(match.Scrutinee), arms)
	case hir.ExprBreak:
		brk, _ := st.crate.Exprs.Break(id)
		out = api.NewBreakExpr(data, st.labelIdent(brk.Label, expr.Span), st.convertExprOpt(brk.Value))
	case hir.ExprReturn:
		ret, _ := st.crate.Exprs.Return(id)
		out = api.NewReturnExpr(data, st.convertExprOpt(ret.Value))
	case hir.ExprContinue:
		cont, _ := st.crate.Exprs.Continue(id)
		out = api.NewContinueExpr(data, st.labelIdent(cont.Label, expr.Span))
	case hir.ExprFor:
		ford, _ := st.crate.Exprs.For(id)
		out = api.NewForExpr(data,
			st.labelIdent(ford.Label, expr.Span),
			st.convertPat(ford.Pat),
			st.convertExpr(ford.Iter),
			st.convertExpr(ford.Body))
	case hir.ExprLoop:
		loop, _ := st.crate.Exprs.Loop(id)
		out = api.NewLoopExpr(data, st.labelIdent(loop.Label, expr.Span), st.convertExpr(loop.Body))
	case hir.ExprWhile:
		while, _ := st.crate.Exprs.While(id)
		out = api.NewWhileExpr(data,
			st.labelIdent(while.Label, expr.Span),
			st.convertExpr(while.Cond),
			st.convertExpr(while.Body))
	default:
		// await and async blocks have no stable form yet
		out = api.NewUnstableExpr(data)
		st.warnUnstableBody()
	}

	st.exprs[id] = out
	return out
}

// convertAssign rewrites the host's place expression into a place
// pattern so destructuring and plain assignments share one shape.
func (st *storage) convertAssign(data api.ExprData, assign *hir.ExprAssignData) api.ExprKind {
	place := st.convertExpr(assign.Place)
	var span api.SpanID
	if p := st.crate.Exprs.Get(assign.Place); p != nil {
		span = st.spans.intern(p.Span)
	}
	assignee := st.placePat(assign.Place, place, span)
	var op api.BinaryOpKind
	hasOp := assign.Op != hir.BinNone
	if hasOp {
		op = binaryOpKind(assign.Op)
	}
	return api.NewAssignExpr(data, assignee, st.convertExpr(assign.Value), op, hasOp)
}

// placePat turns an assignment target into a pattern: tuples
// destructure element-wise, everything else is an opaque place.
func (st *storage) placePat(id hir.ExprID, place api.ExprKind, span api.SpanID) api.PatKind {
	if tup, ok := st.crate.Exprs.Tuple(id); ok {
		elems := make([]api.PatKind, 0, len(tup.Elems))
		for _, e := range tup.Elems {
			var elemSpan api.SpanID
			if p := st.crate.Exprs.Get(e); p != nil {
				elemSpan = st.spans.intern(p.Span)
			}
			elems = append(elems, st.placePat(e, st.convertExpr(e), elemSpan))
		}
		return api.NewTuplePat(api.PatData{Span: span}, elems)
	}
	return api.NewPlacePat(api.PatData{Span: span}, place)
}

// labelIdent builds the `'label` ident of loop and break expressions.
// The host does not track label spans, so the owning expression's span
// stands in.
func (st *storage) labelIdent(label source.SymbolID, span source.Span) *api.Ident {
	if label == source.NoSymbolID {
		return nil
	}
	ident := st.ident(label, span)
	return &ident
}

func unaryOpKind(op hir.UnaryOp) api.UnaryOpKind {
	switch op {
	case hir.UnNot:
		return api.UnaryNot
	case hir.UnDeref:
		return api.UnaryDeref
	default:
		return api.UnaryNeg
	}
}

func binaryOpKind(op hir.BinaryOp) api.BinaryOpKind {
	switch op {
	case hir.BinAdd:
		return api.BinAdd
	case hir.BinSub:
		return api.BinSub
	case hir.BinMul:
		return api.BinMul
	case hir.BinDiv:
		return api.BinDiv
	case hir.BinRem:
		return api.BinRem
	case hir.BinAnd:
		return api.BinAnd
	case hir.BinOr:
		return api.BinOr
	case hir.BinBitAnd:
		return api.BinBitAnd
	case hir.BinBitOr:
		return api.BinBitOr
	case hir.BinBitXor:
		return api.BinBitXor
	case hir.BinShl:
		return api.BinShl
	case hir.BinShr:
		return api.BinShr
	case hir.BinEq:
		return api.BinEq
	case hir.BinNe:
		return api.BinNe
	case hir.BinLt:
		return api.BinLt
	case hir.BinLe:
		return api.BinLe
	case hir.BinGt:
		return api.BinGt
	default:
		return api.BinGe
	}
}
