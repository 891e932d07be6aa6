package sema

import (
	"strings"

	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/source"
)

// checkCrate computes item types, then type-checks every body in
// declaration order.
func (a *Analysis) checkCrate() {
	a.Crate.WalkItems(func(id hir.ItemID) bool {
		a.declareItemTy(id)
		return true
	})
	a.Crate.WalkItems(func(id hir.ItemID) bool {
		a.checkItemBodies(id)
		return true
	})
}

// declareItemTy records the declared type of value items and the field
// types of ADTs before any body is inspected.
func (a *Analysis) declareItemTy(id hir.ItemID) {
	item := a.Crate.Items.Get(id)
	mod := a.moduleOf(id)
	switch item.Kind {
	case hir.ItemFn:
		data, _ := a.Crate.Items.Fn(id)
		env := a.fnEnv(id, data)
		params := make([]TyID, 0, len(data.Params))
		for _, p := range data.Params {
			params = append(params, a.paramTy(mod, env, p.Ty))
		}
		ret := a.Types.Builtins().Unit
		if data.Ret.IsValid() {
			ret = a.lowerType(mod, env, data.Ret)
		}
		a.itemTy[id] = a.Types.RegisterFnDef(id, params, ret)
	case hir.ItemStatic:
		data, _ := a.Crate.Items.Static(id)
		a.itemTy[id] = a.lowerType(mod, nil, data.Ty)
	case hir.ItemConst:
		data, _ := a.Crate.Items.Const(id)
		a.itemTy[id] = a.lowerType(mod, nil, data.Ty)
	case hir.ItemStruct:
		data, _ := a.Crate.Items.Struct(id)
		env := a.adtEnv(id, data.Generics)
		a.itemTy[id] = a.selfAdtTy(id, data.Generics)
		a.declareFields(mod, env, data.Fields)
	case hir.ItemEnum:
		data, _ := a.Crate.Items.Enum(id)
		env := a.adtEnv(id, data.Generics)
		a.itemTy[id] = a.selfAdtTy(id, data.Generics)
		for _, vid := range data.Variants {
			if v := a.Crate.Items.Variant(vid); v != nil {
				a.declareFields(mod, env, v.Fields)
			}
		}
	case hir.ItemUnion:
		data, _ := a.Crate.Items.Union(id)
		env := a.adtEnv(id, data.Generics)
		a.itemTy[id] = a.selfAdtTy(id, data.Generics)
		a.declareFields(mod, env, data.Fields)
	case hir.ItemTyAlias:
		a.itemTy[id] = a.itemAsTy(mod, nil, id, nil)
	}
}

func (a *Analysis) declareFields(mod hir.ItemID, env *genericEnv, fields []hir.FieldID) {
	for _, fid := range fields {
		f := a.Crate.Items.Field(fid)
		if f == nil {
			continue
		}
		a.fieldTy[fid] = a.lowerType(mod, env, f.Ty)
	}
}

// selfAdtTy is the ADT applied to its own parameters, the type `Self`
// names inside the definition.
func (a *Analysis) selfAdtTy(id hir.ItemID, generics []hir.GenericParam) TyID {
	var args []TyID
	for i, gp := range generics {
		if gp.Kind == hir.GenericType {
			args = append(args, a.Types.RegisterParam(id, uint32(i), gp.Name))
		}
	}
	return a.Types.RegisterAdt(id, args)
}

// fnEnv builds the generic environment of a fn, chaining the enclosing
// impl or trait scope so Self and outer parameters stay visible.
func (a *Analysis) fnEnv(id hir.ItemID, data *hir.FnData) *genericEnv {
	var parent *genericEnv
	owner := a.Crate.Items.Get(id).Owner
	if owner.IsValid() {
		ownerItem := a.Crate.Items.Get(owner)
		switch ownerItem.Kind {
		case hir.ItemImpl:
			implData, _ := a.Crate.Items.Impl(owner)
			parent = a.envFor(owner, implData.Generics, nil)
			parent.selfTy = a.lowerType(a.moduleOf(owner), parent, implData.SelfTy)
		case hir.ItemTrait:
			traitData, _ := a.Crate.Items.Trait(owner)
			parent = a.envFor(owner, traitData.Generics, nil)
			parent.selfTy = a.Types.RegisterTraitObj([]hir.ItemID{owner})
		}
	}
	return a.envFor(id, data.Generics, parent)
}

func (a *Analysis) adtEnv(id hir.ItemID, generics []hir.GenericParam) *genericEnv {
	return a.envFor(id, generics, nil)
}

func (a *Analysis) paramTy(mod hir.ItemID, env *genericEnv, ty hir.TypeID) TyID {
	if !ty.IsValid() {
		return a.Types.Builtins().Unstable
	}
	return a.lowerType(mod, env, ty)
}

// checkItemBodies type-checks the bodies owned by one item.
func (a *Analysis) checkItemBodies(id hir.ItemID) {
	item := a.Crate.Items.Get(id)
	mod := a.moduleOf(id)
	switch item.Kind {
	case hir.ItemFn:
		data, _ := a.Crate.Items.Fn(id)
		if !data.Body.IsValid() {
			return
		}
		env := a.fnEnv(id, data)
		c := a.newChecker(data.Body, mod, env)
		c.pushScope()
		sig, _ := a.Types.FnSig(a.itemTy[id])
		for i, p := range data.Params {
			ty := a.Types.Builtins().Unstable
			if sig != nil && i < len(sig.Params) {
				ty = sig.Params[i]
			}
			c.bindPattern(p.Pat, ty)
		}
		if body := a.Crate.Bodies.Get(data.Body); body != nil {
			c.inferExpr(body.Value)
		}
		c.popScope()
	case hir.ItemStatic:
		data, _ := a.Crate.Items.Static(id)
		a.checkInitBody(mod, data.Body)
	case hir.ItemConst:
		data, _ := a.Crate.Items.Const(id)
		a.checkInitBody(mod, data.Body)
	}
}

func (a *Analysis) checkInitBody(mod hir.ItemID, bodyID hir.BodyID) {
	if !bodyID.IsValid() {
		return
	}
	body := a.Crate.Bodies.Get(bodyID)
	if body == nil {
		return
	}
	c := a.newChecker(bodyID, mod, nil)
	c.pushScope()
	c.inferExpr(body.Value)
	c.popScope()
}

// checker walks one body bottom-up, memoizing expression types.
type checker struct {
	a      *Analysis
	body   hir.BodyID
	res    *Results
	mod    hir.ItemID
	env    *genericEnv
	locals []map[source.SymbolID]hir.PatID
}

func (a *Analysis) newChecker(body hir.BodyID, mod hir.ItemID, env *genericEnv) *checker {
	res := newResults()
	a.BodyResults[body] = res
	return &checker{a: a, body: body, res: res, mod: mod, env: env}
}

func (c *checker) pushScope() {
	c.locals = append(c.locals, make(map[source.SymbolID]hir.PatID))
}

func (c *checker) popScope() {
	c.locals = c.locals[:len(c.locals)-1]
}

func (c *checker) bindLocal(name source.SymbolID, pat hir.PatID) {
	c.locals[len(c.locals)-1][name] = pat
}

func (c *checker) lookupLocal(name source.SymbolID) (hir.PatID, bool) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if pat, ok := c.locals[i][name]; ok {
			return pat, true
		}
	}
	return hir.NoPatID, false
}

func (c *checker) b() Builtins {
	return c.a.Types.Builtins()
}

// bindPattern assigns ty to the pattern and brings its bindings into the
// innermost scope.
func (c *checker) bindPattern(pat hir.PatID, ty TyID) {
	if !pat.IsValid() {
		return
	}
	c.res.PatTys[pat] = ty
	p := c.a.Crate.Pats.Get(pat)
	if p == nil {
		return
	}
	switch p.Kind {
	case hir.PatIdent:
		data, _ := c.a.Crate.Pats.Ident(pat)
		c.bindLocal(data.Name, pat)
		if data.Sub.IsValid() {
			c.bindPattern(data.Sub, ty)
		}
	case hir.PatRef:
		data, _ := c.a.Crate.Pats.Ref(pat)
		inner := c.b().Unstable
		if t, ok := c.a.Types.Lookup(ty); ok && t.Kind == TyRef {
			inner = t.Elem
		}
		c.bindPattern(data.Inner, inner)
	case hir.PatTuple:
		data, _ := c.a.Crate.Pats.Tuple(pat)
		info, _ := c.a.Types.TupleInfo(ty)
		for i, sub := range data.Elems {
			elemTy := c.b().Unstable
			if info != nil && i < len(info.Elems) {
				elemTy = info.Elems[i]
			}
			c.bindPattern(sub, elemTy)
		}
	case hir.PatSlice:
		data, _ := c.a.Crate.Pats.Slice(pat)
		elemTy := c.b().Unstable
		if t, ok := c.a.Types.Lookup(ty); ok && (t.Kind == TyArray || t.Kind == TySlice) {
			elemTy = t.Elem
		}
		for _, sub := range data.Elems {
			c.bindPattern(sub, elemTy)
		}
	case hir.PatStruct:
		data, _ := c.a.Crate.Pats.Struct(pat)
		adt, _ := c.a.Types.AdtInfo(c.a.Types.Peel(ty))
		for _, f := range data.Fields {
			fieldTy := c.b().Unstable
			if adt != nil {
				if fid := c.a.fieldByName(adt.Item, f.Name); fid != hir.NoFieldID {
					fieldTy = c.a.fieldTy[fid]
				}
			}
			c.bindPattern(f.Pat, fieldTy)
		}
	case hir.PatTupleStruct:
		data, _ := c.a.Crate.Pats.TupleStruct(pat)
		for _, sub := range data.Elems {
			c.bindPattern(sub, c.b().Unstable)
		}
	case hir.PatOr:
		data, _ := c.a.Crate.Pats.Or(pat)
		for _, alt := range data.Elems {
			c.bindPattern(alt, ty)
		}
	}
}

// inferExpr computes and memoizes the semantic type of one expression.
func (c *checker) inferExpr(id hir.ExprID) TyID {
	if !id.IsValid() {
		return c.b().Unit
	}
	if ty, ok := c.res.ExprTys[id]; ok {
		return ty
	}
	// guard cycles through the memo before descending
	c.res.ExprTys[id] = c.b().Unstable
	ty := c.inferExprUncached(id)
	c.res.ExprTys[id] = ty
	return ty
}

func (c *checker) inferExprUncached(id hir.ExprID) TyID {
	exprs := c.a.Crate.Exprs
	expr := exprs.Get(id)
	if expr == nil {
		return c.b().Error
	}
	switch expr.Kind {
	case hir.ExprLit:
		return c.litTy(id)
	case hir.ExprPath:
		return c.pathExprTy(id)
	case hir.ExprBlock:
		return c.blockTy(id)
	case hir.ExprClosure:
		return c.closureTy(id)
	case hir.ExprUnary:
		return c.unaryTy(id)
	case hir.ExprRef:
		data, _ := exprs.Ref(id)
		return c.a.Types.Intern(MakeRef(c.inferExpr(data.Operand), data.Mut))
	case hir.ExprBinary:
		return c.binaryTy(id)
	case hir.ExprTry:
		data, _ := exprs.Try(id)
		c.inferExpr(data.Operand)
		return c.b().Unstable
	case hir.ExprAssign:
		data, _ := exprs.Assign(id)
		c.inferExpr(data.Place)
		c.inferExpr(data.Value)
		return c.b().Unit
	case hir.ExprCast:
		data, _ := exprs.Cast(id)
		c.inferExpr(data.Operand)
		return c.a.lowerType(c.mod, c.env, data.Ty)
	case hir.ExprCall:
		return c.callTy(id)
	case hir.ExprMethod:
		return c.methodTy(id)
	case hir.ExprArray:
		return c.arrayTy(id)
	case hir.ExprTuple:
		data, _ := exprs.Tuple(id)
		elems := make([]TyID, 0, len(data.Elems))
		for _, e := range data.Elems {
			elems = append(elems, c.inferExpr(e))
		}
		return c.a.Types.RegisterTuple(elems)
	case hir.ExprStruct:
		return c.structLitTy(id)
	case hir.ExprRange:
		data, _ := exprs.Range(id)
		c.inferExpr(data.Lo)
		c.inferExpr(data.Hi)
		return c.b().Unstable
	case hir.ExprIndex:
		return c.indexTy(id)
	case hir.ExprField:
		return c.fieldTyOf(id)
	case hir.ExprIf:
		return c.ifTy(id)
	case hir.ExprLet:
		data, _ := exprs.Let(id)
		c.bindPattern(data.Pat, c.inferExpr(data.Init))
		return c.b().Bool
	case hir.ExprMatch:
		return c.matchTy(id)
	case hir.ExprBreak:
		data, _ := exprs.Break(id)
		c.inferExpr(data.Value)
		return c.b().Never
	case hir.ExprReturn:
		data, _ := exprs.Return(id)
		c.inferExpr(data.Value)
		return c.b().Never
	case hir.ExprContinue:
		return c.b().Never
	case hir.ExprFor:
		data, _ := exprs.For(id)
		iterTy := c.inferExpr(data.Iter)
		c.pushScope()
		c.bindPattern(data.Pat, c.iterElemTy(iterTy))
		c.inferExpr(data.Body)
		c.popScope()
		return c.b().Unit
	case hir.ExprLoop:
		data, _ := exprs.Loop(id)
		c.inferExpr(data.Body)
		return c.b().Never
	case hir.ExprWhile:
		data, _ := exprs.While(id)
		c.checkCond(data.Cond)
		c.inferExpr(data.Body)
		return c.b().Unit
	case hir.ExprAwait:
		data, _ := exprs.Await(id)
		c.inferExpr(data.Operand)
		return c.b().Unstable
	case hir.ExprAsync:
		data, _ := exprs.Async(id)
		c.inferExpr(data.Body)
		return c.b().Unstable
	default:
		return c.b().Error
	}
}

func (c *checker) litTy(id hir.ExprID) TyID {
	data, _ := c.a.Crate.Exprs.Lit(id)
	switch data.Kind {
	case hir.LitBool:
		return c.b().Bool
	case hir.LitChar:
		return c.b().Char
	case hir.LitStr:
		return c.a.Types.Intern(MakeRef(c.b().Str, false))
	case hir.LitInt:
		return c.numericLitTy(data.Text, c.b().I32)
	case hir.LitFloat:
		return c.numericLitTy(data.Text, c.b().F64)
	default:
		return c.b().Error
	}
}

// numericLitTy honors an explicit type suffix, falling back to the
// context-free default.
func (c *checker) numericLitTy(text source.SymbolID, fallback TyID) TyID {
	raw := c.a.Crate.Interner.MustLookup(text)
	for _, suffix := range numericSuffixes {
		if strings.HasSuffix(raw, suffix) {
			return c.a.primitiveTy(suffix)
		}
	}
	return fallback
}

var numericSuffixes = []string{
	"i8", "i16", "i32", "i64", "i128", "isize",
	"u8", "u16", "u32", "u64", "u128", "usize",
	"f32", "f64",
}

func (c *checker) pathExprTy(id hir.ExprID) TyID {
	data, _ := c.a.Crate.Exprs.Path(id)
	segs := data.Segments
	if len(segs) == 0 {
		return c.b().Error
	}

	if len(segs) == 1 {
		if pat, ok := c.lookupLocal(segs[0].Name); ok {
			c.res.Resolutions[id] = Res{Kind: ResLocal, Local: pat}
			return c.res.PatTys[pat]
		}
		if c.a.segName(segs[0]) == "Self" && c.env != nil {
			if self := c.env.self(); self != NoTyID {
				c.res.Resolutions[id] = Res{Kind: ResSelfTy}
				return self
			}
		}
		if c.a.segName(segs[0]) == "self" && c.env != nil {
			if self := c.env.self(); self != NoTyID {
				c.res.Resolutions[id] = Res{Kind: ResSelfTy}
				return self
			}
		}
		if c.env != nil {
			if owner, idx, ok := c.env.lookup(segs[0].Name); ok {
				c.res.Resolutions[id] = Res{Kind: ResGeneric, GenericOwner: owner, GenericIndex: idx}
				return c.a.Types.RegisterParam(owner, idx, segs[0].Name)
			}
		}
	}

	// Self::assoc resolves through the impl self type
	if len(segs) > 1 && c.a.segName(segs[0]) == "Self" && c.env != nil {
		if adt, ok := c.a.Types.AdtInfo(c.a.Types.Peel(c.env.self())); ok {
			rest := segs[1:]
			if assoc := c.a.assocItem(adt.Item, rest[0].Name); assoc.IsValid() && len(rest) == 1 {
				c.res.Resolutions[id] = Res{Kind: ResItem, Item: assoc}
				return c.a.ItemTy(assoc)
			}
		}
	}

	res := c.a.resolvePathIn(c.mod, segs, nsValue)
	if res.Kind == ResErr {
		res = c.a.resolvePathIn(c.mod, segs, nsType)
	}
	c.res.Resolutions[id] = res
	switch res.Kind {
	case ResItem:
		return c.a.ItemTy(res.Item)
	case ResVariant:
		return c.a.ItemTy(res.Item) // the enum's self type
	default:
		// dependencies and prelude names stay opaque
		return c.b().Unstable
	}
}

func (c *checker) blockTy(id hir.ExprID) TyID {
	data, _ := c.a.Crate.Exprs.Block(id)
	c.pushScope()
	defer c.popScope()
	for _, sid := range data.Stmts {
		c.checkStmt(sid)
	}
	if data.Tail.IsValid() {
		return c.inferExpr(data.Tail)
	}
	return c.b().Unit
}

func (c *checker) checkStmt(id hir.StmtID) {
	stmt := c.a.Crate.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case hir.StmtLet:
		data, _ := c.a.Crate.Stmts.Let(id)
		var ty TyID
		if data.Ty.IsValid() {
			ty = c.a.lowerType(c.mod, c.env, data.Ty)
			c.inferExpr(data.Init)
		} else if data.Init.IsValid() {
			ty = c.inferExpr(data.Init)
		} else {
			ty = c.b().Unstable
		}
		if data.Else.IsValid() {
			c.inferExpr(data.Else)
		}
		c.bindPattern(data.Pat, ty)
	case hir.StmtExpr:
		data, _ := c.a.Crate.Stmts.Expr(id)
		c.inferExpr(data.Expr)
	}
}

func (c *checker) closureTy(id hir.ExprID) TyID {
	data, _ := c.a.Crate.Exprs.Closure(id)
	params := make([]TyID, 0, len(data.Params))
	c.pushScope()
	for _, p := range data.Params {
		ty := c.b().Unstable
		if p.Ty.IsValid() {
			ty = c.a.lowerType(c.mod, c.env, p.Ty)
		}
		c.bindPattern(p.Pat, ty)
		params = append(params, ty)
	}
	ret := c.b().Unstable
	if body := c.a.Crate.Bodies.Get(data.Body); body != nil {
		ret = c.inferExpr(body.Value)
	}
	if data.Ret.IsValid() {
		ret = c.a.lowerType(c.mod, c.env, data.Ret)
	}
	c.popScope()
	return c.a.Types.RegisterClosure(data.Body, params, ret)
}

func (c *checker) unaryTy(id hir.ExprID) TyID {
	data, _ := c.a.Crate.Exprs.Unary(id)
	operand := c.inferExpr(data.Operand)
	if data.Op != hir.UnDeref {
		return operand
	}
	if t, ok := c.a.Types.Lookup(operand); ok && (t.Kind == TyRef || t.Kind == TyRawPtr) {
		return t.Elem
	}
	return c.b().Unstable
}

func (c *checker) binaryTy(id hir.ExprID) TyID {
	data, _ := c.a.Crate.Exprs.Binary(id)
	left := c.inferExpr(data.Left)
	right := c.inferExpr(data.Right)
	if data.Op.IsComparison() || data.Op.IsLazy() {
		return c.b().Bool
	}
	if c.isKnown(left) {
		return left
	}
	return right
}

func (c *checker) callTy(id hir.ExprID) TyID {
	data, _ := c.a.Crate.Exprs.Call(id)
	callee := c.inferExpr(data.Callee)
	for _, arg := range data.Args {
		c.inferExpr(arg)
	}
	t, ok := c.a.Types.Lookup(callee)
	if !ok {
		return c.b().Unstable
	}
	switch t.Kind {
	case TyFnDef, TyFnPtr:
		sig, _ := c.a.Types.FnSig(callee)
		if sig == nil {
			return c.b().Unstable
		}
		if sig.Item.IsValid() && len(data.Args) != len(sig.Params) {
			c.a.bag.Add(diag.NewError(diag.SemArityMismatch, c.a.Crate.Exprs.Get(id).Span,
				"this call supplies the wrong number of arguments"))
		}
		return sig.Ret
	case TyClosure:
		info, _ := c.a.Types.ClosureInfo(callee)
		if info == nil {
			return c.b().Unstable
		}
		return info.Ret
	case TyAdt:
		// tuple-struct and variant constructors call through the ADT
		return callee
	case TyUnstable, TyError, TyParam, TyTraitObj:
		return c.b().Unstable
	default:
		c.a.bag.Add(diag.NewError(diag.SemNotCallable, c.a.Crate.Exprs.Get(id).Span,
			"expression of type \""+t.Kind.String()+"\" is not callable"))
		return c.b().Error
	}
}

func (c *checker) methodTy(id hir.ExprID) TyID {
	data, _ := c.a.Crate.Exprs.Method(id)
	recv := c.inferExpr(data.Receiver)
	for _, arg := range data.Args {
		c.inferExpr(arg)
	}

	adt, ok := c.a.Types.AdtInfo(c.a.Types.Peel(c.peelRefs(recv)))
	if !ok {
		return c.b().Unstable
	}
	target := c.a.assocItem(adt.Item, data.Method)
	if !target.IsValid() {
		item := c.a.Crate.Items.Get(adt.Item)
		c.a.bag.Add(diag.NewError(diag.SemUnknownMethod, data.NameSpan,
			"no method \""+c.a.Crate.Interner.MustLookup(data.Method)+
				"\" on type \""+c.a.Crate.Interner.MustLookup(item.Name)+"\""))
		return c.b().Error
	}
	c.res.MethodTargets[id] = target
	if sig, ok := c.a.Types.FnSig(c.a.ItemTy(target)); ok {
		return sig.Ret
	}
	return c.b().Unstable
}

func (c *checker) arrayTy(id hir.ExprID) TyID {
	data, _ := c.a.Crate.Exprs.Array(id)
	if data.Repeat.IsValid() {
		elem := c.inferExpr(data.Repeat)
		c.inferExpr(data.Len)
		return c.a.Types.Intern(MakeArray(elem, c.a.constLen(data.Len)))
	}
	elem := c.b().Unstable
	for i, e := range data.Elems {
		ty := c.inferExpr(e)
		if i == 0 {
			elem = ty
		}
	}
	return c.a.Types.Intern(MakeArray(elem, uint32(len(data.Elems))))
}

func (c *checker) structLitTy(id hir.ExprID) TyID {
	data, _ := c.a.Crate.Exprs.Struct(id)
	for _, f := range data.Fields {
		c.inferExpr(f.Expr)
	}
	if data.Base.IsValid() {
		c.inferExpr(data.Base)
	}

	res := c.a.resolvePathIn(c.mod, data.Path, nsType)
	var adtItem hir.ItemID
	switch res.Kind {
	case ResItem:
		adtItem = res.Item
	case ResVariant:
		adtItem = res.Item
	default:
		if len(data.Path) == 1 && c.a.segName(data.Path[0]) == "Self" && c.env != nil {
			if adt, ok := c.a.Types.AdtInfo(c.a.Types.Peel(c.env.self())); ok {
				adtItem = adt.Item
			}
		}
	}
	if !adtItem.IsValid() {
		return c.b().Unstable
	}

	if c.a.Crate.Items.Get(adtItem).Kind == hir.ItemStruct && res.Kind == ResItem {
		for _, f := range data.Fields {
			if c.a.fieldByName(adtItem, f.Name) == hir.NoFieldID {
				c.a.bag.Add(diag.NewError(diag.SemUnknownField, f.Span,
					"struct \""+c.a.Crate.Interner.MustLookup(c.a.Crate.Items.Get(adtItem).Name)+
						"\" has no field \""+c.a.Crate.Interner.MustLookup(f.Name)+"\""))
			}
		}
	}
	return c.a.itemTy[adtItem]
}

func (c *checker) indexTy(id hir.ExprID) TyID {
	data, _ := c.a.Crate.Exprs.Index(id)
	base := c.peelRefs(c.inferExpr(data.Base))
	c.inferExpr(data.Index)
	if t, ok := c.a.Types.Lookup(base); ok && (t.Kind == TyArray || t.Kind == TySlice) {
		return t.Elem
	}
	return c.b().Unstable
}

func (c *checker) fieldTyOf(id hir.ExprID) TyID {
	data, _ := c.a.Crate.Exprs.Field(id)
	base := c.peelRefs(c.inferExpr(data.Base))

	if data.IsTuple {
		if info, ok := c.a.Types.TupleInfo(base); ok {
			if int(data.Index) < len(info.Elems) {
				return info.Elems[data.Index]
			}
		}
		if adt, ok := c.a.Types.AdtInfo(c.a.Types.Peel(base)); ok {
			if fid := c.a.fieldByIndex(adt.Item, data.Index); fid != hir.NoFieldID {
				return c.a.fieldTy[fid]
			}
		}
		return c.b().Unstable
	}

	adt, ok := c.a.Types.AdtInfo(c.a.Types.Peel(base))
	if !ok {
		return c.b().Unstable
	}
	fid := c.a.fieldByName(adt.Item, data.Name)
	if fid == hir.NoFieldID {
		item := c.a.Crate.Items.Get(adt.Item)
		c.a.bag.Add(diag.NewError(diag.SemUnknownField, data.NameSpan,
			"no field \""+c.a.Crate.Interner.MustLookup(data.Name)+
				"\" on type \""+c.a.Crate.Interner.MustLookup(item.Name)+"\""))
		return c.b().Error
	}
	return c.a.fieldTy[fid]
}

func (c *checker) ifTy(id hir.ExprID) TyID {
	data, _ := c.a.Crate.Exprs.If(id)
	c.checkCond(data.Cond)
	then := c.inferExpr(data.Then)
	if data.Else.IsValid() {
		els := c.inferExpr(data.Else)
		if c.isKnown(then) {
			return then
		}
		return els
	}
	return c.b().Unit
}

func (c *checker) matchTy(id hir.ExprID) TyID {
	data, _ := c.a.Crate.Exprs.Match(id)
	scrut := c.inferExpr(data.Scrutinee)
	result := c.b().Unstable
	for i, arm := range data.Arms {
		c.pushScope()
		c.bindPattern(arm.Pat, scrut)
		if arm.Guard.IsValid() {
			c.inferExpr(arm.Guard)
		}
		armTy := c.inferExpr(arm.Body)
		if i == 0 {
			result = armTy
		}
		c.popScope()
	}
	return result
}

// checkCond flags conditions with a definitely non-bool type.
func (c *checker) checkCond(cond hir.ExprID) {
	ty := c.inferExpr(cond)
	t, ok := c.a.Types.Lookup(ty)
	if !ok {
		return
	}
	switch t.Kind {
	case TyBool, TyUnstable, TyError, TyParam, TyNever, TyTraitObj:
		return
	}
	c.a.bag.Add(diag.NewError(diag.SemTypeMismatch, c.a.Crate.Exprs.Get(cond).Span,
		"condition has type \""+t.Kind.String()+"\", expected bool"))
}

// iterElemTy guesses the element type of a for-loop iterable.
func (c *checker) iterElemTy(iter TyID) TyID {
	t, ok := c.a.Types.Lookup(c.peelRefs(iter))
	if !ok {
		return c.b().Unstable
	}
	switch t.Kind {
	case TyArray, TySlice:
		return t.Elem
	default:
		return c.b().Unstable
	}
}

// peelRefs removes reference layers for receiver lookups.
func (c *checker) peelRefs(ty TyID) TyID {
	for {
		t, ok := c.a.Types.Lookup(ty)
		if !ok || t.Kind != TyRef {
			return ty
		}
		ty = t.Elem
	}
}

func (c *checker) isKnown(ty TyID) bool {
	t, ok := c.a.Types.Lookup(ty)
	return ok && t.Kind != TyUnstable && t.Kind != TyError
}

// fieldByName finds a named field on a struct or union definition.
func (a *Analysis) fieldByName(item hir.ItemID, name source.SymbolID) hir.FieldID {
	for _, fid := range a.adtFields(item) {
		if f := a.Crate.Items.Field(fid); f != nil && f.Name == name {
			return fid
		}
	}
	return hir.NoFieldID
}

// fieldByIndex finds a positional field on a tuple struct.
func (a *Analysis) fieldByIndex(item hir.ItemID, index uint32) hir.FieldID {
	for _, fid := range a.adtFields(item) {
		if f := a.Crate.Items.Field(fid); f != nil && f.Index == index {
			return fid
		}
	}
	return hir.NoFieldID
}

func (a *Analysis) adtFields(item hir.ItemID) []hir.FieldID {
	switch a.Crate.Items.Get(item).Kind {
	case hir.ItemStruct:
		if data, ok := a.Crate.Items.Struct(item); ok {
			return data.Fields
		}
	case hir.ItemUnion:
		if data, ok := a.Crate.Items.Union(item); ok {
			return data.Fields
		}
	}
	return nil
}
