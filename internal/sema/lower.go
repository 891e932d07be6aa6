package sema

import (
	"marker/internal/hir"
	"marker/internal/source"
)

// genericEnv maps generic parameter names visible at a lowering site to
// their declaring item and index. selfTy carries the impl self type for
// `Self` paths, NoTyID outside impls.
type genericEnv struct {
	owner  hir.ItemID
	params map[source.SymbolID]uint32
	parent *genericEnv
	selfTy TyID
}

func (e *genericEnv) lookup(name source.SymbolID) (hir.ItemID, uint32, bool) {
	for env := e; env != nil; env = env.parent {
		if env.params != nil {
			if idx, ok := env.params[name]; ok {
				return env.owner, idx, true
			}
		}
	}
	return hir.NoItemID, 0, false
}

func (e *genericEnv) self() TyID {
	for env := e; env != nil; env = env.parent {
		if env.selfTy != NoTyID {
			return env.selfTy
		}
	}
	return NoTyID
}

// envFor builds the generic environment of one item's parameter list.
func (a *Analysis) envFor(item hir.ItemID, generics []hir.GenericParam, parent *genericEnv) *genericEnv {
	env := &genericEnv{owner: item, parent: parent}
	for i, gp := range generics {
		if gp.Kind != hir.GenericType {
			continue
		}
		if env.params == nil {
			env.params = make(map[source.SymbolID]uint32)
		}
		env.params[gp.Name] = uint32(i)
	}
	return env
}

// primitiveTy maps a primitive type name to its TyID, NoTyID otherwise.
func (a *Analysis) primitiveTy(name string) TyID {
	b := a.Types.Builtins()
	switch name {
	case "bool":
		return b.Bool
	case "char":
		return b.Char
	case "str":
		return b.Str
	case "i8":
		return a.Types.Intern(MakeInt(Width8))
	case "i16":
		return a.Types.Intern(MakeInt(Width16))
	case "i32":
		return b.I32
	case "i64":
		return b.I64
	case "i128":
		return a.Types.Intern(MakeInt(Width128))
	case "isize":
		return a.Types.Intern(MakeInt(WidthSize))
	case "u8":
		return b.U8
	case "u16":
		return a.Types.Intern(MakeUint(Width16))
	case "u32":
		return b.U32
	case "u64":
		return a.Types.Intern(MakeUint(Width64))
	case "u128":
		return a.Types.Intern(MakeUint(Width128))
	case "usize":
		return b.Usize
	case "f32":
		return a.Types.Intern(MakeFloat(Width32))
	case "f64":
		return b.F64
	default:
		return NoTyID
	}
}

// lowerType converts a syntactic type to a semantic one. Paths outside
// the crate lower to the unstable placeholder instead of erroring: a
// single-crate session cannot see its dependencies' definitions.
func (a *Analysis) lowerType(mod hir.ItemID, env *genericEnv, ty hir.TypeID) TyID {
	b := a.Types.Builtins()
	t := a.Crate.Types.Get(ty)
	if t == nil {
		return b.Error
	}
	switch t.Kind {
	case hir.TypePath:
		data, _ := a.Crate.Types.Path(ty)
		return a.lowerTypePath(mod, env, data.Segments)
	case hir.TypeRef:
		data, _ := a.Crate.Types.Ref(ty)
		return a.Types.Intern(MakeRef(a.lowerType(mod, env, data.Inner), data.Mut))
	case hir.TypeRawPtr:
		data, _ := a.Crate.Types.RawPtr(ty)
		return a.Types.Intern(MakeRawPtr(a.lowerType(mod, env, data.Inner), data.Mut))
	case hir.TypeSlice:
		data, _ := a.Crate.Types.Slice(ty)
		return a.Types.Intern(MakeSlice(a.lowerType(mod, env, data.Elem)))
	case hir.TypeArray:
		data, _ := a.Crate.Types.Array(ty)
		elem := a.lowerType(mod, env, data.Elem)
		return a.Types.Intern(MakeArray(elem, a.constLen(data.Len)))
	case hir.TypeTuple:
		data, _ := a.Crate.Types.Tuple(ty)
		elems := make([]TyID, 0, len(data.Elems))
		for _, e := range data.Elems {
			elems = append(elems, a.lowerType(mod, env, e))
		}
		return a.Types.RegisterTuple(elems)
	case hir.TypeFn:
		data, _ := a.Crate.Types.Fn(ty)
		params := make([]TyID, 0, len(data.Params))
		for _, p := range data.Params {
			params = append(params, a.lowerType(mod, env, p))
		}
		ret := b.Unit
		if data.Ret.IsValid() {
			ret = a.lowerType(mod, env, data.Ret)
		}
		return a.Types.RegisterFnPtr(params, ret)
	case hir.TypeNever:
		return b.Never
	case hir.TypeInfer:
		return b.Unstable
	case hir.TypeTraitObject, hir.TypeImplTrait:
		data, ok := a.Crate.Types.TraitObject(ty)
		if !ok {
			data, _ = a.Crate.Types.ImplTrait(ty)
		}
		var traits []hir.ItemID
		for _, bound := range data.Bounds {
			if item := a.resolveTypeToItem(mod, bound); item.IsValid() {
				traits = append(traits, item)
			}
		}
		return a.Types.RegisterTraitObj(traits)
	default:
		return b.Error
	}
}

func (a *Analysis) lowerTypePath(mod hir.ItemID, env *genericEnv, segs []hir.PathSegment) TyID {
	b := a.Types.Builtins()
	if len(segs) == 0 {
		return b.Error
	}
	if len(segs) == 1 {
		name := a.segName(segs[0])
		if name == "Self" {
			if self := env.self(); self != NoTyID {
				return self
			}
			return b.Error
		}
		if prim := a.primitiveTy(name); prim != NoTyID {
			return prim
		}
		if owner, idx, ok := env.lookup(segs[0].Name); ok {
			return a.Types.RegisterParam(owner, idx, segs[0].Name)
		}
	}
	res := a.resolvePathIn(mod, segs, nsType)
	if res.Kind != ResItem {
		// paths into dependencies (Vec, Option, String, ...) stay opaque
		return b.Unstable
	}
	return a.itemAsTy(mod, env, res.Item, segs[len(segs)-1].Args)
}

// itemAsTy turns a resolved type item into a semantic type, lowering the
// written generic arguments.
func (a *Analysis) itemAsTy(mod hir.ItemID, env *genericEnv, item hir.ItemID, argTys []hir.TypeID) TyID {
	b := a.Types.Builtins()
	args := make([]TyID, 0, len(argTys))
	for _, arg := range argTys {
		args = append(args, a.lowerType(mod, env, arg))
	}
	switch a.Crate.Items.Get(item).Kind {
	case hir.ItemStruct, hir.ItemEnum, hir.ItemUnion:
		return a.Types.RegisterAdt(item, args)
	case hir.ItemTyAlias:
		if cached, ok := a.aliasTy[item]; ok {
			return cached
		}
		// break cycles before lowering the target
		a.aliasTy[item] = b.Error
		target := b.Unstable
		if data, ok := a.Crate.Items.TyAlias(item); ok && data.Aliased.IsValid() {
			target = a.lowerType(a.moduleOf(item), a.envFor(item, data.Generics, nil), data.Aliased)
		}
		id := a.Types.RegisterAlias(item, target)
		a.aliasTy[item] = id
		return id
	case hir.ItemTrait:
		return a.Types.RegisterTraitObj([]hir.ItemID{item})
	default:
		return b.Error
	}
}

// constLen folds an array length expression; only integer literals fold.
func (a *Analysis) constLen(expr hir.ExprID) uint32 {
	if !expr.IsValid() {
		return ArrayUnknownLength
	}
	lit, ok := a.Crate.Exprs.Lit(expr)
	if !ok || lit.Kind != hir.LitInt {
		return ArrayUnknownLength
	}
	text := a.Crate.Interner.MustLookup(lit.Text)
	var n uint64
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '_' {
			continue
		}
		if c < '0' || c > '9' {
			return ArrayUnknownLength
		}
		n = n*10 + uint64(c-'0')
		if n > uint64(ArrayUnknownLength-1) {
			return ArrayUnknownLength
		}
	}
	return uint32(n)
}
