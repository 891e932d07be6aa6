package driver

import (
	"marker/api"
	"marker/internal/sema"
)

func numKindOf(kind sema.TyKind, width sema.Width) api.NumKind {
	switch kind {
	case sema.TyInt:
		switch width {
		case sema.Width8:
			return api.NumI8
		case sema.Width16:
			return api.NumI16
		case sema.Width64:
			return api.NumI64
		case sema.Width128:
			return api.NumI128
		case sema.WidthSize:
			return api.NumIsize
		default:
			return api.NumI32
		}
	case sema.TyUint:
		switch width {
		case sema.Width8:
			return api.NumU8
		case sema.Width16:
			return api.NumU16
		case sema.Width64:
			return api.NumU64
		case sema.Width128:
			return api.NumU128
		case sema.WidthSize:
			return api.NumUsize
		default:
			return api.NumU32
		}
	default:
		if width == sema.Width32 {
			return api.NumF32
		}
		return api.NumF64
	}
}

// convertSemTy maps a checker type onto the stable semantic type
// union. Error types surface as unstable: the host's leniency means an
// error type usually points outside the analyzed crate, and lint
// passes must not draw conclusions either way.
func (st *storage) convertSemTy(id sema.TyID) api.SemTyKind {
	ty, ok := st.sema.Types.Lookup(id)
	if !ok {
		return &api.SemUnstableTy{}
	}
	switch ty.Kind {
	case sema.TyBool:
		return &api.SemBoolTy{}
	case sema.TyChar:
		return api.NewSemTextTy(api.TextChar)
	case sema.TyStr:
		return api.NewSemTextTy(api.TextStr)
	case sema.TyInt, sema.TyUint, sema.TyFloat:
		return api.NewSemNumTy(numKindOf(ty.Kind, ty.Width))
	case sema.TyNever:
		return &api.SemNeverTy{}
	case sema.TyRef:
		return api.NewSemRefTy(mutability(ty.Mutable), st.convertSemTy(ty.Elem))
	case sema.TyRawPtr:
		return api.NewSemRawPtrTy(mutability(ty.Mutable), st.convertSemTy(ty.Elem))
	case sema.TyArray:
		elem := st.convertSemTy(ty.Elem)
		if ty.Count == sema.ArrayUnknownLength {
			return api.NewSemArrayTy(elem, 0, false)
		}
		return api.NewSemArrayTy(elem, uint64(ty.Count), true)
	case sema.TySlice:
		return api.NewSemSliceTy(st.convertSemTy(ty.Elem))
	case sema.TyTuple:
		info, ok := st.sema.Types.TupleInfo(id)
		if !ok {
			return &api.SemUnstableTy{}
		}
		return api.NewSemTupleTy(st.convertSemTys(info.Elems))
	case sema.TyAdt:
		info, ok := st.sema.Types.AdtInfo(id)
		if !ok {
			return &api.SemUnstableTy{}
		}
		return api.NewSemAdtTy(packTyDefID(info.Item), st.convertSemTys(info.Args))
	case sema.TyFnDef:
		info, ok := st.sema.Types.FnSig(id)
		if !ok || !info.Item.IsValid() {
			return &api.SemUnstableTy{}
		}
		return api.NewSemFnTy(packItemID(info.Item))
	case sema.TyFnPtr:
		info, ok := st.sema.Types.FnSig(id)
		if !ok {
			return &api.SemUnstableTy{}
		}
		return api.NewSemFnPtrTy(st.convertSemTys(info.Params), st.convertSemTy(info.Ret))
	case sema.TyClosure:
		info, ok := st.sema.Types.ClosureInfo(id)
		if !ok {
			return &api.SemUnstableTy{}
		}
		return api.NewSemClosureTy(packBodyID(info.Body))
	case sema.TyParam:
		info, ok := st.sema.Types.ParamInfo(id)
		if !ok {
			return &api.SemUnstableTy{}
		}
		return api.NewSemGenericTy(packGenericID(info.Owner, info.Index), api.SymbolID(info.Name))
	case sema.TyAlias:
		peeled := st.sema.Types.Peel(id)
		if peeled != id {
			return st.convertSemTy(peeled)
		}
		info, ok := st.sema.Types.AliasInfo(id)
		if !ok {
			return &api.SemUnstableTy{}
		}
		return api.NewSemAliasTy(packTyDefID(info.Item))
	case sema.TyTraitObj:
		info, ok := st.sema.Types.BoundsInfo(id)
		if !ok {
			return &api.SemUnstableTy{}
		}
		bounds := make([]api.TyDefID, 0, len(info.Traits))
		for _, trait := range info.Traits {
			bounds = append(bounds, packTyDefID(trait))
		}
		return api.NewSemTraitObjTy(bounds)
	default:
		return &api.SemUnstableTy{}
	}
}

func (st *storage) convertSemTys(ids []sema.TyID) []api.SemTyKind {
	out := make([]api.SemTyKind, 0, len(ids))
	for _, id := range ids {
		out = append(out, st.convertSemTy(id))
	}
	return out
}
