package driver

import (
	"marker/api"
	"marker/internal/hir"
)

var primitiveNumKinds = map[string]api.NumKind{
	"i8": api.NumI8, "i16": api.NumI16, "i32": api.NumI32, "i64": api.NumI64,
	"i128": api.NumI128, "isize": api.NumIsize,
	"u8": api.NumU8, "u16": api.NumU16, "u32": api.NumU32, "u64": api.NumU64,
	"u128": api.NumU128, "usize": api.NumUsize,
	"f32": api.NumF32, "f64": api.NumF64,
}

// convertTy maps a written type onto an API type node. NoTypeID maps to
// nil so that callers can hand the result straight to ok-form fields.
func (st *storage) convertTy(id hir.TypeID) api.TyKind {
	if !id.IsValid() {
		return nil
	}
	ty := st.crate.Types.Get(id)
	if ty == nil {
		return nil
	}
	data := api.TyData{Span: st.spans.intern(ty.Span)}
	switch ty.Kind {
	case hir.TypePath:
		path, _ := st.crate.Types.Path(id)
		return st.convertPathTy(data, path.Segments)
	case hir.TypeRef:
		ref, _ := st.crate.Types.Ref(id)
		return api.NewRefTy(data, mutability(ref.Mut), st.convertTy(ref.Inner))
	case hir.TypeRawPtr:
		ptr, _ := st.crate.Types.RawPtr(id)
		return api.NewRawPtrTy(data, mutability(ptr.Mut), st.convertTy(ptr.Inner))
	case hir.TypeSlice:
		slice, _ := st.crate.Types.Slice(id)
		return api.NewSliceTy(data, st.convertTy(slice.Elem))
	case hir.TypeArray:
		arr, _ := st.crate.Types.Array(id)
		var length api.ExprKind
		if arr.Len.IsValid() {
			length = st.convertExpr(arr.Len)
		}
		return api.NewArrayTy(data, st.convertTy(arr.Elem), length)
	case hir.TypeTuple:
		tup, _ := st.crate.Types.Tuple(id)
		elems := make([]api.TyKind, 0, len(tup.Elems))
		for _, elem := range tup.Elems {
			elems = append(elems, st.convertTy(elem))
		}
		return api.NewTupleTy(data, elems)
	case hir.TypeFn:
		fn, _ := st.crate.Types.Fn(id)
		params := make([]api.Parameter, 0, len(fn.Params))
		for _, p := range fn.Params {
			span := api.SpanID(0)
			if pty := st.crate.Types.Get(p); pty != nil {
				span = st.spans.intern(pty.Span)
			}
			params = append(params, api.NewParameter(nil, st.convertTy(p), span))
		}
		return api.NewFnPtrTy(data, params, st.convertTy(fn.Ret))
	case hir.TypeNever:
		return api.NewNeverTy(data)
	case hir.TypeInfer:
		return api.NewInferredTy(data)
	case hir.TypeTraitObject:
		obj, _ := st.crate.Types.TraitObject(id)
		return api.NewTraitObjTy(data, st.boundPaths(obj.Bounds))
	case hir.TypeImplTrait:
		impl, _ := st.crate.Types.ImplTrait(id)
		return api.NewImplTraitTy(data, st.boundPaths(impl.Bounds))
	default:
		return nil
	}
}

// convertPathTy special-cases the primitive names so that `i32` and
// `bool` come out as dedicated nodes rather than unresolved paths.
func (st *storage) convertPathTy(data api.TyData, segs []hir.PathSegment) api.TyKind {
	if len(segs) == 1 && len(segs[0].Args) == 0 {
		switch name := st.crate.Interner.MustLookup(segs[0].Name); name {
		case "bool":
			return api.NewBoolTy(data)
		case "char":
			return api.NewTextTy(data, api.TextChar)
		case "str":
			return api.NewTextTy(data, api.TextStr)
		default:
			if kind, ok := primitiveNumKinds[name]; ok {
				return api.NewNumTy(data, kind)
			}
		}
	}
	target := st.resolveByName(segs)
	if len(segs) == 1 && st.crate.Interner.MustLookup(segs[0].Name) == "Self" {
		if owner, ok := st.enclosingImpl(st.scopeItem()); ok {
			target = api.NewSelfTyTarget(packItemID(owner))
		}
	}
	return api.NewPathTy(data, api.NewAstQPath(nil, nil, st.convertPath(segs), target))
}

// boundPaths extracts the written trait paths of a dyn/impl bound
// list; non-path bounds are skipped.
func (st *storage) boundPaths(bounds []hir.TypeID) []api.AstPath {
	out := make([]api.AstPath, 0, len(bounds))
	for _, b := range bounds {
		if path, ok := st.crate.Types.Path(b); ok {
			out = append(out, st.convertPath(path.Segments))
		}
	}
	return out
}

func mutability(mut bool) api.Mutability {
	if mut {
		return api.Mutable
	}
	return api.Immutable
}
