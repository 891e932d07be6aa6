package hir

import (
	"marker/internal/source"
)

// TypeKind discriminates syntactic (written) types.
type TypeKind uint8

const (
	TypePath TypeKind = iota
	TypeRef
	TypeRawPtr
	TypeSlice
	TypeArray
	TypeTuple
	TypeFn
	TypeNever
	TypeInfer
	TypeTraitObject
	TypeImplTrait
)

type Type struct {
	Kind    TypeKind
	Span    source.Span
	Payload PayloadID
}

// PathSegment is one segment of a written path, possibly with generic
// arguments: Vec<u8>, Option<&'a str>.
type PathSegment struct {
	Name source.SymbolID
	Args []TypeID
	Span source.Span
}

type TypePathData struct {
	Segments []PathSegment
}

type TypeRefData struct {
	Lifetime source.SymbolID // NoSymbolID when elided
	Mut      bool
	Inner    TypeID
}

type TypeRawPtrData struct {
	Mut   bool
	Inner TypeID
}

type TypeSliceData struct {
	Elem TypeID
}

type TypeArrayData struct {
	Elem TypeID
	Len  ExprID
}

type TypeTupleData struct {
	Elems []TypeID
}

type TypeFnData struct {
	Params []TypeID
	Ret    TypeID // NoTypeID means unit
}

// TypeTraitObjectData also backs impl-trait types, both are bound lists.
type TypeBoundsData struct {
	Bounds []TypeID // path types
}

type Types struct {
	Arena        *Arena[Type]
	Paths        *Arena[TypePathData]
	Refs         *Arena[TypeRefData]
	RawPtrs      *Arena[TypeRawPtrData]
	Slices       *Arena[TypeSliceData]
	Arrays       *Arena[TypeArrayData]
	Tuples       *Arena[TypeTupleData]
	Fns          *Arena[TypeFnData]
	TraitObjects *Arena[TypeBoundsData]
	ImplTraits   *Arena[TypeBoundsData]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Types{
		Arena:        NewArena[Type](capHint),
		Paths:        NewArena[TypePathData](capHint),
		Refs:         NewArena[TypeRefData](capHint),
		RawPtrs:      NewArena[TypeRawPtrData](capHint),
		Slices:       NewArena[TypeSliceData](capHint),
		Arrays:       NewArena[TypeArrayData](capHint),
		Tuples:       NewArena[TypeTupleData](capHint),
		Fns:          NewArena[TypeFnData](capHint),
		TraitObjects: NewArena[TypeBoundsData](capHint),
		ImplTraits:   NewArena[TypeBoundsData](capHint),
	}
}

func (t *Types) new(kind TypeKind, span source.Span, payload PayloadID) TypeID {
	return TypeID(t.Arena.Allocate(Type{Kind: kind, Span: span, Payload: payload}))
}

func (t *Types) Get(id TypeID) *Type {
	return t.Arena.Get(uint32(id))
}

func (t *Types) NewPath(span source.Span, segments []PathSegment) TypeID {
	payload := t.Paths.Allocate(TypePathData{Segments: segments})
	return t.new(TypePath, span, PayloadID(payload))
}

func (t *Types) Path(id TypeID) (*TypePathData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypePath {
		return nil, false
	}
	return t.Paths.Get(uint32(ty.Payload)), true
}

func (t *Types) NewRef(span source.Span, lifetime source.SymbolID, mut bool, inner TypeID) TypeID {
	payload := t.Refs.Allocate(TypeRefData{Lifetime: lifetime, Mut: mut, Inner: inner})
	return t.new(TypeRef, span, PayloadID(payload))
}

func (t *Types) Ref(id TypeID) (*TypeRefData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeRef {
		return nil, false
	}
	return t.Refs.Get(uint32(ty.Payload)), true
}

func (t *Types) NewRawPtr(span source.Span, mut bool, inner TypeID) TypeID {
	payload := t.RawPtrs.Allocate(TypeRawPtrData{Mut: mut, Inner: inner})
	return t.new(TypeRawPtr, span, PayloadID(payload))
}

func (t *Types) RawPtr(id TypeID) (*TypeRawPtrData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeRawPtr {
		return nil, false
	}
	return t.RawPtrs.Get(uint32(ty.Payload)), true
}

func (t *Types) NewSlice(span source.Span, elem TypeID) TypeID {
	payload := t.Slices.Allocate(TypeSliceData{Elem: elem})
	return t.new(TypeSlice, span, PayloadID(payload))
}

func (t *Types) Slice(id TypeID) (*TypeSliceData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeSlice {
		return nil, false
	}
	return t.Slices.Get(uint32(ty.Payload)), true
}

func (t *Types) NewArray(span source.Span, elem TypeID, length ExprID) TypeID {
	payload := t.Arrays.Allocate(TypeArrayData{Elem: elem, Len: length})
	return t.new(TypeArray, span, PayloadID(payload))
}

func (t *Types) Array(id TypeID) (*TypeArrayData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeArray {
		return nil, false
	}
	return t.Arrays.Get(uint32(ty.Payload)), true
}

func (t *Types) NewTuple(span source.Span, elems []TypeID) TypeID {
	payload := t.Tuples.Allocate(TypeTupleData{Elems: elems})
	return t.new(TypeTuple, span, PayloadID(payload))
}

func (t *Types) Tuple(id TypeID) (*TypeTupleData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeTuple {
		return nil, false
	}
	return t.Tuples.Get(uint32(ty.Payload)), true
}

func (t *Types) NewFn(span source.Span, params []TypeID, ret TypeID) TypeID {
	payload := t.Fns.Allocate(TypeFnData{Params: params, Ret: ret})
	return t.new(TypeFn, span, PayloadID(payload))
}

func (t *Types) Fn(id TypeID) (*TypeFnData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeFn {
		return nil, false
	}
	return t.Fns.Get(uint32(ty.Payload)), true
}

func (t *Types) NewNever(span source.Span) TypeID {
	return t.new(TypeNever, span, NoPayloadID)
}

func (t *Types) NewInfer(span source.Span) TypeID {
	return t.new(TypeInfer, span, NoPayloadID)
}

func (t *Types) NewTraitObject(span source.Span, bounds []TypeID) TypeID {
	payload := t.TraitObjects.Allocate(TypeBoundsData{Bounds: bounds})
	return t.new(TypeTraitObject, span, PayloadID(payload))
}

func (t *Types) TraitObject(id TypeID) (*TypeBoundsData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeTraitObject {
		return nil, false
	}
	return t.TraitObjects.Get(uint32(ty.Payload)), true
}

func (t *Types) NewImplTrait(span source.Span, bounds []TypeID) TypeID {
	payload := t.ImplTraits.Allocate(TypeBoundsData{Bounds: bounds})
	return t.new(TypeImplTrait, span, PayloadID(payload))
}

func (t *Types) ImplTrait(id TypeID) (*TypeBoundsData, bool) {
	ty := t.Get(id)
	if ty == nil || ty.Kind != TypeImplTrait {
		return nil, false
	}
	return t.ImplTraits.Get(uint32(ty.Payload)), true
}
