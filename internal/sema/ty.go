package sema

import "fmt"

// TyID uniquely identifies a semantic type inside the interner.
type TyID uint32

// NoTyID marks the absence of a type.
const NoTyID TyID = 0

// TyKind enumerates the semantic type heads.
type TyKind uint8

const (
	TyError TyKind = iota
	TyBool
	TyChar
	TyStr
	TyInt
	TyUint
	TyFloat
	TyNever
	TyAdt
	TyRef
	TyRawPtr
	TyArray
	TySlice
	TyTuple
	TyFnDef
	TyFnPtr
	TyClosure
	TyTraitObj
	TyParam
	TyAlias
	TyUnstable
)

func (k TyKind) String() string {
	switch k {
	case TyError:
		return "error"
	case TyBool:
		return "bool"
	case TyChar:
		return "char"
	case TyStr:
		return "str"
	case TyInt:
		return "int"
	case TyUint:
		return "uint"
	case TyFloat:
		return "float"
	case TyNever:
		return "never"
	case TyAdt:
		return "adt"
	case TyRef:
		return "ref"
	case TyRawPtr:
		return "raw pointer"
	case TyArray:
		return "array"
	case TySlice:
		return "slice"
	case TyTuple:
		return "tuple"
	case TyFnDef:
		return "fn def"
	case TyFnPtr:
		return "fn pointer"
	case TyClosure:
		return "closure"
	case TyTraitObj:
		return "trait object"
	case TyParam:
		return "type param"
	case TyAlias:
		return "alias"
	case TyUnstable:
		return "unstable"
	default:
		return fmt.Sprintf("TyKind(%d)", k)
	}
}

// Width captures the precision of numeric primitives. WidthSize stands
// for the pointer-sized isize/usize pair.
type Width uint8

const (
	WidthAny  Width = 0
	Width8    Width = 8
	Width16   Width = 16
	Width32   Width = 32
	Width64   Width = 64
	Width128  Width = 128
	WidthSize Width = 255
)

// ArrayUnknownLength marks arrays whose length expression did not
// constant-fold.
const ArrayUnknownLength = ^uint32(0)

// Ty is a compact descriptor for a semantic type. Variable-length kinds
// park their data in an interner side table reached through Payload.
type Ty struct {
	Kind    TyKind
	Elem    TyID
	Count   uint32 // array length, ArrayUnknownLength when unknown
	Width   Width
	Mutable bool   // refs and raw pointers
	Payload uint32 // side-table slot for adt/tuple/fn/closure/param/alias/bounds
}

// MakeInt describes a signed integer of the given width.
func MakeInt(width Width) Ty {
	return Ty{Kind: TyInt, Width: width}
}

// MakeUint describes an unsigned integer of the given width.
func MakeUint(width Width) Ty {
	return Ty{Kind: TyUint, Width: width}
}

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) Ty {
	return Ty{Kind: TyFloat, Width: width}
}

// MakeRef describes &T or &mut T.
func MakeRef(elem TyID, mutable bool) Ty {
	return Ty{Kind: TyRef, Elem: elem, Mutable: mutable}
}

// MakeRawPtr describes *const T or *mut T.
func MakeRawPtr(elem TyID, mutable bool) Ty {
	return Ty{Kind: TyRawPtr, Elem: elem, Mutable: mutable}
}

// MakeArray describes [T; N].
func MakeArray(elem TyID, count uint32) Ty {
	return Ty{Kind: TyArray, Elem: elem, Count: count}
}

// MakeSlice describes [T].
func MakeSlice(elem TyID) Ty {
	return Ty{Kind: TySlice, Elem: elem}
}
