package api

// TyKind is the closed union of syntactic type nodes, the types as
// they are written in the source. Use SemTyKind for the resolved
// semantic types of expressions.
type TyKind interface {
	// Span returns where the type is written.
	Span() *Span
	tyKind()
}

// TyData holds the fields shared by every syntactic type node.
type TyData struct {
	Span SpanID
}

type tyData struct {
	span SpanID
}

func (d *tyData) Span() *Span { return CurrentContext().Span(d.span) }
func (d *tyData) tyKind()     {}

// NumKind enumerates the primitive numeric types.
type NumKind uint8

const (
	NumI8 NumKind = iota
	NumI16
	NumI32
	NumI64
	NumI128
	NumIsize
	NumU8
	NumU16
	NumU32
	NumU64
	NumU128
	NumUsize
	NumF32
	NumF64
)

var numKindNames = [...]string{
	"i8", "i16", "i32", "i64", "i128", "isize",
	"u8", "u16", "u32", "u64", "u128", "usize",
	"f32", "f64",
}

func (k NumKind) String() string {
	if int(k) < len(numKindNames) {
		return numKindNames[k]
	}
	return "?"
}

// IsSigned reports whether the type is a signed integer.
func (k NumKind) IsSigned() bool { return k <= NumIsize }

// IsFloat reports whether the type is a floating-point type.
func (k NumKind) IsFloat() bool { return k == NumF32 || k == NumF64 }

// IsInt reports whether the type is an integer type.
func (k NumKind) IsInt() bool { return !k.IsFloat() }

// TextKind enumerates the primitive textual types.
type TextKind uint8

const (
	TextChar TextKind = iota
	TextStr
)

func (k TextKind) String() string {
	if k == TextChar {
		return "char"
	}
	return "str"
}

// BoolTy is the written `bool` type.
type BoolTy struct {
	tyData
}

func NewBoolTy(data TyData) *BoolTy {
	return &BoolTy{tyData: tyData{span: data.Span}}
}

// NumTy is a written primitive numeric type like `i32`.
type NumTy struct {
	tyData
	kind NumKind
}

func NewNumTy(data TyData, kind NumKind) *NumTy {
	return &NumTy{tyData: tyData{span: data.Span}, kind: kind}
}

func (t *NumTy) Kind() NumKind { return t.kind }

// TextTy is a written `char` or `str` type.
type TextTy struct {
	tyData
	kind TextKind
}

func NewTextTy(data TyData, kind TextKind) *TextTy {
	return &TextTy{tyData: tyData{span: data.Span}, kind: kind}
}

func (t *TextTy) Kind() TextKind { return t.kind }

// NeverTy is the written `!` type.
type NeverTy struct {
	tyData
}

func NewNeverTy(data TyData) *NeverTy {
	return &NeverTy{tyData: tyData{span: data.Span}}
}

// TupleTy is a written tuple type like `(i32, bool)`.
type TupleTy struct {
	tyData
	types []TyKind
}

func NewTupleTy(data TyData, types []TyKind) *TupleTy {
	return &TupleTy{tyData: tyData{span: data.Span}, types: types}
}

func (t *TupleTy) Types() []TyKind { return t.types }

// ArrayTy is a written `[T; N]` type.
type ArrayTy struct {
	tyData
	elem TyKind
	len  ExprKind
}

func NewArrayTy(data TyData, elem TyKind, length ExprKind) *ArrayTy {
	return &ArrayTy{tyData: tyData{span: data.Span}, elem: elem, len: length}
}

func (t *ArrayTy) Elem() TyKind { return t.elem }

// Len returns the length expression, ok=false when the length is
// elided or unrepresentable.
func (t *ArrayTy) Len() (ExprKind, bool) { return t.len, t.len != nil }

// SliceTy is a written `[T]` type.
type SliceTy struct {
	tyData
	elem TyKind
}

func NewSliceTy(data TyData, elem TyKind) *SliceTy {
	return &SliceTy{tyData: tyData{span: data.Span}, elem: elem}
}

func (t *SliceTy) Elem() TyKind { return t.elem }

// RefTy is a written `&T` or `&mut T` type.
type RefTy struct {
	tyData
	mut   Mutability
	inner TyKind
}

func NewRefTy(data TyData, mut Mutability, inner TyKind) *RefTy {
	return &RefTy{tyData: tyData{span: data.Span}, mut: mut, inner: inner}
}

func (t *RefTy) Mutability() Mutability { return t.mut }
func (t *RefTy) Inner() TyKind          { return t.inner }

// RawPtrTy is a written `*const T` or `*mut T` type.
type RawPtrTy struct {
	tyData
	mut   Mutability
	inner TyKind
}

func NewRawPtrTy(data TyData, mut Mutability, inner TyKind) *RawPtrTy {
	return &RawPtrTy{tyData: tyData{span: data.Span}, mut: mut, inner: inner}
}

func (t *RawPtrTy) Mutability() Mutability { return t.mut }
func (t *RawPtrTy) Inner() TyKind          { return t.inner }

// FnPtrTy is a written `fn(..) -> ..` type.
type FnPtrTy struct {
	tyData
	params []Parameter
	ret    TyKind
}

func NewFnPtrTy(data TyData, params []Parameter, ret TyKind) *FnPtrTy {
	return &FnPtrTy{tyData: tyData{span: data.Span}, params: params, ret: ret}
}

func (t *FnPtrTy) Params() []Parameter { return t.params }

// Ret returns the written return type, ok=false when elided.
func (t *FnPtrTy) Ret() (TyKind, bool) { return t.ret, t.ret != nil }

// TraitObjTy is a written `dyn Trait + ..` type.
type TraitObjTy struct {
	tyData
	bounds []AstPath
}

func NewTraitObjTy(data TyData, bounds []AstPath) *TraitObjTy {
	return &TraitObjTy{tyData: tyData{span: data.Span}, bounds: bounds}
}

func (t *TraitObjTy) Bounds() []AstPath { return t.bounds }

// ImplTraitTy is a written `impl Trait + ..` type.
type ImplTraitTy struct {
	tyData
	bounds []AstPath
}

func NewImplTraitTy(data TyData, bounds []AstPath) *ImplTraitTy {
	return &ImplTraitTy{tyData: tyData{span: data.Span}, bounds: bounds}
}

func (t *ImplTraitTy) Bounds() []AstPath { return t.bounds }

// InferredTy is a written `_` type.
type InferredTy struct {
	tyData
}

func NewInferredTy(data TyData) *InferredTy {
	return &InferredTy{tyData: tyData{span: data.Span}}
}

// PathTy is a written path type like `Vec<u8>` or `Self`.
type PathTy struct {
	tyData
	path AstQPath
}

func NewPathTy(data TyData, path AstQPath) *PathTy {
	return &PathTy{tyData: tyData{span: data.Span}, path: path}
}

func (t *PathTy) Path() *AstQPath { return &t.path }
