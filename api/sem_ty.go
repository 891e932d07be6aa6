package api

// SemTyKind is the closed union of semantic types: the resolved type
// of an expression after inference, independent of how it was written.
// Unlike syntactic types these carry no spans.
type SemTyKind interface {
	semTyKind()
}

type semTy struct{}

func (semTy) semTyKind() {}

// SemBoolTy is the semantic `bool` type.
type SemBoolTy struct {
	semTy
}

// SemNumTy is a semantic primitive numeric type.
type SemNumTy struct {
	semTy
	kind NumKind
}

func NewSemNumTy(kind NumKind) *SemNumTy { return &SemNumTy{kind: kind} }

func (t *SemNumTy) Kind() NumKind { return t.kind }

// SemTextTy is the semantic `char` or `str` type.
type SemTextTy struct {
	semTy
	kind TextKind
}

func NewSemTextTy(kind TextKind) *SemTextTy { return &SemTextTy{kind: kind} }

func (t *SemTextTy) Kind() TextKind { return t.kind }

// SemNeverTy is the semantic `!` type.
type SemNeverTy struct {
	semTy
}

// SemTupleTy is a semantic tuple type.
type SemTupleTy struct {
	semTy
	types []SemTyKind
}

func NewSemTupleTy(types []SemTyKind) *SemTupleTy { return &SemTupleTy{types: types} }

func (t *SemTupleTy) Types() []SemTyKind { return t.types }

// SemArrayTy is a semantic `[T; N]` type.
type SemArrayTy struct {
	semTy
	elem   SemTyKind
	len    uint64
	hasLen bool
}

func NewSemArrayTy(elem SemTyKind, length uint64, hasLen bool) *SemArrayTy {
	return &SemArrayTy{elem: elem, len: length, hasLen: hasLen}
}

func (t *SemArrayTy) Elem() SemTyKind { return t.elem }

// Len returns the array length, ok=false when it could not be
// evaluated.
func (t *SemArrayTy) Len() (uint64, bool) { return t.len, t.hasLen }

// SemSliceTy is a semantic `[T]` type.
type SemSliceTy struct {
	semTy
	elem SemTyKind
}

func NewSemSliceTy(elem SemTyKind) *SemSliceTy { return &SemSliceTy{elem: elem} }

func (t *SemSliceTy) Elem() SemTyKind { return t.elem }

// SemRefTy is a semantic `&T` or `&mut T` type.
type SemRefTy struct {
	semTy
	mut   Mutability
	inner SemTyKind
}

func NewSemRefTy(mut Mutability, inner SemTyKind) *SemRefTy {
	return &SemRefTy{mut: mut, inner: inner}
}

func (t *SemRefTy) Mutability() Mutability { return t.mut }
func (t *SemRefTy) Inner() SemTyKind       { return t.inner }

// SemRawPtrTy is a semantic `*const T` or `*mut T` type.
type SemRawPtrTy struct {
	semTy
	mut   Mutability
	inner SemTyKind
}

func NewSemRawPtrTy(mut Mutability, inner SemTyKind) *SemRawPtrTy {
	return &SemRawPtrTy{mut: mut, inner: inner}
}

func (t *SemRawPtrTy) Mutability() Mutability { return t.mut }
func (t *SemRawPtrTy) Inner() SemTyKind       { return t.inner }

// SemFnPtrTy is a semantic `fn(..) -> ..` type.
type SemFnPtrTy struct {
	semTy
	params []SemTyKind
	ret    SemTyKind
}

func NewSemFnPtrTy(params []SemTyKind, ret SemTyKind) *SemFnPtrTy {
	return &SemFnPtrTy{params: params, ret: ret}
}

func (t *SemFnPtrTy) Params() []SemTyKind { return t.params }
func (t *SemFnPtrTy) Ret() SemTyKind      { return t.ret }

// SemFnTy is the unique zero-sized type of a specific function item.
type SemFnTy struct {
	semTy
	item ItemID
}

func NewSemFnTy(item ItemID) *SemFnTy { return &SemFnTy{item: item} }

// Item returns the function item this type belongs to.
func (t *SemFnTy) Item() ItemID { return t.item }

// SemClosureTy is the unique type of a specific closure literal.
type SemClosureTy struct {
	semTy
	body BodyID
}

func NewSemClosureTy(body BodyID) *SemClosureTy { return &SemClosureTy{body: body} }

// Body returns the closure body this type belongs to.
func (t *SemClosureTy) Body() BodyID { return t.body }

// SemAdtTy is a semantic struct, enum, or union type.
type SemAdtTy struct {
	semTy
	def  TyDefID
	args []SemTyKind
}

func NewSemAdtTy(def TyDefID, args []SemTyKind) *SemAdtTy {
	return &SemAdtTy{def: def, args: args}
}

// DefID identifies the type definition.
func (t *SemAdtTy) DefID() TyDefID { return t.def }

// Args returns the generic arguments the definition is instantiated
// with.
func (t *SemAdtTy) Args() []SemTyKind { return t.args }

// SemGenericTy is an uninstantiated generic parameter.
type SemGenericTy struct {
	semTy
	id   GenericID
	name SymbolID
}

func NewSemGenericTy(id GenericID, name SymbolID) *SemGenericTy {
	return &SemGenericTy{id: id, name: name}
}

func (t *SemGenericTy) ID() GenericID { return t.id }

// Name returns the parameter's written name.
func (t *SemGenericTy) Name() string { return CurrentContext().SymbolStr(t.name) }

// SemAliasTy is a type alias that could not be fully normalized.
type SemAliasTy struct {
	semTy
	def TyDefID
}

func NewSemAliasTy(def TyDefID) *SemAliasTy { return &SemAliasTy{def: def} }

// DefID identifies the alias definition.
func (t *SemAliasTy) DefID() TyDefID { return t.def }

// SemTraitObjTy is a semantic `dyn Trait` type.
type SemTraitObjTy struct {
	semTy
	bounds []TyDefID
}

func NewSemTraitObjTy(bounds []TyDefID) *SemTraitObjTy {
	return &SemTraitObjTy{bounds: bounds}
}

// Bounds identifies the trait definitions the object is bound by.
func (t *SemTraitObjTy) Bounds() []TyDefID { return t.bounds }

// SemUnstableTy stands in for semantic types the stable API cannot
// represent, and for the types of expressions the host compiler could
// not fully analyze. Lint passes must not draw conclusions from it.
type SemUnstableTy struct {
	semTy
}
