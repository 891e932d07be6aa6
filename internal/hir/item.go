package hir

import (
	"marker/internal/source"
)

type ItemKind uint8

const (
	ItemMod ItemKind = iota
	ItemExternCrate
	ItemUse
	ItemStatic
	ItemConst
	ItemFn
	ItemTyAlias
	ItemStruct
	ItemEnum
	ItemUnion
	ItemTrait
	ItemImpl
	ItemExternBlock
	ItemMacro
)

// Item header. Name is NoSymbolID for unnamed items (use, impl, extern
// block). Owner is the enclosing item, NoItemID at crate root; the chain
// drives attribute inheritance.
type Item struct {
	Kind      ItemKind
	Span      source.Span
	Name      source.SymbolID
	Vis       Visibility
	Owner     ItemID
	AttrStart AttrID
	AttrCount uint32
	Payload   PayloadID
}

type GenericParamKind uint8

const (
	GenericLifetime GenericParamKind = iota
	GenericType
	GenericConst
)

type GenericParam struct {
	Kind    GenericParamKind
	Name    source.SymbolID
	Bounds  []TypeID
	Default TypeID
	Span    source.Span
}

type ModData struct {
	Items []ItemID
}

type ExternCrateData struct {
	CrateName source.SymbolID // original name; Item.Name holds the rename
}

type UseData struct {
	Path   []PathSegment
	Glob   bool
	Rename source.SymbolID // NoSymbolID without `as`
}

type StaticData struct {
	Mut  bool
	Ty   TypeID
	Body BodyID
}

type ConstData struct {
	Ty   TypeID
	Body BodyID // NoBodyID for trait constants without a default
}

type FnParam struct {
	Pat  PatID
	Ty   TypeID
	Span source.Span
}

type FnData struct {
	Generics []GenericParam
	Params   []FnParam
	Ret      TypeID // NoTypeID means unit
	Body     BodyID // NoBodyID for trait method declarations and extern fns
	HasSelf  bool
	SelfRef  bool
	SelfMut  bool
	IsAsync  bool
	IsUnsafe bool
	IsConst  bool
}

type TyAliasData struct {
	Generics []GenericParam
	Aliased  TypeID // NoTypeID for associated type declarations
}

type FieldsKind uint8

const (
	FieldsUnit FieldsKind = iota
	FieldsTuple
	FieldsNamed
)

// Field of a struct, union, or enum variant. Index is the declaration
// position; tuple fields have no name.
type Field struct {
	Owner     ItemID
	Variant   VariantID // NoVariantID for struct/union fields
	Name      source.SymbolID
	Index     uint32
	Ty        TypeID
	Vis       Visibility
	AttrStart AttrID
	AttrCount uint32
	Span      source.Span
}

type StructData struct {
	Generics   []GenericParam
	FieldsKind FieldsKind
	Fields     []FieldID
}

type Variant struct {
	Owner      ItemID
	Name       source.SymbolID
	FieldsKind FieldsKind
	Fields     []FieldID
	Discr      ExprID // NoExprID when absent
	AttrStart  AttrID
	AttrCount  uint32
	Span       source.Span
}

type EnumData struct {
	Generics []GenericParam
	Variants []VariantID
}

type UnionData struct {
	Generics []GenericParam
	Fields   []FieldID
}

type TraitData struct {
	Generics    []GenericParam
	Supertraits []TypeID
	Items       []ItemID
	IsUnsafe    bool
}

type ImplData struct {
	Generics []GenericParam
	Trait    TypeID // NoTypeID for inherent impls
	SelfTy   TypeID
	Items    []ItemID
	IsUnsafe bool
	Negative bool
}

type ExternBlockData struct {
	Abi   source.SymbolID
	Items []ItemID
}

type MacroData struct {
	Macro MacroID
}
