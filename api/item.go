package api

// ItemKind is the closed union of item nodes.
type ItemKind interface {
	// ID returns the item's ID within the current session.
	ID() ItemID
	// Span returns where the item is written.
	Span() *Span
	// Visibility returns the item's visibility.
	Visibility() *Visibility
	// Ident returns the item's name, ok=false for unnamed items such
	// as impls and extern blocks.
	Ident() (*Ident, bool)
	itemKind()
}

// ItemData holds the fields shared by every item node.
type ItemData struct {
	ID    ItemID
	Span  SpanID
	Vis   Visibility
	Ident *Ident
}

type itemData struct {
	id    ItemID
	span  SpanID
	vis   Visibility
	ident *Ident
}

func (d *itemData) ID() ItemID              { return d.id }
func (d *itemData) Span() *Span             { return CurrentContext().Span(d.span) }
func (d *itemData) Visibility() *Visibility { return &d.vis }
func (d *itemData) Ident() (*Ident, bool)   { return d.ident, d.ident != nil }
func (d *itemData) itemKind()               {}

func newItemData(data ItemData) itemData {
	return itemData{id: data.ID, span: data.Span, vis: data.Vis, ident: data.Ident}
}

// ModItem is a `mod name { .. }` module.
type ModItem struct {
	itemData
	items []ItemKind
}

func NewModItem(data ItemData, items []ItemKind) *ModItem {
	return &ModItem{itemData: newItemData(data), items: items}
}

func (i *ModItem) Items() []ItemKind { return i.items }

// ExternCrateItem is an `extern crate name;` declaration.
type ExternCrateItem struct {
	itemData
	crateName SymbolID
}

func NewExternCrateItem(data ItemData, crateName SymbolID) *ExternCrateItem {
	return &ExternCrateItem{itemData: newItemData(data), crateName: crateName}
}

// CrateName returns the name of the linked crate, which may differ
// from the item's ident when renamed with `as`.
func (i *ExternCrateItem) CrateName() string {
	return CurrentContext().SymbolStr(i.crateName)
}

// UseKind discriminates the shape of a use declaration.
type UseKind uint8

const (
	// UseSingle imports one name, possibly renamed.
	UseSingle UseKind = iota
	// UseGlob imports everything under the path with `::*`.
	UseGlob
)

// UseItem is a `use path;` declaration. Nested `use a::{b, c}` trees
// are flattened into one UseItem per leaf.
type UseItem struct {
	itemData
	path AstPath
	kind UseKind
}

func NewUseItem(data ItemData, path AstPath, kind UseKind) *UseItem {
	return &UseItem{itemData: newItemData(data), path: path, kind: kind}
}

func (i *UseItem) Path() *AstPath { return &i.path }
func (i *UseItem) Kind() UseKind  { return i.kind }
func (i *UseItem) IsGlob() bool   { return i.kind == UseGlob }

// StaticItem is a `static NAME: Ty = init;` item.
type StaticItem struct {
	itemData
	mut  Mutability
	ty   TyKind
	body BodyID
}

func NewStaticItem(data ItemData, mut Mutability, ty TyKind, body BodyID) *StaticItem {
	return &StaticItem{itemData: newItemData(data), mut: mut, ty: ty, body: body}
}

func (i *StaticItem) Mutability() Mutability { return i.mut }
func (i *StaticItem) Ty() TyKind             { return i.ty }

// BodyID returns the initializer body, ok=false for extern statics
// without one.
func (i *StaticItem) BodyID() (BodyID, bool) { return i.body, i.body != 0 }

// ConstItem is a `const NAME: Ty = init;` item.
type ConstItem struct {
	itemData
	ty   TyKind
	body BodyID
}

func NewConstItem(data ItemData, ty TyKind, body BodyID) *ConstItem {
	return &ConstItem{itemData: newItemData(data), ty: ty, body: body}
}

func (i *ConstItem) Ty() TyKind { return i.ty }

// BodyID returns the initializer body, ok=false for trait constants
// without a default.
func (i *ConstItem) BodyID() (BodyID, bool) { return i.body, i.body != 0 }

// FnItem is a free function, an associated function, or a method.
type FnItem struct {
	itemData
	generics GenericParams
	params   []Parameter
	ret      TyKind
	body     BodyID
	hasSelf  bool
	isConst  bool
	isAsync  bool
	isUnsafe bool
	abi      string
}

// FnItemOpts carries the flags of a FnItem construction.
type FnItemOpts struct {
	HasSelf  bool
	IsConst  bool
	IsAsync  bool
	IsUnsafe bool
	Abi      string
}

func NewFnItem(data ItemData, generics GenericParams, params []Parameter, ret TyKind, body BodyID, opts FnItemOpts) *FnItem {
	return &FnItem{
		itemData: newItemData(data),
		generics: generics,
		params:   params,
		ret:      ret,
		body:     body,
		hasSelf:  opts.HasSelf,
		isConst:  opts.IsConst,
		isAsync:  opts.IsAsync,
		isUnsafe: opts.IsUnsafe,
		abi:      opts.Abi,
	}
}

func (i *FnItem) Generics() *GenericParams { return &i.generics }

// Params returns the declared parameters, excluding any self
// receiver.
func (i *FnItem) Params() []Parameter { return i.params }

// Ret returns the written return type, ok=false when elided.
func (i *FnItem) Ret() (TyKind, bool) { return i.ret, i.ret != nil }

// BodyID returns the function body, ok=false for trait methods
// without a default and extern declarations.
func (i *FnItem) BodyID() (BodyID, bool) { return i.body, i.body != 0 }

// HasSelf reports whether the function takes a self receiver.
func (i *FnItem) HasSelf() bool { return i.hasSelf }

func (i *FnItem) IsConst() bool  { return i.isConst }
func (i *FnItem) IsAsync() bool  { return i.isAsync }
func (i *FnItem) IsUnsafe() bool { return i.isUnsafe }

// Abi returns the declared ABI string, "" for the default.
func (i *FnItem) Abi() string { return i.abi }

// TyAliasItem is a `type Name = Ty;` alias.
type TyAliasItem struct {
	itemData
	generics GenericParams
	aliased  TyKind
}

func NewTyAliasItem(data ItemData, generics GenericParams, aliased TyKind) *TyAliasItem {
	return &TyAliasItem{itemData: newItemData(data), generics: generics, aliased: aliased}
}

func (i *TyAliasItem) Generics() *GenericParams { return &i.generics }

// Aliased returns the aliased type, ok=false for associated type
// declarations without a default.
func (i *TyAliasItem) Aliased() (TyKind, bool) { return i.aliased, i.aliased != nil }

// Field is one field of a struct, union, or enum variant. Tuple
// fields are named by their decimal index.
type Field struct {
	id   FieldID
	vis  Visibility
	ident Ident
	ty   TyKind
	span SpanID
}

func NewField(id FieldID, vis Visibility, ident Ident, ty TyKind, span SpanID) *Field {
	return &Field{id: id, vis: vis, ident: ident, ty: ty, span: span}
}

func (f *Field) ID() FieldID             { return f.id }
func (f *Field) Visibility() *Visibility { return &f.vis }
func (f *Field) Ident() *Ident           { return &f.ident }
func (f *Field) Ty() TyKind              { return f.ty }
func (f *Field) Span() *Span             { return CurrentContext().Span(f.span) }

// AdtShape discriminates how a struct or variant lists its fields.
type AdtShape uint8

const (
	// AdtUnit has no fields, like `struct Marker;`.
	AdtUnit AdtShape = iota
	// AdtTuple has positional fields, like `struct Pair(u8, u8);`.
	AdtTuple
	// AdtNamed has named fields, like `struct Point { x: i32 }`.
	AdtNamed
)

// StructItem is a `struct` definition.
type StructItem struct {
	itemData
	generics GenericParams
	shape    AdtShape
	fields   []*Field
}

func NewStructItem(data ItemData, generics GenericParams, shape AdtShape, fields []*Field) *StructItem {
	return &StructItem{itemData: newItemData(data), generics: generics, shape: shape, fields: fields}
}

func (i *StructItem) Generics() *GenericParams { return &i.generics }
func (i *StructItem) Shape() AdtShape          { return i.shape }
func (i *StructItem) Fields() []*Field         { return i.fields }

// EnumVariant is one variant of an enum.
type EnumVariant struct {
	id            VariantID
	ident         Ident
	shape         AdtShape
	fields        []*Field
	discriminant  BodyID
	span          SpanID
}

func NewEnumVariant(id VariantID, ident Ident, shape AdtShape, fields []*Field, discriminant BodyID, span SpanID) *EnumVariant {
	return &EnumVariant{id: id, ident: ident, shape: shape, fields: fields, discriminant: discriminant, span: span}
}

func (v *EnumVariant) ID() VariantID   { return v.id }
func (v *EnumVariant) Ident() *Ident   { return &v.ident }
func (v *EnumVariant) Shape() AdtShape { return v.shape }
func (v *EnumVariant) Fields() []*Field { return v.fields }

// Discriminant returns the explicit discriminant body, ok=false when
// absent.
func (v *EnumVariant) Discriminant() (BodyID, bool) {
	return v.discriminant, v.discriminant != 0
}

func (v *EnumVariant) Span() *Span { return CurrentContext().Span(v.span) }

// EnumItem is an `enum` definition.
type EnumItem struct {
	itemData
	generics GenericParams
	variants []*EnumVariant
}

func NewEnumItem(data ItemData, generics GenericParams, variants []*EnumVariant) *EnumItem {
	return &EnumItem{itemData: newItemData(data), generics: generics, variants: variants}
}

func (i *EnumItem) Generics() *GenericParams { return &i.generics }
func (i *EnumItem) Variants() []*EnumVariant { return i.variants }

// UnionItem is a `union` definition.
type UnionItem struct {
	itemData
	generics GenericParams
	fields   []*Field
}

func NewUnionItem(data ItemData, generics GenericParams, fields []*Field) *UnionItem {
	return &UnionItem{itemData: newItemData(data), generics: generics, fields: fields}
}

func (i *UnionItem) Generics() *GenericParams { return &i.generics }
func (i *UnionItem) Fields() []*Field         { return i.fields }

// TraitItem is a `trait` definition. Associated items appear as
// regular items without bodies where no default is given.
type TraitItem struct {
	itemData
	generics    GenericParams
	supertraits []AstPath
	items       []ItemKind
	isUnsafe    bool
}

func NewTraitItem(data ItemData, generics GenericParams, supertraits []AstPath, items []ItemKind, isUnsafe bool) *TraitItem {
	return &TraitItem{itemData: newItemData(data), generics: generics, supertraits: supertraits, items: items, isUnsafe: isUnsafe}
}

func (i *TraitItem) Generics() *GenericParams { return &i.generics }
func (i *TraitItem) Supertraits() []AstPath   { return i.supertraits }
func (i *TraitItem) Items() []ItemKind        { return i.items }
func (i *TraitItem) IsUnsafe() bool           { return i.isUnsafe }

// ImplItem is an `impl` block.
type ImplItem struct {
	itemData
	generics GenericParams
	trait    *AstPath
	selfTy   TyKind
	items    []ItemKind
	isUnsafe bool
	negative bool
}

func NewImplItem(data ItemData, generics GenericParams, trait *AstPath, selfTy TyKind, items []ItemKind, isUnsafe, negative bool) *ImplItem {
	return &ImplItem{itemData: newItemData(data), generics: generics, trait: trait, selfTy: selfTy, items: items, isUnsafe: isUnsafe, negative: negative}
}

func (i *ImplItem) Generics() *GenericParams { return &i.generics }

// Trait returns the implemented trait, ok=false for inherent impls.
func (i *ImplItem) Trait() (*AstPath, bool) { return i.trait, i.trait != nil }

func (i *ImplItem) SelfTy() TyKind    { return i.selfTy }
func (i *ImplItem) Items() []ItemKind { return i.items }
func (i *ImplItem) IsUnsafe() bool    { return i.isUnsafe }
func (i *ImplItem) IsNegative() bool  { return i.negative }

// ExternBlockItem is an `extern "abi" { .. }` block. Its statics and
// functions appear as regular items without bodies.
type ExternBlockItem struct {
	itemData
	abi   string
	items []ItemKind
}

func NewExternBlockItem(data ItemData, abi string, items []ItemKind) *ExternBlockItem {
	return &ExternBlockItem{itemData: newItemData(data), abi: abi, items: items}
}

func (i *ExternBlockItem) Abi() string       { return i.abi }
func (i *ExternBlockItem) Items() []ItemKind { return i.items }

// UnstableItem stands in for items the stable API cannot represent
// yet, such as macro definitions.
type UnstableItem struct {
	itemData
}

func NewUnstableItem(data ItemData) *UnstableItem {
	return &UnstableItem{itemData: newItemData(data)}
}
