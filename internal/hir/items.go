package hir

import (
	"fmt"

	"fortio.org/safecast"

	"marker/internal/source"
)

// Items manages allocation of items and their sub-entities.
type Items struct {
	Arena        *Arena[Item]
	Mods         *Arena[ModData]
	ExternCrates *Arena[ExternCrateData]
	Uses         *Arena[UseData]
	Statics      *Arena[StaticData]
	Consts       *Arena[ConstData]
	Fns          *Arena[FnData]
	TyAliases    *Arena[TyAliasData]
	Structs      *Arena[StructData]
	Enums        *Arena[EnumData]
	Unions       *Arena[UnionData]
	Traits       *Arena[TraitData]
	Impls        *Arena[ImplData]
	ExternBlocks *Arena[ExternBlockData]
	Macros       *Arena[MacroData]
	Fields       *Arena[Field]
	Variants     *Arena[Variant]
	Attrs        *Arena[Attr]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Items{
		Arena:        NewArena[Item](capHint),
		Mods:         NewArena[ModData](capHint),
		ExternCrates: NewArena[ExternCrateData](capHint),
		Uses:         NewArena[UseData](capHint),
		Statics:      NewArena[StaticData](capHint),
		Consts:       NewArena[ConstData](capHint),
		Fns:          NewArena[FnData](capHint),
		TyAliases:    NewArena[TyAliasData](capHint),
		Structs:      NewArena[StructData](capHint),
		Enums:        NewArena[EnumData](capHint),
		Unions:       NewArena[UnionData](capHint),
		Traits:       NewArena[TraitData](capHint),
		Impls:        NewArena[ImplData](capHint),
		ExternBlocks: NewArena[ExternBlockData](capHint),
		Macros:       NewArena[MacroData](capHint),
		Fields:       NewArena[Field](capHint),
		Variants:     NewArena[Variant](capHint),
		Attrs:        NewArena[Attr](capHint),
	}
}

// ItemHead carries the header parts shared by every item constructor.
type ItemHead struct {
	Span  source.Span
	Name  source.SymbolID
	Vis   Visibility
	Owner ItemID
	Attrs []Attr
}

func (i *Items) new(kind ItemKind, head ItemHead, payload PayloadID) ItemID {
	attrStart, attrCount := i.AllocateAttrs(head.Attrs)
	return ItemID(i.Arena.Allocate(Item{
		Kind:      kind,
		Span:      head.Span,
		Name:      head.Name,
		Vis:       head.Vis,
		Owner:     head.Owner,
		AttrStart: attrStart,
		AttrCount: attrCount,
		Payload:   payload,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// AllocateAttrs stores attrs contiguously and returns the start + count pair.
func (i *Items) AllocateAttrs(attrs []Attr) (AttrID, uint32) {
	if len(attrs) == 0 {
		return NoAttrID, 0
	}
	var start AttrID
	for idx, attr := range attrs {
		id := AttrID(i.Attrs.Allocate(attr))
		if idx == 0 {
			start = id
		}
	}
	count, err := safecast.Conv[uint32](len(attrs))
	if err != nil {
		panic(fmt.Errorf("attrs count overflow: %w", err))
	}
	return start, count
}

// CollectAttrs returns a copy of the attribute run starting at attrStart.
func (i *Items) CollectAttrs(attrStart AttrID, attrCount uint32) []Attr {
	if attrCount == 0 || !attrStart.IsValid() {
		return nil
	}
	result := make([]Attr, 0, attrCount)
	base := uint32(attrStart)
	for offset := uint32(0); offset < attrCount; offset++ {
		attr := i.Attrs.Get(base + offset)
		if attr == nil {
			continue
		}
		result = append(result, *attr)
	}
	return result
}

// ItemAttrs returns the attributes attached to an item.
func (i *Items) ItemAttrs(id ItemID) []Attr {
	item := i.Get(id)
	if item == nil {
		return nil
	}
	return i.CollectAttrs(item.AttrStart, item.AttrCount)
}

func (i *Items) NewMod(head ItemHead, items []ItemID) ItemID {
	payload := i.Mods.Allocate(ModData{Items: items})
	return i.new(ItemMod, head, PayloadID(payload))
}

func (i *Items) Mod(id ItemID) (*ModData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemMod {
		return nil, false
	}
	return i.Mods.Get(uint32(item.Payload)), true
}

// SetModItems installs the child list after the children are parsed.
func (i *Items) SetModItems(id ItemID, items []ItemID) {
	if data, ok := i.Mod(id); ok {
		data.Items = items
	}
}

func (i *Items) NewExternCrate(head ItemHead, crateName source.SymbolID) ItemID {
	payload := i.ExternCrates.Allocate(ExternCrateData{CrateName: crateName})
	return i.new(ItemExternCrate, head, PayloadID(payload))
}

func (i *Items) ExternCrate(id ItemID) (*ExternCrateData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemExternCrate {
		return nil, false
	}
	return i.ExternCrates.Get(uint32(item.Payload)), true
}

func (i *Items) NewUse(head ItemHead, data UseData) ItemID {
	payload := i.Uses.Allocate(data)
	return i.new(ItemUse, head, PayloadID(payload))
}

func (i *Items) Use(id ItemID) (*UseData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemUse {
		return nil, false
	}
	return i.Uses.Get(uint32(item.Payload)), true
}

func (i *Items) NewStatic(head ItemHead, data StaticData) ItemID {
	payload := i.Statics.Allocate(data)
	return i.new(ItemStatic, head, PayloadID(payload))
}

func (i *Items) Static(id ItemID) (*StaticData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemStatic {
		return nil, false
	}
	return i.Statics.Get(uint32(item.Payload)), true
}

func (i *Items) NewConst(head ItemHead, data ConstData) ItemID {
	payload := i.Consts.Allocate(data)
	return i.new(ItemConst, head, PayloadID(payload))
}

func (i *Items) Const(id ItemID) (*ConstData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemConst {
		return nil, false
	}
	return i.Consts.Get(uint32(item.Payload)), true
}

func (i *Items) NewFn(head ItemHead, data FnData) ItemID {
	payload := i.Fns.Allocate(data)
	return i.new(ItemFn, head, PayloadID(payload))
}

func (i *Items) Fn(id ItemID) (*FnData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

func (i *Items) NewTyAlias(head ItemHead, data TyAliasData) ItemID {
	payload := i.TyAliases.Allocate(data)
	return i.new(ItemTyAlias, head, PayloadID(payload))
}

func (i *Items) TyAlias(id ItemID) (*TyAliasData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemTyAlias {
		return nil, false
	}
	return i.TyAliases.Get(uint32(item.Payload)), true
}

func (i *Items) NewStruct(head ItemHead, data StructData) ItemID {
	payload := i.Structs.Allocate(data)
	return i.new(ItemStruct, head, PayloadID(payload))
}

func (i *Items) Struct(id ItemID) (*StructData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemStruct {
		return nil, false
	}
	return i.Structs.Get(uint32(item.Payload)), true
}

func (i *Items) NewEnum(head ItemHead, data EnumData) ItemID {
	payload := i.Enums.Allocate(data)
	return i.new(ItemEnum, head, PayloadID(payload))
}

func (i *Items) Enum(id ItemID) (*EnumData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemEnum {
		return nil, false
	}
	return i.Enums.Get(uint32(item.Payload)), true
}

func (i *Items) NewUnion(head ItemHead, data UnionData) ItemID {
	payload := i.Unions.Allocate(data)
	return i.new(ItemUnion, head, PayloadID(payload))
}

func (i *Items) Union(id ItemID) (*UnionData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemUnion {
		return nil, false
	}
	return i.Unions.Get(uint32(item.Payload)), true
}

func (i *Items) NewTrait(head ItemHead, data TraitData) ItemID {
	payload := i.Traits.Allocate(data)
	return i.new(ItemTrait, head, PayloadID(payload))
}

func (i *Items) Trait(id ItemID) (*TraitData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemTrait {
		return nil, false
	}
	return i.Traits.Get(uint32(item.Payload)), true
}

// SetTraitItems installs the member list after the members are parsed.
func (i *Items) SetTraitItems(id ItemID, items []ItemID) {
	if data, ok := i.Trait(id); ok {
		data.Items = items
	}
}

func (i *Items) NewImpl(head ItemHead, data ImplData) ItemID {
	payload := i.Impls.Allocate(data)
	return i.new(ItemImpl, head, PayloadID(payload))
}

func (i *Items) Impl(id ItemID) (*ImplData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemImpl {
		return nil, false
	}
	return i.Impls.Get(uint32(item.Payload)), true
}

// SetImplItems installs the member list after the members are parsed.
func (i *Items) SetImplItems(id ItemID, items []ItemID) {
	if data, ok := i.Impl(id); ok {
		data.Items = items
	}
}

func (i *Items) NewExternBlock(head ItemHead, data ExternBlockData) ItemID {
	payload := i.ExternBlocks.Allocate(data)
	return i.new(ItemExternBlock, head, PayloadID(payload))
}

func (i *Items) ExternBlock(id ItemID) (*ExternBlockData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemExternBlock {
		return nil, false
	}
	return i.ExternBlocks.Get(uint32(item.Payload)), true
}

// SetExternBlockItems installs the member list after the members are parsed.
func (i *Items) SetExternBlockItems(id ItemID, items []ItemID) {
	if data, ok := i.ExternBlock(id); ok {
		data.Items = items
	}
}

func (i *Items) NewMacro(head ItemHead, macro MacroID) ItemID {
	payload := i.Macros.Allocate(MacroData{Macro: macro})
	return i.new(ItemMacro, head, PayloadID(payload))
}

func (i *Items) MacroDef(id ItemID) (*MacroData, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemMacro {
		return nil, false
	}
	return i.Macros.Get(uint32(item.Payload)), true
}

func (i *Items) NewField(f Field) FieldID {
	return FieldID(i.Fields.Allocate(f))
}

func (i *Items) Field(id FieldID) *Field {
	return i.Fields.Get(uint32(id))
}

func (i *Items) NewVariant(v Variant) VariantID {
	return VariantID(i.Variants.Allocate(v))
}

func (i *Items) Variant(id VariantID) *Variant {
	return i.Variants.Get(uint32(id))
}
