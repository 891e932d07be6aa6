package driver

import (
	"fortio.org/safecast"

	"marker/api"
	"marker/internal/hir"
)

// convertRoot converts every top-level item. Child items convert
// recursively, so after this the item cache covers the whole crate.
func (st *storage) convertRoot() []api.ItemKind {
	return st.convertItems(st.crate.Root)
}

func (st *storage) convertItems(ids []hir.ItemID) []api.ItemKind {
	out := make([]api.ItemKind, 0, len(ids))
	for _, id := range ids {
		// macro definitions are consumed entirely by expansion; lint
		// crates only ever see the items expansion produced
		if item := st.crate.Items.Get(id); item != nil && item.Kind == hir.ItemMacro {
			continue
		}
		if item := st.convertItem(id); item != nil {
			out = append(out, item)
		}
	}
	return out
}

func (st *storage) convertItem(id hir.ItemID) api.ItemKind {
	if cached, ok := st.items[id]; ok {
		return cached
	}
	item := st.crate.Items.Get(id)
	if item == nil {
		return nil
	}
	prev := st.curItem
	st.curItem = id
	defer func() { st.curItem = prev }()

	data := api.ItemData{
		ID:   packItemID(id),
		Span: st.spans.intern(item.Span),
		Vis:  st.convertVisibility(id, item),
	}
	if item.Name != 0 {
		ident := st.ident(item.Name, item.Span)
		data.Ident = &ident
	}

	var out api.ItemKind
	switch item.Kind {
	case hir.ItemMod:
		mod, _ := st.crate.Items.Mod(id)
		out = api.NewModItem(data, st.convertItems(mod.Items))
	case hir.ItemExternCrate:
		ext, _ := st.crate.Items.ExternCrate(id)
		out = api.NewExternCrateItem(data, api.SymbolID(ext.CrateName))
	case hir.ItemUse:
		use, _ := st.crate.Items.Use(id)
		kind := api.UseSingle
		if use.Glob {
			kind = api.UseGlob
		}
		out = api.NewUseItem(data, st.convertPath(use.Path), kind)
	case hir.ItemStatic:
		static, _ := st.crate.Items.Static(id)
		out = api.NewStaticItem(data, mutability(static.Mut), st.convertTy(static.Ty), bodyIDOrZero(static.Body))
	case hir.ItemConst:
		cst, _ := st.crate.Items.Const(id)
		out = api.NewConstItem(data, st.convertTy(cst.Ty), bodyIDOrZero(cst.Body))
	case hir.ItemFn:
		out = st.convertFnItem(id, data, item)
	case hir.ItemTyAlias:
		alias, _ := st.crate.Items.TyAlias(id)
		out = api.NewTyAliasItem(data, st.convertGenerics(id, alias.Generics), st.convertTy(alias.Aliased))
	case hir.ItemStruct:
		str, _ := st.crate.Items.Struct(id)
		out = api.NewStructItem(data, st.convertGenerics(id, str.Generics), adtShape(str.FieldsKind), st.convertFields(str.Fields))
	case hir.ItemEnum:
		enum, _ := st.crate.Items.Enum(id)
		variants := make([]*api.EnumVariant, 0, len(enum.Variants))
		for _, v := range enum.Variants {
			if variant := st.convertVariant(v); variant != nil {
				variants = append(variants, variant)
			}
		}
		out = api.NewEnumItem(data, st.convertGenerics(id, enum.Generics), variants)
	case hir.ItemUnion:
		union, _ := st.crate.Items.Union(id)
		out = api.NewUnionItem(data, st.convertGenerics(id, union.Generics), st.convertFields(union.Fields))
	case hir.ItemTrait:
		trait, _ := st.crate.Items.Trait(id)
		out = api.NewTraitItem(data,
			st.convertGenerics(id, trait.Generics),
			st.boundPaths(trait.Supertraits),
			st.convertItems(trait.Items),
			trait.IsUnsafe)
	case hir.ItemImpl:
		impl, _ := st.crate.Items.Impl(id)
		var trait *api.AstPath
		if path, ok := st.crate.Types.Path(impl.Trait); ok {
			p := st.convertPath(path.Segments)
			trait = &p
		}
		out = api.NewImplItem(data,
			st.convertGenerics(id, impl.Generics),
			trait,
			st.convertTy(impl.SelfTy),
			st.convertItems(impl.Items),
			impl.IsUnsafe, impl.Negative)
	case hir.ItemExternBlock:
		ext, _ := st.crate.Items.ExternBlock(id)
		out = api.NewExternBlockItem(data, st.crate.Interner.MustLookup(ext.Abi), st.convertItems(ext.Items))
	default:
		out = api.NewUnstableItem(data)
	}

	st.items[id] = out
	return out
}

func (st *storage) convertFnItem(id hir.ItemID, data api.ItemData, item *hir.Item) api.ItemKind {
	fn, _ := st.crate.Items.Fn(id)
	params := make([]api.Parameter, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, api.NewParameter(st.convertPat(p.Pat), st.convertTy(p.Ty), st.spans.intern(p.Span)))
	}
	opts := api.FnItemOpts{
		HasSelf:  fn.HasSelf,
		IsConst:  fn.IsConst,
		IsAsync:  fn.IsAsync,
		IsUnsafe: fn.IsUnsafe,
	}
	if owner := st.crate.Items.Get(item.Owner); owner != nil && owner.Kind == hir.ItemExternBlock {
		if ext, ok := st.crate.Items.ExternBlock(item.Owner); ok {
			opts.Abi = st.crate.Interner.MustLookup(ext.Abi)
		}
	}
	return api.NewFnItem(data, st.convertGenerics(id, fn.Generics), params, st.convertTy(fn.Ret), bodyIDOrZero(fn.Body), opts)
}

func (st *storage) convertFields(ids []hir.FieldID) []*api.Field {
	out := make([]*api.Field, 0, len(ids))
	for _, id := range ids {
		if f := st.convertField(id); f != nil {
			out = append(out, f)
		}
	}
	return out
}

func (st *storage) convertField(id hir.FieldID) *api.Field {
	if cached, ok := st.fields[id]; ok {
		return cached
	}
	field := st.crate.Items.Field(id)
	if field == nil {
		return nil
	}
	ident := st.indexIdent(field.Index, field.Span)
	if field.Name != 0 {
		ident = st.ident(field.Name, field.Span)
	}
	out := api.NewField(
		packFieldID(id),
		st.fieldVisibility(field),
		ident,
		st.convertTy(field.Ty),
		st.spans.intern(field.Span),
	)
	st.fields[id] = out
	return out
}

func (st *storage) convertVariant(id hir.VariantID) *api.EnumVariant {
	if cached, ok := st.variants[id]; ok {
		return cached
	}
	variant := st.crate.Items.Variant(id)
	if variant == nil {
		return nil
	}
	// An explicit discriminant is an expression in the source but a
	// body in the API: mint an anonymous body for it so that it is
	// addressable like any other constant initializer.
	var discr api.BodyID
	if variant.Discr.IsValid() {
		discr = packBodyID(st.crate.Bodies.New(variant.Owner, variant.Discr, variant.Span))
	}
	out := api.NewEnumVariant(
		packVariantID(id),
		st.ident(variant.Name, variant.Span),
		adtShape(variant.FieldsKind),
		st.convertFields(variant.Fields),
		discr,
		st.spans.intern(variant.Span),
	)
	st.variants[id] = out
	return out
}

func (st *storage) convertGenerics(owner hir.ItemID, params []hir.GenericParam) api.GenericParams {
	if len(params) == 0 {
		return api.NewGenericParams(nil)
	}
	out := make([]api.GenericParamKind, 0, len(params))
	for i, gp := range params {
		index := safecast.MustConvert[uint32](i)
		ident := st.ident(gp.Name, gp.Span)
		span := st.spans.intern(gp.Span)
		switch gp.Kind {
		case hir.GenericLifetime:
			out = append(out, api.NewLifetimeParam(ident, span))
		case hir.GenericType:
			out = append(out, api.NewTyParam(packGenericID(owner, index), ident, span))
		case hir.GenericConst:
			out = append(out, api.NewConstParam(packGenericID(owner, index), ident, st.convertTy(gp.Default), span))
		}
	}
	return api.NewGenericParams(out)
}

// convertVisibility maps the host's four-way visibility onto the API's
// scoped form. The restricting scope is the module the restriction
// names, so `pub(super)` points one module up from the defining one.
func (st *storage) convertVisibility(id hir.ItemID, item *hir.Item) api.Visibility {
	switch item.Vis {
	case hir.VisPub:
		return api.NewVisibility(api.VisPublic, 0)
	case hir.VisPubCrate:
		return api.NewVisibility(api.VisCrate, api.CrateRootID)
	case hir.VisPubSuper:
		mod := st.enclosingModule(item.Owner)
		return api.NewVisibility(api.VisPath, moduleScopeID(st.parentModule(mod)))
	default:
		return api.NewVisibility(api.VisDefault, moduleScopeID(st.enclosingModule(item.Owner)))
	}
}

// moduleScopeID converts a host module ID into a visibility scope,
// substituting the crate-root sentinel when no mod item encloses the
// position.
func moduleScopeID(mod hir.ItemID) api.ItemID {
	if !mod.IsValid() {
		return api.CrateRootID
	}
	return packItemID(mod)
}

func (st *storage) fieldVisibility(field *hir.Field) api.Visibility {
	switch field.Vis {
	case hir.VisPub:
		return api.NewVisibility(api.VisPublic, 0)
	case hir.VisPubCrate:
		return api.NewVisibility(api.VisCrate, api.CrateRootID)
	case hir.VisPubSuper:
		mod := st.enclosingModule(field.Owner)
		return api.NewVisibility(api.VisPath, moduleScopeID(st.parentModule(mod)))
	default:
		return api.NewVisibility(api.VisDefault, moduleScopeID(st.enclosingModule(field.Owner)))
	}
}

// enclosingModule walks owners up to the nearest mod item, NoItemID for
// the crate root.
func (st *storage) enclosingModule(id hir.ItemID) hir.ItemID {
	for id.IsValid() {
		item := st.crate.Items.Get(id)
		if item == nil {
			return hir.NoItemID
		}
		if item.Kind == hir.ItemMod {
			return id
		}
		id = item.Owner
	}
	return hir.NoItemID
}

func (st *storage) parentModule(mod hir.ItemID) hir.ItemID {
	item := st.crate.Items.Get(mod)
	if item == nil {
		return hir.NoItemID
	}
	return st.enclosingModule(item.Owner)
}

func adtShape(kind hir.FieldsKind) api.AdtShape {
	switch kind {
	case hir.FieldsTuple:
		return api.AdtTuple
	case hir.FieldsNamed:
		return api.AdtNamed
	default:
		return api.AdtUnit
	}
}

func bodyIDOrZero(id hir.BodyID) api.BodyID {
	if !id.IsValid() {
		return 0
	}
	return packBodyID(id)
}
