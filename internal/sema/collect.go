package sema

import (
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/source"
)

// namespace separates type-like and value-like definitions the way the
// host language does: a struct and a fn may share a name.
type namespace uint8

const (
	nsType namespace = iota
	nsValue
)

// modScope holds the definitions directly inside one module. The crate
// root uses hir.NoItemID as its key.
type modScope struct {
	types  map[source.SymbolID]hir.ItemID
	values map[source.SymbolID]hir.ItemID
}

func newModScope() *modScope {
	return &modScope{
		types:  make(map[source.SymbolID]hir.ItemID),
		values: make(map[source.SymbolID]hir.ItemID),
	}
}

func (s *modScope) ns(n namespace) map[source.SymbolID]hir.ItemID {
	if n == nsType {
		return s.types
	}
	return s.values
}

// collect builds module scopes, the impl index, and reports duplicate
// definitions inside one namespace of one module.
func (a *Analysis) collect() {
	a.scopes[hir.NoItemID] = newModScope()
	for _, id := range a.Crate.Root {
		a.collectItem(hir.NoItemID, id)
	}
	a.resolveUses()
	a.indexImpls()
}

func (a *Analysis) collectItem(mod hir.ItemID, id hir.ItemID) {
	item := a.Crate.Items.Get(id)
	if item == nil {
		return
	}
	switch item.Kind {
	case hir.ItemMod:
		a.define(mod, nsType, item.Name, id, item.Span)
		a.scopes[id] = newModScope()
		if data, ok := a.Crate.Items.Mod(id); ok {
			for _, child := range data.Items {
				a.collectItem(id, child)
			}
		}
	case hir.ItemStruct, hir.ItemEnum, hir.ItemUnion, hir.ItemTrait, hir.ItemTyAlias:
		a.define(mod, nsType, item.Name, id, item.Span)
		if item.Kind == hir.ItemStruct {
			// unit and tuple structs double as value constructors
			a.define(mod, nsValue, item.Name, id, item.Span)
		}
	case hir.ItemFn, hir.ItemStatic, hir.ItemConst:
		a.define(mod, nsValue, item.Name, id, item.Span)
	case hir.ItemImpl:
		a.impls = append(a.impls, id)
	case hir.ItemUse:
		a.uses = append(a.uses, pendingUse{mod: mod, item: id})
	case hir.ItemExternBlock:
		if data, ok := a.Crate.Items.ExternBlock(id); ok {
			for _, child := range data.Items {
				a.collectItem(mod, child)
			}
		}
	case hir.ItemExternCrate, hir.ItemMacro:
		// macros resolve textually during parsing, extern crates have no
		// loadable target in a single-crate session
	}
}

func (a *Analysis) define(mod hir.ItemID, n namespace, name source.SymbolID, id hir.ItemID, span source.Span) {
	if name == source.NoSymbolID {
		return
	}
	scope := a.scopes[mod]
	if scope == nil {
		scope = newModScope()
		a.scopes[mod] = scope
	}
	table := scope.ns(n)
	if prev, exists := table[name]; exists {
		prevSpan := a.Crate.Items.Get(prev).Span
		a.bag.Add(diag.NewError(diag.SemDuplicateDef, span,
			"the name \""+a.Crate.Interner.MustLookup(name)+"\" is defined multiple times").
			WithNote(prevSpan, "previous definition is here"))
		return
	}
	table[name] = id
}

type pendingUse struct {
	mod  hir.ItemID
	item hir.ItemID
}

// resolveUses binds use declarations after all definitions are known.
// A glob import copies the target module's tables; conflicts keep the
// explicit definition.
func (a *Analysis) resolveUses() {
	for _, pu := range a.uses {
		data, ok := a.Crate.Items.Use(pu.item)
		if !ok || len(data.Path) == 0 {
			continue
		}
		if data.Glob {
			target, found := a.resolveModPath(pu.mod, data.Path)
			if !found {
				continue
			}
			src := a.scopes[target]
			dst := a.scopes[pu.mod]
			if src == nil || dst == nil {
				continue
			}
			for name, id := range src.types {
				if _, exists := dst.types[name]; !exists {
					dst.types[name] = id
				}
			}
			for name, id := range src.values {
				if _, exists := dst.values[name]; !exists {
					dst.values[name] = id
				}
			}
			continue
		}
		local := data.Rename
		if local == source.NoSymbolID {
			local = data.Path[len(data.Path)-1].Name
		}
		for _, n := range []namespace{nsType, nsValue} {
			if res := a.resolvePathIn(pu.mod, data.Path, n); res.Kind == ResItem {
				a.scopes[pu.mod].ns(n)[local] = res.Item
			}
		}
	}
}

// indexImpls resolves each impl's self type and groups impls by ADT.
func (a *Analysis) indexImpls() {
	for _, implID := range a.impls {
		data, ok := a.Crate.Items.Impl(implID)
		if !ok {
			continue
		}
		owner := a.moduleOf(implID)
		if data.Trait.IsValid() {
			if traitItem := a.resolveTypeToItem(owner, data.Trait); traitItem.IsValid() {
				a.traitOfImpl[implID] = traitItem
			}
		}
		selfItem := a.resolveTypeToItem(owner, data.SelfTy)
		if !selfItem.IsValid() {
			continue
		}
		a.selfOfImpl[implID] = selfItem
		a.implsByAdt[selfItem] = append(a.implsByAdt[selfItem], implID)
	}
}

// moduleOf walks the owner chain to the enclosing module, excluding the
// item itself so a module's own parent resolves correctly.
func (a *Analysis) moduleOf(id hir.ItemID) hir.ItemID {
	item := a.Crate.Items.Get(id)
	if item == nil {
		return hir.NoItemID
	}
	for cur := item.Owner; cur.IsValid(); {
		it := a.Crate.Items.Get(cur)
		if it == nil {
			break
		}
		if it.Kind == hir.ItemMod {
			return cur
		}
		cur = it.Owner
	}
	return hir.NoItemID
}

// resolveTypeToItem maps a syntactic type to the item it names, peeling
// references so `impl Trait for &T` still groups under T.
func (a *Analysis) resolveTypeToItem(mod hir.ItemID, ty hir.TypeID) hir.ItemID {
	t := a.Crate.Types.Get(ty)
	if t == nil {
		return hir.NoItemID
	}
	switch t.Kind {
	case hir.TypeRef:
		if data, ok := a.Crate.Types.Ref(ty); ok {
			return a.resolveTypeToItem(mod, data.Inner)
		}
	case hir.TypePath:
		data, ok := a.Crate.Types.Path(ty)
		if !ok {
			return hir.NoItemID
		}
		res := a.resolvePathIn(mod, data.Segments, nsType)
		if res.Kind == ResItem {
			return res.Item
		}
	}
	return hir.NoItemID
}
