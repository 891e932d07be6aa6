package sema

import (
	"strings"

	"marker/internal/hir"
	"marker/internal/source"
)

// ResKind tags what a path resolved to.
type ResKind uint8

const (
	ResErr ResKind = iota
	ResItem
	ResVariant
	ResLocal
	ResGeneric
	ResSelfTy
)

// Res is the resolution of one path. Exactly the fields implied by Kind
// are meaningful.
type Res struct {
	Kind         ResKind
	Item         hir.ItemID
	Variant      hir.VariantID
	Local        hir.PatID
	GenericOwner hir.ItemID
	GenericIndex uint32
}

// resolvePathIn resolves a path starting from the given module. The
// leading segment may be crate, super, or self; otherwise lookup walks
// the lexical module chain outward.
func (a *Analysis) resolvePathIn(mod hir.ItemID, segs []hir.PathSegment, ns namespace) Res {
	if len(segs) == 0 {
		return Res{}
	}

	cur := mod
	idx := 0
	switch a.segName(segs[0]) {
	case "crate":
		cur = hir.NoItemID
		idx = 1
	case "super":
		cur = a.parentModule(mod)
		idx = 1
	case "self":
		idx = 1
	default:
		// lexical search for the first segment
		first, found := a.lookupLexical(mod, segs[0].Name, nsFor(len(segs) == 1, ns))
		if !found {
			return Res{}
		}
		if len(segs) == 1 {
			return Res{Kind: ResItem, Item: first}
		}
		return a.resolveRelative(first, segs[1:], ns)
	}

	if idx >= len(segs) {
		return Res{}
	}
	scope := a.scopes[cur]
	if scope == nil {
		return Res{}
	}
	rest := segs[idx:]
	first, found := scope.ns(nsFor(len(rest) == 1, ns))[rest[0].Name]
	if !found {
		return Res{}
	}
	if len(rest) == 1 {
		return Res{Kind: ResItem, Item: first}
	}
	return a.resolveRelative(first, rest[1:], ns)
}

// resolveRelative walks the remaining segments under a resolved item.
func (a *Analysis) resolveRelative(base hir.ItemID, segs []hir.PathSegment, ns namespace) Res {
	for i, seg := range segs {
		last := i == len(segs)-1
		item := a.Crate.Items.Get(base)
		if item == nil {
			return Res{}
		}
		switch item.Kind {
		case hir.ItemMod:
			scope := a.scopes[base]
			if scope == nil {
				return Res{}
			}
			next, found := scope.ns(nsFor(last, ns))[seg.Name]
			if !found {
				return Res{}
			}
			if last {
				return Res{Kind: ResItem, Item: next}
			}
			base = next
		case hir.ItemEnum:
			if !last {
				return Res{}
			}
			if v := a.variantByName(base, seg.Name); v != 0 {
				return Res{Kind: ResVariant, Item: base, Variant: v}
			}
			return Res{}
		case hir.ItemStruct, hir.ItemUnion, hir.ItemTrait:
			// type-relative segment: an associated fn or const
			if !last {
				return Res{}
			}
			if assoc := a.assocItem(base, seg.Name); assoc.IsValid() {
				return Res{Kind: ResItem, Item: assoc}
			}
			return Res{}
		default:
			return Res{}
		}
	}
	return Res{}
}

// lookupLexical searches the module chain from mod outward to the root.
func (a *Analysis) lookupLexical(mod hir.ItemID, name source.SymbolID, ns namespace) (hir.ItemID, bool) {
	for {
		if scope := a.scopes[mod]; scope != nil {
			if id, ok := scope.ns(ns)[name]; ok {
				return id, true
			}
		}
		if mod == hir.NoItemID {
			return hir.NoItemID, false
		}
		mod = a.parentModule(mod)
	}
}

// resolveModPath resolves a path that must end in a module.
func (a *Analysis) resolveModPath(mod hir.ItemID, segs []hir.PathSegment) (hir.ItemID, bool) {
	res := a.resolvePathIn(mod, segs, nsType)
	if res.Kind != ResItem {
		return hir.NoItemID, false
	}
	if a.Crate.Items.Get(res.Item).Kind != hir.ItemMod {
		return hir.NoItemID, false
	}
	return res.Item, true
}

// variantByName finds an enum variant by name, 0 when absent.
func (a *Analysis) variantByName(enumID hir.ItemID, name source.SymbolID) hir.VariantID {
	data, ok := a.Crate.Items.Enum(enumID)
	if !ok {
		return 0
	}
	for _, vid := range data.Variants {
		if v := a.Crate.Items.Variant(vid); v != nil && v.Name == name {
			return vid
		}
	}
	return 0
}

// assocItem finds an associated item by name across every impl of the
// given ADT or trait, trait declarations included.
func (a *Analysis) assocItem(base hir.ItemID, name source.SymbolID) hir.ItemID {
	if a.Crate.Items.Get(base).Kind == hir.ItemTrait {
		if data, ok := a.Crate.Items.Trait(base); ok {
			for _, child := range data.Items {
				if a.Crate.Items.Get(child).Name == name {
					return child
				}
			}
		}
		return hir.NoItemID
	}
	for _, implID := range a.implsByAdt[base] {
		data, ok := a.Crate.Items.Impl(implID)
		if !ok {
			continue
		}
		for _, child := range data.Items {
			if a.Crate.Items.Get(child).Name == name {
				return child
			}
		}
	}
	return hir.NoItemID
}

// parentModule returns the module enclosing the given module item.
func (a *Analysis) parentModule(mod hir.ItemID) hir.ItemID {
	if mod == hir.NoItemID {
		return hir.NoItemID
	}
	return a.moduleOf(mod)
}

// nsFor picks the namespace of the final segment; intermediate segments
// always resolve in the type namespace because only modules, enums, and
// ADTs can own further segments.
func nsFor(last bool, ns namespace) namespace {
	if last {
		return ns
	}
	return nsType
}

// ResolveTypePath resolves a ::-separated path string to the matching
// type definitions. The current crate yields at most one match; an empty
// slice means the path did not resolve.
func (a *Analysis) ResolveTypePath(path string) []hir.ItemID {
	parts := strings.Split(path, "::")
	segs := make([]hir.PathSegment, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil
		}
		segs = append(segs, hir.PathSegment{Name: a.Crate.Interner.Intern(part)})
	}
	res := a.resolvePathIn(hir.NoItemID, segs, nsType)
	if res.Kind != ResItem {
		return nil
	}
	switch a.Crate.Items.Get(res.Item).Kind {
	case hir.ItemStruct, hir.ItemEnum, hir.ItemUnion, hir.ItemTyAlias, hir.ItemTrait:
		return []hir.ItemID{res.Item}
	default:
		return nil
	}
}

// segName returns the raw text of a path segment for keyword checks.
func (a *Analysis) segName(seg hir.PathSegment) string {
	return a.Crate.Interner.MustLookup(seg.Name)
}
