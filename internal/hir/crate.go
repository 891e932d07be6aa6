package hir

import (
	"marker/internal/source"
)

// Crate is the lowered form of one analyzed crate: every arena plus the
// crate-root item list. A crate is built once by the parser and read-only
// afterwards.
type Crate struct {
	Name      string
	Items     *Items
	Exprs     *Exprs
	Stmts     *Stmts
	Pats      *Pats
	Types     *Types
	Bodies    *Bodies
	Macros    *MacroTable
	Root      []ItemID
	RootAttrs []Attr
	Expns     *source.ExpnTable
	Interner  *source.Interner
}

func NewCrate(name string, interner *source.Interner) *Crate {
	if interner == nil {
		interner = source.NewInterner()
	}
	return &Crate{
		Name:     name,
		Items:    NewItems(0),
		Exprs:    NewExprs(0),
		Stmts:    NewStmts(0),
		Pats:     NewPats(0),
		Types:    NewTypes(0),
		Bodies:   NewBodies(0),
		Macros:   NewMacroTable(16),
		Expns:    source.NewExpnTable(),
		Interner: interner,
	}
}

// ChildItems returns the direct child items of a container item, nil for
// leaf items.
func (c *Crate) ChildItems(id ItemID) []ItemID {
	item := c.Items.Get(id)
	if item == nil {
		return nil
	}
	switch item.Kind {
	case ItemMod:
		if data, ok := c.Items.Mod(id); ok {
			return data.Items
		}
	case ItemTrait:
		if data, ok := c.Items.Trait(id); ok {
			return data.Items
		}
	case ItemImpl:
		if data, ok := c.Items.Impl(id); ok {
			return data.Items
		}
	case ItemExternBlock:
		if data, ok := c.Items.ExternBlock(id); ok {
			return data.Items
		}
	}
	return nil
}

// OwnerChain returns the item and its transitive owners, innermost first.
func (c *Crate) OwnerChain(id ItemID) []ItemID {
	var chain []ItemID
	for id.IsValid() {
		chain = append(chain, id)
		item := c.Items.Get(id)
		if item == nil {
			break
		}
		id = item.Owner
	}
	return chain
}

// WalkItems calls fn for every item reachable from the crate root in
// declaration order. Returning false stops the walk.
func (c *Crate) WalkItems(fn func(ItemID) bool) {
	var walk func(ids []ItemID) bool
	walk = func(ids []ItemID) bool {
		for _, id := range ids {
			if !fn(id) {
				return false
			}
			if !walk(c.ChildItems(id)) {
				return false
			}
		}
		return true
	}
	walk(c.Root)
}

// NameSymbol interns s in the crate interner.
func (c *Crate) NameSymbol(s string) source.SymbolID {
	return c.Interner.Intern(s)
}
