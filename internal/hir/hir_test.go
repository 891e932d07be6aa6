package hir_test

import (
	"testing"

	"marker/internal/hir"
	"marker/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestArenaIDsAreOneBased(t *testing.T) {
	a := hir.NewArena[int](0)
	if got := a.Get(0); got != nil {
		t.Fatal("index 0 must be absent")
	}
	first := a.Allocate(10)
	second := a.Allocate(20)
	if first != 1 || second != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", first, second)
	}
	if *a.Get(first) != 10 || *a.Get(second) != 20 {
		t.Fatal("values roundtrip failed")
	}
	if a.Get(3) != nil {
		t.Fatal("out of range must be absent")
	}
}

func TestItemAccessorsRejectWrongKind(t *testing.T) {
	c := hir.NewCrate("demo", nil)
	fnID := c.Items.NewFn(hir.ItemHead{
		Span: span(0, 10),
		Name: c.NameSymbol("main"),
	}, hir.FnData{})

	if _, ok := c.Items.Fn(fnID); !ok {
		t.Fatal("Fn accessor failed on fn item")
	}
	if _, ok := c.Items.Struct(fnID); ok {
		t.Fatal("Struct accessor must reject a fn item")
	}
	if _, ok := c.Items.Fn(hir.NoItemID); ok {
		t.Fatal("Fn accessor must reject NoItemID")
	}
}

func TestOwnerChain(t *testing.T) {
	c := hir.NewCrate("demo", nil)
	outer := c.Items.NewMod(hir.ItemHead{Span: span(0, 100), Name: c.NameSymbol("outer")}, nil)
	inner := c.Items.NewMod(hir.ItemHead{Span: span(10, 90), Name: c.NameSymbol("inner"), Owner: outer}, nil)
	fn := c.Items.NewFn(hir.ItemHead{Span: span(20, 80), Name: c.NameSymbol("f"), Owner: inner}, hir.FnData{})
	c.Items.SetModItems(outer, []hir.ItemID{inner})
	c.Items.SetModItems(inner, []hir.ItemID{fn})
	c.Root = []hir.ItemID{outer}

	chain := c.OwnerChain(fn)
	want := []hir.ItemID{fn, inner, outer}
	if len(chain) != len(want) {
		t.Fatalf("chain = %v, want %v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("chain = %v, want %v", chain, want)
		}
	}
}

func TestWalkItemsOrderAndStop(t *testing.T) {
	c := hir.NewCrate("demo", nil)
	m := c.Items.NewMod(hir.ItemHead{Span: span(0, 100), Name: c.NameSymbol("m")}, nil)
	f1 := c.Items.NewFn(hir.ItemHead{Span: span(10, 20), Name: c.NameSymbol("a"), Owner: m}, hir.FnData{})
	f2 := c.Items.NewFn(hir.ItemHead{Span: span(30, 40), Name: c.NameSymbol("b"), Owner: m}, hir.FnData{})
	top := c.Items.NewFn(hir.ItemHead{Span: span(50, 60), Name: c.NameSymbol("top")}, hir.FnData{})
	c.Items.SetModItems(m, []hir.ItemID{f1, f2})
	c.Root = []hir.ItemID{m, top}

	var visited []hir.ItemID
	c.WalkItems(func(id hir.ItemID) bool {
		visited = append(visited, id)
		return true
	})
	want := []hir.ItemID{m, f1, f2, top}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}

	visited = visited[:0]
	c.WalkItems(func(id hir.ItemID) bool {
		visited = append(visited, id)
		return id != f1
	})
	if len(visited) != 2 {
		t.Fatalf("early stop visited %v", visited)
	}
}

func TestAttrRuns(t *testing.T) {
	c := hir.NewCrate("demo", nil)
	attrs := []hir.Attr{
		{Name: c.NameSymbol("allow"), Span: span(0, 5)},
		{Name: c.NameSymbol("deny"), Span: span(6, 10)},
	}
	id := c.Items.NewFn(hir.ItemHead{Span: span(0, 50), Name: c.NameSymbol("f"), Attrs: attrs}, hir.FnData{})
	got := c.Items.ItemAttrs(id)
	if len(got) != 2 {
		t.Fatalf("got %d attrs, want 2", len(got))
	}
	if got[0].Name != attrs[0].Name || got[1].Name != attrs[1].Name {
		t.Fatal("attr order not preserved")
	}

	if got := c.Items.ItemAttrs(hir.NoItemID); got != nil {
		t.Fatal("attrs of NoItemID must be nil")
	}
}

func TestMacroTableShadowing(t *testing.T) {
	tbl := hir.NewMacroTable(4)
	name := source.NewInterner().Intern("five")
	first := tbl.Define(hir.Macro{Name: name})
	second := tbl.Define(hir.Macro{Name: name})
	got, ok := tbl.Lookup(name)
	if !ok || got != second {
		t.Fatalf("lookup = %v, want %v", got, second)
	}
	if tbl.Get(first) == nil {
		t.Fatal("shadowed macro must stay addressable")
	}
}

func TestEnumShape(t *testing.T) {
	c := hir.NewCrate("demo", nil)
	enumID := c.Items.NewEnum(hir.ItemHead{Span: span(0, 100), Name: c.NameSymbol("E")}, hir.EnumData{})
	v := c.Items.NewVariant(hir.Variant{Owner: enumID, Name: c.NameSymbol("A"), Span: span(10, 11)})
	f := c.Items.NewField(hir.Field{Owner: enumID, Variant: v, Index: 0, Span: span(12, 15)})
	if data, ok := c.Items.Enum(enumID); ok {
		data.Variants = []hir.VariantID{v}
	} else {
		t.Fatal("enum accessor failed")
	}
	variant := c.Items.Variant(v)
	if variant == nil || variant.Owner != enumID {
		t.Fatal("variant owner lost")
	}
	field := c.Items.Field(f)
	if field == nil || field.Variant != v {
		t.Fatal("field variant lost")
	}
}
