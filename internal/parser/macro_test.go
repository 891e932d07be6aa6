package parser_test

import (
	"testing"

	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/source"
)

func TestMacroExpandsInExprPosition(t *testing.T) {
	src := `
macro_rules! answer {
    () => { 42 };
}
fn sample() -> i32 { answer!() }
`
	crate := parseClean(t, src)
	block := fnBody(t, crate, 1)
	lit, ok := crate.Exprs.Lit(block.Tail)
	if !ok || lit.Kind != hir.LitInt {
		t.Fatal("expansion should leave the literal as the tail")
	}

	span := crate.Exprs.Get(block.Tail).Span
	if !span.FromExpansion() {
		t.Fatal("expanded token kept the root context")
	}
	data := crate.Expns.Get(span.Ctx)
	if data == nil {
		t.Fatal("expansion context was not recorded")
	}
	if data.Parent != source.NoExpn {
		t.Errorf("parent ctx = %d, want root", data.Parent)
	}
	snippet, ok := sourceSnippet(src, data.CallSite)
	if !ok || snippet != "answer!()" {
		t.Errorf("call site snippet = %q, want the invocation", snippet)
	}
}

func sourceSnippet(src string, span source.Span) (string, bool) {
	if int(span.End) > len(src) || span.Start > span.End {
		return "", false
	}
	return src[span.Start:span.End], true
}

func TestMacroRuleSelection(t *testing.T) {
	src := `
macro_rules! pick {
    (one) => { 1 };
    (two) => { 2 };
}
fn sample() -> i32 { pick!(two) }
`
	crate := parseClean(t, src)
	block := fnBody(t, crate, 1)
	lit, ok := crate.Exprs.Lit(block.Tail)
	if !ok {
		t.Fatal("want literal tail")
	}
	if got, _ := crate.Interner.Lookup(lit.Text); got != "2" {
		t.Errorf("selected rule produced %q, want 2", got)
	}
}

func TestMacroShadowing(t *testing.T) {
	src := `
macro_rules! v { () => { 1 }; }
macro_rules! v { () => { 2 }; }
fn sample() -> i32 { v!() }
`
	crate := parseClean(t, src)
	block := fnBody(t, crate, 2)
	lit, _ := crate.Exprs.Lit(block.Tail)
	if got, _ := crate.Interner.Lookup(lit.Text); got != "2" {
		t.Errorf("later definition should win, got %q", got)
	}
}

func TestMacroItemPosition(t *testing.T) {
	src := `
macro_rules! make_unit {
    () => { struct Generated; };
}
make_unit!();
`
	crate := parseClean(t, src)
	found := false
	for _, id := range crate.Root {
		item := crate.Items.Get(id)
		if item.Kind == hir.ItemStruct && crate.Interner.MustLookup(item.Name) == "Generated" {
			found = true
			if !item.Span.FromExpansion() {
				t.Error("generated item should carry an expansion context")
			}
		}
	}
	if !found {
		t.Fatal("item-position invocation produced no struct")
	}
}

func TestMacroStatementPosition(t *testing.T) {
	src := `
macro_rules! setup { () => { let ready = true; }; }
fn sample() { setup!(); done(ready); }
`
	crate := parseClean(t, src)
	block := fnBody(t, crate, 1)
	if len(block.Stmts) != 2 {
		t.Fatalf("got %d stmts, want let + call", len(block.Stmts))
	}
	let, ok := crate.Stmts.Let(block.Stmts[0])
	if !ok {
		t.Fatal("first statement should be the expanded let")
	}
	if !crate.Stmts.Get(block.Stmts[0]).Span.FromExpansion() {
		t.Error("expanded statement kept the root context")
	}
	if !let.Init.IsValid() {
		t.Error("expanded let lost its initializer")
	}
}

func TestNestedExpansionParentChain(t *testing.T) {
	src := `
macro_rules! inner { () => { 7 }; }
macro_rules! outer { () => { inner!() }; }
fn sample() -> i32 { outer!() }
`
	crate := parseClean(t, src)
	block := fnBody(t, crate, 2)
	span := crate.Exprs.Get(block.Tail).Span
	data := crate.Expns.Get(span.Ctx)
	if data == nil {
		t.Fatal("no context on the expanded literal")
	}
	parent := crate.Expns.Get(data.Parent)
	if parent == nil {
		t.Fatal("inner expansion should chain to the outer one")
	}
	if parent.Parent != source.NoExpn {
		t.Error("outer expansion should sit in the root context")
	}
}

func TestRecursiveMacroHitsDepthLimit(t *testing.T) {
	src := `
macro_rules! forever { () => { forever!() }; }
fn sample() { forever!(); }
`
	_, bag := parseCrate(t, src)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynMacroBadRule {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a depth limit diagnostic, got:\n%s", bag.String())
	}
}

func TestUnknownMacro(t *testing.T) {
	_, bag := parseCrate(t, "fn sample() { nothing!(); }")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynMacroUnknown {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unknown-macro diagnostic, got:\n%s", bag.String())
	}
}

func TestFragmentParametersRejected(t *testing.T) {
	src := `
macro_rules! bad {
    ($x:expr) => { $x };
}
`
	_, bag := parseCrate(t, src)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynMacroBadRule {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a bad-rule diagnostic, got:\n%s", bag.String())
	}
}

func TestNoArmMatches(t *testing.T) {
	src := `
macro_rules! strict { (yes) => { 1 }; }
fn sample() { strict!(no); }
`
	_, bag := parseCrate(t, src)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynMacroBadRule {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a no-matching-rule diagnostic, got:\n%s", bag.String())
	}
}
