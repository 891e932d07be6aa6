package driver

import (
	"io"
	"strings"
	"testing"

	"marker/api"
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/parser"
	"marker/internal/sema"
	"marker/internal/source"
)

func buildSession(t *testing.T, src string) *Session {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(src))
	crate := hir.NewCrate("test", nil)
	parseBag := diag.NewBag(64)
	parser.ParseFile(fs, fileID, crate, parseBag, parser.Options{})
	if parseBag.HasErrors() {
		t.Fatalf("parse diagnostics:\n%s", parseBag.String())
	}
	an := sema.Analyze(crate, diag.NewBag(64))
	s := NewSession(crate, an, fs, diag.NewBag(64))
	s.stderr = io.Discard
	s.lints.warn = io.Discard
	return s
}

func installContext(t *testing.T, s *Session) *api.MarkerContext {
	t.Helper()
	ctx := api.NewMarkerContext(s, s.callbacks(), api.NewAstMap(s, s.astCallbacks()))
	api.SetCurrentContext(ctx)
	t.Cleanup(func() { api.SetCurrentContext(nil) })
	return ctx
}

func findHirItem(t *testing.T, crate *hir.Crate, kind hir.ItemKind, name string) hir.ItemID {
	t.Helper()
	sym := crate.NameSymbol(name)
	found := hir.NoItemID
	crate.WalkItems(func(id hir.ItemID) bool {
		item := crate.Items.Get(id)
		if item.Kind == kind && item.Name == sym {
			found = id
			return false
		}
		return true
	})
	if !found.IsValid() {
		t.Fatalf("item %q not found", name)
	}
	return found
}

func TestIDPackingRoundTrip(t *testing.T) {
	if got, ok := unpackItemID(packItemID(7)); !ok || got != 7 {
		t.Errorf("item round trip = (%d, %v), want (7, true)", got, ok)
	}
	if got, ok := unpackExprID(packExprID(41)); !ok || got != 41 {
		t.Errorf("expr round trip = (%d, %v), want (41, true)", got, ok)
	}
	if got, ok := unpackBodyID(packBodyID(3)); !ok || got != 3 {
		t.Errorf("body round trip = (%d, %v), want (3, true)", got, ok)
	}
	if got, ok := unpackVariantID(packVariantID(12)); !ok || got != 12 {
		t.Errorf("variant round trip = (%d, %v), want (12, true)", got, ok)
	}

	// IDs minted for another crate must not resolve locally.
	if _, ok := unpackItemID(api.ItemID(uint64(2)<<32 | 7)); ok {
		t.Error("foreign-crate item ID resolved locally")
	}
	if _, ok := unpackExprID(api.ExprID(9)); ok {
		t.Error("expr ID with a zero crate half resolved locally")
	}
}

func TestGenericIDPacking(t *testing.T) {
	id := packGenericID(5, 2)
	if owner := uint32(uint64(id) >> 32); owner != 5 {
		t.Errorf("generic owner half = %d, want 5", owner)
	}
	if idx := uint32(id); idx != 2 {
		t.Errorf("generic index half = %d, want 2", idx)
	}
}

const convertFixture = `
pub fn answer() -> i32 {
    41 + 1
}

struct Point { x: i32, y: i32 }

pub enum Dir { North, South }
`

func TestConvertRootItems(t *testing.T) {
	s := buildSession(t, convertFixture)
	installContext(t, s)

	items := s.storage.convertRoot()
	if len(items) != 3 {
		t.Fatalf("converted %d root items, want 3", len(items))
	}

	fn, ok := items[0].(*api.FnItem)
	if !ok {
		t.Fatalf("items[0] is %T, want *api.FnItem", items[0])
	}
	if ident, ok := fn.Ident(); !ok || ident.Name() != "answer" {
		t.Errorf("fn ident = %v, want answer", ident)
	}
	if !fn.Visibility().IsPub() {
		t.Error("pub fn converted as private")
	}
	if ret, ok := fn.Ret(); !ok {
		t.Error("fn return type missing")
	} else if num, ok := ret.(*api.NumTy); !ok || num.Kind() != api.NumI32 {
		t.Errorf("fn return type = %T, want i32", ret)
	}

	st, ok := items[1].(*api.StructItem)
	if !ok {
		t.Fatalf("items[1] is %T, want *api.StructItem", items[1])
	}
	if st.Shape() != api.AdtNamed {
		t.Errorf("struct shape = %d, want named", st.Shape())
	}
	fields := st.Fields()
	if len(fields) != 2 || fields[0].Ident().Name() != "x" || fields[1].Ident().Name() != "y" {
		t.Fatalf("struct fields = %v", fields)
	}

	enum, ok := items[2].(*api.EnumItem)
	if !ok {
		t.Fatalf("items[2] is %T, want *api.EnumItem", items[2])
	}
	variants := enum.Variants()
	if len(variants) != 2 || variants[0].Ident().Name() != "North" {
		t.Fatalf("enum variants = %v", variants)
	}
	if variants[0].Shape() != api.AdtUnit {
		t.Errorf("unit variant shape = %d, want unit", variants[0].Shape())
	}
}

func TestConversionIsCanonical(t *testing.T) {
	s := buildSession(t, convertFixture)
	installContext(t, s)

	first := s.storage.convertRoot()
	second := s.storage.convertRoot()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("root item %d converted twice into distinct nodes", i)
		}
	}
}

func TestBodyConversionAndExprTy(t *testing.T) {
	s := buildSession(t, convertFixture)
	ctx := installContext(t, s)

	items := s.storage.convertRoot()
	fn := items[0].(*api.FnItem)
	bodyID, ok := fn.BodyID()
	if !ok {
		t.Fatal("fn has no body")
	}
	body := ctx.AST().Body(bodyID)
	block, ok := body.Expr().(*api.BlockExpr)
	if !ok {
		t.Fatalf("body root is %T, want *api.BlockExpr", body.Expr())
	}
	tail, ok := block.TailExpr()
	if !ok {
		t.Fatal("block has no tail expression")
	}
	bin, ok := tail.(*api.BinaryOpExpr)
	if !ok {
		t.Fatalf("tail is %T, want *api.BinaryOpExpr", tail)
	}
	if bin.Kind() != api.BinAdd {
		t.Errorf("tail operator = %v, want +", bin.Kind())
	}
	lit, ok := bin.Left().(*api.IntLitExpr)
	if !ok || lit.Value() != 41 {
		t.Fatalf("left operand = %T, want the 41 literal", bin.Left())
	}

	ty := ctx.ExprTy(bin.ID())
	num, ok := ty.(*api.SemNumTy)
	if !ok || num.Kind() != api.NumI32 {
		t.Errorf("tail type = %T, want sem i32", ty)
	}
}

func TestSpanSnippet(t *testing.T) {
	s := buildSession(t, convertFixture)
	ctx := installContext(t, s)

	fn := s.storage.convertRoot()[0].(*api.FnItem)
	span := fn.Span()
	if span.IsFromExpansion() {
		t.Error("plain item span flagged as expansion")
	}
	snippet, ok := ctx.SpanSnippet(span)
	if !ok || !strings.HasPrefix(snippet, "pub fn answer") {
		t.Errorf("item snippet = %q", snippet)
	}
}

func TestExpansionSpansReportCallSite(t *testing.T) {
	src := `
macro_rules! answer {
    () => { 42 };
}
fn sample() -> i32 { answer!() }
`
	s := buildSession(t, src)
	ctx := installContext(t, s)

	fn := s.storage.convertRoot()[0].(*api.FnItem)
	bodyID, _ := fn.BodyID()
	block := ctx.AST().Body(bodyID).Expr().(*api.BlockExpr)
	tail, _ := block.TailExpr()

	span := tail.Span()
	if !span.IsFromExpansion() {
		t.Fatal("expanded literal span lost its expansion flag")
	}
	snippet, ok := ctx.SpanSnippet(span)
	if !ok || snippet != "answer!()" {
		t.Errorf("expansion snippet = %q, want the call site", snippet)
	}
	spanSrc := ctx.SpanSource(span)
	if spanSrc.Expn == nil {
		t.Fatal("expansion span source has no expansion info")
	}
	callSite := spanSrc.Expn.CallSite()
	if callSite == nil || callSite.IsFromExpansion() {
		t.Error("root call site must not itself be from an expansion")
	}
}

func TestLintLevelAttributes(t *testing.T) {
	src := `
#[allow(dead_code)]
fn quiet() {}

#[deny(dead_code)]
mod strict {
    #[allow(dead_code)]
    fn relaxed() {}
}

#[forbid(dead_code)]
mod hard {
    #[allow(dead_code)]
    fn pinned() {}
}

fn plain() {}
`
	s := buildSession(t, src)
	lint := &api.Lint{Name: "dead_code", DefaultLevel: api.LevelWarn}

	cases := []struct {
		fn   string
		want api.Level
	}{
		{"quiet", api.LevelAllow},
		{"relaxed", api.LevelAllow},
		{"pinned", api.LevelForbid},
		{"plain", api.LevelWarn},
	}
	for _, tc := range cases {
		id := findHirItem(t, s.crate, hir.ItemFn, tc.fn)
		got := s.storage.lintLevelAt(lint, api.EmitForItem(packItemID(id)))
		if got != tc.want {
			t.Errorf("level at %s = %v, want %v", tc.fn, got, tc.want)
		}
	}
}

func TestLintLevelCrateRootAttr(t *testing.T) {
	src := `
#![allow(dead_code)]

fn plain() {}
`
	s := buildSession(t, src)
	lint := &api.Lint{Name: "dead_code", DefaultLevel: api.LevelWarn}
	id := findHirItem(t, s.crate, hir.ItemFn, "plain")
	if got := s.storage.lintLevelAt(lint, api.EmitForItem(packItemID(id))); got != api.LevelAllow {
		t.Errorf("level under crate-root allow = %v, want allow", got)
	}
}

func TestEmitDiagTranslation(t *testing.T) {
	s := buildSession(t, convertFixture)
	installContext(t, s)

	fn := s.storage.convertRoot()[0].(*api.FnItem)
	lint := &api.Lint{Name: "test_lint", DefaultLevel: api.LevelWarn}
	d := &api.Diagnostic{
		Lint: lint,
		Msg:  "something looks off",
		Node: api.EmitForItem(fn.ID()),
		Span: *fn.Span(),
		Parts: []api.DiagnosticPart{
			{Kind: api.DiagPartNote, Msg: "a note"},
			{Kind: api.DiagPartSuggestion, Msg: "try this", Span: *fn.Span(), Suggestion: "fn answer() {}", App: api.MachineApplicable},
		},
	}
	s.storage.emitDiag(s.bag, d)

	if s.bag.Len() != 1 {
		t.Fatalf("bag holds %d diagnostics, want 1", s.bag.Len())
	}
	out := s.bag.Items()[0]
	if out.Severity != diag.SevWarning {
		t.Errorf("severity = %v, want warning", out.Severity)
	}
	if out.Lint != "test_lint" || out.Message != "something looks off" {
		t.Errorf("diagnostic = %q/%q", out.Lint, out.Message)
	}
	if len(out.Notes) != 1 || len(out.Suggestions) != 1 {
		t.Fatalf("parts = %d notes, %d suggestions", len(out.Notes), len(out.Suggestions))
	}
	if out.Suggestions[0].Replacement != "fn answer() {}" {
		t.Errorf("replacement = %q", out.Suggestions[0].Replacement)
	}
}

func TestEmitDiagDropsAllowed(t *testing.T) {
	s := buildSession(t, convertFixture)
	installContext(t, s)

	fn := s.storage.convertRoot()[0].(*api.FnItem)
	lint := &api.Lint{Name: "off_by_default", DefaultLevel: api.LevelAllow}
	s.storage.emitDiag(s.bag, &api.Diagnostic{
		Lint: lint,
		Msg:  "should never land",
		Node: api.EmitForItem(fn.ID()),
		Span: *fn.Span(),
	})
	if s.bag.Len() != 0 {
		t.Fatalf("allow-level diagnostic landed in the bag")
	}
}

func TestEmitDiagDeniedBecomesError(t *testing.T) {
	src := `
#[deny(test_lint)]
fn target() {}
`
	s := buildSession(t, src)
	installContext(t, s)

	fn := s.storage.convertRoot()[0].(*api.FnItem)
	lint := &api.Lint{Name: "test_lint", DefaultLevel: api.LevelWarn}
	s.storage.emitDiag(s.bag, &api.Diagnostic{
		Lint: lint,
		Msg:  "denied here",
		Node: api.EmitForItem(fn.ID()),
		Span: *fn.Span(),
	})
	if s.bag.Len() != 1 || s.bag.Items()[0].Severity != diag.SevError {
		t.Fatal("deny-level diagnostic should be an error")
	}
}

func TestResolveTyIDs(t *testing.T) {
	s := buildSession(t, convertFixture)
	installContext(t, s)

	ids := s.storage.resolveTyIDs("Point")
	if len(ids) != 1 {
		t.Fatalf("resolved %d definitions for Point, want 1", len(ids))
	}
	hirID, ok := unpackTyDefID(ids[0])
	if !ok || hirID != findHirItem(t, s.crate, hir.ItemStruct, "Point") {
		t.Errorf("resolved ID does not name the Point struct")
	}

	if got := s.storage.resolveTyIDs("std::vec::Vec"); len(got) != 0 {
		t.Errorf("resolved %d definitions for an external path, want 0", len(got))
	}
}

func TestUnstableBodyWarningOnce(t *testing.T) {
	src := `
async fn later() {}
`
	s := buildSession(t, src)
	installContext(t, s)

	var sb strings.Builder
	s.stderr = &sb
	t.Setenv(silenceUnstableWarningEnv, "")

	fn := s.storage.convertRoot()[0].(*api.FnItem)
	bodyID, ok := fn.BodyID()
	if !ok {
		t.Fatal("async fn has no body")
	}
	body := s.storage.convertBody(mustUnpackBody(t, bodyID))
	if _, ok := body.Expr().(*api.UnstableExpr); !ok {
		t.Fatalf("async body root is %T, want *api.UnstableExpr", body.Expr())
	}
	if !strings.Contains(sb.String(), "unstable") {
		t.Error("expected a once-per-session warning on stderr")
	}
}

func mustUnpackBody(t *testing.T, id api.BodyID) hir.BodyID {
	t.Helper()
	hirID, ok := unpackBodyID(id)
	if !ok {
		t.Fatalf("body ID %d does not unpack", id)
	}
	return hirID
}

func TestMacroDefsAreNotRootItems(t *testing.T) {
	src := `
macro_rules! noisy {
    () => { 1 + 2 };
}
fn quiet() -> i32 { noisy!() }
`
	s := buildSession(t, src)
	installContext(t, s)

	items := s.storage.convertRoot()
	if len(items) != 1 {
		t.Fatalf("converted %d root items, want only the fn", len(items))
	}
	if _, ok := items[0].(*api.FnItem); !ok {
		t.Fatalf("items[0] is %T, want *api.FnItem", items[0])
	}
}

func TestSpanContainment(t *testing.T) {
	s := buildSession(t, convertFixture)
	ctx := installContext(t, s)

	contains := func(parent, child *api.Span) bool {
		return parent.SrcID() == child.SrcID() &&
			parent.Start() <= child.Start() && child.End() <= parent.End()
	}

	items := s.storage.convertRoot()
	fn := items[0].(*api.FnItem)
	bodyID, _ := fn.BodyID()
	block := ctx.AST().Body(bodyID).Expr().(*api.BlockExpr)
	if !contains(fn.Span(), block.Span()) {
		t.Error("fn span does not cover its body block")
	}
	tail, _ := block.TailExpr()
	if !contains(block.Span(), tail.Span()) {
		t.Error("block span does not cover its tail expression")
	}
	bin := tail.(*api.BinaryOpExpr)
	if !contains(tail.Span(), bin.Left().Span()) || !contains(tail.Span(), bin.Right().Span()) {
		t.Error("binary op span does not cover its operands")
	}

	st := items[1].(*api.StructItem)
	for _, field := range st.Fields() {
		if !contains(st.Span(), field.Span()) {
			t.Errorf("struct span does not cover field %s", field.Ident().Name())
		}
	}
	enum := items[2].(*api.EnumItem)
	for _, variant := range enum.Variants() {
		if !contains(enum.Span(), variant.Span()) {
			t.Errorf("enum span does not cover variant %s", variant.Ident().Name())
		}
	}
}

func TestAstMapRoundTripIdentity(t *testing.T) {
	s := buildSession(t, convertFixture)
	ctx := installContext(t, s)

	items := s.storage.convertRoot()
	fn := items[0].(*api.FnItem)
	if got, ok := ctx.AST().Item(fn.ID()); !ok || got != items[0] {
		t.Errorf("Item(%d) = %T, want the converted fn back", fn.ID(), got)
	}

	bodyID, _ := fn.BodyID()
	body := ctx.AST().Body(bodyID)
	if again := ctx.AST().Body(bodyID); again != body {
		t.Error("Body() returned a distinct node on the second lookup")
	}
	block := body.Expr().(*api.BlockExpr)
	tail, _ := block.TailExpr()
	if got := ctx.AST().Expr(tail.ID()); got != tail {
		t.Errorf("Expr(%d) = %T, want the tail expression back", tail.ID(), got)
	}

	field := items[1].(*api.StructItem).Fields()[0]
	if got, ok := ctx.AST().Field(field.ID()); !ok || got != field {
		t.Errorf("Field(%d) did not round-trip", field.ID())
	}
	variant := items[2].(*api.EnumItem).Variants()[0]
	if got, ok := ctx.AST().Variant(variant.ID()); !ok || got != variant {
		t.Errorf("Variant(%d) did not round-trip", variant.ID())
	}
}

func TestEmitDiagKeepsDuplicates(t *testing.T) {
	s := buildSession(t, convertFixture)
	installContext(t, s)

	fn := s.storage.convertRoot()[0].(*api.FnItem)
	lint := &api.Lint{Name: "test_lint", DefaultLevel: api.LevelWarn}
	d := &api.Diagnostic{
		Lint: lint,
		Msg:  "same finding twice",
		Node: api.EmitForItem(fn.ID()),
		Span: *fn.Span(),
	}
	s.storage.emitDiag(s.bag, d)
	s.storage.emitDiag(s.bag, d)

	if s.bag.Len() != 2 {
		t.Fatalf("bag holds %d diagnostics, want 2: emission must not deduplicate", s.bag.Len())
	}
}

func TestCollapsedExpansionSpansKeepDistinctChains(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("main.rs", []byte("outer!()"))
	call := source.Span{File: file, Start: 0, End: 8}

	expns := source.NewExpnTable()
	outer := expns.Alloc(source.ExpnData{CallSite: call, Macro: 1})
	inner := expns.Alloc(source.ExpnData{
		Parent:   outer,
		CallSite: source.Span{File: file, Start: 0, End: 8, Ctx: outer},
		Macro:    2,
	})

	table := newSpanTable(fs, expns)
	fromOuter := table.resolve(table.intern(source.Span{File: file, Start: 0, End: 3, Ctx: outer}))
	fromInner := table.resolve(table.intern(source.Span{File: file, Start: 4, End: 7, Ctx: inner}))

	// Both collapse onto the same call-site byte range.
	if fromOuter.Start() != fromInner.Start() || fromOuter.End() != fromInner.End() {
		t.Fatalf("collapsed ranges differ: %v vs %v", fromOuter, fromInner)
	}
	if fromOuter.ExpnID() == fromInner.ExpnID() {
		t.Fatal("distinct expansions collapsed to the same expansion identity")
	}

	outerInfo := table.spanSource(fromOuter).Expn
	innerInfo := table.spanSource(fromInner).Expn
	if outerInfo == nil || innerInfo == nil {
		t.Fatal("expansion chains lost on collapsed spans")
	}
	if outerInfo.MacroID() != api.MacroID(1) || innerInfo.MacroID() != api.MacroID(2) {
		t.Errorf("chains crossed: outer macro %d, inner macro %d", outerInfo.MacroID(), innerInfo.MacroID())
	}
}

func TestCrateVisibilityScope(t *testing.T) {
	src := `
pub(crate) fn shared() {}
fn hidden() {}
`
	s := buildSession(t, src)
	installContext(t, s)

	items := s.storage.convertRoot()
	shared := items[0].(*api.FnItem).Visibility()
	if shared.Kind() != api.VisCrate {
		t.Fatalf("pub(crate) fn visibility = %v, want VisCrate", shared.Kind())
	}
	scope, ok := shared.Scope()
	if !ok || scope != api.CrateRootID {
		t.Errorf("pub(crate) scope = (%d, %v), want the crate-root sentinel", scope, ok)
	}

	hidden := items[1].(*api.FnItem).Visibility()
	if hidden.Kind() != api.VisDefault {
		t.Fatalf("private fn visibility = %v, want VisDefault", hidden.Kind())
	}
	scope, ok = hidden.Scope()
	if !ok || scope != api.CrateRootID {
		t.Errorf("top-level private scope = (%d, %v), want the crate-root sentinel", scope, ok)
	}
}

func TestSpanFileLocations(t *testing.T) {
	s := buildSession(t, convertFixture)
	installContext(t, s)

	items := s.storage.convertRoot()
	fn := items[0].(*api.FnItem)
	file := fn.Span().Source().File
	if file == nil {
		t.Fatal("plain item span has no file source")
	}
	pos, ok := file.ToFilePos(fn.Span().Start())
	if !ok || pos.Line != 2 || pos.Column != 1 {
		t.Errorf("fn location = %+v (ok=%v), want line 2 col 1", pos, ok)
	}

	enum := items[2].(*api.EnumItem)
	pos, ok = file.ToFilePos(enum.Span().Start())
	if !ok || pos.Line != 7 || pos.Column != 1 {
		t.Errorf("enum location = %+v (ok=%v), want line 7 col 1", pos, ok)
	}
}
