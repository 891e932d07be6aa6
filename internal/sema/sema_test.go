package sema_test

import (
	"testing"

	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/parser"
	"marker/internal/sema"
	"marker/internal/source"
)

func analyze(t *testing.T, src string) (*hir.Crate, *sema.Analysis, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(src))
	crate := hir.NewCrate("test", nil)
	parseBag := diag.NewBag(64)
	parser.ParseFile(fs, fileID, crate, parseBag, parser.Options{})
	if parseBag.HasErrors() {
		t.Fatalf("parse diagnostics:\n%s", parseBag.String())
	}
	bag := diag.NewBag(64)
	return crate, sema.Analyze(crate, bag), bag
}

func analyzeClean(t *testing.T, src string) (*hir.Crate, *sema.Analysis) {
	t.Helper()
	crate, an, bag := analyze(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", bag.String())
	}
	return crate, an
}

// findFn locates a fn item by name anywhere in the crate.
func findFn(t *testing.T, crate *hir.Crate, name string) (hir.ItemID, *hir.FnData) {
	t.Helper()
	sym := crate.NameSymbol(name)
	var found hir.ItemID
	crate.WalkItems(func(id hir.ItemID) bool {
		item := crate.Items.Get(id)
		if item.Kind == hir.ItemFn && item.Name == sym {
			found = id
			return false
		}
		return true
	})
	if !found.IsValid() {
		t.Fatalf("no fn named %q", name)
	}
	data, _ := crate.Items.Fn(found)
	return found, data
}

// fnTail returns the tail expression of a named fn's body block.
func fnTail(t *testing.T, crate *hir.Crate, name string) (hir.BodyID, hir.ExprID) {
	t.Helper()
	_, data := findFn(t, crate, name)
	body := crate.Bodies.Get(data.Body)
	if body == nil {
		t.Fatalf("fn %q has no body", name)
	}
	block, ok := crate.Exprs.Block(body.Value)
	if !ok {
		t.Fatalf("fn %q body is not a block", name)
	}
	if !block.Tail.IsValid() {
		t.Fatalf("fn %q has no tail expression", name)
	}
	return data.Body, block.Tail
}

func wantKind(t *testing.T, an *sema.Analysis, ty sema.TyID, kind sema.TyKind) {
	t.Helper()
	got, ok := an.Types.Lookup(ty)
	if !ok {
		t.Fatalf("type id %d not interned", ty)
	}
	if got.Kind != kind {
		t.Fatalf("type kind = %v, want %v", got.Kind, kind)
	}
}

func wantCode(t *testing.T, bag *diag.Bag, code diag.Code) {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("no diagnostic with code %v:\n%s", code, bag.String())
}

func TestLiteralTypes(t *testing.T) {
	crate, an := analyzeClean(t, `
fn int_default() -> i32 { 42 }
fn int_suffixed() -> u64 { 42u64 }
fn float_lit() -> f64 { 1.5 }
fn bool_lit() -> bool { true }
fn str_lit() -> &str { "hi" }
`)
	body, tail := fnTail(t, crate, "int_default")
	ty, _ := an.Types.Lookup(an.ExprTy(body, tail))
	if ty.Kind != sema.TyInt || ty.Width != sema.Width32 {
		t.Fatalf("default int literal = %v width %d", ty.Kind, ty.Width)
	}

	body, tail = fnTail(t, crate, "int_suffixed")
	ty, _ = an.Types.Lookup(an.ExprTy(body, tail))
	if ty.Kind != sema.TyUint || ty.Width != sema.Width64 {
		t.Fatalf("u64 literal = %v width %d", ty.Kind, ty.Width)
	}

	body, tail = fnTail(t, crate, "float_lit")
	wantKind(t, an, an.ExprTy(body, tail), sema.TyFloat)

	body, tail = fnTail(t, crate, "bool_lit")
	wantKind(t, an, an.ExprTy(body, tail), sema.TyBool)

	body, tail = fnTail(t, crate, "str_lit")
	ty, _ = an.Types.Lookup(an.ExprTy(body, tail))
	if ty.Kind != sema.TyRef {
		t.Fatalf("string literal = %v, want reference", ty.Kind)
	}
	wantKind(t, an, ty.Elem, sema.TyStr)
}

func TestLocalBindingFlowsThroughBlock(t *testing.T) {
	crate, an := analyzeClean(t, `
fn sample() -> i32 {
    let x = 1i32;
    let y = x;
    y
}
`)
	body, tail := fnTail(t, crate, "sample")
	ty, _ := an.Types.Lookup(an.ExprTy(body, tail))
	if ty.Kind != sema.TyInt || ty.Width != sema.Width32 {
		t.Fatalf("tail = %v width %d, want i32", ty.Kind, ty.Width)
	}
	res := an.Resolution(body, tail)
	if res.Kind != sema.ResLocal {
		t.Fatalf("tail resolution = %v, want local", res.Kind)
	}
}

func TestAnnotatedLetOverridesInit(t *testing.T) {
	crate, an := analyzeClean(t, `
fn sample() -> u8 {
    let x: u8 = make();
    x
}
fn make() -> u8 { 0u8 }
`)
	body, tail := fnTail(t, crate, "sample")
	ty, _ := an.Types.Lookup(an.ExprTy(body, tail))
	if ty.Kind != sema.TyUint || ty.Width != sema.Width8 {
		t.Fatalf("annotated local = %v width %d, want u8", ty.Kind, ty.Width)
	}
}

func TestFieldAccessTypes(t *testing.T) {
	crate, an := analyzeClean(t, `
struct Point { x: i64, y: i64 }

fn sample(p: Point) -> i64 { p.x }
fn through_ref(p: &Point) -> i64 { p.y }
`)
	body, tail := fnTail(t, crate, "sample")
	ty, _ := an.Types.Lookup(an.ExprTy(body, tail))
	if ty.Kind != sema.TyInt || ty.Width != sema.Width64 {
		t.Fatalf("field type = %v width %d, want i64", ty.Kind, ty.Width)
	}

	// the receiver auto-derefs through the reference
	body, tail = fnTail(t, crate, "through_ref")
	wantKind(t, an, an.ExprTy(body, tail), sema.TyInt)
}

func TestMethodResolution(t *testing.T) {
	crate, an := analyzeClean(t, `
struct Counter { n: u32 }

impl Counter {
    fn get(&self) -> u32 { self.n }
}

fn sample(c: Counter) -> u32 { c.get() }
`)
	body, tail := fnTail(t, crate, "sample")
	wantKind(t, an, an.ExprTy(body, tail), sema.TyUint)

	target, ok := an.MethodTarget(body, tail)
	if !ok {
		t.Fatal("method target not recorded")
	}
	want, _ := findFn(t, crate, "get")
	if target != want {
		t.Fatalf("method target = %d, want %d", target, want)
	}
}

func TestUnknownFieldOnOwnedStruct(t *testing.T) {
	_, _, bag := analyze(t, `
struct Point { x: i64 }

fn sample(p: Point) -> i64 { p.z }
`)
	wantCode(t, bag, diag.SemUnknownField)
}

func TestUnknownMethodOnOwnedStruct(t *testing.T) {
	_, _, bag := analyze(t, `
struct Point { x: i64 }

impl Point {
    fn x(&self) -> i64 { self.x }
}

fn sample(p: Point) -> i64 { p.missing() }
`)
	wantCode(t, bag, diag.SemUnknownMethod)
}

func TestCallArityChecked(t *testing.T) {
	_, _, bag := analyze(t, `
fn add(a: i32, b: i32) -> i32 { a + b }

fn sample() -> i32 { add(1) }
`)
	wantCode(t, bag, diag.SemArityMismatch)
}

func TestDuplicateDefinition(t *testing.T) {
	_, _, bag := analyze(t, `
fn twice() {}
fn twice() {}
`)
	wantCode(t, bag, diag.SemDuplicateDef)
}

func TestNonBoolCondition(t *testing.T) {
	_, _, bag := analyze(t, `
fn sample() -> i32 {
    if 1i32 { 1 } else { 2 }
}
`)
	wantCode(t, bag, diag.SemTypeMismatch)
}

func TestOutOfCratePathsStayQuiet(t *testing.T) {
	crate, an, bag := analyze(t, `
fn sample() {
    let map = std::collections::HashMap::new();
    map.insert(1, 2);
}
`)
	if bag.HasErrors() {
		t.Fatalf("dependency paths must not error:\n%s", bag.String())
	}
	_, data := findFn(t, crate, "sample")
	body := crate.Bodies.Get(data.Body)
	block, _ := crate.Exprs.Block(body.Value)
	stmt, _ := crate.Stmts.Let(block.Stmts[0])
	wantKind(t, an, an.PatTy(data.Body, stmt.Pat), sema.TyUnstable)
}

func TestEnumVariantPath(t *testing.T) {
	crate, an := analyzeClean(t, `
enum Color { Red, Green, Blue }

fn sample() -> Color { Color::Red }
`)
	body, tail := fnTail(t, crate, "sample")
	wantKind(t, an, an.ExprTy(body, tail), sema.TyAdt)

	res := an.Resolution(body, tail)
	if res.Kind != sema.ResVariant {
		t.Fatalf("variant resolution = %v, want variant", res.Kind)
	}
}

func TestMatchBindsScrutineeType(t *testing.T) {
	crate, an := analyzeClean(t, `
fn sample(v: i64) -> i64 {
    match v {
        n if n > 0 => n,
        _ => v,
    }
}
`)
	body, tail := fnTail(t, crate, "sample")
	ty, _ := an.Types.Lookup(an.ExprTy(body, tail))
	if ty.Kind != sema.TyInt || ty.Width != sema.Width64 {
		t.Fatalf("match type = %v width %d, want i64", ty.Kind, ty.Width)
	}
}

func TestGenericParamType(t *testing.T) {
	crate, an := analyzeClean(t, `
fn identity<T>(value: T) -> T { value }
`)
	body, tail := fnTail(t, crate, "identity")
	wantKind(t, an, an.ExprTy(body, tail), sema.TyParam)
}

func TestSelfTypeInImpl(t *testing.T) {
	crate, an := analyzeClean(t, `
struct Point { x: i64, y: i64 }

impl Point {
    fn origin() -> Self {
        Self { x: 0, y: 0 }
    }
}
`)
	body, tail := fnTail(t, crate, "origin")
	wantKind(t, an, an.ExprTy(body, tail), sema.TyAdt)
}

func TestAliasPeelsToTarget(t *testing.T) {
	crate, an := analyzeClean(t, `
type Meters = i64;

fn sample(d: Meters) -> Meters { d }
`)
	body, tail := fnTail(t, crate, "sample")
	peeled := an.Types.Peel(an.ExprTy(body, tail))
	ty, _ := an.Types.Lookup(peeled)
	if ty.Kind != sema.TyInt || ty.Width != sema.Width64 {
		t.Fatalf("peeled alias = %v width %d, want i64", ty.Kind, ty.Width)
	}
}

func TestModulePathResolution(t *testing.T) {
	crate, an := analyzeClean(t, `
mod geometry {
    pub struct Point { pub x: i64 }
}

fn sample(p: geometry::Point) -> i64 { p.x }
`)
	body, tail := fnTail(t, crate, "sample")
	wantKind(t, an, an.ExprTy(body, tail), sema.TyInt)

	ids := an.ResolveTypePath("geometry::Point")
	if len(ids) != 1 {
		t.Fatalf("ResolveTypePath found %d items, want 1", len(ids))
	}
	if crate.Items.Get(ids[0]).Kind != hir.ItemStruct {
		t.Fatalf("resolved item kind = %v, want struct", crate.Items.Get(ids[0]).Kind)
	}
}

func TestResolveTypePathMisses(t *testing.T) {
	_, an := analyzeClean(t, `
struct Point { x: i64 }
`)
	if got := an.ResolveTypePath("nope::Missing"); len(got) != 0 {
		t.Fatalf("unresolvable path returned %d items", len(got))
	}
	if got := an.ResolveTypePath(""); len(got) != 0 {
		t.Fatalf("empty path returned %d items", len(got))
	}
}

func TestUseBringsNameIntoScope(t *testing.T) {
	crate, an := analyzeClean(t, `
mod shapes {
    pub struct Circle { pub r: f64 }
}

use shapes::Circle;

fn sample(c: Circle) -> f64 { c.r }
`)
	body, tail := fnTail(t, crate, "sample")
	wantKind(t, an, an.ExprTy(body, tail), sema.TyFloat)
}

func TestClosureType(t *testing.T) {
	crate, an := analyzeClean(t, `
fn sample() -> i32 {
    let double = |x: i32| x + x;
    double(2)
}
`)
	body, tail := fnTail(t, crate, "sample")
	wantKind(t, an, an.ExprTy(body, tail), sema.TyInt)
}

func TestLoopAndBreakTypes(t *testing.T) {
	crate, an := analyzeClean(t, `
fn sample() -> i32 {
    let mut n = 0i32;
    while n < 10 {
        n += 1;
    }
    n
}
`)
	body, tail := fnTail(t, crate, "sample")
	wantKind(t, an, an.ExprTy(body, tail), sema.TyInt)
}

func TestTupleTypes(t *testing.T) {
	crate, an := analyzeClean(t, `
fn sample() -> i32 {
    let pair = (1i32, true);
    pair.0
}
`)
	body, tail := fnTail(t, crate, "sample")
	wantKind(t, an, an.ExprTy(body, tail), sema.TyInt)

	_, data := findFn(t, crate, "sample")
	bodyNode := crate.Bodies.Get(data.Body)
	block, _ := crate.Exprs.Block(bodyNode.Value)
	stmt, _ := crate.Stmts.Let(block.Stmts[0])
	wantKind(t, an, an.PatTy(body, stmt.Pat), sema.TyTuple)
}

func TestFieldTypesDeclared(t *testing.T) {
	crate, an := analyzeClean(t, `
struct Pair { a: u8, b: bool }
`)
	sym := crate.NameSymbol("Pair")
	var pair hir.ItemID
	crate.WalkItems(func(id hir.ItemID) bool {
		if crate.Items.Get(id).Name == sym {
			pair = id
			return false
		}
		return true
	})
	data, _ := crate.Items.Struct(pair)
	wantKind(t, an, an.FieldTy(data.Fields[0]), sema.TyUint)
	wantKind(t, an, an.FieldTy(data.Fields[1]), sema.TyBool)
}

func TestImplIndexedUnderAdt(t *testing.T) {
	crate, an := analyzeClean(t, `
struct Widget;

impl Widget {
    fn poke(&self) {}
}

impl Widget {
    fn prod(&self) {}
}
`)
	sym := crate.NameSymbol("Widget")
	var widget hir.ItemID
	crate.WalkItems(func(id hir.ItemID) bool {
		item := crate.Items.Get(id)
		if item.Kind == hir.ItemStruct && item.Name == sym {
			widget = id
			return false
		}
		return true
	})
	if got := len(an.ImplsOf(widget)); got != 2 {
		t.Fatalf("ImplsOf found %d blocks, want 2", got)
	}
}
