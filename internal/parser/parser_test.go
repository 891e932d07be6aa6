package parser_test

import (
	"strings"
	"testing"

	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/parser"
	"marker/internal/source"
)

func parseCrate(t *testing.T, src string) (*hir.Crate, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(src))
	crate := hir.NewCrate("test", nil)
	bag := diag.NewBag(64)
	parser.ParseFile(fs, fileID, crate, bag, parser.Options{})
	return crate, bag
}

func parseClean(t *testing.T, src string) *hir.Crate {
	t.Helper()
	crate, bag := parseCrate(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", bag.String())
	}
	return crate
}

// fnBody returns the block data of the fn at the given root index.
func fnBody(t *testing.T, crate *hir.Crate, rootIdx int) *hir.ExprBlockData {
	t.Helper()
	if rootIdx >= len(crate.Root) {
		t.Fatalf("root has %d items, want index %d", len(crate.Root), rootIdx)
	}
	id := crate.Root[rootIdx]
	fn, ok := crate.Items.Fn(id)
	if !ok {
		t.Fatalf("item %d is %v, want fn", rootIdx, crate.Items.Get(id).Kind)
	}
	body := crate.Bodies.Get(fn.Body)
	if body == nil {
		t.Fatal("fn has no body")
	}
	block, ok := crate.Exprs.Block(body.Value)
	if !ok {
		t.Fatalf("fn body value is %v, want block", crate.Exprs.Get(body.Value).Kind)
	}
	return block
}

// tailExpr parses a single fn wrapping the given expression as its tail.
func tailExpr(t *testing.T, exprSrc string) (*hir.Crate, hir.ExprID) {
	t.Helper()
	crate := parseClean(t, "fn sample() -> i64 { "+exprSrc+" }")
	block := fnBody(t, crate, 0)
	if !block.Tail.IsValid() {
		t.Fatalf("no tail expression for %q", exprSrc)
	}
	return crate, block.Tail
}

func TestItemShapes(t *testing.T) {
	src := `
mod inner {
    pub fn helper() {}
}

use std::fmt::Debug;
extern crate alloc;

pub struct Point { pub x: i32, pub y: i32 }
struct Pair(u8, u8);
struct Unit;

pub enum Shape {
    Circle(f64),
    Rect { w: f64, h: f64 },
    Empty,
}

union Bits { raw: u32, float: f32 }

static LIMIT: usize = 128;
const NAME: &str = "marker";
type Alias = Point;

trait Render {
    fn draw(&self);
}

impl Render for Point {
    fn draw(&self) {}
}
`
	crate := parseClean(t, src)

	wantKinds := []hir.ItemKind{
		hir.ItemMod, hir.ItemUse, hir.ItemExternCrate,
		hir.ItemStruct, hir.ItemStruct, hir.ItemStruct,
		hir.ItemEnum, hir.ItemUnion, hir.ItemStatic, hir.ItemConst,
		hir.ItemTyAlias, hir.ItemTrait, hir.ItemImpl,
	}
	if len(crate.Root) != len(wantKinds) {
		t.Fatalf("root has %d items, want %d", len(crate.Root), len(wantKinds))
	}
	for i, want := range wantKinds {
		if got := crate.Items.Get(crate.Root[i]).Kind; got != want {
			t.Errorf("item %d: kind = %v, want %v", i, got, want)
		}
	}

	mod, _ := crate.Items.Mod(crate.Root[0])
	if len(mod.Items) != 1 {
		t.Errorf("mod inner has %d items, want 1", len(mod.Items))
	}
	helper := crate.Items.Get(mod.Items[0])
	if helper.Owner != crate.Root[0] {
		t.Error("nested fn owner is not the enclosing mod")
	}
	if !helper.Vis.IsPub() {
		t.Error("pub fn lost its visibility")
	}

	enum, _ := crate.Items.Enum(crate.Root[6])
	if len(enum.Variants) != 3 {
		t.Fatalf("enum has %d variants, want 3", len(enum.Variants))
	}
	kinds := []hir.FieldsKind{hir.FieldsTuple, hir.FieldsNamed, hir.FieldsUnit}
	for i, want := range kinds {
		v := crate.Items.Variant(enum.Variants[i])
		if v.FieldsKind != want {
			t.Errorf("variant %d: fields kind = %v, want %v", i, v.FieldsKind, want)
		}
	}

	impl, _ := crate.Items.Impl(crate.Root[12])
	if !impl.Trait.IsValid() {
		t.Error("trait impl recorded as inherent")
	}
	if len(impl.Items) != 1 {
		t.Errorf("impl has %d items, want 1", len(impl.Items))
	}
	draw, _ := crate.Items.Fn(impl.Items[0])
	if !draw.HasSelf || !draw.SelfRef || draw.SelfMut {
		t.Errorf("draw self = ref:%v mut:%v has:%v, want &self", draw.SelfRef, draw.SelfMut, draw.HasSelf)
	}
}

func TestExprPrecedence(t *testing.T) {
	tests := []struct {
		src     string
		top     hir.BinaryOp
		leftOp  hir.BinaryOp // BinNone means the side is not a binary expr
		rightOp hir.BinaryOp
	}{
		{"1 + 2 * 3", hir.BinAdd, hir.BinNone, hir.BinMul},
		{"1 * 2 + 3", hir.BinAdd, hir.BinMul, hir.BinNone},
		{"1 - 2 - 3", hir.BinSub, hir.BinSub, hir.BinNone},
		{"a == b && c != d", hir.BinAnd, hir.BinEq, hir.BinNe},
		{"a || b && c", hir.BinOr, hir.BinNone, hir.BinAnd},
		{"a & b | c ^ d", hir.BinBitOr, hir.BinBitAnd, hir.BinBitXor},
		{"a << 2 + 1", hir.BinShl, hir.BinNone, hir.BinAdd},
		{"a < b | c", hir.BinLt, hir.BinNone, hir.BinBitOr},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			crate, tail := tailExpr(t, tt.src)
			bin, ok := crate.Exprs.Binary(tail)
			if !ok {
				t.Fatalf("tail is %v, want binary", crate.Exprs.Get(tail).Kind)
			}
			if bin.Op != tt.top {
				t.Fatalf("top op = %v, want %v", bin.Op, tt.top)
			}
			if tt.leftOp != hir.BinNone {
				left, ok := crate.Exprs.Binary(bin.Left)
				if !ok || left.Op != tt.leftOp {
					t.Errorf("left op mismatch, want %v", tt.leftOp)
				}
			}
			if tt.rightOp != hir.BinNone {
				right, ok := crate.Exprs.Binary(bin.Right)
				if !ok || right.Op != tt.rightOp {
					t.Errorf("right op mismatch, want %v", tt.rightOp)
				}
			}
		})
	}
}

func TestCastBindsTighterThanMul(t *testing.T) {
	crate, tail := tailExpr(t, "x as i64 * 2")
	bin, ok := crate.Exprs.Binary(tail)
	if !ok || bin.Op != hir.BinMul {
		t.Fatal("want multiplication at the top")
	}
	if _, ok := crate.Exprs.Cast(bin.Left); !ok {
		t.Error("left operand should be the cast")
	}
}

func TestAssignAndCompound(t *testing.T) {
	tests := []struct {
		src string
		op  hir.BinaryOp
	}{
		{"x = 1", hir.BinNone},
		{"x += 1", hir.BinAdd},
		{"x <<= 2", hir.BinShl},
		{"x |= mask", hir.BinBitOr},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			crate := parseClean(t, "fn sample() { "+tt.src+"; }")
			block := fnBody(t, crate, 0)
			if len(block.Stmts) != 1 {
				t.Fatalf("got %d stmts, want 1", len(block.Stmts))
			}
			stmtExpr, ok := crate.Stmts.Expr(block.Stmts[0])
			if !ok {
				t.Fatal("statement is not an expression statement")
			}
			assign, ok := crate.Exprs.Assign(stmtExpr.Expr)
			if !ok {
				t.Fatalf("stmt expr is %v, want assign", crate.Exprs.Get(stmtExpr.Expr).Kind)
			}
			if assign.Op != tt.op {
				t.Errorf("assign op = %v, want %v", assign.Op, tt.op)
			}
		})
	}
}

func TestRangeExprs(t *testing.T) {
	tests := []struct {
		src       string
		hasLo     bool
		hasHi     bool
		inclusive bool
	}{
		{"0..10", true, true, false},
		{"0..=10", true, true, true},
		{"..5", false, true, false},
		{"start..", true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			crate, tail := tailExpr(t, tt.src)
			rng, ok := crate.Exprs.Range(tail)
			if !ok {
				t.Fatalf("tail is %v, want range", crate.Exprs.Get(tail).Kind)
			}
			if rng.Lo.IsValid() != tt.hasLo || rng.Hi.IsValid() != tt.hasHi {
				t.Errorf("bounds lo:%v hi:%v, want lo:%v hi:%v",
					rng.Lo.IsValid(), rng.Hi.IsValid(), tt.hasLo, tt.hasHi)
			}
			if rng.Inclusive != tt.inclusive {
				t.Errorf("inclusive = %v, want %v", rng.Inclusive, tt.inclusive)
			}
		})
	}
}

func TestPostfixChain(t *testing.T) {
	crate, tail := tailExpr(t, "client.fetch(url)?.body")
	field, ok := crate.Exprs.Field(tail)
	if !ok {
		t.Fatalf("tail is %v, want field", crate.Exprs.Get(tail).Kind)
	}
	try, ok := crate.Exprs.Try(field.Base)
	if !ok {
		t.Fatal("field base should be the try expression")
	}
	method, ok := crate.Exprs.Method(try.Operand)
	if !ok {
		t.Fatal("try operand should be the method call")
	}
	if got, _ := crate.Interner.Lookup(method.Method); got != "fetch" {
		t.Errorf("method name = %q, want fetch", got)
	}
	if len(method.Args) != 1 {
		t.Errorf("method has %d args, want 1", len(method.Args))
	}
}

func TestTurbofishMethod(t *testing.T) {
	crate, tail := tailExpr(t, "iter.collect::<Vec<u8>>()")
	method, ok := crate.Exprs.Method(tail)
	if !ok {
		t.Fatalf("tail is %v, want method", crate.Exprs.Get(tail).Kind)
	}
	if len(method.Generics) != 1 {
		t.Fatalf("turbofish carried %d type args, want 1", len(method.Generics))
	}
}

func TestTupleFieldSplit(t *testing.T) {
	crate, tail := tailExpr(t, "pair.0.1")
	outer, ok := crate.Exprs.Field(tail)
	if !ok || !outer.IsTuple || outer.Index != 1 {
		t.Fatal("outer access should be tuple index 1")
	}
	inner, ok := crate.Exprs.Field(outer.Base)
	if !ok || !inner.IsTuple || inner.Index != 0 {
		t.Fatal("inner access should be tuple index 0")
	}
}

func TestAwaitSuffix(t *testing.T) {
	crate := parseClean(t, "async fn sample() { task().await; }")
	block := fnBody(t, crate, 0)
	stmtExpr, _ := crate.Stmts.Expr(block.Stmts[0])
	await, ok := crate.Exprs.Await(stmtExpr.Expr)
	if !ok {
		t.Fatal("want await expression")
	}
	if _, ok := crate.Exprs.Call(await.Operand); !ok {
		t.Error("await operand should be the call")
	}
}

func TestIfChainAndStructRestriction(t *testing.T) {
	crate, tail := tailExpr(t, "if cond { 1 } else if other { 2 } else { 3 }")
	first, ok := crate.Exprs.If(tail)
	if !ok {
		t.Fatal("want if expression")
	}
	if _, ok := crate.Exprs.Path(first.Cond); !ok {
		t.Error("condition should parse as a path, not a struct literal")
	}
	second, ok := crate.Exprs.If(first.Else)
	if !ok {
		t.Fatal("else branch should be the chained if")
	}
	if _, ok := crate.Exprs.Block(second.Else); !ok {
		t.Error("final else should be a block")
	}
}

func TestIfLetCondition(t *testing.T) {
	crate, tail := tailExpr(t, "if let Some(x) = opt { x } else { 0 }")
	ifExpr, ok := crate.Exprs.If(tail)
	if !ok {
		t.Fatal("want if expression")
	}
	let, ok := crate.Exprs.Let(ifExpr.Cond)
	if !ok {
		t.Fatal("condition should be a let expression")
	}
	if !let.Pat.IsValid() || !let.Init.IsValid() {
		t.Error("let condition lost its pattern or initializer")
	}
}

func TestMatchArms(t *testing.T) {
	src := `
match code {
    0 => "zero",
    n if n < 0 => "negative",
    1..=9 => "digit",
    _ => "other",
}`
	crate, tail := tailExpr(t, src)
	m, ok := crate.Exprs.Match(tail)
	if !ok {
		t.Fatalf("tail is %v, want match", crate.Exprs.Get(tail).Kind)
	}
	if len(m.Arms) != 4 {
		t.Fatalf("got %d arms, want 4", len(m.Arms))
	}
	if m.Arms[1].Guard == hir.NoExprID {
		t.Error("second arm lost its guard")
	}
	if kind := crate.Pats.Get(m.Arms[2].Pat).Kind; kind != hir.PatRange {
		t.Errorf("third arm pattern = %v, want range", kind)
	}
	if kind := crate.Pats.Get(m.Arms[3].Pat).Kind; kind != hir.PatWildcard {
		t.Errorf("fourth arm pattern = %v, want wildcard", kind)
	}
}

func TestLoops(t *testing.T) {
	src := `
fn sample() {
    'outer: loop {
        while running {
            for item in items {
                break 'outer;
            }
        }
    }
}`
	crate := parseClean(t, src)
	block := fnBody(t, crate, 0)
	// a block-form loop without a trailing semicolon is the block's
	// tail expression, not a statement
	if len(block.Stmts) != 0 || !block.Tail.IsValid() {
		t.Fatalf("block = %d stmts, tail %v; want the loop as tail", len(block.Stmts), block.Tail)
	}
	loop_, ok := crate.Exprs.Loop(block.Tail)
	if !ok {
		t.Fatal("want loop expression")
	}
	if got, _ := crate.Interner.Lookup(loop_.Label); got != "'outer" {
		t.Errorf("loop label = %q, want 'outer", got)
	}
}

func TestClosures(t *testing.T) {
	crate := parseClean(t, "fn sample() { let add = move |a: i32, b| a + b; }")
	block := fnBody(t, crate, 0)
	let, _ := crate.Stmts.Let(block.Stmts[0])
	closure, ok := crate.Exprs.Closure(let.Init)
	if !ok {
		t.Fatalf("init is %v, want closure", crate.Exprs.Get(let.Init).Kind)
	}
	if !closure.Move {
		t.Error("move closure lost its capture mode")
	}
	if len(closure.Params) != 2 {
		t.Fatalf("closure has %d params, want 2", len(closure.Params))
	}
	if !closure.Params[0].Ty.IsValid() || closure.Params[1].Ty.IsValid() {
		t.Error("only the first param is annotated")
	}
	body := crate.Bodies.Get(closure.Body)
	if body == nil {
		t.Fatal("closure has no body")
	}
	if _, ok := crate.Exprs.Binary(body.Value); !ok {
		t.Error("closure body should be the addition")
	}
}

func TestStructLiteral(t *testing.T) {
	crate, tail := tailExpr(t, "Point { x, y: 2, ..base }")
	lit, ok := crate.Exprs.Struct(tail)
	if !ok {
		t.Fatalf("tail is %v, want struct literal", crate.Exprs.Get(tail).Kind)
	}
	if len(lit.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(lit.Fields))
	}
	if !lit.Fields[0].Shorthand || lit.Fields[1].Shorthand {
		t.Error("shorthand flags are wrong")
	}
	if !lit.Base.IsValid() {
		t.Error("functional update base lost")
	}
}

func TestLetElse(t *testing.T) {
	crate := parseClean(t, `fn sample() { let Some(v) = lookup() else { return; }; }`)
	block := fnBody(t, crate, 0)
	let, ok := crate.Stmts.Let(block.Stmts[0])
	if !ok {
		t.Fatal("want let statement")
	}
	if !let.Else.IsValid() {
		t.Fatal("let-else diverging block lost")
	}
}

func TestBlockTailVsSemi(t *testing.T) {
	crate := parseClean(t, "fn sample() -> i32 { work(); 42 }")
	block := fnBody(t, crate, 0)
	if len(block.Stmts) != 1 {
		t.Fatalf("got %d stmts, want 1", len(block.Stmts))
	}
	stmtExpr, _ := crate.Stmts.Expr(block.Stmts[0])
	if !stmtExpr.Semi {
		t.Error("first statement should record its semicolon")
	}
	lit, ok := crate.Exprs.Lit(block.Tail)
	if !ok || lit.Kind != hir.LitInt {
		t.Error("tail should be the integer literal")
	}
}

func TestMissingSemicolonDiagnostic(t *testing.T) {
	_, bag := parseCrate(t, "fn sample() { let x = 1 let y = 2; }")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectSemicolon {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a missing-semicolon diagnostic, got:\n%s", bag.String())
	}
}

func TestErrorRecoveryKeepsLaterItems(t *testing.T) {
	crate, bag := parseCrate(t, `
fn broken( {
}
fn intact() {}
`)
	if !bag.HasErrors() {
		t.Fatal("expected diagnostics from the broken fn")
	}
	foundIntact := false
	for _, id := range crate.Root {
		item := crate.Items.Get(id)
		if crate.Interner.MustLookup(item.Name) == "intact" {
			foundIntact = true
		}
	}
	if !foundIntact {
		t.Error("recovery dropped the well-formed item after the error")
	}
}

func TestNestedGenericsShrSplit(t *testing.T) {
	crate := parseClean(t, "fn sample(v: Vec<Vec<u8>>) {}")
	fn, _ := crate.Items.Fn(crate.Root[0])
	if len(fn.Params) != 1 {
		t.Fatalf("got %d params, want 1", len(fn.Params))
	}
	path, ok := crate.Types.Path(fn.Params[0].Ty)
	if !ok {
		t.Fatal("param type should be a path")
	}
	if len(path.Segments) != 1 || len(path.Segments[0].Args) != 1 {
		t.Fatal("outer Vec lost its type argument")
	}
	inner, ok := crate.Types.Path(path.Segments[0].Args[0])
	if !ok || len(inner.Segments[0].Args) != 1 {
		t.Fatal("inner Vec lost its type argument")
	}
}

func TestItemSpanStartsAtFirstToken(t *testing.T) {
	src := `#[allow(dead_code)]
pub fn visible() {}
pub struct Tagged;
`
	crate := parseClean(t, src)
	if len(crate.Root) != 2 {
		t.Fatalf("parsed %d items, want 2", len(crate.Root))
	}

	fn := crate.Items.Get(crate.Root[0])
	if fn.Span.Start != 0 {
		t.Errorf("fn span starts at %d, want 0 (the attribute)", fn.Span.Start)
	}
	st := crate.Items.Get(crate.Root[1])
	wantStart := uint32(strings.Index(src, "pub struct"))
	if st.Span.Start != wantStart {
		t.Errorf("struct span starts at %d, want %d (the pub keyword)", st.Span.Start, wantStart)
	}
}
