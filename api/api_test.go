package api

import "testing"

type testHost struct {
	diags     []*Diagnostic
	level     Level
	snippet   string
	snippetOK bool
}

func installTestContext(t *testing.T, host *testHost) *MarkerContext {
	t.Helper()
	astMap := NewAstMap(host, AstMapCallbacks{
		LintLevelAt: func(data any, lint *Lint, node EmissionNode) Level {
			return data.(*testHost).level
		},
	})
	ctx := NewMarkerContext(host, Callbacks{
		EmitDiag: func(data any, diag *Diagnostic) {
			h := data.(*testHost)
			h.diags = append(h.diags, diag)
		},
		SpanSnippet: func(data any, span *Span) (string, bool) {
			h := data.(*testHost)
			return h.snippet, h.snippetOK
		},
		SymbolStr: func(data any, id SymbolID) string { return "sym" },
	}, astMap)
	SetCurrentContext(ctx)
	t.Cleanup(func() { SetCurrentContext(nil) })
	return ctx
}

var testLint = &Lint{
	Name:         "test_lint",
	DefaultLevel: LevelWarn,
	Explanation:  "exercised by tests only",
	MacroReport:  MacroReportNo,
}

func TestEmitLintDelivers(t *testing.T) {
	host := &testHost{level: LevelWarn}
	ctx := installTestContext(t, host)

	span := NewSpan(1, NoExpnID, 10, 20)
	ctx.EmitLint(testLint, EmitForExpr(7), "main message", &span).
		Note("a note").
		Help("a help").
		Emit()

	if len(host.diags) != 1 {
		t.Fatalf("diags = %d, want 1", len(host.diags))
	}
	d := host.diags[0]
	if d.Msg != "main message" {
		t.Fatalf("msg = %q", d.Msg)
	}
	if d.Node.Expr != 7 {
		t.Fatalf("node = %+v", d.Node)
	}
	if len(d.Parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(d.Parts))
	}
	if d.Parts[0].Kind != DiagPartNote || d.Parts[0].Msg != "a note" {
		t.Fatalf("part 0 = %+v", d.Parts[0])
	}
	if d.Parts[1].Kind != DiagPartHelp {
		t.Fatalf("part 1 = %+v", d.Parts[1])
	}
}

func TestEmitLintRespectsAllowLevel(t *testing.T) {
	host := &testHost{level: LevelAllow}
	ctx := installTestContext(t, host)

	span := NewSpan(1, NoExpnID, 0, 4)
	decorated := false
	ctx.EmitLint(testLint, EmitForExpr(1), "suppressed", &span).
		Decorate(func(b *DiagnosticBuilder) { decorated = true }).
		Emit()

	if len(host.diags) != 0 {
		t.Fatalf("diags = %d, want 0", len(host.diags))
	}
	if decorated {
		t.Fatal("decorate closure ran on a suppressed builder")
	}
}

func TestEmitLintSuppressedInExpansions(t *testing.T) {
	host := &testHost{level: LevelWarn}
	ctx := installTestContext(t, host)

	span := NewSpan(1, 1, 0, 4)
	ctx.EmitLint(testLint, EmitForExpr(1), "from a macro", &span).Emit()
	if len(host.diags) != 0 {
		t.Fatalf("diags = %d, want 0", len(host.diags))
	}

	all := &Lint{Name: "test_lint_all", DefaultLevel: LevelWarn, MacroReport: MacroReportAll}
	ctx.EmitLint(all, EmitForExpr(1), "from a macro", &span).Emit()
	if len(host.diags) != 1 {
		t.Fatalf("diags = %d, want 1", len(host.diags))
	}
}

func TestEmitIsIdempotent(t *testing.T) {
	host := &testHost{level: LevelWarn}
	ctx := installTestContext(t, host)

	span := NewSpan(1, NoExpnID, 0, 4)
	b := ctx.EmitLint(testLint, EmitForExpr(1), "once", &span)
	b.Emit()
	b.Emit()
	if len(host.diags) != 1 {
		t.Fatalf("diags = %d, want 1", len(host.diags))
	}
}

func TestUnemittedBuilderIsDiscarded(t *testing.T) {
	host := &testHost{level: LevelWarn}
	ctx := installTestContext(t, host)

	span := NewSpan(1, NoExpnID, 0, 4)
	ctx.EmitLint(testLint, EmitForExpr(1), "dropped", &span).Note("never seen")
	if len(host.diags) != 0 {
		t.Fatalf("diags = %d, want 0", len(host.diags))
	}
}

func TestSpanSuggestionPart(t *testing.T) {
	host := &testHost{level: LevelWarn}
	ctx := installTestContext(t, host)

	span := NewSpan(1, NoExpnID, 0, 4)
	sugg := NewSpan(1, NoExpnID, 1, 3)
	ctx.EmitLint(testLint, EmitForExpr(1), "msg", &span).
		SpanSuggestion("try this", &sugg, "replacement", MachineApplicable).
		Emit()

	d := host.diags[0]
	if len(d.Parts) != 1 {
		t.Fatalf("parts = %d", len(d.Parts))
	}
	p := d.Parts[0]
	if p.Kind != DiagPartSuggestion || p.Suggestion != "replacement" || p.App != MachineApplicable {
		t.Fatalf("part = %+v", p)
	}
	if p.Span.Start() != 1 || p.Span.End() != 3 {
		t.Fatalf("suggestion span = %d..%d", p.Span.Start(), p.Span.End())
	}
}

func TestSnippetWithApplicability(t *testing.T) {
	host := &testHost{level: LevelWarn, snippet: "x + y", snippetOK: true}
	installTestContext(t, host)

	span := NewSpan(1, NoExpnID, 0, 5)
	app := MachineApplicable
	if got := span.SnippetWithApplicability("..", &app); got != "x + y" {
		t.Fatalf("snippet = %q", got)
	}
	if app != MachineApplicable {
		t.Fatalf("applicability changed to %d on a clean snippet", app)
	}

	// Expansion spans degrade the confidence even when text is found.
	expSpan := NewSpan(1, 1, 0, 5)
	app = MachineApplicable
	expSpan.SnippetWithApplicability("..", &app)
	if app != MaybeIncorrect {
		t.Fatalf("applicability = %d, want MaybeIncorrect", app)
	}

	// A missing snippet yields the placeholder and marks it as such.
	host.snippetOK = false
	app = MachineApplicable
	if got := span.SnippetWithApplicability("..", &app); got != ".." {
		t.Fatalf("snippet = %q, want placeholder", got)
	}
	if app != HasPlaceholders {
		t.Fatalf("applicability = %d, want HasPlaceholders", app)
	}
}

func TestVisibilityScope(t *testing.T) {
	pub := NewVisibility(VisPublic, 0)
	if _, ok := pub.Scope(); ok {
		t.Fatal("unrestricted pub has no scope")
	}
	if !pub.IsPub() {
		t.Fatal("pub is pub")
	}

	priv := NewVisibility(VisDefault, 42)
	scope, ok := priv.Scope()
	if !ok || scope != 42 {
		t.Fatalf("scope = %d, %v", scope, ok)
	}
	if priv.IsPub() {
		t.Fatal("default visibility is not pub")
	}
}

func TestPathTargetAccessors(t *testing.T) {
	item := NewItemTarget(3)
	if id, ok := item.Item(); !ok || id != 3 {
		t.Fatalf("item = %d, %v", id, ok)
	}
	if _, ok := item.Var(); ok {
		t.Fatal("item target is not a var")
	}

	selfTy := NewSelfTyTarget(9)
	if selfTy.Kind() != PathTargetSelfTy {
		t.Fatalf("kind = %d", selfTy.Kind())
	}
	if id, ok := selfTy.Item(); !ok || id != 9 {
		t.Fatalf("self owner = %d, %v", id, ok)
	}

	unres := NewUnresolvedTarget()
	if _, ok := unres.Item(); ok {
		t.Fatal("unresolved target resolved to an item")
	}
}

func TestNumKindHelpers(t *testing.T) {
	if !NumI8.IsSigned() || NumU8.IsSigned() {
		t.Fatal("signedness")
	}
	if !NumF32.IsFloat() || NumF32.IsInt() {
		t.Fatal("f32 is a float")
	}
	if NumUsize.String() != "usize" || NumF64.String() != "f64" {
		t.Fatal("names")
	}
}

func TestBinaryOpKindClassification(t *testing.T) {
	for _, k := range []BinaryOpKind{BinEq, BinNe, BinLt, BinLe, BinGt, BinGe} {
		if !k.IsComparison() {
			t.Fatalf("%v is a comparison", k)
		}
	}
	if BinAdd.IsComparison() || BinAnd.IsComparison() {
		t.Fatal("misclassified comparison")
	}
	if !BinAnd.IsLazy() || !BinOr.IsLazy() || BinBitAnd.IsLazy() {
		t.Fatal("laziness")
	}
}

func TestCurrentContextPanicsWhenUnset(t *testing.T) {
	SetCurrentContext(nil)
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic without an installed context")
		}
	}()
	CurrentContext()
}

func TestAstMapMissingBodyPanics(t *testing.T) {
	m := NewAstMap(nil, AstMapCallbacks{
		Body: func(data any, id BodyID) (*Body, bool) { return nil, false },
	})
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an unknown body ID")
		}
	}()
	m.Body(99)
}
