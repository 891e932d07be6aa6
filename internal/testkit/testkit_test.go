package testkit

import (
	"testing"

	"marker/api"
	"marker/internal/diag"
)

func testLint(report api.MacroReport) *api.Lint {
	return &api.Lint{
		Name:         "test_lint",
		DefaultLevel: api.LevelWarn,
		Explanation:  "fires on every binary operation",
		MacroReport:  report,
	}
}

func binaryOpPass(lint *api.Lint) *HookPass {
	return &HookPass{
		Lints: []*api.Lint{lint},
		OnExpr: func(ctx *api.MarkerContext, expr api.ExprKind) {
			if _, ok := expr.(*api.BinaryOpExpr); ok {
				ctx.EmitLint(lint, api.EmitForExpr(expr.ID()), "binary operation", expr.Span()).Emit()
			}
		},
	}
}

func TestLintOnBinaryOp(t *testing.T) {
	lint := testLint(api.MacroReportNo)
	res := Check(t, "pub fn foo() { let x = 1 + 2; }", Crate{Name: "demo_lints", Pass: binaryOpPass(lint)})

	if res.Bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1:\n%s", res.Bag.Len(), res.Bag.String())
	}
	d := res.Bag.Items()[0]
	if d.Severity != diag.SevWarning {
		t.Errorf("severity = %v, want warning", d.Severity)
	}
	if d.Lint != "test_lint" {
		t.Errorf("lint = %q", d.Lint)
	}
	if got := res.Snippet(t, d.Primary); got != "1 + 2" {
		t.Errorf("primary snippet = %q, want %q", got, "1 + 2")
	}
}

func TestMacroReportPolicy(t *testing.T) {
	const src = "macro_rules! m { () => { 1 + 2 }; }\nfn f() { m!(); }"

	lint := testLint(api.MacroReportNo)
	res := Check(t, src, Crate{Name: "demo_lints", Pass: binaryOpPass(lint)})
	if res.Bag.Len() != 0 {
		t.Fatalf("policy no: diagnostics = %d, want 0:\n%s", res.Bag.Len(), res.Bag.String())
	}

	lint = testLint(api.MacroReportAll)
	res = Check(t, src, Crate{Name: "demo_lints", Pass: binaryOpPass(lint)})
	if res.Bag.Len() != 1 {
		t.Fatalf("policy all: diagnostics = %d, want 1:\n%s", res.Bag.Len(), res.Bag.String())
	}
}

func TestTwoCratesSeeTheSameNodes(t *testing.T) {
	first := &RecordingPass{Lints: []*api.Lint{{Name: "first_lint", DefaultLevel: api.LevelWarn}}}
	second := &RecordingPass{Lints: []*api.Lint{{Name: "second_lint", DefaultLevel: api.LevelWarn}}}
	Check(t, "fn f() {}",
		Crate{Name: "first", Pass: first},
		Crate{Name: "second", Pass: second},
	)

	if len(first.Items) != 1 || len(second.Items) != 1 {
		t.Fatalf("items seen = %d and %d, want 1 each", len(first.Items), len(second.Items))
	}
	if first.Items[0] != second.Items[0] {
		t.Error("passes received different node references for the same item")
	}
	if first.Events[0] != "item:FnItem(f)" {
		t.Errorf("first event = %q", first.Events[0])
	}
}

func TestPanickingCrateIsIsolated(t *testing.T) {
	panicking := &HookPass{
		OnExpr: func(ctx *api.MarkerContext, expr api.ExprKind) {
			if lit, ok := expr.(*api.IntLitExpr); ok && lit.Value() == 2 {
				panic("lint crate bug")
			}
		},
	}
	witness := &RecordingPass{}
	Check(t, "fn f() { let x = 1 + 2; }",
		Crate{Name: "panicking", Pass: panicking},
		Crate{Name: "witness", Pass: witness},
	)

	// The witness still sees both literals, including the one the
	// first crate panicked on.
	if got := witness.Count("expr:IntLitExpr"); got != 2 {
		t.Errorf("witness saw %d int literals, want 2; events: %v", got, witness.Events)
	}
}

func TestExpansionSuggestionDowngraded(t *testing.T) {
	lint := testLint(api.MacroReportAll)
	pass := &HookPass{
		Lints: []*api.Lint{lint},
		OnExpr: func(ctx *api.MarkerContext, expr api.ExprKind) {
			if _, ok := expr.(*api.BinaryOpExpr); ok {
				ctx.EmitLint(lint, api.EmitForExpr(expr.ID()), "binary operation", expr.Span()).
					SpanSuggestion("fold it", expr.Span(), "3", api.MachineApplicable).
					Emit()
			}
		},
	}
	res := Check(t, "macro_rules! m { () => { 1 + 2 }; }\nfn f() { m!(); }",
		Crate{Name: "demo_lints", Pass: pass})

	if res.Bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1:\n%s", res.Bag.Len(), res.Bag.String())
	}
	d := res.Bag.Items()[0]
	if len(d.Suggestions) != 1 {
		t.Fatalf("suggestions = %d, want 1", len(d.Suggestions))
	}
	if got := d.Suggestions[0].Applicability; got != diag.MaybeIncorrect {
		t.Errorf("applicability = %v, want maybe-incorrect", got)
	}
}
