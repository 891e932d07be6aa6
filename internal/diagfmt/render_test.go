package diagfmt

import (
	"strings"
	"testing"

	"marker/internal/diag"
	"marker/internal/source"
)

func renderOneDiag(t *testing.T, src string, d diag.Diagnostic, opts Options) string {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("lib.rs", []byte(src))
	d.Primary.File = fileID
	bag := diag.NewBag(8)
	bag.Add(d)

	var sb strings.Builder
	Render(&sb, bag, fs, opts)
	return sb.String()
}

func TestRenderHeaderAndUnderline(t *testing.T) {
	src := "fn main() { let x = 1 + 2; }\n"
	start := uint32(strings.Index(src, "1 + 2"))
	d := diag.Diagnostic{
		Severity: diag.SevWarning,
		Lint:     "test_lint",
		Message:  "this sum is suspicious",
		Primary:  source.Span{Start: start, End: start + 5},
	}
	out := renderOneDiag(t, src, d, Options{Context: true})

	if !strings.Contains(out, "lib.rs:1:21: warning[test_lint]: this sum is suspicious") {
		t.Errorf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "   1 | fn main() { let x = 1 + 2; }") {
		t.Errorf("context line missing:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~") {
		t.Errorf("underline missing:\n%s", out)
	}
}

func TestRenderParts(t *testing.T) {
	src := "static X: i32 = 0;\n"
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Lint:     "no_statics",
		Message:  "statics are forbidden here",
		Primary:  source.Span{Start: 0, End: 6},
		Notes:    []diag.Note{{Msg: "configured by your team", Spanless: true}},
		Suggestions: []diag.Suggestion{{
			Span:          source.Span{Start: 0, End: 6},
			Msg:           "use a const instead",
			Replacement:   "const",
			Applicability: diag.MaybeIncorrect,
		}},
	}
	out := renderOneDiag(t, src, d, Options{})

	for _, want := range []string{
		"error[no_statics]: statics are forbidden here",
		"note: configured by your team",
		"help: lib.rs:1:1: use a const instead",
		"replace with: const",
		"(maybe-incorrect)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestRenderSeparatesDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("lib.rs", []byte("fn a() {}\nfn b() {}\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Lint: "l", Message: "first",
		Primary: source.Span{File: fileID, Start: 0, End: 2}})
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Lint: "l", Message: "second",
		Primary: source.Span{File: fileID, Start: 10, End: 12}})

	var sb strings.Builder
	Render(&sb, bag, fs, Options{})
	out := sb.String()
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Fatalf("missing diagnostics:\n%s", out)
	}
	if !strings.Contains(out, "\n\n") {
		t.Errorf("diagnostics are not blank-line separated:\n%s", out)
	}
}
