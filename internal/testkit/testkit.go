// Package testkit runs lint passes over in-memory source without
// compiling plugin libraries. Tests across the repo use it to drive
// full sessions: frontend, conversion, traversal, emission.
package testkit

import (
	"testing"

	"marker/api"
	"marker/internal/adapter"
	"marker/internal/diag"
	"marker/internal/driver"
	"marker/internal/hir"
	"marker/internal/parser"
	"marker/internal/sema"
	"marker/internal/source"
)

// Crate pairs a lint pass with the crate name it would be loaded under.
type Crate struct {
	Name string
	Pass api.LintPass
}

// Result is the outcome of one in-process lint session.
type Result struct {
	// Bag holds the diagnostics the passes emitted.
	Bag *diag.Bag
	// Files resolves the spans those diagnostics point at.
	Files *source.FileSet
}

// Check runs the given lint passes over src as a complete session and
// returns the emitted diagnostics. Frontend errors in src fail the
// test: fixtures are expected to type-check.
func Check(t testing.TB, src string, crates ...Crate) *Result {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("main.rs", []byte(src))
	crate := hir.NewCrate("test_crate", nil)
	frontBag := diag.NewBag(64)
	parser.ParseFile(fs, fileID, crate, frontBag, parser.Options{})
	if frontBag.HasErrors() {
		t.Fatalf("fixture does not parse:\n%s", frontBag.String())
	}
	an := sema.Analyze(crate, frontBag)
	if frontBag.HasErrors() {
		t.Fatalf("fixture does not type-check:\n%s", frontBag.String())
	}

	loader := NewLoader()
	infos := make([]adapter.LintCrateInfo, 0, len(crates))
	for _, c := range crates {
		infos = append(infos, loader.Add(c.Name, c.Pass))
	}
	a, err := adapter.New(loader, infos)
	if err != nil {
		t.Fatalf("loading lint passes: %v", err)
	}

	bag := diag.NewBag(64)
	session := driver.NewSession(crate, an, fs, bag)
	if err := session.Run(a); err != nil {
		t.Fatalf("lint session: %v", err)
	}
	return &Result{Bag: bag, Files: fs}
}

// Snippet returns the source text a diagnostic span covers.
func (r *Result) Snippet(t testing.TB, span source.Span) string {
	t.Helper()
	text, ok := r.Files.Snippet(span)
	if !ok {
		t.Fatalf("span %v does not resolve", span)
	}
	return text
}
