package buildspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"marker/internal/project"
	"marker/internal/toolchain"
)

func TestFingerprintTracksSources(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("go.mod", "module lints\n")
	write("lint.go", "package lints\n")

	first, err := fingerprint(dir, "salt")
	if err != nil {
		t.Fatal(err)
	}
	again, err := fingerprint(dir, "salt")
	if err != nil {
		t.Fatal(err)
	}
	if first != again {
		t.Error("fingerprint is not deterministic")
	}

	write("lint.go", "package lints\n\nvar changed = true\n")
	changed, err := fingerprint(dir, "salt")
	if err != nil {
		t.Fatal(err)
	}
	if changed == first {
		t.Error("source change left the fingerprint unchanged")
	}

	salted, err := fingerprint(dir, "other-salt")
	if err != nil {
		t.Fatal(err)
	}
	if salted == changed {
		t.Error("salt change left the fingerprint unchanged")
	}

	// Non-Go files don't feed the build and must not invalidate it.
	write("README.md", "docs\n")
	withDocs, err := fingerprint(dir, "salt")
	if err != nil {
		t.Fatal(err)
	}
	if withDocs != changed {
		t.Error("non-source file changed the fingerprint")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	root := t.TempDir()
	space, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}

	lib := filepath.Join(root, "plugin.so")
	if err := os.WriteFile(lib, []byte("elf"), 0o644); err != nil {
		t.Fatal(err)
	}
	space.remember("my_lints", "fp-1", lib)
	if err := space.saveCache(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := reopened.cached("my_lints", "fp-1"); !ok || got != lib {
		t.Errorf("cached() = (%q, %v) after reopen", got, ok)
	}
	if _, ok := reopened.cached("my_lints", "fp-2"); ok {
		t.Error("stale fingerprint reported as cached")
	}

	// A missing library invalidates the entry even when prints match.
	if err := os.Remove(lib); err != nil {
		t.Fatal(err)
	}
	if _, ok := reopened.cached("my_lints", "fp-1"); ok {
		t.Error("cache hit for a deleted library")
	}
}

func TestCorruptCacheStartsEmpty(t *testing.T) {
	root := t.TempDir()
	space, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(space.cachePath(), []byte("not msgpack"), 0o644); err != nil {
		t.Fatal(err)
	}
	reopened, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(reopened.cache.Entries) != 0 {
		t.Error("corrupt cache file should load as empty")
	}
}

func TestBuildRejectsEmptyConfig(t *testing.T) {
	space, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, err = space.Build(context.Background(), &project.Config{}, nil)
	var exitErr *toolchain.Error
	if !errors.As(err, &exitErr) || exitErr.Code != toolchain.NoLints {
		t.Fatalf("Build() = %v, want NoLints", err)
	}
}

func TestResolveMissingPath(t *testing.T) {
	space, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dep := project.LintDependency{Path: filepath.Join(t.TempDir(), "nope")}
	_, err = space.resolveSource(context.Background(), "ghost", dep, nil)
	var exitErr *toolchain.Error
	if !errors.As(err, &exitErr) || exitErr.Code != toolchain.LintCrateNotFound {
		t.Fatalf("resolveSource() = %v, want LintCrateNotFound", err)
	}
}
