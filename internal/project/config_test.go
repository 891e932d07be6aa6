package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"marker/internal/toolchain"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifestShapes(t *testing.T) {
	path := writeManifest(t, `
[lints]
from_registry = "0.2.1"
from_path = { path = "./lints/local" }
from_git = { git = "https://example.com/lints", rev = "abc123" }
renamed = { path = "/abs/lints", package = "real-name" }
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if got := cfg.Names(); len(got) != 4 {
		t.Fatalf("Names() = %v", got)
	}
	if dep := cfg.Lints["from_registry"]; dep.Version != "0.2.1" {
		t.Errorf("registry dep = %+v", dep)
	}
	wantPath := filepath.Join(cfg.Dir, "lints", "local")
	if dep := cfg.Lints["from_path"]; dep.Path != wantPath {
		t.Errorf("path dep = %q, want %q (relative paths resolve against the manifest)", dep.Path, wantPath)
	}
	if dep := cfg.Lints["from_git"]; dep.Git == "" || dep.Rev != "abc123" {
		t.Errorf("git dep = %+v", dep)
	}
	if dep := cfg.Lints["renamed"]; dep.Package != "real-name" || dep.Path != "/abs/lints" {
		t.Errorf("renamed dep = %+v", dep)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	cases := []struct {
		name    string
		content string
		code    toolchain.ExitCode
	}{
		{
			"unknown dependency key",
			"[lints]\nx = { path = \".\", registry = \"crates\" }\n",
			toolchain.WrongStructure,
		},
		{
			"unknown top-level key",
			"[lints]\nx = \"1.0\"\n[surprise]\ny = 1\n",
			toolchain.WrongStructure,
		},
		{
			"no source",
			"[lints]\nx = { package = \"y\" }\n",
			toolchain.InvalidValue,
		},
		{
			"two sources",
			"[lints]\nx = { path = \".\", git = \"https://example.com\" }\n",
			toolchain.InvalidValue,
		},
		{
			"rev without git",
			"[lints]\nx = { path = \".\", rev = \"abc\" }\n",
			toolchain.InvalidValue,
		},
		{
			"rev and branch",
			"[lints]\nx = { git = \"https://example.com\", rev = \"abc\", branch = \"main\" }\n",
			toolchain.InvalidValue,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, tc.content)
			_, err := Load(path)
			var exitErr *toolchain.Error
			if !errors.As(err, &exitErr) || exitErr.Code != tc.code {
				t.Fatalf("Load() = %v, want exit code %d", err, tc.code)
			}
		})
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(root, ManifestName)
	if err := os.WriteFile(manifest, []byte("[lints]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest() = %q, %v, %v", found, ok, err)
	}
	if found != manifest {
		t.Errorf("found %q, want %q", found, manifest)
	}
}

func TestFindManifestAbsent(t *testing.T) {
	_, ok, err := FindManifest(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("found a manifest in an empty tree")
	}
}
