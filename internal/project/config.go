// Package project reads the lint dependency configuration from the
// user's Marker.toml manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"marker/internal/toolchain"
)

// ManifestName is the file the CLI looks for, walking up from the
// working directory.
const ManifestName = "Marker.toml"

// LintDependency is one entry of the [lints] table. Exactly one of
// Version, Path, or Git selects the source; Rev and Branch refine a
// git source; Package renames the crate when the entry key differs
// from the built package's name.
type LintDependency struct {
	Version string `toml:"version"`
	Path    string `toml:"path"`
	Git     string `toml:"git"`
	Rev     string `toml:"rev"`
	Branch  string `toml:"branch"`
	Package string `toml:"package"`
}

// Config is the decoded [lints] section.
type Config struct {
	// Dir is the directory the manifest was found in; relative path
	// sources are resolved against it.
	Dir string

	// Lints maps the entry name to its dependency declaration.
	Lints map[string]LintDependency
}

// Names returns the configured lint crate names, sorted, so builds and
// error output stay deterministic.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Lints))
	for name := range c.Lints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindManifest walks up from startDir looking for Marker.toml.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolving start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load decodes and validates the manifest at path. Unknown keys reject
// the config: a typoed key silently ignored would make the user think
// their setting applies when it does not.
func Load(path string) (*Config, error) {
	var raw struct {
		Lints map[string]toml.Primitive `toml:"lints"`
	}
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, toolchain.Wrap(toolchain.WrongStructure, err, fmt.Sprintf("%s: parsing", path))
	}

	cfg := &Config{
		Dir:   filepath.Dir(path),
		Lints: make(map[string]LintDependency, len(raw.Lints)),
	}
	for name, prim := range raw.Lints {
		dep, err := decodeDependency(&meta, prim)
		if err != nil {
			return nil, toolchain.Wrap(toolchain.WrongStructure, err, fmt.Sprintf("%s: lint %q", path, name))
		}
		if err := validateDependency(name, &dep); err != nil {
			return nil, err
		}
		if dep.Path != "" && !filepath.IsAbs(dep.Path) {
			dep.Path = filepath.Join(cfg.Dir, dep.Path)
		}
		cfg.Lints[name] = dep
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toolchain.Exitf(toolchain.WrongStructure,
			"%s: unknown keys: %v", path, undecoded)
	}
	return cfg, nil
}

// decodeDependency accepts the two manifest shapes: a bare version
// string, or a table of recognized keys.
func decodeDependency(meta *toml.MetaData, prim toml.Primitive) (LintDependency, error) {
	var version string
	if err := meta.PrimitiveDecode(prim, &version); err == nil {
		return LintDependency{Version: version}, nil
	}
	var dep LintDependency
	if err := meta.PrimitiveDecode(prim, &dep); err != nil {
		return LintDependency{}, err
	}
	return dep, nil
}

func validateDependency(name string, dep *LintDependency) error {
	sources := 0
	for _, s := range []string{dep.Version, dep.Path, dep.Git} {
		if s != "" {
			sources++
		}
	}
	if sources == 0 {
		return toolchain.Exitf(toolchain.InvalidValue,
			"lint %q declares no source; set version, path, or git", name)
	}
	if sources > 1 {
		return toolchain.Exitf(toolchain.InvalidValue,
			"lint %q declares more than one source; version, path, and git are mutually exclusive", name)
	}
	if dep.Git == "" && (dep.Rev != "" || dep.Branch != "") {
		return toolchain.Exitf(toolchain.InvalidValue,
			"lint %q sets rev or branch without a git source", name)
	}
	if dep.Rev != "" && dep.Branch != "" {
		return toolchain.Exitf(toolchain.InvalidValue,
			"lint %q sets both rev and branch", name)
	}
	return nil
}
