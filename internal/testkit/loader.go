package testkit

import (
	"fmt"

	"marker/api"
	"marker/internal/adapter"
)

// Loader serves lint passes to the adapter from memory instead of
// plugin libraries. Paths are synthetic; only the names registered
// through Add resolve.
type Loader struct {
	crates map[string]crateEntry
}

type crateEntry struct {
	version string
	pass    api.LintPass
}

func NewLoader() *Loader {
	return &Loader{crates: map[string]crateEntry{}}
}

// Add registers a pass under the given crate name and returns the info
// record to hand to the adapter.
func (l *Loader) Add(name string, pass api.LintPass) adapter.LintCrateInfo {
	return l.AddWithVersion(name, api.APIVersion, pass)
}

// AddWithVersion registers a pass that reports the given lint API
// version, for exercising the adapter's version gate.
func (l *Loader) AddWithVersion(name, version string, pass api.LintPass) adapter.LintCrateInfo {
	path := "mem://" + name
	l.crates[path] = crateEntry{version: version, pass: pass}
	return adapter.LintCrateInfo{Name: name, Path: path}
}

func (l *Loader) Open(path string) (adapter.SymbolTable, error) {
	entry, ok := l.crates[path]
	if !ok {
		return nil, fmt.Errorf("no such crate: %s", path)
	}
	return symbolTable{entry: entry}, nil
}

type symbolTable struct {
	entry crateEntry
}

func (t symbolTable) Lookup(name string) (any, error) {
	switch name {
	case "MarkerAPIVersion":
		return func() string { return t.entry.version }, nil
	case "MarkerLintCrateBindings":
		return func() api.LintCrateBindings {
			return api.NewLintCrateBindings(t.entry.pass)
		}, nil
	default:
		return nil, fmt.Errorf("unknown symbol %q", name)
	}
}
