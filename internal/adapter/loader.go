package adapter

import (
	"errors"
	"fmt"
	"plugin"

	"marker/api"
)

// Exported symbols every lint crate plugin must provide.
const (
	apiVersionSymbol = "MarkerAPIVersion"
	bindingsSymbol   = "MarkerLintCrateBindings"
)

var (
	// ErrLibraryOpen reports that the plugin library could not be
	// opened at all.
	ErrLibraryOpen = errors.New("failed to open the lint crate library")
	// ErrMissingAPIVersionSymbol reports a library without the
	// MarkerAPIVersion entry point, usually something that is not a
	// lint crate.
	ErrMissingAPIVersionSymbol = errors.New("the library is missing the MarkerAPIVersion symbol")
	// ErrMissingBindingsSymbol reports a library without the
	// MarkerLintCrateBindings entry point.
	ErrMissingBindingsSymbol = errors.New("the library is missing the MarkerLintCrateBindings symbol")
)

// IncompatibleAPIVersionError reports a lint crate compiled against a
// different version of the lint API. Versions are compared byte for
// byte; there is no cross-version compatibility.
type IncompatibleAPIVersionError struct {
	Found    string
	Expected string
}

func (e *IncompatibleAPIVersionError) Error() string {
	return fmt.Sprintf("the lint crate was compiled for lint API %s, this driver requires %s", e.Found, e.Expected)
}

// SymbolTable is one opened plugin library.
type SymbolTable interface {
	Lookup(name string) (any, error)
}

// Loader opens lint crate plugin libraries. The production
// implementation wraps the plugin package; tests substitute in-process
// fakes.
type Loader interface {
	Open(path string) (SymbolTable, error)
}

// PluginLoader loads lint crates through the Go plugin mechanism.
type PluginLoader struct{}

func (PluginLoader) Open(path string) (SymbolTable, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	return goPlugin{p: p}, nil
}

type goPlugin struct {
	p *plugin.Plugin
}

func (g goPlugin) Lookup(name string) (any, error) {
	return g.p.Lookup(name)
}

// loadedCrate is a lint crate that passed the version gate.
type loadedCrate struct {
	info     LintCrateInfo
	bindings api.LintCrateBindings
}

// loadLintCrate opens one lint crate and verifies its API version
// before touching any other symbol.
func loadLintCrate(loader Loader, info LintCrateInfo) (loadedCrate, error) {
	table, err := loader.Open(info.Path)
	if err != nil {
		return loadedCrate{}, fmt.Errorf("%w: %s: %v", ErrLibraryOpen, info.Path, err)
	}

	verSym, err := table.Lookup(apiVersionSymbol)
	if err != nil {
		return loadedCrate{}, fmt.Errorf("%w: %s", ErrMissingAPIVersionSymbol, info.Path)
	}
	version, ok := verSym.(func() string)
	if !ok {
		return loadedCrate{}, fmt.Errorf("%w: %s: unexpected symbol type %T", ErrMissingAPIVersionSymbol, info.Path, verSym)
	}
	if found := version(); found != api.APIVersion {
		return loadedCrate{}, &IncompatibleAPIVersionError{Found: found, Expected: api.APIVersion}
	}

	bindSym, err := table.Lookup(bindingsSymbol)
	if err != nil {
		return loadedCrate{}, fmt.Errorf("%w: %s", ErrMissingBindingsSymbol, info.Path)
	}
	bindings, ok := bindSym.(func() api.LintCrateBindings)
	if !ok {
		return loadedCrate{}, fmt.Errorf("%w: %s: unexpected symbol type %T", ErrMissingBindingsSymbol, info.Path, bindSym)
	}
	return loadedCrate{info: info, bindings: bindings()}, nil
}
