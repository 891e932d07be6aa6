// Command marker-driver is invoked as the host compiler's wrapper: it
// compiles the given sources with the embedded frontend and, when the
// environment asks for it, runs the configured lint crates over the
// compiled crate. It exits with the host compiler's code; lint findings
// at deny level count as compile errors.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"marker/api"
	"marker/internal/adapter"
	"marker/internal/diag"
	"marker/internal/diagfmt"
	"marker/internal/driver"
	"marker/internal/hir"
	"marker/internal/parser"
	"marker/internal/sema"
	"marker/internal/source"
	"marker/internal/toolchain"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	for _, arg := range args {
		switch arg {
		case "--toolchain":
			fmt.Println(toolchain.RequiredToolchain)
			return 0
		case "--marker-api-version":
			fmt.Println(api.APIVersion)
			return 0
		}
	}

	// Invoked as a wrapper, the first argument names the wrapped
	// compiler and carries no information of its own.
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") && !strings.HasSuffix(args[0], ".rs") {
		args = args[1:]
	}

	var sysrootArg string
	var files []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--sysroot" && i+1 < len(args):
			i++
			sysrootArg = args[i]
		case strings.HasPrefix(arg, "--sysroot="):
			sysrootArg = strings.TrimPrefix(arg, "--sysroot=")
		case arg == "--print=sysroot":
			fmt.Println(toolchain.Sysroot(sysrootArg))
			return 0
		case strings.HasSuffix(arg, ".rs"):
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input files")
		return 1
	}

	fs := source.NewFileSet()
	bag := diag.NewBag(256)
	crate := hir.NewCrate(crateName(files[0]), nil)
	for _, path := range files {
		id, err := fs.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		parser.ParseFile(fs, id, crate, bag, parser.Options{})
	}
	analysis := sema.Analyze(crate, bag)

	if toolchain.LintsEnabled() && !bag.HasErrors() {
		if code := runLints(crate, analysis, fs, bag); code != 0 {
			return code
		}
	}

	bag.Sort()
	diagfmt.Render(os.Stderr, bag, fs, diagfmt.Options{
		Color:   diagfmt.ColorEnabled(os.Stderr),
		Context: true,
	})
	if bag.HasErrors() {
		return 1
	}
	return 0
}

// runLints loads the configured lint crates and runs them, filing
// their findings into bag. A non-zero return aborts the session with
// that exit code; lint findings themselves are not an abort.
func runLints(crate *hir.Crate, analysis *sema.Analysis, fs *source.FileSet, bag *diag.Bag) int {
	infos, err := adapter.ParseEnv(os.Getenv(adapter.LintCratesEnv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return int(toolchain.BadConfiguration)
	}
	if len(infos) == 0 {
		return 0
	}
	a, err := adapter.New(adapter.PluginLoader{}, infos)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return int(toolchain.DriverFailed)
	}
	session := driver.NewSession(crate, analysis, fs, bag)
	if err := session.Run(a); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return int(toolchain.DriverFailed)
	}
	return 0
}

func crateName(path string) string {
	if name := os.Getenv(toolchain.EnvPrimaryPackage); name != "" {
		return name
	}
	base := filepath.Base(path)
	return strings.ReplaceAll(strings.TrimSuffix(base, ".rs"), "-", "_")
}
