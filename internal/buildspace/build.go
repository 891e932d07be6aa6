package buildspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"marker/api"
	"marker/internal/adapter"
	"marker/internal/project"
	"marker/internal/toolchain"
)

// Build compiles every configured lint crate as a Go plugin, in
// parallel, and returns the loadable crate list in config name order.
// Progress lands on sink; pass nil to run silently.
func (s *Space) Build(ctx context.Context, cfg *project.Config, sink ProgressSink) ([]adapter.LintCrateInfo, error) {
	names := cfg.Names()
	if len(names) == 0 {
		return nil, toolchain.Exitf(toolchain.NoLints, "no lint crates are configured")
	}
	for _, name := range names {
		sink.send(Event{Crate: name, Stage: StageBuild, Status: StatusQueued})
	}

	infos := make([]adapter.LintCrateInfo, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		dep := cfg.Lints[name]
		g.Go(func() error {
			lib, err := s.buildOne(gctx, name, dep, sink)
			if err != nil {
				sink.send(Event{Crate: name, Status: StatusError, Err: err})
				return err
			}
			infos[i] = adapter.LintCrateInfo{Name: name, Path: lib}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := s.saveCache(); err != nil {
		return nil, toolchain.Wrap(toolchain.LintCrateBuildFailed, err, "persisting the build cache")
	}
	return infos, nil
}

func (s *Space) buildOne(ctx context.Context, name string, dep project.LintDependency, sink ProgressSink) (string, error) {
	dir, err := s.resolveSource(ctx, name, dep, sink)
	if err != nil {
		return "", err
	}
	if dep.Package != "" {
		// the entry key names the plugin; Package points at the real
		// package inside the source tree
		candidate := filepath.Join(dir, filepath.FromSlash(dep.Package))
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			dir = candidate
		}
	}

	fp, err := fingerprint(dir, name, toolchain.RequiredToolchain, api.APIVersion)
	if err != nil {
		return "", toolchain.Wrap(toolchain.LintCrateBuildFailed, err, fmt.Sprintf("fingerprinting %s", name))
	}
	if lib, ok := s.cached(name, fp); ok {
		sink.send(Event{Crate: name, Stage: StageBuild, Status: StatusCached})
		return lib, nil
	}

	sink.send(Event{Crate: name, Stage: StageBuild, Status: StatusWorking})
	lib := s.libPath(name)
	cmd := exec.CommandContext(ctx, "go", "build", "-buildmode=plugin", "-o", lib, ".")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", toolchain.Wrap(toolchain.ToolExecutionFailed, err, "running go build")
		}
		return "", toolchain.Exitf(toolchain.LintCrateBuildFailed,
			"building lint crate %s:\n%s", name, strings.TrimSpace(string(out)))
	}
	if _, err := os.Stat(lib); err != nil {
		return "", toolchain.Exitf(toolchain.LintCrateLibNotFound,
			"lint crate %s built but %s is missing", name, lib)
	}

	s.remember(name, fp, lib)
	sink.send(Event{Crate: name, Stage: StageBuild, Status: StatusDone})
	return lib, nil
}

// resolveSource turns a dependency declaration into a local directory.
func (s *Space) resolveSource(ctx context.Context, name string, dep project.LintDependency, sink ProgressSink) (string, error) {
	switch {
	case dep.Path != "":
		info, err := os.Stat(dep.Path)
		if err != nil || !info.IsDir() {
			return "", toolchain.Exitf(toolchain.LintCrateNotFound,
				"lint crate %s: path %s does not exist", name, dep.Path)
		}
		return dep.Path, nil
	case dep.Git != "":
		sink.send(Event{Crate: name, Stage: StageFetch, Status: StatusWorking})
		return s.fetchGit(ctx, name, dep)
	default:
		sink.send(Event{Crate: name, Stage: StageFetch, Status: StatusWorking})
		return downloadModule(ctx, name, dep)
	}
}

// fetchGit clones (or refreshes) a git source into the build space and
// checks out the configured rev or branch.
func (s *Space) fetchGit(ctx context.Context, name string, dep project.LintDependency) (string, error) {
	dir := s.gitPath(name)
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		if err := os.RemoveAll(dir); err != nil {
			return "", toolchain.Wrap(toolchain.LintCrateFetchFailed, err, fmt.Sprintf("clearing %s", dir))
		}
		if err := runGit(ctx, "", "clone", "--quiet", dep.Git, dir); err != nil {
			return "", fetchError(name, err)
		}
	} else {
		if err := runGit(ctx, dir, "fetch", "--quiet", "origin"); err != nil {
			return "", fetchError(name, err)
		}
	}
	ref := dep.Rev
	if ref == "" {
		ref = dep.Branch
	}
	if ref != "" {
		if err := runGit(ctx, dir, "checkout", "--quiet", ref); err != nil {
			return "", fetchError(name, err)
		}
	}
	return dir, nil
}

func runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return toolchain.Wrap(toolchain.ToolExecutionFailed, err, "running git")
		}
		return fmt.Errorf("git %s: %s", args[0], strings.TrimSpace(string(out)))
	}
	return nil
}

func fetchError(name string, err error) error {
	var exitErr *toolchain.Error
	if errors.As(err, &exitErr) {
		return err
	}
	return toolchain.Wrap(toolchain.LintCrateFetchFailed, err, fmt.Sprintf("fetching lint crate %s", name))
}

// downloadModule resolves a registry dependency through the module
// proxy. The entry key doubles as the module path unless Package
// overrides it.
func downloadModule(ctx context.Context, name string, dep project.LintDependency) (string, error) {
	module := name
	if dep.Package != "" {
		module = dep.Package
	}
	version := dep.Version
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}

	cmd := exec.CommandContext(ctx, "go", "mod", "download", "-json", module+"@"+version)
	out, err := cmd.Output()
	var result struct {
		Dir   string
		Error string
	}
	if len(out) > 0 {
		// go mod download writes the JSON report even on failure
		_ = json.Unmarshal(out, &result)
	}
	if err != nil || result.Error != "" || result.Dir == "" {
		if errors.Is(err, exec.ErrNotFound) {
			return "", toolchain.Wrap(toolchain.ToolExecutionFailed, err, "running go mod download")
		}
		reason := result.Error
		if reason == "" && err != nil {
			reason = err.Error()
		}
		return "", toolchain.Exitf(toolchain.LintCrateFetchFailed,
			"fetching lint crate %s@%s: %s", module, version, reason)
	}
	return result.Dir, nil
}
