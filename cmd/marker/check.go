package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"marker/internal/adapter"
	"marker/internal/project"
	"marker/internal/toolchain"
)

var (
	checkManifestFlag string
	checkDepsFlag     bool
)

func init() {
	checkCmd.Flags().StringVar(&checkManifestFlag, "manifest", "", "path to Marker.toml (default: search upward from here)")
	checkCmd.Flags().BoolVar(&checkDepsFlag, "lints-on-deps", false, "run lints on dependency sources as well")
}

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Build the configured lint crates and run them over your code",
	Long: `Check builds every lint crate declared in Marker.toml, locates the
marker driver and invokes it over the given source files. Without
arguments, every .rs file under the manifest directory is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(checkManifestFlag)
		if err != nil {
			return err
		}
		infos, err := buildLintCrates(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		files := args
		if len(files) == 0 {
			files, err = findSources(cfg.Dir)
			if err != nil {
				return err
			}
		}
		if len(files) == 0 {
			return toolchain.Exitf(toolchain.BadConfiguration,
				"no .rs sources found under %s", cfg.Dir)
		}

		tc, err := toolchain.Find()
		if err != nil {
			return err
		}
		return runDriver(tc, cfg, infos, files)
	},
}

// runDriver invokes the driver as a compiler wrapper with the lint
// environment set, and maps its exit status onto the CLI's exit codes.
func runDriver(tc toolchain.Toolchain, cfg *project.Config, infos []adapter.LintCrateInfo, files []string) error {
	argv := append([]string{"rustc"}, files...)
	cmd := exec.Command(tc.Driver, argv...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		adapter.LintCratesEnv+"="+adapter.FormatEnv(infos),
		toolchain.EnvPrimaryPackage+"="+filepath.Base(cfg.Dir),
	)
	if checkDepsFlag {
		cmd.Env = append(cmd.Env, toolchain.EnvLintsOnDeps+"=1")
	}

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		code := exitErr.ExitCode()
		switch {
		case code == 1:
			// The driver renders its own diagnostics; only the exit
			// code is ours to report.
			return toolchain.Exitf(toolchain.CheckFailed, "check failed")
		case code >= 100:
			return toolchain.Exitf(toolchain.ExitCode(code), "the driver exited with code %d", code)
		default:
			return toolchain.Exitf(toolchain.DriverFailed, "the driver exited with code %d", code)
		}
	default:
		return toolchain.Wrap(toolchain.ToolExecutionFailed, err, "running the driver")
	}
}
