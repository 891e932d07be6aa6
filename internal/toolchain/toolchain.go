// Package toolchain locates the marker-driver binary, carries the
// environment contract between the CLI and the driver, and defines the
// exit codes the CLI reports failures with.
package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// RequiredToolchain is the Go toolchain the driver is built against.
// `marker-driver --toolchain` prints it so wrappers can verify the
// installation.
const RequiredToolchain = "go1.25"

// DriverBinary is the driver's executable name.
const DriverBinary = "marker-driver"

// Environment variables shared between the CLI and the driver. The
// lint-crate list variable itself is owned by the adapter package.
const (
	// EnvSysroot overrides the driver's sysroot directly.
	EnvSysroot = "MARKER_SYSROOT"
	// EnvToolchainHome is the root directory toolchains live under.
	EnvToolchainHome = "MARKER_TOOLCHAIN_HOME"
	// EnvToolchain names the toolchain under EnvToolchainHome.
	EnvToolchain = "MARKER_TOOLCHAIN"
	// EnvPrimaryPackage marks the package lints should run on. The
	// CLI sets it for the user's own package; dependencies compiled
	// through the same driver are left unlinted.
	EnvPrimaryPackage = "MARKER_PRIMARY_PACKAGE"
	// EnvLintsOnDeps forces lints on dependencies as well. Used by
	// test harnesses.
	EnvLintsOnDeps = "MARKER_LINTS_ON_DEPS"
)

// Toolchain is a located driver installation.
type Toolchain struct {
	// Driver is the absolute path of the marker-driver binary.
	Driver string
}

// Find locates the driver binary: next to the running executable
// first, so a packaged installation wins, then on PATH, then under the
// toolchain home. The returned error carries MissingDriver.
func Find() (Toolchain, error) {
	var tried []string

	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), exeName(DriverBinary))
		if isExecutable(candidate) {
			return Toolchain{Driver: candidate}, nil
		}
		tried = append(tried, candidate)
	}

	if path, err := exec.LookPath(DriverBinary); err == nil {
		if abs, err := filepath.Abs(path); err == nil {
			return Toolchain{Driver: abs}, nil
		}
		return Toolchain{Driver: path}, nil
	}
	tried = append(tried, "$PATH")

	if home := os.Getenv(EnvToolchainHome); home != "" {
		name := os.Getenv(EnvToolchain)
		if name == "" {
			name = RequiredToolchain
		}
		candidate := filepath.Join(home, name, "bin", exeName(DriverBinary))
		if isExecutable(candidate) {
			return Toolchain{Driver: candidate}, nil
		}
		tried = append(tried, candidate)
	}

	return Toolchain{}, Exitf(MissingDriver,
		"couldn't find %s in any of the searched locations: %v", DriverBinary, tried)
}

// Sysroot resolves the driver's sysroot: explicit argument, then the
// sysroot env var, then toolchain home + toolchain name, then the
// fallback next to the driver binary itself.
func Sysroot(arg string) string {
	if arg != "" {
		return arg
	}
	if root := os.Getenv(EnvSysroot); root != "" {
		return root
	}
	if home := os.Getenv(EnvToolchainHome); home != "" {
		name := os.Getenv(EnvToolchain)
		if name == "" {
			name = RequiredToolchain
		}
		return filepath.Join(home, name)
	}
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(filepath.Dir(exe))
	}
	return ""
}

// LintsEnabled reports whether the driver should run lint crates for
// this invocation, per the primary-package contract.
func LintsEnabled() bool {
	return os.Getenv(EnvPrimaryPackage) != "" || os.Getenv(EnvLintsOnDeps) != ""
}

func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0o111 != 0
}

// Describe renders the toolchain for `marker toolchain` output.
func (t Toolchain) Describe() string {
	return fmt.Sprintf("toolchain: %s\ndriver: %s", RequiredToolchain, t.Driver)
}
