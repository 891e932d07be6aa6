package toolchain

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSysrootChain(t *testing.T) {
	t.Setenv(EnvSysroot, "")
	t.Setenv(EnvToolchainHome, "")
	t.Setenv(EnvToolchain, "")

	if got := Sysroot("/explicit"); got != "/explicit" {
		t.Errorf("explicit arg ignored: %q", got)
	}

	t.Setenv(EnvSysroot, "/from-env")
	if got := Sysroot(""); got != "/from-env" {
		t.Errorf("sysroot env ignored: %q", got)
	}
	if got := Sysroot("/explicit"); got != "/explicit" {
		t.Errorf("explicit arg must beat the env: %q", got)
	}

	t.Setenv(EnvSysroot, "")
	t.Setenv(EnvToolchainHome, "/toolchains")
	t.Setenv(EnvToolchain, "custom")
	want := filepath.Join("/toolchains", "custom")
	if got := Sysroot(""); got != want {
		t.Errorf("toolchain home chain = %q, want %q", got, want)
	}

	t.Setenv(EnvToolchain, "")
	want = filepath.Join("/toolchains", RequiredToolchain)
	if got := Sysroot(""); got != want {
		t.Errorf("default toolchain name = %q, want %q", got, want)
	}
}

func TestLintsEnabled(t *testing.T) {
	t.Setenv(EnvPrimaryPackage, "")
	t.Setenv(EnvLintsOnDeps, "")
	if LintsEnabled() {
		t.Error("lints enabled without the primary-package marker")
	}
	t.Setenv(EnvPrimaryPackage, "mycrate")
	if !LintsEnabled() {
		t.Error("primary package must enable lints")
	}
	t.Setenv(EnvPrimaryPackage, "")
	t.Setenv(EnvLintsOnDeps, "1")
	if !LintsEnabled() {
		t.Error("the deps flag must enable lints")
	}
}

func TestFindUsesToolchainHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	home := t.TempDir()
	bin := filepath.Join(home, "custom", "bin")
	if err := os.MkdirAll(bin, 0o755); err != nil {
		t.Fatal(err)
	}
	driver := filepath.Join(bin, DriverBinary)
	if err := os.WriteFile(driver, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PATH", "")
	t.Setenv(EnvToolchainHome, home)
	t.Setenv(EnvToolchain, "custom")

	tc, err := Find()
	if err != nil {
		t.Fatalf("Find() = %v", err)
	}
	if tc.Driver != driver {
		t.Errorf("driver = %q, want %q", tc.Driver, driver)
	}
}

func TestFindMissingDriverCode(t *testing.T) {
	t.Setenv("PATH", "")
	t.Setenv(EnvToolchainHome, "")
	_, err := Find()
	if err == nil {
		t.Skip("a driver binary sits next to the test binary")
	}
	var exitErr *Error
	if !errors.As(err, &exitErr) || exitErr.Code != MissingDriver {
		t.Fatalf("err = %v, want a MissingDriver exit error", err)
	}
}

func TestExitErrorFormatting(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(LintCrateBuildFailed, base, "building crate x")
	if err.Error() != "building crate x: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error lost the cause")
	}
	if got := Exitf(NoLints, "no lints found").Error(); got != "no lints found" {
		t.Errorf("Exitf message = %q", got)
	}
}
