package version

import "github.com/fatih/color"

// Version information for the marker CLI and driver.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the tools. It tracks the lint
	// API handshake string, which is what actually gates lint crate
	// loading.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("5") + "." + versionPatchColor.Sprint("0")

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)
