package adapter

import (
	"errors"
	"fmt"
	"strings"
)

// LintCratesEnv is the environment variable the CLI uses to hand the
// compiled lint crate plugins to the driver.
const LintCratesEnv = "MARKER_LINT_CRATES"

// ErrMalformedEnvValue reports a MARKER_LINT_CRATES value that does not
// follow the "<name>:<path>[;<name>:<path>]" format.
var ErrMalformedEnvValue = errors.New("malformed lint crate list, expected \"<name>:<path>\" entries separated by ';'")

// LintCrateInfo names one compiled lint crate plugin.
type LintCrateInfo struct {
	// Name is the lint crate's package name, used in error messages
	// and ICE reports.
	Name string
	// Path points at the built plugin library.
	Path string
}

// ParseEnv parses the MARKER_LINT_CRATES value. An empty value yields
// no crates.
func ParseEnv(value string) ([]LintCrateInfo, error) {
	if value == "" {
		return nil, nil
	}
	var crates []LintCrateInfo
	for _, entry := range strings.Split(value, ";") {
		name, path, ok := strings.Cut(entry, ":")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("%w: bad entry %q", ErrMalformedEnvValue, entry)
		}
		crates = append(crates, LintCrateInfo{Name: name, Path: path})
	}
	return crates, nil
}

// FormatEnv renders the value ParseEnv parses. The CLI uses it to set
// MARKER_LINT_CRATES for the driver.
func FormatEnv(crates []LintCrateInfo) string {
	entries := make([]string, len(crates))
	for i, crate := range crates {
		entries[i] = crate.Name + ":" + crate.Path
	}
	return strings.Join(entries, ";")
}
