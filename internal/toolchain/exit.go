package toolchain

import "fmt"

// ExitCode classifies a failed marker invocation. Codes are distinct
// and start at 100 so they never collide with the exit codes of the
// wrapped host compiler.
type ExitCode int

const (
	// InvalidToolchain means the required toolchain could not be
	// validated, for example because it is not installed.
	InvalidToolchain ExitCode = 100
	// ToolExecutionFailed means an external tool such as go or git
	// could not be run at all.
	ToolExecutionFailed ExitCode = 101
	// MissingDriver means the marker-driver binary was not found.
	MissingDriver ExitCode = 200
	// DriverFailed is a general failure originating from the driver.
	DriverFailed ExitCode = 400
	// LintCrateBuildFailed means a lint crate did not compile.
	LintCrateBuildFailed ExitCode = 500
	// LintCrateNotFound means a configured lint crate path is absent.
	LintCrateNotFound ExitCode = 501
	// LintCrateLibNotFound means the crate built but the resulting
	// plugin library could not be located.
	LintCrateLibNotFound ExitCode = 502
	// LintCrateFetchFailed means a git source could not be fetched.
	LintCrateFetchFailed ExitCode = 550
	// BadConfiguration is a general configuration error.
	BadConfiguration ExitCode = 600
	// NoLints means no lint crates were configured, so there is
	// nothing to do.
	NoLints ExitCode = 601
	// WrongStructure means the [lints] section could not be decoded.
	WrongStructure ExitCode = 602
	// InvalidValue means a recognized configuration key carries an
	// unusable value.
	InvalidValue ExitCode = 603
	// CheckFailed means lints emitted errors; the check itself ran.
	CheckFailed ExitCode = 1000
)

// Error carries an exit code alongside the failure description, so the
// command layer can translate any error chain into the right process
// exit status.
type Error struct {
	Code ExitCode
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Msg == "" {
			return e.Err.Error()
		}
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Exitf builds an Error with a formatted message.
func Exitf(code ExitCode, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches an exit code to an underlying error.
func Wrap(code ExitCode, err error, msg string) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}
