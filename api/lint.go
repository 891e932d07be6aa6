package api

// Level is the severity a lint fires at.
type Level uint8

const (
	LevelAllow Level = iota
	LevelWarn
	LevelDeny
	LevelForbid
)

func (l Level) String() string {
	switch l {
	case LevelAllow:
		return "allow"
	case LevelWarn:
		return "warn"
	case LevelDeny:
		return "deny"
	case LevelForbid:
		return "forbid"
	default:
		return "unknown"
	}
}

// MacroReport controls whether a lint fires on code produced by macro
// expansion.
type MacroReport uint8

const (
	// MacroReportNo suppresses the lint on expanded code.
	MacroReportNo MacroReport = iota
	// MacroReportAll reports on expanded code as well.
	MacroReportAll
)

// Lint describes one lint a pass can emit. Instances are declared as
// package-level variables in the lint crate and referenced by every
// diagnostic; the driver registers each lint once per session.
type Lint struct {
	// Name identifies the lint in attributes, written with underscores,
	// e.g. "unused_imports".
	Name string

	// DefaultLevel applies when no attribute overrides it.
	DefaultLevel Level

	// Explanation describes the issue the lint detects.
	Explanation string

	// MacroReport states whether the lint fires inside expansions.
	MacroReport MacroReport
}

// Applicability is the confidence in the correctness of a suggestion.
// Tools use it to decide whether a suggestion can be applied without
// consulting the user.
type Applicability uint8

const (
	// MachineApplicable suggestions maintain the meaning of the code and
	// can be applied automatically.
	MachineApplicable Applicability = iota
	// MaybeIncorrect suggestions produce valid code but may not match
	// the user's intent.
	MaybeIncorrect
	// HasPlaceholders suggestions contain placeholders the user must
	// fill in.
	HasPlaceholders
	// Unspecified marks suggestions with unknown applicability.
	Unspecified
)
