package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Applicability is the confidence attached to a suggestion. It mirrors the
// levels of the stable lint API so translated suggestions lose nothing.
type Applicability uint8

const (
	// MachineApplicable marks suggestions that can be applied automatically.
	MachineApplicable Applicability = iota
	// MaybeIncorrect marks suggestions that produce valid code but may not
	// preserve intent.
	MaybeIncorrect
	// HasPlaceholders marks suggestions containing placeholder text.
	HasPlaceholders
	// Unspecified marks suggestions with unknown confidence.
	Unspecified
)

func (a Applicability) String() string {
	switch a {
	case MachineApplicable:
		return "machine-applicable"
	case MaybeIncorrect:
		return "maybe-incorrect"
	case HasPlaceholders:
		return "has-placeholders"
	case Unspecified:
		return "unspecified"
	}
	return "unknown"
}
