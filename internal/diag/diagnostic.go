package diag

import (
	"marker/internal/source"
)

// Note is a secondary message. Spanless notes leave Span zero-valued and set
// Spanless.
type Note struct {
	Span     source.Span
	Msg      string
	Spanless bool
}

// Help is an additional hint about how the issue can be solved.
type Help struct {
	Span     source.Span
	Msg      string
	Spanless bool
}

// Suggestion is a spanned replacement proposal with a confidence level.
type Suggestion struct {
	Span          source.Span
	Msg           string
	Replacement   string
	Applicability Applicability
}

// Diagnostic is one finding, produced either by the host frontend or by a
// lint pass. Lint is empty for frontend diagnostics.
type Diagnostic struct {
	Severity    Severity
	Code        Code
	Lint        string
	Message     string
	Primary     source.Span
	Notes       []Note
	Helps       []Help
	Suggestions []Suggestion
}
