package diag

import "marker/internal/source"

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

// NewLint creates a lint-pass diagnostic carrying the lint name.
func NewLint(sev Severity, lint string, primary source.Span, msg string) Diagnostic {
	d := New(sev, CodeLint, primary, msg)
	d.Lint = lint
	return d
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithTextNote(msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Msg: msg, Spanless: true})
	return d
}

func (d Diagnostic) WithHelp(sp source.Span, msg string) Diagnostic {
	d.Helps = append(d.Helps, Help{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithTextHelp(msg string) Diagnostic {
	d.Helps = append(d.Helps, Help{Msg: msg, Spanless: true})
	return d
}

func (d Diagnostic) WithSuggestion(sp source.Span, msg, replacement string, app Applicability) Diagnostic {
	d.Suggestions = append(d.Suggestions, Suggestion{
		Span:          sp,
		Msg:           msg,
		Replacement:   replacement,
		Applicability: app,
	})
	return d
}
