// Package diagfmt renders host diagnostics for terminals: a
// path:line:col header, the offending source line with an underline,
// and the attached notes, helps, and suggestions.
package diagfmt

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"marker/internal/diag"
	"marker/internal/source"
)

// Options controls rendering.
type Options struct {
	// Color enables ANSI styling. Use ColorEnabled to follow the
	// output terminal.
	Color bool

	// Context enables the source-line excerpt under each primary span.
	Context bool
}

// ColorEnabled reports whether w is a terminal that should get colors.
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	lintColor    = color.New(color.FgMagenta)
	noteColor    = color.New(color.FgCyan)
	markerColor  = color.New(color.FgGreen, color.Bold)
)

// Render writes every diagnostic of the bag. The bag should be sorted
// first so output order is stable.
func Render(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts Options) {
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderOne(w, &d, fs, opts)
	}
}

func renderOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts Options) {
	label := strings.ToLower(d.Severity.String())
	if d.Lint != "" {
		label = fmt.Sprintf("%s[%s]", label, paint(opts, lintColor, d.Lint))
	} else if d.Code != 0 {
		label = fmt.Sprintf("%s[%s]", label, d.Code)
	}
	fmt.Fprintf(w, "%s: %s: %s\n", position(fs, d.Primary), paint(opts, severityColor(d.Severity), label), d.Message)
	if opts.Context {
		renderContext(w, fs, d.Primary, opts)
	}

	for _, note := range d.Notes {
		renderPart(w, fs, "note", noteColor, note.Msg, note.Span, note.Spanless, opts)
	}
	for _, help := range d.Helps {
		renderPart(w, fs, "help", markerColor, help.Msg, help.Span, help.Spanless, opts)
	}
	for _, sugg := range d.Suggestions {
		renderPart(w, fs, "help", markerColor, sugg.Msg, sugg.Span, false, opts)
		fmt.Fprintf(w, "      %s %s\n", paint(opts, markerColor, "replace with:"), sugg.Replacement)
		if sugg.Applicability != diag.MachineApplicable {
			fmt.Fprintf(w, "      (%s)\n", sugg.Applicability)
		}
	}
}

func renderPart(w io.Writer, fs *source.FileSet, kind string, c *color.Color, msg string, span source.Span, spanless bool, opts Options) {
	if spanless {
		fmt.Fprintf(w, "  %s: %s\n", paint(opts, c, kind), msg)
		return
	}
	fmt.Fprintf(w, "  %s: %s: %s\n", paint(opts, c, kind), position(fs, span), msg)
	if opts.Context {
		renderContext(w, fs, span, opts)
	}
}

// renderContext prints the first source line of the span with an
// underline. Multi-line spans underline to the end of the first line.
func renderContext(w io.Writer, fs *source.FileSet, span source.Span, opts Options) {
	start, end := fs.Resolve(span)
	file := fs.Get(span.File)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	line = strings.TrimRight(line, "\r\n")

	gutter := fmt.Sprintf("%4d", start.Line)
	fmt.Fprintf(w, "%s | %s\n", gutter, line)

	startCol := int(start.Col)
	endCol := int(end.Col)
	if end.Line != start.Line || endCol <= startCol {
		endCol = len(line) + 1
	}
	// underline columns are display widths, not byte offsets
	prefixWidth := displayWidth(line, startCol-1)
	spanWidth := displayWidth(line[min(startCol-1, len(line)):], endCol-startCol)
	if spanWidth < 1 {
		spanWidth = 1
	}
	underline := strings.Repeat(" ", prefixWidth) + "^" + strings.Repeat("~", spanWidth-1)
	fmt.Fprintf(w, "%s | %s\n", strings.Repeat(" ", len(gutter)), paint(opts, markerColor, underline))
}

// displayWidth is the rendered width of the first n bytes of s, with
// tabs counted as a single column to match the echoed line.
func displayWidth(s string, n int) int {
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return runewidth.StringWidth(s[:n])
}

func position(fs *source.FileSet, span source.Span) string {
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func paint(opts Options, c *color.Color, s string) string {
	if !opts.Color {
		return s
	}
	return c.Sprint(s)
}
