package driver

import (
	"fmt"
	"io"

	"marker/api"
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/source"
)

// lintRegistry tracks every lint the loaded passes emit through. Two
// crates declaring the same lint name keep the first registration; the
// duplicate is reported once so colliding crates are discoverable.
type lintRegistry struct {
	byName map[string]*api.Lint
	warn   io.Writer
	warned map[string]bool
}

func newLintRegistry(warn io.Writer) *lintRegistry {
	return &lintRegistry{
		byName: make(map[string]*api.Lint),
		warn:   warn,
		warned: make(map[string]bool),
	}
}

func (r *lintRegistry) register(lint *api.Lint) *api.Lint {
	if lint == nil {
		return nil
	}
	if existing, ok := r.byName[lint.Name]; ok {
		if existing != lint && !r.warned[lint.Name] {
			r.warned[lint.Name] = true
			fmt.Fprintf(r.warn, "warning: lint %q is declared by more than one lint crate; keeping the first declaration\n", lint.Name)
		}
		return existing
	}
	r.byName[lint.Name] = lint
	return lint
}

// levelAttrs are the attribute names that set lint levels.
var levelAttrs = map[string]api.Level{
	"allow":  api.LevelAllow,
	"warn":   api.LevelWarn,
	"deny":   api.LevelDeny,
	"forbid": api.LevelForbid,
}

// lintLevelAt computes the effective level of a lint at a node: the
// innermost level attribute naming the lint wins, except that an outer
// forbid cannot be relaxed further in.
func (st *storage) lintLevelAt(lint *api.Lint, node api.EmissionNode) api.Level {
	level := lint.DefaultLevel
	found := false
	for _, id := range st.crate.OwnerChain(st.anchorItem(node)) {
		if lvl, ok := st.levelFromAttrs(st.crate.Items.ItemAttrs(id), lint.Name); ok {
			if !found {
				level, found = lvl, true
			} else if lvl == api.LevelForbid {
				level = api.LevelForbid
			}
		}
	}
	if lvl, ok := st.levelFromAttrs(st.crate.RootAttrs, lint.Name); ok {
		if !found {
			level = lvl
		} else if lvl == api.LevelForbid {
			level = api.LevelForbid
		}
	}
	return level
}

// levelFromAttrs scans one attribute list; the last matching attribute
// of the list wins, matching source order semantics.
func (st *storage) levelFromAttrs(attrs []hir.Attr, name string) (api.Level, bool) {
	var level api.Level
	found := false
	for _, attr := range attrs {
		lvl, ok := levelAttrs[st.crate.Interner.MustLookup(attr.Name)]
		if !ok {
			continue
		}
		for _, arg := range attr.Args {
			path := arg.PathString(st.crate.Interner)
			if path == name || lastSegment(path) == name {
				level, found = lvl, true
			}
		}
	}
	return level, found
}

func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == ':' {
			return path[i+1:]
		}
	}
	return path
}

// anchorItem maps an emission node onto the item whose attribute chain
// governs it.
func (st *storage) anchorItem(node api.EmissionNode) hir.ItemID {
	switch {
	case node.Item != 0:
		if id, ok := unpackItemID(node.Item); ok {
			return id
		}
	case node.Expr != 0:
		if id, ok := unpackExprID(node.Expr); ok {
			return st.exprOwner[id]
		}
	case node.Stmt != 0:
		if id, ok := unpackStmtID(node.Stmt); ok {
			return st.stmtOwner[id]
		}
	case node.Field != 0:
		if id, ok := unpackFieldID(node.Field); ok {
			if field := st.crate.Items.Field(id); field != nil {
				return field.Owner
			}
		}
	case node.Variant != 0:
		if id, ok := unpackVariantID(node.Variant); ok {
			if variant := st.crate.Items.Variant(id); variant != nil {
				return variant.Owner
			}
		}
	}
	return hir.NoItemID
}

// emitDiag translates a finished API diagnostic back into a host
// diagnostic and files it in the session bag. The severity follows the
// effective lint level at the node: warn maps to a warning, deny and
// forbid to errors. Allow-level diagnostics are dropped here as well,
// in case a pass bypasses the builder's own suppression.
func (st *storage) emitDiag(bag *diag.Bag, d *api.Diagnostic) {
	level := st.lintLevelAt(d.Lint, d.Node)
	var sev diag.Severity
	switch level {
	case api.LevelAllow:
		return
	case api.LevelWarn:
		sev = diag.SevWarning
	default:
		sev = diag.SevError
	}
	primary, ok := st.spans.toHost(&d.Span)
	if !ok {
		primary = source.Span{}
	}
	out := diag.NewLint(sev, d.Lint.Name, primary, d.Msg)
	for _, part := range d.Parts {
		span, _ := st.spans.toHost(&part.Span)
		switch part.Kind {
		case api.DiagPartNote:
			out = out.WithTextNote(part.Msg)
		case api.DiagPartNoteSpan:
			out = out.WithNote(span, part.Msg)
		case api.DiagPartHelp:
			out = out.WithTextHelp(part.Msg)
		case api.DiagPartHelpSpan:
			out = out.WithHelp(span, part.Msg)
		case api.DiagPartSuggestion:
			out = out.WithSuggestion(span, part.Msg, part.Suggestion, hostApplicability(part.App))
		}
	}
	bag.Add(out)
}

func hostApplicability(app api.Applicability) diag.Applicability {
	switch app {
	case api.MachineApplicable:
		return diag.MachineApplicable
	case api.MaybeIncorrect:
		return diag.MaybeIncorrect
	case api.HasPlaceholders:
		return diag.HasPlaceholders
	default:
		return diag.Unspecified
	}
}
