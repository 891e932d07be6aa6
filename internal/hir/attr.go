package hir

import (
	"marker/internal/source"
)

// Attr is one outer attribute. Only meta-list and bare forms survive
// lowering: #[name] and #[name(arg, path::arg, ...)].
type Attr struct {
	Name source.SymbolID
	Args []AttrArg
	Span source.Span
}

// AttrArg is one element of a meta list, stored as a path.
type AttrArg struct {
	Path []source.SymbolID
	Span source.Span
}

// PathString joins the argument path with "::".
func (a AttrArg) PathString(in *source.Interner) string {
	out := ""
	for i, seg := range a.Path {
		if i > 0 {
			out += "::"
		}
		out += in.MustLookup(seg)
	}
	return out
}
