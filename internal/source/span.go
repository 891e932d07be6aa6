package source

import (
	"fmt"
)

// Span is a byte range inside one source file. Ctx is the expansion layer
// the spanned tokens belong to; NoExpn means the bytes were written in the
// file directly. For expanded tokens Start/End still point at the macro
// definition site, the call site is recorded in the ExpnTable.
type Span struct {
	File  FileID
	Start uint32 // inclusive, in bytes
	End   uint32 // exclusive, in bytes
	Ctx   ExpnID
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

// FromExpansion reports whether the span originates from a macro expansion.
func (s Span) FromExpansion() bool {
	return s.Ctx != NoExpn
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other. Spans from
// different files or expansion layers cannot be merged; s wins.
func (s Span) Cover(other Span) Span {
	if s.File != other.File || s.Ctx != other.Ctx {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies fully inside s, within the same file
// and expansion layer.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Ctx == other.Ctx &&
		s.Start <= other.Start && other.End <= s.End
}

// InExpansion returns a copy of s tagged with the given expansion layer.
func (s Span) InExpansion(ctx ExpnID) Span {
	s.Ctx = ctx
	return s
}
