package api

// SpanPos is a byte position inside a span source. Positions from
// different sources must not be mixed; the position space is owned by
// the driver.
type SpanPos uint32

// Span is a region of code, used for snipping, lint emission, and the
// retrieval of context information. Spans provided by the driver always
// hold valid byte indices that never split a UTF-8 code point.
type Span struct {
	srcID SpanSrcID
	expn  ExpnID
	start SpanPos
	end   SpanPos
}

// NewSpan is used by the driver to construct spans. expn is the
// expansion that produced the span, NoExpnID for code written directly
// in a source file.
func NewSpan(srcID SpanSrcID, expn ExpnID, start, end SpanPos) Span {
	return Span{srcID: srcID, expn: expn, start: start, end: end}
}

// SrcID identifies the source this span points into.
func (s *Span) SrcID() SpanSrcID { return s.srcID }

// Start returns the start position of the span.
func (s *Span) Start() SpanPos { return s.start }

// End returns the position one past the last byte of the span.
func (s *Span) End() SpanPos { return s.end }

// Len returns the length of the span in bytes.
func (s *Span) Len() int { return int(s.end - s.start) }

// IsEmpty reports whether the span covers zero bytes.
func (s *Span) IsEmpty() bool { return s.start == s.end }

// ExpnID returns the expansion that produced this span, NoExpnID for
// code written directly in a source file. Two spans can collapse onto
// the same call-site byte range yet come from different expansions;
// the ID keeps their chains apart.
func (s *Span) ExpnID() ExpnID { return s.expn }

// IsFromExpansion reports whether the spanned code was produced by a
// macro expansion rather than written in a source file.
func (s *Span) IsFromExpansion() bool { return s.expn != NoExpnID }

// Source returns the file or expansion this span belongs to.
func (s *Span) Source() SpanSource {
	return CurrentContext().SpanSource(s)
}

// Snippet returns the source text the span covers, or ok=false when the
// text is unavailable.
func (s *Span) Snippet() (string, bool) {
	return CurrentContext().SpanSnippet(s)
}

// SnippetOr returns the snippet, or the given default when the text is
// unavailable. For placeholders, angle brackets are the convention, e.g.
// "<expr>".
func (s *Span) SnippetOr(def string) string {
	if text, ok := s.Snippet(); ok {
		return text
	}
	return def
}

// SnippetWithApplicability returns the snippet for use in a suggestion,
// degrading the applicability to match what the snippet can promise: an
// expansion span can never be machine applicable, and falling back to
// the placeholder leaves placeholders in the suggestion. The
// applicability is never upgraded.
func (s *Span) SnippetWithApplicability(placeholder string, applicability *Applicability) string {
	if *applicability != Unspecified && s.IsFromExpansion() {
		*applicability = MaybeIncorrect
	}
	text, ok := s.Snippet()
	if !ok {
		if *applicability == MachineApplicable || *applicability == MaybeIncorrect {
			*applicability = HasPlaceholders
		}
		return placeholder
	}
	return text
}

// SpanSource tells where a span's text lives: a file or a macro
// expansion. Exactly one field is set.
type SpanSource struct {
	File *FileInfo
	Expn *ExpnInfo
}

// FileInfo describes a file-backed span source.
type FileInfo struct {
	file    string
	spanSrc SpanSrcID
}

// NewFileInfo is used by the driver to construct file infos.
func NewFileInfo(file string, spanSrc SpanSrcID) *FileInfo {
	return &FileInfo{file: file, spanSrc: spanSrc}
}

// File returns the path of the file as the driver knows it.
func (f *FileInfo) File() string { return f.file }

// SpanSrc returns the span source ID backing this file.
func (f *FileInfo) SpanSrc() SpanSrcID { return f.spanSrc }

// ToFilePos maps a span position to a line/column location, or ok=false
// when the position belongs to a different file.
func (f *FileInfo) ToFilePos(pos SpanPos) (FilePos, bool) {
	return CurrentContext().SpanPosToFileLoc(f, pos)
}

// FilePos is a 1-indexed line/column location inside a file, both
// measured in bytes.
type FilePos struct {
	Line   int
	Column int
}

// ExpnInfo describes one macro expansion. Expansions chain: an expansion
// produced inside another expansion has a parent.
type ExpnInfo struct {
	parent   ExpnID
	callSite SpanID
	macroID  MacroID
}

// NewExpnInfo is used by the driver to construct expansion infos.
func NewExpnInfo(parent ExpnID, callSite SpanID, macroID MacroID) *ExpnInfo {
	return &ExpnInfo{parent: parent, callSite: callSite, macroID: macroID}
}

// Parent returns the expansion this expansion was produced inside, or
// ok=false for a top-level expansion.
func (e *ExpnInfo) Parent() (*ExpnInfo, bool) {
	return CurrentContext().SpanExpnInfo(e.parent)
}

// CallSite returns the span of the invocation that triggered this
// expansion.
func (e *ExpnInfo) CallSite() *Span {
	return CurrentContext().Span(e.callSite)
}

// MacroID identifies the macro that was expanded.
func (e *ExpnInfo) MacroID() MacroID { return e.macroID }

// Ident is an identifier tied to its occurrence in the source.
type Ident struct {
	sym  SymbolID
	span SpanID
}

// NewIdent is used by the driver to construct identifiers.
func NewIdent(sym SymbolID, span SpanID) *Ident {
	return &Ident{sym: sym, span: span}
}

// Name returns the identifier text.
func (i *Ident) Name() string {
	return CurrentContext().SymbolStr(i.sym)
}

// Span returns where the identifier occurs.
func (i *Ident) Span() *Span {
	return CurrentContext().Span(i.span)
}

func (i *Ident) String() string { return i.Name() }
