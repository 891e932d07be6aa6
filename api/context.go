package api

// Callbacks is the function table the driver installs into a
// MarkerContext. Every entry receives the driver's opaque data value as
// its first argument. Lint crates never call these directly; they go
// through the MarkerContext methods.
type Callbacks struct {
	EmitDiag            func(data any, diag *Diagnostic)
	ResolveTyIDs        func(data any, path string) []TyDefID
	ExprTy              func(data any, id ExprID) SemTyKind
	Span                func(data any, id SpanID) *Span
	SpanSnippet         func(data any, span *Span) (string, bool)
	SpanSource          func(data any, span *Span) SpanSource
	SpanExpnInfo        func(data any, id ExpnID) (*ExpnInfo, bool)
	SpanPosToFileLoc    func(data any, file *FileInfo, pos SpanPos) (FilePos, bool)
	SymbolStr           func(data any, id SymbolID) string
	ResolveMethodTarget func(data any, id ExprID) (ItemID, bool)
}

// MarkerContext is the lint crate's window into the driver: node
// queries, span queries, type queries, and diagnostic emission.
type MarkerContext struct {
	data      any
	callbacks Callbacks
	astMap    *AstMap
}

// NewMarkerContext is used by the driver to assemble a context.
func NewMarkerContext(data any, callbacks Callbacks, astMap *AstMap) *MarkerContext {
	return &MarkerContext{data: data, callbacks: callbacks, astMap: astMap}
}

// AST returns the node map of the currently compiled crate.
func (c *MarkerContext) AST() *AstMap { return c.astMap }

// EmitLint starts a diagnostic for the given lint at the given node.
// The returned builder is a dummy when the effective lint level is
// Allow, or when the span comes from a macro expansion and the lint's
// macro-report policy excludes expansions.
func (c *MarkerContext) EmitLint(lint *Lint, node EmissionNode, msg string, span *Span) *DiagnosticBuilder {
	emit := c.astMap.LintLevelAt(lint, node) != LevelAllow
	if emit && lint.MacroReport == MacroReportNo && span.IsFromExpansion() {
		emit = false
	}
	return newDiagnosticBuilder(c, lint, node, msg, *span, emit)
}

func (c *MarkerContext) emitDiag(diag *Diagnostic) {
	c.callbacks.EmitDiag(c.data, diag)
}

// ResolveTyIDs resolves a ::-separated type path to the matching type
// definitions: empty if unresolvable, several if the path is ambiguous
// across crate versions.
func (c *MarkerContext) ResolveTyIDs(path string) []TyDefID {
	return c.callbacks.ResolveTyIDs(c.data, path)
}

// ExprTy returns the semantic type of an expression. It is only valid
// during a body traversal.
func (c *MarkerContext) ExprTy(id ExprID) SemTyKind {
	return c.callbacks.ExprTy(c.data, id)
}

// Span resolves a span token.
func (c *MarkerContext) Span(id SpanID) *Span {
	return c.callbacks.Span(c.data, id)
}

// SpanSnippet returns the source text of a span, ok=false when it is
// unavailable.
func (c *MarkerContext) SpanSnippet(span *Span) (string, bool) {
	return c.callbacks.SpanSnippet(c.data, span)
}

// SpanSource returns the file or expansion a span belongs to.
func (c *MarkerContext) SpanSource(span *Span) SpanSource {
	return c.callbacks.SpanSource(c.data, span)
}

// SpanExpnInfo resolves an expansion ID, ok=false for NoExpnID.
func (c *MarkerContext) SpanExpnInfo(id ExpnID) (*ExpnInfo, bool) {
	return c.callbacks.SpanExpnInfo(c.data, id)
}

// SpanPosToFileLoc maps a span position to a line/column location in the
// given file.
func (c *MarkerContext) SpanPosToFileLoc(file *FileInfo, pos SpanPos) (FilePos, bool) {
	return c.callbacks.SpanPosToFileLoc(c.data, file, pos)
}

// SymbolStr returns the interned text behind a symbol.
func (c *MarkerContext) SymbolStr(id SymbolID) string {
	return c.callbacks.SymbolStr(c.data, id)
}

// ResolveMethodTarget returns the item a method call dispatches to,
// ok=false when the receiver's type is outside the analyzed crate.
func (c *MarkerContext) ResolveMethodTarget(id ExprID) (ItemID, bool) {
	return c.callbacks.ResolveMethodTarget(c.data, id)
}

// currentCtx is the context slot nodes resolve their driver-backed
// accessors through. The adapter installs it before any traversal; the
// core is single-threaded per session, so a plain variable suffices.
var currentCtx *MarkerContext

// SetCurrentContext installs (or clears, with nil) the ambient context.
// It is called by the adapter through each pass's SetContext binding.
func SetCurrentContext(ctx *MarkerContext) { currentCtx = ctx }

// CurrentContext returns the ambient context. Calling it outside of a
// lint-pass callback is a contract violation.
func CurrentContext() *MarkerContext {
	if currentCtx == nil {
		panic("marker: no MarkerContext is installed; node accessors are only valid inside lint-pass callbacks")
	}
	return currentCtx
}
