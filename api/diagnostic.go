package api

// EmissionNode names the AST node a diagnostic is attached to. The
// driver uses it to determine the effective lint level. Exactly one
// field is set.
type EmissionNode struct {
	Expr    ExprID
	Item    ItemID
	Stmt    StmtID
	Field   FieldID
	Variant VariantID
}

// EmitForExpr builds the emission node for an expression.
func EmitForExpr(id ExprID) EmissionNode { return EmissionNode{Expr: id} }

// EmitForItem builds the emission node for an item.
func EmitForItem(id ItemID) EmissionNode { return EmissionNode{Item: id} }

// EmitForStmt builds the emission node for a statement.
func EmitForStmt(id StmtID) EmissionNode { return EmissionNode{Stmt: id} }

// EmitForField builds the emission node for a field.
func EmitForField(id FieldID) EmissionNode { return EmissionNode{Field: id} }

// EmitForVariant builds the emission node for an enum variant.
func EmitForVariant(id VariantID) EmissionNode { return EmissionNode{Variant: id} }

// DiagnosticPartKind discriminates the ordered extra parts of a
// diagnostic.
type DiagnosticPartKind uint8

const (
	DiagPartNote DiagnosticPartKind = iota
	DiagPartNoteSpan
	DiagPartHelp
	DiagPartHelpSpan
	DiagPartSuggestion
)

// DiagnosticPart is one note, help message, or suggestion attached to a
// diagnostic. Span is only meaningful for the spanned kinds; Suggestion
// and App only for DiagPartSuggestion.
type DiagnosticPart struct {
	Kind       DiagnosticPartKind
	Msg        string
	Span       Span
	Suggestion string
	App        Applicability
}

// Diagnostic is the finished lint emission handed to the driver.
type Diagnostic struct {
	Lint  *Lint
	Msg   string
	Node  EmissionNode
	Span  Span
	Parts []DiagnosticPart
}

// DiagnosticBuilder accumulates a diagnostic before emission. Builders
// returned for suppressed lints (level Allow, or expansion spans when
// the lint opts out of macro reporting) are dummies: parts are
// discarded and Emit does nothing.
type DiagnosticBuilder struct {
	ctx     *MarkerContext
	diag    Diagnostic
	emit    bool
	emitted bool
}

func newDiagnosticBuilder(ctx *MarkerContext, lint *Lint, node EmissionNode, msg string, span Span, emit bool) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		ctx:  ctx,
		diag: Diagnostic{Lint: lint, Msg: msg, Node: node, Span: span},
		emit: emit,
	}
}

// SetMainMessage replaces the primary message of the diagnostic.
func (b *DiagnosticBuilder) SetMainMessage(msg string) *DiagnosticBuilder {
	b.diag.Msg = msg
	return b
}

// SetMainSpan replaces the primary span of the diagnostic.
func (b *DiagnosticBuilder) SetMainSpan(span *Span) *DiagnosticBuilder {
	b.diag.Span = *span
	return b
}

// Note adds a text note providing additional context.
func (b *DiagnosticBuilder) Note(msg string) *DiagnosticBuilder {
	if b.emit {
		b.diag.Parts = append(b.diag.Parts, DiagnosticPart{Kind: DiagPartNote, Msg: msg})
	}
	return b
}

// SpanNote adds a note highlighting a relevant code region.
func (b *DiagnosticBuilder) SpanNote(msg string, span *Span) *DiagnosticBuilder {
	if b.emit {
		b.diag.Parts = append(b.diag.Parts, DiagnosticPart{Kind: DiagPartNoteSpan, Msg: msg, Span: *span})
	}
	return b
}

// Help adds a text help message describing how to solve the issue.
func (b *DiagnosticBuilder) Help(msg string) *DiagnosticBuilder {
	if b.emit {
		b.diag.Parts = append(b.diag.Parts, DiagnosticPart{Kind: DiagPartHelp, Msg: msg})
	}
	return b
}

// SpanHelp adds a help message attached to a code region.
func (b *DiagnosticBuilder) SpanHelp(msg string, span *Span) *DiagnosticBuilder {
	if b.emit {
		b.diag.Parts = append(b.diag.Parts, DiagnosticPart{Kind: DiagPartHelpSpan, Msg: msg, Span: *span})
	}
	return b
}

// SpanSuggestion adds a suggested replacement for the spanned code with
// the given confidence. A machine-applicable suggestion on a span that
// comes from a macro expansion is downgraded to maybe-incorrect:
// rewriting expanded code in place is never safe to automate.
func (b *DiagnosticBuilder) SpanSuggestion(msg string, span *Span, suggestion string, app Applicability) *DiagnosticBuilder {
	if b.emit {
		if app == MachineApplicable && span.IsFromExpansion() {
			app = MaybeIncorrect
		}
		b.diag.Parts = append(b.diag.Parts, DiagnosticPart{
			Kind: DiagPartSuggestion, Msg: msg, Span: *span, Suggestion: suggestion, App: app,
		})
	}
	return b
}

// Decorate runs f on the builder only when the diagnostic will actually
// be emitted, letting expensive part construction be skipped for
// suppressed lints.
func (b *DiagnosticBuilder) Decorate(f func(*DiagnosticBuilder)) *DiagnosticBuilder {
	if b.emit {
		f(b)
	}
	return b
}

// Emit submits the diagnostic to the driver. A builder that is never
// emitted is discarded; emitting twice submits once.
func (b *DiagnosticBuilder) Emit() {
	if !b.emit || b.emitted {
		return
	}
	b.emitted = true
	b.ctx.emitDiag(&b.diag)
}
