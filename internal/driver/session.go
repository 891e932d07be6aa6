package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"marker/api"
	"marker/internal/adapter"
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/sema"
	"marker/internal/source"
)

// silenceUnstableWarningEnv silences the once-per-session note about
// bodies collapsed to unstable placeholders.
const silenceUnstableWarningEnv = "MARKER_SILENCE_UNSTABLE_BODY_WARNING"

// Session owns one lint run over a checked crate: the node conversion
// caches, the span table, the lint registry, and the sink the lint
// diagnostics land in.
type Session struct {
	crate    *hir.Crate
	analysis *sema.Analysis
	spans    *spanTable
	storage  *storage
	lints    *lintRegistry
	bag      *diag.Bag

	stderr       io.Writer
	warnUnstable sync.Once
}

// NewSession assembles a session over a lowered and type-checked crate.
// Diagnostics emitted by lint crates are added to bag.
func NewSession(crate *hir.Crate, analysis *sema.Analysis, fset *source.FileSet, bag *diag.Bag) *Session {
	s := &Session{
		crate:    crate,
		analysis: analysis,
		bag:      bag,
		stderr:   os.Stderr,
	}
	s.spans = newSpanTable(fset, crate.Expns)
	s.storage = newStorage(crate, analysis, s.spans)
	s.storage.onUnstableBody = s.unstableBodyWarning
	s.lints = newLintRegistry(s.stderr)
	return s
}

// errorTraceEnv attaches the stack trace to internal error reports.
const errorTraceEnv = "MARKER_ERROR_TRACE"

// ErrInternal is returned by Run when the conversion layer itself
// panics. Lint crate panics are contained by the adapter and do not
// reach this.
var ErrInternal = errors.New("internal driver error")

// Run registers the lints of every loaded crate and drives the adapter
// over the converted crate. A panic inside the conversion layer is
// turned into an internal error report instead of crashing the process.
func (s *Session) Run(a *adapter.Adapter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.reportICE(r)
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()
	for _, info := range a.Infos() {
		for _, lint := range info.Lints {
			s.lints.register(lint)
		}
	}
	ctx := api.NewMarkerContext(s, s.callbacks(), api.NewAstMap(s, s.astCallbacks()))
	a.ProcessCrate(ctx, s.storage.convertRoot())
	return nil
}

func (s *Session) reportICE(recovered any) {
	fmt.Fprintf(s.stderr, "error: internal error in the lint driver: %v\n", recovered)
	if os.Getenv(errorTraceEnv) != "" {
		s.stderr.Write(debug.Stack())
	} else {
		fmt.Fprintf(s.stderr, "note: set %s=1 to include a stack trace\n", errorTraceEnv)
	}
	fmt.Fprintln(s.stderr, "note: this is a bug in the driver, not in your code or your lint crates; please file a report")
}

func (s *Session) unstableBodyWarning() {
	s.warnUnstable.Do(func() {
		if os.Getenv(silenceUnstableWarningEnv) != "" {
			return
		}
		fmt.Fprintln(s.stderr, "warning: `async` bodies are passed to lint crates as opaque unstable placeholders")
		fmt.Fprintf(s.stderr, "note: set %s=1 to silence this warning\n", silenceUnstableWarningEnv)
	})
}

// exprSemaTy locates the body the checker filed an expression's results
// under. Nodes of minted bodies, such as enum discriminants, have no
// recorded results and come back unstable.
func (s *Session) exprSemaTy(id hir.ExprID) sema.TyID {
	owner := s.storage.exprOwner[id]
	return s.analysis.ExprTy(s.storage.itemRootBody(owner), id)
}

func (s *Session) callbacks() api.Callbacks {
	return api.Callbacks{
		EmitDiag: func(data any, d *api.Diagnostic) {
			sess := data.(*Session)
			sess.storage.emitDiag(sess.bag, d)
		},
		ResolveTyIDs: func(data any, path string) []api.TyDefID {
			return data.(*Session).storage.resolveTyIDs(path)
		},
		ExprTy: func(data any, id api.ExprID) api.SemTyKind {
			sess := data.(*Session)
			hirID, ok := unpackExprID(id)
			if !ok {
				return &api.SemUnstableTy{}
			}
			return sess.storage.convertSemTy(sess.exprSemaTy(hirID))
		},
		Span: func(data any, id api.SpanID) *api.Span {
			return data.(*Session).spans.resolve(id)
		},
		SpanSnippet: func(data any, span *api.Span) (string, bool) {
			return data.(*Session).spans.snippet(span)
		},
		SpanSource: func(data any, span *api.Span) api.SpanSource {
			return data.(*Session).spans.spanSource(span)
		},
		SpanExpnInfo: func(data any, id api.ExpnID) (*api.ExpnInfo, bool) {
			info := data.(*Session).spans.expnInfo(id)
			return info, info != nil
		},
		SpanPosToFileLoc: func(data any, file *api.FileInfo, pos api.SpanPos) (api.FilePos, bool) {
			return data.(*Session).spans.fileLoc(file, pos)
		},
		SymbolStr: func(data any, id api.SymbolID) string {
			return data.(*Session).crate.Interner.MustLookup(source.SymbolID(id))
		},
		ResolveMethodTarget: func(data any, id api.ExprID) (api.ItemID, bool) {
			sess := data.(*Session)
			hirID, ok := unpackExprID(id)
			if !ok {
				return 0, false
			}
			owner := sess.storage.exprOwner[hirID]
			target, found := sess.analysis.MethodTarget(sess.storage.itemRootBody(owner), hirID)
			if !found {
				return 0, false
			}
			return packItemID(target), true
		},
	}
}

func (s *Session) astCallbacks() api.AstMapCallbacks {
	return api.AstMapCallbacks{
		Item: func(data any, id api.ItemID) (api.ItemKind, bool) {
			hirID, ok := unpackItemID(id)
			if !ok {
				return nil, false
			}
			item := data.(*Session).storage.convertItem(hirID)
			return item, item != nil
		},
		Variant: func(data any, id api.VariantID) (*api.EnumVariant, bool) {
			hirID, ok := unpackVariantID(id)
			if !ok {
				return nil, false
			}
			variant := data.(*Session).storage.convertVariant(hirID)
			return variant, variant != nil
		},
		Field: func(data any, id api.FieldID) (*api.Field, bool) {
			hirID, ok := unpackFieldID(id)
			if !ok {
				return nil, false
			}
			field := data.(*Session).storage.convertField(hirID)
			return field, field != nil
		},
		Body: func(data any, id api.BodyID) (*api.Body, bool) {
			hirID, ok := unpackBodyID(id)
			if !ok {
				return nil, false
			}
			body := data.(*Session).storage.convertBody(hirID)
			return body, body != nil
		},
		Stmt: func(data any, id api.StmtID) (api.StmtKind, bool) {
			hirID, ok := unpackStmtID(id)
			if !ok {
				return nil, false
			}
			stmt := data.(*Session).storage.convertStmt(hirID)
			return stmt, stmt != nil
		},
		Expr: func(data any, id api.ExprID) (api.ExprKind, bool) {
			hirID, ok := unpackExprID(id)
			if !ok {
				return nil, false
			}
			expr := data.(*Session).storage.convertExpr(hirID)
			return expr, expr != nil
		},
		LintLevelAt: func(data any, lint *api.Lint, node api.EmissionNode) api.Level {
			return data.(*Session).storage.lintLevelAt(lint, node)
		},
	}
}
