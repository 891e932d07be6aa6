package api

// StmtKind is the closed union of statement nodes.
type StmtKind interface {
	// ID returns the statement's ID within the current session.
	ID() StmtID
	// Span returns where the statement is written.
	Span() *Span
	stmtKind()
}

// StmtData holds the fields shared by every statement node.
type StmtData struct {
	ID   StmtID
	Span SpanID
}

type stmtData struct {
	id   StmtID
	span SpanID
}

func (d *stmtData) ID() StmtID  { return d.id }
func (d *stmtData) Span() *Span { return CurrentContext().Span(d.span) }
func (d *stmtData) stmtKind()   {}

// ItemStmt is an item declared in statement position.
type ItemStmt struct {
	stmtData
	item ItemKind
}

func NewItemStmt(data StmtData, item ItemKind) *ItemStmt {
	return &ItemStmt{stmtData: stmtData{id: data.ID, span: data.Span}, item: item}
}

func (s *ItemStmt) Item() ItemKind { return s.item }

// LetStmt is a `let pat(: ty)? (= init (else { .. })?)?;` binding.
type LetStmt struct {
	stmtData
	pat  PatKind
	ty   TyKind
	init ExprKind
	els  ExprKind
}

func NewLetStmt(data StmtData, pat PatKind, ty TyKind, init, els ExprKind) *LetStmt {
	return &LetStmt{stmtData: stmtData{id: data.ID, span: data.Span}, pat: pat, ty: ty, init: init, els: els}
}

func (s *LetStmt) Pat() PatKind { return s.pat }

// Ty returns the written type annotation, ok=false when inferred.
func (s *LetStmt) Ty() (TyKind, bool) { return s.ty, s.ty != nil }

// Init returns the initializer, ok=false when the binding is
// uninitialized.
func (s *LetStmt) Init() (ExprKind, bool) { return s.init, s.init != nil }

// Else returns the `let .. else` diverging block, ok=false when
// absent.
func (s *LetStmt) Else() (ExprKind, bool) { return s.els, s.els != nil }

// ExprStmt is an expression in statement position.
type ExprStmt struct {
	stmtData
	expr ExprKind
}

func NewExprStmt(data StmtData, expr ExprKind) *ExprStmt {
	return &ExprStmt{stmtData: stmtData{id: data.ID, span: data.Span}, expr: expr}
}

func (s *ExprStmt) Expr() ExprKind { return s.expr }
