package hir

import (
	"marker/internal/source"
)

type StmtKind uint8

const (
	StmtItem StmtKind = iota
	StmtLet
	StmtExpr
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtItemData struct {
	Item ItemID
}

type StmtLetData struct {
	Pat  PatID
	Ty   TypeID // NoTypeID when inferred
	Init ExprID // NoExprID when uninitialized
	Else ExprID // let-else block, NoExprID when absent
}

type StmtExprData struct {
	Expr ExprID
	Semi bool
}

type Stmts struct {
	Arena *Arena[Stmt]
	Items *Arena[StmtItemData]
	Lets  *Arena[StmtLetData]
	Exprs *Arena[StmtExprData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
		Items: NewArena[StmtItemData](capHint),
		Lets:  NewArena[StmtLetData](capHint),
		Exprs: NewArena[StmtExprData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: payload}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewItem(span source.Span, item ItemID) StmtID {
	payload := s.Items.Allocate(StmtItemData{Item: item})
	return s.new(StmtItem, span, PayloadID(payload))
}

func (s *Stmts) Item(id StmtID) (*StmtItemData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtItem {
		return nil, false
	}
	return s.Items.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewLet(span source.Span, data StmtLetData) StmtID {
	payload := s.Lets.Allocate(data)
	return s.new(StmtLet, span, PayloadID(payload))
}

func (s *Stmts) Let(id StmtID) (*StmtLetData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID, semi bool) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr, Semi: semi})
	return s.new(StmtExpr, span, PayloadID(payload))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(st.Payload)), true
}
