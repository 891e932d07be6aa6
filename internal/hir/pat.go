package hir

import (
	"marker/internal/source"
)

type PatKind uint8

const (
	PatIdent PatKind = iota
	PatWildcard
	PatRest
	PatRef
	PatStruct
	PatTupleStruct
	PatTuple
	PatSlice
	PatOr
	PatLit
	PatPath
	PatRange
)

type Pat struct {
	Kind    PatKind
	Span    source.Span
	Payload PayloadID
}

type PatIdentData struct {
	Name source.SymbolID
	Mut  bool
	Ref  bool
	Sub  PatID // x @ sub-pattern, NoPatID when absent
}

type PatRefData struct {
	Mut   bool
	Inner PatID
}

type PatFieldData struct {
	Name source.SymbolID
	Pat  PatID
	Span source.Span
}

type PatStructData struct {
	Path    []PathSegment
	Fields  []PatFieldData
	HasRest bool
}

type PatTupleStructData struct {
	Path  []PathSegment
	Elems []PatID
}

type PatListData struct {
	Elems []PatID
}

type PatLitData struct {
	Expr ExprID
}

type PatPathData struct {
	Path []PathSegment
}

type PatRangeData struct {
	Lo        ExprID // NoExprID for open start
	Hi        ExprID
	Inclusive bool
}

type Pats struct {
	Arena        *Arena[Pat]
	Idents       *Arena[PatIdentData]
	Refs         *Arena[PatRefData]
	Structs      *Arena[PatStructData]
	TupleStructs *Arena[PatTupleStructData]
	Tuples       *Arena[PatListData]
	Slices       *Arena[PatListData]
	Ors          *Arena[PatListData]
	Lits         *Arena[PatLitData]
	Paths        *Arena[PatPathData]
	Ranges       *Arena[PatRangeData]
}

func NewPats(capHint uint) *Pats {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Pats{
		Arena:        NewArena[Pat](capHint),
		Idents:       NewArena[PatIdentData](capHint),
		Refs:         NewArena[PatRefData](capHint),
		Structs:      NewArena[PatStructData](capHint),
		TupleStructs: NewArena[PatTupleStructData](capHint),
		Tuples:       NewArena[PatListData](capHint),
		Slices:       NewArena[PatListData](capHint),
		Ors:          NewArena[PatListData](capHint),
		Lits:         NewArena[PatLitData](capHint),
		Paths:        NewArena[PatPathData](capHint),
		Ranges:       NewArena[PatRangeData](capHint),
	}
}

func (p *Pats) new(kind PatKind, span source.Span, payload PayloadID) PatID {
	return PatID(p.Arena.Allocate(Pat{Kind: kind, Span: span, Payload: payload}))
}

func (p *Pats) Get(id PatID) *Pat {
	return p.Arena.Get(uint32(id))
}

func (p *Pats) NewIdent(span source.Span, name source.SymbolID, mut, ref bool, sub PatID) PatID {
	payload := p.Idents.Allocate(PatIdentData{Name: name, Mut: mut, Ref: ref, Sub: sub})
	return p.new(PatIdent, span, PayloadID(payload))
}

func (p *Pats) Ident(id PatID) (*PatIdentData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatIdent {
		return nil, false
	}
	return p.Idents.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewWildcard(span source.Span) PatID {
	return p.new(PatWildcard, span, NoPayloadID)
}

func (p *Pats) NewRest(span source.Span) PatID {
	return p.new(PatRest, span, NoPayloadID)
}

func (p *Pats) NewRef(span source.Span, mut bool, inner PatID) PatID {
	payload := p.Refs.Allocate(PatRefData{Mut: mut, Inner: inner})
	return p.new(PatRef, span, PayloadID(payload))
}

func (p *Pats) Ref(id PatID) (*PatRefData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatRef {
		return nil, false
	}
	return p.Refs.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewStruct(span source.Span, path []PathSegment, fields []PatFieldData, hasRest bool) PatID {
	payload := p.Structs.Allocate(PatStructData{Path: path, Fields: fields, HasRest: hasRest})
	return p.new(PatStruct, span, PayloadID(payload))
}

func (p *Pats) Struct(id PatID) (*PatStructData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatStruct {
		return nil, false
	}
	return p.Structs.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewTupleStruct(span source.Span, path []PathSegment, elems []PatID) PatID {
	payload := p.TupleStructs.Allocate(PatTupleStructData{Path: path, Elems: elems})
	return p.new(PatTupleStruct, span, PayloadID(payload))
}

func (p *Pats) TupleStruct(id PatID) (*PatTupleStructData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatTupleStruct {
		return nil, false
	}
	return p.TupleStructs.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewTuple(span source.Span, elems []PatID) PatID {
	payload := p.Tuples.Allocate(PatListData{Elems: elems})
	return p.new(PatTuple, span, PayloadID(payload))
}

func (p *Pats) Tuple(id PatID) (*PatListData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatTuple {
		return nil, false
	}
	return p.Tuples.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewSlice(span source.Span, elems []PatID) PatID {
	payload := p.Slices.Allocate(PatListData{Elems: elems})
	return p.new(PatSlice, span, PayloadID(payload))
}

func (p *Pats) Slice(id PatID) (*PatListData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatSlice {
		return nil, false
	}
	return p.Slices.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewOr(span source.Span, alts []PatID) PatID {
	payload := p.Ors.Allocate(PatListData{Elems: alts})
	return p.new(PatOr, span, PayloadID(payload))
}

func (p *Pats) Or(id PatID) (*PatListData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatOr {
		return nil, false
	}
	return p.Ors.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewLit(span source.Span, expr ExprID) PatID {
	payload := p.Lits.Allocate(PatLitData{Expr: expr})
	return p.new(PatLit, span, PayloadID(payload))
}

func (p *Pats) Lit(id PatID) (*PatLitData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatLit {
		return nil, false
	}
	return p.Lits.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewPath(span source.Span, path []PathSegment) PatID {
	payload := p.Paths.Allocate(PatPathData{Path: path})
	return p.new(PatPath, span, PayloadID(payload))
}

func (p *Pats) Path(id PatID) (*PatPathData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatPath {
		return nil, false
	}
	return p.Paths.Get(uint32(pat.Payload)), true
}

func (p *Pats) NewRange(span source.Span, lo, hi ExprID, inclusive bool) PatID {
	payload := p.Ranges.Allocate(PatRangeData{Lo: lo, Hi: hi, Inclusive: inclusive})
	return p.new(PatRange, span, PayloadID(payload))
}

func (p *Pats) Range(id PatID) (*PatRangeData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatRange {
		return nil, false
	}
	return p.Ranges.Get(uint32(pat.Payload)), true
}
