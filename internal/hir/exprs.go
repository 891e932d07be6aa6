package hir

import (
	"marker/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Lits      *Arena[ExprLitData]
	Paths     *Arena[ExprPathData]
	Blocks    *Arena[ExprBlockData]
	Closures  *Arena[ExprClosureData]
	Unaries   *Arena[ExprUnaryData]
	Refs      *Arena[ExprRefData]
	Binaries  *Arena[ExprBinaryData]
	Tries     *Arena[ExprTryData]
	Assigns   *Arena[ExprAssignData]
	Casts     *Arena[ExprCastData]
	Calls     *Arena[ExprCallData]
	Methods   *Arena[ExprMethodData]
	Arrays    *Arena[ExprArrayData]
	Tuples    *Arena[ExprTupleData]
	Structs   *Arena[ExprStructData]
	Ranges    *Arena[ExprRangeData]
	Indices   *Arena[ExprIndexData]
	Fields    *Arena[ExprFieldData]
	Ifs       *Arena[ExprIfData]
	Lets      *Arena[ExprLetData]
	Matches   *Arena[ExprMatchData]
	Breaks    *Arena[ExprBreakData]
	Returns   *Arena[ExprReturnData]
	Continues *Arena[ExprContinueData]
	Fors      *Arena[ExprForData]
	Loops     *Arena[ExprLoopData]
	Whiles    *Arena[ExprWhileData]
	Awaits    *Arena[ExprAwaitData]
	Asyncs    *Arena[ExprAsyncData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Lits:      NewArena[ExprLitData](capHint),
		Paths:     NewArena[ExprPathData](capHint),
		Blocks:    NewArena[ExprBlockData](capHint),
		Closures:  NewArena[ExprClosureData](capHint),
		Unaries:   NewArena[ExprUnaryData](capHint),
		Refs:      NewArena[ExprRefData](capHint),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Tries:     NewArena[ExprTryData](capHint),
		Assigns:   NewArena[ExprAssignData](capHint),
		Casts:     NewArena[ExprCastData](capHint),
		Calls:     NewArena[ExprCallData](capHint),
		Methods:   NewArena[ExprMethodData](capHint),
		Arrays:    NewArena[ExprArrayData](capHint),
		Tuples:    NewArena[ExprTupleData](capHint),
		Structs:   NewArena[ExprStructData](capHint),
		Ranges:    NewArena[ExprRangeData](capHint),
		Indices:   NewArena[ExprIndexData](capHint),
		Fields:    NewArena[ExprFieldData](capHint),
		Ifs:       NewArena[ExprIfData](capHint),
		Lets:      NewArena[ExprLetData](capHint),
		Matches:   NewArena[ExprMatchData](capHint),
		Breaks:    NewArena[ExprBreakData](capHint),
		Returns:   NewArena[ExprReturnData](capHint),
		Continues: NewArena[ExprContinueData](capHint),
		Fors:      NewArena[ExprForData](capHint),
		Loops:     NewArena[ExprLoopData](capHint),
		Whiles:    NewArena[ExprWhileData](capHint),
		Awaits:    NewArena[ExprAwaitData](capHint),
		Asyncs:    NewArena[ExprAsyncData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewLit(span source.Span, kind LitKind, text source.SymbolID) ExprID {
	payload := e.Lits.Allocate(ExprLitData{Kind: kind, Text: text})
	return e.new(ExprLit, span, PayloadID(payload))
}

func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprLit {
		return nil, false
	}
	return e.Lits.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewPath(span source.Span, segments []PathSegment) ExprID {
	payload := e.Paths.Allocate(ExprPathData{Segments: segments})
	return e.new(ExprPath, span, PayloadID(payload))
}

func (e *Exprs) Path(id ExprID) (*ExprPathData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprPath {
		return nil, false
	}
	return e.Paths.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewBlock(span source.Span, data ExprBlockData) ExprID {
	payload := e.Blocks.Allocate(data)
	return e.new(ExprBlock, span, PayloadID(payload))
}

func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprBlock {
		return nil, false
	}
	return e.Blocks.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewClosure(span source.Span, data ExprClosureData) ExprID {
	payload := e.Closures.Allocate(data)
	return e.new(ExprClosure, span, PayloadID(payload))
}

func (e *Exprs) Closure(id ExprID) (*ExprClosureData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprClosure {
		return nil, false
	}
	return e.Closures.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewRef(span source.Span, mut bool, operand ExprID) ExprID {
	payload := e.Refs.Allocate(ExprRefData{Mut: mut, Operand: operand})
	return e.new(ExprRef, span, PayloadID(payload))
}

func (e *Exprs) Ref(id ExprID) (*ExprRefData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprRef {
		return nil, false
	}
	return e.Refs.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewTry(span source.Span, operand ExprID) ExprID {
	payload := e.Tries.Allocate(ExprTryData{Operand: operand})
	return e.new(ExprTry, span, PayloadID(payload))
}

func (e *Exprs) Try(id ExprID) (*ExprTryData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprTry {
		return nil, false
	}
	return e.Tries.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewAssign(span source.Span, op BinaryOp, place, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Op: op, Place: place, Value: value})
	return e.new(ExprAssign, span, PayloadID(payload))
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprAssign {
		return nil, false
	}
	return e.Assigns.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewCast(span source.Span, operand ExprID, ty TypeID) ExprID {
	payload := e.Casts.Allocate(ExprCastData{Operand: operand, Ty: ty})
	return e.new(ExprCast, span, PayloadID(payload))
}

func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprCast {
		return nil, false
	}
	return e.Casts.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args})
	return e.new(ExprCall, span, PayloadID(payload))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewMethod(span source.Span, data ExprMethodData) ExprID {
	payload := e.Methods.Allocate(data)
	return e.new(ExprMethod, span, PayloadID(payload))
}

func (e *Exprs) Method(id ExprID) (*ExprMethodData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprMethod {
		return nil, false
	}
	return e.Methods.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewArray(span source.Span, data ExprArrayData) ExprID {
	payload := e.Arrays.Allocate(data)
	return e.new(ExprArray, span, PayloadID(payload))
}

func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprArray {
		return nil, false
	}
	return e.Arrays.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewTuple(span source.Span, elems []ExprID) ExprID {
	payload := e.Tuples.Allocate(ExprTupleData{Elems: elems})
	return e.new(ExprTuple, span, PayloadID(payload))
}

func (e *Exprs) Tuple(id ExprID) (*ExprTupleData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprTuple {
		return nil, false
	}
	return e.Tuples.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewStruct(span source.Span, data ExprStructData) ExprID {
	payload := e.Structs.Allocate(data)
	return e.new(ExprStruct, span, PayloadID(payload))
}

func (e *Exprs) Struct(id ExprID) (*ExprStructData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprStruct {
		return nil, false
	}
	return e.Structs.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewRange(span source.Span, lo, hi ExprID, inclusive bool) ExprID {
	payload := e.Ranges.Allocate(ExprRangeData{Lo: lo, Hi: hi, Inclusive: inclusive})
	return e.new(ExprRange, span, PayloadID(payload))
}

func (e *Exprs) Range(id ExprID) (*ExprRangeData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprRange {
		return nil, false
	}
	return e.Ranges.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewIndex(span source.Span, base, index ExprID) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Base: base, Index: index})
	return e.new(ExprIndex, span, PayloadID(payload))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewField(span source.Span, data ExprFieldData) ExprID {
	payload := e.Fields.Allocate(data)
	return e.new(ExprField, span, PayloadID(payload))
}

func (e *Exprs) Field(id ExprID) (*ExprFieldData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprField {
		return nil, false
	}
	return e.Fields.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewIf(span source.Span, cond, then, els ExprID) ExprID {
	payload := e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: els})
	return e.new(ExprIf, span, PayloadID(payload))
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprIf {
		return nil, false
	}
	return e.Ifs.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewLet(span source.Span, pat PatID, init ExprID) ExprID {
	payload := e.Lets.Allocate(ExprLetData{Pat: pat, Init: init})
	return e.new(ExprLet, span, PayloadID(payload))
}

func (e *Exprs) Let(id ExprID) (*ExprLetData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprLet {
		return nil, false
	}
	return e.Lets.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewMatch(span source.Span, scrutinee ExprID, arms []MatchArm) ExprID {
	payload := e.Matches.Allocate(ExprMatchData{Scrutinee: scrutinee, Arms: arms})
	return e.new(ExprMatch, span, PayloadID(payload))
}

func (e *Exprs) Match(id ExprID) (*ExprMatchData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprMatch {
		return nil, false
	}
	return e.Matches.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewBreak(span source.Span, label source.SymbolID, value ExprID) ExprID {
	payload := e.Breaks.Allocate(ExprBreakData{Label: label, Value: value})
	return e.new(ExprBreak, span, PayloadID(payload))
}

func (e *Exprs) Break(id ExprID) (*ExprBreakData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprBreak {
		return nil, false
	}
	return e.Breaks.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewReturn(span source.Span, value ExprID) ExprID {
	payload := e.Returns.Allocate(ExprReturnData{Value: value})
	return e.new(ExprReturn, span, PayloadID(payload))
}

func (e *Exprs) Return(id ExprID) (*ExprReturnData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprReturn {
		return nil, false
	}
	return e.Returns.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewContinue(span source.Span, label source.SymbolID) ExprID {
	payload := e.Continues.Allocate(ExprContinueData{Label: label})
	return e.new(ExprContinue, span, PayloadID(payload))
}

func (e *Exprs) Continue(id ExprID) (*ExprContinueData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprContinue {
		return nil, false
	}
	return e.Continues.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewFor(span source.Span, data ExprForData) ExprID {
	payload := e.Fors.Allocate(data)
	return e.new(ExprFor, span, PayloadID(payload))
}

func (e *Exprs) For(id ExprID) (*ExprForData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprFor {
		return nil, false
	}
	return e.Fors.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewLoop(span source.Span, body ExprID, label source.SymbolID) ExprID {
	payload := e.Loops.Allocate(ExprLoopData{Body: body, Label: label})
	return e.new(ExprLoop, span, PayloadID(payload))
}

func (e *Exprs) Loop(id ExprID) (*ExprLoopData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprLoop {
		return nil, false
	}
	return e.Loops.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewWhile(span source.Span, cond, body ExprID, label source.SymbolID) ExprID {
	payload := e.Whiles.Allocate(ExprWhileData{Cond: cond, Body: body, Label: label})
	return e.new(ExprWhile, span, PayloadID(payload))
}

func (e *Exprs) While(id ExprID) (*ExprWhileData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprWhile {
		return nil, false
	}
	return e.Whiles.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewAwait(span source.Span, operand ExprID) ExprID {
	payload := e.Awaits.Allocate(ExprAwaitData{Operand: operand})
	return e.new(ExprAwait, span, PayloadID(payload))
}

func (e *Exprs) Await(id ExprID) (*ExprAwaitData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprAwait {
		return nil, false
	}
	return e.Awaits.Get(uint32(ex.Payload)), true
}

func (e *Exprs) NewAsync(span source.Span, body ExprID, move bool) ExprID {
	payload := e.Asyncs.Allocate(ExprAsyncData{Body: body, Move: move})
	return e.new(ExprAsync, span, PayloadID(payload))
}

func (e *Exprs) Async(id ExprID) (*ExprAsyncData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprAsync {
		return nil, false
	}
	return e.Asyncs.Get(uint32(ex.Payload)), true
}
