package hir

import (
	"marker/internal/source"
)

type ExprKind uint8

const (
	ExprLit ExprKind = iota
	ExprPath
	ExprBlock
	ExprClosure
	ExprUnary
	ExprRef
	ExprBinary
	ExprTry
	ExprAssign
	ExprCast
	ExprCall
	ExprMethod
	ExprArray
	ExprTuple
	ExprStruct
	ExprRange
	ExprIndex
	ExprField
	ExprIf
	ExprLet
	ExprMatch
	ExprBreak
	ExprReturn
	ExprContinue
	ExprFor
	ExprLoop
	ExprWhile
	ExprAwait
	ExprAsync
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitStr
	LitChar
	LitBool
)

type UnaryOp uint8

const (
	UnNeg UnaryOp = iota
	UnNot
	UnDeref
)

type BinaryOp uint8

const (
	BinNone BinaryOp = iota // plain assignment marker
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinRem
	BinAnd // lazy &&
	BinOr  // lazy ||
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
)

// IsComparison reports whether the operator yields bool from two operands
// of the same type.
func (op BinaryOp) IsComparison() bool {
	return op >= BinEq && op <= BinGe
}

// IsLazy reports whether the operator short-circuits.
func (op BinaryOp) IsLazy() bool {
	return op == BinAnd || op == BinOr
}

type ExprLitData struct {
	Kind LitKind
	Text source.SymbolID // raw source text, suffix included
}

type ExprPathData struct {
	Segments []PathSegment
}

type ExprBlockData struct {
	Stmts  []StmtID
	Tail   ExprID // NoExprID when the block ends with a statement
	Unsafe bool
	Label  source.SymbolID
}

type ClosureParam struct {
	Pat PatID
	Ty  TypeID // NoTypeID when inferred
}

type ExprClosureData struct {
	Params []ClosureParam
	Ret    TypeID // NoTypeID when inferred
	Body   BodyID
	Move   bool
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprRefData struct {
	Mut     bool
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprTryData struct {
	Operand ExprID
}

// Op is BinNone for `=`, the arithmetic operator for compound forms.
type ExprAssignData struct {
	Op    BinaryOp
	Place ExprID
	Value ExprID
}

type ExprCastData struct {
	Operand ExprID
	Ty      TypeID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprMethodData struct {
	Receiver ExprID
	Method   source.SymbolID
	Generics []TypeID
	Args     []ExprID
	NameSpan source.Span
}

// Repeat form [elem; len] sets Repeat; otherwise Elems lists the parts.
type ExprArrayData struct {
	Elems  []ExprID
	Repeat ExprID
	Len    ExprID
}

type ExprTupleData struct {
	Elems []ExprID
}

type FieldInit struct {
	Name      source.SymbolID
	Expr      ExprID
	Shorthand bool
	Span      source.Span
}

type ExprStructData struct {
	Path   []PathSegment
	Fields []FieldInit
	Base   ExprID // ..base, NoExprID when absent
}

type ExprRangeData struct {
	Lo        ExprID
	Hi        ExprID
	Inclusive bool
}

type ExprIndexData struct {
	Base  ExprID
	Index ExprID
}

// Either Name (named field) or Index (tuple field) is meaningful.
type ExprFieldData struct {
	Base     ExprID
	Name     source.SymbolID
	Index    uint32
	IsTuple  bool
	NameSpan source.Span
}

type ExprIfData struct {
	Cond ExprID
	Then ExprID
	Else ExprID // NoExprID, block, or another if
}

type ExprLetData struct {
	Pat  PatID
	Init ExprID
}

type MatchArm struct {
	Pat   PatID
	Guard ExprID // NoExprID when absent
	Body  ExprID
	Span  source.Span
}

type ExprMatchData struct {
	Scrutinee ExprID
	Arms      []MatchArm
}

type ExprBreakData struct {
	Label source.SymbolID
	Value ExprID
}

type ExprReturnData struct {
	Value ExprID
}

type ExprContinueData struct {
	Label source.SymbolID
}

type ExprForData struct {
	Pat   PatID
	Iter  ExprID
	Body  ExprID
	Label source.SymbolID
}

type ExprLoopData struct {
	Body  ExprID
	Label source.SymbolID
}

type ExprWhileData struct {
	Cond  ExprID
	Body  ExprID
	Label source.SymbolID
}

type ExprAwaitData struct {
	Operand ExprID
}

type ExprAsyncData struct {
	Body ExprID
	Move bool
}
