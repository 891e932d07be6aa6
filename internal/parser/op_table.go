package parser

import (
	"marker/internal/hir"
	"marker/internal/token"
)

// Binding powers for the expression parser; larger binds tighter.
const (
	precAssign     = 1 // = += -= ... right-assoc
	precRange      = 2 // .. ..=
	precLogicalOr  = 3 // ||
	precLogicalAnd = 4 // &&
	precComparison = 5 // == != < <= > >=
	precBitwiseOr  = 6 // |
	precBitwiseXor = 7 // ^
	precBitwiseAnd = 8 // &
	precShift      = 9 // << >>
	precAdditive   = 10
	precMultiplicative = 11
	precCast           = 12 // as
)

// binaryPrec returns the precedence and right-associativity of a binary
// operator token, -1 for everything else.
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign, token.CaretAssign,
		token.AmpAssign, token.PipeAssign, token.ShlAssign, token.ShrAssign:
		return precAssign, true
	case token.DotDot, token.DotDotEq:
		return precRange, false
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.Shl, token.Shr:
		return precShift, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	case token.KwAs:
		return precCast, false
	default:
		return -1, false
	}
}

func binaryOp(kind token.Kind) hir.BinaryOp {
	switch kind {
	case token.Plus:
		return hir.BinAdd
	case token.Minus:
		return hir.BinSub
	case token.Star:
		return hir.BinMul
	case token.Slash:
		return hir.BinDiv
	case token.Percent:
		return hir.BinRem
	case token.AndAnd:
		return hir.BinAnd
	case token.OrOr:
		return hir.BinOr
	case token.Amp:
		return hir.BinBitAnd
	case token.Pipe:
		return hir.BinBitOr
	case token.Caret:
		return hir.BinBitXor
	case token.Shl:
		return hir.BinShl
	case token.Shr:
		return hir.BinShr
	case token.EqEq:
		return hir.BinEq
	case token.BangEq:
		return hir.BinNe
	case token.Lt:
		return hir.BinLt
	case token.LtEq:
		return hir.BinLe
	case token.Gt:
		return hir.BinGt
	case token.GtEq:
		return hir.BinGe
	default:
		return hir.BinNone
	}
}

// compoundAssignOp maps += and friends to the underlying operator,
// BinNone for plain =.
func compoundAssignOp(kind token.Kind) hir.BinaryOp {
	switch kind {
	case token.PlusAssign:
		return hir.BinAdd
	case token.MinusAssign:
		return hir.BinSub
	case token.StarAssign:
		return hir.BinMul
	case token.SlashAssign:
		return hir.BinDiv
	case token.PercentAssign:
		return hir.BinRem
	case token.CaretAssign:
		return hir.BinBitXor
	case token.AmpAssign:
		return hir.BinBitAnd
	case token.PipeAssign:
		return hir.BinBitOr
	case token.ShlAssign:
		return hir.BinShl
	case token.ShrAssign:
		return hir.BinShr
	default:
		return hir.BinNone
	}
}

func isAssignToken(kind token.Kind) bool {
	switch kind {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign, token.CaretAssign,
		token.AmpAssign, token.PipeAssign, token.ShlAssign, token.ShrAssign:
		return true
	default:
		return false
	}
}
