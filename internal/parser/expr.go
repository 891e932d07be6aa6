package parser

import (
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/source"
	"marker/internal/token"
)

// parseExpr parses a full expression, struct literals allowed.
func (p *Parser) parseExpr() (hir.ExprID, bool) {
	return p.parseExprBp(0, true)
}

// parseExprNoStruct is used in condition and scrutinee positions where
// `X {` must read as a block, not a struct literal.
func (p *Parser) parseExprNoStruct() (hir.ExprID, bool) {
	return p.parseExprBp(0, false)
}

// parseExprBp is the precedence-climbing core.
func (p *Parser) parseExprBp(minPrec int, allowStruct bool) (hir.ExprID, bool) {
	start := p.peek().Span

	// prefix range: ..hi, ..=hi, ..
	if p.atOr(token.DotDot, token.DotDotEq) {
		inclusive := p.advance().Kind == token.DotDotEq
		hi := hir.NoExprID
		if p.startsExpr() {
			var ok bool
			hi, ok = p.parseExprBp(precRange+1, allowStruct)
			if !ok {
				return hir.NoExprID, false
			}
		}
		return p.crate.Exprs.NewRange(p.spanFrom(start), hir.NoExprID, hi, inclusive), true
	}

	lhs, ok := p.parseUnary(allowStruct)
	if !ok {
		return hir.NoExprID, false
	}

	for {
		opTok := p.peek()
		prec, rightAssoc := binaryPrec(opTok.Kind)
		if prec < 0 || prec < minPrec {
			return lhs, true
		}

		if opTok.Kind == token.KwAs {
			p.advance()
			ty, ok := p.parseType()
			if !ok {
				return hir.NoExprID, false
			}
			lhs = p.crate.Exprs.NewCast(p.spanFrom(start), lhs, ty)
			continue
		}

		if opTok.Kind == token.DotDot || opTok.Kind == token.DotDotEq {
			p.advance()
			inclusive := opTok.Kind == token.DotDotEq
			hi := hir.NoExprID
			if p.startsExpr() {
				hi, ok = p.parseExprBp(prec+1, allowStruct)
				if !ok {
					return hir.NoExprID, false
				}
			}
			lhs = p.crate.Exprs.NewRange(p.spanFrom(start), lhs, hi, inclusive)
			continue
		}

		if isAssignToken(opTok.Kind) {
			p.advance()
			rhs, ok := p.parseExprBp(prec, allowStruct) // right-assoc
			if !ok {
				return hir.NoExprID, false
			}
			lhs = p.crate.Exprs.NewAssign(p.spanFrom(start), compoundAssignOp(opTok.Kind), lhs, rhs)
			continue
		}

		p.advance()
		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		rhs, ok := p.parseExprBp(nextMin, allowStruct)
		if !ok {
			return hir.NoExprID, false
		}
		lhs = p.crate.Exprs.NewBinary(p.spanFrom(start), binaryOp(opTok.Kind), lhs, rhs)
	}
}

// parseUnary parses prefix operators, then a primary with postfix.
func (p *Parser) parseUnary(allowStruct bool) (hir.ExprID, bool) {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.Minus:
		p.advance()
		operand, ok := p.parseUnary(allowStruct)
		if !ok {
			return hir.NoExprID, false
		}
		return p.crate.Exprs.NewUnary(p.spanFrom(start), hir.UnNeg, operand), true
	case token.Bang:
		p.advance()
		operand, ok := p.parseUnary(allowStruct)
		if !ok {
			return hir.NoExprID, false
		}
		return p.crate.Exprs.NewUnary(p.spanFrom(start), hir.UnNot, operand), true
	case token.Star:
		p.advance()
		operand, ok := p.parseUnary(allowStruct)
		if !ok {
			return hir.NoExprID, false
		}
		return p.crate.Exprs.NewUnary(p.spanFrom(start), hir.UnDeref, operand), true
	case token.Amp:
		p.advance()
		_, mut := p.eat(token.KwMut)
		operand, ok := p.parseUnary(allowStruct)
		if !ok {
			return hir.NoExprID, false
		}
		return p.crate.Exprs.NewRef(p.spanFrom(start), mut, operand), true
	case token.AndAnd:
		// && is two borrows in prefix position
		p.advance()
		_, mut := p.eat(token.KwMut)
		operand, ok := p.parseUnary(allowStruct)
		if !ok {
			return hir.NoExprID, false
		}
		inner := p.crate.Exprs.NewRef(p.spanFrom(start), mut, operand)
		return p.crate.Exprs.NewRef(p.spanFrom(start), false, inner), true
	}

	primary, ok := p.parsePrimary(allowStruct)
	if !ok {
		return hir.NoExprID, false
	}
	return p.parsePostfix(primary, start, allowStruct)
}

// startsExpr reports whether the next token can begin an expression;
// used for optional range operands.
func (p *Parser) startsExpr() bool {
	switch p.peek().Kind {
	case token.Ident, token.IntLit, token.FloatLit, token.StrLit, token.CharLit,
		token.KwTrue, token.KwFalse, token.LParen, token.LBracket, token.LBrace,
		token.Minus, token.Bang, token.Star, token.Amp, token.AndAnd,
		token.KwIf, token.KwMatch, token.KwLoop, token.KwWhile, token.KwFor,
		token.KwReturn, token.KwBreak, token.KwContinue, token.KwMove,
		token.KwUnsafe, token.KwAsync, token.Pipe, token.OrOr,
		token.KwSelfValue, token.KwSelfType, token.KwCrate, token.KwSuper:
		return true
	default:
		return false
	}
}

// parsePrimary parses a literal, path, grouping, collection,
// control-flow expression, or closure.
func (p *Parser) parsePrimary(allowStruct bool) (hir.ExprID, bool) {
	if p.atMacroInvocation() {
		if !p.expandMacroInvocation(false) {
			return hir.NoExprID, false
		}
		// expansion spliced new tokens at the current position
		return p.parsePrimary(allowStruct)
	}

	start := p.peek().Span
	switch p.peek().Kind {
	case token.IntLit:
		tok := p.advance()
		return p.crate.Exprs.NewLit(tok.Span, hir.LitInt, p.crate.Interner.Intern(tok.Text)), true
	case token.FloatLit:
		tok := p.advance()
		return p.crate.Exprs.NewLit(tok.Span, hir.LitFloat, p.crate.Interner.Intern(tok.Text)), true
	case token.StrLit:
		tok := p.advance()
		return p.crate.Exprs.NewLit(tok.Span, hir.LitStr, p.crate.Interner.Intern(tok.Text)), true
	case token.CharLit:
		tok := p.advance()
		return p.crate.Exprs.NewLit(tok.Span, hir.LitChar, p.crate.Interner.Intern(tok.Text)), true
	case token.KwTrue, token.KwFalse:
		tok := p.advance()
		return p.crate.Exprs.NewLit(tok.Span, hir.LitBool, p.crate.Interner.Intern(tok.Text)), true

	case token.LParen:
		return p.parseParenOrTuple(start)

	case token.LBracket:
		return p.parseArrayLit(start)

	case token.LBrace:
		return p.parseBlockExpr()

	case token.KwUnsafe:
		p.advance()
		block, ok := p.parseBlockExpr()
		if !ok {
			return hir.NoExprID, false
		}
		if data, k := p.crate.Exprs.Block(block); k {
			data.Unsafe = true
		}
		return block, true

	case token.KwAsync:
		p.advance()
		_, move := p.eat(token.KwMove)
		block, ok := p.parseBlockExpr()
		if !ok {
			return hir.NoExprID, false
		}
		return p.crate.Exprs.NewAsync(p.spanFrom(start), block, move), true

	case token.KwIf:
		return p.parseIfExpr()
	case token.KwMatch:
		return p.parseMatchExpr()
	case token.KwLoop:
		return p.parseLoopExpr(source.NoSymbolID)
	case token.KwWhile:
		return p.parseWhileExpr(source.NoSymbolID)
	case token.KwFor:
		return p.parseForExpr(source.NoSymbolID)
	case token.Lifetime:
		return p.parseLabeledLoop()

	case token.KwReturn:
		p.advance()
		value := hir.NoExprID
		if p.startsExpr() {
			var ok bool
			value, ok = p.parseExpr()
			if !ok {
				return hir.NoExprID, false
			}
		}
		return p.crate.Exprs.NewReturn(p.spanFrom(start), value), true

	case token.KwBreak:
		p.advance()
		label := source.NoSymbolID
		if p.at(token.Lifetime) {
			label = p.crate.Interner.Intern(p.advance().Text)
		}
		value := hir.NoExprID
		if p.startsExpr() {
			var ok bool
			value, ok = p.parseExpr()
			if !ok {
				return hir.NoExprID, false
			}
		}
		return p.crate.Exprs.NewBreak(p.spanFrom(start), label, value), true

	case token.KwContinue:
		p.advance()
		label := source.NoSymbolID
		if p.at(token.Lifetime) {
			label = p.crate.Interner.Intern(p.advance().Text)
		}
		return p.crate.Exprs.NewContinue(p.spanFrom(start), label), true

	case token.KwMove, token.Pipe, token.OrOr:
		return p.parseClosure(start)

	case token.Ident, token.KwCrate, token.KwSuper, token.KwSelfValue, token.KwSelfType:
		return p.parsePathExpr(start, allowStruct)

	default:
		p.err(diag.SynExpectExpression, "expected expression, got \""+p.peek().Text+"\"")
		return hir.NoExprID, false
	}
}

func (p *Parser) parseParenOrTuple(start source.Span) (hir.ExprID, bool) {
	p.advance() // '('
	if _, ok := p.eat(token.RParen); ok {
		// unit literal
		return p.crate.Exprs.NewTuple(p.spanFrom(start), nil), true
	}
	first, ok := p.parseExpr()
	if !ok {
		return hir.NoExprID, false
	}
	if _, ok := p.eat(token.RParen); ok {
		return first, true
	}
	elems := []hir.ExprID{first}
	for {
		if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' or ')' in tuple"); !ok {
			return hir.NoExprID, false
		}
		if p.at(token.RParen) {
			break
		}
		elem, ok := p.parseExpr()
		if !ok {
			return hir.NoExprID, false
		}
		elems = append(elems, elem)
		if p.at(token.RParen) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' closing tuple")
	return p.crate.Exprs.NewTuple(p.spanFrom(start), elems), true
}

func (p *Parser) parseArrayLit(start source.Span) (hir.ExprID, bool) {
	p.advance() // '['
	if _, ok := p.eat(token.RBracket); ok {
		return p.crate.Exprs.NewArray(p.spanFrom(start), hir.ExprArrayData{}), true
	}
	first, ok := p.parseExpr()
	if !ok {
		return hir.NoExprID, false
	}
	if _, ok := p.eat(token.Semicolon); ok {
		length, ok := p.parseExpr()
		if !ok {
			return hir.NoExprID, false
		}
		p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' closing array")
		return p.crate.Exprs.NewArray(p.spanFrom(start), hir.ExprArrayData{Repeat: first, Len: length}), true
	}
	elems := []hir.ExprID{first}
	for {
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		if p.at(token.RBracket) {
			break
		}
		elem, ok := p.parseExpr()
		if !ok {
			return hir.NoExprID, false
		}
		elems = append(elems, elem)
	}
	p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' closing array")
	return p.crate.Exprs.NewArray(p.spanFrom(start), hir.ExprArrayData{Elems: elems}), true
}

// parsePathExpr parses a path, possibly a struct literal or a turbofish
// generic application.
func (p *Parser) parsePathExpr(start source.Span, allowStruct bool) (hir.ExprID, bool) {
	var segments []hir.PathSegment
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Ident, token.KwCrate, token.KwSuper, token.KwSelfValue, token.KwSelfType:
			p.advance()
		default:
			p.err(diag.SynExpectIdentifier, "expected path segment")
			return hir.NoExprID, false
		}
		seg := hir.PathSegment{Name: p.crate.Interner.Intern(tok.Text), Span: tok.Span}
		segments = append(segments, seg)
		if _, ok := p.eat(token.ColonColon); !ok {
			break
		}
		// turbofish: ::<T, U>
		if p.at(token.Lt) {
			args, ok := p.parseGenericArgs()
			if !ok {
				return hir.NoExprID, false
			}
			segments[len(segments)-1].Args = args
			if _, ok := p.eat(token.ColonColon); !ok {
				break
			}
		}
	}

	if allowStruct && p.at(token.LBrace) {
		return p.parseStructLit(start, segments)
	}
	return p.crate.Exprs.NewPath(p.spanFrom(start), segments), true
}

func (p *Parser) parseStructLit(start source.Span, path []hir.PathSegment) (hir.ExprID, bool) {
	p.advance() // '{'
	data := hir.ExprStructData{Path: path}
	for !p.at(token.RBrace) && !p.atEOF() {
		if _, ok := p.eat(token.DotDot); ok {
			base, ok := p.parseExpr()
			if !ok {
				return hir.NoExprID, false
			}
			data.Base = base
			break
		}
		fieldStart := p.peek().Span
		name, _, ok := p.parseName()
		if !ok {
			return hir.NoExprID, false
		}
		var value hir.ExprID
		shorthand := false
		if _, ok := p.eat(token.Colon); ok {
			value, ok = p.parseExpr()
			if !ok {
				return hir.NoExprID, false
			}
		} else {
			shorthand = true
			value = p.crate.Exprs.NewPath(fieldStart, []hir.PathSegment{{Name: name, Span: fieldStart}})
		}
		data.Fields = append(data.Fields, hir.FieldInit{
			Name: name, Expr: value, Shorthand: shorthand, Span: fieldStart.Cover(p.lastSpan),
		})
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' closing struct literal")
	return p.crate.Exprs.NewStruct(p.spanFrom(start), data), true
}

// parseClosure parses [move] |params| [-> ty] body.
func (p *Parser) parseClosure(start source.Span) (hir.ExprID, bool) {
	_, move := p.eat(token.KwMove)
	var params []hir.ClosureParam
	if _, ok := p.eat(token.OrOr); !ok {
		if _, ok := p.expect(token.Pipe, diag.SynUnexpectedToken, "expected '|' starting closure parameters"); !ok {
			return hir.NoExprID, false
		}
		for !p.at(token.Pipe) && !p.atEOF() {
			pat, ok := p.parsePatternNoAlt()
			if !ok {
				return hir.NoExprID, false
			}
			param := hir.ClosureParam{Pat: pat}
			if _, ok := p.eat(token.Colon); ok {
				ty, ok := p.parseType()
				if !ok {
					return hir.NoExprID, false
				}
				param.Ty = ty
			}
			params = append(params, param)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.Pipe, diag.SynUnclosedDelimiter, "expected '|' closing closure parameters"); !ok {
			return hir.NoExprID, false
		}
	}

	ret := hir.NoTypeID
	if _, ok := p.eat(token.Arrow); ok {
		var ok2 bool
		ret, ok2 = p.parseType()
		if !ok2 {
			return hir.NoExprID, false
		}
		// an annotated return type requires a block body
		if !p.at(token.LBrace) {
			p.err(diag.SynUnexpectedToken, "expected '{' after closure return type")
			return hir.NoExprID, false
		}
	}
	value, ok := p.parseExpr()
	if !ok {
		return hir.NoExprID, false
	}
	span := p.spanFrom(start)
	body := p.crate.Bodies.New(p.owner, value, span)
	return p.crate.Exprs.NewClosure(span, hir.ExprClosureData{
		Params: params, Ret: ret, Body: body, Move: move,
	}), true
}
