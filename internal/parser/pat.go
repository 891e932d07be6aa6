package parser

import (
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/source"
	"marker/internal/token"
)

// parsePattern parses a pattern with top-level alternatives: a | b | c.
func (p *Parser) parsePattern() (hir.PatID, bool) {
	start := p.peek().Span
	p.eat(token.Pipe) // leading | is allowed
	first, ok := p.parsePatternNoAlt()
	if !ok {
		return hir.NoPatID, false
	}
	if !p.at(token.Pipe) {
		return first, true
	}
	alts := []hir.PatID{first}
	for {
		if _, ok := p.eat(token.Pipe); !ok {
			break
		}
		alt, ok := p.parsePatternNoAlt()
		if !ok {
			return hir.NoPatID, false
		}
		alts = append(alts, alt)
	}
	return p.crate.Pats.NewOr(p.spanFrom(start), alts), true
}

func (p *Parser) parsePatternNoAlt() (hir.PatID, bool) {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.Underscore:
		p.advance()
		return p.crate.Pats.NewWildcard(p.spanFrom(start)), true

	case token.DotDot:
		p.advance()
		return p.crate.Pats.NewRest(p.spanFrom(start)), true

	case token.Amp:
		p.advance()
		_, mut := p.eat(token.KwMut)
		inner, ok := p.parsePatternNoAlt()
		if !ok {
			return hir.NoPatID, false
		}
		return p.crate.Pats.NewRef(p.spanFrom(start), mut, inner), true

	case token.LParen:
		p.advance()
		var elems []hir.PatID
		for !p.at(token.RParen) && !p.atEOF() {
			elem, ok := p.parsePattern()
			if !ok {
				return hir.NoPatID, false
			}
			elems = append(elems, elem)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' closing tuple pattern"); !ok {
			return hir.NoPatID, false
		}
		if len(elems) == 1 {
			// parenthesized pattern
			return elems[0], true
		}
		return p.crate.Pats.NewTuple(p.spanFrom(start), elems), true

	case token.LBracket:
		p.advance()
		var elems []hir.PatID
		for !p.at(token.RBracket) && !p.atEOF() {
			elem, ok := p.parsePattern()
			if !ok {
				return hir.NoPatID, false
			}
			elems = append(elems, elem)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' closing slice pattern"); !ok {
			return hir.NoPatID, false
		}
		return p.crate.Pats.NewSlice(p.spanFrom(start), elems), true

	case token.KwRef, token.KwMut:
		ref := false
		mut := false
		if _, ok := p.eat(token.KwRef); ok {
			ref = true
		}
		if _, ok := p.eat(token.KwMut); ok {
			mut = true
		}
		name, _, ok := p.parseName()
		if !ok {
			return hir.NoPatID, false
		}
		sub := hir.NoPatID
		if _, ok := p.eat(token.At); ok {
			sub, ok = p.parsePatternNoAlt()
			if !ok {
				return hir.NoPatID, false
			}
		}
		return p.crate.Pats.NewIdent(p.spanFrom(start), name, mut, ref, sub), true

	case token.IntLit, token.FloatLit, token.StrLit, token.CharLit,
		token.KwTrue, token.KwFalse, token.Minus:
		return p.parseLitOrRangePattern(start)

	case token.Ident, token.KwCrate, token.KwSuper, token.KwSelfValue, token.KwSelfType:
		return p.parsePathPattern(start)

	default:
		p.err(diag.SynExpectPattern, "expected pattern, got \""+p.peek().Text+"\"")
		return hir.NoPatID, false
	}
}

// parseLitOrRangePattern parses a literal, possibly the start of a range.
func (p *Parser) parseLitOrRangePattern(start source.Span) (hir.PatID, bool) {
	lo, ok := p.parseLitExprForPattern()
	if !ok {
		return hir.NoPatID, false
	}
	if p.atOr(token.DotDotEq, token.DotDot) {
		inclusive := p.advance().Kind == token.DotDotEq
		hi, ok := p.parseLitExprForPattern()
		if !ok {
			return hir.NoPatID, false
		}
		return p.crate.Pats.NewRange(p.spanFrom(start), lo, hi, inclusive), true
	}
	return p.crate.Pats.NewLit(p.spanFrom(start), lo), true
}

// parseLitExprForPattern accepts a literal with optional leading minus.
func (p *Parser) parseLitExprForPattern() (hir.ExprID, bool) {
	start := p.peek().Span
	neg := false
	if _, ok := p.eat(token.Minus); ok {
		neg = true
	}
	tok := p.peek()
	var kind hir.LitKind
	switch tok.Kind {
	case token.IntLit:
		kind = hir.LitInt
	case token.FloatLit:
		kind = hir.LitFloat
	case token.StrLit:
		kind = hir.LitStr
	case token.CharLit:
		kind = hir.LitChar
	case token.KwTrue, token.KwFalse:
		kind = hir.LitBool
	default:
		p.err(diag.SynExpectPattern, "expected literal in pattern")
		return hir.NoExprID, false
	}
	p.advance()
	lit := p.crate.Exprs.NewLit(tok.Span, kind, p.crate.Interner.Intern(tok.Text))
	if neg {
		return p.crate.Exprs.NewUnary(p.spanFrom(start), hir.UnNeg, lit), true
	}
	return lit, true
}

// parsePathPattern handles bindings, unit/tuple-struct and struct
// patterns. A single plain segment with no payload is a binding.
func (p *Parser) parsePathPattern(start source.Span) (hir.PatID, bool) {
	segments, ok := p.parseTypePath()
	if !ok {
		return hir.NoPatID, false
	}

	switch p.peek().Kind {
	case token.LParen:
		p.advance()
		var elems []hir.PatID
		for !p.at(token.RParen) && !p.atEOF() {
			elem, ok := p.parsePattern()
			if !ok {
				return hir.NoPatID, false
			}
			elems = append(elems, elem)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' closing pattern"); !ok {
			return hir.NoPatID, false
		}
		return p.crate.Pats.NewTupleStruct(p.spanFrom(start), segments, elems), true

	case token.LBrace:
		p.advance()
		var fields []hir.PatFieldData
		hasRest := false
		for !p.at(token.RBrace) && !p.atEOF() {
			if _, ok := p.eat(token.DotDot); ok {
				hasRest = true
				break
			}
			fieldStart := p.peek().Span
			name, _, ok := p.parseName()
			if !ok {
				return hir.NoPatID, false
			}
			var fieldPat hir.PatID
			if _, ok := p.eat(token.Colon); ok {
				fieldPat, ok = p.parsePattern()
				if !ok {
					return hir.NoPatID, false
				}
			} else {
				// shorthand: the field name is the binding
				fieldPat = p.crate.Pats.NewIdent(fieldStart, name, false, false, hir.NoPatID)
			}
			fields = append(fields, hir.PatFieldData{
				Name: name, Pat: fieldPat, Span: fieldStart.Cover(p.lastSpan),
			})
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' closing struct pattern"); !ok {
			return hir.NoPatID, false
		}
		return p.crate.Pats.NewStruct(p.spanFrom(start), segments, fields, hasRest), true

	case token.At:
		if len(segments) == 1 {
			p.advance()
			sub, ok := p.parsePatternNoAlt()
			if !ok {
				return hir.NoPatID, false
			}
			return p.crate.Pats.NewIdent(p.spanFrom(start), segments[0].Name, false, false, sub), true
		}
	}

	if len(segments) == 1 && len(segments[0].Args) == 0 {
		return p.crate.Pats.NewIdent(p.spanFrom(start), segments[0].Name, false, false, hir.NoPatID), true
	}
	return p.crate.Pats.NewPath(p.spanFrom(start), segments), true
}
