package parser

import (
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/source"
	"marker/internal/token"
)

func (p *Parser) parseType() (hir.TypeID, bool) {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.Amp:
		p.advance()
		lifetime := source.NoSymbolID
		if p.at(token.Lifetime) {
			lifetime = p.crate.Interner.Intern(p.advance().Text)
		}
		_, mut := p.eat(token.KwMut)
		inner, ok := p.parseType()
		if !ok {
			return hir.NoTypeID, false
		}
		return p.crate.Types.NewRef(p.spanFrom(start), lifetime, mut, inner), true

	case token.Star:
		p.advance()
		mut := false
		switch p.peek().Kind {
		case token.KwMut:
			p.advance()
			mut = true
		case token.KwConst:
			p.advance()
		default:
			p.err(diag.SynExpectType, "expected 'const' or 'mut' after '*'")
			return hir.NoTypeID, false
		}
		inner, ok := p.parseType()
		if !ok {
			return hir.NoTypeID, false
		}
		return p.crate.Types.NewRawPtr(p.spanFrom(start), mut, inner), true

	case token.LBracket:
		p.advance()
		elem, ok := p.parseType()
		if !ok {
			return hir.NoTypeID, false
		}
		if _, ok := p.eat(token.Semicolon); ok {
			length, ok := p.parseExpr()
			if !ok {
				return hir.NoTypeID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' closing array type"); !ok {
				return hir.NoTypeID, false
			}
			return p.crate.Types.NewArray(p.spanFrom(start), elem, length), true
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' closing slice type"); !ok {
			return hir.NoTypeID, false
		}
		return p.crate.Types.NewSlice(p.spanFrom(start), elem), true

	case token.LParen:
		p.advance()
		if _, ok := p.eat(token.RParen); ok {
			// unit is the empty tuple
			return p.crate.Types.NewTuple(p.spanFrom(start), nil), true
		}
		first, ok := p.parseType()
		if !ok {
			return hir.NoTypeID, false
		}
		if _, ok := p.eat(token.RParen); ok {
			// parenthesized type, not a tuple
			return first, true
		}
		elems := []hir.TypeID{first}
		for {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' or ')' in tuple type"); !ok {
				return hir.NoTypeID, false
			}
			if p.at(token.RParen) {
				break
			}
			elem, ok := p.parseType()
			if !ok {
				return hir.NoTypeID, false
			}
			elems = append(elems, elem)
			if p.at(token.RParen) {
				break
			}
		}
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' closing tuple type")
		return p.crate.Types.NewTuple(p.spanFrom(start), elems), true

	case token.KwFn:
		p.advance()
		if _, ok := p.expect(token.LParen, diag.SynExpectType, "expected '(' in fn type"); !ok {
			return hir.NoTypeID, false
		}
		var params []hir.TypeID
		for !p.at(token.RParen) && !p.atEOF() {
			param, ok := p.parseType()
			if !ok {
				return hir.NoTypeID, false
			}
			params = append(params, param)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' in fn type"); !ok {
			return hir.NoTypeID, false
		}
		ret := hir.NoTypeID
		if _, ok := p.eat(token.Arrow); ok {
			var retOK bool
			ret, retOK = p.parseType()
			if !retOK {
				return hir.NoTypeID, false
			}
		}
		return p.crate.Types.NewFn(p.spanFrom(start), params, ret), true

	case token.Bang:
		p.advance()
		return p.crate.Types.NewNever(p.spanFrom(start)), true

	case token.Underscore:
		p.advance()
		return p.crate.Types.NewInfer(p.spanFrom(start)), true

	case token.KwDyn:
		p.advance()
		bounds, ok := p.parseBoundList()
		if !ok {
			return hir.NoTypeID, false
		}
		return p.crate.Types.NewTraitObject(p.spanFrom(start), bounds), true

	case token.KwImpl:
		p.advance()
		bounds, ok := p.parseBoundList()
		if !ok {
			return hir.NoTypeID, false
		}
		return p.crate.Types.NewImplTrait(p.spanFrom(start), bounds), true

	case token.Ident, token.KwCrate, token.KwSuper, token.KwSelfValue, token.KwSelfType:
		segments, ok := p.parseTypePath()
		if !ok {
			return hir.NoTypeID, false
		}
		return p.crate.Types.NewPath(p.spanFrom(start), segments), true

	default:
		p.err(diag.SynExpectType, "expected type, got \""+p.peek().Text+"\"")
		return hir.NoTypeID, false
	}
}

// parseTypePath parses segment::segment<args> in type position, where
// generic arguments need no turbofish.
func (p *Parser) parseTypePath() ([]hir.PathSegment, bool) {
	var segments []hir.PathSegment
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Ident, token.KwCrate, token.KwSuper, token.KwSelfValue, token.KwSelfType:
			p.advance()
		default:
			p.err(diag.SynExpectIdentifier, "expected path segment")
			return nil, false
		}
		seg := hir.PathSegment{
			Name: p.crate.Interner.Intern(tok.Text),
			Span: tok.Span,
		}
		if p.at(token.Lt) {
			args, ok := p.parseGenericArgs()
			if !ok {
				return nil, false
			}
			seg.Args = args
		}
		segments = append(segments, seg)
		if _, ok := p.eat(token.ColonColon); !ok {
			return segments, true
		}
	}
}

// parseGenericArgs parses <T, 'a, N> after a segment. Shift-right split:
// Vec<Vec<u8>> produces a Shr token that closes two levels.
func (p *Parser) parseGenericArgs() ([]hir.TypeID, bool) {
	p.advance() // '<'
	var args []hir.TypeID
	for {
		if p.closeGenericList() {
			return args, true
		}
		if p.at(token.Lifetime) {
			p.advance()
		} else {
			arg, ok := p.parseType()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
		}
		if _, ok := p.eat(token.Comma); !ok {
			if p.closeGenericList() {
				return args, true
			}
			p.err(diag.SynUnclosedDelimiter, "expected '>' closing generic arguments")
			return nil, false
		}
	}
}

// closeGenericList consumes '>' and splits '>>' into two closings.
func (p *Parser) closeGenericList() bool {
	switch p.peek().Kind {
	case token.Gt:
		p.advance()
		return true
	case token.Shr:
		// rewrite the token in place as the remaining single '>'
		tok := p.toks[p.pos]
		tok.Kind = token.Gt
		tok.Span.Start++
		tok.Text = ">"
		p.toks[p.pos] = tok
		return true
	default:
		return false
	}
}
