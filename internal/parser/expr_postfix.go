package parser

import (
	"strings"

	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/source"
	"marker/internal/token"
)

// parsePostfix applies call, method, field, index, try and await suffixes.
func (p *Parser) parsePostfix(base hir.ExprID, start source.Span, allowStruct bool) (hir.ExprID, bool) {
	for {
		switch p.peek().Kind {
		case token.LParen:
			args, ok := p.parseCallArgs()
			if !ok {
				return hir.NoExprID, false
			}
			base = p.crate.Exprs.NewCall(p.spanFrom(start), base, args)

		case token.LBracket:
			p.advance()
			index, ok := p.parseExpr()
			if !ok {
				return hir.NoExprID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' closing index"); !ok {
				return hir.NoExprID, false
			}
			base = p.crate.Exprs.NewIndex(p.spanFrom(start), base, index)

		case token.Question:
			p.advance()
			base = p.crate.Exprs.NewTry(p.spanFrom(start), base)

		case token.Dot:
			var ok bool
			base, ok = p.parseDotSuffix(base, start)
			if !ok {
				return hir.NoExprID, false
			}

		default:
			return base, true
		}
	}
}

func (p *Parser) parseCallArgs() ([]hir.ExprID, bool) {
	p.advance() // '('
	var args []hir.ExprID
	for !p.at(token.RParen) && !p.atEOF() {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' closing argument list"); !ok {
		return nil, false
	}
	return args, true
}

func (p *Parser) parseDotSuffix(base hir.ExprID, start source.Span) (hir.ExprID, bool) {
	p.advance() // '.'
	tok := p.peek()
	switch tok.Kind {
	case token.KwAwait:
		p.advance()
		return p.crate.Exprs.NewAwait(p.spanFrom(start), base), true

	case token.IntLit:
		p.advance()
		return p.crate.Exprs.NewField(p.spanFrom(start), hir.ExprFieldData{
			Base:     base,
			Index:    parseTupleIndex(tok.Text),
			IsTuple:  true,
			NameSpan: tok.Span,
		}), true

	case token.FloatLit:
		// x.0.1 scans the suffix as a float literal; unfold it into
		// two tuple field accesses.
		p.advance()
		first, second, ok := strings.Cut(tok.Text, ".")
		if !ok || second == "" {
			p.errAt(diag.SynUnexpectedToken, tok.Span, "expected tuple index after '.'")
			return hir.NoExprID, false
		}
		mid := tok.Span
		mid.End = mid.Start + uint32(len(first))
		base = p.crate.Exprs.NewField(start.Cover(mid), hir.ExprFieldData{
			Base: base, Index: parseTupleIndex(first), IsTuple: true, NameSpan: mid,
		})
		rest := tok.Span
		rest.Start = mid.End + 1
		return p.crate.Exprs.NewField(p.spanFrom(start), hir.ExprFieldData{
			Base: base, Index: parseTupleIndex(second), IsTuple: true, NameSpan: rest,
		}), true

	case token.Ident:
		p.advance()
		name := p.crate.Interner.Intern(tok.Text)
		var generics []hir.TypeID
		if p.at(token.ColonColon) && p.peekAt(1).Kind == token.Lt {
			p.advance()
			var ok bool
			generics, ok = p.parseGenericArgs()
			if !ok {
				return hir.NoExprID, false
			}
		}
		if p.at(token.LParen) {
			args, ok := p.parseCallArgs()
			if !ok {
				return hir.NoExprID, false
			}
			return p.crate.Exprs.NewMethod(p.spanFrom(start), hir.ExprMethodData{
				Receiver: base, Method: name, Generics: generics, Args: args, NameSpan: tok.Span,
			}), true
		}
		if generics != nil {
			p.err(diag.SynUnexpectedToken, "expected '(' after method type arguments")
			return hir.NoExprID, false
		}
		return p.crate.Exprs.NewField(p.spanFrom(start), hir.ExprFieldData{
			Base: base, Name: name, NameSpan: tok.Span,
		}), true

	default:
		p.err(diag.SynExpectIdentifier, "expected field name, tuple index, or 'await' after '.'")
		return hir.NoExprID, false
	}
}

func parseTupleIndex(text string) uint32 {
	var n uint32
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + uint32(c-'0')
	}
	return n
}
