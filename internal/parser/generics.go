package parser

import (
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/token"
)

// parseGenericParams parses an optional <...> parameter list.
func (p *Parser) parseGenericParams() ([]hir.GenericParam, bool) {
	if !p.at(token.Lt) {
		return nil, true
	}
	p.advance()
	var params []hir.GenericParam
	for !p.at(token.Gt) && !p.atEOF() {
		param, ok := p.parseGenericParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' closing generic parameters"); !ok {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseGenericParam() (hir.GenericParam, bool) {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.Lifetime:
		tok := p.advance()
		param := hir.GenericParam{
			Kind: hir.GenericLifetime,
			Name: p.crate.Interner.Intern(tok.Text),
		}
		if _, ok := p.eat(token.Colon); ok {
			// lifetime bounds: 'a: 'b + 'c, names only
			for p.at(token.Lifetime) {
				p.advance()
				if _, ok := p.eat(token.Plus); !ok {
					break
				}
			}
		}
		param.Span = p.spanFrom(start)
		return param, true

	case token.KwConst:
		p.advance()
		name, _, ok := p.parseName()
		if !ok {
			return hir.GenericParam{}, false
		}
		param := hir.GenericParam{Kind: hir.GenericConst, Name: name}
		if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' and type after const parameter"); !ok {
			return hir.GenericParam{}, false
		}
		ty, ok := p.parseType()
		if !ok {
			return hir.GenericParam{}, false
		}
		param.Bounds = []hir.TypeID{ty}
		param.Span = p.spanFrom(start)
		return param, true

	case token.Ident:
		name, _, _ := p.parseName()
		param := hir.GenericParam{Kind: hir.GenericType, Name: name}
		if _, ok := p.eat(token.Colon); ok {
			bounds, ok := p.parseBoundList()
			if !ok {
				return hir.GenericParam{}, false
			}
			param.Bounds = bounds
		}
		if _, ok := p.eat(token.Assign); ok {
			def, ok := p.parseType()
			if !ok {
				return hir.GenericParam{}, false
			}
			param.Default = def
		}
		param.Span = p.spanFrom(start)
		return param, true

	default:
		p.err(diag.SynUnexpectedToken, "expected generic parameter")
		return hir.GenericParam{}, false
	}
}

// parseBoundList parses Trait + Trait + 'a, collecting the trait paths.
func (p *Parser) parseBoundList() ([]hir.TypeID, bool) {
	var bounds []hir.TypeID
	for {
		if p.at(token.Lifetime) {
			p.advance()
		} else if p.at(token.Question) {
			// ?Sized: relaxed bound, recorded like a plain one
			p.advance()
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			bounds = append(bounds, ty)
		} else {
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			bounds = append(bounds, ty)
		}
		if _, ok := p.eat(token.Plus); !ok {
			return bounds, true
		}
	}
}

// skipWhereClause tolerates a where clause; bounds repeat what the
// parameter list already said, so the subset drops them.
func (p *Parser) skipWhereClause() {
	if !p.at(token.KwWhere) {
		return
	}
	p.advance()
	for !p.atOr(token.LBrace, token.Semicolon, token.EOF) {
		if p.atEOF() {
			return
		}
		p.advance()
	}
}
