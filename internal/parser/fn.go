package parser

import (
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/token"
)

func (p *Parser) parseFn(attrs []hir.Attr, vis hir.Visibility, mods fnModifiers) (hir.ItemID, bool) {
	start := p.advance().Span // fn
	name, _, ok := p.parseName()
	if !ok {
		return hir.NoItemID, false
	}
	generics, ok := p.parseGenericParams()
	if !ok {
		return hir.NoItemID, false
	}

	data := hir.FnData{
		Generics: generics,
		IsConst:  mods.isConst,
		IsAsync:  mods.isAsync,
		IsUnsafe: mods.isUnsafe,
	}
	if !p.parseFnParams(&data) {
		return hir.NoItemID, false
	}

	if _, ok := p.eat(token.Arrow); ok {
		ret, ok := p.parseType()
		if !ok {
			return hir.NoItemID, false
		}
		data.Ret = ret
	}
	p.skipWhereClause()

	switch {
	case p.at(token.Semicolon):
		// declaration without a body: trait method or extern fn
		p.advance()
	case p.at(token.LBrace):
		body, ok := p.parseBlockExpr()
		if !ok {
			return hir.NoItemID, false
		}
		data.Body = p.crate.Bodies.New(hir.NoItemID, body, p.crate.Exprs.Get(body).Span)
	default:
		p.err(diag.SynUnexpectedToken, "expected '{' or ';' after function signature")
		return hir.NoItemID, false
	}

	id := p.crate.Items.NewFn(hir.ItemHead{
		Span: p.spanFrom(start), Name: name, Vis: vis, Owner: p.owner, Attrs: attrs,
	}, data)
	if data.Body.IsValid() {
		p.crate.Bodies.SetOwner(data.Body, id)
	}
	return id, true
}

// parseFnParams fills the parameter list, self receiver included.
func (p *Parser) parseFnParams(data *hir.FnData) bool {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return false
	}

	if p.parseSelfParam(data) {
		if _, ok := p.eat(token.Comma); !ok {
			return p.finishFnParams()
		}
	}

	for !p.at(token.RParen) && !p.atEOF() {
		pat, ok := p.parsePattern()
		if !ok {
			return false
		}
		patSpan := p.crate.Pats.Get(pat).Span
		if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' and type after parameter"); !ok {
			return false
		}
		ty, ok := p.parseType()
		if !ok {
			return false
		}
		data.Params = append(data.Params, hir.FnParam{
			Pat:  pat,
			Ty:   ty,
			Span: patSpan.Cover(p.lastSpan),
		})
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	return p.finishFnParams()
}

func (p *Parser) finishFnParams() bool {
	_, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' closing parameters")
	return ok
}

// parseSelfParam recognizes self, mut self, &self, &mut self and
// &'a self receivers.
func (p *Parser) parseSelfParam(data *hir.FnData) bool {
	switch {
	case p.at(token.KwSelfValue):
		p.advance()
		data.HasSelf = true
		return true

	case p.at(token.KwMut) && p.peekAt(1).Kind == token.KwSelfValue:
		p.advance()
		p.advance()
		data.HasSelf = true
		data.SelfMut = true
		return true

	case p.at(token.Amp):
		// lookahead: &self | &mut self | &'a self | &'a mut self
		i := 1
		if p.peekAt(i).Kind == token.Lifetime {
			i++
		}
		mut := false
		if p.peekAt(i).Kind == token.KwMut {
			mut = true
			i++
		}
		if p.peekAt(i).Kind != token.KwSelfValue {
			return false
		}
		for n := 0; n < i+1; n++ {
			p.advance()
		}
		data.HasSelf = true
		data.SelfRef = true
		data.SelfMut = mut
		return true

	default:
		return false
	}
}
