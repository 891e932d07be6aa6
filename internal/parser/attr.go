package parser

import (
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/source"
	"marker/internal/token"
)

// parseOuterAttrs collects a run of #[...] attributes.
func (p *Parser) parseOuterAttrs() []hir.Attr {
	var attrs []hir.Attr
	for p.at(token.Pound) && p.peekAt(1).Kind == token.LBracket {
		if attr, ok := p.parseAttr(); ok {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}

// parseInnerAttrs collects #![...] attributes at the start of a file.
func (p *Parser) parseInnerAttrs() []hir.Attr {
	var attrs []hir.Attr
	for p.at(token.Pound) && p.peekAt(1).Kind == token.Bang {
		start := p.advance().Span // '#'
		p.advance()               // '!'
		if _, ok := p.expect(token.LBracket, diag.SynBadAttribute, "expected '[' in attribute"); !ok {
			continue
		}
		if attr, ok := p.parseAttrBody(start); ok {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}

func (p *Parser) parseAttr() (hir.Attr, bool) {
	start := p.advance().Span // '#'
	p.advance()               // '['
	return p.parseAttrBody(start)
}

// parseAttrBody parses name, an optional meta list or key = value, and
// the closing bracket.
func (p *Parser) parseAttrBody(start source.Span) (hir.Attr, bool) {
	name, _, ok := p.parseName()
	if !ok {
		p.resyncAttr()
		return hir.Attr{}, false
	}
	attr := hir.Attr{Name: name}

	switch {
	case p.at(token.LParen):
		p.advance()
		for !p.at(token.RParen) && !p.atEOF() {
			arg, ok := p.parseAttrArg()
			if !ok {
				p.resyncAttr()
				return hir.Attr{}, false
			}
			attr.Args = append(attr.Args, arg)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		if _, ok := p.expect(token.RParen, diag.SynBadAttribute, "expected ')' in attribute"); !ok {
			p.resyncAttr()
			return hir.Attr{}, false
		}
	case p.at(token.Assign):
		// #[doc = "..."]: keep the name, drop the value
		p.advance()
		p.advance()
	}

	if _, ok := p.expect(token.RBracket, diag.SynBadAttribute, "expected ']' after attribute"); !ok {
		p.resyncAttr()
		return hir.Attr{}, false
	}
	attr.Span = p.spanFrom(start)
	return attr, true
}

// parseAttrArg parses one meta-list element as a :: separated path.
func (p *Parser) parseAttrArg() (hir.AttrArg, bool) {
	start := p.peek().Span
	if !p.at(token.Ident) {
		p.err(diag.SynBadAttribute, "expected path in attribute arguments")
		return hir.AttrArg{}, false
	}
	var path []source.SymbolID
	for {
		tok := p.advance()
		path = append(path, p.crate.Interner.Intern(tok.Text))
		if _, ok := p.eat(token.ColonColon); !ok {
			break
		}
		if !p.at(token.Ident) {
			p.err(diag.SynBadAttribute, "expected identifier after '::' in attribute")
			return hir.AttrArg{}, false
		}
	}
	return hir.AttrArg{Path: path, Span: p.spanFrom(start)}, true
}

// resyncAttr skips to the closing bracket of a broken attribute.
func (p *Parser) resyncAttr() {
	for !p.atEOF() {
		if tok := p.advance(); tok.Kind == token.RBracket {
			return
		}
	}
}
