package parser

import (
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/source"
	"marker/internal/token"
)

// parseItem parses one item. A false result means the caller must
// resynchronize. The item's span starts at its first token, so leading
// attributes and visibility are covered.
func (p *Parser) parseItem() (hir.ItemID, bool) {
	start := p.peek().Span
	id, ok := p.parseItemDispatch()
	if ok && id.IsValid() {
		if item := p.crate.Items.Get(id); item != nil &&
			item.Span.File == start.File && item.Span.Ctx == start.Ctx &&
			start.Start < item.Span.Start {
			item.Span.Start = start.Start
		}
	}
	return id, ok
}

// parseItemDispatch consumes leading attributes, visibility and fn
// modifiers, then dispatches on the introducing keyword.
func (p *Parser) parseItemDispatch() (hir.ItemID, bool) {
	entry := p.pos
	attrs := p.parseOuterAttrs()

	if p.atMacroRulesDef() {
		return p.parseMacroDef(attrs)
	}
	if p.atMacroInvocation() {
		if p.expandMacroInvocation(true) {
			// the expansion replaced the invocation; parse what it produced
			return hir.NoItemID, true
		}
		return hir.NoItemID, true // error already reported, stream cleaned
	}

	vis := p.parseVisibility()
	mods := p.parseFnModifiers()

	switch p.peek().Kind {
	case token.KwMod:
		return p.parseMod(attrs, vis)
	case token.KwExtern:
		if p.peekAt(1).Kind == token.KwCrate {
			return p.parseExternCrate(attrs, vis)
		}
		return p.parseExternBlock(attrs, vis)
	case token.KwUse:
		return p.parseUse(attrs, vis)
	case token.KwStatic:
		return p.parseStatic(attrs, vis)
	case token.KwConst:
		if p.peekAt(1).Kind == token.KwFn {
			p.advance()
			mods.isConst = true
			return p.parseFn(attrs, vis, mods)
		}
		return p.parseConst(attrs, vis)
	case token.KwFn:
		return p.parseFn(attrs, vis, mods)
	case token.KwType:
		return p.parseTyAlias(attrs, vis)
	case token.KwStruct:
		return p.parseStruct(attrs, vis)
	case token.KwEnum:
		return p.parseEnum(attrs, vis)
	case token.KwUnion:
		return p.parseUnion(attrs, vis)
	case token.KwTrait:
		return p.parseTrait(attrs, vis, mods)
	case token.KwImpl:
		return p.parseImpl(attrs, vis, mods)
	default:
		if mods.any() {
			p.err(diag.SynExpectItem, "expected item after modifiers")
			return hir.NoItemID, false
		}
		p.err(diag.SynExpectItem, "expected item, got \""+p.peek().Text+"\"")
		// guarantee progress so resynchronization cannot spin
		if p.pos == entry && !p.atEOF() {
			p.advance()
		}
		return hir.NoItemID, false
	}
}

type fnModifiers struct {
	isConst  bool
	isAsync  bool
	isUnsafe bool
}

func (m fnModifiers) any() bool {
	return m.isConst || m.isAsync || m.isUnsafe
}

// parseFnModifiers eats const/async/unsafe prefixes in any order. The
// caller decides whether they were legal for the item that follows.
func (p *Parser) parseFnModifiers() fnModifiers {
	var mods fnModifiers
	for {
		switch p.peek().Kind {
		case token.KwAsync:
			p.advance()
			mods.isAsync = true
		case token.KwUnsafe:
			p.advance()
			mods.isUnsafe = true
		case token.KwConst:
			// const fn only; a const item is handled by the caller
			if p.peekAt(1).Kind == token.KwFn {
				p.advance()
				mods.isConst = true
				continue
			}
			return mods
		default:
			return mods
		}
	}
}

func (p *Parser) parseVisibility() hir.Visibility {
	if !p.at(token.KwPub) {
		return hir.VisPrivate
	}
	p.advance()
	if p.at(token.LParen) {
		p.advance()
		vis := hir.VisPub
		switch p.peek().Kind {
		case token.KwCrate:
			p.advance()
			vis = hir.VisPubCrate
		case token.KwSuper:
			p.advance()
			vis = hir.VisPubSuper
		default:
			p.err(diag.SynBadVisibility, "expected 'crate' or 'super' in visibility")
		}
		p.expect(token.RParen, diag.SynBadVisibility, "expected ')' closing visibility")
		return vis
	}
	return hir.VisPub
}

func (p *Parser) parseMod(attrs []hir.Attr, vis hir.Visibility) (hir.ItemID, bool) {
	start := p.advance().Span // mod
	name, _, ok := p.parseName()
	if !ok {
		return hir.NoItemID, false
	}
	if _, ok := p.eat(token.Semicolon); ok {
		// out-of-line module files are resolved by the session loader,
		// the declaration itself stays empty here
		return p.crate.Items.NewMod(hir.ItemHead{
			Span: p.spanFrom(start), Name: name, Vis: vis, Owner: p.owner, Attrs: attrs,
		}, nil), true
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' or ';' after module name"); !ok {
		return hir.NoItemID, false
	}
	attrs = append(attrs, p.parseInnerAttrs()...)
	id := p.crate.Items.NewMod(hir.ItemHead{
		Span: start, Name: name, Vis: vis, Owner: p.owner, Attrs: attrs,
	}, nil)
	items := p.parseItems(id)
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' closing module")
	p.crate.Items.SetModItems(id, items)
	p.crate.Items.Get(id).Span = p.spanFrom(start)
	return id, true
}

func (p *Parser) parseExternCrate(attrs []hir.Attr, vis hir.Visibility) (hir.ItemID, bool) {
	start := p.advance().Span // extern
	p.advance()               // crate
	crateName, _, ok := p.parseName()
	if !ok {
		return hir.NoItemID, false
	}
	localName := crateName
	if _, ok := p.eat(token.KwAs); ok {
		localName, _, ok = p.parseName()
		if !ok {
			return hir.NoItemID, false
		}
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after extern crate")
	return p.crate.Items.NewExternCrate(hir.ItemHead{
		Span: p.spanFrom(start), Name: localName, Vis: vis, Owner: p.owner, Attrs: attrs,
	}, crateName), true
}

func (p *Parser) parseUse(attrs []hir.Attr, vis hir.Visibility) (hir.ItemID, bool) {
	start := p.advance().Span // use
	var data hir.UseData
	path, ok := p.parseUsePath(&data)
	if !ok {
		return hir.NoItemID, false
	}
	data.Path = path
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after use declaration")

	name := source.NoSymbolID
	if data.Rename != source.NoSymbolID {
		name = data.Rename
	} else if !data.Glob && len(path) > 0 {
		name = path[len(path)-1].Name
	}
	return p.crate.Items.NewUse(hir.ItemHead{
		Span: p.spanFrom(start), Name: name, Vis: vis, Owner: p.owner, Attrs: attrs,
	}, data), true
}

// parseUsePath reads segment::segment::... with an optional * or `as`
// tail. Brace groups are not supported in the subset.
func (p *Parser) parseUsePath(data *hir.UseData) ([]hir.PathSegment, bool) {
	var segs []hir.PathSegment
	for {
		if p.at(token.Star) {
			p.advance()
			data.Glob = true
			return segs, true
		}
		tok := p.peek()
		switch tok.Kind {
		case token.Ident, token.KwCrate, token.KwSuper, token.KwSelfValue:
			p.advance()
			segs = append(segs, hir.PathSegment{
				Name: p.crate.Interner.Intern(tok.Text),
				Span: tok.Span,
			})
		default:
			p.err(diag.SynExpectIdentifier, "expected path segment in use declaration")
			return nil, false
		}
		if _, ok := p.eat(token.ColonColon); !ok {
			break
		}
	}
	if _, ok := p.eat(token.KwAs); ok {
		rename, _, ok := p.parseName()
		if !ok {
			return nil, false
		}
		data.Rename = rename
	}
	return segs, true
}

func (p *Parser) parseStatic(attrs []hir.Attr, vis hir.Visibility) (hir.ItemID, bool) {
	start := p.advance().Span // static
	_, mut := p.eat(token.KwMut)
	name, _, ok := p.parseName()
	if !ok {
		return hir.NoItemID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' and type after static name"); !ok {
		return hir.NoItemID, false
	}
	ty, ok := p.parseType()
	if !ok {
		return hir.NoItemID, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in static item"); !ok {
		return hir.NoItemID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return hir.NoItemID, false
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after static item")
	span := p.spanFrom(start)
	body := p.crate.Bodies.New(hir.NoItemID, value, span)
	id := p.crate.Items.NewStatic(hir.ItemHead{
		Span: span, Name: name, Vis: vis, Owner: p.owner, Attrs: attrs,
	}, hir.StaticData{Mut: mut, Ty: ty, Body: body})
	p.crate.Bodies.SetOwner(body, id)
	return id, true
}

func (p *Parser) parseConst(attrs []hir.Attr, vis hir.Visibility) (hir.ItemID, bool) {
	start := p.advance().Span // const
	name, _, ok := p.parseName()
	if !ok {
		return hir.NoItemID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' and type after const name"); !ok {
		return hir.NoItemID, false
	}
	ty, ok := p.parseType()
	if !ok {
		return hir.NoItemID, false
	}
	var body hir.BodyID
	if _, ok := p.eat(token.Assign); ok {
		value, ok := p.parseExpr()
		if !ok {
			return hir.NoItemID, false
		}
		body = p.crate.Bodies.New(hir.NoItemID, value, p.spanFrom(start))
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after const item")
	id := p.crate.Items.NewConst(hir.ItemHead{
		Span: p.spanFrom(start), Name: name, Vis: vis, Owner: p.owner, Attrs: attrs,
	}, hir.ConstData{Ty: ty, Body: body})
	if body.IsValid() {
		p.crate.Bodies.SetOwner(body, id)
	}
	return id, true
}

func (p *Parser) parseTyAlias(attrs []hir.Attr, vis hir.Visibility) (hir.ItemID, bool) {
	start := p.advance().Span // type
	name, _, ok := p.parseName()
	if !ok {
		return hir.NoItemID, false
	}
	generics, ok := p.parseGenericParams()
	if !ok {
		return hir.NoItemID, false
	}
	var aliased hir.TypeID
	if _, ok := p.eat(token.Assign); ok {
		aliased, ok = p.parseType()
		if !ok {
			return hir.NoItemID, false
		}
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after type alias")
	return p.crate.Items.NewTyAlias(hir.ItemHead{
		Span: p.spanFrom(start), Name: name, Vis: vis, Owner: p.owner, Attrs: attrs,
	}, hir.TyAliasData{Generics: generics, Aliased: aliased}), true
}
