package parser

import (
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/source"
	"marker/internal/token"
)

func (p *Parser) parseTrait(attrs []hir.Attr, vis hir.Visibility, mods fnModifiers) (hir.ItemID, bool) {
	start := p.advance().Span // trait
	name, _, ok := p.parseName()
	if !ok {
		return hir.NoItemID, false
	}
	generics, ok := p.parseGenericParams()
	if !ok {
		return hir.NoItemID, false
	}
	var supertraits []hir.TypeID
	if _, ok := p.eat(token.Colon); ok {
		supertraits, ok = p.parseBoundList()
		if !ok {
			return hir.NoItemID, false
		}
	}
	p.skipWhereClause()
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after trait header"); !ok {
		return hir.NoItemID, false
	}

	id := p.crate.Items.NewTrait(hir.ItemHead{
		Span: start, Name: name, Vis: vis, Owner: p.owner, Attrs: attrs,
	}, hir.TraitData{Generics: generics, Supertraits: supertraits, IsUnsafe: mods.isUnsafe})

	items := p.parseItems(id)
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' closing trait")
	p.crate.Items.SetTraitItems(id, items)
	p.crate.Items.Get(id).Span = p.spanFrom(start)
	return id, true
}

func (p *Parser) parseImpl(attrs []hir.Attr, vis hir.Visibility, mods fnModifiers) (hir.ItemID, bool) {
	start := p.advance().Span // impl
	generics, ok := p.parseGenericParams()
	if !ok {
		return hir.NoItemID, false
	}

	negative := false
	if p.at(token.Bang) {
		p.advance()
		negative = true
	}

	first, ok := p.parseType()
	if !ok {
		return hir.NoItemID, false
	}
	data := hir.ImplData{
		Generics: generics,
		SelfTy:   first,
		IsUnsafe: mods.isUnsafe,
		Negative: negative,
	}
	if _, ok := p.eat(token.KwFor); ok {
		selfTy, ok := p.parseType()
		if !ok {
			return hir.NoItemID, false
		}
		data.Trait = first
		data.SelfTy = selfTy
	}
	p.skipWhereClause()
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after impl header"); !ok {
		return hir.NoItemID, false
	}

	id := p.crate.Items.NewImpl(hir.ItemHead{
		Span: start, Vis: vis, Owner: p.owner, Attrs: attrs,
	}, data)

	items := p.parseItems(id)
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' closing impl")
	p.crate.Items.SetImplItems(id, items)
	p.crate.Items.Get(id).Span = p.spanFrom(start)
	return id, true
}

func (p *Parser) parseExternBlock(attrs []hir.Attr, vis hir.Visibility) (hir.ItemID, bool) {
	start := p.advance().Span // extern
	abi := source.NoSymbolID
	if p.at(token.StrLit) {
		abi = p.crate.Interner.Intern(p.advance().Text)
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after extern"); !ok {
		return hir.NoItemID, false
	}

	id := p.crate.Items.NewExternBlock(hir.ItemHead{
		Span: start, Vis: vis, Owner: p.owner, Attrs: attrs,
	}, hir.ExternBlockData{Abi: abi})

	items := p.parseItems(id)
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' closing extern block")
	p.crate.Items.SetExternBlockItems(id, items)
	p.crate.Items.Get(id).Span = p.spanFrom(start)
	return id, true
}
