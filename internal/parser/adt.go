package parser

import (
	"fmt"

	"fortio.org/safecast"

	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/source"
	"marker/internal/token"
)

func (p *Parser) parseStruct(attrs []hir.Attr, vis hir.Visibility) (hir.ItemID, bool) {
	start := p.advance().Span // struct
	name, _, ok := p.parseName()
	if !ok {
		return hir.NoItemID, false
	}
	generics, ok := p.parseGenericParams()
	if !ok {
		return hir.NoItemID, false
	}
	p.skipWhereClause()

	data := hir.StructData{Generics: generics}
	var specs []fieldSpec
	switch {
	case p.at(token.Semicolon):
		p.advance()
		data.FieldsKind = hir.FieldsUnit
	case p.at(token.LParen):
		data.FieldsKind = hir.FieldsTuple
		specs, ok = p.parseTupleFields()
		if !ok {
			return hir.NoItemID, false
		}
		p.skipWhereClause()
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after tuple struct")
	case p.at(token.LBrace):
		data.FieldsKind = hir.FieldsNamed
		specs, ok = p.parseNamedFields()
		if !ok {
			return hir.NoItemID, false
		}
	default:
		p.err(diag.SynUnexpectedToken, "expected ';', '(' or '{' after struct name")
		return hir.NoItemID, false
	}

	id := p.crate.Items.NewStruct(hir.ItemHead{
		Span: p.spanFrom(start), Name: name, Vis: vis, Owner: p.owner, Attrs: attrs,
	}, data)
	fields := p.allocFields(id, hir.NoVariantID, specs)
	if st, ok := p.crate.Items.Struct(id); ok {
		st.Fields = fields
	}
	return id, true
}

func (p *Parser) parseUnion(attrs []hir.Attr, vis hir.Visibility) (hir.ItemID, bool) {
	start := p.advance().Span // union
	name, _, ok := p.parseName()
	if !ok {
		return hir.NoItemID, false
	}
	generics, ok := p.parseGenericParams()
	if !ok {
		return hir.NoItemID, false
	}
	p.skipWhereClause()
	specs, ok := p.parseNamedFields()
	if !ok {
		return hir.NoItemID, false
	}
	id := p.crate.Items.NewUnion(hir.ItemHead{
		Span: p.spanFrom(start), Name: name, Vis: vis, Owner: p.owner, Attrs: attrs,
	}, hir.UnionData{Generics: generics})
	fields := p.allocFields(id, hir.NoVariantID, specs)
	if u, ok := p.crate.Items.Union(id); ok {
		u.Fields = fields
	}
	return id, true
}

func (p *Parser) parseEnum(attrs []hir.Attr, vis hir.Visibility) (hir.ItemID, bool) {
	start := p.advance().Span // enum
	name, _, ok := p.parseName()
	if !ok {
		return hir.NoItemID, false
	}
	generics, ok := p.parseGenericParams()
	if !ok {
		return hir.NoItemID, false
	}
	p.skipWhereClause()
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after enum name"); !ok {
		return hir.NoItemID, false
	}

	id := p.crate.Items.NewEnum(hir.ItemHead{
		Span: start, Name: name, Vis: vis, Owner: p.owner, Attrs: attrs,
	}, hir.EnumData{Generics: generics})

	var variants []hir.VariantID
	for !p.at(token.RBrace) && !p.atEOF() {
		variant, ok := p.parseVariant(id)
		if !ok {
			return hir.NoItemID, false
		}
		variants = append(variants, variant)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' closing enum")

	if e, ok := p.crate.Items.Enum(id); ok {
		e.Variants = variants
	}
	p.crate.Items.Get(id).Span = p.spanFrom(start)
	return id, true
}

func (p *Parser) parseVariant(enumID hir.ItemID) (hir.VariantID, bool) {
	attrs := p.parseOuterAttrs()
	start := p.peek().Span
	name, _, ok := p.parseName()
	if !ok {
		return hir.NoVariantID, false
	}

	variant := hir.Variant{Owner: enumID, Name: name, FieldsKind: hir.FieldsUnit}
	var specs []fieldSpec
	switch {
	case p.at(token.LParen):
		variant.FieldsKind = hir.FieldsTuple
		specs, ok = p.parseTupleFields()
		if !ok {
			return hir.NoVariantID, false
		}
	case p.at(token.LBrace):
		variant.FieldsKind = hir.FieldsNamed
		specs, ok = p.parseNamedFields()
		if !ok {
			return hir.NoVariantID, false
		}
	case p.at(token.Assign):
		p.advance()
		discr, ok := p.parseExpr()
		if !ok {
			return hir.NoVariantID, false
		}
		variant.Discr = discr
	}

	variant.AttrStart, variant.AttrCount = p.crate.Items.AllocateAttrs(attrs)
	variant.Span = p.spanFrom(start)
	id := p.crate.Items.NewVariant(variant)
	fields := p.allocFields(enumID, id, specs)
	if v := p.crate.Items.Variant(id); v != nil {
		v.Fields = fields
	}
	return id, true
}

// fieldSpec carries a parsed field before arena allocation; allocation
// needs the owner id, which for structs exists only after the payload.
type fieldSpec struct {
	name  source.SymbolID
	ty    hir.TypeID
	vis   hir.Visibility
	attrs []hir.Attr
	span  source.Span
}

func (p *Parser) parseNamedFields() ([]fieldSpec, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' before fields"); !ok {
		return nil, false
	}
	var specs []fieldSpec
	for !p.at(token.RBrace) && !p.atEOF() {
		attrs := p.parseOuterAttrs()
		vis := p.parseVisibility()
		start := p.peek().Span
		name, _, ok := p.parseName()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' and type after field name"); !ok {
			return nil, false
		}
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		specs = append(specs, fieldSpec{
			name: name, ty: ty, vis: vis, attrs: attrs, span: start.Cover(p.lastSpan),
		})
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' closing fields"); !ok {
		return nil, false
	}
	return specs, true
}

func (p *Parser) parseTupleFields() ([]fieldSpec, bool) {
	p.advance() // '('
	var specs []fieldSpec
	for !p.at(token.RParen) && !p.atEOF() {
		attrs := p.parseOuterAttrs()
		vis := p.parseVisibility()
		start := p.peek().Span
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		specs = append(specs, fieldSpec{
			ty: ty, vis: vis, attrs: attrs, span: start.Cover(p.lastSpan),
		})
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' closing tuple fields"); !ok {
		return nil, false
	}
	return specs, true
}

func (p *Parser) allocFields(owner hir.ItemID, variant hir.VariantID, specs []fieldSpec) []hir.FieldID {
	if len(specs) == 0 {
		return nil
	}
	fields := make([]hir.FieldID, 0, len(specs))
	for idx, spec := range specs {
		index, err := safecast.Conv[uint32](idx)
		if err != nil {
			panic(fmt.Errorf("field index overflow: %w", err))
		}
		attrStart, attrCount := p.crate.Items.AllocateAttrs(spec.attrs)
		fields = append(fields, p.crate.Items.NewField(hir.Field{
			Owner:     owner,
			Variant:   variant,
			Name:      spec.name,
			Index:     index,
			Ty:        spec.ty,
			Vis:       spec.vis,
			AttrStart: attrStart,
			AttrCount: attrCount,
			Span:      spec.span,
		}))
	}
	return fields
}
