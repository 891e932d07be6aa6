package parser

import (
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/source"
	"marker/internal/token"
)

// atMacroInvocation reports whether the stream sits at name!(...) with
// any of the three delimiters.
func (p *Parser) atMacroInvocation() bool {
	if !p.at(token.Ident) || p.peekAt(1).Kind != token.Bang {
		return false
	}
	switch p.peekAt(2).Kind {
	case token.LParen, token.LBracket, token.LBrace:
		return true
	default:
		return false
	}
}

func (p *Parser) atMacroRulesDef() bool {
	return p.at(token.Ident) && p.peek().Text == "macro_rules" &&
		p.peekAt(1).Kind == token.Bang
}

func closingDelim(open token.Kind) token.Kind {
	switch open {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	default:
		return token.RBrace
	}
}

// collectDelimited consumes an open delimiter through its balanced close
// and returns the inner tokens.
func (p *Parser) collectDelimited() (inner []token.Token, full source.Span, ok bool) {
	openTok := p.peek()
	switch openTok.Kind {
	case token.LParen, token.LBracket, token.LBrace:
	default:
		p.err(diag.SynUnexpectedToken, "expected '(', '[' or '{'")
		return nil, openTok.Span, false
	}
	p.advance()
	var stack []token.Kind
	stack = append(stack, openTok.Kind)
	start := p.pos
	for !p.atEOF() {
		k := p.peek().Kind
		switch k {
		case token.LParen, token.LBracket, token.LBrace:
			stack = append(stack, k)
		case token.RParen, token.RBracket, token.RBrace:
			if closingDelim(stack[len(stack)-1]) != k {
				p.err(diag.SynUnclosedDelimiter, "mismatched closing delimiter")
				return nil, openTok.Span, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				inner = p.toks[start:p.pos]
				closeTok := p.advance()
				return inner, openTok.Span.Cover(closeTok.Span), true
			}
		}
		p.advance()
	}
	p.errAt(diag.SynUnclosedDelimiter, openTok.Span, "unclosed delimiter")
	return nil, openTok.Span, false
}

// parseMacroDef parses macro_rules! name { (matcher) => { body }; ... }
// and registers it. Fragment parameters ($x:expr) are rejected.
func (p *Parser) parseMacroDef(attrs []hir.Attr) (hir.ItemID, bool) {
	start := p.advance().Span // macro_rules
	p.advance()               // '!'
	name, _, ok := p.parseName()
	if !ok {
		return hir.NoItemID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynMacroBadRule, "expected '{' after macro name"); !ok {
		return hir.NoItemID, false
	}

	var rules []hir.MacroRule
	for !p.at(token.RBrace) && !p.atEOF() {
		ruleStart := p.peek().Span
		matcher, _, ok := p.collectDelimited()
		if !ok {
			return hir.NoItemID, false
		}
		if _, ok := p.expect(token.FatArrow, diag.SynMacroBadRule, "expected '=>' in macro rule"); !ok {
			return hir.NoItemID, false
		}
		body, _, ok := p.collectDelimited()
		if !ok {
			return hir.NoItemID, false
		}
		if idx := findDollar(matcher); idx >= 0 {
			p.errAt(diag.SynMacroBadRule, matcher[idx].Span,
				"macro fragment parameters are not supported")
			return hir.NoItemID, false
		}
		if idx := findDollar(body); idx >= 0 {
			p.errAt(diag.SynMacroBadRule, body[idx].Span,
				"macro fragment parameters are not supported")
			return hir.NoItemID, false
		}
		rules = append(rules, hir.MacroRule{
			Matcher: copyTokens(matcher),
			Body:    copyTokens(body),
			Span:    p.spanFrom(ruleStart),
		})
		if _, ok := p.eat(token.Semicolon); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynMacroBadRule, "expected '}' closing macro definition"); !ok {
		return hir.NoItemID, false
	}

	span := p.spanFrom(start)
	macroID := p.crate.Macros.Define(hir.Macro{Name: name, Rules: rules, DefSpan: span})
	return p.crate.Items.NewMacro(hir.ItemHead{
		Span:  span,
		Name:  name,
		Owner: p.owner,
		Attrs: attrs,
	}, macroID), true
}

func findDollar(toks []token.Token) int {
	for i, t := range toks {
		if t.Kind == token.Dollar {
			return i
		}
	}
	return -1
}

func copyTokens(toks []token.Token) []token.Token {
	return append([]token.Token(nil), toks...)
}

// expandMacroInvocation splices the matching rule body into the stream at
// the current position. consumeSemi eats a trailing ';' for the () and []
// forms, as item and statement positions require. Returns false when the
// invocation was consumed but could not be expanded.
func (p *Parser) expandMacroInvocation(consumeSemi bool) bool {
	invStart := p.pos
	nameTok := p.advance() // ident
	p.advance()            // '!'
	openKind := p.peek().Kind
	args, _, ok := p.collectDelimited()
	if !ok {
		return false
	}
	if consumeSemi && openKind != token.LBrace {
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after macro invocation")
	}
	invEnd := p.pos
	callSite := nameTok.Span.Cover(p.lastSpan)

	name := p.crate.Interner.Intern(nameTok.Text)
	macroID, found := p.crate.Macros.Lookup(name)
	if !found {
		p.errAt(diag.SynMacroUnknown, nameTok.Span, "cannot find macro \""+nameTok.Text+"\"")
		p.spliceTokens(invStart, invEnd, nil)
		return false
	}
	def := p.crate.Macros.Get(macroID)

	var body []token.Token
	matched := false
	for _, rule := range def.Rules {
		if tokensMatch(rule.Matcher, args) {
			body = rule.Body
			matched = true
			break
		}
	}
	if !matched {
		p.errAt(diag.SynMacroBadRule, callSite, "no rule of \""+nameTok.Text+"\" matches these arguments")
		p.spliceTokens(invStart, invEnd, nil)
		return false
	}

	parent := nameTok.Span.Ctx
	if p.expansionDepth(parent) >= maxExpansionDepth {
		p.errAt(diag.SynMacroBadRule, callSite, "macro expansion depth limit reached")
		p.spliceTokens(invStart, invEnd, nil)
		return false
	}
	ctx := p.crate.Expns.Alloc(source.ExpnData{
		Parent:   parent,
		CallSite: callSite,
		Macro:    uint32(macroID),
	})

	expanded := make([]token.Token, len(body))
	for i, t := range body {
		t.Span.Ctx = ctx
		expanded[i] = t
	}
	p.spliceTokens(invStart, invEnd, expanded)
	return true
}

// spliceTokens replaces toks[from:to] with repl and rewinds to the splice.
func (p *Parser) spliceTokens(from, to int, repl []token.Token) {
	out := make([]token.Token, 0, len(p.toks)-(to-from)+len(repl))
	out = append(out, p.toks[:from]...)
	out = append(out, repl...)
	out = append(out, p.toks[to:]...)
	p.toks = out
	p.pos = from
}

// expansionDepth is the length of the parent chain of ctx.
func (p *Parser) expansionDepth(ctx source.ExpnID) int {
	depth := 0
	for ctx != source.NoExpn {
		data := p.crate.Expns.Get(ctx)
		if data == nil {
			break
		}
		depth++
		ctx = data.Parent
	}
	return depth
}

// tokensMatch compares a parameterless matcher against invocation tokens.
func tokensMatch(matcher, args []token.Token) bool {
	if len(matcher) != len(args) {
		return false
	}
	for i := range matcher {
		if matcher[i].Kind != args[i].Kind || matcher[i].Text != args[i].Text {
			return false
		}
	}
	return true
}
