package parser

import (
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/source"
	"marker/internal/token"
)

func (p *Parser) parseIfExpr() (hir.ExprID, bool) {
	start := p.peek().Span
	p.advance() // 'if'

	cond, ok := p.parseCondition()
	if !ok {
		return hir.NoExprID, false
	}
	then, ok := p.parseBlockExpr()
	if !ok {
		return hir.NoExprID, false
	}
	els := hir.NoExprID
	if _, ok := p.eat(token.KwElse); ok {
		if p.at(token.KwIf) {
			els, ok = p.parseIfExpr()
		} else {
			els, ok = p.parseBlockExpr()
		}
		if !ok {
			return hir.NoExprID, false
		}
	}
	return p.crate.Exprs.NewIf(p.spanFrom(start), cond, then, els), true
}

// parseCondition handles `let pat = expr` conditions and the
// struct-literal restriction.
func (p *Parser) parseCondition() (hir.ExprID, bool) {
	if p.at(token.KwLet) {
		start := p.peek().Span
		p.advance()
		pat, ok := p.parsePattern()
		if !ok {
			return hir.NoExprID, false
		}
		if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let condition"); !ok {
			return hir.NoExprID, false
		}
		init, ok := p.parseExprNoStruct()
		if !ok {
			return hir.NoExprID, false
		}
		return p.crate.Exprs.NewLet(p.spanFrom(start), pat, init), true
	}
	return p.parseExprNoStruct()
}

func (p *Parser) parseMatchExpr() (hir.ExprID, bool) {
	start := p.peek().Span
	p.advance() // 'match'

	scrutinee, ok := p.parseExprNoStruct()
	if !ok {
		return hir.NoExprID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' starting match body"); !ok {
		return hir.NoExprID, false
	}

	var arms []hir.MatchArm
	for !p.at(token.RBrace) && !p.atEOF() {
		armStart := p.peek().Span
		pat, ok := p.parsePattern()
		if !ok {
			return hir.NoExprID, false
		}
		guard := hir.NoExprID
		if _, ok := p.eat(token.KwIf); ok {
			guard, ok = p.parseExpr()
			if !ok {
				return hir.NoExprID, false
			}
		}
		if _, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' in match arm"); !ok {
			return hir.NoExprID, false
		}
		body, ok := p.parseExpr()
		if !ok {
			return hir.NoExprID, false
		}
		arms = append(arms, hir.MatchArm{
			Pat: pat, Guard: guard, Body: body, Span: armStart.Cover(p.lastSpan),
		})
		// trailing comma is required after non-block arms, optional otherwise
		if _, ok := p.eat(token.Comma); !ok {
			if !p.at(token.RBrace) && !p.isBlockLike(body) {
				p.err(diag.SynUnexpectedToken, "expected ',' after match arm")
				return hir.NoExprID, false
			}
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' closing match body")
	return p.crate.Exprs.NewMatch(p.spanFrom(start), scrutinee, arms), true
}

// parseLabeledLoop dispatches 'label: loop|while|for.
func (p *Parser) parseLabeledLoop() (hir.ExprID, bool) {
	label := p.crate.Interner.Intern(p.advance().Text)
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after loop label"); !ok {
		return hir.NoExprID, false
	}
	switch p.peek().Kind {
	case token.KwLoop:
		return p.parseLoopExpr(label)
	case token.KwWhile:
		return p.parseWhileExpr(label)
	case token.KwFor:
		return p.parseForExpr(label)
	default:
		p.err(diag.SynUnexpectedToken, "expected 'loop', 'while', or 'for' after label")
		return hir.NoExprID, false
	}
}

func (p *Parser) parseLoopExpr(label source.SymbolID) (hir.ExprID, bool) {
	start := p.peek().Span
	p.advance() // 'loop'
	body, ok := p.parseBlockExpr()
	if !ok {
		return hir.NoExprID, false
	}
	return p.crate.Exprs.NewLoop(p.spanFrom(start), body, label), true
}

func (p *Parser) parseWhileExpr(label source.SymbolID) (hir.ExprID, bool) {
	start := p.peek().Span
	p.advance() // 'while'
	cond, ok := p.parseCondition()
	if !ok {
		return hir.NoExprID, false
	}
	body, ok := p.parseBlockExpr()
	if !ok {
		return hir.NoExprID, false
	}
	return p.crate.Exprs.NewWhile(p.spanFrom(start), cond, body, label), true
}

func (p *Parser) parseForExpr(label source.SymbolID) (hir.ExprID, bool) {
	start := p.peek().Span
	p.advance() // 'for'
	pat, ok := p.parsePattern()
	if !ok {
		return hir.NoExprID, false
	}
	if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' after for pattern"); !ok {
		return hir.NoExprID, false
	}
	iter, ok := p.parseExprNoStruct()
	if !ok {
		return hir.NoExprID, false
	}
	body, ok := p.parseBlockExpr()
	if !ok {
		return hir.NoExprID, false
	}
	return p.crate.Exprs.NewFor(p.spanFrom(start), hir.ExprForData{
		Pat: pat, Iter: iter, Body: body, Label: label,
	}), true
}

func (p *Parser) isBlockLike(id hir.ExprID) bool {
	expr := p.crate.Exprs.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case hir.ExprBlock, hir.ExprIf, hir.ExprMatch, hir.ExprLoop,
		hir.ExprWhile, hir.ExprFor, hir.ExprAsync:
		return true
	default:
		return false
	}
}
