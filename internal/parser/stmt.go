package parser

import (
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/token"
)

// parseBlockExpr parses { stmt* tail-expr? } into an ExprBlock.
func (p *Parser) parseBlockExpr() (hir.ExprID, bool) {
	start := p.peek().Span
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' starting block"); !ok {
		return hir.NoExprID, false
	}

	var data hir.ExprBlockData
	for !p.at(token.RBrace) && !p.atEOF() {
		if p.opts.Enough() {
			p.skipBalanced(token.LBrace, token.RBrace)
			return p.crate.Exprs.NewBlock(p.spanFrom(start), data), true
		}
		if _, ok := p.eat(token.Semicolon); ok {
			continue
		}

		if p.atMacroRulesDef() {
			if id, ok := p.parseMacroDef(p.parseOuterAttrs()); ok && id.IsValid() {
				itemSpan := p.crate.Items.Get(id).Span
				data.Stmts = append(data.Stmts, p.crate.Stmts.NewItem(itemSpan, id))
			}
			continue
		}
		if p.atMacroStmt() {
			if !p.expandMacroInvocation(true) {
				p.resyncStmt()
			}
			continue
		}
		if p.atStmtItem() {
			id, ok := p.parseItem()
			if !ok {
				p.resyncStmt()
				continue
			}
			if id.IsValid() {
				itemSpan := p.crate.Items.Get(id).Span
				data.Stmts = append(data.Stmts, p.crate.Stmts.NewItem(itemSpan, id))
			}
			continue
		}
		if p.at(token.KwLet) {
			if stmt, ok := p.parseLetStmt(); ok {
				data.Stmts = append(data.Stmts, stmt)
			} else {
				p.resyncStmt()
			}
			continue
		}

		exprStart := p.peek().Span
		expr, ok := p.parseExpr()
		if !ok {
			p.resyncStmt()
			continue
		}
		span := exprStart.Cover(p.lastSpan)
		if _, ok := p.eat(token.Semicolon); ok {
			data.Stmts = append(data.Stmts, p.crate.Stmts.NewExpr(span, expr, true))
			continue
		}
		if p.at(token.RBrace) {
			data.Tail = expr
			break
		}
		if p.isBlockLike(expr) {
			data.Stmts = append(data.Stmts, p.crate.Stmts.NewExpr(span, expr, false))
			continue
		}
		p.err(diag.SynExpectSemicolon, "expected ';' after expression")
		data.Stmts = append(data.Stmts, p.crate.Stmts.NewExpr(span, expr, false))
		p.resyncStmt()
	}

	p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' closing block")
	return p.crate.Exprs.NewBlock(p.spanFrom(start), data), true
}

// parseLetStmt parses let pat [: ty] [= init [else block]] ;
func (p *Parser) parseLetStmt() (hir.StmtID, bool) {
	start := p.peek().Span
	p.advance() // 'let'

	pat, ok := p.parsePattern()
	if !ok {
		return hir.NoStmtID, false
	}
	var data hir.StmtLetData
	data.Pat = pat

	if _, ok := p.eat(token.Colon); ok {
		ty, ok := p.parseType()
		if !ok {
			return hir.NoStmtID, false
		}
		data.Ty = ty
	}
	if _, ok := p.eat(token.Assign); ok {
		init, ok := p.parseExpr()
		if !ok {
			return hir.NoStmtID, false
		}
		data.Init = init
		if _, ok := p.eat(token.KwElse); ok {
			els, ok := p.parseBlockExpr()
			if !ok {
				return hir.NoStmtID, false
			}
			data.Else = els
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let statement"); !ok {
		return hir.NoStmtID, false
	}
	return p.crate.Stmts.NewLet(start.Cover(p.lastSpan), data), true
}

// atStmtItem distinguishes item starters from expression starters inside
// a block: const, unsafe and async open expressions too.
func (p *Parser) atStmtItem() bool {
	switch p.peek().Kind {
	case token.KwMod, token.KwUse, token.KwStatic, token.KwFn, token.KwType,
		token.KwStruct, token.KwEnum, token.KwUnion, token.KwTrait, token.KwImpl,
		token.KwExtern, token.KwPub, token.Pound:
		return true
	case token.KwConst:
		next := p.peekAt(1).Kind
		return next == token.Ident || next == token.KwFn || next == token.Underscore
	case token.KwUnsafe:
		switch p.peekAt(1).Kind {
		case token.KwFn, token.KwTrait, token.KwImpl, token.KwExtern:
			return true
		}
		return false
	case token.KwAsync:
		return p.peekAt(1).Kind == token.KwFn
	default:
		return false
	}
}

// atMacroStmt reports whether the block sits at a statement-form macro
// invocation: a braced body, or a ()/[] body followed by ';'. Tail and
// operand positions go through the expression path instead.
func (p *Parser) atMacroStmt() bool {
	if !p.atMacroInvocation() {
		return false
	}
	open := p.peekAt(2).Kind
	if open == token.LBrace {
		return true
	}
	depth := 0
	for i := p.pos + 2; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 {
				return i+1 < len(p.toks) && p.toks[i+1].Kind == token.Semicolon
			}
		}
	}
	return false
}

// resyncStmt skips to the next statement boundary inside a block.
func (p *Parser) resyncStmt() {
	for !p.atEOF() {
		switch p.peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace:
			return
		case token.LBrace:
			p.skipBalanced(token.LBrace, token.RBrace)
			continue
		}
		p.advance()
	}
}
