package lexer

import (
	"marker/internal/diag"
	"marker/internal/token"
)

// scanString scans a "..." literal. Escapes are consumed byte-wise
// (\" \\ \n \t \r \0 \xNN \u{...}), deep validation is left to later
// phases. Unlike line comments a literal may span multiple lines.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			return lx.tokenFrom(start, token.StrLit)
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanCharOrLifetime disambiguates 'a' (char literal) from 'a (lifetime).
// A quote followed by an identifier start is a lifetime unless the next
// byte after the identifier run's first char is a closing quote.
func (lx *Lexer) scanCharOrLifetime() token.Token {
	start := lx.cursor.Mark()

	_, b1, ok := lx.cursor.Peek2()
	if ok && isIdentStartByte(b1) {
		_, _, b2, ok3 := lx.cursor.Peek3()
		if !ok3 || b2 != '\'' {
			return lx.scanLifetime(start)
		}
	}
	return lx.scanCharLit(start)
}

func (lx *Lexer) scanLifetime(start Mark) token.Token {
	lx.cursor.Bump() // '\''
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.tokenFrom(start, token.Lifetime)
}

func (lx *Lexer) scanCharLit(start Mark) token.Token {
	lx.cursor.Bump() // opening '\''
	if lx.cursor.EOF() {
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	if lx.cursor.Peek() == '\\' {
		lx.cursor.Bump()
		if !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
	} else if lx.cursor.Peek() == '\'' {
		// '' has no payload
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnterminatedChar, sp, "empty character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	} else {
		lx.bumpRune()
	}
	if lx.cursor.Peek() != '\'' {
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	lx.cursor.Bump() // closing '\''
	return lx.tokenFrom(start, token.CharLit)
}
