package lexer

import (
	"marker/internal/diag"
	"marker/internal/token"
)

// Accepted forms: 0, 123, 0b..., 0o..., 0x..., 1.0, 1e-3, 1.0e+10, plus
// trailing type suffixes (u8, i64, f32, usize, ...). The suffix stays in
// Token.Text; Kind is IntLit or FloatLit by shape. Bad forms are reported
// and the token finishes as Invalid where recovery makes no sense.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	kind := token.IntLit

	// leading 0 with a base prefix
	if lx.cursor.Peek() == '0' {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '0' {
			switch b1 {
			case 'b', 'B':
				lx.cursor.Bump()
				lx.cursor.Bump()
				n := 0
				for {
					b := lx.cursor.Peek()
					if b == '0' || b == '1' || b == '_' {
						if b != '_' {
							n++
						}
						lx.cursor.Bump()
					} else {
						break
					}
				}
				if n == 0 {
					sp := lx.cursor.SpanFrom(start)
					lx.report(diag.LexBadNumber, sp, "binary literal has no digits")
					return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
				}
				return lx.finishNumber(start, kind)
			case 'o', 'O':
				lx.cursor.Bump()
				lx.cursor.Bump()
				n := 0
				for {
					b := lx.cursor.Peek()
					if (b >= '0' && b <= '7') || b == '_' {
						if b != '_' {
							n++
						}
						lx.cursor.Bump()
					} else {
						break
					}
				}
				if n == 0 {
					sp := lx.cursor.SpanFrom(start)
					lx.report(diag.LexBadNumber, sp, "octal literal has no digits")
					return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
				}
				return lx.finishNumber(start, kind)
			case 'x', 'X':
				lx.cursor.Bump()
				lx.cursor.Bump()
				n := 0
				for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
					if lx.cursor.Peek() != '_' {
						n++
					}
					lx.cursor.Bump()
				}
				if n == 0 {
					sp := lx.cursor.SpanFrom(start)
					lx.report(diag.LexBadNumber, sp, "hex literal has no digits")
					return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
				}
				return lx.finishNumber(start, kind)
			}
		}
	}

	// decimal integer part
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// fractional part; '..' and '..=' after a number are range operators,
	// '.ident' is a field or method access, neither belongs to the literal
	if lx.cursor.Peek() == '.' {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '.' && (b1 == '.' || b1 == '=') {
			// range operator, stop here
		} else if ok && b0 == '.' && isIdentStartByte(b1) {
			// field access, stop here
		} else {
			lx.cursor.Bump() // '.'
			kind = token.FloatLit
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
		}
	}

	// exponent
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		_, b1, ok := lx.cursor.Peek2()
		if ok && (isDec(b1) || b1 == '+' || b1 == '-') {
			kind = token.FloatLit
			lx.cursor.Bump() // e/E
			if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
				lx.cursor.Bump()
			}
			if !isDec(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(start)
				lx.report(diag.LexBadNumber, sp, "expected digit after exponent")
				return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
		}
	}

	return lx.finishNumber(start, kind)
}

// finishNumber swallows an optional type suffix and emits the token.
func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	return lx.tokenFrom(start, kind)
}
