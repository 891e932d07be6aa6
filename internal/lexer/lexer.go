// Package lexer turns host source files into token streams.
package lexer

import (
	"marker/internal/diag"
	"marker/internal/source"
	"marker/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	bag    *diag.Bag
	look   *token.Token // one token of lookahead
}

func New(file *source.File, bag *diag.Bag) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		bag:    bag,
	}
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '_':
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '_' && isIdentContinueByte(b1) {
			return lx.scanIdentOrKeyword()
		}
		return lx.scanOperatorOrPunct()

	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '"':
		return lx.scanString()

	case ch == '\'':
		return lx.scanCharOrLifetime()

	default:
		if r, sz := lx.peekRune(); sz > 1 && isIdentStartRune(r) {
			return lx.scanIdentOrKeyword()
		}
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Tokenize drains the lexer into a slice, EOF excluded.
func Tokenize(file *source.File, bag *diag.Bag) []token.Token {
	lx := New(file, bag)
	var out []token.Token
	for {
		t := lx.Next()
		if t.IsEOF() {
			return out
		}
		out = append(out, t)
	}
}

// skipTrivia consumes whitespace, line comments, and block comments.
// Doc comments are trivia too: the host frontend keeps no documentation.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.cursor.Bump()

		case ch == '/':
			b0, b1, ok := lx.cursor.Peek2()
			switch {
			case ok && b0 == '/' && b1 == '/':
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
			case ok && b0 == '/' && b1 == '*':
				lx.skipBlockComment()
			default:
				return
			}

		default:
			return
		}
	}
}

func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	depth := 1
	for depth > 0 {
		if lx.cursor.EOF() {
			lx.report(diag.LexUnterminatedComment, lx.cursor.SpanFrom(start), "unterminated block comment")
			return
		}
		b0, b1, ok := lx.cursor.Peek2()
		switch {
		case ok && b0 == '/' && b1 == '*':
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth++
		case ok && b0 == '*' && b1 == '/':
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth--
		default:
			lx.cursor.Bump()
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) report(code diag.Code, span source.Span, msg string) {
	if lx.bag != nil {
		lx.bag.Add(diag.NewError(code, span, msg))
	}
}

func (lx *Lexer) tokenFrom(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
