package lexer_test

import (
	"testing"

	"marker/internal/diag"
	"marker/internal/lexer"
	"marker/internal/source"
	"marker/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(input))
	file := fs.Get(fileID)
	bag := diag.NewBag(64)
	return lexer.New(file, bag), bag
}

func collectKinds(t *testing.T, input string) ([]token.Kind, *diag.Bag) {
	t.Helper()
	lx, bag := makeTestLexer(input)
	var kinds []token.Kind
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return kinds, bag
		}
		kinds = append(kinds, tok.Kind)
		if len(kinds) > 10_000 {
			t.Fatal("lexer did not reach EOF")
		}
	}
}

func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	kinds, bag := collectKinds(t, input)
	if bag.HasErrors() {
		t.Fatalf("input %q: unexpected lex errors: %s", input, bag.String())
	}
	if len(kinds) != len(expected) {
		t.Fatalf("input %q: got %d tokens %v, want %d %v", input, len(kinds), kinds, len(expected), expected)
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Errorf("input %q: token %d = %v, want %v", input, i, kinds[i], expected[i])
		}
	}
}

func TestIdentsAndKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"foo", []token.Kind{token.Ident}},
		{"foo_bar2", []token.Kind{token.Ident}},
		{"_leading", []token.Kind{token.Ident}},
		{"_", []token.Kind{token.Underscore}},
		{"fn main", []token.Kind{token.KwFn, token.Ident}},
		{"let mut x", []token.Kind{token.KwLet, token.KwMut, token.Ident}},
		{"self Self", []token.Kind{token.KwSelfValue, token.KwSelfType}},
		{"Struct", []token.Kind{token.Ident}}, // keywords are lowercase only, Self excepted
		{"true false", []token.Kind{token.KwTrue, token.KwFalse}},
		{"матч", []token.Kind{token.Ident}}, // unicode idents allowed
	}
	for _, tt := range tests {
		expectTokens(t, tt.input, tt.want)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"0", []token.Kind{token.IntLit}},
		{"123", []token.Kind{token.IntLit}},
		{"1_000_000", []token.Kind{token.IntLit}},
		{"0b1010", []token.Kind{token.IntLit}},
		{"0o777", []token.Kind{token.IntLit}},
		{"0xDEAD_beef", []token.Kind{token.IntLit}},
		{"1.0", []token.Kind{token.FloatLit}},
		{"1e3", []token.Kind{token.FloatLit}},
		{"1.5e-10", []token.Kind{token.FloatLit}},
		{"42u8", []token.Kind{token.IntLit}},
		{"2.5f64", []token.Kind{token.FloatLit}},
		{"1usize", []token.Kind{token.IntLit}},
		// dots that are not fractional parts
		{"0..10", []token.Kind{token.IntLit, token.DotDot, token.IntLit}},
		{"0..=9", []token.Kind{token.IntLit, token.DotDotEq, token.IntLit}},
		{"1.max", []token.Kind{token.IntLit, token.Dot, token.Ident}},
	}
	for _, tt := range tests {
		expectTokens(t, tt.input, tt.want)
	}
}

func TestNumberText(t *testing.T) {
	lx, _ := makeTestLexer("42u8 1.5e3")
	first := lx.Next()
	if first.Text != "42u8" {
		t.Errorf("suffix not kept in text: %q", first.Text)
	}
	second := lx.Next()
	if second.Text != "1.5e3" {
		t.Errorf("float text = %q", second.Text)
	}
}

func TestBadNumbers(t *testing.T) {
	for _, input := range []string{"0b", "0o_", "0x", "1e+"} {
		_, bag := collectKinds(t, input)
		if !bag.HasErrors() {
			t.Errorf("input %q: expected a lex error", input)
		}
	}
}

func TestStringsCharsLifetimes(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{`"hello"`, []token.Kind{token.StrLit}},
		{`"with \"escape\""`, []token.Kind{token.StrLit}},
		{"\"multi\nline\"", []token.Kind{token.StrLit}},
		{"'a'", []token.Kind{token.CharLit}},
		{`'\n'`, []token.Kind{token.CharLit}},
		{`'\''`, []token.Kind{token.CharLit}},
		{"'a", []token.Kind{token.Lifetime}},
		{"'static", []token.Kind{token.Lifetime}},
		{"&'a str", []token.Kind{token.Amp, token.Lifetime, token.Ident}},
		{"'a'+'b'", []token.Kind{token.CharLit, token.Plus, token.CharLit}},
	}
	for _, tt := range tests {
		expectTokens(t, tt.input, tt.want)
	}
}

func TestUnterminated(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{`"never closed`, diag.LexUnterminatedString},
		// a bare 'x is a lifetime, so only spellings that cannot be one
		// count as unterminated char literals
		{`'\n`, diag.LexUnterminatedChar},
		{"'1", diag.LexUnterminatedChar},
		{"/* open", diag.LexUnterminatedComment},
	}
	for _, tt := range tests {
		_, bag := collectKinds(t, tt.input)
		found := false
		for _, d := range bag.Items() {
			if d.Code == tt.code {
				found = true
			}
		}
		if !found {
			t.Errorf("input %q: want code %v, got %s", tt.input, tt.code, bag.String())
		}
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"+ - * / %", []token.Kind{token.Plus, token.Minus, token.Star, token.Slash, token.Percent}},
		{"== != <= >= < >", []token.Kind{token.EqEq, token.BangEq, token.LtEq, token.GtEq, token.Lt, token.Gt}},
		{"&& || ! & |", []token.Kind{token.AndAnd, token.OrOr, token.Bang, token.Amp, token.Pipe}},
		{"<< >> <<= >>=", []token.Kind{token.Shl, token.Shr, token.ShlAssign, token.ShrAssign}},
		{"+= -= *= /= %= ^= &= |=", []token.Kind{
			token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign,
			token.PercentAssign, token.CaretAssign, token.AmpAssign, token.PipeAssign,
		}},
		{":: : ; , . -> => # ? @", []token.Kind{
			token.ColonColon, token.Colon, token.Semicolon, token.Comma, token.Dot,
			token.Arrow, token.FatArrow, token.Pound, token.Question, token.At,
		}},
		{".. ..= ...", []token.Kind{token.DotDot, token.DotDotEq, token.DotDotDot}},
		{"(){}[]", []token.Kind{
			token.LParen, token.RParen, token.LBrace, token.RBrace,
			token.LBracket, token.RBracket,
		}},
		// greedy: no spaces
		{"a<=b", []token.Kind{token.Ident, token.LtEq, token.Ident}},
		{"x..=y", []token.Kind{token.Ident, token.DotDotEq, token.Ident}},
	}
	for _, tt := range tests {
		expectTokens(t, tt.input, tt.want)
	}
}

func TestTrivia(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"a // comment\nb", []token.Kind{token.Ident, token.Ident}},
		{"a /* inline */ b", []token.Kind{token.Ident, token.Ident}},
		{"a /* nested /* deeper */ still */ b", []token.Kind{token.Ident, token.Ident}},
		{"/// doc comment\nfn", []token.Kind{token.KwFn}},
		{"  \t\r\n  x", []token.Kind{token.Ident}},
		{"", nil},
	}
	for _, tt := range tests {
		expectTokens(t, tt.input, tt.want)
	}
}

func TestAttributeTokens(t *testing.T) {
	expectTokens(t, `#[allow(dead_code)]`, []token.Kind{
		token.Pound, token.LBracket, token.Ident, token.LParen, token.Ident,
		token.RParen, token.RBracket,
	})
}

func TestMacroInvocationTokens(t *testing.T) {
	expectTokens(t, `println!("hi");`, []token.Kind{
		token.Ident, token.Bang, token.LParen, token.StrLit, token.RParen, token.Semicolon,
	})
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	p := lx.Peek()
	n := lx.Next()
	if p != n {
		t.Fatalf("Peek %v != Next %v", p, n)
	}
	if got := lx.Next(); got.Text != "b" {
		t.Fatalf("second token = %q, want b", got.Text)
	}
}

func TestSpansAliasSource(t *testing.T) {
	input := "let answer = 42;"
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(input))
	file := fs.Get(id)
	for _, tok := range lexer.Tokenize(file, nil) {
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("span %v slices %q, text says %q", tok.Span, got, tok.Text)
		}
	}
}
