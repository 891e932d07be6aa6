package driver

import "testing"

func TestSplitLitSuffix(t *testing.T) {
	cases := []struct {
		raw, body, suffix string
	}{
		{"42", "42", ""},
		{"42u8", "42", "u8"},
		{"1_000_000i64", "1_000_000", "i64"},
		{"3.14f32", "3.14", "f32"},
		{"0xffusize", "0xff", "usize"},
		// the trailing f32 is hex digits, not a suffix
		{"0x1f32", "0x1f32", ""},
		{"0xAAu32", "0xAA", "u32"},
		{"usize", "usize", ""},
	}
	for _, tc := range cases {
		body, suffix := splitLitSuffix(tc.raw)
		if body != tc.body || suffix != tc.suffix {
			t.Errorf("splitLitSuffix(%q) = (%q, %q), want (%q, %q)",
				tc.raw, body, suffix, tc.body, tc.suffix)
		}
	}
}

func TestUnquoteStr(t *testing.T) {
	cases := []struct {
		raw, want string
	}{
		{`"hello"`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"say \"hi\""`, `say "hi"`},
		{`r"raw\n"`, `raw\n`},
		{`r#"with "quotes""#`, `with "quotes"`},
	}
	for _, tc := range cases {
		if got := unquoteStr(tc.raw); got != tc.want {
			t.Errorf("unquoteStr(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestUnquoteChar(t *testing.T) {
	cases := []struct {
		raw  string
		want rune
	}{
		{`'a'`, 'a'},
		{`'\n'`, '\n'},
		{`'\''`, '\''},
		{`'ß'`, 'ß'},
	}
	for _, tc := range cases {
		if got := unquoteChar(tc.raw); got != tc.want {
			t.Errorf("unquoteChar(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
