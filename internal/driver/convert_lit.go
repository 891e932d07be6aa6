package driver

import (
	"strconv"
	"strings"

	"marker/api"
	"marker/internal/hir"
)

var litSuffixes = []string{
	"i8", "i16", "i32", "i64", "i128", "isize",
	"u8", "u16", "u32", "u64", "u128", "usize",
	"f32", "f64",
}

func splitLitSuffix(raw string) (string, string) {
	for _, suffix := range litSuffixes {
		if body, ok := strings.CutSuffix(raw, suffix); ok && body != "" {
			// 0x1e is a digit, not an i-suffixed literal fragment
			if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
				if suffix[0] != 'u' && suffix[0] != 'i' {
					continue
				}
			}
			return body, suffix
		}
	}
	return raw, ""
}

// convertLit parses the raw source text of a literal token. Tokens
// arrive exactly as written: digit separators, base prefixes, quotes,
// and escapes included.
func (st *storage) convertLit(data api.ExprData, lit *hir.ExprLitData) api.ExprKind {
	raw := st.crate.Interner.MustLookup(lit.Text)
	switch lit.Kind {
	case hir.LitBool:
		return api.NewBoolLitExpr(data, raw == "true")
	case hir.LitInt:
		body, suffix := splitLitSuffix(raw)
		value, _ := strconv.ParseUint(strings.ReplaceAll(body, "_", ""), 0, 64)
		return api.NewIntLitExpr(data, value, suffix)
	case hir.LitFloat:
		body, suffix := splitLitSuffix(raw)
		value, _ := strconv.ParseFloat(strings.ReplaceAll(body, "_", ""), 64)
		return api.NewFloatLitExpr(data, value, suffix)
	case hir.LitStr:
		return api.NewStrLitExpr(data, api.SymbolID(st.crate.NameSymbol(unquoteStr(raw))))
	case hir.LitChar:
		return api.NewCharLitExpr(data, unquoteChar(raw))
	default:
		return api.NewUnstableExpr(data)
	}
}

// unquoteStr strips the quotes and resolves escapes. Raw strings
// (r"..", r#".."#) only shed their delimiters.
func unquoteStr(raw string) string {
	if strings.HasPrefix(raw, "r") {
		body := strings.TrimPrefix(raw, "r")
		body = strings.Trim(body, "#")
		return strings.TrimSuffix(strings.TrimPrefix(body, `"`), `"`)
	}
	if s, err := strconv.Unquote(raw); err == nil {
		return s
	}
	return strings.TrimSuffix(strings.TrimPrefix(raw, `"`), `"`)
}

func unquoteChar(raw string) rune {
	if s, err := strconv.Unquote(raw); err == nil {
		runes := []rune(s)
		if len(runes) == 1 {
			return runes[0]
		}
	}
	trimmed := []rune(strings.Trim(raw, "'"))
	if len(trimmed) > 0 {
		return trimmed[0]
	}
	return 0
}
