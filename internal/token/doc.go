// Package token defines lexical token kinds for the embedded host frontend.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Attributes are lexed as '#' (Kind: Pound) + '[' ... ']'; no per-attribute
//     token kinds.
//   - Built-in type names (i32, u64, f64, str, ...) are identifiers. They are
//     recognized by the semantic layer, not the lexer.
//   - macro_rules! definitions and macro invocations are lexed as Ident + Bang;
//     the parser decides what they mean.
package token
