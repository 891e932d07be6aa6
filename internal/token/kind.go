package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Lifetime represents a lifetime token such as 'a.
	Lifetime

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// StrLit represents a string literal token.
	StrLit
	// CharLit represents a character literal token.
	CharLit

	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwAsync represents the 'async' keyword.
	KwAsync // async
	// KwAwait represents the 'await' keyword.
	KwAwait // await
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwCrate represents the 'crate' keyword.
	KwCrate // crate
	// KwDyn represents the 'dyn' keyword.
	KwDyn // dyn
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwExtern represents the 'extern' keyword.
	KwExtern // extern
	// KwFalse represents the 'false' keyword.
	KwFalse // false
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwImpl represents the 'impl' keyword.
	KwImpl // impl
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwLoop represents the 'loop' keyword.
	KwLoop // loop
	// KwMatch represents the 'match' keyword.
	KwMatch // match
	// KwMod represents the 'mod' keyword.
	KwMod // mod
	// KwMove represents the 'move' keyword.
	KwMove // move
	// KwMut represents the 'mut' keyword.
	KwMut // mut
	// KwPub represents the 'pub' keyword.
	KwPub // pub
	// KwRef represents the 'ref' keyword.
	KwRef // ref
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwSelfValue represents the 'self' keyword.
	KwSelfValue // self
	// KwSelfType represents the 'Self' keyword.
	KwSelfType // Self
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwSuper represents the 'super' keyword.
	KwSuper // super
	// KwTrait represents the 'trait' keyword.
	KwTrait // trait
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwType represents the 'type' keyword.
	KwType // type
	// KwUnion represents the 'union' keyword.
	KwUnion // union
	// KwUnsafe represents the 'unsafe' keyword.
	KwUnsafe // unsafe
	// KwUse represents the 'use' keyword.
	KwUse // use
	// KwWhere represents the 'where' keyword.
	KwWhere // where
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwYield represents the 'yield' keyword.
	KwYield // yield

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Caret represents the caret operator token.
	Caret // ^
	// Amp represents the amp operator token.
	Amp // &
	// Pipe represents the pipe operator token.
	Pipe // |
	// AndAnd represents the lazy-and operator token.
	AndAnd // &&
	// OrOr represents the lazy-or operator token.
	OrOr // ||
	// Shl represents the shift-left operator token.
	Shl // <<
	// Shr represents the shift-right operator token.
	Shr // >>
	// Assign represents the assign operator token.
	Assign // =
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// PercentAssign represents the percent assign operator token.
	PercentAssign // %=
	// CaretAssign represents the caret assign operator token.
	CaretAssign // ^=
	// AmpAssign represents the amp assign operator token.
	AmpAssign // &=
	// PipeAssign represents the pipe assign operator token.
	PipeAssign // |=
	// ShlAssign represents the shift-left assign operator token.
	ShlAssign // <<=
	// ShrAssign represents the shift-right assign operator token.
	ShrAssign // >>=
	// EqEq represents the equality operator token.
	EqEq // ==
	// BangEq represents the inequality operator token.
	BangEq // !=
	// Lt represents the less-than operator token.
	Lt // <
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Gt represents the greater-than operator token.
	Gt // >
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// Bang represents the bang operator token.
	Bang // !
	// At represents the at token.
	At // @
	// Dollar represents the dollar token, seen only in macro matchers.
	Dollar // $
	// Pound represents the pound token.
	Pound // #
	// Question represents the question operator token.
	Question // ?
	// Underscore represents the underscore token.
	Underscore // _
	// Dot represents the dot token.
	Dot // .
	// DotDot represents the exclusive range token.
	DotDot // ..
	// DotDotEq represents the inclusive range token.
	DotDotEq // ..=
	// DotDotDot represents the rest token.
	DotDotDot // ...
	// Comma represents the comma token.
	Comma // ,
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Colon represents the colon token.
	Colon // :
	// ColonColon represents the path separator token.
	ColonColon // ::
	// Arrow represents the arrow token.
	Arrow // ->
	// FatArrow represents the fat arrow token.
	FatArrow // =>
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
)

var kindNames = map[Kind]string{
	Invalid: "invalid", EOF: "eof", Ident: "ident", Lifetime: "lifetime",
	IntLit: "int literal", FloatLit: "float literal", StrLit: "string literal", CharLit: "char literal",
	KwAs: "as", KwAsync: "async", KwAwait: "await", KwBreak: "break", KwConst: "const",
	KwContinue: "continue", KwCrate: "crate", KwDyn: "dyn", KwElse: "else", KwEnum: "enum",
	KwExtern: "extern", KwFalse: "false", KwFn: "fn", KwFor: "for", KwIf: "if", KwImpl: "impl",
	KwIn: "in", KwLet: "let", KwLoop: "loop", KwMatch: "match", KwMod: "mod", KwMove: "move",
	KwMut: "mut", KwPub: "pub", KwRef: "ref", KwReturn: "return", KwSelfValue: "self",
	KwSelfType: "Self", KwStatic: "static", KwStruct: "struct", KwSuper: "super",
	KwTrait: "trait", KwTrue: "true", KwType: "type", KwUnion: "union", KwUnsafe: "unsafe",
	KwUse: "use", KwWhere: "where", KwWhile: "while", KwYield: "yield",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Caret: "^", Amp: "&",
	Pipe: "|", AndAnd: "&&", OrOr: "||", Shl: "<<", Shr: ">>", Assign: "=",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	PercentAssign: "%=", CaretAssign: "^=", AmpAssign: "&=", PipeAssign: "|=",
	ShlAssign: "<<=", ShrAssign: ">>=", EqEq: "==", BangEq: "!=", Lt: "<", LtEq: "<=",
	Gt: ">", GtEq: ">=", Bang: "!", At: "@", Dollar: "$", Pound: "#", Question: "?", Underscore: "_",
	Dot: ".", DotDot: "..", DotDotEq: "..=", DotDotDot: "...", Comma: ",", Semicolon: ";",
	Colon: ":", ColonColon: "::", Arrow: "->", FatArrow: "=>", LParen: "(", RParen: ")",
	LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
