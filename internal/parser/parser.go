// Package parser builds the lowered crate representation from token
// streams. Macro expansion happens here: macro_rules bodies are spliced
// into the stream with a fresh expansion context before parsing resumes.
package parser

import (
	"marker/internal/diag"
	"marker/internal/hir"
	"marker/internal/lexer"
	"marker/internal/source"
	"marker/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// maxExpansionDepth bounds recursive macro splicing.
const maxExpansionDepth = 64

// Parser holds the state for one file. The token stream is a mutable
// slice: macro expansion replaces the invocation tokens in place.
type Parser struct {
	crate    *hir.Crate
	fs       *source.FileSet
	bag      *diag.Bag
	toks     []token.Token
	pos      int
	owner    hir.ItemID
	opts     Options
	lastSpan source.Span
}

// ParseFile lexes and parses one file into the crate, appending its
// top-level items to crate.Root.
func ParseFile(fs *source.FileSet, fileID source.FileID, crate *hir.Crate, bag *diag.Bag, opts Options) {
	file := fs.Get(fileID)
	if file == nil {
		return
	}
	toks := lexer.Tokenize(file, bag)
	p := Parser{
		crate: crate,
		fs:    fs,
		bag:   bag,
		toks:  toks,
		opts:  opts,
	}
	p.lastSpan = source.Span{File: fileID}
	crate.RootAttrs = append(crate.RootAttrs, p.parseInnerAttrs()...)
	crate.Root = append(crate.Root, p.parseItems(hir.NoItemID)...)
}

// parseItems runs the item loop until EOF or a closing brace at depth.
func (p *Parser) parseItems(owner hir.ItemID) []hir.ItemID {
	prevOwner := p.owner
	p.owner = owner
	defer func() { p.owner = prevOwner }()

	var items []hir.ItemID
	for !p.atEOF() && !p.at(token.RBrace) {
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			continue
		}
		if itemID.IsValid() {
			items = append(items, itemID)
		}
	}
	return items
}

// resyncTop skips to the next plausible item start or EOF.
func (p *Parser) resyncTop() {
	for !p.atEOF() {
		k := p.peek().Kind
		if k == token.Semicolon {
			p.advance()
			return
		}
		if k == token.RBrace || isItemStarter(k) {
			return
		}
		// skip balanced braces so a broken fn body does not spill items
		if k == token.LBrace {
			p.skipBalanced(token.LBrace, token.RBrace)
			continue
		}
		p.advance()
	}
}

func isItemStarter(k token.Kind) bool {
	switch k {
	case token.KwMod, token.KwExtern, token.KwUse, token.KwStatic, token.KwConst,
		token.KwFn, token.KwType, token.KwStruct, token.KwEnum, token.KwUnion,
		token.KwTrait, token.KwImpl, token.KwPub, token.KwUnsafe, token.KwAsync,
		token.Pound:
		return true
	default:
		return false
	}
}

// skipBalanced consumes from the opening delimiter to its match.
func (p *Parser) skipBalanced(open, close token.Kind) {
	if !p.at(open) {
		return
	}
	p.advance()
	depth := 1
	for depth > 0 && !p.atEOF() {
		switch p.peek().Kind {
		case open:
			depth++
		case close:
			depth--
		}
		p.advance()
	}
}
