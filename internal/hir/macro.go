package hir

import (
	"marker/internal/source"
	"marker/internal/token"
)

// MacroRule is one arm of a macro_rules definition. Only parameterless
// matchers are supported: the matcher is compared token-by-token against
// the invocation and the body is spliced verbatim.
type MacroRule struct {
	Matcher []token.Token
	Body    []token.Token
	Span    source.Span
}

type Macro struct {
	Name    source.SymbolID
	Rules   []MacroRule
	DefSpan source.Span
}

// MacroTable holds macro_rules definitions by declaration order. Later
// definitions shadow earlier ones with the same name, textual scoping.
type MacroTable struct {
	Arena  *Arena[Macro]
	byName map[source.SymbolID]MacroID
}

func NewMacroTable(capHint uint) *MacroTable {
	return &MacroTable{
		Arena:  NewArena[Macro](capHint),
		byName: make(map[source.SymbolID]MacroID),
	}
}

func (m *MacroTable) Define(def Macro) MacroID {
	id := MacroID(m.Arena.Allocate(def))
	m.byName[def.Name] = id
	return id
}

func (m *MacroTable) Get(id MacroID) *Macro {
	return m.Arena.Get(uint32(id))
}

func (m *MacroTable) Lookup(name source.SymbolID) (MacroID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

func (m *MacroTable) Len() uint32 {
	return m.Arena.Len()
}
