package source

import (
	"slices"
)

// SymbolID identifies an interned string. The zero ID maps to "".
type SymbolID uint32

const NoSymbolID SymbolID = 0

type Interner struct {
	byID  []string            // index -> string (byID[0] = "" for NoSymbolID)
	index map[string]SymbolID // string -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]SymbolID{"": 0},
	}
}

// Intern stores the string and returns its ID. If the string was interned
// before, the existing ID is returned.
func (i *Interner) Intern(s string) SymbolID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// Own copy, so we do not pin the caller's buffer.
	cpy := string([]byte(s))
	id := SymbolID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes interns the bytes as a string and returns the ID.
func (i *Interner) InternBytes(b []byte) SymbolID {
	return i.Intern(string(b))
}

// Lookup returns the string for the ID.
// Returns "" and false for invalid IDs.
func (i *Interner) Lookup(id SymbolID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for the ID, panicking on invalid IDs.
func (i *Interner) MustLookup(id SymbolID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid symbol ID")
	}
	return s
}

// Has reports whether the ID is valid for this interner.
func (i *Interner) Has(id SymbolID) bool {
	return int(id) >= 0 && int(id) < len(i.byID)
}

// Len returns the number of interned strings, NoSymbolID included.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
