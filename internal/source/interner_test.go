package source

import (
	"testing"
)

func TestInterner_Intern(t *testing.T) {
	in := NewInterner()

	a := in.Intern("foo")
	b := in.Intern("bar")
	c := in.Intern("foo")

	if a == NoSymbolID || b == NoSymbolID {
		t.Fatal("fresh strings must not map to NoSymbolID")
	}
	if a != c {
		t.Errorf("same string interned twice: %d != %d", a, c)
	}
	if a == b {
		t.Errorf("different strings share an ID: %d", a)
	}

	if got := in.MustLookup(a); got != "foo" {
		t.Errorf("MustLookup(%d) = %q, want %q", a, got, "foo")
	}
	if got := in.MustLookup(NoSymbolID); got != "" {
		t.Errorf("MustLookup(NoSymbolID) = %q, want empty", got)
	}
}

func TestInterner_Lookup_Invalid(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(SymbolID(42)); ok {
		t.Error("Lookup of unknown ID must fail")
	}
}

func TestInterner_InternBytes(t *testing.T) {
	in := NewInterner()
	id := in.InternBytes([]byte("snippet"))
	if got := in.MustLookup(id); got != "snippet" {
		t.Errorf("InternBytes roundtrip = %q", got)
	}
	if in.Len() != 2 {
		t.Errorf("Len() = %d, want 2", in.Len())
	}
}
