package source

import (
	"testing"
)

func TestFileSet_Resolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.rs", []byte("fn main() {\n    let x = 1;\n}\n"))

	tests := []struct {
		name      string
		span      Span
		wantStart LineCol
		wantEnd   LineCol
	}{
		{
			name:      "first line start",
			span:      Span{File: id, Start: 0, End: 2},
			wantStart: LineCol{Line: 1, Col: 1},
			wantEnd:   LineCol{Line: 1, Col: 3},
		},
		{
			name:      "second line binding",
			span:      Span{File: id, Start: 16, End: 21},
			wantStart: LineCol{Line: 2, Col: 5},
			wantEnd:   LineCol{Line: 2, Col: 10},
		},
		{
			name:      "closing brace",
			span:      Span{File: id, Start: 27, End: 28},
			wantStart: LineCol{Line: 3, Col: 1},
			wantEnd:   LineCol{Line: 3, Col: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := fs.Resolve(tt.span)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Resolve() = %v..%v, want %v..%v", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestFileSet_Snippet(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.rs", []byte("let x = 1 + 2;"))

	got, ok := fs.Snippet(Span{File: id, Start: 8, End: 13})
	if !ok || got != "1 + 2" {
		t.Errorf("Snippet() = %q, %v; want %q, true", got, ok, "1 + 2")
	}

	if _, ok := fs.Snippet(Span{File: id, Start: 8, End: 100}); ok {
		t.Error("Snippet() out of bounds must report ok=false")
	}
}

func TestFileSet_GetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("a/./b.rs", []byte("struct S;"))

	f, ok := fs.GetByPath("a/b.rs")
	if !ok {
		t.Fatal("GetByPath did not find normalized path")
	}
	if string(f.Content) != "struct S;" {
		t.Errorf("unexpected content %q", f.Content)
	}

	if _, ok := fs.GetByPath("missing.rs"); ok {
		t.Error("GetByPath must miss for unknown paths")
	}
}

func TestFile_GetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.rs", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
