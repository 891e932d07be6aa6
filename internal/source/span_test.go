package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected Span
	}{
		{
			name:     "disjoint spans in same file",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "other inside span",
			span:     Span{File: 1, Start: 10, End: 40},
			other:    Span{File: 1, Start: 15, End: 20},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "other extends left",
			span:     Span{File: 1, Start: 10, End: 40},
			other:    Span{File: 1, Start: 5, End: 12},
			expected: Span{File: 1, Start: 5, End: 40},
		},
		{
			name:     "different file keeps receiver",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "different expansion layer keeps receiver",
			span:     Span{File: 1, Start: 10, End: 20, Ctx: 1},
			other:    Span{File: 1, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20, Ctx: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.span.Cover(tt.other)
			if got != tt.expected {
				t.Errorf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected bool
	}{
		{
			name:     "strictly inside",
			span:     Span{File: 1, Start: 10, End: 40},
			other:    Span{File: 1, Start: 15, End: 20},
			expected: true,
		},
		{
			name:     "equal spans",
			span:     Span{File: 1, Start: 10, End: 40},
			other:    Span{File: 1, Start: 10, End: 40},
			expected: true,
		},
		{
			name:     "overlapping but not contained",
			span:     Span{File: 1, Start: 10, End: 40},
			other:    Span{File: 1, Start: 5, End: 20},
			expected: false,
		},
		{
			name:     "different file",
			span:     Span{File: 1, Start: 0, End: 100},
			other:    Span{File: 2, Start: 10, End: 20},
			expected: false,
		},
		{
			name:     "different expansion layer",
			span:     Span{File: 1, Start: 0, End: 100},
			other:    Span{File: 1, Start: 10, End: 20, Ctx: 3},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Contains(tt.other); got != tt.expected {
				t.Errorf("Contains() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_FromExpansion(t *testing.T) {
	root := Span{File: 1, Start: 0, End: 5}
	if root.FromExpansion() {
		t.Error("root span should not be from expansion")
	}
	expanded := root.InExpansion(2)
	if !expanded.FromExpansion() {
		t.Error("span tagged with an expansion layer must report FromExpansion")
	}
	if expanded.Start != root.Start || expanded.End != root.End {
		t.Error("InExpansion must keep byte positions")
	}
}

func TestExpnTable(t *testing.T) {
	table := NewExpnTable()
	if got := table.Get(NoExpn); got != nil {
		t.Fatalf("Get(NoExpn) = %v, want nil", got)
	}

	call := Span{File: 1, Start: 40, End: 44}
	id := table.Alloc(ExpnData{Parent: NoExpn, CallSite: call, Macro: 7})
	if id == NoExpn {
		t.Fatal("Alloc must never return NoExpn")
	}

	data := table.Get(id)
	if data == nil {
		t.Fatal("Get returned nil for a valid ID")
	}
	if data.CallSite != call || data.Macro != 7 || data.Parent != NoExpn {
		t.Errorf("unexpected expansion data: %+v", *data)
	}

	if got := table.Get(id + 100); got != nil {
		t.Errorf("Get(out of range) = %v, want nil", got)
	}
}
