package hir

import (
	"marker/internal/source"
)

// Body is the executable part of a fn, const, static, or closure. Owner
// is the item the code ultimately belongs to; closure bodies share the
// owner of the enclosing body.
type Body struct {
	Owner ItemID
	Value ExprID // block expression for fns, initializer otherwise
	Span  source.Span
}

type Bodies struct {
	Arena *Arena[Body]
}

func NewBodies(capHint uint) *Bodies {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Bodies{Arena: NewArena[Body](capHint)}
}

func (b *Bodies) New(owner ItemID, value ExprID, span source.Span) BodyID {
	return BodyID(b.Arena.Allocate(Body{Owner: owner, Value: value, Span: span}))
}

func (b *Bodies) Get(id BodyID) *Body {
	return b.Arena.Get(uint32(id))
}

// SetOwner rebinds a body allocated before its owning item existed.
func (b *Bodies) SetOwner(id BodyID, owner ItemID) {
	if body := b.Get(id); body != nil {
		body.Owner = owner
	}
}

func (b *Bodies) Len() uint32 {
	return b.Arena.Len()
}
