package api

// PatKind is the closed union of pattern nodes.
type PatKind interface {
	// Span returns where the pattern is written.
	Span() *Span
	patKind()
}

// PatData holds the fields shared by every pattern node.
type PatData struct {
	Span SpanID
}

type patData struct {
	span SpanID
}

func (d *patData) Span() *Span { return CurrentContext().Span(d.span) }
func (d *patData) patKind()    {}

// IdentPat binds a name, like `x`, `mut x`, `ref x`, or `x @ sub`.
type IdentPat struct {
	patData
	ident Ident
	vid   VarID
	mut   Mutability
	byRef bool
	sub   PatKind
}

func NewIdentPat(data PatData, ident Ident, vid VarID, mut Mutability, byRef bool, sub PatKind) *IdentPat {
	return &IdentPat{patData: patData{span: data.Span}, ident: ident, vid: vid, mut: mut, byRef: byRef, sub: sub}
}

func (p *IdentPat) Ident() *Ident { return &p.ident }

// VarID identifies the introduced binding; every use of the variable
// resolves back to this ID.
func (p *IdentPat) VarID() VarID { return p.vid }

func (p *IdentPat) Mutability() Mutability { return p.mut }
func (p *IdentPat) IsRef() bool            { return p.byRef }

// Sub returns the `@`-bound inner pattern, ok=false when absent.
func (p *IdentPat) Sub() (PatKind, bool) { return p.sub, p.sub != nil }

// WildcardPat is `_`.
type WildcardPat struct {
	patData
}

func NewWildcardPat(data PatData) *WildcardPat {
	return &WildcardPat{patData: patData{span: data.Span}}
}

// RestPat is `..` inside tuple, slice, and struct patterns.
type RestPat struct {
	patData
}

func NewRestPat(data PatData) *RestPat {
	return &RestPat{patData: patData{span: data.Span}}
}

// RefPat is `&pat` or `&mut pat`.
type RefPat struct {
	patData
	mut   Mutability
	inner PatKind
}

func NewRefPat(data PatData, mut Mutability, inner PatKind) *RefPat {
	return &RefPat{patData: patData{span: data.Span}, mut: mut, inner: inner}
}

func (p *RefPat) Mutability() Mutability { return p.mut }
func (p *RefPat) Inner() PatKind         { return p.inner }

// StructPatField is one `name: pat` entry of a StructPat.
type StructPatField struct {
	ident Ident
	pat   PatKind
	span  SpanID
}

func NewStructPatField(ident Ident, pat PatKind, span SpanID) StructPatField {
	return StructPatField{ident: ident, pat: pat, span: span}
}

func (f *StructPatField) Ident() *Ident { return &f.ident }
func (f *StructPatField) Pat() PatKind  { return f.pat }
func (f *StructPatField) Span() *Span   { return CurrentContext().Span(f.span) }

// StructPat matches a struct or enum variant with named fields, like
// `Point { x, y: 0 }`. Tuple-struct patterns surface their elements as
// index-named fields.
type StructPat struct {
	patData
	path    AstQPath
	fields  []StructPatField
	hasRest bool
}

func NewStructPat(data PatData, path AstQPath, fields []StructPatField, hasRest bool) *StructPat {
	return &StructPat{patData: patData{span: data.Span}, path: path, fields: fields, hasRest: hasRest}
}

func (p *StructPat) Path() *AstQPath          { return &p.path }
func (p *StructPat) Fields() []StructPatField { return p.fields }

// HasRest reports whether the pattern ends with `..`.
func (p *StructPat) HasRest() bool { return p.hasRest }

// TuplePat is `(a, b, ..)`.
type TuplePat struct {
	patData
	elems []PatKind
}

func NewTuplePat(data PatData, elems []PatKind) *TuplePat {
	return &TuplePat{patData: patData{span: data.Span}, elems: elems}
}

func (p *TuplePat) Elems() []PatKind { return p.elems }

// SlicePat is `[a, b, ..]`.
type SlicePat struct {
	patData
	elems []PatKind
}

func NewSlicePat(data PatData, elems []PatKind) *SlicePat {
	return &SlicePat{patData: patData{span: data.Span}, elems: elems}
}

func (p *SlicePat) Elems() []PatKind { return p.elems }

// OrPat is `a | b | c`.
type OrPat struct {
	patData
	pats []PatKind
}

func NewOrPat(data PatData, pats []PatKind) *OrPat {
	return &OrPat{patData: patData{span: data.Span}, pats: pats}
}

func (p *OrPat) Pats() []PatKind { return p.pats }

// PlacePat is an assignment target used in pattern position, like the
// `x.field` in `x.field = 1`. The place is an expression.
type PlacePat struct {
	patData
	place ExprKind
}

func NewPlacePat(data PatData, place ExprKind) *PlacePat {
	return &PlacePat{patData: patData{span: data.Span}, place: place}
}

func (p *PlacePat) Place() ExprKind { return p.place }

// LitPat matches a literal value.
type LitPat struct {
	patData
	lit ExprKind
}

func NewLitPat(data PatData, lit ExprKind) *LitPat {
	return &LitPat{patData: patData{span: data.Span}, lit: lit}
}

// Lit returns the literal expression being matched.
func (p *LitPat) Lit() ExprKind { return p.lit }

// PathPat matches a path, like a unit variant or a constant.
type PathPat struct {
	patData
	path AstQPath
}

func NewPathPat(data PatData, path AstQPath) *PathPat {
	return &PathPat{patData: patData{span: data.Span}, path: path}
}

func (p *PathPat) Path() *AstQPath { return &p.path }

// RangePat is `a..b` or `a..=b` in pattern position.
type RangePat struct {
	patData
	start     ExprKind
	end       ExprKind
	inclusive bool
}

func NewRangePat(data PatData, start, end ExprKind, inclusive bool) *RangePat {
	return &RangePat{patData: patData{span: data.Span}, start: start, end: end, inclusive: inclusive}
}

// Start returns the lower bound, ok=false when absent.
func (p *RangePat) Start() (ExprKind, bool) { return p.start, p.start != nil }

// End returns the upper bound, ok=false when absent.
func (p *RangePat) End() (ExprKind, bool) { return p.end, p.end != nil }

func (p *RangePat) IsInclusive() bool { return p.inclusive }

// UnstablePat stands in for patterns the stable API cannot represent
// yet.
type UnstablePat struct {
	patData
}

func NewUnstablePat(data PatData) *UnstablePat {
	return &UnstablePat{patData: patData{span: data.Span}}
}
