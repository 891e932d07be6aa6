package api

// AstPathSegment is one `name<args>` step of a path.
type AstPathSegment struct {
	ident    Ident
	generics GenericArgs
}

func NewAstPathSegment(ident Ident, generics GenericArgs) AstPathSegment {
	return AstPathSegment{ident: ident, generics: generics}
}

func (s *AstPathSegment) Ident() *Ident         { return &s.ident }
func (s *AstPathSegment) Generics() *GenericArgs { return &s.generics }

// AstPath is a plain `a::b::c` path without qualified-self syntax.
type AstPath struct {
	segments []AstPathSegment
	span     SpanID
}

func NewAstPath(segments []AstPathSegment, span SpanID) AstPath {
	return AstPath{segments: segments, span: span}
}

func (p *AstPath) Segments() []AstPathSegment { return p.segments }
func (p *AstPath) Span() *Span                { return CurrentContext().Span(p.span) }

// AstPathTargetKind discriminates what a path resolved to.
type AstPathTargetKind uint8

const (
	// PathTargetUnresolved marks paths the host could not resolve, for
	// instance paths into crates that were not analyzed.
	PathTargetUnresolved AstPathTargetKind = iota
	// PathTargetItem resolves to an item definition.
	PathTargetItem
	// PathTargetVariant resolves to an enum variant.
	PathTargetVariant
	// PathTargetGeneric resolves to a generic parameter.
	PathTargetGeneric
	// PathTargetVar resolves to a local binding.
	PathTargetVar
	// PathTargetSelfTy resolves to the `Self` type of the enclosing
	// impl or trait.
	PathTargetSelfTy
)

// AstPathTarget is the resolution of a path. Exactly one accessor
// matching the kind returns ok=true.
type AstPathTarget struct {
	kind    AstPathTargetKind
	item    ItemID
	variant VariantID
	generic GenericID
	vid     VarID
}

// NewItemTarget resolves to the item def.
func NewItemTarget(item ItemID) AstPathTarget {
	return AstPathTarget{kind: PathTargetItem, item: item}
}

// NewVariantTarget resolves to the enum variant.
func NewVariantTarget(variant VariantID) AstPathTarget {
	return AstPathTarget{kind: PathTargetVariant, variant: variant}
}

// NewGenericTarget resolves to the generic parameter.
func NewGenericTarget(generic GenericID) AstPathTarget {
	return AstPathTarget{kind: PathTargetGeneric, generic: generic}
}

// NewVarTarget resolves to the local binding.
func NewVarTarget(vid VarID) AstPathTarget {
	return AstPathTarget{kind: PathTargetVar, vid: vid}
}

// NewSelfTyTarget resolves to the `Self` type of the given impl or
// trait item.
func NewSelfTyTarget(owner ItemID) AstPathTarget {
	return AstPathTarget{kind: PathTargetSelfTy, item: owner}
}

// NewUnresolvedTarget marks the path as unresolvable.
func NewUnresolvedTarget() AstPathTarget {
	return AstPathTarget{kind: PathTargetUnresolved}
}

func (t *AstPathTarget) Kind() AstPathTargetKind { return t.kind }

// Item returns the resolved item, ok=false unless the kind is
// PathTargetItem or PathTargetSelfTy.
func (t *AstPathTarget) Item() (ItemID, bool) {
	if t.kind == PathTargetItem || t.kind == PathTargetSelfTy {
		return t.item, true
	}
	return 0, false
}

// Variant returns the resolved variant, ok=false unless the kind is
// PathTargetVariant.
func (t *AstPathTarget) Variant() (VariantID, bool) {
	return t.variant, t.kind == PathTargetVariant
}

// Generic returns the resolved generic parameter, ok=false unless the
// kind is PathTargetGeneric.
func (t *AstPathTarget) Generic() (GenericID, bool) {
	return t.generic, t.kind == PathTargetGeneric
}

// Var returns the resolved local binding, ok=false unless the kind is
// PathTargetVar.
func (t *AstPathTarget) Var() (VarID, bool) {
	return t.vid, t.kind == PathTargetVar
}

// AstQPath is a possibly qualified path like `<Vec<u8> as Default>::default`
// or a plain `a::b::c`, together with its resolution.
type AstQPath struct {
	selfTy TyKind
	pathTy TyKind
	path   AstPath
	target AstPathTarget
}

func NewAstQPath(selfTy, pathTy TyKind, path AstPath, target AstPathTarget) AstQPath {
	return AstQPath{selfTy: selfTy, pathTy: pathTy, path: path, target: target}
}

// SelfTy returns the `<T as ..>` qualifying type, ok=false for plain
// paths.
func (q *AstQPath) SelfTy() (TyKind, bool) { return q.selfTy, q.selfTy != nil }

// PathTy returns the type the remaining segments are relative to, like
// the `Vec<u8>` in `Vec::<u8>::new`, ok=false when the whole path is
// written out.
func (q *AstQPath) PathTy() (TyKind, bool) { return q.pathTy, q.pathTy != nil }

// Path returns the written segments.
func (q *AstQPath) Path() *AstPath { return &q.path }

// Target returns what the path resolved to.
func (q *AstQPath) Target() *AstPathTarget { return &q.target }

// Span returns where the whole path is written.
func (q *AstQPath) Span() *Span { return q.path.Span() }
