package api

// GenericArgKind is the closed union of arguments inside `<..>` at a
// use site.
type GenericArgKind interface {
	genericArgKind()
}

// LifetimeArg is a lifetime argument like `'a`.
type LifetimeArg struct {
	ident Ident
}

func NewLifetimeArg(ident Ident) *LifetimeArg { return &LifetimeArg{ident: ident} }

func (a *LifetimeArg) Ident() *Ident   { return &a.ident }
func (a *LifetimeArg) genericArgKind() {}

// TyArg is a type argument like the `u8` in `Vec<u8>`.
type TyArg struct {
	ty TyKind
}

func NewTyArg(ty TyKind) *TyArg { return &TyArg{ty: ty} }

func (a *TyArg) Ty() TyKind      { return a.ty }
func (a *TyArg) genericArgKind() {}

// ConstArg is a const argument like the `3` in `[u8; 3]::default()`.
type ConstArg struct {
	expr ExprKind
}

func NewConstArg(expr ExprKind) *ConstArg { return &ConstArg{expr: expr} }

func (a *ConstArg) Expr() ExprKind  { return a.expr }
func (a *ConstArg) genericArgKind() {}

// BindingArg is an associated-type binding like `Item = u8`.
type BindingArg struct {
	ident Ident
	ty    TyKind
}

func NewBindingArg(ident Ident, ty TyKind) *BindingArg {
	return &BindingArg{ident: ident, ty: ty}
}

func (a *BindingArg) Ident() *Ident   { return &a.ident }
func (a *BindingArg) Ty() TyKind      { return a.ty }
func (a *BindingArg) genericArgKind() {}

// GenericArgs is the argument list of one path segment.
type GenericArgs struct {
	args []GenericArgKind
	span SpanID
}

func NewGenericArgs(args []GenericArgKind, span SpanID) GenericArgs {
	return GenericArgs{args: args, span: span}
}

func (g *GenericArgs) Args() []GenericArgKind { return g.args }
func (g *GenericArgs) IsEmpty() bool          { return len(g.args) == 0 }

// Span returns where the arguments are written, ok=false when the
// list is empty and has no source location.
func (g *GenericArgs) Span() (*Span, bool) {
	if g.span == 0 {
		return nil, false
	}
	return CurrentContext().Span(g.span), true
}

// GenericParamKind is the closed union of parameters inside `<..>` at
// a definition site.
type GenericParamKind interface {
	// Span returns where the parameter is declared.
	Span() *Span
	genericParamKind()
}

// LifetimeParam declares a lifetime parameter.
type LifetimeParam struct {
	ident Ident
	span  SpanID
}

func NewLifetimeParam(ident Ident, span SpanID) *LifetimeParam {
	return &LifetimeParam{ident: ident, span: span}
}

func (p *LifetimeParam) Ident() *Ident     { return &p.ident }
func (p *LifetimeParam) Span() *Span       { return CurrentContext().Span(p.span) }
func (p *LifetimeParam) genericParamKind() {}

// TyParam declares a type parameter.
type TyParam struct {
	id    GenericID
	ident Ident
	span  SpanID
}

func NewTyParam(id GenericID, ident Ident, span SpanID) *TyParam {
	return &TyParam{id: id, ident: ident, span: span}
}

func (p *TyParam) ID() GenericID     { return p.id }
func (p *TyParam) Ident() *Ident     { return &p.ident }
func (p *TyParam) Span() *Span       { return CurrentContext().Span(p.span) }
func (p *TyParam) genericParamKind() {}

// ConstParam declares a const parameter.
type ConstParam struct {
	id    GenericID
	ident Ident
	ty    TyKind
	span  SpanID
}

func NewConstParam(id GenericID, ident Ident, ty TyKind, span SpanID) *ConstParam {
	return &ConstParam{id: id, ident: ident, ty: ty, span: span}
}

func (p *ConstParam) ID() GenericID     { return p.id }
func (p *ConstParam) Ident() *Ident     { return &p.ident }
func (p *ConstParam) Ty() TyKind        { return p.ty }
func (p *ConstParam) Span() *Span       { return CurrentContext().Span(p.span) }
func (p *ConstParam) genericParamKind() {}

// GenericParams is the parameter list of a definition.
type GenericParams struct {
	params []GenericParamKind
}

func NewGenericParams(params []GenericParamKind) GenericParams {
	return GenericParams{params: params}
}

func (g *GenericParams) Params() []GenericParamKind { return g.params }
func (g *GenericParams) IsEmpty() bool              { return len(g.params) == 0 }
