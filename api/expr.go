package api

// ExprKind is the closed union of expression nodes. Every expression
// carries an ID, a span, and a semantic type; downcast with a type
// switch over the *XyzExpr pointers.
type ExprKind interface {
	// ID returns the expression's ID within the current session.
	ID() ExprID
	// Span returns where the expression is written.
	Span() *Span
	// Ty returns the semantic type of the expression.
	Ty() SemTyKind
	exprKind()
}

// ExprData holds the fields shared by every expression node. The
// driver fills one per node when constructing the tree.
type ExprData struct {
	ID   ExprID
	Span SpanID
}

type exprData struct {
	id   ExprID
	span SpanID
}

func (d *exprData) ID() ExprID  { return d.id }
func (d *exprData) Span() *Span { return CurrentContext().Span(d.span) }
func (d *exprData) Ty() SemTyKind {
	return CurrentContext().ExprTy(d.id)
}
func (d *exprData) exprKind() {}

func newExprData(data ExprData) exprData {
	return exprData{id: data.ID, span: data.Span}
}

// IntLitExpr is an integer literal like `42` or `7u8`.
type IntLitExpr struct {
	exprData
	value  uint64
	suffix string
}

func NewIntLitExpr(data ExprData, value uint64, suffix string) *IntLitExpr {
	return &IntLitExpr{exprData: newExprData(data), value: value, suffix: suffix}
}

// Value returns the literal value. Negative literals are a negation
// UnaryOpExpr wrapping a positive IntLitExpr.
func (e *IntLitExpr) Value() uint64 { return e.value }

// Suffix returns the written type suffix, "" when none.
func (e *IntLitExpr) Suffix() string { return e.suffix }

// FloatLitExpr is a float literal like `1.5` or `2f32`.
type FloatLitExpr struct {
	exprData
	value  float64
	suffix string
}

func NewFloatLitExpr(data ExprData, value float64, suffix string) *FloatLitExpr {
	return &FloatLitExpr{exprData: newExprData(data), value: value, suffix: suffix}
}

func (e *FloatLitExpr) Value() float64 { return e.value }

// Suffix returns the written type suffix, "" when none.
func (e *FloatLitExpr) Suffix() string { return e.suffix }

// StrLitExpr is a string literal.
type StrLitExpr struct {
	exprData
	value SymbolID
}

func NewStrLitExpr(data ExprData, value SymbolID) *StrLitExpr {
	return &StrLitExpr{exprData: newExprData(data), value: value}
}

// Value returns the unescaped string contents.
func (e *StrLitExpr) Value() string { return CurrentContext().SymbolStr(e.value) }

// CharLitExpr is a character literal.
type CharLitExpr struct {
	exprData
	value rune
}

func NewCharLitExpr(data ExprData, value rune) *CharLitExpr {
	return &CharLitExpr{exprData: newExprData(data), value: value}
}

func (e *CharLitExpr) Value() rune { return e.value }

// BoolLitExpr is `true` or `false`.
type BoolLitExpr struct {
	exprData
	value bool
}

func NewBoolLitExpr(data ExprData, value bool) *BoolLitExpr {
	return &BoolLitExpr{exprData: newExprData(data), value: value}
}

func (e *BoolLitExpr) Value() bool { return e.value }

// BlockExpr is a `{ ... }` block with statements and an optional
// trailing expression that becomes the block's value.
type BlockExpr struct {
	exprData
	stmts  []StmtKind
	tail   ExprKind
	label  *Ident
	unsafe bool
}

func NewBlockExpr(data ExprData, stmts []StmtKind, tail ExprKind, label *Ident, isUnsafe bool) *BlockExpr {
	return &BlockExpr{exprData: newExprData(data), stmts: stmts, tail: tail, label: label, unsafe: isUnsafe}
}

func (e *BlockExpr) Stmts() []StmtKind { return e.stmts }

// TailExpr returns the value-producing trailing expression, ok=false
// when the block ends with a statement.
func (e *BlockExpr) TailExpr() (ExprKind, bool) { return e.tail, e.tail != nil }

// Label returns the block label, ok=false when unlabeled.
func (e *BlockExpr) Label() (*Ident, bool) { return e.label, e.label != nil }

func (e *BlockExpr) IsUnsafe() bool { return e.unsafe }

// ClosureExpr is a closure literal. The closure body is a body of its
// own, fetched through the AST map.
type ClosureExpr struct {
	exprData
	params []Parameter
	body   BodyID
}

func NewClosureExpr(data ExprData, params []Parameter, body BodyID) *ClosureExpr {
	return &ClosureExpr{exprData: newExprData(data), params: params, body: body}
}

func (e *ClosureExpr) Params() []Parameter { return e.params }
func (e *ClosureExpr) BodyID() BodyID      { return e.body }

// Body resolves the closure body through the current context.
func (e *ClosureExpr) Body() *Body { return CurrentContext().AST().Body(e.body) }

// UnaryOpKind is the operator of a UnaryOpExpr.
type UnaryOpKind uint8

const (
	UnaryNeg UnaryOpKind = iota
	UnaryNot
	UnaryDeref
)

func (k UnaryOpKind) String() string {
	switch k {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	case UnaryDeref:
		return "*"
	}
	return "?"
}

// UnaryOpExpr is `-x`, `!x`, or `*x`.
type UnaryOpExpr struct {
	exprData
	kind    UnaryOpKind
	operand ExprKind
}

func NewUnaryOpExpr(data ExprData, kind UnaryOpKind, operand ExprKind) *UnaryOpExpr {
	return &UnaryOpExpr{exprData: newExprData(data), kind: kind, operand: operand}
}

func (e *UnaryOpExpr) Kind() UnaryOpKind { return e.kind }
func (e *UnaryOpExpr) Operand() ExprKind { return e.operand }

// RefExpr is `&x` or `&mut x`.
type RefExpr struct {
	exprData
	mut     Mutability
	operand ExprKind
}

func NewRefExpr(data ExprData, mut Mutability, operand ExprKind) *RefExpr {
	return &RefExpr{exprData: newExprData(data), mut: mut, operand: operand}
}

func (e *RefExpr) Mutability() Mutability { return e.mut }
func (e *RefExpr) Operand() ExprKind      { return e.operand }

// BinaryOpKind is the operator of a BinaryOpExpr.
type BinaryOpKind uint8

const (
	BinAdd BinaryOpKind = iota
	BinSub
	BinMul
	BinDiv
	BinRem
	BinAnd
	BinOr
	BinBitXor
	BinBitAnd
	BinBitOr
	BinShl
	BinShr
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
)

func (k BinaryOpKind) String() string {
	switch k {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinRem:
		return "%"
	case BinAnd:
		return "&&"
	case BinOr:
		return "||"
	case BinBitXor:
		return "^"
	case BinBitAnd:
		return "&"
	case BinBitOr:
		return "|"
	case BinShl:
		return "<<"
	case BinShr:
		return ">>"
	case BinEq:
		return "=="
	case BinNe:
		return "!="
	case BinLt:
		return "<"
	case BinLe:
		return "<="
	case BinGt:
		return ">"
	case BinGe:
		return ">="
	}
	return "?"
}

// IsComparison reports whether the operator yields bool from two
// operands of the same type.
func (k BinaryOpKind) IsComparison() bool {
	return k >= BinEq && k <= BinGe
}

// IsLazy reports whether the operator short-circuits.
func (k BinaryOpKind) IsLazy() bool {
	return k == BinAnd || k == BinOr
}

// BinaryOpExpr is a binary operator application like `a + b`.
type BinaryOpExpr struct {
	exprData
	kind  BinaryOpKind
	left  ExprKind
	right ExprKind
}

func NewBinaryOpExpr(data ExprData, kind BinaryOpKind, left, right ExprKind) *BinaryOpExpr {
	return &BinaryOpExpr{exprData: newExprData(data), kind: kind, left: left, right: right}
}

func (e *BinaryOpExpr) Kind() BinaryOpKind { return e.kind }
func (e *BinaryOpExpr) Left() ExprKind     { return e.left }
func (e *BinaryOpExpr) Right() ExprKind    { return e.right }

// QuestionMarkExpr is the `expr?` error-propagation operator.
type QuestionMarkExpr struct {
	exprData
	operand ExprKind
}

func NewQuestionMarkExpr(data ExprData, operand ExprKind) *QuestionMarkExpr {
	return &QuestionMarkExpr{exprData: newExprData(data), operand: operand}
}

func (e *QuestionMarkExpr) Operand() ExprKind { return e.operand }

// AssignExpr is `place = value` or a compound assignment like
// `place += value`. The assignee is expressed as a place pattern so
// that destructuring assignments share a representation with bindings.
type AssignExpr struct {
	exprData
	assignee PatKind
	value    ExprKind
	op       BinaryOpKind
	hasOp    bool
}

func NewAssignExpr(data ExprData, assignee PatKind, value ExprKind, op BinaryOpKind, hasOp bool) *AssignExpr {
	return &AssignExpr{exprData: newExprData(data), assignee: assignee, value: value, op: op, hasOp: hasOp}
}

func (e *AssignExpr) Assignee() PatKind { return e.assignee }
func (e *AssignExpr) Value() ExprKind   { return e.value }

// Op returns the compound operator, ok=false for plain `=`.
func (e *AssignExpr) Op() (BinaryOpKind, bool) { return e.op, e.hasOp }

// AsExpr is an `expr as ty` cast.
type AsExpr struct {
	exprData
	operand ExprKind
	target  TyKind
}

func NewAsExpr(data ExprData, operand ExprKind, target TyKind) *AsExpr {
	return &AsExpr{exprData: newExprData(data), operand: operand, target: target}
}

func (e *AsExpr) Operand() ExprKind { return e.operand }
func (e *AsExpr) Target() TyKind    { return e.target }

// PathExpr is a path used in expression position, like a local, a
// constant, a unit variant, or a function reference.
type PathExpr struct {
	exprData
	path AstQPath
}

func NewPathExpr(data ExprData, path AstQPath) *PathExpr {
	return &PathExpr{exprData: newExprData(data), path: path}
}

func (e *PathExpr) Path() *AstQPath { return &e.path }

// CallExpr is `operand(args...)`.
type CallExpr struct {
	exprData
	operand ExprKind
	args    []ExprKind
}

func NewCallExpr(data ExprData, operand ExprKind, args []ExprKind) *CallExpr {
	return &CallExpr{exprData: newExprData(data), operand: operand, args: args}
}

func (e *CallExpr) Operand() ExprKind { return e.operand }
func (e *CallExpr) Args() []ExprKind  { return e.args }

// MethodExpr is `receiver.method(args...)`.
type MethodExpr struct {
	exprData
	receiver ExprKind
	method   Ident
	generics GenericArgs
	args     []ExprKind
}

func NewMethodExpr(data ExprData, receiver ExprKind, method Ident, generics GenericArgs, args []ExprKind) *MethodExpr {
	return &MethodExpr{exprData: newExprData(data), receiver: receiver, method: method, generics: generics, args: args}
}

func (e *MethodExpr) Receiver() ExprKind     { return e.receiver }
func (e *MethodExpr) Method() *Ident         { return &e.method }
func (e *MethodExpr) Generics() *GenericArgs { return &e.generics }
func (e *MethodExpr) Args() []ExprKind       { return e.args }

// Target resolves the called function, ok=false when resolution is
// unavailable for this receiver.
func (e *MethodExpr) Target() (ItemID, bool) {
	return CurrentContext().ResolveMethodTarget(e.id)
}

// ArrayExpr is `[a, b, c]` or the repeat form `[elem; len]`.
type ArrayExpr struct {
	exprData
	elems []ExprKind
	len   ExprKind
}

func NewArrayExpr(data ExprData, elems []ExprKind, length ExprKind) *ArrayExpr {
	return &ArrayExpr{exprData: newExprData(data), elems: elems, len: length}
}

func (e *ArrayExpr) Elems() []ExprKind { return e.elems }

// Len returns the repeat count expression, ok=false for the list form.
func (e *ArrayExpr) Len() (ExprKind, bool) { return e.len, e.len != nil }

// TupleExpr is `(a, b, c)`.
type TupleExpr struct {
	exprData
	elems []ExprKind
}

func NewTupleExpr(data ExprData, elems []ExprKind) *TupleExpr {
	return &TupleExpr{exprData: newExprData(data), elems: elems}
}

func (e *TupleExpr) Elems() []ExprKind { return e.elems }

// CtorField is one `name: value` entry of a CtorExpr.
type CtorField struct {
	ident Ident
	expr  ExprKind
	span  SpanID
}

func NewCtorField(ident Ident, expr ExprKind, span SpanID) CtorField {
	return CtorField{ident: ident, expr: expr, span: span}
}

func (f *CtorField) Ident() *Ident   { return &f.ident }
func (f *CtorField) Expr() ExprKind  { return f.expr }
func (f *CtorField) Span() *Span     { return CurrentContext().Span(f.span) }

// CtorExpr constructs a struct, union, or enum variant value, like
// `Point { x: 1, y: 2 }` or `Some(3)`. Tuple constructors surface
// their arguments as index-named fields.
type CtorExpr struct {
	exprData
	path   AstQPath
	fields []CtorField
	base   ExprKind
}

func NewCtorExpr(data ExprData, path AstQPath, fields []CtorField, base ExprKind) *CtorExpr {
	return &CtorExpr{exprData: newExprData(data), path: path, fields: fields, base: base}
}

func (e *CtorExpr) Path() *AstQPath    { return &e.path }
func (e *CtorExpr) Fields() []CtorField { return e.fields }

// Base returns the `..base` functional-update expression, ok=false
// when absent.
func (e *CtorExpr) Base() (ExprKind, bool) { return e.base, e.base != nil }

// RangeExpr is `a..b`, `a..=b`, `..b`, `a..`, or `..`.
type RangeExpr struct {
	exprData
	start     ExprKind
	end       ExprKind
	inclusive bool
}

func NewRangeExpr(data ExprData, start, end ExprKind, inclusive bool) *RangeExpr {
	return &RangeExpr{exprData: newExprData(data), start: start, end: end, inclusive: inclusive}
}

// Start returns the lower bound, ok=false when absent.
func (e *RangeExpr) Start() (ExprKind, bool) { return e.start, e.start != nil }

// End returns the upper bound, ok=false when absent.
func (e *RangeExpr) End() (ExprKind, bool) { return e.end, e.end != nil }

func (e *RangeExpr) IsInclusive() bool { return e.inclusive }

// IndexExpr is `operand[index]`.
type IndexExpr struct {
	exprData
	operand ExprKind
	index   ExprKind
}

func NewIndexExpr(data ExprData, operand, index ExprKind) *IndexExpr {
	return &IndexExpr{exprData: newExprData(data), operand: operand, index: index}
}

func (e *IndexExpr) Operand() ExprKind { return e.operand }
func (e *IndexExpr) Index() ExprKind   { return e.index }

// FieldExpr is `operand.field`. Tuple field accesses use the decimal
// index as the field name.
type FieldExpr struct {
	exprData
	operand ExprKind
	field   Ident
}

func NewFieldExpr(data ExprData, operand ExprKind, field Ident) *FieldExpr {
	return &FieldExpr{exprData: newExprData(data), operand: operand, field: field}
}

func (e *FieldExpr) Operand() ExprKind { return e.operand }
func (e *FieldExpr) Field() *Ident     { return &e.field }

// IfExpr is `if cond { .. } else { .. }`. An `else if` chain is
// represented as a nested IfExpr in the else position.
type IfExpr struct {
	exprData
	cond ExprKind
	then ExprKind
	els  ExprKind
}

func NewIfExpr(data ExprData, cond, then, els ExprKind) *IfExpr {
	return &IfExpr{exprData: newExprData(data), cond: cond, then: then, els: els}
}

func (e *IfExpr) Cond() ExprKind { return e.cond }
func (e *IfExpr) Then() ExprKind { return e.then }

// Else returns the else branch, ok=false when absent.
func (e *IfExpr) Else() (ExprKind, bool) { return e.els, e.els != nil }

// LetExpr is a `let pat = expr` condition inside `if let` and
// `while let`.
type LetExpr struct {
	exprData
	pat  PatKind
	expr ExprKind
}

func NewLetExpr(data ExprData, pat PatKind, expr ExprKind) *LetExpr {
	return &LetExpr{exprData: newExprData(data), pat: pat, expr: expr}
}

func (e *LetExpr) Pat() PatKind       { return e.pat }
func (e *LetExpr) Scrutinee() ExprKind { return e.expr }

// MatchArm is one `pat (if guard)? => expr` arm of a MatchExpr.
type MatchArm struct {
	pat   PatKind
	guard ExprKind
	expr  ExprKind
	span  SpanID
}

func NewMatchArm(pat PatKind, guard, expr ExprKind, span SpanID) MatchArm {
	return MatchArm{pat: pat, guard: guard, expr: expr, span: span}
}

func (a *MatchArm) Pat() PatKind { return a.pat }

// Guard returns the arm guard, ok=false when absent.
func (a *MatchArm) Guard() (ExprKind, bool) { return a.guard, a.guard != nil }

func (a *MatchArm) Expr() ExprKind { return a.expr }
func (a *MatchArm) Span() *Span    { return CurrentContext().Span(a.span) }

// MatchExpr is a `match scrutinee { arms }` expression.
type MatchExpr struct {
	exprData
	scrutinee ExprKind
	arms      []MatchArm
}

func NewMatchExpr(data ExprData, scrutinee ExprKind, arms []MatchArm) *MatchExpr {
	return &MatchExpr{exprData: newExprData(data), scrutinee: scrutinee, arms: arms}
}

func (e *MatchExpr) Scrutinee() ExprKind { return e.scrutinee }
func (e *MatchExpr) Arms() []MatchArm    { return e.arms }

// BreakExpr is `break`, optionally labeled and optionally carrying a
// value.
type BreakExpr struct {
	exprData
	label *Ident
	expr  ExprKind
}

func NewBreakExpr(data ExprData, label *Ident, expr ExprKind) *BreakExpr {
	return &BreakExpr{exprData: newExprData(data), label: label, expr: expr}
}

// Label returns the loop label to break, ok=false when absent.
func (e *BreakExpr) Label() (*Ident, bool) { return e.label, e.label != nil }

// Expr returns the break value, ok=false when absent.
func (e *BreakExpr) Expr() (ExprKind, bool) { return e.expr, e.expr != nil }

// ReturnExpr is `return`, optionally carrying a value.
type ReturnExpr struct {
	exprData
	expr ExprKind
}

func NewReturnExpr(data ExprData, expr ExprKind) *ReturnExpr {
	return &ReturnExpr{exprData: newExprData(data), expr: expr}
}

// Expr returns the returned value, ok=false when absent.
func (e *ReturnExpr) Expr() (ExprKind, bool) { return e.expr, e.expr != nil }

// ContinueExpr is `continue`, optionally labeled.
type ContinueExpr struct {
	exprData
	label *Ident
}

func NewContinueExpr(data ExprData, label *Ident) *ContinueExpr {
	return &ContinueExpr{exprData: newExprData(data), label: label}
}

// Label returns the loop label to continue, ok=false when absent.
func (e *ContinueExpr) Label() (*Ident, bool) { return e.label, e.label != nil }

// ForExpr is a `for pat in iterable { .. }` loop.
type ForExpr struct {
	exprData
	label    *Ident
	pat      PatKind
	iterable ExprKind
	block    ExprKind
}

func NewForExpr(data ExprData, label *Ident, pat PatKind, iterable, block ExprKind) *ForExpr {
	return &ForExpr{exprData: newExprData(data), label: label, pat: pat, iterable: iterable, block: block}
}

// Label returns the loop label, ok=false when absent.
func (e *ForExpr) Label() (*Ident, bool) { return e.label, e.label != nil }

func (e *ForExpr) Pat() PatKind       { return e.pat }
func (e *ForExpr) Iterable() ExprKind { return e.iterable }
func (e *ForExpr) Block() ExprKind    { return e.block }

// LoopExpr is an unconditional `loop { .. }`.
type LoopExpr struct {
	exprData
	label *Ident
	block ExprKind
}

func NewLoopExpr(data ExprData, label *Ident, block ExprKind) *LoopExpr {
	return &LoopExpr{exprData: newExprData(data), label: label, block: block}
}

// Label returns the loop label, ok=false when absent.
func (e *LoopExpr) Label() (*Ident, bool) { return e.label, e.label != nil }

func (e *LoopExpr) Block() ExprKind { return e.block }

// WhileExpr is a `while cond { .. }` loop. A `while let` carries a
// LetExpr condition.
type WhileExpr struct {
	exprData
	label *Ident
	cond  ExprKind
	block ExprKind
}

func NewWhileExpr(data ExprData, label *Ident, cond, block ExprKind) *WhileExpr {
	return &WhileExpr{exprData: newExprData(data), label: label, cond: cond, block: block}
}

// Label returns the loop label, ok=false when absent.
func (e *WhileExpr) Label() (*Ident, bool) { return e.label, e.label != nil }

func (e *WhileExpr) Cond() ExprKind  { return e.cond }
func (e *WhileExpr) Block() ExprKind { return e.block }

// UnstableExpr stands in for expressions the stable API cannot
// represent yet, such as async and generator bodies or inline
// assembly. Lint passes should treat its contents as unknown.
type UnstableExpr struct {
	exprData
}

func NewUnstableExpr(data ExprData) *UnstableExpr {
	return &UnstableExpr{exprData: newExprData(data)}
}
