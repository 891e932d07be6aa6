// Package visitor provides a depth-first traversal over the stable
// lint API's syntax tree. Nodes are visited parents before children, in
// source order.
package visitor

import "marker/api"

// ControlFlow steers a traversal from inside a visit callback.
type ControlFlow uint8

const (
	// Continue descends into the node's children.
	Continue ControlFlow = iota
	// Break stops the whole traversal.
	Break
)

// VisitorScope selects how far a traversal descends.
type VisitorScope uint8

const (
	// NoBodies visits the item structure but never enters function,
	// constant, or closure bodies.
	NoBodies VisitorScope = iota
	// AllBodies additionally descends into every nested body.
	AllBodies
)

// Visitor receives the nodes of a traversal. Each method can stop the
// traversal by returning Break.
type Visitor interface {
	Scope() VisitorScope
	VisitItem(ctx *api.MarkerContext, item api.ItemKind) ControlFlow
	VisitField(ctx *api.MarkerContext, field *api.Field) ControlFlow
	VisitVariant(ctx *api.MarkerContext, variant *api.EnumVariant) ControlFlow
	VisitBody(ctx *api.MarkerContext, body *api.Body) ControlFlow
	VisitStmt(ctx *api.MarkerContext, stmt api.StmtKind) ControlFlow
	VisitExpr(ctx *api.MarkerContext, expr api.ExprKind) ControlFlow
}

// DefaultVisitor is a visitor base for embedding: it continues
// everywhere and stays out of bodies. Override Scope to descend into
// bodies.
type DefaultVisitor struct{}

func (DefaultVisitor) Scope() VisitorScope { return NoBodies }
func (DefaultVisitor) VisitItem(*api.MarkerContext, api.ItemKind) ControlFlow {
	return Continue
}
func (DefaultVisitor) VisitField(*api.MarkerContext, *api.Field) ControlFlow {
	return Continue
}
func (DefaultVisitor) VisitVariant(*api.MarkerContext, *api.EnumVariant) ControlFlow {
	return Continue
}
func (DefaultVisitor) VisitBody(*api.MarkerContext, *api.Body) ControlFlow {
	return Continue
}
func (DefaultVisitor) VisitStmt(*api.MarkerContext, api.StmtKind) ControlFlow {
	return Continue
}
func (DefaultVisitor) VisitExpr(*api.MarkerContext, api.ExprKind) ControlFlow {
	return Continue
}

// TraverseItem visits the item and everything inside it.
func TraverseItem(ctx *api.MarkerContext, v Visitor, item api.ItemKind) ControlFlow {
	if v.VisitItem(ctx, item) == Break {
		return Break
	}
	switch it := item.(type) {
	case *api.ModItem:
		return traverseItems(ctx, v, it.Items())
	case *api.StaticItem:
		if id, ok := it.BodyID(); ok {
			return traverseBodyID(ctx, v, id)
		}
	case *api.ConstItem:
		if id, ok := it.BodyID(); ok {
			return traverseBodyID(ctx, v, id)
		}
	case *api.FnItem:
		if id, ok := it.BodyID(); ok {
			return traverseBodyID(ctx, v, id)
		}
	case *api.StructItem:
		return traverseFields(ctx, v, it.Fields())
	case *api.EnumItem:
		for _, variant := range it.Variants() {
			if TraverseVariant(ctx, v, variant) == Break {
				return Break
			}
		}
	case *api.UnionItem:
		return traverseFields(ctx, v, it.Fields())
	case *api.TraitItem:
		return traverseItems(ctx, v, it.Items())
	case *api.ImplItem:
		return traverseItems(ctx, v, it.Items())
	case *api.ExternBlockItem:
		return traverseItems(ctx, v, it.Items())
	}
	return Continue
}

// TraverseVariant visits the variant, its fields, and its discriminant
// body.
func TraverseVariant(ctx *api.MarkerContext, v Visitor, variant *api.EnumVariant) ControlFlow {
	if v.VisitVariant(ctx, variant) == Break {
		return Break
	}
	if traverseFields(ctx, v, variant.Fields()) == Break {
		return Break
	}
	if id, ok := variant.Discriminant(); ok {
		return traverseBodyID(ctx, v, id)
	}
	return Continue
}

// TraverseBody visits the body and its expression tree.
func TraverseBody(ctx *api.MarkerContext, v Visitor, body *api.Body) ControlFlow {
	if v.VisitBody(ctx, body) == Break {
		return Break
	}
	return TraverseExpr(ctx, v, body.Expr())
}

// TraverseStmt visits the statement and everything inside it.
func TraverseStmt(ctx *api.MarkerContext, v Visitor, stmt api.StmtKind) ControlFlow {
	if v.VisitStmt(ctx, stmt) == Break {
		return Break
	}
	switch s := stmt.(type) {
	case *api.ItemStmt:
		return TraverseItem(ctx, v, s.Item())
	case *api.LetStmt:
		if traversePatExprs(ctx, v, s.Pat()) == Break {
			return Break
		}
		if init, ok := s.Init(); ok {
			if TraverseExpr(ctx, v, init) == Break {
				return Break
			}
		}
		if els, ok := s.Else(); ok {
			return TraverseExpr(ctx, v, els)
		}
	case *api.ExprStmt:
		return TraverseExpr(ctx, v, s.Expr())
	}
	return Continue
}

// TraverseExpr visits the expression and everything inside it.
func TraverseExpr(ctx *api.MarkerContext, v Visitor, expr api.ExprKind) ControlFlow {
	if v.VisitExpr(ctx, expr) == Break {
		return Break
	}
	switch e := expr.(type) {
	case *api.BlockExpr:
		for _, stmt := range e.Stmts() {
			if TraverseStmt(ctx, v, stmt) == Break {
				return Break
			}
		}
		if tail, ok := e.TailExpr(); ok {
			return TraverseExpr(ctx, v, tail)
		}
	case *api.ClosureExpr:
		return traverseBodyID(ctx, v, e.BodyID())
	case *api.UnaryOpExpr:
		return TraverseExpr(ctx, v, e.Operand())
	case *api.RefExpr:
		return TraverseExpr(ctx, v, e.Operand())
	case *api.BinaryOpExpr:
		if TraverseExpr(ctx, v, e.Left()) == Break {
			return Break
		}
		return TraverseExpr(ctx, v, e.Right())
	case *api.QuestionMarkExpr:
		return TraverseExpr(ctx, v, e.Operand())
	case *api.AssignExpr:
		if traversePatExprs(ctx, v, e.Assignee()) == Break {
			return Break
		}
		return TraverseExpr(ctx, v, e.Value())
	case *api.AsExpr:
		return TraverseExpr(ctx, v, e.Operand())
	case *api.CallExpr:
		if TraverseExpr(ctx, v, e.Operand()) == Break {
			return Break
		}
		return traverseExprs(ctx, v, e.Args())
	case *api.MethodExpr:
		if TraverseExpr(ctx, v, e.Receiver()) == Break {
			return Break
		}
		return traverseExprs(ctx, v, e.Args())
	case *api.ArrayExpr:
		if traverseExprs(ctx, v, e.Elems()) == Break {
			return Break
		}
		if length, ok := e.Len(); ok {
			return TraverseExpr(ctx, v, length)
		}
	case *api.TupleExpr:
		return traverseExprs(ctx, v, e.Elems())
	case *api.CtorExpr:
		for i := range e.Fields() {
			if TraverseExpr(ctx, v, e.Fields()[i].Expr()) == Break {
				return Break
			}
		}
		if base, ok := e.Base(); ok {
			return TraverseExpr(ctx, v, base)
		}
	case *api.RangeExpr:
		if start, ok := e.Start(); ok {
			if TraverseExpr(ctx, v, start) == Break {
				return Break
			}
		}
		if end, ok := e.End(); ok {
			return TraverseExpr(ctx, v, end)
		}
	case *api.IndexExpr:
		if TraverseExpr(ctx, v, e.Operand()) == Break {
			return Break
		}
		return TraverseExpr(ctx, v, e.Index())
	case *api.FieldExpr:
		return TraverseExpr(ctx, v, e.Operand())
	case *api.IfExpr:
		if TraverseExpr(ctx, v, e.Cond()) == Break {
			return Break
		}
		if TraverseExpr(ctx, v, e.Then()) == Break {
			return Break
		}
		if els, ok := e.Else(); ok {
			return TraverseExpr(ctx, v, els)
		}
	case *api.LetExpr:
		if traversePatExprs(ctx, v, e.Pat()) == Break {
			return Break
		}
		return TraverseExpr(ctx, v, e.Scrutinee())
	case *api.MatchExpr:
		if TraverseExpr(ctx, v, e.Scrutinee()) == Break {
			return Break
		}
		arms := e.Arms()
		for i := range arms {
			if traversePatExprs(ctx, v, arms[i].Pat()) == Break {
				return Break
			}
			if guard, ok := arms[i].Guard(); ok {
				if TraverseExpr(ctx, v, guard) == Break {
					return Break
				}
			}
			if TraverseExpr(ctx, v, arms[i].Expr()) == Break {
				return Break
			}
		}
	case *api.BreakExpr:
		if inner, ok := e.Expr(); ok {
			return TraverseExpr(ctx, v, inner)
		}
	case *api.ReturnExpr:
		if inner, ok := e.Expr(); ok {
			return TraverseExpr(ctx, v, inner)
		}
	case *api.ForExpr:
		if traversePatExprs(ctx, v, e.Pat()) == Break {
			return Break
		}
		if TraverseExpr(ctx, v, e.Iterable()) == Break {
			return Break
		}
		return TraverseExpr(ctx, v, e.Block())
	case *api.LoopExpr:
		return TraverseExpr(ctx, v, e.Block())
	case *api.WhileExpr:
		if TraverseExpr(ctx, v, e.Cond()) == Break {
			return Break
		}
		return TraverseExpr(ctx, v, e.Block())
	}
	return Continue
}

func traverseItems(ctx *api.MarkerContext, v Visitor, items []api.ItemKind) ControlFlow {
	for _, item := range items {
		if TraverseItem(ctx, v, item) == Break {
			return Break
		}
	}
	return Continue
}

func traverseFields(ctx *api.MarkerContext, v Visitor, fields []*api.Field) ControlFlow {
	for _, field := range fields {
		if v.VisitField(ctx, field) == Break {
			return Break
		}
	}
	return Continue
}

func traverseExprs(ctx *api.MarkerContext, v Visitor, exprs []api.ExprKind) ControlFlow {
	for _, expr := range exprs {
		if TraverseExpr(ctx, v, expr) == Break {
			return Break
		}
	}
	return Continue
}

func traverseBodyID(ctx *api.MarkerContext, v Visitor, id api.BodyID) ControlFlow {
	if v.Scope() != AllBodies {
		return Continue
	}
	return TraverseBody(ctx, v, ctx.AST().Body(id))
}

// traversePatExprs walks the expressions embedded in a pattern:
// literal patterns, range bounds, and places.
func traversePatExprs(ctx *api.MarkerContext, v Visitor, pat api.PatKind) ControlFlow {
	switch p := pat.(type) {
	case *api.IdentPat:
		if sub, ok := p.Sub(); ok {
			return traversePatExprs(ctx, v, sub)
		}
	case *api.RefPat:
		return traversePatExprs(ctx, v, p.Inner())
	case *api.StructPat:
		fields := p.Fields()
		for i := range fields {
			if traversePatExprs(ctx, v, fields[i].Pat()) == Break {
				return Break
			}
		}
	case *api.TuplePat:
		return traversePats(ctx, v, p.Elems())
	case *api.SlicePat:
		return traversePats(ctx, v, p.Elems())
	case *api.OrPat:
		return traversePats(ctx, v, p.Pats())
	case *api.PlacePat:
		return TraverseExpr(ctx, v, p.Place())
	case *api.LitPat:
		return TraverseExpr(ctx, v, p.Lit())
	case *api.RangePat:
		if start, ok := p.Start(); ok {
			if TraverseExpr(ctx, v, start) == Break {
				return Break
			}
		}
		if end, ok := p.End(); ok {
			return TraverseExpr(ctx, v, end)
		}
	}
	return Continue
}

func traversePats(ctx *api.MarkerContext, v Visitor, pats []api.PatKind) ControlFlow {
	for _, pat := range pats {
		if traversePatExprs(ctx, v, pat) == Break {
			return Break
		}
	}
	return Continue
}
