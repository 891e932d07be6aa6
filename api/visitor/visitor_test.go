package visitor

import (
	"testing"

	"marker/api"
)

type recordingVisitor struct {
	DefaultVisitor
	scope   VisitorScope
	exprs   []api.ExprID
	stmts   []api.StmtID
	bodies  []api.BodyID
	breakAt api.ExprID
}

func (v *recordingVisitor) Scope() VisitorScope { return v.scope }

func (v *recordingVisitor) VisitExpr(ctx *api.MarkerContext, expr api.ExprKind) ControlFlow {
	v.exprs = append(v.exprs, expr.ID())
	if v.breakAt != 0 && expr.ID() == v.breakAt {
		return Break
	}
	return Continue
}

func (v *recordingVisitor) VisitStmt(ctx *api.MarkerContext, stmt api.StmtKind) ControlFlow {
	v.stmts = append(v.stmts, stmt.ID())
	return Continue
}

func (v *recordingVisitor) VisitBody(ctx *api.MarkerContext, body *api.Body) ControlFlow {
	v.bodies = append(v.bodies, body.ID())
	return Continue
}

func expr(id api.ExprID) api.ExprData { return api.ExprData{ID: id} }

// testCtx wires only the AST-map body lookup; the traversal needs
// nothing else.
func testCtx(bodies map[api.BodyID]*api.Body) *api.MarkerContext {
	astMap := api.NewAstMap(bodies, api.AstMapCallbacks{
		Body: func(data any, id api.BodyID) (*api.Body, bool) {
			b, ok := data.(map[api.BodyID]*api.Body)[id]
			return b, ok
		},
	})
	return api.NewMarkerContext(nil, api.Callbacks{}, astMap)
}

// buildTree returns `{ let a = 1 + 2; f(a) }` as a body expression.
func buildTree() api.ExprKind {
	sum := api.NewBinaryOpExpr(expr(3), api.BinAdd,
		api.NewIntLitExpr(expr(1), 1, ""),
		api.NewIntLitExpr(expr(2), 2, ""),
	)
	let := api.NewLetStmt(api.StmtData{ID: 1},
		api.NewIdentPat(api.PatData{}, api.Ident{}, 1, api.Immutable, false, nil),
		nil, sum, nil,
	)
	call := api.NewCallExpr(expr(6),
		api.NewPathExpr(expr(4), api.AstQPath{}),
		[]api.ExprKind{api.NewPathExpr(expr(5), api.AstQPath{})},
	)
	return api.NewBlockExpr(expr(7), []api.StmtKind{let}, call, nil, false)
}

func TestTraversalOrder(t *testing.T) {
	v := &recordingVisitor{}
	if TraverseExpr(testCtx(nil), v, buildTree()) != Continue {
		t.Fatal("traversal broke unexpectedly")
	}

	wantExprs := []api.ExprID{7, 3, 1, 2, 6, 4, 5}
	if len(v.exprs) != len(wantExprs) {
		t.Fatalf("exprs = %v, want %v", v.exprs, wantExprs)
	}
	for i, id := range wantExprs {
		if v.exprs[i] != id {
			t.Fatalf("exprs = %v, want %v", v.exprs, wantExprs)
		}
	}
	if len(v.stmts) != 1 || v.stmts[0] != 1 {
		t.Fatalf("stmts = %v", v.stmts)
	}
}

func TestBreakStopsTraversal(t *testing.T) {
	v := &recordingVisitor{breakAt: 3}
	if TraverseExpr(testCtx(nil), v, buildTree()) != Break {
		t.Fatal("break did not propagate")
	}
	// Nothing after the binary op may be visited.
	for _, id := range v.exprs {
		if id == 6 || id == 5 {
			t.Fatalf("visited %d after break, order %v", id, v.exprs)
		}
	}
}

func TestScopeControlsBodyDescent(t *testing.T) {
	inner := api.NewIntLitExpr(expr(10), 1, "")
	bodies := map[api.BodyID]*api.Body{
		1: api.NewBody(1, 0, inner),
	}
	closure := api.NewClosureExpr(expr(20), nil, 1)

	v := &recordingVisitor{scope: NoBodies}
	TraverseExpr(testCtx(bodies), v, closure)
	if len(v.bodies) != 0 {
		t.Fatalf("NoBodies entered a body: %v", v.bodies)
	}

	v = &recordingVisitor{scope: AllBodies}
	TraverseExpr(testCtx(bodies), v, closure)
	if len(v.bodies) != 1 || v.bodies[0] != 1 {
		t.Fatalf("bodies = %v", v.bodies)
	}
	if len(v.exprs) != 2 || v.exprs[1] != 10 {
		t.Fatalf("exprs = %v", v.exprs)
	}
}

func TestItemTraversalCoversFieldsAndVariants(t *testing.T) {
	fields := []*api.Field{
		api.NewField(1, api.Visibility{}, api.Ident{}, nil, 0),
		api.NewField(2, api.Visibility{}, api.Ident{}, nil, 0),
	}
	variant := api.NewEnumVariant(1, api.Ident{}, api.AdtNamed, fields, 0, 0)
	enum := api.NewEnumItem(api.ItemData{ID: 1}, api.GenericParams{}, []*api.EnumVariant{variant})
	mod := api.NewModItem(api.ItemData{ID: 2}, []api.ItemKind{enum})

	v := &countingVisitor{}
	if TraverseItem(testCtx(nil), v, mod) != Continue {
		t.Fatal("traversal broke unexpectedly")
	}
	if v.items != 2 {
		t.Fatalf("items = %d, want 2", v.items)
	}
	if v.variants != 1 {
		t.Fatalf("variants = %d, want 1", v.variants)
	}
	if v.fields != 2 {
		t.Fatalf("fields = %d, want 2", v.fields)
	}
}

type countingVisitor struct {
	DefaultVisitor
	items, variants, fields int
}

func (v *countingVisitor) VisitItem(ctx *api.MarkerContext, item api.ItemKind) ControlFlow {
	v.items++
	return Continue
}

func (v *countingVisitor) VisitVariant(ctx *api.MarkerContext, variant *api.EnumVariant) ControlFlow {
	v.variants++
	return Continue
}

func (v *countingVisitor) VisitField(ctx *api.MarkerContext, field *api.Field) ControlFlow {
	v.fields++
	return Continue
}
