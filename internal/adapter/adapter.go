// Package adapter bridges the driver and independently compiled lint
// crates: it loads plugin libraries, gates them on the lint API
// version, and fans the crate traversal out to every loaded pass.
package adapter

import (
	"fmt"
	"os"

	"marker/api"
	"marker/api/visitor"
)

// Adapter drives the loaded lint crates over one converted crate.
type Adapter struct {
	crates []loadedCrate
	// onICE is called when a lint crate panics. Overridable in tests;
	// the default writes a report to stderr.
	onICE func(crate string, recovered any)
}

// New loads every given lint crate through the loader. Loading stops at
// the first failure: a lint session with a missing or incompatible
// crate would silently check less than the user asked for.
func New(loader Loader, infos []LintCrateInfo) (*Adapter, error) {
	a := &Adapter{onICE: reportICE}
	for _, info := range infos {
		crate, err := loadLintCrate(loader, info)
		if err != nil {
			return nil, fmt.Errorf("lint crate %s: %w", info.Name, err)
		}
		a.crates = append(a.crates, crate)
	}
	return a, nil
}

// Infos collects the lint pass infos of every loaded crate, in load
// order. The driver uses them to populate its lint registry before the
// traversal.
func (a *Adapter) Infos() []api.LintPassInfo {
	infos := make([]api.LintPassInfo, 0, len(a.crates))
	for _, crate := range a.crates {
		var info api.LintPassInfo
		a.dispatch(crate, func(b api.LintCrateBindings) { info = b.Info() })
		infos = append(infos, info)
	}
	return infos
}

// ProcessCrate installs the context into every lint crate and walks the
// crate's items, calling each pass's check functions at every node.
// Bodies are always entered.
func (a *Adapter) ProcessCrate(ctx *api.MarkerContext, items []api.ItemKind) {
	for _, crate := range a.crates {
		a.dispatch(crate, func(b api.LintCrateBindings) { b.SetContext(ctx) })
	}
	d := &dispatcher{a: a, ctx: ctx}
	for _, item := range items {
		visitor.TraverseItem(ctx, d, item)
	}
	for _, crate := range a.crates {
		a.dispatch(crate, func(b api.LintCrateBindings) { b.SetContext(nil) })
	}
}

// dispatch runs one callback of one lint crate, converting a panic into
// an ICE report. The session continues: one broken lint crate should
// not take down the whole check run, and the report tells the user
// which crate to blame.
func (a *Adapter) dispatch(crate loadedCrate, call func(api.LintCrateBindings)) {
	defer func() {
		if r := recover(); r != nil {
			a.onICE(crate.info.Name, r)
		}
	}()
	call(crate.bindings)
}

func reportICE(crate string, recovered any) {
	fmt.Fprintf(os.Stderr, "error: internal error in lint crate %s: %v\n", crate, recovered)
	fmt.Fprintf(os.Stderr, "note: this is a bug in the lint crate, not in your code; please report it to the %s authors\n", crate)
}

// dispatcher fans every visited node out to all loaded passes in load
// order.
type dispatcher struct {
	a   *Adapter
	ctx *api.MarkerContext
}

func (d *dispatcher) Scope() visitor.VisitorScope { return visitor.AllBodies }

func (d *dispatcher) VisitItem(ctx *api.MarkerContext, item api.ItemKind) visitor.ControlFlow {
	for _, crate := range d.a.crates {
		d.a.dispatch(crate, func(b api.LintCrateBindings) { b.CheckItem(ctx, item) })
	}
	return visitor.Continue
}

func (d *dispatcher) VisitField(ctx *api.MarkerContext, field *api.Field) visitor.ControlFlow {
	for _, crate := range d.a.crates {
		d.a.dispatch(crate, func(b api.LintCrateBindings) { b.CheckField(ctx, field) })
	}
	return visitor.Continue
}

func (d *dispatcher) VisitVariant(ctx *api.MarkerContext, variant *api.EnumVariant) visitor.ControlFlow {
	for _, crate := range d.a.crates {
		d.a.dispatch(crate, func(b api.LintCrateBindings) { b.CheckVariant(ctx, variant) })
	}
	return visitor.Continue
}

func (d *dispatcher) VisitBody(ctx *api.MarkerContext, body *api.Body) visitor.ControlFlow {
	for _, crate := range d.a.crates {
		d.a.dispatch(crate, func(b api.LintCrateBindings) { b.CheckBody(ctx, body) })
	}
	return visitor.Continue
}

func (d *dispatcher) VisitStmt(ctx *api.MarkerContext, stmt api.StmtKind) visitor.ControlFlow {
	for _, crate := range d.a.crates {
		d.a.dispatch(crate, func(b api.LintCrateBindings) { b.CheckStmt(ctx, stmt) })
	}
	return visitor.Continue
}

func (d *dispatcher) VisitExpr(ctx *api.MarkerContext, expr api.ExprKind) visitor.ControlFlow {
	for _, crate := range d.a.crates {
		d.a.dispatch(crate, func(b api.LintCrateBindings) { b.CheckExpr(ctx, expr) })
	}
	return visitor.Continue
}
