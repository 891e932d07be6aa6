package testkit

import (
	"fmt"
	"strings"

	"marker/api"
)

// RecordingPass logs every check call it receives, in order, as
// "kind:TypeName" strings (items additionally carry their name, e.g.
// "item:FnItem(foo)"). It keeps the visited item references so tests
// can compare node identity across passes.
type RecordingPass struct {
	api.DefaultLintPass
	Lints  []*api.Lint
	Events []string
	Items  []api.ItemKind
}

func (p *RecordingPass) Info() api.LintPassInfo {
	return api.LintPassInfo{Lints: p.Lints}
}

func (p *RecordingPass) CheckItem(ctx *api.MarkerContext, item api.ItemKind) {
	label := kindOf(item)
	if ident, ok := item.Ident(); ok {
		label = fmt.Sprintf("%s(%s)", label, ident.Name())
	}
	p.Events = append(p.Events, "item:"+label)
	p.Items = append(p.Items, item)
}

func (p *RecordingPass) CheckField(ctx *api.MarkerContext, field *api.Field) {
	p.Events = append(p.Events, "field:"+field.Ident().Name())
}

func (p *RecordingPass) CheckVariant(ctx *api.MarkerContext, variant *api.EnumVariant) {
	p.Events = append(p.Events, "variant:"+variant.Ident().Name())
}

func (p *RecordingPass) CheckBody(ctx *api.MarkerContext, body *api.Body) {
	p.Events = append(p.Events, "body")
}

func (p *RecordingPass) CheckStmt(ctx *api.MarkerContext, stmt api.StmtKind) {
	p.Events = append(p.Events, "stmt:"+kindOf(stmt))
}

func (p *RecordingPass) CheckExpr(ctx *api.MarkerContext, expr api.ExprKind) {
	p.Events = append(p.Events, "expr:"+kindOf(expr))
}

// Count returns how many recorded events carry the given prefix.
func (p *RecordingPass) Count(prefix string) int {
	n := 0
	for _, ev := range p.Events {
		if strings.HasPrefix(ev, prefix) {
			n++
		}
	}
	return n
}

func kindOf(node any) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", node), "*api.")
}

// HookPass forwards check calls to the hooks that are set and ignores
// the rest. The zero value is a valid pass declaring no lints.
type HookPass struct {
	api.DefaultLintPass
	Lints     []*api.Lint
	OnItem    func(ctx *api.MarkerContext, item api.ItemKind)
	OnField   func(ctx *api.MarkerContext, field *api.Field)
	OnVariant func(ctx *api.MarkerContext, variant *api.EnumVariant)
	OnBody    func(ctx *api.MarkerContext, body *api.Body)
	OnStmt    func(ctx *api.MarkerContext, stmt api.StmtKind)
	OnExpr    func(ctx *api.MarkerContext, expr api.ExprKind)
}

func (p *HookPass) Info() api.LintPassInfo {
	return api.LintPassInfo{Lints: p.Lints}
}

func (p *HookPass) CheckItem(ctx *api.MarkerContext, item api.ItemKind) {
	if p.OnItem != nil {
		p.OnItem(ctx, item)
	}
}

func (p *HookPass) CheckField(ctx *api.MarkerContext, field *api.Field) {
	if p.OnField != nil {
		p.OnField(ctx, field)
	}
}

func (p *HookPass) CheckVariant(ctx *api.MarkerContext, variant *api.EnumVariant) {
	if p.OnVariant != nil {
		p.OnVariant(ctx, variant)
	}
}

func (p *HookPass) CheckBody(ctx *api.MarkerContext, body *api.Body) {
	if p.OnBody != nil {
		p.OnBody(ctx, body)
	}
}

func (p *HookPass) CheckStmt(ctx *api.MarkerContext, stmt api.StmtKind) {
	if p.OnStmt != nil {
		p.OnStmt(ctx, stmt)
	}
}

func (p *HookPass) CheckExpr(ctx *api.MarkerContext, expr api.ExprKind) {
	if p.OnExpr != nil {
		p.OnExpr(ctx, expr)
	}
}
