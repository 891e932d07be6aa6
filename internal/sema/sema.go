// Package sema resolves names and assigns semantic types to every
// expression of a parsed crate. It is deliberately lenient: paths and
// receivers that point outside the crate become an opaque unstable type
// instead of errors, while definitions the crate does own are checked
// for real (duplicate names, unknown fields and methods, call arity).
package sema

import (
	"marker/internal/diag"
	"marker/internal/hir"
)

// Results holds the per-body type-check output the driver queries.
type Results struct {
	ExprTys       map[hir.ExprID]TyID
	PatTys        map[hir.PatID]TyID
	Resolutions   map[hir.ExprID]Res
	MethodTargets map[hir.ExprID]hir.ItemID
}

func newResults() *Results {
	return &Results{
		ExprTys:       make(map[hir.ExprID]TyID),
		PatTys:        make(map[hir.PatID]TyID),
		Resolutions:   make(map[hir.ExprID]Res),
		MethodTargets: make(map[hir.ExprID]hir.ItemID),
	}
}

// Analysis is the output of Analyze: scopes, the type interner, and the
// type-check results for every body.
type Analysis struct {
	Crate *hir.Crate
	Types *Interner

	scopes      map[hir.ItemID]*modScope
	impls       []hir.ItemID
	uses        []pendingUse
	implsByAdt  map[hir.ItemID][]hir.ItemID
	traitOfImpl map[hir.ItemID]hir.ItemID
	selfOfImpl  map[hir.ItemID]hir.ItemID
	aliasTy     map[hir.ItemID]TyID
	itemTy      map[hir.ItemID]TyID
	fieldTy     map[hir.FieldID]TyID
	BodyResults map[hir.BodyID]*Results

	bag *diag.Bag
}

// Analyze runs name resolution and type checking over the crate.
func Analyze(crate *hir.Crate, bag *diag.Bag) *Analysis {
	a := &Analysis{
		Crate:       crate,
		Types:       NewInterner(),
		scopes:      make(map[hir.ItemID]*modScope),
		implsByAdt:  make(map[hir.ItemID][]hir.ItemID),
		traitOfImpl: make(map[hir.ItemID]hir.ItemID),
		selfOfImpl:  make(map[hir.ItemID]hir.ItemID),
		aliasTy:     make(map[hir.ItemID]TyID),
		itemTy:      make(map[hir.ItemID]TyID),
		fieldTy:     make(map[hir.FieldID]TyID),
		BodyResults: make(map[hir.BodyID]*Results),
		bag:         bag,
	}
	a.collect()
	a.checkCrate()
	return a
}

// ExprTy returns the semantic type of an expression within a body.
func (a *Analysis) ExprTy(body hir.BodyID, expr hir.ExprID) TyID {
	if r, ok := a.BodyResults[body]; ok {
		if ty, ok := r.ExprTys[expr]; ok {
			return ty
		}
	}
	return a.Types.Builtins().Unstable
}

// PatTy returns the semantic type bound to a pattern within a body.
func (a *Analysis) PatTy(body hir.BodyID, pat hir.PatID) TyID {
	if r, ok := a.BodyResults[body]; ok {
		if ty, ok := r.PatTys[pat]; ok {
			return ty
		}
	}
	return a.Types.Builtins().Unstable
}

// Resolution returns what a path expression resolved to.
func (a *Analysis) Resolution(body hir.BodyID, expr hir.ExprID) Res {
	if r, ok := a.BodyResults[body]; ok {
		return r.Resolutions[expr]
	}
	return Res{}
}

// MethodTarget returns the resolved callee of a method-call expression.
func (a *Analysis) MethodTarget(body hir.BodyID, expr hir.ExprID) (hir.ItemID, bool) {
	if r, ok := a.BodyResults[body]; ok {
		target, found := r.MethodTargets[expr]
		return target, found
	}
	return hir.NoItemID, false
}

// ItemTy returns the declared type of a value item: the fn-def type for
// functions, the annotated type for statics and consts, the self type
// for ADTs.
func (a *Analysis) ItemTy(item hir.ItemID) TyID {
	if ty, ok := a.itemTy[item]; ok {
		return ty
	}
	return a.Types.Builtins().Unstable
}

// FieldTy returns the declared type of a struct/enum/union field.
func (a *Analysis) FieldTy(field hir.FieldID) TyID {
	if ty, ok := a.fieldTy[field]; ok {
		return ty
	}
	return a.Types.Builtins().Unstable
}

// ImplsOf returns the impl blocks grouped under an ADT definition.
func (a *Analysis) ImplsOf(adt hir.ItemID) []hir.ItemID {
	return a.implsByAdt[adt]
}

// TraitOfImpl returns the implemented trait item, if the impl names one
// that resolved inside the crate.
func (a *Analysis) TraitOfImpl(impl hir.ItemID) (hir.ItemID, bool) {
	t, ok := a.traitOfImpl[impl]
	return t, ok
}
