package sema

import (
	"fmt"

	"fortio.org/safecast"

	"marker/internal/hir"
	"marker/internal/source"
)

// Builtins stores TyIDs for types the checker hands out constantly.
type Builtins struct {
	Error    TyID
	Unit     TyID
	Bool     TyID
	Char     TyID
	Str      TyID
	Never    TyID
	Unstable TyID
	I32      TyID
	I64      TyID
	U8       TyID
	U32      TyID
	Usize    TyID
	F64      TyID
}

// AdtInfo stores the definition and generic arguments of an ADT type.
type AdtInfo struct {
	Item hir.ItemID
	Args []TyID
}

// TupleInfo stores the element types of a tuple type.
type TupleInfo struct {
	Elems []TyID
}

// FnSigInfo stores a function signature. Item is set for fn-def types
// and zero for bare fn pointers.
type FnSigInfo struct {
	Item   hir.ItemID
	Params []TyID
	Ret    TyID
}

// ClosureInfo stores the defining body and inferred signature.
type ClosureInfo struct {
	Body   hir.BodyID
	Params []TyID
	Ret    TyID
}

// ParamInfo identifies a generic type parameter by declaration site.
type ParamInfo struct {
	Owner hir.ItemID
	Index uint32
	Name  source.SymbolID
}

// AliasInfo stores a type alias and its resolved target.
type AliasInfo struct {
	Item   hir.ItemID
	Target TyID
}

// BoundsInfo stores the trait items of a dyn/impl bound list.
type BoundsInfo struct {
	Traits []hir.ItemID
}

// Interner provides stable TyIDs by hashing structural descriptors.
// Nominal and variable-length kinds are never merged structurally: each
// Register* call on them allocates a fresh payload slot, so identity
// comparison works through the slot contents, not the TyID.
type Interner struct {
	types    []Ty
	index    map[tyKey]TyID
	builtins Builtins

	adts     []AdtInfo
	tuples   []TupleInfo
	sigs     []FnSigInfo
	closures []ClosureInfo
	params   []ParamInfo
	aliases  []AliasInfo
	bounds   []BoundsInfo
}

// NewInterner constructs an interner seeded with the builtin primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[tyKey]TyID, 64),
	}
	in.builtins.Error = in.internRaw(Ty{Kind: TyError})
	in.builtins.Unit = in.RegisterTuple(nil)
	in.builtins.Bool = in.Intern(Ty{Kind: TyBool})
	in.builtins.Char = in.Intern(Ty{Kind: TyChar})
	in.builtins.Str = in.Intern(Ty{Kind: TyStr})
	in.builtins.Never = in.Intern(Ty{Kind: TyNever})
	in.builtins.Unstable = in.Intern(Ty{Kind: TyUnstable})
	in.builtins.I32 = in.Intern(MakeInt(Width32))
	in.builtins.I64 = in.Intern(MakeInt(Width64))
	in.builtins.U8 = in.Intern(MakeUint(Width8))
	in.builtins.U32 = in.Intern(MakeUint(Width32))
	in.builtins.Usize = in.Intern(MakeUint(WidthSize))
	in.builtins.F64 = in.Intern(MakeFloat(Width64))
	return in
}

// Builtins returns the seeded primitive TyIDs.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the descriptor has a stable TyID. Only payload-free
// descriptors are deduplicated.
func (in *Interner) Intern(t Ty) TyID {
	key := tyKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Ty) TyID {
	n, err := safecast.Conv[uint32](len(in.types) + 1)
	if err != nil {
		panic(fmt.Errorf("sema: type count overflow: %w", err))
	}
	id := TyID(n)
	in.types = append(in.types, t)
	in.index[tyKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TyID.
func (in *Interner) Lookup(id TyID) (Ty, bool) {
	if id == NoTyID || int(id) > len(in.types) {
		return Ty{}, false
	}
	return in.types[id-1], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TyID) Ty {
	t, ok := in.Lookup(id)
	if !ok {
		panic("sema: invalid TyID")
	}
	return t
}

// RegisterAdt creates an ADT type for the definition with the given
// generic arguments.
func (in *Interner) RegisterAdt(item hir.ItemID, args []TyID) TyID {
	for slot, a := range in.adts {
		if a.Item == item && equalTyIDs(a.Args, args) {
			return in.Intern(Ty{Kind: TyAdt, Payload: uint32(slot)})
		}
	}
	slot := in.slot(len(in.adts))
	in.adts = append(in.adts, AdtInfo{Item: item, Args: cloneTyIDs(args)})
	return in.internRaw(Ty{Kind: TyAdt, Payload: slot})
}

// AdtInfo returns the definition info for an ADT TyID.
func (in *Interner) AdtInfo(id TyID) (*AdtInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != TyAdt || int(t.Payload) >= len(in.adts) {
		return nil, false
	}
	return &in.adts[t.Payload], true
}

// RegisterTuple creates a tuple type with the given elements. The empty
// tuple is canonical: every request returns the builtin unit.
func (in *Interner) RegisterTuple(elems []TyID) TyID {
	if len(elems) == 0 && in.builtins.Unit != NoTyID {
		return in.builtins.Unit
	}
	slot := in.slot(len(in.tuples))
	in.tuples = append(in.tuples, TupleInfo{Elems: cloneTyIDs(elems)})
	return in.internRaw(Ty{Kind: TyTuple, Payload: slot})
}

// TupleInfo returns the element list for a tuple TyID.
func (in *Interner) TupleInfo(id TyID) (*TupleInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != TyTuple || int(t.Payload) >= len(in.tuples) {
		return nil, false
	}
	return &in.tuples[t.Payload], true
}

// RegisterFnDef creates the zero-sized fn-def type of a function item.
func (in *Interner) RegisterFnDef(item hir.ItemID, params []TyID, ret TyID) TyID {
	slot := in.slot(len(in.sigs))
	in.sigs = append(in.sigs, FnSigInfo{Item: item, Params: cloneTyIDs(params), Ret: ret})
	return in.internRaw(Ty{Kind: TyFnDef, Payload: slot})
}

// RegisterFnPtr creates a bare fn pointer type.
func (in *Interner) RegisterFnPtr(params []TyID, ret TyID) TyID {
	slot := in.slot(len(in.sigs))
	in.sigs = append(in.sigs, FnSigInfo{Params: cloneTyIDs(params), Ret: ret})
	return in.internRaw(Ty{Kind: TyFnPtr, Payload: slot})
}

// FnSig returns the signature for a fn-def or fn-pointer TyID.
func (in *Interner) FnSig(id TyID) (*FnSigInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || (t.Kind != TyFnDef && t.Kind != TyFnPtr) || int(t.Payload) >= len(in.sigs) {
		return nil, false
	}
	return &in.sigs[t.Payload], true
}

// RegisterClosure creates the unique type of one closure expression.
func (in *Interner) RegisterClosure(body hir.BodyID, params []TyID, ret TyID) TyID {
	slot := in.slot(len(in.closures))
	in.closures = append(in.closures, ClosureInfo{Body: body, Params: cloneTyIDs(params), Ret: ret})
	return in.internRaw(Ty{Kind: TyClosure, Payload: slot})
}

// ClosureInfo returns the info for a closure TyID.
func (in *Interner) ClosureInfo(id TyID) (*ClosureInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != TyClosure || int(t.Payload) >= len(in.closures) {
		return nil, false
	}
	return &in.closures[t.Payload], true
}

// RegisterParam creates the type of a generic parameter in scope.
func (in *Interner) RegisterParam(owner hir.ItemID, index uint32, name source.SymbolID) TyID {
	for slot, p := range in.params {
		if p.Owner == owner && p.Index == index {
			return in.Intern(Ty{Kind: TyParam, Payload: uint32(slot)})
		}
	}
	slot := in.slot(len(in.params))
	in.params = append(in.params, ParamInfo{Owner: owner, Index: index, Name: name})
	return in.internRaw(Ty{Kind: TyParam, Payload: slot})
}

// ParamInfo returns the declaration info for a generic-param TyID.
func (in *Interner) ParamInfo(id TyID) (*ParamInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != TyParam || int(t.Payload) >= len(in.params) {
		return nil, false
	}
	return &in.params[t.Payload], true
}

// RegisterAlias creates an alias type pointing at its resolved target.
func (in *Interner) RegisterAlias(item hir.ItemID, target TyID) TyID {
	slot := in.slot(len(in.aliases))
	in.aliases = append(in.aliases, AliasInfo{Item: item, Target: target})
	return in.internRaw(Ty{Kind: TyAlias, Payload: slot})
}

// AliasInfo returns the info for an alias TyID.
func (in *Interner) AliasInfo(id TyID) (*AliasInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != TyAlias || int(t.Payload) >= len(in.aliases) {
		return nil, false
	}
	return &in.aliases[t.Payload], true
}

// RegisterTraitObj creates a dyn-trait type over the given trait items.
func (in *Interner) RegisterTraitObj(traits []hir.ItemID) TyID {
	slot := in.slot(len(in.bounds))
	in.bounds = append(in.bounds, BoundsInfo{Traits: append([]hir.ItemID(nil), traits...)})
	return in.internRaw(Ty{Kind: TyTraitObj, Payload: slot})
}

// BoundsInfo returns the trait list for a trait-object TyID.
func (in *Interner) BoundsInfo(id TyID) (*BoundsInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != TyTraitObj || int(t.Payload) >= len(in.bounds) {
		return nil, false
	}
	return &in.bounds[t.Payload], true
}

// Peel resolves alias chains to the underlying type.
func (in *Interner) Peel(id TyID) TyID {
	for {
		info, ok := in.AliasInfo(id)
		if !ok || !isValidTy(info.Target) {
			return id
		}
		id = info.Target
	}
}

func isValidTy(id TyID) bool {
	return id != NoTyID
}

func (in *Interner) slot(n int) uint32 {
	slot, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("sema: payload slot overflow: %w", err))
	}
	return slot
}

func equalTyIDs(a, b []TyID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneTyIDs(ids []TyID) []TyID {
	if len(ids) == 0 {
		return nil
	}
	return append([]TyID(nil), ids...)
}

type tyKey Ty
