package driver

import (
	"unsafe"

	"marker/api"
	"marker/internal/hir"
)

// API IDs pack the crate index into the upper half and the host's
// 32-bit arena index into the lower half. A session analyzes exactly
// one crate, so the crate half is constant; the packing still keeps the
// layout the API promises (opaque, unique per session).
const localCrateIndex = 1

// The packing relies on every host arena ID fitting the lower half.
var (
	_ [4]struct{} = [unsafe.Sizeof(hir.ItemID(0))]struct{}{}
	_ [4]struct{} = [unsafe.Sizeof(hir.ExprID(0))]struct{}{}
	_ [4]struct{} = [unsafe.Sizeof(hir.StmtID(0))]struct{}{}
	_ [4]struct{} = [unsafe.Sizeof(hir.PatID(0))]struct{}{}
	_ [4]struct{} = [unsafe.Sizeof(hir.BodyID(0))]struct{}{}
	_ [4]struct{} = [unsafe.Sizeof(hir.FieldID(0))]struct{}{}
	_ [4]struct{} = [unsafe.Sizeof(hir.VariantID(0))]struct{}{}
)

func pack(local uint32) uint64 {
	return uint64(localCrateIndex)<<32 | uint64(local)
}

func packItemID(id hir.ItemID) api.ItemID       { return api.ItemID(pack(uint32(id))) }
func packExprID(id hir.ExprID) api.ExprID       { return api.ExprID(pack(uint32(id))) }
func packStmtID(id hir.StmtID) api.StmtID       { return api.StmtID(pack(uint32(id))) }
func packBodyID(id hir.BodyID) api.BodyID       { return api.BodyID(pack(uint32(id))) }
func packFieldID(id hir.FieldID) api.FieldID    { return api.FieldID(pack(uint32(id))) }
func packVariantID(id hir.VariantID) api.VariantID {
	return api.VariantID(pack(uint32(id)))
}
func packVarID(id hir.PatID) api.VarID { return api.VarID(pack(uint32(id))) }

// Generic parameters have no arena of their own; they are identified by
// their declaring item and declaration index.
func packGenericID(owner hir.ItemID, index uint32) api.GenericID {
	return api.GenericID(uint64(uint32(owner))<<32 | uint64(index))
}

// Type definitions share the item ID space: a TyDefID is the packed ID
// of the defining struct/enum/union/trait/alias item.
func packTyDefID(id hir.ItemID) api.TyDefID { return api.TyDefID(pack(uint32(id))) }

func unpackLocal(id uint64) (uint32, bool) {
	if id>>32 != localCrateIndex {
		return 0, false
	}
	return uint32(id), true
}

func unpackItemID(id api.ItemID) (hir.ItemID, bool) {
	local, ok := unpackLocal(uint64(id))
	return hir.ItemID(local), ok
}

func unpackExprID(id api.ExprID) (hir.ExprID, bool) {
	local, ok := unpackLocal(uint64(id))
	return hir.ExprID(local), ok
}

func unpackStmtID(id api.StmtID) (hir.StmtID, bool) {
	local, ok := unpackLocal(uint64(id))
	return hir.StmtID(local), ok
}

func unpackBodyID(id api.BodyID) (hir.BodyID, bool) {
	local, ok := unpackLocal(uint64(id))
	return hir.BodyID(local), ok
}

func unpackFieldID(id api.FieldID) (hir.FieldID, bool) {
	local, ok := unpackLocal(uint64(id))
	return hir.FieldID(local), ok
}

func unpackVariantID(id api.VariantID) (hir.VariantID, bool) {
	local, ok := unpackLocal(uint64(id))
	return hir.VariantID(local), ok
}

func unpackTyDefID(id api.TyDefID) (hir.ItemID, bool) {
	local, ok := unpackLocal(uint64(id))
	return hir.ItemID(local), ok
}
