package api

// Identifiers are opaque handles minted by the driver. They identify a
// node within one compiler session only: lint crates must never persist
// them across sessions or construct them from raw integers. The bit
// layout is owned by the driver.

// CrateID identifies a compilation unit.
type CrateID uint32

// ItemID identifies a top-level or associated item.
type ItemID uint64

// CrateRootID is the ItemID standing in for the crate root, used as the
// scope of `pub(crate)` visibilities and as the enclosing module of
// top-level items. The crate root is not an item: looking it up through
// the AST map yields nothing.
const CrateRootID ItemID = 0

// VariantID identifies an enum variant.
type VariantID uint64

// FieldID identifies a struct or union field.
type FieldID uint64

// TyDefID identifies a user-defined type.
type TyDefID uint64

// GenericID identifies a generic parameter.
type GenericID uint64

// BodyID identifies a function or constant body.
type BodyID uint64

// ExprID identifies an expression node.
type ExprID uint64

// StmtID identifies a statement node.
type StmtID uint64

// LetStmtID identifies a let statement.
type LetStmtID uint64

// VarID identifies a local binding. Or-patterns can give one binding
// several declaration sites; all of them share the VarID.
type VarID uint64

// SpanID is an internal span token, opaque to lint crates.
type SpanID uint64

// SpanSrcID identifies a span source (a file or an expansion).
type SpanSrcID uint32

// ExpnID identifies one macro expansion. NoExpnID marks spans that come
// straight from a source file.
type ExpnID uint64

// NoExpnID is the root of every expansion chain.
const NoExpnID ExpnID = 0

// SymbolID is an interning token resolvable through the context.
type SymbolID uint32

// MacroID identifies the macro behind an expansion.
type MacroID uint64
