package hir

type (
	// node identities
	ItemID uint32
	StmtID uint32
	ExprID uint32
	PatID  uint32
	TypeID uint32
	BodyID uint32
	// sub-entities
	PayloadID uint32
	FieldID   uint32
	VariantID uint32
	ParamID   uint32
	AttrID    uint32
	MacroID   uint32
)

const (
	NoItemID    ItemID    = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoPatID     PatID     = 0
	NoTypeID    TypeID    = 0
	NoBodyID    BodyID    = 0
	NoPayloadID PayloadID = 0
	NoFieldID   FieldID   = 0
	NoVariantID VariantID = 0
	NoParamID   ParamID   = 0
	NoAttrID    AttrID    = 0
	NoMacroID   MacroID   = 0
)

func (id ItemID) IsValid() bool    { return id != NoItemID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id PatID) IsValid() bool     { return id != NoPatID }
func (id TypeID) IsValid() bool    { return id != NoTypeID }
func (id BodyID) IsValid() bool    { return id != NoBodyID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
func (id FieldID) IsValid() bool   { return id != NoFieldID }
func (id VariantID) IsValid() bool { return id != NoVariantID }
func (id ParamID) IsValid() bool   { return id != NoParamID }
func (id AttrID) IsValid() bool    { return id != NoAttrID }
func (id MacroID) IsValid() bool   { return id != NoMacroID }
