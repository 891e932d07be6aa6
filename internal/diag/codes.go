package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexBadNumber           Code = 1004
	LexUnterminatedChar    Code = 1005

	// Syntactic
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectSemicolon   Code = 2003
	SynExpectIdentifier  Code = 2004
	SynExpectType        Code = 2005
	SynExpectExpression  Code = 2006
	SynExpectPattern     Code = 2007
	SynExpectItem        Code = 2008
	SynBadVisibility     Code = 2009
	SynBadAttribute      Code = 2010
	SynMacroBadRule      Code = 2011
	SynMacroUnknown      Code = 2012

	// Semantic
	SemUnresolvedName Code = 3001
	SemDuplicateDef   Code = 3002
	SemTypeMismatch   Code = 3003
	SemUnknownField   Code = 3004
	SemUnknownMethod  Code = 3005
	SemNotCallable    Code = 3006
	SemArityMismatch  Code = 3007

	// Lint-pass diagnostics translated from the stable API.
	CodeLint Code = 4000

	// Internal driver failure surfaced to the user.
	CodeICE Code = 5000
)

// String returns the stable display form, e.g. "M2001".
func (c Code) String() string {
	return fmt.Sprintf("M%04d", uint16(c))
}
