package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// ExpnID identifies one macro expansion layer. Zero is the root layer
	// (code written directly in a source file).
	ExpnID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// NoExpn marks spans that come from a source file directly.
const NoExpn ExpnID = 0

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// ExpnData describes one macro expansion layer. CallSite is the span of the
// macro invocation that produced this layer; Parent is the layer the call
// site itself lives in (NoExpn for the root).
type ExpnData struct {
	Parent   ExpnID
	CallSite Span
	// Macro is the item that was expanded, encoded as the caller's item
	// index. The table does not interpret it.
	Macro uint32
}

// ExpnTable records every expansion performed during a session. IDs are
// 1-based, NoExpn is reserved for the root layer.
type ExpnTable struct {
	data []ExpnData
}

func NewExpnTable() *ExpnTable {
	return &ExpnTable{data: make([]ExpnData, 0, 8)}
}

// Alloc registers a new expansion layer and returns its ID.
func (t *ExpnTable) Alloc(d ExpnData) ExpnID {
	t.data = append(t.data, d)
	return ExpnID(len(t.data))
}

// Get returns the expansion data for id, or nil for NoExpn and unknown IDs.
func (t *ExpnTable) Get(id ExpnID) *ExpnData {
	if id == NoExpn || int(id) > len(t.data) {
		return nil
	}
	return &t.data[id-1]
}

func (t *ExpnTable) Len() int { return len(t.data) }
