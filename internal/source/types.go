package source

type (
	// FileID identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes how a file entered the set.
	FileFlags uint8
)

const (
	// FileVirtual marks a buffer that did not come from disk (stdin, tests, REPL).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// TabStop is the layout tab width from the Haskell report: a tab advances
// the column to the next multiple of eight.
const TabStop = 8

// File holds one compilation unit.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    uint64   // xxh3 of Content
	Flags   FileFlags
}

// LineCol is a human-readable position. Col is the layout column:
// tabs are expanded, every other rune counts as one column.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
