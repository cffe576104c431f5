package source

import (
	"fmt"
	"os"
	"sync"

	"fortio.org/safecast"
	"github.com/zeebo/xxh3"
)

// FileSet owns the files of one run. It is safe for concurrent use: the
// directory driver loads files from several goroutines into one set.
type FileSet struct {
	mu    sync.RWMutex
	files []*File
	index map[string]FileID // path -> latest id
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		index: make(map[string]FileID),
	}
}

// Add stores content under path and returns a fresh FileID. Re-adding a path
// creates a new version; GetLatest follows the newest one.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	normalizedPath := normalizePath(path)

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()

	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}
	id := FileID(n)
	fileSet.files = append(fileSet.files, &File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    xxh3.Hash(content),
		Flags:   flags,
	})
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads path from disk, strips a UTF-8 BOM and folds CRLF to LF.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory buffer verbatim (no BOM/CRLF normalisation),
// so token texts tile exactly the bytes the caller passed in.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file with the given id.
func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return fileSet.files[id]
}

// Len returns the number of stored file versions.
func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

// GetLatest returns the newest id stored under path.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into start and end positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	return f.Position(span.Start), f.Position(span.End)
}

// Len returns the content length as a span offset.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// FullSpan covers the whole file.
func (f *File) FullSpan() Span {
	return Span{File: f.ID, Start: 0, End: f.Len()}
}

// Text returns the bytes under span as a string.
func (f *File) Text(span Span) string {
	return string(f.Content[span.Start:span.End])
}

// LineStart returns the offset of the first byte of line (1-based).
func (f *File) LineStart(line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if int(line-2) >= len(f.LineIdx) {
		return f.Len()
	}
	return f.LineIdx[line-2] + 1
}

// Position maps an offset to its line and layout column.
func (f *File) Position(off uint32) LineCol {
	line := lineOf(f.LineIdx, off)
	start := f.LineStart(line)
	return LineCol{Line: line, Col: layoutColumn(f.Content[start:min(off, f.Len())])}
}

// GetLine returns line lineNum (1-based) without its newline; "" when out of range.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || int(lineNum-1) > len(f.LineIdx) {
		return ""
	}
	start := f.LineStart(lineNum)
	end := f.Len()
	if int(lineNum-1) < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}
