package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every input of one run. FileIDs are dense indices, so a
// Span resolves with a slice lookup. A FileSet is not safe for concurrent
// writes; readers may share it once loading is done.
type FileSet struct {
	files []File
}

func NewFileSet() *FileSet { return &FileSet{} }

// Add registers content as-is under path and returns its id. Adding the
// same path twice yields two independent files.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("source %q exceeds 4 GiB: %w", path, err))
	}
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("too many source files: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    cleanPath(path),
		Content: content,
		LineIdx: indexLines(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return id
}

// AddVirtual registers in-memory content, e.g. a test fixture.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Load reads path, strips a UTF-8 BOM, folds CRLF to LF and registers
// the result.
func (fs *FileSet) Load(path string) (FileID, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- user-supplied input file
	if err != nil {
		return 0, err
	}
	content, flags := normalize(raw)
	return fs.Add(path, content, flags), nil
}

// Get returns the file registered under id; it panics on unknown ids.
func (fs *FileSet) Get(id FileID) *File { return &fs.files[id] }

func (fs *FileSet) Len() int { return len(fs.files) }

// Resolve converts both ends of span to line and column.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	return f.Position(span.Start), f.Position(span.End)
}

// Position maps a byte offset to a 1-based line and column. The '\n' at
// the end of a line belongs to that line.
func (f *File) Position(off uint32) LineCol {
	return lineCol(f.LineIdx, off)
}

// Line returns line n (1-based) without its newline, or "" when n is out
// of range.
func (f *File) Line(n uint32) string {
	lines := len(f.LineIdx) + 1
	if n == 0 || int(n) > lines {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if int(n) <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	return string(f.Content[start:end])
}
