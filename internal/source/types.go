package source

import "strings"

type (
	// FileID indexes a file inside its FileSet.
	FileID uint32
	// FileFlags records how a file's content was obtained and normalised.
	FileFlags uint8
)

const (
	FileVirtual        FileFlags = 1 << iota // added from memory or stdin
	FileHadBOM                               // a leading UTF-8 BOM was stripped
	FileNormalizedCRLF                       // CRLF pairs were folded to LF
)

// NoFile marks a span that belongs to no loaded file, such as the
// location of a file that failed to load.
const NoFile = ^FileID(0)

// Has reports whether every bit of x is set in f.
func (f FileFlags) Has(x FileFlags) bool { return f&x == x }

func (f FileFlags) String() string {
	var parts []string
	for _, fl := range []struct {
		bit  FileFlags
		name string
	}{{FileVirtual, "virtual"}, {FileHadBOM, "bom"}, {FileNormalizedCRLF, "crlf"}} {
		if f.Has(fl.bit) {
			parts = append(parts, fl.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// File is one loaded input. Content is what the lexer sees, after BOM
// stripping and CRLF folding.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offset of every '\n' in Content
	Hash    [32]byte // sha256 of Content, the token cache key input
	Flags   FileFlags
}

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}
