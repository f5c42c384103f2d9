package source

import (
	"bytes"
	"path/filepath"
	"sort"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalize strips a leading BOM and folds every CRLF pair to LF. A lone
// '\r' is left alone; the lexer reports it as an invalid character.
func normalize(raw []byte) ([]byte, FileFlags) {
	var flags FileFlags
	content, hadBOM := bytes.CutPrefix(raw, utf8BOM)
	if hadBOM {
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

func indexLines(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i)) // #nosec G115 -- Add caps content at 4 GiB
		}
	}
	return idx
}

func lineCol(lineIdx []uint32, off uint32) LineCol {
	// newlines strictly before off
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - lineStart + 1} // #nosec G115
}

func cleanPath(p string) string { return filepath.ToSlash(filepath.Clean(p)) }

// RelativePath returns p relative to base with forward slashes.
func RelativePath(p, base string) (string, error) {
	absP, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absP)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
