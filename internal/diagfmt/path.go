package diagfmt

import (
	"os"
	"path/filepath"
	"strings"

	"ifj25/internal/source"
)

// formatPath renders f's path for display. Auto mode keeps relative paths,
// shortens absolute ones under the working directory and otherwise falls
// back to the base name.
func formatPath(f *source.File, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if f.Flags.Has(source.FileVirtual) {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		if rel, ok := relativeToWD(f.Path); ok {
			return rel
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	if !filepath.IsAbs(f.Path) {
		return f.Path
	}
	if rel, ok := relativeToWD(f.Path); ok && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return filepath.Base(f.Path)
}

func relativeToWD(p string) (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	rel, err := source.RelativePath(p, wd)
	return rel, err == nil
}

// lookupFile returns nil for spans outside fs.
func lookupFile(fs *source.FileSet, id source.FileID) *source.File {
	if fs == nil || id == source.NoFile || int(id) >= fs.Len() {
		return nil
	}
	return fs.Get(id)
}
