package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps relative paths, shortens absolute ones.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses the path as loaded.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a flag value to a PathMode.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // source lines shown around the primary line
	PathMode  PathMode
	Width     uint8 // maximum width of a quoted source line, 0 = unlimited
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col
	PathMode         PathMode
	Max              int // output cut-off, independent of the Bag limit
	IncludeNotes     bool
}
