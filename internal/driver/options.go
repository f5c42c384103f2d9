package driver

import (
	"ifj25/internal/lexer"
)

// Options controls a tokenize run.
type Options struct {
	// Lexer is passed to every lexer; File is set per file.
	Lexer lexer.Options
	// MaxDiagnostics bounds the per-file bag; <= 0 is unbounded.
	MaxDiagnostics int
	// Recover keeps lexing after a lexical error, resuming after the
	// offending byte. By default the first error ends the file.
	Recover bool
	// Cache, when set, stores and reuses token streams by content hash.
	Cache *TokenCache
	// Progress receives per-file events; may be nil.
	Progress ProgressSink
}
