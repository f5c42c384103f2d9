package lexer

import (
	"ifj25/internal/source"
)

// DefaultMaxTokenLength bounds a single lexeme; longer ones fail with AllocationFailure.
const DefaultMaxTokenLength = 1 << 20

// Options tunes a Lexer. The zero value is ready to use.
type Options struct {
	// File is stamped into every span.
	File source.FileID
	// MaxTokenLength caps the lexeme buffer; 0 selects DefaultMaxTokenLength,
	// a negative value disables the cap.
	MaxTokenLength int
	// InitialBufferCap is the starting lexeme buffer size (minimum 16).
	InitialBufferCap int
	// PromoteLiterals turns null into NilLit and true/false into BoolLit.
	PromoteLiterals bool
}

func (o Options) tokenLimit() int {
	switch {
	case o.MaxTokenLength == 0:
		return DefaultMaxTokenLength
	case o.MaxTokenLength < 0:
		return 0
	default:
		return o.MaxTokenLength
	}
}
