// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"ifj25/internal/source"
	"ifj25/internal/token"
)

// CheckTokenSpans verifies a complete token stream lexed from sf:
//  1. every span belongs to sf and lies within its content
//  2. spans are ordered and never overlap
//  3. each token's Text is exactly the source slice under its span
//  4. the stream ends with a single EOF at the end of the content
//
// Streams from a lexer that hit errors may skip bytes; the checks still hold.
func CheckTokenSpans(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}

	var prevEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d (%v): span points to file %d, want %d", i, tok, sp.File, sf.ID)
		}
		if sp.Start > sp.End || sp.End > size {
			return fmt.Errorf("token %d (%v): span %v outside content of %d bytes", i, tok, sp, size)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d (%v): span %v overlaps previous end %d", i, tok, sp, prevEnd)
		}
		prevEnd = sp.End

		if got := string(sf.Content[sp.Start:sp.End]); got != tok.Text {
			return fmt.Errorf("token %d: text %q does not match source %q", i, tok.Text, got)
		}
		isLast := i == len(tokens)-1
		if tok.Kind == token.EOF && !isLast {
			return fmt.Errorf("token %d: EOF before the end of the stream", i)
		}
		if isLast && tok.Kind != token.EOF {
			return fmt.Errorf("stream ends with %v, not EOF", tok)
		}
		if tok.Kind == token.EOF && (sp.Start != size || sp.End != size) {
			return fmt.Errorf("EOF span %v, want %d:%d", sp, size, size)
		}
	}
	return nil
}
