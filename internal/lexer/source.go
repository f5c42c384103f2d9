package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"

	"ifj25/internal/source"
)

// Source is a byte stream with one byte of pushback.
// Next reports ok=false at end of input; the lexer never calls Unread twice
// without a Next in between.
type Source interface {
	Next() (b byte, ok bool)
	Unread(b byte)
}

// errSource is implemented by sources that can fail for reasons other than
// running out of input.
type errSource interface {
	Err() error
}

// Cursor is a Source over an in-memory source.File.
type Cursor struct {
	File *source.File
	Off  uint32
	end  uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) *Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return &Cursor{File: f, end: end}
}

// EOF reports whether every byte was consumed.
func (c *Cursor) EOF() bool {
	return c.Off >= c.end
}

// Next returns the current byte and advances.
func (c *Cursor) Next() (byte, bool) {
	if c.EOF() {
		return 0, false
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b, true
}

// Unread steps back over the byte returned by the last Next.
func (c *Cursor) Unread(b byte) {
	if c.Off == 0 || c.File.Content[c.Off-1] != b {
		panic("lexer: Unread does not match the last byte read")
	}
	c.Off--
}

// ReaderSource adapts an io.Reader. A read error other than io.EOF ends the
// stream and is kept in Err.
type ReaderSource struct {
	r   *bufio.Reader
	err error
}

// NewReaderSource wraps r; an existing *bufio.Reader is reused.
func NewReaderSource(r io.Reader) *ReaderSource {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &ReaderSource{r: br}
}

func (s *ReaderSource) Next() (byte, bool) {
	if s.err != nil {
		return 0, false
	}
	b, err := s.r.ReadByte()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		return 0, false
	}
	return b, true
}

func (s *ReaderSource) Unread(byte) {
	if err := s.r.UnreadByte(); err != nil {
		panic(fmt.Errorf("lexer: unread: %w", err))
	}
}

// Err returns the first non-EOF read error.
func (s *ReaderSource) Err() error {
	return s.err
}
