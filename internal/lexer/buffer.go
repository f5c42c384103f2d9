package lexer

import (
	"errors"
	"fmt"
)

// minBufferCap is the smallest backing store a Buffer starts with.
const minBufferCap = 16

// ErrBufferLimit is returned when a Buffer would have to grow past its limit.
var ErrBufferLimit = errors.New("lexeme buffer limit exceeded")

// Buffer accumulates the bytes of the lexeme being recognised.
// Capacity doubles on overflow; limit (if > 0) caps the content length.
type Buffer struct {
	data  []byte
	n     int
	limit int
}

// NewBuffer allocates a buffer of at least minBufferCap bytes. Asking for
// more than limit (when limit > 0) fails.
func NewBuffer(capacity, limit int) (*Buffer, error) {
	if limit > 0 && capacity > limit {
		return nil, fmt.Errorf("%w: initial capacity %d above limit %d", ErrBufferLimit, capacity, limit)
	}
	if capacity < minBufferCap {
		capacity = minBufferCap
	}
	return &Buffer{data: make([]byte, capacity), limit: limit}, nil
}

// Append adds c, doubling the backing store first when full.
// Past the limit it fails and the content is left untouched.
func (b *Buffer) Append(c byte) error {
	if b.limit > 0 && b.n >= b.limit {
		return ErrBufferLimit
	}
	if b.n == len(b.data) {
		b.grow()
	}
	b.data[b.n] = c
	b.n++
	return nil
}

func (b *Buffer) grow() {
	newCap := 2 * len(b.data)
	if b.limit > 0 && newCap > b.limit {
		newCap = b.limit
	}
	data := make([]byte, newCap)
	copy(data, b.data[:b.n])
	b.data = data
}

// Take returns the content as an owned string sized to the content and
// empties the buffer. The backing store is kept for the next lexeme.
func (b *Buffer) Take() string {
	s := string(b.data[:b.n])
	b.n = 0
	return s
}

// Reset empties the buffer without releasing capacity.
func (b *Buffer) Reset() { b.n = 0 }

func (b *Buffer) Len() int { return b.n }

func (b *Buffer) Cap() int { return len(b.data) }

// Bytes returns a view of the content valid until the next mutation.
func (b *Buffer) Bytes() []byte { return b.data[:b.n] }

// Equal reports whether the content equals s.
func (b *Buffer) Equal(s string) bool {
	return string(b.data[:b.n]) == s
}

// Last returns the final byte, or 0 when empty.
func (b *Buffer) Last() byte {
	if b.n == 0 {
		return 0
	}
	return b.data[b.n-1]
}
