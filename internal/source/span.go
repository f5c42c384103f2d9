package source

import "fmt"

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID `json:"file" msgpack:"file"`
	Start uint32 `json:"start" msgpack:"start"`
	End   uint32 `json:"end" msgpack:"end"`
}

func (s Span) Empty() bool { return s.Start == s.End }
func (s Span) Len() uint32  { return s.End - s.Start }

// Contains reports whether offset off falls inside s.
func (s Span) Contains(off uint32) bool { return s.Start <= off && off < s.End }

// Before orders spans by file, then start, then end. Diagnostics and
// tokens from parallel runs are sorted with it.
func (s Span) Before(o Span) bool {
	if s.File != o.File {
		return s.File < o.File
	}
	if s.Start != o.Start {
		return s.Start < o.Start
	}
	return s.End < o.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
