package diag

import (
	"fmt"

	"ifj25/internal/source"
)

// Severity orders diagnostics from informational to fatal.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Note points at a secondary location, e.g. where an unterminated
// comment was opened.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// Errorf is NewError with a formatted message.
func Errorf(code Code, primary source.Span, format string, args ...any) Diagnostic {
	return NewError(code, primary, fmt.Sprintf(format, args...))
}

// WithNote returns a copy of d with one more note. The receiver's notes
// slice is never shared with the result.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	notes := make([]Note, len(d.Notes), len(d.Notes)+1)
	copy(notes, d.Notes)
	d.Notes = append(notes, Note{Span: sp, Msg: msg})
	return d
}

// IsError reports whether d counts as a failure for exit status purposes.
func (d Diagnostic) IsError() bool { return d.Severity >= SevError }
