package lexer

import (
	"fmt"
	"strconv"

	"ifj25/internal/source"
)

// ErrorCode classifies a lexical error.
type ErrorCode uint8

const (
	// InvalidCharacter: a byte can neither extend nor terminate the current token.
	InvalidCharacter ErrorCode = iota + 1
	// UnterminatedString: input ended inside a string literal.
	UnterminatedString
	// UnterminatedComment: input ended inside a block comment.
	UnterminatedComment
	// AllocationFailure: the lexeme buffer could not grow.
	AllocationFailure
	// ReadFailure: the source failed with an I/O error.
	ReadFailure
)

func (c ErrorCode) String() string {
	switch c {
	case InvalidCharacter:
		return "InvalidCharacter"
	case UnterminatedString:
		return "UnterminatedString"
	case UnterminatedComment:
		return "UnterminatedComment"
	case AllocationFailure:
		return "AllocationFailure"
	case ReadFailure:
		return "ReadFailure"
	default:
		return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
	}
}

// Error is a lexical error. It ends the Next call that produced it.
type Error struct {
	Code ErrorCode
	Span source.Span
	Char byte // offending byte for InvalidCharacter, 0 otherwise
	Msg  string
	Err  error
}

// Sentinels for errors.Is; matching compares only the code.
var (
	ErrInvalidCharacter    = &Error{Code: InvalidCharacter}
	ErrUnterminatedString  = &Error{Code: UnterminatedString}
	ErrUnterminatedComment = &Error{Code: UnterminatedComment}
	ErrAllocationFailure   = &Error{Code: AllocationFailure}
	ErrReadFailure         = &Error{Code: ReadFailure}
)

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Code.String()
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return fmt.Sprintf("lexer error at %s: %s", e.Span, msg)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}
