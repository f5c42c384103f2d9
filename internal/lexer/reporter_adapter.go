package lexer

import (
	"errors"

	"ifj25/internal/diag"
)

// DiagCode maps a lexical error code to its diagnostic code.
func (c ErrorCode) DiagCode() diag.Code {
	switch c {
	case InvalidCharacter:
		return diag.LexInvalidCharacter
	case UnterminatedString:
		return diag.LexUnterminatedString
	case UnterminatedComment:
		return diag.LexUnterminatedComment
	case AllocationFailure:
		return diag.LexTokenTooLong
	case ReadFailure:
		return diag.IOReadFailure
	default:
		return diag.UnknownCode
	}
}

// Report forwards err to r as an error diagnostic and reports whether err
// was a lexical error.
func Report(r diag.Reporter, err error) bool {
	var lexErr *Error
	if !errors.As(err, &lexErr) {
		return false
	}
	if r == nil {
		return true
	}
	msg := lexErr.Msg
	if msg == "" {
		msg = lexErr.Code.String()
	}
	r.Report(lexErr.Code.DiagCode(), diag.SevError, lexErr.Span, msg, nil)
	return true
}
