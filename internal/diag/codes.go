package diag

import "fmt"

// Code identifies a class of diagnostic. The thousands digit selects the
// family: 1xxx lexical, 4xxx input/output.
type Code uint16

const (
	UnknownCode Code = 0

	LexInfo                Code = 1000
	LexInvalidCharacter    Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexTokenTooLong        Code = 1005 // lexeme buffer limit hit

	IOLoadFileError Code = 4001
	IOReadFailure   Code = 4002
)

var codeTitles = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexInvalidCharacter:    "Invalid character",
	LexUnterminatedString:  "Unterminated string literal",
	LexUnterminatedComment: "Unterminated block comment",
	LexTokenTooLong:        "Token exceeds the lexeme buffer limit",
	IOLoadFileError:        "Failed to load file",
	IOReadFailure:          "Failed to read source",
}

var familyPrefix = map[Code]string{1: "LEX", 4: "IO"}

// ID returns the stable identifier printed in diagnostics, e.g. "LEX1001".
func (c Code) ID() string {
	prefix, ok := familyPrefix[c/1000]
	if !ok {
		prefix = "E"
	}
	return fmt.Sprintf("%s%04d", prefix, uint16(c))
}

// Title returns a short description; unknown codes share one.
func (c Code) Title() string {
	if t, ok := codeTitles[c]; ok {
		return t
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	return "[" + c.ID() + "]: " + c.Title()
}
