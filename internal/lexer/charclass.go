package lexer

import "ifj25/internal/token"

// Class is the coarse category of an input byte.
type Class uint8

const (
	ClassOther Class = iota
	ClassLetter
	ClassDigit
	ClassUnderscore
	ClassQuote
	ClassWhitespace
	ClassSlash
	ClassStar
	ClassDot
	ClassBackslash
	ClassPunct   // single-character punctuation
	ClassOpStart // operator, possibly the first byte of a two-byte one
)

type charInfo struct {
	class Class
	punct token.Punct
	op    token.Op
}

// charTable is filled once at init and never written afterwards.
var charTable [256]charInfo

func init() {
	for c := 'a'; c <= 'z'; c++ {
		charTable[c].class = ClassLetter
		charTable[c-'a'+'A'].class = ClassLetter
	}
	for c := '0'; c <= '9'; c++ {
		charTable[c].class = ClassDigit
	}
	charTable['_'].class = ClassUnderscore
	charTable['"'].class = ClassQuote
	for _, c := range []byte{' ', '\t', '\r', '\n'} {
		charTable[c].class = ClassWhitespace
	}
	charTable['/'].class = ClassSlash
	charTable['*'].class = ClassStar
	charTable['.'].class = ClassDot
	charTable['\\'].class = ClassBackslash

	for c, p := range map[byte]token.Punct{
		'(': token.LParen, ')': token.RParen,
		'{': token.LBrace, '}': token.RBrace,
		'[': token.LBracket, ']': token.RBracket,
		',': token.Comma, ';': token.Semicolon,
	} {
		charTable[c] = charInfo{class: ClassPunct, punct: p}
	}
	for c, o := range map[byte]token.Op{
		'+': token.Plus, '-': token.Minus,
		'<': token.Less, '>': token.Greater,
		'=': token.Assign, '!': token.Not,
	} {
		charTable[c] = charInfo{class: ClassOpStart, op: o}
	}
}

func classOf(b byte) Class { return charTable[b].class }

// ClassOf exposes the byte classification.
func ClassOf(b byte) Class { return classOf(b) }

func isIdentContinue(b byte) bool {
	switch classOf(b) {
	case ClassLetter, ClassDigit, ClassUnderscore:
		return true
	default:
		return false
	}
}

func isIdentStart(b byte) bool {
	c := classOf(b)
	return c == ClassLetter || c == ClassUnderscore
}

var classNames = [...]string{
	ClassOther:      "Other",
	ClassLetter:     "Letter",
	ClassDigit:      "Digit",
	ClassUnderscore: "Underscore",
	ClassQuote:      "Quote",
	ClassWhitespace: "Whitespace",
	ClassSlash:      "Slash",
	ClassStar:       "Star",
	ClassDot:        "Dot",
	ClassBackslash:  "Backslash",
	ClassPunct:      "Punct",
	ClassOpStart:    "OpStart",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "Class(?)"
}
