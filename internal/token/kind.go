package token

// Kind is the discriminant of a Token.
type Kind uint8

const (
	// Invalid is the zero Kind; the lexer never returns it with a nil error.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Keyword is a reserved word; payload Keyword.
	Keyword
	// Ident is a plain identifier; payload is its name.
	Ident
	// BuiltinFunc is a qualified Ifj.<name> reference; payload Builtin.
	BuiltinFunc
	// Punctuation is punctuation; payload Punct.
	Punctuation
	// Operator is an arithmetic, relational or logical operator; payload Op.
	Operator
	// IntLit is a decimal integer literal; payload int64.
	IntLit
	// FloatLit is a decimal floating point literal; payload float64.
	FloatLit
	// StringLit is a string literal; payload is the unescaped value.
	StringLit
	// NilLit is the null literal (only with literal promotion).
	NilLit
	// BoolLit is true/false (only with literal promotion); payload bool.
	BoolLit
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Keyword:     "Keyword",
	Ident:       "Ident",
	BuiltinFunc: "BuiltinFunc",
	Punctuation: "Punctuation",
	Operator:    "Operator",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	NilLit:      "NilLit",
	BoolLit:     "BoolLit",
}

// kindLabels are the labels printed by the reference driver.
var kindLabels = [...]string{
	Invalid:     "UNKNOWN",
	EOF:         "EOF",
	Keyword:     "KEYWORD",
	Ident:       "IDENTIFIER",
	BuiltinFunc: "BUILTIN_FUNCTION",
	Punctuation: "PUNCTUATION",
	Operator:    "OPERATOR",
	IntLit:      "LITERAL_INT",
	FloatLit:    "LITERAL_FLOAT",
	StringLit:   "LITERAL_STRING",
	NilLit:      "LITERAL_NIL",
	BoolLit:     "LITERAL_BOOL",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Label returns the upper-case driver label, e.g. "LITERAL_INT".
func (k Kind) Label() string {
	if int(k) < len(kindLabels) {
		return kindLabels[k]
	}
	return "UNKNOWN"
}

// IsEOF reports whether k is EOF.
func (k Kind) IsEOF() bool { return k == EOF }

// IsLiteral reports whether k is one of the literal kinds.
func (k Kind) IsLiteral() bool {
	switch k {
	case IntLit, FloatLit, StringLit, NilLit, BoolLit:
		return true
	default:
		return false
	}
}

// Punct enumerates punctuation sub-kinds.
type Punct uint8

const (
	LParen   Punct = iota // (
	RParen                // )
	LBrace                // {
	RBrace                // }
	LBracket              // [
	RBracket              // ]
	Comma                 // ,
	Semicolon             // ;
	Dot                   // .
)

var punctText = [...]string{
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Comma: ",", Semicolon: ";", Dot: ".",
}

func (p Punct) String() string {
	if int(p) < len(punctText) {
		return punctText[p]
	}
	return "?"
}

// Op enumerates operator sub-kinds.
type Op uint8

const (
	Plus         Op = iota // +
	Minus                  // -
	Multiply               // *
	Divide                 // /
	Assign                 // =
	Equal                  // ==
	NotEqual               // !=
	Less                   // <
	LessEqual              // <=
	Greater                // >
	GreaterEqual           // >=
	Not                    // !
)

var opText = [...]string{
	Plus: "+", Minus: "-", Multiply: "*", Divide: "/",
	Assign: "=", Equal: "==", NotEqual: "!=",
	Less: "<", LessEqual: "<=", Greater: ">", GreaterEqual: ">=",
	Not: "!",
}

func (o Op) String() string {
	if int(o) < len(opText) {
		return opText[o]
	}
	return "?"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true // #nosec G115 -- kindNames is tiny
		}
	}
	return Invalid, false
}

// LookupPunct maps a punctuation lexeme to its sub-kind.
func LookupPunct(s string) (Punct, bool) {
	for p, text := range punctText {
		if text == s {
			return Punct(p), true // #nosec G115
		}
	}
	return 0, false
}

// LookupOp maps an operator lexeme to its sub-kind.
func LookupOp(s string) (Op, bool) {
	for o, text := range opText {
		if text == s {
			return Op(o), true // #nosec G115
		}
	}
	return 0, false
}
