package token

import (
	"fmt"
	"strconv"

	"ifj25/internal/source"
)

// Token is a classified lexeme. Kind, Span and Text are plain data; the
// payload is private and only reachable through the accessor matching Kind.
type Token struct {
	Kind Kind
	Span source.Span
	Text string

	val payload
}

// payload is the sealed set of token values.
type payload interface{ isPayload() }

type (
	keywordVal KeywordKind
	builtinVal Builtin
	punctVal   Punct
	opVal      Op
	intVal     int64
	floatVal   float64
	textVal    string
	boolVal    bool
)

func (keywordVal) isPayload() {}
func (builtinVal) isPayload() {}
func (punctVal) isPayload()   {}
func (opVal) isPayload()      {}
func (intVal) isPayload()     {}
func (floatVal) isPayload()   {}
func (textVal) isPayload()    {}
func (boolVal) isPayload()    {}

// NewEOF returns the end-of-input token positioned at sp.
func NewEOF(sp source.Span) Token { return Token{Kind: EOF, Span: sp} }

// NewKeyword returns a Keyword token.
func NewKeyword(kw KeywordKind, sp source.Span, text string) Token {
	return Token{Kind: Keyword, Span: sp, Text: text, val: keywordVal(kw)}
}

// NewIdent returns an identifier token whose name is text.
func NewIdent(sp source.Span, text string) Token {
	return Token{Kind: Ident, Span: sp, Text: text, val: textVal(text)}
}

// NewBuiltin returns a qualified built-in function token; text is "Ifj.<name>".
func NewBuiltin(b Builtin, sp source.Span, text string) Token {
	return Token{Kind: BuiltinFunc, Span: sp, Text: text, val: builtinVal(b)}
}

// NewPunct returns a punctuation token.
func NewPunct(p Punct, sp source.Span) Token {
	return Token{Kind: Punctuation, Span: sp, Text: p.String(), val: punctVal(p)}
}

// NewOp returns an operator token.
func NewOp(o Op, sp source.Span) Token {
	return Token{Kind: Operator, Span: sp, Text: o.String(), val: opVal(o)}
}

// NewInt returns an integer literal token.
func NewInt(v int64, sp source.Span, text string) Token {
	return Token{Kind: IntLit, Span: sp, Text: text, val: intVal(v)}
}

// NewFloat returns a floating point literal token.
func NewFloat(v float64, sp source.Span, text string) Token {
	return Token{Kind: FloatLit, Span: sp, Text: text, val: floatVal(v)}
}

// NewString returns a string literal token; value is the unescaped content
// and text the raw lexeme including quotes.
func NewString(value string, sp source.Span, text string) Token {
	return Token{Kind: StringLit, Span: sp, Text: text, val: textVal(value)}
}

// NewNil returns the null literal token.
func NewNil(sp source.Span, text string) Token {
	return Token{Kind: NilLit, Span: sp, Text: text}
}

// NewBool returns a boolean literal token.
func NewBool(v bool, sp source.Span, text string) Token {
	return Token{Kind: BoolLit, Span: sp, Text: text, val: boolVal(v)}
}

// Keyword returns the keyword payload.
func (t Token) Keyword() (KeywordKind, bool) {
	v, ok := t.val.(keywordVal)
	return KeywordKind(v), ok && t.Kind == Keyword
}

// Builtin returns the built-in function payload.
func (t Token) Builtin() (Builtin, bool) {
	v, ok := t.val.(builtinVal)
	return Builtin(v), ok && t.Kind == BuiltinFunc
}

// Punct returns the punctuation payload.
func (t Token) Punct() (Punct, bool) {
	v, ok := t.val.(punctVal)
	return Punct(v), ok && t.Kind == Punctuation
}

// Op returns the operator payload.
func (t Token) Op() (Op, bool) {
	v, ok := t.val.(opVal)
	return Op(v), ok && t.Kind == Operator
}

// Int returns the integer literal payload.
func (t Token) Int() (int64, bool) {
	v, ok := t.val.(intVal)
	return int64(v), ok && t.Kind == IntLit
}

// Float returns the floating point literal payload.
func (t Token) Float() (float64, bool) {
	v, ok := t.val.(floatVal)
	return float64(v), ok && t.Kind == FloatLit
}

// Str returns the identifier name or the unescaped string literal value.
func (t Token) Str() (string, bool) {
	v, ok := t.val.(textVal)
	return string(v), ok && (t.Kind == Ident || t.Kind == StringLit)
}

// Bool returns the boolean literal payload.
func (t Token) Bool() (bool, bool) {
	v, ok := t.val.(boolVal)
	return bool(v), ok && t.Kind == BoolLit
}

// Is reports whether t is the operator o.
func (t Token) Is(o Op) bool {
	got, ok := t.Op()
	return ok && got == o
}

// Value returns the live payload as a plain Go value, or nil for EOF and null.
func (t Token) Value() any {
	switch v := t.val.(type) {
	case keywordVal:
		return KeywordKind(v).String()
	case builtinVal:
		return Builtin(v).String()
	case punctVal:
		return Punct(v).String()
	case opVal:
		return Op(v).String()
	case intVal:
		return int64(v)
	case floatVal:
		return float64(v)
	case textVal:
		return string(v)
	case boolVal:
		return bool(v)
	default:
		return nil
	}
}

// Detail renders the payload for human-readable listings, e.g. `class` or `"a\n"`.
func (t Token) Detail() string {
	switch v := t.val.(type) {
	case textVal:
		if t.Kind == StringLit {
			return strconv.Quote(string(v))
		}
		return string(v)
	case intVal:
		return strconv.FormatInt(int64(v), 10)
	case floatVal:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t.Value())
	}
}

func (t Token) String() string {
	if d := t.Detail(); d != "" {
		return fmt.Sprintf("%s(%s)", t.Kind, d)
	}
	return t.Kind.String()
}
