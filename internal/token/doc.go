// Package token defines the lexical vocabulary of the ifj25 language.
// Invariants:
//   - Token.Text is the exact source lexeme (quotes and escape sequences included).
//   - Token.Span matches Text exactly (Start..End).
//   - Exactly one payload is live per Kind; it is set by the constructors and
//     read through the typed accessors (Keyword, Builtin, Punct, Op, Int, Float,
//     Str, Bool), which report ok=false for any other Kind.
//   - Built-in functions only exist in the qualified form Ifj.<name>; the lexer
//     emits them as a single BuiltinFunc token.
package token
