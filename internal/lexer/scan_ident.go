package lexer

import (
	"fmt"

	"ifj25/internal/token"
)

func (lx *Lexer) stepIdent(b byte) (token.Token, bool, error) {
	switch {
	case isIdentContinue(b):
		return lx.push(b)
	case b == '.' && lx.lexeme.Equal(token.BuiltinNamespace):
		lx.state = StateBuiltinPrefix
		return lx.push(b)
	default:
		lx.unread(b)
		return lx.emit(lx.finishIdent())
	}
}

// finishIdent classifies the lexeme as keyword, promoted literal or identifier.
func (lx *Lexer) finishIdent() token.Token {
	sp := lx.spanFrom(lx.start)
	text := lx.lexeme.Take()
	if lx.opts.PromoteLiterals {
		switch text {
		case "null":
			return token.NewNil(sp, text)
		case "true":
			return token.NewBool(true, sp, text)
		case "false":
			return token.NewBool(false, sp, text)
		}
	}
	if kw, ok := token.LookupKeyword(text); ok {
		return token.NewKeyword(kw, sp, text)
	}
	return token.NewIdent(sp, text)
}

func (lx *Lexer) stepBuiltinPrefix(b byte) (token.Token, bool, error) {
	if !isIdentStart(b) {
		return lx.invalid(b, "expected built-in function name after \"Ifj.\", found")
	}
	lx.state = StateBuiltinName
	return lx.push(b)
}

func (lx *Lexer) stepBuiltinName(b byte) (token.Token, bool, error) {
	if isIdentContinue(b) {
		return lx.push(b)
	}
	lx.unread(b)
	return lx.finishBuiltin()
}

// finishBuiltin resolves "Ifj.<name>"; there is no fallback to a plain identifier.
func (lx *Lexer) finishBuiltin() (token.Token, bool, error) {
	sp := lx.spanFrom(lx.start)
	text := lx.lexeme.Take()
	name := text[len(token.BuiltinNamespace)+1:]
	if bi, ok := token.LookupBuiltin(name); ok {
		return lx.emit(token.NewBuiltin(bi, sp, text))
	}
	return lx.fail(&Error{Code: InvalidCharacter, Span: sp, Msg: fmt.Sprintf("unknown built-in function %q", text)})
}
