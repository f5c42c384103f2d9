package lexer

import (
	"fmt"
	"strconv"

	"ifj25/internal/token"
)

// Numbers are [0-9]+ or [0-9]+.[0-9]+; an identifier byte may not follow.

func (lx *Lexer) stepInt(b byte) (token.Token, bool, error) {
	switch c := classOf(b); {
	case c == ClassDigit:
		return lx.push(b)
	case c == ClassDot:
		lx.state = StateFloat
		return lx.push(b)
	case c == ClassLetter || c == ClassUnderscore:
		return lx.invalid(b, "identifier character directly after number:")
	default:
		lx.unread(b)
		return lx.finishInt()
	}
}

func (lx *Lexer) stepFloat(b byte) (token.Token, bool, error) {
	switch c := classOf(b); {
	case c == ClassDigit:
		return lx.push(b)
	case c == ClassDot:
		return lx.invalid(b, "second decimal point in number:")
	case c == ClassLetter || c == ClassUnderscore:
		return lx.invalid(b, "identifier character directly after number:")
	default:
		lx.unread(b)
		return lx.finishFloat()
	}
}

func (lx *Lexer) finishInt() (token.Token, bool, error) {
	sp := lx.spanFrom(lx.start)
	text := lx.lexeme.Take()
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return lx.fail(&Error{Code: InvalidCharacter, Span: sp, Msg: fmt.Sprintf("integer literal %s out of range", text), Err: err})
	}
	return lx.emit(token.NewInt(v, sp, text))
}

func (lx *Lexer) finishFloat() (token.Token, bool, error) {
	sp := lx.spanFrom(lx.start)
	if lx.lexeme.Last() == '.' {
		return lx.fail(&Error{Code: InvalidCharacter, Span: sp, Msg: "expected digit after decimal point"})
	}
	text := lx.lexeme.Take()
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return lx.fail(&Error{Code: InvalidCharacter, Span: sp, Msg: fmt.Sprintf("float literal %s out of range", text), Err: err})
	}
	return lx.emit(token.NewFloat(v, sp, text))
}
