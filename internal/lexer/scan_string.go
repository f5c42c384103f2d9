package lexer

import (
	"fmt"

	"ifj25/internal/token"
)

var escapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'0':  0,
	'\\': '\\',
	'"':  '"',
}

func (lx *Lexer) stepString(b byte) (token.Token, bool, error) {
	switch b {
	case '"':
		if t, e, err := lx.push(b); err != nil {
			return t, e, err
		}
		sp := lx.spanFrom(lx.start)
		return lx.emit(token.NewString(lx.value.Take(), sp, lx.lexeme.Take()))
	case '\\':
		lx.state = StateStringEscape
		return lx.push(b)
	default:
		return lx.pushString(b, b)
	}
}

func (lx *Lexer) stepStringEscape(b byte) (token.Token, bool, error) {
	decoded, ok := escapes[b]
	if !ok {
		return lx.fail(&Error{
			Code: InvalidCharacter,
			Span: lx.span(lx.off-2, lx.off),
			Char: b,
			Msg:  fmt.Sprintf("unknown escape sequence %q", "\\"+string([]byte{b})),
		})
	}
	lx.state = StateString
	return lx.pushString(b, decoded)
}

func (lx *Lexer) pushString(raw, val byte) (token.Token, bool, error) {
	if err := lx.lexeme.Append(raw); err != nil {
		return lx.allocFail(err)
	}
	if err := lx.value.Append(val); err != nil {
		return lx.allocFail(err)
	}
	return more()
}
