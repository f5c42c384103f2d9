package lexer

import (
	"ifj25/internal/token"
)

// lookahead completes a one-byte operator that may take a trailing '='.
// Anything else is pushed back and the single-byte operator is emitted.
func (lx *Lexer) lookahead(b byte, single, withEq token.Op) (token.Token, bool, error) {
	if b == '=' {
		return lx.emit(token.NewOp(withEq, lx.spanFrom(lx.start)))
	}
	lx.unread(b)
	return lx.emit(token.NewOp(single, lx.spanFrom(lx.start)))
}

// stepSlash decides between '/', "//" and "/*".
func (lx *Lexer) stepSlash(b byte) (token.Token, bool, error) {
	switch b {
	case '/':
		lx.state = StateLineComment
		return more()
	case '*':
		lx.state = StateBlockComment
		return more()
	default:
		lx.unread(b)
		return lx.emit(token.NewOp(token.Divide, lx.spanFrom(lx.start)))
	}
}
