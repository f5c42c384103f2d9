package lexer

import (
	"ifj25/internal/token"
)

// Comments produce no token; the machine returns to StateNone and keeps
// scanning within the same Next call.

func (lx *Lexer) stepLineComment(b byte) (token.Token, bool, error) {
	if b == '\n' {
		lx.state = StateNone
	}
	return more()
}

// Block comments do not nest.
func (lx *Lexer) stepBlockComment(b byte) (token.Token, bool, error) {
	if b == '*' {
		lx.state = StateBlockCommentStar
	}
	return more()
}

func (lx *Lexer) stepBlockCommentStar(b byte) (token.Token, bool, error) {
	switch b {
	case '/':
		lx.state = StateNone
	case '*':
	default:
		lx.state = StateBlockComment
	}
	return more()
}
