package lexer

import (
	"fmt"

	"ifj25/internal/source"
	"ifj25/internal/token"
)

// Lexer turns a Source into tokens, one per Next call.
// A Lexer is bound to one Source and is not safe for concurrent use.
type Lexer struct {
	src    Source
	opts   Options
	lexeme *Buffer // raw bytes of the token being scanned
	value  *Buffer // unescaped content of a string literal
	state  State
	off    uint32 // offset of the next byte Source will return
	start  uint32 // offset of the first byte of the current token
	done   bool   // EOF was returned
}

// New creates a lexer reading from src.
func New(src Source, opts Options) *Lexer {
	return &Lexer{src: src, opts: opts}
}

// NewFile creates a lexer over an in-memory file; opts.File is overridden.
func NewFile(f *source.File, opts Options) *Lexer {
	opts.File = f.ID
	return New(NewCursor(f), opts)
}

// State returns the scanning state; it is StateNone between tokens.
func (lx *Lexer) State() State { return lx.state }

// Offset returns the number of bytes consumed and not pushed back.
func (lx *Lexer) Offset() uint32 { return lx.off }

// Next scans the next token. It returns either a token or a *Error, never
// both. Once EOF has been returned every later call returns EOF again.
// After an error the lexer restarts in StateNone at the byte following the
// one that caused it.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.done {
		return token.NewEOF(lx.span(lx.off, lx.off)), nil
	}
	if err := lx.ensureBuffers(); err != nil {
		return token.Token{}, err
	}
	lx.state = StateNone
	lx.lexeme.Reset()
	lx.value.Reset()

	for {
		var (
			tok  token.Token
			emit bool
			err  error
		)
		if b, ok := lx.read(); ok {
			tok, emit, err = lx.step(b)
		} else {
			tok, emit, err = lx.atEOF()
		}
		if err != nil {
			return token.Token{}, err
		}
		if emit {
			return tok, nil
		}
	}
}

func (lx *Lexer) ensureBuffers() error {
	if lx.lexeme != nil {
		return nil
	}
	limit := lx.opts.tokenLimit()
	lexeme, err := NewBuffer(lx.opts.InitialBufferCap, limit)
	if err != nil {
		return &Error{Code: AllocationFailure, Span: lx.span(lx.off, lx.off), Msg: "cannot allocate lexeme buffer", Err: err}
	}
	value, err := NewBuffer(lx.opts.InitialBufferCap, limit)
	if err != nil {
		return &Error{Code: AllocationFailure, Span: lx.span(lx.off, lx.off), Msg: "cannot allocate lexeme buffer", Err: err}
	}
	lx.lexeme, lx.value = lexeme, value
	return nil
}

func (lx *Lexer) step(b byte) (token.Token, bool, error) {
	switch lx.state {
	case StateNone:
		return lx.stepNone(b)
	case StateIdentOrKeyword:
		return lx.stepIdent(b)
	case StateBuiltinPrefix:
		return lx.stepBuiltinPrefix(b)
	case StateBuiltinName:
		return lx.stepBuiltinName(b)
	case StateIntOrFloat:
		return lx.stepInt(b)
	case StateFloat:
		return lx.stepFloat(b)
	case StateString:
		return lx.stepString(b)
	case StateStringEscape:
		return lx.stepStringEscape(b)
	case StateSlashSeen:
		return lx.stepSlash(b)
	case StateLineComment:
		return lx.stepLineComment(b)
	case StateBlockComment:
		return lx.stepBlockComment(b)
	case StateBlockCommentStar:
		return lx.stepBlockCommentStar(b)
	case StateLessSeen:
		return lx.lookahead(b, token.Less, token.LessEqual)
	case StateGreaterSeen:
		return lx.lookahead(b, token.Greater, token.GreaterEqual)
	case StateEqualsSeen:
		return lx.lookahead(b, token.Assign, token.Equal)
	case StateBangSeen:
		return lx.lookahead(b, token.Not, token.NotEqual)
	default:
		panic(fmt.Sprintf("lexer: unhandled state %v", lx.state))
	}
}

func (lx *Lexer) stepNone(b byte) (token.Token, bool, error) {
	lx.start = lx.off - 1
	info := charTable[b]
	switch info.class {
	case ClassWhitespace:
		return more()
	case ClassLetter, ClassUnderscore:
		return lx.begin(StateIdentOrKeyword, b)
	case ClassDigit:
		return lx.begin(StateIntOrFloat, b)
	case ClassQuote:
		return lx.begin(StateString, b)
	case ClassSlash:
		lx.state = StateSlashSeen
		return more()
	case ClassStar:
		return lx.emit(token.NewOp(token.Multiply, lx.spanFrom(lx.start)))
	case ClassDot:
		return lx.emit(token.NewPunct(token.Dot, lx.spanFrom(lx.start)))
	case ClassPunct:
		return lx.emit(token.NewPunct(info.punct, lx.spanFrom(lx.start)))
	case ClassOpStart:
		switch info.op {
		case token.Less:
			lx.state = StateLessSeen
		case token.Greater:
			lx.state = StateGreaterSeen
		case token.Assign:
			lx.state = StateEqualsSeen
		case token.Not:
			lx.state = StateBangSeen
		default:
			return lx.emit(token.NewOp(info.op, lx.spanFrom(lx.start)))
		}
		return more()
	default:
		return lx.invalid(b, "unexpected character")
	}
}

// atEOF finishes whatever the current state holds. It always emits or fails.
func (lx *Lexer) atEOF() (token.Token, bool, error) {
	if err := lx.readErr(); err != nil {
		return lx.fail(&Error{Code: ReadFailure, Span: lx.span(lx.off, lx.off), Msg: "cannot read source", Err: err})
	}
	switch lx.state {
	case StateNone, StateLineComment:
		lx.done = true
		return lx.emit(token.NewEOF(lx.span(lx.off, lx.off)))
	case StateIdentOrKeyword:
		return lx.emit(lx.finishIdent())
	case StateBuiltinPrefix:
		return lx.fail(&Error{Code: InvalidCharacter, Span: lx.spanFrom(lx.start), Msg: "expected built-in function name after \"Ifj.\""})
	case StateBuiltinName:
		return lx.finishBuiltin()
	case StateIntOrFloat:
		return lx.finishInt()
	case StateFloat:
		return lx.finishFloat()
	case StateString, StateStringEscape:
		return lx.fail(&Error{Code: UnterminatedString, Span: lx.spanFrom(lx.start), Msg: "unterminated string literal"})
	case StateSlashSeen:
		return lx.emit(token.NewOp(token.Divide, lx.spanFrom(lx.start)))
	case StateBlockComment, StateBlockCommentStar:
		return lx.fail(&Error{Code: UnterminatedComment, Span: lx.spanFrom(lx.start), Msg: "unterminated block comment"})
	case StateLessSeen:
		return lx.emit(token.NewOp(token.Less, lx.spanFrom(lx.start)))
	case StateGreaterSeen:
		return lx.emit(token.NewOp(token.Greater, lx.spanFrom(lx.start)))
	case StateEqualsSeen:
		return lx.emit(token.NewOp(token.Assign, lx.spanFrom(lx.start)))
	case StateBangSeen:
		return lx.emit(token.NewOp(token.Not, lx.spanFrom(lx.start)))
	default:
		panic(fmt.Sprintf("lexer: unhandled state %v at EOF", lx.state))
	}
}

// ===== plumbing =====

func (lx *Lexer) read() (byte, bool) {
	b, ok := lx.src.Next()
	if ok {
		lx.off++
	}
	return b, ok
}

func (lx *Lexer) unread(b byte) {
	lx.src.Unread(b)
	lx.off--
}

func (lx *Lexer) readErr() error {
	if es, ok := lx.src.(errSource); ok {
		return es.Err()
	}
	return nil
}

func (lx *Lexer) span(start, end uint32) source.Span {
	return source.Span{File: lx.opts.File, Start: start, End: end}
}

func (lx *Lexer) spanFrom(start uint32) source.Span {
	return lx.span(start, lx.off)
}

func more() (token.Token, bool, error) { return token.Token{}, false, nil }

func (lx *Lexer) emit(tok token.Token) (token.Token, bool, error) {
	lx.state = StateNone
	return tok, true, nil
}

// fail drops the partial token and resets the machine.
func (lx *Lexer) fail(e *Error) (token.Token, bool, error) {
	lx.state = StateNone
	lx.lexeme.Reset()
	lx.value.Reset()
	return token.Token{}, false, e
}

// invalid reports b, which was just consumed, as an invalid character.
func (lx *Lexer) invalid(b byte, msg string) (token.Token, bool, error) {
	return lx.fail(&Error{
		Code: InvalidCharacter,
		Span: lx.span(lx.off-1, lx.off),
		Char: b,
		Msg:  fmt.Sprintf("%s %q", msg, string([]byte{b})),
	})
}

func (lx *Lexer) begin(st State, b byte) (token.Token, bool, error) {
	lx.state = st
	return lx.push(b)
}

func (lx *Lexer) push(b byte) (token.Token, bool, error) {
	if err := lx.lexeme.Append(b); err != nil {
		return lx.allocFail(err)
	}
	return more()
}

func (lx *Lexer) allocFail(err error) (token.Token, bool, error) {
	return lx.fail(&Error{
		Code: AllocationFailure,
		Span: lx.spanFrom(lx.start),
		Msg:  fmt.Sprintf("token longer than %d bytes", lx.opts.tokenLimit()),
		Err:  err,
	})
}
