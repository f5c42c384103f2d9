package fuzztests

import (
	"bytes"
	"errors"
	"testing"

	"ifj25/internal/lexer"
	"ifj25/internal/source"
	"ifj25/internal/testkit"
	"ifj25/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

type step struct {
	tok token.Token
	err error
}

// drain runs lx to EOF, keeping errors in the stream. Every call consumes at
// least one byte or ends the input, so more than 2n+4 calls means a hang.
func drain(t *testing.T, lx *lexer.Lexer, n int) []step {
	t.Helper()
	var out []step
	for i := 0; i <= 2*n+4; i++ {
		tok, err := lx.Next()
		out = append(out, step{tok, err})
		if err == nil && tok.Kind.IsEOF() {
			return out
		}
	}
	t.Fatalf("lexer did not reach EOF within %d calls", 2*n+4)
	return nil
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.wren", input))

		steps := drain(t, lexer.NewFile(file, lexer.Options{}), len(input))
		tokens := make([]token.Token, 0, len(steps))
		for i, st := range steps {
			if st.err == nil {
				tokens = append(tokens, st.tok)
				continue
			}
			var lexErr *lexer.Error
			if !errors.As(st.err, &lexErr) {
				t.Fatalf("step %d: non-lexical error %v", i, st.err)
			}
			if lexErr.Code == lexer.ReadFailure {
				t.Fatalf("step %d: read failure from memory", i)
			}
		}
		if err := testkit.CheckTokenSpans(tokens, file); err != nil {
			t.Fatal(err)
		}

		// EOF stays EOF.
		lx := lexer.NewFile(file, lexer.Options{})
		drain(t, lx, len(input))
		if tok, err := lx.Next(); err != nil || !tok.Kind.IsEOF() {
			t.Fatalf("after EOF: %v %v", tok, err)
		}
	})
}

func FuzzReaderSourceMatchesCursor(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.wren", input))

		fromFile := drain(t, lexer.NewFile(file, lexer.Options{}), len(input))
		fromReader := drain(t, lexer.New(lexer.NewReaderSource(bytes.NewReader(input)), lexer.Options{}), len(input))
		if len(fromFile) != len(fromReader) {
			t.Fatalf("cursor produced %d steps, reader %d", len(fromFile), len(fromReader))
		}
		for i := range fromFile {
			a, b := fromFile[i], fromReader[i]
			if (a.err == nil) != (b.err == nil) {
				t.Fatalf("step %d: %v/%v vs %v/%v", i, a.tok, a.err, b.tok, b.err)
			}
			if a.err != nil {
				if a.err.Error() != b.err.Error() {
					t.Fatalf("step %d: %v vs %v", i, a.err, b.err)
				}
				continue
			}
			if a.tok.String() != b.tok.String() || a.tok.Span != b.tok.Span {
				t.Fatalf("step %d: %v@%v vs %v@%v", i, a.tok, a.tok.Span, b.tok, b.tok.Span)
			}
		}
	})
}
