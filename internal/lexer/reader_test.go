package lexer_test

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"ifj25/internal/diag"
	"ifj25/internal/lexer"
	"ifj25/internal/source"
	"ifj25/internal/token"
)

func TestReaderSourceMatchesCursor(t *testing.T) {
	fromFile := lexAll(t, sampleProgram)

	lx := lexer.New(lexer.NewReaderSource(iotest.OneByteReader(strings.NewReader(sampleProgram))), lexer.Options{})
	fromReader, err := collectAllTokens(lx)
	if err != nil {
		t.Fatal(err)
	}
	if len(fromFile) != len(fromReader) {
		t.Fatalf("token counts differ: %d vs %d", len(fromFile), len(fromReader))
	}
	for i := range fromFile {
		a, b := fromFile[i], fromReader[i]
		if a.Kind != b.Kind || a.Text != b.Text || a.Span != b.Span {
			t.Errorf("token %d: file %v %v, reader %v %v", i, a, a.Span, b, b.Span)
		}
	}
}

func TestReaderSourceReusesBufio(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("x"))
	lx := lexer.New(lexer.NewReaderSource(br), lexer.Options{File: 7})
	tok, err := lx.Next()
	if err != nil || tok.Text != "x" || tok.Span.File != 7 {
		t.Fatalf("got %v %v", tok, err)
	}
}

func TestReadFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	r := io.MultiReader(strings.NewReader("abc "), iotest.ErrReader(boom))
	lx := lexer.New(lexer.NewReaderSource(r), lexer.Options{})

	tok, err := lx.Next()
	if err != nil || tok.Text != "abc" {
		t.Fatalf("expected abc before the failure, got %v %v", tok, err)
	}
	_, err = lx.Next()
	if !errors.Is(err, lexer.ErrReadFailure) {
		t.Fatalf("expected ReadFailure, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("read failure should wrap the reader error: %v", err)
	}
	// the failure is sticky; EOF is never reported for a broken stream
	if _, err = lx.Next(); !errors.Is(err, lexer.ErrReadFailure) {
		t.Errorf("second call: %v", err)
	}
}

func TestCursorUnreadMismatchPanics(t *testing.T) {
	fs := source.NewFileSet()
	c := lexer.NewCursor(fs.Get(fs.AddVirtual("c", []byte("ab"))))
	b, ok := c.Next()
	if !ok || b != 'a' {
		t.Fatalf("Next = %q %v", b, ok)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	c.Unread('z')
}

func TestReport(t *testing.T) {
	bag := diag.NewBag(0)
	lx := makeTestLexer(`x = "open`, lexer.Options{})
	var reported int
	for {
		tok, err := lx.Next()
		if err != nil {
			if !lexer.Report(diag.BagReporter{Bag: bag}, err) {
				t.Fatalf("not a lexical error: %v", err)
			}
			reported++
			continue
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	if reported != 1 || bag.Len() != 1 {
		t.Fatalf("reported %d, bag %d", reported, bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.LexUnterminatedString || d.Severity != diag.SevError {
		t.Errorf("diagnostic %+v", d)
	}
	if d.Primary.Start != 4 || d.Primary.End != 9 {
		t.Errorf("primary span %v", d.Primary)
	}
	if lexer.Report(diag.NopReporter{}, errors.New("plain")) {
		t.Error("plain error reported as lexical")
	}
}

func TestErrorCodeDiagCodes(t *testing.T) {
	want := map[lexer.ErrorCode]diag.Code{
		lexer.InvalidCharacter:    diag.LexInvalidCharacter,
		lexer.UnterminatedString:  diag.LexUnterminatedString,
		lexer.UnterminatedComment: diag.LexUnterminatedComment,
		lexer.AllocationFailure:   diag.LexTokenTooLong,
		lexer.ReadFailure:         diag.IOReadFailure,
	}
	for code, dc := range want {
		if code.DiagCode() != dc {
			t.Errorf("%v -> %v, want %v", code, code.DiagCode(), dc)
		}
	}
}
