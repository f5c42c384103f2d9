package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ifj25/internal/diag"
	"ifj25/internal/lexer"
	"ifj25/internal/source"
	"ifj25/internal/token"
)

const tokensSample = "var x = Ifj.floor(2.5) // c\nx = \"a\\tb\" != null\n"

func lexSample(t *testing.T, src string, opts lexer.Options) (*source.FileSet, []token.Token) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("sample.wren", []byte(src))
	lx := lexer.NewFile(fs.Get(id), opts)
	var tokens []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("lex %q: %v", src, err)
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return fs, tokens
		}
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs, tokens := lexSample(t, tokensSample, lexer.Options{})
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(tokens) {
		t.Fatalf("%d lines for %d tokens:\n%s", len(lines), len(tokens), buf.String())
	}
	checks := map[int][]string{
		0:  {"1: Keyword", "var", "1:1-1:4"},
		3:  {"BuiltinFunc", "Ifj.floor", "1:9-1:18"},
		5:  {"FloatLit", "2.5"},
		9:  {"StringLit", `"a\tb"`, "2:5-2:11"},
		12: {"EOF", "3:1-3:1"},
	}
	for i, wants := range checks {
		for _, want := range wants {
			if !strings.Contains(lines[i], want) {
				t.Errorf("line %d %q lacks %q", i, lines[i], want)
			}
		}
	}
}

func TestFormatTokensKinds(t *testing.T) {
	_, tokens := lexSample(t, "Ifj.write(1.5, \"s\");", lexer.Options{})
	var buf bytes.Buffer
	if err := FormatTokensKinds(&buf, tokens, nil); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"Starting lexical analysis!",
		"Token: BUILTIN_FUNCTION",
		"Token: PUNCTUATION",
		"Token: LITERAL_FLOAT",
		"Token: PUNCTUATION",
		"Token: LITERAL_STRING",
		"Token: PUNCTUATION",
		"Token: PUNCTUATION",
		"Reached EOF",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatTokensKindsWithError(t *testing.T) {
	_, tokens := lexSample(t, "x", lexer.Options{})
	tokens = tokens[:1] // halted before EOF
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.LexInvalidCharacter, source.Span{}, `unexpected character "#"`))
	bag.Add(diag.New(diag.SevInfo, diag.LexInfo, source.Span{}, "ignored"))

	var buf bytes.Buffer
	if err := FormatTokensKinds(&buf, tokens, bag); err != nil {
		t.Fatal(err)
	}
	want := "Starting lexical analysis!\nToken: IDENTIFIER\nLexer Error: unexpected character \"#\"\n"
	if buf.String() != want {
		t.Errorf("got %q", buf.String())
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs, tokens := lexSample(t, tokensSample, lexer.Options{})
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	var records []TokenRecord
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(records) != len(tokens) {
		t.Fatalf("%d records for %d tokens", len(records), len(tokens))
	}
	str := records[9]
	if str.Kind != "StringLit" || str.Str == nil || *str.Str != "a\tb" || str.Line != 2 || str.Col != 5 {
		t.Errorf("string record %+v", str)
	}
	if f := records[5]; f.Float == nil || *f.Float != 2.5 || f.Int != nil {
		t.Errorf("float record %+v", f)
	}
	if records[0].Int != nil || records[0].Str != nil {
		t.Errorf("keyword record carries a value: %+v", records[0])
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	fs, tokens := lexSample(t, tokensSample+"true false 0 -7 <= >= ! [ ] . , { }", lexer.Options{PromoteLiterals: true})
	var buf bytes.Buffer
	if err := FormatTokensMsgpack(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeTokensMsgpack(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != len(tokens) {
		t.Fatalf("decoded %d tokens, want %d", len(decoded), len(tokens))
	}
	for i := range tokens {
		a, b := tokens[i], decoded[i]
		if a.String() != b.String() || a.Span != b.Span || a.Text != b.Text {
			t.Errorf("token %d: %v %v -> %v %v", i, a, a.Span, b, b.Span)
		}
	}
}

func TestTokenRecordErrors(t *testing.T) {
	bad := []TokenRecord{
		{Kind: "Bogus"},
		{Kind: "Keyword", Text: "nope"},
		{Kind: "BuiltinFunc", Text: "write"},
		{Kind: "BuiltinFunc", Text: "Ifj.nope"},
		{Kind: "Operator", Text: "=>"},
		{Kind: "Punctuation", Text: ":"},
		{Kind: "IntLit", Text: "1"},
		{Kind: "FloatLit", Text: "1.0"},
		{Kind: "StringLit", Text: `""`},
		{Kind: "BoolLit", Text: "true"},
	}
	for _, rec := range bad {
		if tok, err := rec.Token(); err == nil {
			t.Errorf("%+v rebuilt as %v", rec, tok)
		}
	}
}
