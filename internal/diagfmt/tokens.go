package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"ifj25/internal/diag"
	"ifj25/internal/source"
	"ifj25/internal/token"
)

// detailWidth bounds the payload column of the pretty listing.
const detailWidth = 40

// TokenRecord is the serialized form of a token shared by the JSON and
// msgpack outputs. Exactly one of the value fields is set for literals.
type TokenRecord struct {
	Kind  string      `json:"kind" msgpack:"kind"`
	Text  string      `json:"text" msgpack:"text"`
	Span  source.Span `json:"span" msgpack:"span"`
	Line  uint32      `json:"line,omitempty" msgpack:"line,omitempty"`
	Col   uint32      `json:"col,omitempty" msgpack:"col,omitempty"`
	Int   *int64      `json:"int,omitempty" msgpack:"int,omitempty"`
	Float *float64    `json:"float,omitempty" msgpack:"float,omitempty"`
	Str   *string     `json:"str,omitempty" msgpack:"str,omitempty"`
	Bool  *bool       `json:"bool,omitempty" msgpack:"bool,omitempty"`
}

// NewTokenRecord converts tok; fs may be nil, then Line and Col stay zero.
func NewTokenRecord(tok token.Token, fs *source.FileSet) TokenRecord {
	rec := TokenRecord{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span}
	if lookupFile(fs, tok.Span.File) != nil {
		start, _ := fs.Resolve(tok.Span)
		rec.Line, rec.Col = start.Line, start.Col
	}
	if v, ok := tok.Int(); ok {
		rec.Int = &v
	}
	if v, ok := tok.Float(); ok {
		rec.Float = &v
	}
	if tok.Kind == token.StringLit {
		v, _ := tok.Str()
		rec.Str = &v
	}
	if v, ok := tok.Bool(); ok {
		rec.Bool = &v
	}
	return rec
}

// Token rebuilds the token described by r.
func (r TokenRecord) Token() (token.Token, error) {
	kind, ok := token.ParseKind(r.Kind)
	if !ok {
		return token.Token{}, errors.Errorf("unknown token kind %q", r.Kind)
	}
	sp := r.Span
	switch kind {
	case token.EOF:
		return token.NewEOF(sp), nil
	case token.Keyword:
		if kw, ok := token.LookupKeyword(r.Text); ok {
			return token.NewKeyword(kw, sp, r.Text), nil
		}
	case token.Ident:
		return token.NewIdent(sp, r.Text), nil
	case token.BuiltinFunc:
		if name, found := strings.CutPrefix(r.Text, token.BuiltinNamespace+"."); found {
			if b, ok := token.LookupBuiltin(name); ok {
				return token.NewBuiltin(b, sp, r.Text), nil
			}
		}
	case token.Punctuation:
		if p, ok := token.LookupPunct(r.Text); ok {
			return token.NewPunct(p, sp), nil
		}
	case token.Operator:
		if o, ok := token.LookupOp(r.Text); ok {
			return token.NewOp(o, sp), nil
		}
	case token.IntLit:
		if r.Int != nil {
			return token.NewInt(*r.Int, sp, r.Text), nil
		}
	case token.FloatLit:
		if r.Float != nil {
			return token.NewFloat(*r.Float, sp, r.Text), nil
		}
	case token.StringLit:
		if r.Str != nil {
			return token.NewString(*r.Str, sp, r.Text), nil
		}
	case token.NilLit:
		return token.NewNil(sp, r.Text), nil
	case token.BoolLit:
		if r.Bool != nil {
			return token.NewBool(*r.Bool, sp, r.Text), nil
		}
	}
	return token.Token{}, errors.Errorf("malformed %s record %q", r.Kind, r.Text)
}

// TokenRecords converts a token stream.
func TokenRecords(tokens []token.Token, fs *source.FileSet) []TokenRecord {
	out := make([]TokenRecord, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, NewTokenRecord(tok, fs))
	}
	return out
}

// FormatTokensPretty writes one line per token: index, kind, payload and position.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		detail := tok.Detail()
		if tok.Kind == token.Keyword || tok.Kind == token.BuiltinFunc || tok.Kind == token.Ident {
			detail = tok.Text
		}
		detail = runewidth.Truncate(detail, detailWidth, "...")
		if _, err := fmt.Fprintf(w, "%4d: %-12s %-*s", i+1, tok.Kind, detailWidth, detail); err != nil {
			return err
		}
		if lookupFile(fs, tok.Span.File) != nil {
			start, end := fs.Resolve(tok.Span)
			if _, err := fmt.Fprintf(w, " %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col); err != nil {
				return err
			}
		} else if _, err := fmt.Fprintf(w, " @%d-%d", tok.Span.Start, tok.Span.End); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensKinds reproduces the classic driver listing: a banner, one
// "Token: <LABEL>" line per token, every lexer error, then "Reached EOF"
// if the stream ended cleanly.
func FormatTokensKinds(w io.Writer, tokens []token.Token, bag *diag.Bag) error {
	var b strings.Builder
	b.WriteString("Starting lexical analysis!\n")
	reachedEOF := false
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			reachedEOF = true
			continue
		}
		fmt.Fprintf(&b, "Token: %s\n", tok.Kind.Label())
	}
	if bag != nil {
		for _, d := range bag.Items() {
			if d.Severity >= diag.SevError {
				fmt.Fprintf(&b, "Lexer Error: %s\n", d.Message)
			}
		}
	}
	if reachedEOF {
		b.WriteString("Reached EOF\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatTokensJSON writes the token stream as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(TokenRecords(tokens, fs))
}

// FormatTokensMsgpack writes the token stream as one msgpack array of records.
func FormatTokensMsgpack(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return enc.Encode(TokenRecords(tokens, fs))
}

// DecodeTokensMsgpack reads a stream written by FormatTokensMsgpack.
func DecodeTokensMsgpack(r io.Reader) ([]token.Token, error) {
	var records []TokenRecord
	if err := msgpack.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.Wrap(err, "decode token stream")
	}
	out := make([]token.Token, 0, len(records))
	for i, rec := range records {
		tok, err := rec.Token()
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		out = append(out, tok)
	}
	return out, nil
}
