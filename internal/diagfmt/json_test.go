package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"ifj25/internal/diag"
	"ifj25/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("class Main {\n\tvar x = \"unterminated\n}")
	fileID := fs.AddVirtual("test.wren", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 22, End: 36},
		"unterminated string literal",
	))

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %+v", output)
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" || d.Message != "unterminated string literal" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if d.Location.File != "test.wren" {
		t.Errorf("Expected file=test.wren, got %s", d.Location.File)
	}
	if d.Location.StartByte != 22 || d.Location.EndByte != 36 {
		t.Errorf("bytes %d..%d", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 10 {
		t.Errorf("Expected 2:10, got %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
	if d.Location.EndLine != 3 || d.Location.EndCol != 1 {
		t.Errorf("Expected end 3:1, got %d:%d", d.Location.EndLine, d.Location.EndCol)
	}
}

func TestJSONNotesAndMax(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.wren", []byte("a # b @ c"))

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.LexInvalidCharacter, source.Span{File: fileID, Start: 2, End: 3}, `unexpected character "#"`).
		WithNote(source.Span{File: fileID, Start: 0, End: 1}, "after this identifier"))
	bag.Add(diag.NewError(diag.LexInvalidCharacter, source.Span{File: fileID, Start: 6, End: 7}, `unexpected character "@"`))

	output := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1, IncludeNotes: true})
	if output.Count != 1 || output.Dropped != 1 {
		t.Fatalf("count %d dropped %d", output.Count, output.Dropped)
	}
	d := output.Diagnostics[0]
	if len(d.Notes) != 1 || d.Notes[0].Message != "after this identifier" {
		t.Fatalf("notes = %+v", d.Notes)
	}
	if d.Location.StartLine != 0 {
		t.Errorf("positions not requested but StartLine = %d", d.Location.StartLine)
	}

	withoutNotes := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if withoutNotes.Count != 2 || withoutNotes.Diagnostics[0].Notes != nil {
		t.Errorf("unexpected %+v", withoutNotes)
	}
}

func TestJSONEmptyBag(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, diag.NewBag(0), source.NewFileSet(), JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	if list, ok := raw["diagnostics"].([]any); !ok || len(list) != 0 {
		t.Errorf("diagnostics should be an empty array, got %s", buf.String())
	}
}

func TestJSONQuotesShortSpans(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("q.wren", []byte("a # b\n\"open\nx"))

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.LexInvalidCharacter, source.Span{File: fileID, Start: 2, End: 3}, `unexpected character "#"`))
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: fileID, Start: 6, End: 12}, "unterminated string literal"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true})
	if got := out.Diagnostics[0].Location.Text; got != "#" {
		t.Errorf("Text = %q, want %q", got, "#")
	}
	if got := out.Diagnostics[1].Location.Text; got != "" {
		t.Errorf("multi-line span quoted as %q", got)
	}
	if plain := BuildDiagnosticsOutput(bag, fs, JSONOpts{}); plain.Diagnostics[0].Location.Text != "" {
		t.Error("Text requires IncludePositions")
	}
}
