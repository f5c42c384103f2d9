package diagfmt

import (
	"bytes"
	"encoding/json"
	"io"

	"ifj25/internal/diag"
	"ifj25/internal/source"
)

// maxQuotedText bounds LocationJSON.Text; longer spans are left unquoted.
const maxQuotedText = 64

type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
	// Text is the source under a short single-line span, such as the
	// offending character of an invalid-character error.
	Text string `json:"text,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the document written by JSON. Dropped counts both
// diagnostics the Bag refused and those cut by JSONOpts.Max.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(span source.Span) LocationJSON {
	f := lookupFile(b.fs, span.File)
	loc := LocationJSON{File: formatPath(f, b.opts.PathMode), StartByte: span.Start, EndByte: span.End}
	if !b.opts.IncludePositions || f == nil {
		return loc
	}
	start, end := b.fs.Resolve(span)
	loc.StartLine, loc.StartCol = start.Line, start.Col
	loc.EndLine, loc.EndCol = end.Line, end.Col
	if span.End <= uint32(len(f.Content)) && span.Len() <= maxQuotedText { // #nosec G115 -- FileSet caps content size
		if text := f.Content[span.Start:span.End]; bytes.IndexByte(text, '\n') < 0 {
			loc.Text = string(text)
		}
	}
	return loc
}

func (b jsonBuilder) diagnostic(d diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: b.location(d.Primary),
	}
	if !b.opts.IncludeNotes {
		return out
	}
	for _, n := range d.Notes {
		out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: b.location(n.Span)})
	}
	return out
}

// BuildDiagnosticsOutput converts bag without serialising it, so callers
// can embed the result in a larger document.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	keep := len(items)
	if opts.Max > 0 {
		keep = min(keep, opts.Max)
	}
	b := jsonBuilder{fs: fs, opts: opts}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, keep),
		Dropped:     bag.Dropped() + len(items) - keep,
	}
	for _, d := range items[:keep] {
		out.Diagnostics = append(out.Diagnostics, b.diagnostic(d))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes bag as an indented DiagnosticsOutput document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
