package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ifj25/internal/diag"
	"ifj25/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	gutter, caret   *color.Color
	note            *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders diagnostics for humans. Items are printed in bag order, so
// callers usually Sort first. Each entry looks like
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line(s) and a ^~~~ underline of the primary span.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, pal)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "... %d more diagnostic(s) suppressed (limit %d)\n", n, bag.Cap())
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := lookupFile(fs, d.Primary.File)
	if f == nil {
		fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity).Sprint(d.Severity), pal.code.Sprint(d.Code.ID()), d.Message)
		return
	}
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		pal.path.Sprint(formatPath(f, opts.PathMode)), start.Line, start.Col,
		pal.severity(d.Severity).Sprint(d.Severity), pal.code.Sprint(d.Code.ID()), d.Message)

	ctx := uint32(max(opts.Context, 0)) // #nosec G115 -- non-negative int8
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, uint32(len(f.LineIdx))+1) // #nosec G115
	gutterWidth := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		line := f.Line(ln)
		shown := expandTabs(line)
		if opts.Width > 0 {
			shown = runewidth.Truncate(shown, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), shown)
		if ln == start.Line {
			fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), pal.caret.Sprint(underline(line, start, end)))
		}
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := lookupFile(fs, n.Span.File)
			if nf == nil {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
				continue
			}
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"), formatPath(nf, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
}

// underline builds the caret line for a span starting on line. A span that
// continues past the line is underlined up to the line end.
func underline(line string, start, end source.LineCol) string {
	startByte := clampCol(line, start.Col)
	endByte := len(line)
	if end.Line == start.Line {
		endByte = clampCol(line, end.Col)
	}
	if endByte < startByte {
		endByte = startByte
	}
	pad := runewidth.StringWidth(expandTabs(line[:startByte]))
	width := runewidth.StringWidth(expandTabs(line[startByte:endByte]))
	if width < 1 {
		width = 1
	}
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
}

func clampCol(line string, col uint32) int {
	if col == 0 {
		return 0
	}
	if int(col-1) > len(line) {
		return len(line)
	}
	return int(col - 1)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
