package diag

import "ifj25/internal/source"

// Reporter receives diagnostics as a producer finds them.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	f(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
}

// BagReporter collects into Bag; a nil Bag drops everything.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		ReporterFunc(func(d Diagnostic) { r.Bag.Add(d) }).Report(code, sev, primary, msg, notes)
	}
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}
