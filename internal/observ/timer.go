package observ

import (
	"fmt"
	"strings"
	"time"
)

type phase struct {
	name    string
	started time.Time
	dur     time.Duration
	note    string
}

// Timer records named, sequential phases of one input's processing.
// It is not safe for concurrent use; parallel runs keep one per file.
type Timer struct {
	phases []phase
}

func NewTimer() *Timer { return &Timer{phases: make([]phase, 0, 4)} }

// Begin opens a phase and returns a handle for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, phase{name: name, started: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase opened under idx. Unknown handles are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.dur = time.Since(p.started)
	p.note = note
}

// Time runs fn as one phase; fn's result becomes the phase note.
func (t *Timer) Time(name string, fn func() string) {
	idx := t.Begin(name)
	t.End(idx, fn())
}

// PhaseReport is one finished phase.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report is the serialisable form of a Timer.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

// Report snapshots the phases. An unused timer yields the zero Report.
func (t *Timer) Report() Report {
	var r Report
	for _, p := range t.phases {
		ms := millis(p.dur)
		r.TotalMS += ms
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: ms, Note: p.note})
	}
	return r
}

// Add folds other into r, summing phases that share a name. Phase order
// follows first appearance.
func (r *Report) Add(other Report) {
	r.TotalMS += other.TotalMS
next:
	for _, p := range other.Phases {
		for i := range r.Phases {
			if r.Phases[i].Name == p.Name {
				r.Phases[i].DurationMS += p.DurationMS
				continue next
			}
		}
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: p.DurationMS})
	}
}

// Line renders "1.23 ms | load 0.10 ms | lex 1.13 ms".
func (r Report) Line() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%.2f ms", r.TotalMS)
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, " | %s %.2f ms", p.Name, p.DurationMS)
	}
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
