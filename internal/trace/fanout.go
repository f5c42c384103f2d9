package trace

import "errors"

// Nop discards every event.
var Nop Tracer = nopTracer{}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// MultiTracer forwards each event to a fixed set of tracers. It backs the
// "both" storage mode: a live stream plus a ring kept for post-mortem dumps.
type MultiTracer struct {
	level   Level
	tracers []Tracer
}

// NewMultiTracer combines tracers. Disabled and nil tracers are skipped.
// With level LevelOff the most verbose member level is used instead.
func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	m := &MultiTracer{level: level}
	for _, t := range tracers {
		if t == nil || !t.Enabled() {
			continue
		}
		m.tracers = append(m.tracers, t)
		if level == LevelOff && t.Level() > m.level {
			m.level = t.Level()
		}
	}
	return m
}

func (m *MultiTracer) Emit(ev *Event) {
	for _, t := range m.tracers {
		t.Emit(ev)
	}
}

// Flush flushes every member and joins their errors.
func (m *MultiTracer) Flush() error {
	var errs []error
	for _, t := range m.tracers {
		errs = append(errs, t.Flush())
	}
	return errors.Join(errs...)
}

// Close closes every member, even after a failure, and joins their errors.
func (m *MultiTracer) Close() error {
	var errs []error
	for _, t := range m.tracers {
		errs = append(errs, t.Close())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Level() Level  { return m.level }
func (m *MultiTracer) Enabled() bool { return m.level > LevelOff && len(m.tracers) > 0 }

// Tracers returns the members in emit order.
func (m *MultiTracer) Tracers() []Tracer { return m.tracers }
