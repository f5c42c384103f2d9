package trace

import (
	"bytes"
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory. Nothing is written
// until Dump is called, usually when a run fails or is interrupted.
type RingTracer struct {
	mu    sync.Mutex
	level Level
	buf   []Event
	next  int // slot written by the next Emit
	count int // number of stored events, at most len(buf)
}

// NewRingTracer returns a ring holding up to capacity events.
// A non-positive capacity selects DefaultRingSize.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{level: level, buf: make([]Event, capacity)}
}

func (t *RingTracer) Emit(ev *Event) {
	if !accepts(t.level, ev) {
		return
	}
	t.mu.Lock()
	t.buf[t.next] = *ev
	t.next = (t.next + 1) % len(t.buf)
	if t.count < len(t.buf) {
		t.count++
	}
	t.mu.Unlock()
}

// Len reports how many events the ring currently holds.
func (t *RingTracer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Snapshot copies the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, t.count)
	oldest := (t.next - t.count + len(t.buf)) % len(t.buf)
	for i := range out {
		out[i] = t.buf[(oldest+i)%len(t.buf)]
	}
	return out
}

// Dump writes the stored events to w in one write. Chrome output is wrapped
// in a complete traceEvents document.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	chrome := format == FormatChrome

	var b bytes.Buffer
	if chrome {
		b.WriteString(chromeHeader)
	}
	for i := range events {
		if chrome && i > 0 {
			b.WriteString(chromeSep)
		}
		b.Write(FormatEvent(&events[i], format))
	}
	if chrome {
		b.WriteString(chromeFooter)
	}
	_, err := w.Write(b.Bytes())
	return err
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
