package trace

import (
	"io"
	"sync"
)

const (
	chromeHeader = "{\"traceEvents\":[\n"
	chromeSep    = ",\n"
	chromeFooter = "\n]}\n"
)

// StreamTracer formats and writes each event as it arrives.
// Write errors are ignored: a broken trace sink never fails a run.
type StreamTracer struct {
	mu      sync.Mutex
	w       io.Writer
	owned   io.Closer // non-nil when the tracer opened w itself
	level   Level
	format  Format
	written int
	closed  bool
}

// NewStreamTracer writes to w, which stays open after Close.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return newStreamTracer(w, nil, level, format)
}

func newStreamTracer(w io.Writer, owned io.Closer, level Level, format Format) *StreamTracer {
	t := &StreamTracer{w: w, owned: owned, level: level, format: format}
	if format == FormatChrome {
		_, _ = io.WriteString(w, chromeHeader) //nolint:errcheck
	}
	return t
}

// Emit writes ev. Sequence numbers are assigned under the lock so they
// increase in output order even with concurrent emitters.
func (t *StreamTracer) Emit(ev *Event) {
	if !accepts(t.level, ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	ev.Seq = NextSeq()
	if t.format == FormatChrome && t.written > 0 {
		_, _ = io.WriteString(t.w, chromeSep) //nolint:errcheck
	}
	_, _ = t.w.Write(FormatEvent(ev, t.format)) //nolint:errcheck
	t.written++
}

// Flush forwards to the writer when it buffers (bufio.Writer and friends).
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flushLocked()
}

func (t *StreamTracer) flushLocked() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close terminates a chrome document, flushes, and closes the output if
// the tracer opened it. Later calls are no-ops.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.format == FormatChrome {
		_, _ = io.WriteString(t.w, chromeFooter) //nolint:errcheck
	}
	err := t.flushLocked()
	if t.owned != nil {
		if cerr := t.owned.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
