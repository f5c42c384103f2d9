package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var seqCounter, spanCounter atomic.Uint64

// NextSeq returns the next global event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh, non-zero span id.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// getGoroutineID parses the id out of the "goroutine N [...]" stack header.
// It returns 0 if the header has an unexpected shape.
func getGoroutineID() uint64 {
	var buf [64]byte
	header := buf[:runtime.Stack(buf[:], false)]
	header, ok := bytes.CutPrefix(header, []byte("goroutine "))
	if !ok {
		return 0
	}
	if i := bytes.IndexByte(header, ' '); i >= 0 {
		header = header[:i]
	}
	id, err := strconv.ParseUint(string(header), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Span is an open begin/end pair. A span whose scope is filtered out has
// id 0 and all its methods do nothing.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	gid     uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

func (s *Span) live() bool { return s != nil && s.id != 0 }

// Begin emits a span-begin event under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	s := &Span{
		tracer:  t,
		id:      NextSpanID(),
		parent:  parent,
		gid:     getGoroutineID(),
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return s
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		GID:      s.gid,
		Name:     s.name,
		Detail:   detail,
	}
}

// End emits the span-end event carrying detail and any extras, and
// returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now, detail)
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return now.Sub(s.started)
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span id, 0 for filtered spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      getGoroutineID(),
		Name:     name,
		Detail:   detail,
	})
}
