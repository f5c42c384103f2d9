package trace

import "time"

// Kind tells span boundaries, instants and heartbeats apart.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	}
	return "unknown"
}

// Scope is the granularity of an event. Smaller values are coarser, which
// is what Level.ShouldEmit relies on.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // a whole CLI operation
	ScopePass                    // load or lex of one input
	ScopeFile                    // one file in a multi-file run
	ScopeToken                   // one token or lexical error
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeFile:
		return "file"
	case ScopeToken:
		return "token"
	}
	return "unknown"
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // global order; stream tracers reassign it on write
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // 0 for points and heartbeats
	ParentID uint64 // enclosing span, 0 at the root
	GID      uint64 // emitting goroutine
	Name     string // "tokenize", "lex", "file:prog.wren", "token"
	Detail   string
	Extra    map[string]string
}
