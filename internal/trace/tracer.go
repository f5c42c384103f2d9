package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives trace events. Implementations must be safe for
// concurrent use: files are lexed in parallel.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// DefaultRingSize is the ring capacity used when none is configured.
const DefaultRingSize = 4096

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // kept in memory for a dump
	ModeBoth
)

func (m StorageMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	}
	return "unknown"
}

// ParseMode parses a --trace-mode value. Empty means stream.
func ParseMode(s string) (StorageMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	}
	return 0, fmt.Errorf("invalid trace mode: %q (expected: stream|ring|both)", s)
}

// Config describes a tracer built by New.
type Config struct {
	Level  Level
	Mode   StorageMode
	Format Format // FormatAuto picks by OutputPath extension

	// Output, when set, receives stream events and is never closed by the
	// tracer. Otherwise OutputPath is created; "" and "-" mean stderr.
	Output     io.Writer
	OutputPath string

	RingSize int
}

// New builds the tracer described by cfg. LevelOff yields Nop regardless
// of the other fields.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = formatForPath(cfg.OutputPath)
	}

	switch cfg.Mode {
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeStream, ModeBoth:
		w, owned, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		stream := newStreamTracer(w, owned, cfg.Level, format)
		if cfg.Mode == ModeStream {
			return stream, nil
		}
		return NewMultiTracer(cfg.Level, stream, NewRingTracer(cfg.RingSize, cfg.Level)), nil
	}
	return nil, fmt.Errorf("unknown trace mode: %v", cfg.Mode)
}

func formatForPath(path string) Format {
	switch {
	case strings.HasSuffix(path, ".ndjson"):
		return FormatNDJSON
	case strings.HasSuffix(path, ".json"):
		return FormatChrome
	}
	return FormatText
}

// openOutput returns the stream destination and, for files it created,
// the closer the tracer is responsible for.
func openOutput(cfg Config) (io.Writer, io.Closer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return os.Stderr, nil, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, f, nil
}

// accepts reports whether a tracer at level records ev. Heartbeats pass
// any enabled level so hangs stay visible at coarse settings.
func accepts(level Level, ev *Event) bool {
	if ev.Kind == KindHeartbeat {
		return level > LevelOff
	}
	return level.ShouldEmit(ev.Scope)
}
