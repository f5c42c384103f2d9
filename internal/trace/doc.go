// Package trace provides a tracing subsystem for the ifj25 toolchain.
//
// The trace package records driver operations, lexing passes and per-file
// work to help diagnose slow runs and hangs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	ifj25 tokenize --trace=- --trace-level=phase prog.wren
//
// # Architecture
//
// Nop is used when tracing is off. StreamTracer writes every event as it
// arrives; RingTracer keeps the last events for a dump on exit; MultiTracer
// feeds both in "both" mode. A Heartbeat can be attached to any of them.
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything including per-token events
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "lex")
//	defer span.End("")
//
// Spans started from ctx nest under span; filtered spans leave ctx as is.
package trace
