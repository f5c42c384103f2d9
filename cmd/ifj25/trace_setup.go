package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ifj25/internal/trace"
)

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context. The returned cleanup flushes and closes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// an output file alone turns tracing on at phase level
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}
	if traceOutput == "" {
		traceOutput = "-"
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	log.WithFields(log.Fields{"level": level, "mode": mode, "output": traceOutput}).Debug("tracing enabled")

	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	heartbeat := trace.StartHeartbeat(tracer, heartbeatInterval, runtimeProbe)

	return func() {
		heartbeat.Stop()
		if ring, ok := tracer.(*trace.RingTracer); ok {
			// ring-only tracers are dumped on exit
			if err := dumpRing(ring, traceOutput); err != nil {
				log.WithError(err).Warn("trace: dump failed")
			}
		}
		if err := tracer.Flush(); err != nil {
			log.WithError(err).Warn("trace: flush failed")
		}
		if err := tracer.Close(); err != nil {
			log.WithError(err).Warn("trace: close failed")
		}
	}, nil
}

// dumpRing writes the ring to path, or to stderr for "-".
func dumpRing(ring *trace.RingTracer, path string) error {
	if path == "-" {
		return ring.Dump(os.Stderr, trace.FormatText)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	format := trace.FormatText
	switch filepath.Ext(path) {
	case ".json":
		format = trace.FormatChrome
	case ".ndjson":
		format = trace.FormatNDJSON
	}
	if err := ring.Dump(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// runtimeProbe reports goroutine count and heap size on each heartbeat.
func runtimeProbe() map[string]string {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return map[string]string{
		"goroutines": strconv.Itoa(runtime.NumGoroutine()),
		"heap_kb":    strconv.FormatUint(ms.HeapAlloc/1024, 10),
	}
}
