// Package prof wraps runtime/pprof and runtime/trace for the CLI profiling flags.
package prof

import (
	"errors"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Config names the output files; an empty path disables that profile.
type Config struct {
	CPUPath   string
	MemPath   string
	TracePath string
}

// Session is a running set of profiles.
type Session struct {
	cpuFile   *os.File
	traceFile *os.File
	memPath   string
	stopped   bool
}

// Start enables the profiles requested by cfg. On error nothing stays running.
func Start(cfg Config) (*Session, error) {
	s := &Session{memPath: cfg.MemPath}
	if cfg.CPUPath != "" {
		f, err := os.Create(cfg.CPUPath)
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, err
		}
		s.cpuFile = f
	}
	if cfg.TracePath != "" {
		f, err := os.Create(cfg.TracePath)
		if err != nil {
			s.stopCPU()
			return nil, err
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.stopCPU()
			return nil, err
		}
		s.traceFile = f
	}
	return s, nil
}

// Stop ends the trace and CPU profile, then writes the heap profile.
// Calling it twice is a no-op.
func (s *Session) Stop() error {
	if s == nil || s.stopped {
		return nil
	}
	s.stopped = true
	var errs []error
	if s.traceFile != nil {
		trace.Stop()
		errs = append(errs, s.traceFile.Close())
	}
	errs = append(errs, s.stopCPU())
	if s.memPath != "" {
		errs = append(errs, writeMem(s.memPath))
	}
	return errors.Join(errs...)
}

func (s *Session) stopCPU() error {
	if s.cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := s.cpuFile.Close()
	s.cpuFile = nil
	return err
}

func writeMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
