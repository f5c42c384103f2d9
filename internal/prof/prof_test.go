package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func nonEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Errorf("%s is empty", filepath.Base(path))
	}
}

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		MemPath:   filepath.Join(dir, "mem.pprof"),
		TracePath: filepath.Join(dir, "run.trace"),
	}
	s, err := Start(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	nonEmpty(t, cfg.MemPath)
	nonEmpty(t, cfg.TracePath)
}

func TestStartFailsOnBadPath(t *testing.T) {
	_, err := Start(Config{TracePath: filepath.Join(t.TempDir(), "missing", "run.trace")})
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestNilSessionStop(t *testing.T) {
	var s *Session
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
}
