package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find = %q, %v, %v", got, ok, err)
	}
	if got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[tokenize]
format = "kinds"
recover = true
jobs = 4
max-token-length = 256

[trace]
level = "phase"
output = "trace.ndjson"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q", cfg.Path)
	}
	tk := cfg.Tokenize
	if tk.Format != "kinds" || !tk.Recover || tk.Jobs != 4 || tk.MaxTokenLength != 256 {
		t.Errorf("tokenize = %+v", tk)
	}
	if tk.MaxDiagnostics != 100 || tk.PathMode != "auto" {
		t.Errorf("defaults lost: %+v", tk)
	}
	if cfg.Trace.Level != "phase" || cfg.Trace.Mode != "stream" || cfg.Trace.Output != "trace.ndjson" {
		t.Errorf("trace = %+v", cfg.Trace)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[tokenize\n", "failed to parse TOML"},
		{"unknown key", "[tokenize]\ncolour = true\n", "unknown keys: tokenize.colour"},
		{"format", "[tokenize]\nformat = \"xml\"\n", "[tokenize].format"},
		{"negative jobs", "[tokenize]\njobs = -1\n", "[tokenize].jobs"},
		{"path mode", "[tokenize]\npath-mode = \"short\"\n", "[tokenize].path-mode"},
		{"trace level", "[trace]\nlevel = \"loud\"\n", "[trace].level"},
		{"trace mode", "[trace]\nmode = \"file\"\n", "[trace].mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[tokenize]\npromote-literals = true\n")
	cfg, ok, err := Discover(dir)
	if err != nil || !ok {
		t.Fatalf("Discover = %v, %v", ok, err)
	}
	if !cfg.Tokenize.PromoteLiterals {
		t.Error("promote-literals not loaded")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
}
