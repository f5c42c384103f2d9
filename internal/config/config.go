// Package config loads ifj25.toml, the per-project defaults of the ifj25 CLI.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"ifj25/internal/diagfmt"
	"ifj25/internal/trace"
)

// FileName is the name looked up by Find.
const FileName = "ifj25.toml"

// Formats lists the accepted values of [tokenize].format.
var Formats = []string{"pretty", "kinds", "json", "msgpack"}

// Config mirrors the layout of ifj25.toml.
type Config struct {
	// Path is the file the values came from; empty for Default().
	Path     string         `toml:"-"`
	Tokenize TokenizeConfig `toml:"tokenize"`
	Trace    TraceConfig    `toml:"trace"`
}

type TokenizeConfig struct {
	Format          string `toml:"format"`
	MaxDiagnostics  int    `toml:"max-diagnostics"`
	MaxTokenLength  int    `toml:"max-token-length"`
	PromoteLiterals bool   `toml:"promote-literals"`
	Recover         bool   `toml:"recover"`
	Jobs            int    `toml:"jobs"`
	Cache           bool   `toml:"cache"`
	PathMode        string `toml:"path-mode"`
}

type TraceConfig struct {
	Level    string `toml:"level"`
	Mode     string `toml:"mode"`
	Output   string `toml:"output"`
	RingSize int    `toml:"ring-size"`
}

// Default returns the values used when no ifj25.toml is found.
func Default() Config {
	return Config{
		Tokenize: TokenizeConfig{
			Format:         "pretty",
			MaxDiagnostics: 100,
			PathMode:       "auto",
		},
		Trace: TraceConfig{
			Level:    "off",
			Mode:     "stream",
			RingSize: 4096,
		},
	}
}

// Find walks from startDir up to the filesystem root looking for ifj25.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to resolve start directory")
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !os.IsNotExist(err) {
			return "", false, errors.Wrapf(err, "failed to stat %q", candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over Default(). Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, errors.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Discover finds and loads the nearest ifj25.toml. Without one it returns
// Default() and false.
func Discover(startDir string) (Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), false, err
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	t := c.Tokenize
	if !isFormat(t.Format) {
		return errors.Errorf("[tokenize].format: unknown format %q (expected %s)", t.Format, strings.Join(Formats, "|"))
	}
	if t.MaxDiagnostics < 0 {
		return errors.Errorf("[tokenize].max-diagnostics: must not be negative, got %d", t.MaxDiagnostics)
	}
	if t.Jobs < 0 {
		return errors.Errorf("[tokenize].jobs: must not be negative, got %d", t.Jobs)
	}
	if _, ok := diagfmt.ParsePathMode(t.PathMode); !ok {
		return errors.Errorf("[tokenize].path-mode: unknown mode %q", t.PathMode)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return errors.Wrap(err, "[trace].level")
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return errors.Wrap(err, "[trace].mode")
	}
	if c.Trace.RingSize < 0 {
		return errors.Errorf("[trace].ring-size: must not be negative, got %d", c.Trace.RingSize)
	}
	return nil
}

func isFormat(s string) bool {
	for _, f := range Formats {
		if f == s {
			return true
		}
	}
	return false
}
