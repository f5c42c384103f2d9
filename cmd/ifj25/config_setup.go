package main

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ifj25/internal/config"
)

// activeConfig is the ifj25.toml in effect for this run.
var activeConfig = config.Default()

func loadActiveConfig(cmd *cobra.Command) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		activeConfig = cfg
		return nil
	}
	cfg, found, err := config.Discover(".")
	if err != nil {
		return err
	}
	if found {
		log.WithField("path", cfg.Path).Debug("using config")
	}
	activeConfig = cfg
	return nil
}

// applyConfigDefaults copies values into flags the user left untouched, so
// explicit flags always win over ifj25.toml.
func applyConfigDefaults(flags *pflag.FlagSet, values map[string]string) error {
	for name, value := range values {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("%s: invalid value %q for %s: %w", activeConfig.Path, value, name, err)
		}
	}
	return nil
}

func tokenizeDefaults(cfg config.Config) map[string]string {
	t := cfg.Tokenize
	return map[string]string{
		"format":           t.Format,
		"recover":          strconv.FormatBool(t.Recover),
		"promote-literals": strconv.FormatBool(t.PromoteLiterals),
		"max-token-length": strconv.Itoa(t.MaxTokenLength),
		"jobs":             strconv.Itoa(t.Jobs),
		"cache":            strconv.FormatBool(t.Cache),
		"path-mode":        t.PathMode,
	}
}

func rootDefaults(cfg config.Config) map[string]string {
	return map[string]string{
		"max-diagnostics": strconv.Itoa(cfg.Tokenize.MaxDiagnostics),
		"trace":           cfg.Trace.Output,
		"trace-level":     cfg.Trace.Level,
		"trace-mode":      cfg.Trace.Mode,
		"trace-ring-size": strconv.Itoa(cfg.Trace.RingSize),
	}
}
