package main

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// setupLogging configures the process-wide logrus logger from
// --log-level and --log-format. Logs always go to stderr.
func setupLogging(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	levelStr, err := flags.GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	formatStr, err := flags.GetString("log-format")
	if err != nil {
		return fmt.Errorf("failed to get log-format flag: %w", err)
	}

	level, err := log.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	switch strings.ToLower(formatStr) {
	case "text":
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("invalid --log-format %q (expected text|json)", formatStr)
	}
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(level)
	return nil
}
