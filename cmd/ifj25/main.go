package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ifj25/internal/version"
)

// Exit statuses: 1 for lexical errors, 99 for everything else.
const (
	exitLexical  = 1
	exitInternal = 99
)

var rootCmd = &cobra.Command{
	Use:   "ifj25",
	Short: "IFJ25 lexical analyzer",
	Long:  `ifj25 tokenizes IFJ25 (Wren subset) source files and reports lexical errors`,

	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepareRun,
}

// exitError carries a process exit status through cobra.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func init() {
	rootCmd.Version = version.Current().Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to collect per file")
	flags.String("config", "", "path to ifj25.toml (default: nearest one upwards from the working directory)")
	flags.String("log-level", "warn", "log level (trace|debug|info|warn|error)")
	flags.String("log-format", "text", "log format (text|json)")
	flags.String("ui", "auto", "progress UI for multi-file runs (auto|on|off)")

	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "ring buffer capacity for trace-mode ring|both")
	flags.Duration("trace-heartbeat", 0, "emit a trace heartbeat at this interval (0 disables)")

	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
}

func main() {
	os.Exit(run())
}

func run() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(os.Stderr, "ifj25: %v\n", err)
	return exitInternal
}

// prepareRun loads the configuration and sets up logging for every command.
func prepareRun(cmd *cobra.Command, _ []string) error {
	if err := loadActiveConfig(cmd); err != nil {
		return err
	}
	if err := applyConfigDefaults(cmd.Root().PersistentFlags(), rootDefaults(activeConfig)); err != nil {
		return err
	}
	return setupLogging(cmd)
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// useColor resolves --color for output going to f; an invalid value
// behaves like auto.
func useColor(cmd *cobra.Command, f *os.File) bool {
	sw, _ := readSwitch(cmd.Root().PersistentFlags(), "color")
	return sw.on(f)
}
