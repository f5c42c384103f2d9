package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ifj25/internal/config"
	"ifj25/internal/diagfmt"
	"ifj25/internal/driver"
	"ifj25/internal/lexer"
)

const stdinName = "<stdin>"

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file.wren|dir|-]...",
	Short: "Tokenize IFJ25 source files",
	Long: `Tokenize breaks IFJ25 sources into tokens. Directories are searched for
*.wren files; with no arguments or "-" the source is read from stdin.
The exit status is 1 when any lexical error was found.`,
	RunE: runTokenize,
}

func init() {
	f := tokenizeCmd.Flags()
	f.String("format", "pretty", "output format (pretty|kinds|json|msgpack)")
	f.Bool("recover", false, "report the error and keep lexing instead of stopping at the first one")
	f.Bool("promote-literals", false, "lex null, true and false as literals")
	f.Int("max-token-length", 0, "longest accepted lexeme in bytes (0 = 1 MiB, -1 = unlimited)")
	f.Int("jobs", 0, "number of files tokenized in parallel (0 = GOMAXPROCS)")
	f.Bool("cache", false, "reuse token streams from the on-disk cache")
	f.Bool("clear-cache", false, "drop the token cache before running")
	f.String("path-mode", "auto", "how file paths are printed (auto|absolute|relative|basename)")
}

type tokenizeFlags struct {
	format          string
	recover         bool
	promoteLiterals bool
	maxTokenLength  int
	jobs            int
	cache           bool
	clearCache      bool
	pathMode        diagfmt.PathMode
	maxDiagnostics  int
	quiet           bool
	timings         bool
	ui              terminalSwitch
}

func readTokenizeFlags(cmd *cobra.Command) (tokenizeFlags, error) {
	var (
		tf  tokenizeFlags
		err error
	)
	flags := cmd.Flags()
	if tf.format, err = flags.GetString("format"); err != nil {
		return tf, fmt.Errorf("failed to get format flag: %w", err)
	}
	if !isFormat(tf.format) {
		return tf, fmt.Errorf("unknown format: %s", tf.format)
	}
	if tf.recover, err = flags.GetBool("recover"); err != nil {
		return tf, fmt.Errorf("failed to get recover flag: %w", err)
	}
	if tf.promoteLiterals, err = flags.GetBool("promote-literals"); err != nil {
		return tf, fmt.Errorf("failed to get promote-literals flag: %w", err)
	}
	if tf.maxTokenLength, err = flags.GetInt("max-token-length"); err != nil {
		return tf, fmt.Errorf("failed to get max-token-length flag: %w", err)
	}
	if tf.jobs, err = flags.GetInt("jobs"); err != nil {
		return tf, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if tf.cache, err = flags.GetBool("cache"); err != nil {
		return tf, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if tf.clearCache, err = flags.GetBool("clear-cache"); err != nil {
		return tf, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	pathMode, err := flags.GetString("path-mode")
	if err != nil {
		return tf, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if tf.pathMode, ok = diagfmt.ParsePathMode(pathMode); !ok {
		return tf, fmt.Errorf("invalid --path-mode %q (expected auto|absolute|relative|basename)", pathMode)
	}

	root := cmd.Root().PersistentFlags()
	if tf.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return tf, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if tf.quiet, err = root.GetBool("quiet"); err != nil {
		return tf, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if tf.timings, err = root.GetBool("timings"); err != nil {
		return tf, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if tf.ui, err = readSwitch(root, "ui"); err != nil {
		return tf, err
	}
	return tf, nil
}

func isFormat(s string) bool { return slices.Contains(config.Formats, s) }

func (tf tokenizeFlags) driverOptions() driver.Options {
	return driver.Options{
		Lexer: lexer.Options{
			MaxTokenLength:  tf.maxTokenLength,
			PromoteLiterals: tf.promoteLiterals,
		},
		MaxDiagnostics: tf.maxDiagnostics,
		Recover:        tf.recover,
	}
}

func runTokenize(cmd *cobra.Command, args []string) error {
	if err := applyConfigDefaults(cmd.Flags(), tokenizeDefaults(activeConfig)); err != nil {
		return err
	}
	tf, err := readTokenizeFlags(cmd)
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := tf.driverOptions()
	if tf.cache || tf.clearCache {
		cache, err := driver.OpenTokenCache("ifj25")
		if err != nil {
			return fmt.Errorf("failed to open token cache: %w", err)
		}
		if tf.clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear token cache: %w", err)
			}
			log.WithField("dir", cache.Dir()).Info("token cache cleared")
		}
		if tf.cache {
			opts.Cache = cache
		}
	}

	start := time.Now()
	results, err := collectResults(cmd.Context(), cmd.InOrStdin(), args, opts, tf)
	if err != nil {
		return err
	}

	ro := renderOptions{
		format:   tf.format,
		pathMode: tf.pathMode,
		color:    useColor(cmd, os.Stderr),
		multi:    len(results) > 1,
	}
	if err := renderResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, ro); err != nil {
		return err
	}

	failed, unloaded := 0, 0
	for _, res := range results {
		entry := log.WithFields(log.Fields{
			"file":   res.Path,
			"tokens": len(res.Tokens),
			"errors": res.Bag.Len(),
			"cached": res.Cached,
		})
		if res.File != nil {
			entry = entry.WithField("source", res.File.Flags)
		}
		entry.Debug("tokenized")
		if res.CacheErr != nil {
			entry.WithError(res.CacheErr).Warn("token cache unavailable")
		}
		switch {
		case res.File == nil:
			unloaded++
		case res.HasErrors():
			failed++
		}
	}
	if !tf.quiet {
		if ro.multi {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d files, %d with lexical errors", len(results), failed)
			if unloaded > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), ", %d not loaded", unloaded)
			}
			fmt.Fprintln(cmd.ErrOrStderr())
		}
		if tf.timings {
			printTimings(cmd.ErrOrStderr(), results, time.Since(start))
		}
	}
	if unloaded > 0 {
		return &exitError{code: exitInternal}
	}
	if failed > 0 {
		return &exitError{code: exitLexical}
	}
	return nil
}

// collectResults dispatches between stdin, a single file and a parallel run.
func collectResults(ctx context.Context, stdin io.Reader, args []string, opts driver.Options, tf tokenizeFlags) ([]*driver.TokenizeResult, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		res, err := driver.TokenizeReader(ctx, stdinName, stdin, opts)
		if err != nil {
			return nil, err
		}
		return []*driver.TokenizeResult{res}, nil
	}
	for _, arg := range args {
		if arg == "-" {
			return nil, fmt.Errorf("stdin (-) cannot be combined with files")
		}
	}

	paths, err := driver.ExpandPaths(args)
	if err != nil {
		return nil, err
	}
	switch len(paths) {
	case 0:
		return nil, fmt.Errorf("no %s files found", driver.SourceExt)
	case 1:
		res, err := driver.Tokenize(ctx, paths[0], opts)
		if err != nil {
			return nil, err
		}
		return []*driver.TokenizeResult{res}, nil
	}

	var results []*driver.TokenizeResult
	if tf.ui.on(os.Stderr) && !tf.quiet {
		_, results, err = runTokenizeWithUI(ctx, "tokenize", paths, opts, tf.jobs)
	} else {
		_, results, err = driver.TokenizeFiles(ctx, paths, opts, tf.jobs)
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

type renderOptions struct {
	format   string
	pathMode diagfmt.PathMode
	color    bool
	multi    bool
}

type fileTokensJSON struct {
	Path        string                    `json:"path"`
	Tokens      []diagfmt.TokenRecord     `json:"tokens"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

// renderResults writes tokens to out and diagnostics to errOut. The kinds
// listing carries its own error lines; multi-file JSON embeds diagnostics.
func renderResults(out, errOut io.Writer, results []*driver.TokenizeResult, ro renderOptions) error {
	if ro.format == "json" && ro.multi {
		files := make([]fileTokensJSON, 0, len(results))
		for _, res := range results {
			files = append(files, fileTokensJSON{
				Path:   res.Path,
				Tokens: diagfmt.TokenRecords(res.Tokens, res.FileSet),
				Diagnostics: diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, diagfmt.JSONOpts{
					IncludePositions: true,
					PathMode:         ro.pathMode,
					IncludeNotes:     true,
				}),
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	}

	for i, res := range results {
		if ro.multi && (ro.format == "pretty" || ro.format == "kinds") {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "==> %s <==\n", res.Path)
		}

		var err error
		switch ro.format {
		case "pretty":
			err = diagfmt.FormatTokensPretty(out, res.Tokens, res.FileSet)
		case "kinds":
			err = diagfmt.FormatTokensKinds(out, res.Tokens, res.Bag)
		case "json":
			err = diagfmt.FormatTokensJSON(out, res.Tokens, res.FileSet)
		case "msgpack":
			err = diagfmt.FormatTokensMsgpack(out, res.Tokens, res.FileSet)
		default:
			err = fmt.Errorf("unknown format: %s", ro.format)
		}
		if err != nil {
			return err
		}

		if ro.format != "kinds" && res.Bag.Len() > 0 {
			res.Bag.Sort()
			diagfmt.Pretty(errOut, res.Bag, res.FileSet, diagfmt.PrettyOpts{
				Color:     ro.color,
				Context:   2,
				PathMode:  ro.pathMode,
				Width:     120,
				ShowNotes: true,
			})
		}
	}
	return nil
}
