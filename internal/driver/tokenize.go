package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"ifj25/internal/diag"
	"ifj25/internal/lexer"
	"ifj25/internal/observ"
	"ifj25/internal/source"
	"ifj25/internal/token"
	"ifj25/internal/trace"
)

// cancelCheckInterval is how many tokens are lexed between context checks.
const cancelCheckInterval = 1024

// TokenizeResult holds the outcome of tokenizing one file.
type TokenizeResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File // nil when the file could not be loaded
	Tokens  []token.Token
	Bag     *diag.Bag
	Halted  bool // lexing stopped at an error before EOF
	Cached  bool // tokens came from the TokenCache
	Timing  observ.Report
	// CacheErr is a non-fatal failure to read or write the cache.
	CacheErr error
}

// HasErrors reports whether any error diagnostic was recorded.
func (r *TokenizeResult) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// Tokenize loads path and lexes it until EOF or, unless opts.Recover is
// set, the first lexical error. The error return is reserved for load
// failures and cancellation; lexical errors end up in the result's Bag.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "tokenize")
	defer span.End("")

	fs := source.NewFileSet()
	timer := observ.NewTimer()

	idx := timer.Begin("load")
	fileID, err := fs.Load(path)
	timer.End(idx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return tokenizeLoaded(ctx, fs, fileID, opts, timer)
}

// TokenizeReader lexes r directly through a lexer.ReaderSource. The bytes
// consumed are kept as a virtual file named name so spans can be resolved;
// unlike Tokenize no BOM or CRLF normalisation is applied.
func TokenizeReader(ctx context.Context, name string, r io.Reader, opts Options) (*TokenizeResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "tokenize")
	defer span.End("")

	fs := source.NewFileSet()
	timer := observ.NewTimer()
	bag := diag.NewBag(opts.MaxDiagnostics)

	var raw bytes.Buffer
	lexOpts := opts.Lexer
	// the file is registered once lexing is over; it takes the next free id
	lexOpts.File = source.FileID(fs.Len()) // #nosec G115 -- fresh FileSet
	lx := lexer.New(lexer.NewReaderSource(io.TeeReader(r, &raw)), lexOpts)

	idx := timer.Begin("lex")
	tokens, halted, err := lexAll(ctx, lx, bag, opts.Recover)
	timer.End(idx, fmt.Sprintf("%d tokens", len(tokens)))
	if err != nil {
		return nil, err
	}

	fileID := fs.Add(name, raw.Bytes(), source.FileVirtual)
	return &TokenizeResult{
		Path:    name,
		FileSet: fs,
		File:    fs.Get(fileID),
		Tokens:  tokens,
		Bag:     bag,
		Halted:  halted,
		Timing:  timer.Report(),
	}, nil
}

func tokenizeLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options, timer *observ.Timer) (*TokenizeResult, error) {
	file := fs.Get(fileID)
	res := &TokenizeResult{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}

	var key CacheKey
	if opts.Cache != nil {
		key = opts.Cache.Key(file.Hash, opts)
		idx := timer.Begin("cache")
		hit, err := opts.Cache.Load(key, fileID, res)
		timer.End(idx, strconv.FormatBool(hit))
		if err != nil {
			res.CacheErr = err
		}
		if hit {
			res.Timing = timer.Report()
			return res, nil
		}
	}

	lexOpts := opts.Lexer
	lexOpts.File = fileID
	lx := lexer.NewFile(file, lexOpts)

	idx := timer.Begin("lex")
	tokens, halted, err := lexAll(ctx, lx, res.Bag, opts.Recover)
	timer.End(idx, fmt.Sprintf("%d tokens", len(tokens)))
	if err != nil {
		return nil, err
	}
	res.Tokens, res.Halted = tokens, halted

	if opts.Cache != nil {
		if err := opts.Cache.Store(key, res); err != nil && res.CacheErr == nil {
			res.CacheErr = err
		}
	}
	res.Timing = timer.Report()
	return res, nil
}

// lexAll drives lx to the end of input. Lexical errors are reported into
// bag; unless keepGoing is set the first one halts. A read failure always halts,
// and so does a full bag.
func lexAll(ctx context.Context, lx *lexer.Lexer, bag *diag.Bag, keepGoing bool) ([]token.Token, bool, error) {
	tracer := trace.FromContext(ctx)
	_, span := trace.StartSpan(ctx, trace.ScopePass, "lex")
	perToken := tracer.Enabled() && tracer.Level().ShouldEmit(trace.ScopeToken)
	reporter := diag.BagReporter{Bag: bag}

	tokens := make([]token.Token, 0, 256)
	halted := false
	for n := 0; ; n++ {
		if n%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				span.End("cancelled")
				return tokens, true, err
			}
		}
		tok, err := lx.Next()
		if err != nil {
			if !lexer.Report(reporter, err) {
				span.End("failed")
				return tokens, true, err
			}
			if perToken {
				trace.Point(tracer, trace.ScopeToken, "error", err.Error(), span.ID())
			}
			if !keepGoing || errors.Is(err, lexer.ErrReadFailure) || bag.Full() {
				halted = true
				break
			}
			continue
		}
		tokens = append(tokens, tok)
		if perToken {
			trace.Point(tracer, trace.ScopeToken, "token", tok.String(), span.ID())
		}
		if tok.Kind == token.EOF {
			break
		}
	}

	detail := "eof"
	if halted {
		detail = "halted"
	}
	span.WithExtra("tokens", strconv.Itoa(len(tokens))).
		WithExtra("errors", strconv.Itoa(bag.Len())).
		End(detail)
	return tokens, halted, nil
}
