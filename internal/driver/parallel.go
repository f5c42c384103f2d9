package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ifj25/internal/diag"
	"ifj25/internal/observ"
	"ifj25/internal/source"
	"ifj25/internal/trace"
)

// SourceExt is the extension of ifj25 source files.
const SourceExt = ".wren"

// ListSourceFiles returns the sorted list of all *.wren files under dir.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ExpandPaths replaces every directory in paths by its source files.
func ExpandPaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			out = append(out, p) // load errors are reported per file
			continue
		}
		files, err := ListSourceFiles(p)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

// TokenizeFiles tokenizes paths concurrently with at most jobs workers
// (jobs <= 0 means GOMAXPROCS). Each file gets its own Lexer and Bag; all
// files share one FileSet. Results are in input order. A file that cannot
// be loaded yields a result with File == nil and an IO diagnostic.
func TokenizeFiles(ctx context.Context, paths []string, opts Options, jobs int) (*source.FileSet, []*TokenizeResult, error) {
	fileSet := source.NewFileSet()
	if len(paths) == 0 {
		return fileSet, nil, nil
	}

	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "tokenize-files")
	defer span.End(fmt.Sprintf("%d files", len(paths)))

	for _, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet is not safe for concurrent writes; load everything up front.
	type loaded struct {
		id    source.FileID
		err   error
		timer *observ.Timer
	}
	loads := make([]loaded, len(paths))
	for i, path := range paths {
		start := time.Now()
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
		timer := observ.NewTimer()
		idx := timer.Begin("load")
		id, err := fileSet.Load(path)
		timer.End(idx, path)
		loads[i] = loaded{id: id, err: err, timer: timer}
		if err != nil {
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		}
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// indices are unique per goroutine, no mutex needed
	results := make([]*TokenizeResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			ld := loads[i]
			if ld.err != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.Errorf(diag.IOLoadFileError, source.Span{File: source.NoFile}, "failed to load file: %v", ld.err))
				results[i] = &TokenizeResult{Path: path, FileSet: fileSet, Bag: bag, Timing: ld.timer.Report()}
				return nil
			}

			start := time.Now()
			emit(opts.Progress, Event{File: path, Stage: StageLex, Status: StatusWorking})
			fctx, fileSpan := trace.StartSpan(gctx, trace.ScopeFile, "file:"+path)
			res, err := tokenizeLoaded(fctx, fileSet, ld.id, opts, ld.timer)
			fileSpan.End("")
			if err != nil {
				emit(opts.Progress, Event{File: path, Stage: StageLex, Status: StatusError, Err: err, Elapsed: time.Since(start)})
				return err
			}
			res.Path = path
			results[i] = res

			status := StatusDone
			if res.HasErrors() {
				status = StatusError
			}
			emit(opts.Progress, Event{File: path, Stage: StageLex, Status: status, Elapsed: time.Since(start), Tokens: len(res.Tokens)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
