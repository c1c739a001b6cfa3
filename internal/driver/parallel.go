package driver

import (
	"context"
	"os"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"mlc/internal/source"
	"mlc/internal/trace"
)

// LintPaths discovers files under paths and checks them in parallel.
// Results come back in the sorted discovery order regardless of which
// worker finished first. The returned error is a discovery failure or
// the context's error; per-file problems live in FileResult.
func LintPaths(ctx context.Context, paths []string, opts Options) (*source.FileSet, []FileResult, error) {
	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeDriver, "lint", trace.CurrentSpan(ctx).SpanID)
	defer runSpan.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: runSpan.ID()})

	files, err := DiscoverFiles(ctx, paths, opts.config())
	if err != nil {
		trace.Error(tracer, trace.ScopeDriver, "discover", err.Error(), runSpan.ID())
		return nil, nil, err
	}
	trace.Point(tracer, trace.ScopeDriver, "discovered", strconv.Itoa(len(files))+" files", runSpan.ID())
	runSpan.WithExtra("files", strconv.Itoa(len(files)))

	fileSet := source.NewFileSetWithBase(baseDir(paths, opts))
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен: загружаем всё до запуска воркеров
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	emitQueued(opts.Progress, files)

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			start := time.Now()
			emit(opts.Progress, Event{File: path, Stage: StageAnalyze, Status: StatusWorking})

			if loadErr, hadError := loadErrors[path]; hadError {
				results[i] = loadFailure(path, loadErr)
				trace.Error(tracer, trace.ScopeFile, "load", loadErr.Error(), runSpan.ID())
				emit(opts.Progress, Event{
					File:    path,
					Stage:   StageLoad,
					Status:  StatusError,
					Err:     loadErr,
					Elapsed: time.Since(start),
				})
				return nil
			}

			res := lintLoaded(gctx, fileSet.Get(fileIDs[path]), opts)
			results[i] = res
			if res.Err != nil {
				return res.Err
			}

			status := StatusDone
			var evErr error
			if res.Structural != nil {
				status = StatusError
				evErr = res.Structural
			}
			emit(opts.Progress, Event{
				File:        path,
				Stage:       StageAnalyze,
				Status:      status,
				Err:         evErr,
				Elapsed:     time.Since(start),
				Diagnostics: len(res.Diagnostics),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	// воркеры могли закончить раньше, чем заметили отмену
	if err := ctx.Err(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// baseDir picks the directory relative paths are shown against: opts.BaseDir,
// a single directory argument, or the working directory.
func baseDir(paths []string, opts Options) string {
	if opts.BaseDir != "" {
		return opts.BaseDir
	}
	if len(paths) == 1 {
		if info, err := os.Stat(paths[0]); err == nil && info.IsDir() {
			return paths[0]
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
