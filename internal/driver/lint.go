package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"mlc/internal/diag"
	"mlc/internal/lexer"
	"mlc/internal/multiline"
	"mlc/internal/observ"
	"mlc/internal/source"
	"mlc/internal/token"
	"mlc/internal/trace"
	"mlc/internal/version"
)

// LintSource tokenizes and checks one loaded file.
// Diagnostics are filtered by opts.Selector, capped at opts.MaxDiagnostics
// and sorted by position.
func LintSource(ctx context.Context, file *source.File, opts Options) FileResult {
	res := FileResult{Path: file.Path, FileID: file.ID, File: file}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	tracer := trace.FromContext(ctx)
	fileSpan := trace.Begin(tracer, trace.ScopeFile, "file:"+file.Path, trace.CurrentSpan(ctx).SpanID)
	timer := observ.NewTimer()
	bag := diag.NewBag(opts.MaxDiagnostics)
	keep := opts.Selector.Keep

	// tokenize
	idx := timer.Begin("tokenize")
	pass := trace.Begin(tracer, trace.ScopePass, "tokenize", fileSpan.ID())
	lexBag := diag.NewBag(0)
	tokens := lexer.Tokenize(file, lexer.Options{
		Reporter: &lexer.ReporterAdapter{Bag: lexBag},
		TabSize:  opts.TabSize,
	})
	pass.WithExtra("tokens", strconv.Itoa(len(tokens))).End("")
	timer.End(idx, fmt.Sprintf("%d tokens", len(tokens)))
	for _, d := range lexBag.Items() {
		if keep(d) {
			bag.Add(d)
		}
	}

	// ranges
	idx = timer.Begin("ranges")
	pass = trace.Begin(tracer, trace.ScopePass, "ranges", fileSpan.ID())
	ranges, err := multiline.CollectRanges(tokens)
	if err != nil {
		pass.End(err.Error())
		timer.End(idx, "unbalanced")
		var structural *multiline.StructuralError
		if errors.As(err, &structural) {
			res.Structural = structural
			trace.Error(tracer, trace.ScopeFile, "structural", file.Path+": "+err.Error(), fileSpan.ID())
		} else {
			res.Err = err
		}
		// файл не проверен: предупреждения токенизатора тоже не выдаём
		return finishResult(res, diag.NewBag(0), timer, fileSpan)
	}
	pass.WithExtra("ranges", strconv.Itoa(len(ranges))).End("")
	timer.End(idx, fmt.Sprintf("%d ranges", len(ranges)))

	// spans
	idx = timer.Begin("spans")
	pass = trace.Begin(tracer, trace.ScopePass, "spans", fileSpan.ID())
	roots := multiline.BuildSpans(ranges)
	pass.End("")
	timer.End(idx, fmt.Sprintf("%d roots", len(roots)))

	// analyze: the sequence is lazy, a full bag stops the walk
	idx = timer.Begin("analyze")
	pass = trace.Begin(tracer, trace.ScopePass, "analyze", fileSpan.ID())
	for d := range multiline.Diagnostics(tokens, roots) {
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		if !keep(d) {
			continue
		}
		if !bag.Add(d) {
			break
		}
	}
	pass.End("")
	timer.End(idx, "")

	return finishResult(res, bag, timer, fileSpan)
}

func finishResult(res FileResult, bag *diag.Bag, timer *observ.Timer, fileSpan *trace.Span) FileResult {
	bag.Sort()
	res.Diagnostics = bag.Items()
	report := timer.Report()
	res.Timing = &report
	fileSpan.WithExtra("diagnostics", strconv.Itoa(bag.Len())).End("")
	return res
}

// LintFile loads path into a fresh FileSet and checks it, consulting
// opts.Cache when set.
func LintFile(ctx context.Context, path string, opts Options) FileResult {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return loadFailure(path, err)
	}
	return lintLoaded(ctx, fs.Get(id), opts)
}

// lintLoaded is LintSource behind the disk cache. Results of cancelled
// checks are never stored.
func lintLoaded(ctx context.Context, file *source.File, opts Options) FileResult {
	if opts.Cache == nil {
		return LintSource(ctx, file, opts)
	}
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	key := cacheKey(file.Hash, version.Version, opts)
	var payload DiskPayload
	ok, err := opts.Cache.Get(key, version.Version, &payload)
	if err != nil {
		trace.Error(tracer, trace.ScopeFile, "cache-read", file.Path+": "+err.Error(), parent)
	}
	if ok {
		trace.Point(tracer, trace.ScopeFile, "cache-hit", file.Path, parent)
		return FileResult{
			Path:        file.Path,
			FileID:      file.ID,
			File:        file,
			Diagnostics: payload.Diagnostics,
			Structural:  payload.Structural,
			Cached:      true,
		}
	}

	res := LintSource(ctx, file, opts)
	if res.Err == nil {
		if err := opts.Cache.Put(key, resultToPayload(&res, version.Version)); err != nil {
			trace.Error(tracer, trace.ScopeFile, "cache-write", file.Path+": "+err.Error(), parent)
		}
	}
	return res
}

// loadFailure reports an unreadable file as a single E902 error.
func loadFailure(path string, err error) FileResult {
	return FileResult{
		Path: path,
		Diagnostics: []diag.Diagnostic{
			diag.New(diag.SevError, diag.IOLoadFileError, token.Pos{Line: 1}, diag.IOLoadFileError.ID()+" "+err.Error()),
		},
		Err: err,
	}
}
