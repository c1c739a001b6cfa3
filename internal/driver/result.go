package driver

import (
	"fortio.org/safecast"

	"mlc/internal/diag"
	"mlc/internal/diagfmt"
	"mlc/internal/multiline"
	"mlc/internal/observ"
	"mlc/internal/source"
)

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	// File is nil when the file could not be loaded.
	File        *source.File
	Diagnostics []diag.Diagnostic
	// Structural is set when brackets do not pair up; Diagnostics then only
	// holds tokenizer warnings.
	Structural *multiline.StructuralError
	// Err is a load or cancellation error.
	Err    error
	Timing *observ.Report
	Cached bool
}

// Report converts the result for the renderers.
func (r FileResult) Report() diagfmt.Report {
	return diagfmt.Report{
		Path:        r.Path,
		File:        r.File,
		Diagnostics: r.Diagnostics,
		Structural:  r.Structural,
	}
}

// Reports converts a slice of results, keeping order.
func Reports(results []FileResult) []diagfmt.Report {
	out := make([]diagfmt.Report, len(results))
	for i := range results {
		out[i] = results[i].Report()
	}
	return out
}

// HasStyle reports whether any PL diagnostic was produced.
func (r FileResult) HasStyle() bool {
	for _, d := range r.Diagnostics {
		if d.Code.IsStyle() {
			return true
		}
	}
	return false
}

// Summary counts results of a run.
type Summary struct {
	Files       uint32
	Clean       uint32
	Diagnostics uint32
	Structural  uint32
	Failed      uint32
	Cached      uint32
}

// Summarize builds a Summary over results.
func Summarize(results []FileResult) Summary {
	var s Summary
	s.Files = mustUint32(len(results))
	for _, r := range results {
		s.Diagnostics += mustUint32(len(r.Diagnostics))
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Structural != nil:
			s.Structural++
		case len(r.Diagnostics) == 0:
			s.Clean++
		}
		if r.Cached {
			s.Cached++
		}
	}
	return s
}

// Exit statuses of `mlc check`.
const (
	ExitClean      = 0
	ExitViolations = 1
	ExitFatal      = 2
)

// ExitCode maps results to a process status: structural or load errors
// give ExitFatal, remaining diagnostics give ExitViolations unless exitZero.
func ExitCode(results []FileResult, exitZero bool) int {
	s := Summarize(results)
	switch {
	case s.Structural > 0 || s.Failed > 0:
		return ExitFatal
	case s.Diagnostics > 0 && !exitZero:
		return ExitViolations
	}
	return ExitClean
}

func mustUint32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(err)
	}
	return v
}
