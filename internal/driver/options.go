package driver

import (
	"fmt"
	"strings"

	"mlc/internal/config"
	"mlc/internal/diag"
)

// Options control a lint run.
type Options struct {
	// Config supplies discovery settings (extensions, exclude, gitignore).
	// nil means config.Default().
	Config *config.Config
	// Selector filters diagnostics by code; structural errors always pass.
	Selector diag.Selector
	// MaxDiagnostics caps diagnostics per file; 0 means unlimited.
	MaxDiagnostics int
	// Jobs is the worker count for LintPaths; 0 means GOMAXPROCS.
	Jobs int
	// TabSize is passed to the tokenizer; 0 means 8.
	TabSize int
	// Cache, when set, is consulted by LintFile and LintPaths.
	Cache    *DiskCache
	Progress ProgressSink
	// BaseDir is used for relative paths; empty means it is derived from the inputs.
	BaseDir string
}

func (o Options) config() *config.Config {
	if o.Config == nil {
		return config.Default()
	}
	return o.Config
}

// fingerprint identifies every option that changes a file's result.
func (o Options) fingerprint() string {
	return fmt.Sprintf("select=%s;ignore=%s;max=%d;tab=%d",
		strings.Join(o.Selector.Select, ","),
		strings.Join(o.Selector.Ignore, ","),
		o.MaxDiagnostics,
		o.TabSize)
}
