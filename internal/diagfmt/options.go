package diagfmt

import (
	"mlc/internal/diag"
	"mlc/internal/multiline"
	"mlc/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a flag value to a PathMode.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color      bool
	Context    int8 // строк контекста перед строкой диагностики
	PathMode   PathMode
	Width      uint8 // максимальная ширина строки, 0 - не ограничено
	ShowSource bool
	BaseDir    string
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	Max          int  // обрезка вывода, не Bag
	IncludeClean bool // файлы без находок тоже попадают в вывод
	BaseDir      string
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
	PathMode       PathMode
	BaseDir        string
}

// Report is everything a renderer needs about one checked file.
type Report struct {
	// Path is used when File is nil (the file could not be loaded).
	Path        string
	File        *source.File
	Diagnostics []diag.Diagnostic
	Structural  *multiline.StructuralError
}

// Clean reports whether the file produced nothing to show.
func (r Report) Clean() bool {
	return len(r.Diagnostics) == 0 && r.Structural == nil
}

func (r Report) displayPath(mode PathMode, baseDir string) string {
	if r.File == nil {
		return r.Path
	}
	switch mode {
	case PathModeAbsolute:
		return r.File.FormatPath("absolute", "")
	case PathModeRelative:
		return r.File.FormatPath("relative", baseDir)
	case PathModeBasename:
		return r.File.FormatPath("basename", "")
	default:
		return r.File.FormatPath("auto", "")
	}
}

// description strips the "<CODE> " prefix from a diagnostic message.
func description(d diag.Diagnostic) string {
	prefix := d.Code.ID() + " "
	if len(d.Message) > len(prefix) && d.Message[:len(prefix)] == prefix {
		return d.Message[len(prefix):]
	}
	return d.Message
}

// Totals counts diagnostics and structural errors across reports.
func Totals(reports []Report) (diagnostics, structural int) {
	for _, r := range reports {
		diagnostics += len(r.Diagnostics)
		if r.Structural != nil {
			structural++
		}
	}
	return diagnostics, structural
}
