package diagfmt

import (
	"encoding/json"
	"io"
)

// LocationJSON представляет местоположение в файле для JSON (колонка с единицы)
type LocationJSON struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// StructuralJSON описывает фатальную ошибку файла
type StructuralJSON struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Location  LocationJSON `json:"location"`
	Unmatched int          `json:"unmatched"`
}

// FileJSON группирует находки одного файла
type FileJSON struct {
	Path            string           `json:"path"`
	Diagnostics     []DiagnosticJSON `json:"diagnostics"`
	StructuralError *StructuralJSON  `json:"structural_error,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Files []FileJSON `json:"files"`
	Count int        `json:"count"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
// Count считает выведенные диагностики вместе со структурными ошибками.
func BuildDiagnosticsOutput(reports []Report, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Files: make([]FileJSON, 0, len(reports))}
	for _, r := range reports {
		if r.Clean() && !opts.IncludeClean {
			continue
		}
		file := FileJSON{
			Path:        r.displayPath(opts.PathMode, opts.BaseDir),
			Diagnostics: make([]DiagnosticJSON, 0, len(r.Diagnostics)),
		}
		if r.Structural != nil {
			pos := r.Structural.Pos()
			file.StructuralError = &StructuralJSON{
				Code:      "E999",
				Message:   r.Structural.Error(),
				Location:  LocationJSON{Line: pos.Line, Column: pos.Col + 1},
				Unmatched: r.Structural.Unmatched,
			}
			out.Count++
		}
		for _, d := range r.Diagnostics {
			if opts.Max > 0 && out.Count >= opts.Max {
				break
			}
			file.Diagnostics = append(file.Diagnostics, DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Message:  d.Message,
				Location: LocationJSON{Line: d.Pos.Line, Column: d.Pos.Col + 1},
			})
			out.Count++
		}
		out.Files = append(out.Files, file)
	}
	return out
}

// JSON форматирует отчёты в JSON.
func JSON(w io.Writer, reports []Report, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(reports, opts))
}
