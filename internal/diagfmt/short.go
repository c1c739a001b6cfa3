package diagfmt

import (
	"fmt"
	"io"

	"mlc/internal/diag"
)

// Short печатает находки в стиле flake8: path:line:col: CODE description.
// Колонка выводится с единицы.
func Short(w io.Writer, reports []Report, mode PathMode, baseDir string) error {
	for _, r := range reports {
		path := r.displayPath(mode, baseDir)
		if r.Structural != nil {
			pos := r.Structural.Pos()
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s\n", path, pos.Line, pos.Col+1, diag.StructuralUnbalanced.ID(), r.Structural.Error()); err != nil {
				return err
			}
		}
		for _, d := range r.Diagnostics {
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s\n", path, d.Pos.Line, d.Pos.Col+1, d.Message); err != nil {
				return err
			}
		}
	}
	return nil
}
