package lexer

import (
	"mlc/internal/diag"
	"mlc/internal/token"
)

// ReporterAdapter turns lexer problems into E901 warnings in a bag.
type ReporterAdapter struct {
	Bag *diag.Bag
}

func (r *ReporterAdapter) Report(kind string, pos token.Pos, msg string) {
	if r == nil || r.Bag == nil {
		return
	}
	r.Bag.Add(diag.New(diag.SevWarning, diag.TokenizeWarning, pos, diag.TokenizeWarning.ID()+" "+msg))
}
