package diag

import (
	"mlc/internal/token"
)

type Note struct {
	Pos token.Pos
	Msg string
}

// Diagnostic is a single finding anchored at a token position.
// Pos.Line is 1-based, Pos.Col is 0-based.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      token.Pos
	Notes    []Note
}

func New(sev Severity, code Code, pos token.Pos, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Pos:      pos,
		Message:  msg,
	}
}

// Style builds a warning with the canonical message for code.
func Style(code Code, pos token.Pos) Diagnostic {
	return New(SevWarning, code, pos, code.Message())
}

func (d Diagnostic) WithNote(pos token.Pos, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Pos: pos, Msg: msg})
	return d
}

// Tuple returns the host-facing (line, column, message, secondary) view.
// The secondary field is always nil.
func (d Diagnostic) Tuple() (line, col int, msg string, secondary any) {
	return d.Pos.Line, d.Pos.Col, d.Message, nil
}
