package diag

import (
	"fmt"
	"strings"
)

// FormatGolden renders diagnostics one per line as "CODE line:col message"
// in the given order, with the column shown 1-based.
// Used by tests and the short formatter; the empty slice renders as "".
func FormatGolden(diags []Diagnostic) string {
	var b strings.Builder
	for i, d := range diags {
		fmt.Fprintf(&b, "%s %d:%d %s", d.Code.ID(), d.Pos.Line, d.Pos.Col+1, sanitizeMessage(d.Message))
		if i < len(diags)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
