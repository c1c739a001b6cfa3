package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mlc/internal/diag"
	"mlc/internal/source"
	"mlc/internal/token"
)

type palette struct {
	path, err, warn, info, code, gutter, caret func(a ...any) string
}

func paint(enabled bool, attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

func newPalette(enabled bool) palette {
	return palette{
		path:   paint(enabled, color.Bold),
		err:    paint(enabled, color.FgRed, color.Bold),
		warn:   paint(enabled, color.FgYellow, color.Bold),
		info:   paint(enabled, color.FgCyan),
		code:   paint(enabled, color.FgMagenta),
		gutter: paint(enabled, color.FgBlue),
		caret:  paint(enabled, color.FgGreen, color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) string {
	label := strings.ToLower(sev.String())
	switch sev {
	case diag.SevError:
		return p.err(label)
	case diag.SevWarning:
		return p.warn(label)
	default:
		return p.info(label)
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой находки печатает
// <path>:<line>:<col>: <sev> <CODE>: <description>
// и, если включено, строку исходника с кареткой под скобкой.
// Структурная ошибка файла печатается первой как error E999.
func Pretty(w io.Writer, reports []Report, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, r := range reports {
		path := r.displayPath(opts.PathMode, opts.BaseDir)
		if r.Structural != nil {
			if err := prettyOne(w, p, path, r.File, diag.SevError, diag.StructuralUnbalanced, r.Structural.Pos(), r.Structural.Error(), opts); err != nil {
				return err
			}
		}
		for _, d := range r.Diagnostics {
			if err := prettyOne(w, p, path, r.File, d.Severity, d.Code, d.Pos, description(d), opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func prettyOne(w io.Writer, p palette, path string, file *source.File, sev diag.Severity, code diag.Code, pos token.Pos, msg string, opts PrettyOpts) error {
	if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		p.path(path), pos.Line, pos.Col+1, p.severity(sev), p.code(code.ID()), msg); err != nil {
		return err
	}
	if !opts.ShowSource || file == nil || pos.Line < 1 {
		return nil
	}

	gutterWidth := len(fmt.Sprint(pos.Line))
	first := max(pos.Line-int(max(opts.Context, 0)), 1)
	for n := first; n <= pos.Line; n++ {
		line := clip(file.GetLine(n), opts.Width)
		if _, err := fmt.Fprintf(w, "%s %s\n", p.gutter(fmt.Sprintf("%*d |", gutterWidth, n)), line); err != nil {
			return err
		}
	}
	pad := caretPadding(file.GetLine(pos.Line), pos.Col)
	_, err := fmt.Fprintf(w, "%s %s%s\n", p.gutter(strings.Repeat(" ", gutterWidth)+" |"), pad, p.caret("^"))
	return err
}

// caretPadding повторяет табы строки и ширину остальных символов,
// чтобы каретка встала под колонку col (в кодовых точках).
func caretPadding(line string, col int) string {
	var b strings.Builder
	i := 0
	for _, r := range line {
		if i >= col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
		i++
	}
	return b.String()
}

func clip(line string, width uint8) string {
	if width == 0 || runewidth.StringWidth(line) <= int(width) {
		return line
	}
	return runewidth.Truncate(line, int(width), "…")
}
