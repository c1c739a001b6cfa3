package lexer

import (
	"mlc/internal/token"
)

// Reporter: тонкий интерфейс, чтобы не тянуть diag сюда.
// Лексер **только вызывает** его с параметрами; форматирует diag внешний слой.
type Reporter interface {
	Report(kind string, pos token.Pos, msg string)
}

// Problem kinds passed to Reporter.
const (
	ProblemUnterminatedString = "unterminated-string"
	ProblemInconsistentDedent = "inconsistent-dedent"
	ProblemStrayBackslash     = "stray-backslash"
	ProblemInvalidCharacter   = "invalid-character"
)

type Options struct {
	Reporter Reporter // nil: ошибки игнорируем, но продолжаем лексить
	// TabSize is the tab stop used for indentation; 0 means 8.
	TabSize int
}

func (lx *Lexer) report(kind string, pos token.Pos, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, pos, msg)
	}
}
