package multiline

import (
	"mlc/internal/token"
)

// Summary holds the three layout checks of one multi-line Span.
type Summary struct {
	StartBroken      bool
	EndBroken        bool
	EndColumnMatches bool
}

// Summarize evaluates the layout rules for span. Single-line spans are
// exempt and report a clean Summary.
func Summarize(tokens []token.Token, span *Span) Summary {
	if span.IsSingleLine() {
		return Summary{StartBroken: true, EndBroken: true, EndColumnMatches: true}
	}
	return Summary{
		StartBroken:      startBroken(tokens, span),
		EndBroken:        endBroken(tokens, span),
		EndColumnMatches: endColumnMatches(tokens, span),
	}
}

// startBroken: после открывающей скобки должен быть перенос строки.
func startBroken(tokens []token.Token, span *Span) bool {
	line := span.Open.Start.Line
	boundary := span.CloseIdx
	if first := span.FirstChild(); first != nil {
		if first.StartPos().Line == line {
			return !first.IsSingleLine()
		}
		boundary = first.OpenIdx
	}
	for i := span.OpenIdx + 1; i < boundary; i++ {
		if !tokens[i].Ignorable() {
			return tokens[i].Start.Line != line
		}
	}
	return true
}

// endBroken: перед закрывающей скобкой должен быть перенос строки.
func endBroken(tokens []token.Token, span *Span) bool {
	line := span.Close.Start.Line
	boundary := span.OpenIdx
	if last := span.LastChild(); last != nil {
		if last.EndPos().Line == line {
			return !last.IsSingleLine()
		}
		boundary = last.CloseIdx
	}
	for i := span.CloseIdx - 1; i > boundary; i-- {
		if !tokens[i].Ignorable() {
			return tokens[i].End.Line != line
		}
	}
	return true
}

// endColumnMatches: закрывающая скобка стоит на колонке начала строки
// с открывающей. Закрытие вплотную к вложенному контейнеру не проверяется.
func endColumnMatches(tokens []token.Token, span *Span) bool {
	if last := span.LastChild(); last != nil && !hasSignificant(tokens, last.CloseIdx+1, span.CloseIdx) {
		return true
	}
	return span.Close.Start.Col == effectiveStartColumn(tokens, span.OpenIdx)
}

func hasSignificant(tokens []token.Token, from, to int) bool {
	for i := from; i < to; i++ {
		if !tokens[i].Ignorable() {
			return true
		}
	}
	return false
}

// effectiveStartColumn is the column of the leftmost non-structural token on
// the opener's line, up to and including the opener itself.
func effectiveStartColumn(tokens []token.Token, openIdx int) int {
	open := tokens[openIdx]
	col := open.Start.Col
	for i := openIdx - 1; i >= 0; i-- {
		tok := tokens[i]
		if tok.Start.Line != open.Start.Line {
			break
		}
		if tok.Structural() {
			continue
		}
		col = tok.Start.Col
	}
	return col
}
