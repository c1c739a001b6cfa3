package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mlc/internal/multiline"
	"mlc/internal/token"
)

// SpanOutput is the JSON shape of one span with its layout summary.
type SpanOutput struct {
	Brackets         string       `json:"brackets"`
	Start            PosOutput    `json:"start"`
	End              PosOutput    `json:"end"`
	SingleLine       bool         `json:"single_line"`
	StartBroken      *bool        `json:"start_broken,omitempty"`
	EndBroken        *bool        `json:"end_broken,omitempty"`
	EndColumnMatches *bool        `json:"end_column_matches,omitempty"`
	Children         []SpanOutput `json:"children,omitempty"`
}

// FormatSpansPretty печатает дерево спанов с отступом по глубине.
func FormatSpansPretty(w io.Writer, tokens []token.Token, roots []*multiline.Span) error {
	var werr error
	multiline.Walk(roots, func(span *multiline.Span, depth int) bool {
		line := fmt.Sprintf("%s%s%s %s-%s", strings.Repeat("  ", depth),
			span.Open.Text, span.Close.Text, span.StartPos(), span.EndStartPos())
		if span.IsSingleLine() {
			line += " single-line"
		} else {
			sum := multiline.Summarize(tokens, span)
			line += fmt.Sprintf(" start_broken=%t end_broken=%t end_column_matches=%t",
				sum.StartBroken, sum.EndBroken, sum.EndColumnMatches)
		}
		_, werr = fmt.Fprintln(w, line)
		return werr == nil
	})
	return werr
}

// BuildSpansOutput converts a forest into its JSON shape.
func BuildSpansOutput(tokens []token.Token, roots []*multiline.Span) []SpanOutput {
	out := make([]SpanOutput, 0, len(roots))
	for _, root := range roots {
		out = append(out, spanOutput(tokens, root))
	}
	return out
}

// spanOutput рекурсивен: глубина ограничена вложенностью скобок в файле.
func spanOutput(tokens []token.Token, span *multiline.Span) SpanOutput {
	so := SpanOutput{
		Brackets:   span.Open.Text + span.Close.Text,
		Start:      PosOutput{Line: span.StartPos().Line, Col: span.StartPos().Col},
		End:        PosOutput{Line: span.EndStartPos().Line, Col: span.EndStartPos().Col},
		SingleLine: span.IsSingleLine(),
	}
	if !so.SingleLine {
		sum := multiline.Summarize(tokens, span)
		so.StartBroken = &sum.StartBroken
		so.EndBroken = &sum.EndBroken
		so.EndColumnMatches = &sum.EndColumnMatches
	}
	for _, child := range span.Children {
		so.Children = append(so.Children, spanOutput(tokens, child))
	}
	return so
}

// FormatSpansJSON выводит дерево спанов в JSON.
func FormatSpansJSON(w io.Writer, tokens []token.Token, roots []*multiline.Span) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildSpansOutput(tokens, roots))
}
