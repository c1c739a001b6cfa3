package multiline

import (
	"iter"

	"mlc/internal/diag"
	"mlc/internal/token"
)

// Diagnostics walks the forest depth-first and yields findings lazily:
// a Span's PL101 comes before its children, PL102 or PL110 after them.
// Stopping the range loop early abandons the walk.
func Diagnostics(tokens []token.Token, roots []*Span) iter.Seq[diag.Diagnostic] {
	return func(yield func(diag.Diagnostic) bool) {
		type frame struct {
			span    *Span
			next    int
			summary Summary
		}
		stack := make([]frame, 0, 16)

		// enter кладёт кадр и выдаёт PL101; однострочные поддеревья пропускаются целиком
		enter := func(span *Span) bool {
			if span.IsSingleLine() {
				return true
			}
			sum := Summarize(tokens, span)
			stack = append(stack, frame{span: span, summary: sum})
			if !sum.StartBroken {
				return yield(diag.Style(diag.StyleOpenNotBroken, span.Open.Start))
			}
			return true
		}

		for _, root := range roots {
			if !enter(root) {
				return
			}
			for len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.next < len(top.span.Children) {
					child := top.span.Children[top.next]
					top.next++
					if !enter(child) {
						return
					}
					continue
				}
				stack = stack[:len(stack)-1]
				switch {
				case !top.summary.EndBroken:
					if !yield(diag.Style(diag.StyleCloseNotBroken, top.span.Close.Start)) {
						return
					}
				case !top.summary.EndColumnMatches:
					if !yield(diag.Style(diag.StyleCloseMisaligned, top.span.Close.Start)) {
						return
					}
				}
			}
		}
	}
}

// Check collects ranges and builds the forest eagerly, so a
// *StructuralError is returned before any diagnostic exists, then returns
// the lazy diagnostic sequence.
func Check(tokens []token.Token) (iter.Seq[diag.Diagnostic], error) {
	ranges, err := CollectRanges(tokens)
	if err != nil {
		return nil, err
	}
	return Diagnostics(tokens, BuildSpans(ranges)), nil
}

// Collect drains Check into a slice.
func Collect(tokens []token.Token) ([]diag.Diagnostic, error) {
	seq, err := Check(tokens)
	if err != nil {
		return nil, err
	}
	var out []diag.Diagnostic
	for d := range seq {
		out = append(out, d)
	}
	return out, nil
}
