package testkit

import (
	"fmt"

	"mlc/internal/multiline"
	"mlc/internal/token"
)

// CheckForestInvariants runs the structural checks on a span forest:
// 1) every Range pairs matching bracket texts
// 2) every child lies strictly inside its parent
// 3) siblings (roots included) are ordered by start and do not overlap
func CheckForestInvariants(roots []*multiline.Span) error {
	if err := checkSiblings(roots); err != nil {
		return fmt.Errorf("roots: %w", err)
	}
	var failure error
	multiline.Walk(roots, func(span *multiline.Span, _ int) bool {
		want, ok := token.Counterpart(span.Open.Text)
		if !ok || span.Close.Text != want {
			failure = fmt.Errorf("range %s-%s pairs %q with %q", span.StartPos(), span.EndPos(), span.Open.Text, span.Close.Text)
			return false
		}
		if span.OpenIdx >= span.CloseIdx {
			failure = fmt.Errorf("range at %s: open index %d not before close index %d", span.StartPos(), span.OpenIdx, span.CloseIdx)
			return false
		}
		for _, child := range span.Children {
			// 2) строгая вложенность
			if !span.StartPos().Before(child.StartPos()) || !child.EndPos().Before(span.EndPos()) {
				failure = fmt.Errorf("child %s-%s escapes parent %s-%s",
					child.StartPos(), child.EndPos(), span.StartPos(), span.EndPos())
				return false
			}
		}
		if err := checkSiblings(span.Children); err != nil {
			failure = fmt.Errorf("children of %s: %w", span.StartPos(), err)
			return false
		}
		return true
	})
	return failure
}

func checkSiblings(spans []*multiline.Span) error {
	for i := 1; i < len(spans); i++ {
		prev, cur := spans[i-1], spans[i]
		if !prev.StartPos().Before(cur.StartPos()) {
			return fmt.Errorf("span at %s listed before %s", prev.StartPos(), cur.StartPos())
		}
		if cur.StartPos().Before(prev.EndPos()) {
			return fmt.Errorf("span at %s overlaps %s-%s", cur.StartPos(), prev.StartPos(), prev.EndPos())
		}
	}
	return nil
}

// CountSpans returns the number of spans in the forest.
func CountSpans(roots []*multiline.Span) int {
	n := 0
	multiline.Walk(roots, func(*multiline.Span, int) bool {
		n++
		return true
	})
	return n
}
