package multiline

import (
	"slices"
)

// Span is a Range with the Spans nested directly inside it, in document order.
type Span struct {
	Range
	Children []*Span
}

// FirstChild returns the first nested Span or nil.
func (s *Span) FirstChild() *Span {
	if len(s.Children) == 0 {
		return nil
	}
	return s.Children[0]
}

// LastChild returns the last nested Span or nil.
func (s *Span) LastChild() *Span {
	if len(s.Children) == 0 {
		return nil
	}
	return s.Children[len(s.Children)-1]
}

// BuildSpans assembles ranges into a forest and returns the roots in
// document order. The input order does not matter and the slice is not
// modified.
func BuildSpans(ranges []Range) []*Span {
	sorted := slices.Clone(ranges)
	slices.SortStableFunc(sorted, func(a, b Range) int {
		return a.StartPos().Compare(b.StartPos())
	})

	var (
		roots []*Span
		stack = make([]*Span, 0, 8)
	)
	for _, r := range sorted {
		span := &Span{Range: r}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.Contains(r) {
				top.Children = append(top.Children, span)
				break
			}
			// top не может содержать более поздние диапазоны
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, span)
		}
		stack = append(stack, span)
	}
	return roots
}

// Walk visits every Span depth-first in document order until fn returns false.
func Walk(roots []*Span, fn func(span *Span, depth int) bool) {
	type frame struct {
		span  *Span
		depth int
	}
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{span: roots[i]})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.span, f.depth) {
			return
		}
		for i := len(f.span.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{span: f.span.Children[i], depth: f.depth + 1})
		}
	}
}
