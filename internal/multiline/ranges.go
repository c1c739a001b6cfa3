package multiline

import (
	"mlc/internal/token"
)

// Range is one matched bracket pair.
type Range struct {
	OpenIdx  int
	Open     token.Token
	CloseIdx int
	Close    token.Token
}

// StartPos is the opening bracket's start.
func (r Range) StartPos() token.Pos { return r.Open.Start }

// EndPos is the closing bracket's end.
func (r Range) EndPos() token.Pos { return r.Close.End }

// EndStartPos is the closing bracket's own start.
func (r Range) EndStartPos() token.Pos { return r.Close.Start }

// IsSingleLine reports whether both brackets sit on the same line.
func (r Range) IsSingleLine() bool {
	return r.Open.Start.Line == r.Close.End.Line
}

// Contains reports whether other lies within r, bounds included.
func (r Range) Contains(other Range) bool {
	return !other.StartPos().Before(r.StartPos()) && !r.EndPos().Before(other.EndPos())
}

type opener struct {
	idx int
	tok token.Token
}

// CollectRanges matches brackets with a stack. Closers that do not match
// the innermost open bracket are skipped. Ranges come out ordered by their
// closing bracket.
func CollectRanges(tokens []token.Token) ([]Range, error) {
	var (
		stack    []opener
		expected string
		ranges   = make([]Range, 0, 16)
	)
	for i, tok := range tokens {
		switch {
		case tok.IsOpening():
			stack = append(stack, opener{idx: i, tok: tok})
			expected, _ = token.Counterpart(tok.Text)

		case expected != "" && tok.Kind == token.Op && tok.Text == expected:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			ranges = append(ranges, Range{
				OpenIdx:  top.idx,
				Open:     top.tok,
				CloseIdx: i,
				Close:    tok,
			})
			expected = ""
			if len(stack) > 0 {
				expected, _ = token.Counterpart(stack[len(stack)-1].tok.Text)
			}
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, &StructuralError{Open: top.tok, OpenIdx: top.idx, Unmatched: len(stack)}
	}
	return ranges, nil
}
