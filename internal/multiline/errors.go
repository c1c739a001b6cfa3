package multiline

import (
	"errors"
	"fmt"

	"mlc/internal/token"
)

// ErrUnbalanced matches every *StructuralError via errors.Is.
var ErrUnbalanced = errors.New("unbalanced brackets")

// StructuralError reports brackets left open at the end of the token stream.
// It is fatal for the file: no diagnostics are produced alongside it.
type StructuralError struct {
	// Open is the innermost opener that was never closed.
	Open    token.Token
	OpenIdx int
	// Unmatched is the number of openers still on the stack.
	Unmatched int
}

func (e *StructuralError) Error() string {
	closer, _ := token.Counterpart(e.Open.Text)
	return fmt.Sprintf("unbalanced brackets: %q at %s is never closed by %q (%d unmatched)",
		e.Open.Text, e.Open.Start, closer, e.Unmatched)
}

func (e *StructuralError) Is(target error) bool {
	return target == ErrUnbalanced
}

// Pos is where the problem is reported.
func (e *StructuralError) Pos() token.Pos {
	return e.Open.Start
}
