package token

import "fmt"

// Pos is a position in source text. Line is 1-based, Col is 0-based.
type Pos struct {
	Line int
	Col  int
}

// Before reports whether p precedes other in document order.
func (p Pos) Before(other Pos) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Compare returns -1, 0 or +1 depending on document order.
func (p Pos) Compare(other Pos) int {
	switch {
	case p.Before(other):
		return -1
	case other.Before(p):
		return 1
	default:
		return 0
	}
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Text  string
	Start Pos
	End   Pos
}

// IsOpening reports whether the token is '(', '[' or '{'.
func (t Token) IsOpening() bool {
	if t.Kind != Op {
		return false
	}
	_, ok := Counterpart(t.Text)
	return ok
}

// IsClosing reports whether the token is ')', ']' or '}'.
func (t Token) IsClosing() bool {
	if t.Kind != Op {
		return false
	}
	switch t.Text {
	case ")", "]", "}":
		return true
	default:
		return false
	}
}

// Ignorable is shorthand for t.Kind.Ignorable().
func (t Token) Ignorable() bool { return t.Kind.Ignorable() }

// Structural is shorthand for t.Kind.Structural().
func (t Token) Structural() bool { return t.Kind.Structural() }

func (t Token) String() string {
	return fmt.Sprintf("%s %q %s-%s", t.Kind, t.Text, t.Start, t.End)
}

// Counterpart returns the closing text matching an opening bracket.
func Counterpart(open string) (string, bool) {
	switch open {
	case "(":
		return ")", true
	case "[":
		return "]", true
	case "{":
		return "}", true
	default:
		return "", false
	}
}
