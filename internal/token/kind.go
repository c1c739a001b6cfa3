package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates a zero-value token.
	Invalid Kind = iota
	// Encoding is the first token of every stream and carries the source encoding name.
	Encoding
	// Name represents an identifier or keyword.
	Name
	// Number represents a numeric literal.
	Number
	// String represents a string literal including its prefix and quotes.
	String
	// Op represents an operator or delimiter, brackets included.
	Op
	// Comment represents a '#' comment up to the end of the line.
	Comment
	// NL marks a non-logical line break (blank line, comment line, inside brackets).
	NL
	// Newline terminates a logical line.
	Newline
	// Indent marks an increase of the indentation level.
	Indent
	// Dedent marks a decrease of the indentation level.
	Dedent
	// ErrorToken carries text the lexer could not classify.
	ErrorToken
	// EndMarker terminates the stream.
	EndMarker
)

var kindNames = [...]string{
	Invalid:    "INVALID",
	Encoding:   "ENCODING",
	Name:       "NAME",
	Number:     "NUMBER",
	String:     "STRING",
	Op:         "OP",
	Comment:    "COMMENT",
	NL:         "NL",
	Newline:    "NEWLINE",
	Indent:     "INDENT",
	Dedent:     "DEDENT",
	ErrorToken: "ERRORTOKEN",
	EndMarker:  "ENDMARKER",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Ignorable reports whether tokens of this kind carry no content for the
// line-break checks: blank-line markers, comments and encoding markers.
func (k Kind) Ignorable() bool {
	switch k {
	case NL, Comment, Encoding:
		return true
	default:
		return false
	}
}

// Structural reports whether tokens of this kind are layout-only: every
// ignorable kind plus indentation and logical-line markers.
func (k Kind) Structural() bool {
	switch k {
	case NL, Comment, Encoding, Newline, Indent, Dedent, EndMarker:
		return true
	default:
		return false
	}
}
