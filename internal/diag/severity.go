package diag

// Severity defines the importance of a diagnostic. The zero value is not a
// valid severity, so a Diagnostic built without New is easy to spot.
type Severity uint8

const (
	// SevWarning marks findings that leave the file checked: style
	// violations and tokenizer problems.
	SevWarning Severity = iota + 1
	// SevError marks findings that stop a file from being checked.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
