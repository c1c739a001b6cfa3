// Package multiline checks the layout of bracket-delimited containers that
// span several lines.
//
// The pipeline is:
//
//	tokens -> CollectRanges -> []Range -> BuildSpans -> []*Span -> Diagnostics
//
// A Range is one matched bracket pair. A Span is a Range plus the Spans
// nested directly inside it. For every multi-line Span three rules are
// evaluated (see Summarize):
//
//   - PL101: the container must break after its opening bracket;
//   - PL102: the container must break before its closing bracket;
//   - PL110: the closing bracket must sit on the column where the opening
//     line starts.
//
// Single-line Spans are exempt at every depth. A nested container that
// starts on the opener's line ("hugging") decides rule PL101 for its parent,
// and the same holds for PL102 at the closing end.
//
// Everything here is pure: no I/O, no shared state. Unbalanced input fails
// with *StructuralError before any diagnostic is produced.
package multiline
