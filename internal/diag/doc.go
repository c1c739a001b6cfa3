// Package diag defines the diagnostic model shared by the lexer, the
// container checker and the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier with a stable string form
//     (PL101, PL102, PL110 for container style; E901, E902, E999 for
//     tokenizer, I/O and structural problems).
//   - Message – "<CODE> <description>" for style findings.
//   - Pos – line (1-based) and column (0-based) of the offending token.
//   - Notes – optional secondary positions; always empty for style findings.
//
// Tuple exposes the (line, column, message, nil) view expected by
// flake8-like hosts.
//
// # Emitting and collecting
//
// Producers either yield Diagnostic values directly or call Reporter.Report.
// BagReporter aggregates into a Bag, which supports limits, sorting,
// deduplication and filtering. Selector implements select/ignore prefix
// matching and plugs into Bag.Filter.
//
// Package diag does no formatting beyond FormatGolden; rendering lives in
// internal/diagfmt.
package diag
