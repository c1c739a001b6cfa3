// Package token defines the lexical token model consumed by the container checks.
// Invariants:
//   - Token.Text is the literal source text of the token (empty for Dedent,
//     EndMarker and the synthetic Newline emitted at EOF).
//   - Positions follow CPython's tokenize: Line is 1-based, Col is 0-based and
//     counts code points. The Encoding token sits at line 0.
//   - Brackets that occur inside string or comment literals never surface as
//     separate Op tokens; the lexer owns that guarantee.
package token
