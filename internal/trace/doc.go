// Package trace records what mlc is doing while it checks files.
//
// Enable tracing via command-line flags:
//
//	mlc check --trace=- --trace-level=detail src/
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only error points (load failures, unbalanced brackets)
//   - LevelPhase: driver operations and per-file spans
//   - LevelDetail: passes inside a file (tokenize, ranges, spans, analyze)
//   - LevelDebug: everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "tokenize", parentID)
//	defer span.End("")
package trace
