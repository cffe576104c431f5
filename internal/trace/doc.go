// Package trace records what the front end is doing: one span per command,
// per file and per pass, written as text or NDJSON, or kept in a ring buffer
// that is dumped when something goes wrong.
//
//	hsfront parse --trace=- --trace-level=detail src/
//
// Levels select how much is recorded: phase keeps driver and pass spans,
// detail adds one span per file, debug keeps everything.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "layout")
//	defer span.End("")
package trace
