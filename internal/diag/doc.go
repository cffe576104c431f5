// Package diag defines the diagnostic model shared by the lexer, the layout
// resolver, the parser and the fixity pass.
//
// Diagnostics are data, never control flow: every phase reports into a
// Reporter and keeps going. The resulting tree is always fully structured;
// diagnostics only describe how it degraded.
//
// # Data model
//
//   - Severity: Info, Warning, Error.
//   - Code: numeric id with a stable string form (LEX1001, LAY2001, SYN3001,
//     FIX4001, IO5001, PRJ6001). Code.Class maps it onto the four problem
//     classes callers branch on: LexError, LayoutError, ParseError and
//     FixityConflict.
//   - Primary span, message, optional notes.
//   - Recovery: what the producer did to keep going (synthesized a token end,
//     forced a layout close, skipped tokens, assumed a fixity...).
//
// # Emitting
//
// Producers use NewReportBuilder (or ReportError / ReportWarning /
// ReportInfo), chain WithNote / WithRecovery and call Emit. BagReporter
// collects into a Bag, which supports sorting, deduplication and filtering.
// DedupReporter drops repeats, LimitReporter caps the number of errors.
//
// Rendering lives in internal/diagfmt.
package diag
