// Package layout implements the Haskell offside rule.
//
// A Resolver sits between the lexer and the parser. It pulls raw tokens
// lazily, drops trivia from the stream it hands out and inserts virtual
// tokens so that indentation-sensitive blocks become explicit:
//
//	VOpen   a block starts (after let/where/do/of, or at the top of a file
//	        without a module header)
//	VSemi   a line starts at the column of the enclosing block
//	VClose  a line starts left of the enclosing block, or end of input
//
// The algorithm is function L of the Haskell 2010 report (section 10.3).
// Its parse-error(t) clause needs the parser: when the parser cannot use
// the next token it calls TryCloseImplicit, which closes the innermost
// implicit block in front of that token.
//
// Raw tokens (trivia included) are kept in an append-only table and virtual
// tokens in a second one. Both end up in the syntax tree; together they
// reproduce the input byte for byte.
//
// Mark and Reset give the parser cheap speculative lookahead: no token is
// ever lexed twice.
package layout
