package lexer

import (
	"hsfront/internal/diag"
	"hsfront/internal/token"
)

// scanWhitespace coalesces spaces, tabs, \r, \v and \f. Newlines are
// separate tokens so the layout resolver can see line starts.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isSpaceByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.token(token.Whitespace, start)
}

// isLineComment: "--" starts a comment only when the run of dashes is not
// followed by another symbol character ("-->" is an operator).
func (lx *Lexer) isLineComment() bool {
	n := uint32(0)
	for lx.cursor.PeekAt(n) == '-' {
		n++
	}
	if n < 2 {
		return false
	}
	if lx.cursor.Off+n >= lx.cursor.Limit {
		return true
	}
	r, _ := lx.runeAt(lx.cursor.Off + n)
	return !isSymbolRune(r)
}

// scanLineComment reads up to (not including) the newline.
func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.token(token.LineComment, start)
}

// scanBlockComment reads a nested {- ... -} comment. An unterminated
// comment runs to end of input.
func (lx *Lexer) scanBlockComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	depth := 1
	for !lx.cursor.EOF() {
		switch {
		case lx.cursor.HasPrefix("{-"):
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth++
		case lx.cursor.HasPrefix("-}"):
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth--
			if depth == 0 {
				return lx.token(token.BlockComment, start)
			}
		default:
			lx.cursor.Bump()
		}
	}
	tok := lx.token(token.BlockComment, start)
	lx.errRecovered(diag.LexUnterminatedBlockComment, tok.Span, "unterminated block comment")
	return tok
}

// scanPragmaName reads the pragma keyword after {-#. Names are
// case-insensitive words, possibly with underscores (OPTIONS_GHC).
func (lx *Lexer) scanPragmaName() token.Token {
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.token(token.PragmaName, start)
}
