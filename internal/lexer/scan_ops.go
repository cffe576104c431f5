package lexer

import (
	"hsfront/internal/diag"
	"hsfront/internal/token"
)

// scanOperatorOrPunct handles specials ( ) , ; [ ] ` { } and symbol runs.
// A symbol run is a reserved operator when it spells one exactly, otherwise
// ConSym (leading ':') or VarSym.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	switch lx.cursor.Peek() {
	case '(':
		return lx.take(token.LParen, 1)
	case ')':
		return lx.take(token.RParen, 1)
	case ',':
		return lx.take(token.Comma, 1)
	case ';':
		return lx.take(token.Semi, 1)
	case '[':
		return lx.take(token.LBracket, 1)
	case ']':
		return lx.take(token.RBracket, 1)
	case '`':
		return lx.take(token.Backtick, 1)
	case '{':
		return lx.take(token.LBrace, 1)
	case '}':
		return lx.take(token.RBrace, 1)
	}

	if r, _ := lx.peekRune(); isSymbolRune(r) {
		lx.scanSymbolChars()
		tok := lx.token(token.VarSym, start)
		if k, ok := token.LookupReservedOp(tok.Text); ok {
			tok.Kind = k
		} else if tok.Text[0] == ':' {
			tok.Kind = token.ConSym
		}
		return tok
	}

	lx.bumpRune()
	tok := lx.token(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character "+quoteRune(tok.Text))
	return tok
}

// scanSymbolChars consumes a run of symbol runes. Inside a pragma the run
// stops before "#-}" so the closing delimiter stays intact.
func (lx *Lexer) scanSymbolChars() {
	for !lx.cursor.EOF() {
		if lx.pragma != outsidePragma && lx.cursor.HasPrefix("#-}") {
			return
		}
		r, _ := lx.peekRune()
		if !isSymbolRune(r) {
			return
		}
		lx.bumpRune()
	}
}

func quoteRune(s string) string {
	return "'" + s + "'"
}
