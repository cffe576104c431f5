package lexer

import (
	"hsfront/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword scans varid, conid and qualified names.
//
//	M.N.x   -> QVarId      M.N.T -> QConId
//	M.+     -> QVarSym     M.:+  -> QConSym
//
// A module prefix followed by a keyword ("M.where") or a reserved operator
// ("M.->") is not qualified: the prefix is returned alone as ConId. "A.." is
// the operator . qualified by A.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	if !lx.isUpperHere() {
		lx.scanIdentChars()
		tok := lx.token(token.VarId, start)
		if k, ok := token.LookupKeyword(tok.Text); ok {
			tok.Kind = k
		}
		return tok
	}

	lx.scanIdentChars()
	kind := token.ConId
	for lx.cursor.Peek() == '.' {
		save := lx.cursor.Mark()
		lx.cursor.Bump()
		if lx.cursor.EOF() {
			lx.cursor.Reset(save)
			break
		}
		if lx.isUpperHere() {
			lx.scanIdentChars()
			kind = token.QConId
			continue
		}
		if lx.isIdentStartHere() {
			wordStart := lx.cursor.Mark()
			lx.scanIdentChars()
			word := string(lx.file.Content[wordStart:lx.cursor.Off])
			if _, kw := token.LookupKeyword(word); kw {
				lx.cursor.Reset(save)
				break
			}
			kind = token.QVarId
			break
		}
		if r, _ := lx.peekRune(); isSymbolRune(r) {
			symStart := lx.cursor.Mark()
			lx.scanSymbolChars()
			sym := string(lx.file.Content[symStart:lx.cursor.Off])
			if _, reserved := token.LookupReservedOp(sym); reserved {
				lx.cursor.Reset(save)
				break
			}
			kind = token.QVarSym
			if sym[0] == ':' {
				kind = token.QConSym
			}
			break
		}
		lx.cursor.Reset(save)
		break
	}
	return lx.token(kind, start)
}

// scanIdentChars consumes letters, digits, underscores and primes.
func (lx *Lexer) scanIdentChars() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				return
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			return
		}
		lx.bumpRune()
	}
}

func (lx *Lexer) isUpperHere() bool {
	r, sz := lx.peekRune()
	return sz > 0 && isUpperRune(r)
}

func (lx *Lexer) isIdentStartHere() bool {
	r, sz := lx.peekRune()
	return sz > 0 && isIdentStartRune(r)
}

// identStartsHere reports whether a non-ASCII rune at the cursor starts a name.
func (lx *Lexer) identStartsHere() bool {
	return lx.isIdentStartHere()
}
