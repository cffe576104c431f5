package lexer

import (
	"unicode"
	"unicode/utf8"
)

// peekRune читает руну под курсором
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	return lx.runeAt(lx.cursor.Off)
}

func (lx *Lexer) runeAt(off uint32) (rune, int) {
	if off >= lx.cursor.Limit {
		return utf8.RuneError, 0
	}
	b := lx.file.Content[off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[off:lx.cursor.Limit])
}

// bumpRune перемещает курсор на размер текущей руны
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	lx.cursor.Advance(sz)
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\v' || b == '\f'
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9') || b == '\''
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return r == '_' || r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isUpperRune(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsTitle(r)
}

// isSymbolRune: ascSymbol | uniSymbol, minus the special and quote characters.
func isSymbolRune(r rune) bool {
	if r < utf8.RuneSelf {
		switch r {
		case '!', '#', '$', '%', '&', '*', '+', '.', '/', '<', '=', '>', '?', '@', '\\', '^', '|', '-', '~', ':':
			return true
		}
		return false
	}
	return unicode.IsSymbol(r) || unicode.IsPunct(r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

func isOct(b byte) bool { return b >= '0' && b <= '7' }

func isBin(b byte) bool { return b == '0' || b == '1' }
