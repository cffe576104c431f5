package lexer

import (
	"hsfront/internal/token"
)

// scanNumber reads integer and floating literals:
//
//	decimal | 0x hex | 0o octal | 0b binary       (NumericUnderscores allowed)
//	decimal . decimal [exponent] | decimal exponent
//
// A radix prefix without digits ("0x") lexes as "0" followed by a name.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		var digit func(byte) bool
		switch b1 {
		case 'x', 'X':
			digit = isHex
		case 'o', 'O':
			digit = isOct
		case 'b', 'B':
			digit = isBin
		}
		if digit != nil && digit(lx.cursor.PeekAt(2)) {
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.digits(digit)
			return lx.token(token.IntLit, start)
		}
	}

	lx.digits(isDec)
	kind := token.IntLit
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.digits(isDec)
		kind = token.FloatLit
	}
	if lx.exponent() {
		kind = token.FloatLit
	}
	return lx.token(kind, start)
}

// digits consumes a digit run; single underscores may separate digits.
func (lx *Lexer) digits(ok func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		switch {
		case ok(b):
			lx.cursor.Bump()
		case b == '_':
			n := uint32(0)
			for lx.cursor.PeekAt(n) == '_' {
				n++
			}
			if !ok(lx.cursor.PeekAt(n)) {
				return
			}
			for range n {
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}

// exponent consumes [eE][+-]digits when a digit actually follows.
func (lx *Lexer) exponent() bool {
	b := lx.cursor.Peek()
	if b != 'e' && b != 'E' {
		return false
	}
	n := uint32(1)
	if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
		n = 2
	}
	if !isDec(lx.cursor.PeekAt(n)) {
		return false
	}
	for range n {
		lx.cursor.Bump()
	}
	lx.digits(isDec)
	return true
}
