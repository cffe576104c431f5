package lexer

import (
	"strings"

	"fortio.org/safecast"

	"hsfront/internal/diag"
	"hsfront/internal/source"
	"hsfront/internal/token"
)

// asciiEscapes lists \NUL-style escapes. SOH precedes SO so the longer name wins.
var asciiEscapes = []string{
	"NUL", "SOH", "STX", "ETX", "EOT", "ENQ", "ACK", "BEL", "BS", "HT", "LF", "VT", "FF", "CR",
	"SO", "SI", "DLE", "DC1", "DC2", "DC3", "DC4", "NAK", "SYN", "ETB", "CAN", "EM", "SUB",
	"ESC", "FS", "GS", "RS", "US", "SP", "DEL",
}

// scanString reads "...". A newline or end of input before the closing
// quote ends the token there (diagnostic, SynthesizedEnd). A backslash
// followed by whitespace starts a string gap that may span lines.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case '"':
			lx.cursor.Bump()
			return lx.token(token.StringLit, start)
		case '\n':
			tok := lx.token(token.StringLit, start)
			lx.errRecovered(diag.LexUnterminatedString, tok.Span, "newline in string literal")
			return tok
		case '\\':
			if isSpaceByte(lx.cursor.PeekAt(1)) || lx.cursor.PeekAt(1) == '\n' {
				lx.scanStringGap()
				continue
			}
			lx.scanEscape()
		default:
			lx.bumpRune()
		}
	}
	tok := lx.token(token.StringLit, start)
	lx.errRecovered(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

// scanStringGap consumes "\   \" including newlines.
func (lx *Lexer) scanStringGap() {
	gapStart := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			lx.cursor.Bump()
			return
		}
		if !isSpaceByte(b) && b != '\n' {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(gapStart), "string gap must end with '\\'")
			return
		}
		lx.cursor.Bump()
	}
}

// scanCharOrTick decides between a character literal and a lone tick.
// 'a' and '\n' are literals. 'Just and 'foo are ticks (promotion and
// Template Haskell name quotes); a doubled tick before a type name is two ticks.
func (lx *Lexer) scanCharOrTick() token.Token {
	start := lx.cursor.Mark()
	next := lx.cursor.PeekAt(1)
	switch {
	case next == '\\':
		lx.cursor.Bump()
		lx.scanEscape()
		return lx.closeChar(start)
	case next == '\'':
		if lx.cursor.PeekAt(2) == '\'' {
			// '''
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.token(token.CharLit, start)
		}
		return lx.take(token.Tick, 1)
	case next == '\n' || next == 0:
		return lx.take(token.Tick, 1)
	}
	// one rune, then a closing quote?
	_, sz := lx.runeAt(lx.cursor.Off + 1)
	width, err := safecast.Conv[uint32](sz)
	if err == nil && lx.cursor.PeekAt(1+width) == '\'' {
		lx.cursor.Bump()
		lx.bumpRune()
		lx.cursor.Bump()
		return lx.token(token.CharLit, start)
	}
	return lx.take(token.Tick, 1)
}

func (lx *Lexer) closeChar(start Mark) token.Token {
	if lx.cursor.Eat('\'') {
		return lx.token(token.CharLit, start)
	}
	tok := lx.token(token.CharLit, start)
	lx.errRecovered(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
	return tok
}

// scanEscape consumes one escape sequence starting at '\'.
func (lx *Lexer) scanEscape() {
	escStart := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if lx.cursor.EOF() {
		return
	}
	b := lx.cursor.Peek()
	switch {
	case strings.IndexByte(`abfnrtv\"'&`, b) >= 0:
		lx.cursor.Bump()
	case isDec(b):
		lx.digits(isDec)
	case b == 'x' && isHex(lx.cursor.PeekAt(1)):
		lx.cursor.Bump()
		lx.digits(isHex)
	case b == 'o' && isOct(lx.cursor.PeekAt(1)):
		lx.cursor.Bump()
		lx.digits(isOct)
	case b == '^' && lx.cursor.PeekAt(1) >= '@' && lx.cursor.PeekAt(1) <= '_':
		lx.cursor.Bump()
		lx.cursor.Bump()
	default:
		for _, name := range asciiEscapes {
			if lx.cursor.HasPrefix(name) {
				for range len(name) {
					lx.cursor.Bump()
				}
				return
			}
		}
		if b != '\n' {
			lx.bumpRune()
		}
		lx.reportBadEscape(lx.cursor.SpanFrom(escStart))
	}
}

func (lx *Lexer) reportBadEscape(sp source.Span) {
	lx.errLex(diag.LexBadEscape, sp, "invalid escape sequence "+string(lx.file.Content[sp.Start:sp.End]))
}
