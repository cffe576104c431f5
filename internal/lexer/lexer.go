package lexer

import (
	"iter"

	"hsfront/internal/diag"
	"hsfront/internal/source"
	"hsfront/internal/token"
)

type pragmaState uint8

const (
	outsidePragma pragmaState = iota
	pragmaExpectName
	pragmaContent
)

// Lexer turns a file into raw tokens, trivia included. It is lazy: nothing
// is scanned before Next is called.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	before Checkpoint   // state before look was scanned
	pragma pragmaState
	open   source.Span // span of the current {-#
}

// Checkpoint is a resumable lexer state.
type Checkpoint struct {
	off    uint32
	pragma pragmaState
	open   source.Span
}

// Offset returns the byte offset the checkpoint resumes from.
func (c Checkpoint) Offset() uint32 { return c.off }

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File { return lx.file }

// Next returns the next raw token. After the end of input it keeps
// returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	tok := lx.scan()
	tok.Pos = lx.file.Position(tok.Span.Start)
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	lx.before = lx.state()
	t := lx.Next()
	lx.look = &t
	return t
}

// Checkpoint records the current position, including whether the lexer is
// inside a pragma.
func (lx *Lexer) Checkpoint() Checkpoint {
	if lx.look != nil {
		return lx.before
	}
	return lx.state()
}

// Restore rewinds (or fast-forwards) to a checkpoint.
func (lx *Lexer) Restore(c Checkpoint) {
	lx.look = nil
	lx.cursor.Off = c.off
	lx.pragma = c.pragma
	lx.open = c.open
}

func (lx *Lexer) state() Checkpoint {
	return Checkpoint{off: lx.cursor.Off, pragma: lx.pragma, open: lx.open}
}

// All yields tokens up to and including EOF.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			t := lx.Next()
			if !yield(t) || t.Kind == token.EOF {
				return
			}
		}
	}
}

// Tokenize lexes the whole file. The result always ends with EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for t := range lx.All() {
		out = append(out, t)
	}
	return out
}

func (lx *Lexer) scan() token.Token {
	if lx.cursor.EOF() {
		if lx.pragma != outsidePragma {
			lx.errRecovered(diag.LexUnterminatedPragma, lx.open, "pragma is not closed with '#-}'")
			lx.pragma = outsidePragma
		}
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	if lx.pragma != outsidePragma && lx.cursor.HasPrefix("#-}") {
		lx.pragma = outsidePragma
		return lx.take(token.PragmaClose, 3)
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '\n':
		return lx.take(token.Newline, 1)
	case isSpaceByte(ch):
		return lx.scanWhitespace()
	case ch == '{' && lx.cursor.HasPrefix("{-#") && lx.pragma == outsidePragma:
		lx.pragma = pragmaExpectName
		tok := lx.take(token.PragmaOpen, 3)
		lx.open = tok.Span
		return tok
	case ch == '{' && lx.cursor.PeekAt(1) == '-':
		return lx.scanBlockComment()
	case ch == '-' && lx.pragma == outsidePragma && lx.isLineComment():
		return lx.scanLineComment()
	case lx.pragma == pragmaExpectName && isIdentStartByte(ch):
		lx.pragma = pragmaContent
		return lx.scanPragmaName()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf && lx.identStartsHere():
		if lx.pragma == pragmaExpectName {
			lx.pragma = pragmaContent
		}
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		lx.leavePragmaName()
		return lx.scanNumber()
	case ch == '"':
		lx.leavePragmaName()
		return lx.scanString()
	case ch == '\'':
		lx.leavePragmaName()
		return lx.scanCharOrTick()
	default:
		lx.leavePragmaName()
		return lx.scanOperatorOrPunct()
	}
}

// leavePragmaName ends the "expect name" state: pragmas without a name
// word ({-# #-}) still get their content lexed.
func (lx *Lexer) leavePragmaName() {
	if lx.pragma == pragmaExpectName {
		lx.pragma = pragmaContent
	}
}

// take consumes n bytes as a token of kind k.
func (lx *Lexer) take(k token.Kind, n int) token.Token {
	start := lx.cursor.Mark()
	for range n {
		lx.cursor.Bump()
	}
	return lx.token(k, start)
}

func (lx *Lexer) token(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
