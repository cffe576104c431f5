package layout

import (
	"slices"

	"hsfront/internal/diag"
	"hsfront/internal/lexer"
	"hsfront/internal/source"
	"hsfront/internal/token"
)

// explicit marks a context opened by a real '{'.
const explicit = 0

// Item is one token of the resolved stream.
type Item struct {
	token.Token
	// Index points into Raw() for lexer tokens and into Virtual() for
	// layout tokens.
	Index   int
	Virtual bool
}

// Resolver applies the offside rule to a lexer's output.
type Resolver struct {
	lx   *lexer.Lexer
	file *source.File
	rep  diag.Reporter

	raw  []token.Token
	virt []token.Token

	st state
}

// state is everything Mark/Reset must capture.
type state struct {
	pos        int    // next raw index to examine
	queue      []Item // resolved items waiting for the parser
	stack      []uint32
	expectOpen bool // previous token was let/where/do/of
	started    bool // first non-pragma token seen
	inPragma   bool
	lastLine   uint32
	anchor     source.Span // where a VClose goes: end of the last significant token
	closeAt    source.Span // anchor as it was before the queued raw token
	virtLen    int
	eof        bool
	prev       token.Kind // last real token consumed
}

// New creates a resolver reading from lx. Layout diagnostics go to r.
func New(lx *lexer.Lexer, r diag.Reporter) *Resolver {
	return &Resolver{
		lx:   lx,
		file: lx.File(),
		rep:  r,
		st:   state{anchor: source.Span{File: lx.File().ID}},
	}
}

// Raw returns the raw tokens lexed so far, in source order.
func (r *Resolver) Raw() []token.Token { return r.raw }

// Virtual returns the virtual tokens emitted so far.
func (r *Resolver) Virtual() []token.Token { return r.virt[:r.st.virtLen] }

// Drain lexes the rest of the input into the raw table and returns it.
func (r *Resolver) Drain() []token.Token {
	for len(r.raw) == 0 || r.raw[len(r.raw)-1].Kind != token.EOF {
		r.raw = append(r.raw, r.lx.Next())
	}
	return r.raw
}

// Depth returns the number of open layout contexts.
func (r *Resolver) Depth() int { return len(r.st.stack) }

// Peek returns the next item without consuming it.
func (r *Resolver) Peek() Item {
	r.fill()
	return r.st.queue[0]
}

// Next consumes and returns the next item.
func (r *Resolver) Next() Item {
	r.fill()
	it := r.st.queue[0]
	if it.Kind != token.EOF {
		r.st.queue = r.st.queue[1:]
	}
	r.consumed(it)
	return it
}

// consumed applies the effects a token has once the parser has taken it.
// Doing this on consumption (not when the token is queued) keeps the
// context stack exactly at "before t" while t is the next token, which is
// what TryCloseImplicit relies on.
func (r *Resolver) consumed(it Item) {
	if it.Virtual || r.st.inPragma || it.Kind == token.PragmaOpen && !r.st.started {
		return
	}
	prev := r.st.prev
	r.st.prev = it.Kind
	switch it.Kind {
	case token.LBrace:
		r.st.stack = append(r.st.stack, explicit)
	case token.RBrace:
		if n := len(r.st.stack); n > 0 && r.st.stack[n-1] == explicit {
			r.st.stack = r.st.stack[:n-1]
		}
	case token.KwLet, token.KwWhere, token.KwDo, token.KwOf:
		r.st.expectOpen = true
	case token.KwCase:
		// \case opens its alternatives like `of`
		if prev == token.Backslash {
			r.st.expectOpen = true
		}
	}
}

// TryCloseImplicit is the parse-error(t) rule: if the innermost context is
// implicit, it is closed with a VClose placed before the next token.
func (r *Resolver) TryCloseImplicit() bool {
	r.fill()
	n := len(r.st.stack)
	if n == 0 || r.st.stack[n-1] == explicit {
		return false
	}
	if r.st.queue[0].Virtual {
		return false
	}
	r.st.stack = r.st.stack[:n-1]
	closer := r.virtual(token.VClose, r.st.closeAt.ZeroAtEnd())
	r.st.queue = append([]Item{closer}, r.st.queue...)
	return true
}

// fill resolves raw tokens until at least one item is queued.
func (r *Resolver) fill() {
	for len(r.st.queue) == 0 {
		r.step()
	}
}

func (r *Resolver) rawAt(i int) token.Token {
	for i >= len(r.raw) {
		if n := len(r.raw); n > 0 && r.raw[n-1].Kind == token.EOF {
			return r.raw[n-1]
		}
		r.raw = append(r.raw, r.lx.Next())
	}
	return r.raw[i]
}

// step takes the next significant raw token and queues it together with the
// virtual tokens that precede it.
func (r *Resolver) step() {
	idx := r.st.pos
	t := r.rawAt(idx)
	for t.IsTrivia() {
		idx++
		t = r.rawAt(idx)
	}
	if t.Kind != token.EOF {
		r.st.pos = idx + 1
	} else {
		r.st.pos = idx
	}
	item := Item{Token: t, Index: idx}

	if t.Kind == token.EOF {
		r.atEOF(item)
		return
	}

	switch {
	case r.st.inPragma:
		if t.Kind == token.PragmaClose {
			r.st.inPragma = false
		}
		r.queueToken(item)
		return
	case t.Kind == token.PragmaOpen && !r.st.started:
		// file-header pragmas are invisible to layout
		r.st.inPragma = true
		r.queueToken(item)
		return
	}

	bol := t.Pos.Line != r.st.lastLine
	switch {
	case r.st.expectOpen:
		r.st.expectOpen = false
		if t.Kind != token.LBrace {
			r.openBlock(t, bol)
		}
	case !r.st.started:
		if t.Kind != token.KwModule && t.Kind != token.LBrace {
			r.openBlock(t, bol)
		}
	case bol:
		r.newLine(t)
	}
	r.st.started = true

	if t.Kind == token.RBrace {
		r.closeForBrace(t)
	}
	if t.Kind == token.PragmaOpen {
		r.st.inPragma = true
	}
	r.queueToken(item)
}

func (r *Resolver) queueToken(it Item) {
	r.st.closeAt = r.st.anchor
	r.push(it)
	r.touch(it.Token)
}

// openBlock handles {n}: the token t opens a block at its column.
func (r *Resolver) openBlock(t token.Token, bol bool) {
	n := t.Pos.Col
	if n > r.top() {
		r.st.stack = append(r.st.stack, n)
		r.emit(token.VOpen, t.Span)
		return
	}
	// empty block: { } then <n>
	r.emit(token.VOpen, t.Span)
	r.emit(token.VClose, t.Span)
	if bol {
		r.newLine(t)
	}
}

// newLine handles <n>.
func (r *Resolver) newLine(t token.Token) {
	n := t.Pos.Col
	for len(r.st.stack) > 0 {
		m := r.top()
		if m == explicit {
			return
		}
		switch {
		case n == m:
			r.emit(token.VSemi, t.Span)
			return
		case n < m:
			r.st.stack = r.st.stack[:len(r.st.stack)-1]
			r.emitClose()
		default:
			return
		}
	}
}

// closeForBrace closes implicit blocks nested inside an explicit one before
// its '}'. A '}' with no explicit block open is reported and left to the
// parser.
func (r *Resolver) closeForBrace(t token.Token) {
	if !slices.Contains(r.st.stack, explicit) {
		diag.ReportError(r.rep, diag.LayUnbalancedBrace, t.Span, "'}' does not close any explicit block").Emit()
		return
	}
	for r.top() != explicit {
		r.st.stack = r.st.stack[:len(r.st.stack)-1]
		r.emitClose()
	}
}

// atEOF closes every open context; explicit ones are reported.
func (r *Resolver) atEOF(item Item) {
	if r.st.expectOpen {
		r.st.expectOpen = false
		r.emit(token.VOpen, item.Span)
		r.emit(token.VClose, item.Span)
	}
	for len(r.st.stack) > 0 {
		if r.top() == explicit && !r.st.eof {
			diag.ReportError(r.rep, diag.LayUnclosedBrace, item.Span, "explicit '{' is never closed").
				WithRecovery(diag.RecoverForcedClose).
				Emit()
		}
		r.st.stack = r.st.stack[:len(r.st.stack)-1]
		r.emitClose()
	}
	r.st.eof = true
	r.push(item)
}

func (r *Resolver) top() uint32 {
	if len(r.st.stack) == 0 {
		return explicit
	}
	return r.st.stack[len(r.st.stack)-1]
}

// touch records t as the last significant token.
func (r *Resolver) touch(t token.Token) {
	r.st.lastLine = t.Pos.Line
	if end := r.file.Position(t.Span.End); end.Line > r.st.lastLine {
		// multi-line tokens (block strings, pragmas) end on a later line
		r.st.lastLine = end.Line
	}
	r.st.anchor = t.Span
}

func (r *Resolver) push(it Item) {
	r.st.queue = append(r.st.queue, it)
}

// emit queues a VOpen or VSemi at the start of at.
func (r *Resolver) emit(k token.Kind, at source.Span) {
	it := r.virtual(k, at.ZeroAt())
	r.push(it)
	r.st.anchor = at.ZeroAt()
}

// emitClose queues a VClose right after the last significant token, so
// blocks do not swallow the blank lines and comments that follow them.
func (r *Resolver) emitClose() {
	r.push(r.virtual(token.VClose, r.st.anchor.ZeroAtEnd()))
}

func (r *Resolver) virtual(k token.Kind, at source.Span) Item {
	tok := token.Virtual(k, at, r.file.Position(at.Start))
	r.virt = append(r.virt[:r.st.virtLen], tok)
	r.st.virtLen++
	return Item{Token: tok, Index: r.st.virtLen - 1, Virtual: true}
}
