package parser

import (
	"slices"

	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/layout"
	"hsfront/internal/source"
	"hsfront/internal/token"
)

func (p *Parser) peek() layout.Item {
	return p.lay.Peek()
}

// nth смотрит на n токенов вперёд (0 — текущий)
func (p *Parser) nth(n int) layout.Item {
	return p.lay.PeekN(n)
}

func (p *Parser) at(k token.Kind) bool {
	return p.lay.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lay.Peek().Kind)
}

// atWord matches a contextual keyword spelled as a plain variable.
func (p *Parser) atWord(w string) bool {
	return p.lay.Peek().Is(w)
}

func (p *Parser) atOp(op string) bool {
	return p.lay.Peek().IsOp(op)
}

// atEnd reports whether the cursor is at a block separator, a block close
// or the end of input.
func (p *Parser) atEnd() bool {
	return p.atAny(token.VSemi, token.VClose, token.Semi, token.RBrace, token.EOF)
}

// bump consumes the current item and attaches it to the open node. EOF is
// never attached here: it belongs to the root.
func (p *Parser) bump() layout.Item {
	it := p.lay.Peek()
	if it.Kind == token.EOF {
		return it
	}
	it = p.lay.Next()
	p.steps++
	if it.Virtual {
		p.b.Virtual(it.Token)
		return it
	}
	p.b.Token(it.Index)
	p.lastSpan = it.Span
	p.lastKind = it.Kind
	return it
}

// eat consumes the current token when it has kind k.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.bump()
		return true
	}
	return false
}

// eatWord consumes a contextual keyword.
func (p *Parser) eatWord(w string) bool {
	if p.atWord(w) {
		p.bump()
		return true
	}
	return false
}

// expect — ожидаем конкретный токен. Если нет — репортим и ничего не съедаем.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) bool {
	if p.eat(k) {
		return true
	}
	p.err(code, "expected "+what+", got "+describe(p.peek()))
	return false
}

// closeWith consumes the closing bracket k matching open. A missing one is
// reported and assumed.
func (p *Parser) closeWith(k token.Kind, code diag.Code, open token.Token) bool {
	if p.eat(k) {
		return true
	}
	diag.ReportError(p.rep, code, p.diagnosticSpan(), "expected '"+k.String()+"', got "+describe(p.peek())).
		WithNote(open.Span, "to match this '"+open.Text+"'").
		WithRecovery(diag.RecoverInsertedToken).
		Emit()
	p.noteError()
	return false
}

// diagnosticSpan — лучший span для диагностики: в конце файла указываем
// сразу за последним съеденным токеном
func (p *Parser) diagnosticSpan() source.Span {
	it := p.peek()
	if it.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroAtEnd()
	}
	return it.Span
}

// репортует ошибку на текущем токене
func (p *Parser) err(code diag.Code, msg string) {
	if p.errorPending() {
		return
	}
	diag.ReportError(p.rep, code, p.diagnosticSpan(), msg).Emit()
	p.noteError()
}

// репортует warning на текущем токене
func (p *Parser) warn(code diag.Code, msg string) {
	diag.ReportWarning(p.rep, code, p.diagnosticSpan(), msg).Emit()
}

func (p *Parser) warnAt(code diag.Code, sp source.Span, msg string) {
	diag.ReportWarning(p.rep, code, sp, msg).Emit()
}

// errorPending reports whether an error was already reported at the
// current token; a production that gives up there must not add another.
func (p *Parser) errorPending() bool {
	return p.lastErr == int(p.diagnosticSpan().Start)+1
}

func (p *Parser) noteError() {
	p.lastErr = int(p.diagnosticSpan().Start) + 1
}

// describe renders an item for messages.
func describe(it layout.Item) string {
	switch it.Kind {
	case token.EOF:
		return "end of input"
	case token.VOpen:
		return "start of layout block"
	case token.VSemi:
		return "new line of layout block"
	case token.VClose:
		return "end of layout block"
	}
	return "'" + it.Text + "'"
}

// node wraps fn in a node of kind k.
func (p *Parser) node(k cst.Kind, fn func()) cst.NodeID {
	p.b.Start(k)
	fn()
	return p.b.Finish()
}

// leaf wraps the current token in a node of kind k.
func (p *Parser) leaf(k cst.Kind) cst.NodeID {
	p.b.Start(k)
	p.bump()
	return p.b.Finish()
}
