package parser

import (
	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/layout"
	"hsfront/internal/token"
)

// blockMode says what happens to garbage left after an item.
type blockMode uint8

const (
	// closeOnError applies parse-error(t): an implicit block ends where its
	// item cannot continue.
	closeOnError blockMode = iota
	// skipOnError reports the garbage and skips to the next separator. Used
	// for the module body, which must not end early.
	skipOnError
)

// block parses a layout block of kind k:
//
//	block ::= "{" item (";" item)* "}" | VOpen item (VSemi item)* VClose
//
// item is called at the start of every non-empty entry. A missing block
// opener is reported; the node is still created, empty.
func (p *Parser) block(k cst.Kind, mode blockMode, item func()) {
	p.b.Start(k)
	defer p.b.Finish()

	switch {
	case p.at(token.VOpen):
		p.bump()
		p.implicitItems(mode, item)
	case p.at(token.LBrace):
		open := p.bump()
		p.explicitItems(item)
		if !p.eat(token.VClose) {
			p.closeWith(token.RBrace, diag.SynUnclosedBrace, open.Token)
		}
	default:
		p.err(diag.SynExpectBlock, "expected a block, got "+describe(p.peek()))
	}
}

func (p *Parser) implicitItems(mode blockMode, item func()) {
	for {
		switch {
		case p.at(token.VClose):
			p.bump()
			return
		case p.atAny(token.VSemi, token.Semi):
			// explicit ';' is allowed inside implicit layout too
			p.bump()
			continue
		case p.at(token.EOF):
			return
		}
		if mode == closeOnError && endsImplicit(p.peek().Kind) && p.closeImplicit() {
			return
		}

		item()
		if p.atAny(token.VSemi, token.Semi, token.VClose, token.EOF) {
			continue
		}
		if mode == skipOnError {
			p.skipItem("unexpected " + describe(p.peek()))
			continue
		}
		// parse-error(t)
		if p.closeImplicit() {
			return
		}
		p.skipItem("unexpected " + describe(p.peek()))
	}
}

// closeImplicit applies parse-error(t) to the innermost implicit block and
// consumes the VClose it produces.
func (p *Parser) closeImplicit() bool {
	if !p.lay.TryCloseImplicit() {
		return false
	}
	p.bump()
	return true
}

// endsImplicit reports tokens that can never start a block item. Met at the
// start of an item they close the block, so that a where or in aligned with
// the block belongs to the enclosing construct.
func endsImplicit(k token.Kind) bool {
	switch k {
	case token.KwWhere, token.KwIn, token.KwOf, token.KwThen, token.KwElse,
		token.RParen, token.RBracket, token.Comma:
		return true
	default:
		return false
	}
}

func (p *Parser) explicitItems(item func()) {
	for {
		switch {
		case p.at(token.RBrace), p.at(token.EOF), p.at(token.VClose):
			return
		case p.at(token.Semi):
			p.bump()
			continue
		}
		before := p.steps
		item()
		if p.atAny(token.Semi, token.RBrace, token.VClose, token.EOF) && p.steps != before {
			continue
		}
		p.skipItem("unexpected " + describe(p.peek()))
	}
}

// skipItem reports the current token and wraps everything up to the next
// separator of this block in an Error node. Nested blocks and brackets are
// skipped whole.
func (p *Parser) skipItem(msg string) {
	if !p.errorPending() {
		diag.ReportError(p.rep, diag.SynUnexpectedToken, p.diagnosticSpan(), msg).
			WithRecovery(diag.RecoverSkippedTokens).
			Emit()
		p.noteError()
	}
	p.b.Start(cst.Error)
	depth := 0
	progressed := false
	for !p.at(token.EOF) {
		it := p.peek()
		if depth == 0 && (progressed || it.Virtual) && isSeparator(it.Kind) {
			break
		}
		switch it.Kind {
		case token.VOpen, token.LBrace, token.LParen, token.LBracket, token.PragmaOpen:
			depth++
		case token.VClose, token.RBrace, token.RParen, token.RBracket, token.PragmaClose:
			if depth > 0 {
				depth--
			}
		}
		p.bump()
		progressed = true
	}
	p.b.Finish()
}

func isSeparator(k token.Kind) bool {
	switch k {
	case token.VSemi, token.VClose, token.Semi, token.RBrace:
		return true
	default:
		return false
	}
}

// lookahead walks the rest of the current item without consuming it. fn
// sees every item at bracket depth 0 and returns true to stop. The walk
// also stops at a separator or closer at depth 0 and at end of input.
func (p *Parser) lookahead(fn func(it layout.Item) bool) {
	m := p.lay.Mark()
	defer p.lay.Reset(m)
	depth := 0
	for {
		it := p.lay.Peek()
		if it.Kind == token.EOF {
			return
		}
		switch it.Kind {
		case token.LParen, token.LBracket, token.LBrace, token.VOpen, token.PragmaOpen:
			if depth == 0 && fn(it) {
				return
			}
			depth++
		case token.RParen, token.RBracket, token.RBrace, token.VClose, token.PragmaClose:
			if depth == 0 {
				return
			}
			depth--
		case token.VSemi, token.Semi:
			if depth == 0 {
				return
			}
		default:
			if depth == 0 && fn(it) {
				return
			}
		}
		p.lay.Next()
	}
}

// scanFor reports which of kinds comes first at depth 0 in the current
// item, or token.Invalid.
func (p *Parser) scanFor(kinds ...token.Kind) token.Kind {
	found := token.Invalid
	p.lookahead(func(it layout.Item) bool {
		for _, k := range kinds {
			if it.Kind == k {
				found = k
				return true
			}
		}
		return false
	})
	return found
}
