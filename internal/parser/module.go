package parser

import (
	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/token"
)

// parseModuleHeader:
//
//	moduleDecl ::= "module" modid pragma* [exports] "where"
func (p *Parser) parseModuleHeader() {
	p.b.Start(cst.ModuleDeclaration)
	defer p.b.Finish()

	p.bump() // module
	if !p.parseModid() {
		return
	}
	for p.at(token.PragmaOpen) {
		p.parsePragma()
	}
	if p.at(token.LParen) {
		p.parseExports()
	}
	p.expect(token.KwWhere, diag.SynUnexpectedToken, "'where' after module header")
}

// parseModid wraps a (possibly dotted) module name.
func (p *Parser) parseModid() bool {
	if !p.atAny(token.ConId, token.QConId) {
		p.err(diag.SynExpectModuleName, "expected module name, got "+describe(p.peek()))
		return false
	}
	p.leaf(cst.Modid)
	return true
}

// parseBody parses the top-level block: imports, then declarations.
func (p *Parser) parseBody() {
	if p.atAny(token.VOpen, token.LBrace) {
		p.block(cst.Body, skipOnError, p.parseTopItem)
		return
	}
	if p.at(token.EOF) {
		p.node(cst.Body, func() {})
		return
	}
	// no block at all (typically "module M" without "where"): declarations
	// cannot be separated, so take what parses and skip the rest
	p.err(diag.SynExpectBlock, "expected module body, got "+describe(p.peek()))
	p.b.Start(cst.Body)
	for !p.at(token.EOF) {
		before := p.steps
		p.parseTopItem()
		if p.steps == before {
			p.skipItem("unexpected " + describe(p.peek()))
		}
	}
	p.b.Finish()
}

func (p *Parser) parseTopItem() {
	if p.at(token.KwImport) {
		if p.sawDecl {
			p.err(diag.SynImportAfterDecl, "import after the first top-level declaration")
		}
		p.parseImport()
		return
	}
	p.sawDecl = true
	p.parseTopDecl()
}

// parseExports:
//
//	exports ::= "(" [export ("," export)*] [","] ")"
func (p *Parser) parseExports() {
	p.b.Start(cst.Exports)
	defer p.b.Finish()

	open := p.bump()
	for !p.atAny(token.RParen, token.EOF) && !p.atEnd() {
		if p.eat(token.Comma) {
			continue
		}
		before := p.steps
		p.parseEntity(cst.Export, true)
		if p.steps == before {
			p.skipUntilClose("export")
		}
		if !p.at(token.RParen) && !p.eat(token.Comma) {
			break
		}
	}
	p.closeWith(token.RParen, diag.SynUnclosedParen, open.Token)
}

// parseEntity parses an export or import item:
//
//	entity ::= "module" modid | ("type" | "pattern") qname
//	         | qname ["(" [".." | qname ("," qname)*] ")"]
func (p *Parser) parseEntity(k cst.Kind, allowModule bool) {
	switch {
	case p.at(token.KwModule) && allowModule:
		p.b.Start(k)
		p.bump()
		p.parseModid()
		p.b.Finish()
		return
	case p.at(token.KwType) || p.atWord("pattern"):
		p.b.Start(k)
		p.bump()
		p.parseQName()
		p.b.Finish()
		return
	}
	if !p.atQName() {
		p.err(diag.SynExpectIdentifier, "expected a name, got "+describe(p.peek()))
		return
	}
	p.b.Start(k)
	defer p.b.Finish()
	p.parseQName()
	if !p.at(token.LParen) {
		return
	}
	open := p.bump()
	for !p.atAny(token.RParen, token.EOF) && !p.atEnd() {
		switch {
		case p.eat(token.Comma), p.eat(token.DotDot):
			continue
		case p.at(token.KwType) || p.atWord("pattern"):
			p.bump()
			continue
		case p.atQName():
			p.parseQName()
			continue
		}
		p.err(diag.SynExpectIdentifier, "expected a name, got "+describe(p.peek()))
		break
	}
	p.closeWith(token.RParen, diag.SynUnclosedParen, open.Token)
}

// parseImport:
//
//	impdecl ::= "import" [pragma] ["safe"] ["qualified"] [string] modid
//	            ["qualified"] ["as" modid] [impspec]
func (p *Parser) parseImport() {
	p.b.Start(cst.ImportDeclaration)
	defer p.b.Finish()

	p.bump() // import
	if p.at(token.PragmaOpen) {
		p.parsePragma() // {-# SOURCE #-}
	}
	p.eatWord("safe")
	p.eatWord("qualified")
	p.eat(token.StringLit)
	if !p.parseModid() {
		return
	}
	p.eatWord("qualified")
	if p.eatWord("as") {
		p.parseModid()
	}
	p.eatWord("hiding")
	if p.at(token.LParen) {
		p.parseImportList()
	}
}

func (p *Parser) parseImportList() {
	p.b.Start(cst.ImportList)
	defer p.b.Finish()

	open := p.bump()
	for !p.atAny(token.RParen, token.EOF) && !p.atEnd() {
		if p.eat(token.Comma) {
			continue
		}
		before := p.steps
		p.parseEntity(cst.ImportItem, false)
		if p.steps == before {
			p.skipUntilClose("import item")
		}
		if !p.at(token.RParen) && !p.eat(token.Comma) {
			break
		}
	}
	p.closeWith(token.RParen, diag.SynUnclosedParen, open.Token)
}

// atQName reports whether a name (plain, parenthesised operator or
// backticked identifier) starts here.
func (p *Parser) atQName() bool {
	it := p.peek()
	switch {
	case it.Kind.IsIdent():
		return true
	case it.Kind == token.LParen:
		return isOperatorToken(p.nth(1).Kind) && p.nth(2).Kind == token.RParen
	case it.Kind == token.Backtick:
		return p.nth(1).Kind.IsIdent()
	}
	return false
}

// parseQName:
//
//	qname ::= qvarid | qconid | "(" qsym ")" | "`" qid "`"
func (p *Parser) parseQName() bool {
	if !p.atQName() {
		p.err(diag.SynExpectIdentifier, "expected a name, got "+describe(p.peek()))
		return false
	}
	p.b.Start(cst.QName)
	defer p.b.Finish()
	switch p.peek().Kind {
	case token.LParen:
		p.bump()
		p.bump()
		p.bump()
	case token.Backtick:
		open := p.bump()
		p.bump()
		p.closeWith(token.Backtick, diag.SynUnexpectedToken, open.Token)
	default:
		p.bump()
	}
	return true
}

// isOperatorToken reports whether k can name an operator inside parens.
func isOperatorToken(k token.Kind) bool {
	return k.IsSym() || k == token.Colon || k == token.Tilde || k == token.RArrow
}

// skipUntilClose skips a malformed list element up to the next ',' or the
// closing bracket, nested brackets included.
func (p *Parser) skipUntilClose(what string) {
	p.err(diag.SynUnexpectedToken, "unexpected "+describe(p.peek())+" in "+what)
	p.b.Start(cst.Error)
	depth := 0
	for !p.at(token.EOF) {
		it := p.peek()
		if depth == 0 && (it.Kind == token.Comma || it.Kind == token.RParen || it.Kind == token.RBracket || isSeparator(it.Kind)) {
			break
		}
		switch it.Kind {
		case token.LParen, token.LBracket, token.LBrace, token.VOpen:
			depth++
		case token.RParen, token.RBracket, token.RBrace, token.VClose:
			depth--
		}
		p.bump()
	}
	p.b.Finish()
}
