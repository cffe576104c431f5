package parser

import (
	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/token"
)

// parseClass:
//
//	class ::= "class" [context "=>"] simpletype ["|" fundeps] ["where" cdecls]
func (p *Parser) parseClass() {
	p.b.Start(cst.ClassDeclaration)
	defer p.b.Finish()

	p.bump()
	if p.atContext(token.KwWhere, token.Bar) {
		p.parseContext()
	}
	if !p.parseSimpletype() {
		return
	}
	if p.at(token.Bar) {
		p.parseFundeps()
	}
	if p.at(token.KwWhere) {
		p.bump()
		p.block(cst.Cdecls, closeOnError, p.parseCdecl)
	}
}

// parseFundeps:
//
//	fundeps ::= "|" fundep ("," fundep)*
func (p *Parser) parseFundeps() {
	p.requireExt(extFunctionalDependencies, "a functional dependency")
	p.b.Start(cst.Fundeps)
	defer p.b.Finish()

	p.bump()
	for {
		p.parseFundep()
		if !p.eat(token.Comma) {
			return
		}
	}
}

// parseFundep:
//
//	fundep ::= tyvar* "->" tyvar*
func (p *Parser) parseFundep() {
	p.b.Start(cst.Fundep)
	defer p.b.Finish()

	for p.eat(token.VarId) {
	}
	if !p.expect(token.RArrow, diag.SynExpectArrow, "'->'") {
		return
	}
	for p.eat(token.VarId) {
	}
}

// parseCdecl is one entry of a class body.
func (p *Parser) parseCdecl() {
	switch {
	case p.atAny(token.KwType, token.KwData) && p.nth(1).Kind == token.KwInstance:
		p.parseTypeInstance()
	case p.atAny(token.KwType, token.KwData):
		p.parseCdeclData()
	case p.at(token.KwDefault):
		p.requireExt(extDefaultSignatures, "a default signature")
		p.parseSignature(cst.DefaultSignature)
	default:
		p.parseValueDecl(false)
	}
}

// parseCdeclData parses an associated type or data family:
//
//	("type" | "data") ["family"] [ctype] [context "=>"] simpletype [kindsig] ["=" ttype]
func (p *Parser) parseCdeclData() {
	p.requireExt(extTypeFamilies, "an associated type")
	p.b.Start(cst.CdeclDataDeclaration)
	defer p.b.Finish()

	p.bump()
	p.eatWord("family")
	if p.at(token.PragmaOpen) {
		p.parsePragma()
	}
	if p.atContext(token.Equals, token.DoubleColon) {
		p.parseContext()
	}
	if !p.parseSimpletype() {
		return
	}
	if p.at(token.DoubleColon) {
		p.parseKindSignature()
	}
	if p.eat(token.Equals) {
		p.parseTtype()
	}
}

// parseInstance:
//
//	inst ::= "instance" [overlap-pragma] ttype ["where" idecls]
func (p *Parser) parseInstance() {
	p.b.Start(cst.InstanceDeclaration)
	defer p.b.Finish()

	p.bump()
	if p.at(token.PragmaOpen) {
		p.parsePragma()
	}
	p.parseTtype()
	if p.at(token.KwWhere) {
		p.bump()
		p.block(cst.Idecls, closeOnError, p.parseIdecl)
	}
}

// parseIdecl is one entry of an instance body.
func (p *Parser) parseIdecl() {
	if p.atAny(token.KwType, token.KwData, token.KwNewtype) {
		p.parseTypeInstance()
		return
	}
	p.parseValueDecl(false)
}

// parseDefault:
//
//	default ::= "default" "(" [type ("," type)*] ")"
func (p *Parser) parseDefault() {
	p.b.Start(cst.DefaultDeclaration)
	defer p.b.Finish()

	p.bump()
	if !p.at(token.LParen) {
		p.err(diag.SynUnexpectedToken, "expected '(' after 'default', got "+describe(p.peek()))
		return
	}
	open := p.bump()
	for !p.at(token.RParen) && !p.atEnd() {
		if p.eat(token.Comma) {
			continue
		}
		before := p.steps
		p.parseType()
		if p.steps == before {
			break
		}
	}
	p.closeWith(token.RParen, diag.SynUnclosedParen, open.Token)
}

// parseStandaloneDeriving:
//
//	"deriving" [strategy | "via" atype] "instance" [overlap-pragma] ttype
func (p *Parser) parseStandaloneDeriving() {
	p.requireExt(extStandaloneDeriving, "a standalone deriving declaration")
	p.b.Start(cst.DerivingDeclaration)
	defer p.b.Finish()

	p.bump()
	p.parseDerivStrategy()
	if p.atWord("via") {
		p.requireExt(extDerivingVia, "'deriving via'")
		p.bump()
		p.parseAType()
	}
	if !p.expect(token.KwInstance, diag.SynUnexpectedToken, "'instance'") {
		return
	}
	if p.at(token.PragmaOpen) {
		p.parsePragma()
	}
	p.parseTtype()
}
