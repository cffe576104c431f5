package parser

import (
	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/layout"
	"hsfront/internal/token"
)

// parseTopDecl выбирает по первому токену нужный распознаватель.
func (p *Parser) parseTopDecl() {
	switch it := p.peek(); it.Kind {
	case token.KwData:
		switch {
		case p.nth(1).Is("family"):
			p.parseTypeFamily()
		case p.nth(1).Kind == token.KwInstance:
			p.parseTypeInstance()
		default:
			p.parseData(cst.DataDeclaration)
		}
	case token.KwNewtype:
		if p.nth(1).Kind == token.KwInstance {
			p.parseTypeInstance()
			return
		}
		p.parseData(cst.NewtypeDeclaration)
	case token.KwType:
		switch {
		case p.nth(1).Is("family"):
			p.parseTypeFamily()
		case p.nth(1).Kind == token.KwInstance:
			p.parseTypeInstance()
		default:
			p.parseTypeSynonym()
		}
	case token.KwClass:
		p.parseClass()
	case token.KwInstance:
		p.parseInstance()
	case token.KwDefault:
		p.parseDefault()
	case token.KwDeriving:
		p.parseStandaloneDeriving()
	case token.KwForeign:
		p.parseForeign()
	default:
		p.parseValueDecl(true)
	}
}

// parseValueDecl handles what may appear in any binding group: fixity
// declarations, pragmas, type signatures and bindings. At top level a
// naked expression is a splice.
func (p *Parser) parseValueDecl(top bool) {
	switch p.peek().Kind {
	case token.KwInfix, token.KwInfixl, token.KwInfixr:
		p.parseFixityDecl()
		return
	case token.PragmaOpen:
		p.parsePragma()
		return
	}

	switch p.scanFor(token.DoubleColon, token.Equals, token.Bar) {
	case token.DoubleColon:
		p.parseSignature(cst.TypeSignature)
	case token.Equals, token.Bar:
		p.parseBinding()
	default:
		if top {
			p.node(cst.SpliceDeclaration, func() { p.parseExpr() })
			return
		}
		p.parseBinding()
	}
}

// parseNestedDecl is one entry of a let or where block.
func (p *Parser) parseNestedDecl() {
	p.parseValueDecl(false)
}

// parseSignature:
//
//	gendecl ::= vars "::" ttype
func (p *Parser) parseSignature(k cst.Kind) {
	p.b.Start(k)
	defer p.b.Finish()

	if k == cst.DefaultSignature {
		p.bump() // default
	}
	for {
		if !p.parseVarName() {
			return
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.expect(token.DoubleColon, diag.SynExpectDoubleColon, "'::'") {
		return
	}
	p.parseTtype()
}

// parseVarName parses the name in a signature or binding head: a variable
// or a parenthesised operator.
func (p *Parser) parseVarName() bool {
	it := p.peek()
	switch {
	case it.Kind == token.VarId || it.Kind == token.ConId:
		return p.parseQName()
	case it.Kind == token.LParen && p.atQName():
		return p.parseQName()
	}
	p.err(diag.SynExpectIdentifier, "expected a variable, got "+describe(it))
	return false
}

// parseBinding:
//
//	decl ::= (funlhs | pat) rhs
//	rhs  ::= "=" exp [where] | gdrhs [where]
func (p *Parser) parseBinding() {
	p.b.Start(cst.ValueDeclaration)
	defer p.b.Finish()

	p.parseOpExpr()
	p.parseRhs(token.Equals)
}

// parseRhs parses "= e" or guarded alternatives using sep ('=' for
// bindings, '->' for case alternatives), then an optional where block.
func (p *Parser) parseRhs(sep token.Kind) {
	p.b.Start(cst.Rhs)
	defer p.b.Finish()

	switch {
	case p.at(sep):
		p.bump()
		p.parseExpr()
	case p.at(token.Bar):
		for p.at(token.Bar) {
			p.parseGuardedRhs(sep)
		}
	default:
		p.err(diag.SynExpectEquals, "expected '"+sep.String()+"' or a guard, got "+describe(p.peek()))
		return
	}
	if p.at(token.KwWhere) {
		p.parseWhere()
	}
}

// parseGuardedRhs:
//
//	gdrhs ::= "|" qual ("," qual)* sep exp
func (p *Parser) parseGuardedRhs(sep token.Kind) {
	p.b.Start(cst.GuardedRhs)
	defer p.b.Finish()

	p.bump() // |
	for {
		p.parseQualifier()
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.expect(sep, diag.SynExpectEquals, "'"+sep.String()+"'") {
		return
	}
	p.parseExpr()
}

// parseWhere parses "where" decls for bindings and alternatives.
func (p *Parser) parseWhere() {
	p.b.Start(cst.WhereBindings)
	defer p.b.Finish()

	p.bump() // where
	p.block(cst.Decls, closeOnError, p.parseNestedDecl)
}

// parseFixityDecl:
//
//	fixity ::= ("infixl" | "infixr" | "infix") [integer] op ("," op)*
//
// The fixities themselves were collected before parsing started.
func (p *Parser) parseFixityDecl() {
	p.b.Start(cst.FixityDeclaration)
	defer p.b.Finish()

	p.bump()
	p.eat(token.IntLit)
	for {
		switch {
		case isOperatorToken(p.peek().Kind) && p.peek().Kind != token.RArrow:
			p.leaf(cst.QName)
		case p.at(token.Backtick):
			p.parseQName()
		default:
			p.err(diag.SynBadFixity, "expected an operator, got "+describe(p.peek()))
			return
		}
		if !p.eat(token.Comma) {
			return
		}
	}
}

// atPatternBind reports whether a '<-' follows at depth 0 in the current
// statement.
func (p *Parser) atPatternBind() bool {
	found := false
	p.lookahead(func(it layout.Item) bool {
		switch it.Kind {
		case token.LArrow:
			found = true
			return true
		case token.Equals, token.Comma, token.RArrow, token.KwThen, token.KwOf:
			return true
		}
		return false
	})
	return found
}
