package parser

import (
	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/layout"
	"hsfront/internal/token"
)

// parseData:
//
//	data    ::= "data" [ctype] [context "=>"] simpletype [kindsig] ["=" constrs | gadt] deriving*
//	newtype ::= "newtype" …same…
func (p *Parser) parseData(k cst.Kind) {
	p.b.Start(k)
	defer p.b.Finish()

	p.bump()
	p.parseDataRest(false)
}

// parseDataRest parses a data declaration after its keywords. Data
// instances have a type pattern instead of a simpletype.
func (p *Parser) parseDataRest(instance bool) {
	if p.at(token.PragmaOpen) {
		p.parsePragma() // {-# CTYPE … #-}
	}
	if p.atContext(token.Equals, token.KwWhere, token.KwDeriving) {
		p.parseContext()
	}
	if instance {
		if !p.parseBType() {
			return
		}
	} else if !p.parseSimpletype() {
		return
	}
	if p.at(token.DoubleColon) {
		p.parseKindSignature()
	}
	switch {
	case p.at(token.Equals):
		p.bump()
		p.parseConstrs()
	case p.at(token.KwWhere):
		p.requireExt(extGADTSyntax, "a GADT-style declaration")
		p.bump()
		p.block(cst.GadtBody, closeOnError, p.parseGadtConstr)
	}
	for p.at(token.KwDeriving) {
		p.parseDeriving()
	}
}

func (p *Parser) parseConstrs() {
	for {
		p.parseConstr()
		if !p.eat(token.Bar) {
			return
		}
	}
}

// parseConstr:
//
//	constr ::= ["forall" tvs "."] [context "=>"]
//	           (con atype* | con "{" fielddecls "}" | btype conop btype)
func (p *Parser) parseConstr() {
	p.b.Start(cst.Constr)
	defer p.b.Finish()

	if p.atWord("forall") {
		p.requireExt(extExistentialQuantification, "an existential constructor")
		p.bump()
		for p.atAny(token.VarId, token.LParen, token.LBrace) {
			if !p.parseTyVarBinder() {
				break
			}
		}
		if !p.atOp(".") {
			p.err(diag.SynExpectType, "expected '.' after forall binders, got "+describe(p.peek()))
			return
		}
		p.bump()
	}
	if p.atContext(token.Bar, token.KwDeriving) {
		p.parseContext()
	}

	if p.atInfixConstr() {
		p.parseTypeApp()
		if p.at(token.Backtick) {
			p.parseQName()
		} else {
			p.leaf(cst.QName)
		}
		p.parseTypeApp()
		return
	}

	if !p.atAny(token.ConId, token.QConId) && !(p.at(token.LParen) && p.atQName()) {
		p.err(diag.SynExpectConstructor, "expected a data constructor, got "+describe(p.peek()))
		return
	}
	p.parseQName()
	if p.at(token.LBrace) {
		p.parseRecordFields()
		return
	}
	for p.atConstrArg() {
		if !p.parseAType() {
			return
		}
	}
}

// atInfixConstr reports whether the constructor is written infix, as in
// "Int :+ Int" or "a `Pair` b".
func (p *Parser) atInfixConstr() bool {
	found := false
	first := true
	p.lookahead(func(it layout.Item) bool {
		switch {
		case it.Kind == token.Bar || it.Kind == token.KwDeriving:
			return true
		case !first && (it.Kind == token.ConSym || it.Kind == token.Backtick):
			found = true
			return true
		}
		first = false
		return false
	})
	return found
}

// atConstrArg reports whether a constructor field type starts here,
// strictness marks and UNPACK pragmas included.
func (p *Parser) atConstrArg() bool {
	if p.at(token.At) {
		return false
	}
	return p.atATypeArg() || p.atOp("!") || p.atAny(token.Tilde, token.PragmaOpen)
}

// parseRecordFields:
//
//	"{" fielddecl ("," fielddecl)* "}"
func (p *Parser) parseRecordFields() {
	open := p.bump()
	for !p.atAny(token.RBrace, token.EOF) {
		if p.eat(token.Comma) {
			continue
		}
		before := p.steps
		p.parseFielddecl()
		if p.steps == before {
			p.skipUntilClose("record declaration")
			if p.steps == before {
				break
			}
		}
		if !p.at(token.RBrace) && !p.eat(token.Comma) {
			break
		}
	}
	p.closeWith(token.RBrace, diag.SynUnclosedBrace, open.Token)
}

// parseFielddecl:
//
//	fielddecl ::= vars "::" (type | "!" atype)
func (p *Parser) parseFielddecl() {
	if !p.at(token.VarId) && !(p.at(token.LParen) && p.atQName()) {
		p.err(diag.SynExpectIdentifier, "expected a field name, got "+describe(p.peek()))
		return
	}
	p.b.Start(cst.Fielddecl)
	defer p.b.Finish()

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
	p.parseType()
}

// parseGadtConstr:
//
//	gadtcon ::= cons "::" ttype | cons "::" "{" fielddecls "}" "->" ttype
func (p *Parser) parseGadtConstr() {
	if p.at(token.PragmaOpen) {
		p.parsePragma()
		return
	}
	p.b.Start(cst.GadtConstr)
	defer p.b.Finish()

	for {
		if !p.atAny(token.ConId, token.QConId) && !(p.at(token.LParen) && p.atQName()) {
			p.err(diag.SynExpectConstructor, "expected a data constructor, got "+describe(p.peek()))
			return
		}
		p.parseQName()
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.expect(token.DoubleColon, diag.SynExpectDoubleColon, "'::'") {
		return
	}
	if p.at(token.LBrace) {
		p.parseRecordFields()
		if !p.expect(token.RArrow, diag.SynExpectArrow, "'->'") {
			return
		}
	}
	p.parseTtype()
}

// parseDeriving:
//
//	deriving ::= "deriving" [strategy] (qtycls | "(" [type ("," type)*] ")") ["via" type]
func (p *Parser) parseDeriving() {
	p.b.Start(cst.Deriving)
	defer p.b.Finish()

	p.bump()
	p.parseDerivStrategy()
	switch {
	case p.at(token.LParen):
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
	case p.atAny(token.ConId, token.QConId):
		p.parseQName()
	default:
		p.err(diag.SynExpectConstructor, "expected a class name after 'deriving', got "+describe(p.peek()))
		return
	}
	if p.atWord("via") {
		p.requireExt(extDerivingVia, "'deriving via'")
		p.bump()
		p.parseType()
	}
}

func (p *Parser) parseDerivStrategy() {
	if p.atWord("stock") || p.atWord("anyclass") || p.at(token.KwNewtype) {
		p.requireExt(extDerivingStrategies, "a deriving strategy")
		p.bump()
	}
}

// parseTypeSynonym:
//
//	"type" simpletype [kindsig] "=" ttype | "type" "role" qtycon role*
func (p *Parser) parseTypeSynonym() {
	p.b.Start(cst.TypeDeclaration)
	defer p.b.Finish()

	p.bump()
	if p.atWord("role") {
		p.bump()
		p.parseQName()
		for p.atAny(token.VarId, token.Underscore) {
			p.bump()
		}
		return
	}
	if !p.parseSimpletype() {
		return
	}
	if p.at(token.DoubleColon) {
		// standalone kind signature
		p.parseKindSignature()
		if !p.at(token.Equals) {
			return
		}
	}
	if !p.expect(token.Equals, diag.SynExpectEquals, "'='") {
		return
	}
	p.parseTtype()
}

// parseTypeFamily:
//
//	("type" | "data") "family" simpletype [kindsig | "=" tvb ["|" injectivity]]
//	["where" equations]
func (p *Parser) parseTypeFamily() {
	p.requireExt(extTypeFamilies, "a type family")
	p.b.Start(cst.TypeFamilyDeclaration)
	defer p.b.Finish()

	p.bump()
	p.bump() // family
	if !p.parseSimpletype() {
		return
	}
	switch {
	case p.at(token.DoubleColon):
		p.parseKindSignature()
	case p.at(token.Equals):
		p.bump()
		p.parseTyVarBinder()
		if p.eat(token.Bar) {
			p.parseFundep()
		}
	}
	if p.at(token.KwWhere) {
		p.bump()
		p.block(cst.TypeEquations, closeOnError, p.parseTypeEquation)
	}
}

// parseTypeEquation:
//
//	equation ::= btype "=" type | ".."
func (p *Parser) parseTypeEquation() {
	p.b.Start(cst.TypeEquation)
	defer p.b.Finish()

	if p.eat(token.DotDot) {
		return
	}
	if !p.parseBType() {
		return
	}
	if !p.expect(token.Equals, diag.SynExpectEquals, "'='") {
		return
	}
	p.parseType()
}

// parseTypeInstance handles "type instance", "data instance" and
// "newtype instance", and associated instances where "instance" is
// optional.
func (p *Parser) parseTypeInstance() {
	p.requireExt(extTypeFamilies, "a type or data instance")
	p.b.Start(cst.TypeInstanceDeclaration)
	defer p.b.Finish()

	kw := p.bump()
	p.eat(token.KwInstance)
	if kw.Kind != token.KwType {
		p.parseDataRest(true)
		return
	}
	if !p.parseBType() {
		return
	}
	if !p.expect(token.Equals, diag.SynExpectEquals, "'='") {
		return
	}
	p.parseTtype()
}
