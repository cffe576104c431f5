package parser

import (
	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/fixity"
	"hsfront/internal/token"
)

// parseTtype wraps a full type in a Ttype node; signatures, foreign
// declarations and annotations use it.
func (p *Parser) parseTtype() {
	p.b.Start(cst.Ttype)
	p.parseType()
	p.b.Finish()
}

// parseType:
//
//	type ::= "forall" tvs "." type | btype "=>" type | btype "->" type | btype
func (p *Parser) parseType() {
	if p.atWord("forall") || p.atOp("∀") {
		p.requireExt(extExplicitForAll, "'forall'")
		p.b.Start(cst.TypeForall)
		p.bump()
		for !p.atOp(".") && !p.atEnd() {
			if !p.parseTyVarBinder() {
				break
			}
		}
		if !p.atOp(".") {
			p.err(diag.SynExpectType, "expected '.' after forall binders, got "+describe(p.peek()))
			p.b.Finish()
			return
		}
		p.bump()
		p.parseType()
		p.b.Finish()
		return
	}

	cp := p.b.Checkpoint()
	if !p.parseBType() {
		return
	}
	switch {
	case p.at(token.DArrow):
		p.b.StartAt(cp, cst.TypeQualified)
		p.bump()
		p.parseType()
		p.b.Finish()
	case p.at(token.RArrow):
		p.b.StartAt(cp, cst.TypeArrow)
		p.bump()
		p.parseType()
		p.b.Finish()
	}
}

// parseTyVarBinder: a variable or "(" var "::" kind ")", also "{a}".
func (p *Parser) parseTyVarBinder() bool {
	switch {
	case p.at(token.VarId):
		p.leaf(cst.TypeVar)
		return true
	case p.at(token.LParen):
		return p.parseAType()
	case p.at(token.LBrace):
		// inferred binder {k}
		p.b.Start(cst.TypeParen)
		open := p.bump()
		p.parseType()
		p.closeWith(token.RBrace, diag.SynUnclosedBrace, open.Token)
		p.b.Finish()
		return true
	}
	p.err(diag.SynExpectType, "expected a type variable, got "+describe(p.peek()))
	return false
}

// parseBType parses type application with infix type operators, resolved
// with the same fixity table as expressions.
func (p *Parser) parseBType() bool {
	return p.parseTypeOps(0, nil)
}

func (p *Parser) parseTypeOps(minPrec int, parent *fixity.Fixity) bool {
	cp := p.b.Checkpoint()
	if !p.parseTypeApp() {
		return false
	}
	for {
		name, width, ok := p.typeOpAt()
		if !ok {
			return true
		}
		f := p.typeFixity(name)
		if f.Prec < minPrec || parent != nil && f.Prec == parent.Prec && fixity.Conflicts(*parent, f) {
			return true
		}
		p.b.StartAt(cp, cst.TypeInfix)
		p.parseOpToken(width)
		next := f.Prec + 1
		if f.Assoc == fixity.Right {
			next = f.Prec
		}
		p.parseTypeOps(next, &f)
		p.b.Finish()
	}
}

// typeOpAt recognises an infix type operator: a symbol, '~' or a
// backticked constructor. '!' and '.' never are.
func (p *Parser) typeOpAt() (name string, width int, ok bool) {
	it := p.peek()
	switch {
	case it.Kind == token.ConSym || it.Kind == token.QConSym || it.Kind == token.Tilde:
		return it.Text, 1, true
	case (it.Kind == token.VarSym || it.Kind == token.QVarSym) && it.Text != "!" && it.Text != "." && it.Text != "∀":
		return it.Text, 1, true
	case it.Kind == token.Backtick && p.nth(1).Kind.IsIdent() && p.nth(2).Kind == token.Backtick:
		return p.nth(1).Text, 3, true
	}
	return "", 0, false
}

func (p *Parser) typeFixity(name string) fixity.Fixity {
	if e, ok := p.fix.Lookup(name); ok {
		return e.Fixity
	}
	return fixity.Default
}

// parseTypeApp:
//
//	btype ::= atype+
func (p *Parser) parseTypeApp() bool {
	cp := p.b.Checkpoint()
	if !p.parseAType() {
		return false
	}
	if !p.atATypeArg() {
		return true
	}
	p.b.StartAt(cp, cst.TypeApp)
	for p.atATypeArg() {
		if p.at(token.At) {
			// visible kind application
			p.bump()
		}
		if !p.parseAType() {
			break
		}
	}
	p.b.Finish()
	return true
}

// atATypeArg reports whether an argument of a type application starts here.
func (p *Parser) atATypeArg() bool {
	it := p.peek()
	switch it.Kind {
	case token.ConId, token.QConId, token.LParen, token.LBracket, token.Underscore,
		token.StringLit, token.IntLit, token.CharLit, token.Tick, token.At:
		return true
	case token.VarId:
		return !it.Is("forall") && !it.Is("via")
	}
	return false
}

// parseAType:
//
//	atype ::= gtycon | tyvar | "(" type ("," type)* ")" | "(" type "::" kind ")"
//	        | "[" type "]" | "!" atype | "~" atype | "'" atype | literal | "_"
func (p *Parser) parseAType() bool {
	it := p.peek()
	switch {
	case it.Kind == token.ConId || it.Kind == token.QConId:
		p.leaf(cst.TypeCon)
	case it.Kind == token.VarId:
		p.leaf(cst.TypeVar)
	case it.Kind == token.Underscore:
		p.leaf(cst.TypeWildcard)
	case it.Kind == token.StringLit || it.Kind == token.IntLit || it.Kind == token.CharLit:
		p.leaf(cst.TypeLiteral)
	case it.IsOp("*") || it.IsOp("★"):
		p.leaf(cst.TypeCon)
	case it.IsOp("!"):
		p.b.Start(cst.TypeBang)
		p.bump()
		p.parseAType()
		p.b.Finish()
	case it.Kind == token.Tilde:
		p.b.Start(cst.TypeLazy)
		p.bump()
		p.parseAType()
		p.b.Finish()
	case it.Kind == token.Tick:
		p.b.Start(cst.TypePromoted)
		p.bump()
		if p.atAny(token.ConSym, token.Colon) {
			p.bump()
		} else {
			p.parseAType()
		}
		p.b.Finish()
	case it.Kind == token.PragmaOpen:
		// {-# UNPACK #-} and friends annotate the type that follows
		p.parsePragma()
		return p.parseAType()
	case it.Kind == token.LBracket:
		p.parseTypeList()
	case it.Kind == token.LParen:
		p.parseTypeParen()
	default:
		p.err(diag.SynExpectType, "expected a type, got "+describe(it))
		return false
	}
	return true
}

func (p *Parser) parseTypeList() {
	p.b.Start(cst.TypeList)
	defer p.b.Finish()

	open := p.bump()
	if p.at(token.RBracket) {
		p.b.Retag(cst.TypeCon)
		p.bump()
		return
	}
	for {
		p.parseType()
		if !p.eat(token.Comma) {
			break
		}
	}
	p.closeWith(token.RBracket, diag.SynUnclosedBracket, open.Token)
}

func (p *Parser) parseTypeParen() {
	p.b.Start(cst.TypeParen)
	defer p.b.Finish()

	open := p.bump()
	switch {
	case p.at(token.RParen):
		// ()
		p.b.Retag(cst.TypeCon)
		p.bump()
		return
	case p.at(token.Comma):
		// (,) (,,) ...
		p.b.Retag(cst.TypeCon)
		for p.eat(token.Comma) {
		}
		p.closeWith(token.RParen, diag.SynUnclosedParen, open.Token)
		return
	case (isOperatorToken(p.peek().Kind) || p.at(token.DArrow)) && p.nth(1).Kind == token.RParen:
		// (->) (~) (:+:)
		p.b.Retag(cst.TypeCon)
		p.bump()
		p.bump()
		return
	}

	p.parseType()
	switch {
	case p.at(token.DoubleColon):
		p.b.Retag(cst.TypeKinded)
		p.bump()
		p.parseType()
	case p.at(token.Comma):
		p.b.Retag(cst.TypeTuple)
		for p.eat(token.Comma) {
			p.parseType()
		}
	}
	p.closeWith(token.RParen, diag.SynUnclosedParen, open.Token)
}

// parseContext parses "btype =>" into a Context node.
func (p *Parser) parseContext() {
	p.b.Start(cst.Context)
	defer p.b.Finish()

	p.parseBType()
	p.expect(token.DArrow, diag.SynUnexpectedToken, "'=>'")
}

// atContext reports whether a "=>" appears at depth 0 before any of stops.
func (p *Parser) atContext(stops ...token.Kind) bool {
	return p.scanFor(append([]token.Kind{token.DArrow}, stops...)...) == token.DArrow
}

// parseKindSignature:
//
//	kindsig ::= "::" kind
func (p *Parser) parseKindSignature() {
	p.b.Start(cst.KindSignature)
	defer p.b.Finish()

	p.bump()
	p.parseType()
}

// parseSimpletype:
//
//	simpletype ::= tycon tvb* | tvb tyconop tvb tvb*
func (p *Parser) parseSimpletype() bool {
	p.b.Start(cst.Simpletype)
	defer p.b.Finish()

	switch {
	case p.at(token.VarId) && (p.nth(1).Kind == token.ConSym || p.nth(1).Kind == token.Backtick || p.nth(1).Kind == token.VarSym):
		// infix head: a :+: b
		p.leaf(cst.TypeVar)
		if p.at(token.Backtick) {
			p.parseQName()
		} else {
			p.leaf(cst.QName)
		}
	case p.atAny(token.ConId, token.QConId) || p.at(token.LParen) && p.atQName():
		p.parseQName()
	default:
		p.err(diag.SynExpectConstructor, "expected a type constructor, got "+describe(p.peek()))
		return false
	}
	for p.atAny(token.VarId, token.LParen, token.Underscore, token.LBrace) || p.at(token.At) {
		if p.at(token.At) {
			p.bump()
		}
		if p.at(token.Underscore) {
			p.leaf(cst.TypeWildcard)
			continue
		}
		if !p.parseTyVarBinder() {
			break
		}
	}
	return true
}
