package parser

import (
	"fmt"

	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/fixity"
	"hsfront/internal/source"
	"hsfront/internal/token"
)

// negFixity is the fixity of prefix minus.
var negFixity = fixity.Fixity{Assoc: fixity.Left, Prec: 6}

// infixOp describes an operator occurrence in an infix chain.
type infixOp struct {
	name  string
	width int // tokens: 1, or 3 for `name`
	span  source.Span
	fix   fixity.Fixity
}

// parseExpr:
//
//	exp ::= infixexp ["::" ttype]
func (p *Parser) parseExpr() {
	cp := p.b.Checkpoint()
	if !p.parseOpExpr() {
		return
	}
	if p.at(token.DoubleColon) {
		p.b.StartAt(cp, cst.ExprTyped)
		p.bump()
		p.parseTtype()
		p.b.Finish()
	}
}

// parseOpExpr parses an infix expression. Patterns go through here too.
func (p *Parser) parseOpExpr() bool {
	return p.parseInfix(0, nil)
}

// parseInfix is a Pratt loop over infix operators. parent is the operator
// whose right operand is being parsed, nil at the start of a chain.
func (p *Parser) parseInfix(minPrec int, parent *infixOp) bool {
	cp := p.b.Checkpoint()
	left := parent
	if p.atOp("-") {
		p.parseNegation()
		left = &infixOp{name: "-", fix: negFixity}
	} else if !p.parseApp() {
		return false
	}

	for {
		op, ok := p.infixOpAt()
		if !ok || p.nth(op.width).Kind == token.RParen {
			// a left section ends here: (e op)
			return true
		}
		op.fix = p.exprFixity(op)
		if op.fix.Prec < minPrec {
			return true
		}
		next := op.fix.Prec + 1
		if op.fix.Assoc == fixity.Right {
			next = op.fix.Prec
		}
		if left != nil && fixity.Conflicts(left.fix, op.fix) {
			p.reportConflict(left, &op)
			if left == parent {
				// let the caller fold the left operand first
				return true
			}
			next = op.fix.Prec + 1
		}

		p.b.StartAt(cp, cst.ExprInfix)
		p.parseOpToken(op.width)
		opCopy := op
		if !p.parseInfix(next, &opCopy) {
			p.b.Finish()
			return true
		}
		p.b.Finish()
		left = &opCopy
	}
}

func (p *Parser) parseNegation() {
	p.b.Start(cst.ExprNeg)
	defer p.b.Finish()

	p.parseOpToken(1)
	p.parseInfix(negFixity.Prec+1, nil)
}

// infixOpAt recognises an infix operator at the cursor: a symbol, ':' or a
// backticked identifier. A '!' glued to the following token is a bang
// pattern, not an operator.
func (p *Parser) infixOpAt() (infixOp, bool) {
	it := p.peek()
	switch {
	case it.Kind.IsSym():
		if it.IsOp("!") && p.tightPrefix() {
			return infixOp{}, false
		}
		return infixOp{name: it.Text, width: 1, span: it.Span}, true
	case it.Kind == token.Colon:
		return infixOp{name: ":", width: 1, span: it.Span}, true
	case it.Kind == token.Backtick && p.nth(1).Kind.IsIdent() && p.nth(2).Kind == token.Backtick:
		return infixOp{name: p.nth(1).Text, width: 3, span: it.Span.Cover(p.nth(2).Span)}, true
	}
	return infixOp{}, false
}

// tightPrefix reports whether the current token is preceded by space or an
// opening bracket and directly followed by the next one, as in "f !x",
// "(!x)" or "f @Int".
func (p *Parser) tightPrefix() bool {
	it := p.peek()
	next := p.nth(1)
	if next.Virtual || next.Span.Start != it.Span.End {
		return false
	}
	switch p.lastKind {
	case token.LParen, token.LBracket, token.LBrace, token.Comma:
		return true
	}
	return p.lastSpan.End < it.Span.Start
}

// tightSuffix reports whether the current token directly follows the last
// consumed one, as in "xs@(x:_)".
func (p *Parser) tightSuffix() bool {
	return p.steps > 0 && p.lastSpan.End == p.peek().Span.Start
}

func (p *Parser) exprFixity(op infixOp) fixity.Fixity {
	if e, ok := p.fix.Lookup(op.name); ok {
		return e.Fixity
	}
	if op.width == 1 && !p.opts.QuietDefaultFixity && !p.defaults[op.name] {
		p.defaults[op.name] = true
		diag.ReportWarning(p.rep, diag.FixDefaulted, op.span,
			fmt.Sprintf("operator '%s' has no fixity declaration, assuming infixl 9", op.name)).
			WithRecovery(diag.RecoverDefaultFixity).
			Emit()
	}
	return fixity.Default
}

func (p *Parser) reportConflict(prev, next *infixOp) {
	code := diag.FixConflict
	msg := fmt.Sprintf("cannot mix '%s' [%s %d] and '%s' [%s %d] in the same infix expression",
		prev.name, prev.fix.Assoc, prev.fix.Prec, next.name, next.fix.Assoc, next.fix.Prec)
	if prev.fix.Assoc == fixity.None && next.fix.Assoc == fixity.None {
		code = diag.FixNonAssocChain
		msg = fmt.Sprintf("non-associative operators '%s' and '%s' cannot be chained", prev.name, next.name)
	}
	b := diag.ReportWarning(p.rep, code, next.span, msg).WithRecovery(diag.RecoverLeftAssoc)
	if prev.span.End > 0 {
		b = b.WithNote(prev.span, "previous operator here")
	}
	b.Emit()
}

// parseOpToken wraps the next width tokens in an Op node.
func (p *Parser) parseOpToken(width int) {
	p.b.Start(cst.Op)
	for range width {
		p.bump()
	}
	p.b.Finish()
}

// parseApp:
//
//	fexp ::= [fexp] aexp | fexp "@" atype
//	lexp ::= lambda | let | if | case | do
func (p *Parser) parseApp() bool {
	if p.atBlockExpr() {
		p.parseBlockExpr()
		return true
	}
	cp := p.b.Checkpoint()
	if !p.parseAtom() {
		return false
	}
	if !p.atArgStart() {
		return true
	}
	p.b.StartAt(cp, cst.ExprApp)
	for p.atArgStart() {
		p.parseArg()
	}
	p.b.Finish()
	return true
}

func (p *Parser) atBlockExpr() bool {
	return p.atAny(token.Backslash, token.KwLet, token.KwIf, token.KwCase, token.KwDo)
}

// atArgStart reports whether an application argument starts here.
func (p *Parser) atArgStart() bool {
	it := p.peek()
	switch it.Kind {
	case token.VarId, token.ConId, token.QVarId, token.QConId,
		token.IntLit, token.FloatLit, token.CharLit, token.StringLit,
		token.Underscore, token.LParen, token.LBracket, token.Tilde:
		return true
	case token.Backslash, token.KwLet, token.KwIf, token.KwCase, token.KwDo:
		return true
	case token.At:
		return p.tightPrefix()
	case token.VarSym:
		return it.Text == "!" && p.tightPrefix()
	}
	return false
}

func (p *Parser) parseArg() {
	switch {
	case p.at(token.At):
		p.requireExt(extTypeApplications, "visible type application")
		p.b.Start(cst.ExprTypeApp)
		p.bump()
		p.parseAType()
		p.b.Finish()
	case p.atBlockExpr():
		p.requireExt(extBlockArguments, "a block as a function argument")
		p.parseBlockExpr()
	default:
		p.parseAtom()
	}
}

// parseAtom:
//
//	aexp ::= qvar | gcon | literal | "_" | "(" … ")" | "[" … "]"
//	       | aexp "{" fbinds "}" | var "@" aexp | "~" aexp | "!" aexp
func (p *Parser) parseAtom() bool {
	cp := p.b.Checkpoint()
	it := p.peek()
	switch {
	case it.Kind.IsVar():
		p.leaf(cst.ExprVar)
		if p.at(token.At) && p.tightSuffix() {
			p.b.StartAt(cp, cst.ExprAs)
			p.bump()
			p.parseAtom()
			p.b.Finish()
			return true
		}
	case it.Kind.IsCon():
		p.leaf(cst.ExprCon)
	case it.Kind.IsLiteral():
		p.leaf(cst.ExprLit)
	case it.Kind == token.Underscore:
		p.leaf(cst.ExprWildcard)
	case it.Kind == token.Tilde:
		p.b.Start(cst.ExprLazy)
		p.bump()
		p.parseAtom()
		p.b.Finish()
		return true
	case it.IsOp("!"):
		p.requireExt(extBangPatterns, "a bang pattern")
		p.b.Start(cst.ExprBang)
		p.bump()
		p.parseAtom()
		p.b.Finish()
		return true
	case it.Kind == token.PragmaOpen:
		// {-# SCC "name" #-} e
		p.b.Start(cst.ExprPragma)
		p.parsePragma()
		p.parseOpExpr()
		p.b.Finish()
		return true
	case it.Kind == token.LParen:
		p.parseParen()
	case it.Kind == token.LBracket:
		p.parseBracket()
	case p.atBlockExpr():
		p.parseBlockExpr()
		return true
	default:
		p.err(diag.SynExpectExpression, "expected an expression, got "+describe(it))
		return false
	}

	for p.at(token.LBrace) {
		p.b.StartAt(cp, cst.ExprRecord)
		p.parseFieldBinds()
		p.b.Finish()
	}
	return true
}

// parseParen handles everything that starts with '(': unit and tuple
// constructors, parenthesised operators, sections, tuples (with sections)
// and plain parentheses.
func (p *Parser) parseParen() {
	p.b.Start(cst.ExprParen)
	defer p.b.Finish()

	open := p.bump()
	if p.at(token.RParen) {
		p.b.Retag(cst.ExprCon)
		p.bump()
		return
	}
	if p.at(token.Comma) {
		if p.onlyCommasToClose() {
			p.b.Retag(cst.ExprCon)
			for p.eat(token.Comma) {
			}
			p.bump()
			return
		}
		p.requireExt(extTupleSections, "a tuple section")
		p.b.Retag(cst.ExprTuple)
		p.parseTupleRest()
		p.closeWith(token.RParen, diag.SynUnclosedParen, open.Token)
		return
	}
	if op, ok := p.infixOpAt(); ok && op.name != "-" || ok && p.nth(1).Kind == token.RParen {
		if p.nth(op.width).Kind == token.RParen {
			// (+) (:) (`div`)
			p.b.Retag(cst.ExprVar)
			for range op.width {
				p.bump()
			}
			p.bump()
			return
		}
		p.b.Retag(cst.ExprRightSection)
		p.parseOpToken(op.width)
		p.parseOpExpr()
		p.closeParen(open.Token)
		return
	}

	p.parseExpr()
	switch {
	case p.at(token.Comma):
		p.b.Retag(cst.ExprTuple)
		p.parseTupleRest()
	default:
		if op, ok := p.infixOpAt(); ok && p.nth(op.width).Kind == token.RParen {
			p.b.Retag(cst.ExprLeftSection)
			p.parseOpToken(op.width)
		}
	}
	p.closeParen(open.Token)
}

// parseTupleRest parses ", e" repeatedly; a missing component makes a
// tuple section.
func (p *Parser) parseTupleRest() {
	for p.eat(token.Comma) {
		if p.atAny(token.Comma, token.RParen) {
			continue
		}
		p.parseExpr()
	}
}

// onlyCommasToClose reports whether the cursor is at ",,…)".
func (p *Parser) onlyCommasToClose() bool {
	n := 0
	for p.nth(n).Kind == token.Comma {
		n++
	}
	return p.nth(n).Kind == token.RParen
}

// closeParen consumes ')' after skipping anything the expression left
// unparsed.
func (p *Parser) closeParen(open token.Token) {
	if !p.at(token.RParen) && !p.atEnd() && !p.at(token.RBracket) {
		p.skipUntilClose("parenthesised expression")
	}
	p.closeWith(token.RParen, diag.SynUnclosedParen, open)
}

// parseBracket:
//
//	"[" exp ("," exp)* "]" | "[" exp ["," exp] ".." [exp] "]" | "[" exp "|" quals "]"
func (p *Parser) parseBracket() {
	p.b.Start(cst.ExprList)
	defer p.b.Finish()

	open := p.bump()
	if p.at(token.RBracket) {
		p.b.Retag(cst.ExprCon)
		p.bump()
		return
	}
	p.parseExpr()
	switch {
	case p.at(token.DotDot):
		p.parseSeqTail()
	case p.at(token.Comma):
		p.bump()
		p.parseExpr()
		if p.at(token.DotDot) {
			p.parseSeqTail()
			break
		}
		for p.eat(token.Comma) {
			p.parseExpr()
		}
	case p.at(token.Bar):
		p.b.Retag(cst.ExprComprehension)
		// parallel comprehensions repeat the bar
		for p.eat(token.Bar) {
			for {
				p.parseStmt()
				if !p.eat(token.Comma) {
					break
				}
			}
		}
	}
	if !p.at(token.RBracket) && !p.atEnd() && !p.at(token.RParen) {
		p.skipUntilClose("list")
	}
	p.closeWith(token.RBracket, diag.SynUnclosedBracket, open.Token)
}

func (p *Parser) parseSeqTail() {
	p.b.Retag(cst.ExprSeq)
	p.bump() // ..
	if !p.at(token.RBracket) {
		p.parseExpr()
	}
}

// parseFieldBinds:
//
//	"{" [fbind ("," fbind)*] "}"    fbind ::= qvar ["=" exp] | ".."
func (p *Parser) parseFieldBinds() {
	open := p.bump()
	for !p.atAny(token.RBrace, token.EOF) {
		if p.eat(token.Comma) {
			continue
		}
		p.b.Start(cst.FieldBind)
		switch {
		case p.at(token.DotDot):
			p.requireExt(extRecordWildCards, "'..' in a record")
			p.bump()
		case p.atQName():
			p.parseQName()
			if p.eat(token.Equals) {
				p.parseExpr()
			}
		default:
			p.err(diag.SynExpectIdentifier, "expected a field name, got "+describe(p.peek()))
		}
		p.b.Finish()
		if !p.at(token.RBrace) && !p.eat(token.Comma) {
			break
		}
	}
	p.closeWith(token.RBrace, diag.SynUnclosedBrace, open.Token)
}

// parseBlockExpr parses the forms that extend as far right as possible.
func (p *Parser) parseBlockExpr() {
	switch p.peek().Kind {
	case token.Backslash:
		p.parseLambda()
	case token.KwLet:
		p.parseLet()
	case token.KwIf:
		p.parseIf()
	case token.KwCase:
		p.parseCase()
	case token.KwDo:
		p.b.Start(cst.ExprDo)
		p.bump()
		p.block(cst.Stmts, closeOnError, p.parseStmt)
		p.b.Finish()
	}
}

// parseLambda:
//
//	"\" apat+ "->" exp | "\" "case" alts
func (p *Parser) parseLambda() {
	p.b.Start(cst.ExprLambda)
	defer p.b.Finish()

	p.bump() // \
	if p.at(token.KwCase) {
		p.requireExt(extLambdaCase, "'\\case'")
		p.b.Retag(cst.ExprLambdaCase)
		p.bump()
		p.parseAlts()
		return
	}
	for !p.at(token.RArrow) && !p.atEnd() {
		before := p.steps
		if !p.parseAtom() || p.steps == before {
			break
		}
	}
	if !p.expect(token.RArrow, diag.SynExpectArrow, "'->'") {
		return
	}
	p.parseExpr()
}

// parseLet:
//
//	"let" decls "in" exp
func (p *Parser) parseLet() {
	p.b.Start(cst.ExprLet)
	defer p.b.Finish()

	p.bump()
	p.block(cst.Decls, closeOnError, p.parseNestedDecl)
	if !p.expect(token.KwIn, diag.SynExpectIn, "'in'") {
		return
	}
	p.parseExpr()
}

// parseIf:
//
//	"if" exp [";"] "then" exp [";"] "else" exp | "if" ("|" guard "->" exp)+
func (p *Parser) parseIf() {
	p.b.Start(cst.ExprIf)
	defer p.b.Finish()

	p.bump()
	if p.at(token.Bar) {
		p.requireExt(extMultiWayIf, "a multi-way if")
		for p.at(token.Bar) {
			p.parseGuardedRhs(token.RArrow)
		}
		return
	}
	p.parseExpr()
	p.skipLayoutSemi(token.KwThen)
	if !p.expect(token.KwThen, diag.SynExpectThen, "'then'") {
		return
	}
	p.parseExpr()
	p.skipLayoutSemi(token.KwElse)
	if !p.expect(token.KwElse, diag.SynExpectElse, "'else'") {
		return
	}
	p.parseExpr()
}

// skipLayoutSemi consumes a ';' right before k (DoAndIfThenElse).
func (p *Parser) skipLayoutSemi(k token.Kind) {
	if p.atAny(token.VSemi, token.Semi) && p.nth(1).Kind == k {
		p.bump()
	}
}

// parseCase:
//
//	"case" exp "of" alts
func (p *Parser) parseCase() {
	p.b.Start(cst.ExprCase)
	defer p.b.Finish()

	p.bump()
	p.parseExpr()
	if !p.expect(token.KwOf, diag.SynExpectOf, "'of'") {
		return
	}
	p.parseAlts()
}

func (p *Parser) parseAlts() {
	p.block(cst.Alts, closeOnError, p.parseAlt)
}

// parseAlt:
//
//	alt ::= pat "->" exp [where] | pat gdpat [where]
func (p *Parser) parseAlt() {
	p.b.Start(cst.Alt)
	defer p.b.Finish()

	if !p.parseOpExpr() {
		return
	}
	p.parseRhs(token.RArrow)
}

// parseStmt parses a do statement, a guard qualifier or a comprehension
// qualifier:
//
//	stmt ::= "let" decls | pat "<-" exp | exp
func (p *Parser) parseStmt() {
	cp := p.b.Checkpoint()
	switch {
	case p.at(token.KwLet):
		p.b.Start(cst.LetStmt)
		p.bump()
		p.block(cst.Decls, closeOnError, p.parseNestedDecl)
		if !p.at(token.KwIn) {
			p.b.Finish()
			return
		}
		// let … in e used as an expression statement
		p.b.Retag(cst.ExprLet)
		p.bump()
		p.parseExpr()
		p.b.Finish()
		p.b.StartAt(cp, cst.ExprStmt)
		p.b.Finish()
	case p.atPatternBind():
		p.b.Start(cst.BindStmt)
		p.parseExpr()
		if p.expect(token.LArrow, diag.SynExpectArrow, "'<-'") {
			p.parseExpr()
		}
		p.b.Finish()
	default:
		p.b.Start(cst.ExprStmt)
		p.parseExpr()
		p.b.Finish()
	}
}

// parseQualifier is one guard of a guarded right-hand side.
func (p *Parser) parseQualifier() {
	p.parseStmt()
}
