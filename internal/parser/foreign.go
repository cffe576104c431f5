package parser

import (
	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/token"
)

var callConvs = map[string]bool{
	"ccall":      true,
	"capi":       true,
	"stdcall":    true,
	"cplusplus":  true,
	"jvm":        true,
	"dotnet":     true,
	"javascript": true,
	"prim":       true,
}

var safeties = map[string]bool{
	"safe":          true,
	"unsafe":        true,
	"interruptible": true,
}

// parseForeign:
//
//	foreign ::= "foreign" ("import" | "export") callconv [safety] [string] var "::" ttype
func (p *Parser) parseForeign() {
	p.requireExt(extForeignFunctionInterface, "a foreign declaration")
	p.b.Start(cst.ForeignDeclaration)
	defer p.b.Finish()

	p.bump()
	if !p.at(token.KwImport) && !p.atWord("export") {
		p.err(diag.SynBadForeign, "expected 'import' or 'export' after 'foreign', got "+describe(p.peek()))
		return
	}
	p.bump()
	if it := p.peek(); it.Kind == token.VarId && callConvs[it.Text] {
		p.bump()
	} else {
		p.err(diag.SynBadForeign, "expected a calling convention, got "+describe(it))
	}
	// "safe" may also be the name being imported
	if it := p.peek(); it.Kind == token.VarId && safeties[it.Text] && p.nth(1).Kind != token.DoubleColon {
		p.bump()
	}
	p.eat(token.StringLit)
	if !p.parseVarName() {
		return
	}
	if !p.expect(token.DoubleColon, diag.SynExpectDoubleColon, "'::'") {
		return
	}
	p.parseTtype()
}
