package parser

import (
	"strings"

	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/token"
)

// pragmaKinds maps upper-cased pragma names to their node kinds; the rest
// become OtherPragma.
var pragmaKinds = map[string]cst.Kind{
	"MINIMAL":    cst.MinimalPragma,
	"SCC":        cst.SccPragma,
	"SPECIALIZE": cst.SpecializePragma,
	"SPECIALISE": cst.SpecializePragma,
	"INLINE":     cst.InlinelikePragma,
	"NOINLINE":   cst.InlinelikePragma,
	"INLINABLE":  cst.InlinelikePragma,
	"INLINEABLE": cst.InlinelikePragma,
	"OPAQUE":     cst.InlinelikePragma,
	"CTYPE":      cst.CtypePragma,
	"LANGUAGE":   cst.LanguagePragma,
}

// otherPragmas are known names without a dedicated node kind.
var otherPragmas = map[string]bool{
	"OPTIONS_GHC": true, "OPTIONS": true, "OPTIONS_HADDOCK": true, "INCLUDE": true,
	"DEPRECATED": true, "WARNING": true, "UNPACK": true, "NOUNPACK": true,
	"SOURCE": true, "OVERLAPPING": true, "OVERLAPPABLE": true, "OVERLAPS": true,
	"INCOHERENT": true, "RULES": true, "ANN": true, "COMPLETE": true,
	"LINE": true, "COLUMN": true, "CORE": true, "GENERATED": true,
}

// headerOnly pragmas have no effect after the module header.
var headerOnly = map[string]bool{
	"LANGUAGE": true, "OPTIONS_GHC": true, "OPTIONS": true, "OPTIONS_HADDOCK": true, "INCLUDE": true,
}

// pragmaKind classifies a pragma by name, case-insensitively.
func pragmaKind(name string) cst.Kind {
	if k, ok := pragmaKinds[strings.ToUpper(name)]; ok {
		return k
	}
	return cst.OtherPragma
}

// parsePragma:
//
//	pragma ::= "{-#" NAME content* "#-}"
//
// Every content token gets its own GeneralPragmaContent node; the typed
// layer interprets them per pragma kind.
func (p *Parser) parsePragma() {
	name := ""
	if next := p.nth(1); next.Kind == token.PragmaName {
		name = next.Text
	}
	p.b.Start(pragmaKind(name))
	defer p.b.Finish()

	p.bump()
	upper := strings.ToUpper(name)
	switch {
	case name == "":
		p.err(diag.SynBadPragma, "pragma without a name")
	default:
		nameTok := p.bump()
		if _, ok := pragmaKinds[upper]; !ok && !otherPragmas[upper] {
			p.warnAt(diag.SynUnknownPragma, nameTok.Span, "unknown pragma '"+name+"'")
		}
		if p.inBody && headerOnly[upper] {
			p.warnAt(diag.SynMisplacedPragma, nameTok.Span, "'"+name+"' pragma is only valid before the module header")
		}
	}

	for !p.atAny(token.PragmaClose, token.EOF) {
		p.b.Start(cst.GeneralPragmaContent)
		p.bump()
		p.b.Finish()
	}
	// at end of input the lexer has already reported the unterminated pragma
	p.eat(token.PragmaClose)
}
