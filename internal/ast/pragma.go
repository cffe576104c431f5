package ast

import (
	"errors"
	"fmt"
	"strings"

	"hsfront/internal/cst"
	"hsfront/internal/token"
)

// Pragma is any {-# NAME … #-} node. Its content is kept as an ordered
// list of loose tokens; the typed pragmas below interpret it.
type Pragma struct{ Node }

// Name returns the pragma name as written.
func (p Pragma) Name() string {
	tok, ok := p.token(token.PragmaName)
	if !ok {
		return ""
	}
	return tok.Text
}

// Contents returns the content tokens in source order.
func (p Pragma) Contents() []GeneralPragmaContent {
	return wrapAll(p.childrenOf(cst.GeneralPragmaContent), func(n Node) GeneralPragmaContent { return GeneralPragmaContent{n} })
}

// identifiers returns the identifier contents in order.
func (p Pragma) identifiers() []GeneralPragmaContent {
	var out []GeneralPragmaContent
	for _, c := range p.Contents() {
		if c.IsIdentifier() {
			out = append(out, c)
		}
	}
	return out
}

// stringContents returns the unquoted string literal contents in order.
func (p Pragma) stringContents() []string {
	var out []string
	for _, c := range p.Contents() {
		if c.Token().Kind == token.StringLit {
			out = append(out, unquote(c.Token().Text))
		}
	}
	return out
}

// GeneralPragmaContent is one loose content token.
type GeneralPragmaContent struct{ Node }

func (c GeneralPragmaContent) Token() token.Token {
	toks := c.Tokens()
	if len(toks) == 0 {
		return token.Token{Kind: token.Invalid}
	}
	return toks[0]
}

func (c GeneralPragmaContent) IsIdentifier() bool {
	return c.Token().Kind.IsIdent()
}

// MinimalPragma is {-# MINIMAL formula #-} inside a class.
type MinimalPragma struct{ Pragma }

// Names returns the method names in source order.
func (m MinimalPragma) Names() []string {
	var out []string
	for _, c := range m.identifiers() {
		out = append(out, c.Token().Text)
	}
	return out
}

// Formula is a MINIMAL boolean formula over method names.
type Formula interface {
	// Satisfied reports whether the formula holds when exactly the
	// methods for which defined returns true are implemented.
	Satisfied(defined func(string) bool) bool
	String() string
}

type (
	FormulaName string
	FormulaAnd  []Formula
	FormulaOr   []Formula
)

func (n FormulaName) Satisfied(defined func(string) bool) bool { return defined(string(n)) }
func (n FormulaName) String() string                           { return string(n) }

func (a FormulaAnd) Satisfied(defined func(string) bool) bool {
	for _, f := range a {
		if !f.Satisfied(defined) {
			return false
		}
	}
	return true
}

func (a FormulaAnd) String() string { return joinFormulas(a, ", ") }

func (o FormulaOr) Satisfied(defined func(string) bool) bool {
	for _, f := range o {
		if f.Satisfied(defined) {
			return true
		}
	}
	return false
}

func (o FormulaOr) String() string { return joinFormulas(o, " | ") }

func joinFormulas(fs []Formula, sep string) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		s := f.String()
		if _, nested := f.(FormulaName); !nested {
			s = "(" + s + ")"
		}
		parts[i] = s
	}
	return strings.Join(parts, sep)
}

// ErrBadFormula is wrapped by Formula errors.
var ErrBadFormula = errors.New("malformed MINIMAL formula")

// Formula parses the content as
//
//	or  ::= and ("|" and)*
//	and ::= atom ("," atom)*
//	atom ::= name | "(" or ")"
//
// An empty pragma yields an empty conjunction, which always holds.
func (m MinimalPragma) Formula() (Formula, error) {
	var toks []token.Token
	for _, c := range m.Contents() {
		toks = append(toks, c.Token())
	}
	fp := formulaParser{toks: toks}
	if len(toks) == 0 {
		return FormulaAnd{}, nil
	}
	f, err := fp.or()
	if err != nil {
		return nil, err
	}
	if fp.pos < len(toks) {
		return nil, fmt.Errorf("%w: unexpected %q", ErrBadFormula, toks[fp.pos].Text)
	}
	return f, nil
}

type formulaParser struct {
	toks []token.Token
	pos  int
}

func (fp *formulaParser) peek() token.Kind {
	if fp.pos >= len(fp.toks) {
		return token.EOF
	}
	return fp.toks[fp.pos].Kind
}

func (fp *formulaParser) or() (Formula, error) {
	var alts FormulaOr
	for {
		f, err := fp.and()
		if err != nil {
			return nil, err
		}
		alts = append(alts, f)
		if fp.peek() != token.Bar {
			break
		}
		fp.pos++
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return alts, nil
}

func (fp *formulaParser) and() (Formula, error) {
	var all FormulaAnd
	for {
		f, err := fp.atom()
		if err != nil {
			return nil, err
		}
		all = append(all, f)
		if fp.peek() != token.Comma {
			break
		}
		fp.pos++
	}
	if len(all) == 1 {
		return all[0], nil
	}
	return all, nil
}

func (fp *formulaParser) atom() (Formula, error) {
	switch k := fp.peek(); {
	case k.IsIdent():
		name := fp.toks[fp.pos].Text
		fp.pos++
		return FormulaName(name), nil
	case k == token.LParen:
		fp.pos++
		// (+) names an operator method
		if fp.pos+1 < len(fp.toks) && fp.toks[fp.pos].Kind.IsSym() && fp.toks[fp.pos+1].Kind == token.RParen {
			name := fp.toks[fp.pos].Text
			fp.pos += 2
			return FormulaName(name), nil
		}
		f, err := fp.or()
		if err != nil {
			return nil, err
		}
		if fp.peek() != token.RParen {
			return nil, fmt.Errorf("%w: missing ')'", ErrBadFormula)
		}
		fp.pos++
		return f, nil
	case k == token.EOF:
		return nil, fmt.Errorf("%w: unexpected end", ErrBadFormula)
	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrBadFormula, fp.toks[fp.pos].Text)
	}
}

// SccPragma is {-# SCC name #-} or {-# SCC "name" #-}.
type SccPragma struct{ Pragma }

// CostCentre returns the cost-centre label.
func (s SccPragma) CostCentre() string {
	for _, c := range s.Contents() {
		tok := c.Token()
		switch {
		case tok.Kind == token.StringLit:
			return unquote(tok.Text)
		case tok.Kind.IsIdent():
			return tok.Text
		}
	}
	return ""
}

// SpecializePragma is {-# SPECIALIZE [phase] f :: t #-}.
type SpecializePragma struct{ Pragma }

// Target returns the specialised function.
func (s SpecializePragma) Target() string {
	if ids := s.identifiers(); len(ids) > 0 {
		return ids[0].Token().Text
	}
	return ""
}

// InlinelikePragma is INLINE, NOINLINE, INLINABLE or OPAQUE.
type InlinelikePragma struct{ Pragma }

// Keyword returns the upper-cased pragma name.
func (i InlinelikePragma) Keyword() string { return strings.ToUpper(i.Name()) }

// Target returns the annotated function or operator.
func (i InlinelikePragma) Target() string {
	for _, c := range i.Contents() {
		tok := c.Token()
		if tok.Kind.IsIdent() || tok.Kind.IsSym() {
			return tok.Text
		}
	}
	return ""
}

// CtypePragma is {-# CTYPE ["header.h"] "ctype" #-}.
type CtypePragma struct{ Pragma }

// Header returns the header file when both strings are given.
func (c CtypePragma) Header() (string, bool) {
	s := c.stringContents()
	if len(s) < 2 {
		return "", false
	}
	return s[0], true
}

// CType returns the C type name.
func (c CtypePragma) CType() string {
	s := c.stringContents()
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}

// LanguagePragma is {-# LANGUAGE Ext, … #-}.
type LanguagePragma struct{ Pragma }

// Extensions returns the extension names in order, NoX forms included.
func (l LanguagePragma) Extensions() []string {
	var out []string
	for _, c := range l.Contents() {
		if tok := c.Token(); tok.Kind == token.ConId {
			out = append(out, tok.Text)
		}
	}
	return out
}

// OtherPragma covers every pragma without a dedicated kind.
type OtherPragma struct{ Pragma }
