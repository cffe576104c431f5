package ast

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"hsfront/internal/cst"
	"hsfront/internal/token"
)

// Module is the root of a parsed file.
type Module struct{ Node }

// NewModule wraps the root of tree.
func NewModule(tree *cst.Tree) Module {
	if tree == nil {
		return Module{}
	}
	return Module{Node{tree: tree, id: tree.Root}}
}

// Header returns the "module … where" declaration; scripts have none.
func (m Module) Header() (ModuleDeclaration, bool) {
	n, ok := m.childOf(cst.ModuleDeclaration)
	return wrapOne(n, ok, func(n Node) ModuleDeclaration { return ModuleDeclaration{n} })
}

// ModuleName returns the dotted name from the header, "Main" without one.
func (m Module) ModuleName() string {
	if h, ok := m.Header(); ok {
		return h.ModuleName()
	}
	return "Main"
}

// Pragmas returns the file-header pragmas in front of the module header.
func (m Module) Pragmas() []Pragma {
	var out []Pragma
	for _, c := range m.Children() {
		if c.Kind().IsPragma() {
			out = append(out, Pragma{c})
		}
	}
	return out
}

// LanguageExtensions collects the extension names of every header
// LANGUAGE pragma in order.
func (m Module) LanguageExtensions() []string {
	var out []string
	for _, p := range m.childrenOf(cst.LanguagePragma) {
		out = append(out, LanguagePragma{Pragma{p}}.Extensions()...)
	}
	return out
}

func (m Module) body() (Node, bool) {
	return m.childOf(cst.Body)
}

// Imports returns the import declarations of the body.
func (m Module) Imports() []ImportDeclaration {
	b, _ := m.body()
	return wrapAll(b.childrenOf(cst.ImportDeclaration), func(n Node) ImportDeclaration { return ImportDeclaration{n} })
}

// Declarations returns the top-level declarations in source order. Imports,
// stray pragmas and error nodes are left out.
func (m Module) Declarations() []Declaration {
	b, _ := m.body()
	var out []Declaration
	for _, c := range b.Children() {
		if d, ok := AsDeclaration(c); ok {
			out = append(out, d)
		}
	}
	return out
}

// ModuleDeclaration is "module M.N (exports) where".
type ModuleDeclaration struct{ Node }

func (d ModuleDeclaration) Modid() (Modid, error) {
	n, err := d.required(cst.Modid)
	return wrapRequired(n, err, func(n Node) Modid { return Modid{n} })
}

// ModuleName returns the dotted module name, "" when it is missing.
func (d ModuleDeclaration) ModuleName() string {
	id, err := d.Modid()
	if err != nil {
		return ""
	}
	return id.Name()
}

// ModulePath splits the module name into its components.
func (d ModuleDeclaration) ModulePath() []string {
	id, err := d.Modid()
	if err != nil {
		return nil
	}
	return id.Path()
}

// Exports returns the export list; absent means everything is exported.
func (d ModuleDeclaration) Exports() (Exports, bool) {
	n, ok := d.childOf(cst.Exports)
	return wrapOne(n, ok, func(n Node) Exports { return Exports{n} })
}

// Modid is a possibly dotted module name.
type Modid struct{ Node }

func (m Modid) Name() string {
	toks := m.Tokens()
	if len(toks) == 0 {
		return ""
	}
	return toks[0].Text
}

func (m Modid) Path() []string {
	name := m.Name()
	if name == "" {
		return nil
	}
	return strings.Split(name, ".")
}

// Exports is the parenthesised export list.
type Exports struct{ Node }

func (e Exports) Items() []Export {
	return wrapAll(e.childrenOf(cst.Export), func(n Node) Export { return Export{n} })
}

// Export is one entry of an export list.
type Export struct{ Node }

// IsModule reports whether the entry re-exports a module.
func (e Export) IsModule() bool {
	_, ok := e.token(token.KwModule)
	return ok
}

// Module returns the re-exported module of "module M".
func (e Export) Module() (Modid, bool) {
	n, ok := e.childOf(cst.Modid)
	return wrapOne(n, ok, func(n Node) Modid { return Modid{n} })
}

// QName returns the exported entity.
func (e Export) QName() (QName, bool) {
	n, ok := e.childOf(cst.QName)
	return wrapOne(n, ok, func(n Node) QName { return QName{n} })
}

// Subordinates returns the names listed in T(a, b).
func (e Export) Subordinates() []QName {
	names := wrapAll(e.childrenOf(cst.QName), func(n Node) QName { return QName{n} })
	if len(names) <= 1 {
		return nil
	}
	return names[1:]
}

// ExportsAll reports T(..).
func (e Export) ExportsAll() bool {
	_, ok := e.token(token.DotDot)
	return ok
}

// ImportDeclaration is "import [qualified] M [as N] [hiding] (items)".
type ImportDeclaration struct{ Node }

func (d ImportDeclaration) Module() (Modid, error) {
	n, err := d.required(cst.Modid)
	return wrapRequired(n, err, func(n Node) Modid { return Modid{n} })
}

// ModuleName returns the imported module name, "" when missing.
func (d ImportDeclaration) ModuleName() string {
	m, err := d.Module()
	if err != nil {
		return ""
	}
	return m.Name()
}

// Alias returns N of "as N".
func (d ImportDeclaration) Alias() (Modid, bool) {
	ids := d.childrenOf(cst.Modid)
	if len(ids) < 2 {
		return Modid{}, false
	}
	return Modid{ids[1]}, true
}

func (d ImportDeclaration) Qualified() bool {
	return d.hasWord("qualified")
}

func (d ImportDeclaration) Hiding() bool {
	return d.hasWord("hiding")
}

func (d ImportDeclaration) hasWord(w string) bool {
	for _, tok := range d.Tokens() {
		if tok.Is(w) {
			return true
		}
	}
	return false
}

// Items returns the names of the import list; nil without one.
func (d ImportDeclaration) Items() []QName {
	list, ok := d.childOf(cst.ImportList)
	if !ok {
		return nil
	}
	var out []QName
	for _, item := range list.childrenOf(cst.ImportItem) {
		if q, ok := item.childOf(cst.QName); ok {
			out = append(out, QName{q})
		}
	}
	return out
}

// HasImportList reports whether the import names its entities.
func (d ImportDeclaration) HasImportList() bool {
	_, ok := d.childOf(cst.ImportList)
	return ok
}

// QName is a name as written: plain, qualified, "(op)" or "`name`".
type QName struct{ Node }

// Name returns the name without parentheses or backticks.
func (q QName) Name() string {
	for _, tok := range q.Tokens() {
		switch tok.Kind {
		case token.LParen, token.RParen, token.Backtick:
			continue
		}
		return tok.Text
	}
	return ""
}

// Qualifier splits off the module prefix.
func (q QName) Qualifier() (module, name string) {
	return token.SplitQualified(q.Name())
}

// IsOperator reports whether the name is symbolic.
func (q QName) IsOperator() bool {
	for _, tok := range q.Tokens() {
		if tok.Kind.IsSym() || tok.Kind == token.Colon || tok.Kind == token.Tilde {
			return true
		}
	}
	return false
}

// Key is the name in Unicode normal form C, for host-side lookups.
func (q QName) Key() string {
	return NameKey(q.Name())
}

// NameKey normalizes a name the way QName.Key does.
func NameKey(name string) string {
	return norm.NFC.String(name)
}
