package driver

import (
	"hsfront/internal/ast"
	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/project"
	"hsfront/internal/source"
)

// Summary is what survives of a parse once the tree is dropped: enough to
// answer navigation queries and to replay diagnostics. It is what the disk
// cache stores.
type Summary struct {
	Path        string
	Hash        uint64
	Module      string
	ModuleSpan  SpanSummary
	HasHeader   bool
	Extensions  []string
	Imports     []ImportSummary
	Decls       []DeclSummary
	Diagnostics []DiagSummary
}

type SpanSummary struct {
	Start, End uint32
	Line, Col  uint32
}

type ImportSummary struct {
	Module    string
	Qualified bool
	Alias     string
	Span      SpanSummary
}

// DeclSummary is one named declaration. Parent names the enclosing type or
// class for constructors, fields and methods.
type DeclSummary struct {
	Name   string
	Key    string // NFC form, used for lookups
	Kind   string
	Parent string
	Span   SpanSummary
}

type DiagSummary struct {
	Severity diag.Severity
	Code     diag.Code
	Message  string
	Span     SpanSummary
	Recovery diag.Recovery
}

// Declaration kinds as stored in summaries and the index.
const (
	DeclValue       = "value"
	DeclSignature   = "signature"
	DeclData        = "data"
	DeclNewtype     = "newtype"
	DeclType        = "type"
	DeclTypeFamily  = "type family"
	DeclClass       = "class"
	DeclInstance    = "instance"
	DeclForeign     = "foreign"
	DeclFixity      = "fixity"
	DeclConstructor = "constructor"
	DeclField       = "field"
	DeclMethod      = "method"
)

func spanSummary(f *source.File, sp source.Span) SpanSummary {
	pos := f.Position(sp.Start)
	return SpanSummary{Start: sp.Start, End: sp.End, Line: pos.Line, Col: pos.Col}
}

// Summarize extracts a Summary from a parsed tree.
func Summarize(tree *cst.Tree, bag *diag.Bag) *Summary {
	f := tree.File
	m := ast.NewModule(tree)
	s := &Summary{
		Path:       f.Path,
		Hash:       f.Hash,
		Module:     m.ModuleName(),
		ModuleSpan: spanSummary(f, f.FullSpan().ZeroAt()),
		Extensions: m.LanguageExtensions(),
	}
	if h, ok := m.Header(); ok {
		s.HasHeader = true
		if id, err := h.Modid(); err == nil {
			s.ModuleSpan = spanSummary(f, id.Span())
		}
	}
	for _, imp := range m.Imports() {
		id, err := imp.Module()
		if err != nil {
			continue
		}
		is := ImportSummary{Module: id.Name(), Qualified: imp.Qualified(), Span: spanSummary(f, id.Span())}
		if alias, ok := imp.Alias(); ok {
			is.Alias = alias.Name()
		}
		s.Imports = append(s.Imports, is)
	}

	seen := make(map[string]bool)
	add := func(name, kind, parent string, n ast.Node) {
		if name == "" {
			return
		}
		// сигнатура и уравнения одной функции дают одну запись на вид
		key := kind + "\x00" + parent + "\x00" + name
		if seen[key] {
			return
		}
		seen[key] = true
		s.Decls = append(s.Decls, DeclSummary{
			Name:   name,
			Key:    ast.NameKey(name),
			Kind:   kind,
			Parent: parent,
			Span:   spanSummary(f, n.Span()),
		})
	}
	for _, d := range m.Declarations() {
		summarizeDecl(d, add)
	}

	if bag != nil {
		for _, d := range bag.Items() {
			s.Diagnostics = append(s.Diagnostics, DiagSummary{
				Severity: d.Severity,
				Code:     d.Code,
				Message:  d.Message,
				Span:     spanSummary(f, d.Primary),
				Recovery: d.Recovery,
			})
		}
	}
	return s
}

type addFunc func(name, kind, parent string, n ast.Node)

func summarizeDecl(d ast.Declaration, add addFunc) {
	switch d := d.(type) {
	case ast.ValueDeclaration:
		add(d.DeclaredName(), DeclValue, "", d.Node)
	case ast.TypeSignature:
		for _, q := range d.QNames() {
			add(q.Name(), DeclSignature, "", q.Node)
		}
	case ast.DataDeclaration:
		add(d.DeclaredName(), DeclData, "", d.Node)
		summarizeConstrs(d.DeclaredName(), d.Constrs(), d.GadtConstrs(), add)
	case ast.NewtypeDeclaration:
		add(d.DeclaredName(), DeclNewtype, "", d.Node)
		summarizeConstrs(d.DeclaredName(), d.Constrs(), d.GadtConstrs(), add)
	case ast.TypeDeclaration:
		if !d.IsRole() {
			add(d.DeclaredName(), DeclType, "", d.Node)
		}
	case ast.TypeFamilyDeclaration:
		add(d.DeclaredName(), DeclTypeFamily, "", d.Node)
	case ast.ClassDeclaration:
		name := d.DeclaredName()
		add(name, DeclClass, "", d.Node)
		if body, ok := d.Cdecls(); ok {
			for _, sig := range body.Signatures() {
				for _, q := range sig.QNames() {
					add(q.Name(), DeclMethod, name, q.Node)
				}
			}
		}
	case ast.InstanceDeclaration:
		add(d.DeclaredName(), DeclInstance, "", d.Node)
	case ast.ForeignDeclaration:
		add(d.DeclaredName(), DeclForeign, "", d.Node)
	case ast.FixityDeclaration:
		for _, q := range d.Operators() {
			add(q.Name(), DeclFixity, "", q.Node)
		}
	}
}

func summarizeConstrs(parent string, constrs []ast.Constr, gadt []ast.TypeSignature, add addFunc) {
	for _, c := range constrs {
		q, err := c.QName()
		if err != nil {
			continue
		}
		add(q.Name(), DeclConstructor, parent, q.Node)
		for _, field := range c.FieldNames() {
			add(field.Name(), DeclField, parent, field.Node)
		}
	}
	for _, sig := range gadt {
		for _, q := range sig.QNames() {
			add(q.Name(), DeclConstructor, parent, q.Node)
		}
	}
}

// Bag rebuilds the diagnostics of s against file.
func (s *Summary) Bag(file source.FileID) *diag.Bag {
	bag := diag.NewBag(0)
	for _, d := range s.Diagnostics {
		sp := source.Span{File: file, Start: d.Span.Start, End: d.Span.End}
		bag.Add(diag.New(d.Severity, d.Code, sp, d.Message).WithRecovery(d.Recovery))
	}
	return bag
}

// Meta converts s for the import graph.
func (s *Summary) Meta(file source.FileID) project.ModuleMeta {
	meta := project.ModuleMeta{
		Name: s.Module,
		File: s.Path,
		Span: source.Span{File: file, Start: s.ModuleSpan.Start, End: s.ModuleSpan.End},
		Hash: s.Hash,
	}
	for _, imp := range s.Imports {
		meta.Imports = append(meta.Imports, project.ImportMeta{
			Name: imp.Module,
			Span: source.Span{File: file, Start: imp.Span.Start, End: imp.Span.End},
		})
	}
	for _, d := range s.Diagnostics {
		if d.Severity == diag.SevError {
			meta.Broken = true
			break
		}
	}
	return meta
}

// Errors counts error-severity diagnostics.
func (s *Summary) Errors() int {
	n := 0
	for _, d := range s.Diagnostics {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}
