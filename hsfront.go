// Package hsfront parses Haskell source text into a lossless concrete
// syntax tree plus diagnostics. Parse never fails: malformed input yields a
// tree with error nodes and error diagnostics.
package hsfront

import (
	"context"

	"hsfront/internal/ast"
	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/parser"
	"hsfront/internal/source"
)

type (
	Tree       = cst.Tree
	Bag        = diag.Bag
	Diagnostic = diag.Diagnostic
	FileSet    = source.FileSet
	Module     = ast.Module
)

// Option adjusts a Parse call.
type Option func(*parser.Options)

// WithExtensions turns on extension gating: forms that need an extension
// neither listed here nor enabled by a LANGUAGE pragma are reported.
// Without it every supported form is accepted.
func WithExtensions(exts ...string) Option {
	return func(o *parser.Options) {
		o.Extensions = append([]string{}, exts...)
	}
}

// WithMaxErrors caps the number of diagnostics kept.
func WithMaxErrors(n int) Option {
	return func(o *parser.Options) { o.MaxErrors = n }
}

// WithoutFixityWarnings silences the warning for operators used without a
// fixity declaration.
func WithoutFixityWarnings() Option {
	return func(o *parser.Options) { o.QuietDefaultFixity = true }
}

// WithReporter forwards every diagnostic to r as it is produced.
func WithReporter(r diag.Reporter) Option {
	return func(o *parser.Options) { o.Reporter = r }
}

type Result struct {
	Tree        *Tree
	Diagnostics *Bag
	Files       *FileSet
}

// Parse parses src, named name in diagnostics.
func Parse(name string, src []byte, opts ...Option) Result {
	return ParseContext(context.Background(), name, src, opts...)
}

// ParseContext is Parse with a context carrying a tracer.
func ParseContext(ctx context.Context, name string, src []byte, opts ...Option) Result {
	var po parser.Options
	for _, opt := range opts {
		opt(&po)
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	res := parser.ParseFile(ctx, fs, fs.Get(id), po)
	return Result{Tree: res.Tree, Diagnostics: res.Bag, Files: res.Files}
}

// Module returns the typed view of the tree.
func (r Result) Module() Module { return ast.NewModule(r.Tree) }

func (r Result) HasErrors() bool { return r.Diagnostics.HasErrors() }
