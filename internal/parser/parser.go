package parser

import (
	"context"
	"fmt"

	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/fixity"
	"hsfront/internal/layout"
	"hsfront/internal/lexer"
	"hsfront/internal/source"
	"hsfront/internal/token"
	"hsfront/internal/trace"
)

type Options struct {
	// Reporter receives every diagnostic in addition to Result.Bag.
	Reporter diag.Reporter
	// MaxErrors caps reported errors; parsing always runs to the end.
	MaxErrors int
	// Extensions enables extension gating. nil accepts every known form
	// silently; a non-nil list warns about forms whose extension is neither
	// listed here nor switched on by a LANGUAGE pragma.
	Extensions []string
	// QuietDefaultFixity suppresses the warning for symbolic operators
	// without a fixity declaration.
	QuietDefaultFixity bool
}

type Result struct {
	Tree  *cst.Tree
	Bag   *diag.Bag
	Files *source.FileSet
}

// Parser — состояние парсера на один файл
type Parser struct {
	file *source.File
	lay  *layout.Resolver
	b    *cst.Builder
	rep  diag.Reporter
	opts Options

	fix      *fixity.Table
	exts     map[string]bool // nil: no gating
	defaults map[string]bool // operators already warned about
	warned   map[string]bool // extensions already warned about

	lastSpan source.Span // последний съеденный реальный токен
	lastKind token.Kind
	lastErr  int  // 1 + offset of the last reported error, 0 if none
	steps    int  // items consumed; loops use it to check progress
	sawDecl  bool // a top-level declaration was parsed
	inBody   bool // header pragmas are behind us
}

// ParseFile parses one file of fs. The context only carries the tracer.
func ParseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) Result {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeFile, "parse", trace.CurrentSpan(ctx).SpanID).
		WithExtra("file", file.Path)

	bag := diag.NewBag(0)
	sink := diag.MultiReporter{diag.BagReporter{Bag: bag}}
	if opts.Reporter != nil {
		sink = append(sink, opts.Reporter)
	}
	rep := diag.NewDedupReporter(&diag.LimitReporter{Next: sink, Max: opts.MaxErrors})

	lx := lexer.New(file, lexer.Options{Reporter: rep})
	lay := layout.New(lx, rep)
	p := &Parser{
		file:     file,
		lay:      lay,
		rep:      rep,
		opts:     opts,
		fix:      fixity.NewTable(),
		defaults: make(map[string]bool),
		warned:   make(map[string]bool),
		lastSpan: source.Span{File: file.ID},
	}
	p.b = cst.NewBuilder(file, lay.Raw, cst.Module)

	raw := lay.Drain()
	fixity.Collect(raw, p.fix, rep)
	p.exts = collectExtensions(raw, opts.Extensions)

	p.parseModule()

	bag.Sort()
	tree := p.b.Tree(lay.Drain(), bag.Items())
	span.End(fmt.Sprintf("diagnostics=%d", bag.Len()))
	return Result{Tree: tree, Bag: bag, Files: fs}
}

// ParseText parses src as a standalone file called name.
func ParseText(name, src string, opts Options) Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	return ParseFile(context.Background(), fs, fs.Get(id), opts)
}

// parseModule:
//
//	module ::= headerPragma* [ "module" modid pragma* [exports] "where" ] body
func (p *Parser) parseModule() {
	for p.at(token.PragmaOpen) {
		p.parsePragma()
	}
	p.inBody = true
	if p.at(token.KwModule) {
		p.parseModuleHeader()
	}
	p.parseBody()

	if !p.at(token.EOF) {
		p.err(diag.SynUnexpectedTopLevel, "unexpected "+describe(p.peek())+" after module body")
		p.b.Start(cst.Error)
		for !p.at(token.EOF) {
			p.bump()
		}
		p.b.Finish()
	}
}
