package driver

import (
	"context"
	"time"

	"hsfront/internal/diag"
	"hsfront/internal/layout"
	"hsfront/internal/lexer"
	"hsfront/internal/source"
	"hsfront/internal/token"
	"hsfront/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes path. The tokens include trivia and end with EOF.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return TokenizeFile(ctx, fs, fs.Get(id), opts), nil
}

func TokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	_, span := trace.Start(ctx, trace.ScopePass, "lex")
	defer span.End(file.Path)

	bag := diag.NewBag(opts.MaxDiagnostics)
	began := time.Now()
	toks := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	opts.Timer.Add("lex", time.Since(began))
	bag.Sort()
	return &TokenizeResult{FileSet: fs, File: file, Tokens: toks, Bag: bag}
}

// LayoutResult is the token stream the parser would see: significant
// tokens with the virtual braces and semicolons spliced in.
type LayoutResult struct {
	FileSet *source.FileSet
	File    *source.File
	Items   []layout.Item
	Bag     *diag.Bag
}

// Layout resolves path on its own. Without a parser there are no
// parse-error(t) closes, so a block that the grammar would end early (a let
// inside parentheses, say) stays open until the offside rule closes it.
func Layout(ctx context.Context, path string, opts Options) (*LayoutResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return LayoutFile(ctx, fs, fs.Get(id), opts), nil
}

func LayoutFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *LayoutResult {
	_, span := trace.Start(ctx, trace.ScopePass, "layout")
	defer span.End(file.Path)

	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	began := time.Now()
	lay := layout.New(lexer.New(file, lexer.Options{Reporter: rep}), rep)
	var items []layout.Item
	for {
		it := lay.Next()
		items = append(items, it)
		if it.Kind == token.EOF {
			break
		}
	}
	opts.Timer.Add("layout", time.Since(began))
	bag.Sort()
	return &LayoutResult{FileSet: fs, File: file, Items: items, Bag: bag}
}
