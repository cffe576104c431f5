package driver

import (
	"context"
	"fmt"
	"time"

	"hsfront/internal/cst"
	"hsfront/internal/diag"
	"hsfront/internal/parser"
	"hsfront/internal/source"
	"hsfront/internal/trace"
)

// FileResult is the outcome for one file. Tree is nil when the summary came
// from the cache or the file could not be loaded.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Tree    *cst.Tree
	Bag     *diag.Bag
	Summary *Summary
	Cached  bool
}

// ParseFile loads and parses a single file.
func ParseFile(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	res := parseLoaded(ctx, fs, fs.Get(id), opts)
	return fs, res, nil
}

// ParseSource parses an in-memory buffer, as read from stdin or typed into
// the REPL.
func ParseSource(ctx context.Context, name string, src []byte, opts Options) (*source.FileSet, *FileResult) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	opts.Cache = nil
	return fs, parseLoaded(ctx, fs, fs.Get(id), opts)
}

// parseLoaded parses file, going through the cache when trees are not
// needed.
func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *FileResult {
	useCache := opts.Cache != nil && !opts.NeedTrees && file.Flags&source.FileVirtual == 0
	var key uint64
	if useCache {
		key = opts.Cache.Key(file, opts)
		s, ok, err := opts.Cache.Get(key)
		switch {
		case err != nil:
			trace.Point(ctx, trace.ScopeFile, "cache-miss", fmt.Sprintf("%s: %v", file.Path, err))
		case ok:
			trace.Point(ctx, trace.ScopeFile, "cache-hit", file.Path)
			return &FileResult{
				Path:    file.Path,
				FileID:  file.ID,
				Bag:     s.Bag(file.ID),
				Summary: s,
				Cached:  true,
			}
		}
	}

	began := time.Now()
	res := parser.ParseFile(ctx, fs, file, opts.parserOptions())
	opts.Timer.Add("parse", time.Since(began))

	began = time.Now()
	s := Summarize(res.Tree, res.Bag)
	opts.Timer.Add("summarize", time.Since(began))

	out := &FileResult{
		Path:    file.Path,
		FileID:  file.ID,
		Tree:    res.Tree,
		Bag:     res.Bag,
		Summary: s,
	}
	if useCache {
		if err := opts.Cache.Put(key, s); err != nil {
			diag.ReportWarning(diag.BagReporter{Bag: out.Bag}, diag.IOCacheError, file.FullSpan().ZeroAt(),
				"cannot write parse cache: "+err.Error()).Emit()
		}
	}
	return out
}
