package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"hsfront/internal/diag"
	"hsfront/internal/project"
	"hsfront/internal/source"
	"hsfront/internal/trace"
)

// DirResult is the outcome of ParseDir. Results follow the sorted file
// order; literate files and files that failed to load are included with a
// diagnostic and no summary.
type DirResult struct {
	Root    string
	FileSet *source.FileSet
	Results []FileResult
}

// listHaskellFiles возвращает отсортированные *.hs и *.lhs файлы под dir.
func listHaskellFiles(dir string, exclude func(string) bool) (hs, lhs []string, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && exclude != nil && exclude(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		switch {
		case strings.HasSuffix(path, ".hs"):
			hs = append(hs, path)
		case strings.HasSuffix(path, ".lhs"):
			lhs = append(lhs, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(hs)
	sort.Strings(lhs)
	return hs, lhs, nil
}

// ParseDir parses every *.hs file under dir in parallel. Per-file problems
// become diagnostics; the error is for a failed walk or cancellation.
func ParseDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "parse-dir")
	span.WithExtra("dir", dir)

	hs, lhs, err := listHaskellFiles(dir, opts.Exclude)
	if err != nil {
		span.End("walk failed")
		return nil, err
	}

	fileSet := source.NewFileSet()
	out := &DirResult{Root: dir, FileSet: fileSet}
	if len(hs)+len(lhs) == 0 {
		span.End("no files")
		return out, nil
	}

	for _, path := range hs {
		opts.emit(Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(hs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(hs))))

	for i, path := range hs {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = parseOne(gctx, fileSet, dir, path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.End("cancelled")
		return out, err
	}

	for _, path := range lhs {
		results = append(results, skippedLiterate(fileSet, path))
	}
	sort.SliceStable(results, func(a, b int) bool { return results[a].Path < results[b].Path })
	out.Results = results

	span.End(fmt.Sprintf("files=%d", len(results)))
	return out, nil
}

func parseOne(ctx context.Context, fileSet *source.FileSet, root, path string, opts Options) FileResult {
	opts.emit(Event{File: path, Stage: StageLoad, Status: StatusWorking})
	id, err := fileSet.Load(path)
	if err != nil {
		// пустой виртуальный файл, чтобы у диагностики была позиция
		id = fileSet.Add(path, nil, source.FileVirtual)
		bag := diag.NewBag(0)
		diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, source.Span{File: id},
			"failed to load file: "+err.Error()).Emit()
		opts.emit(Event{File: path, Stage: StageLoad, Status: StatusError, Errors: 1})
		return FileResult{Path: fileSet.Get(id).Path, FileID: id, Bag: bag}
	}
	file := fileSet.Get(id)

	opts.emit(Event{File: path, Stage: StageParse, Status: StatusWorking})
	res := parseLoaded(ctx, fileSet, file, opts)

	if s := res.Summary; s != nil && s.HasHeader {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		if !project.PathMatchesModule(rel, s.Module) {
			diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.PrjNameMismatch,
				source.Span{File: id, Start: s.ModuleSpan.Start, End: s.ModuleSpan.End},
				fmt.Sprintf("module %q is in %s", s.Module, filepath.ToSlash(rel))).Emit()
		}
	}

	status := StatusDone
	switch {
	case res.Bag.HasErrors():
		status = StatusError
	case res.Cached:
		status = StatusCached
	}
	opts.emit(Event{File: path, Stage: StageSummarize, Status: status, Errors: errorCount(res.Bag)})
	return *res
}

func skippedLiterate(fileSet *source.FileSet, path string) FileResult {
	id := fileSet.Add(path, nil, source.FileVirtual)
	bag := diag.NewBag(0)
	diag.ReportInfo(diag.BagReporter{Bag: bag}, diag.LexInfo, source.Span{File: id},
		"literate Haskell is not supported; file skipped").Emit()
	return FileResult{Path: fileSet.Get(id).Path, FileID: id, Bag: bag}
}

func errorCount(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

// Errors counts error diagnostics across all files.
func (r *DirResult) Errors() int {
	n := 0
	for i := range r.Results {
		n += errorCount(r.Results[i].Bag)
	}
	return n
}

// Bag merges the diagnostics of every file in path order. File ids follow
// load order, which is not deterministic, so the merged bag must not be
// sorted again.
func (r *DirResult) Bag() *diag.Bag {
	bag := diag.NewBag(0)
	for i := range r.Results {
		r.Results[i].Bag.Sort()
		bag.Merge(r.Results[i].Bag)
	}
	return bag
}

// Summaries returns the summaries of the files that have one.
func (r *DirResult) Summaries() []*Summary {
	var out []*Summary
	for i := range r.Results {
		if s := r.Results[i].Summary; s != nil {
			out = append(out, s)
		}
	}
	return out
}
