package index

import (
	"context"
	"database/sql"
	"fmt"

	"hsfront/internal/ast"
)

const declColumns = `d.name, d.kind, d.parent, f.module, f.path, d.line, d.col, d.start_off, d.end_off`

// Lookup finds declarations of name. Names are compared in Unicode normal
// form C, so a precomposed and a decomposed spelling match.
func (ix *Index) Lookup(ctx context.Context, name string) ([]Decl, error) {
	decls, err := ix.queryDecls(ctx,
		`SELECT `+declColumns+` FROM decls d JOIN files f ON f.id = d.file_id
		 WHERE d.key = ? ORDER BY f.path, d.start_off`, ast.NameKey(name))
	if err != nil {
		return nil, err
	}
	if len(decls) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return decls, nil
}

// ModuleDecls lists the declarations of module in source order.
func (ix *Index) ModuleDecls(ctx context.Context, module string) ([]Decl, error) {
	decls, err := ix.queryDecls(ctx,
		`SELECT `+declColumns+` FROM decls d JOIN files f ON f.id = d.file_id
		 WHERE f.module = ? ORDER BY f.path, d.start_off`, module)
	if err != nil {
		return nil, err
	}
	if len(decls) == 0 {
		var n int
		if err := ix.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM files WHERE module = ?`, module).Scan(&n); err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("module %s: %w", module, ErrNotFound)
		}
	}
	return decls, nil
}

// Files lists the indexed files by path.
func (ix *Index) Files(ctx context.Context) ([]File, error) {
	rows, err := ix.q.QueryContext(ctx,
		`SELECT f.path, f.module, f.hash, f.errors, COUNT(d.id)
		 FROM files f LEFT JOIN decls d ON d.file_id = f.id
		 GROUP BY f.id ORDER BY f.path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []File
	for rows.Next() {
		var f File
		var hash string
		if err := rows.Scan(&f.Path, &f.Module, &hash, &f.Errors, &f.Decls); err != nil {
			return nil, err
		}
		f.Hash = parseHash(hash)
		out = append(out, f)
	}
	return out, rows.Err()
}

func (ix *Index) queryDecls(ctx context.Context, query string, args ...any) ([]Decl, error) {
	rows, err := ix.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDecls(rows)
}

func scanDecls(rows *sql.Rows) ([]Decl, error) {
	var out []Decl
	for rows.Next() {
		var d Decl
		if err := rows.Scan(&d.Name, &d.Kind, &d.Parent, &d.Module, &d.Path, &d.Line, &d.Col, &d.Start, &d.End); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
