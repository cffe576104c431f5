// Package index keeps declaration summaries in a SQLite database so that
// navigation queries ("where is foo defined?") need no reparse.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Querier abstracts *sql.DB and *sql.Tx so index methods work in both
// contexts.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Index struct {
	db   *sql.DB
	q    Querier // db or tx
	path string
}

// Decl is one indexed declaration.
type Decl struct {
	Name   string
	Kind   string
	Parent string
	Module string
	Path   string
	Line   int
	Col    int
	Start  int
	End    int
}

// File is one indexed source file.
type File struct {
	Path   string
	Module string
	Hash   uint64
	Decls  int
	Errors int
}

// ErrNotFound is returned by lookups that match nothing.
var ErrNotFound = errors.New("not found")

// Open opens or creates the index at path.
func Open(path string) (*Index, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir index: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	return initIndex(db, path)
}

// OpenMemory opens an in-memory index (for testing).
func OpenMemory() (*Index, error) {
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open memory index: %w", err)
	}
	// у каждого соединения своя :memory: база
	db.SetMaxOpenConns(1)
	return initIndex(db, ":memory:")
}

func initIndex(db *sql.DB, path string) (*Index, error) {
	ix := &Index{db: db, path: path}
	ix.q = db
	if err := ix.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return ix, nil
}

func (ix *Index) Path() string { return ix.path }

// Close closes the database connection.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// WithTransaction runs fn against an index bound to one transaction.
func (ix *Index) WithTransaction(ctx context.Context, fn func(tx *Index) error) error {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	txIndex := &Index{db: ix.db, q: tx, path: ix.path}
	if err := fn(txIndex); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (ix *Index) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL UNIQUE,
		hash TEXT NOT NULL,
		module TEXT NOT NULL,
		errors INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_files_module ON files(module);

	CREATE TABLE IF NOT EXISTS decls (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file_id INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		key TEXT NOT NULL,
		kind TEXT NOT NULL,
		parent TEXT NOT NULL DEFAULT '',
		start_off INTEGER NOT NULL,
		end_off INTEGER NOT NULL,
		line INTEGER NOT NULL,
		col INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_decls_key ON decls(key);
	CREATE INDEX IF NOT EXISTS idx_decls_file ON decls(file_id);
	`
	_, err := ix.q.ExecContext(ctx, schema)
	return err
}

func hashText(h uint64) string { return fmt.Sprintf("%016x", h) }

func parseHash(s string) uint64 {
	var h uint64
	_, _ = fmt.Sscanf(s, "%x", &h)
	return h
}
