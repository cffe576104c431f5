package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"hsfront/internal/driver"
)

// UpdateStats counts what Update did.
type UpdateStats struct {
	Added, Changed, Unchanged, Removed int
}

func (s UpdateStats) String() string {
	return fmt.Sprintf("%d added, %d changed, %d unchanged, %d removed", s.Added, s.Changed, s.Unchanged, s.Removed)
}

// Update stores summaries in one transaction. Files whose hash is already
// indexed are left alone. With prune set, files under the index that are
// not among summaries are dropped.
func (ix *Index) Update(ctx context.Context, summaries []*driver.Summary, prune bool) (UpdateStats, error) {
	var stats UpdateStats
	err := ix.WithTransaction(ctx, func(tx *Index) error {
		seen := make([]string, 0, len(summaries))
		for _, s := range summaries {
			if err := ctx.Err(); err != nil {
				return err
			}
			seen = append(seen, s.Path)
			changed, existed, err := tx.storeFile(ctx, s)
			if err != nil {
				return fmt.Errorf("index %s: %w", s.Path, err)
			}
			switch {
			case !existed:
				stats.Added++
			case changed:
				stats.Changed++
			default:
				stats.Unchanged++
			}
		}
		if !prune {
			return nil
		}
		n, err := tx.pruneExcept(ctx, seen)
		stats.Removed = n
		return err
	})
	return stats, err
}

func (ix *Index) storeFile(ctx context.Context, s *driver.Summary) (changed, existed bool, err error) {
	var id int64
	var hash string
	err = ix.q.QueryRowContext(ctx, `SELECT id, hash FROM files WHERE path = ?`, s.Path).Scan(&id, &hash)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := ix.q.ExecContext(ctx,
			`INSERT INTO files (path, hash, module, errors) VALUES (?, ?, ?, ?)`,
			s.Path, hashText(s.Hash), s.Module, s.Errors())
		if err != nil {
			return false, false, err
		}
		if id, err = res.LastInsertId(); err != nil {
			return false, false, err
		}
	case err != nil:
		return false, false, err
	case hash == hashText(s.Hash):
		return false, true, nil
	default:
		existed = true
		if _, err := ix.q.ExecContext(ctx,
			`UPDATE files SET hash = ?, module = ?, errors = ? WHERE id = ?`,
			hashText(s.Hash), s.Module, s.Errors(), id); err != nil {
			return false, true, err
		}
		if _, err := ix.q.ExecContext(ctx, `DELETE FROM decls WHERE file_id = ?`, id); err != nil {
			return false, true, err
		}
	}

	for _, d := range s.Decls {
		if _, err := ix.q.ExecContext(ctx,
			`INSERT INTO decls (file_id, name, key, kind, parent, start_off, end_off, line, col)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, d.Name, d.Key, d.Kind, d.Parent, d.Span.Start, d.Span.End, d.Span.Line, d.Span.Col); err != nil {
			return false, existed, err
		}
	}
	return true, existed, nil
}

func (ix *Index) pruneExcept(ctx context.Context, keep []string) (int, error) {
	rows, err := ix.q.QueryContext(ctx, `SELECT path FROM files`)
	if err != nil {
		return 0, err
	}
	var stale []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			_ = rows.Close()
			return 0, err
		}
		if !slices.Contains(keep, p) {
			stale = append(stale, p)
		}
	}
	if err := rows.Close(); err != nil {
		return 0, err
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	for _, p := range stale {
		if _, err := ix.q.ExecContext(ctx, `DELETE FROM files WHERE path = ?`, p); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}
