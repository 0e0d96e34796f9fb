package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// List returns the newest snapshots for key first.
func (r *SnapshotRepo) List(ctx context.Context, key string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, key, value, saved_at
		FROM snapshots
		WHERE key = ?
		ORDER BY id DESC
		LIMIT ?
	`, key, limit)
	if err != nil {
		return nil, fmt.Errorf("snapshot list: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.SavedAt); err != nil {
			return nil, fmt.Errorf("snapshot scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot rows: %w", err)
	}
	return out, nil
}

// Get returns nil when no snapshot has that id.
func (r *SnapshotRepo) Get(ctx context.Context, id int64) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, key, value, saved_at FROM snapshots WHERE id = ?`, id)
	var s Snapshot
	if err := row.Scan(&s.ID, &s.Key, &s.Value, &s.SavedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot get: %w", err)
	}
	return &s, nil
}

func insertSnapshot(ctx context.Context, ex execer, key, value string, at time.Time) (int64, error) {
	res, err := ex.ExecContext(ctx, `
		INSERT INTO snapshots (key, value, saved_at) VALUES (?, ?, ?)
	`, key, value, at)
	if err != nil {
		return 0, fmt.Errorf("snapshot insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("snapshot last insert id: %w", err)
	}
	return id, nil
}

// trimSnapshots keeps the newest keep snapshots for key. keep <= 0 keeps all.
func trimSnapshots(ctx context.Context, ex execer, key string, keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := ex.ExecContext(ctx, `
		DELETE FROM snapshots
		WHERE key = ? AND id NOT IN (
			SELECT id FROM snapshots WHERE key = ? ORDER BY id DESC LIMIT ?
		)
	`, key, key, keep)
	if err != nil {
		return fmt.Errorf("snapshot trim: %w", err)
	}
	return nil
}

func deleteSnapshots(ctx context.Context, ex execer, key string) error {
	if _, err := ex.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("snapshot delete: %w", err)
	}
	return nil
}
