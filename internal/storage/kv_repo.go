package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KVRepo is the get/set string store the document is persisted through.
type KVRepo struct {
	db *sql.DB
}

func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the value stored under key. ok is false when the key is absent.
func (r *KVRepo) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	return getKV(ctx, r.db, key)
}

func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	return setKV(ctx, r.db, key, value, time.Now().UTC())
}

func (r *KVRepo) Delete(ctx context.Context, key string) error {
	return deleteKV(ctx, r.db, key)
}

func getKV(ctx context.Context, ex execer, key string) (string, bool, error) {
	row := ex.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv get: %w", err)
	}
	return value, true, nil
}

func setKV(ctx context.Context, ex execer, key, value string, at time.Time) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, at)
	if err != nil {
		return fmt.Errorf("kv set: %w", err)
	}
	return nil
}

func deleteKV(ctx context.Context, ex execer, key string) error {
	if _, err := ex.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv delete: %w", err)
	}
	return nil
}
