package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// EnvDBPath overrides the database location when set.
const EnvDBPath = "WEEKLYTASK_DB"

// DefaultDBPath returns the default weeklytask DB location.
func DefaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".weeklytask.db"), nil
}

// ResolveDBPath picks the database path: explicit value, then $WEEKLYTASK_DB,
// then the default under the home directory. A leading "~/" is expanded.
func ResolveDBPath(explicit string) (string, error) {
	path := strings.TrimSpace(explicit)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvDBPath))
	}
	if path == "" {
		return DefaultDBPath()
	}
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}
	return path, nil
}

// OpenSQLite opens (and creates if missing) the SQLite database at the provided path.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer; the whole document is rewritten on every change.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// Open opens the database and brings the schema up to date.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
