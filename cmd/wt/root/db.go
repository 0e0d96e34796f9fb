package root

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"weeklytask/internal/engine"
	"weeklytask/internal/storage"
)

// dbPath applies --db, then $WEEKLYTASK_DB, then db_path from the config.
func dbPath() (string, error) {
	explicit := flagDB
	if explicit == "" && strings.TrimSpace(os.Getenv(storage.EnvDBPath)) == "" {
		explicit = cfg.DBPath
	}
	return storage.ResolveDBPath(explicit)
}

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	path, err := dbPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("database opened", zap.String("path", path))
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

// openService loads the document without checking the first-run flow.
func openService(ctx context.Context) (*engine.Service, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	docs := storage.NewDocumentRepo(db, cfg.StorageKey, cfg.SnapshotLimit)
	svc := engine.NewService(docs, engine.WithLogger(logger))
	if err := svc.Load(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

// openReadyService is openService for commands that need a finished setup.
func openReadyService(ctx context.Context) (*engine.Service, func(), error) {
	svc, cleanup, err := openService(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := svc.RequireSetup(); err != nil {
		cleanup()
		var se engine.SetupError
		if errors.As(err, &se) {
			return nil, nil, fmt.Errorf("%w; run `wt setup` first", err)
		}
		return nil, nil, err
	}
	return svc, cleanup, nil
}
