package app

import (
	"fmt"

	"go.uber.org/zap"

	"healthy-bite-selector/internal/config"
	"healthy-bite-selector/internal/database"
	"healthy-bite-selector/internal/favorites"
	"healthy-bite-selector/internal/foodlist"
	"healthy-bite-selector/internal/history"
	"healthy-bite-selector/internal/metrics"
	"healthy-bite-selector/internal/planner"
	"healthy-bite-selector/internal/storage"
)

// Bootstrap opens the configured storage backend and builds the App. The
// returned close function releases the backend.
func Bootstrap(cfg *config.Config, logger *zap.Logger) (*App, func() error, error) {
	var (
		kv           storage.KV
		metricsStore MetricsStore
		closeFn      = func() error { return nil }
	)

	switch cfg.StorageBackend {
	case config.BackendFile:
		fs, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		if isFresh(fs) {
			logger.Info("starting with an empty file store", zap.String("dir", cfg.DataDir))
		}
		kv = fs
	default:
		db, err := database.NewDB(cfg.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		kv = storage.NewSQLiteStore(db.SQL)
		metricsStore = metrics.NewStore(db.SQL)
		closeFn = db.Close
	}

	seed := cfg.Seed()
	logger.Debug("storage ready",
		zap.String("backend", cfg.StorageBackend),
		zap.Uint64("seed", seed),
	)

	a, err := NewApp(kv, planner.NewRand(seed), metricsStore, logger, Options{
		GenerationDelay: cfg.GenerationDelay,
		UserItemScope:   cfg.UserItemScope,
		DefaultCuisine:  cfg.DefaultCuisine,
		DataDir:         cfg.DataDir,
	})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return a, closeFn, nil
}

// isFresh reports whether none of the app's keys has been written to fs yet.
func isFresh(fs *storage.FileStore) bool {
	for _, key := range []string{foodlist.StorageKey, favorites.StorageKey, history.StorageKey, CurrentPlanKey} {
		if fs.Exists(key) {
			return false
		}
	}
	return true
}
