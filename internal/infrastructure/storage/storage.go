package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"blogcanvas/internal/config"
	"blogcanvas/internal/domain/layout"
	"blogcanvas/internal/infrastructure/migration"
	"blogcanvas/internal/infrastructure/storage/postgres"
	"blogcanvas/internal/infrastructure/storage/sqlite"
)

// Storage is an opened persistence backend.
type Storage interface {
	Layouts() layout.Repository
	Ping(ctx context.Context) error
	Close() error
}

// Options controls Open.
type Options struct {
	// Migrate applies pending migrations before the storage is returned.
	Migrate bool
}

// Open connects to the backend selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, opts Options, log *slog.Logger) (Storage, error) {
	if opts.Migrate {
		mg, err := migration.FromConfig(cfg, migration.DefaultEngine)
		if err != nil {
			return nil, err
		}
		if err := mg.Up(); err != nil {
			return nil, fmt.Errorf("migrate %s: %w", cfg.Storage.Driver, err)
		}
		log.Info("migrations applied", "driver", cfg.Storage.Driver, "dir", cfg.Storage.MigrationsDir())
	}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		st, err := postgres.New(ctx, cfg.DB.DatabaseURI, log)
		if err != nil {
			return nil, err
		}
		return st, nil
	case config.DriverSQLite:
		st, err := sqlite.New(ctx, cfg.Storage.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	return nil, fmt.Errorf("storage: unsupported driver %q", cfg.Storage.Driver)
}
