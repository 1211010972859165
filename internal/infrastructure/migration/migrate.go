package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register the database drivers and the file source for migrations
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"blogcanvas/internal/config"
)

// Migrator - интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine - фабрика для создания мигратора (чтобы не лезть в ФС и БД в тестах)
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	sourceURL   string
	databaseURL string
	engine      MigrationEngine
}

func NewMigration(sourceDir, databaseURL string, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		sourceURL:   "file://" + sourceDir,
		databaseURL: databaseURL,
		engine:      engine,
	}
}

// FromConfig targets the database of the configured storage driver.
func FromConfig(cfg *config.Config, engine MigrationEngine) (*Migration, error) {
	url, err := DatabaseURL(cfg)
	if err != nil {
		return nil, err
	}
	return NewMigration(cfg.Storage.MigrationsDir(), url, engine), nil
}

// DatabaseURL returns the golang-migrate URL of the configured storage.
func DatabaseURL(cfg *config.Config) (string, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return cfg.DB.DatabaseURI, nil
	case config.DriverSQLite:
		return "sqlite3://" + cfg.Storage.SQLitePath, nil
	}
	return "", fmt.Errorf("migration: unsupported driver %q", cfg.Storage.Driver)
}

// DefaultEngine - реальная реализация для продакшена
func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

// Up applies all pending migrations. No pending migrations is not an error.
func (mg *Migration) Up() (err error) {
	m, err := mg.engine(mg.sourceURL, mg.databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			err = errors.Join(err, fmt.Errorf("migration source error: %w", serr))
		}
		if dberr != nil {
			err = errors.Join(err, fmt.Errorf("migration database error: %w", dberr))
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}
