package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	// registers the "sqlite3" database/sql driver
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"blogcanvas/internal/domain/layout"
)

var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type Storage struct {
	db      *sql.DB
	layouts *LayoutRepository
}

// New opens the database file at path. Migrations are applied by the caller.
func New(ctx context.Context, path string, log *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single writer avoids SQLITE_BUSY under concurrent requests
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &Storage{
		db:      db,
		layouts: NewLayoutRepository(db, log),
	}, nil
}

// DSN adds the connection options used by both the repository and migrations.
func DSN(path string) string {
	return "file:" + path + "?_busy_timeout=5000&_journal_mode=WAL"
}

func (s *Storage) Layouts() layout.Repository {
	return s.layouts
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) DB() *sql.DB {
	return s.db
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
