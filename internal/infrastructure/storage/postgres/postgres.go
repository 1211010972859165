package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"blogcanvas/internal/domain/layout"
)

// psql builds statements with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type Storage struct {
	pool    *pgxpool.Pool
	layouts *LayoutRepository
}

// New opens a pool and verifies the connection. Migrations are applied by the caller.
func New(ctx context.Context, databaseURI string, log *slog.Logger) (*Storage, error) {
	pool, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Storage{
		pool:    pool,
		layouts: NewLayoutRepository(pool, log),
	}, nil
}

func (s *Storage) Layouts() layout.Repository {
	return s.layouts
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
