package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"blogcanvas/internal/domain/layout"
	"blogcanvas/internal/infrastructure/storage/schema"
)

type LayoutRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

var _ layout.Repository = (*LayoutRepository)(nil)

func NewLayoutRepository(pool *pgxpool.Pool, log *slog.Logger) *LayoutRepository {
	return &LayoutRepository{
		pool: pool,
		log:  log.With("component", "layout_repository"),
	}
}

func (r *LayoutRepository) Get(ctx context.Context, owner layout.Owner) (*layout.Layout, error) {
	query, args, err := psql.Select(schema.LayoutColumns...).
		From(schema.LayoutsTable).
		Where(squirrel.Eq{schema.LayoutOwnerKey: owner.Key()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row schema.LayoutRow
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&row.ID, &row.OwnerKey, &row.UserID, &row.Version, &row.Cards, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, owner.Key())
	}
	return row.Layout()
}

func (r *LayoutRepository) Create(ctx context.Context, l *layout.Layout) error {
	row, err := schema.FromLayout(l)
	if err != nil {
		return err
	}

	query, args, err := psql.Insert(schema.LayoutsTable).
		Columns(schema.LayoutColumns...).
		Values(row.ID, row.OwnerKey, row.UserID, row.Version, string(row.Cards), row.CreatedAt, row.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return mapError(err, row.OwnerKey)
	}
	return nil
}

// Update is a compare-and-set on version.
func (r *LayoutRepository) Update(ctx context.Context, l *layout.Layout, expectedVersion int) error {
	row, err := schema.FromLayout(l)
	if err != nil {
		return err
	}

	query, args, err := psql.Update(schema.LayoutsTable).
		Set(schema.LayoutCards, string(row.Cards)).
		Set(schema.LayoutVersion, row.Version).
		Set(schema.LayoutUpdatedAt, row.UpdatedAt).
		Where(squirrel.Eq{
			schema.LayoutOwnerKey: row.OwnerKey,
			schema.LayoutVersion:  expectedVersion,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, row.OwnerKey)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// nothing matched: either the row is gone or someone else bumped the version
	exists, err := r.exists(ctx, row.OwnerKey)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("layout %s: %w", row.OwnerKey, layout.ErrNotFound)
	}
	return fmt.Errorf("layout %s: %w", row.OwnerKey, layout.ErrVersionConflict)
}

func (r *LayoutRepository) Delete(ctx context.Context, owner layout.Owner) error {
	query, args, err := psql.Delete(schema.LayoutsTable).
		Where(squirrel.Eq{schema.LayoutOwnerKey: owner.Key()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, owner.Key())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("layout %s: %w", owner.Key(), layout.ErrNotFound)
	}
	return nil
}

func (r *LayoutRepository) exists(ctx context.Context, ownerKey string) (bool, error) {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From(schema.LayoutsTable).
		Where(squirrel.Eq{schema.LayoutOwnerKey: ownerKey}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, mapError(err, ownerKey)
	}
	return exists, nil
}

// mapError converts pgx errors into layout sentinels.
func mapError(err error, ownerKey string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("layout %s: %w", ownerKey, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("layout %s: %w", ownerKey, layout.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return fmt.Errorf("layout %s: %w", ownerKey, layout.ErrAlreadyExists)
	}
	return fmt.Errorf("layout %s: %w", ownerKey, err)
}
