package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"blogcanvas/internal/domain/layout"
	"blogcanvas/internal/infrastructure/storage/schema"
)

const timeLayout = time.RFC3339Nano

type LayoutRepository struct {
	db  *sql.DB
	log *slog.Logger
}

var _ layout.Repository = (*LayoutRepository)(nil)

func NewLayoutRepository(db *sql.DB, log *slog.Logger) *LayoutRepository {
	return &LayoutRepository{
		db:  db,
		log: log.With("component", "layout_repository"),
	}
}

func (r *LayoutRepository) Get(ctx context.Context, owner layout.Owner) (*layout.Layout, error) {
	query, args, err := sq.Select(schema.LayoutColumns...).
		From(schema.LayoutsTable).
		Where(squirrel.Eq{schema.LayoutOwnerKey: owner.Key()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var (
		row                  schema.LayoutRow
		userID               sql.NullString
		cards                string
		createdAt, updatedAt string
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&row.ID, &row.OwnerKey, &userID, &row.Version, &cards, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, mapError(err, owner.Key())
	}

	if userID.Valid {
		row.UserID = &userID.String
	}
	row.Cards = []byte(cards)
	if row.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("layout %s: created_at: %w", owner.Key(), err)
	}
	if row.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("layout %s: updated_at: %w", owner.Key(), err)
	}
	return row.Layout()
}

func (r *LayoutRepository) Create(ctx context.Context, l *layout.Layout) error {
	row, err := schema.FromLayout(l)
	if err != nil {
		return err
	}

	query, args, err := sq.Insert(schema.LayoutsTable).
		Columns(schema.LayoutColumns...).
		Values(
			row.ID, row.OwnerKey, nullable(row.UserID), row.Version, string(row.Cards),
			row.CreatedAt.Format(timeLayout), row.UpdatedAt.Format(timeLayout),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
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

	query, args, err := sq.Update(schema.LayoutsTable).
		Set(schema.LayoutCards, string(row.Cards)).
		Set(schema.LayoutVersion, row.Version).
		Set(schema.LayoutUpdatedAt, row.UpdatedAt.Format(timeLayout)).
		Where(squirrel.Eq{
			schema.LayoutOwnerKey: row.OwnerKey,
			schema.LayoutVersion:  expectedVersion,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, row.OwnerKey)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("layout %s: rows affected: %w", row.OwnerKey, err)
	}
	if affected > 0 {
		return nil
	}

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
	query, args, err := sq.Delete(schema.LayoutsTable).
		Where(squirrel.Eq{schema.LayoutOwnerKey: owner.Key()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, owner.Key())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("layout %s: %w", owner.Key(), layout.ErrNotFound)
	}
	return nil
}

func (r *LayoutRepository) exists(ctx context.Context, ownerKey string) (bool, error) {
	query, args, err := sq.Select("COUNT(1)").
		From(schema.LayoutsTable).
		Where(squirrel.Eq{schema.LayoutOwnerKey: ownerKey}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, mapError(err, ownerKey)
	}
	return n > 0, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func mapError(err error, ownerKey string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("layout %s: %w", ownerKey, layout.ErrNotFound)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return fmt.Errorf("layout %s: %w", ownerKey, layout.ErrAlreadyExists)
	}
	return fmt.Errorf("layout %s: %w", ownerKey, err)
}
