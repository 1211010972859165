package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"blogcanvas/internal/domain/layout"
	"blogcanvas/internal/domain/validation"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	ctx := context.Background()

	st, err := New(ctx, filepath.Join(t.TempDir(), "layouts.db"), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	ddl, err := os.ReadFile("../../../../migrations/sqlite/000001_create_layouts.up.sql")
	require.NoError(t, err)
	_, err = st.DB().ExecContext(ctx, string(ddl))
	require.NoError(t, err)

	return st
}

var testNow = time.Date(2024, 2, 3, 4, 5, 6, 789, time.UTC)

func TestLayoutRepository_Lifecycle(t *testing.T) {
	repo := newTestStorage(t).Layouts()
	ctx := context.Background()
	owner := layout.Owner{UserID: "u1"}

	_, err := repo.Get(ctx, owner)
	assert.ErrorIs(t, err, layout.ErrNotFound)

	l := layout.Default(owner, testNow)
	require.NoError(t, repo.Create(ctx, l))

	got, err := repo.Get(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, l, got)

	dup := layout.Default(owner, testNow)
	assert.ErrorIs(t, repo.Create(ctx, dup), layout.ErrAlreadyExists)

	next := got.Clone()
	require.NoError(t, next.RemoveCard(next.Cards[0].ID, testNow.Add(time.Second)))
	require.NoError(t, repo.Update(ctx, next, 1))

	got, err = repo.Get(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, next, got)

	assert.ErrorIs(t, repo.Update(ctx, next, 1), layout.ErrVersionConflict)

	require.NoError(t, repo.Delete(ctx, owner))
	assert.ErrorIs(t, repo.Delete(ctx, owner), layout.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, next, 2), layout.ErrNotFound)
}

func TestLayoutRepository_AnonymousOwner(t *testing.T) {
	repo := newTestStorage(t).Layouts()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, layout.Default(layout.Anonymous, testNow)))
	require.NoError(t, repo.Create(ctx, layout.Default(layout.Owner{UserID: "u2"}, testNow)))

	got, err := repo.Get(ctx, layout.Anonymous)
	require.NoError(t, err)
	assert.Nil(t, got.UserID)
}

func TestLayoutRepository_CorruptRow(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	_, err := st.DB().ExecContext(ctx,
		`INSERT INTO layouts (id, owner_key, user_id, version, cards, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"l1", "u1", "u1", 1, `[{"id":"c1","type":"weather"}]`, testNow.Format(time.RFC3339Nano), testNow.Format(time.RFC3339Nano))
	require.NoError(t, err)

	_, err = st.Layouts().Get(ctx, layout.Owner{UserID: "u1"})
	assert.ErrorIs(t, err, validation.ErrStructural)
}

func TestLayoutRepository_ConcurrentUpdates(t *testing.T) {
	repo := newTestStorage(t).Layouts()
	ctx := context.Background()
	owner := layout.Owner{UserID: "u1"}

	base := layout.Default(owner, testNow)
	require.NoError(t, repo.Create(ctx, base))

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next := base.Clone()
			_ = next.BringToFront(next.Cards[0].ID, testNow)
			if err := repo.Update(ctx, next, base.Version); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, layout.ErrVersionConflict)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}
