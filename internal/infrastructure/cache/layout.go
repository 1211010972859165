package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"blogcanvas/internal/domain/layout"
)

const (
	layoutKeyPrefix = "blogcanvas:layout:"     // blogcanvas:layout:{owner_key}
	layoutGenPrefix = "blogcanvas:layout-gen:" // blogcanvas:layout-gen:{owner_key}

	// generation keys must outlive any in-flight read
	generationTTL = 24 * time.Hour
)

// storeIfCurrent writes the entry only while the owner's generation is the one
// observed before the backing read. KEYS: gen, entry. ARGV: gen, data, ttl (ms).
var storeIfCurrent = redis.NewScript(`
local gen = redis.call('GET', KEYS[1]) or '0'
if gen ~= ARGV[1] then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ttl)
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// LayoutRepository is a read-through cache in front of another layout.Repository.
// Writes go to the backing repository first, then bump the owner's generation and
// drop the cached entry. A read that raced with a write does not repopulate the cache.
// Redis failures degrade to the backing repository.
type LayoutRepository struct {
	next   layout.Repository
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

var _ layout.Repository = (*LayoutRepository)(nil)

func NewLayoutRepository(next layout.Repository, client *redis.Client, ttl time.Duration, log *slog.Logger) *LayoutRepository {
	return &LayoutRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    log.With("component", "layout_cache"),
	}
}

func layoutKey(owner layout.Owner) string {
	return layoutKeyPrefix + owner.Key()
}

func generationKey(owner layout.Owner) string {
	return layoutGenPrefix + owner.Key()
}

func (r *LayoutRepository) Get(ctx context.Context, owner layout.Owner) (*layout.Layout, error) {
	key := layoutKey(owner)

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		l, perr := layout.ParseJSON(data)
		if perr == nil {
			return l, nil
		}
		r.log.Warn("dropping invalid cached layout", "key", key, "error", perr)
		r.invalidate(ctx, owner)
	case !errors.Is(err, redis.Nil):
		r.log.Warn("layout cache read failed", "key", key, "error", err)
	}

	gen, genErr := r.generation(ctx, owner)
	l, err := r.next.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		r.store(ctx, l, gen)
	}
	return l, nil
}

func (r *LayoutRepository) Create(ctx context.Context, l *layout.Layout) error {
	if err := r.next.Create(ctx, l); err != nil {
		return err
	}
	r.invalidate(ctx, l.Owner())
	return nil
}

func (r *LayoutRepository) Update(ctx context.Context, l *layout.Layout, expectedVersion int) error {
	err := r.next.Update(ctx, l, expectedVersion)
	// a conflict means the cached copy may be stale as well
	r.invalidate(ctx, l.Owner())
	return err
}

func (r *LayoutRepository) Delete(ctx context.Context, owner layout.Owner) error {
	err := r.next.Delete(ctx, owner)
	r.invalidate(ctx, owner)
	return err
}

func (r *LayoutRepository) generation(ctx context.Context, owner layout.Owner) (string, error) {
	gen, err := r.client.Get(ctx, generationKey(owner)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "0", nil
	case err != nil:
		r.log.Warn("layout cache generation read failed", "owner", owner.Key(), "error", err)
		return "", err
	}
	return gen, nil
}

func (r *LayoutRepository) store(ctx context.Context, l *layout.Layout, gen string) {
	data, err := json.Marshal(l)
	if err != nil {
		r.log.Warn("encode layout for cache", "error", err)
		return
	}
	owner := l.Owner()
	stored, err := storeIfCurrent.Run(ctx, r.client,
		[]string{generationKey(owner), layoutKey(owner)},
		gen, data, r.ttl.Milliseconds(),
	).Int()
	switch {
	case err != nil:
		r.log.Warn("layout cache write failed", "error", err)
	case stored == 0:
		r.log.Debug("skipping cache fill after concurrent write", "owner", owner.Key())
	}
}

func (r *LayoutRepository) invalidate(ctx context.Context, owner layout.Owner) {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(owner))
		pipe.Expire(ctx, generationKey(owner), generationTTL)
		pipe.Del(ctx, layoutKey(owner))
		return nil
	})
	if err != nil {
		r.log.Warn("layout cache invalidation failed", "owner", owner.Key(), "error", err)
	}
}
