package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"blogcanvas/internal/domain/geocode"
)

const geocodeKeyPrefix = "blogcanvas:geocode:" // blogcanvas:geocode:{limit}:{query}

// GeocodeCache stores geocoding answers as JSON.
type GeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ geocode.Cache = (*GeocodeCache)(nil)

func NewGeocodeCache(client *redis.Client, ttl time.Duration) *GeocodeCache {
	return &GeocodeCache{client: client, ttl: ttl}
}

func (c *GeocodeCache) Get(ctx context.Context, key string) ([]geocode.Place, bool, error) {
	data, err := c.client.Get(ctx, geocodeKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get geocode cache: %w", err)
	}

	var places []geocode.Place
	if err := json.Unmarshal(data, &places); err != nil {
		return nil, false, fmt.Errorf("decode geocode cache: %w", err)
	}
	return places, true, nil
}

func (c *GeocodeCache) Set(ctx context.Context, key string, places []geocode.Place) error {
	data, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("encode geocode cache: %w", err)
	}
	if err := c.client.Set(ctx, geocodeKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set geocode cache: %w", err)
	}
	return nil
}
