package geocode

import "context"

const (
	DefaultLimit   = 5
	MaxLimit       = 10
	MaxQueryLength = 200
)

// Place is a single geocoding match.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Provider resolves free-form queries to places.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Place, error)
}

// Cache stores provider answers by normalized query.
type Cache interface {
	// Get reports false on a miss.
	Get(ctx context.Context, key string) ([]Place, bool, error)
	Set(ctx context.Context, key string, places []Place) error
}
