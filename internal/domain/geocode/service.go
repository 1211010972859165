package geocode

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Search(ctx context.Context, query string, limit int) ([]Place, error)
}

// Service validates queries and fronts a Provider with an optional Cache.
type Service struct {
	provider Provider
	cache    Cache
	log      *slog.Logger
}

// NewService creates a geocoding service. cache may be nil.
func NewService(provider Provider, cache Cache, log *slog.Logger) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		log:      log.With("component", "geocode_service"),
	}
}

// Search trims the query and clamps limit to [1, MaxLimit]; zero or negative means DefaultLimit.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	query = strings.TrimSpace(query)
	switch {
	case query == "":
		return nil, fmt.Errorf("%w: query is required", ErrInvalidQuery)
	case utf8.RuneCountInString(query) > MaxQueryLength:
		return nil, fmt.Errorf("%w: query exceeds %d characters", ErrInvalidQuery, MaxQueryLength)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	key := cacheKey(query, limit)
	if s.cache != nil {
		places, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn("geocode cache read failed", "error", err)
		} else if ok {
			return places, nil
		}
	}

	places, err := s.provider.Search(ctx, query, limit)
	if err != nil {
		s.log.Error("geocode provider failed", "query", query, "error", err)
		if errors.Is(err, ErrUpstream) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if places == nil {
		places = []Place{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, places); err != nil {
			s.log.Warn("geocode cache write failed", "error", err)
		}
	}
	return places, nil
}

func cacheKey(query string, limit int) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return strconv.Itoa(limit) + ":" + normalized
}
