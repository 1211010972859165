package card

import (
	"fmt"

	"blogcanvas/internal/domain/validation"
)

// Config is the per-type payload of a card. Each card type has exactly one
// implementation; GetType names the variant.
type Config interface {
	GetType() Type
	Validate() error
	ToMap() map[string]any
}

// ParseConfig validates an untyped config payload against the shape of typ.
func ParseConfig(typ Type, v any) (Config, error) {
	var (
		cfg Config
		err error
	)
	switch typ {
	case TypeProfile:
		cfg, err = ParseProfileConfig(v)
	case TypeStats:
		cfg, err = ParseStatsConfig(v)
	case TypeCategories:
		cfg, err = ParseCategoriesConfig(v)
	case TypeRecentPosts:
		cfg, err = ParseRecentPostsConfig(v)
	default:
		return nil, validation.NewError("type", validation.ReasonEnum, fmt.Sprintf("unsupported card type %q", typ))
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the payload a freshly added card of typ starts with.
func DefaultConfig(typ Type) (Config, error) {
	switch typ {
	case TypeProfile:
		return ProfileConfig{ShowAvatar: true, ShowBio: true, ShowSocialLinks: true}, nil
	case TypeStats:
		return StatsConfig{Metrics: []Metric{MetricPosts, MetricViews, MetricComments}}, nil
	case TypeCategories:
		return CategoriesConfig{ShowType: ShowCategories, Limit: 10, ShowCount: true}, nil
	case TypeRecentPosts:
		return RecentPostsConfig{Limit: 5, ShowExcerpt: true, ShowDate: true}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, typ)
	}
}
