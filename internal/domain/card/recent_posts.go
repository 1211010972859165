package card

import (
	"fmt"

	"blogcanvas/internal/domain/validation"
)

const (
	MinRecentPostsLimit = 1
	MaxRecentPostsLimit = 20
)

type RecentPostsConfig struct {
	Limit       int  `json:"limit"`
	ShowExcerpt bool `json:"showExcerpt"`
	ShowDate    bool `json:"showDate"`
}

func (RecentPostsConfig) GetType() Type {
	return TypeRecentPosts
}

func (c RecentPostsConfig) Validate() error {
	if c.Limit < MinRecentPostsLimit || c.Limit > MaxRecentPostsLimit {
		return validation.NewError("limit", validation.ReasonRange,
			fmt.Sprintf("must be between %d and %d, got %d", MinRecentPostsLimit, MaxRecentPostsLimit, c.Limit))
	}
	return nil
}

func (c RecentPostsConfig) ToMap() map[string]any {
	return map[string]any{
		"limit":       c.Limit,
		"showExcerpt": c.ShowExcerpt,
		"showDate":    c.ShowDate,
	}
}

// ParseRecentPostsConfig checks the recent posts shape; limit is bounded to [1,20].
func ParseRecentPostsConfig(v any) (RecentPostsConfig, error) {
	c := &validation.Collector{}
	o, ok := validation.NewObject(c, "", v)
	if !ok {
		return RecentPostsConfig{}, c.Err()
	}

	limit, _ := o.IntRange("limit", MinRecentPostsLimit, MaxRecentPostsLimit)
	excerpt, _ := o.Bool("showExcerpt")
	date, _ := o.Bool("showDate")
	if c.Failed() {
		return RecentPostsConfig{}, c.Err()
	}

	return RecentPostsConfig{Limit: limit, ShowExcerpt: excerpt, ShowDate: date}, nil
}
