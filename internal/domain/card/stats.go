package card

import (
	"encoding/json"

	"blogcanvas/internal/domain/validation"
)

// Metric is a counter the stats card can display.
type Metric string

const (
	MetricPosts    Metric = "posts"
	MetricViews    Metric = "views"
	MetricComments Metric = "comments"
)

func (m Metric) IsValid() bool {
	switch m {
	case MetricPosts, MetricViews, MetricComments:
		return true
	}
	return false
}

func (m Metric) String() string { return string(m) }

var metricNames = []string{string(MetricPosts), string(MetricViews), string(MetricComments)}

// StatsConfig lists the metrics shown, in display order, without duplicates.
type StatsConfig struct {
	Metrics []Metric `json:"metrics"`
}

func (StatsConfig) GetType() Type {
	return TypeStats
}

func (c StatsConfig) Validate() error {
	col := &validation.Collector{}
	for i, m := range c.Metrics {
		if !m.IsValid() {
			col.Add(validation.Index("metrics", i), validation.ReasonEnum, "must be one of %v, got %q", metricNames, m)
		}
	}
	return col.Err()
}

func (c StatsConfig) ToMap() map[string]any {
	metrics := make([]any, len(c.Metrics))
	for i, m := range c.Metrics {
		metrics[i] = string(m)
	}
	return map[string]any{"metrics": metrics}
}

// MarshalJSON keeps an empty metric list as [] so the payload re-validates.
func (c StatsConfig) MarshalJSON() ([]byte, error) {
	metrics := c.Metrics
	if metrics == nil {
		metrics = []Metric{}
	}
	return json.Marshal(struct {
		Metrics []Metric `json:"metrics"`
	}{Metrics: metrics})
}

// ParseStatsConfig checks the stats shape. Repeated metrics are accepted and
// collapsed to their first occurrence.
func ParseStatsConfig(v any) (StatsConfig, error) {
	c := &validation.Collector{}
	o, ok := validation.NewObject(c, "", v)
	if !ok {
		return StatsConfig{}, c.Err()
	}

	raw, ok := o.Slice("metrics")
	if !ok {
		return StatsConfig{}, c.Err()
	}

	metrics := make([]Metric, 0, len(raw))
	seen := make(map[Metric]bool, len(raw))
	for i, item := range raw {
		path := validation.Index("metrics", i)
		s, ok := item.(string)
		if !ok {
			c.Add(path, validation.ReasonTypeMismatch, "expected string, got %s", validation.KindOf(item))
			continue
		}
		m := Metric(s)
		if !m.IsValid() {
			c.Add(path, validation.ReasonEnum, "must be one of %v, got %q", metricNames, s)
			continue
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		metrics = append(metrics, m)
	}
	if c.Failed() {
		return StatsConfig{}, c.Err()
	}

	return StatsConfig{Metrics: metrics}, nil
}
