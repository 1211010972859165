package card

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blogcanvas/internal/domain/validation"
)

// Card is a single placeable unit of dashboard content.
// Config always holds the variant matching Type.
type Card struct {
	ID        string
	Type      Type
	Size      Size
	Position  Position
	Config    Config
	Visible   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a card with a fresh id. A nil cfg means the type's default config.
func New(typ Type, size Size, pos Position, cfg Config, visible bool, now time.Time) (Card, error) {
	if cfg == nil {
		var err error
		cfg, err = DefaultConfig(typ)
		if err != nil {
			return Card{}, err
		}
	}

	now = now.UTC()
	c := Card{
		ID:        uuid.NewString(),
		Type:      typ,
		Size:      size,
		Position:  pos,
		Config:    cfg,
		Visible:   visible,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return Card{}, err
	}
	return c, nil
}

// Validate checks an already typed card. It is the typed counterpart of Parse.
func (c Card) Validate() error {
	col := &validation.Collector{}
	if c.ID == "" {
		col.Add("id", validation.ReasonMissing, "must not be empty")
	}
	if !c.Type.IsValid() {
		col.Add("type", validation.ReasonEnum, "must be one of %v, got %q", typeNames(), c.Type)
	}
	if !c.Size.IsValid() {
		col.Add("size", validation.ReasonEnum, "must be one of %v, got %q", sizeNames(), c.Size)
	}
	col.Merge("position", c.Position.Validate())
	switch {
	case c.Config == nil:
		col.Add("config", validation.ReasonMissing, "is required")
	case c.Type.IsValid() && c.Config.GetType() != c.Type:
		col.Add("config", validation.ReasonTypeMismatch, "%s config on a %s card", c.Config.GetType(), c.Type)
	default:
		col.Merge("config", c.Config.Validate())
	}
	if c.CreatedAt.IsZero() {
		col.Add("createdAt", validation.ReasonMissing, "is required")
	}
	if c.UpdatedAt.IsZero() {
		col.Add("updatedAt", validation.ReasonMissing, "is required")
	}
	return col.Err()
}

// CheckConfig reports whether cfg may be attached to a card of this type.
func (c Card) CheckConfig(cfg Config) error {
	if cfg == nil || cfg.GetType() != c.Type {
		return fmt.Errorf("%w: %s card", ErrConfigMismatch, c.Type)
	}
	return cfg.Validate()
}

// Clone returns a copy of c whose config shares no memory with c.
func (c Card) Clone() Card {
	if s, ok := c.Config.(StatsConfig); ok && s.Metrics != nil {
		s.Metrics = append(make([]Metric, 0, len(s.Metrics)), s.Metrics...)
		c.Config = s
	}
	return c
}

// Width and Height are the nominal footprint of the card's size.
func (c Card) Width() int {
	w, _ := c.Size.Dimensions()
	return w
}

func (c Card) Height() int {
	_, h := c.Size.Dimensions()
	return h
}

type wire struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Size      Size      `json:"size"`
	Position  Position  `json:"position"`
	Config    Config    `json:"config"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire{
		ID:        c.ID,
		Type:      c.Type,
		Size:      c.Size,
		Position:  c.Position,
		Config:    c.Config,
		Visible:   c.Visible,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	})
}

// UnmarshalJSON runs the structural validator, so a decoded Card is always conforming.
func (c *Card) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ToMap renders the card as the untyped value Parse accepts.
func (c Card) ToMap() map[string]any {
	var cfg map[string]any
	if c.Config != nil {
		cfg = c.Config.ToMap()
	}
	return map[string]any{
		"id":   c.ID,
		"type": string(c.Type),
		"size": string(c.Size),
		"position": map[string]any{
			"x": c.Position.X,
			"y": c.Position.Y,
			"z": c.Position.Z,
		},
		"config":    cfg,
		"visible":   c.Visible,
		"createdAt": c.CreatedAt,
		"updatedAt": c.UpdatedAt,
	}
}
