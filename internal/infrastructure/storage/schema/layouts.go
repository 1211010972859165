// Package schema holds the persisted shape of domain objects shared by the SQL repositories.
package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"blogcanvas/internal/domain/card"
	"blogcanvas/internal/domain/layout"
)

const LayoutsTable = "layouts"

// Columns of the layouts table.
const (
	LayoutID        = "id"
	LayoutOwnerKey  = "owner_key"
	LayoutUserID    = "user_id"
	LayoutVersion   = "version"
	LayoutCards     = "cards"
	LayoutCreatedAt = "created_at"
	LayoutUpdatedAt = "updated_at"
)

// LayoutColumns lists every column in scan order.
var LayoutColumns = []string{
	LayoutID, LayoutOwnerKey, LayoutUserID, LayoutVersion, LayoutCards, LayoutCreatedAt, LayoutUpdatedAt,
}

// LayoutRow is one row of the layouts table. Cards hold the JSON card array.
type LayoutRow struct {
	ID        string
	OwnerKey  string
	UserID    *string
	Version   int
	Cards     []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FromLayout encodes l for storage.
func FromLayout(l *layout.Layout) (LayoutRow, error) {
	cards := l.Cards
	if cards == nil {
		cards = []card.Card{}
	}
	data, err := json.Marshal(cards)
	if err != nil {
		return LayoutRow{}, fmt.Errorf("encode cards: %w", err)
	}
	return LayoutRow{
		ID:        l.ID,
		OwnerKey:  l.Owner().Key(),
		UserID:    l.UserID,
		Version:   l.Version,
		Cards:     data,
		CreatedAt: l.CreatedAt.UTC(),
		UpdatedAt: l.UpdatedAt.UTC(),
	}, nil
}

// Layout decodes the row. Stored cards go through the structural validator,
// so a corrupted row surfaces as a validation error.
func (r LayoutRow) Layout() (*layout.Layout, error) {
	cards, err := layout.ParseCardsJSON(r.Cards)
	if err != nil {
		return nil, fmt.Errorf("decode cards of layout %s: %w", r.ID, err)
	}
	return &layout.Layout{
		ID:        r.ID,
		UserID:    r.UserID,
		Cards:     cards,
		Version:   r.Version,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}, nil
}
