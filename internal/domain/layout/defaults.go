package layout

import (
	"time"

	"github.com/google/uuid"

	"blogcanvas/internal/domain/card"
)

type defaultSlot struct {
	typ  card.Type
	size card.Size
	pos  card.Position
}

// defaultSlots places one card of each type on the initial canvas.
var defaultSlots = []defaultSlot{
	{typ: card.TypeProfile, size: card.SizeMedium, pos: card.Position{X: 40, Y: 40, Z: 1}},
	{typ: card.TypeStats, size: card.SizeWide, pos: card.Position{X: 380, Y: 40, Z: 2}},
	{typ: card.TypeCategories, size: card.SizeTall, pos: card.Position{X: 40, Y: 380, Z: 3}},
	{typ: card.TypeRecentPosts, size: card.SizeLarge, pos: card.Position{X: 380, Y: 380, Z: 4}},
}

// DefaultCards builds the initial card set at now.
func DefaultCards(now time.Time) []card.Card {
	cards := make([]card.Card, 0, len(defaultSlots))
	for _, slot := range defaultSlots {
		c, err := card.New(slot.typ, slot.size, slot.pos, nil, true, now)
		if err != nil {
			// defaults are static; a failure here is a programming error
			panic("layout: invalid default card: " + err.Error())
		}
		cards = append(cards, c)
	}
	return cards
}

// Default builds a fresh version-1 layout for owner.
func Default(owner Owner, now time.Time) *Layout {
	now = now.UTC()
	return &Layout{
		ID:        uuid.NewString(),
		UserID:    owner.UserIDPtr(),
		Cards:     DefaultCards(now),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
