package layout

import (
	"encoding/json"
	"sort"
	"time"

	"blogcanvas/internal/domain/card"
)

// DefaultOwnerKey is the storage key of the anonymous layout.
const DefaultOwnerKey = "default"

// Owner identifies whose layout is addressed. The zero value is the anonymous/default layout.
type Owner struct {
	UserID string
}

// Anonymous is the owner of the default layout.
var Anonymous = Owner{}

func (o Owner) IsAnonymous() bool { return o.UserID == "" }

// Key returns the storage key for the owner.
func (o Owner) Key() string {
	if o.IsAnonymous() {
		return DefaultOwnerKey
	}
	return o.UserID
}

// UserIDPtr returns nil for the anonymous owner.
func (o Owner) UserIDPtr() *string {
	if o.IsAnonymous() {
		return nil
	}
	id := o.UserID
	return &id
}

// Layout is a versioned, optionally owned collection of cards.
type Layout struct {
	ID        string
	UserID    *string
	Cards     []card.Card
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Owner returns the layout's owner.
func (l *Layout) Owner() Owner {
	if l.UserID == nil {
		return Anonymous
	}
	return Owner{UserID: *l.UserID}
}

// Card finds a card by id.
func (l *Layout) Card(id string) (card.Card, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.Cards[i], true
	}
	return card.Card{}, false
}

func (l *Layout) indexOf(id string) int {
	for i := range l.Cards {
		if l.Cards[i].ID == id {
			return i
		}
	}
	return -1
}

// Stacked returns the cards in draw order: ascending z, ties in insertion order.
func (l *Layout) Stacked() []card.Card {
	out := make([]card.Card, len(l.Cards))
	copy(out, l.Cards)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position.Z < out[j].Position.Z
	})
	return out
}

// VisibleCards returns the visible cards in draw order.
func (l *Layout) VisibleCards() []card.Card {
	stacked := l.Stacked()
	out := stacked[:0]
	for _, c := range stacked {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// Bounds is the canvas rectangle covering every card's nominal footprint.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Bounds computes the extent of the cards. An empty layout has zero bounds.
func (l *Layout) Bounds() Bounds {
	if len(l.Cards) == 0 {
		return Bounds{}
	}
	first := l.Cards[0]
	b := Bounds{
		MinX: first.Position.X,
		MinY: first.Position.Y,
		MaxX: first.Position.X + float64(first.Width()),
		MaxY: first.Position.Y + float64(first.Height()),
	}
	for _, c := range l.Cards[1:] {
		b.MinX = min(b.MinX, c.Position.X)
		b.MinY = min(b.MinY, c.Position.Y)
		b.MaxX = max(b.MaxX, c.Position.X+float64(c.Width()))
		b.MaxY = max(b.MaxY, c.Position.Y+float64(c.Height()))
	}
	return b
}

// TopZ returns the highest z in use, or 0 for an empty layout.
func (l *Layout) TopZ() float64 {
	var top float64
	for i, c := range l.Cards {
		if i == 0 || c.Position.Z > top {
			top = c.Position.Z
		}
	}
	return top
}

// Clone returns a deep copy; mutations on the copy do not affect l.
func (l *Layout) Clone() *Layout {
	cp := *l
	if l.UserID != nil {
		id := *l.UserID
		cp.UserID = &id
	}
	cp.Cards = make([]card.Card, len(l.Cards))
	for i, c := range l.Cards {
		cp.Cards[i] = c.Clone()
	}
	return &cp
}

type wire struct {
	ID        string      `json:"id"`
	UserID    *string     `json:"userId,omitempty"`
	Cards     []card.Card `json:"cards"`
	Version   int         `json:"version"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (l Layout) MarshalJSON() ([]byte, error) {
	cards := l.Cards
	if cards == nil {
		cards = []card.Card{}
	}
	return json.Marshal(wire{
		ID:        l.ID,
		UserID:    l.UserID,
		Cards:     cards,
		Version:   l.Version,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	})
}

// UnmarshalJSON runs the structural validator.
func (l *Layout) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*l = *parsed
	return nil
}

// ToMap renders the layout as the untyped value Parse accepts.
func (l *Layout) ToMap() map[string]any {
	cards := make([]any, len(l.Cards))
	for i, c := range l.Cards {
		cards[i] = c.ToMap()
	}
	m := map[string]any{
		"id":        l.ID,
		"cards":     cards,
		"version":   l.Version,
		"createdAt": l.CreatedAt,
		"updatedAt": l.UpdatedAt,
	}
	if l.UserID != nil {
		m["userId"] = *l.UserID
	}
	return m
}
