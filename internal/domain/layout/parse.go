package layout

import (
	"blogcanvas/internal/domain/card"
	"blogcanvas/internal/domain/validation"
)

// Parse validates an untyped value and returns a conforming Layout.
// Cards are validated element-wise; one failing card fails the whole layout.
// userId may be absent or null. Card ids must be unique within the layout.
func Parse(v any) (*Layout, error) {
	c := &validation.Collector{}
	o, ok := validation.NewObject(c, "", v)
	if !ok {
		return nil, c.Err()
	}

	l := &Layout{}
	l.ID, _ = o.NonEmptyString("id")

	if o.Present("userId") {
		if uid, ok := o.NonEmptyString("userId"); ok {
			l.UserID = &uid
		}
	}

	if raw, ok := o.Slice("cards"); ok {
		l.Cards = parseCards(c, "cards", raw)
	}

	l.Version, _ = o.Int("version")
	l.CreatedAt, _ = o.Time("createdAt")
	l.UpdatedAt, _ = o.Time("updatedAt")

	if c.Failed() {
		return nil, c.Err()
	}
	return l, nil
}

// ParseJSON decodes data and runs Parse on the result.
func ParseJSON(data []byte) (*Layout, error) {
	v, err := validation.DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return Parse(v)
}

// ParseCards validates a bare card sequence, as stored by the repositories.
func ParseCards(v any) ([]card.Card, error) {
	c := &validation.Collector{}
	raw, ok := v.([]any)
	if !ok {
		c.Add("", validation.ReasonTypeMismatch, "expected array, got %s", validation.KindOf(v))
		return nil, c.Err()
	}

	cards := parseCards(c, "", raw)
	if c.Failed() {
		return nil, c.Err()
	}
	return cards, nil
}

// ParseCardsJSON is ParseCards over encoded bytes.
func ParseCardsJSON(data []byte) ([]card.Card, error) {
	v, err := validation.DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return ParseCards(v)
}

func parseCards(c *validation.Collector, path string, raw []any) []card.Card {
	cards := make([]card.Card, 0, len(raw))
	seen := make(map[string]int, len(raw))
	for i, item := range raw {
		itemPath := validation.Index(path, i)
		parsed, ok := card.ParseInto(c, itemPath, item)
		if !ok {
			continue
		}
		if first, dup := seen[parsed.ID]; dup {
			c.Add(validation.Join(itemPath, "id"), validation.ReasonDuplicate,
				"card id %q already used by card %d", parsed.ID, first)
			continue
		}
		seen[parsed.ID] = i
		cards = append(cards, parsed)
	}
	return cards
}
