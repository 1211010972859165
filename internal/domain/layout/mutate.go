package layout

import (
	"fmt"
	"time"

	"blogcanvas/internal/domain/card"
	"blogcanvas/internal/domain/validation"
)

// touch records a structural change at now.
func (l *Layout) touch(now time.Time) {
	l.UpdatedAt = now.UTC()
	l.Version++
}

// mutateCard applies fn to the card with id and stamps both the card and the layout.
func (l *Layout) mutateCard(id string, now time.Time, fn func(c *card.Card) error) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}

	updated := l.Cards[i]
	if err := fn(&updated); err != nil {
		return err
	}
	updated.UpdatedAt = now.UTC()
	l.Cards[i] = updated
	l.touch(now)
	return nil
}

// AddCard appends c. The card must be valid and its id unused.
func (l *Layout) AddCard(c card.Card, now time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if l.indexOf(c.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateCard, c.ID)
	}
	l.Cards = append(l.Cards, c)
	l.touch(now)
	return nil
}

// RemoveCard drops the card with id, keeping the order of the rest.
func (l *Layout) RemoveCard(id string, now time.Time) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}
	l.Cards = append(l.Cards[:i:i], l.Cards[i+1:]...)
	l.touch(now)
	return nil
}

func (l *Layout) MoveCard(id string, pos card.Position, now time.Time) error {
	if err := pos.Validate(); err != nil {
		return err
	}
	return l.mutateCard(id, now, func(c *card.Card) error {
		c.Position = pos
		return nil
	})
}

func (l *Layout) ResizeCard(id string, size card.Size, now time.Time) error {
	if err := checkSize(size); err != nil {
		return err
	}
	return l.mutateCard(id, now, func(c *card.Card) error {
		c.Size = size
		return nil
	})
}

func checkSize(size card.Size) error {
	if size.IsValid() {
		return nil
	}
	return validation.NewError("size", validation.ReasonEnum,
		fmt.Sprintf("must be one of %v, got %q", card.Sizes(), size))
}

// SetCardConfig replaces the config; the variant must match the card's type.
func (l *Layout) SetCardConfig(id string, cfg card.Config, now time.Time) error {
	return l.mutateCard(id, now, func(c *card.Card) error {
		if err := c.CheckConfig(cfg); err != nil {
			return err
		}
		c.Config = cfg
		return nil
	})
}

func (l *Layout) SetCardVisibility(id string, visible bool, now time.Time) error {
	return l.mutateCard(id, now, func(c *card.Card) error {
		c.Visible = visible
		return nil
	})
}

// BringToFront raises the card above every other card.
func (l *Layout) BringToFront(id string, now time.Time) error {
	top := l.TopZ()
	return l.mutateCard(id, now, func(c *card.Card) error {
		c.Position.Z = top + 1
		return nil
	})
}

// ReplaceCards swaps the whole card set, e.g. on reset or import.
func (l *Layout) ReplaceCards(cards []card.Card, now time.Time) error {
	seen := make(map[string]bool, len(cards))
	for _, c := range cards {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("card %s: %w", c.ID, err)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c.ID)
		}
		seen[c.ID] = true
	}
	l.Cards = append([]card.Card(nil), cards...)
	l.touch(now)
	return nil
}
