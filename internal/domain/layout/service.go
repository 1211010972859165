package layout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"blogcanvas/internal/domain/card"
	"blogcanvas/internal/domain/validation"
)

// AnyVersion disables the optimistic version check of a mutation.
const AnyVersion = 0

// NewCard describes a card to add. A nil Config selects the type's default,
// a nil Visible means visible.
type NewCard struct {
	Type     card.Type
	Size     card.Size
	Position card.Position
	Config   any
	Visible  *bool
}

// Servicer is the layout use-case surface consumed by the transport layers.
type Servicer interface {
	Get(ctx context.Context, owner Owner) (*Layout, error)
	Replace(ctx context.Context, owner Owner, raw []byte, ifVersion int) (*Layout, error)
	AddCard(ctx context.Context, owner Owner, in NewCard, ifVersion int) (*Layout, card.Card, error)
	RemoveCard(ctx context.Context, owner Owner, cardID string, ifVersion int) (*Layout, error)
	MoveCard(ctx context.Context, owner Owner, cardID string, pos card.Position, ifVersion int) (*Layout, error)
	ResizeCard(ctx context.Context, owner Owner, cardID string, size card.Size, ifVersion int) (*Layout, error)
	UpdateCardConfig(ctx context.Context, owner Owner, cardID string, raw []byte, ifVersion int) (*Layout, error)
	SetCardVisibility(ctx context.Context, owner Owner, cardID string, visible bool, ifVersion int) (*Layout, error)
	BringToFront(ctx context.Context, owner Owner, cardID string, ifVersion int) (*Layout, error)
	Reset(ctx context.Context, owner Owner) (*Layout, error)
	Delete(ctx context.Context, owner Owner) error
}

// Service implements the layout use cases on top of a Repository.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

var _ Servicer = (*Service)(nil)

// NewService creates a new layout service
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "layout_service"),
		now:  time.Now,
	}
}

// Get returns the owner's layout, creating the default one on first access.
// A stored layout that no longer validates is replaced by a fresh default in
// the response only; storage is left untouched until the next reset.
func (s *Service) Get(ctx context.Context, owner Owner) (*Layout, error) {
	l, err := s.load(ctx, owner)
	if errors.Is(err, ErrCorrupt) {
		s.log.Warn("stored layout failed validation, serving default", "owner", owner.Key(), "error", err)
		return Default(owner, s.now()), nil
	}
	return l, err
}

func (s *Service) load(ctx context.Context, owner Owner) (*Layout, error) {
	l, err := s.repo.Get(ctx, owner)
	switch {
	case err == nil:
		return l, nil
	case errors.Is(err, validation.ErrStructural):
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	case !errors.Is(err, ErrNotFound):
		s.log.Error("failed to get layout", "owner", owner.Key(), "error", err)
		return nil, fmt.Errorf("get layout: %w", err)
	}

	l = Default(owner, s.now())
	if err := s.repo.Create(ctx, l); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			// lost a race with a concurrent first access
			return s.repo.Get(ctx, owner)
		}
		s.log.Error("failed to create default layout", "owner", owner.Key(), "error", err)
		return nil, fmt.Errorf("create default layout: %w", err)
	}
	s.log.Info("default layout created", "owner", owner.Key(), "layout_id", l.ID)
	return l, nil
}

// Replace swaps the owner's cards for those of an encoded layout. The stored
// id, owner and creation time are kept.
func (s *Service) Replace(ctx context.Context, owner Owner, raw []byte, ifVersion int) (*Layout, error) {
	incoming, err := ParseJSON(raw)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, owner, ifVersion, "replace layout", func(l *Layout, now time.Time) error {
		return l.ReplaceCards(incoming.Cards, now)
	})
}

func (s *Service) AddCard(ctx context.Context, owner Owner, in NewCard, ifVersion int) (*Layout, card.Card, error) {
	c, err := s.buildCard(in)
	if err != nil {
		return nil, card.Card{}, err
	}
	l, err := s.mutate(ctx, owner, ifVersion, "add card", func(l *Layout, now time.Time) error {
		c.CreatedAt, c.UpdatedAt = now.UTC(), now.UTC()
		return l.AddCard(c, now)
	})
	if err != nil {
		return nil, card.Card{}, err
	}
	return l, c, nil
}

func (s *Service) buildCard(in NewCard) (card.Card, error) {
	if !in.Type.IsValid() {
		return card.Card{}, validation.NewError("type", validation.ReasonEnum,
			fmt.Sprintf("must be one of %v, got %q", card.Types(), in.Type))
	}

	var cfg card.Config
	if in.Config != nil {
		var err error
		cfg, err = card.ParseConfig(in.Type, in.Config)
		if err != nil {
			return card.Card{}, validation.Prefix("config", err)
		}
	}

	visible := true
	if in.Visible != nil {
		visible = *in.Visible
	}
	return card.New(in.Type, in.Size, in.Position, cfg, visible, s.now())
}

func (s *Service) RemoveCard(ctx context.Context, owner Owner, cardID string, ifVersion int) (*Layout, error) {
	return s.mutate(ctx, owner, ifVersion, "remove card", func(l *Layout, now time.Time) error {
		return l.RemoveCard(cardID, now)
	})
}

func (s *Service) MoveCard(ctx context.Context, owner Owner, cardID string, pos card.Position, ifVersion int) (*Layout, error) {
	return s.mutate(ctx, owner, ifVersion, "move card", func(l *Layout, now time.Time) error {
		return l.MoveCard(cardID, pos, now)
	})
}

func (s *Service) ResizeCard(ctx context.Context, owner Owner, cardID string, size card.Size, ifVersion int) (*Layout, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return s.mutate(ctx, owner, ifVersion, "resize card", func(l *Layout, now time.Time) error {
		return l.ResizeCard(cardID, size, now)
	})
}

// UpdateCardConfig validates raw against the type of the addressed card.
func (s *Service) UpdateCardConfig(ctx context.Context, owner Owner, cardID string, raw []byte, ifVersion int) (*Layout, error) {
	v, err := validation.DecodeJSON(raw)
	if err != nil {
		return nil, validation.Prefix("config", err)
	}
	return s.mutate(ctx, owner, ifVersion, "update card config", func(l *Layout, now time.Time) error {
		c, ok := l.Card(cardID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
		}
		cfg, err := card.ParseConfig(c.Type, v)
		if err != nil {
			return validation.Prefix("config", err)
		}
		return l.SetCardConfig(cardID, cfg, now)
	})
}

func (s *Service) SetCardVisibility(ctx context.Context, owner Owner, cardID string, visible bool, ifVersion int) (*Layout, error) {
	return s.mutate(ctx, owner, ifVersion, "set card visibility", func(l *Layout, now time.Time) error {
		return l.SetCardVisibility(cardID, visible, now)
	})
}

func (s *Service) BringToFront(ctx context.Context, owner Owner, cardID string, ifVersion int) (*Layout, error) {
	return s.mutate(ctx, owner, ifVersion, "bring card to front", func(l *Layout, now time.Time) error {
		return l.BringToFront(cardID, now)
	})
}

// Reset restores the default cards. A stored layout that no longer validates
// is dropped and recreated.
func (s *Service) Reset(ctx context.Context, owner Owner) (*Layout, error) {
	l, err := s.mutate(ctx, owner, AnyVersion, "reset layout", func(l *Layout, now time.Time) error {
		return l.ReplaceCards(DefaultCards(now), now)
	})
	if !errors.Is(err, ErrCorrupt) {
		return l, err
	}

	s.log.Warn("recreating invalid stored layout", "owner", owner.Key(), "error", err)
	if err := s.repo.Delete(ctx, owner); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("reset layout: %w", err)
	}
	l = Default(owner, s.now())
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("reset layout: %w", err)
	}
	return l, nil
}

func (s *Service) Delete(ctx context.Context, owner Owner) error {
	if err := s.repo.Delete(ctx, owner); err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("failed to delete layout", "owner", owner.Key(), "error", err)
		}
		return fmt.Errorf("delete layout: %w", err)
	}
	return nil
}

// mutate loads the owner's layout, applies fn to a copy and stores it under
// a compare-and-set on the loaded version.
func (s *Service) mutate(ctx context.Context, owner Owner, ifVersion int, op string, fn func(l *Layout, now time.Time) error) (*Layout, error) {
	current, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if ifVersion != AnyVersion && current.Version != ifVersion {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrVersionConflict, current.Version, ifVersion)
	}

	next := current.Clone()
	if err := fn(next, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, next, current.Version); err != nil {
		if !errors.Is(err, ErrVersionConflict) {
			s.log.Error("failed to store layout", "op", op, "owner", owner.Key(), "error", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("layout updated", "op", op, "owner", owner.Key(), "version", next.Version)
	return next, nil
}
