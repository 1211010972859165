package layout

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogcanvas/internal/domain/card"
	"blogcanvas/internal/domain/validation"
)

func fixtureLayout(t *testing.T) *Layout {
	t.Helper()
	l := Default(Owner{UserID: "u1"}, testNow)
	require.Len(t, l.Cards, 4)
	return l
}

func TestMutations_BumpVersionAndTimestamps(t *testing.T) {
	later := testNow.Add(time.Hour)

	tests := []struct {
		name  string
		apply func(l *Layout, id string) error
	}{
		{"move", func(l *Layout, id string) error { return l.MoveCard(id, card.Position{X: 5, Y: 6, Z: 7}, later) }},
		{"resize", func(l *Layout, id string) error { return l.ResizeCard(id, card.SizeSmall, later) }},
		{"config", func(l *Layout, id string) error {
			return l.SetCardConfig(id, card.ProfileConfig{ShowBio: true}, later)
		}},
		{"hide", func(l *Layout, id string) error { return l.SetCardVisibility(id, false, later) }},
		{"front", func(l *Layout, id string) error { return l.BringToFront(id, later) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := fixtureLayout(t)
			id := l.Cards[0].ID

			require.NoError(t, tt.apply(l, id))
			assert.Equal(t, 2, l.Version)
			assert.Equal(t, later, l.UpdatedAt)

			c, ok := l.Card(id)
			require.True(t, ok)
			assert.Equal(t, later, c.UpdatedAt)
			assert.Equal(t, testNow, c.CreatedAt)
			assert.NoError(t, c.Validate())

			// other cards untouched
			assert.Equal(t, testNow, l.Cards[1].UpdatedAt)
		})
	}
}

func TestMutations_UnknownCard(t *testing.T) {
	l := fixtureLayout(t)

	assert.ErrorIs(t, l.MoveCard("nope", card.Position{}, testNow), ErrCardNotFound)
	assert.ErrorIs(t, l.ResizeCard("nope", card.SizeSmall, testNow), ErrCardNotFound)
	assert.ErrorIs(t, l.SetCardVisibility("nope", true, testNow), ErrCardNotFound)
	assert.ErrorIs(t, l.BringToFront("nope", testNow), ErrCardNotFound)
	assert.ErrorIs(t, l.RemoveCard("nope", testNow), ErrCardNotFound)
	assert.Equal(t, 1, l.Version)
}

func TestAddCard(t *testing.T) {
	l := fixtureLayout(t)
	c, err := card.New(card.TypeStats, card.SizeSmall, card.Position{Z: 9}, nil, true, testNow)
	require.NoError(t, err)

	require.NoError(t, l.AddCard(c, testNow))
	assert.Len(t, l.Cards, 5)
	assert.Equal(t, 2, l.Version)

	assert.ErrorIs(t, l.AddCard(c, testNow), ErrDuplicateCard)

	invalid := c
	invalid.ID = "other"
	invalid.Size = "huge"
	assert.Error(t, l.AddCard(invalid, testNow))
	assert.Len(t, l.Cards, 5)
}

func TestRemoveCard_KeepsOrder(t *testing.T) {
	l := fixtureLayout(t)
	ids := []string{l.Cards[0].ID, l.Cards[2].ID, l.Cards[3].ID}

	require.NoError(t, l.RemoveCard(l.Cards[1].ID, testNow))
	require.Len(t, l.Cards, 3)
	for i, id := range ids {
		assert.Equal(t, id, l.Cards[i].ID)
	}
	assert.Equal(t, 2, l.Version)
}

func TestRemoveCard_DoesNotAliasClone(t *testing.T) {
	l := fixtureLayout(t)
	cp := l.Clone()
	first := l.Cards[0].ID

	require.NoError(t, cp.RemoveCard(first, testNow))
	assert.Equal(t, first, l.Cards[0].ID)
	assert.Len(t, l.Cards, 4)
}

func TestClone_CopiesStatsMetrics(t *testing.T) {
	l := fixtureLayout(t)
	stats := l.Cards[1]
	require.Equal(t, card.TypeStats, stats.Type)
	require.NoError(t, l.SetCardConfig(stats.ID, card.StatsConfig{
		Metrics: []card.Metric{card.MetricPosts, card.MetricViews},
	}, testNow))

	cp := l.Clone()
	require.Equal(t, l, cp)

	cp.Cards[1].Config.(card.StatsConfig).Metrics[0] = card.MetricComments
	assert.Equal(t, card.MetricPosts, l.Cards[1].Config.(card.StatsConfig).Metrics[0])
}

func TestMoveCard_RejectsNonFinite(t *testing.T) {
	l := fixtureLayout(t)
	err := l.MoveCard(l.Cards[0].ID, card.Position{X: math.Inf(1)}, testNow)
	assert.Error(t, err)
	assert.Equal(t, 1, l.Version)
}

func TestResizeCard_Invalid(t *testing.T) {
	l := fixtureLayout(t)
	err := l.ResizeCard(l.Cards[0].ID, "huge", testNow)
	requireFieldError(t, err, "size", validation.ReasonEnum)
	assert.NotErrorIs(t, err, card.ErrUnsupportedType)
	assert.Contains(t, err.Error(), `got "huge"`)
	assert.Equal(t, 1, l.Version)
}

func TestSetCardConfig_Mismatch(t *testing.T) {
	l := fixtureLayout(t)
	err := l.SetCardConfig(l.Cards[0].ID, card.RecentPostsConfig{Limit: 3}, testNow)
	assert.ErrorIs(t, err, ErrConfigMismatch)

	stats := l.Cards[1]
	require.Equal(t, card.TypeStats, stats.Type)
	err = l.SetCardConfig(stats.ID, card.StatsConfig{Metrics: []card.Metric{card.MetricViews}}, testNow)
	require.NoError(t, err)
	got, _ := l.Card(stats.ID)
	assert.Equal(t, card.StatsConfig{Metrics: []card.Metric{card.MetricViews}}, got.Config)
}

func TestBringToFront(t *testing.T) {
	l := fixtureLayout(t)
	first := l.Cards[0].ID

	require.NoError(t, l.BringToFront(first, testNow))
	stacked := l.Stacked()
	assert.Equal(t, first, stacked[len(stacked)-1].ID)
	assert.Equal(t, 5.0, l.TopZ())
}

func TestStacked_StableOnTies(t *testing.T) {
	l := fixtureLayout(t)
	for i := range l.Cards {
		l.Cards[i].Position.Z = 1
	}
	l.Cards[2].Position.Z = 0

	stacked := l.Stacked()
	assert.Equal(t, l.Cards[2].ID, stacked[0].ID)
	assert.Equal(t, l.Cards[0].ID, stacked[1].ID)
	assert.Equal(t, l.Cards[1].ID, stacked[2].ID)
	assert.Equal(t, l.Cards[3].ID, stacked[3].ID)
}

func TestVisibleCards(t *testing.T) {
	l := fixtureLayout(t)
	require.NoError(t, l.SetCardVisibility(l.Cards[1].ID, false, testNow))

	visible := l.VisibleCards()
	assert.Len(t, visible, 3)
	for _, c := range visible {
		assert.True(t, c.Visible)
	}
	assert.Len(t, l.Cards, 4)
}

func TestBounds(t *testing.T) {
	assert.Equal(t, Bounds{}, (&Layout{}).Bounds())

	l := fixtureLayout(t)
	b := l.Bounds()
	// stats (wide) reaches x=980, categories (tall) reaches y=980
	assert.Equal(t, Bounds{MinX: 40, MinY: 40, MaxX: 980, MaxY: 980}, b)
	assert.Equal(t, 940.0, b.Width())
}

func TestReplaceCards(t *testing.T) {
	l := fixtureLayout(t)
	cards := DefaultCards(testNow)

	require.NoError(t, l.ReplaceCards(cards[:2], testNow))
	assert.Len(t, l.Cards, 2)
	assert.Equal(t, 2, l.Version)

	err := l.ReplaceCards([]card.Card{cards[0], cards[0]}, testNow)
	assert.ErrorIs(t, err, ErrDuplicateCard)
	assert.Len(t, l.Cards, 2)
}
