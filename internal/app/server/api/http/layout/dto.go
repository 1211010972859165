package layout

import (
	"time"

	"blogcanvas/internal/domain/card"
	"blogcanvas/internal/domain/layout"
)

// CardBody is the wire form of a card.
type CardBody struct {
	ID        string         `json:"id" format:"uuid" doc:"Card id"`
	Type      card.Type      `json:"type"`
	Size      card.Size      `json:"size"`
	Position  card.Position  `json:"position"`
	Config    map[string]any `json:"config" doc:"Type specific settings"`
	Visible   bool           `json:"visible"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// LayoutBody is the wire form of a layout.
type LayoutBody struct {
	ID        string     `json:"id"`
	UserID    *string    `json:"userId,omitempty" doc:"Owner, absent for the anonymous layout"`
	Cards     []CardBody `json:"cards"`
	Version   int        `json:"version" minimum:"1"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func NewCardBody(c card.Card) CardBody {
	cfg := map[string]any{}
	if c.Config != nil {
		cfg = c.Config.ToMap()
	}
	return CardBody{
		ID:        c.ID,
		Type:      c.Type,
		Size:      c.Size,
		Position:  c.Position,
		Config:    cfg,
		Visible:   c.Visible,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewLayoutBody(l *layout.Layout) LayoutBody {
	cards := make([]CardBody, 0, len(l.Cards))
	for _, c := range l.Cards {
		cards = append(cards, NewCardBody(c))
	}
	return LayoutBody{
		ID:        l.ID,
		UserID:    l.UserID,
		Cards:     cards,
		Version:   l.Version,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

type layoutOutput struct {
	ETag string `header:"ETag" doc:"Layout version"`
	Body LayoutBody
}

type replaceInput struct {
	IfMatch string `header:"If-Match" doc:"Expected layout version"`
	RawBody []byte `contentType:"application/json" doc:"Full layout document"`
}

type cardInput struct {
	IfMatch string `header:"If-Match" doc:"Expected layout version"`
	ID      string `path:"id" doc:"Card id"`
}

type addCardRequest struct {
	Type     card.Type      `json:"type"`
	Size     card.Size      `json:"size"`
	Position *card.Position `json:"position,omitempty" doc:"Defaults to the canvas origin"`
	Config   map[string]any `json:"config,omitempty" doc:"Omit to use the type's defaults"`
	Visible  *bool          `json:"visible,omitempty" doc:"Defaults to true"`
}

type addCardInput struct {
	IfMatch string `header:"If-Match" doc:"Expected layout version"`
	Body    addCardRequest
}

type addCardResponse struct {
	Card   CardBody   `json:"card"`
	Layout LayoutBody `json:"layout"`
}

type addCardOutput struct {
	ETag string `header:"ETag"`
	Body addCardResponse
}

type moveInput struct {
	IfMatch string `header:"If-Match" doc:"Expected layout version"`
	ID      string `path:"id" doc:"Card id"`
	Body    card.Position
}

type resizeRequest struct {
	Size card.Size `json:"size"`
}

type resizeInput struct {
	IfMatch string `header:"If-Match" doc:"Expected layout version"`
	ID      string `path:"id" doc:"Card id"`
	Body    resizeRequest
}

type configInput struct {
	IfMatch string `header:"If-Match" doc:"Expected layout version"`
	ID      string `path:"id" doc:"Card id"`
	RawBody []byte `contentType:"application/json" doc:"Config object for the card's type"`
}

type visibilityRequest struct {
	Visible bool `json:"visible"`
}

type visibilityInput struct {
	IfMatch string `header:"If-Match" doc:"Expected layout version"`
	ID      string `path:"id" doc:"Card id"`
	Body    visibilityRequest
}
