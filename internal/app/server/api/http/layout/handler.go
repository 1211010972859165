package layout

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"blogcanvas/internal/app/server/api/http/apierr"
	"blogcanvas/internal/app/server/api/http/middleware/auth"
	"blogcanvas/internal/domain/layout"
)

type Handler struct {
	service   layout.Servicer
	log       *slog.Logger
	public    huma.Middlewares
	protected huma.Middlewares
}

// NewHandler creates the layout handler. protected must authenticate the caller.
func NewHandler(service layout.Servicer, log *slog.Logger, public, protected huma.Middlewares) *Handler {
	return &Handler{
		service:   service,
		log:       log,
		public:    public,
		protected: protected,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.getDefaultOp(), h.getDefault)
	huma.Register(api, h.getMineOp(), h.getMine)
	huma.Register(api, h.replaceOp(), h.replace)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.resetOp(), h.reset)

	huma.Register(api, h.addCardOp(), h.addCard)
	huma.Register(api, h.removeCardOp(), h.removeCard)
	huma.Register(api, h.moveCardOp(), h.moveCard)
	huma.Register(api, h.resizeCardOp(), h.resizeCard)
	huma.Register(api, h.updateConfigOp(), h.updateConfig)
	huma.Register(api, h.visibilityOp(), h.setVisibility)
	huma.Register(api, h.bringToFrontOp(), h.bringToFront)
}

func owner(ctx context.Context) (layout.Owner, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return layout.Owner{}, huma.Error401Unauthorized("Unauthorized")
	}
	return layout.Owner{UserID: userID}, nil
}

func respond(l *layout.Layout, err error) (*layoutOutput, error) {
	if err != nil {
		return nil, apierr.From(err)
	}
	return &layoutOutput{ETag: apierr.ETag(l.Version), Body: NewLayoutBody(l)}, nil
}

func (h *Handler) getDefault(ctx context.Context, _ *struct{}) (*layoutOutput, error) {
	return respond(h.service.Get(ctx, layout.Anonymous))
}

func (h *Handler) getMine(ctx context.Context, _ *struct{}) (*layoutOutput, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	return respond(h.service.Get(ctx, o))
}

func (h *Handler) replace(ctx context.Context, input *replaceInput) (*layoutOutput, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	version, err := apierr.ParseIfMatch(input.IfMatch)
	if err != nil {
		return nil, err
	}
	return respond(h.service.Replace(ctx, o, input.RawBody, version))
}

func (h *Handler) delete(ctx context.Context, _ *struct{}) (*struct{}, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.service.Delete(ctx, o); err != nil {
		return nil, apierr.From(err)
	}
	h.log.Info("layout deleted", "owner", o.Key())
	return nil, nil
}

func (h *Handler) reset(ctx context.Context, _ *struct{}) (*layoutOutput, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	return respond(h.service.Reset(ctx, o))
}

func (h *Handler) addCard(ctx context.Context, input *addCardInput) (*addCardOutput, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	version, err := apierr.ParseIfMatch(input.IfMatch)
	if err != nil {
		return nil, err
	}

	in := layout.NewCard{
		Type:    input.Body.Type,
		Size:    input.Body.Size,
		Visible: input.Body.Visible,
	}
	if input.Body.Position != nil {
		in.Position = *input.Body.Position
	}
	if input.Body.Config != nil {
		in.Config = input.Body.Config
	}

	l, c, err := h.service.AddCard(ctx, o, in, version)
	if err != nil {
		return nil, apierr.From(err)
	}
	return &addCardOutput{
		ETag: apierr.ETag(l.Version),
		Body: addCardResponse{Card: NewCardBody(c), Layout: NewLayoutBody(l)},
	}, nil
}

// cardOp runs fn with the caller's owner and the parsed If-Match version.
func (h *Handler) cardOp(ctx context.Context, header string, fn func(o layout.Owner, version int) (*layout.Layout, error)) (*layoutOutput, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	version, err := apierr.ParseIfMatch(header)
	if err != nil {
		return nil, err
	}
	return respond(fn(o, version))
}

func (h *Handler) removeCard(ctx context.Context, input *cardInput) (*layoutOutput, error) {
	return h.cardOp(ctx, input.IfMatch, func(o layout.Owner, version int) (*layout.Layout, error) {
		return h.service.RemoveCard(ctx, o, input.ID, version)
	})
}

func (h *Handler) moveCard(ctx context.Context, input *moveInput) (*layoutOutput, error) {
	return h.cardOp(ctx, input.IfMatch, func(o layout.Owner, version int) (*layout.Layout, error) {
		return h.service.MoveCard(ctx, o, input.ID, input.Body, version)
	})
}

func (h *Handler) resizeCard(ctx context.Context, input *resizeInput) (*layoutOutput, error) {
	return h.cardOp(ctx, input.IfMatch, func(o layout.Owner, version int) (*layout.Layout, error) {
		return h.service.ResizeCard(ctx, o, input.ID, input.Body.Size, version)
	})
}

func (h *Handler) updateConfig(ctx context.Context, input *configInput) (*layoutOutput, error) {
	return h.cardOp(ctx, input.IfMatch, func(o layout.Owner, version int) (*layout.Layout, error) {
		return h.service.UpdateCardConfig(ctx, o, input.ID, input.RawBody, version)
	})
}

func (h *Handler) setVisibility(ctx context.Context, input *visibilityInput) (*layoutOutput, error) {
	return h.cardOp(ctx, input.IfMatch, func(o layout.Owner, version int) (*layout.Layout, error) {
		return h.service.SetCardVisibility(ctx, o, input.ID, input.Body.Visible, version)
	})
}

func (h *Handler) bringToFront(ctx context.Context, input *cardInput) (*layoutOutput, error) {
	return h.cardOp(ctx, input.IfMatch, func(o layout.Owner, version int) (*layout.Layout, error) {
		return h.service.BringToFront(ctx, o, input.ID, version)
	})
}
