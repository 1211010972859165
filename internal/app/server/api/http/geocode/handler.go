package geocode

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"blogcanvas/internal/app/server/api/http/apierr"
	"blogcanvas/internal/domain/geocode"
)

const cacheControl = "public, max-age=3600"

type Handler struct {
	service    geocode.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service geocode.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.searchOp(), h.search)
}

func (h *Handler) search(ctx context.Context, input *searchInput) (*searchOutput, error) {
	places, err := h.service.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, apierr.From(err)
	}
	return &searchOutput{
		CacheControl: cacheControl,
		Body:         searchResponse{Places: places},
	}, nil
}
