package validate

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"blogcanvas/internal/app/server/api/http/apierr"
	layoutAPI "blogcanvas/internal/app/server/api/http/layout"
	"blogcanvas/internal/domain/card"
	"blogcanvas/internal/domain/layout"
	"blogcanvas/internal/domain/validation"
)

type Handler struct {
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.cardOp(), h.validateCard)
	huma.Register(api, h.layoutOp(), h.validateLayout)
	huma.Register(api, h.configOp(), h.validateConfig)
}

// report turns a validator result into a Report. Errors other than
// structural ones are returned to the caller.
func report(err error) (Report, error) {
	if err == nil {
		return Report{Valid: true, Errors: []validation.FieldError{}}, nil
	}
	ve, ok := validation.AsError(err)
	if !ok {
		return Report{}, apierr.From(err)
	}
	return Report{Errors: ve.Errors}, nil
}

func (h *Handler) validateCard(_ context.Context, input *rawInput) (*output, error) {
	c, err := card.ParseJSON(input.RawBody)
	r, err := report(err)
	if err != nil {
		return nil, err
	}
	out := &output{Body: r}
	if r.Valid {
		body := layoutAPI.NewCardBody(c)
		out.Body.Card = &body
	}
	return out, nil
}

func (h *Handler) validateLayout(_ context.Context, input *rawInput) (*output, error) {
	l, err := layout.ParseJSON(input.RawBody)
	r, err := report(err)
	if err != nil {
		return nil, err
	}
	out := &output{Body: r}
	if r.Valid {
		body := layoutAPI.NewLayoutBody(l)
		out.Body.Layout = &body
	}
	h.log.Debug("layout validated", "valid", r.Valid, "errors", len(r.Errors))
	return out, nil
}

func (h *Handler) validateConfig(_ context.Context, input *configInput) (*output, error) {
	var cfg card.Config
	v, err := validation.DecodeJSON(input.RawBody)
	if err == nil {
		cfg, err = card.ParseConfig(input.Type, v)
	}
	r, err := report(err)
	if err != nil {
		return nil, err
	}
	out := &output{Body: r}
	if r.Valid {
		out.Body.Config = cfg.ToMap()
	}
	return out, nil
}
