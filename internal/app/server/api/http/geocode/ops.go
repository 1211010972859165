package geocode

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) searchOp() huma.Operation {
	return huma.Operation{
		OperationID: "geocode-search",
		Method:      http.MethodGet,
		Path:        "/api/v1/geocode",
		Summary:     "Look up places by name",
		Description: "Proxies the configured geocoding provider, used by the location field of the profile card editor.",
		Tags:        []string{"geocode"},
		Middlewares: h.middleware,
	}
}
