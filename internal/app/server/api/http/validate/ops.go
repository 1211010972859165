package validate

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) cardOp() huma.Operation {
	return huma.Operation{
		OperationID: "validate-card",
		Method:      http.MethodPost,
		Path:        "/api/v1/validate/card",
		Summary:     "Validate a card document",
		Description: "Dry run: checks the structure of a card without storing it. Failures are reported in the body with status 200.",
		Tags:        []string{"validate"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) layoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "validate-layout",
		Method:      http.MethodPost,
		Path:        "/api/v1/validate/layout",
		Summary:     "Validate a layout document",
		Tags:        []string{"validate"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) configOp() huma.Operation {
	return huma.Operation{
		OperationID: "validate-config",
		Method:      http.MethodPost,
		Path:        "/api/v1/validate/config/{type}",
		Summary:     "Validate a card config for the given type",
		Tags:        []string{"validate"},
		Middlewares: h.middleware,
	}
}
