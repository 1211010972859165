package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) statusOp() huma.Operation {
	return huma.Operation{
		OperationID:   "get-health",
		Method:        http.MethodGet,
		Path:          "/api/v1/health",
		Summary:       "Service status",
		Description:   "Runs every registered dependency check (storage, cache). Any failing check turns the answer into 503.",
		Tags:          []string{"health"},
		DefaultStatus: http.StatusOK,
		Errors:        []int{http.StatusServiceUnavailable},
		Middlewares:   h.middleware,
	}
}
