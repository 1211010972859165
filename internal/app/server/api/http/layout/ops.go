package layout

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

const (
	tag    = "layouts"
	mePath = "/api/v1/layouts/me"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) getDefaultOp() huma.Operation {
	return huma.Operation{
		OperationID: "layouts-get-default",
		Method:      http.MethodGet,
		Path:        "/api/v1/layouts/default",
		Summary:     "Get the anonymous layout",
		Description: "Returns the layout shown to visitors that are not signed in. It is created with the default cards on first access.",
		Tags:        []string{tag},
		Middlewares: h.public,
	}
}

func (h *Handler) getMineOp() huma.Operation {
	return huma.Operation{
		OperationID: "layouts-get-mine",
		Method:      http.MethodGet,
		Path:        mePath,
		Summary:     "Get the caller's layout",
		Tags:        []string{tag},
		Security:    bearer,
		Middlewares: h.protected,
	}
}

func (h *Handler) replaceOp() huma.Operation {
	return huma.Operation{
		OperationID: "layouts-replace",
		Method:      http.MethodPut,
		Path:        mePath,
		Summary:     "Replace the caller's layout",
		Description: "Validates the whole document and replaces the stored cards. The stored id, owner and creation time are kept.",
		Tags:        []string{tag},
		Security:    bearer,
		Middlewares: h.protected,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "layouts-delete",
		Method:        http.MethodDelete,
		Path:          mePath,
		Summary:       "Delete the caller's layout",
		Tags:          []string{tag},
		DefaultStatus: http.StatusNoContent,
		Security:      bearer,
		Middlewares:   h.protected,
	}
}

func (h *Handler) resetOp() huma.Operation {
	return huma.Operation{
		OperationID: "layouts-reset",
		Method:      http.MethodPost,
		Path:        mePath + "/reset",
		Summary:     "Reset the caller's layout to the default cards",
		Tags:        []string{tag},
		Security:    bearer,
		Middlewares: h.protected,
	}
}

func (h *Handler) addCardOp() huma.Operation {
	return huma.Operation{
		OperationID:   "cards-add",
		Method:        http.MethodPost,
		Path:          mePath + "/cards",
		Summary:       "Add a card",
		Tags:          []string{tag},
		DefaultStatus: http.StatusCreated,
		Security:      bearer,
		Middlewares:   h.protected,
	}
}

func (h *Handler) removeCardOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-remove",
		Method:      http.MethodDelete,
		Path:        mePath + "/cards/{id}",
		Summary:     "Remove a card",
		Tags:        []string{tag},
		Security:    bearer,
		Middlewares: h.protected,
	}
}

func (h *Handler) moveCardOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-move",
		Method:      http.MethodPut,
		Path:        mePath + "/cards/{id}/position",
		Summary:     "Move a card",
		Tags:        []string{tag},
		Security:    bearer,
		Middlewares: h.protected,
	}
}

func (h *Handler) resizeCardOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-resize",
		Method:      http.MethodPut,
		Path:        mePath + "/cards/{id}/size",
		Summary:     "Resize a card",
		Tags:        []string{tag},
		Security:    bearer,
		Middlewares: h.protected,
	}
}

func (h *Handler) updateConfigOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-update-config",
		Method:      http.MethodPut,
		Path:        mePath + "/cards/{id}/config",
		Summary:     "Replace a card's config",
		Description: "The body is validated against the config shape of the card's type.",
		Tags:        []string{tag},
		Security:    bearer,
		Middlewares: h.protected,
	}
}

func (h *Handler) visibilityOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-set-visibility",
		Method:      http.MethodPut,
		Path:        mePath + "/cards/{id}/visibility",
		Summary:     "Show or hide a card",
		Tags:        []string{tag},
		Security:    bearer,
		Middlewares: h.protected,
	}
}

func (h *Handler) bringToFrontOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-bring-to-front",
		Method:      http.MethodPost,
		Path:        mePath + "/cards/{id}/front",
		Summary:     "Stack a card above every other card",
		Tags:        []string{tag},
		Security:    bearer,
		Middlewares: h.protected,
	}
}
