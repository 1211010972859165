package validate

import (
	layoutAPI "blogcanvas/internal/app/server/api/http/layout"
	"blogcanvas/internal/domain/card"
	"blogcanvas/internal/domain/validation"
)

type rawInput struct {
	RawBody []byte `contentType:"application/json"`
}

type configInput struct {
	Type    card.Type `path:"type" doc:"Card type the config belongs to"`
	RawBody []byte    `contentType:"application/json"`
}

// Report is the outcome of a dry-run validation. Errors is empty when Valid
// is set, and the normalized document is echoed back.
type Report struct {
	Valid  bool                    `json:"valid"`
	Errors []validation.FieldError `json:"errors"`
	Card   *layoutAPI.CardBody     `json:"card,omitempty"`
	Layout *layoutAPI.LayoutBody   `json:"layout,omitempty"`
	Config map[string]any          `json:"config,omitempty"`
}

type output struct {
	Body Report
}
