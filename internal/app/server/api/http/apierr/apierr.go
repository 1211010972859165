// Package apierr maps domain errors to huma status errors.
package apierr

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"blogcanvas/internal/domain/card"
	"blogcanvas/internal/domain/geocode"
	"blogcanvas/internal/domain/layout"
	"blogcanvas/internal/domain/validation"
)

// BodyLocation is the root of every request body field in error details.
const BodyLocation = "body"

// From converts err into the huma error to return from a handler.
// Structural errors become 422 with one detail per failed field.
func From(err error) error {
	if err == nil {
		return nil
	}

	if ve, ok := validation.AsError(err); ok {
		return Validation(BodyLocation, ve)
	}

	var se huma.StatusError
	if errors.As(err, &se) {
		return err
	}

	switch {
	case errors.Is(err, layout.ErrCardNotFound):
		return huma.Error404NotFound("card not found", err)
	case errors.Is(err, layout.ErrNotFound):
		return huma.Error404NotFound("layout not found", err)
	case errors.Is(err, layout.ErrVersionConflict):
		return huma.Error409Conflict("layout was modified concurrently, reload and retry", err)
	case errors.Is(err, layout.ErrDuplicateCard):
		return huma.Error409Conflict("card id already in layout", err)
	case errors.Is(err, card.ErrConfigMismatch), errors.Is(err, card.ErrUnsupportedType):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, geocode.ErrInvalidQuery):
		return huma.Error422UnprocessableEntity(err.Error(), &huma.ErrorDetail{
			Location: "query.q",
			Message:  err.Error(),
		})
	case errors.Is(err, geocode.ErrUpstream):
		return huma.Error502BadGateway("geocoding provider unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout("request timed out")
	case errors.Is(err, layout.ErrCorrupt):
		return huma.Error500InternalServerError("stored layout is invalid, reset it to continue")
	}
	return huma.Error500InternalServerError("internal server error")
}

// Validation renders a structural error rooted at location.
func Validation(location string, ve *validation.Error) huma.StatusError {
	details := make([]error, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		details = append(details, &huma.ErrorDetail{
			Message:  fe.Message,
			Location: validation.Join(location, fe.Field),
			Value:    fe.Reason.String(),
		})
	}
	return huma.Error422UnprocessableEntity("structural validation failed", details...)
}

// ParseIfMatch reads an If-Match header carrying a layout version.
// An empty header or "*" disables the check.
func ParseIfMatch(header string) (int, error) {
	header = strings.TrimSpace(header)
	header = strings.TrimPrefix(header, "W/")
	header = strings.Trim(header, `"`)
	if header == "" || header == "*" {
		return layout.AnyVersion, nil
	}
	v, err := strconv.Atoi(header)
	if err != nil || v < 1 {
		return 0, huma.Error400BadRequest("If-Match must carry a layout version", &huma.ErrorDetail{
			Location: "header.If-Match",
			Message:  "expected a positive integer",
			Value:    header,
		})
	}
	return v, nil
}

// ETag formats a layout version as a strong entity tag.
func ETag(version int) string {
	return `"` + strconv.Itoa(version) + `"`
}
