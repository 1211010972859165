package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStructural is the sentinel every structural validation error unwraps to.
var ErrStructural = errors.New("structural validation error")

// Reason classifies why a field failed.
type Reason string

const (
	ReasonMissing      Reason = "missing"
	ReasonTypeMismatch Reason = "type_mismatch"
	ReasonEnum         Reason = "enum_violation"
	ReasonRange        Reason = "out_of_range"
	ReasonDuplicate    Reason = "duplicate"
	ReasonMalformed    Reason = "malformed"
)

func (r Reason) String() string { return string(r) }

// FieldError describes a validation failure of a single field.
// Field is a dotted path from the validated root, e.g. "cards[2].position.z".
// The root itself is reported as an empty path.
type FieldError struct {
	Field   string `json:"field"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

func (f FieldError) String() string {
	if f.Field == "" {
		return f.Message
	}
	return f.Field + ": " + f.Message
}

// Error is a StructuralValidationError: the input does not conform to the expected shape.
type Error struct {
	Errors []FieldError
}

func (e *Error) Error() string {
	switch len(e.Errors) {
	case 0:
		return "validation: invalid value"
	case 1:
		return "validation: " + e.Errors[0].String()
	}
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.String()
	}
	return fmt.Sprintf("validation: %d errors: %s", len(e.Errors), strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error { return ErrStructural }

// Has reports whether any failure is recorded for the given path.
func (e *Error) Has(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// NewError creates an Error for a single field.
func NewError(field string, reason Reason, message string) *Error {
	return &Error{Errors: []FieldError{{Field: field, Reason: reason, Message: message}}}
}

// AsError extracts the structural error from err, if any.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
