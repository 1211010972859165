package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// DecodeJSON decodes data into an untyped value. Numbers are kept as json.Number
// so integers survive without float rounding. Malformed input is a structural error
// on the root path.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewError("", ReasonMissing, "empty document")
		}
		return nil, NewError("", ReasonMalformed, "malformed JSON: "+err.Error())
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, NewError("", ReasonMalformed, "unexpected data after JSON value")
	}
	return v, nil
}
