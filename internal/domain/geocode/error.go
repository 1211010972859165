package geocode

import "errors"

var (
	ErrInvalidQuery = errors.New("invalid geocoding query")
	ErrUpstream     = errors.New("geocoding provider failed")
)
