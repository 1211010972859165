package card

import (
	"errors"
)

var (
	ErrUnsupportedType = errors.New("unsupported card type")
	ErrConfigMismatch  = errors.New("config does not match card type")
)
