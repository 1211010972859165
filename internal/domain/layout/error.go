package layout

import (
	"errors"

	"blogcanvas/internal/domain/card"
)

var (
	ErrNotFound        = errors.New("layout not found")
	ErrAlreadyExists   = errors.New("layout already exists")
	ErrVersionConflict = errors.New("layout version conflict")
	ErrCardNotFound    = errors.New("card not found")
	ErrDuplicateCard   = errors.New("card id already in layout")
	ErrConfigMismatch  = card.ErrConfigMismatch
	ErrCorrupt         = errors.New("stored layout is invalid")
)
