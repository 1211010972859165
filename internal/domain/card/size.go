package card

import (
	"github.com/danielgtaylor/huma/v2"
)

// Size is the nominal footprint of a card on the canvas.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeWide   Size = "wide"
	SizeTall   Size = "tall"
)

// Sizes lists every card size in canonical order.
func Sizes() []Size {
	return []Size{SizeSmall, SizeMedium, SizeLarge, SizeWide, SizeTall}
}

func sizeNames() []string {
	return []string{string(SizeSmall), string(SizeMedium), string(SizeLarge), string(SizeWide), string(SizeTall)}
}

func (Size) Schema(_ huma.Registry) *huma.Schema {
	enum := make([]any, 0, 5)
	for _, s := range Sizes() {
		enum = append(enum, string(s))
	}
	return &huma.Schema{
		Type:        huma.TypeString,
		Enum:        enum,
		Description: "Card size: small 200x200, medium 300x300, large 400x400, wide 600x300, tall 300x600",
		Examples:    []any{string(SizeMedium)},
	}
}

func (s Size) IsValid() bool {
	_, _, ok := s.dimensions()
	return ok
}

func (s Size) String() string { return string(s) }

// Dimensions returns the nominal width and height in pixels. Unknown sizes are 0x0.
// Used for rendering only; the model never enforces it.
func (s Size) Dimensions() (width, height int) {
	width, height, _ = s.dimensions()
	return width, height
}

func (s Size) dimensions() (int, int, bool) {
	switch s {
	case SizeSmall:
		return 200, 200, true
	case SizeMedium:
		return 300, 300, true
	case SizeLarge:
		return 400, 400, true
	case SizeWide:
		return 600, 300, true
	case SizeTall:
		return 300, 600, true
	}
	return 0, 0, false
}
