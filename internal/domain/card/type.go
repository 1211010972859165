package card

import (
	"github.com/danielgtaylor/huma/v2"
)

// Type selects the content a card renders and the shape of its config.
type Type string

const (
	TypeProfile     Type = "profile"
	TypeStats       Type = "stats"
	TypeCategories  Type = "categories"
	TypeRecentPosts Type = "recent_posts"
)

// Types lists every card type in canonical order.
func Types() []Type {
	return []Type{TypeProfile, TypeStats, TypeCategories, TypeRecentPosts}
}

func typeNames() []string {
	return []string{string(TypeProfile), string(TypeStats), string(TypeCategories), string(TypeRecentPosts)}
}

// Schema реализует huma.SchemaProvider.
func (Type) Schema(_ huma.Registry) *huma.Schema {
	enum := make([]any, 0, 4)
	for _, t := range Types() {
		enum = append(enum, string(t))
	}
	return &huma.Schema{
		Type:        huma.TypeString,
		Enum:        enum,
		Description: "Card type, determines the config shape",
		Examples:    []any{string(TypeProfile)},
	}
}

func (t Type) IsValid() bool {
	switch t {
	case TypeProfile, TypeStats, TypeCategories, TypeRecentPosts:
		return true
	}
	return false
}

func (t Type) String() string { return string(t) }

// DisplayName returns the card title shown in the editor palette.
func (t Type) DisplayName() string {
	switch t {
	case TypeProfile:
		return "Profile"
	case TypeStats:
		return "Stats"
	case TypeCategories:
		return "Categories"
	case TypeRecentPosts:
		return "Recent posts"
	default:
		return "Unknown"
	}
}
