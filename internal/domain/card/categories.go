package card

import (
	"blogcanvas/internal/domain/validation"
)

const (
	MinCategoriesLimit = 1
	MaxCategoriesLimit = 50
)

// ShowType switches the categories card between categories and tags.
type ShowType string

const (
	ShowCategories ShowType = "categories"
	ShowTags       ShowType = "tags"
)

func (s ShowType) IsValid() bool {
	return s == ShowCategories || s == ShowTags
}

// CategoriesConfig - настройки карточки категорий/тегов
type CategoriesConfig struct {
	ShowType  ShowType `json:"showType"`
	Limit     int      `json:"limit"`
	ShowCount bool     `json:"showCount"`
}

func (CategoriesConfig) GetType() Type {
	return TypeCategories
}

func (c CategoriesConfig) Validate() error {
	col := &validation.Collector{}
	if !c.ShowType.IsValid() {
		col.Add("showType", validation.ReasonEnum, "must be one of [categories tags], got %q", c.ShowType)
	}
	if c.Limit < MinCategoriesLimit || c.Limit > MaxCategoriesLimit {
		col.Add("limit", validation.ReasonRange, "must be between %d and %d, got %d", MinCategoriesLimit, MaxCategoriesLimit, c.Limit)
	}
	return col.Err()
}

func (c CategoriesConfig) ToMap() map[string]any {
	return map[string]any{
		"showType":  string(c.ShowType),
		"limit":     c.Limit,
		"showCount": c.ShowCount,
	}
}

// ParseCategoriesConfig checks the categories shape; limit is bounded to [1,50].
func ParseCategoriesConfig(v any) (CategoriesConfig, error) {
	c := &validation.Collector{}
	o, ok := validation.NewObject(c, "", v)
	if !ok {
		return CategoriesConfig{}, c.Err()
	}

	showType, _ := o.Enum("showType", string(ShowCategories), string(ShowTags))
	limit, _ := o.IntRange("limit", MinCategoriesLimit, MaxCategoriesLimit)
	showCount, _ := o.Bool("showCount")
	if c.Failed() {
		return CategoriesConfig{}, c.Err()
	}

	return CategoriesConfig{ShowType: ShowType(showType), Limit: limit, ShowCount: showCount}, nil
}
