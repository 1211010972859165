package card

import (
	"blogcanvas/internal/domain/validation"
)

// ProfileConfig - что показывать на карточке профиля
type ProfileConfig struct {
	ShowAvatar      bool `json:"showAvatar"`
	ShowBio         bool `json:"showBio"`
	ShowSocialLinks bool `json:"showSocialLinks"`
}

func (ProfileConfig) GetType() Type {
	return TypeProfile
}

func (ProfileConfig) Validate() error {
	return nil
}

func (c ProfileConfig) ToMap() map[string]any {
	return map[string]any{
		"showAvatar":      c.ShowAvatar,
		"showBio":         c.ShowBio,
		"showSocialLinks": c.ShowSocialLinks,
	}
}

// ParseProfileConfig checks the profile shape: three independent booleans.
func ParseProfileConfig(v any) (ProfileConfig, error) {
	c := &validation.Collector{}
	o, ok := validation.NewObject(c, "", v)
	if !ok {
		return ProfileConfig{}, c.Err()
	}

	avatar, _ := o.Bool("showAvatar")
	bio, _ := o.Bool("showBio")
	social, _ := o.Bool("showSocialLinks")
	if c.Failed() {
		return ProfileConfig{}, c.Err()
	}

	return ProfileConfig{ShowAvatar: avatar, ShowBio: bio, ShowSocialLinks: social}, nil
}
