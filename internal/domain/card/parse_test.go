package card

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogcanvas/internal/domain/validation"
)

const stamp = "2024-03-01T12:00:00Z"

func profileCard() map[string]any {
	return map[string]any{
		"id":       "c1",
		"type":     "profile",
		"size":     "small",
		"position": map[string]any{"x": 0.0, "y": 0.0, "z": 1.0},
		"config": map[string]any{
			"showAvatar":      true,
			"showBio":         true,
			"showSocialLinks": false,
		},
		"visible":   true,
		"createdAt": stamp,
		"updatedAt": stamp,
	}
}

func requireFieldError(t *testing.T, err error, field string, reason validation.Reason) {
	t.Helper()
	ve, ok := validation.AsError(err)
	require.True(t, ok, "expected structural error, got %v", err)
	for _, fe := range ve.Errors {
		if fe.Field == field {
			assert.Equal(t, reason, fe.Reason, "reason for %s", field)
			return
		}
	}
	t.Fatalf("no error for field %q in %v", field, ve.Errors)
}

func TestParse_ProfileExample(t *testing.T) {
	c, err := Parse(profileCard())
	require.NoError(t, err)

	ts, _ := time.Parse(time.RFC3339, stamp)
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, TypeProfile, c.Type)
	assert.Equal(t, SizeSmall, c.Size)
	assert.Equal(t, Position{X: 0, Y: 0, Z: 1}, c.Position)
	assert.Equal(t, ProfileConfig{ShowAvatar: true, ShowBio: true, ShowSocialLinks: false}, c.Config)
	assert.True(t, c.Visible)
	assert.True(t, c.CreatedAt.Equal(ts))
	assert.True(t, c.UpdatedAt.Equal(ts))
}

func TestParse_UnknownType(t *testing.T) {
	raw := profileCard()
	raw["type"] = "unknown"

	_, err := Parse(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrStructural)
	assert.Contains(t, err.Error(), "type")
	requireFieldError(t, err, "type", validation.ReasonEnum)
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]any)
		field  string
		reason validation.Reason
	}{
		{"missing id", func(m map[string]any) { delete(m, "id") }, "id", validation.ReasonMissing},
		{"empty id", func(m map[string]any) { m["id"] = "" }, "id", validation.ReasonMissing},
		{"numeric id", func(m map[string]any) { m["id"] = 7.0 }, "id", validation.ReasonTypeMismatch},
		{"unknown size", func(m map[string]any) { m["size"] = "huge" }, "size", validation.ReasonEnum},
		{"missing position", func(m map[string]any) { delete(m, "position") }, "position", validation.ReasonMissing},
		{"position not object", func(m map[string]any) { m["position"] = "0,0,1" }, "position", validation.ReasonTypeMismatch},
		{"missing z", func(m map[string]any) { m["position"] = map[string]any{"x": 1.0, "y": 2.0} }, "position.z", validation.ReasonMissing},
		{"string x", func(m map[string]any) { m["position"] = map[string]any{"x": "1", "y": 2.0, "z": 0.0} }, "position.x", validation.ReasonTypeMismatch},
		{"config not object", func(m map[string]any) { m["config"] = []any{} }, "config", validation.ReasonTypeMismatch},
		{"config wrong shape", func(m map[string]any) { m["config"] = map[string]any{"limit": 5.0} }, "config.showAvatar", validation.ReasonMissing},
		{"string visible", func(m map[string]any) { m["visible"] = "true" }, "visible", validation.ReasonTypeMismatch},
		{"bad createdAt", func(m map[string]any) { m["createdAt"] = "not a date" }, "createdAt", validation.ReasonTypeMismatch},
		{"numeric updatedAt", func(m map[string]any) { m["updatedAt"] = 1700000000.0 }, "updatedAt", validation.ReasonTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := profileCard()
			tt.mutate(raw)

			_, err := Parse(raw)
			requireFieldError(t, err, tt.field, tt.reason)
		})
	}
}

func TestParse_NotAnObject(t *testing.T) {
	for _, v := range []any{nil, "card", 1.0, true, []any{profileCard()}} {
		_, err := Parse(v)
		requireFieldError(t, err, "", validation.ReasonTypeMismatch)
	}
}

func TestParse_CollectsAllFieldErrors(t *testing.T) {
	raw := profileCard()
	raw["type"] = "unknown"
	raw["size"] = "huge"
	delete(raw, "visible")

	_, err := Parse(raw)
	ve, ok := validation.AsError(err)
	require.True(t, ok)
	assert.True(t, ve.Has("type"))
	assert.True(t, ve.Has("size"))
	assert.True(t, ve.Has("visible"))
}

func TestParse_EveryTypeAndSize(t *testing.T) {
	configs := map[Type]map[string]any{
		TypeProfile:     {"showAvatar": true, "showBio": false, "showSocialLinks": true},
		TypeStats:       {"metrics": []any{"posts", "views"}},
		TypeCategories:  {"showType": "tags", "limit": 10.0, "showCount": true},
		TypeRecentPosts: {"limit": 5.0, "showExcerpt": false, "showDate": true},
	}

	for _, typ := range Types() {
		for _, size := range Sizes() {
			raw := profileCard()
			raw["type"] = string(typ)
			raw["size"] = string(size)
			raw["config"] = configs[typ]

			c, err := Parse(raw)
			require.NoError(t, err, "%s/%s", typ, size)
			assert.Equal(t, typ, c.Config.GetType())
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	first, err := Parse(profileCard())
	require.NoError(t, err)

	again, err := Parse(first.ToMap())
	require.NoError(t, err)
	assert.Equal(t, first, again)

	data, err := json.Marshal(first)
	require.NoError(t, err)
	viaJSON, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, first, viaJSON)
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"id": "c2", "type": "categories", "size": "wide",
		"position": {"x": 10.5, "y": -3, "z": 2},
		"config": {"showType": "categories", "limit": 50, "showCount": false, "extra": 1},
		"visible": false,
		"createdAt": "2024-03-01T12:00:00.123456789+03:00",
		"updatedAt": "2024-03-01T12:00:00Z"
	}`)

	c, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, CategoriesConfig{ShowType: ShowCategories, Limit: 50, ShowCount: false}, c.Config)
	assert.Equal(t, Position{X: 10.5, Y: -3, Z: 2}, c.Position)
	assert.Equal(t, time.UTC, c.CreatedAt.Location())

	_, err = ParseJSON([]byte(`{"id": "c2",`))
	requireFieldError(t, err, "", validation.ReasonMalformed)
}

func TestCard_UnmarshalJSONValidates(t *testing.T) {
	var c Card
	err := json.Unmarshal([]byte(`{"id":"x","type":"nope"}`), &c)
	assert.ErrorIs(t, err, validation.ErrStructural)

	data, err := json.Marshal(profileCard())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &c))
	assert.Equal(t, "c1", c.ID)
}
