package validation

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Messages(t *testing.T) {
	single := NewError("type", ReasonEnum, "bad")
	assert.Equal(t, "validation: type: bad", single.Error())
	assert.True(t, errors.Is(single, ErrStructural))

	multi := &Error{Errors: []FieldError{
		{Field: "id", Reason: ReasonMissing, Message: "is required"},
		{Field: "size", Reason: ReasonEnum, Message: "bad"},
	}}
	assert.Equal(t, "validation: 2 errors: id: is required; size: bad", multi.Error())
	assert.True(t, multi.Has("size"))
	assert.False(t, multi.Has("type"))
}

func TestAsError(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), NewError("x", ReasonRange, "too big"))
	ve, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "x", ve.Errors[0].Field)

	_, ok = AsError(errors.New("plain"))
	assert.False(t, ok)
}

func TestJoinAndIndex(t *testing.T) {
	assert.Equal(t, "a", Join("", "a"))
	assert.Equal(t, "a", Join("a", ""))
	assert.Equal(t, "a.b", Join("a", "b"))
	assert.Equal(t, "cards[1]", Index("cards", 1))
	assert.Equal(t, "cards[1].id", Join(Index("cards", 1), "id"))
	assert.Equal(t, "cards[1][2]", Join("cards[1]", "[2]"))
}

func TestObject_Readers(t *testing.T) {
	tests := []struct {
		name      string
		raw       map[string]any
		read      func(o *Object) bool
		wantField string
		reason    Reason
	}{
		{
			name:      "missing string",
			raw:       map[string]any{},
			read:      func(o *Object) bool { _, ok := o.String("id"); return ok },
			wantField: "id",
			reason:    ReasonMissing,
		},
		{
			name:      "null counts as missing",
			raw:       map[string]any{"id": nil},
			read:      func(o *Object) bool { _, ok := o.String("id"); return ok },
			wantField: "id",
			reason:    ReasonMissing,
		},
		{
			name:      "numeric string is not a number",
			raw:       map[string]any{"x": "12"},
			read:      func(o *Object) bool { _, ok := o.Number("x"); return ok },
			wantField: "x",
			reason:    ReasonTypeMismatch,
		},
		{
			name:      "string is not a bool",
			raw:       map[string]any{"visible": "true"},
			read:      func(o *Object) bool { _, ok := o.Bool("visible"); return ok },
			wantField: "visible",
			reason:    ReasonTypeMismatch,
		},
		{
			name:      "fraction is not an int",
			raw:       map[string]any{"limit": 2.5},
			read:      func(o *Object) bool { _, ok := o.Int("limit"); return ok },
			wantField: "limit",
			reason:    ReasonTypeMismatch,
		},
		{
			name:      "integer beyond int",
			raw:       map[string]any{"limit": 1e20},
			read:      func(o *Object) bool { _, ok := o.Int("limit"); return ok },
			wantField: "limit",
			reason:    ReasonRange,
		},
		{
			name:      "json integer beyond int64",
			raw:       map[string]any{"limit": json.Number("99999999999999999999")},
			read:      func(o *Object) bool { _, ok := o.Int("limit"); return ok },
			wantField: "limit",
			reason:    ReasonRange,
		},
		{
			name:      "range upper bound",
			raw:       map[string]any{"limit": json.Number("51")},
			read:      func(o *Object) bool { _, ok := o.IntRange("limit", 1, 50); return ok },
			wantField: "limit",
			reason:    ReasonRange,
		},
		{
			name:      "enum violation",
			raw:       map[string]any{"size": "huge"},
			read:      func(o *Object) bool { _, ok := o.Enum("size", "small", "large"); return ok },
			wantField: "size",
			reason:    ReasonEnum,
		},
		{
			name:      "bad timestamp",
			raw:       map[string]any{"createdAt": "yesterday"},
			read:      func(o *Object) bool { _, ok := o.Time("createdAt"); return ok },
			wantField: "createdAt",
			reason:    ReasonTypeMismatch,
		},
		{
			name:      "nested object type",
			raw:       map[string]any{"position": []any{1, 2, 3}},
			read:      func(o *Object) bool { _, ok := o.Object("position"); return ok },
			wantField: "position",
			reason:    ReasonTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Collector{}
			o, ok := NewObject(c, "", tt.raw)
			require.True(t, ok)

			assert.False(t, tt.read(o))

			ve, ok := AsError(c.Err())
			require.True(t, ok)
			require.Len(t, ve.Errors, 1)
			assert.Equal(t, tt.wantField, ve.Errors[0].Field)
			assert.Equal(t, tt.reason, ve.Errors[0].Reason)
		})
	}
}

func TestObject_ValidReads(t *testing.T) {
	c := &Collector{}
	o, ok := NewObject(c, "root", map[string]any{
		"s":  "hello",
		"n":  json.Number("1.5"),
		"i":  float64(7),
		"b":  false,
		"t":  "2024-05-01T10:00:00+02:00",
		"tt": time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	})
	require.True(t, ok)

	s, _ := o.String("s")
	n, _ := o.Number("n")
	i, _ := o.IntRange("i", 1, 10)
	b, ok := o.Bool("b")
	require.True(t, ok)
	ts, _ := o.Time("t")
	tt, _ := o.Time("tt")

	require.NoError(t, c.Err())
	assert.Equal(t, "hello", s)
	assert.Equal(t, 1.5, n)
	assert.Equal(t, 7, i)
	assert.False(t, b)
	assert.Equal(t, tt, ts)
	assert.Equal(t, "root.s", o.Path("s"))
}

func TestCollector_Merge(t *testing.T) {
	c := &Collector{}
	c.Merge("cards[0]", NewError("type", ReasonEnum, "bad"))
	c.Merge("cards[1]", errors.New("boom"))
	c.Merge("cards[2]", nil)

	ve, ok := AsError(c.Err())
	require.True(t, ok)
	require.Len(t, ve.Errors, 2)
	assert.Equal(t, "cards[0].type", ve.Errors[0].Field)
	assert.Equal(t, "cards[1]", ve.Errors[1].Field)
	assert.Equal(t, ReasonMalformed, ve.Errors[1].Reason)
}

func TestDecodeJSON(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"limit": 20}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"limit": json.Number("20")}, v)

	_, err = DecodeJSON([]byte(`{"limit": `))
	assert.ErrorIs(t, err, ErrStructural)

	_, err = DecodeJSON([]byte(`{} {}`))
	assert.ErrorIs(t, err, ErrStructural)

	_, err = DecodeJSON(nil)
	assert.ErrorIs(t, err, ErrStructural)
}

func TestPrefix(t *testing.T) {
	err := Prefix("config", NewError("limit", ReasonRange, "too big"))
	require.ErrorIs(t, err, ErrStructural)
	ve, ok := AsError(err)
	require.True(t, ok)
	require.Len(t, ve.Errors, 1)
	assert.Equal(t, "config.limit", ve.Errors[0].Field)
	assert.Equal(t, ReasonRange, ve.Errors[0].Reason)

	ve, ok = AsError(Prefix("config", NewError("", ReasonTypeMismatch, "not an object")))
	require.True(t, ok)
	assert.Equal(t, "config", ve.Errors[0].Field)

	plain := errors.New("boom")
	assert.Equal(t, plain, Prefix("config", plain))
	assert.NoError(t, Prefix("config", nil))
}

func TestObject_IntBeyondInt32(t *testing.T) {
	c := &Collector{}
	o, ok := NewObject(c, "", map[string]any{
		"exact":    json.Number("5000000000"),
		"float":    float64(2147483648),
		"negative": json.Number("-2147483649"),
		"exponent": json.Number("5e9"),
	})
	require.True(t, ok)

	for key, want := range map[string]int{
		"exact":    5000000000,
		"float":    2147483648,
		"negative": -2147483649,
		"exponent": 5000000000,
	} {
		got, ok := o.Int(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
	assert.NoError(t, c.Err())
}
