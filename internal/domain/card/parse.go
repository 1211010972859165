package card

import (
	"blogcanvas/internal/domain/validation"
)

// Parse validates an untyped value, typically the result of decoding JSON into any,
// and returns a conforming Card. Every failing field of the object is reported in the
// returned *validation.Error. The config payload is checked against the card's type.
func Parse(v any) (Card, error) {
	c := &validation.Collector{}
	o, ok := validation.NewObject(c, "", v)
	if !ok {
		return Card{}, c.Err()
	}

	card, _ := parseObject(c, o)
	if c.Failed() {
		return Card{}, c.Err()
	}
	return card, nil
}

// ParseJSON decodes data and runs Parse on the result.
func ParseJSON(data []byte) (Card, error) {
	v, err := validation.DecodeJSON(data)
	if err != nil {
		return Card{}, err
	}
	return Parse(v)
}

// ParseInto validates v as a card rooted at path and records failures in c.
// It is used by validators of enclosing shapes.
func ParseInto(c *validation.Collector, path string, v any) (Card, bool) {
	o, ok := validation.NewObject(c, path, v)
	if !ok {
		return Card{}, false
	}
	return parseObject(c, o)
}

func parseObject(c *validation.Collector, o *validation.Object) (Card, bool) {
	start := c.Len()
	var card Card

	card.ID, _ = o.NonEmptyString("id")

	typ, typeOK := o.Enum("type", typeNames()...)
	card.Type = Type(typ)

	size, _ := o.Enum("size", sizeNames()...)
	card.Size = Size(size)

	if pos, ok := o.Object("position"); ok {
		card.Position, _ = parsePosition(pos)
	}

	if raw, ok := o.Raw("config"); ok {
		if _, isObject := validation.NewObject(c, o.Path("config"), raw); isObject && typeOK {
			cfg, err := ParseConfig(card.Type, raw)
			c.Merge(o.Path("config"), err)
			card.Config = cfg
		}
	}

	card.Visible, _ = o.Bool("visible")
	card.CreatedAt, _ = o.Time("createdAt")
	card.UpdatedAt, _ = o.Time("updatedAt")

	if c.Len() > start {
		return Card{}, false
	}
	return card, true
}
