package card

import (
	"math"

	"blogcanvas/internal/domain/validation"
)

// Position places a card: X/Y are canvas coordinates, Z is the stacking order.
// Z is not unique; equal values draw in insertion order.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (p Position) Validate() error {
	c := &validation.Collector{}
	check := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			c.Add(name, validation.ReasonRange, "must be a finite number")
		}
	}
	check("x", p.X)
	check("y", p.Y)
	check("z", p.Z)
	return c.Err()
}

func parsePosition(o *validation.Object) (Position, bool) {
	x, okX := o.Number("x")
	y, okY := o.Number("y")
	z, okZ := o.Number("z")
	return Position{X: x, Y: y, Z: z}, okX && okY && okZ
}
