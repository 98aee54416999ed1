package sample

import (
	"math"

	"github.com/rietgo/rietgo/core"
)

// Cell holds the unit cell parameters of a sample model. Lengths are in
// Å, angles in degrees; all six are fittable.
type Cell struct {
	core.Item

	LengthA *core.Parameter
	LengthB *core.Parameter
	LengthC *core.Parameter

	AngleAlpha *core.Parameter
	AngleBeta  *core.Parameter
	AngleGamma *core.Parameter
}

// NewCell constructs the unit cell category with the conventional
// defaults (10 Å edges, 90° angles).
func NewCell() *Cell {
	c := &Cell{Item: core.NewItem("cell")}

	length := func(name string, def float64) *core.Parameter {
		return core.NewParameter(name, def,
			core.WithUnits("Å"),
			core.WithRange(0, math.Inf(1)),
			core.WithNumberDefault(def),
		)
	}
	angle := func(name string, def float64) *core.Parameter {
		return core.NewParameter(name, def,
			core.WithUnits("deg"),
			core.WithRange(0, 180),
			core.WithNumberDefault(def),
		)
	}

	c.LengthA = length("length_a", 10.0)
	c.LengthB = length("length_b", 10.0)
	c.LengthC = length("length_c", 10.0)
	c.AngleAlpha = angle("angle_alpha", 90.0)
	c.AngleBeta = angle("angle_beta", 90.0)
	c.AngleGamma = angle("angle_gamma", 90.0)

	c.Attach(c.LengthA, c.LengthB, c.LengthC,
		c.AngleAlpha, c.AngleBeta, c.AngleGamma)

	return c
}
