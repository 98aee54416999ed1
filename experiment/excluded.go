package experiment

import (
	"fmt"

	"github.com/rietgo/rietgo/core"
)

// ExcludedRegion marks a half-closed interval of the measured axis that
// the fit must ignore (beam dumps, spurious reflections, detector gaps).
type ExcludedRegion struct {
	core.Item

	Start *core.Parameter
	End   *core.Parameter
}

// NewExcludedRegion excludes [start, end] from fitting.
func NewExcludedRegion(start, end float64) *ExcludedRegion {
	r := &ExcludedRegion{Item: core.NewItem("excluded_regions")}
	r.Start = core.NewParameter("start", start,
		core.WithInfo("Lower edge of the excluded interval"))
	r.End = core.NewParameter("end", end,
		core.WithInfo("Upper edge of the excluded interval"))
	r.Attach(r.Start, r.End)
	r.SetEntryFunc(func() string {
		return fmt.Sprintf("%g_%g", r.Start.Value(), r.End.Value())
	})

	return r
}

// ExcludedRegions is the repeatable category of excluded intervals.
type ExcludedRegions struct {
	core.Collection
}

// NewExcludedRegions constructs an empty region set.
func NewExcludedRegions() *ExcludedRegions {
	return &ExcludedRegions{Collection: core.NewCollection("excluded_regions")}
}

// AddRegion excludes [start, end].
func (x *ExcludedRegions) AddRegion(start, end float64) *ExcludedRegion {
	r := NewExcludedRegion(start, end)
	x.Add(r)

	return r
}

// IncludedMask reports, per grid point, whether the point survives every
// excluded region. With no regions every point is included.
func (x *ExcludedRegions) IncludedMask(grid []float64) []bool {
	mask := make([]bool, len(grid))
	for i := range mask {
		mask[i] = true
	}
	for _, e := range x.Entries() {
		r, ok := e.(*ExcludedRegion)
		if !ok {
			continue
		}
		lo, hi := r.Start.Value(), r.End.Value()
		if hi < lo {
			lo, hi = hi, lo
		}
		for i, g := range grid {
			if g >= lo && g <= hi {
				mask[i] = false
			}
		}
	}

	return mask
}
