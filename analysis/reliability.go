// Agreement statistics between measured and calculated patterns.
package analysis

import (
	"errors"
	"math"

	"github.com/rietgo/rietgo/experiment"
)

// ErrNoCalculatedPattern indicates reliability factors were requested
// before any pattern calculation ran for the experiment.
var ErrNoCalculatedPattern = errors.New("analysis: no calculated pattern")

// Reliability bundles the conventional powder agreement factors, all in
// percent except the dimensionless reduced chi-square.
type Reliability struct {
	// RFactor is the profile residual Rp = Σ|yo-yc| / Σ|yo|.
	RFactor float64

	// RFactorSquared is sqrt(Σ(yo-yc)² / Σyo²).
	RFactorSquared float64

	// WeightedRFactor is Rwp = sqrt(Σw(yo-yc)² / Σw·yo²), w = 1/su².
	WeightedRFactor float64

	// RbFactor is the background-subtracted profile residual.
	RbFactor float64

	// ReducedChiSquare is Σw(yo-yc)² / (n - k) with k the free
	// parameter count.
	ReducedChiSquare float64
}

// ReliabilityFactors computes the agreement statistics of the named
// experiment from its stored measured and calculated patterns. The
// calculated pattern must exist; run Fit or the calculator first.
// Excluded regions are masked out of all sums.
func (a *Analysis) ReliabilityFactors(experimentName string) (Reliability, error) {
	e, ok := a.experiments.Get(experimentName)
	if !ok {
		return Reliability{}, experiment.ErrNoMeasuredData
	}
	d := e.Datastore
	if !d.HasMeasuredData() {
		return Reliability{}, experiment.ErrNoMeasuredData
	}
	if len(d.Calc) != len(d.X) {
		return Reliability{}, ErrNoCalculatedPattern
	}

	mask := e.ExcludedRegions.IncludedMask(d.X)

	var (
		sumAbsDiff, sumAbsMeas   float64
		sumSqDiff, sumSqMeas     float64
		sumWDiff, sumWMeas       float64
		sumAbsNetDiff, sumAbsNet float64
		included                 int
	)
	for i := range d.X {
		if !mask[i] {
			continue
		}
		included++
		yo, yc := d.Meas[i], d.Calc[i]
		diff := yo - yc

		sumAbsDiff += math.Abs(diff)
		sumAbsMeas += math.Abs(yo)
		sumSqDiff += diff * diff
		sumSqMeas += yo * yo

		su := d.MeasSu[i]
		if su <= 0 {
			su = 1
		}
		w := 1 / (su * su)
		sumWDiff += w * diff * diff
		sumWMeas += w * yo * yo

		if len(d.Bkg) == len(d.X) {
			net := yo - d.Bkg[i]
			sumAbsNetDiff += math.Abs(diff)
			sumAbsNet += math.Abs(net)
		}
	}

	var r Reliability
	if sumAbsMeas > 0 {
		r.RFactor = 100 * sumAbsDiff / sumAbsMeas
	}
	if sumSqMeas > 0 {
		r.RFactorSquared = 100 * math.Sqrt(sumSqDiff/sumSqMeas)
	}
	if sumWMeas > 0 {
		r.WeightedRFactor = 100 * math.Sqrt(sumWDiff/sumWMeas)
	}
	if sumAbsNet > 0 {
		r.RbFactor = 100 * sumAbsNetDiff / sumAbsNet
	}

	dof := included - len(a.FreeParameters())
	if dof < 1 {
		dof = 1
	}
	r.ReducedChiSquare = sumWDiff / float64(dof)

	return r, nil
}
