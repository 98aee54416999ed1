// The fit entry point: precondition checks, residual assembly, and the
// single/joint refinement loops.
package analysis

import (
	"math"

	"github.com/rietgo/rietgo/core"
	"github.com/rietgo/rietgo/diag"
	"github.com/rietgo/rietgo/experiment"
	"github.com/rietgo/rietgo/minimize"
)

// Fit refines the free parameters in the current fit mode. Failed
// preconditions are logged and returned without touching Result. In
// single mode the returned result is the last experiment's; in joint
// mode it is the one combined run.
func (a *Analysis) Fit() (*minimize.FitResult, error) {
	if a.models.Len() == 0 {
		diag.L().Error().Err(ErrNoModels).Msg("fit aborted")

		return nil, ErrNoModels
	}

	var fittable []*experiment.Experiment
	for _, e := range a.experiments.All() {
		if e.Datastore.HasMeasuredData() {
			fittable = append(fittable, e)
		} else {
			diag.L().Warn().Str("experiment", e.Name()).Msg("no measured data, excluded from fit")
		}
	}
	if len(fittable) == 0 {
		diag.L().Error().Err(ErrNoExperiments).Msg("fit aborted")

		return nil, ErrNoExperiments
	}

	free := a.FreeParameters()
	if len(free) == 0 {
		diag.L().Error().Err(ErrNoFreeParameters).Msg("fit aborted")

		return nil, ErrNoFreeParameters
	}

	var result *minimize.FitResult
	if a.fitMode == FitModeJoint {
		result = a.fitJoint(fittable, free)
	} else {
		result = a.fitSingle(fittable, free)
	}

	a.Result = result

	return result, nil
}

// fitSingle refines against each experiment in turn. The parameter
// objects are shared, so every fit starts where the previous one ended.
func (a *Analysis) fitSingle(expts []*experiment.Experiment, free []*core.Parameter) *minimize.FitResult {
	var result *minimize.FitResult
	for _, e := range expts {
		expt := e
		a.constraints.Apply()
		result = a.minimizer.Fit(free, func() []float64 {
			return a.experimentResiduals(expt, 1)
		})
		a.constraints.Apply()

		diag.L().Info().
			Str("experiment", expt.Name()).
			Bool("success", result.Success).
			Float64("chi2", result.ReducedChiSquare).
			Msg("sequential fit step done")
	}

	return result
}

// fitJoint refines one concatenated residual vector. Weights are
// normalized to sum to the number of experiments and enter each
// experiment's residuals as sqrt(w), so chi-square stays on the
// single-fit scale.
func (a *Analysis) fitJoint(expts []*experiment.Experiment, free []*core.Parameter) *minimize.FitResult {
	var total float64
	for _, e := range expts {
		total += a.jointWeight(e)
	}

	factors := make([]float64, len(expts))
	for i, e := range expts {
		factors[i] = math.Sqrt(a.jointWeight(e) * float64(len(expts)) / total)
	}

	a.constraints.Apply()
	result := a.minimizer.Fit(free, func() []float64 {
		var out []float64
		for i, e := range expts {
			out = append(out, a.experimentResiduals(e, factors[i])...)
		}

		return out
	})
	a.constraints.Apply()

	return result
}

// jointWeight returns the experiment's joint weight, defaulting to 0.5
// when unset.
func (a *Analysis) jointWeight(e *experiment.Experiment) float64 {
	if w := a.weights[e.Name()]; w > 0 {
		return w
	}

	return 0.5
}

// experimentResiduals evaluates one experiment's weighted residuals
// (meas - calc) / su on the included grid points, scaled by factor. A
// calculation failure yields an empty vector, which the minimizer
// treats as a skip.
func (a *Analysis) experimentResiduals(e *experiment.Experiment, factor float64) []float64 {
	calculated, err := a.calculator.CalculatePattern(a.models, e)
	if err != nil {
		diag.L().Error().Err(err).Str("experiment", e.Name()).Msg("pattern calculation failed")

		return nil
	}

	mask := e.ExcludedRegions.IncludedMask(e.Datastore.X)
	out := make([]float64, 0, len(calculated))
	for i := range calculated {
		if !mask[i] {
			continue
		}
		su := e.Datastore.MeasSu[i]
		if su <= 0 {
			su = 1
		}
		out = append(out, factor*(e.Datastore.Meas[i]-calculated[i])/su)
	}

	return out
}
