package analysis

import (
	"errors"
	"fmt"

	"github.com/rietgo/rietgo/calc"
	"github.com/rietgo/rietgo/constraint"
	"github.com/rietgo/rietgo/core"
	"github.com/rietgo/rietgo/diag"
	"github.com/rietgo/rietgo/experiment"
	"github.com/rietgo/rietgo/minimize"
	"github.com/rietgo/rietgo/sample"
)

// Fit modes.
const (
	FitModeSingle = "single"
	FitModeJoint  = "joint"
)

// Sentinel errors of the orchestration layer.
var (
	// ErrNoModels indicates a fit was requested with no sample models.
	ErrNoModels = errors.New("analysis: no sample models")

	// ErrNoExperiments indicates a fit was requested with no experiments
	// carrying measured data.
	ErrNoExperiments = errors.New("analysis: no experiments with measured data")

	// ErrNoFreeParameters indicates nothing is selected for refinement.
	ErrNoFreeParameters = errors.New("analysis: no free parameters")

	// ErrBadFitMode indicates an unrecognized fit mode name.
	ErrBadFitMode = errors.New("analysis: unknown fit mode")
)

// Analysis couples the project's models and experiments with the
// engines that refine them. Not safe for concurrent use.
type Analysis struct {
	models      *sample.SampleModels
	experiments *experiment.Experiments
	constraints *constraint.Engine
	calculator  *calc.Calculator
	minimizer   *minimize.Minimizer

	fitMode string
	weights map[string]float64

	// Result is the outcome of the last completed Fit; a Fit that fails
	// its preconditions leaves it untouched.
	Result *minimize.FitResult
}

// New wires an analysis over the given models and experiments with the
// default calculator engine and minimizer backend.
func New(models *sample.SampleModels, experiments *experiment.Experiments) (*Analysis, error) {
	calculator, err := calc.New("")
	if err != nil {
		return nil, err
	}
	minimizer, err := minimize.New("")
	if err != nil {
		return nil, err
	}

	return &Analysis{
		models:      models,
		experiments: experiments,
		constraints: constraint.NewEngine(),
		calculator:  calculator,
		minimizer:   minimizer,
		fitMode:     FitModeSingle,
		weights:     make(map[string]float64),
	}, nil
}

// Constraints exposes the alias and expression tables.
func (a *Analysis) Constraints() *constraint.Engine { return a.constraints }

// Calculator exposes the pattern calculator in use.
func (a *Analysis) Calculator() *calc.Calculator { return a.calculator }

// Minimizer exposes the minimizer in use.
func (a *Analysis) Minimizer() *minimize.Minimizer { return a.minimizer }

// SetCalculatorEngine swaps the diffraction kernel by registry name.
func (a *Analysis) SetCalculatorEngine(name string) error {
	calculator, err := calc.New(name)
	if err != nil {
		return err
	}
	a.calculator = calculator

	return nil
}

// SetMinimizerBackend swaps the optimization kernel by registry name.
func (a *Analysis) SetMinimizerBackend(name string, opts ...minimize.Option) error {
	minimizer, err := minimize.New(name, opts...)
	if err != nil {
		return err
	}
	a.minimizer = minimizer

	return nil
}

// FitMode returns the current fit mode.
func (a *Analysis) FitMode() string { return a.fitMode }

// SetFitMode selects single or joint fitting. Entering joint mode
// materializes a default weight of 0.5 for every experiment that has
// none yet.
func (a *Analysis) SetFitMode(mode string) error {
	switch mode {
	case FitModeSingle:
		a.fitMode = mode
	case FitModeJoint:
		a.fitMode = mode
		for _, e := range a.experiments.All() {
			if _, ok := a.weights[e.Name()]; !ok {
				a.weights[e.Name()] = 0.5
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrBadFitMode, mode)
	}

	diag.L().Info().Str("mode", mode).Msg("fit mode set")

	return nil
}

// SetWeight assigns the joint-mode weight of the named experiment.
// Non-positive weights are refused.
func (a *Analysis) SetWeight(experimentName string, w float64) {
	if w <= 0 {
		diag.L().Warn().
			Str("experiment", experimentName).
			Float64("weight", w).
			Msg("non-positive weight ignored")

		return
	}
	a.weights[experimentName] = w
}

// Weight returns the joint-mode weight of the named experiment, zero
// when unset.
func (a *Analysis) Weight(experimentName string) float64 {
	return a.weights[experimentName]
}

// FreeParameters lists every free parameter across models and
// experiments, in the deterministic flattening order.
func (a *Analysis) FreeParameters() []*core.Parameter {
	out := a.models.FreeParameters()
	out = append(out, a.experiments.FreeParameters()...)

	return out
}
