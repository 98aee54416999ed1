package calc

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/rietgo/rietgo/diag"
	"github.com/rietgo/rietgo/experiment"
	"github.com/rietgo/rietgo/sample"
)

// DefaultEngine is the engine used when no name is given.
const DefaultEngine = "gauss"

// Calculator sums scaled phase contributions and background into one
// experiment's total calculated pattern.
type Calculator struct {
	engine Engine
}

// New constructs a calculator over the named engine; an empty name
// selects DefaultEngine.
func New(name string) (*Calculator, error) {
	if name == "" {
		name = DefaultEngine
	}
	eng, err := newEngine(name)
	if err != nil {
		return nil, err
	}

	return &Calculator{engine: eng}, nil
}

// EngineName reports the name of the kernel in use.
func (c *Calculator) EngineName() string { return c.engine.Name() }

// Reflections enumerates a model's reflections through the kernel down
// to the given d-spacing.
func (c *Calculator) Reflections(model *sample.SampleModel, dMin float64) []Reflection {
	return c.engine.Reflections(model, dMin)
}

// StructureFactors enumerates the reflections the experiment's measured
// grid can observe for the model.
func (c *Calculator) StructureFactors(model *sample.SampleModel, e *experiment.Experiment) ([]Reflection, error) {
	if !e.Datastore.HasMeasuredData() {
		return nil, ErrNoGrid
	}

	return c.engine.Reflections(model, observableDMin(e)), nil
}

// observableDMin resolves the smallest d-spacing the experiment's grid
// reaches, per beam mode. Falls back to 0.5 Å when the geometry gives
// nothing usable.
func observableDMin(e *experiment.Experiment) float64 {
	x := e.Datastore.X
	if len(x) == 0 {
		return 0.5
	}

	switch inst := e.Instrument.(type) {
	case *experiment.CWInstrument:
		lambda := inst.SetupWavelength.Value()
		thetaMax := (x[len(x)-1] - inst.CalibTwoThetaOffset.Value()) / 2 * math.Pi / 180
		if thetaMax <= 0 || thetaMax >= math.Pi/2 {
			thetaMax = math.Pi/2 - 1e-6
		}

		return lambda / (2 * math.Sin(thetaMax))
	case *experiment.TOFInstrument:
		if linear := inst.CalibDToTofLinear.Value(); linear > 0 {
			if d := (x[0] - inst.CalibDToTofOffset.Value()) / linear; d > 0.1 {
				return d
			}
		}
	}

	return 0.5
}

// CalculatePattern evaluates the experiment's total pattern on its
// measured grid: Σ scaleᵢ·patternᵢ over resolvable linked phases, plus
// background. The background and total arrays are stored back on the
// experiment's datastore. A linked phase naming no known model is
// skipped with a warning; with none resolvable the total is background
// only.
func (c *Calculator) CalculatePattern(models *sample.SampleModels, e *experiment.Experiment) ([]float64, error) {
	if !e.Datastore.HasMeasuredData() {
		return nil, ErrNoGrid
	}
	x := e.Datastore.X

	total := make([]float64, len(x))
	for _, link := range e.LinkedPhases.All() {
		model, ok := models.Get(link.ID.Value())
		if !ok {
			diag.L().Warn().
				Str("experiment", e.Name()).
				Str("phase", link.ID.Value()).
				Msg("linked phase not found, skipped")

			continue
		}
		pattern := c.engine.SingleModelPattern(model, e, x)
		floats.AddScaled(total, link.Scale.Value(), pattern)
	}

	bkg := e.Background.Calculate(x)
	floats.Add(total, bkg)

	e.Datastore.Bkg = bkg
	e.Datastore.Calc = total

	return total, nil
}
