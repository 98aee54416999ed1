package minimize

import (
	"io"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/rietgo/rietgo/core"
	"github.com/rietgo/rietgo/diag"
)

// DefaultBackend is the backend used when no name is given.
const DefaultBackend = "lm"

// Default fit budget.
const (
	defaultMaxIterations = 200
	defaultTolerance     = 1e-12
)

// residualPenalty replaces each residual of a malformed trial. Large
// enough to repel any backend, small enough that its square stays
// finite.
const residualPenalty = 1e100

// Minimizer runs least-squares fits through a named backend.
type Minimizer struct {
	backend       Backend
	tracker       *Tracker
	maxIterations int
	tolerance     float64
}

// Option configures a Minimizer at construction.
type Option func(*Minimizer)

// WithMaxIterations caps the backend's outer iterations.
func WithMaxIterations(n int) Option {
	return func(m *Minimizer) { m.maxIterations = n }
}

// WithTolerance sets the objective convergence threshold.
func WithTolerance(tol float64) Option {
	return func(m *Minimizer) { m.tolerance = tol }
}

// WithProgressWriter directs chi-square progress rows to w. Without it
// progress is tracked silently.
func WithProgressWriter(w io.Writer) Option {
	return func(m *Minimizer) { m.tracker = NewTracker(w) }
}

// New constructs a minimizer over the named backend; an empty name
// selects DefaultBackend.
func New(name string, opts ...Option) (*Minimizer, error) {
	if name == "" {
		name = DefaultBackend
	}
	backend, err := newBackend(name)
	if err != nil {
		return nil, err
	}

	m := &Minimizer{
		backend:       backend,
		tracker:       NewTracker(nil),
		maxIterations: defaultMaxIterations,
		tolerance:     defaultTolerance,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// BackendName reports the name of the kernel in use.
func (m *Minimizer) BackendName() string { return m.backend.Name() }

// Tracker exposes the progress tracker of the last or current run.
func (m *Minimizer) Tracker() *Tracker { return m.tracker }

// Fit refines params against the residual function. Start values are
// snapshotted before the run; converged values and estimated standard
// uncertainties are written back after it. The residual function reads
// the parameters' current values, so constraint re-application between
// runs is the caller's concern. A failed or panicking backend yields
// Success == false with the parameters left at their last trial state.
func (m *Minimizer) Fit(params []*core.Parameter, residuals func() []float64) *FitResult {
	result := &FitResult{Backend: m.backend.Name(), Parameters: params}
	began := time.Now()
	defer func() { result.FittingTime = time.Since(began) }()

	if len(params) == 0 {
		diag.L().Warn().Err(ErrNoFreeParameters).Msg("fit skipped")

		return result
	}

	probe := residuals()
	if len(probe) == 0 {
		diag.L().Warn().Err(ErrNoResiduals).Msg("fit skipped")

		return result
	}
	size := len(probe)

	dof := size - len(params)
	if dof < 1 {
		dof = 1
	}

	start := make([]float64, len(params))
	for i, p := range params {
		start[i] = p.Value()
		p.SetStartValue(start[i])
		p.ClearUncertainty()
	}

	apply := func(x []float64) {
		for i, p := range params {
			p.SetValue(clamp(x[i], p.FitMin(), p.FitMax()))
		}
	}

	m.tracker.reset()
	objective := func(x []float64) []float64 {
		apply(x)
		r := residuals()
		if len(r) != size {
			// A residual vector that vanishes or resizes mid-run must
			// not score as a perfect trial; hand the backend a heavy
			// finite penalty instead.
			diag.L().Error().
				Int("got", len(r)).
				Int("want", size).
				Msg("residual vector changed size, trial penalized")
			r = make([]float64, size)
			for i := range r {
				r[i] = residualPenalty
			}
		}
		var chi2 float64
		for _, ri := range r {
			chi2 += ri * ri
		}
		m.tracker.Track(chi2 / float64(dof))

		return r
	}

	diag.L().Info().
		Str("backend", m.backend.Name()).
		Int("parameters", len(params)).
		Int("residuals", size).
		Msg("fit started")

	solution, err := m.solve(Problem{
		Residuals:     objective,
		Start:         start,
		Size:          size,
		MaxIterations: m.maxIterations,
		Tolerance:     m.tolerance,
	})
	m.tracker.Finish()

	if err != nil {
		diag.L().Error().Err(err).Str("backend", m.backend.Name()).Msg("fit failed")
		result.ReducedChiSquare = m.tracker.Best()

		return result
	}

	// Covariance probing goes through an untracked evaluator so the
	// progress log ends at the converged state.
	raw := func(x []float64) []float64 {
		apply(x)
		r := residuals()
		if len(r) != size {
			return make([]float64, size)
		}

		return r
	}
	apply(solution.X)
	m.estimateUncertainties(params, raw, solution.X, dof)

	result.Success = true
	result.ReducedChiSquare = m.tracker.Best()

	diag.L().Info().
		Str("backend", m.backend.Name()).
		Float64("chi2", result.ReducedChiSquare).
		Dur("elapsed", time.Since(began)).
		Msg("fit finished")

	return result
}

// solve contains backend panics so a misbehaving kernel cannot take the
// whole refinement down.
func (m *Minimizer) solve(p Problem) (solution Solution, err error) {
	defer func() {
		if r := recover(); r != nil {
			diag.L().Error().
				Str("backend", m.backend.Name()).
				Interface("panic", r).
				Msg("backend panicked")
			err = ErrBackendPanic
		}
	}()

	return m.backend.Solve(p)
}

// estimateUncertainties writes one-sigma standard uncertainties from
// the covariance s²(JᵀJ)⁻¹ at the solution, with J the forward-step
// numerical Jacobian. A singular JᵀJ leaves the uncertainties unset.
func (m *Minimizer) estimateUncertainties(params []*core.Parameter, objective Objective, x []float64, dof int) {
	k := len(x)
	r0 := objective(x)
	n := len(r0)
	base := append([]float64(nil), r0...)

	jac := mat.NewDense(n, k, nil)
	for j := 0; j < k; j++ {
		step := 1e-6 * (1 + math.Abs(x[j]))
		xj := append([]float64(nil), x...)
		xj[j] += step
		rj := objective(xj)
		for i := 0; i < n; i++ {
			jac.Set(i, j, (rj[i]-base[i])/step)
		}
	}
	// Leave parameters at the solution after probing.
	objective(x)

	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)

	var cov mat.Dense
	if err := cov.Inverse(&jtj); err != nil {
		diag.L().Warn().Err(err).Msg("covariance singular, uncertainties unset")

		return
	}

	var s2 float64
	for _, ri := range base {
		s2 += ri * ri
	}
	s2 /= float64(dof)

	for i, p := range params {
		v := cov.At(i, i) * s2
		if v > 0 {
			p.SetUncertainty(math.Sqrt(v))
		}
	}
}
