// Backend contract, problem/solution records, and the named backend
// registry.
package minimize

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rietgo/rietgo/core"
)

// Sentinel errors of the minimization layer.
var (
	// ErrUnknownBackend indicates a minimizer was requested for a
	// backend name nothing registered.
	ErrUnknownBackend = errors.New("minimize: unknown backend")

	// ErrNoFreeParameters indicates a fit was started with an empty
	// parameter set.
	ErrNoFreeParameters = errors.New("minimize: no free parameters")

	// ErrNoResiduals indicates the objective produced an empty residual
	// vector.
	ErrNoResiduals = errors.New("minimize: empty residual vector")

	// ErrBackendPanic indicates the backend kernel panicked mid-solve.
	ErrBackendPanic = errors.New("minimize: backend panicked")
)

// Objective maps a trial parameter vector to the weighted residual
// vector. The residual length must stay constant across calls.
type Objective func(x []float64) []float64

// Problem is one bounded least-squares task handed to a backend. The
// objective already embeds bound clamping and progress tracking.
type Problem struct {
	// Residuals evaluates the weighted residual vector at x.
	Residuals Objective

	// Start is the initial parameter vector.
	Start []float64

	// Size is the residual vector length.
	Size int

	// MaxIterations caps the backend's outer iterations.
	MaxIterations int

	// Tolerance is the backend's objective convergence threshold.
	Tolerance float64
}

// Solution is a backend's converged state.
type Solution struct {
	// X is the best parameter vector found.
	X []float64
}

// Backend is a pluggable optimization kernel.
type Backend interface {
	// Name reports the registry name of the kernel.
	Name() string

	// Solve minimizes the problem's summed squared residuals.
	Solve(p Problem) (Solution, error)
}

// FitResult is the outcome of one Minimizer.Fit call.
type FitResult struct {
	// Success reports whether the backend converged without error.
	Success bool

	// Backend is the kernel name that produced this result.
	Backend string

	// Parameters are the refined parameters, values and uncertainties
	// written back.
	Parameters []*core.Parameter

	// ReducedChiSquare is the best goodness of fit seen during the run.
	ReducedChiSquare float64

	// FittingTime is the wall-clock duration of the run.
	FittingTime time.Duration
}

// ─────────────────────────── registry ───────────────────────────────

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Backend{}
)

// Register makes a backend constructor available under name, replacing
// any previous registration. Typically called from an init function.
func Register(name string, factory func() Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Backends lists the registered backend names, sorted.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// newBackend instantiates the named kernel.
func newBackend(name string) (Backend, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownBackend, name, Backends())
	}

	return factory(), nil
}

// clamp confines v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
