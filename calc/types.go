// Engine contract, reflection record, and the named engine registry.
package calc

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rietgo/rietgo/experiment"
	"github.com/rietgo/rietgo/sample"
)

// Sentinel errors of the calculation layer.
var (
	// ErrUnknownEngine indicates a calculator was requested for an
	// engine name nothing registered.
	ErrUnknownEngine = errors.New("calc: unknown engine")

	// ErrNoGrid indicates a pattern was requested for an experiment
	// with no measured x-grid to evaluate on.
	ErrNoGrid = errors.New("calc: experiment has no measured grid")
)

// Reflection is one Bragg reflection of a phase: its Miller indices,
// d-spacing in Å, and unscaled integrated intensity.
type Reflection struct {
	H, K, L   int
	D         float64
	Intensity float64
}

// Engine is a diffraction kernel. Implementations must be stateless or
// internally synchronized; one engine instance serves all phases.
type Engine interface {
	// Name reports the registry name of the kernel.
	Name() string

	// Reflections enumerates the model's Bragg reflections with
	// d-spacing of at least dMin, strongest first.
	Reflections(model *sample.SampleModel, dMin float64) []Reflection

	// SingleModelPattern evaluates one phase's unscaled contribution on
	// the grid x under the experiment's instrument and profile setup.
	SingleModelPattern(model *sample.SampleModel, e *experiment.Experiment, x []float64) []float64
}

// ─────────────────────────── registry ───────────────────────────────

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Engine{}
)

// Register makes an engine constructor available under name, replacing
// any previous registration. Typically called from an init function.
func Register(name string, factory func() Engine) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Engines lists the registered engine names, sorted.
func Engines() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// newEngine instantiates the named kernel.
func newEngine(name string) (Engine, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownEngine, name, Engines())
	}

	return factory(), nil
}
