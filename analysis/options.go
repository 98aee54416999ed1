// YAML-backed refinement options.
package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rietgo/rietgo/minimize"
)

// Options is the serializable refinement configuration.
type Options struct {
	// FitMode selects single or joint fitting; empty keeps the current
	// mode.
	FitMode string `yaml:"fit_mode"`

	// CalculatorEngine names the diffraction kernel; empty keeps the
	// current one.
	CalculatorEngine string `yaml:"calculator_engine"`

	// MinimizerBackend names the optimization kernel; empty keeps the
	// current one.
	MinimizerBackend string `yaml:"minimizer_backend"`

	// MaxIterations caps the minimizer's outer iterations when a
	// backend is named; zero keeps the default.
	MaxIterations int `yaml:"max_iterations"`

	// Tolerance sets the minimizer's convergence threshold when a
	// backend is named; zero keeps the default.
	Tolerance float64 `yaml:"tolerance"`

	// Weights are per-experiment joint-mode weights.
	Weights map[string]float64 `yaml:"weights"`
}

// LoadOptions reads an Options document from a YAML file.
func LoadOptions(path string) (Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("analysis: read options: %w", err)
	}
	var o Options
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return Options{}, fmt.Errorf("analysis: parse options: %w", err)
	}

	return o, nil
}

// Configure applies o to the analysis. Empty fields keep the current
// setting; the first invalid field aborts with its error.
func (a *Analysis) Configure(o Options) error {
	if o.CalculatorEngine != "" {
		if err := a.SetCalculatorEngine(o.CalculatorEngine); err != nil {
			return err
		}
	}
	if o.MinimizerBackend != "" {
		var opts []minimize.Option
		if o.MaxIterations > 0 {
			opts = append(opts, minimize.WithMaxIterations(o.MaxIterations))
		}
		if o.Tolerance > 0 {
			opts = append(opts, minimize.WithTolerance(o.Tolerance))
		}
		if err := a.SetMinimizerBackend(o.MinimizerBackend, opts...); err != nil {
			return err
		}
	}
	if o.FitMode != "" {
		if err := a.SetFitMode(o.FitMode); err != nil {
			return err
		}
	}
	for name, w := range o.Weights {
		a.SetWeight(name, w)
	}

	return nil
}

// ConfigureFromFile loads and applies a YAML options document.
func (a *Analysis) ConfigureFromFile(path string) error {
	o, err := LoadOptions(path)
	if err != nil {
		return err
	}

	return a.Configure(o)
}
