// Derivative-free simplex backend over gonum/optimize.
package minimize

import (
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

func init() {
	Register("neldermead", func() Backend { return neldermeadBackend{} })
}

type neldermeadBackend struct{}

func (neldermeadBackend) Name() string { return "neldermead" }

// Solve minimizes 0.5 * sum of squared residuals with a Nelder-Mead
// simplex. Slower than damped least squares but tolerant of noisy or
// kinked objectives.
func (neldermeadBackend) Solve(p Problem) (Solution, error) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			var sum float64
			for _, r := range p.Residuals(x) {
				sum += r * r
			}

			return 0.5 * sum
		},
	}

	settings := &optimize.Settings{
		MajorIterations: p.MaxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   p.Tolerance,
			Iterations: 50,
		},
	}

	result, err := optimize.Minimize(problem, append([]float64(nil), p.Start...), settings, &optimize.NelderMead{})
	if err != nil {
		return Solution{}, fmt.Errorf("minimize: neldermead: %w", err)
	}

	return Solution{X: result.X}, nil
}
