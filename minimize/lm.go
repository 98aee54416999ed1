// Levenberg-Marquardt backend over github.com/maorshutman/lm.
package minimize

import (
	"fmt"

	"github.com/maorshutman/lm"
)

func init() {
	Register("lm", func() Backend { return lmBackend{} })
}

type lmBackend struct{}

func (lmBackend) Name() string { return "lm" }

// Solve runs damped least squares with a numerical Jacobian.
func (lmBackend) Solve(p Problem) (Solution, error) {
	objective := func(dst, x []float64) {
		copy(dst, p.Residuals(x))
	}
	jac := lm.NumJac{Func: objective}

	prob := lm.LMProblem{
		Dim:        len(p.Start),
		Size:       p.Size,
		Func:       objective,
		Jac:        jac.Jac,
		InitParams: append([]float64(nil), p.Start...),
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	results, err := lm.LM(prob, &lm.Settings{
		Iterations:   p.MaxIterations,
		ObjectiveTol: p.Tolerance,
	})
	if err != nil {
		return Solution{}, fmt.Errorf("minimize: lm: %w", err)
	}

	return Solution{X: results.X}, nil
}
