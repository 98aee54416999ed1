// Package minimize drives least-squares refinement over free
// parameters.
//
// 🚀 What it does
//
// The Minimizer owns the fit loop: it snapshots the free parameters'
// start values, hands a residual-vector objective to a Backend, tracks
// chi-square progress, and writes the converged values and estimated
// uncertainties back into the parameters.
//
// ✨ Backends
//
// A Backend is a pluggable optimization kernel registered by name:
//
//   - "lm"          — Levenberg–Marquardt (github.com/maorshutman/lm),
//     the default; exploits the residual-vector structure
//   - "neldermead"  — derivative-free simplex over the summed squares
//     (gonum.org/v1/gonum/optimize)
//   - "pswarm"      — particle swarm, a global searcher for rugged
//     landscapes
//
// All backends honor per-parameter fit bounds by clamping trial values
// inside the objective, so kernels that know nothing about constraints
// still respect them.
//
// ⚙️ Usage
//
//	m, err := minimize.New("lm", minimize.WithMaxIterations(200))
//	res := m.Fit(freeParams, residualsFn)
//	fmt.Println(res.Success, res.ReducedChiSquare)
//
// A panicking backend is contained: Fit recovers, reports failure, and
// leaves the parameters at their last trial values.
package minimize
