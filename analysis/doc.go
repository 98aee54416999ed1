// Package analysis orchestrates refinement: it wires sample models,
// experiments, the calculator, the constraint engine, and the minimizer
// into one Fit entry point.
//
// 🚀 Fit modes
//
//   - single — experiments are fitted one after another, in insertion
//     order, against the same shared parameter objects; each fit starts
//     from the values the previous one converged to
//   - joint  — all experiments contribute to a single concatenated
//     residual vector, weighted per experiment; weights are normalized
//     so they sum to the number of experiments, keeping the chi-square
//     scale comparable with single mode
//
// Switching to joint mode materializes a default weight of 0.5 for
// every experiment that has none yet; weights can then be tuned per
// experiment before fitting.
//
// ✨ The fit cycle
//
// Each minimizer run is bracketed by constraint application: aliases
// and expressions are re-applied to the parameter pool before the run
// (so dependent parameters start consistent) and once more after it
// (so they follow the converged independents). Excluded regions are
// masked out of every residual vector.
//
// Preconditions (at least one model, one experiment with measured data,
// one free parameter) are checked up front; a failed check is logged
// and returned without touching the previous fit result.
//
// ⚙️ Usage
//
//	a, _ := analysis.New(models, experiments)
//	a.Constraints().AddAlias("a", cell.LengthA)
//	a.SetFitMode(analysis.FitModeJoint)
//	result, err := a.Fit()
package analysis
