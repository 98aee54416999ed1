// Package calc turns crystal structures into diffraction patterns.
//
// 🚀 What it does
//
// The Calculator evaluates one experiment's total calculated pattern:
// for every phase the experiment links it asks an Engine for that
// model's contribution, scales it by the link's scale factor, sums the
// contributions, and adds the experiment's background on top. The
// resulting background and total arrays are stored back on the
// experiment's datastore so downstream reporting can plot them.
//
// A linked phase whose name resolves to no sample model is skipped with
// a warning; with no resolvable phases the pattern is background only.
//
// ✨ Engines
//
// An Engine is the pluggable diffraction kernel behind the Calculator.
// Engines self-register by name; the Calculator is constructed over a
// registry lookup, so swapping kernels is a one-string change:
//
//	c, err := calc.New("gauss")
//
// The built-in "gauss" engine enumerates reflections from the unit cell
// (treated as orthogonal), places Bragg peaks on the measured grid for
// the experiment's beam mode, and renders each as a Gaussian whose
// width follows the experiment's profile parameters. It trades
// crystallographic rigor for zero external dependencies; a full-fidelity
// kernel can be registered alongside it without touching callers.
package calc
