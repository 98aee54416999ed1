// Package rietgo is an in-memory toolkit for least-squares refinement of
// crystal structure models against measured powder diffraction patterns,
// from the typed parameter model up to joint multi-dataset fitting.
//
// 🚀 What is rietgo?
//
//	A library that brings together the building blocks of a Rietveld-style
//	refinement workflow:
//	  • Value model: validated, hierarchically named Descriptors & Parameters
//	  • Containers: category items, collections, datablocks (models & experiments)
//	  • Constraints: alias + arithmetic-expression engine for dependent parameters
//	  • Calculators: pluggable pattern engines (phase sum + background)
//	  • Minimizers: pluggable least-squares / derivative-free backends
//	  • Analysis: single or joint fitting with progress tracking and fit statistics
//
// ✨ Why choose rietgo?
//
//   - Explicit API: every physical quantity is a Parameter you can read,
//     bound, free, constrain, and trace by its dotted hierarchical name
//   - Forgiving: invalid values, missing phases, and failed backends
//     degrade to logged diagnostics, never panics
//   - Deterministic: parameter ordering, constraint application, and
//     optimizer indexing follow declaration order
//
// Everything is organized under focused subpackages:
//
//	core/       — Descriptor, Parameter, validators, identity, container bases
//	sample/     — sample models: space group, unit cell, atom sites
//	experiment/ — experiments: instrument, peak, background, linked phases, data
//	constraint/ — alias registry + expression engine
//	calc/       — calculator contract, engine registry, built-in Gaussian engine
//	minimize/   — minimizer contract, backend registry, progress tracker
//	analysis/   — fit orchestrator: modes, weights, reliability factors
//	project/    — project aggregate with metadata
//	diag/       — structured diagnostics shared by every package
//
// Quick sketch of a refinement:
//
//	model ──┐
//	model ──┼─▶ calculator ─▶ calc pattern ──┐
//	        │                                ├─▶ residuals ─▶ minimizer
//	experiment ─▶ measured pattern ──────────┘
//
// See example_test.go for a full walkthrough.
//
//	go get github.com/rietgo/rietgo
package rietgo
