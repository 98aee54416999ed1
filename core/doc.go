// Package core defines the value model and container primitives that every
// physical quantity in a refinement is built from: validated Descriptors and
// Parameters, the hierarchical identity resolver, and the category/datablock
// containers that organize them.
//
// 🚀 What is core?
//
//	The foundation layer of rietgo:
//	  • Descriptor   — validated string attribute (labels, symbols, modes)
//	  • Parameter    — validated numeric attribute with free/fixed flag,
//	    fit bounds, uncertainty, and constraint status
//	  • Item         — fixed-shape bag of values for one physical concept
//	    (unit cell, one atom site, one background point)
//	  • Collection   — ordered, keyed set of repeated Items (atom sites,
//	    background points)
//	  • Datablock    — named aggregate of categories (one sample model or
//	    one experiment)
//	  • Blocks       — keyed set of Datablocks with fittable/free parameter
//	    queries
//
// ✨ Key guarantees:
//
//   - Assignment never panics: an invalid value is rejected with a logged
//     diagnostic and the previous value is retained
//   - Construction never fails: unresolvable input falls back to the
//     validator's default
//   - Every value has an opaque uid and a dotted hierarchical name
//     (datablock.category.entry.attribute) resolved by walking the
//     ownership chain, cycle-safe
//   - Iteration and parameter flattening follow insertion/declaration
//     order — the same order the minimizer uses to index its parameter
//     vector
//
// ⚙️ Usage:
//
//	p := core.NewParameter("length_a", 10.0,
//	    core.WithUnits("Å"),
//	    core.WithRange(0, math.Inf(1)),
//	)
//	p.SetValue(8.47)  // validated; out-of-range updates are no-ops
//	p.SetFree(true)   // select for refinement
//
// Validation outcomes are reported through package diag, never silently.
package core
