// Package sample defines the sample-model datablock: the crystal
// structure description a refinement adjusts.
//
// A SampleModel aggregates three categories:
//
//   - SpaceGroup — Hermann–Mauguin symbol and coordinate-system code
//     (descriptors; symmetry metadata, never fitted)
//   - Cell       — unit cell lengths (Å) and angles (deg)
//   - AtomSites  — repeatable atom-site rows keyed by label: fractional
//     coordinates, occupancy, isotropic displacement (b_iso), Wyckoff
//     letter, ADP type
//
// The Wyckoff-letter membership rule is dynamic: once a site belongs to a
// model, the allowed letters follow the model's current space group.
//
// ⚙️ Usage:
//
//	m := sample.NewSampleModel("pbso4")
//	m.Cell.LengthA.SetValue(8.4693)
//	m.AtomSites.Add(sample.NewAtomSite("Pb",
//	    sample.WithTypeSymbol("Pb"),
//	    sample.WithFract(0.1876, 0.25, 0.167),
//	    sample.WithBIso(1.3729),
//	))
//	m.AtomSites.MustGet("Pb").BIso.SetFree(true)
//
// SampleModels is the project-level keyed set with the fittable/free
// parameter queries used by the fit orchestrator.
package sample
