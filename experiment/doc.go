// Package experiment defines the experiment datablock: one measured
// diffraction dataset together with its instrument, peak-profile,
// background, and phase-linking configuration.
//
// An Experiment aggregates:
//
//   - ExperimentType    — sample form, beam mode (constant-wavelength or
//     time-of-flight), radiation probe
//   - Instrument        — CW wavelength/offset or TOF bank and d→TOF
//     calibration parameters
//   - Peak              — profile broadening terms (Caglioti U/V/W and
//     Lorentz X/Y for CW; Gaussian sigmas for TOF)
//   - LinkedPhases      — weak references to sample models with a
//     per-experiment scale parameter each
//   - Background        — line-segment points or Chebyshev polynomial
//     terms, selectable per experiment
//   - ExcludedRegions   — x-intervals masked out of residuals
//   - Datastore         — the pattern arrays: x, meas, meas_su, bkg, calc
//
// Measured data comes from an external loader or from the bundled ASCII
// reader (two or three whitespace-separated columns; a missing third
// column defaults the uncertainties to sqrt(|y|)).
//
// ⚙️ Usage:
//
//	e := experiment.New("npd",
//	    experiment.WithBeamMode(experiment.BeamModeConstantWavelength),
//	    experiment.WithRadiationProbe(experiment.ProbeNeutron),
//	)
//	e.LinkedPhases.Add(experiment.NewLinkedPhase("pbso4", 1.0))
//	e.Background().(*experiment.LineSegmentBackground).
//	    Add(experiment.NewBackgroundPoint(10, 100))
//	_ = e.Datastore.LoadMeasuredData("data/pbso4_neutron_cw.dat")
//
// Experiments is the project-level keyed set with the fittable/free
// parameter queries used by the fit orchestrator.
package experiment
