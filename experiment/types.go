// Beam modes, probes, background kinds, and sentinel errors.
package experiment

import (
	"errors"
	"math"
)

// inf shortens open-ended fit ranges.
var inf = math.Inf(1)

// Sentinel errors for experiment data handling.
var (
	// ErrNoMeasuredData indicates the datastore holds no measured pattern.
	ErrNoMeasuredData = errors.New("experiment: no measured data")

	// ErrBadDataFile indicates a measured-data file could not be parsed.
	ErrBadDataFile = errors.New("experiment: malformed data file")

	// ErrLengthMismatch indicates pattern arrays of unequal length.
	ErrLengthMismatch = errors.New("experiment: pattern arrays differ in length")
)

// Beam modes.
const (
	BeamModeConstantWavelength = "constant_wavelength"
	BeamModeTimeOfFlight       = "time_of_flight"
)

// Radiation probes.
const (
	ProbeNeutron = "neutron"
	ProbeXray    = "xray"
)

// Sample forms.
const (
	SampleFormPowder = "powder"
)

// Background kinds selectable per experiment.
const (
	BackgroundLineSegment = "line_segment"
	BackgroundChebyshev   = "chebyshev"
)
