// Experiment datablock assembly and the project-level experiment set.
package experiment

import (
	"github.com/rietgo/rietgo/core"
	"github.com/rietgo/rietgo/diag"
)

// Experiment is one measurement datablock. The concrete instrument and
// peak flavours follow the beam mode chosen at construction; the
// background flavour follows the requested kind.
type Experiment struct {
	core.Datablock

	Type            *ExperimentType
	Instrument      Instrument
	Peak            Peak
	LinkedPhases    *LinkedPhases
	Background      Background
	ExcludedRegions *ExcludedRegions
	Datastore       *Datastore
}

// Option configures an Experiment at construction.
type Option func(*config)

type config struct {
	beamMode       string
	probe          string
	backgroundKind string
	dataPath       string
}

// WithBeamMode selects constant-wavelength or time-of-flight.
func WithBeamMode(mode string) Option {
	return func(c *config) { c.beamMode = mode }
}

// WithRadiationProbe selects neutron or xray.
func WithRadiationProbe(probe string) Option {
	return func(c *config) { c.probe = probe }
}

// WithBackground selects the background flavour by kind.
func WithBackground(kind string) Option {
	return func(c *config) { c.backgroundKind = kind }
}

// WithDataPath loads the measured pattern from an ASCII file at
// construction. A load failure is logged and leaves the datastore
// empty; it does not abort construction.
func WithDataPath(path string) Option {
	return func(c *config) { c.dataPath = path }
}

// New constructs an experiment datablock. Defaults are powder,
// constant-wavelength, neutron, line-segment background, no data.
func New(name string, opts ...Option) *Experiment {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Experiment{Datablock: core.NewDatablock(name)}
	e.Type = NewExperimentType(SampleFormPowder, cfg.beamMode, cfg.probe)

	// Instrument and peak flavours follow the validated beam mode, so a
	// rejected mode string lands on the CW pair.
	if e.Type.BeamMode.Value() == BeamModeTimeOfFlight {
		e.Instrument = NewTOFInstrument()
		e.Peak = NewTOFPeak()
	} else {
		e.Instrument = NewCWInstrument()
		e.Peak = NewCWPeak()
	}

	e.LinkedPhases = NewLinkedPhases()
	e.Background = NewBackground(cfg.backgroundKind)
	e.ExcludedRegions = NewExcludedRegions()
	e.Datastore = &Datastore{}

	e.AddCategory(e.Type)
	e.AddCategory(e.Instrument)
	e.AddCategory(e.Peak)
	e.AddCategory(e.LinkedPhases)
	e.AddCategory(e.Background)
	e.AddCategory(e.ExcludedRegions)

	if cfg.dataPath != "" {
		if err := e.Datastore.LoadMeasuredData(cfg.dataPath); err != nil {
			diag.L().Warn().
				Err(err).
				Str("experiment", name).
				Msg("measured data not loaded")
		}
	}

	return e
}

// Experiments is the project-level keyed set of experiments.
type Experiments struct {
	core.Blocks
}

// NewExperiments creates an empty experiment set.
func NewExperiments() *Experiments {
	return &Experiments{Blocks: core.NewBlocks()}
}

// Add inserts the experiment keyed by its name.
func (es *Experiments) Add(e *Experiment) {
	es.Blocks.Add(e)
}

// Get returns the experiment with the given name.
func (es *Experiments) Get(name string) (*Experiment, bool) {
	b, ok := es.Blocks.Get(name)
	if !ok {
		return nil, false
	}
	e, ok := b.(*Experiment)

	return e, ok
}

// All lists the experiments in insertion order.
func (es *Experiments) All() []*Experiment {
	blocks := es.Blocks.All()
	out := make([]*Experiment, 0, len(blocks))
	for _, b := range blocks {
		if e, ok := b.(*Experiment); ok {
			out = append(out, e)
		}
	}

	return out
}
