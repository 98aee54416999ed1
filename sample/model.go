package sample

import "github.com/rietgo/rietgo/core"

// SampleModel is one crystal structure datablock: space group, unit
// cell, and atom sites, addressed by the model name.
type SampleModel struct {
	core.Datablock

	SpaceGroup *SpaceGroup
	Cell       *Cell
	AtomSites  *AtomSites
}

// SampleModelOption configures a SampleModel at construction.
type SampleModelOption func(*SampleModel)

// WithSpaceGroup sets the initial Hermann–Mauguin symbol.
func WithSpaceGroup(nameHM string) SampleModelOption {
	return func(m *SampleModel) { m.SpaceGroup.NameHM.SetValue(nameHM) }
}

// NewSampleModel constructs a sample model with default categories
// ("P 1" symmetry, 10 Å cubic cell, no atom sites).
func NewSampleModel(name string, opts ...SampleModelOption) *SampleModel {
	m := &SampleModel{Datablock: core.NewDatablock(name)}

	m.SpaceGroup = NewSpaceGroup("")
	m.Cell = NewCell()
	m.AtomSites = &AtomSites{Collection: core.NewCollection("atom_site"), model: m}

	m.AddCategory(m.SpaceGroup)
	m.AddCategory(m.Cell)
	m.AddCategory(m.AtomSites)

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// SampleModels is the project-level keyed set of sample models.
type SampleModels struct {
	core.Blocks
}

// NewSampleModels creates an empty model set.
func NewSampleModels() *SampleModels {
	return &SampleModels{Blocks: core.NewBlocks()}
}

// Add inserts the model keyed by its name (replace in place on a
// duplicate name).
func (ms *SampleModels) Add(m *SampleModel) {
	ms.Blocks.Add(m)
}

// Get returns the model with the given name.
func (ms *SampleModels) Get(name string) (*SampleModel, bool) {
	b, ok := ms.Blocks.Get(name)
	if !ok {
		return nil, false
	}
	m, ok := b.(*SampleModel)

	return m, ok
}
