// Datablock and Blocks: the named aggregates. A Datablock is one sample
// model or one experiment (a sequence of categories); Blocks is the
// project-level keyed set of datablocks exposing the fittable/free
// parameter queries the minimizer is built on.
package core

// Datablock is a named aggregate of categories. Concrete datablock types
// (sample.SampleModel, experiment.Experiment) embed it and register
// their categories in declaration order.
type Datablock struct {
	name       string
	categories []Category
}

// NewDatablock creates a datablock base with the given entry name.
func NewDatablock(name string) Datablock {
	return Datablock{name: name}
}

// AddCategory registers a category in declaration order and takes
// ownership of it.
func (d *Datablock) AddCategory(c Category) {
	c.setParent(d)
	d.categories = append(d.categories, c)
}

// Name returns the datablock entry key.
func (d *Datablock) Name() string { return d.name }

// SetName renames the datablock. Dotted hierarchical names of all
// contained values change with it; opaque uids do not.
func (d *Datablock) SetName(name string) { d.name = name }

// Categories lists the registered categories in declaration order.
func (d *Datablock) Categories() []Category {
	out := make([]Category, len(d.categories))
	copy(out, d.categories)

	return out
}

// Parameters flattens every category in declaration order.
func (d *Datablock) Parameters() []*Parameter {
	var out []*Parameter
	for _, c := range d.categories {
		out = append(out, c.Parameters()...)
	}

	return out
}

// Parent: datablocks are identity roots.
func (d *Datablock) Parent() Node { return nil }

// DatablockName declares the datablock segment.
func (d *Datablock) DatablockName() string { return d.name }

// CategoryCode: not declared at the datablock level.
func (d *Datablock) CategoryCode() string { return "" }

// CategoryEntryName: not declared at the datablock level.
func (d *Datablock) CategoryEntryName() string { return "" }

// Blocks is a keyed set of datablocks (SampleModels, Experiments embed
// it). Iteration order is insertion order; re-adding a name replaces in
// place.
type Blocks struct {
	blocks []Block
	index  map[string]int
}

// NewBlocks creates an empty datablock set.
func NewBlocks() Blocks {
	return Blocks{}
}

// Add inserts b keyed by its name, replacing any same-named block in
// place.
func (bs *Blocks) Add(b Block) {
	if i, ok := bs.lookup(b.Name()); ok {
		bs.blocks[i] = b
	} else {
		bs.blocks = append(bs.blocks, b)
	}
	bs.index = nil
}

// Get returns the datablock stored under name.
func (bs *Blocks) Get(name string) (Block, bool) {
	i, ok := bs.lookup(name)
	if !ok {
		return nil, false
	}

	return bs.blocks[i], true
}

// Delete removes the named datablock; its values become unresolvable
// through this set.
func (bs *Blocks) Delete(name string) bool {
	i, ok := bs.lookup(name)
	if !ok {
		return false
	}
	bs.blocks = append(bs.blocks[:i], bs.blocks[i+1:]...)
	bs.index = nil

	return true
}

func (bs *Blocks) lookup(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	if bs.index != nil {
		if i, ok := bs.index[name]; ok && i < len(bs.blocks) && bs.blocks[i].Name() == name {
			return i, true
		}
	}
	bs.index = make(map[string]int, len(bs.blocks))
	for i, b := range bs.blocks {
		bs.index[b.Name()] = i
	}
	i, ok := bs.index[name]

	return i, ok
}

// Len returns the number of stored datablocks.
func (bs *Blocks) Len() int { return len(bs.blocks) }

// Names lists the datablock names in insertion order.
func (bs *Blocks) Names() []string {
	out := make([]string, len(bs.blocks))
	for i, b := range bs.blocks {
		out[i] = b.Name()
	}

	return out
}

// All lists the stored datablocks in insertion order.
func (bs *Blocks) All() []Block {
	out := make([]Block, len(bs.blocks))
	copy(out, bs.blocks)

	return out
}

// Parameters flattens every datablock in insertion order. This ordering
// (blocks → categories → entries → attributes) is what the minimizer
// indexes its parameter vector by; it is a tested determinism property.
func (bs *Blocks) Parameters() []*Parameter {
	var out []*Parameter
	for _, b := range bs.blocks {
		out = append(out, b.Parameters()...)
	}

	return out
}

// FittableParameters lists every parameter that may be handed to a
// minimizer: the constrained flag is checked ahead of free, so a
// constraint-driven parameter is excluded even if a caller set free on
// it directly.
func (bs *Blocks) FittableParameters() []*Parameter {
	var out []*Parameter
	for _, p := range bs.Parameters() {
		if !p.Constrained() {
			out = append(out, p)
		}
	}

	return out
}

// FreeParameters lists the fittable parameters currently selected for
// refinement.
func (bs *Blocks) FreeParameters() []*Parameter {
	var out []*Parameter
	for _, p := range bs.FittableParameters() {
		if p.Free() {
			out = append(out, p)
		}
	}

	return out
}
