package experiment

import "github.com/rietgo/rietgo/core"

// LinkedPhase associates one sample model with this experiment by name
// (a weak reference: the model may be renamed or removed independently)
// and carries its fittable scale factor.
type LinkedPhase struct {
	core.Item

	ID    *core.Descriptor
	Scale *core.Parameter
}

// NewLinkedPhase links the model named id with the given scale.
func NewLinkedPhase(id string, scale float64) *LinkedPhase {
	lp := &LinkedPhase{Item: core.NewItem("linked_phases")}
	lp.ID = core.NewDescriptor("id", id,
		core.WithDescriptorInfo("Name of the linked sample model"))
	lp.Scale = core.NewParameter("scale", scale,
		core.WithNumberDefault(1),
		core.WithRange(0, inf),
		core.WithInfo("Phase scale factor"),
	)
	lp.Attach(lp.ID, lp.Scale)
	lp.SetEntryFunc(func() string { return lp.ID.Value() })

	return lp
}

// LinkedPhases is the repeatable category of phase links.
type LinkedPhases struct {
	core.Collection
}

// NewLinkedPhases constructs an empty link set.
func NewLinkedPhases() *LinkedPhases {
	return &LinkedPhases{Collection: core.NewCollection("linked_phases")}
}

// AddPhase links the model named id at the given scale, replacing any
// existing link to the same id.
func (l *LinkedPhases) AddPhase(id string, scale float64) *LinkedPhase {
	lp := NewLinkedPhase(id, scale)
	l.Add(lp)

	return lp
}

// Get returns the link for the model named id.
func (l *LinkedPhases) Get(id string) (*LinkedPhase, bool) {
	e, ok := l.Collection.Get(id)
	if !ok {
		return nil, false
	}
	lp, ok := e.(*LinkedPhase)

	return lp, ok
}

// All lists the links in insertion order.
func (l *LinkedPhases) All() []*LinkedPhase {
	out := make([]*LinkedPhase, 0, l.Len())
	for _, e := range l.Entries() {
		if lp, ok := e.(*LinkedPhase); ok {
			out = append(out, lp)
		}
	}

	return out
}
