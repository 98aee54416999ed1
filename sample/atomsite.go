package sample

import (
	"math"

	"github.com/rietgo/rietgo/core"
)

// AtomSite is one repeatable atom-site row, keyed by its label. The
// entry key follows the label descriptor, so renaming a site is picked
// up by the collection's lazy index.
type AtomSite struct {
	core.Item

	Label         *core.Descriptor
	TypeSymbol    *core.Descriptor
	FractX        *core.Parameter
	FractY        *core.Parameter
	FractZ        *core.Parameter
	WyckoffLetter *core.Descriptor
	Occupancy     *core.Parameter
	BIso          *core.Parameter
	ADPType       *core.Descriptor

	// wyckoffAllowed supplies the current membership set for the Wyckoff
	// letter. AtomSites.Add rewires it to follow the owning model's space
	// group.
	wyckoffAllowed func() []string
}

// AtomSiteOption configures an AtomSite at construction.
type AtomSiteOption func(*atomSiteConfig)

type atomSiteConfig struct {
	typeSymbol string
	fx, fy, fz float64
	wyckoff    string
	occupancy  float64
	biso       float64
	adpType    string
}

// WithTypeSymbol sets the chemical symbol of the atom at this site.
func WithTypeSymbol(symbol string) AtomSiteOption {
	return func(c *atomSiteConfig) { c.typeSymbol = symbol }
}

// WithFract sets the fractional coordinates within the unit cell.
func WithFract(x, y, z float64) AtomSiteOption {
	return func(c *atomSiteConfig) { c.fx, c.fy, c.fz = x, y, z }
}

// WithWyckoff sets the Wyckoff letter of the site.
func WithWyckoff(letter string) AtomSiteOption {
	return func(c *atomSiteConfig) { c.wyckoff = letter }
}

// WithOccupancy sets the site occupancy in [0, 1].
func WithOccupancy(occ float64) AtomSiteOption {
	return func(c *atomSiteConfig) { c.occupancy = occ }
}

// WithBIso sets the isotropic atomic displacement parameter (Å²).
func WithBIso(biso float64) AtomSiteOption {
	return func(c *atomSiteConfig) { c.biso = biso }
}

// WithADPType sets the atomic displacement parameter convention.
func WithADPType(t string) AtomSiteOption {
	return func(c *atomSiteConfig) { c.adpType = t }
}

// NewAtomSite constructs an atom-site row. The label must be an
// identifier-safe string; a rejected label degrades to "Si" with a
// logged diagnostic, like every other validation failure.
func NewAtomSite(label string, opts ...AtomSiteOption) *AtomSite {
	cfg := atomSiteConfig{
		typeSymbol: "Si",
		occupancy:  1.0,
		adpType:    "Biso",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &AtomSite{Item: core.NewItem("atom_site")}
	s.wyckoffAllowed = func() []string { return allWyckoffLetters }

	s.Label = core.NewDescriptor("label", label,
		core.WithDefault("Si"),
		core.WithRule(core.NewPattern(`[A-Za-z_][A-Za-z0-9_]*`)),
		core.WithDescriptorInfo("Unique identifier for the atom site"),
	)
	s.TypeSymbol = core.NewDescriptor("type_symbol", cfg.typeSymbol,
		core.WithDefault("Si"),
		core.WithRule(core.NewChoice(elementSymbols...)),
		core.WithDescriptorInfo("Chemical symbol of the atom at this site"),
	)
	s.FractX = core.NewParameter("fract_x", cfg.fx,
		core.WithInfo("Fractional x-coordinate within the unit cell"),
	)
	s.FractY = core.NewParameter("fract_y", cfg.fy,
		core.WithInfo("Fractional y-coordinate within the unit cell"),
	)
	s.FractZ = core.NewParameter("fract_z", cfg.fz,
		core.WithInfo("Fractional z-coordinate within the unit cell"),
	)
	s.WyckoffLetter = core.NewDescriptor("wyckoff_letter", cfg.wyckoff,
		core.WithRule(core.NewDynamicChoice(func() []string { return s.wyckoffAllowed() })),
		core.WithDescriptorInfo("Wyckoff letter of the site in the space group"),
	)
	s.Occupancy = core.NewParameter("occupancy", cfg.occupancy,
		core.WithRange(0, 1),
		core.WithNumberDefault(1.0),
		core.WithInfo("Fraction of the site occupied by the atom type"),
	)
	s.BIso = core.NewParameter("b_iso", cfg.biso,
		core.WithUnits("Å²"),
		core.WithRange(0, math.Inf(1)),
		core.WithInfo("Isotropic atomic displacement parameter"),
	)
	s.ADPType = core.NewDescriptor("adp_type", cfg.adpType,
		core.WithDefault("Biso"),
		core.WithRule(core.NewChoice("Biso")),
		core.WithDescriptorInfo("Atomic displacement parameter convention"),
	)

	s.Attach(s.Label, s.TypeSymbol, s.FractX, s.FractY, s.FractZ,
		s.WyckoffLetter, s.Occupancy, s.BIso, s.ADPType)
	s.SetEntryFunc(func() string { return s.Label.Value() })

	return s
}

// AtomSites is the keyed collection of atom-site rows of one model.
type AtomSites struct {
	core.Collection

	model *SampleModel
}

// Add inserts the site keyed by its label (replace in place on a
// duplicate label) and wires its Wyckoff membership to the owning
// model's space group.
func (a *AtomSites) Add(site *AtomSite) {
	if a.model != nil {
		model := a.model
		site.wyckoffAllowed = func() []string {
			return wyckoffLetters(model.SpaceGroup.NameHM.Value())
		}
	}
	a.Collection.Add(site)
}

// Get returns the site with the given label.
func (a *AtomSites) Get(label string) (*AtomSite, bool) {
	e, ok := a.Collection.Get(label)
	if !ok {
		return nil, false
	}
	site, ok := e.(*AtomSite)

	return site, ok
}

// All lists the sites in insertion order.
func (a *AtomSites) All() []*AtomSite {
	out := make([]*AtomSite, 0, a.Len())
	for _, e := range a.Entries() {
		if site, ok := e.(*AtomSite); ok {
			out = append(out, site)
		}
	}

	return out
}

// MustGet returns the site with the given label or nil when absent;
// convenient for chained access in examples and tests.
func (a *AtomSites) MustGet(label string) *AtomSite {
	site, _ := a.Get(label)

	return site
}

// elementSymbols is the membership set for TypeSymbol: the chemical
// elements through Og.
var elementSymbols = []string{
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}
