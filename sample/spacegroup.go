package sample

import "github.com/rietgo/rietgo/core"

// SpaceGroup holds the symmetry metadata of a sample model. Both
// attributes are descriptors: symmetry is never fitted.
type SpaceGroup struct {
	core.Item

	// NameHM is the Hermann–Mauguin space-group symbol (e.g. "P n m a").
	NameHM *core.Descriptor

	// ITCode is the IT coordinate system code (origin/setting choice).
	ITCode *core.Descriptor
}

// NewSpaceGroup constructs the space-group category with the given symbol
// ("" defaults to "P 1").
func NewSpaceGroup(nameHM string) *SpaceGroup {
	sg := &SpaceGroup{Item: core.NewItem("space_group")}
	sg.NameHM = core.NewDescriptor("name_h_m", nameHM,
		core.WithDefault("P 1"),
		core.WithDescriptorInfo("Hermann-Mauguin space group symbol"),
	)
	sg.ITCode = core.NewDescriptor("it_coordinate_system_code", "",
		core.WithDescriptorInfo("IT coordinate system code"),
	)
	sg.Attach(sg.NameHM, sg.ITCode)

	return sg
}

// wyckoffLetters reports the Wyckoff letters available in the given space
// group. The table covers the groups exercised by the bundled examples;
// any other symbol falls back to the full a..z alphabet so that a valid
// letter is never rejected for want of a table row.
func wyckoffLetters(symbol string) []string {
	if letters, ok := wyckoffTable[symbol]; ok {
		return letters
	}

	return allWyckoffLetters
}

var allWyckoffLetters = func() []string {
	out := make([]string, 0, 26)
	for c := 'a'; c <= 'z'; c++ {
		out = append(out, string(c))
	}

	return out
}()

var wyckoffTable = map[string][]string{
	"P 1":       {"a"},
	"P -1":      {"a", "b", "c", "d", "e", "f", "g", "h", "i"},
	"P n m a":   {"a", "b", "c", "d"},
	"P m -3 m":  {"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n"},
	"F m -3 m":  {"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"},
	"I a -3 d":  {"a", "b", "c", "d", "e", "f", "g", "h"},
	"P 63/m m c": {
		"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l",
	},
}
