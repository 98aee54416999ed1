// Package sample_test validates the sample-model datablock: default
// categories, atom-site keying, Wyckoff membership following the space
// group, and the free-parameter queries.
package sample_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rietgo/rietgo/diag"
	"github.com/rietgo/rietgo/sample"
)

func init() {
	diag.SetOutput(io.Discard)
}

func TestNewSampleModel_Defaults(t *testing.T) {
	m := sample.NewSampleModel("pbso4")

	assert.Equal(t, "P 1", m.SpaceGroup.NameHM.Value())
	assert.Equal(t, 10.0, m.Cell.LengthA.Value())
	assert.Equal(t, 90.0, m.Cell.AngleGamma.Value())
	assert.Equal(t, 0, m.AtomSites.Len())
}

func TestSampleModel_ParameterNaming(t *testing.T) {
	m := sample.NewSampleModel("pbso4")
	m.AtomSites.Add(sample.NewAtomSite("Pb",
		sample.WithTypeSymbol("Pb"),
		sample.WithFract(0.1876, 0.25, 0.167),
		sample.WithBIso(1.3729),
	))

	require.Equal(t, "pbso4.cell.length_a", m.Cell.LengthA.UniqueName())
	site := m.AtomSites.MustGet("Pb")
	require.NotNil(t, site)
	require.Equal(t, "pbso4.atom_site.Pb.b_iso", site.BIso.UniqueName())
	assert.Equal(t, 1.3729, site.BIso.Value())
}

func TestAtomSites_WyckoffFollowsSpaceGroup(t *testing.T) {
	m := sample.NewSampleModel("lbco", sample.WithSpaceGroup("P n m a"))
	m.AtomSites.Add(sample.NewAtomSite("La"))
	site := m.AtomSites.MustGet("La")

	// "P n m a" carries letters a..d only.
	site.WyckoffLetter.SetValue("c")
	assert.Equal(t, "c", site.WyckoffLetter.Value())
	site.WyckoffLetter.SetValue("q")
	assert.Equal(t, "c", site.WyckoffLetter.Value(), "letter outside the group must be rejected")

	// The allowed set follows the current space group, not a snapshot.
	m.SpaceGroup.NameHM.SetValue("P m -3 m")
	site.WyckoffLetter.SetValue("n")
	assert.Equal(t, "n", site.WyckoffLetter.Value())
}

// Scenario: a freed b_iso shows up in its own model's free parameters and
// in no other model's.
func TestFreeParameters_ScopedToOwningModel(t *testing.T) {
	m1 := sample.NewSampleModel("pbso4")
	m1.AtomSites.Add(sample.NewAtomSite("Pb", sample.WithBIso(1.3729)))
	m2 := sample.NewSampleModel("lbco")
	m2.AtomSites.Add(sample.NewAtomSite("La", sample.WithBIso(0.5)))

	models := sample.NewSampleModels()
	models.Add(m1)
	models.Add(m2)

	biso := m1.AtomSites.MustGet("Pb").BIso
	biso.SetFree(true)

	free := models.FreeParameters()
	require.Len(t, free, 1)
	assert.Same(t, biso, free[0])
	assert.Equal(t, "pbso4.atom_site.Pb.b_iso", free[0].UniqueName())

	for _, p := range m2.Parameters() {
		assert.False(t, p.Free(), "other model must stay untouched")
	}
}

func TestSampleModels_GetTyped(t *testing.T) {
	models := sample.NewSampleModels()
	models.Add(sample.NewSampleModel("one"))

	m, ok := models.Get("one")
	require.True(t, ok)
	require.Equal(t, "one", m.Name())

	_, ok = models.Get("absent")
	assert.False(t, ok)
}
