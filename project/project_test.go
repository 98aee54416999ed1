package project_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rietgo/rietgo/analysis"
	"github.com/rietgo/rietgo/diag"
	"github.com/rietgo/rietgo/experiment"
	"github.com/rietgo/rietgo/project"
	"github.com/rietgo/rietgo/sample"
)

func init() {
	diag.SetOutput(io.Discard)
}

func TestNew_WiresAnalysisOverProjectSets(t *testing.T) {
	p, err := project.New("pbso4_study", project.WithTitle("PbSO4 neutron study"))
	require.NoError(t, err)

	assert.Equal(t, "pbso4_study", p.Name)
	assert.Equal(t, "PbSO4 neutron study", p.Info.Title)
	assert.False(t, p.Info.Created.IsZero())
	require.NotNil(t, p.Analysis)

	// The analysis sees blocks added to the project-level sets.
	p.SampleModels.Add(sample.NewSampleModel("pbso4"))
	_, err = p.Analysis.Fit()
	assert.ErrorIs(t, err, analysis.ErrNoExperiments,
		"model registered, experiments still missing")
}

func TestSummary(t *testing.T) {
	p, err := project.New("study", project.WithDescription("joint refinement rehearsal"))
	require.NoError(t, err)

	m := sample.NewSampleModel("lbco")
	m.Cell.LengthA.SetFree(true)
	p.SampleModels.Add(m)
	p.Experiments.Add(experiment.New("npd"))

	p.Analysis.Constraints().AddAlias("a", m.Cell.LengthA)
	p.Analysis.Constraints().AddAlias("b", m.Cell.LengthB)
	require.NoError(t, p.Analysis.Constraints().AddConstraint("b", "a"))

	out := p.Summary()

	assert.Contains(t, out, "project: study")
	assert.Contains(t, out, "joint refinement rehearsal")
	assert.Contains(t, out, "lbco.cell.length_a = 10  (free)")
	assert.Contains(t, out, "lbco.cell.length_b = 10  (constrained)")
	assert.Contains(t, out, "npd.instrument.wavelength")
	assert.Contains(t, out, "b = a")
	assert.NotContains(t, out, "last fit", "no result section before the first fit")
	assert.True(t, strings.HasPrefix(out, "project:"))
}
