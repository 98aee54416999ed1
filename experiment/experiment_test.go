package experiment_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rietgo/rietgo/diag"
	"github.com/rietgo/rietgo/experiment"
)

func init() {
	diag.SetOutput(io.Discard)
}

// ─────────────────────────── construction ───────────────────────────

func TestNew_DefaultsToConstantWavelength(t *testing.T) {
	e := experiment.New("npd")

	assert.Equal(t, experiment.BeamModeConstantWavelength, e.Type.BeamMode.Value())
	assert.Equal(t, experiment.ProbeNeutron, e.Type.RadiationProbe.Value())

	cw, ok := e.Instrument.(*experiment.CWInstrument)
	require.True(t, ok, "default instrument must be CW")
	assert.InDelta(t, 1.5406, cw.SetupWavelength.Value(), 1e-12)

	_, ok = e.Peak.(*experiment.CWPeak)
	assert.True(t, ok, "default peak must be CW")
}

func TestNew_TimeOfFlightSelectsTOFComponents(t *testing.T) {
	e := experiment.New("tofd", experiment.WithBeamMode(experiment.BeamModeTimeOfFlight))

	tof, ok := e.Instrument.(*experiment.TOFInstrument)
	require.True(t, ok)
	assert.InDelta(t, 150.0, tof.SetupTwoThetaBank.Value(), 1e-12)
	assert.InDelta(t, 10000.0, tof.CalibDToTofLinear.Value(), 1e-12)

	_, ok = e.Peak.(*experiment.TOFPeak)
	assert.True(t, ok)
}

func TestNew_RejectedBeamModeFallsBackToCW(t *testing.T) {
	e := experiment.New("bad", experiment.WithBeamMode("laue"))

	assert.Equal(t, experiment.BeamModeConstantWavelength, e.Type.BeamMode.Value())
	_, ok := e.Instrument.(*experiment.CWInstrument)
	assert.True(t, ok)
}

func TestExperiment_ParameterNaming(t *testing.T) {
	e := experiment.New("npd")
	cw := e.Instrument.(*experiment.CWInstrument)

	assert.Equal(t, "npd.instrument.wavelength", cw.SetupWavelength.UniqueName())
}

// ─────────────────────────── linked phases ──────────────────────────

func TestLinkedPhases_AddAndRelink(t *testing.T) {
	e := experiment.New("npd")
	e.LinkedPhases.AddPhase("pbso4", 1.0)
	e.LinkedPhases.AddPhase("lbco", 0.5)

	lp, ok := e.LinkedPhases.Get("pbso4")
	require.True(t, ok)
	assert.InDelta(t, 1.0, lp.Scale.Value(), 1e-12)
	assert.Equal(t, "npd.linked_phases.pbso4.scale", lp.Scale.UniqueName())

	// Re-adding the same id replaces in place.
	e.LinkedPhases.AddPhase("pbso4", 2.0)
	assert.Equal(t, 2, e.LinkedPhases.Len())
	lp, _ = e.LinkedPhases.Get("pbso4")
	assert.InDelta(t, 2.0, lp.Scale.Value(), 1e-12)
}

// ─────────────────────────── background ─────────────────────────────

func TestLineSegmentBackground_ClampsOutsideAnchors(t *testing.T) {
	b := experiment.NewLineSegmentBackground()
	b.AddPoint(10, 100)
	b.AddPoint(30, 200)

	got := b.Calculate([]float64{5, 10, 20, 30, 40})

	assert.InDelta(t, 100, got[0], 1e-9, "below range clamps to first anchor")
	assert.InDelta(t, 100, got[1], 1e-9)
	assert.InDelta(t, 150, got[2], 1e-9, "midpoint interpolates linearly")
	assert.InDelta(t, 200, got[3], 1e-9)
	assert.InDelta(t, 200, got[4], 1e-9, "above range clamps to last anchor")
}

func TestLineSegmentBackground_UnsortedAnchorsAreOrdered(t *testing.T) {
	b := experiment.NewLineSegmentBackground()
	b.AddPoint(30, 200)
	b.AddPoint(10, 100)

	got := b.Calculate([]float64{20})

	assert.InDelta(t, 150, got[0], 1e-9)
}

func TestLineSegmentBackground_Degenerate(t *testing.T) {
	b := experiment.NewLineSegmentBackground()
	assert.Equal(t, []float64{0, 0}, b.Calculate([]float64{1, 2}), "no anchors means zero background")

	b.AddPoint(15, 42)
	got := b.Calculate([]float64{1, 2})
	assert.InDelta(t, 42, got[0], 1e-12, "single anchor holds everywhere")
	assert.InDelta(t, 42, got[1], 1e-12)
}

func TestChebyshevBackground_Evaluation(t *testing.T) {
	b := experiment.NewChebyshevBackground()
	b.AddTerm(0, 3)
	b.AddTerm(2, 1)

	// Grid [0, 10] maps onto u in [-1, 1]; T2(u) = 2u^2 - 1.
	got := b.Calculate([]float64{0, 5, 10})

	assert.InDelta(t, 3+1, got[0], 1e-9, "u = -1, T2 = 1")
	assert.InDelta(t, 3-1, got[1], 1e-9, "u = 0, T2 = -1")
	assert.InDelta(t, 3+1, got[2], 1e-9, "u = +1, T2 = 1")
}

func TestNewBackground_UnknownKindFallsBack(t *testing.T) {
	b := experiment.NewBackground("spline")

	_, ok := b.(*experiment.LineSegmentBackground)
	assert.True(t, ok)
}

// ─────────────────────────── excluded regions ───────────────────────

func TestExcludedRegions_Mask(t *testing.T) {
	x := experiment.NewExcludedRegions()
	x.AddRegion(20, 25)
	x.AddRegion(42, 40) // reversed edges are normalized

	mask := x.IncludedMask([]float64{10, 20, 22, 25, 30, 41, 50})

	assert.Equal(t, []bool{true, false, false, false, true, false, true}, mask)
}

func TestExcludedRegions_EmptyIncludesAll(t *testing.T) {
	x := experiment.NewExcludedRegions()

	mask := x.IncludedMask([]float64{1, 2, 3})

	assert.Equal(t, []bool{true, true, true}, mask)
}

// ─────────────────────────── datastore ──────────────────────────────

func TestDatastore_SetMeasuredData(t *testing.T) {
	var d experiment.Datastore

	err := d.SetMeasuredData([]float64{1, 2}, []float64{4, 9}, nil)
	require.NoError(t, err)
	assert.True(t, d.HasMeasuredData())
	assert.InDelta(t, 2, d.MeasSu[0], 1e-12, "missing sigmas default to sqrt(y)")
	assert.InDelta(t, 3, d.MeasSu[1], 1e-12)

	err = d.SetMeasuredData([]float64{1, 2}, []float64{4}, nil)
	assert.ErrorIs(t, err, experiment.ErrLengthMismatch)
}

func TestDatastore_SigmaFloor(t *testing.T) {
	var d experiment.Datastore

	require.NoError(t, d.SetMeasuredData([]float64{1}, []float64{0}, nil))
	assert.InDelta(t, 1, d.MeasSu[0], 1e-12, "zero counts still get a finite weight")
}

func TestDatastore_LoadMeasuredData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pattern.xye")
	content := "# 2theta  intensity  sigma\n10.0 100.0 10.0\n10.1 121.0 11.0\n\n10.2 144.0 12.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var d experiment.Datastore
	require.NoError(t, d.LoadMeasuredData(path))

	assert.Equal(t, []float64{10.0, 10.1, 10.2}, d.X)
	assert.Equal(t, []float64{100, 121, 144}, d.Meas)
	assert.Equal(t, []float64{10, 11, 12}, d.MeasSu)
}

func TestDatastore_LoadTwoColumnFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pattern.xy")
	require.NoError(t, os.WriteFile(path, []byte("10 100\n11 400\n"), 0o644))

	var d experiment.Datastore
	require.NoError(t, d.LoadMeasuredData(path))

	assert.Equal(t, []float64{10, 20}, d.MeasSu)
}

func TestDatastore_LoadErrors(t *testing.T) {
	var d experiment.Datastore

	assert.ErrorIs(t, d.LoadMeasuredData("does/not/exist.xy"), experiment.ErrBadDataFile)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.xy")
	require.NoError(t, os.WriteFile(bad, []byte("10 abc\n"), 0o644))
	assert.ErrorIs(t, d.LoadMeasuredData(bad), experiment.ErrBadDataFile)

	empty := filepath.Join(dir, "empty.xy")
	require.NoError(t, os.WriteFile(empty, []byte("# only comments\n"), 0o644))
	assert.ErrorIs(t, d.LoadMeasuredData(empty), experiment.ErrBadDataFile)
}

func TestExperiment_WithDataPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pattern.xye")
	require.NoError(t, os.WriteFile(path, []byte("10 100 10\n11 110 10\n"), 0o644))

	e := experiment.New("npd", experiment.WithDataPath(path))

	assert.True(t, e.Datastore.HasMeasuredData())
	assert.Len(t, e.Datastore.X, 2)
}
