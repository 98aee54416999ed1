// Singleton categories of an experiment: type, instrument, peak profile.
package experiment

import "github.com/rietgo/rietgo/core"

// ExperimentType describes what kind of measurement this is. All three
// attributes are membership-validated descriptors.
type ExperimentType struct {
	core.Item

	SampleForm     *core.Descriptor
	BeamMode       *core.Descriptor
	RadiationProbe *core.Descriptor
}

// NewExperimentType constructs the type category; empty arguments take
// the powder / constant-wavelength / neutron defaults.
func NewExperimentType(sampleForm, beamMode, probe string) *ExperimentType {
	t := &ExperimentType{Item: core.NewItem("expt_type")}
	t.SampleForm = core.NewDescriptor("sample_form", sampleForm,
		core.WithDefault(SampleFormPowder),
		core.WithRule(core.NewChoice(SampleFormPowder)),
	)
	t.BeamMode = core.NewDescriptor("beam_mode", beamMode,
		core.WithDefault(BeamModeConstantWavelength),
		core.WithRule(core.NewChoice(BeamModeConstantWavelength, BeamModeTimeOfFlight)),
	)
	t.RadiationProbe = core.NewDescriptor("radiation_probe", probe,
		core.WithDefault(ProbeNeutron),
		core.WithRule(core.NewChoice(ProbeNeutron, ProbeXray)),
	)
	t.Attach(t.SampleForm, t.BeamMode, t.RadiationProbe)

	return t
}

// Instrument is the marker for the per-beam-mode instrument category.
type Instrument interface {
	core.Category
}

// CWInstrument holds the constant-wavelength instrument setup.
type CWInstrument struct {
	core.Item

	// SetupWavelength is the incident neutron or X-ray wavelength (Å).
	SetupWavelength *core.Parameter

	// CalibTwoThetaOffset is the instrument misalignment offset (deg).
	CalibTwoThetaOffset *core.Parameter
}

// NewCWInstrument constructs the CW instrument with the Cu Kα1 default
// wavelength.
func NewCWInstrument() *CWInstrument {
	i := &CWInstrument{Item: core.NewItem("instrument")}
	i.SetupWavelength = core.NewParameter("wavelength", 1.5406,
		core.WithUnits("Å"),
		core.WithRange(0.1, 10),
		core.WithNumberDefault(1.5406),
		core.WithInfo("Incident neutron or X-ray wavelength"),
	)
	i.CalibTwoThetaOffset = core.NewParameter("twotheta_offset", 0,
		core.WithUnits("deg"),
		core.WithInfo("Instrument misalignment offset"),
	)
	i.Attach(i.SetupWavelength, i.CalibTwoThetaOffset)

	return i
}

// TOFInstrument holds the time-of-flight instrument setup and d→TOF
// calibration.
type TOFInstrument struct {
	core.Item

	SetupTwoThetaBank *core.Parameter
	CalibDToTofOffset *core.Parameter
	CalibDToTofLinear *core.Parameter
	CalibDToTofQuad   *core.Parameter
	CalibDToTofRecip  *core.Parameter
}

// NewTOFInstrument constructs the TOF instrument with conventional bank
// defaults.
func NewTOFInstrument() *TOFInstrument {
	i := &TOFInstrument{Item: core.NewItem("instrument")}
	i.SetupTwoThetaBank = core.NewParameter("twotheta_bank", 150.0,
		core.WithUnits("deg"),
		core.WithInfo("Detector bank position"),
	)
	i.CalibDToTofOffset = core.NewParameter("d_to_tof_offset", 0,
		core.WithUnits("µs"),
		core.WithInfo("TOF offset"),
	)
	i.CalibDToTofLinear = core.NewParameter("d_to_tof_linear", 10000.0,
		core.WithUnits("µs/Å"),
		core.WithInfo("TOF linear conversion"),
	)
	i.CalibDToTofQuad = core.NewParameter("d_to_tof_quad", -1.0,
		core.WithUnits("µs/Å²"),
		core.WithInfo("TOF quadratic correction"),
	)
	i.CalibDToTofRecip = core.NewParameter("d_to_tof_recip", 0,
		core.WithUnits("µs·Å"),
		core.WithInfo("TOF reciprocal velocity correction"),
	)
	i.Attach(i.SetupTwoThetaBank, i.CalibDToTofOffset, i.CalibDToTofLinear,
		i.CalibDToTofQuad, i.CalibDToTofRecip)

	return i
}

// Peak is the marker for the per-beam-mode peak-profile category.
type Peak interface {
	core.Category
}

// CWPeak holds the constant-wavelength pseudo-Voigt broadening terms:
// Caglioti Gaussian U/V/W and Lorentzian X/Y.
type CWPeak struct {
	core.Item

	BroadGaussU   *core.Parameter
	BroadGaussV   *core.Parameter
	BroadGaussW   *core.Parameter
	BroadLorentzX *core.Parameter
	BroadLorentzY *core.Parameter
}

// NewCWPeak constructs the CW peak category with mild default widths.
func NewCWPeak() *CWPeak {
	p := &CWPeak{Item: core.NewItem("peak")}
	p.BroadGaussU = core.NewParameter("broad_gauss_u", 0.01, core.WithUnits("deg²"))
	p.BroadGaussV = core.NewParameter("broad_gauss_v", -0.01, core.WithUnits("deg²"))
	p.BroadGaussW = core.NewParameter("broad_gauss_w", 0.02, core.WithUnits("deg²"))
	p.BroadLorentzX = core.NewParameter("broad_lorentz_x", 0, core.WithUnits("deg"))
	p.BroadLorentzY = core.NewParameter("broad_lorentz_y", 0, core.WithUnits("deg"))
	p.Attach(p.BroadGaussU, p.BroadGaussV, p.BroadGaussW,
		p.BroadLorentzX, p.BroadLorentzY)

	return p
}

// TOFPeak holds the time-of-flight Gaussian broadening sigmas.
type TOFPeak struct {
	core.Item

	BroadGaussSigma0 *core.Parameter
	BroadGaussSigma1 *core.Parameter
	BroadGaussSigma2 *core.Parameter
}

// NewTOFPeak constructs the TOF peak category.
func NewTOFPeak() *TOFPeak {
	p := &TOFPeak{Item: core.NewItem("peak")}
	p.BroadGaussSigma0 = core.NewParameter("broad_gauss_sigma_0", 0, core.WithUnits("µs²"))
	p.BroadGaussSigma1 = core.NewParameter("broad_gauss_sigma_1", 0.1, core.WithUnits("µs²/Å²"))
	p.BroadGaussSigma2 = core.NewParameter("broad_gauss_sigma_2", 0, core.WithUnits("µs²/Å⁴"))
	p.Attach(p.BroadGaussSigma0, p.BroadGaussSigma1, p.BroadGaussSigma2)

	return p
}
