// Built-in Gaussian kernel: orthogonal-cell reflection enumeration and
// area-normalized Gaussian peaks.
package calc

import (
	"math"
	"sort"

	"github.com/rietgo/rietgo/experiment"
	"github.com/rietgo/rietgo/sample"
)

func init() {
	Register("gauss", func() Engine { return gaussEngine{} })
}

// fwhmToSigma converts a full width at half maximum to a Gaussian sigma.
const fwhmToSigma = 2.3548200450309493 // 2*sqrt(2*ln 2)

// gaussEngine treats the unit cell as orthogonal (1/d² = h²/a² + k²/b²
// + l²/c², cell angles ignored) and scatters every atom site with unit
// scattering length. Reflections from the non-negative index octant
// carry a 2^nonzero sign multiplicity. No Lorentz-polarization
// correction is applied.
type gaussEngine struct{}

func (gaussEngine) Name() string { return "gauss" }

// Reflections enumerates hkl with d >= dMin, strongest first.
func (gaussEngine) Reflections(model *sample.SampleModel, dMin float64) []Reflection {
	if dMin <= 0 {
		dMin = 0.5
	}
	a := model.Cell.LengthA.Value()
	b := model.Cell.LengthB.Value()
	c := model.Cell.LengthC.Value()

	hMax := int(math.Ceil(a / dMin))
	kMax := int(math.Ceil(b / dMin))
	lMax := int(math.Ceil(c / dMin))

	sites := model.AtomSites.All()

	var out []Reflection
	for h := 0; h <= hMax; h++ {
		for k := 0; k <= kMax; k++ {
			for l := 0; l <= lMax; l++ {
				if h == 0 && k == 0 && l == 0 {
					continue
				}
				invD2 := float64(h*h)/(a*a) + float64(k*k)/(b*b) + float64(l*l)/(c*c)
				d := 1 / math.Sqrt(invD2)
				if d < dMin {
					continue
				}

				intensity := multiplicity(h, k, l) * structureFactorSq(sites, h, k, l, d)
				if intensity <= 0 {
					continue
				}
				out = append(out, Reflection{H: h, K: k, L: l, D: d, Intensity: intensity})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Intensity > out[j].Intensity })

	return out
}

// multiplicity counts the sign combinations of the non-negative octant
// representative.
func multiplicity(h, k, l int) float64 {
	m := 1.0
	for _, idx := range [3]int{h, k, l} {
		if idx != 0 {
			m *= 2
		}
	}

	return m
}

// structureFactorSq computes |F|² for unit point scatterers with
// occupancy and isotropic displacement damping. An empty site list
// scatters as one atom at the origin, so a bare lattice still produces
// a pattern.
func structureFactorSq(sites []*sample.AtomSite, h, k, l int, d float64) float64 {
	if len(sites) == 0 {
		return 1
	}

	s2 := 1 / (4 * d * d) // (sinθ/λ)²
	var re, im float64
	for _, site := range sites {
		f := site.Occupancy.Value() * math.Exp(-site.BIso.Value()*s2)
		phase := 2 * math.Pi * (float64(h)*site.FractX.Value() +
			float64(k)*site.FractY.Value() +
			float64(l)*site.FractZ.Value())
		re += f * math.Cos(phase)
		im += f * math.Sin(phase)
	}

	return re*re + im*im
}

// SingleModelPattern renders the model's reflections as area-normalized
// Gaussians on x, positioned per the experiment's beam mode.
func (g gaussEngine) SingleModelPattern(model *sample.SampleModel, e *experiment.Experiment, x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}

	dMin := observableDMin(e)
	switch inst := e.Instrument.(type) {
	case *experiment.TOFInstrument:
		peak, ok := e.Peak.(*experiment.TOFPeak)
		if !ok {
			return out
		}
		g.tofPattern(model, inst, peak, dMin, x, out)
	case *experiment.CWInstrument:
		peak, ok := e.Peak.(*experiment.CWPeak)
		if !ok {
			return out
		}
		g.cwPattern(model, inst, peak, dMin, x, out)
	}

	return out
}

func (g gaussEngine) cwPattern(model *sample.SampleModel, inst *experiment.CWInstrument, peak *experiment.CWPeak, dMin float64, x, out []float64) {
	lambda := inst.SetupWavelength.Value()
	offset := inst.CalibTwoThetaOffset.Value()

	u := peak.BroadGaussU.Value()
	v := peak.BroadGaussV.Value()
	w := peak.BroadGaussW.Value()

	for _, r := range g.Reflections(model, dMin) {
		sinTheta := lambda / (2 * r.D)
		if sinTheta >= 1 {
			continue
		}
		theta := math.Asin(sinTheta)
		pos := 2*theta*180/math.Pi + offset

		// Caglioti width in degrees squared.
		tanTheta := math.Tan(theta)
		fwhm2 := u*tanTheta*tanTheta + v*tanTheta + w
		if fwhm2 < 1e-6 {
			fwhm2 = 1e-6
		}
		sigma := math.Sqrt(fwhm2) / fwhmToSigma

		addGaussian(out, x, pos, sigma, r.Intensity)
	}
}

func (g gaussEngine) tofPattern(model *sample.SampleModel, inst *experiment.TOFInstrument, peak *experiment.TOFPeak, dMin float64, x, out []float64) {
	offset := inst.CalibDToTofOffset.Value()
	linear := inst.CalibDToTofLinear.Value()
	quad := inst.CalibDToTofQuad.Value()
	recip := inst.CalibDToTofRecip.Value()

	s0 := peak.BroadGaussSigma0.Value()
	s1 := peak.BroadGaussSigma1.Value()
	s2 := peak.BroadGaussSigma2.Value()

	for _, r := range g.Reflections(model, dMin) {
		d := r.D
		pos := offset + linear*d + quad*d*d + recip/d

		sigma2 := s0 + s1*d*d + s2*d*d*d*d
		if sigma2 < 1e-6 {
			sigma2 = 1e-6
		}
		sigma := math.Sqrt(sigma2)

		addGaussian(out, x, pos, sigma, r.Intensity)
	}
}

// addGaussian accumulates an area-normalized Gaussian of the given
// integrated intensity. Points beyond five sigma are skipped.
func addGaussian(out, x []float64, pos, sigma, intensity float64) {
	norm := intensity / (sigma * math.Sqrt(2*math.Pi))
	cutoff := 5 * sigma
	for i, xi := range x {
		dx := xi - pos
		if dx < -cutoff || dx > cutoff {
			continue
		}
		out[i] += norm * math.Exp(-dx*dx/(2*sigma*sigma))
	}
}
