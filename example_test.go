package rietgo_test

import (
	"fmt"

	"github.com/rietgo/rietgo/analysis"
	"github.com/rietgo/rietgo/experiment"
	"github.com/rietgo/rietgo/project"
	"github.com/rietgo/rietgo/sample"
)

// Example_refinement walks the whole workflow: build a model, attach a
// synthetic experiment, tie cell edges with a constraint, and refine
// the phase scale.
func Example_refinement() {
	p, err := project.New("demo")
	if err != nil {
		fmt.Println(err)

		return
	}

	// 1) one cubic sample model with a single atom site.
	m := sample.NewSampleModel("cube", sample.WithSpaceGroup("P m -3 m"))
	m.Cell.LengthA.SetValue(4)
	m.Cell.LengthB.SetValue(4)
	m.Cell.LengthC.SetValue(4)
	m.AtomSites.Add(sample.NewAtomSite("Si",
		sample.WithTypeSymbol("Si"),
		sample.WithFract(0, 0, 0),
	))
	p.SampleModels.Add(m)

	// 2) one constant-wavelength experiment linked to the model.
	e := experiment.New("npd",
		experiment.WithRadiationProbe(experiment.ProbeNeutron),
	)
	link := e.LinkedPhases.AddPhase("cube", 1.0)
	p.Experiments.Add(e)

	// 3) keep the cell cubic through the fit.
	p.Analysis.Constraints().AddAlias("a", m.Cell.LengthA)
	p.Analysis.Constraints().AddAlias("b", m.Cell.LengthB)
	p.Analysis.Constraints().AddAlias("c", m.Cell.LengthC)
	_ = p.Analysis.Constraints().AddConstraint("b", "a")
	_ = p.Analysis.Constraints().AddConstraint("c", "a")

	// 4) synthesize a measured pattern at scale 2, then refine the
	//    scale back from a deliberately wrong start.
	x := make([]float64, 401)
	for i := range x {
		x[i] = 20 + float64(i)*0.2
	}
	_ = e.Datastore.SetMeasuredData(x, make([]float64, len(x)), nil)
	link.Scale.SetValue(2.0)
	pattern, err := p.Analysis.Calculator().CalculatePattern(p.SampleModels, e)
	if err != nil {
		fmt.Println(err)

		return
	}
	su := make([]float64, len(x))
	for i := range su {
		su[i] = 1
	}
	_ = e.Datastore.SetMeasuredData(x, pattern, su)

	link.Scale.SetValue(1.0)
	link.Scale.SetFree(true)
	_ = p.Analysis.SetFitMode(analysis.FitModeJoint)

	result, err := p.Analysis.Fit()
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Printf("success: %v\n", result.Success)
	fmt.Printf("scale: %.2f\n", link.Scale.Value())
	fmt.Printf("cubic: %v\n", m.Cell.LengthB.Value() == m.Cell.LengthA.Value())
	// Output:
	// success: true
	// scale: 2.00
	// cubic: true
}
