// Package project is the top-level aggregate: named sample models,
// experiments, and the analysis that refines one against the other,
// plus plain-text summary reporting.
//
// ⚙️ Usage:
//
//	p, err := project.New("pbso4_study")
//	p.SampleModels.Add(sample.NewSampleModel("pbso4"))
//	p.Experiments.Add(experiment.New("npd"))
//	result, err := p.Analysis.Fit()
//	fmt.Print(p.Summary())
package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/rietgo/rietgo/analysis"
	"github.com/rietgo/rietgo/core"
	"github.com/rietgo/rietgo/experiment"
	"github.com/rietgo/rietgo/sample"
)

// Info carries the descriptive header of a project.
type Info struct {
	Title       string
	Description string
	Created     time.Time
}

// Project bundles everything one refinement study needs.
type Project struct {
	Name string
	Info Info

	SampleModels *sample.SampleModels
	Experiments  *experiment.Experiments
	Analysis     *analysis.Analysis
}

// Option configures a Project at construction.
type Option func(*Project)

// WithTitle sets the human-readable project title.
func WithTitle(title string) Option {
	return func(p *Project) { p.Info.Title = title }
}

// WithDescription sets the free-form project description.
func WithDescription(description string) Option {
	return func(p *Project) { p.Info.Description = description }
}

// New constructs an empty project with a wired analysis.
func New(name string, opts ...Option) (*Project, error) {
	models := sample.NewSampleModels()
	experiments := experiment.NewExperiments()
	a, err := analysis.New(models, experiments)
	if err != nil {
		return nil, err
	}

	p := &Project{
		Name:         name,
		Info:         Info{Title: name, Created: time.Now()},
		SampleModels: models,
		Experiments:  experiments,
		Analysis:     a,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Summary renders the project state as plain text: header, per-block
// parameter listings, constraint tables, and the last fit outcome.
func (p *Project) Summary() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "project: %s\n", p.Name)
	if p.Info.Title != "" && p.Info.Title != p.Name {
		fmt.Fprintf(&sb, "title: %s\n", p.Info.Title)
	}
	if p.Info.Description != "" {
		fmt.Fprintf(&sb, "description: %s\n", p.Info.Description)
	}
	fmt.Fprintf(&sb, "created: %s\n", p.Info.Created.Format(time.RFC3339))

	sb.WriteString("\nsample models:\n")
	writeParameters(&sb, p.SampleModels.Parameters())

	sb.WriteString("\nexperiments:\n")
	writeParameters(&sb, p.Experiments.Parameters())

	if constraints := p.Analysis.Constraints().Summary(); constraints != "" {
		sb.WriteString("\nconstraints:\n")
		sb.WriteString(constraints)
	}

	if r := p.Analysis.Result; r != nil {
		sb.WriteString("\nlast fit:\n")
		fmt.Fprintf(&sb, "  backend: %s\n", r.Backend)
		fmt.Fprintf(&sb, "  success: %v\n", r.Success)
		fmt.Fprintf(&sb, "  reduced chi2: %.5g\n", r.ReducedChiSquare)
		fmt.Fprintf(&sb, "  elapsed: %s\n", r.FittingTime)
	}

	return sb.String()
}

// writeParameters lists parameters one per line with value,
// uncertainty, and refinement flags.
func writeParameters(sb *strings.Builder, params []*core.Parameter) {
	for _, p := range params {
		fmt.Fprintf(sb, "  %s = %v", p.UniqueName(), p.Value())
		if su, ok := p.Uncertainty(); ok {
			fmt.Fprintf(sb, " ± %.3g", su)
		}
		switch {
		case p.Constrained():
			sb.WriteString("  (constrained)")
		case p.Free():
			sb.WriteString("  (free)")
		}
		sb.WriteString("\n")
	}
}
