// Descriptor and Parameter: the two concrete value types. A Descriptor is
// non-fittable string metadata (space-group symbol, atom label); a
// Parameter is a numeric quantity the minimizer may adjust. Both carry an
// opaque uid and resolve a dotted hierarchical name through their owner
// chain.
package core

import (
	"math"

	"github.com/google/uuid"

	"github.com/rietgo/rietgo/diag"
)

// attr holds the identity fields shared by Descriptor and Parameter.
type attr struct {
	name        string
	units       string
	description string
	uid         string
	parent      Node
}

func newAttr(name string) attr {
	return attr{name: name, uid: newUID()}
}

// newUID generates the opaque per-instance token used as the
// optimizer-facing identifier. Identity is deliberately decoupled from the
// hierarchical name, which can mutate when an entry is renamed.
func newUID() string {
	return uuid.NewString()
}

func (a *attr) Name() string              { return a.name }
func (a *attr) UID() string               { return a.uid }
func (a *attr) Units() string             { return a.units }
func (a *attr) Description() string       { return a.description }
func (a *attr) Parent() Node              { return a.parent }
func (a *attr) DatablockName() string     { return "" }
func (a *attr) CategoryCode() string      { return "" }
func (a *attr) CategoryEntryName() string { return "" }
func (a *attr) setParent(p Node)          { a.parent = p }

// Descriptor is a validated string attribute. It has identity but no
// fitting surface: no free flag, no bounds, no uncertainty.
type Descriptor struct {
	attr
	value        string
	defaultValue string
	rule         StringRule
}

// DescriptorOption configures a Descriptor at construction.
type DescriptorOption func(*Descriptor)

// WithText sets the units label of a Descriptor.
func WithText(units string) DescriptorOption {
	return func(d *Descriptor) { d.units = units }
}

// WithDescriptorInfo sets the human-readable description.
func WithDescriptorInfo(description string) DescriptorOption {
	return func(d *Descriptor) { d.description = description }
}

// WithDefault sets the fallback used when the initial value is empty or
// rejected by the rule.
func WithDefault(def string) DescriptorOption {
	return func(d *Descriptor) { d.defaultValue = def }
}

// WithRule attaches a content rule (membership, regex, chain).
func WithRule(rule StringRule) DescriptorOption {
	return func(d *Descriptor) { d.rule = rule }
}

// NewDescriptor constructs a validated string attribute. Construction
// always yields a well-defined value: an empty or rejected initial value
// falls back to the default, logged, never panicking.
func NewDescriptor(name, value string, opts ...DescriptorOption) *Descriptor {
	d := &Descriptor{attr: newAttr(name)}
	for _, opt := range opts {
		opt(d)
	}

	// 1) Unset input degrades to the default.
	if value == "" {
		diag.Fallback(d.UniqueName(), d.defaultValue)
		d.value = d.defaultValue

		return d
	}
	// 2) Rejected input degrades to the default.
	if d.rule != nil && !d.rule.Check(d.UniqueName(), value) {
		d.value = d.defaultValue

		return d
	}
	d.value = value

	return d
}

// Value returns the current string value.
func (d *Descriptor) Value() string { return d.value }

// SetValue revalidates against the current value as fallback: an invalid
// update is a no-op (previous value retained), not a reset to default.
func (d *Descriptor) SetValue(v string) {
	if d.rule != nil && !d.rule.Check(d.UniqueName(), v) {
		return
	}
	d.value = v
}

// UniqueName resolves the dotted hierarchical name of this attribute.
func (d *Descriptor) UniqueName() string { return uniqueName(d) }

// Parameter is a validated numeric attribute with the full fitting
// surface: free flag, fit bounds, uncertainty, start value, and the
// constrained marker set by the constraint engine.
type Parameter struct {
	attr
	value        float64
	defaultValue float64
	rule         NumberRule

	free        bool
	constrained bool

	uncertainty    float64
	hasUncertainty bool

	fitMin, fitMax float64
	startValue     float64
}

// ParameterOption configures a Parameter at construction.
type ParameterOption func(*Parameter)

// WithUnits sets the physical units label.
func WithUnits(units string) ParameterOption {
	return func(p *Parameter) { p.units = units }
}

// WithInfo sets the human-readable description.
func WithInfo(description string) ParameterOption {
	return func(p *Parameter) { p.description = description }
}

// WithNumberDefault sets the fallback used when the initial value is
// non-finite or rejected by the rule.
func WithNumberDefault(def float64) ParameterOption {
	return func(p *Parameter) { p.defaultValue = def }
}

// WithRange attaches an inclusive [ge, le] content rule.
func WithRange(ge, le float64) ParameterOption {
	return func(p *Parameter) { p.rule = NewRange(ge, le) }
}

// WithNumberRule attaches an arbitrary numeric content rule.
func WithNumberRule(rule NumberRule) ParameterOption {
	return func(p *Parameter) { p.rule = rule }
}

// WithFitBounds sets the box constraints handed to the minimizer. These
// are optimizer bounds, distinct from the validation range.
func WithFitBounds(min, max float64) ParameterOption {
	return func(p *Parameter) { p.fitMin, p.fitMax = min, max }
}

// WithFree marks the parameter as participating in fitting.
func WithFree() ParameterOption {
	return func(p *Parameter) { p.free = true }
}

// NewParameter constructs a validated numeric attribute. A non-finite or
// rejected initial value falls back to the default, logged, never
// panicking.
func NewParameter(name string, value float64, opts ...ParameterOption) *Parameter {
	p := &Parameter{
		attr:   newAttr(name),
		rule:   fullRange(),
		fitMin: math.Inf(-1),
		fitMax: math.Inf(1),
	}
	for _, opt := range opts {
		opt(p)
	}

	// Without explicit fit bounds the validation range doubles as the
	// optimizer box, so every backend trial stays writable through SetValue.
	if math.IsInf(p.fitMin, -1) && math.IsInf(p.fitMax, 1) {
		if r, ok := p.rule.(Range); ok {
			p.fitMin, p.fitMax = r.Ge, r.Le
		}
	}

	// 1) Non-finite input degrades to the default.
	if math.IsNaN(value) || math.IsInf(value, 0) {
		diag.Fallback(p.UniqueName(), p.defaultValue)
		p.value = p.defaultValue

		return p
	}
	// 2) Rejected input degrades to the default.
	if !p.rule.Check(p.UniqueName(), value) {
		p.value = p.defaultValue

		return p
	}
	p.value = value

	return p
}

// Value returns the current numeric value.
func (p *Parameter) Value() float64 { return p.value }

// SetValue revalidates against the current value as fallback: an invalid
// update (non-finite or out of range) is a no-op, logged, never a panic.
func (p *Parameter) SetValue(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		diag.TypeMismatch(p.UniqueName(), v, "finite number")
		return
	}
	if !p.rule.Check(p.UniqueName(), v) {
		return
	}
	p.value = v
}

// Free reports whether the parameter is selected for fitting. A free but
// constrained parameter is still excluded from the free set; the
// constrained flag wins.
func (p *Parameter) Free() bool { return p.free }

// SetFree selects or deselects the parameter for fitting.
func (p *Parameter) SetFree(free bool) { p.free = free }

// Constrained reports whether the value is derived by the constraint
// engine rather than independently fittable.
func (p *Parameter) Constrained() bool { return p.constrained }

// SetConstrained marks the parameter as constraint-driven. The constraint
// engine is the authority that flips this on apply.
func (p *Parameter) SetConstrained(constrained bool) { p.constrained = constrained }

// Uncertainty returns the post-fit standard error and whether one has
// been recorded.
func (p *Parameter) Uncertainty() (float64, bool) { return p.uncertainty, p.hasUncertainty }

// SetUncertainty records the post-fit standard error.
func (p *Parameter) SetUncertainty(su float64) {
	p.uncertainty = su
	p.hasUncertainty = true
}

// ClearUncertainty discards any recorded standard error.
func (p *Parameter) ClearUncertainty() {
	p.uncertainty = 0
	p.hasUncertainty = false
}

// FitMin returns the lower optimizer bound (-Inf when unbounded).
func (p *Parameter) FitMin() float64 { return p.fitMin }

// FitMax returns the upper optimizer bound (+Inf when unbounded).
func (p *Parameter) FitMax() float64 { return p.fitMax }

// SetFitBounds sets the box constraints handed to the minimizer.
func (p *Parameter) SetFitBounds(min, max float64) { p.fitMin, p.fitMax = min, max }

// StartValue returns the value captured at the beginning of the last fit,
// used for relative-change reporting.
func (p *Parameter) StartValue() float64 { return p.startValue }

// SetStartValue captures the pre-fit value; the minimizer calls this once
// per fit run.
func (p *Parameter) SetStartValue(v float64) { p.startValue = v }

// UniqueName resolves the dotted hierarchical name of this attribute.
func (p *Parameter) UniqueName() string { return uniqueName(p) }
