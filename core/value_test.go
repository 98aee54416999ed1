// Package core_test validates the value model: construction fallbacks,
// assignment no-op semantics, validators, and the fitting surface of
// Parameter.
package core_test

import (
	"io"
	"math"
	"testing"

	"github.com/rietgo/rietgo/core"
	"github.com/rietgo/rietgo/diag"
)

func init() {
	// Tests exercise rejection paths on purpose; keep stderr quiet.
	diag.SetOutput(io.Discard)
}

// ------------------------------------------------------------------------
// 1. Construction: initial values always resolve to something well-defined.
// ------------------------------------------------------------------------

func TestNewParameter_ValidInitialValue(t *testing.T) {
	p := core.NewParameter("length_a", 8.47, core.WithRange(0, 100))
	if p.Value() != 8.47 {
		t.Fatalf("expected 8.47, got %v", p.Value())
	}
}

func TestNewParameter_OutOfRangeFallsBackToDefault(t *testing.T) {
	p := core.NewParameter("occupancy", 2.5,
		core.WithRange(0, 1),
		core.WithNumberDefault(1.0),
	)
	if p.Value() != 1.0 {
		t.Fatalf("expected default 1.0, got %v", p.Value())
	}
}

func TestNewParameter_NaNFallsBackToDefault(t *testing.T) {
	p := core.NewParameter("b_iso", math.NaN(), core.WithNumberDefault(0.5))
	if p.Value() != 0.5 {
		t.Fatalf("expected default 0.5, got %v", p.Value())
	}
}

func TestNewDescriptor_EmptyFallsBackToDefault(t *testing.T) {
	d := core.NewDescriptor("type_symbol", "", core.WithDefault("Si"))
	if d.Value() != "Si" {
		t.Fatalf("expected default Si, got %q", d.Value())
	}
}

func TestNewDescriptor_RejectedFallsBackToDefault(t *testing.T) {
	d := core.NewDescriptor("label", "1bad label",
		core.WithDefault("Si"),
		core.WithRule(core.NewPattern(`[A-Za-z_][A-Za-z0-9_]*`)),
	)
	if d.Value() != "Si" {
		t.Fatalf("expected default Si, got %q", d.Value())
	}
}

// ------------------------------------------------------------------------
// 2. Assignment: invalid updates are no-ops, not resets (P1).
// ------------------------------------------------------------------------

func TestParameter_SetValueIdempotence(t *testing.T) {
	p := core.NewParameter("fract_x", 0.25, core.WithRange(-1, 1))

	// Valid assignments round-trip exactly.
	for _, v := range []float64{0, 0.5, -0.9, 1} {
		p.SetValue(v)
		if p.Value() != v {
			t.Fatalf("SetValue(%v): read back %v", v, p.Value())
		}
	}

	// Out-of-range leaves the last accepted value in place.
	p.SetValue(0.3)
	p.SetValue(7.0)
	if p.Value() != 0.3 {
		t.Fatalf("out-of-range update should be a no-op, got %v", p.Value())
	}

	// Non-finite updates are likewise no-ops.
	p.SetValue(math.Inf(1))
	p.SetValue(math.NaN())
	if p.Value() != 0.3 {
		t.Fatalf("non-finite update should be a no-op, got %v", p.Value())
	}
}

func TestDescriptor_SetValueRejectionKeepsCurrent(t *testing.T) {
	d := core.NewDescriptor("adp_type", "Biso",
		core.WithRule(core.NewChoice("Biso", "Uiso")),
	)
	d.SetValue("Uiso")
	d.SetValue("Bogus")
	if d.Value() != "Uiso" {
		t.Fatalf("rejected update should keep current value, got %q", d.Value())
	}
}

// ------------------------------------------------------------------------
// 3. Dynamic membership: the allowed set is consulted at check time.
// ------------------------------------------------------------------------

func TestChoice_DynamicAllowedSet(t *testing.T) {
	allowed := []string{"a", "b"}
	d := core.NewDescriptor("wyckoff_letter", "a",
		core.WithRule(core.NewDynamicChoice(func() []string { return allowed })),
	)

	d.SetValue("c")
	if d.Value() != "a" {
		t.Fatalf("c not yet allowed, expected a, got %q", d.Value())
	}

	// The legitimate set may change over the object's lifetime.
	allowed = []string{"a", "b", "c"}
	d.SetValue("c")
	if d.Value() != "c" {
		t.Fatalf("c now allowed, got %q", d.Value())
	}
}

// ------------------------------------------------------------------------
// 4. Fitting surface: uncertainty, bounds, start value, uid.
// ------------------------------------------------------------------------

func TestParameter_FittingSurface(t *testing.T) {
	p := core.NewParameter("scale", 1.0, core.WithFitBounds(0, 10))

	if _, ok := p.Uncertainty(); ok {
		t.Fatal("fresh parameter must not carry an uncertainty")
	}
	p.SetUncertainty(0.03)
	if su, ok := p.Uncertainty(); !ok || su != 0.03 {
		t.Fatalf("expected uncertainty 0.03, got %v (%v)", su, ok)
	}
	p.ClearUncertainty()
	if _, ok := p.Uncertainty(); ok {
		t.Fatal("ClearUncertainty must discard the standard error")
	}

	if p.FitMin() != 0 || p.FitMax() != 10 {
		t.Fatalf("unexpected fit bounds [%v, %v]", p.FitMin(), p.FitMax())
	}

	p.SetStartValue(p.Value())
	p.SetValue(1.7)
	if p.StartValue() != 1.0 {
		t.Fatalf("start value must keep the pre-fit snapshot, got %v", p.StartValue())
	}
}

func TestParameter_RangeSeedsFitBounds(t *testing.T) {
	p := core.NewParameter("occ", 0.5, core.WithRange(0, 1))
	if p.FitMin() != 0 || p.FitMax() != 1 {
		t.Fatalf("range must seed missing fit bounds, got [%v, %v]", p.FitMin(), p.FitMax())
	}

	// Explicit fit bounds win over the validation range.
	q := core.NewParameter("occ", 0.5, core.WithRange(0, 1), core.WithFitBounds(0.2, 0.8))
	if q.FitMin() != 0.2 || q.FitMax() != 0.8 {
		t.Fatalf("explicit fit bounds must win, got [%v, %v]", q.FitMin(), q.FitMax())
	}
}

func TestParameter_UIDsAreUnique(t *testing.T) {
	a := core.NewParameter("x", 0)
	b := core.NewParameter("x", 0)
	if a.UID() == "" || a.UID() == b.UID() {
		t.Fatalf("uids must be non-empty and unique: %q vs %q", a.UID(), b.UID())
	}
}
