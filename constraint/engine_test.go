package constraint_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rietgo/rietgo/constraint"
	"github.com/rietgo/rietgo/core"
	"github.com/rietgo/rietgo/diag"
)

func init() {
	diag.SetOutput(io.Discard)
}

func param(name string, v float64) *core.Parameter {
	return core.NewParameter(name, v)
}

// ─────────────────────────── aliases ────────────────────────────────

func TestAddAlias_RebindRefused(t *testing.T) {
	eng := constraint.NewEngine()
	a := param("length_a", 4)
	other := param("length_b", 5)

	eng.AddAlias("a", a)
	eng.AddAlias("a", other) // refused, keeps the first binding

	got, ok := eng.Resolve("a")
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, []string{"a"}, eng.Aliases())
}

func TestAddAlias_SameBindingIsIdempotent(t *testing.T) {
	eng := constraint.NewEngine()
	a := param("length_a", 4)

	eng.AddAlias("a", a)
	eng.AddAlias("a", a)

	assert.Equal(t, []string{"a"}, eng.Aliases())
}

// ─────────────────────────── declaration ────────────────────────────

func TestAddConstraint_ParseErrorsRejectedAtAdd(t *testing.T) {
	eng := constraint.NewEngine()
	eng.AddAlias("b", param("length_b", 5))

	for _, bad := range []string{"", "a +", "* a", "(a", "2..5", "a $ b"} {
		err := eng.AddConstraint("b", bad)
		assert.ErrorIs(t, err, constraint.ErrParse, "expression %q", bad)
	}
	assert.Empty(t, eng.Constraints())
}

func TestAddConstraint_UnboundDependentRejected(t *testing.T) {
	eng := constraint.NewEngine()

	err := eng.AddConstraint("b", "1 + 1")

	assert.ErrorIs(t, err, constraint.ErrUnknownAlias)
}

func TestAddConstraint_MarksDependentConstrained(t *testing.T) {
	eng := constraint.NewEngine()
	b := param("length_b", 5)
	b.SetFree(true)
	eng.AddAlias("a", param("length_a", 4))
	eng.AddAlias("b", b)

	require.NoError(t, eng.AddConstraint("b", "a"))

	assert.True(t, b.Constrained(), "dependent drops out of the fittable set at declaration")
}

// ─────────────────────────── application ────────────────────────────

func TestApply_Arithmetic(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"a", 4},
		{"a + 1.5", 5.5},
		{"2 * a - 3", 5},
		{"a / 2", 2},
		{"-a", -4},
		{"-(a + 1) * 2", -10},
		{"2e-1 * a", 0.8},
	}
	for _, tc := range cases {
		eng := constraint.NewEngine()
		a := param("length_a", 4)
		b := param("length_b", 0)
		eng.AddAlias("a", a)
		eng.AddAlias("b", b)
		require.NoError(t, eng.AddConstraint("b", tc.expr))

		eng.Apply()

		assert.InDelta(t, tc.want, b.Value(), 1e-12, "expression %q", tc.expr)
	}
}

func TestApply_DeclarationOrderChains(t *testing.T) {
	eng := constraint.NewEngine()
	a := param("length_a", 4)
	b := param("length_b", 0)
	c := param("length_c", 0)
	eng.AddAlias("a", a)
	eng.AddAlias("b", b)
	eng.AddAlias("c", c)

	// Declared in dependency order, the chain settles in a single pass.
	require.NoError(t, eng.AddConstraint("b", "a"))
	require.NoError(t, eng.AddConstraint("c", "b + 1"))

	a.SetValue(7)
	eng.Apply()

	assert.InDelta(t, 7, b.Value(), 1e-12)
	assert.InDelta(t, 8, c.Value(), 1e-12)
}

func TestApply_ReverseOrderNeedsTwoPasses(t *testing.T) {
	eng := constraint.NewEngine()
	a := param("length_a", 4)
	b := param("length_b", 0)
	c := param("length_c", 0)
	eng.AddAlias("a", a)
	eng.AddAlias("b", b)
	eng.AddAlias("c", c)

	// "c = b" declared before "b = a": the first Apply leaves c one
	// step behind because rules are never reordered.
	require.NoError(t, eng.AddConstraint("c", "b"))
	require.NoError(t, eng.AddConstraint("b", "a"))

	eng.Apply()
	assert.InDelta(t, 0, c.Value(), 1e-12)
	assert.InDelta(t, 4, b.Value(), 1e-12)

	eng.Apply()
	assert.InDelta(t, 4, c.Value(), 1e-12)
}

func TestApply_Idempotent(t *testing.T) {
	eng := constraint.NewEngine()
	a := param("b_iso_la", 1.0)
	b := param("b_iso_ba", 0.3)
	eng.AddAlias("la", a)
	eng.AddAlias("ba", b)
	require.NoError(t, eng.AddConstraint("ba", "la * 2"))

	eng.Apply()
	first := b.Value()
	eng.Apply()

	assert.InDelta(t, first, b.Value(), 1e-15, "re-apply with fixed drivers changes nothing")
}

func TestApply_UnknownAliasSkipsRuleOnly(t *testing.T) {
	eng := constraint.NewEngine()
	a := param("length_a", 4)
	b := param("length_b", 0)
	c := param("length_c", 0)
	eng.AddAlias("a", a)
	eng.AddAlias("b", b)
	eng.AddAlias("c", c)

	require.NoError(t, eng.AddConstraint("b", "missing * 2"))
	require.NoError(t, eng.AddConstraint("c", "a + 1"))

	eng.Apply()

	assert.InDelta(t, 0, b.Value(), 1e-12, "rule with unknown alias skipped")
	assert.InDelta(t, 5, c.Value(), 1e-12, "later rules still run")
}

func TestApply_RespectsParameterValidation(t *testing.T) {
	eng := constraint.NewEngine()
	a := param("length_a", -5)
	occ := core.NewParameter("occupancy", 0.5, core.WithRange(0, 1))
	eng.AddAlias("a", a)
	eng.AddAlias("occ", occ)

	require.NoError(t, eng.AddConstraint("occ", "a"))
	eng.Apply()

	assert.InDelta(t, 0.5, occ.Value(), 1e-12, "out-of-range result leaves the current value")
	assert.True(t, occ.Constrained())
}

func TestApply_DivisionByZeroYieldsNaNAndIsRejected(t *testing.T) {
	eng := constraint.NewEngine()
	a := param("length_a", 4)
	b := param("length_b", 2)
	eng.AddAlias("a", a)
	eng.AddAlias("b", b)

	require.NoError(t, eng.AddConstraint("b", "a / 0"))
	eng.Apply()

	// NaN never passes numeric validation, so b keeps its value.
	assert.InDelta(t, 2, b.Value(), 1e-12)
}

// Freed cell lengths tied together: the driven one follows the driver
// through value changes.
func TestScenario_CubicCellTie(t *testing.T) {
	eng := constraint.NewEngine()
	la := core.NewParameter("length_a", 4.0, core.WithRange(0, 100))
	lb := core.NewParameter("length_b", 9.9, core.WithRange(0, 100))
	la.SetFree(true)
	eng.AddAlias("a", la)
	eng.AddAlias("b", lb)

	require.NoError(t, eng.AddConstraint("b", "a"))
	eng.Apply()
	assert.InDelta(t, 4.0, lb.Value(), 1e-12)

	la.SetValue(4.2)
	eng.Apply()
	assert.InDelta(t, 4.2, lb.Value(), 1e-12)
}
