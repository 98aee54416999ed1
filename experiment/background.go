package experiment

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"

	"github.com/rietgo/rietgo/core"
	"github.com/rietgo/rietgo/diag"
)

// Background is any category that can be evaluated pointwise over the
// measured x-grid.
type Background interface {
	core.Category

	// Calculate returns the background intensity at every x.
	Calculate(x []float64) []float64
}

// NewBackground constructs the background flavour named by kind. Unknown
// kinds fall back to the line-segment flavour with a warning.
func NewBackground(kind string) Background {
	switch kind {
	case BackgroundLineSegment, "":
		return NewLineSegmentBackground()
	case BackgroundChebyshev:
		return NewChebyshevBackground()
	default:
		diag.L().Warn().
			Str("kind", kind).
			Str("fallback", BackgroundLineSegment).
			Msg("unknown background kind")

		return NewLineSegmentBackground()
	}
}

// ─────────────────────────── line-segment ───────────────────────────

// BackgroundPoint is one (x, y) anchor of the line-segment background.
// The x position identifies the entry; the y intensity is fittable.
type BackgroundPoint struct {
	core.Item

	X *core.Descriptor
	Y *core.Parameter
}

// NewBackgroundPoint anchors an intensity at position x (in the units
// of the measured axis).
func NewBackgroundPoint(x, y float64) *BackgroundPoint {
	p := &BackgroundPoint{Item: core.NewItem("background")}
	p.X = core.NewDescriptor("x", formatX(x),
		core.WithDescriptorInfo("Anchor position on the measured axis"))
	p.Y = core.NewParameter("y", y,
		core.WithInfo("Background intensity at the anchor"))
	p.Attach(p.X, p.Y)
	p.SetEntryFunc(func() string { return p.X.Value() })

	return p
}

func formatX(x float64) string { return fmt.Sprintf("%g", x) }

// XValue parses the anchor position back to a float.
func (p *BackgroundPoint) XValue() float64 {
	var x float64
	_, _ = fmt.Sscanf(p.X.Value(), "%g", &x)

	return x
}

// LineSegmentBackground interpolates linearly between anchor points.
// Outside the anchored range the nearest anchor intensity is held.
type LineSegmentBackground struct {
	core.Collection
}

// NewLineSegmentBackground constructs an empty line-segment background.
func NewLineSegmentBackground() *LineSegmentBackground {
	return &LineSegmentBackground{Collection: core.NewCollection("background")}
}

// AddPoint anchors intensity y at position x. Re-anchoring an existing
// x replaces the point in place.
func (b *LineSegmentBackground) AddPoint(x, y float64) *BackgroundPoint {
	p := NewBackgroundPoint(x, y)
	b.Add(p)

	return p
}

// Points returns the anchors sorted by x.
func (b *LineSegmentBackground) Points() []*BackgroundPoint {
	pts := make([]*BackgroundPoint, 0, b.Len())
	for _, e := range b.Entries() {
		if p, ok := e.(*BackgroundPoint); ok {
			pts = append(pts, p)
		}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].XValue() < pts[j].XValue() })

	return pts
}

// Calculate evaluates the background on x. With no anchors it returns
// zeros; with one anchor that intensity everywhere.
func (b *LineSegmentBackground) Calculate(x []float64) []float64 {
	out := make([]float64, len(x))
	pts := b.Points()
	if len(pts) == 0 {
		return out
	}
	if len(pts) == 1 {
		y := pts[0].Y.Value()
		for i := range out {
			out[i] = y
		}

		return out
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.XValue()
		ys[i] = p.Y.Value()
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		diag.L().Warn().Err(err).Msg("background interpolation failed")

		return out
	}

	// 1) clamp outside the anchored range, 2) interpolate inside it.
	for i, xi := range x {
		switch {
		case xi <= xs[0]:
			out[i] = ys[0]
		case xi >= xs[len(xs)-1]:
			out[i] = ys[len(ys)-1]
		default:
			out[i] = pl.Predict(xi)
		}
	}

	return out
}

// ─────────────────────────── chebyshev ──────────────────────────────

// PolynomialTerm is one Chebyshev coefficient, keyed by its order.
type PolynomialTerm struct {
	core.Item

	Order *core.Descriptor
	Coef  *core.Parameter
}

// NewPolynomialTerm constructs the coefficient of the given order.
func NewPolynomialTerm(order int, coef float64) *PolynomialTerm {
	t := &PolynomialTerm{Item: core.NewItem("background")}
	t.Order = core.NewDescriptor("order", fmt.Sprintf("%d", order),
		core.WithDescriptorInfo("Chebyshev polynomial order"))
	t.Coef = core.NewParameter("coef", coef,
		core.WithInfo("Chebyshev coefficient"))
	t.Attach(t.Order, t.Coef)
	t.SetEntryFunc(func() string { return t.Order.Value() })

	return t
}

// OrderValue parses the order back to an int.
func (t *PolynomialTerm) OrderValue() int {
	var n int
	_, _ = fmt.Sscanf(t.Order.Value(), "%d", &n)

	return n
}

// ChebyshevBackground evaluates a Chebyshev polynomial of the first
// kind over the x-range mapped onto [-1, 1].
type ChebyshevBackground struct {
	core.Collection
}

// NewChebyshevBackground constructs an empty Chebyshev background.
func NewChebyshevBackground() *ChebyshevBackground {
	return &ChebyshevBackground{Collection: core.NewCollection("background")}
}

// AddTerm registers the coefficient of the given order, replacing any
// previous coefficient of the same order.
func (b *ChebyshevBackground) AddTerm(order int, coef float64) *PolynomialTerm {
	t := NewPolynomialTerm(order, coef)
	b.Add(t)

	return t
}

// Terms returns the coefficients sorted by order.
func (b *ChebyshevBackground) Terms() []*PolynomialTerm {
	ts := make([]*PolynomialTerm, 0, b.Len())
	for _, e := range b.Entries() {
		if t, ok := e.(*PolynomialTerm); ok {
			ts = append(ts, t)
		}
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].OrderValue() < ts[j].OrderValue() })

	return ts
}

// Calculate evaluates Σ cₙ·Tₙ(u) with u the affine map of x onto
// [-1, 1]. The map is recomputed on every call so the polynomial
// follows the current grid.
func (b *ChebyshevBackground) Calculate(x []float64) []float64 {
	out := make([]float64, len(x))
	ts := b.Terms()
	if len(ts) == 0 || len(x) == 0 {
		return out
	}

	maxOrder := ts[len(ts)-1].OrderValue()
	coef := make([]float64, maxOrder+1)
	for _, t := range ts {
		if n := t.OrderValue(); n >= 0 {
			coef[n] = t.Coef.Value()
		}
	}

	xMin, xMax := x[0], x[len(x)-1]
	span := xMax - xMin
	for i, xi := range x {
		u := 0.0
		if span != 0 {
			u = (xi-xMin)/span*2 - 1
		}

		// Tₙ recurrence: T₀=1, T₁=u, Tₙ=2u·Tₙ₋₁-Tₙ₋₂.
		tPrev, tCur := 1.0, u
		sum := coef[0]
		if maxOrder >= 1 {
			sum += coef[1] * u
		}
		for n := 2; n <= maxOrder; n++ {
			tPrev, tCur = tCur, 2*u*tCur-tPrev
			sum += coef[n] * tCur
		}
		out[i] = sum
	}

	return out
}
