package minimize

import (
	"fmt"
	"io"
	"math"
	"sync"
)

// Tracker follows chi-square across objective evaluations. The best
// value is updated on every call; a progress row is emitted only when
// chi-square improves on the last printed value by at least one
// percent, which keeps noisy line searches from flooding the output.
// Finish always emits the last-seen value, so the log ends at the
// state the backend actually converged to.
type Tracker struct {
	mu sync.Mutex

	out         io.Writer
	evaluations int
	best        float64
	bestAt      int
	lastSeen    float64
	lastPrinted float64
}

// NewTracker creates a tracker writing progress rows to out; a nil out
// disables printing but still tracks the best value.
func NewTracker(out io.Writer) *Tracker {
	return &Tracker{out: out, best: math.Inf(1), lastSeen: math.Inf(1), lastPrinted: math.Inf(1)}
}

// Track records one objective evaluation.
func (t *Tracker) Track(chiSquare float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.evaluations++
	t.lastSeen = chiSquare
	if chiSquare < t.best {
		t.best = chiSquare
		t.bestAt = t.evaluations
	}

	if t.out == nil {
		return
	}
	if math.IsInf(t.lastPrinted, 1) || chiSquare <= t.lastPrinted*0.99 {
		fmt.Fprintf(t.out, "evaluation %6d   chi2 %12.5g\n", t.evaluations, chiSquare)
		t.lastPrinted = chiSquare
	}
}

// Best returns the smallest chi-square seen so far; +Inf before the
// first Track call.
func (t *Tracker) Best() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.best
}

// BestEvaluation returns the 1-based index of the evaluation that
// produced the best chi-square; zero before the first Track call.
func (t *Tracker) BestEvaluation() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.bestAt
}

// Evaluations returns the number of Track calls so far.
func (t *Tracker) Evaluations() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.evaluations
}

// Finish emits the final evaluation row, bypassing the one-percent
// throttle, then the closing summary naming the best chi-square and
// the evaluation it was seen at.
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.out == nil || t.evaluations == 0 {
		return
	}
	fmt.Fprintf(t.out, "evaluation %6d   chi2 %12.5g\n", t.evaluations, t.lastSeen)
	fmt.Fprintf(t.out, "finished after %d evaluations, best chi2 %.5g at evaluation %d\n",
		t.evaluations, t.best, t.bestAt)
}

// reset clears the tracker for a fresh run.
func (t *Tracker) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.evaluations = 0
	t.best = math.Inf(1)
	t.bestAt = 0
	t.lastSeen = math.Inf(1)
	t.lastPrinted = math.Inf(1)
}
