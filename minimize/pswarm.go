// Particle-swarm backend: a global searcher for rugged chi-square
// landscapes where gradient methods stall in local minima.
package minimize

import (
	"math"
	"math/rand"
)

func init() {
	Register("pswarm", func() Backend { return &pswarmBackend{} })
}

// Swarm constants: standard inertia/cognitive/social weights. The seed
// is fixed, so two runs from the same start produce the same trajectory;
// reproducible refinements matter more here than stochastic restarts.
const (
	swarmSize      = 24
	swarmInertia   = 0.729
	swarmCognit    = 1.494
	swarmSocial    = 1.494
	swarmSpreadPct = 0.25
	swarmSeed      = 1
)

type particle struct {
	pos  []float64
	vel  []float64
	best []float64
	f    float64
}

type pswarmBackend struct{}

func (*pswarmBackend) Name() string { return "pswarm" }

// Solve scatters a swarm around the start vector and iterates
// inertia-weighted velocity updates. The search box is ±spread around
// the start per dimension (bound clamping still happens inside the
// objective). Sampling is seeded with swarmSeed, so the search is
// deterministic for a given start vector.
func (*pswarmBackend) Solve(p Problem) (Solution, error) {
	dim := len(p.Start)
	rng := rand.New(rand.NewSource(swarmSeed))

	score := func(x []float64) float64 {
		var sum float64
		for _, r := range p.Residuals(x) {
			sum += r * r
		}

		return sum
	}

	spread := make([]float64, dim)
	for i, s := range p.Start {
		spread[i] = math.Abs(s) * swarmSpreadPct
		if spread[i] == 0 {
			spread[i] = swarmSpreadPct
		}
	}

	// 1) seed the swarm around the start; particle 0 sits exactly on it
	//    so the incumbent solution is never lost.
	swarm := make([]particle, swarmSize)
	gBest := append([]float64(nil), p.Start...)
	gBestF := math.Inf(1)
	for k := range swarm {
		pos := make([]float64, dim)
		vel := make([]float64, dim)
		for i := range pos {
			pos[i] = p.Start[i]
			if k > 0 {
				pos[i] += (2*rng.Float64() - 1) * spread[i]
			}
			vel[i] = (2*rng.Float64() - 1) * spread[i] * 0.5
		}
		f := score(pos)
		swarm[k] = particle{pos: pos, vel: vel, best: append([]float64(nil), pos...), f: f}
		if f < gBestF {
			gBestF = f
			copy(gBest, pos)
		}
	}

	iterations := p.MaxIterations
	if iterations <= 0 {
		iterations = 100
	}

	// 2) velocity and position updates until the budget runs out or the
	//    best score drops below tolerance.
	for it := 0; it < iterations; it++ {
		for k := range swarm {
			pt := &swarm[k]
			for i := range pt.pos {
				r1, r2 := rng.Float64(), rng.Float64()
				pt.vel[i] = swarmInertia*pt.vel[i] +
					swarmCognit*r1*(pt.best[i]-pt.pos[i]) +
					swarmSocial*r2*(gBest[i]-pt.pos[i])
				pt.pos[i] += pt.vel[i]
			}
			f := score(pt.pos)
			if f < pt.f {
				pt.f = f
				copy(pt.best, pt.pos)
			}
			if f < gBestF {
				gBestF = f
				copy(gBest, pt.pos)
			}
		}
		if gBestF <= p.Tolerance {
			break
		}
	}

	return Solution{X: gBest}, nil
}
