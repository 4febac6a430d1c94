// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"fmt"
	"math"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/optimize"
)

// An Optimizer minimizes an Objective over a bounded Region.
//
// It runs Restarts independent global searches, each seeded from a
// single master seed, keeps the best point found, and then polishes
// it with a bounded Nelder-Mead search over the continuous
// parameters. Parameters whose interval is a single point are held
// fixed. Integer parameters are rounded at every evaluation while the
// search itself proceeds in continuous coordinates.
//
// The zero value is a reasonable default configuration.
type Optimizer struct {
	// Search is the global search method. The default is
	// DifferentialEvolution{}.
	Search Searcher

	// Restarts is the number of independent global searches. The
	// default is 3.
	Restarts int

	// Workers is the number of restarts to run concurrently. If
	// Workers <= 1, restarts run sequentially. The result does
	// not depend on Workers.
	Workers int

	// NoPolish disables the local Nelder-Mead pass.
	NoPolish bool

	// PolishEvals caps the evaluations of the local pass. The
	// default is 2000.
	PolishEvals int

	// Logger receives per-restart diagnostics at debug level. It
	// may be nil.
	Logger *zap.Logger
}

// A Solution is the outcome of Optimize.
type Solution struct {
	// X is the best point found, as shapes..., loc, scale. It
	// lies in the Region.
	X []float64

	// Cost is the objective at X and Finite reports whether that
	// evaluation was free of penalties.
	Cost   float64
	Finite bool

	// Converged reports whether at least one restart met its
	// search's convergence criterion.
	Converged bool

	// Restart is the index of the restart that found X, or -1 if
	// X is the starting point.
	Restart int

	// Polished reports whether the local pass improved X.
	Polished bool

	Restarts    int
	Iterations  int
	Evaluations int
}

// space maps unit coordinates of a subset of a Region's parameters to
// full parameter vectors.
type space struct {
	r    *Region
	base []float64
	free []int
}

func newSpace(r *Region, base []float64, free []int) *space {
	return &space{r, base, free}
}

func (s *space) point(u []float64) []float64 {
	x := append([]float64(nil), s.base...)
	for j, i := range s.free {
		iv := s.r.Intervals[i]
		v := iv.Lo + u[j]*iv.Width()
		if s.r.Integer[i] {
			v = math.Round(v)
		}
		x[i] = iv.Clamp(v)
	}
	return x
}

func (s *space) unit(x []float64) []float64 {
	u := make([]float64, len(s.free))
	for j, i := range s.free {
		iv := s.r.Intervals[i]
		u[j] = math.Max(0, math.Min(1, (x[i]-iv.Lo)/iv.Width()))
	}
	return u
}

// A tally counts the evaluations of one search.
type tally struct {
	evals  int
	finite bool
}

func (s *space) evaluator(obj Objective, t *tally) func([]float64) float64 {
	return func(u []float64) float64 {
		cost, ok := obj(s.point(u))
		t.evals++
		t.finite = t.finite || ok
		return cost
	}
}

type restart struct {
	tally
	seed uint64
	c    Candidate
	x    []float64
	cost float64
	ok   bool
}

// Optimize minimizes obj over r starting from x0, which is projected
// into r. If x0 is nil, the search starts from the middle of r. Every
// interval of r must be finite.
//
// Optimize fails with ErrOptimizationFailed if every evaluation was
// penalized.
func (o *Optimizer) Optimize(obj Objective, r *Region, x0 []float64, seed uint64) (*Solution, error) {
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if x0 == nil {
		x0 = make([]float64, r.Dim())
		for i, iv := range r.Intervals {
			x0[i] = iv.Lo + iv.Width()/2
		}
	}
	if len(x0) != r.Dim() {
		panic(fmt.Sprintf("fit: starting point has %d parameters, region has %d", len(x0), r.Dim()))
	}
	for _, iv := range r.Intervals {
		if !iv.Finite() {
			panic("fit: Optimize requires a bounded region")
		}
	}
	x0 = r.Clamp(x0)

	var free []int
	for i, iv := range r.Intervals {
		if !iv.Fixed() {
			free = append(free, i)
		}
	}
	sp := newSpace(r, x0, free)
	search := o.Search
	if search == nil {
		search = DifferentialEvolution{}
	}
	n := o.Restarts
	if n <= 0 {
		n = 3
	}

	best := &Solution{X: x0, Restart: -1, Restarts: n}
	best.Cost, best.Finite = obj(x0)
	evals, anyFinite := 1, best.Finite

	master := rand.New(rand.NewSource(seed))
	runs := make([]restart, n)
	for i := range runs {
		runs[i].seed = master.Uint64()
	}
	u0 := sp.unit(x0)
	do := func(i int) {
		rs := &runs[i]
		var start []float64
		if i == 0 {
			start = u0
		}
		rnd := rand.New(rand.NewSource(rs.seed))
		rs.c = search.Search(sp.evaluator(obj, &rs.tally), len(free), start, rnd)
		rs.x = sp.point(rs.c.U)
		rs.cost, rs.ok = obj(rs.x)
		rs.evals++
		rs.finite = rs.finite || rs.ok
	}
	if o.Workers > 1 && n > 1 {
		p := pool.New().WithMaxGoroutines(o.Workers)
		for i := range runs {
			p.Go(func() { do(i) })
		}
		p.Wait()
	} else {
		for i := range runs {
			do(i)
		}
	}

	for i, rs := range runs {
		log.Debug("restart finished",
			zap.Int("restart", i),
			zap.Uint64("seed", rs.seed),
			zap.Float64("cost", rs.cost),
			zap.Bool("converged", rs.c.Converged),
			zap.Int("iterations", rs.c.Iterations),
			zap.Int("evaluations", rs.evals))
		evals += rs.evals
		anyFinite = anyFinite || rs.finite
		best.Iterations += rs.c.Iterations
		best.Converged = best.Converged || rs.c.Converged
		if rs.cost < best.Cost {
			best.X, best.Cost, best.Finite, best.Restart = rs.x, rs.cost, rs.ok, i
		}
	}
	if !anyFinite {
		return nil, fmt.Errorf("%w: all %d evaluations were penalized", ErrOptimizationFailed, evals)
	}

	if !o.NoPolish {
		evals += o.polish(obj, r, best)
	}
	best.Evaluations = evals
	log.Debug("optimization finished",
		zap.Float64s("x", best.X),
		zap.Float64("cost", best.Cost),
		zap.Int("restart", best.Restart),
		zap.Bool("polished", best.Polished),
		zap.Int("evaluations", evals))
	return best, nil
}

// polish runs Nelder-Mead from s.X over the non-fixed continuous
// parameters and updates s if it finds a strictly better point. It
// returns the number of evaluations.
func (o *Optimizer) polish(obj Objective, r *Region, s *Solution) int {
	var dims []int
	for i, iv := range r.Intervals {
		if !iv.Fixed() && !r.Integer[i] {
			dims = append(dims, i)
		}
	}
	if len(dims) == 0 {
		return 0
	}
	maxEvals := o.PolishEvals
	if maxEvals <= 0 {
		maxEvals = 2000
	}
	sp := newSpace(r, s.X, dims)
	var t tally
	p := optimize.Problem{Func: penalized(sp.evaluator(obj, &t))}
	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-12,
			Relative:   1e-12,
			Iterations: 50,
		},
	}
	res, _ := optimize.Minimize(p, sp.unit(s.X), settings, &optimize.NelderMead{})
	if res == nil {
		return t.evals
	}
	u := append([]float64(nil), res.X...)
	project(u)
	x := sp.point(u)
	cost, ok := obj(x)
	if ok && cost < s.Cost {
		s.X, s.Cost, s.Finite, s.Polished = x, cost, true, true
	}
	return t.evals + 1
}
