// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/optimize"
)

// CMAES is the covariance matrix adaptation evolution strategy, run
// by gonum's optimize.CmaEsChol. Points the strategy samples outside
// the unit cube are projected in and charged a quadratic penalty.
//
// The zero value is a reasonable default configuration.
type CMAES struct {
	// Population is the number of samples per iteration. If 0,
	// CmaEsChol chooses it from the dimension.
	Population int

	// StepSize is the initial standard deviation, in unit
	// coordinates. The default is 0.3.
	StepSize float64

	// MaxEvals caps the number of evaluations. The default is
	// 2000 per dimension.
	MaxEvals int
}

// Search implements Searcher.
func (c CMAES) Search(eval func([]float64) float64, dim int, x0 []float64, rnd *rand.Rand) Candidate {
	if dim == 0 {
		return Candidate{U: []float64{}, F: eval([]float64{}), Converged: true}
	}
	step := c.StepSize
	if step <= 0 {
		step = 0.3
	}
	maxEvals := c.MaxEvals
	if maxEvals <= 0 {
		maxEvals = 2000 * dim
	}
	start := make([]float64, dim)
	if x0 != nil {
		copy(start, x0)
	} else {
		for i := range start {
			start[i] = rnd.Float64()
		}
	}

	p := optimize.Problem{Func: penalized(eval)}
	method := &optimize.CmaEsChol{
		InitStepSize: step,
		Population:   c.Population,
		Src:          rand.NewSource(rnd.Uint64()),
	}
	settings := &optimize.Settings{FuncEvaluations: maxEvals}
	res, err := optimize.Minimize(p, start, settings, method)
	if res == nil {
		// Only problem setup errors return no result.
		return Candidate{U: start, F: eval(start)}
	}
	u := append([]float64(nil), res.X...)
	project(u)
	return Candidate{
		U:          u,
		F:          eval(u),
		Iterations: res.MajorIterations,
		Converged:  err == nil && (res.Status == optimize.FunctionConvergence || res.Status == optimize.MethodConverge),
	}
}

// penalized wraps eval for methods that do not respect bounds. Points
// outside the unit cube are evaluated at their projection plus a
// penalty growing with the squared distance from the cube.
func penalized(eval func([]float64) float64) func([]float64) float64 {
	return func(u []float64) float64 {
		v := append([]float64(nil), u...)
		d2 := project(v)
		f := eval(v)
		if d2 == 0 {
			return f
		}
		return f + d2*(1+math.Abs(f))
	}
}
