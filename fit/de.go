// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// A Searcher is a derivative-free global minimization method over the
// unit hypercube [0, 1]**dim.
//
// eval may be called with points outside the cube; it projects them
// in. x0, if non-nil, is a starting point in the cube. All randomness
// must come from rnd so that searches are reproducible.
type Searcher interface {
	Search(eval func(u []float64) float64, dim int, x0 []float64, rnd *rand.Rand) Candidate
}

// A Candidate is the outcome of a Searcher.
type Candidate struct {
	// U is the best point found, in unit coordinates.
	U []float64

	// F is eval(U).
	F float64

	// Iterations is the number of generations or major
	// iterations performed.
	Iterations int

	// Converged indicates that the search met its convergence
	// criterion rather than an iteration limit.
	Converged bool
}

// DifferentialEvolution is the best1bin differential evolution
// strategy of Storn and Price, with dithered mutation and immediate
// updating of the population.
//
// The zero value is a reasonable default configuration.
type DifferentialEvolution struct {
	// PopSize is the population size per dimension. The
	// population has max(5, PopSize*dim) members. The default is
	// 15.
	PopSize int

	// MaxIter is the maximum number of generations. The default
	// is 1000.
	MaxIter int

	// MutationLo and MutationHi bound the differential weight,
	// which is drawn uniformly per generation. The default is
	// [0.5, 1).
	MutationLo, MutationHi float64

	// Recombination is the crossover probability. The default is
	// 0.7.
	Recombination float64

	// Tol and Atol are the relative and absolute convergence
	// tolerances. The search stops when the standard deviation
	// of the population's costs is at most Atol + Tol*|mean|.
	// The default Tol is 0.01.
	Tol, Atol float64
}

func (de DifferentialEvolution) withDefaults() DifferentialEvolution {
	if de.PopSize <= 0 {
		de.PopSize = 15
	}
	if de.MaxIter <= 0 {
		de.MaxIter = 1000
	}
	if de.MutationLo <= 0 && de.MutationHi <= 0 {
		de.MutationLo, de.MutationHi = 0.5, 1
	}
	if de.MutationHi < de.MutationLo {
		de.MutationHi = de.MutationLo
	}
	if de.Recombination <= 0 {
		de.Recombination = 0.7
	}
	if de.Tol <= 0 {
		de.Tol = 0.01
	}
	return de
}

// Search implements Searcher.
func (de DifferentialEvolution) Search(eval func([]float64) float64, dim int, x0 []float64, rnd *rand.Rand) Candidate {
	de = de.withDefaults()
	if dim == 0 {
		return Candidate{U: []float64{}, F: eval([]float64{}), Converged: true}
	}

	np := max(5, de.PopSize*dim)
	pop := latinHypercube(np, dim, rnd)
	if x0 != nil {
		copy(pop[0], x0)
	}
	energies := make([]float64, np)
	best := 0
	for i, u := range pop {
		energies[i] = eval(u)
		if energies[i] < energies[best] {
			best = i
		}
	}

	c := Candidate{}
	trial := make([]float64, dim)
	for gen := 0; gen < de.MaxIter; gen++ {
		f := de.MutationLo + rnd.Float64()*(de.MutationHi-de.MutationLo)
		for i := range pop {
			r0, r1 := pick2(np, i, rnd)
			fill := rnd.Intn(dim)
			for k := range trial {
				if k == fill || rnd.Float64() < de.Recombination {
					v := pop[best][k] + f*(pop[r0][k]-pop[r1][k])
					if v < 0 || v > 1 {
						v = rnd.Float64()
					}
					trial[k] = v
				} else {
					trial[k] = pop[i][k]
				}
			}
			e := eval(trial)
			// Members other than the incumbent may drift
			// across plateaus. The incumbent is only
			// replaced by a strictly better point, so ties
			// go to the earliest found.
			if e < energies[i] || (i != best && e == energies[i]) {
				copy(pop[i], trial)
				energies[i] = e
				if e < energies[best] {
					best = i
				}
			}
		}
		c.Iterations = gen + 1
		if converged(energies, pop, de.Tol, de.Atol) {
			c.Converged = true
			break
		}
	}
	c.U = append([]float64(nil), pop[best]...)
	c.F = energies[best]
	return c
}

// converged reports whether the population's costs have settled, or
// the population has collapsed to a point.
func converged(energies []float64, pop [][]float64, tol, atol float64) bool {
	for _, e := range energies {
		if math.IsInf(e, 0) || math.IsNaN(e) {
			return false
		}
	}
	mean, std := stat.MeanStdDev(energies, nil)
	if std <= atol+tol*math.Abs(mean) {
		return true
	}
	for k := range pop[0] {
		lo, hi := pop[0][k], pop[0][k]
		for _, u := range pop[1:] {
			lo, hi = math.Min(lo, u[k]), math.Max(hi, u[k])
		}
		if hi-lo > 1e-12 {
			return false
		}
	}
	return true
}

// pick2 returns two distinct indices in [0, n) other than i.
func pick2(n, i int, rnd *rand.Rand) (int, int) {
	r0 := rnd.Intn(n)
	for r0 == i {
		r0 = rnd.Intn(n)
	}
	r1 := rnd.Intn(n)
	for r1 == i || r1 == r0 {
		r1 = rnd.Intn(n)
	}
	return r0, r1
}

// latinHypercube returns n points in [0, 1)**dim such that every
// coordinate has exactly one point in each of n equal strata.
func latinHypercube(n, dim int, rnd *rand.Rand) [][]float64 {
	pop := make([][]float64, n)
	for i := range pop {
		pop[i] = make([]float64, dim)
	}
	for k := 0; k < dim; k++ {
		for i, s := range rnd.Perm(n) {
			pop[i][k] = (float64(s) + rnd.Float64()) / float64(n)
		}
	}
	return pop
}

// project clamps u into the unit cube in place and returns the squared
// distance it moved.
func project(u []float64) float64 {
	var d2 float64
	for i, v := range u {
		c := math.Max(0, math.Min(1, v))
		if math.IsNaN(v) {
			c = 0.5
		}
		d2 += (c - v) * (c - v)
		u[i] = c
	}
	if math.IsNaN(d2) {
		return 1
	}
	return d2
}
