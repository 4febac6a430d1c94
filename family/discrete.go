// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package family

import (
	"math"

	"github.com/aclements/go-distfit/fit"
	"github.com/aclements/go-distfit/stats"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// probability reports whether p is in [0, 1].
func probability(p float64) bool {
	return p >= 0 && p <= 1
}

func binomOf(s []float64) stats.BinomialDist {
	return stats.BinomialDist{N: int(s[0]), P: s[1]}
}

func init() {
	// Binomial moments are summed numerically.
	register(&dist{
		name: "binom",
		shapes: []fit.Shape{
			{Name: "n", Domain: fit.Interval{Lo: 0, Hi: inf}, Integer: true, Search: search(0, 1000)},
			{Name: "p", Domain: fit.Interval{Lo: 0, Hi: 1}},
		},
		discrete: true,
		support: func(s []float64) (float64, float64) {
			return 0, s[0]
		},
		valid: func(s []float64) bool {
			return s[0] >= 0 && s[0] == math.Floor(s[0]) && probability(s[1])
		},
		logProb: func(z float64, s []float64) float64 {
			return binomOf(s).LogPMF(z)
		},
		cdf: func(z float64, s []float64) float64 {
			return binomOf(s).CDF(z)
		},
		sampler: func(s []float64, src rand.Source) func() float64 {
			d := binomOf(s)
			return func() float64 { return d.Rand(src) }
		},
		guess: guessBinom,
	})

	register(&dist{
		name: "poisson",
		shapes: []fit.Shape{
			{Name: "mu", Domain: fit.Interval{Lo: 0, Hi: inf}, Search: search(0, 1000)},
		},
		discrete: true,
		lo:       0,
		hi:       inf,
		valid: func(s []float64) bool {
			return s[0] >= 0 && !math.IsInf(s[0], 1)
		},
		logProb: func(z float64, s []float64) float64 {
			if s[0] == 0 {
				if z == 0 {
					return 0
				}
				return math.Inf(-1)
			}
			return distuv.Poisson{Lambda: s[0]}.LogProb(z)
		},
		cdf: func(z float64, s []float64) float64 {
			if z < 0 {
				return 0
			}
			if s[0] == 0 {
				return 1
			}
			return distuv.Poisson{Lambda: s[0]}.CDF(z)
		},
		sampler: func(s []float64, src rand.Source) func() float64 {
			if s[0] == 0 {
				return func() float64 { return 0 }
			}
			return distuv.Poisson{Lambda: s[0], Src: src}.Rand
		},
		moment: func(k int, s []float64) (float64, bool) {
			mu := s[0]
			switch k {
			case 1:
				return mu, true
			case 2:
				return mu + mu*mu, true
			case 3:
				return mu*mu*mu + 3*mu*mu + mu, true
			}
			return 0, false
		},
		guess: guessPoisson,
	})

	register(&dist{
		name: "bernoulli",
		shapes: []fit.Shape{
			{Name: "p", Domain: fit.Interval{Lo: 0, Hi: 1}},
		},
		discrete: true,
		lo:       0,
		hi:       1,
		valid: func(s []float64) bool {
			return probability(s[0])
		},
		logProb: func(z float64, s []float64) float64 {
			return distuv.Bernoulli{P: s[0]}.LogProb(z)
		},
		cdf: func(z float64, s []float64) float64 {
			return distuv.Bernoulli{P: s[0]}.CDF(z)
		},
		sampler: func(s []float64, src rand.Source) func() float64 {
			return distuv.Bernoulli{P: s[0], Src: src}.Rand
		},
		moment: func(k int, s []float64) (float64, bool) {
			return s[0], true
		},
		guess: guessBernoulli,
	})

	// geom counts the trials up to and including the first
	// success, so its support starts at 1.
	register(&dist{
		name: "geom",
		shapes: []fit.Shape{
			{Name: "p", Domain: fit.Interval{Lo: 0, Hi: 1}},
		},
		discrete: true,
		lo:       1,
		hi:       inf,
		valid: func(s []float64) bool {
			return s[0] > 0 && s[0] <= 1
		},
		logProb: func(z float64, s []float64) float64 {
			if z < 1 {
				return math.Inf(-1)
			}
			p := s[0]
			if p == 1 {
				if z == 1 {
					return 0
				}
				return math.Inf(-1)
			}
			return (z-1)*math.Log1p(-p) + math.Log(p)
		},
		cdf: func(z float64, s []float64) float64 {
			if z < 1 {
				return 0
			}
			return -math.Expm1(z * math.Log1p(-s[0]))
		},
		sampler: func(s []float64, src rand.Source) func() float64 {
			p := s[0]
			u := distuv.Uniform{Min: 0, Max: 1, Src: src}
			return func() float64 {
				if p == 1 {
					return 1
				}
				return math.Max(1, math.Ceil(math.Log1p(-u.Rand())/math.Log1p(-p)))
			}
		},
		moment: func(k int, s []float64) (float64, bool) {
			p := s[0]
			switch k {
			case 1:
				return 1 / p, true
			case 2:
				return (2 - p) / (p * p), true
			case 3:
				return (6 - 6*p + p*p) / (p * p * p), true
			}
			return 0, false
		},
		guess: guessGeom,
	})
}
