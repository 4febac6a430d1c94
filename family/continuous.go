// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package family

import (
	"math"

	"github.com/aclements/go-distfit/fit"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const eulerGamma = 0.57721566490153286060651209008240243104215933593992

// rising returns the rising factorial a(a+step)(a+2step)... with k
// factors.
func rising(a, step float64, k int) float64 {
	m := 1.0
	for i := 0; i < k; i++ {
		m *= a + float64(i)*step
	}
	return m
}

// factorial returns k! as a float64.
func factorial(k int) float64 {
	return rising(1, 1, k)
}

func init() {
	register(&dist{
		name: "uniform",
		lo:   0,
		hi:   1,
		logProb: func(z float64, _ []float64) float64 {
			return distuv.Uniform{Min: 0, Max: 1}.LogProb(z)
		},
		cdf: func(z float64, _ []float64) float64 {
			return distuv.Uniform{Min: 0, Max: 1}.CDF(z)
		},
		sampler: func(_ []float64, src rand.Source) func() float64 {
			return distuv.Uniform{Min: 0, Max: 1, Src: src}.Rand
		},
		moment: func(k int, _ []float64) (float64, bool) {
			return 1 / float64(k+1), true
		},
		guess: guessUniform,
	})

	register(&dist{
		name: "expon",
		lo:   0,
		hi:   inf,
		logProb: func(z float64, _ []float64) float64 {
			return distuv.Exponential{Rate: 1}.LogProb(z)
		},
		cdf: func(z float64, _ []float64) float64 {
			return distuv.Exponential{Rate: 1}.CDF(z)
		},
		sampler: func(_ []float64, src rand.Source) func() float64 {
			return distuv.Exponential{Rate: 1, Src: src}.Rand
		},
		moment: func(k int, _ []float64) (float64, bool) {
			return factorial(k), true
		},
		guess: guessLowerEdge,
	})

	register(&dist{
		name: "norm",
		lo:   -inf,
		hi:   inf,
		logProb: func(z float64, _ []float64) float64 {
			return distuv.UnitNormal.LogProb(z)
		},
		cdf: func(z float64, _ []float64) float64 {
			return distuv.UnitNormal.CDF(z)
		},
		sampler: func(_ []float64, src rand.Source) func() float64 {
			return distuv.Normal{Mu: 0, Sigma: 1, Src: src}.Rand
		},
		moment: func(k int, _ []float64) (float64, bool) {
			if k%2 == 1 {
				return 0, true
			}
			// (k-1)!!
			return rising(1, 2, k/2), true
		},
		guess: guessNorm,
	})

	register(&dist{
		name: "logistic",
		lo:   -inf,
		hi:   inf,
		logProb: func(z float64, _ []float64) float64 {
			a := math.Abs(z)
			return -a - 2*math.Log1p(math.Exp(-a))
		},
		cdf: func(z float64, _ []float64) float64 {
			return distuv.Logistic{Mu: 0, S: 1}.CDF(z)
		},
		sampler: func(_ []float64, src rand.Source) func() float64 {
			u := distuv.Uniform{Min: 0, Max: 1, Src: src}
			l := distuv.Logistic{Mu: 0, S: 1}
			return func() float64 { return l.Quantile(u.Rand()) }
		},
		moment: func(k int, _ []float64) (float64, bool) {
			switch k {
			case 1, 3:
				return 0, true
			case 2:
				return math.Pi * math.Pi / 3, true
			case 4:
				return 7 * math.Pow(math.Pi, 4) / 15, true
			}
			return 0, false
		},
		guess: guessLogistic,
	})

	register(&dist{
		name: "laplace",
		lo:   -inf,
		hi:   inf,
		logProb: func(z float64, _ []float64) float64 {
			return distuv.Laplace{Mu: 0, Scale: 1}.LogProb(z)
		},
		cdf: func(z float64, _ []float64) float64 {
			return distuv.Laplace{Mu: 0, Scale: 1}.CDF(z)
		},
		sampler: func(_ []float64, src rand.Source) func() float64 {
			return distuv.Laplace{Mu: 0, Scale: 1, Src: src}.Rand
		},
		moment: func(k int, _ []float64) (float64, bool) {
			if k%2 == 1 {
				return 0, true
			}
			return factorial(k), true
		},
		guess: guessLaplace,
	})

	// gumbel_r has closed-form moments, but they are left to
	// quadrature.
	register(&dist{
		name: "gumbel_r",
		lo:   -inf,
		hi:   inf,
		logProb: func(z float64, _ []float64) float64 {
			return distuv.GumbelRight{Mu: 0, Beta: 1}.LogProb(z)
		},
		cdf: func(z float64, _ []float64) float64 {
			return distuv.GumbelRight{Mu: 0, Beta: 1}.CDF(z)
		},
		sampler: func(_ []float64, src rand.Source) func() float64 {
			return distuv.GumbelRight{Mu: 0, Beta: 1, Src: src}.Rand
		},
		guess: guessGumbel,
	})

	register(&dist{
		name: "gamma",
		shapes: []fit.Shape{
			{Name: "a", Domain: fit.Interval{Lo: 0, Hi: inf}, Search: search(0.01, 100)},
		},
		lo:    0,
		hi:    inf,
		valid: positive,
		logProb: func(z float64, s []float64) float64 {
			return distuv.Gamma{Alpha: s[0], Beta: 1}.LogProb(z)
		},
		cdf: func(z float64, s []float64) float64 {
			return distuv.Gamma{Alpha: s[0], Beta: 1}.CDF(z)
		},
		sampler: func(s []float64, src rand.Source) func() float64 {
			return distuv.Gamma{Alpha: s[0], Beta: 1, Src: src}.Rand
		},
		moment: func(k int, s []float64) (float64, bool) {
			return rising(s[0], 1, k), true
		},
		guess: guessGamma,
	})

	register(&dist{
		name: "lognorm",
		shapes: []fit.Shape{
			{Name: "s", Domain: fit.Interval{Lo: 0, Hi: inf}, Search: search(0.01, 10)},
		},
		lo:    0,
		hi:    inf,
		valid: positive,
		logProb: func(z float64, s []float64) float64 {
			if z <= 0 {
				return math.Inf(-1)
			}
			return distuv.LogNormal{Mu: 0, Sigma: s[0]}.LogProb(z)
		},
		cdf: func(z float64, s []float64) float64 {
			if z <= 0 {
				return 0
			}
			return distuv.LogNormal{Mu: 0, Sigma: s[0]}.CDF(z)
		},
		sampler: func(s []float64, src rand.Source) func() float64 {
			return distuv.LogNormal{Mu: 0, Sigma: s[0], Src: src}.Rand
		},
		moment: func(k int, s []float64) (float64, bool) {
			kf := float64(k)
			return math.Exp(kf * kf * s[0] * s[0] / 2), true
		},
		guess: guessLognorm,
	})

	register(&dist{
		name: "weibull_min",
		shapes: []fit.Shape{
			{Name: "c", Domain: fit.Interval{Lo: 0, Hi: inf}, Search: search(0.05, 20)},
		},
		lo:    0,
		hi:    inf,
		valid: positive,
		logProb: func(z float64, s []float64) float64 {
			return distuv.Weibull{K: s[0], Lambda: 1}.LogProb(z)
		},
		cdf: func(z float64, s []float64) float64 {
			return distuv.Weibull{K: s[0], Lambda: 1}.CDF(z)
		},
		sampler: func(s []float64, src rand.Source) func() float64 {
			return distuv.Weibull{K: s[0], Lambda: 1, Src: src}.Rand
		},
		moment: func(k int, s []float64) (float64, bool) {
			return math.Gamma(1 + float64(k)/s[0]), true
		},
	})

	register(&dist{
		name: "beta",
		shapes: []fit.Shape{
			{Name: "a", Domain: fit.Interval{Lo: 0, Hi: inf}, Search: search(0.01, 100)},
			{Name: "b", Domain: fit.Interval{Lo: 0, Hi: inf}, Search: search(0.01, 100)},
		},
		lo:    0,
		hi:    1,
		valid: positive,
		logProb: func(z float64, s []float64) float64 {
			return distuv.Beta{Alpha: s[0], Beta: s[1]}.LogProb(z)
		},
		cdf: func(z float64, s []float64) float64 {
			return distuv.Beta{Alpha: s[0], Beta: s[1]}.CDF(z)
		},
		sampler: func(s []float64, src rand.Source) func() float64 {
			return distuv.Beta{Alpha: s[0], Beta: s[1], Src: src}.Rand
		},
		moment: func(k int, s []float64) (float64, bool) {
			return rising(s[0], 1, k) / rising(s[0]+s[1], 1, k), true
		},
		guess: guessBeta,
	})

	// Moments of t exist only below df, so they are left to
	// quadrature, which fails to converge where they diverge.
	register(&dist{
		name: "t",
		shapes: []fit.Shape{
			{Name: "df", Domain: fit.Interval{Lo: 0, Hi: inf}, Search: search(0.5, 100)},
		},
		lo:    -inf,
		hi:    inf,
		valid: positive,
		logProb: func(z float64, s []float64) float64 {
			return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: s[0]}.LogProb(z)
		},
		cdf: func(z float64, s []float64) float64 {
			return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: s[0]}.CDF(z)
		},
		sampler: func(s []float64, src rand.Source) func() float64 {
			return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: s[0], Src: src}.Rand
		},
	})

	register(&dist{
		name: "chi2",
		shapes: []fit.Shape{
			{Name: "df", Domain: fit.Interval{Lo: 0, Hi: inf}, Search: search(0.1, 100)},
		},
		lo:    0,
		hi:    inf,
		valid: positive,
		logProb: func(z float64, s []float64) float64 {
			return distuv.ChiSquared{K: s[0]}.LogProb(z)
		},
		cdf: func(z float64, s []float64) float64 {
			if z <= 0 {
				return 0
			}
			return distuv.ChiSquared{K: s[0]}.CDF(z)
		},
		sampler: func(s []float64, src rand.Source) func() float64 {
			return distuv.ChiSquared{K: s[0], Src: src}.Rand
		},
		moment: func(k int, s []float64) (float64, bool) {
			return rising(s[0], 2, k), true
		},
	})
}
