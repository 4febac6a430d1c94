// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package family

import (
	"math"

	"github.com/aclements/go-distfit/fit"
	"github.com/aclements/go-distfit/stats"
)

// summary holds the statistics most guesses start from.
type summary struct {
	s        stats.Sample
	mean     float64
	std      float64 // maximum likelihood (1/n) estimate
	min, max float64
}

func summarize(xs []float64) summary {
	s := stats.Sample{Xs: xs}
	n := float64(len(xs))
	sm := summary{s: s, mean: s.Mean()}
	sm.std = math.Sqrt(s.CentralMoment(2))
	if n < 2 {
		sm.std = 0
	}
	sm.min, sm.max = s.Bounds()
	return sm
}

// skew returns the sample skewness.
func (sm summary) skew() float64 {
	if sm.std == 0 {
		return 0
	}
	return sm.s.CentralMoment(3) / (sm.std * sm.std * sm.std)
}

// orOne returns v if it is positive and finite, and 1 otherwise.
func orOne(v float64) float64 {
	if v > 0 && !math.IsInf(v, 1) {
		return v
	}
	return 1
}

func guessNorm(xs []float64, r *fit.Region) fit.Params {
	sm := summarize(xs)
	return fit.Params{Loc: sm.mean, Scale: orOne(sm.std)}
}

// guessLowerEdge guesses families whose support starts at loc and
// whose scale is the mean excess over loc.
func guessLowerEdge(xs []float64, r *fit.Region) fit.Params {
	sm := summarize(xs)
	loc := r.Loc().Clamp(sm.min)
	return fit.Params{Loc: loc, Scale: orOne(sm.mean - loc)}
}

func guessUniform(xs []float64, r *fit.Region) fit.Params {
	sm := summarize(xs)
	loc := r.Loc().Clamp(sm.min)
	return fit.Params{Loc: loc, Scale: orOne(sm.max - loc)}
}

func guessLaplace(xs []float64, r *fit.Region) fit.Params {
	sm := summarize(xs)
	loc := r.Loc().Clamp(sm.s.Quantile(0.5))
	var dev float64
	for _, x := range xs {
		dev += math.Abs(x - loc)
	}
	return fit.Params{Loc: loc, Scale: orOne(dev / float64(len(xs)))}
}

func guessLogistic(xs []float64, r *fit.Region) fit.Params {
	sm := summarize(xs)
	return fit.Params{Loc: sm.mean, Scale: orOne(sm.std * math.Sqrt(3) / math.Pi)}
}

func guessGumbel(xs []float64, r *fit.Region) fit.Params {
	sm := summarize(xs)
	scale := orOne(sm.std * math.Sqrt(6) / math.Pi)
	return fit.Params{Loc: sm.mean - eulerGamma*scale, Scale: scale}
}

func guessGamma(xs []float64, r *fit.Region) fit.Params {
	sm := summarize(xs)
	loc := r.Loc()
	if loc.Fixed() {
		m := sm.mean - loc.Lo
		a := m * m / (sm.std * sm.std)
		return fit.Params{Shapes: []float64{orOne(a)}, Loc: loc.Lo, Scale: orOne(m / orOne(a))}
	}
	a := 1.0
	if g := sm.skew(); g > 0 {
		a = 4 / (g * g)
	}
	scale := orOne(sm.std / math.Sqrt(a))
	return fit.Params{Shapes: []float64{a}, Loc: sm.mean - a*scale, Scale: scale}
}

func guessLognorm(xs []float64, r *fit.Region) fit.Params {
	sm := summarize(xs)
	loc := r.Loc().Clamp(sm.min - (sm.max-sm.min)/float64(len(xs)+1))
	if loc >= sm.min {
		return fit.Params{Shapes: []float64{1}, Loc: loc, Scale: 1}
	}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = math.Log(x - loc)
	}
	ls := summarize(ys)
	return fit.Params{Shapes: []float64{orOne(ls.std)}, Loc: loc, Scale: math.Exp(ls.mean)}
}

func guessBeta(xs []float64, r *fit.Region) fit.Params {
	sm := summarize(xs)
	pad := (sm.max - sm.min) / float64(len(xs)+1)
	if pad == 0 {
		pad = 1
	}
	loc := r.Loc().Clamp(sm.min - pad)
	scale := orOne(r.Scale().Clamp(sm.max + pad - loc))
	m := (sm.mean - loc) / scale
	v := sm.std * sm.std / (scale * scale)
	common := m*(1-m)/v - 1
	if !(common > 0) || !(m > 0 && m < 1) {
		return fit.Params{Shapes: []float64{1, 1}, Loc: loc, Scale: scale}
	}
	return fit.Params{Shapes: []float64{m * common, (1 - m) * common}, Loc: loc, Scale: scale}
}

func guessBinom(xs []float64, r *fit.Region) fit.Params {
	sm := summarize(xs)
	loc := r.Loc().Clamp(0)
	n := math.Max(1, sm.max-loc)
	return fit.Params{Shapes: []float64{n, (sm.mean - loc) / n}, Loc: loc, Scale: 1}
}

func guessPoisson(xs []float64, r *fit.Region) fit.Params {
	sm := summarize(xs)
	loc := r.Loc().Clamp(0)
	return fit.Params{Shapes: []float64{sm.mean - loc}, Loc: loc, Scale: 1}
}

func guessBernoulli(xs []float64, r *fit.Region) fit.Params {
	sm := summarize(xs)
	loc := r.Loc().Clamp(sm.min)
	return fit.Params{Shapes: []float64{sm.mean - loc}, Loc: loc, Scale: 1}
}

func guessGeom(xs []float64, r *fit.Region) fit.Params {
	sm := summarize(xs)
	loc := r.Loc().Clamp(sm.min - 1)
	return fit.Params{Shapes: []float64{1 / (sm.mean - loc)}, Loc: loc, Scale: 1}
}
