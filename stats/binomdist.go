// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distuv"
)

// BinomialDist is a binomial distribution.
type BinomialDist struct {
	// N is the number of independent Bernoulli trials. N >= 0.
	//
	// If N=1, this is equivalent to the Bernoulli distribution.
	N int

	// P is the probability of success in each trial. 0 <= P <= 1.
	P float64
}

// PMF is the probability of getting exactly int(k) successes in d.N
// independent Bernoulli trials with probability d.P.
func (d BinomialDist) PMF(k float64) float64 {
	return math.Exp(d.LogPMF(k))
}

// LogPMF is the natural logarithm of PMF(k). It is -Inf outside
// [0, d.N] and for invalid parameters.
func (d BinomialDist) LogPMF(k float64) float64 {
	if d.N < 0 || !(d.P >= 0 && d.P <= 1) {
		return math.Inf(-1)
	}
	ki := int(math.Floor(k))
	if ki < 0 || ki > d.N {
		return math.Inf(-1)
	}
	// Handle the degenerate endpoints explicitly; 0*log(0) is NaN.
	switch {
	case d.P == 0:
		if ki == 0 {
			return 0
		}
		return math.Inf(-1)
	case d.P == 1:
		if ki == d.N {
			return 0
		}
		return math.Inf(-1)
	}
	n, kf := float64(d.N), float64(ki)
	return combin.LogGeneralizedBinomial(n, kf) + kf*math.Log(d.P) + (n-kf)*math.Log1p(-d.P)
}

// CDF is the probability of getting k or fewer successes in d.N
// independent Bernoulli trials with probability d.P.
func (d BinomialDist) CDF(k float64) float64 {
	k = math.Floor(k)
	ki := int(k)
	if ki < 0 {
		return 0
	} else if ki >= d.N {
		return 1
	}
	if d.P == 0 {
		return 1
	} else if d.P == 1 {
		return 0
	}

	return mathext.RegIncBeta(float64(d.N-ki), k+1, 1-d.P)
}

func (d BinomialDist) Bounds() (float64, float64) {
	return 0, float64(d.N)
}

func (d BinomialDist) Step() float64 {
	return 1
}

func (d BinomialDist) Mean() float64 {
	return float64(d.N) * d.P
}

func (d BinomialDist) Variance() float64 {
	return float64(d.N) * d.P * (1 - d.P)
}

// Rand draws one variate from d using src.
func (d BinomialDist) Rand(src rand.Source) float64 {
	if d.N == 0 {
		return 0
	}
	return distuv.Binomial{N: float64(d.N), P: d.P, Src: src}.Rand()
}
