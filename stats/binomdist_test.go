// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func TestBinomialDist(t *testing.T) {
	dist := BinomialDist{N: 5, P: 0.2}
	testFunc(t, fmt.Sprintf("%+v.PMF", dist), dist.PMF,
		map[float64]float64{
			-1000: 0,
			-1:    0,
			0:     0.32768,
			1:     0.4096,
			2:     0.2048,
			3:     0.0512,
			4:     0.0064,
			5:     math.Pow(dist.P, 5),
			6:     0,
			1000:  0,
		})
	testDiscreteCDF(t, fmt.Sprintf("%+v.CDF", dist), dist)

	// Degenerate success probabilities.
	dist = BinomialDist{N: 4, P: 0}
	testFunc(t, fmt.Sprintf("%+v.PMF", dist), dist.PMF,
		map[float64]float64{0: 1, 1: 0, 4: 0})
	testDiscreteCDF(t, fmt.Sprintf("%+v.CDF", dist), dist)
	dist = BinomialDist{N: 4, P: 1}
	testFunc(t, fmt.Sprintf("%+v.PMF", dist), dist.PMF,
		map[float64]float64{0: 0, 3: 0, 4: 1})
	testDiscreteCDF(t, fmt.Sprintf("%+v.CDF", dist), dist)

	// Invalid parameters have no mass anywhere.
	for _, bad := range []BinomialDist{{N: -1, P: 0.5}, {N: 3, P: 1.5}, {N: 3, P: math.NaN()}} {
		if lp := bad.LogPMF(0); !math.IsInf(lp, -1) {
			t.Errorf("%+v.LogPMF(0) = %v, want -Inf", bad, lp)
		}
	}
}

func TestBinomialDistRand(t *testing.T) {
	dist := BinomialDist{N: 30, P: 0.5}
	src := rand.NewSource(1)
	var s Sample
	for i := 0; i < 5000; i++ {
		x := dist.Rand(src)
		if x < 0 || x > 30 || x != math.Floor(x) {
			t.Fatalf("Rand returned %v, want integer in [0, 30]", x)
		}
		s.Xs = append(s.Xs, x)
	}
	// Mean of 5000 draws has std error ~0.04.
	if m := s.Mean(); math.Abs(m-dist.Mean()) > 0.25 {
		t.Errorf("mean of draws = %v, want ≅ %v", m, dist.Mean())
	}
	if v := s.Variance(); math.Abs(v-dist.Variance()) > 0.75 {
		t.Errorf("variance of draws = %v, want ≅ %v", v, dist.Variance())
	}
}
