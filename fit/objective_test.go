// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/fit"
)

func TestMLEObjective(t *testing.T) {
	xs := []float64{-1, 0.5, 2, 3.25}
	obj := fit.NewObjective(family.Lookup("norm"), xs, fit.MLE, nil)

	cost, ok := obj([]float64{1, 2})
	require.True(t, ok)
	want := 0.0
	for _, x := range xs {
		want -= distuv.Normal{Mu: 1, Sigma: 2}.LogProb(x)
	}
	assert.InDelta(t, want, cost, 1e-12)

	for _, scale := range []float64{0, -1, math.NaN(), inf} {
		cost, ok := obj([]float64{1, scale})
		assert.False(t, ok, "scale %v", scale)
		assert.False(t, math.IsNaN(cost) || math.IsInf(cost, 0), "scale %v: cost %v", scale, cost)
		assert.Greater(t, cost, want)
	}
}

func TestMLEPenalty(t *testing.T) {
	obj := fit.NewObjective(family.Lookup("uniform"), table, fit.MLE, nil)

	best, ok := obj([]float64{1.01, 0.99})
	require.True(t, ok)

	// Fewer samples outside the support ranks better.
	one, ok := obj([]float64{1.01, 0.95})
	assert.False(t, ok)
	two, ok := obj([]float64{1.2, 0.75})
	assert.False(t, ok)
	all, ok := obj([]float64{10, 1})
	assert.False(t, ok)
	assert.Less(t, best, one)
	assert.Less(t, one, two)
	assert.Less(t, two, all)
	assert.False(t, math.IsInf(all, 0))

	// Evaluation is idempotent and does not modify its argument.
	x := []float64{1.2, 0.75}
	again, _ := obj(x)
	assert.Equal(t, two, again)
	assert.Equal(t, []float64{1.2, 0.75}, x)
}

func TestMMObjective(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	obj := fit.NewObjective(family.Lookup("norm"), xs, fit.MM, nil)

	// Raw moments 2.5 and 7.5 are matched by loc 2.5 and
	// scale**2 1.25.
	cost, ok := obj([]float64{2.5, math.Sqrt(1.25)})
	require.True(t, ok)
	assert.InDelta(t, 0, cost, 1e-20)

	// Residuals are normalized by the data moments.
	cost, ok = obj([]float64{3, math.Sqrt(1.25)})
	require.True(t, ok)
	r1 := (2.5 - 3) / 2.5
	r2 := (7.5 - (9 + 1.25)) / 7.5
	assert.InDelta(t, r1*r1+r2*r2, cost, 1e-12)
}

// withMoments adds closed-form moments to a family whose moments are
// otherwise computed numerically.
type withMoments struct {
	fit.Family
	moment func(k int, shapes []float64) float64
}

func (w withMoments) RawMoment(k int, shapes []float64) (float64, bool) {
	return w.moment(k, shapes), true
}

const zeta3 = 1.2020569031595942853997381615114499907649862923405

func TestNumericMoments(t *testing.T) {
	const eulerGamma = 0.57721566490153286060651209008240243104215933593992
	gumbel := withMoments{family.Lookup("gumbel_r"), func(k int, _ []float64) float64 {
		g, z2 := eulerGamma, math.Pi*math.Pi/6
		switch k {
		case 1:
			return g
		case 2:
			return g*g + z2
		case 3:
			return g*g*g + 3*g*z2 + 2*zeta3
		}
		return math.NaN()
	}}
	studentsT := withMoments{family.Lookup("t"), func(k int, s []float64) float64 {
		df := s[0]
		switch k {
		case 1, 3:
			return 0
		case 2:
			return df / (df - 2)
		}
		return math.NaN()
	}}
	binom := withMoments{family.Lookup("binom"), func(k int, s []float64) float64 {
		n, p := s[0], s[1]
		switch k {
		case 1:
			return n * p
		case 2:
			return n*p*(1-p) + n*n*p*p
		case 3:
			return n * p * (1 - 3*p + 3*n*p + 2*p*p - 3*n*p*p + n*n*p*p)
		}
		return math.NaN()
	}}

	for _, test := range []struct {
		numeric fit.Family
		closed  withMoments
		xs      []float64
		points  [][]float64
	}{
		{gumbel.Family, gumbel, []float64{-1, 0, 0.5, 2, 4}, [][]float64{{0, 1}, {1.5, 0.3}, {-2, 4}}},
		{studentsT.Family, studentsT, []float64{-3, -1, 0, 1, 2.5}, [][]float64{{10, 0, 1}, {4.5, 1, 2}}},
		{binom.Family, binom, []float64{0, 1, 1, 3, 4}, [][]float64{{10, 0.3, 0, 1}, {25, 0.9, -2, 1}, {1, 0.5, 0, 1}}},
	} {
		t.Run(test.numeric.Name(), func(t *testing.T) {
			numeric := fit.NewObjective(test.numeric, test.xs, fit.MM, nil)
			closed := fit.NewObjective(test.closed, test.xs, fit.MM, nil)
			for _, x := range test.points {
				got, ok := numeric(x)
				require.True(t, ok, "%v: numeric moments failed", x)
				want, ok := closed(x)
				require.True(t, ok)
				assert.InEpsilon(t, want, got, 1e-5, "at %v", x)
			}
		})
	}
}

func TestNumericMomentsDiverge(t *testing.T) {
	// The second moment of t with df <= 2 diverges, which
	// quadrature cannot resolve.
	obj := fit.NewObjective(family.Lookup("t"), []float64{-1, 0, 1, 2}, fit.MM, nil)
	_, ok := obj([]float64{1.5, 0, 1})
	assert.False(t, ok)
	_, ok = obj([]float64{30, 0, 1})
	assert.True(t, ok)

	// Out of domain shapes are penalized rather than integrated.
	cost, ok := obj([]float64{-1, 0, 1})
	assert.False(t, ok)
	assert.False(t, math.IsNaN(cost))
}
