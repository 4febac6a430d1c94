// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/fit"
)

var inf = math.Inf(1)

func requireBoundsError(t *testing.T, err error, kind error, param string) *fit.BoundsError {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "want %v, got %v", kind, err)
	var be *fit.BoundsError
	require.True(t, errors.As(err, &be), "error must be a *BoundsError: %v", err)
	require.Equal(t, param, be.Param)
	return be
}

func TestResolveDefaults(t *testing.T) {
	r, warnings, err := fit.Resolve(family.Lookup("gamma"), fit.Bounds{})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"a", "loc", "scale"}, r.Names)
	assert.Equal(t, []fit.Interval{{0, inf}, {-inf, inf}, {0, inf}}, r.Intervals)
	assert.Equal(t, []bool{false, false, false}, r.Integer)
	assert.Equal(t, 1, r.NumShapes())
}

func TestResolveDiscrete(t *testing.T) {
	r, warnings, err := fit.Resolve(family.Lookup("binom"), fit.Bounds{
		Named: map[string]fit.Bound{"n": {1.5, 10.2}},
		Loc:   fit.Bound{-0.5, 3.7},
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []fit.Interval{{2, 10}, {0, 1}, {0, 3}, {1, 1}}, r.Intervals)
	assert.Equal(t, []bool{true, false, true, false}, r.Integer)
}

func TestResolveInfeasible(t *testing.T) {
	binom := family.Lookup("binom")
	_, _, err := fit.Resolve(binom, fit.Bounds{
		Named: map[string]fit.Bound{"n": {1, 10}, "p": {1, 0}},
	})
	be := requireBoundsError(t, err, fit.ErrInfeasibleBounds, "p")
	assert.Equal(t, 1.0, be.Lo)
	assert.Equal(t, 0.0, be.Hi)
	assert.Contains(t, err.Error(), "no values for \"p\"")

	// Non-empty, but disjoint from the domain.
	_, _, err = fit.Resolve(binom, fit.Bounds{
		Named: map[string]fit.Bound{"p": {1.5, 2}},
	})
	requireBoundsError(t, err, fit.ErrInfeasibleBounds, "p")

	_, _, err = fit.Resolve(family.Lookup("norm"), fit.Bounds{Scale: fit.Bound{-2, -1}})
	requireBoundsError(t, err, fit.ErrInfeasibleBounds, "scale")

	_, _, err = fit.Resolve(family.Lookup("norm"), fit.Bounds{Loc: fit.Bound{3, 2}})
	requireBoundsError(t, err, fit.ErrInfeasibleBounds, "loc")
}

func TestResolveNoIntegers(t *testing.T) {
	binom := family.Lookup("binom")
	_, _, err := fit.Resolve(binom, fit.Bounds{
		Named: map[string]fit.Bound{"n": {1.4, 1.6}, "p": {0, 1}},
	})
	requireBoundsError(t, err, fit.ErrNoIntegerValues, "n")
	assert.Contains(t, err.Error(), "no integer values for \"n\"")

	// The location of a discrete family is an integer too.
	_, _, err = fit.Resolve(family.Lookup("poisson"), fit.Bounds{Loc: fit.Bound{0.2, 0.8}})
	requireBoundsError(t, err, fit.ErrNoIntegerValues, "loc")
}

func TestResolveMalformed(t *testing.T) {
	gamma := family.Lookup("gamma")
	for _, test := range []struct {
		name string
		b    fit.Bounds
	}{
		{"short", fit.Bounds{Shapes: []fit.Bound{{1}}}},
		{"long", fit.Bounds{Shapes: []fit.Bound{{1, 2, 3}}}},
		{"nan", fit.Bounds{Named: map[string]fit.Bound{"a": {math.NaN(), 2}}}},
		{"count", fit.Bounds{Shapes: []fit.Bound{{1, 2}, {1, 2}}}},
		{"both", fit.Bounds{Shapes: []fit.Bound{{1, 2}}, Named: map[string]fit.Bound{"a": {1, 2}}}},
		{"loc", fit.Bounds{Loc: fit.Bound{0}}},
		{"scale", fit.Bounds{Scale: fit.Bound{0, 1, 2}}},
		// Malformed bounds are reported even when another
		// parameter is infeasible.
		{"before feasibility", fit.Bounds{Shapes: []fit.Bound{{2, 1}}, Loc: fit.Bound{}}},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := fit.Resolve(gamma, test.b)
			require.ErrorIs(t, err, fit.ErrInvalidBoundsShape)
		})
	}
}

func TestResolveWarnings(t *testing.T) {
	r, warnings, err := fit.Resolve(family.Lookup("gamma"), fit.Bounds{
		Named: map[string]fit.Bound{"z": {0, 1}, "a": {1, 2}, "b": {0, 1}},
	})
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Equal(t, "b", warnings[0].Param)
	assert.Equal(t, "z", warnings[1].Param)
	a, ok := r.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, fit.Interval{Lo: 1, Hi: 2}, a)

	r, warnings, err = fit.Resolve(family.Lookup("poisson"), fit.Bounds{Scale: fit.Bound{0.5, 2}})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "scale", warnings[0].Param)
	assert.Equal(t, fit.Interval{Lo: 1, Hi: 1}, r.Scale())

	// Scale bounds for a discrete family are still checked.
	_, _, err = fit.Resolve(family.Lookup("poisson"), fit.Bounds{Scale: fit.Bound{2, 1}})
	requireBoundsError(t, err, fit.ErrInfeasibleBounds, "scale")
}

func TestBounded(t *testing.T) {
	defaults := fit.Defaults{Loc: fit.Interval{Lo: -10, Hi: 10}, Scale: fit.Interval{Lo: 0.01, Hi: 20}}

	gamma := family.Lookup("gamma")
	r, _, err := fit.Resolve(gamma, fit.Bounds{Loc: fit.Bound{0, 0}})
	require.NoError(t, err)
	require.NoError(t, r.Bounded(gamma, defaults))
	assert.Equal(t, []fit.Interval{{0.01, 100}, {0, 0}, {0.01, 20}}, r.Intervals)

	// A caller-supplied interval that is still infinite.
	norm := family.Lookup("norm")
	r, _, err = fit.Resolve(norm, fit.Bounds{Loc: fit.Bound{0, inf}})
	require.NoError(t, err)
	requireBoundsError(t, r.Bounded(norm, defaults), fit.ErrUnboundedParameter, "loc")

	// A default that misses the feasible interval is moved onto it.
	r, _, err = fit.Resolve(norm, fit.Bounds{Loc: fit.Bound{0, 1}})
	require.NoError(t, err)
	require.NoError(t, r.Bounded(norm, fit.Defaults{Scale: fit.Interval{Lo: -5, Hi: -1}}))
	assert.Equal(t, fit.Interval{Lo: 0, Hi: 1}, r.Loc())
	assert.Equal(t, fit.Interval{Lo: 0, Hi: 4}, r.Scale())

	binom := family.Lookup("binom")
	r, _, err = fit.Resolve(binom, fit.Bounds{})
	require.NoError(t, err)
	require.NoError(t, r.Bounded(binom, fit.Defaults{Loc: fit.Interval{Lo: -2.5, Hi: 7.5}}))
	assert.Equal(t, []fit.Interval{{0, 1000}, {0, 1}, {-3, 8}, {1, 1}}, r.Intervals)
}

func TestRegionClamp(t *testing.T) {
	r, _, err := fit.Resolve(family.Lookup("binom"), fit.Bounds{
		Shapes: []fit.Bound{{0, 10}, {0, 1}},
		Loc:    fit.Bound{-5, 5},
	})
	require.NoError(t, err)
	x := []float64{12.7, 0.4, -1.6, 3}
	got := r.Clamp(x)
	assert.Equal(t, []float64{10, 0.4, -2, 1}, got)
	assert.Equal(t, []float64{12.7, 0.4, -1.6, 3}, x, "Clamp must not modify its argument")
	assert.True(t, r.Contains(got))
	assert.False(t, r.Contains([]float64{2.5, 0.4, 0, 1}))
	assert.False(t, r.Contains([]float64{2, 0.4, 0}))
}
