// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package family is a catalog of location-scale families of
// distributions that can be fit with package fit.
//
// Each family is defined by a standardized distribution with location
// 0 and scale 1; a member with location loc and scale scale is the
// distribution of loc + scale*Z. Discrete families have no scale and
// their location is an integer shift.
package family // import "github.com/aclements/go-distfit/family"

import (
	"math"
	"sort"

	"github.com/aclements/go-distfit/fit"
	"golang.org/x/exp/rand"
)

var inf = math.Inf(1)

// dist is a location-scale family defined by its standardized
// distribution.
type dist struct {
	name     string
	shapes   []fit.Shape
	discrete bool

	// lo and hi are the standardized support. If support is
	// non-nil, it overrides them.
	lo, hi  float64
	support func(s []float64) (lo, hi float64)

	// valid reports whether s is in the family's domain. logProb
	// and cdf are only called with valid shapes.
	valid   func(s []float64) bool
	logProb func(z float64, s []float64) float64
	cdf     func(z float64, s []float64) float64

	// sampler returns a generator of standardized variates.
	sampler func(s []float64, src rand.Source) func() float64

	// moment, if non-nil, returns closed-form E[Z**k].
	moment func(k int, s []float64) (float64, bool)

	// guess, if non-nil, makes the family a fit.Guesser.
	guess func(xs []float64, r *fit.Region) fit.Params
}

func (d *dist) Name() string { return d.name }

func (d *dist) Shapes() []fit.Shape {
	return append([]fit.Shape(nil), d.shapes...)
}

func (d *dist) Discrete() bool { return d.discrete }

func (d *dist) Support(s []float64) (lo, hi float64) {
	if d.support != nil {
		return d.support(s)
	}
	return d.lo, d.hi
}

// standardize maps x to the standardized variable. ok is false if p
// is outside the family's domain.
func (d *dist) standardize(x float64, p fit.Params) (z, logScale float64, ok bool) {
	if len(p.Shapes) != len(d.shapes) {
		return 0, 0, false
	}
	for _, v := range p.Shapes {
		if math.IsNaN(v) {
			return 0, 0, false
		}
	}
	if d.valid != nil && !d.valid(p.Shapes) {
		return 0, 0, false
	}
	if d.discrete {
		if p.Scale != 1 {
			return 0, 0, false
		}
		return x - p.Loc, 0, true
	}
	if !(p.Scale > 0) || math.IsInf(p.Scale, 1) {
		return 0, 0, false
	}
	return (x - p.Loc) / p.Scale, math.Log(p.Scale), true
}

func (d *dist) LogProb(x float64, p fit.Params) float64 {
	z, ls, ok := d.standardize(x, p)
	if !ok {
		return math.Inf(-1)
	}
	if d.discrete && z != math.Floor(z) {
		return math.Inf(-1)
	}
	return d.logProb(z, p.Shapes) - ls
}

func (d *dist) Prob(x float64, p fit.Params) float64 {
	return math.Exp(d.LogProb(x, p))
}

func (d *dist) CDF(x float64, p fit.Params) float64 {
	z, _, ok := d.standardize(x, p)
	if !ok {
		return math.NaN()
	}
	if d.discrete {
		z = math.Floor(z)
	}
	return d.cdf(z, p.Shapes)
}

// Rand draws n variates from the member of d with parameters p. It
// panics if p is outside the family's domain.
func (d *dist) Rand(n int, p fit.Params, src rand.Source) []float64 {
	if _, _, ok := d.standardize(0, p); !ok {
		panic("family: " + d.name + ": invalid parameters " + p.String())
	}
	next := d.sampler(p.Shapes, src)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = p.Loc + p.Scale*next()
	}
	return xs
}

// RawMoment implements fit.Momenter.
func (d *dist) RawMoment(k int, s []float64) (float64, bool) {
	if d.moment == nil {
		return 0, false
	}
	if d.valid != nil && !d.valid(s) {
		return math.NaN(), true
	}
	return d.moment(k, s)
}

// guessing is a dist that implements fit.Guesser.
type guessing struct {
	*dist
}

func (g guessing) Guess(xs []float64, r *fit.Region) fit.Params {
	return g.guess(xs, r)
}

var registry = map[string]fit.Family{}

func register(d *dist) {
	if _, ok := registry[d.name]; ok {
		panic("family: duplicate family " + d.name)
	}
	if d.guess != nil {
		registry[d.name] = guessing{d}
	} else {
		registry[d.name] = d
	}
}

// Lookup returns the named family, or nil if there is no such family.
func Lookup(name string) fit.Family {
	f, ok := registry[name]
	if !ok {
		return nil
	}
	return f
}

// Names returns the names of all families in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// search returns a pointer to the interval [lo, hi], for Shape.Search.
func search(lo, hi float64) *fit.Interval {
	return &fit.Interval{Lo: lo, Hi: hi}
}

// positive reports whether every element of s is > 0.
func positive(s []float64) bool {
	for _, v := range s {
		if !(v > 0) {
			return false
		}
	}
	return true
}
