// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// A Family is a parametric family of continuous or discrete
// distributions with shape parameters and, optionally, location and
// scale.
//
// For a continuous family, a member with location loc and scale
// scale has density f((x-loc)/scale; shapes)/scale where f is the
// standardized density. For a discrete family, scale is always 1 and
// the mass function is p(x-loc; shapes).
//
// Prob, LogProb, and CDF must never panic for parameters outside the
// family's domain. They should return 0, -Inf, and NaN respectively,
// which the objective treats as a penalized evaluation.
type Family interface {
	// Name returns the family's name, such as "gamma".
	Name() string

	// Shapes describes the shape parameters, in order. The
	// number of shape parameters is len(Shapes()).
	Shapes() []Shape

	// Discrete reports whether the family is discrete.
	Discrete() bool

	// Support returns the support of the standardized
	// distribution (loc 0, scale 1) with the given shapes.
	Support(shapes []float64) (lo, hi float64)

	// Prob returns the density (or mass) at x.
	Prob(x float64, p Params) float64

	// LogProb returns the natural logarithm of Prob(x, p).
	LogProb(x float64, p Params) float64

	// CDF returns Pr[X <= x].
	CDF(x float64, p Params) float64

	// Rand draws n variates using src.
	Rand(n int, p Params, src rand.Source) []float64
}

// A Shape describes a shape parameter of a Family.
type Shape struct {
	// Name is the parameter's name. It must be unique within the
	// family and must not be "loc" or "scale".
	Name string

	// Domain is the closed interval of values the parameter may
	// take. Boundary values for which the family is undefined
	// must be handled by the family's density functions.
	Domain Interval

	// Integer indicates the parameter only takes integer values.
	Integer bool

	// Search, if non-nil, is a finite interval to search when the
	// caller gives no bounds and Domain is infinite.
	Search *Interval
}

// A Momenter is a Family with closed-form moments.
type Momenter interface {
	Family

	// RawMoment returns E[Z**k] for the standardized distribution
	// with the given shapes. If there is no closed form for k, ok
	// is false and the moment is computed numerically. If the
	// moment does not exist, m is NaN or ±Inf.
	RawMoment(k int, shapes []float64) (m float64, ok bool)
}

// A Guesser is a Family that can propose a starting point for the
// search from the data. The guess does not need to be feasible; it
// is projected into r.
type Guesser interface {
	Family

	Guess(xs []float64, r *Region) Params
}

// Params is a point in a Family's parameter space.
type Params struct {
	Shapes     []float64
	Loc, Scale float64
}

// Vector returns p as shapes..., loc, scale.
func (p Params) Vector() []float64 {
	v := make([]float64, 0, len(p.Shapes)+2)
	v = append(v, p.Shapes...)
	return append(v, p.Loc, p.Scale)
}

// paramsOf is the inverse of Params.Vector. The shapes slice aliases x.
func paramsOf(x []float64) Params {
	n := len(x) - 2
	return Params{Shapes: x[:n:n], Loc: x[n], Scale: x[n+1]}
}

func (p Params) String() string {
	return fmt.Sprintf("shapes=%v loc=%v scale=%v", p.Shapes, p.Loc, p.Scale)
}

// validateFamily checks the parts of the Family contract that can be
// checked without evaluating the distribution.
func validateFamily(f Family) error {
	if f == nil {
		return fmt.Errorf("%w: nil Family", ErrInvalidDistribution)
	}
	if f.Name() == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidDistribution)
	}
	seen := map[string]bool{"loc": true, "scale": true}
	for i, s := range f.Shapes() {
		switch {
		case s.Name == "":
			return fmt.Errorf("%w: %s: shape %d has no name", ErrInvalidDistribution, f.Name(), i)
		case seen[s.Name]:
			return fmt.Errorf("%w: %s: duplicate or reserved shape name %q", ErrInvalidDistribution, f.Name(), s.Name)
		case math.IsNaN(s.Domain.Lo) || math.IsNaN(s.Domain.Hi) || s.Domain.Lo > s.Domain.Hi:
			return fmt.Errorf("%w: %s: shape %q has invalid domain %v", ErrInvalidDistribution, f.Name(), s.Name, s.Domain)
		case s.Search != nil && !(s.Search.Finite() && s.Search.Lo <= s.Search.Hi):
			return fmt.Errorf("%w: %s: shape %q has invalid search interval %v", ErrInvalidDistribution, f.Name(), s.Name, *s.Search)
		}
		seen[s.Name] = true
	}
	return nil
}
