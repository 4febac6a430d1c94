// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"fmt"
	"math"
	"sort"
)

var inf = math.Inf(1)

// An Interval is the closed interval [Lo, Hi]. Either end may be
// infinite.
type Interval struct {
	Lo, Hi float64
}

// Empty reports whether i contains no values.
func (i Interval) Empty() bool {
	return !(i.Lo <= i.Hi)
}

// Finite reports whether both ends of i are finite.
func (i Interval) Finite() bool {
	return !math.IsInf(i.Lo, 0) && !math.IsInf(i.Hi, 0) && !math.IsNaN(i.Lo) && !math.IsNaN(i.Hi)
}

// Fixed reports whether i contains exactly one value.
func (i Interval) Fixed() bool {
	return i.Lo == i.Hi
}

// Contains reports whether x is in i.
func (i Interval) Contains(x float64) bool {
	return i.Lo <= x && x <= i.Hi
}

// Width returns Hi - Lo.
func (i Interval) Width() float64 {
	return i.Hi - i.Lo
}

// Intersect returns the intersection of i and j, which may be empty.
func (i Interval) Intersect(j Interval) Interval {
	return Interval{math.Max(i.Lo, j.Lo), math.Min(i.Hi, j.Hi)}
}

// Clamp returns the value in i closest to x. NaN clamps to i.Lo.
func (i Interval) Clamp(x float64) float64 {
	if math.IsNaN(x) || x < i.Lo {
		return i.Lo
	} else if x > i.Hi {
		return i.Hi
	}
	return x
}

// integers narrows i to its integer-valued ends.
func (i Interval) integers() Interval {
	return Interval{math.Ceil(i.Lo), math.Floor(i.Hi)}
}

func (i Interval) String() string {
	return fmt.Sprintf("[%v, %v]", i.Lo, i.Hi)
}

// A Bound is a caller-supplied closed interval. A well-formed Bound
// has exactly two non-NaN elements, {lo, hi}. Either may be
// infinite.
type Bound []float64

func (b Bound) interval(param string) (Interval, error) {
	if len(b) != 2 {
		return Interval{}, fmt.Errorf("%w: bounds for %q must have exactly two elements (lo, hi), got %d", ErrInvalidBoundsShape, param, len(b))
	}
	if math.IsNaN(b[0]) || math.IsNaN(b[1]) {
		return Interval{}, fmt.Errorf("%w: bounds for %q must be numbers, got %v", ErrInvalidBoundsShape, param, []float64(b))
	}
	return Interval{b[0], b[1]}, nil
}

// Bounds is a caller's bounds specification. A nil field means no
// bounds were given for those parameters.
type Bounds struct {
	// Shapes gives one Bound per shape parameter, in order.
	Shapes []Bound

	// Named gives Bounds for shape parameters by name. Only one
	// of Shapes and Named may be given.
	Named map[string]Bound

	// Loc and Scale bound the location and scale.
	Loc, Scale Bound
}

// A Region is the feasible parameter region of a fit: one closed,
// non-empty interval per parameter, in the order shapes..., loc,
// scale.
type Region struct {
	// Names are the parameter names.
	Names []string

	// Intervals are the feasible intervals.
	Intervals []Interval

	// Integer marks integer-valued parameters. The ends of their
	// intervals are integers.
	Integer []bool

	// user marks parameters whose bounds were given by the
	// caller rather than taken from a domain.
	user []bool
}

// Dim returns the number of parameters.
func (r *Region) Dim() int {
	return len(r.Intervals)
}

// NumShapes returns the number of shape parameters.
func (r *Region) NumShapes() int {
	return len(r.Intervals) - 2
}

// Loc returns the feasible interval of the location.
func (r *Region) Loc() Interval {
	return r.Intervals[len(r.Intervals)-2]
}

// Scale returns the feasible interval of the scale.
func (r *Region) Scale() Interval {
	return r.Intervals[len(r.Intervals)-1]
}

// Lookup returns the feasible interval of the named parameter.
func (r *Region) Lookup(name string) (Interval, bool) {
	for i, n := range r.Names {
		if n == name {
			return r.Intervals[i], true
		}
	}
	return Interval{}, false
}

// Contains reports whether x lies in r, including integrality.
func (r *Region) Contains(x []float64) bool {
	if len(x) != r.Dim() {
		return false
	}
	for i, iv := range r.Intervals {
		if !iv.Contains(x[i]) {
			return false
		}
		if r.Integer[i] && x[i] != math.Floor(x[i]) {
			return false
		}
	}
	return true
}

// Clamp returns the point of r nearest x, with integer parameters
// rounded to the nearest integer. x is not modified.
func (r *Region) Clamp(x []float64) []float64 {
	out := make([]float64, len(x))
	r.clampTo(out, x)
	return out
}

func (r *Region) clampTo(dst, x []float64) {
	for i, iv := range r.Intervals {
		v := x[i]
		if r.Integer[i] {
			v = math.Round(v)
		}
		dst[i] = iv.Clamp(v)
	}
}

// ClampParams is Clamp for Params.
func (r *Region) ClampParams(p Params) Params {
	return paramsOf(r.Clamp(p.Vector()))
}

// Defaults are the finite search intervals used for location and
// scale when the caller gives no bounds.
type Defaults struct {
	Loc, Scale Interval
}

// Bounded replaces the infinite intervals of r with finite search
// intervals: a shape's Search interval, or d for location and scale.
// It fails with ErrUnboundedParameter for infinite intervals the
// caller asked for, or when there is no finite interval to use.
func (r *Region) Bounded(f Family, d Defaults) error {
	shapes := f.Shapes()
	for i, iv := range r.Intervals {
		if iv.Finite() {
			continue
		}
		if r.user[i] {
			return &BoundsError{Param: r.Names[i], Lo: iv.Lo, Hi: iv.Hi, Err: ErrUnboundedParameter}
		}
		var def *Interval
		switch {
		case i < len(shapes):
			def = shapes[i].Search
		case i == len(shapes):
			def = &d.Loc
		default:
			def = &d.Scale
		}
		if def == nil || !def.Finite() || def.Empty() {
			return &BoundsError{Param: r.Names[i], Lo: iv.Lo, Hi: iv.Hi, Err: ErrUnboundedParameter}
		}
		nv := iv.Intersect(*def)
		if nv.Empty() {
			// The search interval misses the domain. Keep its
			// width, anchored at the finite end of the domain.
			w := math.Max(def.Width(), 1)
			if !math.IsInf(iv.Lo, 0) {
				nv = Interval{iv.Lo, iv.Lo + w}
			} else {
				nv = Interval{iv.Hi - w, iv.Hi}
			}
		}
		if r.Integer[i] {
			nv = Interval{math.Floor(nv.Lo), math.Ceil(nv.Hi)}.Intersect(iv)
		}
		r.Intervals[i] = nv
	}
	return nil
}

// Resolve merges the caller's bounds b with the intrinsic domains of
// f into a feasible Region.
//
// Shape parameters without bounds take their Domain, the location
// takes (-inf, inf) and the scale (0, inf). Integer-valued
// parameters, including the location of a discrete family, are
// narrowed to the integers they contain. For discrete families the
// scale is fixed at 1; giving scale bounds yields a Warning. Unknown
// names in b.Named also yield Warnings and are otherwise ignored.
//
// Resolve fails with ErrInvalidBoundsShape if b is malformed, and with
// a *BoundsError wrapping ErrInfeasibleBounds or ErrNoIntegerValues
// if a parameter's interval is empty.
func Resolve(f Family, b Bounds) (*Region, []Warning, error) {
	shapes := f.Shapes()
	n := len(shapes)

	// Check the form of every bound before any feasibility
	// checks.
	if b.Shapes != nil && b.Named != nil {
		return nil, nil, fmt.Errorf("%w: shape bounds may be given by position or by name, not both", ErrInvalidBoundsShape)
	}
	if b.Shapes != nil && len(b.Shapes) != n {
		return nil, nil, fmt.Errorf("%w: %s has %d shape parameters, got %d shape bounds", ErrInvalidBoundsShape, f.Name(), n, len(b.Shapes))
	}
	user := make([]*Interval, n+2)
	for i, sb := range b.Shapes {
		iv, err := sb.interval(shapes[i].Name)
		if err != nil {
			return nil, nil, err
		}
		user[i] = &iv
	}
	var warnings []Warning
	if b.Named != nil {
		index := make(map[string]int, n)
		for i, s := range shapes {
			index[s.Name] = i
		}
		var unknown []string
		for name, sb := range b.Named {
			i, ok := index[name]
			if !ok {
				unknown = append(unknown, name)
				continue
			}
			iv, err := sb.interval(name)
			if err != nil {
				return nil, nil, err
			}
			user[i] = &iv
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			for _, name := range unknown {
				warnings = append(warnings, Warning{
					Param:   name,
					Message: fmt.Sprintf("bounds provided for unrecognized shape %q of %s; ignoring", name, f.Name()),
				})
			}
		}
	}
	for i, bd := range []Bound{b.Loc, b.Scale} {
		if bd == nil {
			continue
		}
		iv, err := bd.interval([]string{"loc", "scale"}[i])
		if err != nil {
			return nil, nil, err
		}
		user[n+i] = &iv
	}

	r := &Region{
		Names:     make([]string, n+2),
		Intervals: make([]Interval, n+2),
		Integer:   make([]bool, n+2),
		user:      make([]bool, n+2),
	}
	discrete := f.Discrete()
	for i := 0; i < n+2; i++ {
		var domain Interval
		switch {
		case i < n:
			r.Names[i] = shapes[i].Name
			r.Integer[i] = shapes[i].Integer
			domain = shapes[i].Domain
		case i == n:
			r.Names[i] = "loc"
			r.Integer[i] = discrete
			domain = Interval{-inf, inf}
		default:
			r.Names[i] = "scale"
			domain = Interval{0, inf}
		}

		if i == n+1 && discrete {
			if u := user[i]; u != nil {
				if u.Empty() {
					return nil, nil, &BoundsError{Param: "scale", Lo: u.Lo, Hi: u.Hi, Err: ErrInfeasibleBounds}
				}
				warnings = append(warnings, Warning{
					Param:   "scale",
					Message: fmt.Sprintf("%s is discrete and has no scale parameter; scale bounds are ignored and scale is fixed at 1", f.Name()),
				})
			}
			r.Intervals[i] = Interval{1, 1}
			r.user[i] = true
			continue
		}

		iv := domain
		if u := user[i]; u != nil {
			if u.Empty() {
				return nil, nil, &BoundsError{Param: r.Names[i], Lo: u.Lo, Hi: u.Hi, Err: ErrInfeasibleBounds}
			}
			iv = u.Intersect(domain)
			if iv.Empty() {
				return nil, nil, &BoundsError{Param: r.Names[i], Lo: u.Lo, Hi: u.Hi, Err: ErrInfeasibleBounds}
			}
			r.user[i] = true
		}
		if r.Integer[i] {
			before := iv
			iv = iv.integers()
			if iv.Empty() {
				return nil, nil, &BoundsError{Param: r.Names[i], Lo: before.Lo, Hi: before.Hi, Err: ErrNoIntegerValues}
			}
		}
		r.Intervals[i] = iv
	}
	return r, warnings, nil
}
