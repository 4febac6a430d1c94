// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/combin"
)

// Quadrature controls how distribution moments without a closed form
// are computed for the method of moments.
//
// Continuous moments are integrated with fixed Gauss-Legendre rules
// of Nodes and 2*Nodes points, mapping infinite limits onto (-1, 1).
// The integral is accepted if the two rules agree within Tol
// relative error and the density integrates to 1 within MassTol.
// Discrete moments are summed over the support until the remaining
// mass is below MassTol, for at most MaxTerms terms.
//
// The zero value is a reasonable default configuration.
type Quadrature struct {
	Nodes    int
	Tol      float64
	MassTol  float64
	MaxTerms int
}

func (q Quadrature) withDefaults() Quadrature {
	if q.Nodes <= 0 {
		q.Nodes = 128
	}
	if q.Tol <= 0 {
		q.Tol = 1e-6
	}
	if q.MassTol <= 0 {
		q.MassTol = 1e-4
	}
	if q.MaxTerms <= 0 {
		q.MaxTerms = 100000
	}
	return q
}

// legendre is a Gauss-Legendre rule on [-1, 1].
type legendre struct {
	xs, ws []float64
}

func newLegendre(n int) legendre {
	r := legendre{make([]float64, n), make([]float64, n)}
	quad.Legendre{}.FixedLocations(r.xs, r.ws, -1, 1)
	return r
}

// momentIntegrator computes standardized moments E[Z**j] of a family.
type momentIntegrator struct {
	q            Quadrature
	coarse, fine legendre
}

func newMomentIntegrator(q Quadrature) *momentIntegrator {
	q = q.withDefaults()
	return &momentIntegrator{q: q, coarse: newLegendre(q.Nodes), fine: newLegendre(2 * q.Nodes)}
}

// integrate returns ∫ z**j f(z) dz over [lo, hi] for j = 0..k using
// rule r. Infinite limits are handled by the same changes of
// variables as quad.Fixed.
func (r legendre) integrate(f func(float64) float64, lo, hi float64, k int, out []float64) {
	for j := range out[:k+1] {
		out[j] = 0
	}
	for i, t := range r.xs {
		var z, dz float64
		switch {
		case math.IsInf(lo, -1) && math.IsInf(hi, 1):
			v := 1 - t*t
			z, dz = t/v, (1+t*t)/(v*v)
		case math.IsInf(hi, 1):
			u := (t + 1) / 2
			v := 1 - u
			z, dz = lo+u/v, 0.5/(v*v)
		case math.IsInf(lo, -1):
			u := (t + 1) / 2
			z, dz = hi-(1-u)/u, 0.5/(u*u)
		default:
			z, dz = (lo+hi)/2+(hi-lo)/2*t, (hi-lo)/2
		}
		fz := f(z)
		if fz == 0 {
			continue
		}
		w := r.ws[i] * dz * fz
		zj := 1.0
		for j := 0; j <= k; j++ {
			out[j] += w * zj
			zj *= z
		}
	}
}

// stdMoments returns E[Z**j] for j = 0..k of the standardized
// distribution with the given shapes. ok is false if a moment could
// not be computed to the required accuracy.
func (m *momentIntegrator) stdMoments(fam Family, shapes []float64, k int) (ms []float64, ok bool) {
	ms = make([]float64, k+1)
	ms[0] = 1
	missing := false
	if mf, isM := fam.(Momenter); isM {
		for j := 1; j <= k; j++ {
			v, closed := mf.RawMoment(j, shapes)
			if !closed {
				missing = true
				break
			}
			ms[j] = v
		}
		if !missing {
			return ms, allFinite(ms)
		}
	}

	std := Params{Shapes: shapes, Loc: 0, Scale: 1}
	lo, hi := fam.Support(shapes)
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return nil, false
	}
	if fam.Discrete() {
		return m.sum(fam, std, lo, hi, k)
	}
	pdf := func(z float64) float64 { return fam.Prob(z, std) }
	coarse := make([]float64, k+1)
	m.coarse.integrate(pdf, lo, hi, k, coarse)
	m.fine.integrate(pdf, lo, hi, k, ms)
	if !allFinite(ms) || !allFinite(coarse) {
		return nil, false
	}
	if math.Abs(ms[0]-1) > m.q.MassTol {
		return nil, false
	}
	for j := 1; j <= k; j++ {
		if math.Abs(ms[j]-coarse[j]) > m.q.Tol*math.Max(1, math.Abs(ms[j])) {
			return nil, false
		}
	}
	ms[0] = 1
	return ms, true
}

// sum computes discrete moments by summing the mass function upward
// from the lower end of the support.
func (m *momentIntegrator) sum(fam Family, std Params, lo, hi float64, k int) ([]float64, bool) {
	if math.IsInf(lo, -1) {
		return nil, false
	}
	ms := make([]float64, k+1)
	z := math.Ceil(lo)
	for n := 0; n < m.q.MaxTerms && z <= hi; n, z = n+1, z+1 {
		p := fam.Prob(z, std)
		if math.IsNaN(p) || p < 0 {
			return nil, false
		}
		zj := 1.0
		for j := 0; j <= k; j++ {
			ms[j] += p * zj
			zj *= z
		}
		if 1-ms[0] < m.q.MassTol*1e-4 {
			break
		}
	}
	if !allFinite(ms) || math.Abs(ms[0]-1) > m.q.MassTol {
		return nil, false
	}
	ms[0] = 1
	return ms, true
}

// rawMoments returns E[X**j] for j = 1..k, where X = loc + scale*Z.
func (m *momentIntegrator) rawMoments(fam Family, p Params, k int) ([]float64, bool) {
	zs, ok := m.stdMoments(fam, p.Shapes, k)
	if !ok {
		return nil, false
	}
	out := make([]float64, k)
	for n := 1; n <= k; n++ {
		var s float64
		for j := 0; j <= n; j++ {
			c := float64(combin.Binomial(n, j))
			s += c * math.Pow(p.Loc, float64(n-j)) * math.Pow(p.Scale, float64(j)) * zs[j]
		}
		out[n-1] = s
	}
	return out, allFinite(out)
}

func allFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
