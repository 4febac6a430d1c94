// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-distfit/stats"
)

// A Method is an estimation method.
type Method int

const (
	// MLE is maximum likelihood estimation.
	MLE Method = iota

	// MM is the method of moments.
	MM
)

func (m Method) String() string {
	switch m {
	case MLE:
		return "MLE"
	case MM:
		return "MM"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod parses a method name, ignoring case.
func ParseMethod(s string) (Method, error) {
	switch strings.ToUpper(s) {
	case "MLE":
		return MLE, nil
	case "MM":
		return MM, nil
	}
	return 0, fmt.Errorf("fit: unknown method %q (want MLE or MM)", s)
}

// An Objective is a cost to minimize over parameter vectors of the
// form shapes..., loc, scale.
//
// Evaluation failures do not stop the search. Each failed term is
// replaced by a large finite penalty and finite is false.
type Objective func(x []float64) (cost float64, finite bool)

// badTerm is the penalty for a single failed term of an objective.
// It is larger than any finite log density of a float64 and grows
// with the number of failed terms, so a candidate with fewer failures
// ranks better.
var badTerm = 100 * math.Log(math.MaxFloat64)

// NewObjective returns the objective for fitting f to xs by method m.
// q configures the numerical moments used by MM and may be nil.
//
// The returned Objective is safe for concurrent use. It does not
// retain or modify xs beyond what m requires: MLE reads xs on every
// evaluation, MM only the sample moments computed here.
func NewObjective(f Family, xs []float64, m Method, q *Quadrature) Objective {
	switch m {
	case MLE:
		return nllf(f, xs)
	case MM:
		var qq Quadrature
		if q != nil {
			qq = *q
		}
		return momentError(f, xs, qq)
	}
	panic(fmt.Sprintf("fit: unknown method %v", m))
}

// validScale reports whether p's scale is usable by f.
func validScale(f Family, p Params) bool {
	if f.Discrete() {
		return p.Scale == 1
	}
	return p.Scale > 0 && !math.IsInf(p.Scale, 0)
}

// nllf is the negative log-likelihood of f.
func nllf(f Family, xs []float64) Objective {
	worst := float64(len(xs)+1) * badTerm
	return func(x []float64) (float64, bool) {
		p := paramsOf(x)
		if !validScale(f, p) {
			return worst, false
		}
		var cost float64
		bad := 0
		for _, xi := range xs {
			lp := f.LogProb(xi, p)
			if math.IsNaN(lp) || math.IsInf(lp, 0) {
				bad++
				continue
			}
			cost -= lp
		}
		if math.IsNaN(cost) || math.IsInf(cost, 0) {
			return worst, false
		}
		if bad > 0 {
			return cost + float64(bad)*badTerm, false
		}
		return cost, true
	}
}

// momentError is the sum of squared normalized differences between
// the first len(Shapes())+2 raw moments of xs and of f.
func momentError(f Family, xs []float64, q Quadrature) Objective {
	k := len(f.Shapes()) + 2
	data := stats.Sample{Xs: xs}.RawMoments(k)
	scale := make([]float64, k)
	for i, m := range data {
		scale[i] = math.Max(math.Abs(m), 1e-8)
	}
	mi := newMomentIntegrator(q)
	worst := float64(k+1) * badTerm
	return func(x []float64) (float64, bool) {
		p := paramsOf(x)
		if !validScale(f, p) {
			return worst, false
		}
		dist, ok := mi.rawMoments(f, p, k)
		if !ok {
			return float64(k) * badTerm, false
		}
		var cost float64
		for i, m := range dist {
			r := (data[i] - m) / scale[i]
			cost += r * r
		}
		if math.IsNaN(cost) || math.IsInf(cost, 0) {
			return float64(k) * badTerm, false
		}
		return cost, true
	}
}
