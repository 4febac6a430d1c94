// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"
	"testing"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

// testFunc checks that f(x) ≅ y for each x, y in vals.
func testFunc(t *testing.T, name string, f func(float64) float64, vals map[float64]float64) {
	t.Helper()
	xs := make([]float64, 0, len(vals))
	for x := range vals {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	for _, x := range xs {
		want, got := vals[x], f(x)
		if math.IsNaN(want) && math.IsNaN(got) || aeq(want, got) {
			continue
		}
		t.Errorf("want %s(%v)=%v, got %v", name, x, want, got)
	}
}

// testDiscreteCDF checks that the CDF of dist is the running sum of
// its PMF over its bounds, and is constant between steps.
func testDiscreteCDF(t *testing.T, name string, dist DiscreteDist) {
	t.Helper()
	lo, hi := dist.Bounds()
	step := dist.Step()
	sum := 0.0
	for x := lo - step; x <= hi+step; x += step {
		sum += dist.PMF(x)
		for _, off := range []float64{0, step / 2} {
			got := dist.CDF(x + off)
			if !aeq(sum, got) {
				t.Errorf("want %s(%v)=%v, got %v", name, x+off, sum, got)
			}
		}
	}
	if !aeq(1, sum) {
		t.Errorf("%s: PMF sums to %v, want 1", name, sum)
	}
	if got := dist.CDF(lo - step); got != 0 {
		t.Errorf("want %s(%v)=0, got %v", name, lo-step, got)
	}
}
