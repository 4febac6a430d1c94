// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"
)

func TestSampleQuantile(t *testing.T) {
	s := Sample{Xs: []float64{15, 20, 35, 40, 50}}
	testFunc(t, "Quantile", s.Quantile, map[float64]float64{
		-1:  15,
		0:   15,
		.05: 15,
		.30: 19.666666666666666,
		.40: 27,
		.95: 50,
		1:   50,
		2:   50,
	})

	// Quantile must not reorder the caller's sample.
	s = Sample{Xs: []float64{50, 15, 40, 20, 35}}
	if got := s.Quantile(.40); !aeq(27, got) {
		t.Errorf("unsorted Quantile(.40) = %v, want 27", got)
	}
	if s.Xs[0] != 50 {
		t.Errorf("Quantile sorted the sample in place: %v", s.Xs)
	}
}

func TestSampleMoments(t *testing.T) {
	s := Sample{Xs: []float64{1, 2, 3, 4}}
	testFunc(t, "RawMoment", func(k float64) float64 { return s.RawMoment(int(k)) },
		map[float64]float64{
			0: 1,
			1: 2.5,
			2: 7.5,
			3: 25,
		})
	testFunc(t, "CentralMoment", func(k float64) float64 { return s.CentralMoment(int(k)) },
		map[float64]float64{
			1: 0,
			2: 1.25,
			3: 0,
		})
	ms := s.RawMoments(3)
	if len(ms) != 3 || !aeq(2.5, ms[0]) || !aeq(7.5, ms[1]) || !aeq(25, ms[2]) {
		t.Errorf("RawMoments(3) = %v, want [2.5 7.5 25]", ms)
	}
	if !aeq(5.0/3, s.Variance()) {
		t.Errorf("Variance = %v, want %v", s.Variance(), 5.0/3)
	}
	if lo, hi := s.Bounds(); lo != 1 || hi != 4 {
		t.Errorf("Bounds = %v, %v, want 1, 4", lo, hi)
	}
}

func TestSampleEmpty(t *testing.T) {
	var s Sample
	for name, got := range map[string]float64{
		"Mean":          s.Mean(),
		"Variance":      s.Variance(),
		"RawMoment":     s.RawMoment(1),
		"CentralMoment": s.CentralMoment(2),
		"Quantile":      s.Quantile(0.5),
	} {
		if !math.IsNaN(got) {
			t.Errorf("empty sample %s = %v, want NaN", name, got)
		}
	}
	if v := (Sample{Xs: []float64{3}}).Variance(); v != 0 {
		t.Errorf("single-value Variance = %v, want 0", v)
	}
}
