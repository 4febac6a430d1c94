// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is a collection of observations.
type Sample struct {
	// Xs is the slice of sample values.
	Xs []float64

	// Sorted indicates that Xs is sorted in ascending order.
	Sorted bool
}

// Bounds returns the minimum and maximum values of the sample.
//
// If the sample is empty, Bounds returns NaN, NaN.
func (s Sample) Bounds() (min float64, max float64) {
	if len(s.Xs) == 0 {
		return nan, nan
	}
	if s.Sorted {
		return s.Xs[0], s.Xs[len(s.Xs)-1]
	}
	return floats.Min(s.Xs), floats.Max(s.Xs)
}

// Mean returns the arithmetic mean of the sample.
func (s Sample) Mean() float64 {
	if len(s.Xs) == 0 {
		return nan
	}
	return stat.Mean(s.Xs, nil)
}

// Variance returns the sample variance of xs.
//
// This uses the unbiased (n-1) estimator. It is 0 for samples of
// size 1.
func (s Sample) Variance() float64 {
	switch len(s.Xs) {
	case 0:
		return nan
	case 1:
		return 0
	}
	return stat.Variance(s.Xs, nil)
}

// StdDev returns the sample standard deviation of xs.
func (s Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// RawMoment returns the k'th raw moment of the sample, the mean of
// x**k.
func (s Sample) RawMoment(k int) float64 {
	if len(s.Xs) == 0 {
		return nan
	}
	if k == 0 {
		return 1
	}
	return stat.MomentAbout(float64(k), s.Xs, 0, nil)
}

// RawMoments returns the first n raw moments of the sample. The
// result's i'th element is moment i+1.
func (s Sample) RawMoments(n int) []float64 {
	ms := make([]float64, n)
	for i := range ms {
		ms[i] = s.RawMoment(i + 1)
	}
	return ms
}

// CentralMoment returns the k'th moment of the sample about its mean.
func (s Sample) CentralMoment(k int) float64 {
	if len(s.Xs) == 0 {
		return nan
	}
	return stat.Moment(float64(k), s.Xs, nil)
}

// Quantile returns the sample value X at which q*weight of the sample
// is <= X. This uses interpolation method R8 from Hyndman and Fan
// (1996).
//
// q will be capped to the range [0, 1]. If len(xs) == 0, Quantile
// returns NaN.
//
// Quantile(0.5) is the median. Quantile(0.25) and Quantile(0.75) are
// the first and third quartiles.
//
// This runs in O(N log N) time if xs is unsorted.
func (s Sample) Quantile(q float64) float64 {
	if len(s.Xs) == 0 {
		return nan
	} else if q <= 0 {
		min, _ := s.Bounds()
		return min
	} else if q >= 1 {
		_, max := s.Bounds()
		return max
	}

	if !s.Sorted {
		s = *s.Copy().Sort()
	}

	N := float64(len(s.Xs))
	n := 1/3.0 + q*(N+1/3.0) // R8
	kf, frac := math.Modf(n)
	k := int(kf)
	if k <= 0 {
		return s.Xs[0]
	} else if k >= len(s.Xs) {
		return s.Xs[len(s.Xs)-1]
	}
	return s.Xs[k-1] + frac*(s.Xs[k]-s.Xs[k-1])
}

// Copy returns a copy of the Sample.
//
// The returned Sample shares no data with the original, so they can
// be modified (for example, sorted) independently.
func (s Sample) Copy() *Sample {
	xs := make([]float64, len(s.Xs))
	copy(xs, s.Xs)
	return &Sample{xs, s.Sorted}
}

// Sort sorts the samples in place in s and returns s.
//
// A sorted sample improves the performance of some algorithms.
func (s *Sample) Sort() *Sample {
	if s.Sorted || sort.Float64sAreSorted(s.Xs) {
		// All set
	} else {
		sort.Float64s(s.Xs)
	}
	s.Sorted = true
	return s
}
