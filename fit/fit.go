// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"fmt"
	"math"
	"time"

	"github.com/aclements/go-distfit/stats"
	"go.uber.org/zap"
)

// Options configures Fit. The zero value fits by maximum likelihood
// with the family's intrinsic bounds and a time-based seed.
type Options struct {
	// ShapeBounds gives bounds for every shape parameter, in
	// order. NamedShapeBounds gives bounds for shape parameters
	// by name. At most one of them may be set.
	ShapeBounds      []Bound
	NamedShapeBounds map[string]Bound

	// LocBounds and ScaleBounds bound the location and scale.
	// Use a Bound with equal ends to fix a parameter.
	LocBounds, ScaleBounds Bound

	// Method is the estimation method. The default is MLE.
	Method Method

	// Seed seeds the search. If nil, the current time is used and
	// results may vary between calls.
	Seed *uint64

	// Optimizer configures the search. If nil, the zero
	// Optimizer is used.
	Optimizer *Optimizer

	// Quadrature configures numerical moments for MM. If nil,
	// the zero Quadrature is used.
	Quadrature *Quadrature

	// Logger receives warnings and diagnostics. It may be nil.
	Logger *zap.Logger
}

// Seed returns a pointer to s, for use in Options.
func Seed(s uint64) *uint64 {
	return &s
}

// A Result is the outcome of Fit.
type Result struct {
	// Family is the name of the fitted family.
	Family string

	Method Method

	// Params are the estimated parameters.
	Params Params

	// Cost is the objective at Params: the negative
	// log-likelihood for MLE, or the moment error for MM.
	Cost float64

	// Success reports whether the search converged to a point at
	// which the objective was free of penalties. Message
	// describes the outcome.
	Success bool
	Message string

	// Region is the bounded region that was searched.
	Region *Region

	// Warnings are the non-fatal diagnostics of the fit.
	Warnings []Warning

	// Seed is the seed used.
	Seed uint64

	Restarts    int
	Iterations  int
	Evaluations int
}

// Vector returns r.Params as shapes..., loc, scale.
func (r *Result) Vector() []float64 {
	return r.Params.Vector()
}

func (r *Result) String() string {
	return fmt.Sprintf("%s %v: %v cost=%.6g success=%v", r.Family, r.Method, r.Params, r.Cost, r.Success)
}

// Fit estimates the parameters of family f from data.
//
// All inputs are checked before any optimization is done. Fit fails
// with ErrInvalidDistribution if f does not satisfy the Family
// contract, with ErrInvalidData if data is empty or has a non-finite
// element, and with the errors of Resolve if the bounds are malformed
// or infeasible. Parameters the caller leaves unbounded are searched
// over intervals derived from the data.
//
// Fit does not retain data.
func Fit(f Family, data []float64, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if err := validateFamily(f); err != nil {
		return nil, err
	}
	if err := validateData(data); err != nil {
		return nil, err
	}
	if opts.Method != MLE && opts.Method != MM {
		return nil, fmt.Errorf("fit: unknown method %v", opts.Method)
	}

	region, warnings, err := Resolve(f, Bounds{
		Shapes: opts.ShapeBounds,
		Named:  opts.NamedShapeBounds,
		Loc:    opts.LocBounds,
		Scale:  opts.ScaleBounds,
	})
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn(w.Message, zap.String("family", f.Name()), zap.String("param", w.Param))
	}
	if err := region.Bounded(f, dataDefaults(f, data)); err != nil {
		return nil, err
	}

	var seed uint64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = uint64(time.Now().UnixNano())
	}
	opt := opts.Optimizer
	if opt == nil {
		opt = &Optimizer{}
	}
	if opt.Logger == nil && opts.Logger != nil {
		o := *opt
		o.Logger = log.With(zap.String("family", f.Name()))
		opt = &o
	}

	obj := NewObjective(f, data, opts.Method, opts.Quadrature)
	x0 := startingPoint(f, data, region)
	log.Debug("starting fit",
		zap.String("family", f.Name()),
		zap.Stringer("method", opts.Method),
		zap.Int("n", len(data)),
		zap.Stringers("region", region.Intervals),
		zap.Float64s("x0", x0),
		zap.Uint64("seed", seed))

	sol, err := opt.Optimize(obj, region, x0, seed)
	if err != nil {
		return nil, fmt.Errorf("fitting %s: %w", f.Name(), err)
	}

	res := &Result{
		Family:      f.Name(),
		Method:      opts.Method,
		Params:      paramsOf(sol.X),
		Cost:        sol.Cost,
		Region:      region,
		Warnings:    warnings,
		Seed:        seed,
		Restarts:    sol.Restarts,
		Iterations:  sol.Iterations,
		Evaluations: sol.Evaluations,
	}
	switch {
	case !sol.Finite:
		res.Message = "best point found has a penalized objective"
	case sol.Converged:
		res.Success = true
		res.Message = "optimization converged"
	case sol.Polished:
		res.Success = true
		res.Message = "global search reached its iteration limit; local search refined the result"
	default:
		res.Message = "global search reached its iteration limit"
	}
	return res, nil
}

func validateData(data []float64) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty sample", ErrInvalidData)
	}
	for i, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: data[%d] = %v", ErrInvalidData, i, x)
		}
	}
	return nil
}

// dataDefaults returns search intervals for the location and scale
// that cover the data with a wide margin.
func dataDefaults(f Family, data []float64) Defaults {
	lo, hi := stats.Sample{Xs: data}.Bounds()
	s := hi - lo
	if s == 0 {
		s = math.Max(1, math.Abs(lo))
	}
	d := Defaults{
		Loc:   Interval{lo - 3*s, hi + 3*s},
		Scale: Interval{s / 1000, 10 * s},
	}
	if f.Discrete() {
		d.Loc = Interval{math.Floor(d.Loc.Lo), math.Ceil(d.Loc.Hi)}
	}
	return d
}

// startingPoint returns an initial guess in r.
func startingPoint(f Family, data []float64, r *Region) []float64 {
	if g, ok := f.(Guesser); ok {
		p := g.Guess(data, r)
		if len(p.Shapes) == r.NumShapes() {
			return r.Clamp(p.Vector())
		}
	}
	x := make([]float64, r.Dim())
	for i, iv := range r.Intervals[:r.NumShapes()] {
		if iv.Contains(1) {
			x[i] = 1
		} else {
			x[i] = iv.Lo + iv.Width()/2
		}
	}
	n := r.NumShapes()
	if f.Discrete() {
		x[n], x[n+1] = 0, 1
	} else {
		s := stats.Sample{Xs: data}
		x[n], x[n+1] = s.Mean(), s.StdDev()
		if !(x[n+1] > 0) {
			x[n+1] = 1
		}
	}
	return r.Clamp(x)
}
