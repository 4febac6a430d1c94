// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweep checks that fits recover known parameters. For each
// case it draws samples of increasing size from a family with known
// parameters, fits the family to them, and passes once every
// estimate is within a threshold of the truth.
package sweep

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"
	"text/tabwriter"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/fit"
	"github.com/aclements/go-distfit/stats"
)

// A Case is a family and the parameters a fit should recover.
type Case struct {
	Family fit.Family
	Truth  fit.Params
}

func (c Case) String() string {
	return fmt.Sprintf("%s(%v)", c.Family.Name(), c.Truth)
}

// Config configures Run. The zero value is a reasonable default
// configuration.
type Config struct {
	// Sizes are the sample sizes to try, in order. The default
	// is 1000, 5000, 10000.
	Sizes []int

	Method fit.Method

	// Seed seeds both the samples and the fits. The default is
	// 1234.
	Seed uint64

	// Workers is the number of cases to fit concurrently. The
	// default is GOMAXPROCS.
	Workers int

	// Percent and Min set the threshold for each parameter to
	// max(Percent*|truth|, Min). The location's threshold uses
	// the sample mean in place of the truth. The defaults are
	// 0.25 and 0.75.
	Percent, Min float64

	// Optimizer is passed to fit.Fit.
	Optimizer *fit.Optimizer

	Logger *zap.Logger
}

func (cfg Config) withDefaults() Config {
	if len(cfg.Sizes) == 0 {
		cfg.Sizes = []int{1000, 5000, 10000}
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1234
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Percent <= 0 {
		cfg.Percent = 0.25
	}
	if cfg.Min <= 0 {
		cfg.Min = 0.75
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}

// An Outcome is the result of one Case.
type Outcome struct {
	Case Case

	// Size is the sample size of the last fit attempted.
	Size int

	// Estimate is the last estimate, and Diff and Threshold its
	// per-parameter error and allowed error.
	Estimate  fit.Params
	Diff      []float64
	Threshold []float64

	Pass bool

	// Err is the error from fit.Fit, if any.
	Err error
}

// DefaultCases returns the continuous families of the catalog with
// representative shapes, location 0, and scale 1.
func DefaultCases() []Case {
	shapes := map[string][]float64{
		"uniform":     nil,
		"expon":       nil,
		"norm":        nil,
		"logistic":    nil,
		"laplace":     nil,
		"gumbel_r":    nil,
		"gamma":       {1.9932305483800778},
		"lognorm":     {0.9},
		"weibull_min": {1.7866166930421596},
		"beta":        {2.3098496451481823, 0.62687954300963677},
		"t":           {2.7433514990818093},
		"chi2":        {55},
	}
	var cases []Case
	for _, name := range family.Names() {
		s, ok := shapes[name]
		if !ok {
			continue
		}
		cases = append(cases, Case{
			Family: family.Lookup(name),
			Truth:  fit.Params{Shapes: s, Loc: 0, Scale: 1},
		})
	}
	return cases
}

// Run fits every case, cfg.Workers at a time. Fit failures are
// reported in the Outcomes; Run itself only fails if ctx is done.
func Run(ctx context.Context, cases []Case, cfg Config) ([]Outcome, error) {
	cfg = cfg.withDefaults()
	outs := make([]Outcome, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, c := range cases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outs[i] = runCase(ctx, c, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outs, nil
}

func runCase(ctx context.Context, c Case, cfg Config) Outcome {
	log := cfg.Logger.With(zap.Stringer("case", c))
	out := Outcome{Case: c}
	truth := c.Truth.Vector()
	for _, n := range cfg.Sizes {
		if ctx.Err() != nil {
			out.Err = ctx.Err()
			return out
		}
		// Every size starts from the same seed.
		data := c.Family.Rand(n, c.Truth, rand.NewSource(cfg.Seed))
		out.Size = n
		res, err := fit.Fit(c.Family, data, &fit.Options{
			Method:    cfg.Method,
			Seed:      fit.Seed(cfg.Seed),
			Optimizer: cfg.Optimizer,
			Logger:    cfg.Logger,
		})
		if err != nil {
			log.Warn("fit failed", zap.Int("n", n), zap.Error(err))
			out.Err = err
			continue
		}
		out.Err = nil
		out.Estimate = res.Params
		out.Threshold = Thresholds(truth, stats.Sample{Xs: data}.Mean(), cfg.Percent, cfg.Min)
		out.Diff = make([]float64, len(truth))
		out.Pass = true
		for i, v := range res.Vector() {
			out.Diff[i] = v - truth[i]
			if math.IsNaN(v) || !(math.Abs(out.Diff[i]) <= out.Threshold[i]) {
				out.Pass = false
			}
		}
		log.Debug("fit", zap.Int("n", n), zap.Stringer("estimate", res.Params), zap.Bool("pass", out.Pass))
		if out.Pass {
			break
		}
	}
	return out
}

// Thresholds returns the allowed error for each parameter in truth
// (shapes..., loc, scale): max(percent*|truth|, min), except that the
// location uses the sample mean in place of the true location.
func Thresholds(truth []float64, mean, percent, min float64) []float64 {
	th := make([]float64, len(truth))
	for i, v := range truth {
		th[i] = math.Max(math.Abs(v)*percent, min)
	}
	th[len(th)-2] = math.Max(math.Abs(mean)*percent, min)
	return th
}

// Report writes a table of outcomes to w.
func Report(w io.Writer, outs []Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "family\tsize\tresult\testimate\tdiff")
	for _, o := range outs {
		result := "ok"
		switch {
		case o.Err != nil:
			result = "error: " + o.Err.Error()
		case !o.Pass:
			result = "FAIL"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%v\t%.3g\n", o.Case.Family.Name(), o.Size, result, o.Estimate.Vector(), o.Diff)
	}
	return tw.Flush()
}
