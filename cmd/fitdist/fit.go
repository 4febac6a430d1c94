// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/fit"
)

var (
	distName   string
	shapeFlags []string
	locFlag    string
	scaleFlag  string
	showRegion bool
)

var fitCmd = &cobra.Command{
	Use:   "fit --dist NAME [flags] < data",
	Short: "Fit a distribution to newline-separated numbers on stdin",
	Long: `Fit a distribution to newline-separated numbers read from stdin.

Bounds are written lo:hi. Either end may be omitted for an infinite
bound, and a single number fixes the parameter. For example,
--loc 0 fixes the location at 0 and --shape a=1: bounds shape a below
by 1.`,
	Args: cobra.NoArgs,
	RunE: runFit,
}

func init() {
	fitCmd.Flags().StringVarP(&distName, "dist", "d", "", "distribution family (see fitdist list)")
	fitCmd.Flags().StringArrayVar(&shapeFlags, "shape", nil, "bound a shape parameter, as name=lo:hi (repeatable)")
	fitCmd.Flags().StringVar(&locFlag, "loc", "", "bound the location, as lo:hi")
	fitCmd.Flags().StringVar(&scaleFlag, "scale", "", "bound the scale, as lo:hi")
	fitCmd.Flags().BoolVar(&showRegion, "region", false, "print the searched region")
	fitCmd.MarkFlagRequired("dist")
}

func runFit(cmd *cobra.Command, args []string) error {
	v, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	f := family.Lookup(distName)
	if f == nil {
		return fmt.Errorf("unknown distribution %q (see fitdist list)", distName)
	}
	method, err := fit.ParseMethod(v.GetString("method"))
	if err != nil {
		return err
	}
	opt, err := optimizer(v, log)
	if err != nil {
		return err
	}
	if opt.Workers <= 0 {
		opt.Workers = runtime.GOMAXPROCS(0)
	}

	opts := &fit.Options{
		Method:    method,
		Optimizer: opt,
		Logger:    log,
	}
	if v.IsSet("seed") {
		opts.Seed = fit.Seed(v.GetUint64("seed"))
	}
	if opts.NamedShapeBounds, err = parseShapes(shapeFlags); err != nil {
		return err
	}
	if opts.LocBounds, err = parseBound(locFlag); err != nil {
		return fmt.Errorf("--loc: %w", err)
	}
	if opts.ScaleBounds, err = parseBound(scaleFlag); err != nil {
		return fmt.Errorf("--scale: %w", err)
	}

	data, err := readInput(cmd.InOrStdin())
	if err != nil {
		return err
	}
	res, err := fit.Fit(f, data, opts)
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), f, res)
	if !res.Success {
		fmt.Fprintf(os.Stderr, "warning: %s\n", res.Message)
	}
	return nil
}

func printResult(w io.Writer, f fit.Family, res *fit.Result) {
	fmt.Fprintf(w, "%s fit by %v (%d evaluations, %d restarts)\n", res.Family, res.Method, res.Evaluations, res.Restarts)
	for i, s := range f.Shapes() {
		fmt.Fprintf(w, "%8s %.6g\n", s.Name, res.Params.Shapes[i])
	}
	fmt.Fprintf(w, "%8s %.6g\n", "loc", res.Params.Loc)
	fmt.Fprintf(w, "%8s %.6g\n", "scale", res.Params.Scale)
	fmt.Fprintf(w, "%8s %.6g\n", "cost", res.Cost)
	fmt.Fprintf(w, "%8s %s\n", "status", res.Message)
	if showRegion {
		for i, name := range res.Region.Names {
			fmt.Fprintf(w, "%8s in %v\n", name, res.Region.Intervals[i])
		}
	}
}

// readInput reads one number per line from r. Blank lines are
// skipped.
func readInput(r io.Reader) ([]float64, error) {
	var xs []float64
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		l := strings.TrimSpace(scanner.Text())
		if l == "" {
			continue
		}
		value, err := strconv.ParseFloat(l, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		xs = append(xs, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return xs, nil
}

// parseBound parses "lo:hi", "lo:", ":hi", or a single value that
// fixes the parameter. An empty string is no bound.
func parseBound(s string) (fit.Bound, error) {
	if s == "" {
		return nil, nil
	}
	los, his, ok := strings.Cut(s, ":")
	if !ok {
		x, err := parseEnd(s, 0)
		if err != nil {
			return nil, err
		}
		return fit.Bound{x, x}, nil
	}
	lo, err := parseEnd(los, math.Inf(-1))
	if err != nil {
		return nil, err
	}
	hi, err := parseEnd(his, math.Inf(1))
	if err != nil {
		return nil, err
	}
	return fit.Bound{lo, hi}, nil
}

func parseEnd(s string, missing float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return missing, nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad bound %q", s)
	}
	if math.IsNaN(x) {
		return 0, fmt.Errorf("bad bound %q", s)
	}
	return x, nil
}

// parseShapes parses name=bound flags.
func parseShapes(flags []string) (map[string]fit.Bound, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	m := make(map[string]fit.Bound, len(flags))
	for _, f := range flags {
		name, b, ok := strings.Cut(f, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("--shape %q: want name=lo:hi", f)
		}
		if _, dup := m[name]; dup {
			return nil, fmt.Errorf("--shape: %q given more than once", name)
		}
		bound, err := parseBound(b)
		if err != nil {
			return nil, fmt.Errorf("--shape %s: %w", name, err)
		}
		if bound == nil {
			return nil, fmt.Errorf("--shape %q: missing bound", f)
		}
		m[name] = bound
	}
	return m, nil
}
