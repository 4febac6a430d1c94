// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/fit"
	"github.com/aclements/go-distfit/internal/sweep"
)

var (
	sweepDists []string
	sweepSizes []int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Check that fits recover known parameters",
	Long: `Draw samples of increasing size from families with known parameters
and check that fitting recovers them. Exits non-zero if any family
fails at every size.`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringSliceVar(&sweepDists, "dist", nil, "families to check (default: all continuous families)")
	sweepCmd.Flags().IntSliceVar(&sweepSizes, "sizes", []int{1000, 5000, 10000}, "sample sizes to try, in order")
}

func runSweep(cmd *cobra.Command, args []string) error {
	v, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	method, err := fit.ParseMethod(v.GetString("method"))
	if err != nil {
		return err
	}
	opt, err := optimizer(v, log)
	if err != nil {
		return err
	}
	// Cases run concurrently; each fit runs its restarts in turn.
	workers := opt.Workers
	opt.Workers = 1

	cases := sweep.DefaultCases()
	if len(sweepDists) > 0 {
		byName := make(map[string]sweep.Case)
		for _, c := range cases {
			byName[c.Family.Name()] = c
		}
		cases = cases[:0:0]
		for _, name := range sweepDists {
			c, ok := byName[name]
			if !ok {
				return fmt.Errorf("no sweep case for %q", name)
			}
			cases = append(cases, c)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	outs, err := sweep.Run(ctx, cases, sweep.Config{
		Sizes:     sweepSizes,
		Method:    method,
		Seed:      v.GetUint64("seed"),
		Workers:   workers,
		Optimizer: opt,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	if err := sweep.Report(cmd.OutOrStdout(), outs); err != nil {
		return err
	}
	failed := 0
	for _, o := range outs {
		if !o.Pass {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d families failed", failed, len(outs))
	}
	return nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available distribution families",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "name\tkind\tshapes")
		for _, name := range family.Names() {
			f := family.Lookup(name)
			kind := "continuous"
			if f.Discrete() {
				kind = "discrete"
			}
			var shapes []string
			for _, s := range f.Shapes() {
				d := fmt.Sprintf("%s in %v", s.Name, s.Domain)
				if s.Integer {
					d += " (integer)"
				}
				shapes = append(shapes, d)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", name, kind, strings.Join(shapes, ", "))
		}
		return tw.Flush()
	},
}
