// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fitdist fits probability distributions to data.
//
// Settings may be given as flags, as FITDIST_* environment variables
// (for example, FITDIST_METHOD=MM), or in a fitdist.yaml file in the
// current directory. Flags take precedence.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/aclements/go-distfit/fit"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "fitdist",
	Short: "Fit probability distributions to data",
	Long: `fitdist estimates distribution parameters by maximum likelihood or
the method of moments.

Examples:
  seq 1 100 | fitdist fit --dist uniform
  fitdist fit --dist gamma --loc 0 --shape a=0:10 < data.txt
  fitdist sweep --dist norm,gamma --sizes 1000`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log optimizer diagnostics to stderr")
	rootCmd.PersistentFlags().String("method", "MLE", "estimation method (MLE or MM)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "random seed (default: time-based for fit, 1234 for sweep)")
	rootCmd.PersistentFlags().Int("restarts", 3, "independent global searches per fit")
	rootCmd.PersistentFlags().Int("workers", 0, "concurrent searches (default: GOMAXPROCS)")
	rootCmd.PersistentFlags().String("search", "de", "global search method (de or cmaes)")

	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers the flags of cmd over FITDIST_* environment
// variables, fitdist.yaml, and the defaults.
func loadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("method", "MLE")
	v.SetDefault("restarts", 3)
	v.SetDefault("workers", 0)
	v.SetDefault("search", "de")

	v.SetEnvPrefix("fitdist")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("fitdist")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return v, nil
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}

// optimizer builds the search configuration from v.
func optimizer(v *viper.Viper, log *zap.Logger) (*fit.Optimizer, error) {
	opt := &fit.Optimizer{
		Restarts: v.GetInt("restarts"),
		Workers:  v.GetInt("workers"),
		Logger:   log,
	}
	switch s := strings.ToLower(v.GetString("search")); s {
	case "de", "":
		opt.Search = fit.DifferentialEvolution{}
	case "cmaes", "cma-es":
		opt.Search = fit.CMAES{}
	default:
		return nil, fmt.Errorf("unknown search method %q (want de or cmaes)", s)
	}
	return opt, nil
}
