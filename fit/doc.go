// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fit estimates the shape, location, and scale parameters of
// a parametric family of distributions from an observed sample.
//
// Fitting is posed as a bounded minimization. The caller's bounds
// are merged with the family's intrinsic parameter domains into a
// feasible Region (see Resolve). An Objective is built for the
// requested Method: the negative log-likelihood for MLE, or the
// normalized squared error between sample and distribution moments
// for MM. The Optimizer then runs a seeded, restartable global search
// over the region, optionally polished by a local Nelder-Mead pass.
//
// Evaluation failures, such as data outside the support of a
// candidate, are absorbed into the objective as large finite
// penalties so the search can keep comparing candidates. Only a
// search in which every evaluation was penalized fails, with
// ErrOptimizationFailed.
//
// The simplest use is
//
//	res, err := fit.Fit(family.Lookup("gamma"), xs, &fit.Options{
//		NamedShapeBounds: map[string]fit.Bound{"a": {0.1, 20}},
//		Seed:             fit.Seed(1234),
//	})
//
// All inputs are validated before any optimization is performed.
// Failures can be matched by kind with errors.Is, and bounds
// failures carry the offending parameter in a *BoundsError.
package fit // import "github.com/aclements/go-distfit/fit"
