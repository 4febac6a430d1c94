// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/fit"
)

func TestThresholds(t *testing.T) {
	assert.Equal(t, []float64{13.75, 13.75, 0.75}, Thresholds([]float64{55, 0, 1}, 55, 0.25, 0.75))
	assert.Equal(t, []float64{0.75, 0.75}, Thresholds([]float64{0, 1}, -0.1, 0.25, 0.75))
	assert.Equal(t, []float64{2.5, 1}, Thresholds([]float64{-3, 10}, -10, 0.25, 1))
}

func TestDefaultCases(t *testing.T) {
	cases := DefaultCases()
	require.Len(t, cases, 12)
	for _, c := range cases {
		require.NotNil(t, c.Family)
		assert.Len(t, c.Truth.Shapes, len(c.Family.Shapes()), c.Family.Name())
		assert.False(t, c.Family.Discrete())
	}
}

func TestRun(t *testing.T) {
	cases := []Case{
		{family.Lookup("norm"), fit.Params{Loc: 0, Scale: 1}},
		{family.Lookup("expon"), fit.Params{Loc: 0, Scale: 1}},
		{family.Lookup("gamma"), fit.Params{Shapes: []float64{1.9932305483800778}, Loc: 0, Scale: 1}},
	}
	outs, err := Run(context.Background(), cases, Config{Sizes: []int{500, 2000}, Workers: 2})
	require.NoError(t, err)
	require.Len(t, outs, len(cases))
	for i, o := range outs {
		assert.Equal(t, cases[i].Family.Name(), o.Case.Family.Name())
		assert.NoError(t, o.Err)
		assert.True(t, o.Pass, "%v: estimate %v, diff %v", o.Case, o.Estimate, o.Diff)
		assert.Len(t, o.Diff, len(o.Threshold))
	}

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, outs))
	assert.Contains(t, buf.String(), "gamma")
	assert.NotContains(t, buf.String(), "FAIL")
}

func TestRunDeterministic(t *testing.T) {
	cases := []Case{{family.Lookup("laplace"), fit.Params{Loc: 0, Scale: 1}}}
	cfg := Config{Sizes: []int{300}, Seed: 99}
	a, err := Run(context.Background(), cases, cfg)
	require.NoError(t, err)
	b, err := Run(context.Background(), cases, cfg)
	require.NoError(t, err)
	assert.Equal(t, a[0].Estimate, b[0].Estimate)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, DefaultCases(), Config{})
	require.ErrorIs(t, err, context.Canceled)
}
