// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// stats is a grab bag of statistical routines used by the parameter
// estimators: sample summaries, moments, and a few distributions.
package stats // import "github.com/aclements/go-distfit/stats"

import "math"

var inf = math.Inf(1)
var nan = math.NaN()
