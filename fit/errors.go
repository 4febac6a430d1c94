// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"errors"
	"fmt"
)

// Error kinds returned by Fit and its components. Errors that refer
// to a particular parameter are returned as a *BoundsError wrapping
// one of these.
var (
	// ErrInvalidDistribution indicates that the Family does not
	// satisfy the Family contract.
	ErrInvalidDistribution = errors.New("fit: invalid distribution")

	// ErrInvalidData indicates an empty sample or a sample with
	// non-finite or non-numeric elements.
	ErrInvalidData = errors.New("fit: all elements of data must be finite numbers")

	// ErrInvalidBoundsShape indicates malformed bounds: an interval
	// without exactly two numeric elements, or positional shape
	// bounds whose count differs from the number of shapes.
	ErrInvalidBoundsShape = errors.New("fit: malformed bounds")

	// ErrInfeasibleBounds indicates that a parameter's bounds do
	// not intersect its domain.
	ErrInfeasibleBounds = errors.New("fit: no feasible values")

	// ErrNoIntegerValues indicates that the feasible interval of an
	// integer-valued parameter contains no integer.
	ErrNoIntegerValues = errors.New("fit: no integer values")

	// ErrUnboundedParameter indicates that a parameter's feasible
	// interval is infinite and no finite search interval exists.
	ErrUnboundedParameter = errors.New("fit: unbounded parameter")

	// ErrOptimizationFailed indicates that every candidate
	// evaluated by the search was penalized.
	ErrOptimizationFailed = errors.New("fit: optimization failed")
)

// A BoundsError records a bounds failure for a single parameter.
type BoundsError struct {
	// Param is the name of the parameter: a shape name, "loc", or
	// "scale".
	Param string

	// Lo and Hi are the interval that was found to be infeasible.
	Lo, Hi float64

	// Err is the error kind.
	Err error
}

func (e *BoundsError) Error() string {
	switch e.Err {
	case ErrInfeasibleBounds:
		return fmt.Sprintf("fit: there are no values for %q on the interval [%v, %v]", e.Param, e.Lo, e.Hi)
	case ErrNoIntegerValues:
		return fmt.Sprintf("fit: there are no integer values for %q on the interval [%v, %v]", e.Param, e.Lo, e.Hi)
	case ErrUnboundedParameter:
		return fmt.Sprintf("fit: the intersection of user-provided bounds for %q and the domain of %q must be finite, got [%v, %v]", e.Param, e.Param, e.Lo, e.Hi)
	}
	return fmt.Sprintf("fit: parameter %q [%v, %v]: %v", e.Param, e.Lo, e.Hi, e.Err)
}

func (e *BoundsError) Unwrap() error {
	return e.Err
}

// A Warning is a non-fatal diagnostic produced while fitting.
type Warning struct {
	// Param is the parameter the warning concerns, if any.
	Param string

	Message string
}

func (w Warning) String() string {
	if w.Param == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Param, w.Message)
}
