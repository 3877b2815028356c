// Package builder turns validated parameter sets into CSG assemblies.
// Builders are pure: they construct an immutable tree from their inputs
// and never touch the geometry kernel, so invalid parameters are rejected
// before any kernel call happens.
package builder

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the sentinel all InvalidParameterError values
// unwrap to.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError reports a parameter that failed validation, with
// enough structure for a caller to render an actionable message.
type InvalidParameterError struct {
	Param  string  // field name, e.g. "arm_length"
	Value  float64 // the rejected value
	Min    float64 // lower bound of the declared range, if range-checked
	Max    float64 // upper bound of the declared range, if range-checked
	Reason string  // set instead of Min/Max for cross-field rules
}

func (e *InvalidParameterError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid parameter %s = %g: %s", e.Param, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid parameter %s = %g: outside range [%g, %g]", e.Param, e.Value, e.Min, e.Max)
}

func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }

// Range is an inclusive valid interval for a numeric parameter.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// check returns an InvalidParameterError when v is outside r.
func (r Range) check(param string, v float64) error {
	if r.Contains(v) {
		return nil
	}
	return &InvalidParameterError{Param: param, Value: v, Min: r.Min, Max: r.Max}
}
