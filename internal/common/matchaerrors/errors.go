// Package matchaerrors contains the typed errors surfaced by the numerical
// pipeline. All computations here are deterministic, so none of these errors
// are retried; callers are expected to let them propagate.
//
// If multiple validation errors occur in some function (e.g., if several
// cosmological parameters are missing at once), that function should return an
// error of type multierror.Error from package github.com/hashicorp/go-multierror
// that encapsulates those individual errors.
package matchaerrors

import (
	"fmt"
)

// ErrInvalidCosmology is returned when a required cosmological parameter is
// missing or unphysical at construction time.
type ErrInvalidCosmology struct {
	Field   string      // Name of the parameter, e.g., "sigma8"
	Value   interface{} // The offending value
	Message string      // An optional message explaining why the value is invalid
}

func (err *ErrInvalidCosmology) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("cosmological parameter %q has invalid value %v", err.Field, err.Value)
	}
	return fmt.Sprintf("cosmological parameter %q has invalid value %v; %s", err.Field, err.Value, err.Message)
}

// ErrInvalidMode is returned when a stellar mass function mode is not one of
// the recognised calibration set names.
type ErrInvalidMode struct {
	Mode       string   // The mode that was requested
	ValidModes []string // The modes that exist
}

func (err *ErrInvalidMode) Error() string {
	return fmt.Sprintf("mode %q is not a known calibration set; valid modes are %v", err.Mode, err.ValidModes)
}

// ErrInterpolationDomain is returned when an abundance-matching target lies
// outside the density range covered by the computed mass-function table, or
// when the table itself is not monotonic and therefore not invertible.
// These are real failures for the given inputs and are never retried.
type ErrInterpolationDomain struct {
	Name    string  // Name of the value being interpolated, e.g., "targetDensity"
	Value   float64 // The value that fell outside the table
	Min     float64 // Lower end of the covered range
	Max     float64 // Upper end of the covered range
	Message string  // An optional message, e.g., describing a monotonicity violation
}

func (err *ErrInterpolationDomain) Error() (s string) {
	if err.Name != "" {
		s = fmt.Sprintf("%s %v is outside the interpolation range [%v, %v]", err.Name, err.Value, err.Min, err.Max)
	} else {
		s = "interpolation domain error"
	}
	if err.Message != "" {
		s = s + fmt.Sprintf("; %s", err.Message)
	}
	return
}

// ErrNoRootInBracket is returned by bisection when the target is not bracketed
// by the search interval. For the stellar mass solver this signals an
// astrophysically implausible input density, not a numerical bug.
type ErrNoRootInBracket struct {
	Lower  float64 // Lower end of the bracket
	Upper  float64 // Upper end of the bracket
	FLower float64 // Objective value at Lower
	FUpper float64 // Objective value at Upper
}

func (err *ErrNoRootInBracket) Error() string {
	return fmt.Sprintf(
		"no root bracketed in [%v, %v]: f(%v) = %v and f(%v) = %v have the same sign",
		err.Lower, err.Upper, err.Lower, err.FLower, err.Upper, err.FUpper,
	)
}

// ErrIntegrationFailure is returned when adaptive quadrature exhausts its
// interval budget before meeting the requested tolerance. The partial result
// and the achieved error estimate are included so that the failure is loud but
// informative; the value must never be used silently.
type ErrIntegrationFailure struct {
	Value         float64 // Best available estimate of the integral
	ErrorEstimate float64 // Achieved error estimate for Value
	Tolerance     float64 // The tolerance that was requested
	Intervals     int     // Number of intervals processed before giving up
}

func (err *ErrIntegrationFailure) Error() string {
	return fmt.Sprintf(
		"quadrature failed to converge after %d intervals: estimate %v with error estimate %v exceeds tolerance %v",
		err.Intervals, err.Value, err.ErrorEstimate, err.Tolerance,
	)
}
