package gsmf

import (
	"github.com/matchaproject/matcha/internal/common/quadrature"
)

// IntegrationUpperBound is the upper limit, in log10 stellar mass, of the
// cumulative integral; the mass function is negligible above 1e13 Msun.
const IntegrationUpperBound = 13.0

// Integrate computes the cumulative number density (Mpc^-3) of galaxies with
// log10 stellar mass above logLower at redshift z, by adaptive quadrature of
// the total mass function over [logLower, 13]. The result carries the
// achieved error estimate; an unconverged integration returns an
// ErrIntegrationFailure rather than a silently degraded value.
func Integrate(logLower, z float64, mode Mode) (quadrature.Result, error) {
	set, err := CalibrationFor(mode)
	if err != nil {
		return quadrature.Result{}, err
	}
	cmps := componentsAt(set, z)
	integrand := func(logMs float64) float64 {
		total := 0.0
		for _, cmp := range cmps {
			total += cmp.density(logMs)
		}
		return total
	}
	return quadrature.Adaptive(integrand, logLower, IntegrationUpperBound, quadrature.DefaultSettings())
}
