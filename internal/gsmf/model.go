// Package gsmf implements the galaxy stellar mass function model: the total
// galaxy population as the sum of two star-forming and three quiescent
// generalized-Schechter components whose shape parameters evolve with
// redshift.
package gsmf

import (
	"github.com/matchaproject/matcha/internal/cosmology"
)

// component is one generalized-Schechter component with its shape parameters
// already evolved to a fixed redshift.
type component struct {
	logPhi   float64
	alpha    float64
	beta     float64
	logMchar float64
}

func (cmp component) density(logMs float64) float64 {
	return GeneralizedSchechter(cmp.logPhi, cmp.alpha, cmp.beta, cmp.logMchar, logMs)
}

// componentsAt evolves the five components of the model to redshift z.
//
// The couplings between components are part of the published fit and must be
// preserved exactly:
//   - SF2 reuses SF1's cutoff and characteristic mass, with the normalisation
//     offset by PhiSF2Offset and the slope raised by one;
//   - Q1 reuses SF1's slope, cutoff and characteristic mass, with its
//     normalisation derived from Q2's plus an evolved offset (fixed P1 = -2);
//   - Q2 reuses SF1's cutoff, steepens the slope by 2 - a(z), and shifts the
//     characteristic mass by an evolved offset;
//   - Q3 reuses Q2's slope and characteristic mass, with fixed offsets on the
//     normalisation and the cutoff exponent.
func componentsAt(set CalibrationSet, z float64) [5]component {
	a := cosmology.ScaleFactor(z)

	sf1 := component{
		logPhi:   set.PhiSF.At(z),
		alpha:    set.AlphaSF.At(z),
		beta:     set.BetaSF,
		logMchar: set.McharSF.At(z),
	}
	sf2 := component{
		logPhi:   sf1.logPhi + set.PhiSF2Offset,
		alpha:    sf1.alpha + 1,
		beta:     sf1.beta,
		logMchar: sf1.logMchar,
	}
	q2 := component{
		logPhi:   set.PhiQ2.At(z),
		alpha:    sf1.alpha + 2 - a,
		beta:     sf1.beta,
		logMchar: sf1.logMchar + set.McharQ2Offset.At(z),
	}
	q1 := component{
		logPhi:   q2.logPhi + set.PhiQ1Offset - 2*(1-a),
		alpha:    sf1.alpha,
		beta:     sf1.beta,
		logMchar: sf1.logMchar,
	}
	q3 := component{
		logPhi:   q2.logPhi + set.PhiQ3Offset,
		alpha:    q2.alpha,
		beta:     q2.beta + set.BetaQ3Offset,
		logMchar: q2.logMchar,
	}
	return [5]component{sf1, sf2, q1, q2, q3}
}

// Total returns the total number density (Mpc^-3 dex^-1) of the galaxy
// population at log10 stellar mass logMs and redshift z, for the calibration
// selected by mode.
func Total(logMs, z float64, mode Mode) (float64, error) {
	set, err := CalibrationFor(mode)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, cmp := range componentsAt(set, z) {
		total += cmp.density(logMs)
	}
	return total, nil
}
