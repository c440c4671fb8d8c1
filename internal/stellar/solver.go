// Package stellar inverts the cumulative galaxy stellar mass function:
// given a number density, find the stellar mass threshold that selects
// exactly that density of galaxies.
package stellar

import (
	"math"

	"github.com/matchaproject/matcha/internal/common/rootfind"
	"github.com/matchaproject/matcha/internal/gsmf"
)

// Bracket, in log10 stellar mass, within which the threshold is sought. The
// cumulative mass function is strictly decreasing here, so the root is
// unique when it exists.
const (
	BracketLower = 1.0
	BracketUpper = 12.5
)

const (
	tolerance     = 1e-10
	maxIterations = 128
)

// Solver inverts the cumulative mass function for one calibration mode.
type Solver struct {
	mode gsmf.Mode
}

func NewSolver(mode gsmf.Mode) *Solver {
	return &Solver{mode: mode}
}

// Solve returns the log10 stellar mass threshold at which the cumulative
// number density at redshift z equals target (Mpc^-3). The root is found by
// bisection on the log-density residual.
func (s *Solver) Solve(z, target float64) (float64, error) {
	logTarget := math.Log10(target)
	residual := func(logMs float64) (float64, error) {
		rv, err := gsmf.Integrate(logMs, z, s.mode)
		if err != nil {
			return 0, err
		}
		return logTarget - math.Log10(rv.Value), nil
	}
	return rootfind.Bisect(residual, BracketLower, BracketUpper, tolerance, maxIterations)
}
