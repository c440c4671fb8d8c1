// Package sham performs abundance matching: inverting the cumulative halo
// mass function to find the halo mass whose number density equals a target
// galaxy number density.
package sham

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/interp"

	"github.com/matchaproject/matcha/internal/common/matchacontext"
	"github.com/matchaproject/matcha/internal/common/matchaerrors"
	"github.com/matchaproject/matcha/internal/hmf"
)

// Matcher inverts subhalo-corrected mass-function tables.
type Matcher struct {
	client *hmf.Client
}

func NewMatcher(client *hmf.Client) *Matcher {
	return &Matcher{client: client}
}

// Invert returns the log10 halo mass at which the subhalo-corrected
// cumulative density at redshift z equals target (Mpc^-3). The inversion
// interpolates log10 mass linearly in log10 density over the wide table; a
// target outside the table's density range is a domain error, not an
// extrapolation.
func (m *Matcher) Invert(ctx *matchacontext.Context, z, target float64) (float64, error) {
	table, err := m.client.CorrectedWideTable(ctx, z)
	if err != nil {
		return 0, err
	}

	// The table is ascending in mass and therefore descending in density;
	// reverse both so the interpolation abscissa increases.
	points := len(table.LogMass)
	logDensity := make([]float64, points)
	logMass := make([]float64, points)
	for i := 0; i < points; i++ {
		j := points - 1 - i
		logDensity[i] = math.Log10(table.NGreater[j])
		logMass[i] = table.LogMass[j]
	}
	for i := 1; i < points; i++ {
		if logDensity[i] <= logDensity[i-1] {
			return 0, errors.WithStack(&matchaerrors.ErrInterpolationDomain{
				Name:    "cumulative density",
				Value:   logDensity[i],
				Min:     logDensity[0],
				Max:     logDensity[points-1],
				Message: "corrected mass-function table is not strictly monotonic",
			})
		}
	}

	logTarget := math.Log10(target)
	if logTarget < logDensity[0] || logTarget > logDensity[points-1] {
		return 0, errors.WithStack(&matchaerrors.ErrInterpolationDomain{
			Name:    "target density",
			Value:   logTarget,
			Min:     logDensity[0],
			Max:     logDensity[points-1],
			Message: "target density outside the tabulated mass-function range",
		})
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(logDensity, logMass); err != nil {
		return 0, errors.WithStack(err)
	}
	return pl.Predict(logTarget), nil
}
