// Package progenitor evolves a halo's mass backwards in time along the
// median growth history fitted to N-body merger trees. Given a halo mass at
// an anchor redshift, Track returns the mass of its main progenitor at any
// earlier epoch.
package progenitor

import (
	"math"

	"github.com/pkg/errors"

	"github.com/matchaproject/matcha/internal/cosmology"
)

// Coefficients are the fitted constants of the median growth history. The
// zero value is unusable; use DefaultCoefficients.
type Coefficients struct {
	NormAlpha float64
	NormBeta  float64
	NormGamma float64

	PivotAmplitude float64
	PivotMass      float64
	PivotSlope     float64

	Steepness float64
}

// DefaultCoefficients returns the published fit.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		NormAlpha: 1.52947,
		NormBeta:  -3.4087,
		NormGamma: -0.404274,

		PivotAmplitude: 0.285509,
		PivotMass:      11.9943,
		PivotSlope:     0.143375,

		Steepness: 4.07574,
	}
}

// referenceHubble is the Hubble parameter the growth fit was calibrated
// against; masses are rescaled to it before the fit is applied and back
// after.
const referenceHubble = 0.678

// logPivot is the log10 pivot mass of the growth history parameterisation.
const logPivot = 13.0

// Tracker evolves halo masses along the median growth history.
type Tracker struct {
	coeffs Coefficients
}

func NewTracker(coeffs Coefficients) *Tracker {
	return &Tracker{coeffs: coeffs}
}

// Track returns the log10 progenitor masses at each redshift in zs for a
// halo of log10 mass logMh0 at anchor redshift z0.
//
// cosmoVec is the positional parameter vector from
// cosmology.ParameterVector: the fit consumes the matter density, the
// dark-energy density, the Hubble parameter and delta_c by index. Redshifts
// below the anchor are a caller error.
func (t *Tracker) Track(logMh0, z0 float64, zs []float64, cosmoVec []float64) ([]float64, error) {
	if len(cosmoVec) < 7 {
		return nil, errors.Errorf("cosmology parameter vector has %d entries; 7 required", len(cosmoVec))
	}
	om := cosmoVec[1]
	ol := cosmoVec[2]
	h := cosmoVec[5]
	deltaC := cosmoVec[6]

	// The fit works in the time variable w = delta_c / D(z), measured
	// relative to the anchor epoch.
	wAnchor := deltaC / cosmology.GrowthRatio(om, ol, z0)

	// Rescale the anchor mass to the calibration's Hubble parameter.
	hShift := math.Log10(h / referenceHubble)
	adjusted := logMh0 + hShift

	c := t.coeffs
	a0 := c.PivotAmplitude - math.Log10(math.Pow(10, c.PivotSlope*(c.PivotMass-adjusted))+1)
	gZero := shape(0, a0, c.Steepness)

	out := make([]float64, len(zs))
	for i, z := range zs {
		if z < z0 {
			return nil, errors.Errorf("progenitor redshift %.4f precedes the anchor redshift %.4f", z, z0)
		}
		dw := deltaC/cosmology.GrowthRatio(om, ol, z) - wAnchor

		norm := math.Pow(1+dw, c.NormAlpha) * math.Pow(1+0.5*dw, c.NormBeta) * math.Exp(c.NormGamma*dw)
		track := (adjusted - logPivot) * gZero / shape(dw, a0, c.Steepness)

		out[i] = logPivot + math.Log10(norm) + track - hShift
	}
	return out, nil
}

// shape is the sigmoid modulating how fast the track falls away from the
// pivot mass as dw grows.
func shape(dw, a0, steepness float64) float64 {
	return 1 + math.Exp(-steepness*(1/(1+dw)-a0))
}
