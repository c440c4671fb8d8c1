package hmf

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/pkg/errors"
)

// correctionSlope is the exponential cutoff slope of the subhalo correction.
const correctionSlope = 0.220586

// calibratedZMin and calibratedZMax bound the redshift range the correction
// polynomials were fitted over. Outside it the correction extrapolates.
const (
	calibratedZMin = 0.0
	calibratedZMax = 10.0
)

// CorrectionFactor returns the fractional subhalo abundance f(logMpeak, z):
// the number of subhalos per host halo above the given peak mass, so that the
// total (host + subhalo) cumulative density is nvir * (1 + f).
//
// The calibration works in h-scaled masses, so logMpeak (log10 Msun) is
// shifted by log10(h) before the fit is applied. The amplitude and cutoff
// mass are quartic polynomials in redshift.
func CorrectionFactor(logMpeak, z, h float64) float64 {
	logMpeakH := logMpeak + math.Log10(h)

	csubRatio := 0.008670*z - 0.011330*z*z - 0.003892*z*z*z + 0.000370*z*z*z*z
	norm := 1.78 * math.Pow(10, csubRatio)

	logMcutoff := 11.904572 - 0.636422*z - 0.020686*z*z + 0.022034*z*z*z - 0.001151*z*z*z*z

	return norm * math.Exp(-math.Pow(10, correctionSlope*(logMpeakH-logMcutoff)))
}

// ApplyCorrection lifts a host-halo cumulative table to a total (host plus
// subhalo) table, point by point. The input slices must be aligned; the
// returned slice is freshly allocated.
func ApplyCorrection(logMass, nvir []float64, z, h float64) ([]float64, error) {
	if len(logMass) != len(nvir) {
		return nil, errors.Errorf(
			"subhalo correction inputs are misaligned: %d masses but %d densities", len(logMass), len(nvir),
		)
	}
	if z < calibratedZMin || z > calibratedZMax {
		log.Warnf("subhalo correction extrapolated to z=%.3f outside calibrated range [%g, %g]",
			z, calibratedZMin, calibratedZMax)
	}
	total := make([]float64, len(nvir))
	for i := range nvir {
		total[i] = nvir[i] * (1 + CorrectionFactor(logMass[i], z, h))
	}
	return total, nil
}
