package calculator

import (
	"math"

	"github.com/pkg/errors"
)

// gridUpperBound is the top of the redshift grid, expressed in (1+z) space.
const gridUpperBound = 13.0

// RedshiftGrid returns samples redshifts ascending from z0, log-spaced in
// (1+z) between (1+z0) and 13. The first element is exactly z0.
func RedshiftGrid(z0 float64, samples int) ([]float64, error) {
	if samples < 2 {
		return nil, errors.Errorf("redshift grid needs at least 2 samples, got %d", samples)
	}
	if z0 < 0 || 1+z0 >= gridUpperBound {
		return nil, errors.Errorf("reference redshift %.4f outside the supported range [0, %g)", z0, gridUpperBound-1)
	}

	logLower := math.Log10(1 + z0)
	logUpper := math.Log10(gridUpperBound)
	step := (logUpper - logLower) / float64(samples-1)

	grid := make([]float64, samples)
	grid[0] = z0
	for i := 1; i < samples; i++ {
		grid[i] = math.Pow(10, logLower+float64(i)*step) - 1
	}
	return grid, nil
}
