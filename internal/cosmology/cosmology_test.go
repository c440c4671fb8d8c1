package cosmology

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchaproject/matcha/internal/common/matchaerrors"
)

var planckLike = Parameters{
	H0:     0.678,
	Om0:    0.307115,
	Ob0:    0.048,
	N:      0.96,
	Sigma8: 0.823,
	DeltaC: 1.686,
}

func TestNew(t *testing.T) {
	cosmo, err := New(planckLike)
	require.NoError(t, err)
	assert.Equal(t, 0.678, cosmo.H0())
	assert.InDelta(t, 1-0.307115, cosmo.Ol0(), 1e-12)
	assert.Equal(t, 1.686, cosmo.DeltaC())
}

func TestNewDefaultsDeltaC(t *testing.T) {
	params := planckLike
	params.DeltaC = 0
	cosmo, err := New(params)
	require.NoError(t, err)
	assert.Equal(t, DefaultDeltaC, cosmo.DeltaC())
}

func TestNewReportsAllMissingFields(t *testing.T) {
	_, err := New(Parameters{H0: 0.7, N: 0.96})
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 3) // om0, ob0, sigma8

	var invalid *matchaerrors.ErrInvalidCosmology
	assert.True(t, errors.As(err, &invalid))
}

func TestNewRejectsOverdenseUniverse(t *testing.T) {
	params := planckLike
	params.Om0 = 1.3
	_, err := New(params)
	require.Error(t, err)
	var invalid *matchaerrors.ErrInvalidCosmology
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "om0", invalid.Field)
}

// The vector ordering is consumed positionally by the progenitor fit and is a
// calibration contract.
func TestParameterVectorOrdering(t *testing.T) {
	cosmo := MustNew(planckLike)
	vec := cosmo.ParameterVector()
	require.Len(t, vec, 7)
	assert.Equal(t, 0.0, vec[0])
	assert.Equal(t, cosmo.Om0(), vec[1])
	assert.Equal(t, cosmo.Ol0(), vec[2])
	assert.Equal(t, cosmo.Ob0(), vec[3])
	assert.Equal(t, cosmo.Sigma8(), vec[4])
	assert.Equal(t, cosmo.H0(), vec[5])
	assert.Equal(t, cosmo.DeltaC(), vec[6])
}

func TestDensityParameters(t *testing.T) {
	cosmo := MustNew(planckLike)

	// Density parameters always sum to one under the flat-universe model.
	for _, z := range []float64{0, 0.5, 1, 3, 12} {
		sum := OmegaM(cosmo.Om0(), cosmo.Ol0(), z) + OmegaL(cosmo.Om0(), cosmo.Ol0(), z)
		assert.InDelta(t, 1.0, sum, 1e-12, "z = %v", z)
	}

	// Matter dominates at early times.
	assert.Greater(t, OmegaM(cosmo.Om0(), cosmo.Ol0(), 12.0), 0.99)
	assert.InDelta(t, cosmo.Om0(), OmegaM(cosmo.Om0(), cosmo.Ol0(), 0), 1e-12)
}

func TestGrowthRatio(t *testing.T) {
	cosmo := MustNew(planckLike)

	assert.InDelta(t, 1.0, cosmo.GrowthRatio(0), 1e-12)

	// Perturbations grow with time, so D(z)/D(0) decreases towards the past.
	previous := 1.0
	for _, z := range []float64{0.5, 1, 2, 4, 8, 12} {
		ratio := cosmo.GrowthRatio(z)
		assert.Less(t, ratio, previous, "z = %v", z)
		assert.Greater(t, ratio, 0.0)
		previous = ratio
	}

	// In the matter-dominated limit D scales like the scale factor.
	assert.InDelta(t, ScaleFactor(12)/ScaleFactor(11), cosmo.GrowthRatio(12)/cosmo.GrowthRatio(11), 0.01)
}

func TestScaleFactor(t *testing.T) {
	assert.Equal(t, 1.0, ScaleFactor(0))
	assert.Equal(t, 0.5, ScaleFactor(1))
	assert.InDelta(t, 1.0/13, ScaleFactor(12), 1e-12)
}
