package stellar

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchaproject/matcha/internal/common/matchaerrors"
	"github.com/matchaproject/matcha/internal/gsmf"
)

// Solving for the density of a known threshold must recover that threshold.
func TestSolveRoundTrip(t *testing.T) {
	solver := NewSolver(gsmf.ModeObserved)

	tests := map[string]struct {
		logMs float64
		z     float64
	}{
		"low mass local":   {9.0, 0.0},
		"high mass local":  {11.0, 0.0},
		"intermediate z":   {10.5, 1.5},
		"high redshift":    {9.5, 6.0},
		"massive and deep": {10.8, 3.0},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rv, err := gsmf.Integrate(tc.logMs, tc.z, gsmf.ModeObserved)
			require.NoError(t, err)

			got, err := solver.Solve(tc.z, rv.Value)
			require.NoError(t, err)
			assert.InDelta(t, tc.logMs, got, 1e-8)
		})
	}
}

// Rarer galaxy populations sit above higher mass thresholds.
func TestSolveIsMonotone(t *testing.T) {
	solver := NewSolver(gsmf.ModeTrue)

	previous := math.Inf(-1)
	for _, target := range []float64{1e-2, 1e-3, 1e-4, 1e-5} {
		logMs, err := solver.Solve(0.5, target)
		require.NoError(t, err)
		assert.Greater(t, logMs, previous)
		previous = logMs
	}
}

// A density larger than the whole galaxy population admits no threshold.
func TestSolveRejectsUnreachableDensity(t *testing.T) {
	solver := NewSolver(gsmf.ModeObserved)

	_, err := solver.Solve(0, 1e6)
	require.Error(t, err)
	var noRoot *matchaerrors.ErrNoRootInBracket
	assert.True(t, errors.As(err, &noRoot))
}

func TestSolveRejectsInvalidMode(t *testing.T) {
	solver := NewSolver("nonsense")
	_, err := solver.Solve(0, 1e-3)
	require.Error(t, err)
	var invalid *matchaerrors.ErrInvalidMode
	assert.True(t, errors.As(err, &invalid))
}
