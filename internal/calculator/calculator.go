// Package calculator composes the pipeline: stellar-mass thresholds at the
// reference redshift are matched to halos, the halos are evolved back in
// time, and the stellar mass hosted by each progenitor is recovered from the
// mass function at its epoch.
package calculator

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/matchaproject/matcha/internal/common/matchacontext"
	"github.com/matchaproject/matcha/internal/cosmology"
	"github.com/matchaproject/matcha/internal/gsmf"
	"github.com/matchaproject/matcha/internal/hmf"
	"github.com/matchaproject/matcha/internal/progenitor"
	"github.com/matchaproject/matcha/internal/sham"
	"github.com/matchaproject/matcha/internal/stellar"
)

// Calculator orchestrates the full pipeline for one cosmology and reference
// redshift. It is safe for concurrent use; all state is read-only after
// construction.
type Calculator struct {
	cosmo   *cosmology.Cosmology
	z0      float64
	client  *hmf.Client
	matcher *sham.Matcher
	tracker *progenitor.Tracker
	solver  *stellar.Solver
}

// New builds a Calculator backed by the given mass-function provider.
func New(cosmo *cosmology.Cosmology, z0 float64, provider hmf.Provider) *Calculator {
	client := hmf.NewClient(provider, cosmo)
	return &Calculator{
		cosmo:   cosmo,
		z0:      z0,
		client:  client,
		matcher: sham.NewMatcher(client),
		tracker: progenitor.NewTracker(progenitor.DefaultCoefficients()),
		solver:  stellar.NewSolver(gsmf.ModeObserved),
	}
}

// ComputeTracks computes the evolutionary track of every threshold over a
// shared redshift grid of the given sample count. Thresholds are independent
// and run in parallel; the first failure cancels the rest.
func (c *Calculator) ComputeTracks(ctx *matchacontext.Context, samples int) (map[string]*Track, error) {
	grid, err := RedshiftGrid(c.z0, samples)
	if err != nil {
		return nil, err
	}

	keys := maps.Keys(Thresholds)
	slices.Sort(keys)
	ctx.Log.Infof("computing %d tracks over %d redshifts", len(keys), samples)

	tracks := make(map[string]*Track, len(Thresholds))
	var mu sync.Mutex

	group, groupCtx := matchacontext.ErrGroup(ctx)
	for _, key := range keys {
		key, threshold := key, Thresholds[key]
		group.Go(func() error {
			trackCtx := matchacontext.WithLogField(groupCtx, "threshold", key)
			track, err := c.computeTrack(trackCtx, threshold, grid)
			if err != nil {
				return err
			}
			mu.Lock()
			tracks[key] = track
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return tracks, nil
}

// computeTrack runs the pipeline for a single threshold: match the
// population to a halo at z0, evolve the halo backwards, then read off each
// progenitor's number density and the stellar mass selected by it.
func (c *Calculator) computeTrack(ctx *matchacontext.Context, threshold float64, grid []float64) (*Track, error) {
	target, err := gsmf.Integrate(threshold, c.z0, gsmf.ModeObserved)
	if err != nil {
		return nil, err
	}
	ctx.Log.WithField("targetDensity", target.Value).Debug("matching threshold to halo mass")

	logMh0, err := c.matcher.Invert(ctx, c.z0, target.Value)
	if err != nil {
		return nil, err
	}

	progenitors, err := c.tracker.Track(logMh0, c.z0, grid, c.cosmo.ParameterVector())
	if err != nil {
		return nil, err
	}

	track := &Track{
		Redshift:          grid,
		ProgenitorLogMass: progenitors,
		HaloDensity:       make([]float64, len(grid)),
		StellarLogMass:    make([]float64, len(grid)),
	}
	for i, z := range grid {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		density, err := c.client.PointDensity(ctx, z, progenitors[i])
		if err != nil {
			return nil, err
		}
		track.HaloDensity[i] = density

		logMs, err := c.solver.Solve(z, density)
		if err != nil {
			return nil, err
		}
		track.StellarLogMass[i] = logMs
	}
	return track, nil
}
