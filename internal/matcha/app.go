// Package matcha assembles the configured pipeline and runs it to
// completion, writing the per-threshold tracks as JSON.
package matcha

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/matchaproject/matcha/internal/calculator"
	"github.com/matchaproject/matcha/internal/common/matchacontext"
	"github.com/matchaproject/matcha/internal/cosmology"
	"github.com/matchaproject/matcha/internal/hmf"
	"github.com/matchaproject/matcha/internal/matcha/configuration"
)

// Run executes the pipeline described by config. It blocks until every track
// is computed, the context is cancelled, or a computation fails.
func Run(ctx *matchacontext.Context, config *configuration.MatchaConfig) error {
	cosmo, err := cosmology.New(config.Cosmology)
	if err != nil {
		return err
	}
	if config.Samples < 2 {
		return errors.Errorf("samples must be at least 2, got %d", config.Samples)
	}
	if config.Provider.URL == "" {
		return errors.New("no mass-function provider URL configured")
	}

	provider := hmf.NewCachingProvider(
		hmf.NewHTTPProvider(config.Provider.URL, config.Provider.RequestTimeout),
		config.Provider.CacheSize,
	)
	calc := calculator.New(cosmo, config.ReferenceRedshift, provider)

	log.WithFields(log.Fields{
		"referenceRedshift": config.ReferenceRedshift,
		"samples":           config.Samples,
		"provider":          config.Provider.URL,
	}).Info("computing evolutionary tracks")

	tracks, err := calc.ComputeTracks(ctx, config.Samples)
	if err != nil {
		return err
	}
	return writeTracks(tracks, config.OutputPath)
}

func writeTracks(tracks map[string]*calculator.Track, path string) error {
	out, err := json.MarshalIndent(tracks, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	out = append(out, '\n')

	if path == "" {
		_, err = os.Stdout.Write(out)
		return errors.WithStack(err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.WithStack(err)
	}
	log.Infof("wrote %d tracks to %s", len(tracks), path)
	return nil
}
