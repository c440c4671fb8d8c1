package configuration

import (
	"time"

	"github.com/matchaproject/matcha/internal/cosmology"
)

type MatchaConfig struct {
	// Cosmology the whole run is evaluated in.
	Cosmology cosmology.Parameters
	// ReferenceRedshift is the epoch the stellar-mass thresholds select at.
	ReferenceRedshift float64
	// Samples is the redshift-grid resolution shared by all tracks.
	Samples int
	// Provider configures the external mass-function calculator.
	Provider ProviderConfig
	// OutputPath is where the JSON track map is written; empty means stdout.
	OutputPath string
}

type ProviderConfig struct {
	// URL of the mass-function calculator endpoint.
	URL string
	// CacheSize bounds the number of mass-function tables kept in memory.
	CacheSize uint32
	// RequestTimeout applies per table request.
	RequestTimeout time.Duration
}
