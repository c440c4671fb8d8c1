// Package hmf wraps the external halo mass function provider: querying it
// over wide and narrow mass windows, correcting the returned densities for
// unresolved subhalos, and caching the immutable tables it produces.
//
// The mass function itself is not computed here; it is obtained from the
// provider given the cosmological parameters and fixed model selections.
package hmf

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// Fixed model selections sent with every provider query. The calibrations
// used downstream assume exactly these choices.
const (
	TransferModel  = "EH"       // Eisenstein-Hu transfer function
	MassDefinition = "SOVirial" // spherical-overdensity virial halos
	FittingModel   = "Behroozi" // Behroozi fitting function
)

// Query describes one mass-function table request: a redshift, a log10 mass
// window with step, the cosmological parameters, and the model selections.
type Query struct {
	Z          float64
	MinLogMass float64
	MaxLogMass float64
	LogStep    float64

	Om0           float64
	Ob0           float64
	SpectralIndex float64
	Sigma8        float64
	H0            float64 // km/s/Mpc, i.e. 100 * little h

	TransferModel  string
	MassDefinition string
	FittingModel   string
}

// cacheKey renders every field that affects the provider's answer. Two
// queries with equal keys are interchangeable.
func (q Query) cacheKey() string {
	return fmt.Sprintf(
		"%.10g|%.10g|%.10g|%.10g|%.10g|%.10g|%.10g|%.10g|%.10g|%s|%s|%s",
		q.Z, q.MinLogMass, q.MaxLogMass, q.LogStep,
		q.Om0, q.Ob0, q.SpectralIndex, q.Sigma8, q.H0,
		q.TransferModel, q.MassDefinition, q.FittingModel,
	)
}

// Table is an ordered mass-function table: LogMass ascending, NGreater the
// cumulative number density (Mpc^-3) of halos above each mass, strictly
// decreasing. Tables are immutable once returned and safe to share.
type Table struct {
	LogMass  []float64 `json:"logMass"`
	NGreater []float64 `json:"nGreater"`
}

// Validate checks the ordering contract the provider is required to satisfy.
func (t *Table) Validate() error {
	if len(t.LogMass) != len(t.NGreater) {
		return errors.Errorf(
			"mass-function table is misaligned: %d masses but %d densities", len(t.LogMass), len(t.NGreater),
		)
	}
	if len(t.LogMass) < 2 {
		return errors.Errorf("mass-function table has %d points; at least 2 required", len(t.LogMass))
	}
	for i := 1; i < len(t.LogMass); i++ {
		if t.LogMass[i] <= t.LogMass[i-1] {
			return errors.Errorf("mass-function table masses are not strictly increasing at index %d", i)
		}
		if t.NGreater[i] >= t.NGreater[i-1] {
			return errors.Errorf("mass-function table densities are not strictly decreasing at index %d", i)
		}
	}
	return nil
}

// Provider is the external mass-function collaborator.
type Provider interface {
	// NGreaterTable returns the cumulative mass-function table for query.
	NGreaterTable(ctx context.Context, query Query) (*Table, error)
}
