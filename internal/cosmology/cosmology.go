// Package cosmology holds the validated cosmological parameters consumed by
// the rest of the pipeline, together with the handful of background-cosmology
// functions (density parameters, linear growth factor) the empirical fits
// are built on.
package cosmology

import (
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/matchaproject/matcha/internal/common/matchaerrors"
)

// DefaultDeltaC is the critical linear overdensity for spherical collapse,
// used when a cosmology does not specify its own value.
const DefaultDeltaC = 1.686

// Parameters is the user-facing cosmology record. H0 is the dimensionless
// Hubble parameter (little h). DeltaC is optional; all other fields are
// required and must be positive.
type Parameters struct {
	H0     float64
	Om0    float64
	Ob0    float64
	N      float64
	Sigma8 float64
	DeltaC float64
}

// Cosmology is an immutable, validated set of cosmological parameters.
// The dark-energy density is derived as Ol0 = 1 - Om0 (flat universe).
type Cosmology struct {
	h0     float64
	om0    float64
	ol0    float64
	ob0    float64
	n      float64
	sigma8 float64
	deltaC float64
}

// New validates params and returns an immutable Cosmology. All missing or
// unphysical required fields are reported at once via a multierror of
// ErrInvalidCosmology values.
func New(params Parameters) (*Cosmology, error) {
	var result *multierror.Error
	required := []struct {
		name  string
		value float64
	}{
		{"h0", params.H0},
		{"om0", params.Om0},
		{"ob0", params.Ob0},
		{"n", params.N},
		{"sigma8", params.Sigma8},
	}
	for _, field := range required {
		if field.value <= 0 {
			result = multierror.Append(result, &matchaerrors.ErrInvalidCosmology{
				Field:   field.name,
				Value:   field.value,
				Message: "required parameter must be positive",
			})
		}
	}
	if params.Om0 > 1 {
		result = multierror.Append(result, &matchaerrors.ErrInvalidCosmology{
			Field:   "om0",
			Value:   params.Om0,
			Message: "matter density above unity leaves no room for dark energy in a flat universe",
		})
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.WithStack(err)
	}

	deltaC := params.DeltaC
	if deltaC == 0 {
		deltaC = DefaultDeltaC
	}
	return &Cosmology{
		h0:     params.H0,
		om0:    params.Om0,
		ol0:    1 - params.Om0,
		ob0:    params.Ob0,
		n:      params.N,
		sigma8: params.Sigma8,
		deltaC: deltaC,
	}, nil
}

// MustNew is like New but panics on invalid parameters. Intended for tests
// and fixed reference cosmologies.
func MustNew(params Parameters) *Cosmology {
	cosmo, err := New(params)
	if err != nil {
		panic(err)
	}
	return cosmo
}

func (c *Cosmology) H0() float64            { return c.h0 }
func (c *Cosmology) Om0() float64           { return c.om0 }
func (c *Cosmology) Ol0() float64           { return c.ol0 }
func (c *Cosmology) Ob0() float64           { return c.ob0 }
func (c *Cosmology) SpectralIndex() float64 { return c.n }
func (c *Cosmology) Sigma8() float64        { return c.sigma8 }
func (c *Cosmology) DeltaC() float64        { return c.deltaC }

// ParameterVector returns the fixed-order vector
//
//	[0, Om0, Ol0, Ob0, sigma8, h0, delta_c]
//
// consumed positionally by the progenitor growth fit. The ordering is a
// calibration contract and must not change.
func (c *Cosmology) ParameterVector() []float64 {
	return []float64{0, c.om0, c.ol0, c.ob0, c.sigma8, c.h0, c.deltaC}
}

// ScaleFactor returns a(z) = 1/(1+z).
func ScaleFactor(z float64) float64 {
	return 1 / (1 + z)
}

// OmegaM returns the matter density parameter at redshift z for a universe
// with present-day densities om0 and ol0.
func OmegaM(om0, ol0, z float64) float64 {
	cube := om0 * (1 + z) * (1 + z) * (1 + z)
	return cube / (ol0 + cube)
}

// OmegaL returns the dark-energy density parameter at redshift z.
func OmegaL(om0, ol0, z float64) float64 {
	cube := om0 * (1 + z) * (1 + z) * (1 + z)
	return ol0 / (ol0 + cube)
}

// growthFit is the Carroll, Press & Turner approximation to the linear growth
// amplitude at redshift z, given the density parameters evaluated at z.
func growthFit(omZ, olZ, z float64) float64 {
	amplitude := omZ / (1 + z)
	return amplitude / (math.Pow(omZ, 4.0/7.0) - olZ + (1+omZ/2)*(1+olZ/70))
}

// GrowthRatio returns D(z)/D(0), the linear growth factor at z normalised to
// the present day.
func GrowthRatio(om0, ol0, z float64) float64 {
	return growthFit(OmegaM(om0, ol0, z), OmegaL(om0, ol0, z), z) / growthFit(om0, ol0, 0)
}

// GrowthRatio is a convenience wrapper over the free function using the
// cosmology's own densities.
func (c *Cosmology) GrowthRatio(z float64) float64 {
	return GrowthRatio(c.om0, c.ol0, z)
}
