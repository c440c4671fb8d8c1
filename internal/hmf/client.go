package hmf

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/interp"

	"github.com/matchaproject/matcha/internal/cosmology"
)

// Wide-table bounds in log10 halo mass. The wide table spans every halo mass
// the pipeline can encounter, on a 0.01 dex grid.
const (
	WideMinLogMass = 9.0
	WideMaxLogMass = 16.0
	WideLogStep    = 0.01
)

// pointWindow is the half-width, in dex, of the narrow window queried around
// a single mass when only the density at that mass is needed.
const pointWindow = 1e-5

// Client issues mass-function queries for one fixed cosmology and applies the
// subhalo correction to everything it returns.
type Client struct {
	provider Provider
	cosmo    *cosmology.Cosmology
}

func NewClient(provider Provider, cosmo *cosmology.Cosmology) *Client {
	return &Client{provider: provider, cosmo: cosmo}
}

func (c *Client) query(z, minLogMass, maxLogMass, logStep float64) Query {
	return Query{
		Z:          z,
		MinLogMass: minLogMass,
		MaxLogMass: maxLogMass,
		LogStep:    logStep,

		Om0:           c.cosmo.Om0(),
		Ob0:           c.cosmo.Ob0(),
		SpectralIndex: c.cosmo.SpectralIndex(),
		Sigma8:        c.cosmo.Sigma8(),
		H0:            100 * c.cosmo.H0(),

		TransferModel:  TransferModel,
		MassDefinition: MassDefinition,
		FittingModel:   FittingModel,
	}
}

// CorrectedWideTable returns the subhalo-corrected cumulative table over the
// full wide mass range at redshift z.
func (c *Client) CorrectedWideTable(ctx context.Context, z float64) (*Table, error) {
	table, err := c.provider.NGreaterTable(ctx, c.query(z, WideMinLogMass, WideMaxLogMass, WideLogStep))
	if err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	corrected, err := ApplyCorrection(table.LogMass, table.NGreater, z, c.cosmo.H0())
	if err != nil {
		return nil, err
	}
	return &Table{LogMass: table.LogMass, NGreater: corrected}, nil
}

// PointDensity returns the subhalo-corrected cumulative density at a single
// log10 mass, by querying a narrow window around it and interpolating the
// log-density linearly across that window. The mass need not lie within the
// wide-table bounds; progenitors at high redshift fall well below them.
func (c *Client) PointDensity(ctx context.Context, z, logMpeak float64) (float64, error) {
	table, err := c.provider.NGreaterTable(ctx,
		c.query(z, logMpeak-pointWindow, logMpeak+pointWindow, pointWindow/2))
	if err != nil {
		return 0, err
	}
	if err := table.Validate(); err != nil {
		return 0, err
	}
	corrected, err := ApplyCorrection(table.LogMass, table.NGreater, z, c.cosmo.H0())
	if err != nil {
		return 0, err
	}

	logDensity := make([]float64, len(corrected))
	for i, n := range corrected {
		logDensity[i] = math.Log10(n)
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(table.LogMass, logDensity); err != nil {
		return 0, errors.WithStack(err)
	}
	return math.Pow(10, pl.Predict(logMpeak)), nil
}
