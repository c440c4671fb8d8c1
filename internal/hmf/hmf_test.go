package hmf

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchaproject/matcha/internal/cosmology"
)

var testCosmo = cosmology.MustNew(cosmology.Parameters{
	H0:     0.678,
	Om0:    0.307115,
	Ob0:    0.048,
	N:      0.96,
	Sigma8: 0.823,
})

// fakeProvider serves an analytic power-law cumulative mass function,
//
//	log10 n = -1.92 - 0.8125*(logM - 11.3) - 0.1*z
//
// which is strictly decreasing in mass and mildly suppressed with redshift.
type fakeProvider struct {
	calls   int
	queries []Query
}

func fakeLogDensity(logMass, z float64) float64 {
	return -1.92 - 0.8125*(logMass-11.3) - 0.1*z
}

func (p *fakeProvider) NGreaterTable(_ context.Context, query Query) (*Table, error) {
	p.calls++
	p.queries = append(p.queries, query)

	points := int(math.Round((query.MaxLogMass-query.MinLogMass)/query.LogStep)) + 1
	table := &Table{
		LogMass:  make([]float64, points),
		NGreater: make([]float64, points),
	}
	for i := 0; i < points; i++ {
		logMass := query.MinLogMass + float64(i)*query.LogStep
		table.LogMass[i] = logMass
		table.NGreater[i] = math.Pow(10, fakeLogDensity(logMass, query.Z))
	}
	return table, nil
}

func TestTableValidate(t *testing.T) {
	tests := map[string]struct {
		table Table
		ok    bool
	}{
		"valid": {
			table: Table{LogMass: []float64{10, 11, 12}, NGreater: []float64{3, 2, 1}},
			ok:    true,
		},
		"misaligned": {
			table: Table{LogMass: []float64{10, 11}, NGreater: []float64{3}},
		},
		"too short": {
			table: Table{LogMass: []float64{10}, NGreater: []float64{3}},
		},
		"masses not increasing": {
			table: Table{LogMass: []float64{10, 10}, NGreater: []float64{3, 2}},
		},
		"densities not decreasing": {
			table: Table{LogMass: []float64{10, 11}, NGreater: []float64{2, 2}},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := tc.table.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCorrectionFactor(t *testing.T) {
	h := testCosmo.H0()

	// More massive halos host proportionally fewer subhalos above threshold.
	previous := math.Inf(1)
	for _, logMpeak := range []float64{10, 11, 12, 13, 14} {
		factor := CorrectionFactor(logMpeak, 0, h)
		assert.Greater(t, factor, 0.0)
		assert.Less(t, factor, previous)
		previous = factor
	}

	// Far above the cutoff mass the correction is negligible.
	assert.Less(t, CorrectionFactor(18, 0, h), 1e-6)
}

func TestApplyCorrection(t *testing.T) {
	logMass := []float64{10, 11, 12}
	nvir := []float64{3e-3, 1e-3, 1e-4}

	total, err := ApplyCorrection(logMass, nvir, 0.5, testCosmo.H0())
	require.NoError(t, err)
	require.Len(t, total, len(nvir))
	for i := range total {
		assert.Greater(t, total[i], nvir[i])
	}

	_, err = ApplyCorrection(logMass, nvir[:2], 0.5, testCosmo.H0())
	assert.Error(t, err)
}

func TestCorrectedWideTable(t *testing.T) {
	provider := &fakeProvider{}
	client := NewClient(provider, testCosmo)

	table, err := client.CorrectedWideTable(context.Background(), 1.0)
	require.NoError(t, err)
	require.Len(t, table.LogMass, 701)
	assert.InDelta(t, WideMinLogMass, table.LogMass[0], 1e-12)
	assert.InDelta(t, WideMaxLogMass, table.LogMass[700], 1e-9)

	// The correction only ever adds subhalos.
	for i, logMass := range table.LogMass {
		raw := math.Pow(10, fakeLogDensity(logMass, 1.0))
		assert.Greater(t, table.NGreater[i], raw)
	}

	// The query must carry the cosmology and the fixed model selections.
	require.Len(t, provider.queries, 1)
	query := provider.queries[0]
	assert.Equal(t, 100*testCosmo.H0(), query.H0)
	assert.Equal(t, testCosmo.Om0(), query.Om0)
	assert.Equal(t, TransferModel, query.TransferModel)
	assert.Equal(t, MassDefinition, query.MassDefinition)
	assert.Equal(t, FittingModel, query.FittingModel)
}

func TestPointDensity(t *testing.T) {
	provider := &fakeProvider{}
	client := NewClient(provider, testCosmo)

	logMpeak := 11.743
	z := 0.8
	got, err := client.PointDensity(context.Background(), z, logMpeak)
	require.NoError(t, err)

	expected := math.Pow(10, fakeLogDensity(logMpeak, z)) * (1 + CorrectionFactor(logMpeak, z, testCosmo.H0()))
	assert.InEpsilon(t, expected, got, 1e-6)
}

// Progenitor masses at high redshift fall below the wide-table floor; the
// point query must still serve them.
func TestPointDensityBelowWideRange(t *testing.T) {
	client := NewClient(&fakeProvider{}, testCosmo)

	got, err := client.PointDensity(context.Background(), 6, 7.5)
	require.NoError(t, err)
	expected := math.Pow(10, fakeLogDensity(7.5, 6)) * (1 + CorrectionFactor(7.5, 6, testCosmo.H0()))
	assert.InEpsilon(t, expected, got, 1e-6)
}

func TestCachingProvider(t *testing.T) {
	inner := &fakeProvider{}
	cached := NewCachingProvider(inner, 16)
	client := NewClient(cached, testCosmo)
	ctx := context.Background()

	first, err := client.CorrectedWideTable(ctx, 2.0)
	require.NoError(t, err)
	second, err := client.CorrectedWideTable(ctx, 2.0)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first.NGreater, second.NGreater)

	// A different redshift is a different key.
	_, err = client.CorrectedWideTable(ctx, 2.5)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestHTTPProvider(t *testing.T) {
	upstream := &fakeProvider{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		values := r.URL.Query()
		assert.Equal(t, "0.5", values.Get("z"))
		assert.Equal(t, "EH", values.Get("transfer_model"))
		assert.Equal(t, "SOVirial", values.Get("mdef_model"))
		assert.Equal(t, "Behroozi", values.Get("hmf_model"))
		assert.Equal(t, formatFloat(100*testCosmo.H0()), values.Get("cosmo_H0"))

		table, err := upstream.NGreaterTable(r.Context(), Query{
			Z: 0.5, MinLogMass: 10, MaxLogMass: 12, LogStep: 0.5,
		})
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		writeJSON(t, w, table)
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, 0)
	client := NewClient(provider, testCosmo)
	table, err := provider.NGreaterTable(context.Background(), client.query(0.5, 10, 12, 0.5))
	require.NoError(t, err)
	assert.Len(t, table.LogMass, 5)
	assert.InDelta(t, math.Pow(10, fakeLogDensity(10, 0.5)), table.NGreater[0], 1e-12)
}

func writeJSON(t *testing.T, w io.Writer, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestHTTPProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such model", http.StatusBadRequest)
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, 0)
	_, err := provider.NGreaterTable(context.Background(), Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
