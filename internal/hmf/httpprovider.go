package hmf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// HTTPProvider fetches mass-function tables from a remote calculator over
// HTTP. One GET per query; the response body is a JSON Table.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) NGreaterTable(ctx context.Context, query Query) (*Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	values := url.Values{}
	values.Set("z", formatFloat(query.Z))
	values.Set("Mmin", formatFloat(query.MinLogMass))
	values.Set("Mmax", formatFloat(query.MaxLogMass))
	values.Set("dlog10m", formatFloat(query.LogStep))
	values.Set("cosmo_Om0", formatFloat(query.Om0))
	values.Set("cosmo_Ob0", formatFloat(query.Ob0))
	values.Set("n", formatFloat(query.SpectralIndex))
	values.Set("sigma_8", formatFloat(query.Sigma8))
	values.Set("cosmo_H0", formatFloat(query.H0))
	values.Set("transfer_model", query.TransferModel)
	values.Set("mdef_model", query.MassDefinition)
	values.Set("hmf_model", query.FittingModel)
	req.URL.RawQuery = values.Encode()

	rsp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rsp.Body.Close()

	if rsp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(rsp.Body, 1024))
		return nil, errors.Errorf(
			"mass-function provider returned status %d: %s", rsp.StatusCode, string(body),
		)
	}

	var table Table
	if err := json.NewDecoder(rsp.Body).Decode(&table); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &table, nil
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
