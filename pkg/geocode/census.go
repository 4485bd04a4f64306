package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/parcel-cli/internal/resilience"
)

const (
	censusGeographiesURL = "https://geocoding.geo.census.gov/geocoder/geographies/address"
	censusBenchmark      = "Public_AR_Current"
	censusVintage        = "Current_Current"
)

// censusGeographiesResponse is the JSON response from the Census
// geographies address API.
type censusGeographiesResponse struct {
	Result struct {
		AddressMatches []censusAddressMatch `json:"addressMatches"`
	} `json:"result"`
}

type censusAddressMatch struct {
	MatchedAddress string `json:"matchedAddress"`
	Geographies    struct {
		Counties []struct {
			Name string `json:"NAME"`
		} `json:"Counties"`
	} `json:"geographies"`
}

// countyCensus resolves an address to its county using the Census
// geographies API, retrying transient failures with backoff.
func (g *geocoder) countyCensus(ctx context.Context, addr AddressInput) (*Result, error) {
	return resilience.Retry(ctx, g.retry, func(ctx context.Context) (*Result, error) {
		return g.censusFetch(ctx, addr)
	})
}

func (g *geocoder) censusFetch(ctx context.Context, addr AddressInput) (*Result, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: census rate limit")
	}

	params := url.Values{
		"benchmark": {censusBenchmark},
		"vintage":   {censusVintage},
		"format":    {"json"},
	}
	setNonEmpty(params, "street", addr.Street)
	setNonEmpty(params, "city", addr.City)
	setNonEmpty(params, "state", addr.State)
	setNonEmpty(params, "zip", addr.ZipCode)

	reqURL := g.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: census build request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: census request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		statusErr := eris.Errorf("geocode: census returned status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(statusErr, resp.StatusCode)
		}
		return nil, statusErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: census read body")
	}

	var censusResp censusGeographiesResponse
	if err := json.Unmarshal(body, &censusResp); err != nil {
		return nil, eris.Wrap(err, "geocode: census parse response")
	}

	if len(censusResp.Result.AddressMatches) == 0 {
		return &Result{Matched: false}, nil
	}

	match := censusResp.Result.AddressMatches[0]
	if len(match.Geographies.Counties) == 0 {
		return &Result{Matched: false}, nil
	}

	county := strings.TrimSpace(match.Geographies.Counties[0].Name)
	if county == "" {
		return &Result{Matched: false}, nil
	}

	return &Result{County: county, Matched: true}, nil
}

func setNonEmpty(params url.Values, key, value string) {
	value = strings.TrimSpace(value)
	if value != "" {
		params.Set(key, value)
	}
}
