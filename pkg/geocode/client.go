// Package geocode resolves street addresses to county names via the US
// Census geocoder's geographies endpoint.
package geocode

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/sells-group/parcel-cli/internal/resilience"
)

// Client resolves an address to its administrative county.
type Client interface {
	// County geocodes a single address. A failed lookup is reported through
	// Result.Matched, not an error — errors mean the request itself could
	// not be made or understood.
	County(ctx context.Context, addr AddressInput) (*Result, error)
}

// AddressInput represents an address to geocode. Empty components are
// omitted from the request rather than treated as errors.
type AddressInput struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

// Result holds the geocoding output for an address.
type Result struct {
	County  string
	Matched bool
}

// Option configures the geocoder.
type Option func(*geocoder)

// WithBaseURL overrides the Census geographies endpoint URL.
func WithBaseURL(u string) Option {
	return func(g *geocoder) {
		g.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client for Census requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *geocoder) {
		g.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second rate limit for Census API calls.
func WithRateLimit(rps float64) Option {
	return func(g *geocoder) {
		g.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithRetry overrides the backoff settings used for transient Census
// failures.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(g *geocoder) {
		g.retry = cfg
	}
}

// WithCache enables the sqlite result cache at the given path. Matches and
// non-matches are both cached so repeated runs skip settled addresses.
func WithCache(path string) Option {
	return func(g *geocoder) {
		g.cachePath = path
	}
}

type geocoder struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      resilience.RetryConfig
	cachePath  string
	cache      *cache
}

// NewClient creates a new geocoding Client with the given options.
func NewClient(opts ...Option) (Client, error) {
	g := &geocoder{
		baseURL:    censusGeographiesURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(50, 1), // Census default: 50 req/s
		retry:      resilience.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.cachePath != "" {
		c, err := openCache(g.cachePath)
		if err != nil {
			return nil, err
		}
		g.cache = c
	}

	return g, nil
}

// County geocodes a single address, consulting the cache first when enabled.
func (g *geocoder) County(ctx context.Context, addr AddressInput) (*Result, error) {
	if g.cache != nil {
		if cached, ok := g.cache.get(ctx, addr); ok {
			return cached, nil
		}
	}

	result, err := g.countyCensus(ctx, addr)
	if err != nil {
		return nil, err
	}

	if g.cache != nil {
		g.cache.put(ctx, addr, result)
	}
	return result, nil
}
