package enrich

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/parcel-cli/pkg/geocode"
)

// CountyEnricher resolves a record's missing county name through the
// geocoding collaborator.
type CountyEnricher struct {
	client  geocode.Client
	pacer   *Pacer
	timeout time.Duration
}

// NewCountyEnricher creates a CountyEnricher with its own pacer.
func NewCountyEnricher(client geocode.Client, delay, timeout time.Duration) *CountyEnricher {
	return &CountyEnricher{
		client:  client,
		pacer:   NewPacer(delay),
		timeout: timeout,
	}
}

// EnrichCounty attempts one county lookup for the record. Every failure
// mode — cancelled wait, timeout, network error, no match, empty county —
// collapses to an unresolved outcome; nothing propagates as an error.
func (e *CountyEnricher) EnrichCounty(ctx context.Context, rec Record) Outcome {
	addr := geocode.AddressInput{
		Street:  strings.TrimSpace(rec.Street),
		City:    strings.TrimSpace(rec.City),
		State:   strings.TrimSpace(rec.State),
		ZipCode: strings.TrimSpace(rec.Zip),
	}
	if addr.Street == "" && addr.City == "" && addr.State == "" && addr.ZipCode == "" {
		return Unresolve("no address components")
	}

	if err := e.pacer.Wait(ctx); err != nil {
		return Unresolve("wait cancelled: " + err.Error())
	}

	lookupCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	result, err := e.client.County(lookupCtx, addr)
	if err != nil {
		zap.L().Warn("enrich: county lookup failed",
			zap.String("street", addr.Street),
			zap.String("city", addr.City),
			zap.Error(err),
		)
		return Unresolve("geocode error: " + err.Error())
	}
	if !result.Matched {
		zap.L().Debug("enrich: no county match",
			zap.String("street", addr.Street),
			zap.String("city", addr.City),
		)
		return Unresolve("no county match")
	}

	return Resolve(result.County)
}
