package enrich

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// OwnerEnricher resolves a record's missing title owner by dispatching to
// the lookup strategy registered for the record's county.
type OwnerEnricher struct {
	registry *Registry
	pacer    *Pacer
	timeout  time.Duration
}

// NewOwnerEnricher creates an OwnerEnricher with its own pacer, independent
// of the geocoding pacer.
func NewOwnerEnricher(registry *Registry, delay, timeout time.Duration) *OwnerEnricher {
	return &OwnerEnricher{
		registry: registry,
		pacer:    NewPacer(delay),
		timeout:  timeout,
	}
}

// EnrichOwner attempts one owner lookup for the record. A county with no
// registered strategy fails fast: no pacer wait, no collaborator call. For
// registered counties any failure — timeout, no results, parse miss —
// collapses to an unresolved outcome; only a non-empty owner name resolves.
func (e *OwnerEnricher) EnrichOwner(ctx context.Context, rec Record) Outcome {
	county := strings.TrimSpace(rec.County)
	if county == "" {
		return Unresolve("county unknown")
	}

	lookup, ok := e.registry.Lookup(county)
	if !ok {
		zap.L().Debug("enrich: county not registered for owner lookup",
			zap.String("county", county),
		)
		return Unresolve("no lookup registered for county " + county)
	}

	street := strings.TrimSpace(rec.Street)
	if street == "" {
		return Unresolve("no street address")
	}

	if err := e.pacer.Wait(ctx); err != nil {
		return Unresolve("wait cancelled: " + err.Error())
	}

	lookupCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	owner, err := lookup.LookupOwner(lookupCtx, street, strings.TrimSpace(rec.City))
	if err != nil {
		zap.L().Warn("enrich: owner lookup failed",
			zap.String("county", county),
			zap.String("street", street),
			zap.Error(err),
		)
		return Unresolve("owner lookup error: " + err.Error())
	}
	if strings.TrimSpace(owner) == "" {
		return Unresolve("owner name empty")
	}

	return Resolve(strings.TrimSpace(owner))
}
