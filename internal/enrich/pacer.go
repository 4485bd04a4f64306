package enrich

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Pacer enforces a minimum spacing between outbound calls to one external
// collaborator. Each enricher owns its own Pacer; limiters for different
// collaborators never share clock state.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer with the given minimum delay between calls. A
// non-positive delay disables pacing. The first Wait never blocks.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until at least the configured delay has passed since the
// previous Wait returned, or the context is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "enrich: pacer wait")
	}
	return nil
}
