// Package resilience provides retry with exponential backoff for the
// external lookup clients.
package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// RetryConfig controls backoff behavior. Zero values take the defaults.
type RetryConfig struct {
	// Attempts is the total number of tries including the first.
	// 1 means no retries. Default: 3.
	Attempts int

	// InitialBackoff is the delay before the first retry. Default: 500ms.
	InitialBackoff time.Duration

	// MaxBackoff caps the delay between retries. Default: 10s.
	MaxBackoff time.Duration

	// Multiplier scales the delay after each attempt. Default: 2.0.
	Multiplier float64

	// Jitter adds random spread as a fraction of the computed delay.
	// Zero disables jitter; DefaultRetryConfig uses 0.25.
	Jitter float64
}

// DefaultRetryConfig returns the retry settings used for geocoder calls.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Attempts:       3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		Multiplier:     2.0,
		Jitter:         0.25,
	}
}

func (c RetryConfig) withDefaults() RetryConfig {
	d := DefaultRetryConfig()
	if c.Attempts <= 0 {
		c.Attempts = d.Attempts
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = d.InitialBackoff
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = d.MaxBackoff
	}
	if c.Multiplier <= 1 {
		c.Multiplier = d.Multiplier
	}
	if c.Jitter < 0 {
		c.Jitter = 0
	}
	return c
}

// Retry executes fn until it succeeds, returns a non-transient error, the
// attempts are exhausted, or the context is canceled. Only errors that pass
// IsTransient are retried.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	cfg = cfg.withDefaults()

	var zero T
	var lastErr error
	for attempt := 0; attempt < cfg.Attempts; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, lastErr
		}
		if !IsTransient(lastErr) {
			return zero, lastErr
		}
		if attempt >= cfg.Attempts-1 {
			break
		}

		delay := backoff(attempt, cfg)
		zap.L().Debug("retrying after transient error",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(lastErr),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}

	return zero, lastErr
}

func backoff(attempt int, cfg RetryConfig) time.Duration {
	delay := float64(cfg.InitialBackoff) * math.Pow(cfg.Multiplier, float64(attempt))
	if delay > float64(cfg.MaxBackoff) {
		delay = float64(cfg.MaxBackoff)
	}
	if cfg.Jitter > 0 {
		delay += delay * cfg.Jitter * (2*rand.Float64() - 1)
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}
