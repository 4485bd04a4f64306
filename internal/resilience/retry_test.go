package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		Attempts:       attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}
}

func TestRetry_SucceedsFirstTry(t *testing.T) {
	calls := 0
	got, err := Retry(context.Background(), fastRetry(3), func(_ context.Context) (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}

func TestRetry_RetriesTransient(t *testing.T) {
	calls := 0
	got, err := Retry(context.Background(), fastRetry(3), func(_ context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", NewTransientError(eris.New("busy"), 503)
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastRetry(3), func(_ context.Context) (int, error) {
		calls++
		return 0, NewTransientError(eris.New("busy"), 503)
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastRetry(3), func(_ context.Context) (int, error) {
		calls++
		return 0, eris.New("bad request")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "non-transient errors are not retried")
}

func TestRetry_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := Retry(ctx, fastRetry(5), func(_ context.Context) (int, error) {
		calls++
		cancel()
		return 0, NewTransientError(eris.New("busy"), 503)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryConfig_Defaults(t *testing.T) {
	cfg := RetryConfig{}.withDefaults()
	assert.Equal(t, 3, cfg.Attempts)
	assert.Equal(t, 500*time.Millisecond, cfg.InitialBackoff)
	assert.Equal(t, 2.0, cfg.Multiplier)
}

func TestBackoff_CapsAtMax(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: time.Second,
		MaxBackoff:     2 * time.Second,
		Multiplier:     10,
		Jitter:         0,
	}.withDefaults()
	cfg.Jitter = 0

	assert.LessOrEqual(t, backoff(5, cfg), 2*time.Second)
}
