package resilience

import (
	"fmt"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "transient error", err: NewTransientError(eris.New("busy"), 503), want: true},
		{name: "wrapped transient", err: fmt.Errorf("outer: %w", NewTransientError(eris.New("busy"), 502)), want: true},
		{name: "plain error", err: eris.New("bad input"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		assert.True(t, IsTransientHTTPStatus(code), "status %d", code)
	}
	for _, code := range []int{200, 301, 400, 401, 403, 404} {
		assert.False(t, IsTransientHTTPStatus(code), "status %d", code)
	}
}

func TestTransientError_Unwrap(t *testing.T) {
	inner := eris.New("busy")
	te := NewTransientError(inner, 503)
	assert.Equal(t, "busy", te.Error())
	assert.Equal(t, 503, te.StatusCode)
	assert.ErrorIs(t, te, inner)
}
