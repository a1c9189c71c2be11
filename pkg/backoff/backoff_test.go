package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDelay(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		attempt int
		want    time.Duration
	}{
		{
			name:    "first attempt uses initial delay",
			policy:  DefaultPolicy(),
			attempt: 0,
			want:    time.Second,
		},
		{
			name:    "second attempt doubles",
			policy:  DefaultPolicy(),
			attempt: 1,
			want:    2 * time.Second,
		},
		{
			name:    "growth is capped at the ceiling",
			policy:  DefaultPolicy(),
			attempt: 10,
			want:    30 * time.Second,
		},
		{
			name:    "negative attempt treated as zero",
			policy:  DefaultPolicy(),
			attempt: -5,
			want:    time.Second,
		},
		{
			name: "custom multiplier",
			policy: Policy{
				Initial:     100 * time.Millisecond,
				Max:         time.Minute,
				Multiplier:  3,
				MaxAttempts: 5,
			},
			attempt: 2,
			want:    900 * time.Millisecond,
		},
		{
			name:    "zero-value policy falls back to defaults",
			policy:  Policy{},
			attempt: 1,
			want:    2 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.NextDelay(tt.attempt))
		})
	}
}

func TestNextDelayMonotonic(t *testing.T) {
	p := DefaultPolicy()

	prev := time.Duration(0)
	for attempt := 0; attempt <= p.MaxAttempts; attempt++ {
		d := p.NextDelay(attempt)
		require.GreaterOrEqual(t, d, prev, "delay must be non-decreasing at attempt %d", attempt)
		require.LessOrEqual(t, d, p.Max, "delay must be bounded at attempt %d", attempt)
		prev = d
	}
}

func TestShouldRetry(t *testing.T) {
	p := DefaultPolicy()

	assert.True(t, p.ShouldRetry(0))
	assert.True(t, p.ShouldRetry(p.MaxAttempts-1))
	assert.False(t, p.ShouldRetry(p.MaxAttempts))
	assert.False(t, p.ShouldRetry(p.MaxAttempts+1))
}

func TestShouldRetryZeroValuePolicy(t *testing.T) {
	var p Policy

	assert.True(t, p.ShouldRetry(2))
	assert.False(t, p.ShouldRetry(3))
}
