// Package backoff pkg/backoff/backoff.go provides the retry pacing policy
// used by the sync engine's stream reconnect path.
package backoff

import "time"

const (
	defaultInitial     = 1 * time.Second
	defaultMax         = 30 * time.Second
	defaultMultiplier  = 2.0
	defaultMaxAttempts = 3
)

// Policy computes retry delays. It is pure: no clock, no side effects.
type Policy struct {
	Initial     time.Duration `json:"initial"`
	Max         time.Duration `json:"max"`
	Multiplier  float64       `json:"multiplier"`
	MaxAttempts int           `json:"max_attempts"`
}

// DefaultPolicy returns the stock policy: 1s initial, 30s ceiling,
// doubling per attempt, three attempts before giving up.
func DefaultPolicy() Policy {
	return Policy{
		Initial:     defaultInitial,
		Max:         defaultMax,
		Multiplier:  defaultMultiplier,
		MaxAttempts: defaultMaxAttempts,
	}
}

// NextDelay returns the delay before the given attempt (0-based).
// The delay grows exponentially from Initial and is capped at Max.
// Negative attempts are treated as attempt 0.
func (p Policy) NextDelay(attempt int) time.Duration {
	initial := p.Initial
	if initial <= 0 {
		initial = defaultInitial
	}

	maxDelay := p.Max
	if maxDelay <= 0 {
		maxDelay = defaultMax
	}

	mult := p.Multiplier
	if mult < 1 {
		mult = defaultMultiplier
	}

	if attempt < 0 {
		attempt = 0
	}

	delay := float64(initial)
	for i := 0; i < attempt; i++ {
		delay *= mult
		if delay >= float64(maxDelay) {
			return maxDelay
		}
	}

	if delay > float64(maxDelay) {
		return maxDelay
	}

	return time.Duration(delay)
}

// ShouldRetry reports whether another attempt is allowed. Attempts are
// 0-based, so a policy with MaxAttempts == 3 permits attempts 0, 1 and 2.
func (p Policy) ShouldRetry(attempt int) bool {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	return attempt < maxAttempts
}
