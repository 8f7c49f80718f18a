// Package llm provides the evaluator client used to score resumes against job
// descriptions. It wraps the Gemini API with retry, timeout, token-budget and
// bounded-concurrency policy.
package llm

import "time"

const (
	defaultModel     = "gemini-2.5-flash"
	defaultMaxTokens = 4000
)

// RetryPolicy controls how transient evaluator failures are retried.
type RetryPolicy struct {
	MaxAttempts int           // total attempts, including the first
	BaseDelay   time.Duration // delay before the first retry
	Multiplier  float64       // backoff multiplier per retry
}

// DefaultRetryPolicy returns the retry policy used when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		Multiplier:  2.0,
	}
}

// delay returns the backoff delay before retry number n (0-based).
func (p RetryPolicy) delay(n int) time.Duration {
	d := float64(p.BaseDelay)
	for i := 0; i < n; i++ {
		d *= p.Multiplier
	}
	return time.Duration(d)
}

// Config holds the evaluator client configuration. The client holds no other
// cross-call state, so a single configured instance is safe to share across
// concurrent callers.
type Config struct {
	Model       string        // Gemini model name
	Temperature float32       // default sampling temperature
	MaxTokens   int           // default completion token cap
	CallTimeout time.Duration // per-attempt timeout
	Retry       RetryPolicy

	// TokenBudget caps the estimated input tokens per call. Inputs beyond the
	// budget are truncated deterministically before dispatch. Zero disables
	// the budget.
	TokenBudget int

	// MaxInFlight bounds the number of simultaneous evaluator calls.
	MaxInFlight int

	// RequestsPerSecond paces call dispatch to respect provider rate limits.
	// Zero disables pacing.
	RequestsPerSecond float64
}

// DefaultConfig returns the default evaluator configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:       defaultModel,
		Temperature: 0.0,
		MaxTokens:   defaultMaxTokens,
		CallTimeout: 60 * time.Second,
		Retry:       DefaultRetryPolicy(),
		TokenBudget: 12000,
		MaxInFlight: 4,
	}
}
