package llm

import (
	"context"
	"time"
)

// sleepFunc waits for d or until ctx is cancelled. Injected for tests.
type sleepFunc func(ctx context.Context, d time.Duration) error

// sleepWithContext is the production sleeper.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// runWithRetry executes op, retrying transient failures per policy.
// Cancellation is cooperative: ctx is checked between attempts, so an
// abandoned request schedules no further retries. Exhausting the attempt
// budget on transient errors converts to *UnavailableError; auth and other
// non-transient errors return immediately.
func runWithRetry(ctx context.Context, policy RetryPolicy, sleep sleepFunc, op func(context.Context) (*EvalResponse, error)) (*EvalResponse, error) {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if attempt > 0 {
			if err := sleep(ctx, policy.delay(attempt-1)); err != nil {
				return nil, err
			}
		}

		resp, err := op(ctx)
		if err == nil {
			return resp, nil
		}
		if !isTransient(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, &UnavailableError{Attempts: attempts, Cause: lastErr}
}
