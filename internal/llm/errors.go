package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Transient evaluator failures. Calls failing with one of these are retried
// with exponential backoff up to the configured attempt budget.
var (
	// ErrRateLimited indicates the evaluator rejected the call due to rate limits.
	ErrRateLimited = errors.New("evaluator rate limited")
	// ErrTimeout indicates the call did not complete within the per-call timeout.
	ErrTimeout = errors.New("evaluator call timed out")
)

// AuthError indicates the evaluator rejected the configured credentials.
// Never retried.
type AuthError struct {
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("evaluator auth error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("evaluator auth error: %s", e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// UnavailableError indicates the retry budget was exhausted on transient
// failures. Fatal to the calling operation.
type UnavailableError struct {
	Attempts int
	Cause    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("evaluator unavailable after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// classifyError maps provider errors into the evaluator error taxonomy.
// Transient errors come back as ErrRateLimited or ErrTimeout (possibly
// wrapped); credential rejections become *AuthError; anything else passes
// through unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthError{Message: "credentials rejected", Cause: err}
		case http.StatusRequestTimeout, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
	}

	return err
}

// isTransient reports whether err is in the retryable class.
func isTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTimeout)
}
