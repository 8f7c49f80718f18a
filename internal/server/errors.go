// Package server provides the HTTP REST API for the resume analyzer.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/rewrite"
	"github.com/jonathan/resume-analyzer/internal/scoring"
)

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts a validator failure on a request body into the
// typed request error, naming the first failing field.
func validationError(err error) *ErrValidation {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ErrValidation{Field: fieldErrs[0].Field(), Message: "is required and must be non-empty"}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var authErr *llm.AuthError
	var unavailableErr *llm.UnavailableError
	var analysisErr *scoring.AnalysisError

	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, analysis.ErrEmptyInput),
		errors.Is(err, rewrite.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, llm.ErrRateLimited), errors.As(err, &unavailableErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &authErr):
		return http.StatusBadGateway
	case errors.As(err, &analysisErr), errors.Is(err, rewrite.ErrEmptyRewrite):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
