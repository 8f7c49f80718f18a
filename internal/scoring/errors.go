package scoring

import (
	"fmt"
	"strings"
)

// ParseError represents a dimension response that could not be parsed into a
// typed result. A response missing a parseable score is never defaulted; it
// fails with the offending dimension named.
type ParseError struct {
	Dimension string
	Message   string
	Cause     error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error for dimension %q: %s: %v", e.Dimension, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error for dimension %q: %s", e.Dimension, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Failure records one failed sub-call of the analysis.
type Failure struct {
	Component string // dimension name or "skill matcher"
	Err       error
}

// AnalysisError is the single aggregated failure raised when one or more
// sub-calls fail. It enumerates every failure, not just the first; no partial
// result accompanies it.
type AnalysisError struct {
	Failures []Failure
}

func (e *AnalysisError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("analysis failed (%d sub-calls):", len(e.Failures)))
	for _, f := range e.Failures {
		sb.WriteString(fmt.Sprintf(" [%s] %v;", f.Component, f.Err))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// FailedComponents returns the names of all failed sub-calls in order.
func (e *AnalysisError) FailedComponents() []string {
	names := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		names = append(names, f.Component)
	}
	return names
}
