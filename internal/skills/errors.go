package skills

import "fmt"

// ParseError means the matcher response could not be interpreted as a skill
// breakdown, even after the relaxed line-oriented fallback.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("skill matcher parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("skill matcher parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
