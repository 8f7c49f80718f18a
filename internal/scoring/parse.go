package scoring

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// dimensionResponse is the JSON shape the evaluator is instructed to return.
type dimensionResponse struct {
	Score           float64  `json:"score"`
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}

// parseDimensionResponse converts raw evaluator output into a typed
// DimensionResult. The response is schema-validated first so a missing score
// surfaces as *ParseError naming the dimension rather than a zero default.
// Out-of-range scores are clamped to [0, 100] (model noise, not a hard
// failure).
func parseDimensionResponse(dimension, raw string) (*types.DimensionResult, error) {
	cleaned := llm.CleanJSONBlock(raw)

	if err := schemas.Validate(schemas.DimensionResult, cleaned); err != nil {
		return nil, &ParseError{
			Dimension: dimension,
			Message:   "response does not match expected structure",
			Cause:     err,
		}
	}

	var resp dimensionResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, &ParseError{
			Dimension: dimension,
			Message:   "failed to decode JSON response",
			Cause:     err,
		}
	}

	score := resp.Score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	recommendations := make([]string, 0, len(resp.Recommendations))
	for _, rec := range resp.Recommendations {
		if trimmed := strings.TrimSpace(rec); trimmed != "" {
			recommendations = append(recommendations, trimmed)
		}
	}

	return &types.DimensionResult{
		Name:            dimension,
		Score:           score,
		Rationale:       strings.TrimSpace(resp.Analysis),
		Recommendations: recommendations,
	}, nil
}
