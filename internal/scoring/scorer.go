package scoring

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Scorer evaluates all dimensions for one resume/job pair. Dimensions are
// independent and dispatched concurrently; the evaluator client enforces the
// in-flight cap, so the scorer issues all calls at once.
type Scorer struct {
	client llm.Client
	specs  []DimensionSpec
	logger *zap.Logger
}

// NewScorer constructs a Scorer, validating the dimension set once.
func NewScorer(client llm.Client, specs []DimensionSpec, logger *zap.Logger) (*Scorer, error) {
	if client == nil {
		return nil, fmt.Errorf("evaluator client is required")
	}
	if specs == nil {
		specs = DefaultDimensions()
	}
	if err := ValidateDimensions(specs); err != nil {
		return nil, fmt.Errorf("invalid dimension set: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{client: client, specs: specs, logger: logger}, nil
}

// Specs returns the canonical dimension set in declaration order.
func (s *Scorer) Specs() []DimensionSpec {
	return s.specs
}

// ScoreAll evaluates every dimension and collects results back into
// declaration order regardless of completion order. In-flight calls run to
// completion even when a sibling fails; the return is either the full ordered
// result set or one *AnalysisError enumerating every failed dimension.
func (s *Scorer) ScoreAll(ctx context.Context, resumeText, jobText string) ([]types.DimensionResult, types.TokenUsage, error) {
	results := make([]*types.DimensionResult, len(s.specs))
	errs := make([]error, len(s.specs))
	usages := make([]types.TokenUsage, len(s.specs))

	var wg sync.WaitGroup
	for i, spec := range s.specs {
		wg.Add(1)
		go func(idx int, dimension string) {
			defer wg.Done()
			result, usage, err := s.scoreOne(ctx, dimension, resumeText, jobText)
			results[idx] = result
			errs[idx] = err
			usages[idx] = usage
		}(i, spec.Name)
	}
	wg.Wait()

	var total types.TokenUsage
	for _, usage := range usages {
		total = total.Add(usage)
	}

	var failures []Failure
	for i, err := range errs {
		if err != nil {
			failures = append(failures, Failure{Component: s.specs[i].Name, Err: err})
		}
	}
	if len(failures) > 0 {
		return nil, total, &AnalysisError{Failures: failures}
	}

	ordered := make([]types.DimensionResult, len(results))
	for i, result := range results {
		ordered[i] = *result
	}
	return ordered, total, nil
}

// scoreOne runs a single dimension evaluation.
func (s *Scorer) scoreOne(ctx context.Context, dimension, resumeText, jobText string) (*types.DimensionResult, types.TokenUsage, error) {
	systemPrompt := prompts.Format(prompts.MustGet("scoring.json", "evaluate-dimension-system"), map[string]string{
		"Dimension": dimension,
	})
	userPrompt := prompts.Format(prompts.MustGet("scoring.json", "evaluate-dimension-user"), map[string]string{
		"Dimension":  dimension,
		"ResumeText": resumeText,
		"JobText":    jobText,
	})

	resp, err := s.client.Evaluate(ctx, llm.EvalRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
	})
	if err != nil {
		return nil, types.TokenUsage{}, fmt.Errorf("evaluating dimension %q: %w", dimension, err)
	}

	result, err := parseDimensionResponse(dimension, resp.Text)
	if err != nil {
		return nil, resp.Usage, err
	}

	s.logger.Debug("dimension evaluated",
		zap.String("dimension", dimension),
		zap.Float64("score", result.Score))

	return result, resp.Usage, nil
}
