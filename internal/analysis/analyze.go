// Package analysis orchestrates the full resume analysis pipeline: concurrent
// dimension scoring and skill matching, pure aggregation, and executive
// summary synthesis.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// skillMatcherComponent names the matcher in aggregated failure reports.
const skillMatcherComponent = "skill matcher"

// ErrEmptyInput is returned when the resume or job description is blank.
var ErrEmptyInput = errors.New("resume and job description must both be non-empty")

// Analyzer wires the scorer and matcher behind one entry point.
type Analyzer struct {
	client    llm.Client
	scorer    *scoring.Scorer
	matcher   *skills.Matcher
	threshold float64
	logger    *zap.Logger
}

// New constructs an Analyzer. A nil specs slice selects the canonical
// dimension set; threshold <= 0 selects the default recommendation threshold.
func New(client llm.Client, specs []scoring.DimensionSpec, threshold float64, logger *zap.Logger) (*Analyzer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	scorer, err := scoring.NewScorer(client, specs, logger)
	if err != nil {
		return nil, err
	}
	matcher, err := skills.NewMatcher(client, logger)
	if err != nil {
		return nil, err
	}
	if threshold <= 0 {
		threshold = scoring.DefaultThreshold
	}
	return &Analyzer{
		client:    client,
		scorer:    scorer,
		matcher:   matcher,
		threshold: threshold,
		logger:    logger,
	}, nil
}

// Analyze runs the full pipeline for one resume/job pair. Scoring and skill
// matching run concurrently; if any sub-call fails, the combined
// *scoring.AnalysisError names every failed component and no partial result
// is returned. Summary synthesis failure alone is non-fatal and degrades to a
// templated summary with a warning attached.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobText string) (*types.AnalysisResult, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return nil, ErrEmptyInput
	}

	var (
		dims       []types.DimensionResult
		scoreUsage types.TokenUsage
		scoreErr   error

		skillSet   types.SkillSet
		matchUsage types.TokenUsage
		matchErr   error
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		skillSet, matchUsage, matchErr = a.matcher.Match(ctx, resumeText, jobText)
	}()
	dims, scoreUsage, scoreErr = a.scorer.ScoreAll(ctx, resumeText, jobText)
	<-done

	usage := scoreUsage.Add(matchUsage)

	if err := combineFailures(scoreErr, matchErr); err != nil {
		return nil, err
	}

	overall, recommendations := scoring.Aggregate(a.scorer.Specs(), dims, skillSet, a.threshold)

	var warnings []string
	summary, summaryUsage, err := synthesizeSummary(ctx, a.client, overall, dims, skillSet)
	usage = usage.Add(summaryUsage)
	if err != nil {
		a.logger.Warn("summary synthesis failed, using fallback", zap.Error(err))
		summary = fmt.Sprintf(fallbackSummary, overall)
		warnings = append(warnings, "executive summary could not be generated; a basic summary was substituted")
	}

	a.logger.Info("analysis complete",
		zap.Float64("overall_score", overall),
		zap.Int("dimensions", len(dims)),
		zap.Int("overlapping_skills", len(skillSet.Overlapping)),
		zap.Int("skill_gaps", len(skillSet.Gaps)),
		zap.Int("prompt_tokens", usage.PromptTokens),
		zap.Int("completion_tokens", usage.CompletionTokens))

	return &types.AnalysisResult{
		OverallScore:     overall,
		DimensionResults: dims,
		Skills:           skillSet,
		ExecutiveSummary: summary,
		Recommendations:  recommendations,
		Warnings:         warnings,
		Usage:            usage,
	}, nil
}

// Threshold reports the recommendation threshold in effect.
func (a *Analyzer) Threshold() float64 {
	return a.threshold
}

// combineFailures folds scorer and matcher errors into one aggregated
// *scoring.AnalysisError so every failed component is reported together.
func combineFailures(scoreErr, matchErr error) error {
	var failures []scoring.Failure

	if scoreErr != nil {
		var analysisErr *scoring.AnalysisError
		if errors.As(scoreErr, &analysisErr) {
			failures = append(failures, analysisErr.Failures...)
		} else {
			failures = append(failures, scoring.Failure{Component: "dimension scorer", Err: scoreErr})
		}
	}
	if matchErr != nil {
		failures = append(failures, scoring.Failure{Component: skillMatcherComponent, Err: matchErr})
	}

	if len(failures) == 0 {
		return nil
	}
	return &scoring.AnalysisError{Failures: failures}
}
