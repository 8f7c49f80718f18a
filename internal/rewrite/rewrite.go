// Package rewrite generates an optimized rendition of a resume tailored to a
// job description. The evaluator may only reorganize, rephrase and emphasize
// content already present in the resume; it is instructed never to fabricate
// experience. The output is markup text ready for the layout engine.
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/markup"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// rewriteTemperature is higher than the scoring calls use. The output is
// prose, not a structured verdict, so some variation is wanted.
const rewriteTemperature = 0.7

// ErrEmptyInput is returned when the resume or job description is blank.
var ErrEmptyInput = errors.New("resume and job description must both be non-empty")

// ErrEmptyRewrite is returned when the evaluator produced no usable text.
var ErrEmptyRewrite = errors.New("evaluator returned an empty rewrite")

// Rewriter runs the resume optimization.
type Rewriter struct {
	client llm.Client
	logger *zap.Logger
}

// NewRewriter constructs a Rewriter.
func NewRewriter(client llm.Client, logger *zap.Logger) (*Rewriter, error) {
	if client == nil {
		return nil, fmt.Errorf("evaluator client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rewriter{client: client, logger: logger}, nil
}

// Rewrite issues one evaluator call and returns the optimized resume as
// markup text. Code fences around the response are stripped.
func (r *Rewriter) Rewrite(ctx context.Context, resumeText, jobText string) (string, types.TokenUsage, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return "", types.TokenUsage{}, ErrEmptyInput
	}

	userPrompt := prompts.Format(prompts.MustGet("rewrite.json", "optimize-resume-user"), map[string]string{
		"ResumeText": resumeText,
		"JobText":    jobText,
	})

	resp, err := r.client.Evaluate(ctx, llm.EvalRequest{
		SystemPrompt: prompts.MustGet("rewrite.json", "optimize-resume-system"),
		UserPrompt:   userPrompt,
		Temperature:  rewriteTemperature,
	})
	if err != nil {
		return "", types.TokenUsage{}, fmt.Errorf("rewriting resume: %w", err)
	}

	text := strings.TrimSpace(llm.CleanJSONBlock(resp.Text))
	if text == "" {
		return "", resp.Usage, ErrEmptyRewrite
	}

	if n := markup.CountDegraded(markup.Tokenize(text)); n > 0 {
		r.logger.Warn("rewritten resume contains markup that degrades to plain paragraphs",
			zap.Int("degraded_blocks", n))
	}

	r.logger.Debug("resume rewritten",
		zap.Int("original_chars", len(resumeText)),
		zap.Int("rewritten_chars", len(text)))

	return text, resp.Usage, nil
}
