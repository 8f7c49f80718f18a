package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// routingClient dispatches canned responses by inspecting the user prompt:
// summary and skill prompts have fixed trailing instructions, everything else
// is a dimension evaluation.
type routingClient struct {
	mu          sync.Mutex
	dimensionFn func(prompt string) (string, error)
	skillsText  string
	skillsErr   error
	summaryText string
	summaryErr  error
}

func (c *routingClient) Evaluate(_ context.Context, req llm.EvalRequest) (*llm.EvalResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	usage := types.TokenUsage{PromptTokens: 10, CompletionTokens: 5}
	switch {
	case strings.Contains(req.UserPrompt, "Write an executive summary"):
		if c.summaryErr != nil {
			return nil, c.summaryErr
		}
		return &llm.EvalResponse{Text: c.summaryText, Usage: usage}, nil
	case strings.Contains(req.UserPrompt, "overlapping skills and all skill gaps"):
		if c.skillsErr != nil {
			return nil, c.skillsErr
		}
		return &llm.EvalResponse{Text: c.skillsText, Usage: usage}, nil
	default:
		text, err := c.dimensionFn(req.UserPrompt)
		if err != nil {
			return nil, err
		}
		return &llm.EvalResponse{Text: text, Usage: usage}, nil
	}
}

func (c *routingClient) Close() error { return nil }

func uniformDimensions(score float64) func(string) (string, error) {
	return func(string) (string, error) {
		return fmt.Sprintf(`{"score": %v, "analysis": "steady", "recommendations": ["keep going"]}`, score), nil
	}
}

const happySkills = `{"overlapping_skills": ["Go", "SQL"], "gaps": [{"skill": "Kubernetes", "importance": "high", "suggestion": "Call out any orchestration work."}]}`

func TestAnalyze_HappyPath(t *testing.T) {
	client := &routingClient{
		dimensionFn: uniformDimensions(80),
		skillsText:  happySkills,
		summaryText: "A strong candidate overall with a gap around Kubernetes.",
	}

	analyzer, err := New(client, nil, 0, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, scoring.DefaultThreshold, analyzer.Threshold())

	result, err := analyzer.Analyze(context.Background(), "resume text", "job text")
	require.NoError(t, err)

	assert.Equal(t, 80.0, result.OverallScore)
	assert.Len(t, result.DimensionResults, 9)
	assert.Equal(t, []string{"Go", "SQL"}, result.Skills.Overlapping)
	assert.Equal(t, "A strong candidate overall with a gap around Kubernetes.", result.ExecutiveSummary)
	assert.Empty(t, result.Warnings)

	// 9 dimensions + skills + summary, each 10/5 tokens.
	assert.Equal(t, types.TokenUsage{PromptTokens: 110, CompletionTokens: 55}, result.Usage)
}

func TestAnalyze_EmptyInputRejected(t *testing.T) {
	analyzer, err := New(&routingClient{dimensionFn: uniformDimensions(80)}, nil, 0, zap.NewNop())
	require.NoError(t, err)

	_, err = analyzer.Analyze(context.Background(), "  ", "job text")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = analyzer.Analyze(context.Background(), "resume text", "")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestAnalyze_SummaryFailureIsNonFatal(t *testing.T) {
	client := &routingClient{
		dimensionFn: uniformDimensions(76),
		skillsText:  happySkills,
		summaryErr:  llm.ErrRateLimited,
	}

	analyzer, err := New(client, nil, 0, zap.NewNop())
	require.NoError(t, err)

	result, err := analyzer.Analyze(context.Background(), "resume", "job")
	require.NoError(t, err)

	assert.Equal(t, "This resume shows a 76.0% fit for the target role based on our analysis.", result.ExecutiveSummary)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "basic summary")
}

func TestAnalyze_CombinedFailuresNameEveryComponent(t *testing.T) {
	client := &routingClient{
		dimensionFn: func(prompt string) (string, error) {
			if strings.Contains(prompt, "ATS Compatibility") {
				return "not json", nil
			}
			return uniformDimensions(80)(prompt)
		},
		skillsErr: &llm.UnavailableError{Attempts: 3},
	}

	analyzer, err := New(client, nil, 0, zap.NewNop())
	require.NoError(t, err)

	result, err := analyzer.Analyze(context.Background(), "resume", "job")
	assert.Nil(t, result)

	var analysisErr *scoring.AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, []string{"ATS Compatibility", "skill matcher"}, analysisErr.FailedComponents())
}

func TestAnalyze_CustomThresholdControlsRecommendations(t *testing.T) {
	client := &routingClient{
		dimensionFn: uniformDimensions(75),
		skillsText:  happySkills,
		summaryText: "Fine.",
	}

	analyzer, err := New(client, nil, 80, zap.NewNop())
	require.NoError(t, err)

	result, err := analyzer.Analyze(context.Background(), "resume", "job")
	require.NoError(t, err)

	// Every dimension sits below the raised threshold, so every one
	// contributes a recommendation.
	assert.Len(t, result.Recommendations, 9)
	for _, rec := range result.Recommendations {
		assert.Contains(t, rec.Text, "(Score: 75)")
	}
}

func TestTruncateSummary(t *testing.T) {
	long := strings.Repeat("word ", 200)
	got := truncateSummary(long, 100)
	assert.LessOrEqual(t, len([]rune(got)), 100)
	assert.False(t, strings.HasSuffix(got, " "))

	short := "already short"
	assert.Equal(t, short, truncateSummary(short, 100))
}
