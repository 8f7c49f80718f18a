package analysis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// summaryMaxChars caps the executive summary; responses beyond it are cut at
// a rune boundary.
const summaryMaxChars = 600

// fallbackSummary is the deterministic template used when synthesis fails.
const fallbackSummary = "This resume shows a %.1f%% fit for the target role based on our analysis."

// synthesizeSummary asks the evaluator for a short executive summary built
// from the already-computed findings. Failure here is non-fatal; callers fall
// back to a templated summary.
func synthesizeSummary(ctx context.Context, client llm.Client, overall float64, dims []types.DimensionResult, skills types.SkillSet) (string, types.TokenUsage, error) {
	var findings strings.Builder
	for _, dim := range dims {
		fmt.Fprintf(&findings, "- %s: %.0f/100\n", dim.Name, dim.Score)
	}

	var highGaps []string
	for _, gap := range skills.Gaps {
		if gap.Importance == types.ImportanceHigh {
			highGaps = append(highGaps, gap.Skill)
		}
	}
	highGapText := "none"
	if len(highGaps) > 0 {
		highGapText = strings.Join(highGaps, ", ")
	}

	systemPrompt := prompts.Format(prompts.MustGet("summary.json", "executive-summary-system"), map[string]string{
		"MaxChars": strconv.Itoa(summaryMaxChars),
	})
	userPrompt := prompts.Format(prompts.MustGet("summary.json", "executive-summary-user"), map[string]string{
		"OverallScore":      fmt.Sprintf("%.1f", overall),
		"OverlapCount":      strconv.Itoa(len(skills.Overlapping)),
		"GapCount":          strconv.Itoa(len(skills.Gaps)),
		"HighPriorityGaps":  highGapText,
		"DimensionFindings": findings.String(),
	})

	resp, err := client.Evaluate(ctx, llm.EvalRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
	})
	if err != nil {
		return "", types.TokenUsage{}, fmt.Errorf("synthesizing summary: %w", err)
	}

	summary := strings.TrimSpace(resp.Text)
	if summary == "" {
		return "", resp.Usage, fmt.Errorf("synthesizing summary: empty response")
	}
	return truncateSummary(summary, summaryMaxChars), resp.Usage, nil
}

// truncateSummary cuts at the last word boundary within the limit.
func truncateSummary(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	cut := string(runes[:limit])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
