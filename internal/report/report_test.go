package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/markup"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func sampleResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		OverallScore: 72.5,
		DimensionResults: []types.DimensionResult{
			{Name: "Relevance of Experience", Score: 82},
			{Name: "Clarity and Structure", Score: 61},
		},
		Skills: types.SkillSet{
			Overlapping: []string{"Go", "PostgreSQL"},
			Gaps: []types.SkillGap{
				{Skill: "Kubernetes", Importance: types.ImportanceHigh, Suggestion: "Mention orchestration work."},
			},
		},
		ExecutiveSummary: "A capable candidate with a clear infrastructure gap.",
		Recommendations: []types.Recommendation{
			{Text: "**Clarity and Structure** (Score: 61): Reorder the sections.", Priority: types.ImportanceMedium},
		},
	}
}

func TestScoreColor(t *testing.T) {
	assert.Equal(t, "#22c55e", ScoreColor(80))
	assert.Equal(t, "#22c55e", ScoreColor(95.5))
	assert.Equal(t, "#eab308", ScoreColor(60))
	assert.Equal(t, "#eab308", ScoreColor(79.9))
	assert.Equal(t, "#ef4444", ScoreColor(59.9))
	assert.Equal(t, "#ef4444", ScoreColor(0))
}

func TestBuild_ContainsAllSections(t *testing.T) {
	text := Build(sampleResult())

	assert.Contains(t, text, "# Resume Analysis Report")
	assert.Contains(t, text, "**Overall Fit Score: 72.5/100**")
	assert.Contains(t, text, "## Executive Summary")
	assert.Contains(t, text, "A capable candidate with a clear infrastructure gap.")
	assert.Contains(t, text, "- **Relevance of Experience**: 82/100")
	assert.Contains(t, text, "Go, PostgreSQL")
	assert.Contains(t, text, "- **Kubernetes** (high): Mention orchestration work.")
	assert.Contains(t, text, "- **Clarity and Structure** (Score: 61): Reorder the sections.")
}

func TestBuild_EmptySkillsGetPlaceholders(t *testing.T) {
	result := sampleResult()
	result.Skills = types.SkillSet{}

	text := Build(result)
	assert.Contains(t, text, "No overlapping skills were identified.")
	assert.Contains(t, text, "No significant skill gaps were identified.")
}

func TestBuild_WarningsRenderedInItalics(t *testing.T) {
	result := sampleResult()
	result.Warnings = []string{"executive summary could not be generated; a basic summary was substituted"}

	text := Build(result)
	assert.Contains(t, text, "*executive summary could not be generated; a basic summary was substituted*")
}

func TestBuild_TokenizesCleanly(t *testing.T) {
	blocks := markup.Tokenize(Build(sampleResult()))
	require.NotEmpty(t, blocks)

	assert.Equal(t, markup.Heading, blocks[0].Kind)
	assert.Equal(t, 1, blocks[0].Level)
	assert.Equal(t, "Resume Analysis Report", blocks[0].PlainText())

	var headings []string
	for _, block := range blocks {
		if block.Kind == markup.Heading && block.Level == 2 {
			headings = append(headings, block.PlainText())
		}
	}
	assert.Equal(t, []string{"Executive Summary", "Dimension Scores", "Skills Analysis", "Recommendations"}, headings)
}

func TestBuildDocument_ProducesPages(t *testing.T) {
	doc := BuildDocument(sampleResult())
	require.NotEmpty(t, doc.Pages)
	assert.Equal(t, 612.0, doc.PageWidth)
	assert.Equal(t, 792.0, doc.PageHeight)

	first := doc.Pages[0]
	require.NotEmpty(t, first.Elements)
	assert.Equal(t, markup.Heading, first.Elements[0].Kind)
	assert.True(t, first.Elements[0].Style.Centered)
	assert.True(t, strings.Contains(first.Elements[0].Lines[0], "Resume Analysis Report"))
}

func TestBuildDocument_ColorsOverallScoreByBand(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{91.0, "#22c55e"},
		{72.5, "#eab308"},
		{41.0, "#ef4444"},
	}

	for _, tt := range tests {
		result := sampleResult()
		result.OverallScore = tt.score
		doc := BuildDocument(result)

		found := false
		for _, page := range doc.Pages {
			for _, el := range page.Elements {
				for _, line := range el.Lines {
					if strings.Contains(line, "Overall Fit Score") {
						assert.Equal(t, tt.want, el.Style.Color, "score %.1f", tt.score)
						found = true
					}
				}
			}
		}
		require.True(t, found, "overall score line must be present")
	}
}
