package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultThreshold is the score below which a dimension contributes a
// recommendation.
const DefaultThreshold = 70.0

// Priority bands by distance below threshold.
const (
	highPriorityDeficit   = 20.0
	mediumPriorityDeficit = 10.0
)

// generalRecommendations is returned when every dimension clears the
// threshold.
var generalRecommendations = []string{
	"Your resume is strong overall. Continue to tailor it specifically to each job application.",
	"Consider adding more quantifiable achievements and metrics.",
	"Keep your resume updated with your latest skills and accomplishments.",
}

// Aggregate is a pure function over the scorer and matcher outputs. The
// overall score is the weighted sum of dimension scores rounded to one
// decimal; weights were validated at initialization so no renormalization
// happens here. Recommendations are drawn from every dimension strictly below
// threshold, sorted ascending by score with ties broken by declaration order.
func Aggregate(specs []DimensionSpec, results []types.DimensionResult, skills types.SkillSet, threshold float64) (float64, []types.Recommendation) {
	weights := make(map[string]float64, len(specs))
	order := make(map[string]int, len(specs))
	for i, spec := range specs {
		weights[spec.Name] = spec.Weight
		order[spec.Name] = i
	}

	sum := 0.0
	for _, result := range results {
		sum += result.Score * weights[result.Name]
	}
	overall := math.Round(sum*10) / 10

	type weak struct {
		result types.DimensionResult
		index  int
	}
	var weakDims []weak
	for _, result := range results {
		if result.Score < threshold {
			weakDims = append(weakDims, weak{result: result, index: order[result.Name]})
		}
	}
	sort.Slice(weakDims, func(i, j int) bool {
		if weakDims[i].result.Score != weakDims[j].result.Score {
			return weakDims[i].result.Score < weakDims[j].result.Score
		}
		return weakDims[i].index < weakDims[j].index
	})

	if len(weakDims) == 0 {
		recommendations := make([]types.Recommendation, 0, len(generalRecommendations))
		for _, text := range generalRecommendations {
			recommendations = append(recommendations, types.Recommendation{Text: text, Priority: types.ImportanceLow})
		}
		return overall, recommendations
	}

	recommendations := make([]types.Recommendation, 0, len(weakDims))
	for _, w := range weakDims {
		recommendations = append(recommendations, types.Recommendation{
			Text:     recommendationText(w.result),
			Priority: recommendationPriority(w.result, skills, threshold),
		})
	}
	return overall, recommendations
}

// recommendationText formats one recommendation from a weak dimension,
// preferring the dimension's own first suggestion.
func recommendationText(result types.DimensionResult) string {
	detail := result.Rationale
	if len(result.Recommendations) > 0 {
		detail = result.Recommendations[0]
	}
	return fmt.Sprintf("**%s** (Score: %.0f): %s", result.Name, result.Score, detail)
}

// recommendationPriority derives priority from how far below threshold the
// dimension scored, bumped one level when a HIGH-importance skill gap touches
// the dimension's findings.
func recommendationPriority(result types.DimensionResult, skills types.SkillSet, threshold float64) types.Importance {
	deficit := threshold - result.Score

	priority := types.ImportanceLow
	switch {
	case deficit >= highPriorityDeficit:
		priority = types.ImportanceHigh
	case deficit >= mediumPriorityDeficit:
		priority = types.ImportanceMedium
	}

	if priority != types.ImportanceHigh && highGapTouches(result, skills) {
		priority = bump(priority)
	}
	return priority
}

// highGapTouches reports whether any HIGH-importance gap skill appears in the
// dimension's rationale or recommendations.
func highGapTouches(result types.DimensionResult, skills types.SkillSet) bool {
	var haystack strings.Builder
	haystack.WriteString(strings.ToLower(result.Rationale))
	for _, rec := range result.Recommendations {
		haystack.WriteString(" ")
		haystack.WriteString(strings.ToLower(rec))
	}
	text := haystack.String()

	for _, gap := range skills.Gaps {
		if gap.Importance != types.ImportanceHigh {
			continue
		}
		skill := strings.ToLower(strings.TrimSpace(gap.Skill))
		if skill != "" && strings.Contains(text, skill) {
			return true
		}
	}
	return false
}

func bump(p types.Importance) types.Importance {
	switch p {
	case types.ImportanceLow:
		return types.ImportanceMedium
	case types.ImportanceMedium:
		return types.ImportanceHigh
	default:
		return p
	}
}
