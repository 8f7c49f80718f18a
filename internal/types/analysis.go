// Package types defines the shared data model for resume analysis results.
package types

import "strings"

// Importance represents the priority level of a skill gap or recommendation.
type Importance string

// Importance levels, ordered from most to least urgent.
const (
	ImportanceHigh   Importance = "HIGH"
	ImportanceMedium Importance = "MEDIUM"
	ImportanceLow    Importance = "LOW"
)

// ParseImportance maps a free-form label into the closed importance set.
// Unknown labels map to ImportanceLow; the second return reports whether the
// label was recognized so callers can log a warning.
func ParseImportance(label string) (Importance, bool) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "HIGH":
		return ImportanceHigh, true
	case "MEDIUM", "MED":
		return ImportanceMedium, true
	case "LOW":
		return ImportanceLow, true
	default:
		return ImportanceLow, false
	}
}

// SkillGap is a capability required by the job description but missing or weak
// in the resume.
type SkillGap struct {
	Skill      string     `json:"skill"`
	Importance Importance `json:"importance"`
	Suggestion string     `json:"suggestion,omitempty"`
}

// SkillSet holds the overlap/gap breakdown between a resume and a job description.
type SkillSet struct {
	// Overlapping preserves first-seen casing and insertion order; skills are
	// deduplicated case-insensitively.
	Overlapping []string   `json:"overlapping_skills"`
	Gaps        []SkillGap `json:"skill_gaps"`
}

// DimensionResult is the evaluation outcome for a single scoring dimension.
// Immutable once created.
type DimensionResult struct {
	Name            string   `json:"name"`
	Score           float64  `json:"score"` // 0-100
	Rationale       string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}

// Recommendation is a prioritized improvement suggestion derived from a
// below-threshold dimension.
type Recommendation struct {
	Text     string     `json:"text"`
	Priority Importance `json:"priority"`
}

// TokenUsage accumulates evaluator token accounting across calls.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Add returns the element-wise sum of two usages.
func (u TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CompletionTokens: u.CompletionTokens + other.CompletionTokens,
	}
}

// AnalysisResult is the complete outcome of one resume analysis. It is
// constructed once per request and never mutated afterwards; the caller that
// requested the analysis owns it exclusively.
type AnalysisResult struct {
	OverallScore     float64           `json:"overall_score"` // weighted, rounded to 1 decimal
	DimensionResults []DimensionResult `json:"dimensions"`    // canonical declaration order
	Skills           SkillSet          `json:"skills"`
	ExecutiveSummary string            `json:"executive_summary"`
	Recommendations  []Recommendation  `json:"overall_recommendations"`
	// Warnings reports non-fatal degradations (e.g. summary fallback).
	Warnings []string   `json:"warnings,omitempty"`
	Usage    TokenUsage `json:"token_usage"`
}
