package skills

import (
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// dedupeSkills removes case-insensitive duplicates, keeping the first-seen
// casing and insertion order.
func dedupeSkills(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, skill := range raw {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, skill)
	}
	return out
}

// normalizeGaps converts raw gap entries into typed gaps, folding unknown
// importance labels to LOW with a warning. Gaps are deduplicated against both
// other gaps and the overlap list: a skill cannot be both matched and missing.
func normalizeGaps(raw []gapResponse, overlapping []string, logger *zap.Logger) []types.SkillGap {
	seen := make(map[string]bool, len(raw)+len(overlapping))
	for _, skill := range overlapping {
		seen[strings.ToLower(strings.TrimSpace(skill))] = true
	}

	out := make([]types.SkillGap, 0, len(raw))
	for _, gap := range raw {
		skill := strings.TrimSpace(gap.Skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true

		importance, known := types.ParseImportance(gap.Importance)
		if !known {
			logger.Warn("unknown gap importance label, defaulting to low",
				zap.String("skill", skill),
				zap.String("label", gap.Importance))
		}

		out = append(out, types.SkillGap{
			Skill:      skill,
			Importance: importance,
			Suggestion: strings.TrimSpace(gap.Suggestion),
		})
	}
	return out
}
