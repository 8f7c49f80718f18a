// Package skills extracts the skill overlap and gap breakdown between a
// resume and a job description using a single evaluator call.
package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/logger"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// gapResponse is one gap entry as the evaluator returns it.
type gapResponse struct {
	Skill      string `json:"skill"`
	Importance string `json:"importance"`
	Suggestion string `json:"suggestion"`
}

// skillSetResponse is the JSON shape the evaluator is instructed to return.
type skillSetResponse struct {
	OverlappingSkills []string      `json:"overlapping_skills"`
	Gaps              []gapResponse `json:"gaps"`
}

// Matcher runs the skill overlap/gap extraction.
type Matcher struct {
	client llm.Client
	logger *zap.Logger
}

// NewMatcher constructs a Matcher.
func NewMatcher(client llm.Client, logger *zap.Logger) (*Matcher, error) {
	if client == nil {
		return nil, fmt.Errorf("evaluator client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{client: client, logger: logger}, nil
}

// Match issues one evaluator call covering both overlap and gaps, then
// normalizes the response: overlap deduplicated case-insensitively preserving
// first-seen casing and order, gaps never duplicating an overlapping skill.
func (m *Matcher) Match(ctx context.Context, resumeText, jobText string) (types.SkillSet, types.TokenUsage, error) {
	userPrompt := prompts.Format(prompts.MustGet("skills.json", "match-skills-user"), map[string]string{
		"ResumeText": resumeText,
		"JobText":    jobText,
	})

	resp, err := m.client.Evaluate(ctx, llm.EvalRequest{
		SystemPrompt: prompts.MustGet("skills.json", "match-skills-system"),
		UserPrompt:   userPrompt,
	})
	if err != nil {
		return types.SkillSet{}, types.TokenUsage{}, fmt.Errorf("matching skills: %w", err)
	}

	set, err := m.parseResponse(resp.Text)
	if err != nil {
		return types.SkillSet{}, resp.Usage, err
	}

	m.logger.Debug("skills matched",
		zap.Int("overlapping", len(set.Overlapping)),
		zap.Int("gaps", len(set.Gaps)))

	return set, resp.Usage, nil
}

// parseResponse decodes the structured response, falling back to a
// line-oriented scrape when the evaluator ignored the JSON instruction. Only
// when the fallback also finds nothing is the response fatal.
func (m *Matcher) parseResponse(raw string) (types.SkillSet, error) {
	cleaned := llm.CleanJSONBlock(raw)

	if err := schemas.Validate(schemas.SkillSet, cleaned); err == nil {
		var resp skillSetResponse
		if jsonErr := json.Unmarshal([]byte(cleaned), &resp); jsonErr == nil {
			overlapping := dedupeSkills(resp.OverlappingSkills)
			return types.SkillSet{
				Overlapping: overlapping,
				Gaps:        normalizeGaps(resp.Gaps, overlapping, m.logger),
			}, nil
		}
	}

	m.logger.Warn("skill matcher response is not valid JSON, using line-oriented fallback",
		zap.String("response", logger.TruncateForLog(raw, 200)))

	set, ok := fallbackParse(raw)
	if !ok {
		return types.SkillSet{}, &ParseError{Message: "response yielded no skills in either structured or fallback form"}
	}
	return set, nil
}

// fallbackParse scrapes skills from free-form text. Lines are assigned to the
// overlap or gap section based on the most recent section heading; bulleted
// and comma-separated items are both accepted.
func fallbackParse(raw string) (types.SkillSet, bool) {
	var overlapping []string
	var gapSkills []string

	inGaps := false
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "gap") || strings.Contains(lower, "missing"):
			inGaps = true
			if !isBulleted(line) {
				continue
			}
		case strings.Contains(lower, "overlap") || strings.Contains(lower, "matching"):
			inGaps = false
			if !isBulleted(line) {
				continue
			}
		}

		for _, item := range splitItems(line) {
			if inGaps {
				gapSkills = append(gapSkills, item)
			} else {
				overlapping = append(overlapping, item)
			}
		}
	}

	overlapping = dedupeSkills(overlapping)
	gapSkills = dedupeSkills(gapSkills)
	if len(overlapping) == 0 && len(gapSkills) == 0 {
		return types.SkillSet{}, false
	}

	gaps := make([]types.SkillGap, 0, len(gapSkills))
	for _, skill := range gapSkills {
		gaps = append(gaps, types.SkillGap{Skill: skill, Importance: types.ImportanceLow})
	}
	return types.SkillSet{Overlapping: overlapping, Gaps: gaps}, true
}

func isBulleted(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•")
}

// splitItems extracts skill names from one bulleted or comma-separated line.
// Non-list prose lines yield nothing.
func splitItems(line string) []string {
	if isBulleted(line) {
		line = strings.TrimLeft(line, "-*• \t")
	} else if !strings.Contains(line, ",") {
		return nil
	}

	var items []string
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part != "" && len(part) < 80 {
			items = append(items, part)
		}
	}
	return items
}
