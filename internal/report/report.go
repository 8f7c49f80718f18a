// Package report renders an analysis result into the markup document format
// and, through the layout engine, into fixed-size pages.
package report

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/layout"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Score color bands, matching the visual treatment of the rendered report.
const (
	colorStrong = "#22c55e"
	colorMixed  = "#eab308"
	colorWeak   = "#ef4444"
)

// ScoreColor maps a 0-100 score to its display color: green at 80 and above,
// yellow at 60 and above, red below.
func ScoreColor(score float64) string {
	switch {
	case score >= 80:
		return colorStrong
	case score >= 60:
		return colorMixed
	default:
		return colorWeak
	}
}

// Build converts an analysis result into markup text. The structure is fixed:
// title, overall score, executive summary, dimension breakdown, skills, and
// recommendations, with any warnings appended in italics.
func Build(result *types.AnalysisResult) string {
	var doc strings.Builder

	doc.WriteString("# Resume Analysis Report\n\n")
	fmt.Fprintf(&doc, "**Overall Fit Score: %.1f/100**\n\n", result.OverallScore)

	doc.WriteString("## Executive Summary\n\n")
	doc.WriteString(result.ExecutiveSummary)
	doc.WriteString("\n\n")

	doc.WriteString("## Dimension Scores\n\n")
	for _, dim := range result.DimensionResults {
		fmt.Fprintf(&doc, "- **%s**: %.0f/100\n", dim.Name, dim.Score)
	}
	doc.WriteString("\n")

	doc.WriteString("## Skills Analysis\n\n")
	doc.WriteString("### Matching Skills\n\n")
	if len(result.Skills.Overlapping) > 0 {
		doc.WriteString(strings.Join(result.Skills.Overlapping, ", "))
		doc.WriteString("\n\n")
	} else {
		doc.WriteString("No overlapping skills were identified.\n\n")
	}

	doc.WriteString("### Skill Gaps\n\n")
	if len(result.Skills.Gaps) > 0 {
		for _, gap := range result.Skills.Gaps {
			line := fmt.Sprintf("- **%s** (%s)", gap.Skill, strings.ToLower(string(gap.Importance)))
			if gap.Suggestion != "" {
				line += ": " + gap.Suggestion
			}
			doc.WriteString(line)
			doc.WriteString("\n")
		}
		doc.WriteString("\n")
	} else {
		doc.WriteString("No significant skill gaps were identified.\n\n")
	}

	doc.WriteString("## Recommendations\n\n")
	for _, rec := range result.Recommendations {
		fmt.Fprintf(&doc, "- %s\n", rec.Text)
	}

	if len(result.Warnings) > 0 {
		doc.WriteString("\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&doc, "*%s*\n\n", warning)
		}
	}

	return strings.TrimRight(doc.String(), "\n") + "\n"
}

// BuildDocument builds the markup and lays it out into pages. The overall
// score line is colored by its band.
func BuildDocument(result *types.AnalysisResult) layout.Document {
	doc := layout.Render(Build(result))

	color := ScoreColor(result.OverallScore)
	for pi := range doc.Pages {
		for ei := range doc.Pages[pi].Elements {
			el := &doc.Pages[pi].Elements[ei]
			for _, line := range el.Lines {
				if strings.Contains(line, "Overall Fit Score") {
					el.Style.Color = color
					break
				}
			}
		}
	}
	return doc
}
