package layout

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/markup"
)

const sampleDoc = `# Resume Analysis Report

## Overall Fit

This resume shows a strong match for the role with room to improve in a few
areas. The analysis below breaks the assessment down dimension by dimension.

### Dimension Scores

- **Relevance of Experience**: 82/100
- **Impact and Achievements**: 64/100
- **Technical Proficiency**: 77/100

*Generated automatically.*`

func TestRender_Idempotent(t *testing.T) {
	first := Render(sampleDoc)
	second := Render(sampleDoc)
	assert.True(t, reflect.DeepEqual(first, second))
}

func TestRender_EmptyInput(t *testing.T) {
	doc := Render("")
	assert.Empty(t, doc.Pages)
}

func TestRender_EmptyHeadingDoesNotCrash(t *testing.T) {
	var doc Document
	assert.NotPanics(t, func() { doc = Render("### ") })

	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].Elements, 1)
	element := doc.Pages[0].Elements[0]
	assert.Equal(t, markup.Heading, element.Kind)
	assert.Equal(t, []string{""}, element.Lines)
}

func TestRender_StylesApplied(t *testing.T) {
	doc := Render("# Title\n\n- bullet point")
	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].Elements, 2)

	title := doc.Pages[0].Elements[0]
	assert.Equal(t, 24.0, title.Style.FontSize)
	assert.Equal(t, "#1a365d", title.Style.Color)
	assert.True(t, title.Style.Centered)
	assert.True(t, title.Style.Bold)

	bullet := doc.Pages[0].Elements[1]
	assert.Equal(t, 20.0, bullet.Style.Indent)
	assert.Equal(t, Margin+20.0, bullet.X)
	require.Len(t, bullet.Lines, 1)
	assert.True(t, strings.HasPrefix(bullet.Lines[0], BulletGlyph+" "))
}

func TestLayout_ElementsStayInsideMargins(t *testing.T) {
	doc := Render(strings.Repeat("- a bullet entry that repeats\n", 200))
	assert.Greater(t, len(doc.Pages), 1)

	limit := PageHeight - Margin
	for _, page := range doc.Pages {
		for _, element := range page.Elements {
			assert.GreaterOrEqual(t, element.Y, Margin)
			assert.LessOrEqual(t, element.Y+element.Height(), limit,
				"page %d element overflows", page.Number)
		}
	}
}

func TestLayout_ListItemsAreAtomic(t *testing.T) {
	doc := Render(strings.Repeat("- item\n", 300))
	for _, page := range doc.Pages {
		for _, element := range page.Elements {
			require.Equal(t, markup.ListItem, element.Kind)
			// An atomic block is never split: each keeps its single line.
			assert.Len(t, element.Lines, 1)
		}
	}
}

func TestLayout_ParagraphSplitsAcrossPages(t *testing.T) {
	long := strings.Repeat("sentence after sentence flows onward without pause ", 300)
	doc := Render(long)
	require.Greater(t, len(doc.Pages), 1)

	totalLines := 0
	pagesWithParagraph := 0
	for _, page := range doc.Pages {
		for _, element := range page.Elements {
			require.Equal(t, markup.Paragraph, element.Kind)
			totalLines += len(element.Lines)
		}
		if len(page.Elements) > 0 {
			pagesWithParagraph++
		}
	}
	assert.Greater(t, pagesWithParagraph, 1)

	blocks := markup.Tokenize(long)
	require.Len(t, blocks, 1)
	assert.Equal(t, len(wrapBlock(blocks[0], styleFor(blocks[0]))), totalLines)
}

func TestLayout_PageNumbersSequential(t *testing.T) {
	doc := Render(strings.Repeat("- entry\n", 500))
	for i, page := range doc.Pages {
		assert.Equal(t, i+1, page.Number)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("alpha beta gamma delta", 11)
	assert.Equal(t, []string{"alpha beta", "gamma delta"}, lines)

	// A word longer than the limit is hard-split.
	lines = wrapText("abcdefghij", 4)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, lines)
}
