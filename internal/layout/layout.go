package layout

import (
	"math"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/markup"
)

// Element is one laid-out block fragment with its resolved position. A
// paragraph split across pages produces one Element per page.
type Element struct {
	Kind  markup.BlockKind `json:"kind"`
	Style Style            `json:"style"`
	Lines []string         `json:"lines"`
	X     float64          `json:"x"` // left edge including indent
	Y     float64          `json:"y"` // top edge, measured from the page top
}

// Height is the vertical extent of the element's text.
func (e Element) Height() float64 {
	return float64(len(e.Lines)) * e.Style.Leading
}

// Page is one fixed-size page of laid-out elements.
type Page struct {
	Number   int       `json:"number"` // 1-based
	Elements []Element `json:"elements"`
}

// Document is the fully paginated result.
type Document struct {
	PageWidth  float64 `json:"page_width"`
	PageHeight float64 `json:"page_height"`
	Pages      []Page  `json:"pages"`
}

// Render tokenizes markup text and lays it out. It is a pure function;
// rendering the same text twice yields identical documents.
func Render(text string) Document {
	return Layout(markup.Tokenize(text))
}

// Layout paginates blocks greedily from the first page down. Headings and
// list items are atomic: one that does not fit the remaining space moves
// whole to the next page. Paragraphs split at line boundaries. Page count is
// unbounded.
func Layout(blocks []markup.Block) Document {
	doc := Document{PageWidth: PageWidth, PageHeight: PageHeight}
	if len(blocks) == 0 {
		return doc
	}

	page := Page{Number: 1}
	cursor := Margin

	newPage := func() {
		doc.Pages = append(doc.Pages, page)
		page = Page{Number: page.Number + 1}
		cursor = Margin
	}

	limit := PageHeight - Margin

	for _, block := range blocks {
		style := styleFor(block)
		lines := wrapBlock(block, style)
		if len(lines) == 0 {
			continue
		}

		atTop := cursor == Margin
		spaceBefore := style.SpaceBefore
		if atTop {
			spaceBefore = 0
		}

		height := spaceBefore + float64(len(lines))*style.Leading

		if block.Kind == markup.Paragraph {
			// Paragraphs split at line boundaries across pages.
			remaining := lines
			first := true
			for len(remaining) > 0 {
				before := spaceBefore
				if !first || cursor == Margin {
					before = 0
				}
				available := limit - cursor - before
				fit := int(math.Floor(available / style.Leading))
				if fit <= 0 {
					newPage()
					continue
				}
				if fit > len(remaining) {
					fit = len(remaining)
				}
				page.Elements = append(page.Elements, Element{
					Kind:  block.Kind,
					Style: style,
					Lines: remaining[:fit],
					X:     Margin + style.Indent,
					Y:     cursor + before,
				})
				cursor += before + float64(fit)*style.Leading
				remaining = remaining[fit:]
				first = false
			}
			cursor += style.SpaceAfter
			continue
		}

		// Atomic blocks move whole to the next page when they do not fit the
		// remaining space. One taller than a full page is still placed at
		// the top of a fresh page.
		if cursor+height > limit && cursor > Margin {
			newPage()
			spaceBefore = 0
			height = float64(len(lines)) * style.Leading
		}

		page.Elements = append(page.Elements, Element{
			Kind:  block.Kind,
			Style: style,
			Lines: lines,
			X:     Margin + style.Indent,
			Y:     cursor + spaceBefore,
		})
		cursor += height + style.SpaceAfter
	}

	doc.Pages = append(doc.Pages, page)
	return doc
}

// wrapBlock word-wraps a block's text to the content width, prefixing list
// items with the bullet glyph. An empty heading still occupies one blank line.
func wrapBlock(block markup.Block, style Style) []string {
	text := strings.TrimSpace(block.PlainText())
	if block.Kind == markup.ListItem {
		text = BulletGlyph + " " + text
	}
	if text == "" {
		if block.Kind == markup.Heading {
			return []string{""}
		}
		return nil
	}

	width := ContentWidth - style.Indent
	maxChars := int(width / (style.FontSize * avgCharWidthRatio))
	if maxChars < 1 {
		maxChars = 1
	}
	return wrapText(text, maxChars)
}

// wrapText breaks text greedily at word boundaries. A single word longer
// than the limit is hard-split rather than overflowing.
func wrapText(text string, maxChars int) []string {
	var lines []string
	var line strings.Builder

	flush := func() {
		if line.Len() > 0 {
			lines = append(lines, line.String())
			line.Reset()
		}
	}

	for _, word := range strings.Fields(text) {
		for len([]rune(word)) > maxChars {
			flush()
			runes := []rune(word)
			lines = append(lines, string(runes[:maxChars]))
			word = string(runes[maxChars:])
		}
		if word == "" {
			continue
		}
		if line.Len() == 0 {
			line.WriteString(word)
			continue
		}
		if len([]rune(line.String()))+1+len([]rune(word)) > maxChars {
			flush()
			line.WriteString(word)
			continue
		}
		line.WriteString(" ")
		line.WriteString(word)
	}
	flush()

	return lines
}
