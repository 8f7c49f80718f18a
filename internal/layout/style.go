// Package layout arranges tokenized markup blocks onto fixed-size pages
// using a static style table and greedy pagination. Everything here is pure:
// the same markup always yields the same paginated document.
package layout

import "github.com/jonathan/resume-analyzer/internal/markup"

// Page geometry in points: US letter with 0.75 inch margins.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
	Margin     = 54.0
)

// ContentWidth is the horizontal space available to text.
const ContentWidth = PageWidth - 2*Margin

// avgCharWidthRatio approximates glyph width as a fraction of the font size
// for line-breaking purposes.
const avgCharWidthRatio = 0.5

// BulletGlyph prefixes each list item line.
const BulletGlyph = "•"

// Style is the fixed visual treatment for one block kind.
type Style struct {
	FontSize    float64 `json:"font_size"`
	Leading     float64 `json:"leading"`
	Bold        bool    `json:"bold,omitempty"`
	Italic      bool    `json:"italic,omitempty"`
	Color       string  `json:"color"` // hex, e.g. "#1a365d"
	Indent      float64 `json:"indent,omitempty"`
	SpaceBefore float64 `json:"space_before,omitempty"`
	SpaceAfter  float64 `json:"space_after,omitempty"`
	Centered    bool    `json:"centered,omitempty"`
}

var (
	styleH1 = Style{FontSize: 24, Leading: 28, Bold: true, Color: "#1a365d", SpaceAfter: 12, Centered: true}
	styleH2 = Style{FontSize: 14, Leading: 18, Bold: true, Color: "#2563eb", SpaceBefore: 12, SpaceAfter: 6}
	styleH3 = Style{FontSize: 12, Leading: 15, Bold: true, Color: "#1e40af", SpaceBefore: 10, SpaceAfter: 4}

	styleBody   = Style{FontSize: 10, Leading: 14, Color: "#000000", SpaceAfter: 6}
	styleBullet = Style{FontSize: 10, Leading: 14, Color: "#000000", Indent: 20, SpaceAfter: 3}
)

// styleFor selects the style for a block. Unknown heading levels fall back to
// H3 rather than failing.
func styleFor(block markup.Block) Style {
	switch block.Kind {
	case markup.Heading:
		switch block.Level {
		case 1:
			return styleH1
		case 2:
			return styleH2
		default:
			return styleH3
		}
	case markup.ListItem:
		return styleBullet
	default:
		return styleBody
	}
}
