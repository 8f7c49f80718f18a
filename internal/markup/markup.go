// Package markup tokenizes the lightweight text markup used by generated
// reports into typed blocks with inline styling spans. Tokenization is total:
// malformed input degrades to plain paragraphs, it never fails.
package markup

// BlockKind classifies a top-level block.
type BlockKind int

const (
	// Paragraph is a run of plain prose lines.
	Paragraph BlockKind = iota
	// Heading is a section title at level 1 to 3.
	Heading
	// ListItem is one bulleted entry.
	ListItem
)

func (k BlockKind) String() string {
	switch k {
	case Heading:
		return "heading"
	case ListItem:
		return "list_item"
	default:
		return "paragraph"
	}
}

// SpanStyle is the inline emphasis applied to a run of text.
type SpanStyle int

const (
	Plain SpanStyle = iota
	Strong
	Emphasis
)

// Span is a styled run of text within a block.
type Span struct {
	Text  string
	Style SpanStyle
}

// Block is one tokenized unit of the document.
type Block struct {
	Kind  BlockKind
	Level int // heading level 1-3, zero otherwise
	Spans []Span

	// Degraded marks a paragraph that absorbed at least one line of
	// heading-like markup the tokenizer could not accept, such as a
	// four-'#' prefix. Rendering proceeds; callers may log the count.
	Degraded bool
}

// CountDegraded counts blocks that fell back to paragraph prose from
// malformed heading markup.
func CountDegraded(blocks []Block) int {
	n := 0
	for _, b := range blocks {
		if b.Degraded {
			n++
		}
	}
	return n
}

// PlainText concatenates the block's spans without styling.
func (b Block) PlainText() string {
	var out []byte
	for _, span := range b.Spans {
		out = append(out, span.Text...)
	}
	return string(out)
}
