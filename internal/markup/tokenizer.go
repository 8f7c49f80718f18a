package markup

import "strings"

// Tokenize splits markup text into blocks. Line prefixes decide the block
// kind: one to three leading '#' marks a heading, "- " or "* " marks a list
// item, anything else is paragraph prose. Consecutive prose lines merge into
// one paragraph; blank lines separate paragraphs. Input that fits no rule is
// still a paragraph, so Tokenize cannot fail.
func Tokenize(text string) []Block {
	var blocks []Block
	var paragraph []string
	degraded := false

	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		joined := strings.Join(paragraph, " ")
		blocks = append(blocks, Block{Kind: Paragraph, Spans: parseSpans(joined), Degraded: degraded})
		paragraph = nil
		degraded = false
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}

		if level, rest, ok := headingLine(trimmed); ok {
			flush()
			blocks = append(blocks, Block{Kind: Heading, Level: level, Spans: parseSpans(rest)})
			continue
		}

		if rest, ok := listItemLine(trimmed); ok {
			flush()
			blocks = append(blocks, Block{Kind: ListItem, Spans: parseSpans(rest)})
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			degraded = true
		}
		paragraph = append(paragraph, trimmed)
	}
	flush()

	return blocks
}

// headingLine matches up to three leading '#' followed by a space or end of
// line. Four or more '#' is not a heading and falls through to paragraph.
func headingLine(line string) (level int, rest string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 3 {
		return 0, "", false
	}
	rest = line[level:]
	if rest != "" && rest[0] != ' ' {
		return 0, "", false
	}
	return level, strings.TrimSpace(rest), true
}

// listItemLine matches a "- " or "* " bullet prefix. A bare "-" or "*" with
// no content is not a list item.
func listItemLine(line string) (rest string, ok bool) {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return strings.TrimSpace(line[2:]), true
	}
	return "", false
}

// parseSpans splits text into styled runs: **text** is strong, *text* is
// emphasis. Unclosed markers are kept as literal text.
func parseSpans(text string) []Span {
	var spans []Span
	var plain strings.Builder

	flushPlain := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String(), Style: Plain})
			plain.Reset()
		}
	}

	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if runes[i] != '*' {
			plain.WriteRune(runes[i])
			i++
			continue
		}

		if i+1 < len(runes) && runes[i+1] == '*' {
			if end := indexFrom(runes, i+2, "**"); end >= 0 && end > i+2 {
				flushPlain()
				spans = append(spans, Span{Text: string(runes[i+2 : end]), Style: Strong})
				i = end + 2
				continue
			}
		} else {
			if end := indexFrom(runes, i+1, "*"); end >= 0 && end > i+1 {
				flushPlain()
				spans = append(spans, Span{Text: string(runes[i+1 : end]), Style: Emphasis})
				i = end + 1
				continue
			}
		}

		// Unmatched marker, keep it literally.
		plain.WriteRune(runes[i])
		i++
	}
	flushPlain()

	// An empty heading like "### " still carries one empty plain span.
	if len(spans) == 0 {
		spans = []Span{{Style: Plain}}
	}
	return spans
}

// indexFrom finds the next occurrence of marker in runes at or after start.
func indexFrom(runes []rune, start int, marker string) int {
	if start >= len(runes) {
		return -1
	}
	idx := strings.Index(string(runes[start:]), marker)
	if idx < 0 {
		return -1
	}
	return start + len([]rune(string(runes[start:])[:idx]))
}
