package llm

// Token estimation uses a fixed runes-per-token ratio so that truncation is
// deterministic: the same input always cuts at the same point, with no
// dependency on a remote tokenizer.
const runesPerToken = 4

// EstimateTokens returns a deterministic token-count estimate for text.
func EstimateTokens(text string) int {
	runes := len([]rune(text))
	if runes == 0 {
		return 0
	}
	return (runes + runesPerToken - 1) / runesPerToken
}

// truncateToTokens cuts text down to at most budget estimated tokens.
// The second return reports whether anything was removed.
func truncateToTokens(text string, budget int) (string, bool) {
	if budget <= 0 {
		return "", len(text) > 0
	}
	runes := []rune(text)
	maxRunes := budget * runesPerToken
	if len(runes) <= maxRunes {
		return text, false
	}
	return string(runes[:maxRunes]), true
}
