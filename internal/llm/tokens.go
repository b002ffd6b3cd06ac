package llm

// EstimateTokens provides a heuristic-based token count estimate for text
// (~4 characters per token, rounded up).
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + 3) / 4
}
