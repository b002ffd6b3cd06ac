package utils

// Truncate shortens s to at most maxLen runes, marking the cut with "...".
// Used to keep model replies readable in log lines.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
