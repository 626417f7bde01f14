package utils

import "strings"

// Truncate shortens s to at most maxLen runes and marks the cut with "...".
// Trailing spaces before the mark are dropped.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return strings.TrimRight(string(runes[:maxLen]), " ") + "..."
}
