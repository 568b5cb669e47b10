package util

// Truncate shortens s to at most max runes, replacing the tail with "..."
// when anything was cut off.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) < max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
