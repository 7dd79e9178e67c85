package utils

import "regexp"

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func StripANSI(input string) string {
	return ansiPattern.ReplaceAllString(input, "")
}

// GetMaxWidth returns the widest visible line, ignoring color codes.
func GetMaxWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if n := len([]rune(StripANSI(line))); n > maxWidth {
			maxWidth = n
		}
	}
	return maxWidth
}
