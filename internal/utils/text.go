package utils

import (
	"math"
	"regexp"
	"strings"
)

var reSymbols = regexp.MustCompile(`[$€£¥¢%&*+=<>^|~@#\\_\[\]{}]`)

func CountWords(text string) int {
	return len(strings.Fields(text))
}

func EstimateTokensFromWords(wordCount int) int {
	return int(math.Round(float64(wordCount) * 1.3))
}

// CleanUp drops symbols that never form words of their own.
func CleanUp(text string) string {
	return reSymbols.ReplaceAllString(text, "")
}

// Truncate cuts s to at most maxRunes runes. A negative limit leaves s as is.
func Truncate(s string, maxRunes int) string {
	if maxRunes < 0 {
		return s
	}

	count := 0
	for i := range s {
		if count == maxRunes {
			return s[:i]
		}
		count++
	}
	return s
}

// Preview is Truncate for log lines, marking the cut with "...".
func Preview(s string, maxRunes int) string {
	if t := Truncate(s, maxRunes); len(t) < len(s) {
		return t + "..."
	}
	return s
}
