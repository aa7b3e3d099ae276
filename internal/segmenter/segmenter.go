// Package segmenter splits text into sentences and paragraphs.
//
// Both boundaries need lookaround (a lookbehind on terminal punctuation, a
// lookahead on numbered-list markers), so the patterns use regexp2 rather
// than the RE2 engine of the standard library.
package segmenter

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	reSentenceBoundary = regexp2.MustCompile(`(?<=[.!?])\s+`, regexp2.None)
	// a blank line, or the zero-width position before "12." / "3)" at line start
	reParagraphBoundary = regexp2.MustCompile(`\n\s*\n|(?=^\s*[0-9]{1,3}[.)]\s+)`, regexp2.Multiline)

	reWhitespace = regexp.MustCompile(`\s+`)
)

// Split cuts text at every match of re. Offsets reported by regexp2 are rune
// offsets.
func Split(re *regexp2.Regexp, text string) []string {
	runes := []rune(text)
	parts := make([]string, 0)

	start := 0
	m, err := re.FindStringMatch(text)
	for err == nil && m != nil {
		parts = append(parts, string(runes[start:m.Index]))
		start = m.Index + m.Length
		m, err = re.FindNextMatch(m)
	}
	return append(parts, string(runes[start:]))
}

// Sentences splits text after ".", "!" or "?" followed by whitespace. The
// sentences are trimmed and empty ones dropped.
func Sentences(text string) []string {
	out := make([]string, 0)
	for _, s := range Split(reSentenceBoundary, text) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Paragraphs splits text on blank lines and before numbered-list items, and
// collapses whitespace inside each paragraph. Text without any boundary is a
// single paragraph; blank text has none.
func Paragraphs(text string) []string {
	out := make([]string, 0)
	for _, p := range Split(reParagraphBoundary, text) {
		if p = CollapseSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func CollapseSpace(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}
