// Package tokenize turns free text into normalized content tokens.
package tokenize

import (
	"strings"
	"sync"
	"unicode"

	"github.com/wgomg/notesift/internal/similarity"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMinLength is the shortest token length kept as a content token.
const DefaultMinLength = 3

var defaultStopwords = []string{
	"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with",
	"from", "as", "is", "are", "was", "were", "be", "been", "being",
	"that", "this", "these", "those", "it", "its", "into", "about", "over", "under", "after", "before", "between",
	"through", "during", "without", "within",
	"i", "you", "he", "she", "we", "they", "them", "his", "her", "their", "our", "your", "my", "me", "us",
	"do", "does", "did", "doing", "done", "can", "could", "should", "would", "may", "might", "must", "will", "shall",
	"not", "no", "yes", "up", "down", "out", "so", "than", "too", "very", "just", "also", "only", "both", "each",
	"more", "most", "such", "own", "same",
}

// Stopwords returns a copy of the built-in stopword list.
func Stopwords() []string {
	out := make([]string, len(defaultStopwords))
	copy(out, defaultStopwords)
	return out
}

// Tokenizer is immutable after construction and safe for concurrent use.
type Tokenizer struct {
	stopwords map[string]struct{}
	minLength int
}

// New builds a tokenizer. A minLength below 1 falls back to DefaultMinLength.
func New(stopwords []string, minLength int) *Tokenizer {
	if minLength < 1 {
		minLength = DefaultMinLength
	}

	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}

	return &Tokenizer{stopwords: set, minLength: minLength}
}

var (
	defaultOnce      sync.Once
	defaultTokenizer *Tokenizer
)

// Default returns the shared tokenizer using the built-in stopwords.
func Default() *Tokenizer {
	defaultOnce.Do(func() {
		defaultTokenizer = New(defaultStopwords, DefaultMinLength)
	})
	return defaultTokenizer
}

// Fold strips diacritics and lowercases text, mapping every rune outside
// [a-z0-9] and whitespace to a space.
func Fold(text string) string {
	// a transformer carries state, so one is built per call
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(stripMarks, text)
	if err != nil {
		decomposed = norm.NFD.String(text)
	}

	return strings.Map(func(r rune) rune {
		r = unicode.ToLower(r)
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, decomposed)
}

// Tokens returns every normalized token of text, stopwords included.
func (t *Tokenizer) Tokens(text string) []string {
	return strings.Fields(Fold(text))
}

// ContentTokens returns the ordered tokens that are neither stopwords nor
// shorter than the minimum length.
func (t *Tokenizer) ContentTokens(text string) []string {
	fields := t.Tokens(text)
	out := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len(tok) < t.minLength || t.IsStopword(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// LooseTokens drops stopwords but keeps short tokens such as single letters.
func (t *Tokenizer) LooseTokens(text string) []string {
	fields := t.Tokens(text)
	out := make([]string, 0, len(fields))
	for _, tok := range fields {
		if t.IsStopword(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func (t *Tokenizer) IsStopword(tok string) bool {
	_, ok := t.stopwords[tok]
	return ok
}

// Count returns the number of content tokens in text.
func (t *Tokenizer) Count(text string) int {
	return len(t.ContentTokens(text))
}

// Set returns the distinct content tokens of text.
func (t *Tokenizer) Set(text string) similarity.Set {
	return similarity.NewSet(t.ContentTokens(text))
}
