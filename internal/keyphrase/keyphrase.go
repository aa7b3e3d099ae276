// Package keyphrase ranks uni-, bi- and trigram candidates of a text.
package keyphrase

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/wgomg/notesift/internal/tokenize"
)

const (
	DefaultAcronymBoost = 6
	DefaultAlnumBoost   = 4
	DefaultMinChars     = 3
	DefaultMaxChars     = 50
	maxN                = 3
)

var (
	reAcronym = regexp.MustCompile(`\b[A-Z]{2,6}\b`)
	reAlnum   = regexp.MustCompile(`\b[A-Za-z][0-9]+\b`)
)

type Options struct {
	AcronymBoost int
	AlnumBoost   int
	// MinChars and MaxChars bound the character length of a candidate.
	MinChars int
	MaxChars int
}

func DefaultOptions() Options {
	return Options{
		AcronymBoost: DefaultAcronymBoost,
		AlnumBoost:   DefaultAlnumBoost,
		MinChars:     DefaultMinChars,
		MaxChars:     DefaultMaxChars,
	}
}

// Phrase is a ranked candidate.
type Phrase struct {
	Text   string `json:"text"`
	Weight int    `json:"weight"`
}

type Extractor struct {
	tok  *tokenize.Tokenizer
	opts Options
}

// New builds an extractor. A nil tokenizer uses tokenize.Default.
func New(tok *tokenize.Tokenizer, opts Options) *Extractor {
	if tok == nil {
		tok = tokenize.Default()
	}
	return &Extractor{tok: tok, opts: opts}
}

// table accumulates weights and remembers first-insertion order, which breaks
// ties between equal weights.
type table struct {
	weights map[string]int
	order   []string
}

func newTable() *table {
	return &table{weights: make(map[string]int)}
}

func (t *table) add(phrase string, w int) {
	if _, ok := t.weights[phrase]; !ok {
		t.order = append(t.order, phrase)
	}
	t.weights[phrase] += w
}

// Weights returns the full phrase ranking table of text, before filtering
// and de-duplication.
func (e *Extractor) Weights(text string) map[string]int {
	return e.score(text).weights
}

func (e *Extractor) score(text string) *table {
	t := newTable()

	toks := e.tok.ContentTokens(text)
	for i := range toks {
		for n := 1; n <= maxN && i+n <= len(toks); n++ {
			// n-gram weight equals its length
			t.add(strings.Join(toks[i:i+n], " "), n)
		}
	}

	// boosts come from the raw text so casing still identifies acronyms
	boost := func(re *regexp.Regexp, w int) {
		seen := make(map[string]struct{})
		for _, m := range re.FindAllString(text, -1) {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			t.add(strings.ToLower(m), w)
		}
	}
	boost(reAcronym, e.opts.AcronymBoost)
	boost(reAlnum, e.opts.AlnumBoost)

	return t
}

// Extract returns up to k phrases by descending weight. A phrase is skipped
// when it contains, or is contained in, an already accepted phrase, so the
// highest weighted member of an overlapping family wins.
func (e *Extractor) Extract(text string, k int) []Phrase {
	if k <= 0 {
		return nil
	}

	t := e.score(text)
	ranked := make([]Phrase, 0, len(t.order))
	for _, p := range t.order {
		if len(p) < e.opts.MinChars || (e.opts.MaxChars > 0 && len(p) > e.opts.MaxChars) {
			continue
		}
		ranked = append(ranked, Phrase{Text: p, Weight: t.weights[p]})
	}
	slices.SortStableFunc(ranked, func(a, b Phrase) int {
		return cmp.Compare(b.Weight, a.Weight)
	})

	// quadratic in k, which stays in the tens
	out := make([]Phrase, 0, k)
	for _, p := range ranked {
		overlapping := false
		for _, q := range out {
			if strings.Contains(q.Text, p.Text) || strings.Contains(p.Text, q.Text) {
				overlapping = true
				break
			}
		}
		if overlapping {
			continue
		}

		out = append(out, p)
		if len(out) >= k {
			break
		}
	}
	return out
}

// Phrases is Extract without the weights.
func (e *Extractor) Phrases(text string, k int) []string {
	phrases := e.Extract(text, k)
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = p.Text
	}
	return out
}
