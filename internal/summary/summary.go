// Package summary selects the most central sentences of a text.
//
// Sentences form a complete graph weighted by the overlap coefficient of
// their content tokens. A damped PageRank over that graph scores each
// sentence, and the top scorers are returned in their original order. The
// similarity matrix is quadratic in the sentence count; callers bound input
// size.
package summary

import (
	"cmp"
	"slices"

	"github.com/wgomg/notesift/internal/segmenter"
	"github.com/wgomg/notesift/internal/tokenize"
)

const (
	DefaultDamping       = 0.85
	DefaultMaxIterations = 30
	DefaultTolerance     = 1e-4
)

type Options struct {
	Damping       float64
	MaxIterations int
	// Tolerance is the summed absolute score change that ends iteration.
	Tolerance float64
}

func DefaultOptions() Options {
	return Options{
		Damping:       DefaultDamping,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
	}
}

type Summarizer struct {
	tok  *tokenize.Tokenizer
	opts Options
}

// New builds a summarizer. A nil tokenizer uses tokenize.Default.
func New(tok *tokenize.Tokenizer, opts Options) *Summarizer {
	if tok == nil {
		tok = tokenize.Default()
	}
	return &Summarizer{tok: tok, opts: opts}
}

// Summarize returns up to m sentences of text in document order. When the
// text has m sentences or fewer they are all returned without ranking.
func (s *Summarizer) Summarize(text string, m int) Result {
	raw := segmenter.Sentences(text)
	res := Result{Total: len(raw)}
	if m <= 0 || len(raw) == 0 {
		return res
	}
	if len(raw) <= m {
		res.Sentences = raw
		return res
	}

	ranked := s.Rank(raw)
	slices.SortStableFunc(ranked, func(a, b Sentence) int {
		return cmp.Compare(b.Score, a.Score)
	})

	selected := ranked[:m]
	slices.SortFunc(selected, func(a, b Sentence) int {
		return cmp.Compare(a.Index, b.Index)
	})

	res.Sentences = make([]string, len(selected))
	for i, sent := range selected {
		res.Sentences[i] = sent.Text
	}
	return res
}

// Rank scores every sentence and returns them in document order.
func (s *Summarizer) Rank(sentences []string) []Sentence {
	out := make([]Sentence, len(sentences))
	for i, text := range sentences {
		out[i] = Sentence{
			Index:  i,
			Text:   text,
			Tokens: s.tok.Set(text),
		}
	}

	graph := buildGraph(out)
	scores := weightedPageRank(graph, s.opts.Damping, s.opts.MaxIterations, s.opts.Tolerance)
	for i := range out {
		out[i].Score = scores[i]
	}
	return out
}
