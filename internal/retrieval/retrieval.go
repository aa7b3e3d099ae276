// Package retrieval ranks the paragraphs of a context by relevance to a
// question.
package retrieval

import (
	"cmp"
	"slices"
	"strings"

	"github.com/wgomg/notesift/internal/segmenter"
	"github.com/wgomg/notesift/internal/similarity"
	"github.com/wgomg/notesift/internal/tokenize"
)

const DefaultTopK = 3

// Paragraph is a scored paragraph of the context.
type Paragraph struct {
	Index int     `json:"index"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
	// TieBreak is the overlap over stopword-free tokens of any length. It
	// only orders paragraphs whose Score is equal.
	TieBreak float64 `json:"-"`
}

type Retriever struct {
	tok *tokenize.Tokenizer
}

// New builds a retriever. A nil tokenizer uses tokenize.Default.
func New(tok *tokenize.Tokenizer) *Retriever {
	if tok == nil {
		tok = tokenize.Default()
	}
	return &Retriever{tok: tok}
}

// Score returns every paragraph of context with its score, in context order.
func (r *Retriever) Score(question, context string) []Paragraph {
	paras := segmenter.Paragraphs(context)
	if len(paras) == 0 {
		return nil
	}

	q := r.tok.Set(question)
	qLoose := similarity.NewSet(r.tok.LooseTokens(question))

	out := make([]Paragraph, len(paras))
	for i, p := range paras {
		out[i] = Paragraph{
			Index:    i,
			Text:     p,
			Score:    similarity.Overlap(q, r.tok.Set(p)),
			TieBreak: similarity.Overlap(qLoose, similarity.NewSet(r.tok.LooseTokens(p))),
		}
	}
	return out
}

// Retrieve returns the k paragraphs most relevant to question, most relevant
// first. Context is not truncated here. k <= 0 yields nothing.
func (r *Retriever) Retrieve(question, context string, k int) []Paragraph {
	if k <= 0 {
		return nil
	}

	scored := r.Score(question, context)
	slices.SortStableFunc(scored, func(a, b Paragraph) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(b.TieBreak, a.TieBreak)
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// Texts is Retrieve without the scores.
func (r *Retriever) Texts(question, context string, k int) []string {
	paras := r.Retrieve(question, context, k)
	out := make([]string, len(paras))
	for i, p := range paras {
		out[i] = p.Text
	}
	return out
}

// Focus joins the retrieved paragraphs with blank lines, ready to be placed
// in a prompt.
func (r *Retriever) Focus(question, context string, k int) string {
	return strings.Join(r.Texts(question, context, k), "\n\n")
}
