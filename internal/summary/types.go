package summary

import "github.com/wgomg/notesift/internal/similarity"

// Sentence is one candidate sentence with its position in the source text.
type Sentence struct {
	Index  int
	Text   string
	Tokens similarity.Set
	Score  float64
}

type Node struct {
	ID       int
	Sentence *Sentence
}

// Graph is a dense, symmetric similarity graph with a zero diagonal.
type Graph struct {
	Nodes     []*Node
	Adjacency [][]float64
}

// Result is the outcome of one summarization.
type Result struct {
	// Sentences are the selected sentences in document order.
	Sentences []string
	// Total is the number of sentences found in the input.
	Total int
}
