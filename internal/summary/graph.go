package summary

import (
	"math"

	"github.com/wgomg/notesift/internal/similarity"
)

func buildGraph(sentences []Sentence) Graph {
	n := len(sentences)
	graph := Graph{Nodes: make([]*Node, n), Adjacency: make([][]float64, n)}

	for i := range graph.Adjacency {
		graph.Adjacency[i] = make([]float64, n)
		graph.Nodes[i] = &Node{ID: i, Sentence: &sentences[i]}
	}

	for i := range n {
		for j := i + 1; j < n; j++ {
			s := similarity.Overlap(sentences[i].Tokens, sentences[j].Tokens)
			if s > 0 {
				graph.Adjacency[i][j] = s
				graph.Adjacency[j][i] = s
			}
		}
	}

	return graph
}

// weightedPageRank iterates until the summed absolute change drops below
// tolerance or maxIterations is reached. A node whose row sums to zero
// sends nothing.
func weightedPageRank(
	graph Graph,
	damping float64,
	maxIterations int,
	tolerance float64,
) []float64 {
	N := len(graph.Nodes)
	if N == 0 {
		return nil
	}

	scores := make([]float64, N)
	for i := range scores {
		scores[i] = 1.0 / float64(N)
	}

	outgoingSums := make([]float64, N)
	for i := range N {
		sum := 0.0
		for j := range N {
			sum += graph.Adjacency[i][j]
		}
		outgoingSums[i] = sum
	}

	randomComponent := (1.0 - damping) / float64(N)

	for range maxIterations {
		newScores := make([]float64, N)
		for i := range newScores {
			newScores[i] = randomComponent
		}

		for i := range N {
			if outgoingSums[i] == 0 {
				continue
			}
			share := damping * scores[i] / outgoingSums[i]
			for j := range N {
				if i == j {
					continue
				}
				if weight := graph.Adjacency[i][j]; weight > 0 {
					newScores[j] += share * weight
				}
			}
		}

		totalChange := 0.0
		for i := range N {
			totalChange += math.Abs(newScores[i] - scores[i])
		}

		scores = newScores
		if totalChange < tolerance {
			break
		}
	}

	return scores
}
