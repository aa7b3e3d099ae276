package api

import (
	"github.com/wgomg/notesift/internal/keyphrase"
	"github.com/wgomg/notesift/internal/processor"
	"github.com/wgomg/notesift/internal/retrieval"
)

// MaxBatchDocuments bounds the documents of one batch request.
const MaxBatchDocuments = 100

type TextRequest struct {
	Text string `json:"text"`
}

type SummarizeRequest struct {
	Text         string `json:"text"`
	MaxSentences int    `json:"max_sentences"`
}

type KeyphrasesRequest struct {
	Text       string `json:"text"`
	MaxPhrases int    `json:"max_phrases"`
}

type RetrieveRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
	K        int    `json:"k"`
}

type AnalyzeRequest struct {
	Text         string `json:"text"`
	MaxSentences int    `json:"max_sentences"`
	MaxPhrases   int    `json:"max_phrases"`
}

type BatchRequest struct {
	Documents    []processor.Document `json:"documents"`
	MaxSentences int                  `json:"max_sentences"`
	MaxPhrases   int                  `json:"max_phrases"`
}

type CleanResponse struct {
	Cleaned string `json:"cleaned"`
}

type SummarizeResponse struct {
	Summary       []string `json:"summary"`
	SentenceCount int      `json:"sentence_count"`
}

type KeyphrasesResponse struct {
	Keyphrases []string           `json:"keyphrases"`
	Ranked     []keyphrase.Phrase `json:"ranked"`
}

type RetrieveResponse struct {
	Paragraphs []retrieval.Paragraph `json:"paragraphs"`
	Focused    string                `json:"focused"`
}

type AnalyzeResponse struct {
	processor.Analysis
	Cached bool `json:"cached"`
}

type BatchResponse struct {
	Results []processor.BatchResult `json:"results"`
}

type HealthResponse struct {
	Service      string  `json:"service"`
	CacheSize    int     `json:"cache_size"`
	CacheHitRate float64 `json:"cache_hit_rate"`
}
