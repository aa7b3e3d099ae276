package processor

// Analysis is the result of cleaning a document and extracting its summary
// and keyphrases from the cleaned text.
type Analysis struct {
	Cleaned         string   `json:"cleaned"`
	Summary         []string `json:"summary"`
	Keyphrases      []string `json:"keyphrases"`
	SentenceCount   int      `json:"sentence_count"`
	EstimatedTokens int      `json:"estimated_tokens"`
}

type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type BatchResult struct {
	ID       string   `json:"id"`
	Analysis Analysis `json:"analysis"`
}
