package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wgomg/notesift/internal/cleaner"
	"github.com/wgomg/notesift/internal/config"
	"github.com/wgomg/notesift/internal/utils"
)

const slideText = `Department of Electrical and Electronic Engineering, KUET
• Frequency reuse allows the same channel to serve distant cells without interference.
References
Wireless Communications by Theodore Rappaport, Pearson 2002
Mobile Cellular Telecommunications
Cell splitting increases capacity by dividing congested cells into smaller microcells.`

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{WorkerCount: 2, CacheSize: 8, HttpTimeoutSeconds: 30, ServerPort: "8080"},
		Cleaner: config.CleanerConfig{
			DuplicateThreshold: 0.92,
			ShortLineTokens:    4,
			ResidualTokens:     6,
		},
		Summary: config.SummaryConfig{
			Damping:          0.85,
			MaxIterations:    30,
			Tolerance:        1e-4,
			DefaultSentences: 5,
		},
		Keyphrase: config.KeyphraseConfig{
			DefaultCount: 12,
			AcronymBoost: 6,
			AlnumBoost:   4,
			MinChars:     3,
			MaxChars:     50,
		},
		Retrieval: config.RetrievalConfig{TopK: 3, MaxContextChars: 12000},
	}
}

func newTestProcessor(t *testing.T, cfg *config.Config) *Processor {
	t.Helper()
	p, err := New(cfg, utils.NewDiscardLogger())
	require.NoError(t, err)
	return p
}

func TestAnalyze(t *testing.T) {
	p := newTestProcessor(t, testConfig())
	a := p.Analyze(slideText, 1, 3)

	require.Equal(t,
		"- Frequency reuse allows the same channel to serve distant cells without interference.\n"+
			"Cell splitting increases capacity by dividing congested cells into smaller microcells.",
		a.Cleaned)
	require.Equal(t, 2, a.SentenceCount)
	require.Equal(t,
		[]string{"- Frequency reuse allows the same channel to serve distant cells without interference."},
		a.Summary)
	require.Len(t, a.Keyphrases, 3)
	require.Positive(t, a.EstimatedTokens)
}

func TestAnalyzeEmpty(t *testing.T) {
	p := newTestProcessor(t, testConfig())
	a := p.Analyze("", 3, 3)
	require.Empty(t, a.Cleaned)
	require.NotNil(t, a.Summary)
	require.NotNil(t, a.Keyphrases)
	require.Zero(t, a.SentenceCount)
}

func TestOperationsDelegate(t *testing.T) {
	p := newTestProcessor(t, testConfig())

	require.Equal(t, cleaner.Default().Clean(slideText), p.Clean(slideText))
	require.Len(t, p.Trace(slideText), 6)
	require.Equal(t, []string{"rsa", "key exchange"}, p.Keyphrases("RSA RSA RSA key exchange key exchange", 2))
	require.Equal(t, "rsa", p.RankedKeyphrases("RSA RSA RSA key exchange", 1)[0].Text)
	require.Equal(t, []string{"Only one.", "And two!"}, p.Summarize("Only one. And two!", 5))
	require.Equal(t, 2, p.SummarizeResult("Only one. And two!", 1).Total)
	require.Equal(t,
		[]string{"A2. Y follows from X.", "A1. X is true."},
		p.Retrieve("What is Y?", "A1. X is true.\n\nA2. Y follows from X.", 3))
}

func TestFocusAppliesContextBudget(t *testing.T) {
	cfg := testConfig()
	cfg.Retrieval.MaxContextChars = 20
	p := newTestProcessor(t, cfg)

	passage := "Alpha antennas.\n\nBeta antennas radiate."
	require.Equal(t, "Alpha antennas.\n\nBet", p.Focus("antennas", passage, 3))

	scored := p.RetrieveScored("antennas", passage, 3)
	require.Len(t, scored, 2)
	require.Equal(t, "Alpha antennas.", scored[0].Text)

	// Retrieve uses the context as given
	require.Len(t, p.Retrieve("radiate", passage, 1), 1)
	require.Equal(t, "Beta antennas radiate.", p.Retrieve("radiate", passage, 1)[0])
}

func TestNewLoadsVocabularyFile(t *testing.T) {
	line := "Wireless channel modelling notes from BUET lab"
	require.Equal(t, line, newTestProcessor(t, testConfig()).Clean(line))

	path := filepath.Join(t.TempDir(), "vocab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("institutions: [buet]\n"), 0o600))

	cfg := testConfig()
	cfg.Cleaner.VocabularyFile = path
	require.Empty(t, newTestProcessor(t, cfg).Clean(line))

	cfg.Cleaner.VocabularyFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := New(cfg, utils.NewDiscardLogger())
	require.Error(t, err)
}

func TestAnalyzeBatchKeepsOrder(t *testing.T) {
	p := newTestProcessor(t, testConfig())

	docs := make([]Document, 7)
	for i := range docs {
		docs[i] = Document{
			ID:   fmt.Sprintf("doc-%d", i),
			Text: fmt.Sprintf("Cluster %d reuses channels. Cluster sizes vary by design.", i),
		}
	}

	results, err := p.AnalyzeBatch(context.Background(), docs, 1, 2)
	require.NoError(t, err)
	require.Len(t, results, len(docs))
	for i, r := range results {
		require.Equal(t, docs[i].ID, r.ID)
		require.Equal(t, p.Analyze(docs[i].Text, 1, 2), r.Analysis)
	}
}

func TestAnalyzeBatchCancelled(t *testing.T) {
	p := newTestProcessor(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.AnalyzeBatch(ctx, []Document{{ID: "a", Text: "Some text."}}, 1, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBudgetHelpers(t *testing.T) {
	require.Equal(t, 4, EstimateTokens("frequency reuse { } distance"))
	require.True(t, ExceedsBudget("déjà vu", 3))
	require.False(t, ExceedsBudget("déjà", 4))
	require.Equal(t, "déj", TruncateContext("déjà vu", 3))
}
