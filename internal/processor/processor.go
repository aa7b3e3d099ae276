// Package processor wires the text components into the operations exposed
// by the CLI and the HTTP API.
package processor

import (
	"context"

	"github.com/Laisky/errors/v2"
	"golang.org/x/sync/errgroup"

	"github.com/wgomg/notesift/internal/cleaner"
	"github.com/wgomg/notesift/internal/config"
	"github.com/wgomg/notesift/internal/keyphrase"
	"github.com/wgomg/notesift/internal/retrieval"
	"github.com/wgomg/notesift/internal/summary"
	"github.com/wgomg/notesift/internal/tokenize"
	"github.com/wgomg/notesift/internal/utils"
)

// Processor is immutable after New and safe for concurrent use.
type Processor struct {
	cfg        *config.Config
	logger     *utils.Logger
	cleaner    *cleaner.Cleaner
	summarizer *summary.Summarizer
	extractor  *keyphrase.Extractor
	retriever  *retrieval.Retriever
}

// New builds a processor from cfg, loading the vocabulary file when one is
// configured.
func New(cfg *config.Config, logger *utils.Logger) (*Processor, error) {
	vocab := cleaner.DefaultVocabulary()
	if path := cfg.Cleaner.VocabularyFile; path != "" {
		loaded, err := cleaner.LoadVocabulary(path)
		if err != nil {
			return nil, errors.Wrap(err, "load cleaner vocabulary")
		}
		vocab = loaded
		logger.Info(nil, "Loaded cleaner vocabulary from %s", path)
	}

	tok := tokenize.Default()

	return &Processor{
		cfg:    cfg,
		logger: logger,
		cleaner: cleaner.New(tok, vocab, cleaner.Options{
			DuplicateThreshold: cfg.Cleaner.DuplicateThreshold,
			ShortLineTokens:    cfg.Cleaner.ShortLineTokens,
			ResidualTokens:     cfg.Cleaner.ResidualTokens,
		}),
		summarizer: summary.New(tok, summary.Options{
			Damping:       cfg.Summary.Damping,
			MaxIterations: cfg.Summary.MaxIterations,
			Tolerance:     cfg.Summary.Tolerance,
		}),
		extractor: keyphrase.New(tok, keyphrase.Options{
			AcronymBoost: cfg.Keyphrase.AcronymBoost,
			AlnumBoost:   cfg.Keyphrase.AlnumBoost,
			MinChars:     cfg.Keyphrase.MinChars,
			MaxChars:     cfg.Keyphrase.MaxChars,
		}),
		retriever: retrieval.New(tok),
	}, nil
}

func (p *Processor) Config() *config.Config {
	return p.cfg
}

func (p *Processor) Clean(raw string) string {
	return p.cleaner.Clean(raw)
}

// Trace reports the fate of every input line.
func (p *Processor) Trace(raw string) []cleaner.Decision {
	return p.cleaner.Trace(raw)
}

func (p *Processor) Summarize(text string, m int) []string {
	return p.summarizer.Summarize(text, m).Sentences
}

func (p *Processor) SummarizeResult(text string, m int) summary.Result {
	return p.summarizer.Summarize(text, m)
}

func (p *Processor) Keyphrases(text string, k int) []string {
	return p.extractor.Phrases(text, k)
}

func (p *Processor) RankedKeyphrases(text string, k int) []keyphrase.Phrase {
	return p.extractor.Extract(text, k)
}

// Retrieve returns the k paragraphs of passage most relevant to question.
// The passage is used as given.
func (p *Processor) Retrieve(question, passage string, k int) []string {
	return p.retriever.Texts(question, passage, k)
}

// RetrieveScored cuts passage to the configured budget and returns the
// scored top k paragraphs.
func (p *Processor) RetrieveScored(question, passage string, k int) []retrieval.Paragraph {
	return p.retriever.Retrieve(question, TruncateContext(passage, p.cfg.Retrieval.MaxContextChars), k)
}

// Focus cuts passage to the configured budget and joins the top k
// paragraphs with blank lines.
func (p *Processor) Focus(question, passage string, k int) string {
	return p.retriever.Focus(question, TruncateContext(passage, p.cfg.Retrieval.MaxContextChars), k)
}

// Analyze cleans raw and extracts up to m summary sentences and k
// keyphrases from the cleaned text.
func (p *Processor) Analyze(raw string, m, k int) Analysis {
	cleaned := p.cleaner.Clean(raw)
	sum := p.summarizer.Summarize(cleaned, m)

	return Analysis{
		Cleaned:         cleaned,
		Summary:         nonNil(sum.Sentences),
		Keyphrases:      nonNil(p.extractor.Phrases(cleaned, k)),
		SentenceCount:   sum.Total,
		EstimatedTokens: EstimateTokens(cleaned),
	}
}

// AnalyzeBatch analyzes docs on at most App.WorkerCount goroutines. Results
// keep the order of docs. A cancelled context stops documents not yet
// started and its error is returned.
func (p *Processor) AnalyzeBatch(ctx context.Context, docs []Document, m, k int) ([]BatchResult, error) {
	reqID := utils.RequestID(ctx)
	results := make([]BatchResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.cfg.App.WorkerCount, 1))

	for i, doc := range docs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Wrapf(err, "analyze document %q", doc.ID)
			}
			analysis := p.Analyze(doc.Text, m, k)
			results[i] = BatchResult{ID: doc.ID, Analysis: analysis}
			p.logger.Debug(&reqID, "Analyzed document %q: sentences=%d, keyphrases=%d",
				doc.ID, analysis.SentenceCount, len(analysis.Keyphrases))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "batch analysis cancelled")
	}
	return results, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
