package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"

	"github.com/wgomg/notesift/internal/config"
	"github.com/wgomg/notesift/internal/processor"
	"github.com/wgomg/notesift/internal/retrieval"
	"github.com/wgomg/notesift/internal/utils"
	"github.com/wgomg/notesift/internal/utils/httputils"
)

type Handler struct {
	logger    *utils.Logger
	processor *processor.Processor
	cache     *utils.ResultCache[processor.Analysis]
	cfg       *config.Config
}

func NewHandler(
	logger *utils.Logger,
	processor *processor.Processor,
	cache *utils.ResultCache[processor.Analysis],
	cfg *config.Config,
) *Handler {
	return &Handler{
		logger:    logger,
		processor: processor,
		cache:     cache,
		cfg:       cfg,
	}
}

// decode reads a JSON body into v, logging the raw body when enabled.
func (h *Handler) decode(r *http.Request, reqID string, v any) error {
	if _, err := httputils.LogRequestBody(r, h.logger, reqID); err != nil {
		return err
	}
	return httputils.DecodeJSON(r, v)
}

func (h *Handler) fail(w http.ResponseWriter, reqID, what string, err error) {
	h.logger.Error(&reqID, "%s: %v", what, err)
	httputils.HandleError(w, err)
}

func (h *Handler) respond(w http.ResponseWriter, reqID, message string, data any) {
	if err := httputils.SuccessResponse(w, message, data); err != nil {
		h.logger.Error(&reqID, "Error sending response: %v", err)
	}
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := utils.RequestID(r.Context())
	h.respond(w, reqID, "Document Intelligence Service is running", HealthResponse{
		Service:      "notesift",
		CacheSize:    h.cache.Size(),
		CacheHitRate: h.cache.HitRate(),
	})
}

func (h *Handler) HandleClean(w http.ResponseWriter, r *http.Request) {
	reqID := utils.RequestID(r.Context())

	var req TextRequest
	if err := h.decode(r, reqID, &req); err != nil {
		h.fail(w, reqID, "Invalid clean request", err)
		return
	}

	cleaned := h.processor.Clean(req.Text)
	h.logger.Info(&reqID, "Cleaned text: input_chars=%d, output_chars=%d", len(req.Text), len(cleaned))

	h.respond(w, reqID, "Text cleaned", CleanResponse{Cleaned: cleaned})
}

func (h *Handler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	reqID := utils.RequestID(r.Context())

	var req SummarizeRequest
	if err := h.decode(r, reqID, &req); err != nil {
		h.fail(w, reqID, "Invalid summarize request", err)
		return
	}

	m := config.ClampCount(req.MaxSentences, h.cfg.Summary.DefaultSentences)
	res := h.processor.SummarizeResult(req.Text, m)
	h.logger.Info(&reqID, "Summarized text: sentences=%d, selected=%d", res.Total, len(res.Sentences))

	summary := res.Sentences
	if summary == nil {
		summary = []string{}
	}
	h.respond(w, reqID, "Summary extracted", SummarizeResponse{Summary: summary, SentenceCount: res.Total})
}

func (h *Handler) HandleKeyphrases(w http.ResponseWriter, r *http.Request) {
	reqID := utils.RequestID(r.Context())

	var req KeyphrasesRequest
	if err := h.decode(r, reqID, &req); err != nil {
		h.fail(w, reqID, "Invalid keyphrases request", err)
		return
	}

	k := config.ClampCount(req.MaxPhrases, h.cfg.Keyphrase.DefaultCount)
	ranked := h.processor.RankedKeyphrases(req.Text, k)

	resp := KeyphrasesResponse{Keyphrases: make([]string, len(ranked)), Ranked: ranked}
	for i, p := range ranked {
		resp.Keyphrases[i] = p.Text
	}
	h.logger.Debug(&reqID, "Keyphrases: %v", resp.Keyphrases)

	h.respond(w, reqID, "Keyphrases extracted", resp)
}

func (h *Handler) HandleRetrieve(w http.ResponseWriter, r *http.Request) {
	reqID := utils.RequestID(r.Context())

	var req RetrieveRequest
	if err := h.decode(r, reqID, &req); err != nil {
		h.fail(w, reqID, "Invalid retrieve request", err)
		return
	}
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Context) == "" {
		h.fail(w, reqID, "Invalid retrieve request", httputils.BadRequest("question and context are required"))
		return
	}

	k := config.ClampCount(req.K, h.cfg.Retrieval.TopK)
	paragraphs := h.processor.RetrieveScored(req.Question, req.Context, k)

	texts := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		texts[i] = p.Text
	}
	if paragraphs == nil {
		paragraphs = []retrieval.Paragraph{}
	}

	h.logger.Info(&reqID, "Retrieved %d paragraphs for question %q", len(texts), utils.Preview(req.Question, 80))
	h.respond(w, reqID, "Relevant paragraphs retrieved", RetrieveResponse{
		Paragraphs: paragraphs,
		Focused:    strings.Join(texts, "\n\n"),
	})
}

func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	reqID := utils.RequestID(r.Context())

	var req AnalyzeRequest
	if err := h.decode(r, reqID, &req); err != nil {
		h.fail(w, reqID, "Invalid analyze request", err)
		return
	}

	m := config.ClampCount(req.MaxSentences, h.cfg.Summary.DefaultSentences)
	k := config.ClampCount(req.MaxPhrases, h.cfg.Keyphrase.DefaultCount)
	key := utils.Key("analyze", req.Text, strconv.Itoa(m), strconv.Itoa(k))

	if analysis, ok := h.cache.Get(key); ok {
		h.logger.Debug(&reqID, "Analysis served from cache (hit rate %.2f)", h.cache.HitRate())
		h.respond(w, reqID, "Document analyzed", AnalyzeResponse{Analysis: analysis, Cached: true})
		return
	}

	analysis := h.processor.Analyze(req.Text, m, k)
	h.cache.Add(key, analysis)

	h.logger.Info(&reqID, "Analyzed document: sentences=%d, estimated_tokens=%d, keyphrases=%d",
		analysis.SentenceCount, analysis.EstimatedTokens, len(analysis.Keyphrases))
	h.respond(w, reqID, "Document analyzed", AnalyzeResponse{Analysis: analysis})
}

func (h *Handler) HandleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	reqID := utils.RequestID(r.Context())

	var req BatchRequest
	if err := h.decode(r, reqID, &req); err != nil {
		h.fail(w, reqID, "Invalid batch request", err)
		return
	}
	if len(req.Documents) == 0 {
		h.fail(w, reqID, "Invalid batch request", httputils.BadRequest("documents are required"))
		return
	}
	if len(req.Documents) > MaxBatchDocuments {
		h.fail(w, reqID, "Invalid batch request",
			httputils.BadRequest("at most "+strconv.Itoa(MaxBatchDocuments)+" documents per batch"))
		return
	}

	m := config.ClampCount(req.MaxSentences, h.cfg.Summary.DefaultSentences)
	k := config.ClampCount(req.MaxPhrases, h.cfg.Keyphrase.DefaultCount)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.cfg.App.HttpTimeoutSeconds)*time.Second)
	defer cancel()

	h.logger.Info(&reqID, "Analyzing batch of %d documents", len(req.Documents))
	results, err := h.processor.AnalyzeBatch(ctx, req.Documents, m, k)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = &httputils.HTTPError{Code: http.StatusGatewayTimeout, Message: "Batch analysis timed out"}
		}
		h.fail(w, reqID, "Batch analysis failed", err)
		return
	}

	h.respond(w, reqID, "Batch analyzed", BatchResponse{Results: results})
}
