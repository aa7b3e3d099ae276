package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wgomg/notesift/internal/config"
	"github.com/wgomg/notesift/internal/processor"
	"github.com/wgomg/notesift/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{WorkerCount: 2, CacheSize: 8, HttpTimeoutSeconds: 30, ServerPort: "8080"},
		Cleaner:   config.CleanerConfig{DuplicateThreshold: 0.92, ShortLineTokens: 4, ResidualTokens: 6},
		Summary:   config.SummaryConfig{Damping: 0.85, MaxIterations: 30, Tolerance: 1e-4, DefaultSentences: 5},
		Keyphrase: config.KeyphraseConfig{DefaultCount: 12, AcronymBoost: 6, AlnumBoost: 4, MinChars: 3, MaxChars: 50},
		Retrieval: config.RetrievalConfig{TopK: 3, MaxContextChars: 12000},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := testConfig()
	logger := utils.NewDiscardLogger()

	proc, err := processor.New(cfg, logger)
	require.NoError(t, err)
	cache, err := utils.NewResultCache[processor.Analysis](cfg.App.CacheSize)
	require.NoError(t, err)

	return NewRouter(NewHandler(logger, proc, cache, cfg))
}

type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func post(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, "success", env.Status)
	return env.Data
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get(RequestIDHeader))
	require.Equal(t, "notesift", decode[HealthResponse](t, w).Service)
}

func TestRequestIDIsEchoed(t *testing.T) {
	router := newTestRouter(t)
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestClean(t *testing.T) {
	w := post(t, newTestRouter(t), "/clean",
		`{"text":"Department of Electrical and Electronic Engineering, KUET\nCell splitting increases capacity by dividing congested cells."}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		"Cell splitting increases capacity by dividing congested cells.",
		decode[CleanResponse](t, w).Cleaned)
}

func TestSummarize(t *testing.T) {
	w := post(t, newTestRouter(t), "/summarize", `{"text":"Only one. And two!","max_sentences":5}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[SummarizeResponse](t, w)
	require.Equal(t, []string{"Only one.", "And two!"}, resp.Summary)
	require.Equal(t, 2, resp.SentenceCount)

	w = post(t, newTestRouter(t), "/summarize", `{"text":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{}, decode[SummarizeResponse](t, w).Summary)
}

func TestKeyphrases(t *testing.T) {
	w := post(t, newTestRouter(t), "/keyphrases", `{"text":"RSA RSA RSA key exchange key exchange","max_phrases":2}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[KeyphrasesResponse](t, w)
	require.Equal(t, []string{"rsa", "key exchange"}, resp.Keyphrases)
	require.Equal(t, 9, resp.Ranked[0].Weight)
}

func TestKeyphrasesCountIsClamped(t *testing.T) {
	words := make([]string, 0, 200)
	for i := range 200 {
		words = append(words, "term"+strings.Repeat("x", i%40)+"word")
	}
	w := post(t, newTestRouter(t), "/keyphrases", `{"text":"`+strings.Join(words, " ")+`","max_phrases":500}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.LessOrEqual(t, len(decode[KeyphrasesResponse](t, w).Keyphrases), config.MaxCount)
}

func TestRetrieve(t *testing.T) {
	w := post(t, newTestRouter(t), "/retrieve",
		`{"question":"What is Y?","context":"A1. X is true.\n\nA2. Y follows from X."}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[RetrieveResponse](t, w)
	require.Len(t, resp.Paragraphs, 2)
	require.Equal(t, "A2. Y follows from X.", resp.Paragraphs[0].Text)
	require.Equal(t, "A2. Y follows from X.\n\nA1. X is true.", resp.Focused)
}

func TestRetrieveRequiresQuestionAndContext(t *testing.T) {
	router := newTestRouter(t)
	for _, body := range []string{
		`{"question":"","context":"Some text."}`,
		`{"question":"Why?","context":"   "}`,
		`{}`,
	} {
		w := post(t, router, "/retrieve", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		require.JSONEq(t, `{"error":"question and context are required"}`, w.Body.String())
	}
}

func TestAnalyzeIsCached(t *testing.T) {
	router := newTestRouter(t)
	body := `{"text":"Frequency reuse increases capacity. Reuse distance controls interference.","max_sentences":1,"max_phrases":3}`

	first := decode[AnalyzeResponse](t, post(t, router, "/analyze", body))
	require.False(t, first.Cached)
	require.Len(t, first.Summary, 1)
	require.Equal(t, 2, first.SentenceCount)

	second := decode[AnalyzeResponse](t, post(t, router, "/analyze", body))
	require.True(t, second.Cached)
	require.Equal(t, first.Analysis, second.Analysis)
}

func TestAnalyzeBatch(t *testing.T) {
	router := newTestRouter(t)
	w := post(t, router, "/analyze/batch",
		`{"documents":[{"id":"a","text":"Cells reuse channels."},{"id":"b","text":"Antennas radiate power."}],"max_sentences":1}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[BatchResponse](t, w)
	require.Len(t, resp.Results, 2)
	require.Equal(t, "a", resp.Results[0].ID)
	require.Equal(t, "b", resp.Results[1].ID)
	require.Equal(t, []string{"Antennas radiate power."}, resp.Results[1].Analysis.Summary)

	w = post(t, router, "/analyze/batch", `{"documents":[]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRejectsBadRequests(t *testing.T) {
	router := newTestRouter(t)

	w := post(t, router, "/clean", `{"text":`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	r := httptest.NewRequest(http.MethodPost, "/clean", strings.NewReader(`{"text":"x"}`))
	r.Header.Set("Content-Type", "text/plain")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clean", nil))
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
