package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /health", handler.HandleHealth)
	mux.HandleFunc("POST /clean", handler.HandleClean)
	mux.HandleFunc("POST /summarize", handler.HandleSummarize)
	mux.HandleFunc("POST /keyphrases", handler.HandleKeyphrases)
	mux.HandleFunc("POST /retrieve", handler.HandleRetrieve)
	mux.HandleFunc("POST /analyze", handler.HandleAnalyze)
	mux.HandleFunc("POST /analyze/batch", handler.HandleAnalyzeBatch)
}

// NewRouter returns the routes wrapped in the request middleware.
func NewRouter(handler *Handler) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, handler)
	return WithRequestID(handler.logger, LimitBody(mux))
}
