package server

import "net/http"

// Routes registers all handlers and wraps them in the logging and metrics middleware.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/points", s.HandlePoints)
	mux.HandleFunc("GET /api/markers", s.HandleMarkers)
	mux.HandleFunc("GET /favicon.ico", s.HandleFavicon)
	mux.Handle("GET /metrics", MetricsHandler())
	mux.HandleFunc("GET /", s.HandleIndex)

	return RequestLogger(Metrics(mux))
}
