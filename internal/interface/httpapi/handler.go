package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/internal/usecase"
	"flight-query-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 64 << 10
)

// Searcher processes one free-text flight query
type Searcher interface {
	Search(ctx context.Context, query string) (*entity.SearchResponse, error)
}

// Handler serves the search API
type Handler struct {
	searcher Searcher
	gatherer prometheus.Gatherer
	logger   logger.Logger
}

// NewHandler creates a new HTTP handler. gatherer may be nil to leave /metrics out.
func NewHandler(searcher Searcher, gatherer prometheus.Gatherer, logger logger.Logger) *Handler {
	return &Handler{
		searcher: searcher,
		gatherer: gatherer,
		logger:   logger,
	}
}

// Routes returns the mux with every endpoint wrapped in request-id and access logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.home)
	mux.HandleFunc("POST /search", h.search)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	if h.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
	return h.withRequestID(mux)
}

const homePage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Flight Query Service</title></head>
<body>
<h1>✈️ Flight Query Service</h1>
<p>POST <code>/search</code> with <code>{"query": "Delhi to Dubai tomorrow"}</code>.</p>
</body>
</html>
`

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(homePage))
}

type searchRequest struct {
	Query string `json:"query"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing 'query'"})
		return
	}

	resp, err := h.searcher.Search(r.Context(), req.Query)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, entity.ErrEmptyQuery):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing 'query'"})
	case errors.Is(err, entity.ErrInvalidModelOutput):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Invalid JSON in model output"})
	default:
		h.logger.Error("Search failed", "requestId", w.Header().Get(requestIDHeader), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

// writeJSON writes v without HTML escaping so emoji and Devanagari stay readable.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(usecase.ContextWithRequestID(r.Context(), id)))

		h.logger.Info("HTTP request",
			"requestId", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"durationMs", time.Since(start).Milliseconds())
	})
}
