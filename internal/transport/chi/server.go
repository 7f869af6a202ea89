package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/solrkit/internal/domain"
	logpkg "github.com/kailas-cloud/solrkit/internal/logger"
	"github.com/kailas-cloud/solrkit/internal/query"
	"github.com/kailas-cloud/solrkit/internal/transport/solr"
)

// Error codes returned in the error body.
const (
	codeBadRequest      = "bad_request"
	codeValidation      = "validation_failed"
	codeUnauthorized    = "unauthorized"
	codeUnsupportedType = "unsupported_component"
	codeEngineError     = "engine_error"
	codeEngineDown      = "engine_unavailable"
	codeEmbeddingError  = "embedding_provider_error"
	codeEmbedderMissing = "embedder_not_configured"
	codeInternalError   = "internal_error"
)

const maxSelectRequestSize = 1 << 20

// Searcher runs select queries against a core.
type Searcher interface {
	SelectCore(ctx context.Context, core string, q *query.Select) (*query.Result, error)
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server is the HTTP gateway in front of the engine client.
type Server struct {
	searcher      Searcher
	checks        map[string]HealthCheck
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP gateway server.
func NewServer(searcher Searcher, checks map[string]HealthCheck, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{searcher: searcher, checks: checks, logger: logger}
	s.errorHandlers = []errorHandler{
		statusErrorHandler,
		sentinelHandler(domain.ErrUnsupportedType, http.StatusBadRequest, codeUnsupportedType),
		sentinelHandler(domain.ErrInvalidConfiguration, http.StatusBadRequest, codeValidation),
		sentinelHandler(domain.ErrDuplicateKey, http.StatusBadRequest, codeValidation),
		sentinelHandler(domain.ErrMissingKey, http.StatusBadRequest, codeValidation),
		sentinelHandler(domain.ErrMalformedResponse, http.StatusBadGateway, codeEngineError),
		sentinelHandler(domain.ErrEmbedderNotConfigured, http.StatusNotImplemented, codeEmbedderMissing),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingError),
		sentinelHandler(solr.ErrUnavailable, http.StatusServiceUnavailable, codeEngineDown),
	}
	return s
}

// Routes mounts the gateway endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/cores/{core}/select", s.Select)
	r.Get("/health", s.Health)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// Select handles POST /v1/cores/{core}/select.
func (s *Server) Select(w http.ResponseWriter, r *http.Request) {
	core := chi.URLParam(r, "core")

	var body SelectRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSelectRequestSize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := body.toQuery()
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	res, err := s.searcher.SelectCore(r.Context(), core, q)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{Status: "healthy", Checks: make(map[string]string, len(names))}
	status := http.StatusOK
	for _, name := range names {
		if err := s.checks[name](ctx); err != nil {
			logpkg.FromContext(r.Context()).Warn("health check failed", zap.String("check", name), zap.Error(err))
			resp.Checks[name] = "unhealthy"
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "healthy"
	}

	writeJSON(w, status, resp)
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

// statusErrorHandler maps engine rejections to 400 and engine faults to 502.
func statusErrorHandler(w http.ResponseWriter, err error) bool {
	var se *solr.StatusError
	if !errors.As(err, &se) {
		return false
	}
	if se.StatusCode >= 400 && se.StatusCode < 500 {
		writeError(w, http.StatusBadRequest, codeEngineError, se.Message)
		return true
	}
	writeError(w, http.StatusBadGateway, codeEngineError, "engine error")
	return true
}

func (s *Server) handleDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := logpkg.FromContext(ctx)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			logger.Warn("select failed", zap.Error(err))
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
