package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsearch/internal/domain"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/request"
	healthuc "github.com/kailas-cloud/shopsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/shopsearch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Config holds request-level settings of the API.
type Config struct {
	Limits  request.Limits
	Timeout time.Duration // per-search deadline; zero disables it
}

// Server serves the search API.
type Server struct {
	search        searchuc.Searcher
	health        HealthChecker
	limits        request.Limits
	timeout       time.Duration
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search searchuc.Searcher, health HealthChecker, cfg Config, logger *zap.Logger) *Server {
	if cfg.Limits.DefaultPageSize <= 0 || cfg.Limits.MaxPageSize <= 0 {
		cfg.Limits = request.DefaultLimits()
	}
	return &Server{
		search:  search,
		health:  health,
		limits:  cfg.Limits,
		timeout: cfg.Timeout,
		logger:  logger,
		errorHandlers: []errorHandler{
			sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest,
				ErrorCodeEmptyQuery, missingQueryParameterMessage),
			sentinelHandler(domain.ErrResourceUnavailable, http.StatusServiceUnavailable,
				ErrorCodeServiceUnavailable, "search temporarily unavailable"),
		},
	}
}

// SearchProducts handles GET /api/search.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	// Bad numbers fall back to defaults; request.New clamps the rest.
	var page, pageSize int
	if err := runtime.BindQueryParameter("form", true, false, "page", params, &page); err != nil {
		page = 0
	}
	if err := runtime.BindQueryParameter("form", true, false, "page_size", params, &pageSize); err != nil {
		pageSize = 0
	}

	req, err := request.New(params.Get("q"), page, pageSize, s.limits)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.search.Search(ctx, req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseFromResult(&res))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// NotFound handles unknown routes.
func (s *Server) NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, ErrorCodeNotFound, "not found")
}

// MethodNotAllowed handles known routes with an unsupported method.
func (s *Server) MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, ErrorCodeMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	// Collaborator faults and anything unclassified never leak details.
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
