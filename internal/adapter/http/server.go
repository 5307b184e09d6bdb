package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/ops-report-service/internal/domain"
)

// maxBodyBytes caps the report request body.
const maxBodyBytes = 1 << 10

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// ReportBuilder builds the report for a YYYY-MM-DD date.
type ReportBuilder interface {
	ReadinessChecker
	Build(ctx context.Context, reportDate string) (domain.Report, error)
}

// Server exposes the report API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	reports    ReportBuilder
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the report routes and /healthz,
// /readyz and /metrics.
func NewServer(addr string, reports ReportBuilder, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      45 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		reports: reports,
		logger:  logger,
	}

	mux.HandleFunc("POST /api/sheets-data", s.handleSheetsData)
	mux.HandleFunc("GET /api/reports/{date}", s.handleReport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(reports))
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpServer.Handler = requestID(accessLog(logger, mux))
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type sheetsDataRequest struct {
	Date string `json:"date"`
}

func (s *Server) handleSheetsData(w http.ResponseWriter, r *http.Request) {
	var req sheetsDataRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be a JSON object with a date field")
		return
	}
	s.serveReport(w, r, req.Date)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, r.PathValue("date"))
}

func (s *Server) serveReport(w http.ResponseWriter, r *http.Request, date string) {
	report, err := s.reports.Build(r.Context(), date)
	if err != nil {
		status, code := classify(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("report request failed", "date", date, "code", code, "error", err, "request_id", RequestIDFrom(r.Context()))
		}
		writeError(w, status, code, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// classify maps an error to an HTTP status and a stable error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidReportDate):
		return http.StatusBadRequest, "invalid_date"
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusServiceUnavailable, "configuration_error"
	case errors.Is(err, domain.ErrSourceUnavailable):
		return http.StatusBadGateway, "source_unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": msg, "code": code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}
