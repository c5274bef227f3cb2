package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/depsnap/internal/logging"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ApplyRequest is the body of POST /apply.
type ApplyRequest struct {
	Project         string         `json:"project"`
	TargetFramework string         `json:"target_framework"`
	Changes         domain.Changes `json:"changes"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server exposes an Engine as a JSON API.
type Server struct {
	Engine  ports.Engine
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Engine, opts ...Option) http.Handler {
	s := &Server{Engine: engine, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/filters", s.Filters)
	r.Get("/snapshots", s.Keys)
	r.Get("/snapshot", s.Snapshot)
	r.Delete("/snapshot", s.Forget)
	r.Post("/apply", s.Apply)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Filters handles GET /filters.
func (s *Server) Filters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"filters": s.Engine.Filters()})
}

// Keys handles GET /snapshots.
func (s *Server) Keys(w http.ResponseWriter, r *http.Request) {
	keys, err := s.Engine.Keys(r.Context())
	if err != nil {
		s.fail(w, "Keys", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"keys": keys})
}

// Snapshot handles GET /snapshot?project=...&target_framework=...
func (s *Server) Snapshot(w http.ResponseWriter, r *http.Request) {
	project, tf, ok := target(w, r)
	if !ok {
		return
	}
	snap, err := s.Engine.Snapshot(r.Context(), project, tf)
	if err != nil {
		s.fail(w, "Snapshot", err)
		return
	}
	writeJSON(w, http.StatusOK, snap.View())
}

// Forget handles DELETE /snapshot?project=...&target_framework=...
func (s *Server) Forget(w http.ResponseWriter, r *http.Request) {
	project, tf, ok := target(w, r)
	if !ok {
		return
	}
	if err := s.Engine.Forget(r.Context(), project, tf); err != nil {
		s.fail(w, "Forget", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Apply handles POST /apply.
func (s *Server) Apply(w http.ResponseWriter, r *http.Request) {
	var body ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		s.logger.Warn("Apply: Invalid request body", "error", err)
		return
	}
	if body.Project == "" || body.TargetFramework == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "project and target_framework are required"})
		return
	}

	snap, err := s.Engine.Apply(r.Context(), body.Project, domain.NewTargetFramework(body.TargetFramework), body.Changes)
	if err != nil {
		s.fail(w, "Apply", err)
		return
	}
	writeJSON(w, http.StatusOK, snap.View())
}

func target(w http.ResponseWriter, r *http.Request) (string, domain.TargetFramework, bool) {
	project := r.URL.Query().Get("project")
	moniker := r.URL.Query().Get("target_framework")
	if project == "" || moniker == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "project and target_framework are required"})
		return "", domain.TargetFramework{}, false
	}
	return project, domain.NewTargetFramework(moniker), true
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyDependencyID),
		errors.Is(err, domain.ErrMalformedID),
		errors.Is(err, domain.ErrAmbiguousKind),
		errors.Is(err, domain.ErrInconsistentSnapshot):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
