// Package api provides the HTTP server for the contribution pipeline.
// It exposes scoring, reward allocation, and recognition ledger
// operations as JSON endpoints.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/curie-network/curie/internal/app/recognition"
	"github.com/curie-network/curie/internal/app/reward"
	"github.com/curie-network/curie/internal/app/scoring"
	"github.com/curie-network/curie/internal/domain"
	"github.com/curie-network/curie/internal/infra/sqlite"
)

// Server is the Curie HTTP API server.
type Server struct {
	scoring        *scoring.Engine
	allocator      *reward.Allocator
	ledger         *recognition.Service
	history        *sqlite.DB
	defaultEpoch   int
	metricsEnabled bool
}

// NewServer creates a new API server over the wired services.
func NewServer(engine *scoring.Engine, allocator *reward.Allocator, ledger *recognition.Service, history *sqlite.DB, defaultEpoch int) *Server {
	if defaultEpoch < 1 {
		defaultEpoch = 1
	}
	return &Server{
		scoring:      engine,
		allocator:    allocator,
		ledger:       ledger,
		history:      history,
		defaultEpoch: defaultEpoch,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": "0.1.0"})
	})

	// Scoring
	r.Post("/api/evaluate", s.handleEvaluate)
	r.Post("/api/verify", s.handleVerify)

	// Rewards
	r.Post("/api/allocate", s.handleAllocate)
	r.Post("/api/allocate/batch", s.handleAllocateBatch)

	// Recognition
	r.Post("/api/contributions", s.handleRecordContribution)
	r.Get("/api/contributors/{id}", s.handleContributor)
	r.Get("/api/leaderboard", s.handleLeaderboard)
	r.Get("/api/legacy", s.handleLegacy)
	r.Get("/api/statistics", s.handleStatistics)
	r.Get("/api/badges", s.handleBadgeCatalog)

	// Audit history
	r.Get("/api/history/evaluations", s.handleEvaluationHistory)
	r.Get("/api/history/allocations", s.handleAllocationHistory)
	r.Post("/api/archive/documents", s.handleAddArchiveDocument)

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": msg,
	})
}

// writeDomainError maps domain error types onto HTTP statuses.
// Validation failures list every violated constraint.
func writeDomainError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":      "validation failed",
			"violations": ve.Violations,
		})
	case errors.Is(err, domain.ErrContributorNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeJSON decodes a request body, rejecting unknown shapes early.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
