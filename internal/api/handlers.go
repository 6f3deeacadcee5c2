package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/curie-network/curie/internal/app/recognition"
	"github.com/curie-network/curie/internal/domain"
	"github.com/curie-network/curie/internal/infra/metrics"
)

// ─── Scoring ────────────────────────────────────────────────────────────────

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var sub domain.Submission
	if err := decodeJSON(r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}

	eval, err := s.scoring.Evaluate(sub)
	if err != nil {
		metrics.ValidationFailures.Inc()
		writeDomainError(w, err)
		return
	}
	metrics.EvaluationsTotal.WithLabelValues(string(eval.Status)).Inc()

	if s.history != nil {
		if _, err := s.history.InsertEvaluation(eval, sub.Contributor, sub.Category); err != nil {
			log.Printf("[api] WARNING: evaluation history write failed: %v", err)
		}
	}
	writeJSON(w, http.StatusOK, eval)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "document archive not configured")
		return
	}
	var sub domain.Submission
	if err := decodeJSON(r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	result, err := s.scoring.VerifyAgainstArchive(sub, s.history)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	verdict := "duplicate"
	if result.IsNovel {
		verdict = "novel"
	}
	metrics.ArchiveChecks.WithLabelValues(verdict).Inc()
	writeJSON(w, http.StatusOK, result)
}

// ─── Rewards ────────────────────────────────────────────────────────────────

type allocateRequest struct {
	Evaluation domain.Evaluation `json:"evaluation"`
	Epoch      int               `json:"epoch"`
}

func (s *Server) handleAllocate(w http.ResponseWriter, r *http.Request) {
	var req allocateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Epoch == 0 {
		req.Epoch = s.defaultEpoch
	}

	alloc, err := s.allocator.Allocate(req.Evaluation, req.Epoch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	metrics.AllocationsTotal.Inc()
	metrics.TokensAllocated.Add(alloc.TotalTokens)

	if s.history != nil {
		if _, err := s.history.InsertAllocation(alloc); err != nil {
			log.Printf("[api] WARNING: allocation history write failed: %v", err)
		}
	}
	writeJSON(w, http.StatusOK, alloc)
}

type allocateBatchRequest struct {
	Evaluations []domain.Evaluation `json:"evaluations"`
	Epoch       int                 `json:"epoch"`
}

func (s *Server) handleAllocateBatch(w http.ResponseWriter, r *http.Request) {
	var req allocateBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Epoch == 0 {
		req.Epoch = s.defaultEpoch
	}

	start := time.Now()
	result := s.allocator.AllocateBatch(req.Evaluations, req.Epoch)
	metrics.BatchDuration.Observe(time.Since(start).Seconds())

	for _, alloc := range result.Allocations {
		metrics.AllocationsTotal.Inc()
		metrics.TokensAllocated.Add(alloc.TotalTokens)
		if s.history != nil {
			if _, err := s.history.InsertAllocation(alloc); err != nil {
				log.Printf("[api] WARNING: allocation history write failed: %v", err)
			}
		}
	}
	writeJSON(w, http.StatusOK, result)
}

// ─── Recognition ────────────────────────────────────────────────────────────

type contributionRequest struct {
	ContributorID  string  `json:"contributor_id"`
	SubmissionHash string  `json:"submission_hash"`
	Category       string  `json:"category"`
	SubmissionDate string  `json:"submission_date"` // RFC 3339 or YYYY-MM-DD
	CoherenceScore float64 `json:"coherence_score"`
}

type contributionResponse struct {
	Update  domain.RecognitionUpdate `json:"update"`
	Durable bool                     `json:"durable"`
	Warning string                   `json:"warning,omitempty"`
}

func (s *Server) handleRecordContribution(w http.ResponseWriter, r *http.Request) {
	var req contributionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.SubmissionHash == "" {
		req.SubmissionHash = uuid.NewString()
	}

	when, err := parseDate(req.SubmissionDate)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	update, err := s.ledger.RecordContribution(req.ContributorID, req.SubmissionHash, req.Category, when, req.CoherenceScore)
	if err != nil {
		// A persistence failure still applied the in-memory mutation;
		// report the update with a durability warning instead of
		// discarding it.
		if domain.IsPersistence(err) {
			metrics.ContributionsRecorded.Inc()
			writeJSON(w, http.StatusOK, contributionResponse{
				Update:  update,
				Durable: false,
				Warning: err.Error(),
			})
			return
		}
		writeDomainError(w, err)
		return
	}
	metrics.ContributionsRecorded.Inc()
	writeJSON(w, http.StatusOK, contributionResponse{Update: update, Durable: true})
}

func (s *Server) handleContributor(w http.ResponseWriter, r *http.Request) {
	rec, err := s.ledger.ContributorRecognition(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Leaderboard(queryLimit(r, 10)))
}

func (s *Server) handleLegacy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.LegacyContributors(queryLimit(r, 50)))
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Statistics())
}

func (s *Server) handleBadgeCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, recognition.BadgeCatalog())
}

// ─── Audit History ──────────────────────────────────────────────────────────

func (s *Server) handleEvaluationHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "history store not configured")
		return
	}
	evals, err := s.history.RecentEvaluations(queryLimit(r, 20))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, evals)
}

func (s *Server) handleAllocationHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "history store not configured")
		return
	}
	allocs, err := s.history.RecentAllocations(queryLimit(r, 20))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, allocs)
}

func (s *Server) handleAddArchiveDocument(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "history store not configured")
		return
	}
	var doc domain.ArchiveDocument
	if err := decodeJSON(r, &doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.AddedAt.IsZero() {
		doc.AddedAt = time.Now().UTC()
	}
	if err := s.history.InsertArchiveDocument(doc); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// ─── Request Parsing ────────────────────────────────────────────────────────

func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// parseDate accepts RFC 3339 timestamps or bare dates; empty means now.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	ve := domain.NewValidationError()
	ve.Addf("submission_date must be RFC 3339 or YYYY-MM-DD (got %q)", raw)
	return time.Time{}, ve
}
