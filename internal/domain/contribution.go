// Package domain defines the core types of the Curie contribution
// pipeline: submissions, evaluations, token allocations, and the
// recognition ledger records derived from them.
package domain

import "time"

// ─── Submission ─────────────────────────────────────────────────────────────

// Field length limits enforced before any scoring happens.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 2000
)

// Submission is a contributed artifact, immutable once scored.
type Submission struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Evidence    string `json:"evidence,omitempty"`
	Category    string `json:"category"`
	Contributor string `json:"contributor"`
}

// ─── Evaluation ─────────────────────────────────────────────────────────────

// EvalStatus is the qualitative tier assigned from the overall score.
type EvalStatus string

const (
	StatusExcellent        EvalStatus = "excellent"
	StatusGood             EvalStatus = "good"
	StatusAcceptable       EvalStatus = "acceptable"
	StatusNeedsImprovement EvalStatus = "needs_improvement"
)

// StatusForScore maps an overall score to its tier.
// Thresholds: 0.8 excellent, 0.6 good, 0.4 acceptable.
func StatusForScore(overall float64) EvalStatus {
	switch {
	case overall >= 0.8:
		return StatusExcellent
	case overall >= 0.6:
		return StatusGood
	case overall >= 0.4:
		return StatusAcceptable
	default:
		return StatusNeedsImprovement
	}
}

// Scores holds the four bounded sub-scores, each in [0,1].
type Scores struct {
	Novelty       float64 `json:"novelty"`
	Significance  float64 `json:"significance"`
	Verification  float64 `json:"verification"`
	Documentation float64 `json:"documentation"`
}

// Sub-score weights. Overall = 0.3·novelty + 0.3·significance +
// 0.2·verification + 0.2·documentation.
const (
	WeightNovelty       = 0.3
	WeightSignificance  = 0.3
	WeightVerification  = 0.2
	WeightDocumentation = 0.2
)

// Overall returns the weighted overall score, rounded to 2 decimals.
func (s Scores) Overall() float64 {
	return Round2(WeightNovelty*s.Novelty +
		WeightSignificance*s.Significance +
		WeightVerification*s.Verification +
		WeightDocumentation*s.Documentation)
}

// Evaluation is the scored result for one submission.
type Evaluation struct {
	SubmissionID    string     `json:"submission_id"`
	Scores          Scores     `json:"scores"`
	OverallScore    float64    `json:"overall_score"`
	Status          EvalStatus `json:"status"`
	Recommendations []string   `json:"recommendations"`
	Timestamp       time.Time  `json:"timestamp"`
}

// VerificationResult is the outcome of checking a submission against
// the document archive. The similarity heuristic behind it is a
// placeholder for a real embedding nearest-neighbor service; the
// contract (score in [0,1], threshold semantics) is what callers rely on.
type VerificationResult struct {
	SubmissionID     string            `json:"submission_id"`
	SimilarityScore  float64           `json:"similarity_score"`
	IsNovel          bool              `json:"is_novel"`
	RelatedDocuments []RelatedDocument `json:"related_documents"`
}

// RelatedDocument describes one archive document similar to a submission.
type RelatedDocument struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

// ArchiveDocument is a previously accepted artifact kept for novelty checks.
type ArchiveDocument struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Abstract string    `json:"abstract"`
	Category string    `json:"category"`
	AddedAt  time.Time `json:"added_at"`
}

// ─── Allocation ─────────────────────────────────────────────────────────────

// Allocation is the token reward derived from one approved evaluation.
// TotalTokens = BaseTokens + Σ Bonuses + EpochBonus, never negative.
type Allocation struct {
	SubmissionID string             `json:"submission_id"`
	BaseTokens   float64            `json:"base_tokens"`
	Bonuses      map[string]float64 `json:"bonuses"`
	EpochBonus   float64            `json:"epoch_bonus"`
	TotalTokens  float64            `json:"total_tokens"`
	Epoch        int                `json:"epoch"`
	Timestamp    time.Time          `json:"timestamp"`
}

// BonusTotal sums all conditional bonuses.
func (a Allocation) BonusTotal() float64 {
	var sum float64
	for _, v := range a.Bonuses {
		sum += v
	}
	return sum
}

// BatchError records a single failed item in a batch run. The index
// refers to the position in the input slice.
type BatchError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// BatchSummary aggregates a batch allocation run.
type BatchSummary struct {
	TotalEvaluations      int       `json:"total_evaluations"`
	SuccessfulAllocations int       `json:"successful_allocations"`
	FailedAllocations     int       `json:"failed_allocations"`
	TotalTokensAllocated  float64   `json:"total_tokens_allocated"`
	AverageTokens         float64   `json:"average_tokens_per_allocation"`
	Epoch                 int       `json:"epoch"`
	Timestamp             time.Time `json:"timestamp"`
}

// BatchResult is the outcome of allocating a whole epoch's evaluations.
// Items whose status is not approved are skipped, not failed.
type BatchResult struct {
	Allocations []Allocation `json:"allocations"`
	Summary     BatchSummary `json:"summary"`
	Errors      []BatchError `json:"errors"`
}
