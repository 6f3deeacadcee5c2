package scoring_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/curie-network/curie/internal/app/scoring"
	"github.com/curie-network/curie/internal/domain"
)

func testEngine() *scoring.Engine {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return scoring.NewEngineWithClock(func() time.Time { return fixed })
}

func validSubmission() domain.Submission {
	return domain.Submission{
		ID:          "sub-001",
		Title:       "Novel catalytic mechanism for ambient-pressure carbon capture",
		Description: "We present a novel experiment demonstrating an innovative mechanism. The discovery was replicated across three labs. Evidence suggests a significant impact on climate mitigation. This breakthrough could transform capture economics.",
		Evidence:    "Dataset and measurement protocol published with DOI. Code in public repository. Results replicated and peer-reviewed.",
		Category:    "climate",
		Contributor: "alice",
	}
}

// ─── Validation ─────────────────────────────────────────────────────────────

func TestEvaluate_EmptyTitleRejected(t *testing.T) {
	sub := validSubmission()
	sub.Title = ""

	_, err := testEngine().Evaluate(sub)
	if err == nil {
		t.Fatal("expected validation error for empty title")
	}
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if !strings.Contains(err.Error(), "title") {
		t.Errorf("error should name the title field: %v", err)
	}
}

func TestEvaluate_OverlongDescriptionRejected(t *testing.T) {
	sub := validSubmission()
	sub.Description = strings.Repeat("x", 2500)

	_, err := testEngine().Evaluate(sub)
	if err == nil {
		t.Fatal("expected validation error for 2500-char description")
	}
	if !strings.Contains(err.Error(), "description exceeds 2000") {
		t.Errorf("error should name the length violation: %v", err)
	}
}

func TestEvaluate_AccumulatesAllViolations(t *testing.T) {
	sub := domain.Submission{
		Title:       strings.Repeat("t", 300),
		Description: "",
		Category:    "",
	}

	_, err := testEngine().Evaluate(sub)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Violations) != 3 {
		t.Errorf("expected 3 accumulated violations, got %d: %v", len(ve.Violations), ve.Violations)
	}
}

// ─── Scoring Invariants ─────────────────────────────────────────────────────

func TestEvaluate_ScoresBounded(t *testing.T) {
	subs := []domain.Submission{
		validSubmission(),
		{Title: "x", Description: "y", Category: "unknown-field"},
		{Title: "a study report overview summary", Description: "short. study.", Category: "zzz"},
	}

	for _, sub := range subs {
		eval, err := testEngine().Evaluate(sub)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		for name, v := range map[string]float64{
			"novelty":       eval.Scores.Novelty,
			"significance":  eval.Scores.Significance,
			"verification":  eval.Scores.Verification,
			"documentation": eval.Scores.Documentation,
			"overall":       eval.OverallScore,
		} {
			if v < 0 || v > 1 {
				t.Errorf("%s out of [0,1]: %v", name, v)
			}
		}
	}
}

func TestEvaluate_OverallIsWeightedSum(t *testing.T) {
	eval, err := testEngine().Evaluate(validSubmission())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	want := 0.3*eval.Scores.Novelty + 0.3*eval.Scores.Significance +
		0.2*eval.Scores.Verification + 0.2*eval.Scores.Documentation
	if diff := eval.OverallScore - want; diff > 0.005 || diff < -0.005 {
		t.Errorf("overall %v not within rounding tolerance of weighted sum %v", eval.OverallScore, want)
	}
	if eval.Status != domain.StatusForScore(eval.OverallScore) {
		t.Errorf("status %s inconsistent with overall %v", eval.Status, eval.OverallScore)
	}
}

func TestEvaluate_NoEvidenceScoresLowVerification(t *testing.T) {
	sub := validSubmission()
	sub.Evidence = "   "

	eval, err := testEngine().Evaluate(sub)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if eval.Scores.Verification != 0.1 {
		t.Errorf("expected fixed 0.1 verification without evidence, got %v", eval.Scores.Verification)
	}
}

func TestEvaluate_UnrecognizedCategoryUsesDefaultMultiplier(t *testing.T) {
	sub := validSubmission()
	sub.Category = "numerology"
	sub.Title = "Plain result"
	sub.Description = "Plain text without any matching terms at all."

	eval, err := testEngine().Evaluate(sub)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	// 0.7 × 0.5 default multiplier, no impact keywords.
	if diff := eval.Scores.Significance - 0.35; diff > 0.001 || diff < -0.001 {
		t.Errorf("expected significance 0.35 for unrecognized category, got %v", eval.Scores.Significance)
	}
}

// ─── Recommendations ────────────────────────────────────────────────────────

func TestEvaluate_WeakScoresGetAdvisories(t *testing.T) {
	sub := domain.Submission{
		Title:       "Tiny",
		Description: "Too short.",
		Category:    "misc",
	}
	eval, err := testEngine().Evaluate(sub)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(eval.Recommendations) == 0 {
		t.Fatal("expected advisories for weak submission")
	}
	// No evidence → verification advisory must be present.
	var hasVerification bool
	for _, r := range eval.Recommendations {
		if strings.Contains(r, "evidence") {
			hasVerification = true
		}
	}
	if !hasVerification {
		t.Errorf("expected verification advisory, got %v", eval.Recommendations)
	}
}

func TestEvaluate_StrongSubmissionGetsGenericAdvisory(t *testing.T) {
	eval, err := testEngine().Evaluate(validSubmission())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	weak := 0
	for _, s := range []float64{eval.Scores.Novelty, eval.Scores.Significance, eval.Scores.Verification, eval.Scores.Documentation} {
		if s < 0.5 {
			weak++
		}
	}
	if weak == 0 && len(eval.Recommendations) != 1 {
		t.Errorf("expected single generic advisory, got %v", eval.Recommendations)
	}
}
