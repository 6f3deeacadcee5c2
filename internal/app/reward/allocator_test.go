package reward_test

import (
	"testing"
	"time"

	"github.com/curie-network/curie/internal/app/reward"
	"github.com/curie-network/curie/internal/domain"
)

func testAllocator(base float64) *reward.Allocator {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return reward.NewAllocatorWithClock(base, func() time.Time { return fixed })
}

func approxEq(a, b float64) bool {
	d := a - b
	return d < 0.005 && d > -0.005
}

// ─── Single Allocation ──────────────────────────────────────────────────────

func TestAllocate_ReferenceScenario(t *testing.T) {
	// overall 0.825 at base 100: base 82.5, novelty +50 (0.9 > 0.8),
	// significance +50 (0.85 > 0.8), no verification bonus (0.8 not > 0.9),
	// no documentation bonus, epoch bonus 8.25 at epoch 1 → total 190.75.
	eval := domain.Evaluation{
		SubmissionID: "sub-1",
		OverallScore: 0.825,
		Scores: domain.Scores{
			Novelty:       0.9,
			Significance:  0.85,
			Verification:  0.8,
			Documentation: 0.75,
		},
		Status: "approved",
	}

	alloc, err := testAllocator(100).Allocate(eval, 1)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}

	if !approxEq(alloc.BaseTokens, 82.5) {
		t.Errorf("base: expected 82.5, got %v", alloc.BaseTokens)
	}
	if !approxEq(alloc.Bonuses["novelty"], 50.0) {
		t.Errorf("novelty bonus: expected 50.0 (base reward × 0.5), got %v", alloc.Bonuses["novelty"])
	}
	if !approxEq(alloc.Bonuses["significance"], 50.0) {
		t.Errorf("significance bonus: expected 50.0, got %v", alloc.Bonuses["significance"])
	}
	if _, ok := alloc.Bonuses["verification"]; ok {
		t.Error("verification bonus must not fire at 0.8")
	}
	if _, ok := alloc.Bonuses["documentation"]; ok {
		t.Error("documentation bonus must not fire at 0.75")
	}
	if !approxEq(alloc.EpochBonus, 8.25) {
		t.Errorf("epoch bonus: expected 8.25, got %v", alloc.EpochBonus)
	}
	want := alloc.BaseTokens + alloc.BonusTotal() + alloc.EpochBonus
	if !approxEq(alloc.TotalTokens, want) {
		t.Errorf("total %v != components %v", alloc.TotalTokens, want)
	}
}

func TestAllocate_TotalNeverNegative(t *testing.T) {
	eval := domain.Evaluation{SubmissionID: "s", OverallScore: 0, Status: "approved"}
	alloc, err := testAllocator(100).Allocate(eval, 50)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if alloc.TotalTokens < 0 {
		t.Errorf("total tokens negative: %v", alloc.TotalTokens)
	}
}

func TestAllocate_EpochBonusMonotonicDecay(t *testing.T) {
	eval := domain.Evaluation{SubmissionID: "s", OverallScore: 0.9, Status: "approved"}
	a := testAllocator(100)

	prev := -1.0
	for _, epoch := range []int{1, 2, 3, 5, 10, 100} {
		alloc, err := a.Allocate(eval, epoch)
		if err != nil {
			t.Fatalf("epoch %d: %v", epoch, err)
		}
		if prev >= 0 && alloc.EpochBonus > prev {
			t.Errorf("epoch bonus increased at epoch %d: %v > %v", epoch, alloc.EpochBonus, prev)
		}
		prev = alloc.EpochBonus
	}
}

func TestAllocate_InvalidInputs(t *testing.T) {
	a := testAllocator(100)

	if _, err := a.Allocate(domain.Evaluation{OverallScore: 0.5}, 0); !domain.IsValidation(err) {
		t.Errorf("epoch 0: expected ValidationError, got %v", err)
	}
	if _, err := a.Allocate(domain.Evaluation{OverallScore: 1.5}, 1); !domain.IsValidation(err) {
		t.Errorf("score 1.5: expected ValidationError, got %v", err)
	}
	if _, err := a.Allocate(domain.Evaluation{OverallScore: -0.1}, -2); !domain.IsValidation(err) {
		t.Errorf("both invalid: expected ValidationError, got %v", err)
	}
}

// ─── Batch Allocation ───────────────────────────────────────────────────────

func TestAllocateBatch_SkipsUnapproved(t *testing.T) {
	evals := []domain.Evaluation{
		{SubmissionID: "a", OverallScore: 0.9, Status: domain.StatusExcellent},
		{SubmissionID: "b", OverallScore: 0.7, Status: "rejected"},
		{SubmissionID: "c", OverallScore: 0.65, Status: domain.StatusGood},
	}

	result := testAllocator(100).AllocateBatch(evals, 1)

	if result.Summary.SuccessfulAllocations != 2 {
		t.Errorf("expected 2 successful, got %d", result.Summary.SuccessfulAllocations)
	}
	if result.Summary.FailedAllocations != 0 {
		t.Errorf("skipped item must not count as failed, got %d", result.Summary.FailedAllocations)
	}
	if result.Summary.TotalEvaluations != 3 {
		t.Errorf("expected 3 total, got %d", result.Summary.TotalEvaluations)
	}
}

func TestAllocateBatch_IsolatesItemFailures(t *testing.T) {
	evals := []domain.Evaluation{
		{SubmissionID: "ok-1", OverallScore: 0.9, Status: "approved"},
		{SubmissionID: "bad", OverallScore: 3.0, Status: "approved"}, // out of range
		{SubmissionID: "ok-2", OverallScore: 0.8, Status: "qualified"},
	}

	result := testAllocator(100).AllocateBatch(evals, 2)

	if result.Summary.SuccessfulAllocations != 2 {
		t.Errorf("expected 2 successful, got %d", result.Summary.SuccessfulAllocations)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}
	if result.Errors[0].Index != 1 {
		t.Errorf("error should carry originating index 1, got %d", result.Errors[0].Index)
	}
}

func TestAllocateBatch_SummaryTotals(t *testing.T) {
	evals := []domain.Evaluation{
		{SubmissionID: "a", OverallScore: 0.5, Status: "approved"},
		{SubmissionID: "b", OverallScore: 0.5, Status: "approved"},
	}

	result := testAllocator(100).AllocateBatch(evals, 4)

	var sum float64
	for _, alloc := range result.Allocations {
		sum += alloc.TotalTokens
	}
	if !approxEq(result.Summary.TotalTokensAllocated, sum) {
		t.Errorf("summary total %v != sum of allocations %v", result.Summary.TotalTokensAllocated, sum)
	}
	if !approxEq(result.Summary.AverageTokens, sum/2) {
		t.Errorf("average %v != %v", result.Summary.AverageTokens, sum/2)
	}
	if result.Summary.Epoch != 4 {
		t.Errorf("summary epoch: expected 4, got %d", result.Summary.Epoch)
	}
}

func TestAllocateBatch_EmptyInput(t *testing.T) {
	result := testAllocator(100).AllocateBatch(nil, 1)
	if result.Summary.TotalEvaluations != 0 || result.Summary.SuccessfulAllocations != 0 {
		t.Errorf("unexpected summary for empty batch: %+v", result.Summary)
	}
	if result.Summary.AverageTokens != 0 {
		t.Errorf("average must be 0 with no allocations, got %v", result.Summary.AverageTokens)
	}
}
