// Package reward converts evaluations into epoch-scaled token
// allocations. Allocation is pure per call; batch runs isolate
// per-item failures so one bad evaluation never blocks an epoch.
package reward

import (
	"time"

	"github.com/curie-network/curie/internal/domain"
)

// DefaultBaseReward is the token pool multiplied by the overall score.
const DefaultBaseReward = 100.0

// ─── Bonus Rules ────────────────────────────────────────────────────────────
// Bonuses are additive and independent: each fires when its sub-score
// clears its threshold, as a fraction of the base reward.

const (
	noveltyBonusThreshold      = 0.8
	significanceBonusThreshold = 0.8
	verificationBonusThreshold = 0.9
	documentationBonusThresh   = 0.9

	noveltyBonusRate       = 0.5
	significanceBonusRate  = 0.5
	verificationBonusRate  = 0.2
	documentationBonusRate = 0.1

	// epochBonusRate decays with the epoch number, modeling the
	// early-contributor incentive.
	epochBonusRate = 0.1
)

// approvedStatuses gate batch allocation. Evaluations outside this set
// are skipped silently, not treated as failures.
var approvedStatuses = map[domain.EvalStatus]bool{
	"approved":               true,
	"qualified":              true,
	domain.StatusExcellent:   true,
	domain.StatusGood:        true,
}

// Allocator computes token allocations. Safe for concurrent use.
type Allocator struct {
	baseReward float64
	now        func() time.Time
}

// NewAllocator creates an allocator with the given base reward.
// A non-positive base reward falls back to the default.
func NewAllocator(baseReward float64) *Allocator {
	if baseReward <= 0 {
		baseReward = DefaultBaseReward
	}
	return &Allocator{baseReward: baseReward, now: time.Now}
}

// NewAllocatorWithClock creates an allocator with an injected time source.
func NewAllocatorWithClock(baseReward float64, now func() time.Time) *Allocator {
	a := NewAllocator(baseReward)
	a.now = now
	return a
}

// BaseReward returns the configured base reward.
func (a *Allocator) BaseReward() float64 { return a.baseReward }

// Allocate converts one evaluation into a token allocation for the
// given epoch. Every component is clamped at zero before summing, so
// the total can never go negative.
func (a *Allocator) Allocate(eval domain.Evaluation, epoch int) (domain.Allocation, error) {
	if err := validateAllocation(eval, epoch); err != nil {
		return domain.Allocation{}, err
	}

	base := maxF(0, a.baseReward*eval.OverallScore)

	// Bonuses are fractions of the configured base reward, not of the
	// score-scaled base tokens.
	bonuses := make(map[string]float64)
	if eval.Scores.Novelty > noveltyBonusThreshold {
		bonuses["novelty"] = domain.Round2(a.baseReward * noveltyBonusRate)
	}
	if eval.Scores.Significance > significanceBonusThreshold {
		bonuses["significance"] = domain.Round2(a.baseReward * significanceBonusRate)
	}
	if eval.Scores.Verification > verificationBonusThreshold {
		bonuses["verification"] = domain.Round2(a.baseReward * verificationBonusRate)
	}
	if eval.Scores.Documentation > documentationBonusThresh {
		bonuses["documentation"] = domain.Round2(a.baseReward * documentationBonusRate)
	}

	// max(1, epoch) guards the division even though validation already
	// rejects non-positive epochs.
	divisor := epoch
	if divisor < 1 {
		divisor = 1
	}
	epochBonus := maxF(0, base*epochBonusRate/float64(divisor))

	alloc := domain.Allocation{
		SubmissionID: eval.SubmissionID,
		BaseTokens:   domain.Round2(base),
		Bonuses:      bonuses,
		EpochBonus:   domain.Round2(epochBonus),
		Epoch:        epoch,
		Timestamp:    a.now(),
	}
	alloc.TotalTokens = domain.Round2(maxF(0, alloc.BaseTokens+alloc.BonusTotal()+alloc.EpochBonus))
	return alloc, nil
}

// validateAllocation accumulates every violated precondition.
func validateAllocation(eval domain.Evaluation, epoch int) error {
	ve := domain.NewValidationError()
	if epoch < 1 {
		ve.Addf("epoch must be a positive integer (got %d)", epoch)
	}
	if eval.OverallScore < 0 || eval.OverallScore > 1 {
		ve.Addf("overall_score must be in [0,1] (got %v)", eval.OverallScore)
	}
	if ve.HasViolations() {
		return ve
	}
	return nil
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
