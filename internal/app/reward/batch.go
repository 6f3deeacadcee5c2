package reward

import (
	"github.com/curie-network/curie/internal/domain"
)

// Approved reports whether an evaluation's status qualifies it for
// token allocation.
func Approved(status domain.EvalStatus) bool {
	return approvedStatuses[status]
}

// AllocateBatch processes a whole epoch's evaluations. Unapproved
// items are skipped (not errors); a failing item is recorded with its
// index and never aborts the rest of the batch.
func (a *Allocator) AllocateBatch(evals []domain.Evaluation, epoch int) domain.BatchResult {
	result := domain.BatchResult{
		Allocations: []domain.Allocation{},
		Errors:      []domain.BatchError{},
	}

	var totalTokens float64
	for i, eval := range evals {
		if !Approved(eval.Status) {
			continue
		}
		alloc, err := a.Allocate(eval, epoch)
		if err != nil {
			result.Errors = append(result.Errors, domain.BatchError{
				Index:   i,
				Message: err.Error(),
			})
			continue
		}
		result.Allocations = append(result.Allocations, alloc)
		totalTokens += alloc.TotalTokens
	}

	summary := domain.BatchSummary{
		TotalEvaluations:      len(evals),
		SuccessfulAllocations: len(result.Allocations),
		FailedAllocations:     len(result.Errors),
		TotalTokensAllocated:  domain.Round2(totalTokens),
		Epoch:                 epoch,
		Timestamp:             a.now(),
	}
	if summary.SuccessfulAllocations > 0 {
		summary.AverageTokens = domain.Round2(totalTokens / float64(summary.SuccessfulAllocations))
	}
	result.Summary = summary
	return result
}
