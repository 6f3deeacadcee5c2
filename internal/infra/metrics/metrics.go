// Package metrics provides Prometheus metrics for the contribution
// pipeline: counters and histograms for evaluations, allocations,
// recognition events, and ledger persistence.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Scoring ────────────────────────────────────────────────────────────────

// EvaluationsTotal counts completed evaluations by status tier.
var EvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "curie",
	Name:      "evaluations_total",
	Help:      "Total completed evaluations by status.",
}, []string{"status"})

// ValidationFailures counts submissions rejected before scoring.
var ValidationFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "curie",
	Name:      "validation_failures_total",
	Help:      "Total submissions rejected by input validation.",
})

// ArchiveChecks counts novelty checks by verdict.
var ArchiveChecks = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "curie",
	Name:      "archive_checks_total",
	Help:      "Total archive similarity checks by novelty verdict.",
}, []string{"verdict"})

// ─── Rewards ────────────────────────────────────────────────────────────────

// AllocationsTotal counts successful token allocations.
var AllocationsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "curie",
	Name:      "allocations_total",
	Help:      "Total successful token allocations.",
})

// TokensAllocated accumulates tokens handed out across all allocations.
var TokensAllocated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "curie",
	Name:      "tokens_allocated_total",
	Help:      "Total tokens allocated.",
})

// BatchDuration tracks batch allocation run duration in seconds.
var BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "curie",
	Name:      "batch_allocation_duration_seconds",
	Help:      "Duration of batch allocation runs.",
	Buckets:   prometheus.DefBuckets,
})

// ─── Recognition ────────────────────────────────────────────────────────────

// ContributionsRecorded counts contribution events recorded into the ledger.
var ContributionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "curie",
	Name:      "contributions_recorded_total",
	Help:      "Total contribution events recorded.",
})

// BadgesAwarded counts badge awards by badge type.
var BadgesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "curie",
	Name:      "badges_awarded_total",
	Help:      "Total badges awarded by type.",
}, []string{"badge_type"})

// LedgerPersistFailures counts failed ledger document writes.
var LedgerPersistFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "curie",
	Name:      "ledger_persist_failures_total",
	Help:      "Total failed recognition ledger writes.",
})
