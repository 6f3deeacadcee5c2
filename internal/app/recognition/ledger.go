package recognition

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/curie-network/curie/internal/domain"
	"github.com/curie-network/curie/internal/infra/metrics"
)

// Store persists the full ledger document. Load returns a fresh empty
// state when nothing has been persisted yet; Save must replace the
// document atomically so readers never observe a partial write.
type Store interface {
	Load() (*domain.LedgerState, error)
	Save(state *domain.LedgerState) error
}

// Service is the recognition ledger. All mutation is serialized
// through a single mutex; reads take the same lock since they iterate
// shared state. Scoring and allocation never touch this state.
type Service struct {
	store  Store
	launch time.Time
	now    func() time.Time

	mu    sync.Mutex
	state *domain.LedgerState
}

// NewService loads (or initializes) the ledger from the store.
// A load failure is surfaced immediately rather than silently starting
// from an empty ledger over existing data.
func NewService(store Store, launch time.Time) (*Service, error) {
	state, err := store.Load()
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	return &Service{
		store:  store,
		launch: launch,
		now:    time.Now,
		state:  state,
	}, nil
}

// SetClock injects a time source (tests).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// RecordContribution records one contribution event. It is the only
// mutator. Badge awarding is idempotent — re-checking never re-awards
// a held badge — but counters are NOT deduplicated by submission hash:
// calling this twice for the same event counts the event twice.
//
// On a persistence failure the in-memory mutation is kept and the
// update is returned together with a PersistenceError, so the caller
// knows the change may not be durable yet.
func (s *Service) RecordContribution(contributorID, submissionHash, category string, submissionDate time.Time, coherenceScore float64) (domain.RecognitionUpdate, error) {
	if err := validateContribution(contributorID, category, coherenceScore); err != nil {
		return domain.RecognitionUpdate{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	daysSinceLaunch := int(submissionDate.Sub(s.launch).Hours() / 24)

	// First-seen contributors get the next submission-order slot.
	// The slot is assigned exactly once and never changes.
	rec, ok := s.state.Contributors[contributorID]
	if !ok {
		s.state.SubmissionSeq = append(s.state.SubmissionSeq, contributorID)
		rec = &domain.ContributorRecord{
			ContributorID:     contributorID,
			FirstContribution: submissionDate,
			SubmissionOrder:   len(s.state.SubmissionSeq),
			RecognitionLevel:  domain.LevelValuedContributor,
		}
		s.state.Contributors[contributorID] = rec
	}

	// Category firsts are write-once.
	if _, taken := s.state.CategoryFirsts[category]; !taken {
		s.state.CategoryFirsts[category] = contributorID
	}

	rec.TotalSubmissions++
	rec.QualifiedSubs++
	if !rec.HasCategory(category) {
		rec.Categories = append(rec.Categories, category)
	}

	newBadges := s.checkBadges(rec, daysSinceLaunch)
	rec.RecognitionLevel = levelFor(rec)
	s.state.LastUpdated = s.now()

	update := domain.RecognitionUpdate{
		ContributorID:    contributorID,
		SubmissionOrder:  rec.SubmissionOrder,
		RecognitionLevel: rec.RecognitionLevel,
		NewBadges:        newBadges,
		TotalBadges:      len(rec.Badges),
		DaysSinceLaunch:  daysSinceLaunch,
		PriorityScore:    rec.PriorityScore(daysSinceLaunch),
	}

	if err := s.store.Save(s.state); err != nil {
		metrics.LedgerPersistFailures.Inc()
		log.Printf("[recognition] WARNING: ledger save failed, in-memory state retained: %v", err)
		return update, &domain.PersistenceError{Op: "save", Err: err}
	}
	return update, nil
}

// checkBadges re-evaluates the full catalog against a fresh statistics
// snapshot and awards every newly satisfied badge. Held badges are
// skipped, so the check is idempotent.
func (s *Service) checkBadges(rec *domain.ContributorRecord, daysSinceLaunch int) []domain.Badge {
	stats := statsSnapshot(rec, daysSinceLaunch, s.holdsAnyCategoryFirst(rec))

	var awarded []domain.Badge
	for _, def := range BadgeCatalog() {
		if rec.HasBadge(def.Type) || !def.Eligible(stats) {
			continue
		}
		badge := domain.Badge{
			Type:      def.Type,
			Name:      def.Name,
			Rarity:    def.Rarity,
			AwardedAt: s.now(),
		}
		rec.Badges = append(rec.Badges, badge)
		s.state.BadgesAwarded[def.Type] = append(s.state.BadgesAwarded[def.Type], rec.ContributorID)
		awarded = append(awarded, badge)
		metrics.BadgesAwarded.WithLabelValues(def.Type).Inc()
	}
	return awarded
}

// holdsAnyCategoryFirst reports whether the contributor is the
// recorded first in at least one of their categories.
func (s *Service) holdsAnyCategoryFirst(rec *domain.ContributorRecord) bool {
	for _, cat := range rec.Categories {
		if s.state.CategoryFirsts[cat] == rec.ContributorID {
			return true
		}
	}
	return false
}

func validateContribution(contributorID, category string, coherenceScore float64) error {
	ve := domain.NewValidationError()
	if contributorID == "" {
		ve.Addf("contributor_id must be a non-empty string")
	}
	if category == "" {
		ve.Addf("category must be a non-empty string")
	}
	if coherenceScore < 0 || coherenceScore > 1 {
		ve.Addf("coherence_score must be in [0,1] (got %v)", coherenceScore)
	}
	if ve.HasViolations() {
		return ve
	}
	return nil
}

// ─── Read-only Queries ──────────────────────────────────────────────────────

// ContributorRecognition returns a copy of one contributor's record.
func (s *Service) ContributorRecognition(contributorID string) (domain.ContributorRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.state.Contributors[contributorID]
	if !ok {
		return domain.ContributorRecord{}, domain.ErrContributorNotFound
	}
	return cloneRecord(rec), nil
}

// Leaderboard returns the top contributors by priority score
// descending, ties broken by submission order ascending.
func (s *Service) Leaderboard(limit int) []domain.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]domain.LeaderboardEntry, 0, len(s.state.Contributors))
	for _, rec := range s.state.Contributors {
		entries = append(entries, domain.LeaderboardEntry{
			ContributorID:    rec.ContributorID,
			PriorityScore:    rec.PriorityScore(s.daysSinceLaunch(rec.FirstContribution)),
			RecognitionLevel: rec.RecognitionLevel,
			SubmissionOrder:  rec.SubmissionOrder,
			BadgeCount:       len(rec.Badges),
			QualifiedSubs:    rec.QualifiedSubs,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PriorityScore != entries[j].PriorityScore {
			return entries[i].PriorityScore > entries[j].PriorityScore
		}
		return entries[i].SubmissionOrder < entries[j].SubmissionOrder
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// LegacyContributors returns the first N contributors in first-seen
// order, annotated with their legacy status label.
func (s *Service) LegacyContributors(limit int) []domain.LegacyContributor {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.state.SubmissionSeq
	if limit > 0 && len(seq) > limit {
		seq = seq[:limit]
	}

	out := make([]domain.LegacyContributor, 0, len(seq))
	for i, id := range seq {
		rank := i + 1
		lc := domain.LegacyContributor{
			Rank:          rank,
			ContributorID: id,
			LegacyStatus:  domain.LegacyStatus(rank),
		}
		if rec, ok := s.state.Contributors[id]; ok {
			lc.FirstContribution = rec.FirstContribution
		}
		out = append(out, lc)
	}
	return out
}

// Statistics aggregates the whole ledger.
func (s *Service) Statistics() domain.LedgerStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.LedgerStatistics{
		TotalContributors: len(s.state.Contributors),
		CategoriesTracked: len(s.state.CategoryFirsts),
		BadgesAwarded:     make(map[string]int, len(s.state.BadgesAwarded)),
		LastUpdated:       s.state.LastUpdated,
	}
	for _, rec := range s.state.Contributors {
		stats.TotalSubmissions += rec.TotalSubmissions
		stats.QualifiedSubmissions += rec.QualifiedSubs
	}
	for badgeType, holders := range s.state.BadgesAwarded {
		stats.BadgesAwarded[badgeType] = len(holders)
	}
	return stats
}

// daysSinceLaunch converts a contributor's first contribution date to
// whole days after launch. Callers hold the lock.
func (s *Service) daysSinceLaunch(t time.Time) int {
	return int(t.Sub(s.launch).Hours() / 24)
}

func cloneRecord(rec *domain.ContributorRecord) domain.ContributorRecord {
	out := *rec
	out.Categories = append([]string(nil), rec.Categories...)
	out.Badges = append([]domain.Badge(nil), rec.Badges...)
	return out
}
