// Recognition types: badges, contributor records, and the persisted
// ledger document. Badges are criteria-gated and never revoked;
// priority scores and legacy statuses are derived, never stored.
package domain

import "time"

// ─── Badge Catalog Types ────────────────────────────────────────────────────

// BadgeRarity buckets badges by how hard they are to earn.
type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// CompareOp is the comparator used by a badge criterion.
type CompareOp string

const (
	OpGTE CompareOp = ">="
	OpLTE CompareOp = "<="
	OpEQ  CompareOp = "=="
)

// Criterion compares one named contributor statistic against a value.
// Boolean statistics are represented as 0/1 and matched with OpEQ.
type Criterion struct {
	Stat  string    `json:"stat"`
	Op    CompareOp `json:"op"`
	Value float64   `json:"value"`
}

// Holds evaluates the criterion against a statistics snapshot.
// A criterion referencing an unknown statistic never holds.
func (c Criterion) Holds(stats map[string]float64) bool {
	actual, ok := stats[c.Stat]
	if !ok {
		return false
	}
	switch c.Op {
	case OpGTE:
		return actual >= c.Value
	case OpLTE:
		return actual <= c.Value
	case OpEQ:
		return actual == c.Value
	default:
		return false
	}
}

// BadgeDef is a static badge definition. All criteria must hold
// simultaneously for the badge to be awarded.
type BadgeDef struct {
	Type        string      `json:"badge_type"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Criteria    []Criterion `json:"criteria"`
	Benefits    []string    `json:"benefits"`
	Rarity      BadgeRarity `json:"rarity"`
}

// Eligible reports whether every criterion holds for the snapshot.
func (b BadgeDef) Eligible(stats map[string]float64) bool {
	for _, c := range b.Criteria {
		if !c.Holds(stats) {
			return false
		}
	}
	return len(b.Criteria) > 0
}

// Badge is an awarded badge instance attached to a contributor.
type Badge struct {
	Type      string      `json:"badge_type"`
	Name      string      `json:"name"`
	Rarity    BadgeRarity `json:"rarity"`
	AwardedAt time.Time   `json:"awarded_at"`
}

// ─── Contributor Record ─────────────────────────────────────────────────────

// RecognitionLevel is the derived standing of a contributor,
// recomputed on every contribution event.
type RecognitionLevel string

const (
	LevelLegendaryPioneer      RecognitionLevel = "legendary_pioneer"
	LevelEpicFounder           RecognitionLevel = "epic_founder"
	LevelMasterContributor     RecognitionLevel = "master_contributor"
	LevelRecognizedContributor RecognitionLevel = "recognized_contributor"
	LevelActiveContributor     RecognitionLevel = "active_contributor"
	LevelValuedContributor     RecognitionLevel = "valued_contributor"
)

// ContributorRecord is the per-contributor cumulative recognition state.
// SubmissionOrder is assigned once, at first contribution, and is the
// 1-based position among all contributors in first-seen order.
type ContributorRecord struct {
	ContributorID     string           `json:"contributor_id"`
	FirstContribution time.Time        `json:"first_contribution_date"`
	TotalSubmissions  int              `json:"total_submissions"`
	QualifiedSubs     int              `json:"qualified_submissions"`
	Categories        []string         `json:"categories"`
	Badges            []Badge          `json:"badges"`
	RecognitionLevel  RecognitionLevel `json:"recognition_level"`
	SubmissionOrder   int              `json:"submission_order"`
}

// HasBadge reports whether a badge type is already held.
func (r *ContributorRecord) HasBadge(badgeType string) bool {
	for _, b := range r.Badges {
		if b.Type == badgeType {
			return true
		}
	}
	return false
}

// HasCategory reports whether the contributor has submitted in a category.
func (r *ContributorRecord) HasCategory(category string) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// PriorityScore derives the 0–100 leaderboard ranking value.
// Never persisted — always recomputed from current state.
func (r *ContributorRecord) PriorityScore(daysSinceLaunch int) float64 {
	score := 50.0

	switch {
	case r.SubmissionOrder >= 1 && r.SubmissionOrder <= 10:
		score += 40
	case r.SubmissionOrder <= 50:
		score += 20
	case daysSinceLaunch <= 30:
		score += 15
	}

	badgeBonus := 5.0 * float64(len(r.Badges))
	if badgeBonus > 25 {
		badgeBonus = 25
	}
	score += badgeBonus

	activityBonus := 2.0 * float64(r.QualifiedSubs)
	if activityBonus > 15 {
		activityBonus = 15
	}
	score += activityBonus

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// ─── Legacy Status ──────────────────────────────────────────────────────────

// LegacyStatus labels a contributor purely by first-seen rank.
func LegacyStatus(rank int) string {
	switch {
	case rank == 1:
		return "Genesis Contributor"
	case rank <= 5:
		return "Foundational Pioneer"
	case rank <= 10:
		return "Early Pioneer"
	case rank <= 25:
		return "Trailblazer"
	case rank <= 50:
		return "Early Adopter"
	default:
		return "Valued Early Contributor"
	}
}

// ─── Persisted Ledger Document ──────────────────────────────────────────────

// LedgerSchemaVersion guards the persisted document shape. Loading a
// document with a different version fails loudly instead of defaulting.
const LedgerSchemaVersion = 1

// LedgerState is the full persisted recognition ledger. It is rewritten
// in its entirety after every mutation.
type LedgerState struct {
	SchemaVersion  int                           `json:"schema_version"`
	Contributors   map[string]*ContributorRecord `json:"contributors"`
	SubmissionSeq  []string                      `json:"submission_order"`
	CategoryFirsts map[string]string             `json:"category_firsts"`
	BadgesAwarded  map[string][]string           `json:"badges_awarded"`
	LastUpdated    time.Time                     `json:"last_updated"`
}

// NewLedgerState returns an empty ledger at the current schema version.
func NewLedgerState() *LedgerState {
	return &LedgerState{
		SchemaVersion:  LedgerSchemaVersion,
		Contributors:   make(map[string]*ContributorRecord),
		CategoryFirsts: make(map[string]string),
		BadgesAwarded:  make(map[string][]string),
	}
}

// ─── Operation Results ──────────────────────────────────────────────────────

// RecognitionUpdate is returned from recording one contribution event.
type RecognitionUpdate struct {
	ContributorID    string           `json:"contributor_id"`
	SubmissionOrder  int              `json:"submission_order"`
	RecognitionLevel RecognitionLevel `json:"recognition_level"`
	NewBadges        []Badge          `json:"new_badges"`
	TotalBadges      int              `json:"total_badges"`
	DaysSinceLaunch  int              `json:"days_since_launch"`
	PriorityScore    float64          `json:"priority_score"`
}

// LeaderboardEntry is one row of the priority-ranked leaderboard.
type LeaderboardEntry struct {
	Rank             int              `json:"rank"`
	ContributorID    string           `json:"contributor_id"`
	PriorityScore    float64          `json:"priority_score"`
	RecognitionLevel RecognitionLevel `json:"recognition_level"`
	SubmissionOrder  int              `json:"submission_order"`
	BadgeCount       int              `json:"badge_count"`
	QualifiedSubs    int              `json:"qualified_submissions"`
}

// LegacyContributor annotates an early contributor with their legacy label.
type LegacyContributor struct {
	Rank              int       `json:"rank"`
	ContributorID     string    `json:"contributor_id"`
	LegacyStatus      string    `json:"legacy_status"`
	FirstContribution time.Time `json:"first_contribution_date"`
}

// LedgerStatistics aggregates the whole ledger for reporting.
type LedgerStatistics struct {
	TotalContributors    int            `json:"total_contributors"`
	TotalSubmissions     int            `json:"total_submissions"`
	QualifiedSubmissions int            `json:"qualified_submissions"`
	CategoriesTracked    int            `json:"categories_tracked"`
	BadgesAwarded        map[string]int `json:"badges_awarded"`
	LastUpdated          time.Time      `json:"last_updated"`
}
