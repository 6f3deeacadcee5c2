// Package recognition maintains the durable per-contributor
// recognition ledger: submission order, category firsts, badges,
// recognition levels, and the derived priority ranking.
package recognition

import "github.com/curie-network/curie/internal/domain"

// Badge catalog types.
const (
	BadgePioneer           = "pioneer"
	BadgeFounder           = "founder"
	BadgeCategoryFirst     = "category_first"
	BadgeCommunityFavorite = "community_favorite"
	BadgeProlific          = "prolific"
)

// Statistic names referenced by badge criteria. Boolean statistics are
// encoded as 0/1.
const (
	StatSubmissionOrder = "submission_order"
	StatDaysSinceLaunch = "days_since_launch"
	StatFirstInCategory = "first_in_category"
	StatCommunityScore  = "community_score"
	StatQualifiedSubs   = "qualified_submissions"
)

// placeholderCommunityScore stands in for a real community-feedback
// signal. It is a fixed stub, carried over deliberately; replace it
// when a reputation collaborator exists.
const placeholderCommunityScore = 85

// BadgeCatalog returns the five static badge definitions. All criteria
// within a definition must hold simultaneously.
func BadgeCatalog() []domain.BadgeDef {
	return []domain.BadgeDef{
		{
			Type:        BadgePioneer,
			Name:        "Pioneer",
			Description: "Among the first ten contributors in the history of the network.",
			Criteria: []domain.Criterion{
				{Stat: StatSubmissionOrder, Op: domain.OpLTE, Value: 10},
			},
			Benefits: []string{
				"Permanent leaderboard priority",
				"Pioneer flair on all submissions",
			},
			Rarity: domain.RarityLegendary,
		},
		{
			Type:        BadgeFounder,
			Name:        "Founder",
			Description: "Contributed within the first thirty days after launch.",
			Criteria: []domain.Criterion{
				{Stat: StatDaysSinceLaunch, Op: domain.OpLTE, Value: 30},
			},
			Benefits: []string{
				"Founder flair",
				"Early-epoch bonus eligibility",
			},
			Rarity: domain.RarityEpic,
		},
		{
			Type:        BadgeCategoryFirst,
			Name:        "Category First",
			Description: "First contributor to open a research category.",
			Criteria: []domain.Criterion{
				{Stat: StatFirstInCategory, Op: domain.OpEQ, Value: 1},
			},
			Benefits: []string{
				"Named as category founder in statistics",
			},
			Rarity: domain.RarityRare,
		},
		{
			Type:        BadgeCommunityFavorite,
			Name:        "Community Favorite",
			Description: "Consistently well received by the community.",
			Criteria: []domain.Criterion{
				{Stat: StatCommunityScore, Op: domain.OpGTE, Value: 80},
			},
			Benefits: []string{
				"Featured on the community page",
			},
			Rarity: domain.RarityRare,
		},
		{
			Type:        BadgeProlific,
			Name:        "Prolific Contributor",
			Description: "Ten or more qualified submissions.",
			Criteria: []domain.Criterion{
				{Stat: StatQualifiedSubs, Op: domain.OpGTE, Value: 10},
			},
			Benefits: []string{
				"Priority review queue",
			},
			Rarity: domain.RarityCommon,
		},
	}
}

// statsSnapshot derives the statistics map a badge check runs against.
// firstInAnyCategory is true when the contributor holds at least one
// category first.
func statsSnapshot(rec *domain.ContributorRecord, daysSinceLaunch int, firstInAnyCategory bool) map[string]float64 {
	first := 0.0
	if firstInAnyCategory {
		first = 1.0
	}
	return map[string]float64{
		StatSubmissionOrder: float64(rec.SubmissionOrder),
		StatDaysSinceLaunch: float64(daysSinceLaunch),
		StatFirstInCategory: first,
		StatCommunityScore:  placeholderCommunityScore,
		StatQualifiedSubs:   float64(rec.QualifiedSubs),
	}
}

// levelFor derives the recognition level from the badge set and
// activity. Badge tiers dominate activity tiers.
func levelFor(rec *domain.ContributorRecord) domain.RecognitionLevel {
	switch {
	case rec.HasBadge(BadgePioneer):
		return domain.LevelLegendaryPioneer
	case rec.HasBadge(BadgeFounder):
		return domain.LevelEpicFounder
	case len(rec.Badges) >= 2:
		return domain.LevelMasterContributor
	case len(rec.Badges) >= 1:
		return domain.LevelRecognizedContributor
	case rec.QualifiedSubs >= 3:
		return domain.LevelActiveContributor
	default:
		return domain.LevelValuedContributor
	}
}
