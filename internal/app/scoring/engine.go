// Package scoring implements the contribution scoring engine.
// Four independent sub-scorers (novelty, significance, verification,
// documentation) produce bounded scores that combine into one weighted
// overall score with a qualitative tier.
package scoring

import (
	"strings"
	"time"

	"github.com/curie-network/curie/internal/domain"
)

// ─── Keyword Tables ─────────────────────────────────────────────────────────

// scientificKeywords drive the novelty sub-score: the fraction present
// in the submission text contributes 60% of the score.
var scientificKeywords = []string{
	"novel", "discovery", "breakthrough", "hypothesis", "experiment",
	"mechanism", "theory", "evidence", "unprecedented", "innovative",
}

// genericTerms each deduct 0.1 from novelty when present.
var genericTerms = []string{"study", "report", "overview", "summary"}

// impactKeywords drive 30% of the significance sub-score.
var impactKeywords = []string{
	"significant", "impact", "critical", "major", "transform",
	"advance", "improve", "enable",
}

// evidenceKeywords drive 70% of the verification sub-score.
var evidenceKeywords = []string{
	"data", "dataset", "experiment", "measurement", "replicated",
	"peer-reviewed", "doi", "repository", "protocol", "code",
}

// categoryMultipliers weight the significance of recognized categories.
// Unrecognized categories fall back to 0.5.
var categoryMultipliers = map[string]float64{
	"medicine":         1.0,
	"climate":          0.95,
	"physics":          0.9,
	"biology":          0.9,
	"chemistry":        0.85,
	"computer_science": 0.85,
	"mathematics":      0.8,
	"materials":        0.8,
}

const defaultCategoryMultiplier = 0.5

// ─── Engine ─────────────────────────────────────────────────────────────────

// Engine scores submissions. It is stateless and safe for concurrent
// use; the only non-determinism is the evaluation timestamp.
type Engine struct {
	now func() time.Time
}

// NewEngine creates a scoring engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock creates an engine with an injected time source.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Evaluate validates and scores a submission. Validation accumulates
// every violated constraint before failing — no partial evaluation is
// ever produced for malformed input.
func (e *Engine) Evaluate(sub domain.Submission) (domain.Evaluation, error) {
	if err := validate(sub); err != nil {
		return domain.Evaluation{}, err
	}

	scores := domain.Scores{
		Novelty:       scoreNovelty(sub),
		Significance:  scoreSignificance(sub),
		Verification:  scoreVerification(sub),
		Documentation: scoreDocumentation(sub),
	}
	overall := scores.Overall()

	return domain.Evaluation{
		SubmissionID:    sub.ID,
		Scores:          scores,
		OverallScore:    overall,
		Status:          domain.StatusForScore(overall),
		Recommendations: recommendations(scores),
		Timestamp:       e.now(),
	}, nil
}

// validate checks field presence and length limits, collecting every
// violation into one ValidationError.
func validate(sub domain.Submission) error {
	ve := domain.NewValidationError()

	if strings.TrimSpace(sub.Title) == "" {
		ve.Addf("title must be a non-empty string")
	} else if len(sub.Title) > domain.MaxTitleLen {
		ve.Addf("title exceeds %d characters (got %d)", domain.MaxTitleLen, len(sub.Title))
	}

	if strings.TrimSpace(sub.Description) == "" {
		ve.Addf("description must be a non-empty string")
	} else if len(sub.Description) > domain.MaxDescriptionLen {
		ve.Addf("description exceeds %d characters (got %d)", domain.MaxDescriptionLen, len(sub.Description))
	}

	if strings.TrimSpace(sub.Category) == "" {
		ve.Addf("category must be a non-empty string")
	}

	if ve.HasViolations() {
		return ve
	}
	return nil
}

// ─── Sub-scorers ────────────────────────────────────────────────────────────
// Each returns a value clamped to [0,1].

// scoreNovelty: 0.6 × keyword coverage + 0.4 × length factor, minus
// 0.1 per generic term present.
func scoreNovelty(sub domain.Submission) float64 {
	text := strings.ToLower(sub.Title + " " + sub.Description)

	coverage := keywordCoverage(text, scientificKeywords)
	lengthFactor := minF(float64(len(text))/1000.0, 1.0)

	score := 0.6*coverage + 0.4*lengthFactor
	for _, term := range genericTerms {
		if strings.Contains(text, term) {
			score -= 0.1
		}
	}
	return domain.Clamp01(score)
}

// scoreSignificance: 0.7 × category multiplier + 0.3 × impact coverage.
func scoreSignificance(sub domain.Submission) float64 {
	mult, ok := categoryMultipliers[strings.ToLower(strings.TrimSpace(sub.Category))]
	if !ok {
		mult = defaultCategoryMultiplier
	}
	text := strings.ToLower(sub.Title + " " + sub.Description)
	return domain.Clamp01(0.7*mult + 0.3*keywordCoverage(text, impactKeywords))
}

// scoreVerification: fixed 0.1 without evidence, otherwise
// 0.7 × evidence-quality coverage + 0.3 × evidence length factor.
func scoreVerification(sub domain.Submission) float64 {
	evidence := strings.TrimSpace(sub.Evidence)
	if evidence == "" {
		return 0.1
	}
	text := strings.ToLower(evidence)
	coverage := keywordCoverage(text, evidenceKeywords)
	lengthFactor := minF(float64(len(evidence))/500.0, 1.0)
	return domain.Clamp01(0.7*coverage + 0.3*lengthFactor)
}

// scoreDocumentation: 0.6 × field completeness + 0.4 × clarity, where
// clarity rewards an average sentence length near 20 characters.
func scoreDocumentation(sub domain.Submission) float64 {
	fields := []string{sub.Title, sub.Description, sub.Evidence}
	var present int
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			present++
		}
	}
	completeness := float64(present) / float64(len(fields))

	clarity := clarityScore(sub.Title + " " + sub.Description + " " + sub.Evidence)
	return domain.Clamp01(0.6*completeness + 0.4*clarity)
}

// clarityScore = 1 − min(|avgSentenceLen − 20| / 20, 1), with sentences
// split on terminator characters.
func clarityScore(text string) float64 {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return 0
	}
	var total int
	for _, s := range sentences {
		total += len(s)
	}
	avg := float64(total) / float64(len(sentences))

	dev := avg - 20
	if dev < 0 {
		dev = -dev
	}
	return 1 - minF(dev/20, 1.0)
}

// splitSentences splits on '.', '!' and '?', dropping empty fragments.
func splitSentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	var out []string
	for _, s := range raw {
		if strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// ─── Recommendations ────────────────────────────────────────────────────────

// Advisory strings emitted per weak sub-score (< 0.5).
const (
	adviceNovelty       = "Emphasize what is new: name the novel method, result, or mechanism explicitly."
	adviceSignificance  = "Explain the broader impact and who benefits from this result."
	adviceVerification  = "Attach supporting evidence: datasets, protocols, or replication details."
	adviceDocumentation = "Improve documentation: complete all fields and use clear, well-sized sentences."
	adviceGeneric       = "Solid submission. Consider adding more supporting detail to strengthen it further."
)

const weakScoreThreshold = 0.5

func recommendations(s domain.Scores) []string {
	var recs []string
	if s.Novelty < weakScoreThreshold {
		recs = append(recs, adviceNovelty)
	}
	if s.Significance < weakScoreThreshold {
		recs = append(recs, adviceSignificance)
	}
	if s.Verification < weakScoreThreshold {
		recs = append(recs, adviceVerification)
	}
	if s.Documentation < weakScoreThreshold {
		recs = append(recs, adviceDocumentation)
	}
	if len(recs) == 0 {
		recs = append(recs, adviceGeneric)
	}
	return recs
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// keywordCoverage returns the fraction of keywords present in text.
func keywordCoverage(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	var found int
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			found++
		}
	}
	return float64(found) / float64(len(keywords))
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
