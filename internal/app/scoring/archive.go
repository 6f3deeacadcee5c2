package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/curie-network/curie/internal/domain"
)

// NoveltyThreshold is the similarity above which a submission is no
// longer considered novel.
const NoveltyThreshold = 0.7

// relatedDocumentLimit caps how many related documents are returned.
const relatedDocumentLimit = 5

// minRelatedSimilarity filters out barely-overlapping documents.
const minRelatedSimilarity = 0.2

// Archive supplies previously accepted documents for novelty checks.
// Implemented by the sqlite document archive; a production deployment
// replaces this with an embedding nearest-neighbor service. The
// contract — candidates in, per-document similarity out — stays fixed.
type Archive interface {
	Documents(limit int) ([]domain.ArchiveDocument, error)
}

// VerifyAgainstArchive estimates how similar a submission is to the
// archived corpus. The similarity heuristic is phrase-matching density
// with a length penalty; it is a stand-in for a real vector search and
// must only be trusted for its threshold semantics.
func (e *Engine) VerifyAgainstArchive(sub domain.Submission, archive Archive) (domain.VerificationResult, error) {
	if err := validate(sub); err != nil {
		return domain.VerificationResult{}, err
	}
	if archive == nil {
		return domain.VerificationResult{}, domain.ErrArchiveUnavailable
	}

	docs, err := archive.Documents(0)
	if err != nil {
		return domain.VerificationResult{}, fmt.Errorf("query archive: %w", err)
	}

	text := strings.ToLower(sub.Title + " " + sub.Description)
	subPhrases := phrases(text)

	var related []domain.RelatedDocument
	var maxSim float64
	for _, doc := range docs {
		sim := phraseSimilarity(subPhrases, phrases(strings.ToLower(doc.Title+" "+doc.Abstract)))
		if sim > maxSim {
			maxSim = sim
		}
		if sim >= minRelatedSimilarity {
			related = append(related, domain.RelatedDocument{
				DocumentID: doc.ID,
				Title:      doc.Title,
				Similarity: domain.Round2(sim),
			})
		}
	}

	sort.Slice(related, func(i, j int) bool {
		if related[i].Similarity != related[j].Similarity {
			return related[i].Similarity > related[j].Similarity
		}
		return related[i].DocumentID < related[j].DocumentID
	})
	if len(related) > relatedDocumentLimit {
		related = related[:relatedDocumentLimit]
	}

	score := domain.Round2(domain.Clamp01(maxSim))
	return domain.VerificationResult{
		SubmissionID:     sub.ID,
		SimilarityScore:  score,
		IsNovel:          score < NoveltyThreshold,
		RelatedDocuments: related,
	}, nil
}

// phrases returns the set of consecutive word bigrams in text.
func phrases(text string) map[string]struct{} {
	words := strings.Fields(text)
	set := make(map[string]struct{}, len(words))
	for i := 0; i+1 < len(words); i++ {
		set[words[i]+" "+words[i+1]] = struct{}{}
	}
	return set
}

// phraseSimilarity is the fraction of submission phrases found in the
// document, damped for very short submissions where a handful of
// shared phrases would dominate.
func phraseSimilarity(sub, doc map[string]struct{}) float64 {
	if len(sub) == 0 || len(doc) == 0 {
		return 0
	}
	var shared int
	for p := range sub {
		if _, ok := doc[p]; ok {
			shared++
		}
	}
	density := float64(shared) / float64(len(sub))

	// Length penalty: fewer than 10 phrases cannot reach full confidence.
	penalty := minF(float64(len(sub))/10.0, 1.0)
	return domain.Clamp01(density * penalty)
}
