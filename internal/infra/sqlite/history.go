package sqlite

import (
	"database/sql"
	"time"

	"github.com/curie-network/curie/internal/domain"
)

// ─── Evaluation History ─────────────────────────────────────────────────────

// InsertEvaluation records a completed evaluation for audit.
func (d *DB) InsertEvaluation(eval domain.Evaluation, contributor, category string) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO evaluations (submission_id, contributor, category, novelty, significance, verification, documentation, overall, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		eval.SubmissionID, contributor, category,
		eval.Scores.Novelty, eval.Scores.Significance,
		eval.Scores.Verification, eval.Scores.Documentation,
		eval.OverallScore, string(eval.Status), eval.Timestamp.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// RecentEvaluations returns the latest evaluations, newest first.
func (d *DB) RecentEvaluations(limit int) ([]domain.Evaluation, error) {
	rows, err := d.db.Query(
		`SELECT submission_id, novelty, significance, verification, documentation, overall, status, created_at
		 FROM evaluations ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evals []domain.Evaluation
	for rows.Next() {
		var e domain.Evaluation
		var ts int64
		var status string
		err := rows.Scan(&e.SubmissionID,
			&e.Scores.Novelty, &e.Scores.Significance,
			&e.Scores.Verification, &e.Scores.Documentation,
			&e.OverallScore, &status, &ts)
		if err != nil {
			return nil, err
		}
		e.Status = domain.EvalStatus(status)
		e.Timestamp = time.Unix(ts, 0).UTC()
		evals = append(evals, e)
	}
	return evals, rows.Err()
}

// EvaluationCount returns the number of recorded evaluations.
func (d *DB) EvaluationCount() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM evaluations`).Scan(&n)
	return n, err
}

// ─── Allocation History ─────────────────────────────────────────────────────

// InsertAllocation records a successful allocation for audit.
func (d *DB) InsertAllocation(alloc domain.Allocation) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO allocations (submission_id, base_tokens, bonus_tokens, epoch_bonus, total_tokens, epoch, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		alloc.SubmissionID, alloc.BaseTokens, alloc.BonusTotal(),
		alloc.EpochBonus, alloc.TotalTokens, alloc.Epoch, alloc.Timestamp.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// RecentAllocations returns the latest allocations, newest first.
// Per-bonus breakdowns are not persisted; BonusTotal is reconstructed
// under the single "total" key.
func (d *DB) RecentAllocations(limit int) ([]domain.Allocation, error) {
	rows, err := d.db.Query(
		`SELECT submission_id, base_tokens, bonus_tokens, epoch_bonus, total_tokens, epoch, created_at
		 FROM allocations ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocs []domain.Allocation
	for rows.Next() {
		var a domain.Allocation
		var bonusTotal float64
		var ts int64
		err := rows.Scan(&a.SubmissionID, &a.BaseTokens, &bonusTotal,
			&a.EpochBonus, &a.TotalTokens, &a.Epoch, &ts)
		if err != nil {
			return nil, err
		}
		a.Bonuses = map[string]float64{}
		if bonusTotal > 0 {
			a.Bonuses["total"] = bonusTotal
		}
		a.Timestamp = time.Unix(ts, 0).UTC()
		allocs = append(allocs, a)
	}
	return allocs, rows.Err()
}

// TokensAllocatedInEpoch sums total tokens allocated in one epoch.
func (d *DB) TokensAllocatedInEpoch(epoch int) (float64, error) {
	var total sql.NullFloat64
	err := d.db.QueryRow(
		`SELECT SUM(total_tokens) FROM allocations WHERE epoch = ?`, epoch,
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Float64, nil
}

// ─── Document Archive ───────────────────────────────────────────────────────

// InsertArchiveDocument adds a document to the novelty-check corpus.
func (d *DB) InsertArchiveDocument(doc domain.ArchiveDocument) error {
	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO archive_documents (id, title, abstract, category, added_at)
		 VALUES (?, ?, ?, ?, ?)`,
		doc.ID, doc.Title, doc.Abstract, doc.Category, doc.AddedAt.Unix(),
	)
	return err
}

// Documents returns archive documents, newest first. limit <= 0 means
// no limit. Satisfies scoring.Archive.
func (d *DB) Documents(limit int) ([]domain.ArchiveDocument, error) {
	query := `SELECT id, title, abstract, category, added_at FROM archive_documents ORDER BY added_at DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = d.db.Query(query+` LIMIT ?`, limit)
	} else {
		rows, err = d.db.Query(query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.ArchiveDocument
	for rows.Next() {
		var doc domain.ArchiveDocument
		var ts int64
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Abstract, &doc.Category, &ts); err != nil {
			return nil, err
		}
		doc.AddedAt = time.Unix(ts, 0).UTC()
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
