// Package sqlite provides SQLite-based storage for the evaluation and
// allocation audit trail and the document archive used by novelty
// checks. Uses WAL mode for concurrent reads and crash-safe writes.
// The recognition ledger is NOT stored here — it lives in its own
// atomically-replaced JSON document.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/history.db.
// Enables WAL mode, foreign keys, and a 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "history.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Evaluation audit trail — one row per completed evaluation.
		`CREATE TABLE IF NOT EXISTS evaluations (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			submission_id TEXT NOT NULL,
			contributor   TEXT NOT NULL DEFAULT '',
			category      TEXT NOT NULL DEFAULT '',
			novelty       REAL NOT NULL,
			significance  REAL NOT NULL,
			verification  REAL NOT NULL,
			documentation REAL NOT NULL,
			overall       REAL NOT NULL,
			status        TEXT NOT NULL,
			created_at    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_submission ON evaluations(submission_id)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at)`,

		// Allocation audit trail — one row per successful allocation.
		`CREATE TABLE IF NOT EXISTS allocations (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			submission_id TEXT NOT NULL,
			base_tokens   REAL NOT NULL,
			bonus_tokens  REAL NOT NULL,
			epoch_bonus   REAL NOT NULL,
			total_tokens  REAL NOT NULL,
			epoch         INTEGER NOT NULL,
			created_at    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_allocations_submission ON allocations(submission_id)`,
		`CREATE INDEX IF NOT EXISTS idx_allocations_epoch ON allocations(epoch)`,

		// Document archive — corpus for novelty checks.
		`CREATE TABLE IF NOT EXISTS archive_documents (
			id       TEXT PRIMARY KEY,
			title    TEXT NOT NULL,
			abstract TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			added_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_archive_category ON archive_documents(category)`,
	}

	for i, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
