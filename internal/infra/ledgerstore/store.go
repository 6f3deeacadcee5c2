// Package ledgerstore persists the recognition ledger as a single JSON
// document. Every save rewrites the whole document through a
// temp-file-then-rename swap, so a crash mid-write never leaves a
// truncated or half-written ledger on disk.
package ledgerstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/curie-network/curie/internal/domain"
)

const ledgerFileName = "recognition_ledger.json"

// Store is a file-backed ledger document store.
type Store struct {
	path string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}
	return &Store{path: filepath.Join(dir, ledgerFileName)}, nil
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Load reads the persisted ledger. A missing file yields a fresh empty
// ledger; a schema version mismatch fails loudly rather than silently
// defaulting fields.
func (s *Store) Load() (*domain.LedgerState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.NewLedgerState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	var state domain.LedgerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	if state.SchemaVersion != domain.LedgerSchemaVersion {
		return nil, fmt.Errorf("%w: file has v%d, this build expects v%d",
			domain.ErrSchemaVersion, state.SchemaVersion, domain.LedgerSchemaVersion)
	}

	// Maps may be absent in a hand-edited document; normalize so
	// callers never index into nil.
	if state.Contributors == nil {
		state.Contributors = make(map[string]*domain.ContributorRecord)
	}
	if state.CategoryFirsts == nil {
		state.CategoryFirsts = make(map[string]string)
	}
	if state.BadgesAwarded == nil {
		state.BadgesAwarded = make(map[string][]string)
	}
	return &state, nil
}

// Save atomically replaces the ledger document: write to a temp file
// in the same directory, fsync, then rename over the target.
func (s *Store) Save(state *domain.LedgerState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ledgerFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp ledger: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp ledger: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}
