package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Ledger errors
	ErrContributorNotFound = errors.New("contributor not found in recognition ledger")
	ErrSchemaVersion       = errors.New("ledger document schema version mismatch")

	// Archive errors
	ErrArchiveUnavailable = errors.New("document archive is unavailable")

	// Allocation errors
	ErrEpochInvalid = errors.New("epoch must be a positive integer")
)

// ─── ValidationError ────────────────────────────────────────────────────────

// ValidationError reports malformed input. Every violated constraint is
// collected before the error is returned — callers see the full list,
// not just the first failure.
type ValidationError struct {
	Violations []string
}

// NewValidationError creates an empty validation error to accumulate into.
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

// Addf appends one violated constraint.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Violations = append(e.Violations, fmt.Sprintf(format, args...))
}

// HasViolations reports whether any constraint was violated.
func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

// Error lists every violation, semicolon-separated.
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ─── PersistenceError ───────────────────────────────────────────────────────

// PersistenceError reports a failed ledger load or save. A save failure
// does not roll back the in-memory mutation — the caller is told the
// change may not have been durably committed.
type PersistenceError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ledger %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
