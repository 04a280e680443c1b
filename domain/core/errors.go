package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrSnapshotNotFound = fmt.Errorf("%w: snapshot", ErrNotFound)

	// Validation errors
	ErrInvalidSetting       = errors.New("invalid setting label")
	ErrInvalidChannel       = errors.New("invalid evidence channel")
	ErrInvalidState         = errors.New("invalid treatment state")
	ErrIncompleteRateTable  = errors.New("incomplete rate table")
	ErrInconsistentCounters = errors.New("inconsistent counters")
	ErrNegativeCounter      = errors.New("negative counter")

	// Determinism errors
	ErrFingerprintMismatch = errors.New("result fingerprint mismatch")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewInconsistencyError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInconsistentCounters, field, reason)
}

func NewRateTableError(channel string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrIncompleteRateTable, channel, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidSetting) ||
		errors.Is(err, ErrInvalidChannel) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrInconsistentCounters) ||
		errors.Is(err, ErrNegativeCounter)
}
