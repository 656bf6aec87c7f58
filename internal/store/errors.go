package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrVocabNotFound, ErrSessionNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a second entry for the same word).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrVocabNotFound indicates that the requested vocabulary entry does not exist in the store.
	ErrVocabNotFound = fmt.Errorf("%w: vocabulary entry", ErrNotFound)

	// ErrTranslationNotFound indicates that no cached translation exists for the key.
	ErrTranslationNotFound = fmt.Errorf("%w: translation", ErrNotFound)

	// ErrSessionNotFound indicates that the requested reading session does not exist in the store.
	ErrSessionNotFound = fmt.Errorf("%w: reading session", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// This includes the generic ErrNotFound and all entity-specific not found errors.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
