package service

import "errors"

// Common service-level errors. These represent malformed requests rather than
// storage or provider failures, and map to 4xx responses at the API layer.
var (
	// ErrEmptyWord is returned when a word is empty after normalization.
	ErrEmptyWord = errors.New("word cannot be empty")

	// ErrNoWords is returned when a batch operation receives no usable words.
	ErrNoWords = errors.New("no usable words in batch")

	// ErrUnknownAction is returned for an unrecognized bulk action or reset type.
	ErrUnknownAction = errors.New("unknown action")

	// ErrSnapshotMismatch is returned when an undo snapshot does not belong
	// to the word being undone.
	ErrSnapshotMismatch = errors.New("undo snapshot does not match word")
)
