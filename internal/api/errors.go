package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Brendennago/Syntagma/internal/api/shared"
	"github.com/Brendennago/Syntagma/internal/generation"
	"github.com/Brendennago/Syntagma/internal/service"
	"github.com/Brendennago/Syntagma/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrVocabNotFound),
		errors.Is(err, store.ErrSessionNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrEmptyWord),
		errors.Is(err, service.ErrNoWords),
		errors.Is(err, service.ErrUnknownAction):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrSnapshotMismatch):
		return http.StatusConflict

	// Generation quota is the one upstream condition the client can act on
	case errors.Is(err, generation.ErrQuotaExceeded):
		return http.StatusTooManyRequests

	// Remaining generation failures are upstream faults
	case errors.Is(err, generation.ErrInvalidCredential),
		errors.Is(err, generation.ErrModelNotFound),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrVocabNotFound):
		return "Word not found"

	case errors.Is(err, store.ErrSessionNotFound):
		return "No saved session"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entry data"

	case errors.Is(err, service.ErrEmptyWord):
		return "Word cannot be empty"

	case errors.Is(err, service.ErrNoWords):
		return "No words provided"

	case errors.Is(err, service.ErrUnknownAction):
		return "Unknown action"

	case errors.Is(err, service.ErrSnapshotMismatch):
		return "Undo state does not match the word"

	case errors.Is(err, generation.ErrQuotaExceeded):
		return "Passage generation quota exceeded, try again later"

	case errors.Is(err, generation.ErrInvalidCredential),
		errors.Is(err, generation.ErrModelNotFound),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrGenerationFailed):
		return "Passage generation failed: " + generation.CauseDescription(err)

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the mapped status and sanitized message for err,
// logging the full details. An empty fallbackMessage uses the mapped one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)
	if statusCode == http.StatusInternalServerError && fallbackMessage != "" {
		safeMessage = fallbackMessage
	}
	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'PassRequest.Words' Error:Field validation for
	// 'Words' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
