package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when passage generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate passage")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during passage generation")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrInvalidCredential is returned when the provider rejects the API key
	ErrInvalidCredential = errors.New("language model rejected the credential")

	// ErrModelNotFound is returned when the configured model does not exist
	ErrModelNotFound = errors.New("language model not found")

	// ErrQuotaExceeded is returned when the provider reports an exhausted quota
	ErrQuotaExceeded = errors.New("language model quota exceeded")
)

// CauseDescription returns a human-readable classification for a generation
// error, suitable for a degraded API response.
func CauseDescription(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredential):
		return "invalid credential"
	case errors.Is(err, ErrModelNotFound):
		return "model not found"
	case errors.Is(err, ErrQuotaExceeded):
		return "quota exceeded"
	case errors.Is(err, ErrInvalidResponse):
		return "malformed response"
	case errors.Is(err, ErrContentBlocked):
		return "content blocked"
	case errors.Is(err, ErrTransientFailure):
		return "temporary failure"
	default:
		return "generation failed"
	}
}
