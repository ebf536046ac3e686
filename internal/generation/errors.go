package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when document generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate document from prompt")

	// ErrInvalidResponse is returned when the LLM response is empty or malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during generation")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyPrompt is returned when a caller submits an empty prompt
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrNotConfigured is returned when no API key has been provided yet
	ErrNotConfigured = errors.New("no language model API key configured")
)
