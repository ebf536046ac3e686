package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/tailor-api/internal/artifact"
	"github.com/phrazzld/tailor-api/internal/crawl"
	"github.com/phrazzld/tailor-api/internal/generation"
	"github.com/phrazzld/tailor-api/internal/jobs"
	"github.com/phrazzld/tailor-api/internal/task"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, artifact.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, artifact.ErrUnknownKind),
		errors.Is(err, generation.ErrEmptyPrompt),
		errors.Is(err, generation.ErrInvalidConfig),
		errors.Is(err, jobs.ErrResumeParse):
		return http.StatusBadRequest

	// No API key has been provided yet
	case errors.Is(err, generation.ErrNotConfigured):
		return http.StatusServiceUnavailable

	// Overload
	case errors.Is(err, task.ErrQueueFull):
		return http.StatusTooManyRequests

	// Shutdown in progress
	case errors.Is(err, task.ErrQueueClosed):
		return http.StatusServiceUnavailable

	// Upstream failures
	case errors.Is(err, jobs.ErrScraperUnavailable):
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
	case errors.Is(err, artifact.ErrNotFound):
		return "Document not found"

	case errors.Is(err, artifact.ErrUnknownKind):
		return "Unknown document type"

	case errors.Is(err, artifact.ErrCompileFailed):
		return "Document failed to compile"

	case errors.Is(err, jobs.ErrResumeParse):
		return "Could not parse the resume"

	case errors.Is(err, jobs.ErrScraperUnavailable):
		return "Job search service is unavailable"

	case errors.Is(err, crawl.ErrFetchFailed):
		return "Could not fetch the requested page"

	case errors.Is(err, generation.ErrContentBlocked):
		return "Generation was blocked by content safety filters"

	case errors.Is(err, generation.ErrNotConfigured):
		return "No language model API key is configured"

	case errors.Is(err, generation.ErrInvalidConfig):
		return "Invalid language model configuration"

	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrTransientFailure):
		return "Document generation failed"

	case errors.Is(err, task.ErrQueueFull):
		return "Server is busy, try again shortly"

	case errors.Is(err, task.ErrQueueClosed):
		return "Server is shutting down"

	default:
		return "An unexpected error occurred"
	}
}
