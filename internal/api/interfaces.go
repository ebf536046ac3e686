package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/phrazzld/tailor-api/internal/jobs"
	"github.com/phrazzld/tailor-api/internal/service"
)

// ResumeSubmitter is the slice of the resume service the handlers need.
type ResumeSubmitter interface {
	SubmitLinkUpdate(ctx context.Context, links []string) (uuid.UUID, error)
	SubmitFeedbackEdit(ctx context.Context, feedback string) (uuid.UUID, error)
	SubmitJobOptimize(ctx context.Context, jobLink string) (uuid.UUID, error)
	SubmitTexEdit(ctx context.Context, texContent string) (uuid.UUID, error)
	SubmitClear(ctx context.Context) (uuid.UUID, error)
}

// LetterSubmitter is the slice of the letter service the handlers need.
type LetterSubmitter interface {
	SubmitCoverLetter(ctx context.Context, req service.CoverLetterRequest) (uuid.UUID, error)
	SubmitATSResume(ctx context.Context, jobDescription, jobURL string) (uuid.UUID, error)
	UpdateCoverLetter(ctx context.Context, texContent string) error
	UpdateATSResume(ctx context.Context, texContent string) error
}

// SearchProvider is the slice of the search service the handlers need.
type SearchProvider interface {
	Skills() ([]string, error)
	SubmitSearch(ctx context.Context, params jobs.SearchParams) (uuid.UUID, error)
}
