package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/tailor-api/internal/artifact"
	"github.com/phrazzld/tailor-api/internal/jobs"
	"github.com/phrazzld/tailor-api/internal/task"
)

// SearchService runs skill-ranked job searches against the external
// scraping service.
type SearchService struct {
	store   *artifact.Store
	matcher *jobs.Matcher
	runner  *task.Runner
	logger  *slog.Logger
}

// NewSearchService creates a SearchService.
func NewSearchService(store *artifact.Store, matcher *jobs.Matcher, runner *task.Runner, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:   store,
		matcher: matcher,
		runner:  runner,
		logger:  logger,
	}
}

// Skills extracts the skill set from the current resume. Synchronous; it
// only reads the document.
func (s *SearchService) Skills() ([]string, error) {
	resume, err := s.store.ReadTex(artifact.KindResume)
	if err != nil {
		return nil, err
	}
	return jobs.ExtractSkills(resume)
}

// SubmitSearch queues a job search ranked against the resume's skills. The
// scrape can take a minute, so the search always runs as a background task.
func (s *SearchService) SubmitSearch(ctx context.Context, params jobs.SearchParams) (uuid.UUID, error) {
	return s.runner.Submit(ctx, task.CategoryJobSearch, func(ctx context.Context) (any, error) {
		skills, err := s.Skills()
		if err != nil {
			return nil, err
		}

		result, err := s.matcher.Search(ctx, params, skills)
		if err != nil {
			return nil, err
		}
		return result, nil
	})
}
