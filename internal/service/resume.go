package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/phrazzld/tailor-api/internal/artifact"
	"github.com/phrazzld/tailor-api/internal/crawl"
	"github.com/phrazzld/tailor-api/internal/generation"
	"github.com/phrazzld/tailor-api/internal/task"
)

// ResumeService owns every operation that rewrites the resume document.
// All rewrites run as background tasks in the resume edit stream, so they
// serialize against each other at the document store.
type ResumeService struct {
	store     *artifact.Store
	generator generation.Generator
	extractor *crawl.Extractor
	runner    *task.Runner
	logger    *slog.Logger
}

// NewResumeService creates a ResumeService.
func NewResumeService(
	store *artifact.Store,
	generator generation.Generator,
	extractor *crawl.Extractor,
	runner *task.Runner,
	logger *slog.Logger,
) *ResumeService {
	return &ResumeService{
		store:     store,
		generator: generator,
		extractor: extractor,
		runner:    runner,
		logger:    logger,
	}
}

// LinkUpdateOutcome reports what a link ingestion task actually did.
type LinkUpdateOutcome struct {
	LinksProcessed int  `json:"links_processed"`
	LinksSkipped   int  `json:"links_skipped"`
	Updated        bool `json:"updated"`
}

// SubmitLinkUpdate queues ingestion of profile links into the resume.
// Links already seen in a previous submission are skipped; if every link is
// a repeat the task completes successfully without touching the document.
func (s *ResumeService) SubmitLinkUpdate(ctx context.Context, links []string) (uuid.UUID, error) {
	return s.runner.Submit(ctx, task.CategoryResumeLinks, func(ctx context.Context) (any, error) {
		fresh, err := s.store.FilterNewLinks(links)
		if err != nil {
			return nil, err
		}

		outcome := LinkUpdateOutcome{
			LinksProcessed: len(fresh),
			LinksSkipped:   len(links) - len(fresh),
		}
		if len(fresh) == 0 {
			s.logger.Info("all submitted links already ingested", "skipped", outcome.LinksSkipped)
			return outcome, nil
		}

		info := s.extractor.ExtractedText(ctx, fresh)
		if strings.TrimSpace(info) == "" {
			return nil, fmt.Errorf("%w: no content from any of %d links", crawl.ErrFetchFailed, len(fresh))
		}

		current, err := s.store.ReadTex(artifact.KindResume)
		if err != nil {
			return nil, err
		}

		updated, err := s.generator.Generate(ctx, generation.BuildAppendPrompt(info, current))
		if err != nil {
			return nil, err
		}

		if err := s.store.WriteAndCompile(ctx, artifact.KindResume, generation.CleanLaTeXBlock(updated)); err != nil {
			return nil, err
		}

		// Cache only after the rewrite lands, so a failed task retries the
		// same links next submission.
		if err := s.store.AppendLinks(fresh); err != nil {
			return nil, err
		}

		outcome.Updated = true
		return outcome, nil
	})
}

// SubmitFeedbackEdit queues a resume rewrite guided by free-form feedback.
func (s *ResumeService) SubmitFeedbackEdit(ctx context.Context, feedback string) (uuid.UUID, error) {
	return s.runner.Submit(ctx, task.CategoryResumeFeedback, func(ctx context.Context) (any, error) {
		current, err := s.store.ReadTex(artifact.KindResume)
		if err != nil {
			return nil, err
		}

		updated, err := s.generator.Generate(ctx, generation.BuildEditingPrompt(feedback, current))
		if err != nil {
			return nil, err
		}

		if err := s.store.WriteAndCompile(ctx, artifact.KindResume, generation.CleanLaTeXBlock(updated)); err != nil {
			return nil, err
		}
		return nil, nil
	})
}

// SubmitJobOptimize queues a resume rewrite targeting the job posting at
// jobLink. The posting text is crawled inside the task so submission stays
// fast.
func (s *ResumeService) SubmitJobOptimize(ctx context.Context, jobLink string) (uuid.UUID, error) {
	return s.runner.Submit(ctx, task.CategoryResumeJobOptimize, func(ctx context.Context) (any, error) {
		description := s.extractor.ExtractedText(ctx, []string{jobLink})
		if strings.TrimSpace(description) == "" {
			return nil, fmt.Errorf("%w: %s", crawl.ErrFetchFailed, jobLink)
		}

		current, err := s.store.ReadTex(artifact.KindResume)
		if err != nil {
			return nil, err
		}

		updated, err := s.generator.Generate(ctx, generation.BuildJobOptimizePrompt(description, current))
		if err != nil {
			return nil, err
		}

		if err := s.store.WriteAndCompile(ctx, artifact.KindResume, generation.CleanLaTeXBlock(updated)); err != nil {
			return nil, err
		}
		return nil, nil
	})
}

// SubmitTexEdit queues a direct replacement of the resume source with
// client-supplied LaTeX.
func (s *ResumeService) SubmitTexEdit(ctx context.Context, texContent string) (uuid.UUID, error) {
	return s.runner.Submit(ctx, task.CategoryResumeTexEdit, func(ctx context.Context) (any, error) {
		content := generation.CleanLaTeXBlock(texContent)
		if strings.TrimSpace(content) == "" {
			return nil, fmt.Errorf("tex content cannot be empty")
		}
		if err := s.store.WriteAndCompile(ctx, artifact.KindResume, content); err != nil {
			return nil, err
		}
		return nil, nil
	})
}

// SubmitClear queues a workspace reset. The clear runs through the resume
// edit stream so it serializes behind pending edits.
func (s *ResumeService) SubmitClear(ctx context.Context) (uuid.UUID, error) {
	return s.runner.Submit(ctx, task.CategoryClear, func(ctx context.Context) (any, error) {
		if err := s.store.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	})
}
