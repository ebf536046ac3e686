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
	"github.com/phrazzld/tailor-api/internal/jobs"
	"github.com/phrazzld/tailor-api/internal/task"
)

// LetterService generates job-specific documents: cover letters and the
// ATS-optimized resume variant. Generation runs as background tasks; the
// direct source edits are synchronous because they only write and compile.
type LetterService struct {
	store     *artifact.Store
	generator generation.Generator
	extractor *crawl.Extractor
	runner    *task.Runner
	logger    *slog.Logger
}

// NewLetterService creates a LetterService.
func NewLetterService(
	store *artifact.Store,
	generator generation.Generator,
	extractor *crawl.Extractor,
	runner *task.Runner,
	logger *slog.Logger,
) *LetterService {
	return &LetterService{
		store:     store,
		generator: generator,
		extractor: extractor,
		runner:    runner,
		logger:    logger,
	}
}

// CoverLetterRequest describes the posting a cover letter targets. Either
// JobDescription or JobURL must be set; the URL is crawled when the
// description is absent.
type CoverLetterRequest struct {
	JobDescription string
	Company        string
	Title          string
	JobURL         string
}

// CoverLetterOutcome is the stored result of a cover letter task.
type CoverLetterOutcome struct {
	Company         string   `json:"company"`
	Title           string   `json:"title"`
	KeywordsMatched []string `json:"keywords_matched"`
}

// SubmitCoverLetter queues cover letter generation for the given posting.
func (s *LetterService) SubmitCoverLetter(ctx context.Context, req CoverLetterRequest) (uuid.UUID, error) {
	return s.runner.Submit(ctx, task.CategoryCoverLetter, func(ctx context.Context) (any, error) {
		description, err := s.jobDescription(ctx, req.JobDescription, req.JobURL)
		if err != nil {
			return nil, err
		}

		resume, err := s.store.ReadTex(artifact.KindResume)
		if err != nil {
			return nil, err
		}

		prompt := generation.BuildCoverLetterPrompt(
			description, req.Company, req.Title, resume, s.store.BackgroundInfo())

		letter, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			return nil, err
		}

		if err := s.store.WriteAndCompile(ctx, artifact.KindCoverLetter, generation.CleanLaTeXBlock(letter)); err != nil {
			return nil, err
		}

		return CoverLetterOutcome{
			Company:         req.Company,
			Title:           req.Title,
			KeywordsMatched: s.matchedKeywords(resume, description),
		}, nil
	})
}

// ATSOutcome is the stored result of an ATS resume task.
type ATSOutcome struct {
	KeywordsMatched []string `json:"keywords_matched"`
}

// SubmitATSResume queues generation of a resume variant optimized against
// the given job description. The main resume is the input and stays
// untouched; output goes to the ATS resume document.
func (s *LetterService) SubmitATSResume(ctx context.Context, jobDescription, jobURL string) (uuid.UUID, error) {
	return s.runner.Submit(ctx, task.CategoryATSResume, func(ctx context.Context) (any, error) {
		description, err := s.jobDescription(ctx, jobDescription, jobURL)
		if err != nil {
			return nil, err
		}

		resume, err := s.store.ReadTex(artifact.KindResume)
		if err != nil {
			return nil, err
		}

		optimized, err := s.generator.Generate(ctx, generation.BuildJobOptimizePrompt(description, resume))
		if err != nil {
			return nil, err
		}

		cleaned := generation.CleanLaTeXBlock(optimized)
		if err := s.store.WriteAndCompile(ctx, artifact.KindATSResume, cleaned); err != nil {
			return nil, err
		}

		return ATSOutcome{KeywordsMatched: s.matchedKeywords(cleaned, description)}, nil
	})
}

// UpdateCoverLetter replaces the cover letter source with client-supplied
// LaTeX and recompiles it. Synchronous.
func (s *LetterService) UpdateCoverLetter(ctx context.Context, texContent string) error {
	return s.directEdit(ctx, artifact.KindCoverLetter, texContent)
}

// UpdateATSResume replaces the ATS resume source with client-supplied
// LaTeX and recompiles it. Synchronous.
func (s *LetterService) UpdateATSResume(ctx context.Context, texContent string) error {
	return s.directEdit(ctx, artifact.KindATSResume, texContent)
}

func (s *LetterService) directEdit(ctx context.Context, kind artifact.Kind, texContent string) error {
	content := generation.CleanLaTeXBlock(texContent)
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("tex content cannot be empty")
	}
	return s.store.WriteAndCompile(ctx, kind, content)
}

// jobDescription resolves the posting text, crawling jobURL when no
// description was supplied directly.
func (s *LetterService) jobDescription(ctx context.Context, description, jobURL string) (string, error) {
	if strings.TrimSpace(description) != "" {
		return description, nil
	}
	if strings.TrimSpace(jobURL) == "" {
		return "", fmt.Errorf("either a job description or a job URL is required")
	}

	crawled := s.extractor.ExtractedText(ctx, []string{jobURL})
	if strings.TrimSpace(crawled) == "" {
		return "", fmt.Errorf("%w: %s", crawl.ErrFetchFailed, jobURL)
	}
	return crawled, nil
}

// matchedKeywords reports which of the document's skills appear in the job
// description, for the client to display.
func (s *LetterService) matchedKeywords(document, jobDescription string) []string {
	skills, err := jobs.ExtractSkills(document)
	if err != nil {
		s.logger.Warn("could not extract skills for keyword match", "error", err)
		return []string{}
	}
	return jobs.MatchedKeywords(skills, jobDescription)
}
