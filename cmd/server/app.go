package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/phrazzld/tailor-api/internal/artifact"
	"github.com/phrazzld/tailor-api/internal/config"
	"github.com/phrazzld/tailor-api/internal/crawl"
	"github.com/phrazzld/tailor-api/internal/jobs"
	"github.com/phrazzld/tailor-api/internal/notify"
	"github.com/phrazzld/tailor-api/internal/platform/gemini"
	"github.com/phrazzld/tailor-api/internal/platform/metrics"
	"github.com/phrazzld/tailor-api/internal/service"
	"github.com/phrazzld/tailor-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Observability
	metrics  *metrics.Collector
	registry *prometheus.Registry

	// Document workspace
	store *artifact.Store

	// LLM generator, kept for runtime API key updates via settings
	generator *gemini.Generator

	// Task lifecycle
	runner     *task.Runner
	registries *task.Registries
	poller     *notify.Poller
	streamer   *notify.Streamer

	// Domain services
	resumeService *service.ResumeService
	letterService *service.LetterService
	searchService *service.SearchService
}

// newApplication creates a new application instance with all dependencies
// initialized. The workspace is initialized eagerly so the first request
// always finds a compiled resume.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	app.metrics = metrics.NewCollector(app.registry)

	compiler := artifact.NewPDFLatex(cfg.Compiler, logger.With("component", "compiler"), app.metrics)

	var err error
	app.store, err = artifact.NewStore(cfg.Workspace.Dir, compiler, logger.With("component", "store"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}

	if err := app.store.EnsureInitialized(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize workspace: %w", err)
	}

	generator, err := gemini.NewGenerator(ctx, logger.With("component", "llm_generator"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	app.generator = generator
	logger.Info("LLM generator initialized successfully",
		"model", cfg.LLM.ModelName, "configured", generator.Configured())

	extractor := crawl.NewExtractor(logger.With("component", "extractor"))

	// Task lifecycle wiring
	app.registries = task.NewRegistries()
	app.runner = task.NewRunner(task.RunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, task.NewResultStore(), app.registries, logger.With("component", "task_runner"), app.metrics)
	app.runner.Start()

	app.poller = notify.NewPoller(app.runner.Results(), logger.With("component", "poller"))
	app.streamer = notify.NewStreamer(app.poller, app.registries, logger.With("component", "streamer"))

	// Domain services
	app.resumeService = service.NewResumeService(app.store, generator, extractor, app.runner,
		logger.With("component", "resume_service"))
	app.letterService = service.NewLetterService(app.store, generator, extractor, app.runner,
		logger.With("component", "letter_service"))

	matcher, err := newMatcher(cfg, logger)
	if err != nil {
		return nil, err
	}
	app.searchService = service.NewSearchService(app.store, matcher, app.runner,
		logger.With("component", "search_service"))

	logger.Info("Application initialized successfully")
	return app, nil
}

// newMatcher builds the job matcher. A missing scraper URL is tolerated at
// startup; searches then fail at task time rather than preventing the rest
// of the service from running.
func newMatcher(cfg *config.Config, logger *slog.Logger) (*jobs.Matcher, error) {
	if cfg.Scraper.BaseURL == "" {
		logger.Warn("no job scraper configured, job searches will fail until one is set")
		return jobs.NewMatcher(unavailableScraper{}, logger.With("component", "matcher")), nil
	}

	scraper, err := jobs.NewHTTPScraper(cfg.Scraper, logger.With("component", "scraper"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize job scraper: %w", err)
	}
	return jobs.NewMatcher(scraper, logger.With("component", "matcher")), nil
}

// unavailableScraper reports the scraper as unconfigured on every search.
type unavailableScraper struct{}

func (unavailableScraper) Search(context.Context, jobs.SearchParams) ([]jobs.Posting, error) {
	return nil, fmt.Errorf("%w: no scraper base URL configured", jobs.ErrScraperUnavailable)
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.runner != nil {
		app.runner.Stop()
	}
	app.logger.Info("Application shutdown completed")
}
