package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phrazzld/tailor-api/internal/api"
	apiMiddleware "github.com/phrazzld/tailor-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	resumeHandler := api.NewResumeHandler(app.resumeService, app.registries)
	letterHandler := api.NewLetterHandler(app.letterService)
	searchHandler := api.NewSearchHandler(app.searchService)
	statusHandler := api.NewStatusHandler(app.poller, app.streamer, app.registries)
	documentHandler := api.NewDocumentHandler(app.store)
	settingsHandler := api.NewSettingsHandler(app.store, app.generator)

	r.Route("/api", func(r chi.Router) {
		// Resume editing
		r.Post("/update-resume", resumeHandler.UpdateResume)
		r.Post("/clear-resume", resumeHandler.ClearResume)

		// Cover letter and ATS resume. The bare POST/PUT forms are
		// aliases for the explicit generate/update routes.
		r.Post("/cover-letter/generate", letterHandler.GenerateCoverLetter)
		r.Post("/cover-letter/update", letterHandler.UpdateCoverLetter)
		r.Post("/cover-letter", letterHandler.GenerateCoverLetter)
		r.Put("/cover-letter", letterHandler.UpdateCoverLetter)
		r.Post("/ats-resume/generate", letterHandler.GenerateATSResume)
		r.Post("/ats-resume/update", letterHandler.UpdateATSResume)
		r.Post("/ats-resume", letterHandler.GenerateATSResume)
		r.Put("/ats-resume", letterHandler.UpdateATSResume)

		// Job search
		r.Get("/jobs/skills", searchHandler.GetSkills)
		r.Post("/jobs/search", searchHandler.SearchJobs)

		// Completion reporting
		r.Get("/pdf-status", statusHandler.Status)
		r.Get("/events", statusHandler.Events)

		// Documents and settings. serve_pdf selects the document with
		// query flags, documents/{kind} with a path segment.
		r.Get("/serve_pdf", documentHandler.ServeByQuery)
		r.Get("/documents/{kind}", documentHandler.Serve)
		r.Get("/settings", settingsHandler.GetSettings)
		r.Post("/settings", settingsHandler.UpdateSettings)
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
