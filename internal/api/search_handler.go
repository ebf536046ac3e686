package api

import (
	"net/http"

	"github.com/phrazzld/tailor-api/internal/api/shared"
	"github.com/phrazzld/tailor-api/internal/jobs"
)

// SearchHandler handles skill extraction and job search requests.
type SearchHandler struct {
	searchService SearchProvider
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService SearchProvider) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// GetSkills handles GET /api/jobs/skills requests. Synchronous; it only
// reads the resume on disk.
func (h *SearchHandler) GetSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.searchService.Skills()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SkillsResponse{Skills: skills})
}

// SearchJobs handles POST /api/jobs/search requests. The scrape runs as a
// background task; the ranked results arrive as a job_update event.
func (h *SearchHandler) SearchJobs(w http.ResponseWriter, r *http.Request) {
	var req JobSearchRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	id, err := h.searchService.SubmitSearch(r.Context(), jobs.SearchParams{
		JobTitle:   req.JobTitle,
		Location:   req.Location,
		MaxResults: req.MaxResults,
		Sites:      req.Sites,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, TaskAcceptedResponse{TaskID: id.String()})
}
