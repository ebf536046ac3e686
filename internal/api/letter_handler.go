package api

import (
	"context"
	"net/http"

	"github.com/phrazzld/tailor-api/internal/api/shared"
	"github.com/phrazzld/tailor-api/internal/service"
)

// LetterHandler handles cover letter and ATS resume requests.
type LetterHandler struct {
	letterService LetterSubmitter
}

// NewLetterHandler creates a new LetterHandler.
func NewLetterHandler(letterService LetterSubmitter) *LetterHandler {
	return &LetterHandler{letterService: letterService}
}

// GenerateCoverLetter handles POST /api/cover-letter/generate requests.
func (h *LetterHandler) GenerateCoverLetter(w http.ResponseWriter, r *http.Request) {
	var req CoverLetterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	id, err := h.letterService.SubmitCoverLetter(r.Context(), service.CoverLetterRequest{
		JobDescription: req.JobDescription,
		Company:        req.Company,
		Title:          req.Title,
		JobURL:         req.JobURL,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, TaskAcceptedResponse{TaskID: id.String()})
}

// UpdateCoverLetter handles POST /api/cover-letter/update requests. The
// edit is synchronous: the new source is written and compiled before
// responding.
func (h *LetterHandler) UpdateCoverLetter(w http.ResponseWriter, r *http.Request) {
	h.directEdit(w, r, h.letterService.UpdateCoverLetter)
}

// GenerateATSResume handles POST /api/ats-resume/generate requests.
func (h *LetterHandler) GenerateATSResume(w http.ResponseWriter, r *http.Request) {
	var req ATSResumeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	id, err := h.letterService.SubmitATSResume(r.Context(), req.JobDescription, req.JobURL)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, TaskAcceptedResponse{TaskID: id.String()})
}

// UpdateATSResume handles POST /api/ats-resume/update requests.
// Synchronous, like UpdateCoverLetter.
func (h *LetterHandler) UpdateATSResume(w http.ResponseWriter, r *http.Request) {
	h.directEdit(w, r, h.letterService.UpdateATSResume)
}

func (h *LetterHandler) directEdit(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, texContent string) error,
) {
	var req TexUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := apply(r.Context(), req.TexContent); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}
