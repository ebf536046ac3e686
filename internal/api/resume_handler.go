package api

import (
	"net/http"
	"strings"

	"github.com/phrazzld/tailor-api/internal/api/shared"
	"github.com/phrazzld/tailor-api/internal/task"
)

// ResumeHandler handles resume edit and workspace reset requests.
type ResumeHandler struct {
	resumeService ResumeSubmitter
	registries    *task.Registries
}

// NewResumeHandler creates a new ResumeHandler.
func NewResumeHandler(resumeService ResumeSubmitter, registries *task.Registries) *ResumeHandler {
	return &ResumeHandler{resumeService: resumeService, registries: registries}
}

// UpdateResume handles POST /api/update-resume requests. Each populated
// request field is submitted as its own background task; the response
// reports every task ID so the client can follow them on the event stream.
func (h *ResumeHandler) UpdateResume(w http.ResponseWriter, r *http.Request) {
	var req UpdateResumeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	resp := TaskSubmittedResponse{TaskIDs: map[string]string{}}
	ctx := r.Context()

	if len(req.Links) > 0 {
		id, err := h.resumeService.SubmitLinkUpdate(ctx, req.Links)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		resp.TaskIDs["links"] = id.String()
	}

	if strings.TrimSpace(req.Feedback) != "" {
		id, err := h.resumeService.SubmitFeedbackEdit(ctx, req.Feedback)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		resp.TaskIDs["feedback"] = id.String()
	}

	if strings.TrimSpace(req.JobLink) != "" {
		id, err := h.resumeService.SubmitJobOptimize(ctx, req.JobLink)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		resp.TaskIDs["joblink"] = id.String()
	}

	if strings.TrimSpace(req.TexContent) != "" {
		id, err := h.resumeService.SubmitTexEdit(ctx, req.TexContent)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		resp.TaskIDs["tex_content"] = id.String()
	}

	resp.Message = "Resume update tasks submitted"
	resp.TasksSubmitted = len(resp.TaskIDs)
	resp.ActiveCount = h.registries.ResumeEdits.Len()
	shared.RespondWithJSON(w, r, http.StatusAccepted, resp)
}

// ClearResume handles POST /api/clear-resume requests. The reset runs as a
// background task so it serializes behind pending edits.
func (h *ResumeHandler) ClearResume(w http.ResponseWriter, r *http.Request) {
	id, err := h.resumeService.SubmitClear(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, TaskSubmittedResponse{
		Message:        "Clear task submitted",
		TasksSubmitted: 1,
		ActiveCount:    h.registries.ResumeEdits.Len(),
		TaskIDs:        map[string]string{"clear": id.String()},
	})
}
