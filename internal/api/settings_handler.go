package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/phrazzld/tailor-api/internal/api/shared"
	"github.com/phrazzld/tailor-api/internal/artifact"
)

// KeyRotator applies a new language model API key at runtime.
type KeyRotator interface {
	SetAPIKey(ctx context.Context, key string) error
	Configured() bool
}

// SettingsHandler reads and updates workspace settings: the starting
// template choice, the candidate's background notes, and the language
// model API key.
type SettingsHandler struct {
	store *artifact.Store
	keys  KeyRotator
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(store *artifact.Store, keys KeyRotator) *SettingsHandler {
	return &SettingsHandler{store: store, keys: keys}
}

// GetSettings handles GET /api/settings requests.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, SettingsResponse{
		TemplatePreference: h.store.TemplatePreference(),
		BackgroundInfo:     h.store.BackgroundInfo(),
		LLMConfigured:      h.keys.Configured(),
	})
}

// UpdateSettings handles POST /api/settings requests. Only the fields
// present in the request change; the template preference survives workspace
// clears.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if strings.TrimSpace(req.CustomTemplate) != "" {
		if err := h.store.SetCustomTemplate(req.CustomTemplate); err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
	}

	if req.TemplatePreference != "" {
		if err := h.store.SetTemplatePreference(req.TemplatePreference); err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
	}

	if strings.TrimSpace(req.BackgroundInfo) != "" {
		if err := h.store.SetBackgroundInfo(req.BackgroundInfo); err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
	}

	if req.GeminiAPIKey != "" {
		if err := h.keys.SetAPIKey(r.Context(), req.GeminiAPIKey); err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
	}

	h.GetSettings(w, r)
}
