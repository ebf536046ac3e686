package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/tailor-api/internal/api/shared"
	"github.com/phrazzld/tailor-api/internal/notify"
	"github.com/phrazzld/tailor-api/internal/task"
)

// StatusHandler answers completion queries, both one-shot polls and the
// server-sent event stream.
type StatusHandler struct {
	poller     *notify.Poller
	streamer   *notify.Streamer
	registries *task.Registries
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(poller *notify.Poller, streamer *notify.Streamer, registries *task.Registries) *StatusHandler {
	return &StatusHandler{
		poller:     poller,
		streamer:   streamer,
		registries: registries,
	}
}

// registryForStream maps the stream query parameter to a registry. An empty
// value defaults to the resume stream, matching what most clients poll.
func (h *StatusHandler) registryForStream(stream string) (*task.Registry, bool) {
	switch stream {
	case "", "resume":
		return h.registries.ResumeEdits, true
	case "cover_letter":
		return h.registries.CoverLetters, true
	case "ats_resume":
		return h.registries.ATSResumes, true
	case "jobs":
		return h.registries.JobSearches, true
	default:
		return nil, false
	}
}

// Status handles GET /api/pdf-status requests. The optional stream query
// parameter selects which task stream to report on.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	registry, ok := h.registryForStream(r.URL.Query().Get("stream"))
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unknown stream")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.poller.Poll(registry))
}

// Events handles GET /api/events requests. The connection stays open until
// the client disconnects.
func (h *StatusHandler) Events(w http.ResponseWriter, r *http.Request) {
	if err := h.streamer.Serve(r.Context(), w); err != nil {
		if errors.Is(err, notify.ErrStreamingUnsupported) {
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Streaming not supported")
			return
		}
		// Mid-stream write failures mean the client is gone; there is
		// nothing useful left to send.
	}
}
