package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tailor-api/internal/notify"
	"github.com/phrazzld/tailor-api/internal/task"
)

func newStatusHandler() (*StatusHandler, *task.ResultStore, *task.Registries) {
	results := task.NewResultStore()
	registries := task.NewRegistries()
	poller := notify.NewPoller(results, slog.Default())
	streamer := notify.NewStreamer(poller, registries, slog.Default())
	return NewStatusHandler(poller, streamer, registries), results, registries
}

func getStatus(t *testing.T, h *StatusHandler, url string) (*httptest.ResponseRecorder, notify.Status) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	var status notify.Status
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	}
	return rec, status
}

func TestStatus(t *testing.T) {
	t.Run("defaults_to_resume_stream", func(t *testing.T) {
		h, _, registries := newStatusHandler()
		registries.ResumeEdits.Register(uuid.New())

		rec, status := getStatus(t, h, "/api/pdf-status")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, status.Ready)
		assert.Equal(t, 1, status.ActiveCount)
	})

	t.Run("idle_stream_is_ready", func(t *testing.T) {
		h, _, _ := newStatusHandler()

		rec, status := getStatus(t, h, "/api/pdf-status?stream=cover_letter")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, status.Ready)
	})

	t.Run("completed_tasks_are_counted_and_retired", func(t *testing.T) {
		h, results, registries := newStatusHandler()

		id := uuid.New()
		registries.JobSearches.Register(id)
		require.NoError(t, results.Put(task.SucceededResult(id, task.CategoryJobSearch, nil)))

		rec, status := getStatus(t, h, "/api/pdf-status?stream=jobs")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, status.Ready)
		assert.Equal(t, 1, status.CompletedCount)

		// The next poll starts from a clean registry.
		_, status = getStatus(t, h, "/api/pdf-status?stream=jobs")
		assert.Equal(t, 0, status.CompletedCount)
	})

	t.Run("unknown_stream_is_rejected", func(t *testing.T) {
		h, _, _ := newStatusHandler()
		rec, _ := getStatus(t, h, "/api/pdf-status?stream=nonsense")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
