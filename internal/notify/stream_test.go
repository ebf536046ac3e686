package notify

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tailor-api/internal/task"
)

func newTestStreamer(results *task.ResultStore, registries *task.Registries) *Streamer {
	s := NewStreamer(NewPoller(results, slog.Default()), registries, slog.Default())
	s.sweepInterval = 5 * time.Millisecond
	s.heartbeatInterval = 10 * time.Millisecond
	return s
}

func serveFor(t *testing.T, s *Streamer, d time.Duration) string {
	t.Helper()

	rec := httptest.NewRecorder()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	require.NoError(t, s.Serve(ctx, rec))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	return rec.Body.String()
}

func TestServeHeartbeatsWhenIdle(t *testing.T) {
	s := newTestStreamer(task.NewResultStore(), task.NewRegistries())

	body := serveFor(t, s, 100*time.Millisecond)
	assert.Contains(t, body, "data: ready\n\n")
	assert.NotContains(t, body, "data: processing")
}

func TestServeReportsProcessingWhileResumeEditsRun(t *testing.T) {
	results := task.NewResultStore()
	registries := task.NewRegistries()
	s := newTestStreamer(results, registries)

	id := uuid.New()
	registries.ResumeEdits.Register(id)

	go func() {
		time.Sleep(40 * time.Millisecond)
		_ = results.Put(task.SucceededResult(id, task.CategoryResumeFeedback, nil))
	}()

	body := serveFor(t, s, 150*time.Millisecond)
	assert.Contains(t, body, "data: processing\n\n")

	// Once the edit resolves the stream flips back to ready.
	idx := strings.LastIndex(body, "data: processing")
	assert.Contains(t, body[idx:], "data: ready\n\n")
	assert.Equal(t, 0, registries.ResumeEdits.Len())
}

func TestServePushesCompletionEvents(t *testing.T) {
	results := task.NewResultStore()
	registries := task.NewRegistries()
	s := newTestStreamer(results, registries)

	letter := uuid.New()
	search := uuid.New()
	registries.CoverLetters.Register(letter)
	registries.JobSearches.Register(search)

	require.NoError(t, results.Put(task.SucceededResult(letter, task.CategoryCoverLetter,
		map[string]any{"keywords_matched": []string{"go"}})))
	require.NoError(t, results.Put(task.FailedResult(search, task.CategoryJobSearch,
		errors.New("scraper down"))))

	body := serveFor(t, s, 100*time.Millisecond)

	assert.Contains(t, body, "event: cover_letter_update\n")
	assert.Contains(t, body, letter.String())
	assert.Contains(t, body, `"keywords_matched":["go"]`)

	assert.Contains(t, body, "event: job_update\n")
	assert.Contains(t, body, `"success":false`)
	assert.Contains(t, body, "scraper down")

	// Each completion is delivered exactly once.
	assert.Equal(t, 1, strings.Count(body, "event: cover_letter_update"))
	assert.Equal(t, 1, strings.Count(body, "event: job_update"))
}

type noFlushWriter struct {
	header http.Header
}

func (w *noFlushWriter) Header() http.Header         { return w.header }
func (w *noFlushWriter) Write(b []byte) (int, error) { return len(b), nil }
func (w *noFlushWriter) WriteHeader(int)             {}

func TestServeRequiresFlusher(t *testing.T) {
	s := newTestStreamer(task.NewResultStore(), task.NewRegistries())

	err := s.Serve(context.Background(), &noFlushWriter{header: http.Header{}})
	assert.ErrorIs(t, err, ErrStreamingUnsupported)
}
