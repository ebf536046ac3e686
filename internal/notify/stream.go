package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/teris-io/shortid"

	"github.com/phrazzld/tailor-api/internal/task"
)

// ErrStreamingUnsupported is returned when the response writer cannot
// flush, which server-sent events require.
var ErrStreamingUnsupported = errors.New("response writer does not support streaming")

// Default stream cadence. Sweeps run often enough that completions reach
// the client quickly; heartbeats just keep the connection warm.
const (
	defaultSweepInterval     = 1 * time.Second
	defaultHeartbeatInterval = 2 * time.Second
)

// Event names pushed over the stream, one per result stream with payloads.
const (
	eventCoverLetterUpdate = "cover_letter_update"
	eventATSUpdate         = "ats_update"
	eventJobUpdate         = "job_update"
)

// eventFrame is the JSON payload of a completion event.
type eventFrame struct {
	TaskID  string `json:"task_id"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Streamer pushes task completion over server-sent events.
type Streamer struct {
	poller     *Poller
	registries *task.Registries
	logger     *slog.Logger

	sweepInterval     time.Duration
	heartbeatInterval time.Duration
}

// NewStreamer creates a Streamer with the default cadence.
func NewStreamer(poller *Poller, registries *task.Registries, logger *slog.Logger) *Streamer {
	return &Streamer{
		poller:            poller,
		registries:        registries,
		logger:            logger,
		sweepInterval:     defaultSweepInterval,
		heartbeatInterval: defaultHeartbeatInterval,
	}
}

// Serve writes SSE frames to w until ctx is cancelled, which normally
// means the client disconnected. While resume edits are in flight the
// stream carries "data: processing"; when everything is idle it falls back
// to a "data: ready" heartbeat. Completions on the cover letter, ATS, and
// job search streams are pushed as named events with JSON payloads.
func (s *Streamer) Serve(ctx context.Context, w http.ResponseWriter) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return ErrStreamingUnsupported
	}

	connID, err := shortid.Generate()
	if err != nil {
		connID = "unknown"
	}
	logger := s.logger.With("conn_id", connID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	logger.Info("event stream opened")
	defer logger.Info("event stream closed")

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	lastSent := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			sent, err := s.sweepOnce(w, flusher, logger)
			if err != nil {
				return err
			}
			if sent {
				lastSent = time.Now()
				continue
			}
			if time.Since(lastSent) >= s.heartbeatInterval {
				if err := writeData(w, flusher, "ready"); err != nil {
					return err
				}
				lastSent = time.Now()
			}
		}
	}
}

// sweepOnce runs one sweep over every registry and reports whether any
// frame was written.
func (s *Streamer) sweepOnce(w http.ResponseWriter, flusher http.Flusher, logger *slog.Logger) (bool, error) {
	sent := false

	resume := s.poller.SweepRegistry(s.registries.ResumeEdits)
	if !resume.Status.Ready {
		if err := writeData(w, flusher, "processing"); err != nil {
			return sent, err
		}
		sent = true
	} else if len(resume.Completed) > 0 {
		// The last resume edit just finished; tell the client its
		// document is current again.
		if err := writeData(w, flusher, "ready"); err != nil {
			return sent, err
		}
		sent = true
	}

	streams := []struct {
		registry *task.Registry
		event    string
	}{
		{s.registries.CoverLetters, eventCoverLetterUpdate},
		{s.registries.ATSResumes, eventATSUpdate},
		{s.registries.JobSearches, eventJobUpdate},
	}

	for _, stream := range streams {
		sweep := s.poller.SweepRegistry(stream.registry)
		for _, result := range sweep.Completed {
			frame := eventFrame{
				TaskID:  result.ID.String(),
				Success: !result.IsErr,
				Data:    result.Value,
				Error:   result.Err,
			}
			if err := writeEvent(w, flusher, stream.event, frame); err != nil {
				return sent, err
			}
			logger.Debug("pushed completion event",
				"event", stream.event,
				"task_id", result.ID,
				"success", frame.Success)
			sent = true
		}
	}

	return sent, nil
}

// writeData writes an unnamed SSE data frame.
func writeData(w http.ResponseWriter, flusher http.Flusher, data string) error {
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// writeEvent writes a named SSE event with a JSON payload.
func writeEvent(w http.ResponseWriter, flusher http.Flusher, event string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, body); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
