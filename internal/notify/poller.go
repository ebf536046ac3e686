// Package notify reports task completion to clients, either as a one-shot
// polling status or as a server-sent event stream. Both are driven by the
// same sweep: snapshot a registry, look each task up in the result store,
// and retire the ones that finished.
package notify

import (
	"log/slog"

	"github.com/phrazzld/tailor-api/internal/task"
)

// Status summarizes one sweep of a registry.
type Status struct {
	Ready          bool `json:"ready"`
	ActiveCount    int  `json:"active_count"`
	CompletedCount int  `json:"completed_count"`
}

// Sweep pairs a status with the results that completed during it.
type Sweep struct {
	Status    Status
	Completed []*task.Result
}

// Poller answers "is the work done yet" for a registry of in-flight tasks.
type Poller struct {
	results *task.ResultStore
	logger  *slog.Logger
}

// NewPoller creates a Poller over the given result store.
func NewPoller(results *task.ResultStore, logger *slog.Logger) *Poller {
	return &Poller{results: results, logger: logger}
}

// Poll sweeps the registry and returns only the status.
func (p *Poller) Poll(registry *task.Registry) Status {
	return p.SweepRegistry(registry).Status
}

// SweepRegistry snapshots the registry, resolves each ID against the result
// store, and removes resolved IDs from the registry after the sweep. An ID
// with no stored result counts as active regardless of how it got there.
// An empty registry short-circuits to ready.
func (p *Poller) SweepRegistry(registry *task.Registry) Sweep {
	ids := registry.List()
	if len(ids) == 0 {
		return Sweep{Status: Status{Ready: true}}
	}

	var sweep Sweep
	for _, id := range ids {
		result, ok := p.results.Get(id)
		if !ok {
			sweep.Status.ActiveCount++
			continue
		}
		sweep.Completed = append(sweep.Completed, result)
	}

	for _, result := range sweep.Completed {
		registry.Remove(result.ID)
		if result.IsErr {
			p.logger.Error("task failed",
				"task_id", result.ID,
				"category", result.Category,
				"error", result.Err)
		}
	}

	sweep.Status.CompletedCount = len(sweep.Completed)
	sweep.Status.Ready = sweep.Status.ActiveCount == 0

	if len(sweep.Completed) > 0 {
		p.logger.Debug("sweep retired completed tasks",
			"completed", sweep.Status.CompletedCount,
			"active", sweep.Status.ActiveCount)
	}
	return sweep
}
