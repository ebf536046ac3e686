package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/tailor-api/internal/platform/metrics"
)

// Common errors returned by Submit.
var (
	ErrQueueClosed = fmt.Errorf("task queue is closed")
	ErrQueueFull   = fmt.Errorf("task queue is full")
)

// submission pairs a task function with its identity for the workers.
type submission struct {
	id       uuid.UUID
	category Category
	fn       Func
}

// RunnerConfig holds configuration for the task runner.
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks.
	// If zero or negative, defaults to 1.
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue.
	QueueSize int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// Runner manages background task processing. Submitted task functions are
// executed by a worker pool; their outcomes land in the result store and
// are never returned to the submitter.
type Runner struct {
	queue      chan submission
	results    *ResultStore
	registries *Registries
	config     RunnerConfig
	logger     *slog.Logger
	metrics    *metrics.Collector

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewRunner creates a Runner. collector may be nil to disable metrics.
func NewRunner(config RunnerConfig, results *ResultStore, registries *Registries, logger *slog.Logger, collector *metrics.Collector) *Runner {
	if config.WorkerCount <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
		config.WorkerCount = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultRunnerConfig().QueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		queue:      make(chan submission, config.QueueSize),
		results:    results,
		registries: registries,
		config:     config,
		logger:     logger,
		metrics:    collector,
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Results exposes the runner's result store.
func (r *Runner) Results() *ResultStore {
	return r.results
}

// Registries exposes the runner's per-stream registries.
func (r *Runner) Registries() *Registries {
	return r.registries
}

// Submit queues a task function and returns its ID immediately. The ID is
// registered in the category's registry before the task is enqueued, so a
// sweep started right after submission already sees the task as active.
// The lock covers both the closed check and the send: Stop cannot close the
// queue between them, so a racing submission gets ErrQueueClosed instead of
// a send on a closed channel.
func (r *Runner) Submit(_ context.Context, category Category, fn Func) (uuid.UUID, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return uuid.Nil, ErrQueueClosed
	}

	id := uuid.New()
	registry := r.registries.ForCategory(category)
	registry.Register(id)

	select {
	case r.queue <- submission{id: id, category: category, fn: fn}:
		r.mu.Unlock()
		if r.metrics != nil {
			r.metrics.RecordSubmitted(string(category))
			r.metrics.SetQueueDepth(len(r.queue))
		}
		r.logger.Debug("task submitted",
			"task_id", id,
			"category", category,
			"queue_len", len(r.queue),
			"queue_cap", cap(r.queue))
		return id, nil
	default:
		r.mu.Unlock()
		registry.Remove(id)
		return uuid.Nil, fmt.Errorf("%w: capacity %d reached", ErrQueueFull, cap(r.queue))
	}
}

// Start launches the worker pool.
func (r *Runner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
	r.logger.Info("task runner started", "worker_count", r.config.WorkerCount)
}

// Stop rejects further submissions, lets the workers drain what is already
// queued, and waits for them to exit.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	r.wg.Wait()
	r.cancelFunc()
	r.logger.Info("task runner stopped")
}

// worker drains the queue until it closes.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for sub := range r.queue {
		r.execute(sub, id)
	}

	r.logger.Debug("queue closed, stopping worker", "worker_id", id)
}

// execute runs one task function and records its terminal result. A panic
// inside the function becomes a failed result rather than killing the
// worker.
func (r *Runner) execute(sub submission, workerID int) {
	logger := r.logger.With(
		"task_id", sub.id,
		"category", sub.category,
		"worker_id", workerID,
	)

	if r.metrics != nil {
		r.metrics.SetQueueDepth(len(r.queue))
	}

	logger.Info("processing task")
	started := time.Now()

	var result *Result
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("task panicked", "panic", rec)
				result = FailedResult(sub.id, sub.category, fmt.Errorf("task panicked: %v", rec))
			}
		}()

		value, err := sub.fn(r.ctx)
		if err != nil {
			logger.Error("task execution failed", "error", err)
			result = FailedResult(sub.id, sub.category, err)
			return
		}
		result = SucceededResult(sub.id, sub.category, value)
	}()

	elapsed := time.Since(started).Seconds()

	if err := r.results.Put(result); err != nil {
		logger.Error("failed to record task result", "error", err)
		return
	}

	if r.metrics != nil {
		if result.IsErr {
			r.metrics.RecordFailed(string(sub.category), elapsed)
		} else {
			r.metrics.RecordCompleted(string(sub.category), elapsed)
		}
	}

	if !result.IsErr {
		logger.Info("task completed successfully", "duration_seconds", elapsed)
	}
}
