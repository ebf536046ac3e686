// Package metrics collects and exposes Prometheus metrics for the task
// lifecycle and document compilation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector bundles the application's Prometheus metrics.
type Collector struct {
	tasksSubmitted *prometheus.CounterVec
	tasksCompleted *prometheus.CounterVec
	tasksFailed    *prometheus.CounterVec
	queueDepth     prometheus.Gauge
	taskDuration   *prometheus.HistogramVec
	compileTime    prometheus.Histogram
}

// NewCollector creates the metric set and registers it with reg.
// Pass prometheus.DefaultRegisterer in production; tests should pass
// their own registry to avoid duplicate registration.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		tasksSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tailor_tasks_submitted_total",
			Help: "Total number of tasks submitted to the broker",
		}, []string{"category"}),
		tasksCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tailor_tasks_completed_total",
			Help: "Total number of tasks completed successfully",
		}, []string{"category"}),
		tasksFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tailor_tasks_failed_total",
			Help: "Total number of tasks that finished with an error",
		}, []string{"category"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tailor_task_queue_depth",
			Help: "Current number of tasks waiting in the queue",
		}),
		taskDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tailor_task_duration_seconds",
			Help:    "Task execution latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"category"}),
		compileTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tailor_compile_duration_seconds",
			Help:    "pdflatex compilation latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.tasksSubmitted,
		c.tasksCompleted,
		c.tasksFailed,
		c.queueDepth,
		c.taskDuration,
		c.compileTime,
	)

	return c
}

// RecordSubmitted records a task entering the queue.
func (c *Collector) RecordSubmitted(category string) {
	c.tasksSubmitted.WithLabelValues(category).Inc()
}

// RecordCompleted records a successful task and its latency.
func (c *Collector) RecordCompleted(category string, seconds float64) {
	c.tasksCompleted.WithLabelValues(category).Inc()
	c.taskDuration.WithLabelValues(category).Observe(seconds)
}

// RecordFailed records a failed task and its latency.
func (c *Collector) RecordFailed(category string, seconds float64) {
	c.tasksFailed.WithLabelValues(category).Inc()
	c.taskDuration.WithLabelValues(category).Observe(seconds)
}

// SetQueueDepth updates the queue depth gauge.
func (c *Collector) SetQueueDepth(depth int) {
	c.queueDepth.Set(float64(depth))
}

// RecordCompile records one LaTeX compilation latency.
func (c *Collector) RecordCompile(seconds float64) {
	c.compileTime.Observe(seconds)
}
