// Package task implements background task processing: a buffered queue fed
// by Submit, a worker pool that executes task functions, a write-once result
// store keyed by task ID, and per-category registries of in-flight work.
//
// Submitters receive a task ID immediately and never see execution errors;
// failures are captured as stored results for callers to poll or stream.
package task
