// Package service composes the document store, the LLM generator, the web
// extractor, and the task runner into the operations the API exposes.
// Long-running operations are submitted as background tasks and identified
// by task ID; their outcomes surface through the completion notifier, not
// through the submitting call.
package service
