package task

import (
	"context"

	"github.com/google/uuid"
)

// Category identifies the kind of work a task performs. The completion
// notifier groups in-flight tasks by category when reporting progress.
type Category string

// Known task categories.
const (
	CategoryResumeLinks       Category = "resume_links"
	CategoryResumeFeedback    Category = "resume_feedback"
	CategoryResumeJobOptimize Category = "resume_job_optimize"
	CategoryResumeTexEdit     Category = "resume_tex_edit"
	CategoryCoverLetter       Category = "cover_letter"
	CategoryJobSearch         Category = "job_search"
	CategoryATSResume         Category = "ats_resume"
	CategoryClear             Category = "clear"
)

// Func is the unit of work executed by the runner. The returned value
// becomes the task's stored result on success.
type Func func(ctx context.Context) (any, error)

// Result is the terminal outcome of a task. Exactly one of Value or Err is
// meaningful, discriminated by IsErr.
type Result struct {
	ID       uuid.UUID `json:"id"`
	Category Category  `json:"category"`
	Value    any       `json:"value,omitempty"`
	Err      string    `json:"error,omitempty"`
	IsErr    bool      `json:"is_error"`
}

// SucceededResult builds a success result for the given task.
func SucceededResult(id uuid.UUID, category Category, value any) *Result {
	return &Result{ID: id, Category: category, Value: value}
}

// FailedResult builds a failure result carrying the error message.
func FailedResult(id uuid.UUID, category Category, err error) *Result {
	return &Result{ID: id, Category: category, Err: err.Error(), IsErr: true}
}
