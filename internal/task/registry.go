package task

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks in-flight task IDs for one stream of work, preserving
// submission order. All methods are safe for concurrent use.
type Registry struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a task ID. Registering an ID that is already present is
// a no-op, so a task never appears twice in the same sweep.
func (r *Registry) Register(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.ids {
		if existing == id {
			return
		}
	}
	r.ids = append(r.ids, id)
}

// Remove deletes a task ID. Removing an absent ID is a no-op.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.ids {
		if existing == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			return
		}
	}
}

// List returns a snapshot of the registered IDs in submission order.
func (r *Registry) List() []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uuid.UUID, len(r.ids))
	copy(out, r.ids)
	return out
}

// Len returns the number of registered IDs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

// Registries groups the per-stream registries the API exposes. Resume
// edits of every kind share one registry; cover letters, ATS resumes, and
// job searches each have their own.
type Registries struct {
	ResumeEdits  *Registry
	CoverLetters *Registry
	ATSResumes   *Registry
	JobSearches  *Registry
}

// NewRegistries creates one registry per stream.
func NewRegistries() *Registries {
	return &Registries{
		ResumeEdits:  NewRegistry(),
		CoverLetters: NewRegistry(),
		ATSResumes:   NewRegistry(),
		JobSearches:  NewRegistry(),
	}
}

// ForCategory returns the registry a category's tasks are tracked in.
func (r *Registries) ForCategory(category Category) *Registry {
	switch category {
	case CategoryCoverLetter:
		return r.CoverLetters
	case CategoryATSResume:
		return r.ATSResumes
	case CategoryJobSearch:
		return r.JobSearches
	default:
		// Resume edit variants and clear all report through the resume
		// stream.
		return r.ResumeEdits
	}
}

// All returns every registry, for teardown sweeps.
func (r *Registries) All() []*Registry {
	return []*Registry{r.ResumeEdits, r.CoverLetters, r.ATSResumes, r.JobSearches}
}
