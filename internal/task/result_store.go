package task

import (
	"errors"

	"github.com/alphadose/haxmap"
	"github.com/google/uuid"
)

// ErrResultExists is returned when a second result is written for a task.
var ErrResultExists = errors.New("task result already recorded")

// ResultStore holds terminal task results keyed by task ID. Results are
// write-once; an absent ID means the task has not completed yet.
type ResultStore struct {
	results *haxmap.Map[string, *Result]
}

// NewResultStore creates an empty result store.
func NewResultStore() *ResultStore {
	return &ResultStore{
		results: haxmap.New[string, *Result](),
	}
}

// Put records the result for a task. The first write wins; subsequent
// writes for the same ID return ErrResultExists and leave the stored
// result untouched.
func (s *ResultStore) Put(result *Result) error {
	if _, loaded := s.results.GetOrSet(result.ID.String(), result); loaded {
		return ErrResultExists
	}
	return nil
}

// Get returns the stored result for a task ID. ok is false when the task
// has not completed, which callers must treat as "still pending" rather
// than an error.
func (s *ResultStore) Get(id uuid.UUID) (*Result, bool) {
	return s.results.Get(id.String())
}

// Delete removes the result for a task ID. Deleting an absent ID is a
// no-op.
func (s *ResultStore) Delete(id uuid.UUID) {
	s.results.Del(id.String())
}

// Len returns the number of stored results.
func (s *ResultStore) Len() int {
	return int(s.results.Len())
}
