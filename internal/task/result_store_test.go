package task

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultStorePutGet(t *testing.T) {
	store := NewResultStore()
	id := uuid.New()

	_, ok := store.Get(id)
	assert.False(t, ok, "unknown id must read as not completed")

	require.NoError(t, store.Put(SucceededResult(id, CategoryCoverLetter, "done")))

	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, "done", got.Value)
	assert.False(t, got.IsErr)
	assert.Equal(t, CategoryCoverLetter, got.Category)
}

func TestResultStoreWriteOnce(t *testing.T) {
	store := NewResultStore()
	id := uuid.New()

	require.NoError(t, store.Put(SucceededResult(id, CategoryJobSearch, "first")))

	err := store.Put(FailedResult(id, CategoryJobSearch, errors.New("second")))
	assert.ErrorIs(t, err, ErrResultExists)

	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, "first", got.Value, "first write must win")
	assert.False(t, got.IsErr)
}

func TestResultStoreDelete(t *testing.T) {
	store := NewResultStore()
	id := uuid.New()

	require.NoError(t, store.Put(SucceededResult(id, CategoryClear, nil)))
	store.Delete(id)

	_, ok := store.Get(id)
	assert.False(t, ok)

	// Deleting again must not panic.
	store.Delete(id)
}

func TestResultStoreConcurrentWriters(t *testing.T) {
	store := NewResultStore()
	id := uuid.New()

	const writers = 16
	var wg sync.WaitGroup
	successes := make(chan int, writers)

	for i := 0; i < writers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Put(SucceededResult(id, CategoryResumeLinks, i)); err == nil {
				successes <- i
			}
		}()
	}
	wg.Wait()
	close(successes)

	var winners []int
	for w := range successes {
		winners = append(winners, w)
	}
	require.Len(t, winners, 1, "exactly one writer must win")

	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, winners[0], got.Value)
}
