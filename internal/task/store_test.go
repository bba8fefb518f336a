package task

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	store := NewMemoryStore()
	id := uuid.New()

	store.Create(Snapshot{ID: id, Status: StatusStarted})

	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, StatusStarted, got.Status)
	assert.Zero(t, got.Progress)
}

func TestMemoryStoreGetUnknownID(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get(uuid.New())

	assert.False(t, ok)
}

func TestMemoryStoreUpdate(t *testing.T) {
	store := NewMemoryStore()
	id := uuid.New()
	store.Create(Snapshot{ID: id, Status: StatusStarted})

	store.Update(id, func(s *Snapshot) {
		s.Progress = 50
		s.Elapsed = 1.5
	})

	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, 50, got.Progress)
	assert.Equal(t, 1.5, got.Elapsed)
	assert.Equal(t, StatusStarted, got.Status, "untouched fields keep their values")
}

func TestMemoryStoreUpdateUnknownIDIsNoop(t *testing.T) {
	store := NewMemoryStore()

	assert.NotPanics(t, func() {
		store.Update(uuid.New(), func(s *Snapshot) { s.Progress = 10 })
	})
}

// Concurrent updates to distinct keys must not interfere; this mirrors two
// batch runs progressing at the same time.
func TestMemoryStoreConcurrentKeys(t *testing.T) {
	store := NewMemoryStore()
	first := uuid.New()
	second := uuid.New()
	store.Create(Snapshot{ID: first, Status: StatusStarted})
	store.Create(Snapshot{ID: second, Status: StatusStarted})

	var wg sync.WaitGroup
	for _, id := range []uuid.UUID{first, second} {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			for i := 1; i <= 100; i++ {
				store.Update(id, func(s *Snapshot) { s.Progress = i })
			}
		}(id)
	}
	wg.Wait()

	got, _ := store.Get(first)
	assert.Equal(t, 100, got.Progress)
	got, _ = store.Get(second)
	assert.Equal(t, 100, got.Progress)
}
