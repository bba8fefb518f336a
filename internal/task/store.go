package task

import (
	"sync"

	"github.com/google/uuid"
)

// StatusStore is the registry of task snapshots. Update applies its mutation
// atomically with respect to Get, so polls never observe a partially
// updated snapshot.
type StatusStore interface {
	// Create registers a new snapshot under its ID.
	Create(snapshot Snapshot)

	// Update applies fn to the stored snapshot for id. Unknown ids are
	// ignored; the task that owns the entry created it first.
	Update(id uuid.UUID, fn func(*Snapshot))

	// Get returns the current snapshot for id.
	Get(id uuid.UUID) (Snapshot, bool)
}

// MemoryStore is the in-process StatusStore. Entries accumulate for the
// lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]Snapshot
}

// NewMemoryStore creates an empty registry.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[uuid.UUID]Snapshot),
	}
}

// Create registers a new snapshot under its ID.
func (s *MemoryStore) Create(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[snapshot.ID] = snapshot
}

// Update applies fn to the stored snapshot for id under the write lock.
func (s *MemoryStore) Update(id uuid.UUID, fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.tasks[id]
	if !ok {
		return
	}
	fn(&snapshot)
	s.tasks[id] = snapshot
}

// Get returns the current snapshot for id.
func (s *MemoryStore) Get(id uuid.UUID) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.tasks[id]
	return snapshot, ok
}
