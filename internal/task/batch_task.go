package task

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// TypeBatchGeneration is the task type for batch description runs.
const TypeBatchGeneration = "batch_generation"

// ErrNilStore is returned when a batch task is built without a registry.
var ErrNilStore = errors.New("status store cannot be nil")

// BatchFunc executes one batch run and returns the written file path. The
// progress callback receives the number of processed records and the total.
type BatchFunc func(ctx context.Context, progress func(done, total int)) (string, error)

// BatchTask adapts a batch run into the Task interface and owns all writes
// to its registry entry: the single-writer-per-key contract lives here.
type BatchTask struct {
	id     uuid.UUID
	run    BatchFunc
	store  StatusStore
	logger *slog.Logger
}

// NewBatchTask creates a batch task and registers its entry with progress 0
// and status started, so the identifier is pollable as soon as the caller
// learns it.
func NewBatchTask(run BatchFunc, store StatusStore, logger *slog.Logger) (*BatchTask, error) {
	if run == nil {
		return nil, errors.New("run function cannot be nil")
	}
	if store == nil {
		return nil, ErrNilStore
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	id := uuid.New()
	store.Create(Snapshot{
		ID:     id,
		Status: StatusStarted,
	})

	return &BatchTask{
		id:     id,
		run:    run,
		store:  store,
		logger: logger.With("task_type", TypeBatchGeneration, "task_id", id),
	}, nil
}

// ID returns the task's unique identifier.
func (t *BatchTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier.
func (t *BatchTask) Type() string {
	return TypeBatchGeneration
}

// Fail finalizes the registry entry as an error without running the task.
// Used when the task could not be queued.
func (t *BatchTask) Fail(msg string) {
	t.store.Update(t.id, func(s *Snapshot) {
		s.Status = StatusError
		s.Error = msg
	})
}

// Execute runs the batch, mirroring its progress into the registry entry
// after each processed record and finalizing the entry as done or error.
func (t *BatchTask) Execute(ctx context.Context) error {
	started := time.Now()

	path, err := t.run(ctx, func(done, total int) {
		t.store.Update(t.id, func(s *Snapshot) {
			if total > 0 {
				s.Progress = done * 100 / total
			}
			s.Elapsed = time.Since(started).Seconds()
		})
	})
	if err != nil {
		t.store.Update(t.id, func(s *Snapshot) {
			s.Status = StatusError
			s.Error = err.Error()
			s.Elapsed = time.Since(started).Seconds()
		})
		return err
	}

	t.store.Update(t.id, func(s *Snapshot) {
		s.Status = StatusDone
		s.Progress = 100
		s.File = path
		s.Elapsed = time.Since(started).Seconds()
	})
	t.logger.Info("batch task completed", "file", path)

	return nil
}
