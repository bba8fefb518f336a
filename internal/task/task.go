// Package task provides background execution of batch runs: a bounded
// queue, a worker pool, and a registry of task progress snapshots polled
// over HTTP.
package task

import (
	"context"

	"github.com/google/uuid"
)

// Status represents the externally visible state of a task.
type Status string

// Possible task status values.
const (
	StatusStarted Status = "started"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier.
	ID() uuid.UUID

	// Type returns the task type identifier.
	Type() string

	// Execute runs the task logic.
	Execute(ctx context.Context) error
}

// Snapshot is the progress/status view of one task. Registry entries are
// never deleted; they live for the lifetime of the process.
type Snapshot struct {
	ID       uuid.UUID `json:"task_id"`
	Progress int       `json:"progress"`
	Status   Status    `json:"status"`
	Elapsed  float64   `json:"elapsed_seconds"`
	File     string    `json:"file,omitempty"`
	Error    string    `json:"error,omitempty"`
}
