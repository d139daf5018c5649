// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// TASK STATUS
// =============================================================================

// TaskStatus represents the current state of a background task.
type TaskStatus string

const (
	// TaskStatusQueued indicates the task is waiting to be executed
	TaskStatusQueued TaskStatus = "Queued"

	// TaskStatusRunning indicates the task is currently executing
	TaskStatusRunning TaskStatus = "Running"

	// TaskStatusComplete indicates the task finished successfully
	TaskStatusComplete TaskStatus = "Complete"

	// TaskStatusFailed indicates the task encountered an error
	TaskStatusFailed TaskStatus = "Failed"

	// TaskStatusCanceled indicates the task was canceled
	TaskStatusCanceled TaskStatus = "Canceled"
)

// String returns the string representation of the task status.
func (s TaskStatus) String() string {
	return string(s)
}

// =============================================================================
// TASK STRUCTURE
// =============================================================================

// Func is the work a task performs. It must honor ctx: gateway calls made
// inside should stop promptly once the task is canceled.
type Func func(ctx context.Context) error

// Task is one unit of background work, usually a gateway call kicked off by
// a command so the input loop never blocks on the network.
type Task struct {
	// ID is a unique identifier for this task
	ID string

	// Description is a human-readable description of what this task does
	Description string

	// Status is the current state of the task
	Status TaskStatus

	// StartTime is when the task started running
	StartTime time.Time

	// EndTime is when the task completed or failed
	EndTime time.Time

	// Error is the error message if the task failed
	Error string

	// run is the work to perform
	run Func

	// cancel is the context cancel function for this task
	cancel context.CancelFunc

	// mu protects concurrent access to the task
	mu sync.RWMutex
}

// New creates a task that will run fn when scheduled.
func New(description string, fn Func) *Task {
	return &Task{
		ID:          uuid.New().String(),
		Description: description,
		Status:      TaskStatusQueued,
		run:         fn,
	}
}

// =============================================================================
// TASK METHODS
// =============================================================================

// GetStatus returns the current task status (thread-safe).
func (t *Task) GetStatus() TaskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Status
}

// GetError returns the error message (thread-safe).
func (t *Task) GetError() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Error
}

// MarkStarted marks the task as running and records its cancel handle.
func (t *Task) MarkStarted(cancel context.CancelFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = TaskStatusRunning
	t.StartTime = time.Now()
	t.cancel = cancel
}

// MarkComplete marks the task as successfully completed.
func (t *Task) MarkComplete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = TaskStatusComplete
	t.EndTime = time.Now()
}

// MarkCanceled marks the task as canceled.
func (t *Task) MarkCanceled() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = TaskStatusCanceled
	t.EndTime = time.Now()
}

// SetError records the error and marks the task as failed.
func (t *Task) SetError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.Error = err.Error()
		t.Status = TaskStatusFailed
		t.EndTime = time.Now()
	}
}

// Cancel cancels the task if it is queued or running. Returns true if the
// task was canceled.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Status != TaskStatusRunning && t.Status != TaskStatusQueued {
		return false
	}

	if t.cancel != nil {
		t.cancel()
	}

	t.Status = TaskStatusCanceled
	t.EndTime = time.Now()
	return true
}

// Duration returns how long the task has been running or took to complete.
func (t *Task) Duration() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.StartTime.IsZero() {
		return 0
	}
	if t.EndTime.IsZero() {
		return time.Since(t.StartTime)
	}
	return t.EndTime.Sub(t.StartTime)
}

// IsComplete returns true if the task has finished (success, failure, or
// canceled).
func (t *Task) IsComplete() bool {
	status := t.GetStatus()
	return status == TaskStatusComplete || status == TaskStatusFailed || status == TaskStatusCanceled
}

// Summary returns a one-line summary of the task.
func (t *Task) Summary() string {
	status := t.GetStatus()
	duration := t.Duration()

	summary := fmt.Sprintf("[%s] %s - %s", t.ID[:8], t.Description, status)
	if duration > 0 {
		summary += fmt.Sprintf(" (%.1fs)", duration.Seconds())
	}
	return summary
}
