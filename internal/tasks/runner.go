// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// =============================================================================
// TASK RUNNER
// =============================================================================

// Runner executes tasks on background goroutines, bounded by a concurrency
// limit. Every spawned task carries a cancelable context; Stop cancels
// whatever is still in flight and waits for it to unwind.
type Runner struct {
	log           *logrus.Entry
	wg            sync.WaitGroup
	semaphore     chan struct{}
	taskTimeout   time.Duration
	notifications chan Notification

	mu      sync.Mutex
	history []*Task
	stopped bool
	cancels map[string]context.CancelFunc
}

// Notification reports a task reaching a terminal state. The host loop reads
// these to print completions without polling.
type Notification struct {
	TaskID      string
	Description string
	Status      TaskStatus
	Error       string
	Duration    time.Duration
}

// NewRunner creates a runner with the given concurrency limit and per-task
// timeout (0 = no timeout).
func NewRunner(maxConcurrent int, taskTimeout time.Duration, log *logrus.Entry) *Runner {
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	return &Runner{
		log:           log.WithField("component", "tasks"),
		semaphore:     make(chan struct{}, maxConcurrent),
		taskTimeout:   taskTimeout,
		notifications: make(chan Notification, 100),
		cancels:       make(map[string]context.CancelFunc),
	}
}

// ErrStopped is returned by Spawn after the runner has been stopped.
var ErrStopped = errors.New("task runner stopped")

// =============================================================================
// SPAWNING
// =============================================================================

// Spawn starts a task on a background goroutine and returns it as a handle.
// The caller can Cancel the returned task; it never has to.
func (r *Runner) Spawn(task *Task) (*Task, error) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return nil, ErrStopped
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if r.taskTimeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), r.taskTimeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	r.cancels[task.ID] = cancel
	r.history = append(r.history, task)
	r.wg.Add(1)
	r.mu.Unlock()

	go r.execute(ctx, cancel, task)
	return task, nil
}

// Go is a convenience wrapper: build a task from a description and function,
// then spawn it.
func (r *Runner) Go(description string, fn Func) (*Task, error) {
	return r.Spawn(New(description, fn))
}

// execute runs a single task to a terminal state.
func (r *Runner) execute(ctx context.Context, cancel context.CancelFunc, task *Task) {
	defer r.wg.Done()
	defer cancel()
	defer func() {
		r.mu.Lock()
		delete(r.cancels, task.ID)
		r.mu.Unlock()
	}()

	// Respect the concurrency cap, but give up if canceled while waiting.
	select {
	case r.semaphore <- struct{}{}:
	case <-ctx.Done():
		task.MarkCanceled()
		r.notify(task)
		return
	}
	defer func() { <-r.semaphore }()

	task.MarkStarted(cancel)

	err := task.run(ctx)
	switch {
	case err == nil:
		task.MarkComplete()
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		task.MarkCanceled()
	default:
		task.SetError(err)
		r.log.WithError(err).WithField("task", task.Description).Warn("task failed")
	}
	r.notify(task)
}

// =============================================================================
// CANCELLATION AND LIFECYCLE
// =============================================================================

// Cancel cancels a task by ID. Returns true if the task was found and
// canceled.
func (r *Runner) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.history {
		if task.ID == id {
			return task.Cancel()
		}
	}
	return false
}

// Stop cancels every in-flight task and waits for all goroutines to exit.
// Spawn fails afterward.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.stopped = true
	for _, cancel := range r.cancels {
		cancel()
	}
	r.mu.Unlock()

	r.wg.Wait()
}

// =============================================================================
// QUERIES AND NOTIFICATIONS
// =============================================================================

// Running returns the tasks that have not reached a terminal state.
func (r *Runner) Running() []*Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*Task
	for _, task := range r.history {
		if !task.IsComplete() {
			result = append(result, task)
		}
	}
	return result
}

// Notifications returns the channel of terminal-state notifications.
func (r *Runner) Notifications() <-chan Notification {
	return r.notifications
}

// notify sends a notification without ever blocking the worker.
func (r *Runner) notify(task *Task) {
	n := Notification{
		TaskID:      task.ID,
		Description: task.Description,
		Status:      task.GetStatus(),
		Error:       task.GetError(),
		Duration:    task.Duration(),
	}
	select {
	case r.notifications <- n:
	default:
		r.log.WithField("task", n.TaskID).Warn("notification channel full, dropped")
	}
}
