// Package sweep reconciles calendar-task completion status against due
// time: overdue open tasks are completed, prematurely-completed tasks
// whose due moved back into the future are reopened.
package sweep

import (
	"fmt"
	"log"
	"sync"

	"github.com/cailloux/agenda/internal/store"
	"github.com/cailloux/agenda/internal/task"
	"github.com/cailloux/agenda/internal/tz"
)

// Controller runs sweep passes under a single-flight guard. The guard
// is owned by the instance, not the package, so independent instances
// (and tests) never cross-contaminate.
type Controller struct {
	store  store.TaskStore
	logger *log.Logger
	mu     sync.Mutex // the sweep lock: held exactly while a pass executes
}

func NewController(s store.TaskStore, logger *log.Logger) *Controller {
	return &Controller{store: s, logger: logger}
}

// Result summarizes one tick.
type Result struct {
	// Skipped is true when another pass was already in flight and this
	// tick did nothing.
	Skipped bool
	// Updated holds the authoritative records returned by the store
	// for every successful transition, for the caller to merge into
	// local state.
	Updated   []task.Task
	Completed int
	Reopened  int
	Failed    int
}

// Tick runs one sweep pass. Invoked by the periodic driver roughly
// every 30s and on demand; overlapping invocations are not queued, the
// second returns immediately with Skipped set. The returned error is
// the aggregate per-task failure description, never a batch abort.
func (c *Controller) Tick(nowMs int64) (Result, error) {
	if !c.mu.TryLock() {
		return Result{Skipped: true}, nil
	}
	defer c.mu.Unlock()

	tasks, err := c.store.ListTasks()
	if err != nil {
		return Result{}, fmt.Errorf("sweep: list tasks: %w", err)
	}

	overdueOpen, prematurelyCompleted := partition(tasks, nowMs)
	if len(overdueOpen) == 0 && len(prematurelyCompleted) == 0 {
		return Result{}, nil
	}

	var res Result

	// Reopen before completing: a task can appear in both partitions
	// only through a mid-pass edit, and reopening first means the
	// completion pass sees the fresher record.
	for _, t := range prematurelyCompleted {
		updated, err := c.store.UpdateTaskStatus(t.ID, task.StatusPending)
		if err != nil {
			res.Failed++
			c.logf("sweep reopen task=%s error=%v", t.ID, err)
			continue
		}
		res.Updated = append(res.Updated, updated)
		res.Reopened++
	}

	for _, t := range overdueOpen {
		updated, err := c.store.UpdateTaskStatus(t.ID, task.StatusCompleted)
		if err != nil {
			res.Failed++
			c.logf("sweep complete task=%s error=%v", t.ID, err)
			continue
		}
		res.Updated = append(res.Updated, updated)
		res.Completed++
	}

	if res.Failed > 0 {
		return res, fmt.Errorf("sweep: %d of %d updates failed",
			res.Failed, res.Failed+len(res.Updated))
	}
	return res, nil
}

// partition splits calendar-sourced tasks by status against due time.
// Tasks without a calendar source or a parseable due instant are never
// auto-transitioned.
func partition(tasks []task.Task, nowMs int64) (overdueOpen, prematurelyCompleted []task.Task) {
	for _, t := range tasks {
		if !task.Classify(t).CalendarSourced() {
			continue
		}
		dueMs, ok := tz.ParseDueUTC(t.Due)
		if !ok {
			continue
		}
		switch {
		case t.Status.Open() && dueMs <= nowMs:
			overdueOpen = append(overdueOpen, t)
		case t.Status == task.StatusCompleted && dueMs > nowMs:
			prematurelyCompleted = append(prematurelyCompleted, t)
		}
	}
	return overdueOpen, prematurelyCompleted
}

func (c *Controller) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
