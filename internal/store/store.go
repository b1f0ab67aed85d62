// Package store is the boundary to the external task store and the
// key-value state the core persists between sessions.
package store

import (
	"github.com/cailloux/agenda/internal/task"
)

// TaskStore is the external store the core reads tasks from and
// requests patches against. Each update returns the authoritative
// updated record.
type TaskStore interface {
	ListTasks() ([]task.Task, error)
	// UpdateTaskStatus transitions a task and returns the updated
	// record. Invalid transitions are rejected.
	UpdateTaskStatus(id string, status task.Status) (task.Task, error)
	// UpdateTaskTags replaces a task's tags and returns the updated
	// record.
	UpdateTaskTags(id string, tags []string) (task.Task, error)
}
