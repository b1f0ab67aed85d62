// Package task defines the task model shared by the calendar engine,
// the notification scheduler, and the sweep controller.
package task

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusWaiting   Status = "waiting"
	StatusCompleted Status = "completed"
	StatusDeleted   Status = "deleted"
)

// Open reports whether a task in this status still counts as actionable.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusWaiting
}

var validTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusWaiting:   true,
		StatusCompleted: true,
		StatusDeleted:   true,
	},
	StatusWaiting: {
		StatusPending:   true,
		StatusCompleted: true,
		StatusDeleted:   true,
	},
	StatusCompleted: {
		// Reopening always targets pending; the prior open status is
		// not tracked anywhere.
		StatusPending: true,
		StatusDeleted: true,
	},
}

func ValidateTransition(from, to Status) error {
	if from == StatusDeleted {
		return fmt.Errorf("cannot transition from terminal status %q", from)
	}
	allowed, ok := validTransitions[from]
	if !ok {
		return fmt.Errorf("unknown status %q", from)
	}
	if !allowed[to] {
		return fmt.Errorf("invalid task transition: %q -> %q", from, to)
	}
	return nil
}

// Task is the store's record as this core sees it. The store owns the
// lifecycle; this core only reads tasks and requests patches.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Due         string   `json:"due,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// DisplayTitle returns the best human-readable name for a task:
// title, then description, then the bare identifier.
func (t Task) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	if t.Description != "" {
		return t.Description
	}
	return t.ID
}
