// Package config resolves the possibly-partial configuration snapshot
// into the fully-defaulted form the calendar core consumes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cailloux/agenda/internal/task"
	"github.com/cailloux/agenda/internal/tz"
)

// Snapshot mirrors the on-disk configuration file. Zero values mean
// "not set"; Resolve fills in every default.
type Snapshot struct {
	Timezone           string          `yaml:"timezone"`
	WeekStart          string          `yaml:"week_start"`
	RedDotLimit        int             `yaml:"red_dot_limit"`
	TaskListLimit      int             `yaml:"task_list_limit"`
	TaskListWindowDays int             `yaml:"task_list_window_days"`
	Visibility         map[string]bool `yaml:"visibility"`
	DayView            DayViewConfig   `yaml:"day_view"`
	Toggles            TogglesConfig   `yaml:"toggles"`
	Notifications      NotifySnapshot  `yaml:"notifications"`

	TasksFile string `yaml:"tasks_file"`
	StateFile string `yaml:"state_file"`
}

type DayViewConfig struct {
	HourStart *int `yaml:"hour_start"`
	HourEnd   *int `yaml:"hour_end"`
}

type TogglesConfig struct {
	DeEmphasizePastPeriods *bool `yaml:"de_emphasize_past_periods"`
	FilterTasksBeforeNow   *bool `yaml:"filter_tasks_before_now"`
	HidePastMarkers        *bool `yaml:"hide_past_markers"`
}

type NotifySnapshot struct {
	Enabled          *bool `yaml:"enabled"`
	PreNotifyEnabled *bool `yaml:"pre_notify_enabled"`
	PreNotifyMinutes int   `yaml:"pre_notify_minutes"`
}

// Calendar is the effective calendar configuration: every field
// defaulted and validated. Immutable until the snapshot is re-resolved.
type Calendar struct {
	Timezone           *time.Location
	WeekStart          time.Weekday
	RedDotLimit        int
	TaskListLimit      int
	TaskListWindowDays int
	Visibility         map[task.Status]bool
	DayViewHourStart   int
	DayViewHourEnd     int

	DeEmphasizePastPeriods bool
	FilterTasksBeforeNow   bool
	HidePastMarkers        bool
}

// Visible reports whether tasks in a status appear in due-based views.
func (c Calendar) Visible(s task.Status) bool {
	visible, ok := c.Visibility[s]
	return !ok || visible
}

// Notifications is the sanitized due-notification config.
type Notifications struct {
	Enabled          bool `json:"enabled"`
	PreNotifyEnabled bool `json:"pre_notify_enabled"`
	PreNotifyMinutes int  `json:"pre_notify_minutes"`
}

const (
	MinPreNotifyMinutes     = 1
	MaxPreNotifyMinutes     = 43200 // 30 days
	DefaultPreNotifyMinutes = 15
)

// Sanitize clamps pre-notify minutes into range. Applied on every read
// and write so a hand-edited state file cannot wedge the scheduler.
func (n Notifications) Sanitize() Notifications {
	if n.PreNotifyMinutes < MinPreNotifyMinutes {
		n.PreNotifyMinutes = MinPreNotifyMinutes
	}
	if n.PreNotifyMinutes > MaxPreNotifyMinutes {
		n.PreNotifyMinutes = MaxPreNotifyMinutes
	}
	return n
}

func DefaultNotifications() Notifications {
	return Notifications{
		Enabled:          true,
		PreNotifyEnabled: true,
		PreNotifyMinutes: DefaultPreNotifyMinutes,
	}
}

// Resolve produces the effective calendar configuration from a
// snapshot. Invalid values degrade to defaults; this never fails.
func (s Snapshot) Resolve() Calendar {
	cal := Calendar{
		Timezone:           tz.ResolveTimezone(s.Timezone),
		WeekStart:          time.Monday,
		RedDotLimit:        3,
		TaskListLimit:      s.TaskListLimit,
		TaskListWindowDays: s.TaskListWindowDays,
		Visibility: map[task.Status]bool{
			task.StatusPending:   true,
			task.StatusWaiting:   true,
			task.StatusCompleted: true,
			task.StatusDeleted:   true,
		},
		DayViewHourStart:       0,
		DayViewHourEnd:         23,
		DeEmphasizePastPeriods: true,
		FilterTasksBeforeNow:   true,
		HidePastMarkers:        true,
	}

	switch s.WeekStart {
	case "sunday", "sun":
		cal.WeekStart = time.Sunday
	}
	if s.RedDotLimit > 0 {
		cal.RedDotLimit = s.RedDotLimit
	}
	for status, visible := range s.Visibility {
		cal.Visibility[task.Status(status)] = visible
	}
	if h := s.DayView.HourStart; h != nil && *h >= 0 && *h <= 23 {
		cal.DayViewHourStart = *h
	}
	if h := s.DayView.HourEnd; h != nil && *h >= 0 && *h <= 23 {
		cal.DayViewHourEnd = *h
	}
	if cal.DayViewHourEnd < cal.DayViewHourStart {
		cal.DayViewHourEnd = cal.DayViewHourStart
	}
	if t := s.Toggles.DeEmphasizePastPeriods; t != nil {
		cal.DeEmphasizePastPeriods = *t
	}
	if t := s.Toggles.FilterTasksBeforeNow; t != nil {
		cal.FilterTasksBeforeNow = *t
	}
	if t := s.Toggles.HidePastMarkers; t != nil {
		cal.HidePastMarkers = *t
	}
	return cal
}

// ResolveNotifications produces the sanitized notification config from
// the snapshot, defaulting everything left unset.
func (s Snapshot) ResolveNotifications() Notifications {
	n := DefaultNotifications()
	if s.Notifications.Enabled != nil {
		n.Enabled = *s.Notifications.Enabled
	}
	if s.Notifications.PreNotifyEnabled != nil {
		n.PreNotifyEnabled = *s.Notifications.PreNotifyEnabled
	}
	if s.Notifications.PreNotifyMinutes != 0 {
		n.PreNotifyMinutes = s.Notifications.PreNotifyMinutes
	}
	return n.Sanitize()
}

// Load reads the first config file found among the usual locations.
// A missing file is not an error; the zero snapshot resolves to
// defaults.
func Load() (Snapshot, error) {
	paths := []string{
		os.Getenv("AGENDA_CONFIG"),
		filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "agenda", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "agenda", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".agenda.yaml"),
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFile(path)
	}
	return Snapshot{}, nil
}

func LoadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return snap, nil
}

// DataDir returns where the tasks and state files live by default.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "agenda")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "agenda")
}

// TasksFilePath returns the snapshot's tasks file or the default.
func (s Snapshot) TasksFilePath() string {
	if s.TasksFile != "" {
		return s.TasksFile
	}
	return filepath.Join(DataDir(), "tasks.json")
}

// StateFilePath returns the snapshot's state file or the default.
func (s Snapshot) StateFilePath() string {
	if s.StateFile != "" {
		return s.StateFile
	}
	return filepath.Join(DataDir(), "state.json")
}
