package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cailloux/agenda/internal/task"
	"github.com/cailloux/agenda/internal/tz"
)

func TestResolveDefaults(t *testing.T) {
	cal := Snapshot{}.Resolve()

	if cal.Timezone.String() != tz.DefaultTimezone {
		t.Errorf("timezone = %s", cal.Timezone)
	}
	if cal.WeekStart != time.Monday {
		t.Errorf("week start = %v", cal.WeekStart)
	}
	if cal.RedDotLimit != 3 {
		t.Errorf("red dot limit = %d", cal.RedDotLimit)
	}
	if cal.DayViewHourStart != 0 || cal.DayViewHourEnd != 23 {
		t.Errorf("day view = %d-%d", cal.DayViewHourStart, cal.DayViewHourEnd)
	}
	for _, s := range []task.Status{task.StatusPending, task.StatusWaiting, task.StatusCompleted, task.StatusDeleted} {
		if !cal.Visible(s) {
			t.Errorf("status %s hidden by default", s)
		}
	}
	if !cal.DeEmphasizePastPeriods || !cal.FilterTasksBeforeNow || !cal.HidePastMarkers {
		t.Error("toggles default to true")
	}
}

func TestResolveOverrides(t *testing.T) {
	no := false
	start, end := 8, 18
	snap := Snapshot{
		Timezone:    "Europe/Berlin",
		WeekStart:   "sunday",
		RedDotLimit: 5,
		Visibility:  map[string]bool{"completed": false},
		DayView:     DayViewConfig{HourStart: &start, HourEnd: &end},
		Toggles:     TogglesConfig{HidePastMarkers: &no},
	}
	cal := snap.Resolve()

	if cal.Timezone.String() != "Europe/Berlin" {
		t.Errorf("timezone = %s", cal.Timezone)
	}
	if cal.WeekStart != time.Sunday {
		t.Errorf("week start = %v", cal.WeekStart)
	}
	if cal.RedDotLimit != 5 {
		t.Errorf("red dot limit = %d", cal.RedDotLimit)
	}
	if cal.Visible(task.StatusCompleted) {
		t.Error("completed should be hidden")
	}
	if !cal.Visible(task.StatusPending) {
		t.Error("pending stays visible")
	}
	if cal.DayViewHourStart != 8 || cal.DayViewHourEnd != 18 {
		t.Errorf("day view = %d-%d", cal.DayViewHourStart, cal.DayViewHourEnd)
	}
	if cal.HidePastMarkers {
		t.Error("toggle override lost")
	}
}

func TestResolveInvalidValues(t *testing.T) {
	start, end := 20, 5 // end < start
	snap := Snapshot{
		Timezone:    "Mars/Olympus_Mons",
		WeekStart:   "thursday",
		RedDotLimit: -1,
		DayView:     DayViewConfig{HourStart: &start, HourEnd: &end},
	}
	cal := snap.Resolve()

	if cal.Timezone.String() != tz.DefaultTimezone {
		t.Errorf("invalid timezone should fall back, got %s", cal.Timezone)
	}
	if cal.WeekStart != time.Monday {
		t.Errorf("invalid week start should fall back, got %v", cal.WeekStart)
	}
	if cal.RedDotLimit != 3 {
		t.Errorf("invalid red dot limit should fall back, got %d", cal.RedDotLimit)
	}
	if cal.DayViewHourEnd != cal.DayViewHourStart {
		t.Errorf("end < start should clamp, got %d-%d", cal.DayViewHourStart, cal.DayViewHourEnd)
	}
}

func TestNotificationsSanitize(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    int
	}{
		{"below min", 0, MinPreNotifyMinutes},
		{"negative", -5, MinPreNotifyMinutes},
		{"in range", 90, 90},
		{"above max", 50000, MaxPreNotifyMinutes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Notifications{PreNotifyMinutes: tt.minutes}.Sanitize()
			if n.PreNotifyMinutes != tt.want {
				t.Errorf("Sanitize(%d) = %d, want %d", tt.minutes, n.PreNotifyMinutes, tt.want)
			}
		})
	}
}

func TestResolveNotifications(t *testing.T) {
	n := Snapshot{}.ResolveNotifications()
	if n != DefaultNotifications() {
		t.Errorf("defaults = %+v", n)
	}

	no := false
	snap := Snapshot{Notifications: NotifySnapshot{
		Enabled:          &no,
		PreNotifyMinutes: 99999,
	}}
	n = snap.ResolveNotifications()
	if n.Enabled {
		t.Error("enabled override lost")
	}
	if !n.PreNotifyEnabled {
		t.Error("unset pre-notify should default on")
	}
	if n.PreNotifyMinutes != MaxPreNotifyMinutes {
		t.Errorf("minutes = %d, want clamped", n.PreNotifyMinutes)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
timezone: Europe/Berlin
week_start: sunday
red_dot_limit: 4
visibility:
  deleted: false
notifications:
  pre_notify_minutes: 30
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	cal := snap.Resolve()
	if cal.Timezone.String() != "Europe/Berlin" || cal.WeekStart != time.Sunday || cal.RedDotLimit != 4 {
		t.Errorf("resolved = %+v", cal)
	}
	if cal.Visible(task.StatusDeleted) {
		t.Error("deleted should be hidden")
	}
	if n := snap.ResolveNotifications(); n.PreNotifyMinutes != 30 {
		t.Errorf("pre notify minutes = %d", n.PreNotifyMinutes)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should error")
	}
}
