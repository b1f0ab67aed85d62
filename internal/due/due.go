// Package due joins tasks to their due instants and classifies each
// into a calendar marker by provenance.
package due

import (
	"sort"
	"time"

	"github.com/cailloux/agenda/internal/calendar"
	"github.com/cailloux/agenda/internal/config"
	"github.com/cailloux/agenda/internal/task"
	"github.com/cailloux/agenda/internal/tz"
)

type Shape string

const (
	ShapeTriangle Shape = "triangle" // board-linked
	ShapeCircle   Shape = "circle"   // calendar-source-linked
	ShapeSquare   Shape = "square"   // unaffiliated
)

// Marker is the glyph summarizing a task's provenance on a calendar
// cell.
type Marker struct {
	Shape Shape
	Color string
}

const (
	defaultCalendarColor = "#e53935" // red
	defaultBoardColor    = "#607d8b" // blue-gray
	neutralColor         = "#9e9e9e" // gray
)

// Entry joins a task to its due instant. Recomputed on every data
// change; never persisted.
type Entry struct {
	Task     task.Task
	Class    task.Classification
	DueUTCms int64
	DueLocal tz.Parts
	Marker   Marker
}

// markerFor classifies by provenance: calendar source wins over board,
// board over nothing.
func markerFor(c task.Classification, boardColors, calendarColors map[string]string) Marker {
	if c.CalendarSourced() {
		color := calendarColors[c.CalendarID]
		if color == "" {
			color = c.CalendarColor
		}
		if color == "" {
			color = defaultCalendarColor
		}
		return Marker{Shape: ShapeCircle, Color: color}
	}
	if c.BoardID != "" {
		color := boardColors[c.BoardID]
		if color == "" {
			color = defaultBoardColor
		}
		return Marker{Shape: ShapeTriangle, Color: color}
	}
	return Marker{Shape: ShapeSquare, Color: neutralColor}
}

// Collect builds the due-entry list for a task set. Tasks whose status
// is hidden by config or whose due string is absent or unparseable are
// skipped. The result is sorted ascending by due instant.
func Collect(tasks []task.Task, cal config.Calendar, boardColors, calendarColors map[string]string) []Entry {
	var entries []Entry
	for _, t := range tasks {
		if !cal.Visible(t.Status) {
			continue
		}
		dueMs, ok := tz.ParseDueUTC(t.Due)
		if !ok {
			continue
		}
		class := task.Classify(t)
		entries = append(entries, Entry{
			Task:     t,
			Class:    class,
			DueUTCms: dueMs,
			DueLocal: tz.PartsAt(dueMs, cal.Timezone),
			Marker:   markerFor(class, boardColors, calendarColors),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DueUTCms < entries[j].DueUTCms
	})
	return entries
}

// localDate returns the entry's zoned due date as a civil comparison
// key.
func localDate(e Entry) int {
	return e.DueLocal.Year*10000 + e.DueLocal.Month*100 + e.DueLocal.Day
}

func dateKey(d time.Time) int {
	return d.Year()*10000 + int(d.Month())*100 + d.Day()
}

// ForWindow filters entries to an inclusive civil-date window using
// date-only comparison, independent of time of day.
func ForWindow(entries []Entry, start, end time.Time) []Entry {
	lo, hi := dateKey(start), dateKey(end)
	var out []Entry
	for _, e := range entries {
		if k := localDate(e); k >= lo && k <= hi {
			out = append(out, e)
		}
	}
	return out
}

// ForDate filters entries to a single civil date.
func ForDate(entries []Entry, date time.Time) []Entry {
	return ForWindow(entries, date, date)
}

// ForWindowOf filters entries to the period window of a view around a
// focus date.
func ForWindowOf(entries []Entry, view calendar.View, focus time.Time, weekStart time.Weekday) []Entry {
	start, end := calendar.Window(view, focus, weekStart)
	return ForWindow(entries, start, end)
}

// MarkersForDate returns the markers for a single cell, capped at
// limit. The cap keeps dense days from flooding a cell.
func MarkersForDate(entries []Entry, date time.Time, limit int) []Marker {
	var markers []Marker
	for _, e := range ForDate(entries, date) {
		if limit > 0 && len(markers) >= limit {
			break
		}
		markers = append(markers, e.Marker)
	}
	return markers
}

// Stats tallies entry counts per status over a filtered entry list.
func Stats(entries []Entry) map[task.Status]int {
	stats := make(map[task.Status]int)
	for _, e := range entries {
		stats[e.Task.Status]++
	}
	return stats
}

// CanManuallyComplete reports whether a user may complete a task by
// hand right now. Calendar-sourced tasks may only be completed once
// their due time has passed; everything else is always allowed.
func CanManuallyComplete(t task.Task, nowMs int64) bool {
	if !task.Classify(t).CalendarSourced() {
		return true
	}
	dueMs, ok := tz.ParseDueUTC(t.Due)
	if !ok {
		return true
	}
	return nowMs >= dueMs
}
