// Package calendar computes period windows and display grids for the
// year/quarter/month/week/day views.
//
// All date arithmetic here operates on civil dates pinned to noon UTC.
// Noon keeps a full DST shift on either side from moving the value to a
// neighboring day; only due-instant conversion (package tz) touches the
// real configured timezone.
package calendar

import "time"

type View string

const (
	ViewYear    View = "year"
	ViewQuarter View = "quarter"
	ViewMonth   View = "month"
	ViewWeek    View = "week"
	ViewDay     View = "day"
)

// ParseView maps a stored view name back to a View, defaulting to month.
func ParseView(s string) View {
	switch View(s) {
	case ViewYear, ViewQuarter, ViewMonth, ViewWeek, ViewDay:
		return View(s)
	default:
		return ViewMonth
	}
}

// NewDate returns the civil date (y, m, d) at noon UTC. Out-of-range
// values normalize the way time.Date does.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// DateOf normalizes any time to its civil date at noon UTC.
func DateOf(t time.Time) time.Time {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current civil date in loc.
func Today(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	return NewDate(now.Year(), now.Month(), now.Day())
}

// daysIn returns the number of days in a month.
func daysIn(year int, month time.Month) int {
	return NewDate(year, month+1, 0).Day()
}

// clampDay keeps day within the target month instead of letting it
// normalize into the next one.
func clampDay(year int, month time.Month, day int) time.Time {
	if max := daysIn(year, month); day > max {
		day = max
	}
	return NewDate(year, month, day)
}

// WeekStartOf returns the weekStart-aligned date on or before focus.
func WeekStartOf(focus time.Time, weekStart time.Weekday) time.Time {
	focus = DateOf(focus)
	offset := (int(focus.Weekday()) - int(weekStart) + 7) % 7
	return focus.AddDate(0, 0, -offset)
}

// Window returns the inclusive first and last civil date of the period
// containing focus at the view's granularity.
func Window(view View, focus time.Time, weekStart time.Weekday) (start, end time.Time) {
	focus = DateOf(focus)
	switch view {
	case ViewYear:
		return NewDate(focus.Year(), time.January, 1), NewDate(focus.Year(), time.December, 31)
	case ViewQuarter:
		first := time.Month((int(focus.Month())-1)/3*3 + 1)
		return NewDate(focus.Year(), first, 1), NewDate(focus.Year(), first+3, 0)
	case ViewMonth:
		return NewDate(focus.Year(), focus.Month(), 1), NewDate(focus.Year(), focus.Month()+1, 0)
	case ViewWeek:
		start = WeekStartOf(focus, weekStart)
		return start, start.AddDate(0, 0, 6)
	default: // day
		return focus, focus
	}
}

// ShiftFocus moves focus by step units of the view's granularity.
// Year and month shifts clamp the day-of-month to the target month's
// length; week shifts move whole weeks from the week start.
func ShiftFocus(focus time.Time, view View, step int, weekStart time.Weekday) time.Time {
	focus = DateOf(focus)
	switch view {
	case ViewYear:
		return clampDay(focus.Year()+step, focus.Month(), focus.Day())
	case ViewQuarter:
		return shiftMonths(focus, 3*step)
	case ViewMonth:
		return shiftMonths(focus, step)
	case ViewWeek:
		return WeekStartOf(focus, weekStart).AddDate(0, 0, 7*step)
	default:
		return focus.AddDate(0, 0, step)
	}
}

func shiftMonths(focus time.Time, months int) time.Time {
	// Anchor on the 1st so AddDate cannot skip short months, then
	// restore the clamped day.
	anchor := NewDate(focus.Year(), focus.Month(), 1).AddDate(0, months, 0)
	return clampDay(anchor.Year(), anchor.Month(), focus.Day())
}

// GridCell is one cell of the 6x7 month display grid. Outside cells
// belong to a neighboring month but still receive markers.
type GridCell struct {
	Date    time.Time
	Outside bool
}

// MonthGridStart returns the first cell of the month grid: the
// weekStart-aligned date on or before the 1st of the focus month.
func MonthGridStart(year int, month time.Month, weekStart time.Weekday) time.Time {
	return WeekStartOf(NewDate(year, month, 1), weekStart)
}

// MonthGrid returns the 6x7 grid of cells for a month. The grid always
// has exactly 6 rows so views keep a stable height across months.
func MonthGrid(year int, month time.Month, weekStart time.Weekday) [][]GridCell {
	day := MonthGridStart(year, month, weekStart)
	grid := make([][]GridCell, 6)
	for row := 0; row < 6; row++ {
		cells := make([]GridCell, 7)
		for col := 0; col < 7; col++ {
			cells[col] = GridCell{
				Date:    day,
				Outside: day.Month() != month || day.Year() != year,
			}
			day = day.AddDate(0, 0, 1)
		}
		grid[row] = cells
	}
	return grid
}

// MonthWeekStarts returns the starting date of each grid row that
// intersects the focus month, for jump-to-week affordances.
func MonthWeekStarts(year int, month time.Month, weekStart time.Weekday) []time.Time {
	day := MonthGridStart(year, month, weekStart)
	var starts []time.Time
	for row := 0; row < 6; row++ {
		rowEnd := day.AddDate(0, 0, 6)
		if !(rowEnd.Before(NewDate(year, month, 1)) || day.After(NewDate(year, month+1, 0))) {
			starts = append(starts, day)
		}
		day = day.AddDate(0, 0, 7)
	}
	return starts
}
