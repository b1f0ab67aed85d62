package calendar

import (
	"testing"
	"time"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		view      View
		focus     time.Time
		weekStart time.Weekday
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "year",
			view:      ViewYear,
			focus:     NewDate(2026, time.May, 15),
			weekStart: time.Monday,
			wantStart: NewDate(2026, time.January, 1),
			wantEnd:   NewDate(2026, time.December, 31),
		},
		{
			name:      "quarter mid",
			view:      ViewQuarter,
			focus:     NewDate(2026, time.May, 15),
			weekStart: time.Monday,
			wantStart: NewDate(2026, time.April, 1),
			wantEnd:   NewDate(2026, time.June, 30),
		},
		{
			name:      "quarter boundary month",
			view:      ViewQuarter,
			focus:     NewDate(2026, time.December, 31),
			weekStart: time.Monday,
			wantStart: NewDate(2026, time.October, 1),
			wantEnd:   NewDate(2026, time.December, 31),
		},
		{
			name:      "month",
			view:      ViewMonth,
			focus:     NewDate(2026, time.February, 10),
			weekStart: time.Monday,
			wantStart: NewDate(2026, time.February, 1),
			wantEnd:   NewDate(2026, time.February, 28),
		},
		{
			name:      "leap month",
			view:      ViewMonth,
			focus:     NewDate(2028, time.February, 10),
			weekStart: time.Monday,
			wantStart: NewDate(2028, time.February, 1),
			wantEnd:   NewDate(2028, time.February, 29),
		},
		{
			// 2026-05-15 is a Friday.
			name:      "week monday start",
			view:      ViewWeek,
			focus:     NewDate(2026, time.May, 15),
			weekStart: time.Monday,
			wantStart: NewDate(2026, time.May, 11),
			wantEnd:   NewDate(2026, time.May, 17),
		},
		{
			name:      "week sunday start",
			view:      ViewWeek,
			focus:     NewDate(2026, time.May, 15),
			weekStart: time.Sunday,
			wantStart: NewDate(2026, time.May, 10),
			wantEnd:   NewDate(2026, time.May, 16),
		},
		{
			name:      "week focus on week start",
			view:      ViewWeek,
			focus:     NewDate(2026, time.May, 11),
			weekStart: time.Monday,
			wantStart: NewDate(2026, time.May, 11),
			wantEnd:   NewDate(2026, time.May, 17),
		},
		{
			name:      "day",
			view:      ViewDay,
			focus:     NewDate(2026, time.May, 15),
			weekStart: time.Monday,
			wantStart: NewDate(2026, time.May, 15),
			wantEnd:   NewDate(2026, time.May, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.view, tt.focus, tt.weekStart)
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Errorf("Window(%s, %v) = [%v, %v], want [%v, %v]",
					tt.view, tt.focus.Format("2006-01-02"),
					start.Format("2006-01-02"), end.Format("2006-01-02"),
					tt.wantStart.Format("2006-01-02"), tt.wantEnd.Format("2006-01-02"))
			}
		})
	}
}

func TestShiftFocus(t *testing.T) {
	tests := []struct {
		name      string
		focus     time.Time
		view      View
		step      int
		weekStart time.Weekday
		want      time.Time
	}{
		{
			name:  "month clamp non-leap",
			focus: NewDate(2026, time.January, 31),
			view:  ViewMonth, step: 1, weekStart: time.Monday,
			want: NewDate(2026, time.February, 28),
		},
		{
			name:  "month clamp leap",
			focus: NewDate(2028, time.January, 31),
			view:  ViewMonth, step: 1, weekStart: time.Monday,
			want: NewDate(2028, time.February, 29),
		},
		{
			name:  "month back across year",
			focus: NewDate(2026, time.January, 15),
			view:  ViewMonth, step: -1, weekStart: time.Monday,
			want: NewDate(2025, time.December, 15),
		},
		{
			name:  "quarter is three months",
			focus: NewDate(2026, time.January, 31),
			view:  ViewQuarter, step: 1, weekStart: time.Monday,
			want: NewDate(2026, time.April, 30),
		},
		{
			name:  "year preserves day",
			focus: NewDate(2026, time.May, 15),
			view:  ViewYear, step: 2, weekStart: time.Monday,
			want: NewDate(2028, time.May, 15),
		},
		{
			name:  "year clamps leap day",
			focus: NewDate(2028, time.February, 29),
			view:  ViewYear, step: 1, weekStart: time.Monday,
			want: NewDate(2029, time.February, 28),
		},
		{
			// 2026-05-15 is a Friday; shifting a week lands on the
			// next week's start.
			name:  "week aligns to week start",
			focus: NewDate(2026, time.May, 15),
			view:  ViewWeek, step: 1, weekStart: time.Monday,
			want: NewDate(2026, time.May, 18),
		},
		{
			name:  "week back",
			focus: NewDate(2026, time.May, 15),
			view:  ViewWeek, step: -1, weekStart: time.Monday,
			want: NewDate(2026, time.May, 4),
		},
		{
			name:  "day",
			focus: NewDate(2026, time.May, 15),
			view:  ViewDay, step: -15, weekStart: time.Monday,
			want: NewDate(2026, time.April, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShiftFocus(tt.focus, tt.view, tt.step, tt.weekStart)
			if !got.Equal(tt.want) {
				t.Errorf("ShiftFocus(%v, %s, %d) = %v, want %v",
					tt.focus.Format("2006-01-02"), tt.view, tt.step,
					got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestMonthGridStart(t *testing.T) {
	// March 2026 starts on a Sunday.
	got := MonthGridStart(2026, time.March, time.Monday)
	want := NewDate(2026, time.February, 23)
	if !got.Equal(want) {
		t.Errorf("MonthGridStart monday = %v, want %v", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}

	got = MonthGridStart(2026, time.March, time.Sunday)
	want = NewDate(2026, time.March, 1)
	if !got.Equal(want) {
		t.Errorf("MonthGridStart sunday = %v, want %v", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestMonthGrid(t *testing.T) {
	grid := MonthGrid(2026, time.March, time.Monday)

	if len(grid) != 6 {
		t.Fatalf("grid rows = %d, want 6", len(grid))
	}
	for i, row := range grid {
		if len(row) != 7 {
			t.Fatalf("row %d has %d cells, want 7", i, len(row))
		}
	}

	first := grid[0][0]
	if !first.Date.Equal(NewDate(2026, time.February, 23)) || !first.Outside {
		t.Errorf("first cell = %v outside=%v", first.Date.Format("2006-01-02"), first.Outside)
	}

	// March 1 lands on the first row's Sunday column.
	cell := grid[0][6]
	if !cell.Date.Equal(NewDate(2026, time.March, 1)) || cell.Outside {
		t.Errorf("march 1 cell = %v outside=%v", cell.Date.Format("2006-01-02"), cell.Outside)
	}

	// Cells continue sequentially through the whole grid.
	last := grid[5][6]
	if !last.Date.Equal(NewDate(2026, time.April, 5)) || !last.Outside {
		t.Errorf("last cell = %v outside=%v", last.Date.Format("2006-01-02"), last.Outside)
	}
}

func TestMonthWeekStarts(t *testing.T) {
	// March 2026 under monday start: grid begins Feb 23 and March ends
	// Tuesday March 31, so rows 1-6 all intersect March.
	starts := MonthWeekStarts(2026, time.March, time.Monday)
	if len(starts) != 6 {
		t.Fatalf("week starts = %d, want 6", len(starts))
	}
	if !starts[0].Equal(NewDate(2026, time.February, 23)) {
		t.Errorf("first week start = %v", starts[0].Format("2006-01-02"))
	}
	if !starts[5].Equal(NewDate(2026, time.March, 30)) {
		t.Errorf("last week start = %v", starts[5].Format("2006-01-02"))
	}

	// February 2027 starts on a Monday and has exactly 4 weeks; the
	// trailing grid rows sit wholly in March.
	starts = MonthWeekStarts(2027, time.February, time.Monday)
	if len(starts) != 4 {
		t.Fatalf("feb 2027 week starts = %d, want 4", len(starts))
	}
}

func TestDateOfNormalizes(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")
	d := DateOf(time.Date(2026, time.March, 8, 23, 45, 0, 0, loc))
	if !d.Equal(NewDate(2026, time.March, 8)) {
		t.Errorf("DateOf = %v", d)
	}
	if d.Hour() != 12 || d.Location() != time.UTC {
		t.Errorf("civil dates must sit at noon UTC, got %v", d)
	}
}
