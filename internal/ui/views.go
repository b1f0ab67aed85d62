package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/cailloux/agenda/internal/calendar"
	"github.com/cailloux/agenda/internal/due"
	"github.com/cailloux/agenda/internal/task"
)

func markerGlyph(m due.Marker) string {
	glyph := "■"
	switch m.Shape {
	case due.ShapeTriangle:
		glyph = "▲"
	case due.ShapeCircle:
		glyph = "●"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.Color)).Render(glyph)
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderHeader(),
		m.renderMonthGrid(),
		m.renderFocusEntries(),
		m.renderStatusBar(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	start, end := calendar.Window(m.view, m.focus, m.cal.WeekStart)
	title := fmt.Sprintf("%s  %s – %s",
		m.focus.Format("January 2006"),
		start.Format("Jan 2"),
		end.Format("Jan 2, 2006"))
	return m.styles.Header.Render(title)
}

// renderMonthGrid draws the 6x7 grid with per-cell markers. Cells
// outside the focus month are dimmed but still carry markers.
func (m *Model) renderMonthGrid() string {
	var lines []string

	dayNames := []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
	if m.cal.WeekStart == time.Sunday {
		dayNames = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	}
	lines = append(lines, m.styles.Help.Render(strings.Join(dayNames, "     ")))

	today := calendar.Today(m.cal.Timezone)
	grid := calendar.MonthGrid(m.focus.Year(), m.focus.Month(), m.cal.WeekStart)

	for _, row := range grid {
		var cells []string
		for _, cell := range row {
			dayStr := fmt.Sprintf("%2d", cell.Date.Day())
			switch {
			case cell.Outside:
				dayStr = m.styles.Outside.Render(dayStr)
			case cell.Date.Equal(today):
				dayStr = m.styles.Today.Render(dayStr)
			case cell.Date.Equal(m.focus):
				dayStr = m.styles.Selected.Render(dayStr)
			default:
				dayStr = m.styles.Normal.Render(dayStr)
			}

			markers := due.MarkersForDate(m.entries, cell.Date, m.cal.RedDotLimit)
			var glyphs strings.Builder
			for _, mk := range markers {
				glyphs.WriteString(markerGlyph(mk))
			}
			pad := strings.Repeat(" ", m.cal.RedDotLimit-len(markers))

			cells = append(cells, dayStr+" "+glyphs.String()+pad)
		}
		lines = append(lines, strings.Join(cells, "  "))
	}

	return m.styles.Border.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderFocusEntries lists the due entries for the focused date.
func (m *Model) renderFocusEntries() string {
	entries := due.ForDate(m.entries, m.focus)

	var lines []string
	lines = append(lines, m.styles.Header.Render(m.focus.Format("Mon Jan 2, 2006")))

	if len(entries) == 0 {
		lines = append(lines, m.styles.Help.Render("(nothing due)"))
		return strings.Join(lines, "\n")
	}

	maxWidth := m.width - 12
	if maxWidth < 20 {
		maxWidth = 20
	}
	for _, e := range entries {
		timeStr := fmt.Sprintf("%02d:%02d", e.DueLocal.Hour, e.DueLocal.Minute)
		title := wordwrap.String(e.Task.DisplayTitle(), maxWidth)
		title = strings.ReplaceAll(title, "\n", "\n         ")
		lines = append(lines, fmt.Sprintf("  %s %s  %s [%s]",
			markerGlyph(e.Marker), timeStr, title, e.Task.Status))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderStatusBar() string {
	stats := due.Stats(due.ForWindowOf(m.entries, m.view, m.focus, m.cal.WeekStart))
	open := stats[task.StatusPending] + stats[task.StatusWaiting]
	left := fmt.Sprintf(" %s | due: %d open, %d done",
		m.view, open, stats[task.StatusCompleted])

	right := "y/u/m/w/d views | h/l move | t today | q quit"
	if m.message != "" {
		right = m.styles.Message.Render(m.message)
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 0 {
		width = 0
	}

	return m.styles.Help.Render(left + strings.Repeat(" ", width) + right)
}
