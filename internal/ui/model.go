// Package ui is the thin terminal shell over the calendar core: it
// renders period windows, grids, and markers, and drives the periodic
// sweep and notification scans. No calendar logic lives here.
package ui

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/cailloux/agenda/internal/calendar"
	"github.com/cailloux/agenda/internal/config"
	"github.com/cailloux/agenda/internal/due"
	"github.com/cailloux/agenda/internal/notify"
	"github.com/cailloux/agenda/internal/store"
	"github.com/cailloux/agenda/internal/sweep"
	"github.com/cailloux/agenda/internal/task"
)

// tickInterval drives the sweep controller and notification scan.
const tickInterval = 30 * time.Second

type tickMsg time.Time

type Model struct {
	cal       config.Calendar
	notifyCfg config.Notifications

	taskStore  store.TaskStore
	stateStore *store.StateStore
	controller *sweep.Controller
	notifier   notify.Notifier
	watcher    *store.Watcher

	view    calendar.View
	focus   time.Time
	tasks   []task.Task
	entries []due.Entry

	width   int
	height  int
	message string

	styles Styles
}

type Styles struct {
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Today    lipgloss.Style
	Outside  lipgloss.Style
	Header   lipgloss.Style
	Help     lipgloss.Style
	Message  lipgloss.Style
	Border   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("220")).
			Bold(true),
		Today: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Outside: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")),
	}
}

func NewModel(snap config.Snapshot, taskStore store.TaskStore, stateStore *store.StateStore, logger *log.Logger) *Model {
	cal := snap.Resolve()

	m := &Model{
		cal:        cal,
		notifyCfg:  snap.ResolveNotifications(),
		taskStore:  taskStore,
		stateStore: stateStore,
		controller: sweep.NewController(taskStore, logger),
		notifier:   notify.Desktop{},
		view:       calendar.ViewMonth,
		focus:      calendar.Today(cal.Timezone),
		styles:     DefaultStyles(),
	}

	// Persisted notification config wins over the snapshot's.
	if n, err := stateStore.Notifications(); err == nil {
		m.notifyCfg = n
	}

	// Restore last view/focus for continuity across sessions.
	if view, focus, err := stateStore.LastView(); err == nil {
		if view != "" {
			m.view = calendar.ParseView(view)
		}
		if t, perr := time.Parse("2006-01-02", focus); perr == nil {
			m.focus = calendar.DateOf(t)
		}
	}

	m.reloadTasks()

	if fs, ok := taskStore.(*store.FileStore); ok {
		watcher, err := store.NewWatcher(func(string) {
			// Recompute on the next tea cycle; bubbletea owns the
			// model, so just reload synchronously here.
			m.reloadTasks()
		})
		if err == nil {
			m.watcher = watcher
			watcher.AddFile(fs.Path())
		}
	}

	return m
}

func (m *Model) reloadTasks() {
	tasks, err := m.taskStore.ListTasks()
	if err != nil {
		m.message = err.Error()
		return
	}
	m.tasks = tasks
	m.entries = due.Collect(tasks, m.cal, nil, nil)
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.tickCmd(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		m.runScans()
		return m, m.tickCmd()
	}

	return m, nil
}

// runScans runs one sweep tick and one notification scan. Overlapping
// ticks are handled inside the controller; a skipped tick is silent.
func (m *Model) runScans() {
	nowMs := time.Now().UnixMilli()

	res, err := m.controller.Tick(nowMs)
	if err != nil {
		m.message = err.Error()
	}
	if len(res.Updated) > 0 {
		m.reloadTasks()
	}

	if _, err := notify.Scan(m.tasks, m.cal.Timezone, m.notifyCfg, m.stateStore, m.notifier, nowMs); err != nil {
		m.message = err.Error()
	}
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.watcher != nil {
			m.watcher.Close()
		}
		return m, tea.Quit

	case "r":
		m.reloadTasks()
		m.message = "Refreshed"

	case "t":
		m.focus = calendar.Today(m.cal.Timezone)

	case "h", "left":
		m.setFocus(calendar.ShiftFocus(m.focus, m.view, -1, m.cal.WeekStart))

	case "l", "right":
		m.setFocus(calendar.ShiftFocus(m.focus, m.view, 1, m.cal.WeekStart))

	case "y":
		m.setView(calendar.ViewYear)
	case "u":
		m.setView(calendar.ViewQuarter)
	case "m":
		m.setView(calendar.ViewMonth)
	case "w":
		m.setView(calendar.ViewWeek)
	case "d":
		m.setView(calendar.ViewDay)

	case "s":
		m.runScans()
		m.message = "Sweep requested"
	}

	return m, nil
}

func (m *Model) setView(v calendar.View) {
	m.view = v
	m.persistView()
}

func (m *Model) setFocus(focus time.Time) {
	m.focus = focus
	m.persistView()
}

func (m *Model) persistView() {
	// Best effort; losing view continuity is not worth surfacing.
	_ = m.stateStore.SaveLastView(string(m.view), m.focus.Format("2006-01-02"))
}
