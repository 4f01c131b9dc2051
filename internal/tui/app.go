// Package tui provides the interactive agenda for planner.
package tui

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/planner/internal/app"
	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/usecase"
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container   *app.Container
	loc         *time.Location
	err         error
	updates     chan domain.Snapshot
	unsubscribe func()

	// State
	snap   domain.Snapshot
	tasks  []domain.Task // Table rows, in display order
	status string
	day    time.Time // Midnight of the day shown in the agenda pane

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model
	table  table.Model

	width  int
	height int
}

// New creates a Model bound to the container's store.
// Call Close when the program exits to drop the store subscription.
func New(c *app.Container) *Model {
	loc := c.Location()
	styles := DefaultStyles()

	t := table.New(
		table.WithColumns(taskColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(styles.Table),
	)

	updates := make(chan domain.Snapshot, 16)
	unsubscribe := c.Store.Subscribe(func(s domain.Snapshot) {
		select {
		case updates <- s:
		default:
			// A reload follows every action, so a dropped update is recovered.
		}
	})

	return &Model{
		container:   c,
		loc:         loc,
		updates:     updates,
		unsubscribe: unsubscribe,
		day:         dayOf(c.Clock.Now(), loc),
		keys:        DefaultKeyMap(),
		styles:      styles,
		help:        help.New(),
		table:       t,
	}
}

// Run starts the TUI and blocks until the user quits.
func Run(c *app.Container) error {
	m := New(c)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// Close removes the store subscription.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadSnapshot(),
		m.waitForChange(),
	)
}

// loadSnapshot returns a command that reads the current store state.
func (m *Model) loadSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.container.SnapshotUseCase().Execute(context.Background(), usecase.SnapshotInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgSnapshot{Snapshot: *snap}
	}
}

// waitForChange returns a command that blocks until the store commits.
func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-m.updates
		if !ok {
			return nil
		}
		return MsgStoreChanged{Snapshot: snap}
	}
}

// action runs fn as a command, reporting its status or error.
func (m *Model) action(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(context.Background())
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{Status: status}
	}
}

// SelectedTask returns the task under the cursor, or nil if none.
func (m *Model) SelectedTask() *domain.Task {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.tasks) {
		return nil
	}
	return &m.tasks[i]
}

// applySnapshot replaces the displayed state and rebuilds the table rows.
func (m *Model) applySnapshot(snap domain.Snapshot) {
	var selectedID string
	if t := m.SelectedTask(); t != nil {
		selectedID = t.ID
	}

	m.snap = snap
	m.tasks = sortTasks(snap.Tasks)

	rows := make([]table.Row, 0, len(m.tasks))
	cursor := 0
	for i, t := range m.tasks {
		rows = append(rows, m.taskRow(t))
		if t.ID == selectedID {
			cursor = i
		}
	}
	m.table.SetRows(rows)
	if len(rows) > 0 {
		m.table.SetCursor(cursor)
	}
}

// sortTasks orders tasks for display: open before completed, scheduled by
// start, then unscheduled by priority.
func sortTasks(tasks []domain.Task) []domain.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b domain.Task) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		as, bs := a.IsScheduled(), b.IsScheduled()
		switch {
		case as && bs:
			return a.ScheduledStart.Compare(*b.ScheduledStart)
		case as:
			return -1
		case bs:
			return 1
		}
		return cmp.Compare(b.Priority.Rank(), a.Priority.Rank())
	})
	return out
}

func taskColumns(width int) []table.Column {
	title := width - 8 - 6 - 18 - 8 - 10
	if title < 20 {
		title = 20
	}
	return []table.Column{
		{Title: "Title", Width: title},
		{Title: "Priority", Width: 8},
		{Title: "Est.", Width: 6},
		{Title: "Scheduled", Width: 18},
		{Title: "Flags", Width: 8},
	}
}

func (m *Model) taskRow(t domain.Task) table.Row {
	when := "-"
	if t.IsScheduled() {
		when = fmt.Sprintf("%s-%s",
			t.ScheduledStart.In(m.loc).Format("Jan 02 15:04"),
			t.ScheduledEnd.In(m.loc).Format("15:04"))
	}
	return table.Row{
		t.Title,
		t.Priority.Display(),
		fmt.Sprintf("%.1fh", t.EstimatedHours),
		when,
		taskFlags(t),
	}
}

// taskFlags renders one letter per set flag: done, locked, auto.
func taskFlags(t domain.Task) string {
	flags := []byte("---")
	if t.Completed {
		flags[0] = 'D'
	}
	if t.Locked {
		flags[1] = 'L'
	}
	if t.AutoSchedule {
		flags[2] = 'A'
	}
	return string(flags)
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	y, mo, d := t.In(loc).Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, loc)
}

// dayEvents returns the events that intersect m.day, ordered by start.
func (m *Model) dayEvents() []domain.CalendarEvent {
	start, end := m.day, m.day.AddDate(0, 0, 1)
	var out []domain.CalendarEvent
	for _, ev := range m.snap.Events {
		if ev.Overlaps(start, end) {
			out = append(out, ev)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.CalendarEvent) int {
		return a.Start.Compare(b.Start)
	})
	return out
}
