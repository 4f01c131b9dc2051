package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the model.
func (m *Model) View() string {
	header := m.styles.Header.Render("planner")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.table.View(),
		"  ",
		m.styles.Pane.Render(m.agendaView()),
	)

	var footer string
	switch {
	case m.err != nil:
		footer = m.styles.Error.Render("Error: " + m.err.Error())
	case m.status != "":
		footer = m.styles.Status.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		footer,
		m.help.View(m.keys),
	)
}

// agendaView renders the events of the selected day.
func (m *Model) agendaView() string {
	var b strings.Builder
	b.WriteString(m.styles.DayHeader.Render(m.day.Format("Mon 2006-01-02")))
	b.WriteString("\n")

	events := m.dayEvents()
	if len(events) == 0 {
		b.WriteString(m.styles.Muted.Render("No events."))
		return b.String()
	}

	completed := make(map[string]bool, len(m.snap.Tasks))
	locked := make(map[string]bool, len(m.snap.Tasks))
	for _, t := range m.snap.Tasks {
		completed[t.ID] = t.Completed
		locked[t.ID] = t.Locked
	}

	for i, ev := range events {
		if i > 0 {
			b.WriteString("\n")
		}
		when := "all day    "
		if !ev.AllDay {
			when = fmt.Sprintf("%s-%s", ev.Start.In(m.loc).Format("15:04"), ev.End.In(m.loc).Format("15:04"))
		}
		line := fmt.Sprintf("%s %s  %s", EventSwatch(ev.Color), when, ev.Title)
		switch {
		case ev.TaskID != "" && completed[ev.TaskID]:
			line += " " + m.styles.Done.Render("✓")
		case ev.TaskID != "" && locked[ev.TaskID]:
			line += " " + m.styles.Locked.Render("🔒")
		}
		b.WriteString(line)
	}
	return b.String()
}
