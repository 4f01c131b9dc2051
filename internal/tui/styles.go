package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/planner/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Priority colors
	Urgent lipgloss.Color
	High   lipgloss.Color
	Medium lipgloss.Color
	Low    lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	Urgent: lipgloss.Color("#D63031"),
	High:   lipgloss.Color("#E17055"),
	Medium: lipgloss.Color("#74B9FF"),
	Low:    lipgloss.Color("#636E72"),
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	Header    lipgloss.Style
	DayHeader lipgloss.Style
	Pane      lipgloss.Style
	Event     lipgloss.Style
	Muted     lipgloss.Style
	Locked    lipgloss.Style
	Done      lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Table     table.Styles
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Colors.Muted).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("#FFEAA7")).
		Background(Colors.Primary).
		Bold(false)

	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true).
			MarginBottom(1),
		DayHeader: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Bold(true),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted).
			Padding(0, 1),
		Event: lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		Locked: lipgloss.NewStyle().
			Foreground(Colors.Warning),
		Done: lipgloss.NewStyle().
			Foreground(Colors.Success),
		Status: lipgloss.NewStyle().
			Foreground(Colors.Success),
		Error: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),
		Table: ts,
	}
}

// PriorityStyle returns the style for a priority label.
func (s Styles) PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityUrgent:
		return lipgloss.NewStyle().Foreground(Colors.Urgent).Bold(true)
	case domain.PriorityHigh:
		return lipgloss.NewStyle().Foreground(Colors.High)
	case domain.PriorityMedium:
		return lipgloss.NewStyle().Foreground(Colors.Medium)
	default:
		return lipgloss.NewStyle().Foreground(Colors.Low)
	}
}

// EventSwatch renders a colored block for an event.
func EventSwatch(color string) string {
	if color == "" {
		color = domain.DefaultEventColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}
