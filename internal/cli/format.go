package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/scheduler"
)

// Accepted time layouts, most specific first.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime parses s in loc using the accepted layouts.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use YYYY-MM-DD or YYYY-MM-DDTHH:MM)", s)
}

// parseInterval parses a start/end flag pair.
func parseInterval(start, end string, loc *time.Location) (domain.Interval, error) {
	s, err := parseTime(start, loc)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("--start: %w", err)
	}
	e, err := parseTime(end, loc)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("--end: %w", err)
	}
	return domain.Interval{Start: s, End: e}, nil
}

var (
	dayHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#636E72"))
	lockedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDCB6E"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00B894"))
)

// swatch renders a colored block for an event color.
func swatch(color string) string {
	if color == "" {
		color = domain.DefaultEventColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

// printAgenda writes events in [from, to) grouped by day.
func printAgenda(w io.Writer, snap domain.Snapshot, from, to time.Time, loc *time.Location) {
	tasks := make(map[string]domain.Task, len(snap.Tasks))
	for _, t := range snap.Tasks {
		tasks[t.ID] = t
	}

	events := make([]domain.CalendarEvent, 0, len(snap.Events))
	for _, e := range snap.Events {
		if e.End.After(from) && e.Start.Before(to) {
			events = append(events, e)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})

	if len(events) == 0 {
		_, _ = fmt.Fprintln(w, "No events.")
		return
	}

	var day string
	for _, e := range events {
		start := e.Start.In(loc)
		if d := start.Format("Mon 2006-01-02"); d != day {
			if day != "" {
				_, _ = fmt.Fprintln(w)
			}
			day = d
			_, _ = fmt.Fprintln(w, dayHeaderStyle.Render(d))
		}

		var marks []string
		if t, ok := tasks[e.TaskID]; ok {
			if t.Locked {
				marks = append(marks, lockedStyle.Render("locked"))
			}
			if t.Completed {
				marks = append(marks, doneStyle.Render("done"))
			}
		}
		suffix := ""
		if len(marks) > 0 {
			suffix = " [" + strings.Join(marks, ", ") + "]"
		}
		_, _ = fmt.Fprintf(w, "  %s %s-%s  %s%s\n",
			swatch(e.Color), start.Format("15:04"), e.End.In(loc).Format("15:04"), e.Title, suffix)
	}
}

// printTasks writes one line per task.
func printTasks(w io.Writer, tasks []domain.Task, loc *time.Location) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, "No tasks.")
		return
	}
	for _, t := range tasks {
		when := mutedStyle.Render("unscheduled")
		if iv, ok := t.Interval(); ok {
			when = iv.Start.In(loc).Format("2006-01-02 15:04") + "-" + iv.End.In(loc).Format("15:04")
		}
		var flags []string
		if t.Completed {
			flags = append(flags, "done")
		}
		if t.Locked {
			flags = append(flags, "locked")
		}
		if !t.AutoSchedule {
			flags = append(flags, "manual")
		}
		flagText := ""
		if len(flags) > 0 {
			flagText = " (" + strings.Join(flags, ", ") + ")"
		}
		_, _ = fmt.Fprintf(w, "%s  %-6s %4.1fh  %s  %s%s\n",
			t.ID, t.Priority.Display(), t.EstimatedHours, when, t.Title, flagText)
	}
}

// printPlacements writes the result of an auto-schedule pass.
func printPlacements(w io.Writer, placements []scheduler.Placement, loc *time.Location) {
	if len(placements) == 0 {
		_, _ = fmt.Fprintln(w, "Nothing to schedule.")
		return
	}
	_, _ = fmt.Fprintf(w, "Scheduled %d task(s):\n", len(placements))
	for _, p := range placements {
		_, _ = fmt.Fprintf(w, "  %s  %s-%s\n", p.TaskID,
			p.Start.In(loc).Format("2006-01-02 15:04"), p.End.In(loc).Format("15:04"))
	}
}

// printStats writes a project summary.
func printStats(w io.Writer, p domain.Project, s domain.ProjectStats) {
	_, _ = fmt.Fprintf(w, "%s %s (%s)  %s\n", swatch(p.Color), p.Title, p.ID, p.Priority.Display())
	_, _ = fmt.Fprintf(w, "  tasks: %d total, %d completed, %d scheduled\n", s.TotalTasks, s.CompletedTasks, s.ScheduledTasks)
	_, _ = fmt.Fprintf(w, "  hours: %.1f estimated, %.1f remaining\n", s.EstimatedHours, s.RemainingHours)
	_, _ = fmt.Fprintf(w, "  progress: %.0f%%\n", s.CompletionRatio*100)
}
