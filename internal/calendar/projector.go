// Package calendar keeps calendar events in sync with task schedules and
// answers availability queries over them.
package calendar

import (
	"github.com/runoshun/planner/internal/domain"
)

// Projector derives one CalendarEvent per scheduled task, keyed by task ID.
type Projector struct {
	ids          domain.IDGenerator
	defaultColor string
}

// NewProjector creates a Projector. An empty defaultColor falls back to
// domain.DefaultEventColor.
func NewProjector(ids domain.IDGenerator, defaultColor string) *Projector {
	if defaultColor == "" {
		defaultColor = domain.DefaultEventColor
	}
	return &Projector{ids: ids, defaultColor: defaultColor}
}

// ColorFor returns the color of the project, or the default color.
func (p *Projector) ColorFor(tx domain.Tx, projectID string) string {
	if proj, ok := tx.Project(projectID); ok && proj.Color != "" {
		return proj.Color
	}
	return p.defaultColor
}

// Sync makes the task's event match its schedule: upserted when the task is
// scheduled, removed when it is not. The event ID is stable across updates.
// It returns the event and true when one exists after the call.
func (p *Projector) Sync(tx domain.Tx, task domain.Task) (domain.CalendarEvent, bool) {
	iv, ok := task.Interval()
	if !ok {
		p.Remove(tx, task.ID)
		return domain.CalendarEvent{}, false
	}

	ev, exists := tx.EventForTask(task.ID)
	if !exists {
		ev = domain.CalendarEvent{ID: p.ids.NewID(), TaskID: task.ID}
	}
	ev.Title = task.Title
	ev.Start = iv.Start
	ev.End = iv.End
	ev.ProjectID = task.ProjectID
	ev.Color = p.ColorFor(tx, task.ProjectID)
	tx.PutEvent(ev)
	return ev, true
}

// Remove deletes the event derived from the task, if any.
func (p *Projector) Remove(tx domain.Tx, taskID string) {
	if ev, ok := tx.EventForTask(taskID); ok {
		tx.DeleteEvent(ev.ID)
	}
}

// RefreshProject re-derives every event of the project's scheduled tasks,
// picking up title and color changes.
func (p *Projector) RefreshProject(tx domain.Tx, projectID string) int {
	n := 0
	for _, t := range tx.Tasks() {
		if t.ProjectID != projectID || !t.IsScheduled() {
			continue
		}
		p.Sync(tx, t)
		n++
	}
	return n
}

// RemoveProject deletes every event that belongs to the project, either by
// back-reference or through one of the given task IDs.
func (p *Projector) RemoveProject(tx domain.Tx, projectID string, taskIDs map[string]bool) int {
	n := 0
	for _, e := range tx.Events() {
		if e.ProjectID == projectID || (e.TaskID != "" && taskIDs[e.TaskID]) {
			tx.DeleteEvent(e.ID)
			n++
		}
	}
	return n
}
