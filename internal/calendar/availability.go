package calendar

import (
	"time"

	"github.com/runoshun/planner/internal/domain"
)

// IsAvailable reports whether [start, end) overlaps none of the events.
func IsAvailable(events []domain.CalendarEvent, start, end time.Time) bool {
	return len(Conflicts(events, start, end, "")) == 0
}

// Conflicts returns the events overlapping [start, end), skipping the event
// derived from ignoreTaskID so a task never conflicts with itself.
func Conflicts(events []domain.CalendarEvent, start, end time.Time, ignoreTaskID string) []domain.CalendarEvent {
	var out []domain.CalendarEvent
	for i := range events {
		e := &events[i]
		if ignoreTaskID != "" && e.TaskID == ignoreTaskID {
			continue
		}
		if e.Overlaps(start, end) {
			out = append(out, *e)
		}
	}
	return out
}
