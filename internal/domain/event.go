package domain

import "time"

// CalendarEvent is a block of time on the calendar.
// Events derived from tasks carry TaskID and ProjectID as lookup keys;
// standalone events (e.g. meetings from a seed) leave them empty.
// Fields are ordered to minimize memory padding.
type CalendarEvent struct {
	Start     time.Time `json:"start" yaml:"start"`
	End       time.Time `json:"end" yaml:"end"`
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Color     string    `json:"color,omitempty" yaml:"color,omitempty"`
	TaskID    string    `json:"taskId,omitempty" yaml:"taskId,omitempty"`
	ProjectID string    `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	AllDay    bool      `json:"allDay,omitempty" yaml:"allDay,omitempty"`
}

// Interval returns the event's half-open time range.
func (e CalendarEvent) Interval() Interval {
	return Interval{Start: e.Start, End: e.End}
}

// Overlaps reports whether [start, end) intersects the event.
func (e CalendarEvent) Overlaps(start, end time.Time) bool {
	return e.Interval().Overlaps(Interval{Start: start, End: end})
}
