// Package domain contains core business entities and interfaces.
package domain

import (
	"math"
	"time"
)

// EstimateStep is the minimum granularity of a task estimate, in hours.
const EstimateStep = 0.5

// Task represents a unit of work that can be placed on the calendar.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt      time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt" yaml:"updatedAt"`
	DueDate        *time.Time `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	ScheduledStart *time.Time `json:"scheduledStart,omitempty" yaml:"scheduledStart,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduledEnd,omitempty" yaml:"scheduledEnd,omitempty"`
	ID             string     `json:"id" yaml:"id"`
	Title          string     `json:"title" yaml:"title"`
	Description    string     `json:"description,omitempty" yaml:"description,omitempty"`
	ProjectID      string     `json:"projectId" yaml:"projectId"`
	Priority       Priority   `json:"priority" yaml:"priority"`
	EstimatedHours float64    `json:"estimatedHours" yaml:"estimatedHours"`
	Completed      bool       `json:"completed" yaml:"completed"`
	AutoSchedule   bool       `json:"autoSchedule" yaml:"autoSchedule"`
	Locked         bool       `json:"locked" yaml:"locked"`
}

// IsScheduled returns true if both schedule bounds are set.
func (t Task) IsScheduled() bool {
	return t.ScheduledStart != nil && t.ScheduledEnd != nil
}

// IsEligible reports whether the engine may place this task.
func (t Task) IsEligible() bool {
	return !t.Completed && t.AutoSchedule && !t.Locked && !t.IsScheduled()
}

// Duration converts EstimatedHours to a time.Duration.
// Degenerate estimates are converted as-is (zero or negative).
func (t Task) Duration() time.Duration {
	return HoursToDuration(t.EstimatedHours)
}

// Interval returns the scheduled interval and true if the task is scheduled.
func (t Task) Interval() (Interval, bool) {
	if !t.IsScheduled() {
		return Interval{}, false
	}
	return Interval{Start: *t.ScheduledStart, End: *t.ScheduledEnd}, true
}

// SetSchedule sets both schedule bounds.
func (t *Task) SetSchedule(start, end time.Time) {
	t.ScheduledStart = &start
	t.ScheduledEnd = &end
}

// ClearSchedule removes both schedule bounds.
func (t *Task) ClearSchedule() {
	t.ScheduledStart = nil
	t.ScheduledEnd = nil
}

// HoursToDuration converts fractional hours to a time.Duration.
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

// ValidEstimate reports whether hours is positive and a multiple of EstimateStep.
func ValidEstimate(hours float64) bool {
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return false
	}
	steps := hours / EstimateStep
	return steps == math.Trunc(steps)
}

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Equal reports whether both bounds are the same instant.
func (i Interval) Equal(o Interval) bool {
	return i.Start.Equal(o.Start) && i.End.Equal(o.End)
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// SameSchedule reports whether two optional schedules are identical.
// Two unscheduled tasks compare equal.
func SameSchedule(a, b *Task) bool {
	ai, aok := a.Interval()
	bi, bok := b.Interval()
	if aok != bok {
		return false
	}
	if !aok {
		return sameTimePtr(a.ScheduledStart, b.ScheduledStart) && sameTimePtr(a.ScheduledEnd, b.ScheduledEnd)
	}
	return ai.Equal(bi)
}

func sameTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
