package domain

import "time"

// DefaultEventColor is used for events whose project is missing or has no color.
const DefaultEventColor = "#3788d8"

// Project groups tasks. Tasks reference their project by ProjectID.
// Fields are ordered to minimize memory padding.
type Project struct {
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Color       string    `json:"color,omitempty" yaml:"color,omitempty"`
}

// ProjectStats summarizes the tasks of a project.
type ProjectStats struct {
	TotalTasks      int
	CompletedTasks  int
	ScheduledTasks  int
	EstimatedHours  float64
	RemainingHours  float64
	CompletionRatio float64 // 0..1, zero when the project has no tasks
}

// ComputeProjectStats aggregates task counts and hours.
func ComputeProjectStats(tasks []Task) ProjectStats {
	var s ProjectStats
	for i := range tasks {
		t := &tasks[i]
		s.TotalTasks++
		s.EstimatedHours += t.EstimatedHours
		if t.Completed {
			s.CompletedTasks++
		} else {
			s.RemainingHours += t.EstimatedHours
		}
		if t.IsScheduled() {
			s.ScheduledTasks++
		}
	}
	if s.TotalTasks > 0 {
		s.CompletionRatio = float64(s.CompletedTasks) / float64(s.TotalTasks)
	}
	return s
}
