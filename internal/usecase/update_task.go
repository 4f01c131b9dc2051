package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/scheduler"
)

// UpdateTaskInput is a patch. Nil fields are kept.
// Fields are ordered to minimize memory padding.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	ProjectID      *string
	Priority       *domain.Priority
	EstimatedHours *float64
	DueDate        *time.Time
	Schedule       *domain.Interval // New schedule; locks the task when it differs
	AutoSchedule   *bool
	Locked         *bool
	Completed      *bool
	TaskID         string
	ClearDueDate   bool
	ClearSchedule  bool // Unschedule the task and remove its event
}

func (in *UpdateTaskInput) empty() bool {
	return in.Title == nil && in.Description == nil && in.ProjectID == nil &&
		in.Priority == nil && in.EstimatedHours == nil && in.DueDate == nil &&
		in.Schedule == nil && in.AutoSchedule == nil && in.Locked == nil &&
		in.Completed == nil && !in.ClearDueDate && !in.ClearSchedule
}

// UpdateTaskOutput contains the result of updating a task.
type UpdateTaskOutput struct {
	Placements      []scheduler.Placement // Other tasks placed by the follow-up pass
	Task            domain.Task
	ScheduleChanged bool
}

// UpdateTask is the use case for editing a task.
type UpdateTask struct {
	store  domain.Store
	placer *Placer
	clock  domain.Clock
	logger domain.Logger
}

// NewUpdateTask creates a new UpdateTask use case.
func NewUpdateTask(store domain.Store, placer *Placer, clock domain.Clock, logger domain.Logger) *UpdateTask {
	return &UpdateTask{store: store, placer: placer, clock: clock, logger: logger}
}

// Execute merges the patch into the task. A new schedule that differs from the
// stored one locks the task. The event follows the resulting schedule. When
// the schedule changed and the task ends up unlocked, one pass places the
// other eligible tasks.
func (uc *UpdateTask) Execute(_ context.Context, in UpdateTaskInput) (*UpdateTaskOutput, error) {
	if in.empty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if in.Schedule != nil && in.ClearSchedule {
		return nil, fmt.Errorf("%w: schedule and clear-schedule are exclusive", domain.ErrInvalidInterval)
	}
	if in.Schedule != nil && in.Schedule.End.Before(in.Schedule.Start) {
		return nil, domain.ErrInvalidInterval
	}

	now := uc.clock.Now()
	var out UpdateTaskOutput
	err := uc.store.Update(func(tx domain.Tx) error {
		old, ok := tx.Task(in.TaskID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, in.TaskID)
		}

		task, err := uc.merge(tx, old, &in)
		if err != nil {
			return err
		}

		out.ScheduleChanged = !domain.SameSchedule(&old, &task)
		if out.ScheduleChanged && task.IsScheduled() {
			task.Locked = true
		}
		task.UpdatedAt = now
		tx.PutTask(task)
		uc.placer.Projector().Sync(tx, task)

		if out.ScheduleChanged && !task.Locked {
			out.Placements = uc.placer.autoSchedule(tx, now, others(tx, task.ID))
		}
		out.Task = task
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	uc.logger.Info(in.TaskID, "task", fmt.Sprintf("updated (schedule changed: %t)", out.ScheduleChanged))
	return &out, nil
}

func (uc *UpdateTask) merge(tx domain.Tx, task domain.Task, in *UpdateTaskInput) (domain.Task, error) {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return task, domain.ErrEmptyTitle
		}
		task.Title = title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.ProjectID != nil {
		if *in.ProjectID != "" {
			if _, ok := tx.Project(*in.ProjectID); !ok {
				return task, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, *in.ProjectID)
			}
		}
		task.ProjectID = *in.ProjectID
	}
	if in.Priority != nil {
		if !in.Priority.IsValid() {
			return task, fmt.Errorf("%w: %q", domain.ErrInvalidPriority, *in.Priority)
		}
		task.Priority = *in.Priority
	}
	if in.EstimatedHours != nil {
		if !domain.ValidEstimate(*in.EstimatedHours) {
			return task, fmt.Errorf("%w: %g", domain.ErrInvalidEstimate, *in.EstimatedHours)
		}
		task.EstimatedHours = *in.EstimatedHours
	}
	switch {
	case in.ClearDueDate:
		task.DueDate = nil
	case in.DueDate != nil:
		due := *in.DueDate
		task.DueDate = &due
	}
	if in.AutoSchedule != nil {
		task.AutoSchedule = *in.AutoSchedule
	}
	if in.Locked != nil {
		task.Locked = *in.Locked
	}
	if in.Completed != nil {
		task.Completed = *in.Completed
	}
	switch {
	case in.ClearSchedule:
		task.ClearSchedule()
	case in.Schedule != nil:
		task.SetSchedule(in.Schedule.Start, in.Schedule.End)
	}
	return task, nil
}
