package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/scheduler"
)

// AddTaskInput contains the parameters for creating a task.
// Fields are ordered to minimize memory padding.
type AddTaskInput struct {
	DueDate        *time.Time       // Due date (optional)
	Schedule       *domain.Interval // Initial schedule (optional)
	AutoSchedule   *bool            // Nil means true
	Title          string           // Task title (required)
	Description    string           // Task description (optional)
	ProjectID      string           // Owning project (optional, must exist when set)
	Priority       domain.Priority  // Priority (optional, empty = MEDIUM)
	EstimatedHours float64          // Positive multiple of 0.5
	Locked         bool
}

// AddTaskOutput contains the result of creating a task.
type AddTaskOutput struct {
	Placement *scheduler.Placement // Set when the new task was auto-scheduled
	Task      domain.Task
}

// AddTask is the use case for creating a task.
type AddTask struct {
	store  domain.Store
	placer *Placer
	ids    domain.IDGenerator
	clock  domain.Clock
	logger domain.Logger
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(store domain.Store, placer *Placer, ids domain.IDGenerator, clock domain.Clock, logger domain.Logger) *AddTask {
	return &AddTask{store: store, placer: placer, ids: ids, clock: clock, logger: logger}
}

// Execute inserts the task and, when it is eligible, places it immediately.
// Only the new task is considered by that pass.
func (uc *AddTask) Execute(_ context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if !domain.ValidEstimate(in.EstimatedHours) {
		return nil, fmt.Errorf("%w: %g", domain.ErrInvalidEstimate, in.EstimatedHours)
	}
	priority, err := priorityOrDefault(in.Priority)
	if err != nil {
		return nil, err
	}
	if in.Schedule != nil && in.Schedule.End.Before(in.Schedule.Start) {
		return nil, domain.ErrInvalidInterval
	}

	now := uc.clock.Now()
	task := domain.Task{
		ID:             uc.ids.NewID(),
		Title:          title,
		Description:    in.Description,
		ProjectID:      in.ProjectID,
		Priority:       priority,
		EstimatedHours: in.EstimatedHours,
		DueDate:        in.DueDate,
		AutoSchedule:   in.AutoSchedule == nil || *in.AutoSchedule,
		Locked:         in.Locked,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var out AddTaskOutput
	err = uc.store.Update(func(tx domain.Tx) error {
		if task.ProjectID != "" {
			if _, ok := tx.Project(task.ProjectID); !ok {
				return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, task.ProjectID)
			}
		}

		tx.PutTask(task)
		if in.Schedule != nil {
			task = uc.placer.place(tx, task, in.Schedule.Start, in.Schedule.End, false, now)
		}

		if task.IsEligible() {
			placements := uc.placer.autoSchedule(tx, now, []domain.Task{task})
			if len(placements) == 1 {
				out.Placement = &placements[0]
			}
			task, _ = tx.Task(task.ID)
		}
		out.Task = task
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add task: %w", err)
	}

	uc.logger.Info(out.Task.ID, "task", fmt.Sprintf("created %q (%s, %gh)", out.Task.Title, out.Task.Priority, out.Task.EstimatedHours))
	return &out, nil
}
