package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/planner/internal/calendar"
	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/scheduler"
)

// ScheduleTaskInput contains the parameters for placing a task manually.
type ScheduleTaskInput struct {
	Start            time.Time
	End              time.Time
	TaskID           string
	SkipAutoSchedule bool // Do not re-schedule the other eligible tasks
}

// ScheduleTaskOutput contains the result of placing a task.
type ScheduleTaskOutput struct {
	Event      domain.CalendarEvent
	Placements []scheduler.Placement // Other tasks placed by the follow-up pass
	Task       domain.Task
}

// ScheduleTask is the use case for forcing a task onto an interval.
type ScheduleTask struct {
	store         domain.Store
	placer        *Placer
	clock         domain.Clock
	logger        domain.Logger
	rejectOverlap bool
}

// NewScheduleTask creates a new ScheduleTask use case. When rejectOverlap is
// set, intervals that overlap another event fail with ErrSlotUnavailable.
func NewScheduleTask(store domain.Store, placer *Placer, clock domain.Clock, logger domain.Logger, rejectOverlap bool) *ScheduleTask {
	return &ScheduleTask{store: store, placer: placer, clock: clock, logger: logger, rejectOverlap: rejectOverlap}
}

// Execute sets the task's interval exactly, locks it and upserts its event.
// Unless SkipAutoSchedule is set, one pass then places every other eligible
// task.
func (uc *ScheduleTask) Execute(_ context.Context, in ScheduleTaskInput) (*ScheduleTaskOutput, error) {
	if in.End.Before(in.Start) {
		return nil, domain.ErrInvalidInterval
	}

	now := uc.clock.Now()
	var out ScheduleTaskOutput
	err := uc.store.Update(func(tx domain.Tx) error {
		task, ok := tx.Task(in.TaskID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, in.TaskID)
		}

		if uc.rejectOverlap {
			if conflicts := calendar.Conflicts(tx.Events(), in.Start, in.End, task.ID); len(conflicts) > 0 {
				return fmt.Errorf("%w: %q", domain.ErrSlotUnavailable, conflicts[0].Title)
			}
		}

		out.Task = uc.placer.place(tx, task, in.Start, in.End, true, now)
		out.Event, _ = tx.EventForTask(task.ID)

		if !in.SkipAutoSchedule {
			out.Placements = uc.placer.autoSchedule(tx, now, others(tx, task.ID))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("schedule task: %w", err)
	}

	uc.logger.Info(in.TaskID, "schedule", fmt.Sprintf("manually placed %s-%s",
		in.Start.Format("2006-01-02 15:04"), in.End.Format("2006-01-02 15:04")))
	return &out, nil
}
