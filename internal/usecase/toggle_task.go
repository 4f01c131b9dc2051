package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/scheduler"
)

// ToggleTaskInput identifies the task whose flag is flipped.
type ToggleTaskInput struct {
	TaskID string
}

// ToggleTaskOutput contains the task after the flip.
type ToggleTaskOutput struct {
	Placements []scheduler.Placement // Set when unlocking triggered a pass
	Task       domain.Task
	Unlocked   bool // The flip cleared Locked; the pass may lock the task again
}

// ToggleTaskAutoSchedule is the use case for flipping a task's AutoSchedule
// flag. The change only affects eligibility for the next pass.
type ToggleTaskAutoSchedule struct {
	store  domain.Store
	clock  domain.Clock
	logger domain.Logger
}

// NewToggleTaskAutoSchedule creates a new ToggleTaskAutoSchedule use case.
func NewToggleTaskAutoSchedule(store domain.Store, clock domain.Clock, logger domain.Logger) *ToggleTaskAutoSchedule {
	return &ToggleTaskAutoSchedule{store: store, clock: clock, logger: logger}
}

// Execute flips AutoSchedule.
func (uc *ToggleTaskAutoSchedule) Execute(_ context.Context, in ToggleTaskInput) (*ToggleTaskOutput, error) {
	var out ToggleTaskOutput
	err := uc.store.Update(func(tx domain.Tx) error {
		task, ok := tx.Task(in.TaskID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, in.TaskID)
		}
		task.AutoSchedule = !task.AutoSchedule
		task.UpdatedAt = uc.clock.Now()
		tx.PutTask(task)
		out.Task = task
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("toggle auto-schedule: %w", err)
	}

	uc.logger.Info(in.TaskID, "task", fmt.Sprintf("autoSchedule=%t", out.Task.AutoSchedule))
	return &out, nil
}

// ToggleTaskLock is the use case for flipping a task's Locked flag.
type ToggleTaskLock struct {
	store  domain.Store
	placer *Placer
	clock  domain.Clock
	logger domain.Logger
}

// NewToggleTaskLock creates a new ToggleTaskLock use case.
func NewToggleTaskLock(store domain.Store, placer *Placer, clock domain.Clock, logger domain.Logger) *ToggleTaskLock {
	return &ToggleTaskLock{store: store, placer: placer, clock: clock, logger: logger}
}

// Execute flips Locked. Unlocking runs one pass over this task and every
// other eligible task.
func (uc *ToggleTaskLock) Execute(_ context.Context, in ToggleTaskInput) (*ToggleTaskOutput, error) {
	now := uc.clock.Now()
	var out ToggleTaskOutput
	err := uc.store.Update(func(tx domain.Tx) error {
		task, ok := tx.Task(in.TaskID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, in.TaskID)
		}
		wasLocked := task.Locked
		task.Locked = !task.Locked
		task.UpdatedAt = now
		tx.PutTask(task)

		if wasLocked {
			out.Unlocked = true
			out.Placements = uc.placer.autoSchedule(tx, now, tx.Tasks())
			task, _ = tx.Task(task.ID)
		}
		out.Task = task
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("toggle lock: %w", err)
	}

	uc.logger.Info(in.TaskID, "task", fmt.Sprintf("locked=%t", out.Task.Locked))
	return &out, nil
}
