package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/planner/internal/domain"
)

// CompleteTaskInput contains the parameters for completing a task.
type CompleteTaskInput struct {
	TaskID string
}

// CompleteTaskOutput contains the result of completing a task.
type CompleteTaskOutput struct {
	Task domain.Task
}

// CompleteTask is the use case for marking a task as done.
// The task keeps its schedule and event.
type CompleteTask struct {
	store  domain.Store
	clock  domain.Clock
	logger domain.Logger
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(store domain.Store, clock domain.Clock, logger domain.Logger) *CompleteTask {
	return &CompleteTask{store: store, clock: clock, logger: logger}
}

// Execute sets Completed. It never triggers scheduling.
func (uc *CompleteTask) Execute(_ context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	var out CompleteTaskOutput
	err := uc.store.Update(func(tx domain.Tx) error {
		task, ok := tx.Task(in.TaskID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, in.TaskID)
		}
		task.Completed = true
		task.UpdatedAt = uc.clock.Now()
		tx.PutTask(task)
		out.Task = task
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}

	uc.logger.Info(in.TaskID, "task", "completed")
	return &out, nil
}
