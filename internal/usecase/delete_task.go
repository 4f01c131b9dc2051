package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/planner/internal/calendar"
	"github.com/runoshun/planner/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID string // Task ID to delete
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	EventDeleted bool
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	store     domain.Store
	projector *calendar.Projector
	logger    domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(store domain.Store, projector *calendar.Projector, logger domain.Logger) *DeleteTask {
	return &DeleteTask{store: store, projector: projector, logger: logger}
}

// Execute removes the task's event, then the task. It never triggers
// scheduling.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	var out DeleteTaskOutput
	err := uc.store.Update(func(tx domain.Tx) error {
		if _, ok := tx.Task(in.TaskID); !ok {
			return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, in.TaskID)
		}
		_, out.EventDeleted = tx.EventForTask(in.TaskID)
		uc.projector.Remove(tx, in.TaskID)
		tx.DeleteTask(in.TaskID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}

	uc.logger.Info(in.TaskID, "task", "deleted")
	return &out, nil
}
