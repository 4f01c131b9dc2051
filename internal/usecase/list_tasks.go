package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/planner/internal/domain"
)

// ListTasksInput contains the filters for listing tasks.
type ListTasksInput struct {
	ProjectID     string // Only tasks of this project (optional)
	Unscheduled   bool   // Only tasks without a schedule
	Eligible      bool   // Only tasks the engine may place
	HideCompleted bool
}

// ListTasksOutput contains the matching tasks in insertion order.
type ListTasksOutput struct {
	Tasks []domain.Task
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	store domain.Store
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(store domain.Store) *ListTasks {
	return &ListTasks{store: store}
}

// Execute returns the tasks matching every filter.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	var out ListTasksOutput
	err := uc.store.View(func(tx domain.Tx) error {
		if in.ProjectID != "" {
			if _, ok := tx.Project(in.ProjectID); !ok {
				return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, in.ProjectID)
			}
		}
		for _, t := range tx.Tasks() {
			if in.ProjectID != "" && t.ProjectID != in.ProjectID {
				continue
			}
			if in.Unscheduled && t.IsScheduled() {
				continue
			}
			if in.Eligible && !t.IsEligible() {
				continue
			}
			if in.HideCompleted && t.Completed {
				continue
			}
			out.Tasks = append(out.Tasks, t)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return &out, nil
}
