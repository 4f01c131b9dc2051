package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/planner/internal/calendar"
	"github.com/runoshun/planner/internal/domain"
)

// DeleteProjectInput contains the parameters for deleting a project.
type DeleteProjectInput struct {
	ProjectID string
}

// DeleteProjectOutput contains the result of deleting a project.
type DeleteProjectOutput struct {
	TasksDeleted  int
	EventsDeleted int
}

// DeleteProject is the use case for deleting a project with its tasks and
// their events.
type DeleteProject struct {
	store     domain.Store
	projector *calendar.Projector
	logger    domain.Logger
}

// NewDeleteProject creates a new DeleteProject use case.
func NewDeleteProject(store domain.Store, projector *calendar.Projector, logger domain.Logger) *DeleteProject {
	return &DeleteProject{store: store, projector: projector, logger: logger}
}

// Execute cascades the delete to the project's tasks and every event that
// references the project or one of those tasks.
func (uc *DeleteProject) Execute(_ context.Context, in DeleteProjectInput) (*DeleteProjectOutput, error) {
	var out DeleteProjectOutput
	err := uc.store.Update(func(tx domain.Tx) error {
		if _, ok := tx.Project(in.ProjectID); !ok {
			return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, in.ProjectID)
		}

		taskIDs := make(map[string]bool)
		for _, t := range tx.Tasks() {
			if t.ProjectID == in.ProjectID {
				taskIDs[t.ID] = true
			}
		}

		out.EventsDeleted = uc.projector.RemoveProject(tx, in.ProjectID, taskIDs)
		for id := range taskIDs {
			tx.DeleteTask(id)
		}
		out.TasksDeleted = len(taskIDs)
		tx.DeleteProject(in.ProjectID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete project: %w", err)
	}

	uc.logger.Info(in.ProjectID, "project",
		fmt.Sprintf("deleted with %d task(s) and %d event(s)", out.TasksDeleted, out.EventsDeleted))
	return &out, nil
}
