package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/planner/internal/domain"
)

// ShowProjectInput contains the parameters for showing a project.
type ShowProjectInput struct {
	ProjectID string
}

// ShowProjectOutput contains the project, its tasks and progress.
type ShowProjectOutput struct {
	Tasks   []domain.Task
	Project domain.Project
	Stats   domain.ProjectStats
}

// ShowProject is the use case for inspecting a project.
type ShowProject struct {
	store domain.Store
}

// NewShowProject creates a new ShowProject use case.
func NewShowProject(store domain.Store) *ShowProject {
	return &ShowProject{store: store}
}

// Execute returns the project with its tasks and statistics.
func (uc *ShowProject) Execute(_ context.Context, in ShowProjectInput) (*ShowProjectOutput, error) {
	var out ShowProjectOutput
	err := uc.store.View(func(tx domain.Tx) error {
		project, ok := tx.Project(in.ProjectID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, in.ProjectID)
		}
		out.Project = project
		for _, t := range tx.Tasks() {
			if t.ProjectID == project.ID {
				out.Tasks = append(out.Tasks, t)
			}
		}
		out.Stats = domain.ComputeProjectStats(out.Tasks)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("show project: %w", err)
	}
	return &out, nil
}
