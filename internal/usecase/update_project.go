package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/planner/internal/calendar"
	"github.com/runoshun/planner/internal/domain"
)

// UpdateProjectInput contains the fields to change. Nil fields are kept.
type UpdateProjectInput struct {
	Title       *string
	Description *string
	Color       *string
	Priority    *domain.Priority
	ProjectID   string
}

// UpdateProjectOutput contains the result of updating a project.
type UpdateProjectOutput struct {
	Project         domain.Project
	EventsRefreshed int // Events re-derived to pick up color changes
}

// UpdateProject is the use case for editing a project.
type UpdateProject struct {
	store     domain.Store
	projector *calendar.Projector
	clock     domain.Clock
	logger    domain.Logger
}

// NewUpdateProject creates a new UpdateProject use case.
func NewUpdateProject(store domain.Store, projector *calendar.Projector, clock domain.Clock, logger domain.Logger) *UpdateProject {
	return &UpdateProject{store: store, projector: projector, clock: clock, logger: logger}
}

// Execute merges the given fields into the project and re-derives the
// events of its scheduled tasks.
func (uc *UpdateProject) Execute(_ context.Context, in UpdateProjectInput) (*UpdateProjectOutput, error) {
	if in.Title == nil && in.Description == nil && in.Color == nil && in.Priority == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	var out UpdateProjectOutput
	err := uc.store.Update(func(tx domain.Tx) error {
		project, ok := tx.Project(in.ProjectID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, in.ProjectID)
		}

		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if title == "" {
				return domain.ErrEmptyTitle
			}
			project.Title = title
		}
		if in.Description != nil {
			project.Description = *in.Description
		}
		if in.Color != nil {
			project.Color = *in.Color
		}
		if in.Priority != nil {
			if !in.Priority.IsValid() {
				return fmt.Errorf("%w: %q", domain.ErrInvalidPriority, *in.Priority)
			}
			project.Priority = *in.Priority
		}
		project.UpdatedAt = uc.clock.Now()
		tx.PutProject(project)

		out.Project = project
		out.EventsRefreshed = uc.projector.RefreshProject(tx, project.ID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	uc.logger.Info(out.Project.ID, "project", fmt.Sprintf("updated (%d event(s) refreshed)", out.EventsRefreshed))
	return &out, nil
}
