// Package usecase contains the planner's mutation and query operations.
// Every mutation runs inside a single Store.Update.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/planner/internal/domain"
)

// AddProjectInput contains the parameters for creating a project.
type AddProjectInput struct {
	Title       string          // Project title (required)
	Description string          // Project description (optional)
	Color       string          // Event color (optional, empty = default color)
	Priority    domain.Priority // Priority (optional, empty = MEDIUM)
}

// AddProjectOutput contains the result of creating a project.
type AddProjectOutput struct {
	Project domain.Project
}

// AddProject is the use case for creating a project.
type AddProject struct {
	store  domain.Store
	ids    domain.IDGenerator
	clock  domain.Clock
	logger domain.Logger
}

// NewAddProject creates a new AddProject use case.
func NewAddProject(store domain.Store, ids domain.IDGenerator, clock domain.Clock, logger domain.Logger) *AddProject {
	return &AddProject{store: store, ids: ids, clock: clock, logger: logger}
}

// Execute creates a project. Projects never trigger scheduling.
func (uc *AddProject) Execute(_ context.Context, in AddProjectInput) (*AddProjectOutput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	priority, err := priorityOrDefault(in.Priority)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	project := domain.Project{
		ID:          uc.ids.NewID(),
		Title:       title,
		Description: in.Description,
		Priority:    priority,
		Color:       in.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.store.Update(func(tx domain.Tx) error {
		tx.PutProject(project)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}

	uc.logger.Info(project.ID, "project", fmt.Sprintf("created %q", project.Title))
	return &AddProjectOutput{Project: project}, nil
}

// priorityOrDefault validates p, mapping empty to MEDIUM.
func priorityOrDefault(p domain.Priority) (domain.Priority, error) {
	if p == "" {
		return domain.PriorityMedium, nil
	}
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidPriority, p)
	}
	return p, nil
}
