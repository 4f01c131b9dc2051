package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/scheduler"
)

// AutoScheduleTasksInput contains the parameters for a full pass.
type AutoScheduleTasksInput struct{}

// AutoScheduleTasksOutput lists the placements made by the pass.
type AutoScheduleTasksOutput struct {
	Placements []scheduler.Placement
}

// AutoScheduleTasks is the use case for placing every eligible task.
type AutoScheduleTasks struct {
	store  domain.Store
	placer *Placer
	clock  domain.Clock
	logger domain.Logger
}

// NewAutoScheduleTasks creates a new AutoScheduleTasks use case.
func NewAutoScheduleTasks(store domain.Store, placer *Placer, clock domain.Clock, logger domain.Logger) *AutoScheduleTasks {
	return &AutoScheduleTasks{store: store, placer: placer, clock: clock, logger: logger}
}

// Execute runs the engine once over all eligible tasks in the store.
func (uc *AutoScheduleTasks) Execute(_ context.Context, _ AutoScheduleTasksInput) (*AutoScheduleTasksOutput, error) {
	now := uc.clock.Now()
	var out AutoScheduleTasksOutput
	err := uc.store.Update(func(tx domain.Tx) error {
		out.Placements = uc.placer.autoSchedule(tx, now, tx.Tasks())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("auto-schedule: %w", err)
	}

	uc.logger.Info("", "schedule", fmt.Sprintf("auto-schedule placed %d task(s)", len(out.Placements)))
	return &out, nil
}
