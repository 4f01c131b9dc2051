package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/planner/internal/calendar"
	"github.com/runoshun/planner/internal/domain"
)

// ResetSessionInput contains the parameters for resetting the session.
type ResetSessionInput struct{}

// ResetSessionOutput summarizes the reloaded state.
type ResetSessionOutput struct {
	Projects      int
	Tasks         int
	Events        int
	EventsSynced  int // Scheduled tasks whose event was created or refreshed
	EventsDropped int // Events that referenced a missing task or duplicated a task's event
}

// ResetSession is the use case for discarding all state and reloading the
// seed.
type ResetSession struct {
	store     domain.Store
	seeds     domain.SeedSource
	projector *calendar.Projector
	clock     domain.Clock
	logger    domain.Logger
}

// NewResetSession creates a new ResetSession use case.
func NewResetSession(store domain.Store, seeds domain.SeedSource, projector *calendar.Projector, clock domain.Clock, logger domain.Logger) *ResetSession {
	return &ResetSession{store: store, seeds: seeds, projector: projector, clock: clock, logger: logger}
}

// Execute loads the seed, then makes sure every scheduled task has exactly
// one event and no event points at a missing task. Extra events for the
// same task are dropped. It never triggers
// scheduling.
func (uc *ResetSession) Execute(_ context.Context, _ ResetSessionInput) (*ResetSessionOutput, error) {
	seed, err := uc.seeds.Seed(uc.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	uc.store.Load(seed)

	var out ResetSessionOutput
	err = uc.store.Update(func(tx domain.Tx) error {
		for _, e := range tx.Events() {
			if e.TaskID == "" {
				continue
			}
			if _, ok := tx.Task(e.TaskID); !ok {
				tx.DeleteEvent(e.ID)
				out.EventsDropped++
				continue
			}
			// A task keeps only the event its index points at.
			if kept, ok := tx.EventForTask(e.TaskID); !ok || kept.ID != e.ID {
				tx.DeleteEvent(e.ID)
				out.EventsDropped++
			}
		}
		for _, t := range tx.Tasks() {
			if _, ok := uc.projector.Sync(tx, t); ok {
				out.EventsSynced++
			}
		}
		out.Projects = len(tx.Projects())
		out.Tasks = len(tx.Tasks())
		out.Events = len(tx.Events())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("normalize seed: %w", err)
	}

	uc.logger.Info("", "session", fmt.Sprintf("reset: %d project(s), %d task(s), %d event(s)", out.Projects, out.Tasks, out.Events))
	return &out, nil
}
