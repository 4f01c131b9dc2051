package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/planner/internal/domain"
)

// SnapshotInput contains the parameters for reading the whole state.
type SnapshotInput struct{}

// Snapshot is the use case for reading every collection at once.
type Snapshot struct {
	store domain.Store
}

// NewSnapshot creates a new Snapshot use case.
func NewSnapshot(store domain.Store) *Snapshot {
	return &Snapshot{store: store}
}

// Execute returns a copy of all projects, tasks and events.
func (uc *Snapshot) Execute(_ context.Context, _ SnapshotInput) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	err := uc.store.View(func(tx domain.Tx) error {
		snap = domain.Snapshot{
			Projects: tx.Projects(),
			Tasks:    tx.Tasks(),
			Events:   tx.Events(),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return &snap, nil
}
