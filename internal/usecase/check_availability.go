package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/planner/internal/calendar"
	"github.com/runoshun/planner/internal/domain"
)

// CheckAvailabilityInput describes the candidate interval.
type CheckAvailabilityInput struct {
	Start        time.Time
	End          time.Time
	IgnoreTaskID string // Ignore this task's own event (optional)
}

// CheckAvailabilityOutput reports whether the interval is free.
type CheckAvailabilityOutput struct {
	Conflicts []domain.CalendarEvent
	Available bool
}

// CheckAvailability is the use case for querying the calendar for a free
// interval. It has no side effects.
type CheckAvailability struct {
	store domain.Store
}

// NewCheckAvailability creates a new CheckAvailability use case.
func NewCheckAvailability(store domain.Store) *CheckAvailability {
	return &CheckAvailability{store: store}
}

// Execute returns the events overlapping [Start, End).
func (uc *CheckAvailability) Execute(_ context.Context, in CheckAvailabilityInput) (*CheckAvailabilityOutput, error) {
	if in.End.Before(in.Start) {
		return nil, domain.ErrInvalidInterval
	}

	var out CheckAvailabilityOutput
	err := uc.store.View(func(tx domain.Tx) error {
		out.Conflicts = calendar.Conflicts(tx.Events(), in.Start, in.End, in.IgnoreTaskID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	out.Available = len(out.Conflicts) == 0
	return &out, nil
}
