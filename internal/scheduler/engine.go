// Package scheduler implements greedy placement of eligible tasks into
// working-hours slots. It performs no I/O and never touches the store;
// callers commit the returned placements.
package scheduler

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/runoshun/planner/internal/domain"
)

// Policy controls where placements may start.
// Fields are ordered to minimize memory padding.
type Policy struct {
	Location                *time.Location
	Buffer                  time.Duration
	DayStart                int
	DayEnd                  int
	AnchorIncludesCompleted bool
}

// DefaultPolicy returns 09:00-17:00 working hours with a 30 minute buffer in
// the given location.
func DefaultPolicy(loc *time.Location) Policy {
	return Policy{
		Location: loc,
		Buffer:   domain.DefaultBufferMinutes * time.Minute,
		DayStart: domain.DefaultDayStart,
		DayEnd:   domain.DefaultDayEnd,
	}
}

// PolicyFromConfig builds a Policy from the [schedule] configuration.
func PolicyFromConfig(cfg domain.ScheduleConfig) (Policy, error) {
	if err := cfg.Validate(); err != nil {
		return Policy{}, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return Policy{}, err
	}
	return Policy{
		Location:                loc,
		Buffer:                  cfg.Buffer(),
		DayStart:                cfg.DayStart,
		DayEnd:                  cfg.DayEnd,
		AnchorIncludesCompleted: cfg.AnchorIncludesCompleted,
	}, nil
}

// Placement is the interval assigned to one task.
type Placement struct {
	Start  time.Time
	End    time.Time
	TaskID string
}

// String formats the placement for logs.
func (p Placement) String() string {
	return fmt.Sprintf("%s %s-%s", p.TaskID, p.Start.Format("2006-01-02 15:04"), p.End.Format("15:04"))
}

// Engine computes placements for a set of candidate tasks.
type Engine struct {
	policy Policy
}

// New creates an Engine. A nil Location means time.Local.
func New(policy Policy) *Engine {
	if policy.Location == nil {
		policy.Location = time.Local
	}
	return &Engine{policy: policy}
}

// Policy returns the engine's policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Order returns the eligible candidates in placement order: priority
// descending, then due date ascending with undated tasks last, then creation
// time ascending, then input order.
func (e *Engine) Order(candidates []domain.Task) []domain.Task {
	out := make([]domain.Task, 0, len(candidates))
	for _, t := range candidates {
		if t.IsEligible() {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, compareTasks)
	return out
}

func compareTasks(a, b domain.Task) int {
	if c := cmp.Compare(b.Priority.Rank(), a.Priority.Rank()); c != 0 {
		return c
	}
	switch {
	case a.DueDate != nil && b.DueDate != nil:
		if c := a.DueDate.Compare(*b.DueDate); c != 0 {
			return c
		}
	case a.DueDate != nil:
		return -1
	case b.DueDate != nil:
		return 1
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}

// Anchor returns the instant placements advance from: the start of the
// working day (today if now has not passed it, otherwise tomorrow), pushed
// later by the latest scheduled end among occupying tasks.
func (e *Engine) Anchor(now time.Time, tasks []domain.Task) time.Time {
	local := now.In(e.policy.Location)
	y, m, d := local.Date()
	anchor := time.Date(y, m, d, e.policy.DayStart, 0, 0, 0, e.policy.Location)
	if anchor.Before(local) {
		anchor = time.Date(y, m, d+1, e.policy.DayStart, 0, 0, 0, e.policy.Location)
	}

	for i := range tasks {
		t := &tasks[i]
		if !t.IsScheduled() {
			continue
		}
		if t.Completed && !e.policy.AnchorIncludesCompleted {
			continue
		}
		if t.ScheduledEnd.After(anchor) {
			anchor = t.ScheduledEnd.In(e.policy.Location)
		}
	}
	return anchor
}

// Plan places every eligible candidate in one forward pass.
// occupying is the full task set used for the anchor; candidates that are not
// eligible are ignored. Durations are never truncated or split: a start
// outside working hours moves to the start of the next calendar day.
func (e *Engine) Plan(now time.Time, occupying, candidates []domain.Task) []Placement {
	ordered := e.Order(candidates)
	if len(ordered) == 0 {
		return nil
	}

	cursor := e.Anchor(now, occupying)
	placements := make([]Placement, 0, len(ordered))
	for i := range ordered {
		t := &ordered[i]
		dur := t.Duration()

		cursor = cursor.Add(e.policy.Buffer)
		start := e.snap(cursor)
		end := start.Add(dur)

		placements = append(placements, Placement{TaskID: t.ID, Start: start, End: end})
		cursor = end
	}
	return placements
}

// snap moves start to the next day's opening hour when it falls outside
// [DayStart, DayEnd).
func (e *Engine) snap(start time.Time) time.Time {
	local := start.In(e.policy.Location)
	h := local.Hour()
	if h >= e.policy.DayStart && h < e.policy.DayEnd {
		return local
	}
	y, m, d := local.Date()
	return time.Date(y, m, d+1, e.policy.DayStart, 0, 0, 0, e.policy.Location)
}
