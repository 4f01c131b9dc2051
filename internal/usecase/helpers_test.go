package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/runoshun/planner/internal/calendar"
	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/infra/memstore"
	"github.com/runoshun/planner/internal/scheduler"
	"github.com/runoshun/planner/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Monday 2025-03-03 08:00 UTC: the first placement of the day starts at 09:30.
var now = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

func at(d, h, m int) time.Time {
	return time.Date(2025, 3, d, h, m, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// testEnv wires a real store, engine and projector with deterministic
// clock, IDs and logger.
type testEnv struct {
	store  *memstore.Store
	placer *Placer
	proj   *calendar.Projector
	clock  *testutil.MockClock
	ids    *testutil.MockIDGenerator
	logger *testutil.MockLogger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ids := &testutil.MockIDGenerator{}
	logger := &testutil.MockLogger{}
	proj := calendar.NewProjector(ids, "")
	engine := scheduler.New(scheduler.DefaultPolicy(time.UTC))
	return &testEnv{
		store:  memstore.New(),
		placer: NewPlacer(engine, proj, logger),
		proj:   proj,
		clock:  &testutil.MockClock{NowTime: now},
		ids:    ids,
		logger: logger,
	}
}

// seed loads projects and tasks directly, deriving events for scheduled tasks.
func (e *testEnv) seed(t *testing.T, projects []domain.Project, tasks []domain.Task) {
	t.Helper()
	e.store.Load(domain.Seed{Projects: projects, Tasks: tasks})
	require.NoError(t, e.store.Update(func(tx domain.Tx) error {
		for _, task := range tx.Tasks() {
			e.proj.Sync(tx, task)
		}
		return nil
	}))
}

func (e *testEnv) task(t *testing.T, id string) domain.Task {
	t.Helper()
	var task domain.Task
	require.NoError(t, e.store.View(func(tx domain.Tx) error {
		var ok bool
		task, ok = tx.Task(id)
		require.True(t, ok, "task %s exists", id)
		return nil
	}))
	return task
}

func (e *testEnv) snapshot(t *testing.T) domain.Snapshot {
	t.Helper()
	snap, err := NewSnapshot(e.store).Execute(context.Background(), SnapshotInput{})
	require.NoError(t, err)
	return *snap
}

// eventsFor returns every event derived from the task.
func eventsFor(snap domain.Snapshot, taskID string) []domain.CalendarEvent {
	var out []domain.CalendarEvent
	for _, ev := range snap.Events {
		if ev.TaskID == taskID {
			out = append(out, ev)
		}
	}
	return out
}

// requireConsistent asserts that every scheduled task has exactly one event
// matching its interval, and no event points at a missing or unscheduled task.
func requireConsistent(t *testing.T, snap domain.Snapshot) {
	t.Helper()
	byID := make(map[string]domain.Task, len(snap.Tasks))
	for _, task := range snap.Tasks {
		byID[task.ID] = task
		evs := eventsFor(snap, task.ID)
		if !task.IsScheduled() {
			require.Empty(t, evs, "unscheduled task %s has events", task.ID)
			continue
		}
		require.Len(t, evs, 1, "task %s", task.ID)
		require.True(t, evs[0].Start.Equal(*task.ScheduledStart), "event start of %s", task.ID)
		require.True(t, evs[0].End.Equal(*task.ScheduledEnd), "event end of %s", task.ID)
	}
	for _, ev := range snap.Events {
		if ev.TaskID == "" {
			continue
		}
		_, ok := byID[ev.TaskID]
		require.True(t, ok, "event %s references missing task %s", ev.ID, ev.TaskID)
	}
}

func eligible(id string, p domain.Priority, hours float64) domain.Task {
	return domain.Task{
		ID:             id,
		Title:          "Task " + id,
		Priority:       p,
		EstimatedHours: hours,
		AutoSchedule:   true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func scheduled(id string, start, end time.Time, locked bool) domain.Task {
	task := eligible(id, domain.PriorityMedium, end.Sub(start).Hours())
	task.SetSchedule(start, end)
	task.Locked = locked
	return task
}
