package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/runoshun/planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduleEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	m := eligible("m", domain.PriorityMedium, 1)
	m.AutoSchedule = false
	env.seed(t, nil, []domain.Task{
		m,
		eligible("e1", domain.PriorityHigh, 1),
		eligible("e2", domain.PriorityLow, 1),
	})
	return env
}

// countPlaced returns how many engine placements were logged.
func countPlaced(env *testEnv) int {
	n := 0
	for _, e := range env.logger.Entries {
		if strings.HasPrefix(e.Msg, "placed ") {
			n++
		}
	}
	return n
}

func TestScheduleTask_Execute_LocksAndTriggersOthers(t *testing.T) {
	// Setup
	env := newScheduleEnv(t)
	uc := NewScheduleTask(env.store, env.placer, env.clock, env.logger, false)

	// Execute
	out, err := uc.Execute(context.Background(), ScheduleTaskInput{
		TaskID: "m",
		Start:  at(3, 13, 0),
		End:    at(3, 14, 0),
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, out.Task.Locked, "manual placement locks the task")
	assert.Equal(t, "m", out.Event.TaskID)
	assert.Equal(t, at(3, 13, 0), out.Event.Start)

	require.Len(t, out.Placements, 2)
	assert.Equal(t, at(3, 14, 30), *env.task(t, "e1").ScheduledStart)
	assert.Equal(t, at(3, 16, 0), *env.task(t, "e2").ScheduledStart)
	assert.True(t, env.task(t, "e1").Locked, "cascaded placements are locked too")
	requireConsistent(t, env.snapshot(t))
}

func TestScheduleTask_Execute_SkipAutoSchedule(t *testing.T) {
	// Setup
	env := newScheduleEnv(t)
	uc := NewScheduleTask(env.store, env.placer, env.clock, env.logger, false)

	// Execute
	out, err := uc.Execute(context.Background(), ScheduleTaskInput{
		TaskID:           "m",
		Start:            at(3, 13, 0),
		End:              at(3, 14, 0),
		SkipAutoSchedule: true,
	})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, out.Placements)
	assert.False(t, env.task(t, "e1").IsScheduled())
	assert.False(t, env.task(t, "e2").IsScheduled())
	assert.Zero(t, countPlaced(env), "no pass ran")
	assert.Len(t, env.snapshot(t).Events, 1)
}

func TestScheduleTask_Execute_RetriggerRunsOnce(t *testing.T) {
	// Setup
	env := newScheduleEnv(t)
	uc := NewScheduleTask(env.store, env.placer, env.clock, env.logger, false)
	_, err := uc.Execute(context.Background(), ScheduleTaskInput{TaskID: "m", Start: at(3, 13, 0), End: at(3, 14, 0)})
	require.NoError(t, err)
	e1 := env.task(t, "e1")

	// Execute: moving the manual task again finds nothing left to place.
	out, err := uc.Execute(context.Background(), ScheduleTaskInput{TaskID: "m", Start: at(4, 10, 0), End: at(4, 11, 0)})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, out.Placements)
	assert.Equal(t, 2, countPlaced(env), "each task placed exactly once")
	assert.True(t, domain.SameSchedule(&e1, ptr(env.task(t, "e1"))))

	snap := env.snapshot(t)
	assert.Len(t, snap.Events, 3)
	requireConsistent(t, snap)
}

func TestScheduleTask_Execute_RoundTrip(t *testing.T) {
	// Setup
	env := newScheduleEnv(t)
	schedule := NewScheduleTask(env.store, env.placer, env.clock, env.logger, false)
	update := NewUpdateTask(env.store, env.placer, env.clock, env.logger)
	in := ScheduleTaskInput{TaskID: "m", Start: at(3, 13, 0), End: at(3, 14, 0), SkipAutoSchedule: true}

	// Execute & Assert
	_, err := schedule.Execute(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, eventsFor(env.snapshot(t), "m"), 1)

	_, err = update.Execute(context.Background(), UpdateTaskInput{TaskID: "m", ClearSchedule: true})
	require.NoError(t, err)
	assert.Empty(t, eventsFor(env.snapshot(t), "m"), "clearing removes the event")

	_, err = schedule.Execute(context.Background(), in)
	require.NoError(t, err)
	_, err = schedule.Execute(context.Background(), in)
	require.NoError(t, err)
	snap := env.snapshot(t)
	assert.Len(t, eventsFor(snap, "m"), 1, "never two events for one task")
	requireConsistent(t, snap)
}

func TestScheduleTask_Execute_Overlap(t *testing.T) {
	busy := scheduled("busy", at(3, 10, 0), at(3, 12, 0), true)

	t.Run("permissive by default", func(t *testing.T) {
		env := newScheduleEnv(t)
		env.seed(t, nil, []domain.Task{busy, eligible("m", domain.PriorityLow, 1)})
		uc := NewScheduleTask(env.store, env.placer, env.clock, env.logger, false)

		_, err := uc.Execute(context.Background(), ScheduleTaskInput{TaskID: "m", Start: at(3, 11, 0), End: at(3, 13, 0)})

		require.NoError(t, err)
	})

	t.Run("rejected when configured", func(t *testing.T) {
		env := newScheduleEnv(t)
		env.seed(t, nil, []domain.Task{busy, eligible("m", domain.PriorityLow, 1)})
		uc := NewScheduleTask(env.store, env.placer, env.clock, env.logger, true)

		_, err := uc.Execute(context.Background(), ScheduleTaskInput{TaskID: "m", Start: at(3, 11, 0), End: at(3, 13, 0)})

		assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
		assert.False(t, env.task(t, "m").IsScheduled(), "store unchanged")
	})

	t.Run("own event is ignored", func(t *testing.T) {
		env := newScheduleEnv(t)
		env.seed(t, nil, []domain.Task{busy})
		uc := NewScheduleTask(env.store, env.placer, env.clock, env.logger, true)

		_, err := uc.Execute(context.Background(), ScheduleTaskInput{TaskID: "busy", Start: at(3, 11, 0), End: at(3, 12, 30)})

		require.NoError(t, err)
		assert.Equal(t, at(3, 12, 30), *env.task(t, "busy").ScheduledEnd)
	})

	t.Run("adjacent intervals do not overlap", func(t *testing.T) {
		env := newScheduleEnv(t)
		env.seed(t, nil, []domain.Task{busy, eligible("m", domain.PriorityLow, 1)})
		uc := NewScheduleTask(env.store, env.placer, env.clock, env.logger, true)

		_, err := uc.Execute(context.Background(), ScheduleTaskInput{TaskID: "m", Start: at(3, 12, 0), End: at(3, 13, 0)})

		require.NoError(t, err)
	})
}

func TestScheduleTask_Execute_Errors(t *testing.T) {
	env := newScheduleEnv(t)
	uc := NewScheduleTask(env.store, env.placer, env.clock, env.logger, false)

	_, err := uc.Execute(context.Background(), ScheduleTaskInput{TaskID: "m", Start: at(3, 14, 0), End: at(3, 13, 0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	_, err = uc.Execute(context.Background(), ScheduleTaskInput{TaskID: "nope", Start: at(3, 13, 0), End: at(3, 14, 0)})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	assert.Empty(t, env.snapshot(t).Events)
}
