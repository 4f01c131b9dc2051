package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/planner/internal/app"
	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/infra/memstore"
	"github.com/runoshun/planner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

func testSeed() domain.Seed {
	start := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	return domain.Seed{
		Projects: []domain.Project{{ID: "p1", Title: "Launch", Priority: domain.PriorityHigh, CreatedAt: now, UpdatedAt: now}},
		Tasks: []domain.Task{
			{ID: "a", Title: "Write docs", ProjectID: "p1", Priority: domain.PriorityUrgent, EstimatedHours: 1, AutoSchedule: true, CreatedAt: now, UpdatedAt: now},
			{ID: "b", Title: "Review", ProjectID: "p1", Priority: domain.PriorityMedium, EstimatedHours: 1, AutoSchedule: true, Locked: true, ScheduledStart: &start, ScheduledEnd: &end, CreatedAt: now, UpdatedAt: now},
			{ID: "c", Title: "Kickoff", ProjectID: "p1", Priority: domain.PriorityLow, EstimatedHours: 0.5, Completed: true, CreatedAt: now, UpdatedAt: now},
		},
	}
}

func newTestModel(t *testing.T) (*Model, *app.Container) {
	t.Helper()
	cfg := domain.NewDefaultConfig()
	cfg.Schedule.Timezone = "UTC"

	c, err := app.NewWithDeps(app.NewConfig(t.TempDir(), ""), cfg, memstore.New(),
		&testutil.MockSeedSource{Value: testSeed()}, &testutil.MockIDGenerator{},
		&testutil.MockClock{NowTime: now}, nil)
	require.NoError(t, err)
	require.NoError(t, c.Bootstrap(context.Background()))

	m := New(c)
	t.Cleanup(m.Close)
	m.Update(m.loadSnapshot()())
	return m, c
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runAction executes the command returned for a key and feeds its result
// and the follow-up reload back into the model.
func runAction(t *testing.T, m *Model, k string) tea.Msg {
	t.Helper()
	_, cmd := m.Update(keyMsg(k))
	require.NotNil(t, cmd)
	msg := cmd()
	_, reload := m.Update(msg)
	if reload != nil {
		m.Update(reload())
	}
	return msg
}

func taskByID(t *testing.T, c *app.Container, id string) domain.Task {
	t.Helper()
	var task domain.Task
	require.NoError(t, c.Store.View(func(tx domain.Tx) error {
		var ok bool
		task, ok = tx.Task(id)
		require.True(t, ok)
		return nil
	}))
	return task
}

func TestModel_SnapshotOrdersRows(t *testing.T) {
	m, _ := newTestModel(t)

	require.Len(t, m.tasks, 3)
	assert.Equal(t, "b", m.tasks[0].ID, "scheduled tasks come first")
	assert.Equal(t, "a", m.tasks[1].ID)
	assert.Equal(t, "c", m.tasks[2].ID, "completed tasks come last")
	assert.Len(t, m.table.Rows(), 3)
	assert.Equal(t, "-LA", m.table.Rows()[0][4])
}

func TestUpdate_AutoScheduleKey(t *testing.T) {
	m, c := newTestModel(t)

	msg := runAction(t, m, "a")

	done, ok := msg.(MsgActionDone)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "Scheduled 1 task(s)", done.Status)
	assert.True(t, taskByID(t, c, "a").IsScheduled())
	assert.Equal(t, "a", m.tasks[1].ID)
	assert.True(t, m.tasks[1].IsScheduled())
}

func TestUpdate_ToggleLockUnlocksAndReschedules(t *testing.T) {
	m, c := newTestModel(t)
	require.Equal(t, "b", m.SelectedTask().ID)

	msg := runAction(t, m, "l")

	done, ok := msg.(MsgActionDone)
	require.True(t, ok, "got %T", msg)
	assert.Contains(t, done.Status, "Unlocked")
	assert.False(t, taskByID(t, c, "b").Locked)
	assert.True(t, taskByID(t, c, "a").IsScheduled(), "unlock runs one pass")
	assert.Equal(t, "b", m.SelectedTask().ID, "selection follows the task")
}

func TestUpdate_CompleteSelected(t *testing.T) {
	m, c := newTestModel(t)

	runAction(t, m, "c")

	assert.True(t, taskByID(t, c, "b").Completed)
}

func TestUpdate_UnscheduleSelected(t *testing.T) {
	m, c := newTestModel(t)

	msg := runAction(t, m, "u")

	done, ok := msg.(MsgActionDone)
	require.True(t, ok, "got %T", msg)
	assert.Contains(t, done.Status, "Unscheduled")
	assert.False(t, taskByID(t, c, "b").IsScheduled())
	assert.False(t, taskByID(t, c, "a").IsScheduled(), "a locked task never re-triggers")
}

func TestUpdate_DeleteSelected(t *testing.T) {
	m, c := newTestModel(t)

	runAction(t, m, "x")

	require.NoError(t, c.Store.View(func(tx domain.Tx) error {
		_, ok := tx.Task("b")
		assert.False(t, ok)
		assert.Empty(t, tx.Events())
		return nil
	}))
	assert.Len(t, m.tasks, 2)
}

func TestUpdate_TaskKeyWithoutTasks(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(MsgSnapshot{})

	_, cmd := m.Update(keyMsg("l"))

	assert.Nil(t, cmd)
}

func TestUpdate_ResetKey(t *testing.T) {
	m, c := newTestModel(t)
	runAction(t, m, "a")
	require.True(t, taskByID(t, c, "a").IsScheduled())

	msg := runAction(t, m, "R")

	require.IsType(t, MsgActionDone{}, msg)
	assert.False(t, taskByID(t, c, "a").IsScheduled())
}

func TestUpdate_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyMsg("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_Error(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(MsgError{Err: errors.New("boom")})
	assert.Contains(t, m.View(), "Error: boom")

	m.Update(MsgClearError{})
	assert.NotContains(t, m.View(), "Error: boom")
}

func TestUpdate_StoreChangedRearmsSubscription(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(MsgStoreChanged{Snapshot: domain.Snapshot{}})

	assert.NotNil(t, cmd)
	assert.Empty(t, m.tasks)
}

func TestUpdate_DayNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	today := m.day

	assert.Contains(t, m.agendaView(), "10:00-11:00")

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, today.AddDate(0, 0, 1), m.day)
	assert.Contains(t, m.agendaView(), "No events.")

	m.Update(keyMsg("h"))
	m.Update(keyMsg("h"))
	assert.Equal(t, today.AddDate(0, 0, -1), m.day)

	m.Update(keyMsg("T"))
	assert.Equal(t, today, m.day)
}

func TestUpdate_WindowSize(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})

	assert.Equal(t, 160, m.width)
	// 40 rows minus chrome leaves 34 for the table; header and border take 2.
	assert.Equal(t, 32, m.table.Height())

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 8})
	assert.Equal(t, 3, m.table.Height())
}

func TestKeyMap_NoDuplicateKeys(t *testing.T) {
	km := DefaultKeyMap()
	seen := map[string]string{}
	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				prev, dup := seen[k]
				assert.False(t, dup, "key %q bound to %q and %q", k, prev, b.Help().Desc)
				seen[k] = b.Help().Desc
			}
		}
	}
}
