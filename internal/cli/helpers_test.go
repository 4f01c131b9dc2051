package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/runoshun/planner/internal/app"
	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/infra/memstore"
	"github.com/runoshun/planner/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Monday 2025-03-03 08:00 UTC.
var now = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

func testSeed() domain.Seed {
	start := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	return domain.Seed{
		Projects: []domain.Project{{ID: "p1", Title: "Launch", Priority: domain.PriorityHigh, Color: "#4CAF50", CreatedAt: now, UpdatedAt: now}},
		Tasks: []domain.Task{
			{ID: "a", Title: "Write docs", ProjectID: "p1", Priority: domain.PriorityUrgent, EstimatedHours: 1, AutoSchedule: true, CreatedAt: now, UpdatedAt: now},
			{ID: "b", Title: "Review", ProjectID: "p1", Priority: domain.PriorityMedium, EstimatedHours: 1, AutoSchedule: true, Locked: true, ScheduledStart: &start, ScheduledEnd: &end, CreatedAt: now, UpdatedAt: now},
			{ID: "c", Title: "Kickoff", ProjectID: "p1", Priority: domain.PriorityLow, EstimatedHours: 0.5, Completed: true, CreatedAt: now, UpdatedAt: now},
		},
	}
}

// newTestContainer builds a container over an in-memory store seeded with
// testSeed. The root command bootstraps it on first use.
func newTestContainer(t *testing.T) (*app.Container, *testutil.MockSeedSource) {
	t.Helper()
	cfg := domain.NewDefaultConfig()
	cfg.Schedule.Timezone = "UTC"
	seeds := &testutil.MockSeedSource{Value: testSeed()}

	c, err := app.NewWithDeps(app.NewConfig(t.TempDir(), ""), cfg, memstore.New(), seeds,
		&testutil.MockIDGenerator{}, &testutil.MockClock{NowTime: now}, nil)
	require.NoError(t, err)
	return c, seeds
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, c *app.Container, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand(c, "test")
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(bytes.NewBufferString(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func taskByID(t *testing.T, c *app.Container, id string) domain.Task {
	t.Helper()
	var task domain.Task
	require.NoError(t, c.Store.View(func(tx domain.Tx) error {
		var ok bool
		task, ok = tx.Task(id)
		require.True(t, ok, "task %s exists", id)
		return nil
	}))
	return task
}

func taskByTitle(t *testing.T, c *app.Container, title string) domain.Task {
	t.Helper()
	var task domain.Task
	found := false
	require.NoError(t, c.Store.View(func(tx domain.Tx) error {
		for _, tk := range tx.Tasks() {
			if tk.Title == title {
				task, found = tk, true
			}
		}
		return nil
	}))
	require.True(t, found, "task %q exists", title)
	return task
}
