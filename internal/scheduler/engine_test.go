package scheduler

import (
	"testing"
	"time"

	"github.com/runoshun/planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2025-03-03 08:00 UTC, before the working day starts.
var morning = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

func day(d, h, m int) time.Time {
	return time.Date(2025, 3, d, h, m, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func newTestEngine() *Engine {
	return New(DefaultPolicy(time.UTC))
}

func task(id string, p domain.Priority, hours float64) domain.Task {
	return domain.Task{ID: id, Priority: p, EstimatedHours: hours, AutoSchedule: true}
}

func placementIDs(ps []Placement) []string {
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.TaskID)
	}
	return ids
}

func TestEngine_Plan_PriorityThenDueDate(t *testing.T) {
	e := newTestEngine()

	a := task("A", domain.PriorityUrgent, 2)
	a.DueDate = ptr(morning.AddDate(0, 0, 5))
	b := task("B", domain.PriorityHigh, 2)
	b.DueDate = ptr(morning.AddDate(0, 0, 1))
	c := task("C", domain.PriorityUrgent, 2)
	c.DueDate = ptr(morning.AddDate(0, 0, 1))
	candidates := []domain.Task{a, b, c}

	got := e.Plan(morning, candidates, candidates)

	require.Equal(t, []string{"C", "A", "B"}, placementIDs(got))
	assert.Equal(t, day(3, 9, 30), got[0].Start)
	assert.Equal(t, day(3, 11, 30), got[0].End)
	assert.Equal(t, day(3, 12, 0), got[1].Start)
	assert.Equal(t, day(3, 14, 30), got[2].Start)
}

func TestEngine_Order_UndatedLastThenCreationThenInput(t *testing.T) {
	e := newTestEngine()

	undatedOld := task("undated-old", domain.PriorityMedium, 1)
	undatedOld.CreatedAt = day(1, 9, 0)
	undatedNew := task("undated-new", domain.PriorityMedium, 1)
	undatedNew.CreatedAt = day(2, 9, 0)
	dated := task("dated", domain.PriorityMedium, 1)
	dated.DueDate = ptr(day(20, 9, 0))
	tieA := task("tie-a", domain.PriorityLow, 1)
	tieB := task("tie-b", domain.PriorityLow, 1)

	got := e.Order([]domain.Task{tieA, undatedNew, undatedOld, tieB, dated})

	ids := make([]string, 0, len(got))
	for _, t := range got {
		ids = append(ids, t.ID)
	}
	assert.Equal(t, []string{"dated", "undated-old", "undated-new", "tie-a", "tie-b"}, ids)
}

func TestEngine_Order_FiltersIneligible(t *testing.T) {
	e := newTestEngine()

	done := task("done", domain.PriorityUrgent, 1)
	done.Completed = true
	locked := task("locked", domain.PriorityUrgent, 1)
	locked.Locked = true
	manual := task("manual", domain.PriorityUrgent, 1)
	manual.AutoSchedule = false
	placed := task("placed", domain.PriorityUrgent, 1)
	placed.SetSchedule(day(3, 9, 0), day(3, 10, 0))
	ok := task("ok", domain.PriorityLow, 1)

	got := e.Order([]domain.Task{done, locked, manual, placed, ok})
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].ID)
}

func TestEngine_Plan_Empty(t *testing.T) {
	e := newTestEngine()
	assert.Nil(t, e.Plan(morning, nil, nil))

	done := task("done", domain.PriorityLow, 1)
	done.Completed = true
	assert.Nil(t, e.Plan(morning, nil, []domain.Task{done}))
}

func TestEngine_Anchor(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name  string
		now   time.Time
		tasks []domain.Task
		want  time.Time
	}{
		{"before opening uses today", morning, nil, day(3, 9, 0)},
		{"exactly at opening uses today", day(3, 9, 0), nil, day(3, 9, 0)},
		{"after opening rolls to tomorrow", day(3, 9, 1), nil, day(4, 9, 0)},
		{"late evening rolls to tomorrow", day(3, 23, 0), nil, day(4, 9, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Anchor(tt.now, tt.tasks))
		})
	}
}

func TestEngine_Anchor_LatestScheduledEnd(t *testing.T) {
	e := newTestEngine()

	early := task("early", domain.PriorityLow, 1)
	early.SetSchedule(day(3, 9, 0), day(3, 10, 0))
	late := task("late", domain.PriorityLow, 2)
	late.Locked = true
	late.SetSchedule(day(5, 13, 0), day(5, 15, 0))

	assert.Equal(t, day(5, 15, 0), e.Anchor(morning, []domain.Task{early, late}))
}

func TestEngine_Anchor_CompletedTasks(t *testing.T) {
	done := task("done", domain.PriorityLow, 2)
	done.Completed = true
	done.SetSchedule(day(6, 10, 0), day(6, 12, 0))
	tasks := []domain.Task{done}

	assert.Equal(t, day(3, 9, 0), newTestEngine().Anchor(morning, tasks), "completed tasks do not occupy by default")

	policy := DefaultPolicy(time.UTC)
	policy.AnchorIncludesCompleted = true
	assert.Equal(t, day(6, 12, 0), New(policy).Anchor(morning, tasks))
}

func TestEngine_Plan_SnapsLongTaskFollower(t *testing.T) {
	e := newTestEngine()
	long := task("long", domain.PriorityUrgent, 10)
	next := task("next", domain.PriorityLow, 1)
	candidates := []domain.Task{long, next}

	got := e.Plan(morning, candidates, candidates)

	require.Len(t, got, 2)
	// Duration is never truncated, even when it runs past closing time
	assert.Equal(t, day(3, 9, 30), got[0].Start)
	assert.Equal(t, day(3, 19, 30), got[0].End)
	// 20:00 is outside working hours, so the follower moves to the next morning
	assert.Equal(t, day(4, 9, 0), got[1].Start)
	assert.Equal(t, day(4, 10, 0), got[1].End)
}

func TestEngine_Plan_CursorAtClosingSnaps(t *testing.T) {
	e := newTestEngine()
	first := task("first", domain.PriorityUrgent, 7)
	second := task("second", domain.PriorityLow, 2)
	candidates := []domain.Task{first, second}

	got := e.Plan(morning, candidates, candidates)

	require.Len(t, got, 2)
	assert.Equal(t, day(3, 16, 30), got[0].End)
	assert.Equal(t, day(4, 9, 0), got[1].Start, "a cursor landing exactly on 17:00 snaps")
	assert.Equal(t, day(4, 11, 0), got[1].End)
}

func TestEngine_Plan_AfterMidnightSnapsToFollowingDay(t *testing.T) {
	e := newTestEngine()
	night := task("night", domain.PriorityLow, 1)
	night.Locked = true
	night.SetSchedule(day(3, 22, 45), day(3, 23, 45))
	cand := task("cand", domain.PriorityLow, 1)

	got := e.Plan(morning, []domain.Task{night, cand}, []domain.Task{cand})

	require.Len(t, got, 1)
	// Cursor lands at 00:15 on the 4th, which is before opening: next calendar day
	assert.Equal(t, day(5, 9, 0), got[0].Start)
}

func TestEngine_Plan_StartsAlwaysInWorkingHours(t *testing.T) {
	e := newTestEngine()
	var candidates []domain.Task
	for i, h := range []float64{10, 0.5, 3, 8, 1.5, 6, 12, 2} {
		candidates = append(candidates, task(string(rune('a'+i)), domain.PriorityMedium, h))
	}

	got := e.Plan(day(3, 14, 0), candidates, candidates)

	require.Len(t, got, len(candidates))
	for _, p := range got {
		h := p.Start.Hour()
		assert.True(t, h >= 9 && h < 17, "start %s outside working hours", p)
	}
}

func TestEngine_Plan_NoOverlapAndDurationPreserved(t *testing.T) {
	e := newTestEngine()
	var candidates []domain.Task
	hours := []float64{2, 10, 0.5, 4, 7.5, 1, 9, 3}
	for i, h := range hours {
		p := domain.AllPriorities()[i%4]
		candidates = append(candidates, task(string(rune('a'+i)), p, h))
	}

	got := e.Plan(morning, candidates, candidates)
	require.Len(t, got, len(candidates))

	byID := make(map[string]float64)
	for _, c := range candidates {
		byID[c.ID] = c.EstimatedHours
	}
	for i, p := range got {
		assert.Equal(t, domain.HoursToDuration(byID[p.TaskID]), p.End.Sub(p.Start), "duration of %s", p.TaskID)
		for j := i + 1; j < len(got); j++ {
			a := domain.Interval{Start: p.Start, End: p.End}
			b := domain.Interval{Start: got[j].Start, End: got[j].End}
			assert.False(t, a.Overlaps(b), "%s overlaps %s", p, got[j])
		}
	}
}

func TestEngine_Plan_DegenerateDurations(t *testing.T) {
	e := newTestEngine()
	zero := task("zero", domain.PriorityUrgent, 0)
	negative := task("negative", domain.PriorityLow, -1)
	candidates := []domain.Task{zero, negative}

	got := e.Plan(morning, candidates, candidates)

	require.Len(t, got, 2)
	assert.Equal(t, got[0].Start, got[0].End, "zero-length placement")
	assert.Equal(t, day(3, 9, 30), got[0].Start)
	assert.Equal(t, day(3, 10, 0), got[1].Start)
	assert.Equal(t, -time.Hour, got[1].End.Sub(got[1].Start), "negative-length placement")
}

func TestEngine_Plan_CustomPolicy(t *testing.T) {
	e := New(Policy{Location: time.UTC, DayStart: 8, DayEnd: 12, Buffer: 15 * time.Minute})
	a := task("a", domain.PriorityHigh, 3)
	b := task("b", domain.PriorityLow, 1)

	got := e.Plan(day(3, 7, 0), []domain.Task{a, b}, []domain.Task{a, b})

	require.Len(t, got, 2)
	assert.Equal(t, day(3, 8, 15), got[0].Start)
	assert.Equal(t, day(3, 11, 30), got[1].Start)
}

func TestPolicyFromConfig(t *testing.T) {
	cfg := domain.NewDefaultConfig().Schedule
	cfg.Timezone = "UTC"
	cfg.BufferMinutes = 45

	p, err := PolicyFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, p.Buffer)
	assert.Equal(t, 9, p.DayStart)
	assert.Equal(t, "UTC", p.Location.String())

	cfg.DayEnd = 5
	_, err = PolicyFromConfig(cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidWorkingDay)
}
