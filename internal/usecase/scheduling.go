package usecase

import (
	"fmt"
	"time"

	"github.com/runoshun/planner/internal/calendar"
	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/scheduler"
)

// Placer commits schedules to the store. It is shared by every use case that
// places tasks, manually or through the engine.
// A pass started by Placer never starts another pass.
type Placer struct {
	engine    *scheduler.Engine
	projector *calendar.Projector
	logger    domain.Logger
}

// NewPlacer creates a Placer.
func NewPlacer(engine *scheduler.Engine, projector *calendar.Projector, logger domain.Logger) *Placer {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Placer{engine: engine, projector: projector, logger: logger}
}

// Projector returns the event projector.
func (p *Placer) Projector() *calendar.Projector {
	return p.projector
}

// place forces task's interval, stamps UpdatedAt and upserts its event.
// It never triggers an auto-schedule pass.
func (p *Placer) place(tx domain.Tx, task domain.Task, start, end time.Time, lock bool, now time.Time) domain.Task {
	task.SetSchedule(start, end)
	if lock {
		task.Locked = true
	}
	task.UpdatedAt = now
	tx.PutTask(task)
	p.projector.Sync(tx, task)
	return task
}

// autoSchedule runs one engine pass over candidates and commits every
// placement through place, which locks it like a manual placement.
// The anchor is computed over all tasks in tx.
func (p *Placer) autoSchedule(tx domain.Tx, now time.Time, candidates []domain.Task) []scheduler.Placement {
	placements := p.engine.Plan(now, tx.Tasks(), candidates)
	for _, pl := range placements {
		task, ok := tx.Task(pl.TaskID)
		if !ok {
			continue
		}
		p.place(tx, task, pl.Start, pl.End, true, now)
		p.logger.Info(pl.TaskID, "schedule", "placed "+pl.String())
	}
	if len(placements) > 0 {
		p.logger.Debug("", "schedule", fmt.Sprintf("auto-schedule pass placed %d task(s)", len(placements)))
	}
	return placements
}

// others returns every task in tx except the one with the given ID.
func others(tx domain.Tx, exceptID string) []domain.Task {
	all := tx.Tasks()
	out := make([]domain.Task, 0, len(all))
	for _, t := range all {
		if t.ID != exceptID {
			out = append(out, t)
		}
	}
	return out
}
