package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/planner/internal/usecase"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayoutSizes()
		return m, nil

	case MsgSnapshot:
		m.applySnapshot(msg.Snapshot)
		return m, nil

	case MsgStoreChanged:
		m.applySnapshot(msg.Snapshot)
		return m, m.waitForChange()

	case MsgActionDone:
		m.err = nil
		m.status = msg.Status
		return m, m.loadSnapshot()

	case MsgError:
		m.err = msg.Err
		m.status = ""
		return m, nil

	case MsgClearError:
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m *Model) updateLayoutSizes() {
	paneWidth := m.width / 2
	if paneWidth < 40 {
		paneWidth = 40
	}
	m.table.SetColumns(taskColumns(m.width - paneWidth - 4))
	// SetHeight covers the header and its border; the rows get the rest.
	height := m.height - 6
	if height < 5 {
		height = 5
	}
	m.table.SetHeight(height)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.PrevDay):
		m.day = m.day.AddDate(0, 0, -1)
		return m, nil

	case key.Matches(msg, m.keys.NextDay):
		m.day = m.day.AddDate(0, 0, 1)
		return m, nil

	case key.Matches(msg, m.keys.Today):
		m.day = dayOf(m.container.Clock.Now(), m.loc)
		return m, nil

	case key.Matches(msg, m.keys.AutoSchedule):
		return m, m.action(func(ctx context.Context) (string, error) {
			out, err := m.container.AutoScheduleTasksUseCase().Execute(ctx, usecase.AutoScheduleTasksInput{})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Scheduled %d task(s)", len(out.Placements)), nil
		})

	case key.Matches(msg, m.keys.Reset):
		return m, m.action(func(ctx context.Context) (string, error) {
			out, err := m.container.ResetSessionUseCase().Execute(ctx, usecase.ResetSessionInput{})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Reset: %d task(s), %d event(s)", out.Tasks, out.Events), nil
		})
	}

	if cmd, ok := m.handleTaskKey(msg); ok {
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleTaskKey handles bindings that act on the selected task.
func (m *Model) handleTaskKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	matched := key.Matches(msg, m.keys.ToggleLock, m.keys.ToggleAuto, m.keys.Complete, m.keys.Delete, m.keys.Unschedule)
	if !matched {
		return nil, false
	}
	task := m.SelectedTask()
	if task == nil {
		return nil, true
	}
	id, title := task.ID, task.Title
	c := m.container

	switch {
	case key.Matches(msg, m.keys.ToggleLock):
		return m.action(func(ctx context.Context) (string, error) {
			out, err := c.ToggleTaskLockUseCase().Execute(ctx, usecase.ToggleTaskInput{TaskID: id})
			if err != nil {
				return "", err
			}
			if !out.Unlocked {
				return fmt.Sprintf("Locked %q", title), nil
			}
			return fmt.Sprintf("Unlocked %q, scheduled %d task(s)", title, len(out.Placements)), nil
		}), true

	case key.Matches(msg, m.keys.ToggleAuto):
		return m.action(func(ctx context.Context) (string, error) {
			out, err := c.ToggleTaskAutoScheduleUseCase().Execute(ctx, usecase.ToggleTaskInput{TaskID: id})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Auto-schedule %t for %q", out.Task.AutoSchedule, title), nil
		}), true

	case key.Matches(msg, m.keys.Complete):
		return m.action(func(ctx context.Context) (string, error) {
			if _, err := c.CompleteTaskUseCase().Execute(ctx, usecase.CompleteTaskInput{TaskID: id}); err != nil {
				return "", err
			}
			return fmt.Sprintf("Completed %q", title), nil
		}), true

	case key.Matches(msg, m.keys.Delete):
		return m.action(func(ctx context.Context) (string, error) {
			if _, err := c.DeleteTaskUseCase().Execute(ctx, usecase.DeleteTaskInput{TaskID: id}); err != nil {
				return "", err
			}
			return fmt.Sprintf("Deleted %q", title), nil
		}), true

	default: // Unschedule
		return m.action(func(ctx context.Context) (string, error) {
			out, err := c.UpdateTaskUseCase().Execute(ctx, usecase.UpdateTaskInput{TaskID: id, ClearSchedule: true})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Unscheduled %q, scheduled %d other task(s)", title, len(out.Placements)), nil
		}), true
	}
}
