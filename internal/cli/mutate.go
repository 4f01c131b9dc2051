package cli

import (
	"fmt"

	"github.com/runoshun/planner/internal/app"
	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/usecase"
	"github.com/spf13/cobra"
)

// mutationCommands returns the commands that change session state.
// They are only reachable from the session shell.
func mutationCommands(c *app.Container) []*cobra.Command {
	return []*cobra.Command{
		newAddProjectCommand(c),
		newUpdateProjectCommand(c),
		newRmProjectCommand(c),
		newAddTaskCommand(c),
		newUpdateTaskCommand(c),
		newRmTaskCommand(c),
		newScheduleTaskCommand(c),
		newCompleteCommand(c),
		newToggleAutoCommand(c),
		newToggleLockCommand(c),
		newResetCommand(c),
	}
}

func parsePriorityFlag(s string) (domain.Priority, error) {
	if s == "" {
		return "", nil
	}
	return domain.ParsePriority(s)
}

// newAddProjectCommand creates the add-project command.
func newAddProjectCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Color       string
		Priority    string
	}

	cmd := &cobra.Command{
		Use:   "add-project",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			priority, err := parsePriorityFlag(opts.Priority)
			if err != nil {
				return err
			}
			out, err := c.AddProjectUseCase().Execute(cmd.Context(), usecase.AddProjectInput{
				Title:       opts.Title,
				Description: opts.Description,
				Color:       opts.Color,
				Priority:    priority,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created project %s\n", out.Project.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Project title (required)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Project description")
	cmd.Flags().StringVar(&opts.Color, "color", "", "Event color, e.g. #4CAF50")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "LOW, MEDIUM, HIGH or URGENT")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

// newUpdateProjectCommand creates the update-project command.
func newUpdateProjectCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Color       string
		Priority    string
	}

	cmd := &cobra.Command{
		Use:   "update-project <id>",
		Short: "Edit a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.UpdateProjectInput{ProjectID: args[0]}
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = &opts.Title
			}
			if flags.Changed("body") {
				in.Description = &opts.Description
			}
			if flags.Changed("color") {
				in.Color = &opts.Color
			}
			if flags.Changed("priority") {
				p, err := domain.ParsePriority(opts.Priority)
				if err != nil {
					return err
				}
				in.Priority = &p
			}

			out, err := c.UpdateProjectUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s (%d event(s) refreshed)\n",
				out.Project.ID, out.EventsRefreshed)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Description, "body", "", "New description")
	cmd.Flags().StringVar(&opts.Color, "color", "", "New event color")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "New priority")
	return cmd
}

// newRmProjectCommand creates the rm-project command.
func newRmProjectCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-project <id>",
		Short: "Delete a project with its tasks and events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DeleteProjectUseCase().Execute(cmd.Context(), usecase.DeleteProjectInput{ProjectID: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s (%d task(s), %d event(s))\n",
				args[0], out.TasksDeleted, out.EventsDeleted)
			return nil
		},
	}
}

// newAddTaskCommand creates the add-task command.
func newAddTaskCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Project     string
		Priority    string
		Due         string
		Start       string
		End         string
		Hours       float64
		NoAuto      bool
		Locked      bool
	}

	cmd := &cobra.Command{
		Use:   "add-task",
		Short: "Create a task",
		Long: `Create a task. An eligible task is placed right away.

Examples:
  add-task --title "Write report" --hours 2 --priority high --project project-1
  add-task --title "Dentist" --hours 1 --start 2025-03-05T14:00 --end 2025-03-05T15:00`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc := c.Location()
			priority, err := parsePriorityFlag(opts.Priority)
			if err != nil {
				return err
			}
			in := usecase.AddTaskInput{
				Title:          opts.Title,
				Description:    opts.Description,
				ProjectID:      opts.Project,
				Priority:       priority,
				EstimatedHours: opts.Hours,
				Locked:         opts.Locked,
			}
			if opts.NoAuto {
				auto := false
				in.AutoSchedule = &auto
			}
			if opts.Due != "" {
				due, err := parseTime(opts.Due, loc)
				if err != nil {
					return fmt.Errorf("--due: %w", err)
				}
				in.DueDate = &due
			}
			if opts.Start != "" || opts.End != "" {
				iv, err := parseInterval(opts.Start, opts.End, loc)
				if err != nil {
					return err
				}
				in.Schedule = &iv
			}

			out, err := c.AddTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Created task %s\n", out.Task.ID)
			if out.Placement != nil {
				_, _ = fmt.Fprintf(w, "Scheduled %s-%s\n",
					out.Placement.Start.In(loc).Format("2006-01-02 15:04"), out.Placement.End.In(loc).Format("15:04"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Project, "project", "", "Project ID")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "LOW, MEDIUM, HIGH or URGENT")
	cmd.Flags().Float64Var(&opts.Hours, "hours", 1, "Estimated hours (multiple of 0.5)")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date")
	cmd.Flags().StringVar(&opts.Start, "start", "", "Initial schedule start")
	cmd.Flags().StringVar(&opts.End, "end", "", "Initial schedule end")
	cmd.Flags().BoolVar(&opts.NoAuto, "no-auto", false, "Disable auto-scheduling for this task")
	cmd.Flags().BoolVar(&opts.Locked, "locked", false, "Create the task locked")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

// newUpdateTaskCommand creates the update-task command.
func newUpdateTaskCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title         string
		Description   string
		Project       string
		Priority      string
		Due           string
		Start         string
		End           string
		Hours         float64
		ClearDue      bool
		ClearSchedule bool
		Auto          bool
		Locked        bool
		Completed     bool
	}

	cmd := &cobra.Command{
		Use:   "update-task <id>",
		Short: "Edit a task",
		Long: `Edit a task. Only the given flags are changed.

Setting a new schedule locks the task. Clearing the schedule of an
unlocked task re-schedules the other eligible tasks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := c.Location()
			flags := cmd.Flags()
			in := usecase.UpdateTaskInput{
				TaskID:        args[0],
				ClearDueDate:  opts.ClearDue,
				ClearSchedule: opts.ClearSchedule,
			}
			if flags.Changed("title") {
				in.Title = &opts.Title
			}
			if flags.Changed("body") {
				in.Description = &opts.Description
			}
			if flags.Changed("project") {
				in.ProjectID = &opts.Project
			}
			if flags.Changed("priority") {
				p, err := domain.ParsePriority(opts.Priority)
				if err != nil {
					return err
				}
				in.Priority = &p
			}
			if flags.Changed("hours") {
				in.EstimatedHours = &opts.Hours
			}
			if flags.Changed("due") {
				due, err := parseTime(opts.Due, loc)
				if err != nil {
					return fmt.Errorf("--due: %w", err)
				}
				in.DueDate = &due
			}
			if flags.Changed("start") || flags.Changed("end") {
				iv, err := parseInterval(opts.Start, opts.End, loc)
				if err != nil {
					return err
				}
				in.Schedule = &iv
			}
			if flags.Changed("auto") {
				in.AutoSchedule = &opts.Auto
			}
			if flags.Changed("locked") {
				in.Locked = &opts.Locked
			}
			if flags.Changed("completed") {
				in.Completed = &opts.Completed
			}

			out, err := c.UpdateTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Updated task %s\n", out.Task.ID)
			if len(out.Placements) > 0 {
				printPlacements(w, out.Placements, loc)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Description, "body", "", "New description")
	cmd.Flags().StringVar(&opts.Project, "project", "", "New project ID")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "New priority")
	cmd.Flags().Float64Var(&opts.Hours, "hours", 0, "New estimate")
	cmd.Flags().StringVar(&opts.Due, "due", "", "New due date")
	cmd.Flags().BoolVar(&opts.ClearDue, "clear-due", false, "Remove the due date")
	cmd.Flags().StringVar(&opts.Start, "start", "", "New schedule start (with --end)")
	cmd.Flags().StringVar(&opts.End, "end", "", "New schedule end (with --start)")
	cmd.Flags().BoolVar(&opts.ClearSchedule, "clear-schedule", false, "Unschedule the task")
	cmd.Flags().BoolVar(&opts.Auto, "auto", true, "Auto-schedule flag")
	cmd.Flags().BoolVar(&opts.Locked, "locked", false, "Locked flag")
	cmd.Flags().BoolVar(&opts.Completed, "completed", false, "Completed flag")
	return cmd
}

// newRmTaskCommand creates the rm-task command.
func newRmTaskCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-task <id>",
		Short: "Delete a task and its event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: args[0]}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}
}

// newScheduleTaskCommand creates the schedule-task command.
func newScheduleTaskCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Start       string
		End         string
		NoRetrigger bool
	}

	cmd := &cobra.Command{
		Use:   "schedule-task <id>",
		Short: "Place a task on an exact interval and lock it",
		Long: `Place a task on an exact interval and lock it.

The other eligible tasks are then auto-scheduled once, unless
--no-retrigger is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := c.Location()
			iv, err := parseInterval(opts.Start, opts.End, loc)
			if err != nil {
				return err
			}
			out, err := c.ScheduleTaskUseCase().Execute(cmd.Context(), usecase.ScheduleTaskInput{
				TaskID:           args[0],
				Start:            iv.Start,
				End:              iv.End,
				SkipAutoSchedule: opts.NoRetrigger,
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Scheduled task %s %s-%s (locked)\n", out.Task.ID,
				iv.Start.In(loc).Format("2006-01-02 15:04"), iv.End.In(loc).Format("15:04"))
			if len(out.Placements) > 0 {
				printPlacements(w, out.Placements, loc)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Start, "start", "", "Start (required)")
	cmd.Flags().StringVar(&opts.End, "end", "", "End (required)")
	cmd.Flags().BoolVar(&opts.NoRetrigger, "no-retrigger", false, "Do not auto-schedule other tasks")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

// newCompleteCommand creates the complete command.
func newCompleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.CompleteTaskUseCase().Execute(cmd.Context(), usecase.CompleteTaskInput{TaskID: args[0]}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed task %s\n", args[0])
			return nil
		},
	}
}

// newToggleAutoCommand creates the toggle-auto command.
func newToggleAutoCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-auto <id>",
		Short: "Flip a task's auto-schedule flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ToggleTaskAutoScheduleUseCase().Execute(cmd.Context(), usecase.ToggleTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s auto-schedule: %t\n", out.Task.ID, out.Task.AutoSchedule)
			return nil
		},
	}
}

// newToggleLockCommand creates the toggle-lock command.
func newToggleLockCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-lock <id>",
		Short: "Flip a task's lock; unlocking re-schedules eligible tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ToggleTaskLockUseCase().Execute(cmd.Context(), usecase.ToggleTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Task %s locked: %t\n", out.Task.ID, out.Task.Locked)
			if len(out.Placements) > 0 {
				printPlacements(w, out.Placements, c.Location())
			}
			return nil
		},
	}
}

// newResetCommand creates the reset command.
func newResetCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the session and reload the seed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ResetSessionUseCase().Execute(cmd.Context(), usecase.ResetSessionInput{})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reset: %d project(s), %d task(s), %d event(s)\n",
				out.Projects, out.Tasks, out.Events)
			return nil
		},
	}
}
