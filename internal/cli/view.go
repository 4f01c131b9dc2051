package cli

import (
	"fmt"
	"time"

	"github.com/runoshun/planner/internal/app"
	"github.com/runoshun/planner/internal/usecase"
	"github.com/spf13/cobra"
)

// newAgendaCommand creates the agenda command.
func newAgendaCommand(c *app.Container) *cobra.Command {
	var opts struct {
		From string
		Days int
		Auto bool
	}

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show calendar events by day",
		Long: `Show calendar events grouped by day.

Examples:
  # Next 7 days
  planner agenda

  # Auto-schedule eligible tasks first, then show two weeks
  planner agenda --auto --days 14

  # Start from a given day
  planner agenda --from 2025-03-10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc := c.Location()
			from := startOfDay(c.Clock.Now().In(loc))
			if opts.From != "" {
				t, err := parseTime(opts.From, loc)
				if err != nil {
					return err
				}
				from = startOfDay(t)
			}
			if opts.Days <= 0 {
				return fmt.Errorf("--days must be positive")
			}

			if opts.Auto {
				if _, err := c.AutoScheduleTasksUseCase().Execute(cmd.Context(), usecase.AutoScheduleTasksInput{}); err != nil {
					return err
				}
			}

			snap, err := c.SnapshotUseCase().Execute(cmd.Context(), usecase.SnapshotInput{})
			if err != nil {
				return err
			}
			printAgenda(cmd.OutOrStdout(), *snap, from, from.AddDate(0, 0, opts.Days), loc)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "First day to show (default: today)")
	cmd.Flags().IntVar(&opts.Days, "days", 7, "Number of days to show")
	cmd.Flags().BoolVar(&opts.Auto, "auto", false, "Auto-schedule eligible tasks before showing")
	return cmd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// newScheduleCommand creates the schedule command.
func newScheduleCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Auto-schedule every eligible task",
		Long: `Run one auto-schedule pass over every task that is not completed,
not locked, has auto-schedule enabled and has no schedule yet.

Tasks are placed by priority, then due date, each after a buffer,
starting from the next working-day opening or the latest scheduled end.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.AutoScheduleTasksUseCase().Execute(cmd.Context(), usecase.AutoScheduleTasksInput{})
			if err != nil {
				return err
			}
			printPlacements(cmd.OutOrStdout(), out.Placements, c.Location())
			return nil
		},
	}
}

// newTasksCommand creates the tasks command.
func newTasksCommand(c *app.Container) *cobra.Command {
	var in usecase.ListTasksInput

	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), out.Tasks, c.Location())
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.ProjectID, "project", "p", "", "Only tasks of this project")
	cmd.Flags().BoolVar(&in.Unscheduled, "unscheduled", false, "Only tasks without a schedule")
	cmd.Flags().BoolVar(&in.Eligible, "eligible", false, "Only tasks the next auto-schedule pass would place")
	cmd.Flags().BoolVar(&in.HideCompleted, "hide-completed", false, "Hide completed tasks")
	return cmd
}

// newProjectCommand creates the project command.
func newProjectCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "project [id]",
		Short: "Show project progress",
		Long:  `Show one project with its tasks, or every project when no ID is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			uc := c.ShowProjectUseCase()

			if len(args) == 1 {
				out, err := uc.Execute(cmd.Context(), usecase.ShowProjectInput{ProjectID: args[0]})
				if err != nil {
					return err
				}
				printStats(w, out.Project, out.Stats)
				_, _ = fmt.Fprintln(w)
				printTasks(w, out.Tasks, c.Location())
				return nil
			}

			snap, err := c.SnapshotUseCase().Execute(cmd.Context(), usecase.SnapshotInput{})
			if err != nil {
				return err
			}
			if len(snap.Projects) == 0 {
				_, _ = fmt.Fprintln(w, "No projects.")
				return nil
			}
			for _, p := range snap.Projects {
				out, err := uc.Execute(cmd.Context(), usecase.ShowProjectInput{ProjectID: p.ID})
				if err != nil {
					return err
				}
				printStats(w, out.Project, out.Stats)
			}
			return nil
		},
	}
}

// newFreeCommand creates the free command.
func newFreeCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Start  string
		End    string
		Ignore string
	}

	cmd := &cobra.Command{
		Use:   "free",
		Short: "Check whether a time range is free",
		Long: `Check a time range against every calendar event.

Examples:
  planner free --start 2025-03-04T10:00 --end 2025-03-04T12:00`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			iv, err := parseInterval(opts.Start, opts.End, c.Location())
			if err != nil {
				return err
			}
			out, err := c.CheckAvailabilityUseCase().Execute(cmd.Context(), usecase.CheckAvailabilityInput{
				Start:        iv.Start,
				End:          iv.End,
				IgnoreTaskID: opts.Ignore,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Available {
				_, _ = fmt.Fprintln(w, "Available.")
				return nil
			}
			_, _ = fmt.Fprintf(w, "Busy: %d conflicting event(s)\n", len(out.Conflicts))
			loc := c.Location()
			for _, e := range out.Conflicts {
				_, _ = fmt.Fprintf(w, "  %s %s-%s  %s\n", swatch(e.Color),
					e.Start.In(loc).Format("2006-01-02 15:04"), e.End.In(loc).Format("15:04"), e.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Start, "start", "", "Range start (required)")
	cmd.Flags().StringVar(&opts.End, "end", "", "Range end (required)")
	cmd.Flags().StringVar(&opts.Ignore, "ignore-task", "", "Ignore this task's own event")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
