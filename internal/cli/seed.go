package cli

import (
	"fmt"

	"github.com/runoshun/planner/internal/app"
	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/infra/seedfile"
	"github.com/runoshun/planner/internal/usecase"
	"github.com/spf13/cobra"
)

// newSeedCommand creates the seed command.
func newSeedCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Export or check seed files",
		Long: `Seed files hold the projects, tasks and events a session starts from.
The format follows the extension: .yaml, .yml or .json.`,
	}

	cmd.AddCommand(newSeedExportCommand(c))
	cmd.AddCommand(newSeedCheckCommand())
	return cmd
}

// newSeedExportCommand creates the seed export subcommand.
func newSeedExportCommand(c *app.Container) *cobra.Command {
	var auto bool

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write the bootstrapped session to a seed file",
		Long: `Write the bootstrapped session to a seed file.

Examples:
  # Start from the built-in sample and keep a schedule you can edit
  planner seed export --auto plan.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if auto {
				if _, err := c.AutoScheduleTasksUseCase().Execute(cmd.Context(), usecase.AutoScheduleTasksInput{}); err != nil {
					return err
				}
			}
			snap, err := c.SnapshotUseCase().Execute(cmd.Context(), usecase.SnapshotInput{})
			if err != nil {
				return err
			}
			seed := domain.Seed{Projects: snap.Projects, Tasks: snap.Tasks, Events: snap.Events}
			if err := seedfile.Write(args[0], seed); err != nil {
				return fmt.Errorf("export seed: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d project(s), %d task(s), %d event(s)\n",
				args[0], len(seed.Projects), len(seed.Tasks), len(seed.Events))
			return nil
		},
	}

	cmd.Flags().BoolVar(&auto, "auto", false, "Auto-schedule eligible tasks before exporting")
	return cmd
}

// newSeedCheckCommand creates the seed check subcommand.
func newSeedCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "check <path>",
		Short:       "Validate a seed file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationNoSeed: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := seedfile.Read(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "OK: %d project(s), %d task(s), %d event(s)\n",
				len(seed.Projects), len(seed.Tasks), len(seed.Events))
			return nil
		},
	}
}
