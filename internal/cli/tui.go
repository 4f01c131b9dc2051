package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/planner/internal/app"
	"github.com/runoshun/planner/internal/tui"
)

// launchTUIFunc starts the TUI. Tests replace it.
var launchTUIFunc = tui.Run

// newTUICommand creates the tui command for launching the interactive agenda.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive agenda",
		Long: `Launch the interactive terminal agenda.

The task table and the day view follow every change to the session.
Press ? for key bindings.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}
