// Package cli provides the command-line interface for planner.
package cli

import (
	"fmt"

	"github.com/runoshun/planner/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupView    = "view"
	groupSession = "session"
	groupSetup   = "setup"
)

// annotationNoSeed marks commands that run without loading the seed.
const annotationNoSeed = "planner/no-seed"

// NewRootCommand creates the root command for planner.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	bootstrapped := false

	root := &cobra.Command{
		Use:   "planner",
		Short: "Auto-scheduling task planner",
		Long: `planner places your tasks into working-hours slots on a calendar.

Every invocation starts a fresh in-memory session from the configured seed
(or the built-in sample). Use 'planner session' to drive several mutations
against one session. Run without a command for the interactive agenda.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		// No subcommand launches the interactive agenda
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			if bootstrapped || cmd.Annotations[annotationNoSeed] == "true" {
				return nil
			}
			if err := c.Bootstrap(cmd.Context()); err != nil {
				return fmt.Errorf("bootstrap session: %w", err)
			}
			bootstrapped = true
			return nil
		},
	}

	// Read by main before the container is built; declared here so cobra accepts it.
	root.PersistentFlags().String("config", "", "Config file (default .planner/config.toml, or $PLANNER_CONFIG)")

	root.AddGroup(
		&cobra.Group{ID: groupView, Title: "Calendar Commands:"},
		&cobra.Group{ID: groupSession, Title: "Session Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	for _, cmd := range viewCommands(c) {
		cmd.GroupID = groupView
		root.AddCommand(cmd)
	}

	sessionCmd := newSessionCommand(c)
	sessionCmd.GroupID = groupSession
	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupSession

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup
	seedCmd := newSeedCommand(c)
	seedCmd.GroupID = groupSetup

	root.AddCommand(sessionCmd, tuiCmd, configCmd, seedCmd)
	return root
}

// viewCommands returns the read commands shared by the root command and the
// session shell.
func viewCommands(c *app.Container) []*cobra.Command {
	return []*cobra.Command{
		newAgendaCommand(c),
		newScheduleCommand(c),
		newTasksCommand(c),
		newProjectCommand(c),
		newFreeCommand(c),
	}
}
